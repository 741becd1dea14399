// Package search ranks app sections against a free-text query.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maxuni/miniapp-backend/internal/navigation"
)

// Item is one searchable section.
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"-"`
}

// Hit is a ranked result with the page it opens.
type Hit struct {
	Item
	Score  int             `json:"score"`
	Target navigation.Page `json:"target"`
}

// Score weights.
const (
	scoreTitleExact     = 200
	scoreTitleContains  = 100
	scoreKeywordWhole   = 80
	scoreKeywordPartial = 60
	scoreCategory       = 50
	scorePrefix         = 30
	scoreAllWords       = 25
	scoreWordWhole      = 15
	scoreWordPartial    = 8

	minWordLen = 2
)

// Index ranks a fixed set of items.
type Index struct {
	items []Item
}

// NewIndex builds an index over items.
func NewIndex(items []Item) *Index {
	return &Index{items: items}
}

// Default returns the index of every mini-app section.
func Default() *Index {
	return NewIndex(sections)
}

// Search returns matching items, best first. A blank query returns everything in index order.
func (x *Index) Search(query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		hits := make([]Hit, len(x.items))
		for i, it := range x.items {
			hits[i] = Hit{Item: it, Target: navigation.SearchTarget(it.ID)}
		}
		return hits
	}

	words := strings.Fields(q)

	var hits []Hit
	for _, it := range x.items {
		if s := score(it, q, words); s > 0 {
			hits = append(hits, Hit{Item: it, Score: s, Target: navigation.SearchTarget(it.ID)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return utf8.RuneCountInString(hits[i].Title) < utf8.RuneCountInString(hits[j].Title)
	})
	return hits
}

func score(it Item, q string, words []string) int {
	title := strings.ToLower(it.Title)
	category := strings.ToLower(it.Category)
	keywords := strings.ToLower(strings.Join(it.Keywords, " "))
	full := title + " " + category + " " + keywords
	tokens := tokenSet(full)

	s := 0

	switch {
	case title == q:
		s += scoreTitleExact
	case strings.Contains(title, q):
		s += scoreTitleContains
	}

	switch {
	case keywords == q,
		strings.Contains(keywords, " "+q+" "),
		strings.HasPrefix(keywords, q+" "),
		strings.HasSuffix(keywords, " "+q):
		s += scoreKeywordWhole
	case strings.Contains(keywords, q):
		s += scoreKeywordPartial
	}

	if category != "" && strings.Contains(category, q) {
		s += scoreCategory
	}

	for _, w := range words {
		if utf8.RuneCountInString(w) < minWordLen {
			continue
		}
		if _, ok := tokens[w]; ok {
			s += scoreWordWhole
		} else if strings.Contains(full, w) {
			s += scoreWordPartial
		}
	}

	if strings.HasPrefix(title, q) || strings.HasPrefix(keywords, q) {
		s += scorePrefix
	}

	if len(words) > 1 {
		all := true
		for _, w := range words {
			if !strings.Contains(full, w) {
				all = false
				break
			}
		}
		if all {
			s += scoreAllWords
		}
	}

	return s
}

// tokenSet splits on anything that is not a letter or digit, so Cyrillic words
// count as whole words the same way Latin ones do.
func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
