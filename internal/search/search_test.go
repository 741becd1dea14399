package search

import (
	"testing"

	"github.com/maxuni/miniapp-backend/internal/navigation"
)

func ids(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.ID
	}
	return out
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	idx := Default()
	hits := idx.Search("   ")
	if len(hits) != len(sections) {
		t.Fatalf("got %d hits, want %d", len(hits), len(sections))
	}
	if hits[0].ID != "home" || hits[0].Target != navigation.PageHome {
		t.Errorf("first hit = %+v, want home", hits[0])
	}
}

func TestSearch_ExactTitleBeatsPartial(t *testing.T) {
	idx := NewIndex([]Item{
		{ID: "exams", Title: "Расписание экзаменов", Keywords: []string{"сессия"}},
		{ID: "schedule", Title: "Расписание", Keywords: []string{"пары", "занятия"}},
	})

	hits := idx.Search("Расписание")
	if len(hits) != 2 {
		t.Fatalf("hits = %v", ids(hits))
	}
	if hits[0].ID != "schedule" || hits[0].Score != 245 {
		t.Errorf("top = %s/%d, want schedule/245", hits[0].ID, hits[0].Score)
	}
	if hits[1].Score != 145 {
		t.Errorf("second score = %d, want 145", hits[1].Score)
	}
}

func TestSearch_CyrillicWholeWord(t *testing.T) {
	idx := NewIndex([]Item{
		{ID: "partial", Title: "Первое", Keywords: []string{"парадокс"}},
		{ID: "whole", Title: "Второе", Keywords: []string{"пара"}},
	})

	hits := idx.Search("пара")
	if got := ids(hits); len(got) != 2 || got[0] != "whole" {
		t.Fatalf("order = %v, want whole first", got)
	}
	if hits[0].Score != 125 || hits[1].Score != 98 {
		t.Errorf("scores = %d/%d, want 125/98", hits[0].Score, hits[1].Score)
	}
}

func TestSearch_TieBreaksOnShorterTitle(t *testing.T) {
	idx := NewIndex([]Item{
		{ID: "long", Title: "Длинное название", Keywords: []string{"x1"}},
		{ID: "short", Title: "Кор", Keywords: []string{"x1"}},
	})

	hits := idx.Search("x1")
	if got := ids(hits); len(got) != 2 || got[0] != "short" {
		t.Errorf("order = %v, want short first", got)
	}
}

func TestSearch_AllWordsBonus(t *testing.T) {
	it := Item{ID: "a", Title: "T", Keywords: []string{"alpha beta"}}
	if got := score(it, "beta alpha", []string{"beta", "alpha"}); got != 55 {
		t.Errorf("score = %d, want 55", got)
	}
}

func TestSearch_ShortWordsIgnored(t *testing.T) {
	it := Item{ID: "a", Title: "Тест", Keywords: []string{"x"}}
	if got := score(it, "q", []string{"q"}); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestSearch_NoMatchDropped(t *testing.T) {
	if hits := Default().Search("zzzqqq"); len(hits) != 0 {
		t.Errorf("hits = %v, want none", ids(hits))
	}
}

func TestSearch_ProfileFieldTarget(t *testing.T) {
	hits := Default().Search("телефон")
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	if hits[0].ID != "profile-phone" {
		t.Errorf("top = %s, want profile-phone", hits[0].ID)
	}
	if hits[0].Target != navigation.PageProfile {
		t.Errorf("target = %s, want profile", hits[0].Target)
	}
}
