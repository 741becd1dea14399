// Package navigation holds the page-history stack that drives the mini-app router.
package navigation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownPage is returned for page ids outside the route table.
var ErrUnknownPage = errors.New("navigation: unknown page")

// Page identifies a screen of the mini-app.
type Page string

const (
	PageLogin           Page = "login"
	PageHome            Page = "home"
	PageServices        Page = "services"
	PagePlatforms       Page = "platforms"
	PagePrimaryServices Page = "primaryServices"
	PageTeachers        Page = "teachers"
	PageTeacherDetail   Page = "teacherDetail"
	PageProfile         Page = "profile"
	PageScheduleDetail  Page = "scheduleDetail"
	PageNewsDetail      Page = "newsDetail"
	PageDebts           Page = "debts"
	PageGradebook       Page = "gradebook"
	PageChats           Page = "chats"
	PageContacts        Page = "contacts"
	PageMaps            Page = "maps"
	PageClubs           Page = "clubs"
	PageNotifications   Page = "notifications"
	PageTheme           Page = "theme"
	PageSearch          Page = "search"
)

// Section is the footer tab highlighted for a page.
type Section string

const (
	SectionNone     Section = ""
	SectionHome     Section = "home"
	SectionServices Section = "services"
	SectionProfile  Section = "profile"
)

// PageConfig describes how the shell renders a page.
type PageConfig struct {
	Page     Page    `json:"page"`
	Title    string  `json:"title"`
	Footer   Section `json:"footer_active"`
	ShowBack bool    `json:"show_back"`
}

var pages = map[Page]PageConfig{
	PageLogin:           {Title: "Вход", Footer: SectionNone},
	PageHome:            {Title: "Главная", Footer: SectionHome},
	PageServices:        {Title: "Сервисы", Footer: SectionServices},
	PagePlatforms:       {Title: "Веб-платформы", Footer: SectionServices},
	PagePrimaryServices: {Title: "Основные сервисы", Footer: SectionServices},
	PageTeachers:        {Title: "Преподаватели", Footer: SectionServices},
	PageTeacherDetail:   {Title: "Преподаватель", Footer: SectionServices},
	PageProfile:         {Title: "Профиль", Footer: SectionProfile},
	PageScheduleDetail:  {Title: "Расписание", Footer: SectionHome},
	PageNewsDetail:      {Title: "Новости", Footer: SectionHome},
	PageDebts:           {Title: "Долги", Footer: SectionProfile},
	PageGradebook:       {Title: "Зачётная книжка", Footer: SectionProfile},
	PageChats:           {Title: "Чаты", Footer: SectionServices},
	PageContacts:        {Title: "Контакты", Footer: SectionServices},
	PageMaps:            {Title: "Карта", Footer: SectionServices},
	PageClubs:           {Title: "Клубы", Footer: SectionServices},
	PageNotifications:   {Title: "Уведомления", Footer: SectionProfile},
	PageTheme:           {Title: "Внешний вид", Footer: SectionProfile},
	PageSearch:          {Title: "Поиск", Footer: SectionHome},
}

// Valid reports whether p is a known page.
func Valid(p Page) bool {
	_, ok := pages[p]
	return ok
}

// Stack is the page history. It is never empty and the root is never popped.
type Stack struct {
	pages []Page
}

// New returns the initial history: home with a session, login without.
func New(hasSession bool) Stack {
	if hasSession {
		return Stack{pages: []Page{PageHome}}
	}
	return Stack{pages: []Page{PageLogin}}
}

// FromPages rebuilds a stack from stored history.
func FromPages(history []Page) (Stack, error) {
	if len(history) == 0 {
		return Stack{}, fmt.Errorf("navigation: empty history")
	}
	for _, p := range history {
		if !Valid(p) {
			return Stack{}, fmt.Errorf("%w %q", ErrUnknownPage, p)
		}
	}
	return Stack{pages: append([]Page(nil), history...)}, nil
}

// Push opens page on top of the history unless it is already the current page.
func (s *Stack) Push(page Page) error {
	if !Valid(page) {
		return fmt.Errorf("%w %q", ErrUnknownPage, page)
	}
	if s.Current() == page {
		return nil
	}
	s.pages = append(s.pages, page)
	return nil
}

// Pop goes back one page. The root page stays; it returns false when there was nothing to pop.
func (s *Stack) Pop() bool {
	if len(s.pages) <= 1 {
		return false
	}
	s.pages = s.pages[:len(s.pages)-1]
	return true
}

// ReplaceRoot resets the history to page alone, as footer tabs do.
func (s *Stack) ReplaceRoot(page Page) error {
	if !Valid(page) {
		return fmt.Errorf("%w %q", ErrUnknownPage, page)
	}
	s.pages = []Page{page}
	return nil
}

// Current returns the top page.
func (s Stack) Current() Page {
	if len(s.pages) == 0 {
		return PageLogin
	}
	return s.pages[len(s.pages)-1]
}

func (s Stack) CanGoBack() bool {
	return len(s.pages) > 1
}

// Pages returns a copy of the history, root first.
func (s Stack) Pages() []Page {
	return append([]Page(nil), s.pages...)
}

func (s Stack) Depth() int {
	return len(s.pages)
}

// Config resolves the current page's descriptor. Search and schedule
// inherit their footer tab from the pages under them.
func (s Stack) Config() PageConfig {
	current := s.Current()
	cfg := pages[current]
	cfg.Page = current
	cfg.ShowBack = s.CanGoBack()

	switch current {
	case PageSearch:
		cfg.Footer = SectionHome
		if len(s.pages) > 1 {
			switch s.pages[len(s.pages)-2] {
			case PageServices:
				cfg.Footer = SectionServices
			case PageProfile:
				cfg.Footer = SectionProfile
			}
		}
	case PageScheduleDetail:
		cfg.Footer = SectionHome
		for _, p := range s.pages {
			if p == PageServices {
				cfg.Footer = SectionServices
				break
			}
		}
	}
	return cfg
}

func (s Stack) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.pages)
}

func (s *Stack) UnmarshalJSON(data []byte) error {
	var history []Page
	if err := json.Unmarshal(data, &history); err != nil {
		return err
	}
	restored, err := FromPages(history)
	if err != nil {
		return err
	}
	*s = restored
	return nil
}

var searchTargets = map[string]Page{
	"home":            PageHome,
	"news":            PageNewsDetail,
	"schedule":        PageScheduleDetail,
	"services":        PageServices,
	"profile":         PageProfile,
	"primaryServices": PagePrimaryServices,
	"platforms":       PagePlatforms,
	"teachers":        PageTeachers,
	"maps":            PageMaps,
	"contacts":        PageContacts,
	"chats":           PageChats,
	"requests":        PageServices,
	"practice":        PageServices,
	"gradebook":       PageGradebook,
	"debts":           PageDebts,
	"theme":           PageTheme,
	"notifications":   PageNotifications,
	"about":           PageProfile,
	"support":         PageProfile,
	"improvements":    PageProfile,
	"usefulLinks":     PageServices,
}

// SearchTarget maps a search result id to the page it opens.
// Profile field ids open the profile; unknown ids fall back to home.
func SearchTarget(id string) Page {
	if p, ok := searchTargets[id]; ok {
		return p
	}
	if len(id) > len("profile-") && id[:len("profile-")] == "profile-" {
		return PageProfile
	}
	return PageHome
}
