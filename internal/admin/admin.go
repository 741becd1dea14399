// Package admin edits the per-university endpoint configuration.
package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maxuni/miniapp-backend/internal/model"
)

var (
	ErrUnknownFeature = errors.New("admin: unknown feature")
	ErrEmptyBaseURL   = errors.New("admin: base url must not be empty")
)

// Feature is a toggleable upstream capability.
type Feature struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DefaultEndpoint string `json:"default_endpoint"`
}

var catalog = []Feature{
	{
		ID:              "students_login",
		Name:            "Логин студентов",
		Description:     "Выполнить логин на сайте университета",
		DefaultEndpoint: "/students/login",
	},
	{
		ID:              "students_teachers",
		Name:            "Список преподавателей",
		Description:     "Получить список всех преподавателей",
		DefaultEndpoint: "/students/teachers",
	},
	{
		ID:              "students_personal_data",
		Name:            "Данные студента",
		Description:     "Получить личные данные студента",
		DefaultEndpoint: "/students/personal_data",
	},
	{
		ID:              "students_teacher_info",
		Name:            "Информация о преподавателе",
		Description:     "Получить кафедры и фото преподавателя",
		DefaultEndpoint: "/students/teacher_info",
	},
	{
		ID:              "students_schedule",
		Name:            "Расписание",
		Description:     "Получить расписание занятий",
		DefaultEndpoint: "/students/schedule",
	},
	{
		ID:              "students_contacts",
		Name:            "Контакты",
		Description:     "Получить контакты деканатов и кафедр",
		DefaultEndpoint: "/students/contacts",
	},
	{
		ID:              "students_platforms",
		Name:            "Веб-платформы",
		Description:     "Получить список полезных веб-платформ",
		DefaultEndpoint: "/students/platforms",
	},
	{
		ID:              "students_maps",
		Name:            "Карты корпусов",
		Description:     "Получить ссылки на карты учебных корпусов",
		DefaultEndpoint: "/students/maps",
	},
}

// Features returns the catalog in display order.
func Features() []Feature {
	return append([]Feature(nil), catalog...)
}

// Lookup finds a feature by id.
func Lookup(id string) (Feature, bool) {
	for _, f := range catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// FeatureState is one row of Status.
type FeatureState struct {
	Feature
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Editor applies admin edits to a config value.
type Editor struct {
	cfg model.UniversityConfig
}

// NewEditor copies cfg so edits never alias the caller's map.
func NewEditor(cfg model.UniversityConfig) *Editor {
	endpoints := make(map[string]string, len(cfg.Endpoints))
	for k, v := range cfg.Endpoints {
		endpoints[k] = v
	}
	cfg.Endpoints = endpoints
	return &Editor{cfg: cfg}
}

// Config returns the edited config.
func (e *Editor) Config() model.UniversityConfig {
	return e.cfg
}

// Enable turns a feature on with its default endpoint, keeping an existing one.
func (e *Editor) Enable(id string) error {
	f, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	if _, exists := e.cfg.Endpoints[id]; !exists {
		e.cfg.Endpoints[id] = f.DefaultEndpoint
	}
	return nil
}

// Disable turns a feature off.
func (e *Editor) Disable(id string) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	delete(e.cfg.Endpoints, id)
	return nil
}

// SetEndpoint overrides the path of an enabled or disabled feature.
// A blank path leaves the config untouched.
func (e *Editor) SetEndpoint(id, path string) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	e.cfg.Endpoints[id] = path
	return nil
}

// SetBaseURL replaces the university API base URL.
func (e *Editor) SetBaseURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyBaseURL
	}
	e.cfg.UniversityAPIBaseURL = url
	return nil
}

// Status lists every catalog feature with its current state.
// Endpoints for ids outside the catalog are appended, sorted by id.
func (e *Editor) Status() []FeatureState {
	states := make([]FeatureState, 0, len(catalog))
	for _, f := range catalog {
		path, enabled := e.cfg.Endpoints[f.ID]
		states = append(states, FeatureState{Feature: f, Enabled: enabled, Endpoint: path})
	}

	var extra []string
	for id := range e.cfg.Endpoints {
		if _, ok := Lookup(id); !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		states = append(states, FeatureState{
			Feature:  Feature{ID: id, Name: id},
			Enabled:  true,
			Endpoint: e.cfg.Endpoints[id],
		})
	}
	return states
}
