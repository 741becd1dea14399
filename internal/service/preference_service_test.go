package service

import (
	"context"
	"testing"

	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/repository"
	"github.com/rs/zerolog"
)

type fakePreferences struct {
	rows map[int64]repository.StoredPreferences
}

func (f *fakePreferences) Get(_ context.Context, userID int64) (*repository.StoredPreferences, error) {
	p, ok := f.rows[userID]
	if !ok {
		return nil, repository.ErrPreferencesNotFound
	}
	return &p, nil
}

func (f *fakePreferences) Upsert(_ context.Context, userID int64, p repository.StoredPreferences) error {
	f.rows[userID] = p
	return nil
}

func TestPreferences_Defaults(t *testing.T) {
	svc := NewPreferenceService(&fakePreferences{rows: map[int64]repository.StoredPreferences{}}, zerolog.Nop())

	p, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Theme != model.ThemeAuto {
		t.Errorf("theme = %s, want auto", p.Theme)
	}
	if len(p.Notifications) != 3 {
		t.Fatalf("notifications = %d, want 3", len(p.Notifications))
	}
	for _, n := range p.Notifications {
		if !n.Enabled {
			t.Errorf("%s disabled by default", n.ID)
		}
	}
}

func TestPreferences_UpdateMergesOverStored(t *testing.T) {
	repo := &fakePreferences{rows: map[int64]repository.StoredPreferences{
		1: {Theme: model.ThemeLight, Notifications: map[string]bool{model.NotificationGradeAdded: false}},
	}}
	svc := NewPreferenceService(repo, zerolog.Nop())

	dark := model.ThemeDark
	p, err := svc.Update(context.Background(), 1, model.UpdatePreferencesRequest{
		Theme: &dark,
		Notifications: map[string]bool{
			model.NotificationLessonSoon: false,
			"unknown_toggle":             true,
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Theme != model.ThemeDark {
		t.Errorf("theme = %s, want dark", p.Theme)
	}

	enabled := map[string]bool{}
	for _, n := range p.Notifications {
		enabled[n.ID] = n.Enabled
	}
	want := map[string]bool{
		model.NotificationLessonSoon:     false,
		model.NotificationScheduleChange: true,
		model.NotificationGradeAdded:     false,
	}
	for id, w := range want {
		if enabled[id] != w {
			t.Errorf("%s = %v, want %v", id, enabled[id], w)
		}
	}
	if _, ok := repo.rows[1].Notifications["unknown_toggle"]; ok {
		t.Error("unknown toggle persisted")
	}
}

func TestPreferences_UpdateWithoutThemeKeepsIt(t *testing.T) {
	repo := &fakePreferences{rows: map[int64]repository.StoredPreferences{
		2: {Theme: model.ThemeLight},
	}}
	svc := NewPreferenceService(repo, zerolog.Nop())

	p, err := svc.Update(context.Background(), 2, model.UpdatePreferencesRequest{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Theme != model.ThemeLight {
		t.Errorf("theme = %s, want light", p.Theme)
	}
}
