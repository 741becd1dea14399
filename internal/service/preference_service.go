package service

import (
	"context"
	"errors"

	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/repository"
	"github.com/rs/zerolog"
)

// PreferenceStore persists theme and notification toggles.
type PreferenceStore interface {
	Get(ctx context.Context, userID int64) (*repository.StoredPreferences, error)
	Upsert(ctx context.Context, userID int64, p repository.StoredPreferences) error
}

type PreferenceService struct {
	repo PreferenceStore
	log  zerolog.Logger
}

func NewPreferenceService(repo PreferenceStore, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{
		repo: repo,
		log:  log.With().Str("component", "preference_service").Logger(),
	}
}

// Get returns the user's preferences merged over the defaults.
func (s *PreferenceService) Get(ctx context.Context, userID int64) (*model.Preferences, error) {
	stored, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(userID, stored), nil
}

// Update applies the fields present in req. Unknown notification ids are ignored.
func (s *PreferenceService) Update(ctx context.Context, userID int64, req model.UpdatePreferencesRequest) (*model.Preferences, error) {
	stored, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		stored.Theme = *req.Theme
	}
	for _, n := range model.DefaultNotificationSettings() {
		if enabled, ok := req.Notifications[n.ID]; ok {
			stored.Notifications[n.ID] = enabled
		}
	}

	if err := s.repo.Upsert(ctx, userID, stored); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to save preferences")
		return nil, err
	}
	return s.view(userID, stored), nil
}

func (s *PreferenceService) load(ctx context.Context, userID int64) (repository.StoredPreferences, error) {
	stored, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return repository.StoredPreferences{Theme: model.ThemeAuto, Notifications: map[string]bool{}}, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to load preferences")
		return repository.StoredPreferences{}, err
	}
	if stored.Notifications == nil {
		stored.Notifications = map[string]bool{}
	}
	if stored.Theme == "" {
		stored.Theme = model.ThemeAuto
	}
	return *stored, nil
}

func (s *PreferenceService) view(userID int64, p repository.StoredPreferences) *model.Preferences {
	return &model.Preferences{
		UserID:        userID,
		Theme:         p.Theme,
		Notifications: model.MergeNotificationSettings(p.Notifications),
	}
}
