package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxuni/miniapp-backend/internal/model"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

// StoredPreferences is the raw row: the theme and the notification toggles by id.
type StoredPreferences struct {
	Theme         model.Theme
	Notifications map[string]bool
}

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID int64) (*StoredPreferences, error) {
	var (
		p   StoredPreferences
		raw []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT theme, notifications FROM student_preferences WHERE user_id = $1`, userID,
	).Scan(&p.Theme, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Notifications); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, userID int64, p StoredPreferences) error {
	raw, err := json.Marshal(p.Notifications)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO student_preferences (user_id, theme, notifications, updated_at) VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme, notifications = EXCLUDED.notifications, updated_at = NOW()`,
		userID, p.Theme, raw)
	return err
}
