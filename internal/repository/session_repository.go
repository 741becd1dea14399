package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxuni/miniapp-backend/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the linked session of each MAX user.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Get retrieves the session of a user.
func (r *SessionRepository) Get(ctx context.Context, userID int64) (*model.StoredSession, error) {
	s := &model.StoredSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, university_id, email, university_name, token_id::text, created_at, updated_at
		 FROM student_sessions WHERE user_id = $1`, userID,
	).Scan(&s.UserID, &s.UniversityID, &s.Email, &s.UniversityName, &s.TokenID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save creates or replaces the session of s.UserID. A new login on another
// device overwrites the token id, which logs the old device out.
func (r *SessionRepository) Save(ctx context.Context, s *model.StoredSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO student_sessions (user_id, university_id, email, university_name, token_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		     university_id = EXCLUDED.university_id,
		     email = EXCLUDED.email,
		     university_name = EXCLUDED.university_name,
		     token_id = EXCLUDED.token_id,
		     updated_at = NOW()
		 RETURNING created_at, updated_at`,
		s.UserID, s.UniversityID, s.Email, s.UniversityName, s.TokenID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Delete removes the session of a user. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM student_sessions WHERE user_id = $1`, userID)
	return err
}

// ListUserIDs returns every user with a stored session.
func (r *SessionRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM student_sessions ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}
