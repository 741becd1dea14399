package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/repository"
)

// Common auth errors.
var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionInvalidated = errors.New("session invalidated")
)

// Claims extends JWT standard claims with the linked student.
type Claims struct {
	jwt.RegisteredClaims
	UserID       int64 `json:"user_id"`
	UniversityID int64 `json:"university_id"`
}

// SessionStore persists one session per MAX user.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*model.StoredSession, error)
	Save(ctx context.Context, s *model.StoredSession) error
	Delete(ctx context.Context, userID int64) error
}

// AuthService issues and checks BFF tokens.
type AuthService struct {
	cfg      *config.Config
	sessions SessionStore
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions, now: time.Now}
}

// GenerateToken signs a token for the user. The returned id must be stored
// with the session so older tokens stop working.
func (s *AuthService) GenerateToken(userID, universityID int64) (signed, tokenID string, err error) {
	tokenID = uuid.New().String()
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID:       userID,
		UniversityID: universityID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err = token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, tokenID, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateSession checks that tokenID belongs to the user's current session.
func (s *AuthService) ValidateSession(ctx context.Context, userID int64, tokenID string) error {
	stored, err := s.sessions.Get(ctx, userID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if stored.TokenID != tokenID {
		return ErrSessionInvalidated
	}
	return nil
}
