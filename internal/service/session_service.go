package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/repository"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/rs/zerolog"
)

// Background is the per-user refresh loop the session drives.
type Background interface {
	Start(userID int64) bool
	Resume(userID int64) bool
	Stop(userID int64) bool
	Forget(userID int64)
	Trigger(userID int64, force bool) bool
}

// SessionService links MAX users to student accounts and tears the link down.
type SessionService struct {
	api        *upstream.Client
	auth       *AuthService
	sessions   SessionStore
	portal     *PortalService
	nav        *NavigationService
	background Background
	log        zerolog.Logger
}

func NewSessionService(
	api *upstream.Client,
	auth *AuthService,
	sessions SessionStore,
	portal *PortalService,
	nav *NavigationService,
	background Background,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		api:        api,
		auth:       auth,
		sessions:   sessions,
		portal:     portal,
		nav:        nav,
		background: background,
		log:        log.With().Str("component", "session_service").Logger(),
	}
}

// Login links the account upstream, stores the session and warms the caches.
// Upstream failures come back as *upstream.APIError with a message for the student.
func (s *SessionService) Login(ctx context.Context, req model.StudentLoginRequest) (*model.StudentLoginResponse, error) {
	req.StudentEmail = strings.TrimSpace(req.StudentEmail)
	if err := s.api.LoginStudent(ctx, req); err != nil {
		s.log.Info().Err(err).Int64("user_id", req.UserID).Msg("Upstream login rejected")
		return nil, err
	}

	token, tokenID, err := s.auth.GenerateToken(req.UserID, req.UniversityID)
	if err != nil {
		return nil, err
	}

	session := &model.StoredSession{
		UserID:       req.UserID,
		UniversityID: req.UniversityID,
		Email:        req.StudentEmail,
		TokenID:      tokenID,
	}
	if name := strings.TrimSpace(req.UniversityName); name != "" {
		session.UniversityName = &name
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := s.nav.Reset(ctx, req.UserID, true); err != nil {
		s.log.Warn().Err(err).Int64("user_id", req.UserID).Msg("Failed to reset navigation")
	}

	// The forced pass claims the user's slot before the loop's first check,
	// so login runs exactly one pass.
	s.background.Forget(req.UserID)
	s.background.Trigger(req.UserID, true)
	s.background.Start(req.UserID)

	s.log.Info().Int64("user_id", req.UserID).Int64("university_id", req.UniversityID).Msg("Student logged in")
	return &model.StudentLoginResponse{Token: token, Session: *session}, nil
}

// Resume restarts background updates for a session restored after a server restart.
func (s *SessionService) Resume(userID int64) {
	if s.background.Resume(userID) {
		s.log.Debug().Int64("user_id", userID).Msg("Background updates resumed")
	}
}

// Session returns the stored session of the user.
func (s *SessionService) Session(ctx context.Context, userID int64) (*model.StoredSession, error) {
	session, err := s.sessions.Get(ctx, userID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNoSession
	}
	return session, err
}

// Logout unlinks the account and forgets everything held for the user.
// An upstream unlink failure is logged and does not stop the local cleanup.
func (s *SessionService) Logout(ctx context.Context, userID int64) error {
	if err := s.api.UnlinkStudent(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Upstream unlink failed")
	}
	if err := s.teardown(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("Student logged out")
	return nil
}

// VerifyStatus asks the upstream whether the user is still linked. When it
// says no, the session is torn down and ErrSessionInvalidated is returned.
// Upstream errors never invalidate.
func (s *SessionService) VerifyStatus(ctx context.Context, userID int64) (*model.StudentStatus, error) {
	status, err := s.api.StudentStatus(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Status check failed, keeping session")
		return nil, err
	}
	if status.IsLinked {
		return status, nil
	}

	s.log.Info().Int64("user_id", userID).Msg("Student no longer linked, invalidating session")
	if err := s.teardown(ctx, userID); err != nil {
		return status, err
	}
	return status, ErrSessionInvalidated
}

func (s *SessionService) teardown(ctx context.Context, userID int64) error {
	s.background.Stop(userID)
	s.background.Forget(userID)

	var errs []error
	if n, err := s.portal.ClearUser(ctx, userID); err != nil {
		errs = append(errs, fmt.Errorf("clear cache: %w", err))
	} else {
		s.log.Debug().Int64("user_id", userID).Int("keys", n).Msg("Cache cleared")
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		errs = append(errs, fmt.Errorf("delete session: %w", err))
	}
	if err := s.nav.Reset(ctx, userID, false); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
