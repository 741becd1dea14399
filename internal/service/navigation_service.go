package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/navigation"
	"github.com/rs/zerolog"
)

// NavigationState is what the shell needs to render the current page.
type NavigationState struct {
	History []navigation.Page     `json:"history"`
	Page    navigation.PageConfig `json:"page"`
}

func stateOf(s navigation.Stack) NavigationState {
	return NavigationState{History: s.Pages(), Page: s.Config()}
}

// NavigationService keeps each user's page history in the cache store.
type NavigationService struct {
	store cache.Store
	log   zerolog.Logger
}

func NewNavigationService(store cache.Store, log zerolog.Logger) *NavigationService {
	return &NavigationService{
		store: store,
		log:   log.With().Str("component", "navigation_service").Logger(),
	}
}

// Current loads the user's history. A missing or unreadable history starts at home.
func (s *NavigationService) Current(ctx context.Context, userID int64) (NavigationState, error) {
	stack, err := s.load(ctx, userID)
	if err != nil {
		return NavigationState{}, err
	}
	return stateOf(stack), nil
}

// Push opens page on top of the history.
func (s *NavigationService) Push(ctx context.Context, userID int64, page navigation.Page) (NavigationState, error) {
	return s.update(ctx, userID, func(st *navigation.Stack) error { return st.Push(page) })
}

// Back pops the top page. Going back from the root is a no-op.
func (s *NavigationService) Back(ctx context.Context, userID int64) (NavigationState, error) {
	return s.update(ctx, userID, func(st *navigation.Stack) error {
		st.Pop()
		return nil
	})
}

// Root replaces the history with page, as the footer tabs do.
func (s *NavigationService) Root(ctx context.Context, userID int64, page navigation.Page) (NavigationState, error) {
	return s.update(ctx, userID, func(st *navigation.Stack) error { return st.ReplaceRoot(page) })
}

// OpenSearchResult pushes the page a search hit points to.
func (s *NavigationService) OpenSearchResult(ctx context.Context, userID int64, resultID string) (NavigationState, error) {
	return s.Push(ctx, userID, navigation.SearchTarget(resultID))
}

// Reset stores the initial history for a user entering or leaving a session.
func (s *NavigationService) Reset(ctx context.Context, userID int64, hasSession bool) error {
	return s.save(ctx, userID, navigation.New(hasSession))
}

func (s *NavigationService) update(ctx context.Context, userID int64, fn func(*navigation.Stack) error) (NavigationState, error) {
	stack, err := s.load(ctx, userID)
	if err != nil {
		return NavigationState{}, err
	}
	if err := fn(&stack); err != nil {
		return NavigationState{}, err
	}
	if err := s.save(ctx, userID, stack); err != nil {
		return NavigationState{}, err
	}
	return stateOf(stack), nil
}

func (s *NavigationService) load(ctx context.Context, userID int64) (navigation.Stack, error) {
	raw, err := s.store.Get(ctx, s.key(userID))
	if errors.Is(err, cache.ErrMiss) {
		return navigation.New(true), nil
	}
	if err != nil {
		return navigation.Stack{}, fmt.Errorf("load navigation: %w", err)
	}

	var stack navigation.Stack
	if err := json.Unmarshal(raw, &stack); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Stored navigation is invalid, starting at home")
		return navigation.New(true), nil
	}
	return stack, nil
}

func (s *NavigationService) save(ctx context.Context, userID int64, stack navigation.Stack) error {
	raw, err := json.Marshal(stack)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key(userID), raw, 0); err != nil {
		return fmt.Errorf("save navigation: %w", err)
	}
	return nil
}

func (s *NavigationService) key(userID int64) string {
	return config.CacheKey.NavigationKey(strconv.FormatInt(userID, 10))
}
