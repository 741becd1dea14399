package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/navigation"
	"github.com/maxuni/miniapp-backend/internal/upstream"
)

func TestLogin_OnePassWarmsEveryCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.session.Login(ctx, loginRequest(42))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}

	waitFor(t, "login pass", func() bool {
		_, done := env.preloader.LastResult(42)
		return done && !env.preloader.InProgress(42)
	})

	for _, endpoint := range []string{"personal_data", "services", "platforms", "teachers", "contacts", "maps", "schedule"} {
		if got := env.uni.count(endpoint); got != 1 {
			t.Errorf("%s called %d times, want 1", endpoint, got)
		}
	}
	for _, r := range config.Resource.Tracked() {
		if _, ok, _ := env.cache.Age(ctx, cache.Key{Resource: r, UserID: 42}); !ok {
			t.Errorf("%s not cached after login", r)
		}
	}
	if !env.preloader.Running(42) {
		t.Error("background loop not started")
	}

	before := env.uni.total()
	pd, err := env.portal.Teachers(ctx, 42)
	if err != nil {
		t.Fatalf("teachers: %v", err)
	}
	if pd.Stale || pd.Error != "" {
		t.Errorf("page = %+v, want fresh hit", pd)
	}
	if env.uni.total() != before {
		t.Errorf("page read within TTL made %d upstream calls", env.uni.total()-before)
	}
}

func TestLogin_StoresSessionAndResetsNavigation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _ = env.nav.Push(ctx, 7, navigation.PageGradebook)

	resp, err := env.session.Login(ctx, loginRequest(7))
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	stored, err := env.sessions.Get(ctx, 7)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if stored.UniversityName == nil || *stored.UniversityName != "ЧГУ" {
		t.Errorf("university name = %v", stored.UniversityName)
	}

	claims, err := env.auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := env.auth.ValidateSession(ctx, 7, claims.ID); err != nil {
		t.Errorf("fresh token rejected: %v", err)
	}

	state, _ := env.nav.Current(ctx, 7)
	if len(state.History) != 1 || state.History[0] != navigation.PageHome {
		t.Errorf("history = %v, want [home]", state.History)
	}
}

func TestLogin_SecondDeviceInvalidatesFirstToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, _ := env.session.Login(ctx, loginRequest(3))
	second, _ := env.session.Login(ctx, loginRequest(3))

	c1, _ := env.auth.ValidateToken(first.Token)
	c2, _ := env.auth.ValidateToken(second.Token)

	if err := env.auth.ValidateSession(ctx, 3, c1.ID); !errors.Is(err, ErrSessionInvalidated) {
		t.Errorf("old token: err = %v, want ErrSessionInvalidated", err)
	}
	if err := env.auth.ValidateSession(ctx, 3, c2.ID); err != nil {
		t.Errorf("new token: %v", err)
	}
}

func TestLogin_UpstreamRejectionKeepsMessage(t *testing.T) {
	env := newTestEnv(t)
	req := loginRequest(5)
	req.Password = "wrong"

	_, err := env.session.Login(context.Background(), req)
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *upstream.APIError", err)
	}
	if apiErr.Message != "Неверный логин или пароль" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if _, err := env.sessions.Get(context.Background(), 5); err == nil {
		t.Error("session stored for rejected login")
	}
	if env.preloader.Running(5) {
		t.Error("background loop started for rejected login")
	}
}

func seedUserCache(t *testing.T, env *testEnv, userID int64) {
	t.Helper()
	ctx := context.Background()
	for _, r := range config.Resource.Tracked() {
		if err := env.cache.Write(ctx, cache.Key{Resource: r, UserID: userID}, "x"); err != nil {
			t.Fatal(err)
		}
	}
	_ = env.cache.Write(ctx, cache.Key{Resource: config.Resource.TeacherInfo, UserID: userID, Qualifier: "t1"}, "x")
	_ = env.cache.Write(ctx, cache.Key{Resource: config.Resource.Schedule, UserID: userID, Qualifier: "01.12-07.12"}, "x")
}

func TestVerifyStatus_NotLinkedClearsEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.session.Login(ctx, loginRequest(12)); err != nil {
		t.Fatalf("login: %v", err)
	}
	waitFor(t, "login pass", func() bool { return !env.preloader.InProgress(12) })

	seedUserCache(t, env, 12)
	seedUserCache(t, env, 123)
	env.uni.set(func(u *fakeUniversity) { u.linked = false })

	_, err := env.session.VerifyStatus(ctx, 12)
	if !errors.Is(err, ErrSessionInvalidated) {
		t.Fatalf("err = %v, want ErrSessionInvalidated", err)
	}

	for _, r := range config.Resource.All() {
		keys, _ := env.store.Keys(ctx, config.CacheKey.ResourceKey(r, "12"))
		for _, k := range keys {
			if config.CacheKey.IsResourceKey(k, r, "12") {
				t.Errorf("key %s survived invalidation", k)
			}
		}
	}
	if _, ok, _ := env.cache.Age(ctx, cache.Key{Resource: config.Resource.Profile, UserID: 123}); !ok {
		t.Error("another user's cache was cleared")
	}
	if _, err := env.sessions.Get(ctx, 12); err == nil {
		t.Error("session kept after invalidation")
	}
	if env.preloader.Running(12) {
		t.Error("background loop kept after invalidation")
	}
	if env.preloader.Visibility().Listeners(12) != 0 {
		t.Error("visibility listener kept after invalidation")
	}
	state, _ := env.nav.Current(ctx, 12)
	if state.Page.Page != navigation.PageLogin {
		t.Errorf("page = %s, want login", state.Page.Page)
	}
}

func TestVerifyStatus_PassInFlightCannotRestoreCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	release := env.uni.holdData(t)
	if _, err := env.session.Login(ctx, loginRequest(7)); err != nil {
		t.Fatalf("login: %v", err)
	}
	waitFor(t, "login pass requests", func() bool { return env.uni.count("maps") == 1 })
	if !env.preloader.InProgress(7) {
		t.Fatal("login pass should still be in flight")
	}

	env.uni.set(func(u *fakeUniversity) { u.linked = false })
	if _, err := env.session.VerifyStatus(ctx, 7); !errors.Is(err, ErrSessionInvalidated) {
		t.Fatalf("err = %v, want ErrSessionInvalidated", err)
	}
	if env.preloader.InProgress(7) {
		t.Error("pass slot still held after invalidation")
	}

	release()
	env.preloader.Close()
	env.portal.Wait()

	for _, r := range config.Resource.All() {
		keys, _ := env.store.Keys(ctx, config.CacheKey.ResourceKey(r, "7"))
		for _, k := range keys {
			if config.CacheKey.IsResourceKey(k, r, "7") {
				t.Errorf("key %s written back after invalidation", k)
			}
		}
	}
	if _, ok := env.preloader.LastResult(7); ok {
		t.Error("cancelled pass recorded a result")
	}
}

func TestLogout_PassInFlightCannotRestoreCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	release := env.uni.holdData(t)
	_, _ = env.session.Login(ctx, loginRequest(17))
	waitFor(t, "login pass requests", func() bool { return env.uni.count("teachers") == 1 })

	if err := env.session.Logout(ctx, 17); err != nil {
		t.Fatalf("logout: %v", err)
	}
	release()
	env.preloader.Close()

	for _, r := range config.Resource.Tracked() {
		if _, ok, _ := env.cache.Age(ctx, cache.Key{Resource: r, UserID: 17}); ok {
			t.Errorf("%s cached again after logout", r)
		}
	}
}

func TestResume_StartsLoopOnce(t *testing.T) {
	env := newTestEnv(t)

	env.session.Resume(21)
	if !env.preloader.Running(21) {
		t.Fatal("loop not resumed")
	}
	env.session.Resume(21)
	if env.preloader.ActiveLoops() != 1 {
		t.Errorf("ActiveLoops = %d, want 1", env.preloader.ActiveLoops())
	}
}

func TestVerifyStatus_UpstreamErrorKeepsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _ = env.session.Login(ctx, loginRequest(8))
	waitFor(t, "login pass", func() bool { return !env.preloader.InProgress(8) })
	env.uni.set(func(u *fakeUniversity) { u.statusOK = false })

	_, err := env.session.VerifyStatus(ctx, 8)
	if err == nil || errors.Is(err, ErrSessionInvalidated) {
		t.Fatalf("err = %v, want upstream error", err)
	}
	if _, err := env.sessions.Get(ctx, 8); err != nil {
		t.Error("session removed on upstream error")
	}
	if !env.preloader.Running(8) {
		t.Error("background loop stopped on upstream error")
	}
}

func TestLogout_UnlinkFailureStillCleansUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _ = env.session.Login(ctx, loginRequest(9))
	waitFor(t, "login pass", func() bool { return !env.preloader.InProgress(9) })
	env.uni.set(func(u *fakeUniversity) { u.unlinkOK = false })

	if err := env.session.Logout(ctx, 9); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if env.uni.count("unlink") != 1 {
		t.Errorf("unlink called %d times", env.uni.count("unlink"))
	}
	if _, ok, _ := env.cache.Age(ctx, cache.Key{Resource: config.Resource.Maps, UserID: 9}); ok {
		t.Error("cache kept after logout")
	}
	if _, err := env.session.Session(ctx, 9); !errors.Is(err, ErrNoSession) {
		t.Errorf("session err = %v, want ErrNoSession", err)
	}
	if env.preloader.Running(9) {
		t.Error("loop kept after logout")
	}
}
