package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/repository"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/maxuni/miniapp-backend/internal/worker"
	"github.com/rs/zerolog"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeSessions struct {
	mu   sync.Mutex
	rows map[int64]model.StoredSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{rows: make(map[int64]model.StoredSession)}
}

func (f *fakeSessions) Get(_ context.Context, userID int64) (*model.StoredSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[userID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Save(_ context.Context, s *model.StoredSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.rows[s.UserID] = *s
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

// fakeUniversity is an httptest university API that counts calls per path.
type fakeUniversity struct {
	*httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	linked   bool
	statusOK bool
	unlinkOK bool
	// hold, when set, parks student-data requests until it is closed.
	hold chan struct{}
}

func newFakeUniversity(t *testing.T) *fakeUniversity {
	t.Helper()
	u := &fakeUniversity{calls: make(map[string]int), linked: true, statusOK: true, unlinkOK: true}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *fakeUniversity) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	endpoint := parts[len(parts)-1]
	if len(parts) >= 4 && parts[2] == "teacher" {
		endpoint = "teacher"
	}

	u.mu.Lock()
	u.calls[endpoint]++
	linked, statusOK, unlinkOK, hold := u.linked, u.statusOK, u.unlinkOK, u.hold
	u.mu.Unlock()

	if hold != nil && isStudentData(endpoint) {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	switch endpoint {
	case "login":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(http.StatusUnauthorized, map[string]any{"detail": "Неверный логин или пароль"})
			return
		}
		writeJSON(http.StatusOK, map[string]any{"success": true})
	case "status":
		if !statusOK {
			writeJSON(http.StatusBadGateway, map[string]any{"message": "university offline"})
			return
		}
		writeJSON(http.StatusOK, map[string]any{"is_linked": linked})
	case "unlink":
		if !unlinkOK {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(http.StatusOK, map[string]any{"success": true})
	case "personal_data":
		writeJSON(http.StatusOK, map[string]any{"success": true, "data": map[string]any{"group": "КТ-41-23"}})
	case "services":
		writeJSON(http.StatusOK, map[string]any{"success": true, "services": []map[string]any{{"emoji": "📚", "key": "library", "name": "Библиотека"}}})
	case "platforms":
		writeJSON(http.StatusOK, map[string]any{"success": true, "platforms": []map[string]any{{"emoji": "🌐", "key": "moodle", "name": "Moodle", "url": "https://moodle.example"}}})
	case "teachers":
		writeJSON(http.StatusOK, map[string]any{"success": true, "teachers": []map[string]any{{"id": "t1", "name": "Иванов И.И."}}})
	case "teacher":
		writeJSON(http.StatusOK, map[string]any{"success": true, "departments": []string{"Кафедра информатики"}})
	case "contacts":
		writeJSON(http.StatusOK, map[string]any{"success": true, "deans": []any{}, "departments": []any{}})
	case "maps":
		writeJSON(http.StatusOK, map[string]any{"success": true, "buildings": []map[string]any{{"name": "Корпус Г", "latitude": 56.1, "longitude": 47.2}}})
	case "schedule":
		writeJSON(http.StatusOK, map[string]any{"success": true, "schedule": []map[string]any{
			{"id": "b", "start": "13:30", "end": "14:50", "title": "Физика", "date": "10.11"},
			{"id": "a", "start": "09:00", "end": "10:20", "title": "Правоведение", "date": "10.11"},
		}})
	case "universities":
		writeJSON(http.StatusOK, []map[string]any{{"id": 1, "name": "ЧГУ"}, {"id": "bad"}, {"id": 2, "name": "МГУ"}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func isStudentData(endpoint string) bool {
	switch endpoint {
	case "login", "status", "unlink", "universities":
		return false
	}
	return true
}

// holdData parks student-data requests until the returned release is called.
func (u *fakeUniversity) holdData(t *testing.T) (release func()) {
	t.Helper()
	hold := make(chan struct{})
	u.set(func(u *fakeUniversity) { u.hold = hold })

	var once sync.Once
	release = func() { once.Do(func() { close(hold) }) }
	t.Cleanup(release)
	return release
}

func (u *fakeUniversity) count(endpoint string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[endpoint]
}

func (u *fakeUniversity) total() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		n += c
	}
	return n
}

func (u *fakeUniversity) set(fn func(u *fakeUniversity)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u)
}

// ─── Wiring ─────────────────────────────────────────────────────────────────

type testEnv struct {
	uni       *fakeUniversity
	store     *cache.MemoryStore
	cache     *cache.Cache
	sessions  *fakeSessions
	auth      *AuthService
	portal    *PortalService
	nav       *NavigationService
	preloader *worker.Preloader
	session   *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		CacheTTL:   5 * time.Minute,
		StaleAfter: 4 * time.Minute,
	}

	uni := newFakeUniversity(t)
	api := upstream.NewClient(uni.URL, 5*time.Second, log)
	store := cache.NewMemoryStore()
	c := cache.New(store, cfg.CacheTTL)
	sessions := newFakeSessions()
	auth := NewAuthService(cfg, sessions)
	portal := NewPortalService(api, c, cfg.StaleAfter, 5*time.Second, log)
	nav := NewNavigationService(store, log)
	preloader := worker.NewPreloader(portal, c, worker.NewHub(), worker.PreloaderConfig{
		Interval:    time.Hour,
		MinInterval: 4 * time.Minute,
		Timeout:     5 * time.Second,
		Resources:   config.Resource.Tracked(),
	}, log)
	t.Cleanup(func() {
		preloader.Close()
		portal.Wait()
	})

	return &testEnv{
		uni:       uni,
		store:     store,
		cache:     c,
		sessions:  sessions,
		auth:      auth,
		portal:    portal,
		nav:       nav,
		preloader: preloader,
		session:   NewSessionService(api, auth, sessions, portal, nav, preloader, log),
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func loginRequest(userID int64) model.StudentLoginRequest {
	return model.StudentLoginRequest{
		UserID:         userID,
		UniversityID:   1,
		StudentEmail:   "student@example.edu",
		Password:       "secret",
		UniversityName: "ЧГУ",
	}
}
