package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/rs/zerolog"
)

type portalFixture struct {
	portal *PortalService
	uni    *fakeUniversity
	cache  *cache.Cache
	now    time.Time
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	f := &portalFixture{now: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }

	f.uni = newFakeUniversity(t)
	api := upstream.NewClient(f.uni.URL, 5*time.Second, zerolog.Nop())
	f.cache = cache.New(cache.NewMemoryStore(), 5*time.Minute, cache.WithClock(clock))
	f.portal = NewPortalService(api, f.cache, 4*time.Minute, 5*time.Second, zerolog.Nop())
	f.portal.now = clock
	t.Cleanup(f.portal.Wait)
	return f
}

func TestPortal_MissFetchesAndCaches(t *testing.T) {
	f := newPortalFixture(t)
	ctx := context.Background()

	pd, err := f.portal.Maps(ctx, 1)
	if err != nil {
		t.Fatalf("maps: %v", err)
	}
	maps, ok := pd.Data.(model.Maps)
	if !ok || len(maps.Buildings) != 1 {
		t.Fatalf("data = %#v", pd.Data)
	}
	if pd.CachedAt != f.now.UnixMilli() {
		t.Errorf("cached_at = %d, want %d", pd.CachedAt, f.now.UnixMilli())
	}

	_, _ = f.portal.Maps(ctx, 1)
	if got := f.uni.count("maps"); got != 1 {
		t.Errorf("maps fetched %d times, want 1", got)
	}
}

func TestPortal_StaleHitServedAndRefreshed(t *testing.T) {
	f := newPortalFixture(t)
	ctx := context.Background()

	_, _ = f.portal.Teachers(ctx, 1)
	f.now = f.now.Add(4*time.Minute + 30*time.Second)

	pd, err := f.portal.Teachers(ctx, 1)
	if err != nil {
		t.Fatalf("teachers: %v", err)
	}
	if !pd.Stale {
		t.Error("hit past the stale threshold not flagged")
	}

	f.portal.Wait()
	if got := f.uni.count("teachers"); got != 2 {
		t.Errorf("teachers fetched %d times, want 2", got)
	}
	age, ok, _ := f.cache.Age(ctx, cache.Key{Resource: config.Resource.Teachers, UserID: 1})
	if !ok || age != 0 {
		t.Errorf("after refresh age = %v ok = %v, want a fresh entry", age, ok)
	}
}

func TestPortal_ClearUserDropsRefreshInFlight(t *testing.T) {
	f := newPortalFixture(t)
	ctx := context.Background()
	key := cache.Key{Resource: config.Resource.Teachers, UserID: 1}

	_, _ = f.portal.Teachers(ctx, 1)
	f.now = f.now.Add(4*time.Minute + 30*time.Second)

	release := f.uni.holdData(t)
	if pd, _ := f.portal.Teachers(ctx, 1); !pd.Stale {
		t.Fatal("expected a stale hit to start a refresh")
	}
	waitFor(t, "refresh request", func() bool { return f.uni.count("teachers") == 2 })

	if _, err := f.portal.ClearUser(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	release()
	f.portal.Wait()

	if _, ok, _ := f.cache.Age(ctx, key); ok {
		t.Error("refresh started before ClearUser wrote its result back")
	}

	// Fetches started after the clear are cached as usual.
	if _, err := f.portal.Teachers(ctx, 1); err != nil {
		t.Fatalf("teachers: %v", err)
	}
	if _, ok, _ := f.cache.Age(ctx, key); !ok {
		t.Error("fetch after ClearUser was not cached")
	}
}

func TestPortal_ExpiredEntryRefetchedInline(t *testing.T) {
	f := newPortalFixture(t)
	ctx := context.Background()

	_, _ = f.portal.Contacts(ctx, 1)
	f.now = f.now.Add(6 * time.Minute)

	pd, _ := f.portal.Contacts(ctx, 1)
	if pd.Stale {
		t.Error("live fetch flagged stale")
	}
	if got := f.uni.count("contacts"); got != 2 {
		t.Errorf("contacts fetched %d times, want 2", got)
	}
}

func TestPortal_FailureFallsBackToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"Сайт университета недоступен"}`))
	}))
	t.Cleanup(srv.Close)

	api := upstream.NewClient(srv.URL, time.Second, zerolog.Nop())
	p := NewPortalService(api, cache.New(cache.NewMemoryStore(), 5*time.Minute), 4*time.Minute, time.Second, zerolog.Nop())

	pd, err := p.Services(context.Background(), 1)
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	if pd.Error != "Сайт университета недоступен" {
		t.Errorf("error = %q", pd.Error)
	}
	bundle, ok := pd.Data.(model.ServicesBundle)
	if !ok || bundle.Services == nil || bundle.Platforms == nil {
		t.Errorf("fallback = %#v, want empty non-nil lists", pd.Data)
	}
}

func TestPortal_UnauthorizedIsNotLinked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	api := upstream.NewClient(srv.URL, time.Second, zerolog.Nop())
	p := NewPortalService(api, cache.New(cache.NewMemoryStore(), 5*time.Minute), 4*time.Minute, time.Second, zerolog.Nop())

	if _, err := p.Profile(context.Background(), 1); !errors.Is(err, ErrNotLinked) {
		t.Errorf("err = %v, want ErrNotLinked", err)
	}
}

func TestPortal_ScheduleRanges(t *testing.T) {
	f := newPortalFixture(t)
	ctx := context.Background()

	pd, err := f.portal.Schedule(ctx, 1, "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	days, ok := pd.Data.([]model.ScheduleDay)
	if !ok || len(days) != 1 || days[0].Lessons[0].ID != "a" {
		t.Fatalf("days = %#v", pd.Data)
	}
	if _, ok, _ := f.cache.Age(ctx, cache.Key{Resource: config.Resource.Schedule, UserID: 1}); !ok {
		t.Error("default window not cached under the plain schedule key")
	}

	// The default window spelled out hits the same entry.
	_, _ = f.portal.Schedule(ctx, 1, "10.11-12.11")
	if got := f.uni.count("schedule"); got != 1 {
		t.Errorf("schedule fetched %d times, want 1", got)
	}

	_, _ = f.portal.Schedule(ctx, 1, "17.11-23.11")
	if _, ok, _ := f.cache.Age(ctx, cache.Key{Resource: config.Resource.Schedule, UserID: 1, Qualifier: "17.11-23.11"}); !ok {
		t.Error("custom range not cached under its qualifier")
	}

	if _, err := f.portal.Schedule(ctx, 1, "2025-11-10"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestPortal_LoadResourceUnknown(t *testing.T) {
	f := newPortalFixture(t)
	if err := f.portal.LoadResource(context.Background(), 1, "grades"); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("err = %v, want ErrUnknownResource", err)
	}
}

func TestPortal_Universities(t *testing.T) {
	f := newPortalFixture(t)
	got, err := f.portal.Universities(context.Background())
	if err != nil {
		t.Fatalf("universities: %v", err)
	}
	want := []model.University{{ID: 1, Name: "ЧГУ"}, {ID: 2, Name: "МГУ"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("universities = %v, want %v", got, want)
	}
}

func TestPortal_News(t *testing.T) {
	p := &PortalService{}

	items, total := p.News(2, 5)
	if total != len(newsFeed) {
		t.Errorf("total = %d", total)
	}
	if len(items) != 5 || items[0].ID != "news-006" {
		t.Errorf("page 2 = %v", items)
	}
	if items, _ := p.News(100, 5); len(items) != 0 {
		t.Errorf("page past the end = %v", items)
	}
	if _, ok := p.NewsItem("news-001"); !ok {
		t.Error("news-001 not found")
	}
}

func TestFormatDateRange(t *testing.T) {
	from := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)
	if got := FormatDateRange(from, from.AddDate(0, 0, 2)); got != "30.12-01.01" {
		t.Errorf("range = %q", got)
	}
}

func TestValidDateRange(t *testing.T) {
	tests := map[string]bool{
		"10.11-12.11": true,
		"30.12-01.01": true,
		"1.11-12.11":  false,
		"10.13-12.11": false,
		"10.11":       false,
		"":            false,
	}
	for in, want := range tests {
		if got := ValidDateRange(in); got != want {
			t.Errorf("ValidDateRange(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	items := []model.ScheduleItem{
		{ID: "3", Date: "11.11", Start: "10:10"},
		{ID: "2", Date: "10.11", Start: "13:30"},
		{ID: "1", Date: "10.11", Start: "9:00"},
		{ID: "4", Date: "11.11", Start: "08:20"},
	}

	days := GroupByDate(items)
	if len(days) != 2 || days[0].Date != "11.11" || days[1].Date != "10.11" {
		t.Fatalf("days = %+v", days)
	}
	if days[0].Lessons[0].ID != "4" || days[1].Lessons[0].ID != "1" {
		t.Errorf("lessons not sorted by start: %+v", days)
	}
	if got := GroupByDate(nil); got == nil || len(got) != 0 {
		t.Errorf("GroupByDate(nil) = %#v, want empty slice", got)
	}
}
