package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Portal errors.
var (
	ErrNotLinked       = errors.New("student is not linked")
	ErrUnknownResource = errors.New("unknown resource")
	ErrInvalidRange    = errors.New("invalid date range")
)

// scheduleDays is how many days the preloaded schedule covers, today included.
const scheduleDays = 3

// PortalService serves page data from the per-resource cache and keeps it fresh.
type PortalService struct {
	api        *upstream.Client
	cache      *cache.Cache
	staleAfter time.Duration
	timeout    time.Duration
	now        func() time.Time
	log        zerolog.Logger

	mu         sync.Mutex
	refreshing map[string]struct{}
	wg         sync.WaitGroup

	// gate orders cache writes against ClearUser. A write holds the read
	// side and lands only while the user's generation is the one it started
	// under. ClearUser bumps the generation under the write side.
	gate        sync.RWMutex
	generations map[int64]uint64
}

// NewPortalService creates a PortalService. Stale hits are refreshed in the
// background with the given per-refresh timeout.
func NewPortalService(api *upstream.Client, c *cache.Cache, staleAfter, timeout time.Duration, log zerolog.Logger) *PortalService {
	return &PortalService{
		api:         api,
		cache:       c,
		staleAfter:  staleAfter,
		timeout:     timeout,
		now:         time.Now,
		log:         log.With().Str("component", "portal_service").Logger(),
		refreshing:  make(map[string]struct{}),
		generations: make(map[int64]uint64),
	}
}

// ─── Cached pages ───────────────────────────────────────────────────────────

func (s *PortalService) Profile(ctx context.Context, userID int64) (model.PageData, error) {
	return readThrough(ctx, s, s.key(config.Resource.Profile, userID, ""), model.PersonalData{}, func(ctx context.Context) (model.PersonalData, error) {
		return s.api.PersonalData(ctx, userID)
	})
}

func (s *PortalService) Services(ctx context.Context, userID int64) (model.PageData, error) {
	empty := model.ServicesBundle{Services: []model.ServiceItem{}, Platforms: []model.Platform{}}
	return readThrough(ctx, s, s.key(config.Resource.Services, userID, ""), empty, func(ctx context.Context) (model.ServicesBundle, error) {
		return s.fetchServices(ctx, userID)
	})
}

func (s *PortalService) Teachers(ctx context.Context, userID int64) (model.PageData, error) {
	return readThrough(ctx, s, s.key(config.Resource.Teachers, userID, ""), []model.TeacherListItem{}, func(ctx context.Context) ([]model.TeacherListItem, error) {
		return s.api.Teachers(ctx, userID)
	})
}

func (s *PortalService) Contacts(ctx context.Context, userID int64) (model.PageData, error) {
	empty := model.Contacts{Deans: []model.DeanContact{}, Departments: []model.DepartmentContact{}}
	return readThrough(ctx, s, s.key(config.Resource.Contacts, userID, ""), empty, func(ctx context.Context) (model.Contacts, error) {
		c, err := s.api.Contacts(ctx, userID)
		if err != nil {
			return model.Contacts{}, err
		}
		return *c, nil
	})
}

func (s *PortalService) Maps(ctx context.Context, userID int64) (model.PageData, error) {
	empty := model.Maps{Buildings: []model.BuildingMap{}}
	return readThrough(ctx, s, s.key(config.Resource.Maps, userID, ""), empty, func(ctx context.Context) (model.Maps, error) {
		m, err := s.api.Maps(ctx, userID)
		if err != nil {
			return model.Maps{}, err
		}
		return *m, nil
	})
}

// TeacherDetail returns the detail card of one teacher, cached per teacher id.
func (s *PortalService) TeacherDetail(ctx context.Context, userID int64, teacherID string) (model.PageData, error) {
	empty := model.TeacherInfo{Departments: []string{}}
	return readThrough(ctx, s, s.key(config.Resource.TeacherInfo, userID, teacherID), empty, func(ctx context.Context) (model.TeacherInfo, error) {
		info, err := s.api.TeacherInfo(ctx, userID, teacherID)
		if err != nil {
			return model.TeacherInfo{}, err
		}
		return *info, nil
	})
}

// Schedule returns lessons grouped by day. An empty dateRange means the
// preloaded window of today and the next two days.
func (s *PortalService) Schedule(ctx context.Context, userID int64, dateRange string) (model.PageData, error) {
	qualifier := ""
	if dateRange == "" {
		dateRange = s.defaultRange()
	} else if !ValidDateRange(dateRange) {
		return model.PageData{}, ErrInvalidRange
	} else if dateRange != s.defaultRange() {
		qualifier = dateRange
	}

	pd, err := readThrough(ctx, s, s.key(config.Resource.Schedule, userID, qualifier), []model.ScheduleItem{}, func(ctx context.Context) ([]model.ScheduleItem, error) {
		return s.api.Schedule(ctx, userID, dateRange)
	})
	if err != nil {
		return pd, err
	}
	if items, ok := pd.Data.([]model.ScheduleItem); ok {
		pd.Data = GroupByDate(items)
	}
	return pd, nil
}

// ─── Static pages ───────────────────────────────────────────────────────────

// Gradebook returns the semesters shown on the gradebook page.
func (s *PortalService) Gradebook() []model.Semester {
	return append([]model.Semester(nil), demoSemesters...)
}

// News returns one page of the news feed and the total item count.
func (s *PortalService) News(page, perPage int) ([]model.NewsItem, int) {
	total := len(newsFeed)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = total
	}
	start := (page - 1) * perPage
	if start >= total {
		return []model.NewsItem{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return append([]model.NewsItem(nil), newsFeed[start:end]...), total
}

// NewsItem looks up one news entry.
func (s *PortalService) NewsItem(id string) (model.NewsItem, bool) {
	for _, n := range newsFeed {
		if n.ID == id {
			return n, true
		}
	}
	return model.NewsItem{}, false
}

// Universities proxies the public university list.
func (s *PortalService) Universities(ctx context.Context) ([]model.University, error) {
	return s.api.Universities(ctx)
}

// ─── Preloading ─────────────────────────────────────────────────────────────

// LoadResource fetches one tracked resource and writes it to the cache.
func (s *PortalService) LoadResource(ctx context.Context, userID int64, resource string) error {
	gen := s.generation(userID)
	var (
		data any
		err  error
	)
	switch resource {
	case config.Resource.Profile:
		data, err = s.api.PersonalData(ctx, userID)
	case config.Resource.Services:
		data, err = s.fetchServices(ctx, userID)
	case config.Resource.Teachers:
		data, err = s.api.Teachers(ctx, userID)
	case config.Resource.Contacts:
		data, err = s.api.Contacts(ctx, userID)
	case config.Resource.Maps:
		data, err = s.api.Maps(ctx, userID)
	case config.Resource.Schedule:
		data, err = s.api.Schedule(ctx, userID, s.defaultRange())
	default:
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", resource, classify(err))
	}
	return s.write(ctx, s.key(resource, userID, ""), data, gen)
}

// ClearUser drops every cached resource of the user. Fetches that started
// before the call no longer write their results.
func (s *PortalService) ClearUser(ctx context.Context, userID int64) (int, error) {
	s.gate.Lock()
	s.generations[userID]++
	s.gate.Unlock()

	return s.cache.ClearUser(ctx, userID)
}

func (s *PortalService) generation(userID int64) uint64 {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return s.generations[userID]
}

// write caches data unless the user was cleared after gen was taken.
func (s *PortalService) write(ctx context.Context, key cache.Key, data any, gen uint64) error {
	s.gate.RLock()
	defer s.gate.RUnlock()

	if s.generations[key.UserID] != gen {
		s.log.Debug().Str("key", key.String()).Msg("User cleared during fetch, result dropped")
		return nil
	}
	return s.cache.Write(ctx, key, data)
}

// Wait blocks until background refreshes finish.
func (s *PortalService) Wait() {
	s.wg.Wait()
}

func (s *PortalService) fetchServices(ctx context.Context, userID int64) (model.ServicesBundle, error) {
	var bundle model.ServicesBundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.api.Services(gctx, userID)
		bundle.Services = items
		return err
	})
	g.Go(func() error {
		items, err := s.api.Platforms(gctx, userID)
		bundle.Platforms = items
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ServicesBundle{}, err
	}
	return bundle, nil
}

// refresh reloads one entry in the background unless a refresh of it is already running.
func (s *PortalService) refresh(key cache.Key, fetch func(context.Context) (any, error)) {
	k := key.String()
	gen := s.generation(key.UserID)
	s.mu.Lock()
	if _, busy := s.refreshing[k]; busy {
		s.mu.Unlock()
		return
	}
	s.refreshing[k] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.refreshing, k)
			s.mu.Unlock()
			s.wg.Done()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		data, err := fetch(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("key", k).Msg("Background refresh failed")
			return
		}
		if err := s.write(ctx, key, data, gen); err != nil {
			s.log.Warn().Err(err).Str("key", k).Msg("Failed to cache refreshed data")
		}
	}()
}

func (s *PortalService) key(resource string, userID int64, qualifier string) cache.Key {
	return cache.Key{Resource: resource, UserID: userID, Qualifier: qualifier}
}

func (s *PortalService) defaultRange() string {
	today := s.now()
	return FormatDateRange(today, today.AddDate(0, 0, scheduleDays-1))
}

// readThrough serves key from the cache, fetching and caching it on a miss.
// Hits older than staleAfter are served and refreshed in the background.
// A failed fetch degrades to fallback with the error message attached,
// except when the upstream no longer recognises the student.
func readThrough[T any](ctx context.Context, s *PortalService, key cache.Key, fallback T, fetch func(context.Context) (T, error)) (model.PageData, error) {
	var cached T
	age, ok, err := s.cache.Read(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("Cache read failed, fetching live")
	}
	if ok {
		pd := model.PageData{
			Data:     cached,
			CachedAt: s.now().Add(-age).UnixMilli(),
			Stale:    age > s.staleAfter,
		}
		if pd.Stale {
			s.refresh(key, func(ctx context.Context) (any, error) { return fetch(ctx) })
		}
		return pd, nil
	}

	gen := s.generation(key.UserID)
	data, err := fetch(ctx)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrNotLinked) {
			return model.PageData{}, err
		}
		s.log.Warn().Err(err).Str("key", key.String()).Msg("Page load failed, serving fallback")
		return model.PageData{Data: fallback, Stale: true, Error: upstream.Message(err)}, nil
	}

	if err := s.write(ctx, key, data, gen); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache page data")
	}
	return model.PageData{Data: data, CachedAt: s.now().UnixMilli()}, nil
}

// classify marks upstream authorization failures as ErrNotLinked.
func classify(err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", ErrNotLinked, err)
	}
	return err
}

// ─── Schedule helpers ───────────────────────────────────────────────────────

// FormatDateRange renders the upstream "DD.MM-DD.MM" range.
func FormatDateRange(from, to time.Time) string {
	return from.Format("02.01") + "-" + to.Format("02.01")
}

// ValidDateRange reports whether r looks like "DD.MM-DD.MM".
func ValidDateRange(r string) bool {
	from, to, ok := strings.Cut(r, "-")
	return ok && validDayMonth(from) && validDayMonth(to)
}

func validDayMonth(s string) bool {
	day, month, ok := strings.Cut(s, ".")
	if !ok || len(day) != 2 || len(month) != 2 {
		return false
	}
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	return err1 == nil && err2 == nil && d >= 1 && d <= 31 && m >= 1 && m <= 12
}

// GroupByDate buckets lessons by their date, keeping first-seen day order,
// and sorts each day by start time.
func GroupByDate(items []model.ScheduleItem) []model.ScheduleDay {
	days := []model.ScheduleDay{}
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Date]
		if !ok {
			i = len(days)
			index[it.Date] = i
			days = append(days, model.ScheduleDay{Date: it.Date})
		}
		days[i].Lessons = append(days[i].Lessons, it)
	}
	for i := range days {
		sort.SliceStable(days[i].Lessons, func(a, b int) bool {
			return startMinutes(days[i].Lessons[a].Start) < startMinutes(days[i].Lessons[b].Start)
		})
	}
	return days
}

// startMinutes parses "HH:MM". Unparseable times sort last.
func startMinutes(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 1 << 30
	}
	hours, err1 := strconv.Atoi(strings.TrimSpace(h))
	mins, err2 := strconv.Atoi(strings.TrimSpace(m))
	if err1 != nil || err2 != nil {
		return 1 << 30
	}
	return hours*60 + mins
}
