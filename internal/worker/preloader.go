package worker

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ResourceLoader fetches one resource from the upstream and writes it to the cache.
type ResourceLoader interface {
	LoadResource(ctx context.Context, userID int64, resource string) error
}

// Freshness reports the age of cached entries.
type Freshness interface {
	Age(ctx context.Context, key cache.Key) (time.Duration, bool, error)
}

// PreloaderConfig tunes the background refresh loop.
type PreloaderConfig struct {
	// Interval is the period of each user's check loop.
	Interval time.Duration
	// MinInterval skips non-forced passes that follow a completed one too closely.
	MinInterval time.Duration
	// Timeout bounds a whole pass.
	Timeout time.Duration
	// Resources are checked on every tick and fetched on every pass.
	Resources []string
}

// PassResult describes one completed preload pass.
type PassResult struct {
	UserID     int64             `json:"user_id"`
	Forced     bool              `json:"forced"`
	Failed     map[string]string `json:"failed,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// inflight is a running pass. Forget cancels it and hands the slot back.
type inflight struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type userLoop struct {
	stop        chan struct{}
	signal      chan struct{}
	unsubscribe func()
}

// Preloader keeps the per-user caches warm. It owns one loop per started user,
// a re-entrancy guard so a user never has two passes in flight, and the time
// of each user's last completed pass.
type Preloader struct {
	loader     ResourceLoader
	fresh      Freshness
	visibility *Hub
	refreshed  *Hub
	cfg        PreloaderConfig
	now        func() time.Time
	jitter     func(limit time.Duration) time.Duration
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	loops      map[int64]*userLoop
	inProgress map[int64]*inflight
	lastPass   map[int64]time.Time
	lastResult map[int64]PassResult
}

// NewPreloader creates a Preloader. visibility may be shared with the websocket layer.
func NewPreloader(loader ResourceLoader, fresh Freshness, visibility *Hub, cfg PreloaderConfig, log zerolog.Logger) *Preloader {
	ctx, cancel := context.WithCancel(context.Background())
	if visibility == nil {
		visibility = NewHub()
	}
	return &Preloader{
		loader:     loader,
		fresh:      fresh,
		visibility: visibility,
		refreshed:  NewHub(),
		cfg:        cfg,
		now:        time.Now,
		jitter:     randomDelay,
		log:        log.With().Str("component", "preloader").Logger(),
		ctx:        ctx,
		cancel:     cancel,
		loops:      make(map[int64]*userLoop),
		inProgress: make(map[int64]*inflight),
		lastPass:   make(map[int64]time.Time),
		lastResult: make(map[int64]PassResult),
	}
}

// Start begins the periodic check loop and the visibility listener for userID.
// The first check runs at once. Returns false when a loop is already running
// or the preloader is closed.
func (p *Preloader) Start(userID int64) bool {
	return p.start(userID, 0)
}

// Resume is Start for loops restored after a restart. The first check is
// delayed by a random fraction of the interval so that restored loops do not
// all hit the upstream at the same moment.
func (p *Preloader) Resume(userID int64) bool {
	return p.start(userID, p.jitter(p.cfg.Interval))
}

func (p *Preloader) start(userID int64, firstCheck time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	if _, running := p.loops[userID]; running {
		return false
	}

	l := &userLoop{
		stop:   make(chan struct{}),
		signal: make(chan struct{}, 1),
	}
	l.unsubscribe = p.visibility.Subscribe(userID, func() {
		select {
		case l.signal <- struct{}{}:
		default:
		}
	})
	p.loops[userID] = l

	p.wg.Add(1)
	go p.run(userID, l, firstCheck)

	p.log.Info().Int64("user_id", userID).Dur("interval", p.cfg.Interval).Dur("first_check", firstCheck).Msg("Background updates started")
	return true
}

// Stop cancels the loop and removes the visibility listener. Safe to call repeatedly.
func (p *Preloader) Stop(userID int64) bool {
	p.mu.Lock()
	l, ok := p.loops[userID]
	delete(p.loops, userID)
	p.mu.Unlock()

	if !ok {
		return false
	}
	l.unsubscribe()
	close(l.stop)

	p.log.Info().Int64("user_id", userID).Msg("Background updates stopped")
	return true
}

// Forget stops the user's loop, cancels a pass in flight and drops the pass
// history. The cancelled pass records nothing when it returns, and its slot
// is free for a new pass right away.
func (p *Preloader) Forget(userID int64) {
	p.Stop(userID)

	p.mu.Lock()
	if f, ok := p.inProgress[userID]; ok {
		f.cancel()
		delete(p.inProgress, userID)
	}
	delete(p.lastPass, userID)
	delete(p.lastResult, userID)
	p.mu.Unlock()
}

// Running reports whether userID has an active loop.
func (p *Preloader) Running(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loops[userID]
	return ok
}

// ActiveLoops returns the number of users with a running loop.
func (p *Preloader) ActiveLoops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.loops)
}

// InProgress reports whether a pass is in flight for userID.
func (p *Preloader) InProgress(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inProgress[userID]
	return ok
}

// LastResult returns the most recent completed pass of userID.
func (p *Preloader) LastResult(userID int64) (PassResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.lastResult[userID]
	return res, ok
}

// OnRefreshed registers fn to run after each completed pass of userID.
func (p *Preloader) OnRefreshed(userID int64, fn func()) (unsubscribe func()) {
	return p.refreshed.Subscribe(userID, fn)
}

// Visibility returns the hub the loops listen on.
func (p *Preloader) Visibility() *Hub {
	return p.visibility
}

// NeedsUpdate reports whether any tracked entry is absent or past its TTL.
// A backend error counts as needing an update.
func (p *Preloader) NeedsUpdate(ctx context.Context, userID int64) bool {
	for _, resource := range p.cfg.Resources {
		_, ok, err := p.fresh.Age(ctx, cache.Key{Resource: resource, UserID: userID})
		if err != nil {
			p.log.Warn().Err(err).Int64("user_id", userID).Str("resource", resource).Msg("Cache check failed")
			return true
		}
		if !ok {
			return true
		}
	}
	return false
}

// CheckAndUpdate starts a non-forced pass if any tracked entry needs it.
func (p *Preloader) CheckAndUpdate(ctx context.Context, userID int64) bool {
	if !p.NeedsUpdate(ctx, userID) {
		return false
	}
	p.log.Debug().Int64("user_id", userID).Msg("Cache expired, updating in background")
	return p.Trigger(userID, false)
}

// Trigger starts a pass in the background. It returns false when the pass is
// skipped: one is already running, the last one is too recent and force is
// false, or the preloader is closed.
func (p *Preloader) Trigger(userID int64, force bool) bool {
	f := p.reserve(userID, force)
	if f == nil {
		return false
	}
	go func() {
		defer p.wg.Done()
		p.pass(userID, force, f)
	}()
	return true
}

// PreloadAll runs a pass in the caller's goroutine under the same guards as Trigger.
func (p *Preloader) PreloadAll(userID int64, force bool) (PassResult, bool) {
	f := p.reserve(userID, force)
	if f == nil {
		return PassResult{}, false
	}
	defer p.wg.Done()
	return p.pass(userID, force, f), true
}

// Close stops every loop and waits for in-flight passes.
func (p *Preloader) Close() {
	p.mu.Lock()
	p.closed = true
	users := make([]int64, 0, len(p.loops))
	for id := range p.loops {
		users = append(users, id)
	}
	p.mu.Unlock()

	for _, id := range users {
		p.Stop(id)
	}
	p.cancel()
	p.wg.Wait()
	p.log.Info().Msg("Preloader closed")
}

func (p *Preloader) run(userID int64, l *userLoop, firstCheck time.Duration) {
	defer p.wg.Done()

	first := time.NewTimer(firstCheck)
	defer first.Stop()
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-p.ctx.Done():
			return
		case <-first.C:
			p.CheckAndUpdate(p.ctx, userID)
		case <-ticker.C:
			p.CheckAndUpdate(p.ctx, userID)
		case <-l.signal:
			p.log.Debug().Int64("user_id", userID).Msg("Client became visible, checking for updates")
			p.CheckAndUpdate(p.ctx, userID)
		}
	}
}

// reserve claims the user's pass slot. On success the caller owns one wg slot
// and must hand the returned pass to pass.
func (p *Preloader) reserve(userID int64, force bool) *inflight {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	if _, busy := p.inProgress[userID]; busy {
		p.log.Debug().Int64("user_id", userID).Msg("Preload already in progress")
		return nil
	}
	if !force {
		if last, ok := p.lastPass[userID]; ok && p.now().Sub(last) < p.cfg.MinInterval {
			p.log.Debug().Int64("user_id", userID).Msg("Skipping preload, too soon since last pass")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	f := &inflight{ctx: ctx, cancel: cancel}
	p.inProgress[userID] = f
	p.wg.Add(1)
	return f
}

func (p *Preloader) pass(userID int64, force bool, f *inflight) PassResult {
	res := PassResult{UserID: userID, Forced: force, StartedAt: p.now()}

	ctx := f.ctx
	defer f.cancel()

	var failedMu sync.Mutex
	failed := make(map[string]string)

	// Every fetch runs to completion; one failure does not cancel the others.
	var g errgroup.Group
	for _, resource := range p.cfg.Resources {
		g.Go(func() error {
			if err := p.loader.LoadResource(ctx, userID, resource); err != nil {
				p.log.Warn().Err(err).Int64("user_id", userID).Str("resource", resource).Msg("Failed to preload resource")
				failedMu.Lock()
				failed[resource] = err.Error()
				failedMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	res.FinishedAt = p.now()
	if len(failed) > 0 {
		res.Failed = failed
	}

	p.mu.Lock()
	current := p.inProgress[userID] == f
	if current {
		p.lastPass[userID] = res.FinishedAt
		p.lastResult[userID] = res
		delete(p.inProgress, userID)
	}
	p.mu.Unlock()

	if !current {
		p.log.Debug().Int64("user_id", userID).Msg("Preload cancelled, result dropped")
		return res
	}

	p.log.Info().
		Int64("user_id", userID).
		Bool("forced", force).
		Int("failed", len(failed)).
		Dur("took", res.FinishedAt.Sub(res.StartedAt)).
		Msg("Preload completed")

	p.refreshed.Publish(userID)
	return res
}

func randomDelay(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}
