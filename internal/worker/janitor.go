package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Purger is a cache backend that cannot expire rows on its own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CacheJanitor periodically removes expired rows from a Purger.
type CacheJanitor struct {
	store    Purger
	interval time.Duration
	log      zerolog.Logger
}

// NewCacheJanitor creates a new CacheJanitor.
func NewCacheJanitor(store Purger, interval time.Duration, log zerolog.Logger) *CacheJanitor {
	return &CacheJanitor{
		store:    store,
		interval: interval,
		log:      log.With().Str("component", "cache_janitor").Logger(),
	}
}

// Start begins the purge loop. Call in a goroutine.
func (w *CacheJanitor) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *CacheJanitor) purge(ctx context.Context) {
	n, err := w.store.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Purge error")
		}
		return
	}
	if n > 0 {
		w.log.Debug().Int64("count", n).Msg("Purged expired cache rows")
	}
}
