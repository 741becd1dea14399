package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/rs/zerolog"
)

// Envelope is the stored form of every cached resource.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	// Timestamp is the write time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Key addresses one cached resource of one user.
type Key struct {
	Resource  string
	UserID    int64
	Qualifier string
}

func (k Key) String() string {
	return config.CacheKey.ResourceKey(k.Resource, strconv.FormatInt(k.UserID, 10), k.Qualifier)
}

// Cache stores per-user resources with a fixed TTL.
// Validity is decided by the envelope timestamp, never by backend expiry.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

type Option func(*Cache)

// WithClock replaces time.Now, used by tests to move time.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Cache) { c.log = log.With().Str("component", "resource_cache").Logger() }
}

// New creates a Cache over store.
func New(store Store, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read decodes a valid entry into dst and returns its age.
// Absent, expired and corrupt entries report ok=false; expired and corrupt ones are removed.
func (c *Cache) Read(ctx context.Context, key Key, dst any) (age time.Duration, ok bool, err error) {
	env, age, ok, err := c.load(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}

	if err := json.Unmarshal(env.Data, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key.String()).Msg("Corrupt cache payload, dropping")
		return 0, false, c.store.Delete(ctx, key.String())
	}
	return age, true, nil
}

// Age returns the age of a valid entry without decoding its payload.
func (c *Cache) Age(ctx context.Context, key Key) (time.Duration, bool, error) {
	_, age, ok, err := c.load(ctx, key)
	return age, ok, err
}

// Write stores data stamped with the current time, overwriting any previous entry.
func (c *Cache) Write(ctx context.Context, key Key, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key.Resource, err)
	}

	raw, err := json.Marshal(Envelope{Data: payload, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	// Backend expiry only bounds garbage; Read enforces the real TTL.
	return c.store.Set(ctx, key.String(), raw, 2*c.ttl)
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, key Key) error {
	return c.store.Delete(ctx, key.String())
}

// ClearUser removes every resource entry of the user, qualified variants included.
// Returns the number of removed keys.
func (c *Cache) ClearUser(ctx context.Context, userID int64) (int, error) {
	uid := strconv.FormatInt(userID, 10)

	var doomed []string
	for _, resource := range config.Resource.All() {
		keys, err := c.store.Keys(ctx, config.CacheKey.ResourceKey(resource, uid))
		if err != nil {
			return 0, fmt.Errorf("list %s keys: %w", resource, err)
		}
		for _, k := range keys {
			// The prefix of user 12 also matches user 123.
			if config.CacheKey.IsResourceKey(k, resource, uid) {
				doomed = append(doomed, k)
			}
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}
	if err := c.store.Delete(ctx, doomed...); err != nil {
		return 0, err
	}
	return len(doomed), nil
}

func (c *Cache) load(ctx context.Context, key Key) (Envelope, time.Duration, bool, error) {
	k := key.String()

	raw, err := c.store.Get(ctx, k)
	if errors.Is(err, ErrMiss) {
		return Envelope{}, 0, false, nil
	}
	if err != nil {
		return Envelope{}, 0, false, err
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Timestamp <= 0 {
		c.log.Warn().Str("key", k).Msg("Corrupt cache envelope, dropping")
		return Envelope{}, 0, false, c.store.Delete(ctx, k)
	}

	age := c.now().Sub(time.UnixMilli(env.Timestamp))
	if age > c.ttl {
		return Envelope{}, 0, false, c.store.Delete(ctx, k)
	}
	if age < 0 {
		age = 0
	}
	return env, age, true, nil
}
