package cache

import (
	"context"
	"sort"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache() (*Cache, *MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	return New(store, 5*time.Minute, WithClock(clock.Now)), store, clock
}

type profile struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

func TestCache_ReadWithinTTL(t *testing.T) {
	ctx := context.Background()
	c, _, clock := newTestCache()
	key := Key{Resource: "profile", UserID: 42}

	want := profile{Name: "Иванов И.И.", Group: "ИВТ-21"}
	if err := c.Write(ctx, key, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	clock.Advance(5 * time.Minute)

	var got profile
	age, ok, err := c.Read(ctx, key, &got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !ok {
		t.Fatal("expected hit at exactly TTL")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if age != 5*time.Minute {
		t.Errorf("age = %v, want 5m", age)
	}
}

func TestCache_ReadPastTTLRemovesEntry(t *testing.T) {
	ctx := context.Background()
	c, store, clock := newTestCache()
	key := Key{Resource: "teachers", UserID: 42}

	if err := c.Write(ctx, key, []string{"a"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	clock.Advance(5*time.Minute + time.Millisecond)

	var got []string
	_, ok, err := c.Read(ctx, key, &got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Fatal("expected miss past TTL")
	}
	if store.Len() != 0 {
		t.Errorf("expired entry not removed, store has %d entries", store.Len())
	}
}

func TestCache_WriteOverwritesAndRestampsEntry(t *testing.T) {
	ctx := context.Background()
	c, _, clock := newTestCache()
	key := Key{Resource: "maps", UserID: 7}

	_ = c.Write(ctx, key, "old")
	clock.Advance(4 * time.Minute)
	_ = c.Write(ctx, key, "new")
	clock.Advance(2 * time.Minute)

	var got string
	age, ok, err := c.Read(ctx, key, &got)
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got != "new" {
		t.Errorf("got %q, want %q", got, "new")
	}
	if age != 2*time.Minute {
		t.Errorf("age = %v, want 2m", age)
	}
}

func TestCache_CorruptEnvelopeIsMiss(t *testing.T) {
	ctx := context.Background()
	c, store, _ := newTestCache()
	key := Key{Resource: "contacts", UserID: 1}

	_ = store.Set(ctx, key.String(), []byte("{not json"), 0)

	var got map[string]any
	_, ok, err := c.Read(ctx, key, &got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Fatal("expected corrupt entry to read as absent")
	}
	if store.Len() != 0 {
		t.Error("corrupt entry not removed")
	}
}

func TestCache_Age(t *testing.T) {
	ctx := context.Background()
	c, _, clock := newTestCache()
	key := Key{Resource: "services", UserID: 3}

	if _, ok, _ := c.Age(ctx, key); ok {
		t.Fatal("expected absent entry")
	}

	_ = c.Write(ctx, key, map[string]any{"services": []any{}})
	clock.Advance(90 * time.Second)

	age, ok, err := c.Age(ctx, key)
	if err != nil || !ok {
		t.Fatalf("age: ok=%v err=%v", ok, err)
	}
	if age != 90*time.Second {
		t.Errorf("age = %v, want 90s", age)
	}
}

func TestCache_ClearUser(t *testing.T) {
	ctx := context.Background()
	c, store, _ := newTestCache()

	writes := []Key{
		{Resource: "profile", UserID: 12},
		{Resource: "schedule", UserID: 12},
		{Resource: "schedule", UserID: 12, Qualifier: "01.12-07.12"},
		{Resource: "teacher", UserID: 12, Qualifier: "tech0001"},
		{Resource: "profile", UserID: 123},
		{Resource: "schedule", UserID: 123},
	}
	for _, k := range writes {
		if err := c.Write(ctx, k, "x"); err != nil {
			t.Fatalf("write %s: %v", k, err)
		}
	}

	removed, err := c.ClearUser(ctx, 12)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}

	keys, _ := store.Keys(ctx, "")
	sort.Strings(keys)
	want := []string{"max-app-profile-123", "max-app-schedule-123"}
	if len(keys) != len(want) {
		t.Fatalf("remaining keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("remaining[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Resource: "profile", UserID: 5}, "max-app-profile-5"},
		{Key{Resource: "schedule", UserID: 5, Qualifier: "10.11-12.11"}, "max-app-schedule-5-10.11-12.11"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}
