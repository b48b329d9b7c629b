package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestCacheGetWithinTTL(t *testing.T) {
	store := &fakeStore{cfg: baseConfig()}
	cache, err := NewPolicyCacheService(store, time.Minute, testLogger{})
	if err != nil {
		t.Fatalf("NewPolicyCacheService: %v", err)
	}

	first := cache.Get("g1", false)
	second := cache.Get("g1", false)

	if store.readCount() != 1 {
		t.Errorf("store reads = %d, want 1", store.readCount())
	}
	if first != second {
		t.Error("cache hit should return the stored policy value")
	}
}

func TestCacheForceRefresh(t *testing.T) {
	store := &fakeStore{cfg: baseConfig()}
	cache, _ := NewPolicyCacheService(store, time.Minute, testLogger{})

	cache.Get("g1", false)
	cache.Get("g1", true)

	if store.readCount() != 2 {
		t.Errorf("store reads = %d, want 2", store.readCount())
	}
}

func TestCacheInvalidate(t *testing.T) {
	store := &fakeStore{cfg: baseConfig()}
	cache, _ := NewPolicyCacheService(store, time.Minute, testLogger{})

	old := cache.Get("g1", false)

	// Simulate a config write: new row, explicit invalidation.
	store.mu.Lock()
	store.cfg = &models.FilterConfig{GuildID: "g1", Enabled: true, Mode: models.FilterModeSmart, Words: []string{"nuevo"}}
	store.mu.Unlock()
	cache.Invalidate("g1")

	fresh := cache.Get("g1", false)
	if fresh == old {
		t.Error("invalidate should force a recompile")
	}
	if fresh.Mode != models.FilterModeSmart {
		t.Errorf("Mode = %v, want %v", fresh.Mode, models.FilterModeSmart)
	}
	if cache.Size() != 1 {
		t.Errorf("Size = %d, want 1", cache.Size())
	}
}

// TestCacheFailOpen: a store outage disables filtering for that message and
// caches nothing, so the next message retries the store.
func TestCacheFailOpen(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	cache, _ := NewPolicyCacheService(store, time.Minute, testLogger{})

	policy := cache.Get("g1", false)
	if policy.Enabled {
		t.Error("store failure should yield a disabled policy")
	}
	if cache.Size() != 0 {
		t.Error("store failure should not be cached")
	}

	// Store recovers; the very next read sees the real config.
	store.mu.Lock()
	store.err = nil
	store.cfg = baseConfig()
	store.mu.Unlock()

	if policy := cache.Get("g1", false); !policy.Enabled {
		t.Error("recovered store should produce the configured policy")
	}
}

func TestCacheUnconfiguredGuild(t *testing.T) {
	store := &fakeStore{} // nil row: guild never configured
	cache, _ := NewPolicyCacheService(store, time.Minute, testLogger{})

	policy := cache.Get("g7", false)
	if policy.Enabled {
		t.Error("unconfigured guild should be disabled")
	}
	if policy.GuildID != "g7" {
		t.Errorf("GuildID = %q, want %q", policy.GuildID, "g7")
	}
	// Absent rows are a normal state and are cached.
	cache.Get("g7", false)
	if store.readCount() != 1 {
		t.Errorf("store reads = %d, want 1", store.readCount())
	}
}

func TestCacheRequiresCollaborators(t *testing.T) {
	if _, err := NewPolicyCacheService(nil, time.Minute, testLogger{}); err == nil {
		t.Error("nil store should be rejected")
	}
	if _, err := NewPolicyCacheService(&fakeStore{}, time.Minute, nil); err == nil {
		t.Error("nil logger should be rejected")
	}
}
