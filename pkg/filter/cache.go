package filter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// ConfigStore is the narrow view of the persistence layer the cache needs:
// fetch the raw config row for a guild, or nil when none exists.
type ConfigStore interface {
	GetFilterConfig(guildID string) (*models.FilterConfig, error)
}

// DefaultPolicyTTL bounds how stale a cached policy may get when nobody
// invalidates it explicitly.
const DefaultPolicyTTL = 60 * time.Second

// PolicyCacheService holds one compiled FilterPolicy per guild, refreshed on
// TTL expiry and invalidated explicitly whenever a config write happens.
// Reads are concurrent; a refresh replaces the entry wholesale, so two
// concurrent misses may both recompile and the last writer wins. Compiled
// policies are immutable values, so that race is harmless.
type PolicyCacheService struct {
	store ConfigStore
	ttl   time.Duration
	log   Logger

	mu      sync.RWMutex
	entries map[string]policyEntry
}

type policyEntry struct {
	policy    *FilterPolicy
	fetchedAt time.Time
}

// NewPolicyCacheService creates a policy cache. A ttl <= 0 falls back to
// DefaultPolicyTTL.
func NewPolicyCacheService(store ConfigStore, ttl time.Duration, log Logger) (*PolicyCacheService, error) {
	if store == nil {
		return nil, errors.New("filter: config store is required")
	}
	if log == nil {
		return nil, errors.New("filter: logger is required")
	}
	if ttl <= 0 {
		ttl = DefaultPolicyTTL
	}
	return &PolicyCacheService{
		store:   store,
		ttl:     ttl,
		log:     log,
		entries: make(map[string]policyEntry),
	}, nil
}

// Get returns the compiled policy for a guild, re-reading the config store
// on a miss, TTL expiry or forced refresh. A store failure is fail-open: the
// message is treated as "not configured" (filtering disabled) and nothing is
// cached, so the next message retries the store.
func (c *PolicyCacheService) Get(guildID string, forceRefresh bool) *FilterPolicy {
	if !forceRefresh {
		c.mu.RLock()
		entry, ok := c.entries[guildID]
		c.mu.RUnlock()

		if ok && time.Since(entry.fetchedAt) < c.ttl {
			return entry.policy
		}
	}

	cfg, err := c.store.GetFilterConfig(guildID)
	if err != nil {
		c.log.Warn(fmt.Sprintf("Config store no disponible para guild %s: %v (filtro desactivado para este mensaje)", guildID, err), "PolicyCache")
		return DisabledPolicy(guildID)
	}

	policy := BuildPolicy(cfg, c.log)
	if policy.GuildID == "" {
		policy.GuildID = guildID
	}

	c.mu.Lock()
	c.entries[guildID] = policyEntry{policy: policy, fetchedAt: time.Now()}
	c.mu.Unlock()

	return policy
}

// Invalidate drops the cached policy for a guild. Every code path that
// persists a new configuration must call this so the next message sees the
// update without waiting for TTL expiry.
func (c *PolicyCacheService) Invalidate(guildID string) {
	c.mu.Lock()
	delete(c.entries, guildID)
	c.mu.Unlock()
	c.log.Debug("Política invalidada para guild "+guildID, "PolicyCache")
}

// Size returns the number of cached policies.
func (c *PolicyCacheService) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
