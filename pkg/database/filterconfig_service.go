// Package database - persistence for the per-guild filter configuration.
package database

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

var ErrFilterManagerNotInitialized = errors.New("filter config data manager not initialized")

func getFilterConfigManager() (*DataManager[models.FilterConfig], error) {
	if GlobalFilterConfigDM == nil {
		return nil, ErrFilterManagerNotInitialized
	}
	return GlobalFilterConfigDM, nil
}

// GetFilterConfig returns the raw filter config row for a guild, or nil when
// the guild was never configured.
func GetFilterConfig(guildID string) (*models.FilterConfig, error) {
	dm, err := getFilterConfigManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"guildId": guildID})
}

// SaveFilterConfig upserts a guild's filter configuration. Callers must
// invalidate the policy cache afterwards so the next message sees the change.
func SaveFilterConfig(cfg *models.FilterConfig) (*models.FilterConfig, error) {
	dm, err := getFilterConfigManager()
	if err != nil {
		return nil, err
	}
	cfg.UpdatedAt = time.Now().UnixMilli()
	return dm.Set(bson.M{"guildId": cfg.GuildID}, cfg)
}

// GetOrDefaultFilterConfig returns the stored row or a fresh default row for
// guilds configured for the first time.
func GetOrDefaultFilterConfig(guildID string) (*models.FilterConfig, error) {
	cfg, err := GetFilterConfig(guildID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &models.FilterConfig{
			GuildID:       guildID,
			Enabled:       false,
			Action:        models.FilterActionDelete,
			Mode:          models.FilterModeContains,
			LogViolations: true,
		}
	}
	return cfg, nil
}

// FilterConfigStore adapts the package-level accessors to the
// filter.ConfigStore capability consumed by the policy cache.
type FilterConfigStore struct{}

// GetFilterConfig implements filter.ConfigStore.
func (FilterConfigStore) GetFilterConfig(guildID string) (*models.FilterConfig, error) {
	return GetFilterConfig(guildID)
}
