// Package database - seed preset library for the word filter.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

var ErrPresetNotFound = errors.New("preset no encontrado")

// defaultPresets are seeded at startup. Seeding is insert-if-absent: an
// operator can edit a preset in the database and restarts will not undo it.
var defaultPresets = []models.FilterPreset{
	{
		Name:        "insultos",
		Description: "Insultos comunes en español e inglés",
		Category:    "lenguaje",
		Words:       []string{"idiota", "imbecil", "estupido", "idiot", "stupid"},
	},
	{
		Name:        "invitaciones",
		Description: "Enlaces de invitación a otros servidores",
		Category:    "spam",
		Words:       []string{"discord.gg/*", "discord.com/invite/*"},
		Phrases:     []string{"unete a mi servidor"},
	},
	{
		Name:        "estafas",
		Description: "Frases típicas de phishing y regalos falsos",
		Category:    "seguridad",
		Words:       []string{"nitro-gratis", "free-nitro"},
		Phrases:     []string{"nitro gratis", "free nitro", "steam gift", "has ganado un premio"},
	},
}

// SeedFilterPresets loads the default preset library, inserting only the
// presets that do not exist yet.
func SeedFilterPresets() error {
	if GlobalPresetDM == nil {
		return ErrFilterManagerNotInitialized
	}
	col := GlobalPresetDM.collection
	if col == nil {
		return ErrDatabaseUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seeded := 0
	for _, preset := range defaultPresets {
		res, err := col.UpdateOne(ctx,
			bson.M{"_id": preset.Name},
			bson.M{"$setOnInsert": preset},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
		if res.UpsertedCount > 0 {
			seeded++
		}
	}

	logger.Info(fmt.Sprintf("Biblioteca de presets lista (%d nuevos, %d totales)", seeded, len(defaultPresets)), "Presets")
	return nil
}

// GetFilterPreset returns one preset by name.
func GetFilterPreset(name string) (*models.FilterPreset, error) {
	if GlobalPresetDM == nil {
		return nil, ErrFilterManagerNotInitialized
	}
	preset, err := GlobalPresetDM.Get(bson.M{"_id": name})
	if err != nil {
		return nil, err
	}
	if preset == nil {
		return nil, ErrPresetNotFound
	}
	return preset, nil
}

// ListFilterPresets returns every preset in the library.
func ListFilterPresets() ([]*models.FilterPreset, error) {
	if GlobalPresetDM == nil {
		return nil, ErrFilterManagerNotInitialized
	}
	return GlobalPresetDM.GetAll(bson.M{})
}

// ApplyFilterPreset merges a preset's patterns into a guild's config and
// persists it. The caller invalidates the policy cache.
func ApplyFilterPreset(guildID, presetName string) (*models.FilterConfig, int, error) {
	preset, err := GetFilterPreset(presetName)
	if err != nil {
		return nil, 0, err
	}

	cfg, err := GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return nil, 0, err
	}

	added := 0
	for _, w := range preset.Words {
		if !containsString(cfg.Words, w) {
			cfg.Words = append(cfg.Words, w)
			added++
		}
	}
	for _, p := range preset.Phrases {
		if !containsString(cfg.Phrases, p) {
			cfg.Phrases = append(cfg.Phrases, p)
			added++
		}
	}

	saved, err := SaveFilterConfig(cfg)
	if err != nil {
		return nil, 0, err
	}
	if saved == nil {
		saved = cfg
	}
	return saved, added, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
