// Package database - append-only audit log of filter violations.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

const violationCollection = "filter_violations"

// violationTermMaxLen bounds the matched term before storage.
const violationTermMaxLen = 64

var ErrDatabaseUnavailable = errors.New("database not connected")

func violationCol() (*mongo.Collection, error) {
	db := Get()
	if db == nil || !db.Connected() {
		return nil, ErrDatabaseUnavailable
	}
	col := db.GetCollection(violationCollection)
	if col == nil {
		return nil, ErrDatabaseUnavailable
	}
	return col, nil
}

// truncateTerm caps a term at violationTermMaxLen bytes without splitting a
// multi-byte rune.
func truncateTerm(term string) string {
	if len(term) <= violationTermMaxLen {
		return term
	}
	cut := violationTermMaxLen
	for cut > 0 && !utf8.RuneStart(term[cut]) {
		cut--
	}
	return term[:cut]
}

// AppendViolation inserts one violation record. Records are immutable after
// insertion; the stored term is truncated to violationTermMaxLen. The caller's
// value is never mutated, other consumers (live feed, MQTT) see it as-is.
func AppendViolation(v *models.Violation) error {
	col, err := violationCol()
	if err != nil {
		return err
	}

	if len(v.Term) > violationTermMaxLen {
		rec := *v
		rec.Term = truncateTerm(v.Term)
		v = &rec
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = col.InsertOne(ctx, v)
	return err
}

// TopViolationTerms returns the most-hit terms for a guild inside the given
// window, with their kind, action and count.
func TopViolationTerms(guildID string, window time.Duration, limit int) ([]*models.TermStat, error) {
	col, err := violationCol()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	since := time.Now().Add(-window).UnixMilli()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"guildId": guildID, "timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$term",
			"kind":   bson.M{"$first": "$kind"},
			"action": bson.M{"$last": "$action"},
			"count":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var stats []*models.TermStat
	for cursor.Next(ctx) {
		var s models.TermStat
		if err := cursor.Decode(&s); err != nil {
			continue
		}
		stats = append(stats, &s)
	}
	return stats, cursor.Err()
}

// TotalViolations counts a guild's violations inside the given window.
func TotalViolations(guildID string, window time.Duration) (int64, error) {
	col, err := violationCol()
	if err != nil {
		return 0, err
	}

	since := time.Now().Add(-window).UnixMilli()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return col.CountDocuments(ctx, bson.M{"guildId": guildID, "timestamp": bson.M{"$gte": since}})
}

// ViolationWriter implements the filter.ViolationSink capability. Appends
// run on their own goroutine: the enforcement decision never waits for the
// audit write, and a failed write is logged and dropped.
type ViolationWriter struct {
	// Broadcast, when set, receives every record after the insert attempt
	// (live dashboard feed, MQTT bridge).
	Broadcast func(v *models.Violation)
}

// Append implements filter.ViolationSink.
func (w *ViolationWriter) Append(v *models.Violation) {
	go func() {
		if err := AppendViolation(v); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo guardar la infracción %s: %v", v.ID, err), "ViolationStore")
		}
		if w.Broadcast != nil {
			w.Broadcast(v)
		}
	}()
}
