// Package mqtt - ops bridge for filter events.
package mqtt

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// violationEvent is the broker payload for one filter violation. It carries
// the matched term and the action taken, never the message content.
type violationEvent struct {
	ID        string              `json:"id"`
	GuildID   string              `json:"guildId"`
	UserID    string              `json:"userId"`
	ChannelID string              `json:"channelId"`
	Term      string              `json:"term"`
	Kind      models.MatchKind    `json:"kind"`
	Action    models.FilterAction `json:"action"`
	Timestamp int64               `json:"timestamp"`
}

// PublishViolation publishes a filter violation to the ops broker under
// pancyguard/<env>/violations. Best effort: a disconnected broker only logs.
func (mc *MqttCommunicator) PublishViolation(environment string, v *models.Violation) {
	if !mc.IsConnected() {
		return
	}

	topic := fmt.Sprintf("pancyguard/%s/violations", environment)
	event := violationEvent{
		ID:        v.ID,
		GuildID:   v.GuildID,
		UserID:    v.UserID,
		ChannelID: v.ChannelID,
		Term:      v.Term,
		Kind:      v.Kind,
		Action:    v.Action,
		Timestamp: v.Timestamp,
	}

	if err := mc.Publish(topic, event); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar la infracción en MQTT: %v", err), "MQTT")
	}
}

// PublishStatus publishes a heartbeat with the bot status under
// pancyguard/<env>/status.
func (mc *MqttCommunicator) PublishStatus(environment string, guilds int, ready bool) {
	if !mc.IsConnected() {
		return
	}

	topic := fmt.Sprintf("pancyguard/%s/status", environment)
	err := mc.Publish(topic, map[string]interface{}{
		"ready":     ready,
		"guilds":    guilds,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar el estado en MQTT: %v", err), "MQTT")
	}
}
