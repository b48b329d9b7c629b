package models

// FilterMode controla cómo se comparan los patrones contra el texto
type FilterMode string

const (
	FilterModeExact    FilterMode = "exact"
	FilterModeContains FilterMode = "contains"
	FilterModeSmart    FilterMode = "smart"
)

// FilterAction es la acción configurada para una infracción
type FilterAction string

const (
	FilterActionDelete  FilterAction = "delete"
	FilterActionWarn    FilterAction = "warn"
	FilterActionMute    FilterAction = "mute"
	FilterActionKick    FilterAction = "kick"
	FilterActionBan     FilterAction = "ban"
	FilterActionLogOnly FilterAction = "log_only"
)

// IsValid reports whether the action is one of the supported values.
func (a FilterAction) IsValid() bool {
	switch a {
	case FilterActionDelete, FilterActionWarn, FilterActionMute,
		FilterActionKick, FilterActionBan, FilterActionLogOnly:
		return true
	}
	return false
}

// IsValid reports whether the mode is one of the supported values.
func (m FilterMode) IsValid() bool {
	switch m {
	case FilterModeExact, FilterModeContains, FilterModeSmart:
		return true
	}
	return false
}

// FilterConfig representa el documento de configuración del filtro por guild.
// Coincide con el esquema de la colección "filter_configs": un documento por guildId.
type FilterConfig struct {
	GuildID           string       `bson:"guildId" json:"guildId"`
	Enabled           bool         `bson:"enabled" json:"enabled"`
	Action            FilterAction `bson:"action" json:"action"`
	Mode              FilterMode   `bson:"mode" json:"mode"`
	CustomMessage     string       `bson:"customMessage,omitempty" json:"customMessage,omitempty"`
	LogViolations     bool         `bson:"logViolations" json:"logViolations"`
	LogChannelID      string       `bson:"logChannelId,omitempty" json:"logChannelId,omitempty"`
	WhitelistChannels []string     `bson:"whitelistChannels,omitempty" json:"whitelistChannels,omitempty"`
	WhitelistRoles    []string     `bson:"whitelistRoles,omitempty" json:"whitelistRoles,omitempty"`
	Words             []string     `bson:"words,omitempty" json:"words,omitempty"`
	Phrases           []string     `bson:"phrases,omitempty" json:"phrases,omitempty"`
	FilterDisplayName bool         `bson:"filterDisplayName" json:"filterDisplayName"`
	UpdatedAt         int64        `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
