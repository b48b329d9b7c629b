package models

// MatchKind indica qué lista produjo la coincidencia
type MatchKind string

const (
	MatchKindWord   MatchKind = "word"
	MatchKindPhrase MatchKind = "phrase"
)

// Violation representa una infracción registrada en la colección "filter_violations".
// El contenido del mensaje nunca se guarda, solo el término coincidente (acotado).
type Violation struct {
	ID        string       `bson:"_id" json:"id"`
	GuildID   string       `bson:"guildId" json:"guildId"`
	UserID    string       `bson:"userId" json:"userId"`
	ChannelID string       `bson:"channelId" json:"channelId"`
	Term      string       `bson:"term" json:"term"`
	Kind      MatchKind    `bson:"kind" json:"kind"`
	Action    FilterAction `bson:"action" json:"action"`
	Timestamp int64        `bson:"timestamp" json:"timestamp"`
}

// TermStat es una fila agregada de estadísticas por término
type TermStat struct {
	Term   string       `bson:"_id" json:"term"`
	Kind   MatchKind    `bson:"kind" json:"kind"`
	Action FilterAction `bson:"action" json:"action"`
	Count  int64        `bson:"count" json:"count"`
}
