package domain

import "time"

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message represents one turn in a conversation. User rows double as the
// classification cache: after the pipeline completes, the orchestrator fills
// CanonicalIntent, Route, ResolvedFAQID, and PipelineVersion exactly once, in
// place, keyed by row id. A completed row is recognized by Route being
// non-null; ResolvedFAQID staying null on such a row means "FAQ search ran
// and found nothing" and is a trusted signal, not an absent value.
type Message struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	ConversationID  string      `gorm:"type:text;index:idx_messages_conversation" json:"conversation_id"`
	Sender          Sender      `gorm:"type:text;not null;index:idx_messages_sender" json:"sender"`
	Text            string      `gorm:"type:text;not null" json:"text"`
	MediaURLs       StringArray `gorm:"type:text" json:"media_urls"`
	QueryID         string      `gorm:"type:text;index:idx_messages_query" json:"query_id,omitempty"`
	CanonicalIntent *string     `gorm:"type:text" json:"canonical_intent,omitempty"`
	Route           *string     `gorm:"type:text;index:idx_messages_route" json:"route,omitempty"`
	ResolvedFAQID   *int64      `json:"resolved_faq_id,omitempty"`
	PipelineVersion *int        `gorm:"index:idx_messages_pipeline_version" json:"pipeline_version,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string {
	return "messages"
}
