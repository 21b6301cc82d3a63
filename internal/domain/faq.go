package domain

import "time"

// FAQ is a canonical question/answer pair usable as a direct response.
// Embedding always corresponds to the Intent field, never to the raw
// question; whenever Intent changes the row must be re-embedded (see
// cmd/reembed). The matching core treats FAQ rows as read-only.
type FAQ struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Intent    string     `gorm:"type:text;not null;index:idx_faqs_intent" json:"intent"`
	Question  string     `gorm:"type:text" json:"question"`
	Answer    string     `gorm:"type:text;not null" json:"answer"`
	Embedding Vector     `gorm:"type:text" json:"embedding,omitempty"`
	MediaIDs  Int64Array `gorm:"type:text" json:"media_ids"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the database table name for FAQ.
func (FAQ) TableName() string {
	return "faqs"
}
