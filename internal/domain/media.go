package domain

import "time"

// MediaKind categorizes media items. Diagram media is attached wholesale to
// education answers; everything else is linked per-FAQ.
type MediaKind string

const (
	MediaKindDiagram MediaKind = "diagram"
	MediaKindGeneral MediaKind = "general"
)

// Media is an attachable image or document. URL takes precedence when set;
// otherwise the public URL is resolved from StorageKey through the object
// storage client.
type Media struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:text" json:"name"`
	URL        string    `gorm:"type:text" json:"url"`
	StorageKey string    `gorm:"type:text" json:"storage_key"`
	Kind       MediaKind `gorm:"type:text;index:idx_media_kind;default:general" json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Media.
func (Media) TableName() string {
	return "media"
}
