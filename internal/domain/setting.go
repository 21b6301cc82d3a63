package domain

import "time"

// SettingCacheEnabled toggles the read-through/write-through decision cache.
// Absent or unreadable means enabled (fail-open).
const SettingCacheEnabled = "cache_enabled"

// Setting is a single key/value configuration row.
type Setting struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string {
	return "settings"
}
