package models

import "time"

// PreviewEntry is the table row used by the embedded database backend. Value holds
// the serialized PreviewRecord exactly as the file backend would write it.
type PreviewEntry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of gorm's pluralization rules.
func (PreviewEntry) TableName() string {
	return "preview_entries"
}
