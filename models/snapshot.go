// models/snapshot.go
package models

import "time"

// SnapshotRow is the single-row table used when the flushed document is
// persisted to Postgres instead of a local file. The whole document is one
// JSON blob; Seq increments on every successful flush.
type SnapshotRow struct {
	ID      int       `gorm:"primaryKey" json:"id"`
	Seq     int64     `gorm:"not null;default:0" json:"seq"`
	Data    []byte    `gorm:"type:jsonb;not null" json:"data"`
	SavedAt time.Time `gorm:"autoUpdateTime" json:"saved_at"`
}

// TableName keeps the table name stable regardless of gorm pluralization.
func (SnapshotRow) TableName() string { return "state_snapshots" }
