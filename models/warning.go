// models/warning.go
package models

import "time"

// Warning is one issued moderation warning. Records are append-only; a
// member's list is only ever extended or wholly cleared.
type Warning struct {
	ID       string    `json:"id"`
	Reason   string    `json:"reason"`
	IssuedBy string    `json:"issued_by"` // moderator member ID
	IssuedAt time.Time `json:"issued_at"`
}
