// models/member.go
package models

import "time"

// MemberRecord tracks per-community economy and leveling state for one
// member. A nil cooldown stamp means the action has never been taken.
type MemberRecord struct {
	// Core progression
	XP    int64 `json:"xp"`
	Level int   `json:"level"`

	// Currency
	Coins int64 `json:"coins"`
	Bank  int64 `json:"bank"`

	// Cooldown stamps
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	LastDailyAt   *time.Time `json:"last_daily_at,omitempty"`
	LastWorkAt    *time.Time `json:"last_work_at,omitempty"`
	LastFishAt    *time.Time `json:"last_fish_at,omitempty"`
}

// NewMemberRecord returns the default record created on first interaction.
func NewMemberRecord() MemberRecord {
	return MemberRecord{Level: 1}
}
