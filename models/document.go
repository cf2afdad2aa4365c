// models/document.go
package models

import "fmt"

// Document is the single persisted state document. Every mutable piece of
// community state lives in one of these nested maps; the store flushes the
// whole document as one JSON blob.
type Document struct {
	// Members is keyed by "<communityID>_<memberID>".
	Members map[string]MemberRecord `json:"members"`

	// Warnings is keyed by "<communityID>_<memberID>"; each value is an
	// append-only list, oldest first.
	Warnings map[string][]Warning `json:"warnings"`

	// ShopCatalog is keyed by communityID, then itemID.
	ShopCatalog map[string]map[string]ShopItem `json:"shop_catalog"`

	// Inventories is keyed by "<communityID>_<memberID>", then itemID.
	// Consumable items accumulate one entry per purchase.
	Inventories map[string]map[string][]InventoryEntry `json:"inventories"`

	// ReactionRoles is keyed by communityID, then messageID, then emoji.
	// The leaf value is the role ID granted for that reaction.
	ReactionRoles map[string]map[string]map[string]string `json:"reaction_roles"`

	// FeedWatchers is keyed by communityID.
	FeedWatchers map[string]FeedWatcher `json:"feeds"`

	// ShortLinks is keyed by communityID, then short code.
	ShortLinks map[string]map[string]string `json:"short_links"`

	// LeaderboardChannels maps communityID to the channel the periodic
	// leaderboard post is kept in.
	LeaderboardChannels map[string]string `json:"leaderboard_channels"`

	// Watermarks holds last-seen external identifiers, keyed by a
	// namespaced feed ID (e.g. "youtube:<communityID>",
	// "lbpost:<communityID>"). Absence means never observed.
	Watermarks map[string]string `json:"watermarks"`
}

// NewDocument returns an empty, fully allocated document.
func NewDocument() Document {
	d := Document{}
	d.Normalize()
	return d
}

// Normalize allocates any nil maps so a document decoded from a partial or
// older snapshot is safe to use without nil checks scattered across callers.
func (d *Document) Normalize() {
	if d.Members == nil {
		d.Members = map[string]MemberRecord{}
	}
	if d.Warnings == nil {
		d.Warnings = map[string][]Warning{}
	}
	if d.ShopCatalog == nil {
		d.ShopCatalog = map[string]map[string]ShopItem{}
	}
	if d.Inventories == nil {
		d.Inventories = map[string]map[string][]InventoryEntry{}
	}
	if d.ReactionRoles == nil {
		d.ReactionRoles = map[string]map[string]map[string]string{}
	}
	if d.FeedWatchers == nil {
		d.FeedWatchers = map[string]FeedWatcher{}
	}
	if d.ShortLinks == nil {
		d.ShortLinks = map[string]map[string]string{}
	}
	if d.LeaderboardChannels == nil {
		d.LeaderboardChannels = map[string]string{}
	}
	if d.Watermarks == nil {
		d.Watermarks = map[string]string{}
	}
}

// MemberKey builds the composite per-member key.
func MemberKey(communityID, memberID string) string {
	return fmt.Sprintf("%s_%s", communityID, memberID)
}
