// models/feed.go
package models

// FeedWatcher is a community's external-feed notification configuration.
// The last-seen item ID lives in Document.Watermarks, not here, so the
// watermark bookkeeping stays in one place.
type FeedWatcher struct {
	Enabled         bool   `json:"enabled"`
	FeedChannelID   string `json:"feed_channel_id"`   // external channel being watched
	NotifyChannelID string `json:"notify_channel_id"` // chat channel announcements go to
}
