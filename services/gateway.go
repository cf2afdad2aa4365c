// services/gateway.go
package services

import "context"

// RoleGranter executes role mutations against the live chat platform. The
// core only emits intents; delivery failures are logged by callers and never
// roll back binding or inventory state.
type RoleGranter interface {
	GrantRole(ctx context.Context, communityID, memberID, roleID string) error
	RevokeRole(ctx context.Context, communityID, memberID, roleID string) error
}

// VideoAnnouncement describes a newly observed feed item.
type VideoAnnouncement struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Notifier delivers outbound announcements through the gateway collaborator.
type Notifier interface {
	AnnounceVideo(ctx context.Context, communityID, channelID string, video VideoAnnouncement) error

	// UpsertLeaderboardPost creates or edits the community's leaderboard
	// message and returns the message ID now holding it. lastMessageID is
	// empty when no post exists yet.
	UpsertLeaderboardPost(ctx context.Context, communityID, channelID, lastMessageID string, entries []RankEntry) (string, error)
}
