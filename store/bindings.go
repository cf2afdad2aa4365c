// store/bindings.go
package store

import (
	"maps"

	"guild-economy-system/models"
)

// UpdateReactionRoles runs one atomic transform against a community's
// reaction-role binding table. The transform receives a deep clone
// (message map and each emoji map) and may mutate it freely.
func (r *Repository) UpdateReactionRoles(communityID string, fn func(map[string]map[string]string) error) error {
	_, err := update(r, "reactions", communityID,
		func(d *models.Document) map[string]map[string]map[string]string { return d.ReactionRoles },
		func() map[string]map[string]string { return map[string]map[string]string{} },
		func(table *map[string]map[string]string) error {
			cloned := make(map[string]map[string]string, len(*table))
			for messageID, emojis := range *table {
				cloned[messageID] = maps.Clone(emojis)
			}
			*table = cloned
			return fn(*table)
		},
	)
	return err
}

// ResolveReactionRole is the hot lookup on every inbound reaction event.
func (r *Repository) ResolveReactionRole(communityID, messageID, emoji string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roleID, ok := r.doc.ReactionRoles[communityID][messageID][emoji]
	return roleID, ok
}

// GetReactionRoles returns a deep copy of a community's binding table.
func (r *Repository) GetReactionRoles(communityID string) map[string]map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table := r.doc.ReactionRoles[communityID]
	if len(table) == 0 {
		return nil
	}
	out := make(map[string]map[string]string, len(table))
	for messageID, emojis := range table {
		out[messageID] = maps.Clone(emojis)
	}
	return out
}

// UpdateShortLinks runs one atomic transform against a community's short
// link table (clone-in, commit-out like the other map sections).
func (r *Repository) UpdateShortLinks(communityID string, fn func(map[string]string) error) error {
	_, err := update(r, "links", communityID,
		func(d *models.Document) map[string]map[string]string { return d.ShortLinks },
		func() map[string]string { return map[string]string{} },
		func(links *map[string]string) error {
			*links = maps.Clone(*links)
			return fn(*links)
		},
	)
	return err
}

// GetShortLinks returns a copy of a community's short link table.
func (r *Repository) GetShortLinks(communityID string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	links := r.doc.ShortLinks[communityID]
	if len(links) == 0 {
		return nil
	}
	return maps.Clone(links)
}

// UpdateFeedWatcher runs one atomic transform against a community's feed
// watcher configuration.
func (r *Repository) UpdateFeedWatcher(communityID string, fn func(*models.FeedWatcher) error) (models.FeedWatcher, error) {
	return update(r, "feed", communityID,
		func(d *models.Document) map[string]models.FeedWatcher { return d.FeedWatchers },
		func() models.FeedWatcher { return models.FeedWatcher{} },
		fn,
	)
}

// GetFeedWatcher returns a community's feed watcher configuration.
func (r *Repository) GetFeedWatcher(communityID string) (models.FeedWatcher, bool) {
	return read(r, communityID,
		func(d *models.Document) map[string]models.FeedWatcher { return d.FeedWatchers })
}

// FeedWatchers returns a copy of every configured feed watcher.
func (r *Repository) FeedWatchers() map[string]models.FeedWatcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.doc.FeedWatchers)
}

// SetLeaderboardChannel records the channel a community's periodic
// leaderboard post lives in.
func (r *Repository) SetLeaderboardChannel(communityID, channelID string) {
	_, _ = update(r, "lbchan", communityID,
		func(d *models.Document) map[string]string { return d.LeaderboardChannels },
		func() string { return "" },
		func(v *string) error { *v = channelID; return nil },
	)
}

// LeaderboardChannels returns a copy of the configured leaderboard channels.
func (r *Repository) LeaderboardChannels() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.doc.LeaderboardChannels)
}

// SwapWatermark atomically replaces the stored last-seen item ID for one
// feed and returns the previous value. The stored ID always advances to the
// newest observation, even when several items appeared between polls.
func (r *Repository) SwapWatermark(feedID, itemID string) (prev string, existed bool) {
	lk := r.lockFor("wm:" + feedID)
	lk.Lock()
	defer lk.Unlock()

	r.mu.RLock()
	prev, existed = r.doc.Watermarks[feedID]
	r.mu.RUnlock()

	if existed && prev == itemID {
		return prev, existed
	}
	r.commit(func(d *models.Document) {
		d.Watermarks[feedID] = itemID
	})
	return prev, existed
}

// GetWatermark returns the stored last-seen item ID for one feed.
func (r *Repository) GetWatermark(feedID string) (string, bool) {
	return read(r, feedID,
		func(d *models.Document) map[string]string { return d.Watermarks })
}
