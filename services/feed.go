// services/feed.go
package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"guild-economy-system/models"
	"guild-economy-system/store"
)

// FeedService watches per-community upload feeds and announces new items.
// New-item detection rides on the watermark store: the latest seen item ID
// is the per-feed watermark.
type FeedService struct {
	Store      *store.Repository
	Watermarks *WatermarkService
	Notifier   Notifier
	BaseURL    string // Atom feed URL prefix, feed channel ID is appended
	HTTPClient *http.Client
}

func NewFeedService(repo *store.Repository, wm *WatermarkService, notifier Notifier, cfg Config) *FeedService {
	return &FeedService{
		Store:      repo,
		Watermarks: wm,
		Notifier:   notifier,
		BaseURL:    cfg.FeedBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// atomFeed covers the subset of the Atom schema the watcher needs.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
	Link  struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Author struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Published string `xml:"published"`
}

// Setup binds a community to an upload feed and picks the channel that
// receives announcements. The watcher starts enabled.
func (s *FeedService) Setup(communityID, feedChannelID, notifyChannelID string) (models.FeedWatcher, error) {
	if feedChannelID == "" || notifyChannelID == "" {
		return models.FeedWatcher{}, ErrInvalidArgument
	}
	return s.Store.UpdateFeedWatcher(communityID, func(w *models.FeedWatcher) error {
		w.Enabled = true
		w.FeedChannelID = feedChannelID
		w.NotifyChannelID = notifyChannelID
		return nil
	})
}

// Toggle flips the watcher on or off without touching the binding.
func (s *FeedService) Toggle(communityID string, enabled bool) (models.FeedWatcher, error) {
	return s.Store.UpdateFeedWatcher(communityID, func(w *models.FeedWatcher) error {
		if w.FeedChannelID == "" {
			return ErrNotFound
		}
		w.Enabled = enabled
		return nil
	})
}

// Status returns the watcher binding for a community.
func (s *FeedService) Status(communityID string) (models.FeedWatcher, bool) {
	return s.Store.GetFeedWatcher(communityID)
}

// fetch downloads and parses the Atom feed for one feed channel, newest
// entry first.
func (s *FeedService) fetch(ctx context.Context, feedChannelID string) ([]atomEntry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.BaseURL+feedChannelID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return feed.Entries, nil
}

// PollAll checks every enabled watcher once and announces feeds whose
// newest entry changed. Fetch errors skip the community and leave its
// watermark untouched so the item is retried next tick.
func (s *FeedService) PollAll(ctx context.Context) {
	watchers := s.Store.FeedWatchers()
	for communityID, w := range watchers {
		if !w.Enabled || w.FeedChannelID == "" {
			continue
		}

		entries, err := s.fetch(ctx, w.FeedChannelID)
		if err != nil {
			log.Printf("❌ [FEEDS] Poll failed for %s: %v", communityID, err)
			continue
		}
		if len(entries) == 0 {
			continue
		}

		// Watermarks are per community, not per feed channel: two
		// communities watching the same channel each keep their own
		// last-seen item and each get their own announcement.
		latest := entries[0]
		if !s.Watermarks.Observe("youtube:"+communityID, latest.ID) {
			continue
		}

		log.Printf("📥 [FEEDS] New item %s for %s", latest.ID, communityID)
		if s.Notifier == nil {
			continue
		}
		err = s.Notifier.AnnounceVideo(ctx, communityID, w.NotifyChannelID, VideoAnnouncement{
			VideoID:     latest.ID,
			Title:       latest.Title,
			Link:        latest.Link.Href,
			Author:      latest.Author.Name,
			PublishedAt: latest.Published,
		})
		if err != nil {
			log.Printf("❌ [FEEDS] Announce failed for %s: %v", communityID, err)
		}
	}
}
