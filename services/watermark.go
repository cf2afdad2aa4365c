// services/watermark.go
package services

import "guild-economy-system/store"

// WatermarkService decides whether an observed item is new for a feed by
// comparing it against the last remembered item ID.
type WatermarkService struct {
	Store *store.Repository
	Cfg   Config
}

func NewWatermarkService(repo *store.Repository, cfg Config) *WatermarkService {
	return &WatermarkService{Store: repo, Cfg: cfg}
}

// Observe records itemID as the latest item for feedID and reports whether
// it counts as new. Repeats of the current watermark are never new. The very
// first observation of a feed seeds the watermark; whether it also counts as
// new is controlled by NotifyOnFirstSight.
func (s *WatermarkService) Observe(feedID, itemID string) bool {
	prev, existed := s.Store.SwapWatermark(feedID, itemID)
	if !existed {
		return s.Cfg.NotifyOnFirstSight
	}
	return prev != itemID
}

// Peek returns the current watermark without advancing it.
func (s *WatermarkService) Peek(feedID string) (string, bool) {
	return s.Store.GetWatermark(feedID)
}
