// services/leaderboard.go
package services

import (
	"context"
	"log"
	"sort"

	"guild-economy-system/store"
)

// LeaderboardService derives ordered views over member records and keeps the
// periodic leaderboard post up to date. It never mutates member state.
type LeaderboardService struct {
	Store    *store.Repository
	Cfg      Config
	Notifier Notifier
}

func NewLeaderboardService(repo *store.Repository, cfg Config, notifier Notifier) *LeaderboardService {
	return &LeaderboardService{Store: repo, Cfg: cfg, Notifier: notifier}
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"member_id"`
	Level    int    `json:"level"`
	XP       int64  `json:"xp"`
	Coins    int64  `json:"coins"`
}

// Rank returns the community's top-N members ordered by (level desc, xp
// desc). Ties keep the scan order, which is member-ID ascending, so repeated
// calls over unchanged data return identical rankings. Ranks are 1-based
// with no gap filling.
func (s *LeaderboardService) Rank(communityID string, topN int) []RankEntry {
	entries := s.Store.MembersOf(communityID)

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Record.Level != entries[j].Record.Level {
			return entries[i].Record.Level > entries[j].Record.Level
		}
		return entries[i].Record.XP > entries[j].Record.XP
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	out := make([]RankEntry, len(entries))
	for i, e := range entries {
		out[i] = RankEntry{
			Rank:     i + 1,
			MemberID: e.MemberID,
			Level:    e.Record.Level,
			XP:       e.Record.XP,
			Coins:    e.Record.Coins,
		}
	}
	return out
}

// ProfileResult is the /rank view for a single member.
type ProfileResult struct {
	MemberID string `json:"member_id"`
	Rank     int    `json:"rank"` // 0 = unranked
	OutOf    int    `json:"out_of"`
	Level    int    `json:"level"`
	XP       int64  `json:"xp"`
	XPNeeded int64  `json:"xp_needed"`
	Coins    int64  `json:"coins"`
	Bank     int64  `json:"bank"`
}

// Profile returns one member's record with its position in the full
// community ranking.
func (s *LeaderboardService) Profile(communityID, memberID string) ProfileResult {
	all := s.Rank(communityID, 0)
	rec := s.Store.GetMember(communityID, memberID)

	res := ProfileResult{
		MemberID: memberID,
		OutOf:    len(all),
		Level:    rec.Level,
		XP:       rec.XP,
		XPNeeded: XPNeeded(rec, s.Cfg),
		Coins:    rec.Coins,
		Bank:     rec.Bank,
	}
	for _, e := range all {
		if e.MemberID == memberID {
			res.Rank = e.Rank
			break
		}
	}
	return res
}

// RefreshAll recomputes the top-N for every community with a configured
// leaderboard channel and pushes an upsert intent through the gateway. The
// identity of the posted message is tracked with the same watermark
// bookkeeping the feed poller uses, so restarts edit the existing post
// instead of stacking new ones.
func (s *LeaderboardService) RefreshAll(ctx context.Context) {
	if s.Notifier == nil {
		return
	}

	for communityID, channelID := range s.Store.LeaderboardChannels() {
		entries := s.Rank(communityID, s.Cfg.LeaderboardTopN)
		if len(entries) == 0 {
			continue
		}

		lastMessageID, _ := s.Store.GetWatermark("lbpost:" + communityID)
		messageID, err := s.Notifier.UpsertLeaderboardPost(ctx, communityID, channelID, lastMessageID, entries)
		if err != nil {
			log.Printf("❌ [LEADERBOARD] Failed to refresh post for community %s: %v", communityID, err)
			continue
		}
		if messageID != lastMessageID {
			s.Store.SwapWatermark("lbpost:"+communityID, messageID)
		}
	}
}
