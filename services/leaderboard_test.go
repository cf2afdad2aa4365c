package services

import (
	"context"
	"sync"
	"testing"

	"guild-economy-system/models"
	"guild-economy-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMember(t *testing.T, repo *store.Repository, communityID, memberID string, level int, xp, coins int64) {
	t.Helper()
	_, err := repo.UpdateMember(communityID, memberID, func(rec *models.MemberRecord) error {
		rec.Level = level
		rec.XP = xp
		rec.Coins = coins
		return nil
	})
	require.NoError(t, err)
}

// TestRankOrdering checks level-desc then xp-desc ordering with 1-based
// ranks.
func TestRankOrdering(t *testing.T) {
	repo := newTestStore(t)
	svc := NewLeaderboardService(repo, DefaultConfig(), nil)

	seedMember(t, repo, "c1", "low", 1, 50, 0)
	seedMember(t, repo, "c1", "high", 5, 10, 0)
	seedMember(t, repo, "c1", "mid", 3, 90, 0)
	seedMember(t, repo, "c1", "mid2", 3, 95, 0)

	entries := svc.Rank("c1", 0)
	require.Len(t, entries, 4)
	assert.Equal(t, "high", entries[0].MemberID)
	assert.Equal(t, "mid2", entries[1].MemberID)
	assert.Equal(t, "mid", entries[2].MemberID)
	assert.Equal(t, "low", entries[3].MemberID)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

// TestRankDeterministicTies checks that full ties order by member ID and
// repeat identically.
func TestRankDeterministicTies(t *testing.T) {
	repo := newTestStore(t)
	svc := NewLeaderboardService(repo, DefaultConfig(), nil)

	for _, id := range []string{"delta", "bravo", "alpha", "charlie"} {
		seedMember(t, repo, "c1", id, 2, 40, 0)
	}

	first := svc.Rank("c1", 0)
	require.Len(t, first, 4)
	assert.Equal(t, "alpha", first[0].MemberID)
	assert.Equal(t, "bravo", first[1].MemberID)
	assert.Equal(t, "charlie", first[2].MemberID)
	assert.Equal(t, "delta", first[3].MemberID)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.Rank("c1", 0))
	}
}

// TestRankTopN checks truncation.
func TestRankTopN(t *testing.T) {
	repo := newTestStore(t)
	svc := NewLeaderboardService(repo, DefaultConfig(), nil)

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		seedMember(t, repo, "c1", id, i+1, 0, 0)
	}

	entries := svc.Rank("c1", 3)
	require.Len(t, entries, 3)
	assert.Equal(t, "e", entries[0].MemberID)
	assert.Equal(t, 5, entries[0].Level)
}

// TestProfile checks the single-member view, ranked and unranked.
func TestProfile(t *testing.T) {
	repo := newTestStore(t)
	svc := NewLeaderboardService(repo, DefaultConfig(), nil)

	seedMember(t, repo, "c1", "m1", 2, 30, 500)
	seedMember(t, repo, "c1", "m2", 4, 10, 0)

	p := svc.Profile("c1", "m1")
	assert.Equal(t, 2, p.Rank)
	assert.Equal(t, 2, p.OutOf)
	assert.Equal(t, int64(200), p.XPNeeded)
	assert.Equal(t, int64(500), p.Coins)

	ghost := svc.Profile("c1", "ghost")
	assert.Zero(t, ghost.Rank, "a member with no record is unranked")
	assert.Equal(t, 1, ghost.Level)
}

// stubNotifier records leaderboard upserts for RefreshAll tests.
type stubNotifier struct {
	mu      sync.Mutex
	upserts []string // "community/channel/lastMessageID"
	nextID  string
}

func (s *stubNotifier) AnnounceVideo(ctx context.Context, communityID, channelID string, video VideoAnnouncement) error {
	return nil
}

func (s *stubNotifier) UpsertLeaderboardPost(ctx context.Context, communityID, channelID, lastMessageID string, entries []RankEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts = append(s.upserts, communityID+"/"+channelID+"/"+lastMessageID)
	return s.nextID, nil
}

// TestRefreshAllTracksMessageIdentity checks the post identity is
// remembered between refreshes so the second run edits, not reposts.
func TestRefreshAllTracksMessageIdentity(t *testing.T) {
	repo := newTestStore(t)
	notifier := &stubNotifier{nextID: "msg-1"}
	svc := NewLeaderboardService(repo, DefaultConfig(), notifier)

	seedMember(t, repo, "c1", "m1", 2, 10, 0)
	repo.SetLeaderboardChannel("c1", "chan-9")

	svc.RefreshAll(context.Background())
	notifier.nextID = "msg-1"
	svc.RefreshAll(context.Background())

	require.Len(t, notifier.upserts, 2)
	assert.Equal(t, "c1/chan-9/", notifier.upserts[0], "first refresh has no prior message")
	assert.Equal(t, "c1/chan-9/msg-1", notifier.upserts[1], "second refresh edits the existing post")
}
