package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGranter records role grant/revoke intents.
type stubGranter struct {
	mu      sync.Mutex
	grants  []string
	revokes []string
	err     error
}

func (s *stubGranter) GrantRole(ctx context.Context, communityID, memberID, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants = append(s.grants, memberID+":"+roleID)
	return s.err
}

func (s *stubGranter) RevokeRole(ctx context.Context, communityID, memberID, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokes = append(s.revokes, memberID+":"+roleID)
	return s.err
}

// TestBindResolveRoundTrip checks a binding resolves and a duplicate bind
// is rejected.
func TestBindResolveRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	svc := NewReactionRoleService(repo, nil)

	require.NoError(t, svc.Bind("c1", "msg1", "🎮", "role-gamer"))

	roleID, ok := svc.Resolve("c1", "msg1", "🎮")
	require.True(t, ok)
	assert.Equal(t, "role-gamer", roleID)

	err := svc.Bind("c1", "msg1", "🎮", "role-other")
	assert.ErrorIs(t, err, ErrBindingExists)

	// The original binding survives the rejected rebind.
	roleID, ok = svc.Resolve("c1", "msg1", "🎮")
	require.True(t, ok)
	assert.Equal(t, "role-gamer", roleID)
}

// TestResolveMisses checks unbound lookups across message, emoji and
// community boundaries.
func TestResolveMisses(t *testing.T) {
	repo := newTestStore(t)
	svc := NewReactionRoleService(repo, nil)

	require.NoError(t, svc.Bind("c1", "msg1", "🎮", "role-gamer"))

	_, ok := svc.Resolve("c1", "msg1", "🎵")
	assert.False(t, ok)
	_, ok = svc.Resolve("c1", "msg2", "🎮")
	assert.False(t, ok)
	_, ok = svc.Resolve("c2", "msg1", "🎮")
	assert.False(t, ok)
}

// TestUnbind checks single-emoji and whole-message removal.
func TestUnbind(t *testing.T) {
	repo := newTestStore(t)
	svc := NewReactionRoleService(repo, nil)

	require.NoError(t, svc.Bind("c1", "msg1", "🎮", "r1"))
	require.NoError(t, svc.Bind("c1", "msg1", "🎵", "r2"))

	require.NoError(t, svc.Unbind("c1", "msg1", "🎮"))
	_, ok := svc.Resolve("c1", "msg1", "🎮")
	assert.False(t, ok)
	_, ok = svc.Resolve("c1", "msg1", "🎵")
	assert.True(t, ok)

	assert.ErrorIs(t, svc.Unbind("c1", "msg1", "🎮"), ErrNotFound)

	// Rebinding after unbind is allowed.
	require.NoError(t, svc.Bind("c1", "msg1", "🎮", "r3"))

	// Empty emoji clears the whole message.
	require.NoError(t, svc.Unbind("c1", "msg1", ""))
	assert.Empty(t, svc.List("c1"))

	assert.ErrorIs(t, svc.Unbind("c1", "gone", ""), ErrNotFound)
}

// TestHandleReaction checks event handling delegates grant and revoke and
// ignores unbound pairs.
func TestHandleReaction(t *testing.T) {
	repo := newTestStore(t)
	granter := &stubGranter{}
	svc := NewReactionRoleService(repo, granter)

	require.NoError(t, svc.Bind("c1", "msg1", "🎮", "r1"))

	roleID, matched := svc.HandleReaction(context.Background(), "c1", "msg1", "🎮", "m1", true)
	assert.True(t, matched)
	assert.Equal(t, "r1", roleID)
	assert.Equal(t, []string{"m1:r1"}, granter.grants)

	_, matched = svc.HandleReaction(context.Background(), "c1", "msg1", "🎮", "m1", false)
	assert.True(t, matched)
	assert.Equal(t, []string{"m1:r1"}, granter.revokes)

	_, matched = svc.HandleReaction(context.Background(), "c1", "msg1", "❓", "m1", true)
	assert.False(t, matched)
	assert.Len(t, granter.grants, 1, "unbound reactions emit no intent")
}
