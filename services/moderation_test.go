package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWarnAppends checks issued warnings accumulate with UUID-tagged
// records.
func TestWarnAppends(t *testing.T) {
	repo := newTestStore(t)
	svc := NewModerationService(repo)

	first, err := svc.Warn("c1", "m1", "mod1", "spamming")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Total)
	assert.Equal(t, "spamming", first.Warning.Reason)
	assert.Equal(t, "mod1", first.Warning.IssuedBy)
	_, err = uuid.Parse(first.Warning.ID)
	assert.NoError(t, err)

	second, err := svc.Warn("c1", "m1", "mod2", "  still spamming  ")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, "still spamming", second.Warning.Reason)
	assert.NotEqual(t, first.Warning.ID, second.Warning.ID)

	list := svc.Warnings("c1", "m1")
	require.Len(t, list, 2)
	assert.Equal(t, first.Warning.ID, list[0].ID, "warnings keep issue order")
}

// TestWarnRejectsEmptyReason checks blank reasons are denied.
func TestWarnRejectsEmptyReason(t *testing.T) {
	repo := newTestStore(t)
	svc := NewModerationService(repo)

	_, err := svc.Warn("c1", "m1", "mod1", "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, svc.Warnings("c1", "m1"))
}

// TestClearWarnings checks the wipe and its empty-case denial.
func TestClearWarnings(t *testing.T) {
	repo := newTestStore(t)
	svc := NewModerationService(repo)

	_, err := svc.Warn("c1", "m1", "mod1", "one")
	require.NoError(t, err)
	_, err = svc.Warn("c1", "m1", "mod1", "two")
	require.NoError(t, err)

	cleared, err := svc.ClearWarnings("c1", "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)
	assert.Empty(t, svc.Warnings("c1", "m1"))

	_, err = svc.ClearWarnings("c1", "m1")
	assert.ErrorIs(t, err, ErrNotFound)
}
