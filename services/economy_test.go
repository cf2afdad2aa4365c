package services

import (
	"testing"
	"time"

	"guild-economy-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDailyCooldownGate checks the 24h daily gate end to end.
func TestDailyCooldownGate(t *testing.T) {
	repo := newTestStore(t)
	clock := newFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	svc := NewEconomyService(repo, DefaultConfig())
	svc.now = clock.Now

	res, err := svc.Daily("c1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Earned)
	assert.Equal(t, int64(100), res.Coins)

	_, err = svc.Daily("c1", "m1")
	ce, ok := AsCooldown(err)
	require.True(t, ok, "second daily inside the window must be a cooldown denial")
	assert.Equal(t, 24*time.Hour, ce.Remaining)
	assert.Equal(t, int64(100), repo.GetMember("c1", "m1").Coins)

	clock.Advance(24 * time.Hour)
	res, err = svc.Daily("c1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), res.Coins)
}

// TestWorkAndFishPayoutBounds checks the random payouts stay in range and
// use independent cooldown stamps.
func TestWorkAndFishPayoutBounds(t *testing.T) {
	repo := newTestStore(t)
	clock := newFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	svc := NewEconomyService(repo, DefaultConfig())
	svc.now = clock.Now

	work, err := svc.Work("c1", "m1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, work.Earned, int64(10))
	assert.LessOrEqual(t, work.Earned, int64(50))

	// Fish runs on its own stamp, so it is open even right after work.
	fish, err := svc.Fish("c1", "m1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fish.Earned, int64(5))
	assert.LessOrEqual(t, fish.Earned, int64(30))

	_, err = svc.Fish("c1", "m1")
	_, ok := AsCooldown(err)
	assert.True(t, ok)

	clock.Advance(5 * time.Minute)
	_, err = svc.Fish("c1", "m1")
	assert.NoError(t, err)

	// Work's hour-long window is still closed at +5m.
	_, err = svc.Work("c1", "m1")
	_, ok = AsCooldown(err)
	assert.True(t, ok)
}

// TestDepositWithdraw checks bank transfers and their denials.
func TestDepositWithdraw(t *testing.T) {
	repo := newTestStore(t)
	svc := NewEconomyService(repo, DefaultConfig())

	_, err := repo.UpdateMember("c1", "m1", func(rec *models.MemberRecord) error {
		rec.Coins = 100
		return nil
	})
	require.NoError(t, err)

	res, err := svc.Deposit("c1", "m1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(40), res.Coins)
	assert.Equal(t, int64(60), res.Bank)
	assert.Equal(t, int64(100), res.Total)

	_, err = svc.Deposit("c1", "m1", 41)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = svc.Withdraw("c1", "m1", 61)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	res, err = svc.Withdraw("c1", "m1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Coins)
	assert.Zero(t, res.Bank)

	_, err = svc.Deposit("c1", "m1", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.Withdraw("c1", "m1", -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestBalanceDefaults checks a never-seen member reads as an empty account.
func TestBalanceDefaults(t *testing.T) {
	repo := newTestStore(t)
	svc := NewEconomyService(repo, DefaultConfig())

	res := svc.Balance("c1", "ghost")
	assert.Zero(t, res.Coins)
	assert.Zero(t, res.Bank)
	assert.Zero(t, res.Total)
}
