// services/economy.go
package services

import (
	"time"

	"guild-economy-system/models"
	"guild-economy-system/store"
)

// EconomyService owns the coin commands: balance, cooldown-gated earners
// (daily, work, fish) and wallet/bank transfers.
type EconomyService struct {
	Store *store.Repository
	Cfg   Config

	now func() time.Time
}

func NewEconomyService(repo *store.Repository, cfg Config) *EconomyService {
	return &EconomyService{Store: repo, Cfg: cfg, now: time.Now}
}

// BalanceResult reports a member's currency holdings.
type BalanceResult struct {
	Coins int64 `json:"coins"`
	Bank  int64 `json:"bank"`
	Total int64 `json:"total"`
}

// EarnResult reports a successful earner command.
type EarnResult struct {
	Earned int64 `json:"earned"`
	Coins  int64 `json:"coins"`
	Bank   int64 `json:"bank"`
}

func (s *EconomyService) Balance(communityID, memberID string) BalanceResult {
	rec := s.Store.GetMember(communityID, memberID)
	return BalanceResult{Coins: rec.Coins, Bank: rec.Bank, Total: rec.Coins + rec.Bank}
}

// Daily grants the fixed daily reward, once per cooldown window.
func (s *EconomyService) Daily(communityID, memberID string) (EarnResult, error) {
	return s.earn(communityID, memberID, s.Cfg.DailyReward,
		func(rec *models.MemberRecord) **time.Time { return &rec.LastDailyAt },
		s.Cfg.DailyCooldown)
}

// Work grants a random payout, once per cooldown window.
func (s *EconomyService) Work(communityID, memberID string) (EarnResult, error) {
	return s.earn(communityID, memberID, randBetween(s.Cfg.WorkMin, s.Cfg.WorkMax),
		func(rec *models.MemberRecord) **time.Time { return &rec.LastWorkAt },
		s.Cfg.WorkCooldown)
}

// Fish grants a random (smaller) payout, once per cooldown window.
func (s *EconomyService) Fish(communityID, memberID string) (EarnResult, error) {
	return s.earn(communityID, memberID, randBetween(s.Cfg.FishMin, s.Cfg.FishMax),
		func(rec *models.MemberRecord) **time.Time { return &rec.LastFishAt },
		s.Cfg.FishCooldown)
}

// earn is the shared cooldown-gated payout path. The gate check and the
// wallet credit commit in one transform so a racing duplicate command can
// win at most once per window.
func (s *EconomyService) earn(communityID, memberID string, amount int64, stampOf func(*models.MemberRecord) **time.Time, window time.Duration) (EarnResult, error) {
	now := s.now()

	rec, err := s.Store.UpdateMember(communityID, memberID, func(rec *models.MemberRecord) error {
		field := stampOf(rec)
		stamp, remaining, allowed := TryConsume(*field, window, now)
		if !allowed {
			return &CooldownActiveError{Remaining: remaining}
		}
		*field = &stamp
		rec.Coins += amount
		return nil
	})
	if err != nil {
		return EarnResult{}, err
	}
	return EarnResult{Earned: amount, Coins: rec.Coins, Bank: rec.Bank}, nil
}

// Deposit moves coins from wallet to bank.
func (s *EconomyService) Deposit(communityID, memberID string, amount int64) (BalanceResult, error) {
	return s.transfer(communityID, memberID, amount, true)
}

// Withdraw moves coins from bank to wallet.
func (s *EconomyService) Withdraw(communityID, memberID string, amount int64) (BalanceResult, error) {
	return s.transfer(communityID, memberID, amount, false)
}

func (s *EconomyService) transfer(communityID, memberID string, amount int64, toBank bool) (BalanceResult, error) {
	if amount < 1 {
		return BalanceResult{}, ErrInvalidArgument
	}

	rec, err := s.Store.UpdateMember(communityID, memberID, func(rec *models.MemberRecord) error {
		if toBank {
			if rec.Coins < amount {
				return ErrInsufficientFunds
			}
			rec.Coins -= amount
			rec.Bank += amount
			return nil
		}
		if rec.Bank < amount {
			return ErrInsufficientFunds
		}
		rec.Bank -= amount
		rec.Coins += amount
		return nil
	})
	if err != nil {
		return BalanceResult{}, err
	}
	return BalanceResult{Coins: rec.Coins, Bank: rec.Bank, Total: rec.Coins + rec.Bank}, nil
}
