// services/leveling.go
package services

import (
	"math/rand"
	"time"

	"guild-economy-system/models"
	"guild-economy-system/store"
)

// LevelingService applies message-driven experience gain and the level-up
// state machine.
type LevelingService struct {
	Store *store.Repository
	Cfg   Config

	now func() time.Time
}

func NewLevelingService(repo *store.Repository, cfg Config) *LevelingService {
	return &LevelingService{Store: repo, Cfg: cfg, now: time.Now}
}

// MessageXPResult is the structured outcome of one message event.
type MessageXPResult struct {
	Allowed   bool          `json:"allowed"`
	RetryIn   time.Duration `json:"retry_in,omitempty"`
	XPGained  int64         `json:"xp_gained,omitempty"`
	XP        int64         `json:"xp"`
	XPNeeded  int64         `json:"xp_needed"`
	Level     int           `json:"level"`
	LeveledUp bool          `json:"leveled_up"`
	Reward    int64         `json:"reward,omitempty"`
	Coins     int64         `json:"coins"`
}

// ApplyExperience adds gained experience to the record and resolves any
// level crossings: each time experience reaches level * XPPerLevel the level
// increments, experience resets to zero (excess past the threshold is
// discarded, deliberately, rather than carried over) and the wallet is
// credited new level * LevelUpMultiplier coins. The loop form keeps the
// result well-defined even if a single gain were large enough to cross more
// than one threshold.
func ApplyExperience(rec *models.MemberRecord, gained int64, cfg Config) (leveledUp bool, reward int64) {
	if gained < 0 {
		gained = 0
	}
	rec.XP += gained

	for {
		needed := int64(rec.Level) * cfg.XPPerLevel
		if needed <= 0 || rec.XP < needed {
			break
		}
		rec.Level++
		rec.XP = 0
		r := int64(rec.Level) * cfg.LevelUpMultiplier
		rec.Coins += r
		reward += r
		leveledUp = true
	}
	return leveledUp, reward
}

// XPNeeded returns the experience threshold for the record's current level.
func XPNeeded(rec models.MemberRecord, cfg Config) int64 {
	return int64(rec.Level) * cfg.XPPerLevel
}

// OnMessage handles one inbound message event: a cooldown-gated random XP
// gain plus the leveling state machine, all inside a single member
// transform. A denied cooldown is a normal outcome for message events, not
// an error.
func (s *LevelingService) OnMessage(communityID, memberID string) (MessageXPResult, error) {
	now := s.now()
	gain := randBetween(s.Cfg.XPMin, s.Cfg.XPMax)

	var res MessageXPResult
	rec, err := s.Store.UpdateMember(communityID, memberID, func(rec *models.MemberRecord) error {
		stamp, remaining, allowed := TryConsume(rec.LastMessageAt, s.Cfg.XPCooldown, now)
		if !allowed {
			return &CooldownActiveError{Remaining: remaining}
		}
		rec.LastMessageAt = &stamp

		res.Allowed = true
		res.XPGained = gain
		res.LeveledUp, res.Reward = ApplyExperience(rec, gain, s.Cfg)
		return nil
	})

	if err != nil {
		if ce, ok := AsCooldown(err); ok {
			res = MessageXPResult{Allowed: false, RetryIn: ce.Remaining}
			res.XP = rec.XP
			res.XPNeeded = XPNeeded(rec, s.Cfg)
			res.Level = rec.Level
			res.Coins = rec.Coins
			return res, nil
		}
		return MessageXPResult{}, err
	}

	res.XP = rec.XP
	res.XPNeeded = XPNeeded(rec, s.Cfg)
	res.Level = rec.Level
	res.Coins = rec.Coins
	return res, nil
}

// randBetween returns a uniform value in [min, max].
func randBetween(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rand.Int63n(max-min+1)
}
