// services/config.go
package services

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable the economy/leveling core uses. Values come
// from the environment with the defaults below.
type Config struct {
	// Message XP
	XPMin      int64
	XPMax      int64
	XPCooldown time.Duration
	XPPerLevel int64
	// Coins granted on level-up: new level * multiplier
	LevelUpMultiplier int64

	// Economy commands
	DailyReward   int64
	DailyCooldown time.Duration
	WorkMin       int64
	WorkMax       int64
	WorkCooldown  time.Duration
	FishMin       int64
	FishMax       int64
	FishCooldown  time.Duration

	// Leaderboard
	LeaderboardTopN int

	// Feed watching. NotifyOnFirstSight controls whether the very first
	// observation of a feed announces its newest item; off by default so a
	// freshly configured feed does not replay pre-existing history.
	NotifyOnFirstSight bool
	FeedBaseURL        string

	// Background task intervals
	AutosaveInterval           time.Duration
	LeaderboardRefreshInterval time.Duration
	FeedPollInterval           time.Duration
}

// DefaultConfig mirrors the long-standing production tunables.
func DefaultConfig() Config {
	return Config{
		XPMin:             15,
		XPMax:             25,
		XPCooldown:        60 * time.Second,
		XPPerLevel:        100,
		LevelUpMultiplier: 10,

		DailyReward:   100,
		DailyCooldown: 24 * time.Hour,
		WorkMin:       10,
		WorkMax:       50,
		WorkCooldown:  time.Hour,
		FishMin:       5,
		FishMax:       30,
		FishCooldown:  5 * time.Minute,

		LeaderboardTopN: 10,

		NotifyOnFirstSight: false,
		FeedBaseURL:        "https://www.youtube.com/feeds/videos.xml?channel_id=",

		AutosaveInterval:           60 * time.Second,
		LeaderboardRefreshInterval: 10 * time.Minute,
		FeedPollInterval:           5 * time.Minute,
	}
}

// ConfigFromEnv loads the defaults and applies any environment overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envInt64(&cfg.XPMin, "XP_MIN")
	envInt64(&cfg.XPMax, "XP_MAX")
	envSeconds(&cfg.XPCooldown, "XP_COOLDOWN_SECONDS")
	envInt64(&cfg.XPPerLevel, "XP_PER_LEVEL")
	envInt64(&cfg.LevelUpMultiplier, "LEVEL_UP_MULTIPLIER")

	envInt64(&cfg.DailyReward, "DAILY_REWARD")
	envSeconds(&cfg.DailyCooldown, "DAILY_COOLDOWN_SECONDS")
	envInt64(&cfg.WorkMin, "WORK_MIN")
	envInt64(&cfg.WorkMax, "WORK_MAX")
	envSeconds(&cfg.WorkCooldown, "WORK_COOLDOWN_SECONDS")
	envInt64(&cfg.FishMin, "FISH_MIN")
	envInt64(&cfg.FishMax, "FISH_MAX")
	envSeconds(&cfg.FishCooldown, "FISH_COOLDOWN_SECONDS")

	if v := os.Getenv("LEADERBOARD_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LeaderboardTopN = n
		}
	}

	cfg.NotifyOnFirstSight = os.Getenv("FEED_NOTIFY_ON_FIRST_SIGHT") == "true"
	if v := os.Getenv("FEED_BASE_URL"); v != "" {
		cfg.FeedBaseURL = v
	}

	envSeconds(&cfg.AutosaveInterval, "AUTOSAVE_SECONDS")
	envSeconds(&cfg.LeaderboardRefreshInterval, "LEADERBOARD_REFRESH_SECONDS")
	envSeconds(&cfg.FeedPollInterval, "FEED_POLL_SECONDS")

	return cfg
}

func envInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func envSeconds(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Second
		}
	}
}
