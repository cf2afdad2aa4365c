// services/scheduler.go
package services

import (
	"context"
	"log"

	"guild-economy-system/store"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler launches the background jobs: periodic snapshot flushes,
// leaderboard post refreshes, and feed polling. The returned scheduler is
// shut down by the caller on exit.
func StartScheduler(ctx context.Context, repo *store.Repository, lb *LeaderboardService, feeds *FeedService, cfg Config) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	// Autosave: flush only when something changed since the last snapshot.
	_, err = sched.NewJob(
		gocron.DurationJob(cfg.AutosaveInterval),
		gocron.NewTask(func() {
			if !repo.Dirty() {
				return
			}
			if err := repo.Flush(ctx); err != nil {
				log.Printf("❌ [SCHEDULER] Snapshot flush failed: %v", err)
				return
			}
			log.Println("✅ [SCHEDULER] Snapshot flushed")
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.LeaderboardRefreshInterval),
		gocron.NewTask(func() {
			lb.RefreshAll(ctx)
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.FeedPollInterval),
		gocron.NewTask(func() {
			feeds.PollAll(ctx)
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Println("✅ [SCHEDULER] Background jobs started")
	return sched, nil
}
