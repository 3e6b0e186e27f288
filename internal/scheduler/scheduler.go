package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// StatsSource is what the reporter polls; the Postgres store satisfies it.
type StatsSource interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (map[string]int64, error)
}

// Reporter periodically pings the store and logs per-table row counts.
type Reporter struct {
	scheduler *gocron.Scheduler
	store     StatsSource
	interval  time.Duration
}

// New creates a new Reporter.
func New(store StatsSource, interval time.Duration) *Reporter {
	s := gocron.NewScheduler(time.UTC)
	return &Reporter{
		scheduler: s,
		store:     store,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (r *Reporter) Start() error {
	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := r.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.store.Ping(ctx); err != nil {
			log.Printf("scheduler: store ping failed: %v", err)
			return
		}

		counts, err := r.store.Stats(ctx)
		if err != nil {
			log.Printf("scheduler: store stats failed: %v", err)
			return
		}
		log.Printf("scheduler: store row counts: %v", counts)
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Reporter) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
