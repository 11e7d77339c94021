package main

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/code-payments/mad-raffle/pkg/metrics"
)

type watchSummary struct {
	Runs     int `json:"runs"`
	Failures int `json:"failures"`
	Raffles  int `json:"raffles"`
}

// runWatch updates the local history on the configured schedule until ctx is
// done. Runs never overlap.
func runWatch(ctx context.Context, r *runtime, _ []string) (interface{}, error) {
	log := r.log.WithField("method", "watch").WithField("schedule", r.config.WatchSchedule)

	var mu sync.Mutex
	summary := &watchSummary{}

	reconcile := func() {
		start := time.Now()

		records, err := r.client.UpdateRaffleHistory(ctx)

		mu.Lock()
		defer mu.Unlock()

		summary.Runs++
		if err != nil {
			summary.Failures++
			log.WithError(err).Warn("failed to update raffle history")
			return
		}
		summary.Raffles = len(records)

		metrics.RecordDuration(ctx, "madraffle.history.update", time.Since(start))
		metrics.RecordCount(ctx, "madraffle.history.raffles", uint64(len(records)))
		log.WithField("raffles", len(records)).Debug("raffle history updated")
	}

	scheduler := cron.New(
		cron.WithLocation(time.Local),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := scheduler.AddFunc(r.config.WatchSchedule, reconcile); err != nil {
		return nil, errors.Wrap(err, "invalid watch schedule")
	}

	log.Info("watching raffle history")
	reconcile()

	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()

	mu.Lock()
	defer mu.Unlock()

	log.WithField("runs", summary.Runs).Info("stopped watching raffle history")
	return summary, nil
}
