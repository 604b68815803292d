package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RefreshJob periodically re-fetches ranked stats for all accounts so the
// dashboard stays current between manual refreshes.
type RefreshJob struct {
	refresh  func(ctx context.Context) error
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewRefreshJob(refresh func(ctx context.Context) error, interval time.Duration) *RefreshJob {
	return &RefreshJob{
		refresh:  refresh,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *RefreshJob) Start() {
	if j.interval <= 0 {
		close(j.done)
		log.Info().Msg("background refresh disabled")
		return
	}

	go j.run()
	log.Info().Dur("interval", j.interval).Msg("background refresh started")
}

func (j *RefreshJob) Stop() {
	close(j.stop)
	<-j.done
}

func (j *RefreshJob) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.runOnce()

	for {
		select {
		case <-ticker.C:
			j.runOnce()
		case <-j.stop:
			return
		}
	}
}

func (j *RefreshJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	if err := j.refresh(ctx); err != nil {
		log.Error().Err(err).Msg("background refresh failed")
		return
	}
	log.Debug().Msg("background refresh completed")
}
