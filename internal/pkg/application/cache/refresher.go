package cache

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Refresher runs full cache updates in the background, once at start, then
// every interval and whenever it is triggered. A zero interval disables the
// periodic updates.
type Refresher struct {
	feeder   *Feeder
	interval time.Duration
	retry    time.Duration

	trigger chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewRefresher(feeder *Feeder, interval time.Duration) *Refresher {
	return &Refresher{
		feeder:   feeder,
		interval: interval,
		retry:    10 * time.Second,
		trigger:  make(chan struct{}, 1),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	log := logging.GetFromContext(ctx)
	log.Info().Dur("interval", r.interval).Msg("starting cache refresher")

	go r.run(ctx)
}

// Trigger requests a full update. Triggers that arrive while an update is
// pending are coalesced into it.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

func (r *Refresher) Shutdown() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	log := logging.GetFromContext(ctx)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cache refresher exiting")
			return
		case <-r.trigger:
		case <-timer.C:
		}

		wait := r.interval

		if err := r.feeder.UpdateCache(ctx); err != nil {
			log.Error().Err(err).Msg("failed to update the capabilities cache")
			wait = r.retry
		}

		timer.Stop()
		if wait > 0 {
			timer.Reset(wait)
		}
	}
}
