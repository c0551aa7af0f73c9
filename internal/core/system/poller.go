package system

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is the wall-clock time between two ticks.
const DefaultPollInterval = 100 * time.Millisecond

// Poller ticks a Runner at a fixed interval on its own goroutine,
// independent of whatever goroutine services shape requests. Shutdown is
// cooperative: the context is checked once per wakeup and a tick that has
// started always runs to completion.
type Poller struct {
	runner   *Runner
	interval time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(runner *Runner, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{runner: runner, interval: interval, log: log}
}

// Interval returns the configured tick interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Run blocks, ticking the runner until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("poller started", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				p.log.Info("poller stopped")
				return
			}
			p.runner.Tick(p.interval)
		}
	}
}

// Start launches Run on a new goroutine. Calling Start on a running
// poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		p.Run(ctx)
	}(p.done)
}

// Stop signals the goroutine started by Start and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	<-done
}
