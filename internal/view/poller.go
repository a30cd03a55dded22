// Package view holds the per-screen controllers: each owns a snapshot
// of the data its screen shows, refreshes it by polling, and funnels
// user actions through to the mock service or the remote gateway.
// Controllers expose snapshots and notifications; they do not render.
package view

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Poller drives one screen concern: an immediate fetch on start, then a
// fixed-interval refresh until stopped. Results are full replacements.
// A fetch that finishes after a newer one has been applied, or after
// the poller was stopped, is discarded.
type Poller[T any] struct {
	name    string
	logger  *slog.Logger
	fetch   func(context.Context) (T, error)
	apply   func(T)
	onError func(error)

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	seq      uint64
	applied  uint64
	reload   chan struct{}
}

func NewPoller[T any](name string, interval time.Duration, logger *slog.Logger,
	fetch func(context.Context) (T, error), apply func(T), onError func(error)) *Poller[T] {
	return &Poller[T]{
		name:     name,
		logger:   logger,
		fetch:    fetch,
		apply:    apply,
		onError:  onError,
		interval: interval,
		reload:   make(chan struct{}, 1),
	}
}

// Start begins polling. Starting an active poller is a no-op, so a
// screen activated twice still runs a single timer.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	interval := p.interval
	p.mu.Unlock()

	go p.run(ctx, interval)
}

// Stop cancels the poll loop. In-flight fetches finish but their
// results are discarded.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (p *Poller[T]) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// SetInterval changes the refresh interval. An active poller restarts
// its timer and fetches immediately.
func (p *Poller[T]) SetInterval(d time.Duration) {
	p.mu.Lock()
	p.interval = d
	active := p.cancel != nil
	p.mu.Unlock()

	if active {
		select {
		case p.reload <- struct{}{}:
		default:
		}
	}
}

func (p *Poller[T]) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

func (p *Poller[T]) run(ctx context.Context, interval time.Duration) {
	p.logger.Info("poller started", "screen", p.name, "interval", interval)

	p.fetchOnce(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped", "screen", p.name)
			return
		case <-p.reload:
			p.mu.Lock()
			interval = p.interval
			p.mu.Unlock()
			ticker.Reset(interval)
			p.logger.Info("poller interval changed", "screen", p.name, "interval", interval)
			p.fetchOnce(ctx)
		case <-ticker.C:
			// Fetches run off the loop so a slow backend cannot delay
			// the next tick; ordering is enforced by sequence numbers.
			go p.fetchOnce(ctx)
		}
	}
}

func (p *Poller[T]) fetchOnce(ctx context.Context) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	v, err := p.fetch(ctx)

	// The screen may have been torn down while the fetch was in flight.
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		if p.onError != nil {
			p.onError(err)
		}
		return
	}

	p.mu.Lock()
	stale := seq <= p.applied
	if !stale {
		p.applied = seq
	}
	active := p.cancel != nil
	p.mu.Unlock()

	if stale || !active {
		p.logger.Debug("discarding stale poll result", "screen", p.name, "seq", seq)
		return
	}
	p.apply(v)
}
