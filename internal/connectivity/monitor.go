// Package connectivity watches reachability of the sync endpoint and
// reports offline/online transitions so a sync can be kicked off as soon
// as the connection comes back.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Prober answers whether the remote endpoint is currently reachable.
type Prober interface {
	Ping(ctx context.Context) bool
}

// Monitor polls a Prober at a fixed interval and fires the registered
// hooks exactly once per state transition.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *slog.Logger

	onOnline  func(ctx context.Context)
	onOffline func(ctx context.Context)

	mu     sync.Mutex
	online bool
	known  bool
}

// NewMonitor creates a monitor over the given prober. The first probe runs
// immediately when Run starts.
func NewMonitor(prober Prober, interval time.Duration, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		logger:   logger,
	}
}

// OnOnline registers the hook fired when the endpoint becomes reachable.
// Must be called before Run.
func (m *Monitor) OnOnline(fn func(ctx context.Context)) { m.onOnline = fn }

// OnOffline registers the hook fired when the endpoint stops answering.
// Must be called before Run.
func (m *Monitor) OnOffline(fn func(ctx context.Context)) { m.onOffline = fn }

// Online reports the last observed state. False until the first probe
// completes.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.known && m.online
}

// Run probes until ctx is canceled. It always returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs a single probe and fires a hook if the state changed. The
// initial probe reports the first observed state as a transition so a
// reachable endpoint triggers an immediate sync on startup.
func (m *Monitor) Check(ctx context.Context) {
	online := m.prober.Ping(ctx)

	m.mu.Lock()
	changed := !m.known || online != m.online
	m.online = online
	m.known = true
	m.mu.Unlock()

	if !changed {
		return
	}

	if online {
		m.logger.InfoContext(ctx, "Sync endpoint reachable")
		if m.onOnline != nil {
			m.onOnline(ctx)
		}
	} else {
		m.logger.InfoContext(ctx, "Sync endpoint unreachable")
		if m.onOffline != nil {
			m.onOffline(ctx)
		}
	}
}
