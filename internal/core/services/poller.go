package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// DefaultPollInterval is how often the store fingerprint is recomputed.
const DefaultPollInterval = 30 * time.Second

// Poller periodically recomputes the store fingerprint and refreshes the
// snapshot when it differs from the last observed value. This is a pure
// polling design - the store offers no push path - so correctness depends
// only on fingerprint equality, never on interpreting what changed.
type Poller struct {
	scanner  driving.ScanService
	holder   *SnapshotHolder
	interval time.Duration

	// watch is an optional change hint channel from the store; a hint
	// prompts an early check but the fingerprint still decides.
	watcher driven.ChangeWatcher

	// refresh receives a signal after every snapshot replacement so the
	// presentation layer can re-render.
	refresh chan struct{}

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewPoller creates a poller. watcher may be nil. A non-positive
// interval falls back to DefaultPollInterval.
func NewPoller(scanner driving.ScanService, holder *SnapshotHolder, watcher driven.ChangeWatcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		scanner:  scanner,
		holder:   holder,
		interval: interval,
		watcher:  watcher,
		refresh:  make(chan struct{}, 1),
	}
}

// Refresh returns the channel signalled after each snapshot replacement.
func (p *Poller) Refresh() <-chan struct{} {
	return p.refresh
}

// Start runs the polling loop. It blocks until ctx is cancelled or Stop
// is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil // Already running
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.mu.Unlock()

	var hints <-chan struct{}
	if p.watcher != nil {
		ch, err := p.watcher.Watch(ctx)
		if err != nil {
			logger.Warn("Change watch unavailable, polling only: %v", err)
		} else {
			hints = ch
		}
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			p.Check(ctx)
		case _, ok := <-hints:
			if !ok {
				hints = nil
				continue
			}
			p.Check(ctx)
		}
	}
}

// Stop terminates a running loop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stopCh)
}

// Check compares the current fingerprint with the last observed one and
// rescans on mismatch. An unreachable store (empty fingerprint) no-ops.
func (p *Poller) Check(ctx context.Context) {
	fp, err := p.scanner.Fingerprint(ctx)
	if err != nil || fp == "" {
		return
	}
	if fp == p.scanner.LastFingerprint() {
		return
	}

	logger.Info("Store fingerprint changed, rescanning")
	snapshot, err := p.scanner.Scan(ctx)
	if err != nil {
		logger.Warn("Rescan failed: %v", err)
		return
	}

	p.holder.Replace(snapshot)

	// Non-blocking: a pending refresh signal already covers this change.
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}
