package analyzer

import (
	"log/slog"
	"sync"
	"time"
)

// Aggregator recomputes the analysis snapshot after content changes settle.
// Every Update restarts the settle delay; when it elapses without a newer
// change, the snapshot for the latest content is published. Superseded
// recomputations never publish, so each published Snapshot is consistent
// with exactly one content state.
type Aggregator struct {
	settle  time.Duration
	publish func(Snapshot)
	logger  *slog.Logger

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	closed bool
}

// NewAggregator creates an aggregator with the given settle delay. publish
// is invoked once per settled content change with the resulting snapshot.
func NewAggregator(settle time.Duration, publish func(Snapshot), logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		settle:  settle,
		publish: publish,
		logger:  logger,
	}
}

// Update registers a content change and (re)starts the settle delay.
func (a *Aggregator) Update(content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	a.gen++
	gen := a.gen

	if a.timer != nil {
		a.timer.Stop()
	}

	a.timer = time.AfterFunc(a.settle, func() {
		// Compute outside the lock; the pipeline is pure.
		snap := Compute(content)

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed || gen != a.gen {
			a.logger.Debug("Dropping superseded snapshot", "generation", gen)
			return
		}
		a.publish(snap)
	})
}

// Close stops any pending recomputation. Further updates are ignored.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
