// Package collect retrieves government-activity records from upstream
// sources (Congress, the Federal Register, regulations.gov) and converts
// them to signal.Signal values for the rules engine.
package collect

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abelbrown/govlens/internal/logging"
	"github.com/abelbrown/govlens/internal/signal"
)

// collectTimeout is the timeout for each individual collector run.
const collectTimeout = 30 * time.Second

// maxConcurrentCollects limits parallel collector runs.
const maxConcurrentCollects = 3

// userAgent identifies us to upstream servers.
const userAgent = "GovLens/1.0 (https://github.com/abelbrown/govlens)"

// Collector retrieves raw signals from one upstream source.
// Implementations do not score or classify; they only normalize shape.
type Collector interface {
	Name() string
	Source() signal.Source
	Collect(ctx context.Context) ([]signal.Signal, error)
}

// Manager fans out over registered collectors. One collector failing
// never blocks the others; its error is logged and the batch continues.
type Manager struct {
	collectors []Collector
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewManager creates a Manager over the given collectors. Upstream
// requests share one polite rate limit.
func NewManager(collectors ...Collector) *Manager {
	return &Manager{
		collectors: collectors,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		now:        time.Now,
	}
}

// CollectAll runs every collector and returns the combined, normalized
// batch. Order within the batch follows collector registration order.
func (m *Manager) CollectAll(ctx context.Context) []signal.Signal {
	var mu sync.Mutex
	results := make([][]signal.Signal, len(m.collectors))

	var g errgroup.Group
	g.SetLimit(maxConcurrentCollects)

	for i, c := range m.collectors {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := m.limiter.Wait(ctx); err != nil {
				return nil
			}

			collectCtx, cancel := context.WithTimeout(ctx, collectTimeout)
			defer cancel()

			sigs, err := c.Collect(collectCtx)
			if err != nil {
				logging.Warn("collector failed", "collector", c.Name(), "error", err)
				return nil // errors reported per-collector, never fail the group
			}
			logging.Info("collector done", "collector", c.Name(), "signals", len(sigs))

			mu.Lock()
			results[i] = sigs
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	now := m.now()
	var out []signal.Signal
	for _, sigs := range results {
		for j := range sigs {
			sigs[j].Normalize(now)
		}
		out = append(out, sigs...)
	}
	return out
}
