// Package fetch runs all registered source adapters concurrently and
// collects their candidates. A failing source never fails the search:
// its slot stays empty and the failure is logged and counted.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/metrics"
	"github.com/mizan-legal/mizan/internal/source"
)

// DefaultSourceTimeout bounds a single source fetch when no timeout is configured.
const DefaultSourceTimeout = 10 * time.Second

// Orchestrator fans a processed query out to every adapter.
type Orchestrator struct {
	adapters []source.Adapter
	pool     *ants.Pool
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates an orchestrator over the given adapters. The worker pool
// is sized to the adapter count so one search never queues behind itself.
func New(adapters []source.Adapter, timeout time.Duration, logger *zap.Logger) (*Orchestrator, error) {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}

	size := len(adapters)
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size * 4)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		adapters: adapters,
		pool:     pool,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// Sources returns the names of all registered adapters in registration order.
func (o *Orchestrator) Sources() []string {
	names := make([]string, len(o.adapters))
	for i, a := range o.adapters {
		names[i] = a.Name()
	}
	return names
}

// FetchAll queries every adapter concurrently and returns the merged
// candidates in adapter registration order. Source failures and
// timeouts are absorbed: the source contributes nothing and the error
// is logged. FetchAll itself never fails.
func (o *Orchestrator) FetchAll(ctx context.Context, pq *query.Processed) []document.Candidate {
	slots := make([][]document.Candidate, len(o.adapters))

	var wg sync.WaitGroup
	for i, a := range o.adapters {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = o.fetchOne(ctx, a, pq)
		}
		if err := o.pool.Submit(task); err != nil {
			// Pool saturated or released. Run inline rather than drop the source.
			task()
		}
	}
	wg.Wait()

	var merged []document.Candidate
	for _, s := range slots {
		merged = append(merged, s...)
	}
	return merged
}

func (o *Orchestrator) fetchOne(ctx context.Context, a source.Adapter, pq *query.Processed) []document.Candidate {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	candidates, err := a.Fetch(ctx, pq)
	elapsed := time.Since(start)

	metrics.SourceFetchDuration.WithLabelValues(a.Name()).Observe(elapsed.Seconds())
	if err != nil {
		metrics.SourceFetchesTotal.WithLabelValues(a.Name(), "error").Inc()
		o.logger.Warn("source fetch failed",
			zap.String("source", a.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil
	}

	metrics.SourceFetchesTotal.WithLabelValues(a.Name(), "ok").Inc()
	metrics.SourceCandidates.WithLabelValues(a.Name()).Observe(float64(len(candidates)))
	o.logger.Debug("source fetch completed",
		zap.String("source", a.Name()),
		zap.Int("candidates", len(candidates)),
		zap.Duration("elapsed", elapsed),
	)
	return candidates
}

// Release frees the worker pool. The orchestrator must not be used afterwards.
func (o *Orchestrator) Release() {
	o.pool.Release()
}
