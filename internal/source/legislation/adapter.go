// Package legislation adapts the local legislation corpus (redis
// full-text index) as a document source.
package legislation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain"
	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/source"
)

// SourceName is the human-readable name echoed in response metadata.
const SourceName = "التشريعات الوطنية"

// Searcher is the corpus read contract.
type Searcher interface {
	Search(ctx context.Context, queryText string, topK int) ([]document.Candidate, error)
}

// Adapter fetches legislation candidates from the local corpus.
type Adapter struct {
	corpus     Searcher
	limit      int
	summarizer domain.Summarizer
	topN       int
	logger     *zap.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// New creates a legislation adapter.
func New(corpus Searcher, limit int, logger *zap.Logger) *Adapter {
	if limit <= 0 {
		limit = source.DefaultMaxCandidates
	}
	return &Adapter{corpus: corpus, limit: limit, logger: logger}
}

// WithSummarizer enables the best-effort enrichment hook for topN results.
func (a *Adapter) WithSummarizer(s domain.Summarizer, topN int) *Adapter {
	a.summarizer = s
	a.topN = topN
	return a
}

// Name implements source.Adapter.
func (a *Adapter) Name() string { return SourceName }

// Type implements source.Adapter.
func (a *Adapter) Type() document.SourceType { return document.Legislation }

// Fetch searches the corpus with the enhanced query text, which carries
// the matched legal terms and the jurisdiction marker.
func (a *Adapter) Fetch(ctx context.Context, pq *query.Processed) ([]document.Candidate, error) {
	// Over-fetch so the title pre-filter ranks a wider pool before capping.
	candidates, err := a.corpus.Search(ctx, pq.Enhanced(), a.limit*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, SourceName, err)
	}

	candidates = source.Prefilter(candidates, pq, a.limit)
	source.Enrich(ctx, a.summarizer, candidates, a.topN, a.logger)
	return candidates, nil
}
