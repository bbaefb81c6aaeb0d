package source

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain"
	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/usecase/ranking"
)

// DefaultMaxCandidates bounds how many candidates an adapter returns.
const DefaultMaxCandidates = 30

// Prefilter orders candidates by title relevance against the query and
// caps the list. Low-scoring candidates are kept (only the size cap
// drops anything) so the global scorer sees every fetched document that
// fits the volume budget. The sort is stable to keep adapter output
// deterministic for identical inputs.
func Prefilter(candidates []document.Candidate, pq *query.Processed, limit int) []document.Candidate {
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = ranking.TitleScore(candidates[i].Title(), pq.Normalized())
	}

	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	if len(idx) > limit {
		idx = idx[:limit]
	}

	out := make([]document.Candidate, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out
}

// summarizeTimeout bounds each enrichment call so the hook can never eat
// the adapter's fetch budget.
const summarizeTimeout = 3 * time.Second

// Enrich attaches best-effort summaries to the first topN candidates.
// Each call runs concurrently with its own deadline; every failure is
// logged at debug and otherwise ignored. A nil summarizer is a no-op.
func Enrich(
	ctx context.Context,
	summarizer domain.Summarizer,
	candidates []document.Candidate,
	topN int,
	logger *zap.Logger,
) {
	if summarizer == nil || topN <= 0 {
		return
	}
	if topN > len(candidates) {
		topN = len(candidates)
	}

	var wg sync.WaitGroup
	for i := 0; i < topN; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
			defer cancel()

			c := &candidates[i]
			summary, err := summarizer.Summarize(sctx, c.Title(), c.Content())
			if err != nil {
				logger.Debug("summarization skipped",
					zap.String("doc_id", c.ID()),
					zap.Error(err),
				)
				return
			}
			candidates[i] = c.WithSummary(summary)
		}(i)
	}
	wg.Wait()
}
