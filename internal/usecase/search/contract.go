package search

import (
	"context"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/request"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
)

// Processor turns a validated search query into its analyzed form.
type Processor interface {
	Process(req *request.Query) query.Processed
}

// Fetcher queries all registered sources and merges their candidates.
// Implementations absorb per-source failures.
type Fetcher interface {
	FetchAll(ctx context.Context, pq *query.Processed) []document.Candidate
	Sources() []string
}

// Ranker scores candidates and returns them sorted descending by final score.
type Ranker interface {
	Score(candidates []document.Candidate, pq *query.Processed, req *request.Query) []result.Scored
}
