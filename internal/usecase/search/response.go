package search

import (
	"time"

	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
)

// Metadata echoes how the search was executed.
type Metadata struct {
	SourcesSearched []string
	Strategy        string
	FiltersApplied  []string
}

// Response is the aggregated outcome of one search. An empty result
// list is a successful response, not an error.
type Response struct {
	Results      []result.Scored
	TotalResults int
	SearchTime   time.Duration
	Analysis     query.Processed
	Metadata     Metadata
}
