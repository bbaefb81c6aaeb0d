// Package search implements the end-to-end search pipeline: query
// analysis, concurrent source fetch, scoring, deduplication, confidence
// assignment, and result aggregation.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/mizan-legal/mizan/internal/domain/search/filter"
	"github.com/mizan-legal/mizan/internal/domain/search/request"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
	"github.com/mizan-legal/mizan/internal/usecase/ranking"
)

// Service runs searches across all registered sources.
type Service struct {
	proc  Processor
	fetch Fetcher
	rank  Ranker
	now   func() time.Time
}

// New creates a search service.
func New(proc Processor, fetch Fetcher, rank Ranker) *Service {
	return &Service{proc: proc, fetch: fetch, rank: rank, now: time.Now}
}

// Search executes the full pipeline for one request. Source failures
// are absorbed upstream, so the only errors are the caller's own:
// invalid requests are rejected before this point, and ctx cancellation
// surfaces as an empty fetch.
func (s *Service) Search(ctx context.Context, req *request.Query, f *filter.Filters) *Response {
	start := s.now()

	pq := s.proc.Process(req)
	candidates := s.fetch.FetchAll(ctx, &pq)

	results := s.rank.Score(candidates, &pq, req)
	results = ranking.Dedup(results)
	results = ranking.AssignConfidence(results)
	results = applyFilters(results, f)

	total := len(results)
	if len(results) > req.MaxResults() {
		results = results[:req.MaxResults()]
	}

	return &Response{
		Results:      results,
		TotalResults: total,
		SearchTime:   s.now().Sub(start),
		Analysis:     pq,
		Metadata: Metadata{
			SourcesSearched: s.fetch.Sources(),
			Strategy:        string(pq.Strategy()),
			FiltersApplied:  f.Describe(),
		},
	}
}

// applyFilters narrows results in a fixed order: source types, source
// name substrings, exact confidence level, then publication date range.
func applyFilters(results []result.Scored, f *filter.Filters) []result.Scored {
	if f == nil || f.IsEmpty() {
		return results
	}

	out := results[:0]
	for i := range results {
		if matches(&results[i], f) {
			out = append(out, results[i])
		}
	}
	return out
}

func matches(r *result.Scored, f *filter.Filters) bool {
	doc := r.Document()

	if types := f.Types(); len(types) > 0 {
		found := false
		for _, t := range types {
			if doc.SourceType() == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if sources := f.Sources(); len(sources) > 0 {
		found := false
		for _, s := range sources {
			if strings.Contains(doc.SourceName(), s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if level := f.Confidence(); level != "" && r.Confidence() != level {
		return false
	}

	if dr := f.DateRange(); !dr.IsZero() && !dr.Contains(doc.PublishedAt()) {
		return false
	}

	return true
}
