// Package source defines the document source adapter contract and the
// helpers shared by all adapters: the title-relevance pre-filter and the
// best-effort summarization hook.
package source

import (
	"context"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
)

// Adapter fetches and pre-filters candidate documents from one source.
// Implementations are stateless and independent. A fetch failure is
// returned as an error so the orchestrator can absorb it; adapters never
// panic and never block past their configured timeout budget.
type Adapter interface {
	// Name is the human-readable source name echoed in response metadata.
	Name() string
	// Type classifies the documents this source produces.
	Type() document.SourceType
	// Fetch retrieves candidates for the processed query.
	Fetch(ctx context.Context, pq *query.Processed) ([]document.Candidate, error)
}
