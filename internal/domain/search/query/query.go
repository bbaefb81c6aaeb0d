// Package query defines the processed query: the enriched, normalized
// representation of the user's search text used by all downstream stages.
package query

import "github.com/mizan-legal/mizan/internal/domain/search/strategy"

// Processed is the outcome of query analysis. It is created once per
// request and read-only downstream.
type Processed struct {
	original          string
	normalized        string
	enhanced          string
	keywords          []string
	legalTerms        []string
	contextIndicators []string
	strategy          strategy.Strategy
}

// New creates a processed query. Slices are taken as-is; the query
// processor guarantees they are deduplicated sets.
func New(
	original, normalized, enhanced string,
	keywords, legalTerms, contextIndicators []string,
	s strategy.Strategy,
) Processed {
	return Processed{
		original:          original,
		normalized:        normalized,
		enhanced:          enhanced,
		keywords:          keywords,
		legalTerms:        legalTerms,
		contextIndicators: contextIndicators,
		strategy:          s,
	}
}

// Original returns the user's raw query text.
func (p *Processed) Original() string { return p.original }

// Normalized returns the normalized query text.
func (p *Processed) Normalized() string { return p.normalized }

// Enhanced returns the query text enriched with legal terms and markers.
func (p *Processed) Enhanced() string { return p.enhanced }

// Keywords returns the extracted keyword set (order irrelevant).
func (p *Processed) Keywords() []string { return p.keywords }

// LegalTerms returns terms matched against the legal taxonomy.
func (p *Processed) LegalTerms() []string { return p.legalTerms }

// ContextIndicators returns matched intent indicators.
func (p *Processed) ContextIndicators() []string { return p.contextIndicators }

// Strategy returns the derived search strategy.
func (p *Processed) Strategy() strategy.Strategy { return p.strategy }
