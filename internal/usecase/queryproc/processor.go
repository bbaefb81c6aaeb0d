// Package queryproc analyzes and enriches raw search queries: it
// normalizes the text, extracts keywords and taxonomy matches, enhances
// the query with domain markers, and derives the search strategy.
package queryproc

import (
	"strings"
	"unicode/utf8"

	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/request"
	"github.com/mizan-legal/mizan/internal/domain/search/strategy"
)

// legalTermThreshold is the legal-term count above which a query is
// considered legislation-focused.
const legalTermThreshold = 2

// minKeywordLen is the minimum keyword length in runes (exclusive).
const minKeywordLen = 2

// Processor turns a validated search request into a processed query.
// It is stateless; all taxonomies are immutable package-level tables.
type Processor struct{}

// New creates a query processor.
func New() *Processor {
	return &Processor{}
}

// Process analyzes the request. It never fails on a validated request.
func (p *Processor) Process(req *request.Query) query.Processed {
	normalized := Normalize(req.Text())

	// Terms and indicators are matched against the query text plus the
	// optional context and case-type hints; keywords come from the query
	// text alone.
	analysisText := normalized
	if ctx := Normalize(req.Context()); ctx != "" {
		analysisText += " " + ctx
	}
	if ct := Normalize(req.CaseType()); ct != "" {
		analysisText += " " + ct
	}

	keywords := extractKeywords(normalized)
	legalTerms := matchTaxonomy(analysisText, legalTaxonomy)
	indicators, categories := matchContext(analysisText)

	enhanced := enhance(req.Text(), normalized, legalTerms, string(req.Jurisdiction()))
	strat := deriveStrategy(req.SearchType(), legalTerms, categories)

	return query.New(
		req.Text(), normalized, enhanced,
		keywords, legalTerms, indicators, strat,
	)
}

// extractKeywords tokenizes normalized text, drops stop words and short
// tokens, and deduplicates preserving first-seen order.
func extractKeywords(normalized string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range Tokenize(normalized) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if utf8.RuneCountInString(tok) <= minKeywordLen {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// matchTaxonomy returns every category name or term found in the text.
// Matching is by substring so inflected forms ("الطلاق") still hit their
// base term ("طلاق"). Output order follows the taxonomy, keeping results
// deterministic.
func matchTaxonomy(text string, taxonomy []taxonomyEntry) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(term string) {
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	for _, entry := range taxonomy {
		if strings.Contains(text, entry.category) {
			add(entry.category)
		}
		for _, term := range entry.terms {
			if strings.Contains(text, term) {
				add(term)
			}
		}
	}
	return out
}

// matchContext matches the intent taxonomy and additionally reports which
// categories fired, for strategy derivation.
func matchContext(text string) (indicators []string, categories map[string]bool) {
	categories = make(map[string]bool)
	seen := make(map[string]struct{})
	for _, entry := range contextTaxonomy {
		for _, term := range entry.terms {
			if !strings.Contains(text, term) {
				continue
			}
			categories[entry.category] = true
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			indicators = append(indicators, term)
		}
	}
	return indicators, categories
}

// enhance appends matched legal terms to the original text, then a
// jurisdiction marker unless the query already carries a domain marker.
// The user's original phrasing is never discarded.
func enhance(original, normalized string, legalTerms []string, jurisdiction string) string {
	parts := []string{original}
	parts = append(parts, legalTerms...)

	marker := jurisdictionMarkers[jurisdiction]
	if marker == "" {
		marker = genericMarker
	}
	if !strings.Contains(normalized, genericMarker) && !strings.Contains(normalized, marker) {
		parts = append(parts, marker)
	}

	return strings.Join(parts, " ")
}

// deriveStrategy applies the ordered strategy rules. An explicit search
// type wins; otherwise litigation intent, then legal-term density, then
// research intent, then mixed.
func deriveStrategy(
	searchType request.SearchType,
	legalTerms []string,
	categories map[string]bool,
) strategy.Strategy {
	if searchType != "" {
		if s, ok := strategy.FromSearchType(string(searchType)); ok {
			return s
		}
	}
	if categories[ctxLitigation] {
		return strategy.JudgmentFocused
	}
	if len(legalTerms) > legalTermThreshold {
		return strategy.LegislationFocused
	}
	if categories[ctxResearch] {
		return strategy.ResearchFocused
	}
	return strategy.Mixed
}
