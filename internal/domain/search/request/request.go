// Package request defines the validated, immutable search query input.
package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mizan-legal/mizan/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength    = 1000
	DefaultMaxResults = 10
	MaxMaxResults     = 50
)

// Jurisdiction scopes a search to a body of law.
type Jurisdiction string

// Jurisdiction constants.
const (
	Local         Jurisdiction = "local"
	International Jurisdiction = "international"
	Academic      Jurisdiction = "academic"
)

// IsValid checks if the jurisdiction is one of the supported values.
func (j Jurisdiction) IsValid() bool {
	return j == Local || j == International || j == Academic
}

// SearchType is the caller's explicit content preference.
type SearchType string

// Search type constants.
const (
	FullText   SearchType = "full_text"
	Summary    SearchType = "summary"
	References SearchType = "references"
	Mixed      SearchType = "mixed"
)

// IsValid checks if the search type is one of the supported values.
func (t SearchType) IsValid() bool {
	return t == FullText || t == Summary || t == References || t == Mixed
}

// Query is a validated search request.
type Query struct {
	text         string
	context      string
	caseType     string
	jurisdiction Jurisdiction
	searchType   SearchType // empty when the caller left strategy derivation to us
	maxResults   int
}

// New validates and normalizes search parameters.
// Defaults: jurisdiction=local, maxResults=10 clamped to [1,50].
func New(
	text, queryContext, caseType string,
	jurisdiction Jurisdiction,
	searchType SearchType,
	maxResults int,
) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, fmt.Errorf("%w: query text is required", domain.ErrInvalidQuery)
	}
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: max %d chars", domain.ErrQueryTooLong, MaxQueryLength)
	}
	if jurisdiction == "" {
		jurisdiction = Local
	}
	if !jurisdiction.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown jurisdiction %q", domain.ErrInvalidQuery, jurisdiction)
	}
	if searchType != "" && !searchType.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown search type %q", domain.ErrInvalidQuery, searchType)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}

	return Query{
		text:         text,
		context:      queryContext,
		caseType:     caseType,
		jurisdiction: jurisdiction,
		searchType:   searchType,
		maxResults:   maxResults,
	}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// Context returns the optional user-supplied context.
func (q *Query) Context() string { return q.context }

// CaseType returns the optional case type hint.
func (q *Query) CaseType() string { return q.caseType }

// Jurisdiction returns the target jurisdiction.
func (q *Query) Jurisdiction() Jurisdiction { return q.jurisdiction }

// SearchType returns the explicit search type ("" when unset).
func (q *Query) SearchType() SearchType { return q.searchType }

// MaxResults returns the result cap, already clamped to [1,50].
func (q *Query) MaxResults() int { return q.maxResults }
