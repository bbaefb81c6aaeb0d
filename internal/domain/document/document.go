// Package document defines the candidate document retrieved from a source,
// prior to scoring.
package document

import "time"

// SourceType classifies the origin of a candidate document.
type SourceType string

// Source type constants.
const (
	Legislation   SourceType = "legislation"
	Judgment      SourceType = "judgment"
	Gazette       SourceType = "gazette"
	Research      SourceType = "research"
	International SourceType = "international"
)

// IsValid checks if the source type is one of the supported values.
func (t SourceType) IsValid() bool {
	switch t {
	case Legislation, Judgment, Gazette, Research, International:
		return true
	}
	return false
}

// Candidate is a document fetched from one source. It is ephemeral: it
// lives for the duration of a single search request and is never persisted.
type Candidate struct {
	id              string
	title           string
	content         string
	sourceName      string
	sourceType      SourceType
	publishedAt     time.Time
	jurisdiction    string
	legalReferences []string
	confidenceHint  string // optional "high"/"medium" tag set by the source
	summary         string // optional enrichment, best-effort
}

// New creates a candidate document.
func New(
	id, title, content, sourceName string,
	sourceType SourceType,
	publishedAt time.Time,
	jurisdiction string,
	legalReferences []string,
) Candidate {
	return Candidate{
		id:              id,
		title:           title,
		content:         content,
		sourceName:      sourceName,
		sourceType:      sourceType,
		publishedAt:     publishedAt,
		jurisdiction:    jurisdiction,
		legalReferences: legalReferences,
	}
}

// ID returns the document identifier.
func (c Candidate) ID() string { return c.id }

// Title returns the document title.
func (c Candidate) Title() string { return c.title }

// Content returns the snippet or full text.
func (c Candidate) Content() string { return c.content }

// SourceName returns the human-readable source name.
func (c Candidate) SourceName() string { return c.sourceName }

// SourceType returns the source classification.
func (c Candidate) SourceType() SourceType { return c.sourceType }

// PublishedAt returns the publication date (zero if unknown).
func (c Candidate) PublishedAt() time.Time { return c.publishedAt }

// Jurisdiction returns the jurisdiction tag (may be empty).
func (c Candidate) Jurisdiction() string { return c.jurisdiction }

// LegalReferences returns cited statutes, articles, and case numbers.
func (c Candidate) LegalReferences() []string { return c.legalReferences }

// ConfidenceHint returns the confidence tag set by the source, if any.
func (c Candidate) ConfidenceHint() string { return c.confidenceHint }

// Summary returns the enrichment summary, if one was produced.
func (c Candidate) Summary() string { return c.summary }

// WithConfidenceHint returns a copy tagged with a source confidence hint.
func (c Candidate) WithConfidenceHint(hint string) Candidate {
	c.confidenceHint = hint
	return c
}

// WithSummary returns a copy carrying an enrichment summary.
func (c Candidate) WithSummary(summary string) Candidate {
	c.summary = summary
	return c
}
