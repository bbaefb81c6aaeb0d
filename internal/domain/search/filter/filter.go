// Package filter defines caller-supplied result filters.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
)

// DateRange bounds publication dates inclusively. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// Contains reports whether t falls within the range. Documents without a
// publication date never match a bounded range.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filters narrows a scored result list. The zero value matches everything.
type Filters struct {
	types      []document.SourceType
	sources    []string
	confidence result.Level
	dateRange  DateRange
}

// New validates and builds a filter set.
func New(
	types []document.SourceType,
	sources []string,
	confidence result.Level,
	dateRange DateRange,
) (Filters, error) {
	for _, t := range types {
		if !t.IsValid() {
			return Filters{}, fmt.Errorf("unknown source type %q", t)
		}
	}
	if confidence != "" && !confidence.IsValid() {
		return Filters{}, fmt.Errorf("unknown confidence level %q", confidence)
	}
	if !dateRange.Start.IsZero() && !dateRange.End.IsZero() && dateRange.End.Before(dateRange.Start) {
		return Filters{}, fmt.Errorf("date range end precedes start")
	}
	return Filters{
		types:      types,
		sources:    sources,
		confidence: confidence,
		dateRange:  dateRange,
	}, nil
}

// Types returns the source type membership filter.
func (f *Filters) Types() []document.SourceType { return f.types }

// Sources returns the source name substring filters.
func (f *Filters) Sources() []string { return f.sources }

// Confidence returns the exact confidence level filter ("" when unset).
func (f *Filters) Confidence() result.Level { return f.confidence }

// DateRange returns the publication date bounds.
func (f *Filters) DateRange() DateRange { return f.dateRange }

// IsEmpty reports whether no filter is set.
func (f *Filters) IsEmpty() bool {
	return len(f.types) == 0 && len(f.sources) == 0 && f.confidence == "" && f.dateRange.IsZero()
}

// Describe returns human-readable descriptions of the active filters, in
// application order, for the response metadata.
func (f *Filters) Describe() []string {
	var out []string
	if len(f.types) > 0 {
		names := make([]string, len(f.types))
		for i, t := range f.types {
			names[i] = string(t)
		}
		out = append(out, "types: "+strings.Join(names, ", "))
	}
	if len(f.sources) > 0 {
		out = append(out, "sources: "+strings.Join(f.sources, ", "))
	}
	if f.confidence != "" {
		out = append(out, "confidence: "+string(f.confidence))
	}
	if !f.dateRange.IsZero() {
		out = append(out, "date range: "+formatBound(f.dateRange.Start)+".."+formatBound(f.dateRange.End))
	}
	return out
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format("2006-01-02")
}
