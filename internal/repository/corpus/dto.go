package corpus

import (
	"strconv"
	"strings"
	"time"

	"github.com/mizan-legal/mizan/internal/domain/document"
)

// Hash field names for corpus documents.
const (
	fieldTitle        = "title"
	fieldContent      = "content"
	fieldSourceName   = "source_name"
	fieldJurisdiction = "jurisdiction"
	fieldPublishedAt  = "published_at"
	fieldReferences   = "references"
)

// refSeparator joins legal references into a single hash field. It never
// appears inside a citation.
const refSeparator = "\x1f"

// Entry is one legislation corpus document as stored.
type Entry struct {
	ID           string
	Title        string
	Content      string
	SourceName   string
	Jurisdiction string
	PublishedAt  time.Time
	References   []string
}

// buildHashFields converts an Entry into a flat map[string]string for HSET.
func buildHashFields(e *Entry) map[string]string {
	m := map[string]string{
		fieldTitle:        e.Title,
		fieldContent:      e.Content,
		fieldSourceName:   e.SourceName,
		fieldJurisdiction: e.Jurisdiction,
	}
	if !e.PublishedAt.IsZero() {
		m[fieldPublishedAt] = strconv.FormatInt(e.PublishedAt.Unix(), 10)
	}
	if len(e.References) > 0 {
		m[fieldReferences] = strings.Join(e.References, refSeparator)
	}
	return m
}

// parseHashFields converts a hash back into a candidate document.
func parseHashFields(id string, m map[string]string) document.Candidate {
	var publishedAt time.Time
	if raw, ok := m[fieldPublishedAt]; ok {
		if sec, err := strconv.ParseInt(raw, 10, 64); err == nil {
			publishedAt = time.Unix(sec, 0).UTC()
		}
	}

	var refs []string
	if raw := m[fieldReferences]; raw != "" {
		refs = strings.Split(raw, refSeparator)
	}

	return document.New(
		id,
		m[fieldTitle],
		m[fieldContent],
		m[fieldSourceName],
		document.Legislation,
		publishedAt,
		m[fieldJurisdiction],
		refs,
	)
}
