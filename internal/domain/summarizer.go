package domain

import "context"

// Summarizer produces a short summary of a document snippet. It is a
// best-effort enrichment hook: adapters may call it for their top results
// and must tolerate any error by keeping the original content.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}
