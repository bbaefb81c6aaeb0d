// Package corpus persists the local legislation corpus as redis hashes
// with a full-text index, and serves text search over it.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mizan-legal/mizan/internal/db"
	"github.com/mizan-legal/mizan/internal/domain/document"
)

const indexSuffix = "corpus:idx"

// Repo stores and searches legislation corpus documents.
type Repo struct {
	store     db.Store
	keyPrefix string
}

// New creates a corpus repository. keyPrefix namespaces all keys
// (e.g. "mizan:").
func New(store db.Store, keyPrefix string) *Repo {
	return &Repo{store: store, keyPrefix: keyPrefix}
}

func (r *Repo) indexName() string { return r.keyPrefix + indexSuffix }

func (r *Repo) docKey(id string) string { return r.keyPrefix + "corpus:" + id }

func (r *Repo) docPrefix() string { return r.keyPrefix + "corpus:" }

// EnsureIndex creates the corpus FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := db.NewIndex(r.indexName()).
		Prefix(r.docPrefix()).
		Text(fieldTitle).
		Text(fieldContent).
		Tag(fieldJurisdiction).
		Numeric(fieldPublishedAt).
		Build()
	if err != nil {
		return fmt.Errorf("build corpus index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create corpus index: %w", err)
	}
	return nil
}

// Store writes corpus entries as hashes in one pipelined round-trip.
func (r *Repo) Store(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			return fmt.Errorf("entry %d: id is required", i)
		}
		items[i] = db.HashSetItem{
			Key:    r.docKey(e.ID),
			Fields: buildHashFields(e),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store corpus entries: %w", err)
	}
	return nil
}

// Search runs a full-text query over the corpus and returns candidates.
func (r *Repo) Search(ctx context.Context, queryText string, topK int) ([]document.Candidate, error) {
	res, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName(),
		Query:     queryText,
		TopK:      topK,
	})
	if err != nil {
		return nil, fmt.Errorf("corpus search: %w", err)
	}

	candidates := make([]document.Candidate, 0, len(res.Entries))
	for _, entry := range res.Entries {
		id := strings.TrimPrefix(entry.Key, r.docPrefix())
		candidates = append(candidates, parseHashFields(id, entry.Fields))
	}
	return candidates, nil
}
