package corpus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mizan-legal/mizan/internal/db"
	"github.com/mizan-legal/mizan/internal/domain/document"
)

// mockStore records calls and serves canned search results.
type mockStore struct {
	db.Store // unimplemented methods panic if reached

	createdIndex *db.IndexDefinition
	createErr    error
	setItems     []db.HashSetItem
	setErr       error
	searchQuery  *db.TextQuery
	searchRes    *db.SearchResult
	searchErr    error
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	m.createdIndex = def
	return m.createErr
}

func (m *mockStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	m.setItems = items
	return m.setErr
}

func (m *mockStore) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.searchQuery = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchRes, nil
}

func TestEnsureIndex_BuildsSchema(t *testing.T) {
	store := &mockStore{}
	repo := New(store, "mizan:")

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.createdIndex == nil {
		t.Fatal("expected CreateIndex call")
	}
	if store.createdIndex.Name != "mizan:corpus:idx" {
		t.Errorf("index name = %q", store.createdIndex.Name)
	}
	if len(store.createdIndex.Prefixes) != 1 || store.createdIndex.Prefixes[0] != "mizan:corpus:" {
		t.Errorf("prefixes = %v", store.createdIndex.Prefixes)
	}
}

func TestEnsureIndex_AlreadyExistsIsOK(t *testing.T) {
	store := &mockStore{createErr: db.ErrIndexExists}
	repo := New(store, "mizan:")

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("existing index must not be an error: %v", err)
	}
}

func TestStore_WritesHashFields(t *testing.T) {
	store := &mockStore{}
	repo := New(store, "mizan:")

	published := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	err := repo.Store(context.Background(), []Entry{{
		ID:           "law-12",
		Title:        "قانون الايجار",
		Content:      "نص القانون",
		SourceName:   "الجريده الرسميه",
		Jurisdiction: "local",
		PublishedAt:  published,
		References:   []string{"الماده 1", "الماده 2"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.setItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(store.setItems))
	}
	item := store.setItems[0]
	if item.Key != "mizan:corpus:law-12" {
		t.Errorf("key = %q", item.Key)
	}
	if item.Fields[fieldTitle] != "قانون الايجار" {
		t.Errorf("title field = %q", item.Fields[fieldTitle])
	}
	if item.Fields[fieldPublishedAt] == "" {
		t.Error("expected published_at field")
	}
}

func TestStore_RejectsMissingID(t *testing.T) {
	repo := New(&mockStore{}, "mizan:")

	if err := repo.Store(context.Background(), []Entry{{Title: "بدون معرف"}}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestSearch_MapsEntriesToCandidates(t *testing.T) {
	store := &mockStore{searchRes: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:   "mizan:corpus:law-7",
			Score: 2.5,
			Fields: map[string]string{
				fieldTitle:        "قانون العمل",
				fieldContent:      "نص",
				fieldSourceName:   "الجريده الرسميه",
				fieldJurisdiction: "local",
				fieldPublishedAt:  "1735689600",
				fieldReferences:   "الماده 5",
			},
		}},
	}}
	repo := New(store, "mizan:")

	got, err := repo.Search(context.Background(), "قانون العمل", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	c := got[0]
	if c.ID() != "law-7" {
		t.Errorf("ID = %q, want law-7 (prefix stripped)", c.ID())
	}
	if c.SourceType() != document.Legislation {
		t.Errorf("SourceType = %q", c.SourceType())
	}
	if c.PublishedAt().IsZero() {
		t.Error("expected parsed publication date")
	}
	if len(c.LegalReferences()) != 1 {
		t.Errorf("references = %v", c.LegalReferences())
	}
	if store.searchQuery.TopK != 10 {
		t.Errorf("TopK = %d", store.searchQuery.TopK)
	}
}

func TestSearch_PropagatesError(t *testing.T) {
	store := &mockStore{searchErr: errors.New("boom")}
	repo := New(store, "mizan:")

	if _, err := repo.Search(context.Background(), "عقد", 5); err == nil {
		t.Fatal("expected error")
	}
}
