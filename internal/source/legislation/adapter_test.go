package legislation

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain"
	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/strategy"
)

type stubSearcher struct {
	gotQuery string
	gotTopK  int
	out      []document.Candidate
	err      error
}

func (s *stubSearcher) Search(_ context.Context, queryText string, topK int) ([]document.Candidate, error) {
	s.gotQuery = queryText
	s.gotTopK = topK
	return s.out, s.err
}

func processed(enhanced string) *query.Processed {
	pq := query.New(enhanced, enhanced, enhanced, nil, nil, nil, strategy.LegislationFocused)
	return &pq
}

func legislationDoc(id, title string) document.Candidate {
	return document.New(
		id, title, "نص الماده",
		SourceName, document.Legislation,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"local", []string{"الماده 1"},
	)
}

func TestFetch_QueriesCorpusWithEnhancedText(t *testing.T) {
	stub := &stubSearcher{out: []document.Candidate{legislationDoc("l-1", "قانون العمل")}}
	a := New(stub, 10, zap.NewNop())

	got, err := a.Fetch(context.Background(), processed("قانون العمل الاجازات"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotQuery != "قانون العمل الاجازات" {
		t.Errorf("corpus query = %q", stub.gotQuery)
	}
	if stub.gotTopK != 20 {
		t.Errorf("topK = %d, want over-fetch of 20", stub.gotTopK)
	}
	if len(got) != 1 || got[0].ID() != "l-1" {
		t.Errorf("candidates = %v", got)
	}
}

func TestFetch_CapsAtLimit(t *testing.T) {
	var docs []document.Candidate
	for i := 0; i < 8; i++ {
		docs = append(docs, legislationDoc("l", "قانون"))
	}
	stub := &stubSearcher{out: docs}
	a := New(stub, 3, zap.NewNop())

	got, err := a.Fetch(context.Background(), processed("قانون"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(got))
	}
}

func TestFetch_WrapsCorpusError(t *testing.T) {
	stub := &stubSearcher{err: errors.New("connection reset")}
	a := New(stub, 10, zap.NewNop())

	_, err := a.Fetch(context.Background(), processed("قانون"))
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}
