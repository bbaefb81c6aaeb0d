package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/strategy"
)

func processed(normalized string) *query.Processed {
	pq := query.New(normalized, normalized, normalized, nil, nil, nil, strategy.Mixed)
	return &pq
}

func candidate(id, title string) document.Candidate {
	return document.New(id, title, "", "src", document.Legislation, time.Time{}, "", nil)
}

func TestPrefilter_SortsByTitleRelevance(t *testing.T) {
	pq := processed("عقد الايجار")
	in := []document.Candidate{
		candidate("far", "قانون العقوبات"),
		candidate("near", "عقد الايجار"),
		candidate("mid", "شروط عقد البيع"),
	}

	out := Prefilter(in, pq, 10)
	if len(out) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(out))
	}
	if out[0].ID() != "near" {
		t.Errorf("expected most relevant first, got %q", out[0].ID())
	}
	// Low-scoring candidates are kept, not discarded.
	ids := map[string]bool{}
	for _, c := range out {
		ids[c.ID()] = true
	}
	if !ids["far"] {
		t.Error("low-scoring candidate was discarded")
	}
}

func TestPrefilter_CapsSize(t *testing.T) {
	pq := processed("عقد")
	var in []document.Candidate
	for i := 0; i < 50; i++ {
		in = append(in, candidate(string(rune('a'+i%26)), "عقد"))
	}

	out := Prefilter(in, pq, 30)
	if len(out) != 30 {
		t.Errorf("expected cap at 30, got %d", len(out))
	}
}

func TestPrefilter_DefaultLimit(t *testing.T) {
	pq := processed("عقد")
	var in []document.Candidate
	for i := 0; i < DefaultMaxCandidates+5; i++ {
		in = append(in, candidate("x", "عقد"))
	}

	out := Prefilter(in, pq, 0)
	if len(out) != DefaultMaxCandidates {
		t.Errorf("expected default cap %d, got %d", DefaultMaxCandidates, len(out))
	}
}

type stubSummarizer struct {
	mu      sync.Mutex
	summary string
	err     error
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _, _ string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func TestEnrich_AttachesSummaries(t *testing.T) {
	sum := &stubSummarizer{summary: "ملخص"}
	candidates := []document.Candidate{candidate("a", "اول"), candidate("b", "ثاني"), candidate("c", "ثالث")}

	Enrich(context.Background(), sum, candidates, 2, zap.NewNop())

	if candidates[0].Summary() != "ملخص" || candidates[1].Summary() != "ملخص" {
		t.Error("expected summaries on top candidates")
	}
	if candidates[2].Summary() != "" {
		t.Error("expected no summary past topN")
	}
	if sum.calls != 2 {
		t.Errorf("expected 2 calls, got %d", sum.calls)
	}
}

func TestEnrich_FailuresAreIgnored(t *testing.T) {
	sum := &stubSummarizer{err: errors.New("provider down")}
	candidates := []document.Candidate{candidate("a", "اول")}

	Enrich(context.Background(), sum, candidates, 1, zap.NewNop())

	if candidates[0].Summary() != "" {
		t.Error("failed summarization must leave candidate untouched")
	}
}

func TestEnrich_NilSummarizerIsNoop(t *testing.T) {
	candidates := []document.Candidate{candidate("a", "اول")}
	Enrich(context.Background(), nil, candidates, 3, zap.NewNop())

	if candidates[0].Summary() != "" {
		t.Error("nil summarizer must be a no-op")
	}
}
