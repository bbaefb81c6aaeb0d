package fetch

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
	"github.com/mizan-legal/mizan/internal/source"
)

type stubAdapter struct {
	name  string
	kind  document.SourceType
	out   []document.Candidate
	err   error
	delay time.Duration
}

func (s *stubAdapter) Name() string              { return s.name }
func (s *stubAdapter) Type() document.SourceType { return s.kind }

func (s *stubAdapter) Fetch(ctx context.Context, _ *query.Processed) ([]document.Candidate, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func doc(id, title, sourceName string) document.Candidate {
	return document.New(
		id, title, "محتوى",
		sourceName, document.Legislation,
		time.Time{}, "local", nil,
	)
}

func processed() *query.Processed {
	pq := query.New("عقد", "عقد", "عقد قانون", nil, []string{"عقد"}, nil, strategy.Mixed)
	return &pq
}

func newOrchestrator(t *testing.T, timeout time.Duration, adapters ...*stubAdapter) *Orchestrator {
	t.Helper()
	list := make([]source.Adapter, 0, len(adapters))
	for _, a := range adapters {
		list = append(list, a)
	}
	o, err := New(list, timeout, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(o.Release)
	return o
}

func TestFetchAll_MergesInRegistrationOrder(t *testing.T) {
	first := &stubAdapter{
		name: "التشريعات الوطنية",
		kind: document.Legislation,
		out:  []document.Candidate{doc("l-1", "قانون العمل", "التشريعات الوطنية")},
		// Finishing last must not change the merge order.
		delay: 30 * time.Millisecond,
	}
	second := &stubAdapter{
		name: "قاعدة الأحكام القضائية",
		kind: document.Judgment,
		out:  []document.Candidate{doc("j-1", "حكم نقض", "قاعدة الأحكام القضائية")},
	}

	o := newOrchestrator(t, time.Second, first, second)
	got := o.FetchAll(context.Background(), processed())

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID() != "l-1" || got[1].ID() != "j-1" {
		t.Errorf("merge order = [%s %s]", got[0].ID(), got[1].ID())
	}
}

func TestFetchAll_AbsorbsSourceFailures(t *testing.T) {
	ok := &stubAdapter{
		name: "التشريعات الوطنية",
		kind: document.Legislation,
		out:  []document.Candidate{doc("l-1", "قانون العمل", "التشريعات الوطنية")},
	}
	broken := &stubAdapter{
		name: "قاعدة الأحكام القضائية",
		kind: document.Judgment,
		err:  domain.ErrSourceUnavailable,
	}

	o := newOrchestrator(t, time.Second, ok, broken)
	got := o.FetchAll(context.Background(), processed())

	if len(got) != 1 || got[0].ID() != "l-1" {
		t.Errorf("expected only the healthy source's candidate, got %v", got)
	}
}

func TestFetchAll_AllSourcesFailReturnsEmpty(t *testing.T) {
	adapters := []*stubAdapter{
		{name: "التشريعات الوطنية", kind: document.Legislation, err: errors.New("down")},
		{name: "قاعدة الأحكام القضائية", kind: document.Judgment, err: errors.New("down")},
		{name: "الجريدة الرسمية", kind: document.Gazette, err: errors.New("down")},
		{name: "المجلات القانونية", kind: document.Research, err: errors.New("down")},
	}

	o := newOrchestrator(t, time.Second, adapters...)
	got := o.FetchAll(context.Background(), processed())

	if len(got) != 0 {
		t.Errorf("expected no candidates when every source fails, got %d", len(got))
	}
}

func TestFetchAll_SlowSourceTimesOut(t *testing.T) {
	slow := &stubAdapter{
		name:  "المجلات القانونية",
		kind:  document.Research,
		out:   []document.Candidate{doc("r-1", "دراسه", "المجلات القانونية")},
		delay: 500 * time.Millisecond,
	}
	fast := &stubAdapter{
		name: "التشريعات الوطنية",
		kind: document.Legislation,
		out:  []document.Candidate{doc("l-1", "قانون", "التشريعات الوطنية")},
	}

	o := newOrchestrator(t, 50*time.Millisecond, slow, fast)

	start := time.Now()
	got := o.FetchAll(context.Background(), processed())
	elapsed := time.Since(start)

	if len(got) != 1 || got[0].ID() != "l-1" {
		t.Errorf("expected only the fast source's candidate, got %v", got)
	}
	if elapsed > 400*time.Millisecond {
		t.Errorf("fetch did not honor per-source timeout, took %v", elapsed)
	}
}

func TestSources_ListsAdapterNames(t *testing.T) {
	o := newOrchestrator(t, time.Second,
		&stubAdapter{name: "التشريعات الوطنية", kind: document.Legislation},
		&stubAdapter{name: "الجريدة الرسمية", kind: document.Gazette},
	)

	got := o.Sources()
	want := []string{"التشريعات الوطنية", "الجريدة الرسمية"}
	if len(got) != len(want) {
		t.Fatalf("sources = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
