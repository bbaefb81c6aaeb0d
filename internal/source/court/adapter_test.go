package court

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/strategy"
)

func processed(text string) *query.Processed {
	pq := query.New(text, text, text, nil, nil, nil, strategy.JudgmentFocused)
	return &pq
}

func TestFetch_MapsJudgments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/judgments/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("expected q parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{
			"id":"j-1",
			"title":"حكم في عقد الايجار",
			"summary":"ملخص الحكم",
			"court":"محكمة النقض",
			"decided_at":"2025-02-10",
			"case_number":"123/2025",
			"citations":["الماده 558"],
			"jurisdiction":"local",
			"confidence":"high"
		}]}`))
	}))
	defer srv.Close()

	a := New(srv.URL, 2*time.Second, 10, zap.NewNop())
	got, err := a.Fetch(context.Background(), processed("عقد الايجار"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	c := got[0]
	if c.ID() != "j-1" {
		t.Errorf("ID = %q", c.ID())
	}
	if c.SourceType() != document.Judgment {
		t.Errorf("SourceType = %q", c.SourceType())
	}
	if c.SourceName() != SourceName {
		t.Errorf("SourceName = %q", c.SourceName())
	}
	if c.PublishedAt().IsZero() {
		t.Error("expected decided_at parsed")
	}
	// Citations plus the case number become legal references.
	if len(c.LegalReferences()) != 2 {
		t.Errorf("references = %v", c.LegalReferences())
	}
	if c.ConfidenceHint() != "high" {
		t.Errorf("confidence hint = %q", c.ConfidenceHint())
	}
}

func TestFetch_GeneratesIDWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"title":"حكم بدون معرف"}]}`))
	}))
	defer srv.Close()

	a := New(srv.URL, 2*time.Second, 10, zap.NewNop())
	got, err := a.Fetch(context.Background(), processed("حكم"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID() == "" {
		t.Error("expected generated candidate ID")
	}
}

func TestFetch_ServerErrorIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := New(srv.URL, 2*time.Second, 10, zap.NewNop())
	if _, err := a.Fetch(context.Background(), processed("عقد")); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetch_RespectsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()
	defer close(blocked)

	a := New(srv.URL, 10*time.Second, 10, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := a.Fetch(ctx, processed("عقد")); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

func TestFetch_CapsCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		body := `{"results":[`
		for i := 0; i < 20; i++ {
			if i > 0 {
				body += ","
			}
			body += `{"id":"j","title":"حكم"}`
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	a := New(srv.URL, 2*time.Second, 5, zap.NewNop())
	got, err := a.Fetch(context.Background(), processed("حكم"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected cap at 5, got %d", len(got))
	}
}
