package research

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
	pq := query.New(text, text, text, nil, nil, nil, strategy.ResearchFocused)
	return &pq
}

func TestFetch_MapsArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{
			"doi":"10.1000/jls.2025.44",
			"title":"دراسه مقارنه في المسووليه التقصيريه",
			"abstract":"تتناول الدراسه اركان المسووليه",
			"venue":"مجله الحقوق",
			"published":"2025-09-01",
			"citations":["الماده 163"]
		}]}`))
	}))
	defer srv.Close()

	a := New(srv.URL, 2*time.Second, 10, zap.NewNop())
	got, err := a.Fetch(context.Background(), processed("المسووليه التقصيريه"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	c := got[0]
	if c.ID() != "10.1000/jls.2025.44" {
		t.Errorf("ID = %q", c.ID())
	}
	if c.SourceType() != document.Research {
		t.Errorf("SourceType = %q", c.SourceType())
	}
	if c.SourceName() != SourceName {
		t.Errorf("SourceName = %q", c.SourceName())
	}
	if c.Jurisdiction() != "academic" {
		t.Errorf("jurisdiction = %q", c.Jurisdiction())
	}
	if len(c.LegalReferences()) != 1 {
		t.Errorf("references = %v", c.LegalReferences())
	}
	if c.PublishedAt().IsZero() {
		t.Error("expected published date parsed")
	}
}

func TestFetch_ConnectionRefusedIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	a := New(srv.URL, time.Second, 10, zap.NewNop())
	if _, err := a.Fetch(context.Background(), processed("دراسه")); err == nil {
		t.Fatal("expected error when endpoint is unreachable")
	}
}
