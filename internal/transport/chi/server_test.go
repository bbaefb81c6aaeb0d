package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	healthuc "github.com/mizan-legal/mizan/internal/usecase/health"
	"github.com/mizan-legal/mizan/internal/usecase/queryproc"
	"github.com/mizan-legal/mizan/internal/usecase/ranking"
	searchuc "github.com/mizan-legal/mizan/internal/usecase/search"
)

type stubFetcher struct {
	candidates []document.Candidate
}

func (f *stubFetcher) FetchAll(context.Context, *query.Processed) []document.Candidate {
	return f.candidates
}

func (f *stubFetcher) Sources() []string {
	return []string{"التشريعات الوطنية", "قاعدة الأحكام القضائية"}
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(candidates ...document.Candidate) *gochi.Mux {
	engine := searchuc.New(
		queryproc.New(),
		&stubFetcher{candidates: candidates},
		ranking.NewScorer(),
	)
	srv := NewServer(engine, healthuc.New(&stubPinger{}, nil), zap.NewNop())

	r := gochi.NewRouter()
	srv.Routes(r)
	return r
}

func postSearch(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/search", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rr.Body.String())
	}
	return rr, resp
}

func TestSearch_Success(t *testing.T) {
	doc := document.New(
		"l-1", "قانون العمل", "نص الماده",
		"التشريعات الوطنية", document.Legislation,
		time.Now().AddDate(0, -1, 0), "local", []string{"الماده 7"},
	)
	router := newTestRouter(doc)

	rr, resp := postSearch(t, router, `{"query":"قانون العمل"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rr.Code, rr.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.TotalResults != 1 || len(resp.Results) != 1 {
		t.Fatalf("results = %d/%d", resp.TotalResults, len(resp.Results))
	}

	got := resp.Results[0]
	if got.ID != "l-1" || got.SourceType != "legislation" {
		t.Errorf("result = %+v", got)
	}
	if got.FinalScore < 0 || got.FinalScore > 1 {
		t.Errorf("final score out of bounds: %f", got.FinalScore)
	}
	if got.Confidence == "" {
		t.Error("missing confidence")
	}
	if resp.QueryAnalysis.OriginalQuery != "قانون العمل" {
		t.Errorf("original query = %q", resp.QueryAnalysis.OriginalQuery)
	}
	if resp.SearchMetadata.SearchStrategy == "" {
		t.Error("missing search strategy")
	}
	if len(resp.SearchMetadata.SourcesSearched) != 2 {
		t.Errorf("sources searched = %v", resp.SearchMetadata.SourcesSearched)
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	router := newTestRouter()

	rr, resp := postSearch(t, router, `{"query":"   "}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp.Status != "error" || resp.Error == "" {
		t.Errorf("envelope = %+v", resp)
	}
	// Error envelopes keep the full shape with empty collections.
	if resp.Results == nil || resp.QueryAnalysis.ExtractedKeywords == nil ||
		resp.SearchMetadata.SourcesSearched == nil {
		t.Errorf("error envelope has null collections: %s", rr.Body.String())
	}
}

func TestSearch_OverlongQueryRejected(t *testing.T) {
	router := newTestRouter()
	long := strings.Repeat("ق", 1001)

	rr, resp := postSearch(t, router, `{"query":"`+long+`"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestSearch_MalformedBodyRejected(t *testing.T) {
	router := newTestRouter()

	rr, resp := postSearch(t, router, `{"query":`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestSearch_BadDateFilterRejected(t *testing.T) {
	router := newTestRouter()

	rr, _ := postSearch(t, router,
		`{"query":"قانون","filters":{"dateRange":{"start":"15-01-2026"}}}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestSearch_MethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/search", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("405 body is not the error envelope: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestSearch_TypeFilterApplied(t *testing.T) {
	leg := document.New(
		"l-1", "قانون الايجار", "نص",
		"التشريعات الوطنية", document.Legislation,
		time.Now(), "local", nil,
	)
	judg := document.New(
		"j-1", "حكم في الايجار", "حيثيات",
		"قاعدة الأحكام القضائية", document.Judgment,
		time.Now(), "local", nil,
	)
	router := newTestRouter(leg, judg)

	_, resp := postSearch(t, router,
		`{"query":"الايجار","filters":{"types":["judgment"]}}`)

	if resp.TotalResults != 1 {
		t.Fatalf("TotalResults = %d", resp.TotalResults)
	}
	if resp.Results[0].SourceType != "judgment" {
		t.Errorf("type filter leaked %q", resp.Results[0].SourceType)
	}
	if len(resp.SearchMetadata.FiltersApplied) == 0 {
		t.Error("expected filters_applied in metadata")
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}
