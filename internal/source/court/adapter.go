// Package court adapts a remote judgments API as a document source.
package court

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain"
	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/source"
)

// SourceName is the human-readable name echoed in response metadata.
const SourceName = "قاعدة الأحكام القضائية"

// Adapter fetches court judgments over HTTP.
type Adapter struct {
	baseURL    string
	client     *http.Client
	limit      int
	summarizer domain.Summarizer
	topN       int
	logger     *zap.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// New creates a judgments adapter. timeout bounds each HTTP call.
func New(baseURL string, timeout time.Duration, limit int, logger *zap.Logger) *Adapter {
	if limit <= 0 {
		limit = source.DefaultMaxCandidates
	}
	return &Adapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limit:   limit,
		logger:  logger,
	}
}

// WithSummarizer enables the best-effort enrichment hook for topN results.
func (a *Adapter) WithSummarizer(s domain.Summarizer, topN int) *Adapter {
	a.summarizer = s
	a.topN = topN
	return a
}

// Name implements source.Adapter.
func (a *Adapter) Name() string { return SourceName }

// Type implements source.Adapter.
func (a *Adapter) Type() document.SourceType { return document.Judgment }

// judgmentDTO is one hit in the judgments API response.
type judgmentDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Court        string   `json:"court"`
	DecidedAt    string   `json:"decided_at"` // ISO date
	CaseNumber   string   `json:"case_number"`
	Citations    []string `json:"citations"`
	Jurisdiction string   `json:"jurisdiction"`
	Confidence   string   `json:"confidence"`
}

type searchResponse struct {
	Results []judgmentDTO `json:"results"`
}

// Fetch queries the judgments API with the enhanced query text.
func (a *Adapter) Fetch(ctx context.Context, pq *query.Processed) ([]document.Candidate, error) {
	u := fmt.Sprintf("%s/judgments/search?q=%s&limit=%s",
		a.baseURL,
		url.QueryEscape(pq.Enhanced()),
		strconv.Itoa(a.limit*2),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, SourceName, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, SourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrSourceUnavailable, SourceName, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", domain.ErrSourceUnavailable, SourceName, err)
	}

	candidates := make([]document.Candidate, 0, len(body.Results))
	for _, dto := range body.Results {
		candidates = append(candidates, dtoToCandidate(dto))
	}

	candidates = source.Prefilter(candidates, pq, a.limit)
	source.Enrich(ctx, a.summarizer, candidates, a.topN, a.logger)
	return candidates, nil
}

func dtoToCandidate(dto judgmentDTO) document.Candidate {
	id := dto.ID
	if id == "" {
		id = uuid.NewString()
	}

	var decidedAt time.Time
	if dto.DecidedAt != "" {
		if t, err := time.Parse("2006-01-02", dto.DecidedAt); err == nil {
			decidedAt = t
		}
	}

	refs := dto.Citations
	if dto.CaseNumber != "" {
		refs = append(refs, dto.CaseNumber)
	}

	content := dto.Summary
	if dto.Court != "" {
		content = dto.Court + ": " + content
	}

	c := document.New(id, dto.Title, content, SourceName, document.Judgment, decidedAt, dto.Jurisdiction, refs)
	if dto.Confidence != "" {
		c = c.WithConfidenceHint(dto.Confidence)
	}
	return c
}
