// Package research adapts an academic legal-research API as a document
// source.
package research

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
const SourceName = "المجلات القانونية"

// Adapter fetches academic articles over HTTP.
type Adapter struct {
	baseURL    string
	client     *http.Client
	limit      int
	summarizer domain.Summarizer
	topN       int
	logger     *zap.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// New creates a research adapter. timeout bounds each HTTP call.
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
func (a *Adapter) Type() document.SourceType { return document.Research }

// articleDTO is one article in the research API response.
type articleDTO struct {
	DOI       string   `json:"doi"`
	Title     string   `json:"title"`
	Abstract  string   `json:"abstract"`
	Venue     string   `json:"venue"`
	Published string   `json:"published"` // ISO date
	Citations []string `json:"citations"`
}

type articlesResponse struct {
	Items []articleDTO `json:"items"`
}

// Fetch queries the research API with the enhanced query text.
func (a *Adapter) Fetch(ctx context.Context, pq *query.Processed) ([]document.Candidate, error) {
	u := fmt.Sprintf("%s/articles?q=%s&limit=%s",
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

	var body articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", domain.ErrSourceUnavailable, SourceName, err)
	}

	candidates := make([]document.Candidate, 0, len(body.Items))
	for _, dto := range body.Items {
		candidates = append(candidates, dtoToCandidate(dto))
	}

	candidates = source.Prefilter(candidates, pq, a.limit)
	source.Enrich(ctx, a.summarizer, candidates, a.topN, a.logger)
	return candidates, nil
}

func dtoToCandidate(dto articleDTO) document.Candidate {
	id := dto.DOI
	if id == "" {
		id = uuid.NewString()
	}

	var published time.Time
	if dto.Published != "" {
		if t, err := time.Parse("2006-01-02", dto.Published); err == nil {
			published = t
		}
	}

	content := dto.Abstract
	if dto.Venue != "" {
		content = dto.Venue + ": " + content
	}

	return document.New(
		id, dto.Title, content,
		SourceName, document.Research, published, "academic", dto.Citations,
	)
}
