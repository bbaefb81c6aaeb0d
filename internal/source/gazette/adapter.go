// Package gazette adapts the official-gazette archive as a document
// source. The archive serves raw HTML bodies, so candidates are sanitized
// and converted to plain markdown text before scoring.
package gazette

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/domain"
	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/source"
)

// SourceName is the human-readable name echoed in response metadata.
const SourceName = "الجريدة الرسمية"

// Adapter fetches official-gazette issues over HTTP.
type Adapter struct {
	baseURL     string
	client      *http.Client
	limit       int
	sanitizer   *bluemonday.Policy
	mdConverter *converter.Converter
	summarizer  domain.Summarizer
	topN        int
	logger      *zap.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// New creates a gazette adapter. timeout bounds each HTTP call.
func New(baseURL string, timeout time.Duration, limit int, logger *zap.Logger) *Adapter {
	if limit <= 0 {
		limit = source.DefaultMaxCandidates
	}
	return &Adapter{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
		limit:     limit,
		sanitizer: bluemonday.UGCPolicy(),
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		logger: logger,
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
func (a *Adapter) Type() document.SourceType { return document.Gazette }

// issueDTO is one gazette item in the archive response.
type issueDTO struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	HTMLBody   string   `json:"html_body"`
	IssueDate  string   `json:"issue_date"` // ISO date
	References []string `json:"references"`
}

type archiveResponse struct {
	Issues []issueDTO `json:"issues"`
}

// Fetch queries the archive and extracts plain text from each HTML body.
func (a *Adapter) Fetch(ctx context.Context, pq *query.Processed) ([]document.Candidate, error) {
	u := fmt.Sprintf("%s/issues?query=%s&limit=%s",
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

	var body archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", domain.ErrSourceUnavailable, SourceName, err)
	}

	candidates := make([]document.Candidate, 0, len(body.Issues))
	for _, dto := range body.Issues {
		candidates = append(candidates, a.dtoToCandidate(dto))
	}

	candidates = source.Prefilter(candidates, pq, a.limit)
	source.Enrich(ctx, a.summarizer, candidates, a.topN, a.logger)
	return candidates, nil
}

func (a *Adapter) dtoToCandidate(dto issueDTO) document.Candidate {
	id := dto.ID
	if id == "" {
		id = uuid.NewString()
	}

	var issueDate time.Time
	if dto.IssueDate != "" {
		if t, err := time.Parse("2006-01-02", dto.IssueDate); err == nil {
			issueDate = t
		}
	}

	// Gazette issues are published by the local jurisdiction by definition.
	return document.New(
		id, dto.Title, a.extractText(dto.HTMLBody),
		SourceName, document.Gazette, issueDate, "local", dto.References,
	)
}

// extractText sanitizes untrusted HTML and converts it to markdown text.
// A conversion failure falls back to the sanitized HTML rather than
// dropping the candidate.
func (a *Adapter) extractText(html string) string {
	clean := a.sanitizer.Sanitize(html)
	md, err := a.mdConverter.ConvertString(clean)
	if err != nil {
		a.logger.Debug("gazette html conversion failed", zap.Error(err))
		return clean
	}
	return md
}
