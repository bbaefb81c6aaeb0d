// Package mizan is the Go client for the mizan legal search API.
//
// Usage:
//
//	client, err := mizan.New(mizan.WithBaseURL("http://localhost:8080"))
//	if err != nil { ... }
//	resp, err := client.Search(ctx, &mizan.SearchRequest{Query: "شروط عقد الايجار"})
package mizan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// SearchRequest is one search invocation.
type SearchRequest struct {
	Query        string   `json:"query"`
	Context      string   `json:"context,omitempty"`
	CaseType     string   `json:"caseType,omitempty"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
	SearchType   string   `json:"searchType,omitempty"`
	MaxResults   int      `json:"maxResults,omitempty"`
	Filters      *Filters `json:"filters,omitempty"`
}

// Filters narrows the results the server returns.
type Filters struct {
	DateRange       *DateRange `json:"dateRange,omitempty"`
	Sources         []string   `json:"sources,omitempty"`
	Types           []string   `json:"types,omitempty"`
	ConfidenceLevel string     `json:"confidenceLevel,omitempty"`
}

// DateRange bounds publication dates inclusively, ISO dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SearchResponse is the full response envelope.
type SearchResponse struct {
	Status         string         `json:"status"`
	Results        []Result       `json:"results"`
	TotalResults   int            `json:"total_results"`
	SearchTime     int64          `json:"search_time"` // milliseconds
	QueryAnalysis  QueryAnalysis  `json:"query_analysis"`
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Error          string         `json:"error,omitempty"`
}

// Result is one scored document.
type Result struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	SourceName      string   `json:"source_name"`
	SourceType      string   `json:"source_type"`
	PublishedAt     string   `json:"published_at,omitempty"`
	Jurisdiction    string   `json:"jurisdiction,omitempty"`
	LegalReferences []string `json:"legal_references"`
	Summary         string   `json:"summary,omitempty"`
	TitleScore      float64  `json:"title_score"`
	SemanticScore   float64  `json:"semantic_score"`
	ContextScore    float64  `json:"context_score"`
	FinalScore      float64  `json:"final_score"`
	Confidence      string   `json:"confidence"`
}

// QueryAnalysis echoes how the server interpreted the query.
type QueryAnalysis struct {
	OriginalQuery     string   `json:"original_query"`
	ProcessedQuery    string   `json:"processed_query"`
	ExtractedKeywords []string `json:"extracted_keywords"`
	LegalTerms        []string `json:"legal_terms"`
	ContextIndicators []string `json:"context_indicators"`
}

// SearchMetadata echoes how the search was executed.
type SearchMetadata struct {
	SourcesSearched []string `json:"sources_searched"`
	SearchStrategy  string   `json:"search_strategy"`
	FiltersApplied  []string `json:"filters_applied"`
}

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mizan: server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the mizan search API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("mizan: base URL required (use WithBaseURL)")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: hc,
	}, nil
}

// Search runs one search. Transport failures and error-status envelopes
// both surface as errors; an empty result list is a valid response.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil || req.Query == "" {
		return nil, errors.New("mizan: query is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mizan: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("mizan: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mizan: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	var resp SearchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("mizan: decode response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK || resp.Status != "success" {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &APIError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	return &resp, nil
}
