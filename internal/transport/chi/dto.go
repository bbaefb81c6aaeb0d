package chi

import (
	"fmt"
	"time"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/filter"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
	searchuc "github.com/mizan-legal/mizan/internal/usecase/search"
)

// searchRequest is the wire shape of POST /v1/search.
type searchRequest struct {
	Query        string      `json:"query"`
	Context      string      `json:"context,omitempty"`
	CaseType     string      `json:"caseType,omitempty"`
	Jurisdiction string      `json:"jurisdiction,omitempty"`
	SearchType   string      `json:"searchType,omitempty"`
	MaxResults   int         `json:"maxResults,omitempty"`
	Filters      *filtersDTO `json:"filters,omitempty"`
}

type filtersDTO struct {
	DateRange       *dateRangeDTO `json:"dateRange,omitempty"`
	Sources         []string      `json:"sources,omitempty"`
	Types           []string      `json:"types,omitempty"`
	ConfidenceLevel string        `json:"confidenceLevel,omitempty"`
}

type dateRangeDTO struct {
	Start string `json:"start,omitempty"` // ISO date
	End   string `json:"end,omitempty"`
}

// searchResponse is the response envelope. Error responses carry the
// same shape with empty collections so callers can always parse it.
type searchResponse struct {
	Status         string            `json:"status"`
	Results        []resultDTO       `json:"results"`
	TotalResults   int               `json:"total_results"`
	SearchTime     int64             `json:"search_time"` // milliseconds
	QueryAnalysis  queryAnalysisDTO  `json:"query_analysis"`
	SearchMetadata searchMetadataDTO `json:"search_metadata"`
	Error          string            `json:"error,omitempty"`
}

type queryAnalysisDTO struct {
	OriginalQuery     string   `json:"original_query"`
	ProcessedQuery    string   `json:"processed_query"`
	ExtractedKeywords []string `json:"extracted_keywords"`
	LegalTerms        []string `json:"legal_terms"`
	ContextIndicators []string `json:"context_indicators"`
}

type searchMetadataDTO struct {
	SourcesSearched []string `json:"sources_searched"`
	SearchStrategy  string   `json:"search_strategy"`
	FiltersApplied  []string `json:"filters_applied"`
}

type resultDTO struct {
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

func filtersFromDTO(dto *filtersDTO) (filter.Filters, error) {
	if dto == nil {
		return filter.Filters{}, nil
	}

	types := make([]document.SourceType, len(dto.Types))
	for i, t := range dto.Types {
		types[i] = document.SourceType(t)
	}

	var dr filter.DateRange
	if dto.DateRange != nil {
		var err error
		if dr.Start, err = parseDate(dto.DateRange.Start); err != nil {
			return filter.Filters{}, fmt.Errorf("date range start: %w", err)
		}
		if dr.End, err = parseDate(dto.DateRange.End); err != nil {
			return filter.Filters{}, fmt.Errorf("date range end: %w", err)
		}
	}

	return filter.New(types, dto.Sources, result.Level(dto.ConfidenceLevel), dr)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

func responseToDTO(resp *searchuc.Response) searchResponse {
	results := make([]resultDTO, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultToDTO(&resp.Results[i])
	}

	pq := resp.Analysis
	return searchResponse{
		Status:       "success",
		Results:      results,
		TotalResults: resp.TotalResults,
		SearchTime:   resp.SearchTime.Milliseconds(),
		QueryAnalysis: queryAnalysisDTO{
			OriginalQuery:     pq.Original(),
			ProcessedQuery:    pq.Normalized(),
			ExtractedKeywords: emptyIfNil(pq.Keywords()),
			LegalTerms:        emptyIfNil(pq.LegalTerms()),
			ContextIndicators: emptyIfNil(pq.ContextIndicators()),
		},
		SearchMetadata: searchMetadataDTO{
			SourcesSearched: emptyIfNil(resp.Metadata.SourcesSearched),
			SearchStrategy:  resp.Metadata.Strategy,
			FiltersApplied:  emptyIfNil(resp.Metadata.FiltersApplied),
		},
	}
}

func resultToDTO(r *result.Scored) resultDTO {
	doc := r.Document()

	published := ""
	if !doc.PublishedAt().IsZero() {
		published = doc.PublishedAt().Format("2006-01-02")
	}

	return resultDTO{
		ID:              doc.ID(),
		Title:           doc.Title(),
		Content:         doc.Content(),
		SourceName:      doc.SourceName(),
		SourceType:      string(doc.SourceType()),
		PublishedAt:     published,
		Jurisdiction:    doc.Jurisdiction(),
		LegalReferences: emptyIfNil(doc.LegalReferences()),
		Summary:         doc.Summary(),
		TitleScore:      r.TitleScore(),
		SemanticScore:   r.SemanticScore(),
		ContextScore:    r.ContextScore(),
		FinalScore:      r.FinalScore(),
		Confidence:      string(r.Confidence()),
	}
}

// errorEnvelope builds the fixed-shape error response: empty collections
// everywhere so the client parse path never branches.
func errorEnvelope(msg string) searchResponse {
	return searchResponse{
		Status:       "error",
		Results:      []resultDTO{},
		TotalResults: 0,
		SearchTime:   0,
		QueryAnalysis: queryAnalysisDTO{
			ExtractedKeywords: []string{},
			LegalTerms:        []string{},
			ContextIndicators: []string{},
		},
		SearchMetadata: searchMetadataDTO{
			SourcesSearched: []string{},
			FiltersApplied:  []string{},
		},
		Error: msg,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
