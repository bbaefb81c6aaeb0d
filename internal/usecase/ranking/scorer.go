package ranking

import (
	"sort"
	"strings"
	"time"

	"github.com/mizan-legal/mizan/internal/domain/document"
	"github.com/mizan-legal/mizan/internal/domain/search/query"
	"github.com/mizan-legal/mizan/internal/domain/search/request"
	"github.com/mizan-legal/mizan/internal/domain/search/result"
	"github.com/mizan-legal/mizan/internal/usecase/queryproc"
)

// Relevance composition weights and the baseline used when a source
// provides no richer semantic/context signal.
const (
	titleWeight    = 0.5
	semanticWeight = 0.3
	contextWeight  = 0.2
	scoreBaseline  = 0.5
)

// Additive final-score bonuses. The exact values are part of the
// observable ranking contract.
const (
	recencyBonus        = 0.10
	recencyWindow       = 365 * 24 * time.Hour
	highConfidenceBonus = 0.15
	medConfidenceBonus  = 0.05
	legalTermBonus      = 0.05
	jurisdictionBonus   = 0.10
)

// Scorer computes multi-factor relevance scores. now is injectable so the
// recency bonus is testable.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a scorer using wall-clock time.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// WithClock overrides the clock source.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score computes final scores for all candidates and returns them sorted
// descending by final score. The sort is stable: ties keep fetch order, so
// identical inputs always produce identical output ordering.
func (s *Scorer) Score(
	candidates []document.Candidate,
	pq *query.Processed,
	req *request.Query,
) []result.Scored {
	scored := make([]result.Scored, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, s.scoreOne(&candidates[i], pq, req))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore() > scored[j].FinalScore()
	})

	return scored
}

func (s *Scorer) scoreOne(
	c *document.Candidate,
	pq *query.Processed,
	req *request.Query,
) result.Scored {
	titleScore := TitleScore(c.Title(), pq.Normalized())

	// Sources report only text today, so semantic and context relevance
	// sit at the baseline until an adapter supplies a richer signal.
	semanticScore := scoreBaseline
	contextScore := scoreBaseline

	relevance := titleWeight*titleScore + semanticWeight*semanticScore + contextWeight*contextScore

	final := relevance + s.bonuses(c, pq, req)

	return result.New(*c, clamp01(titleScore), semanticScore, contextScore, clamp01(final))
}

// bonuses accumulates the additive score adjustments. Each bonus is
// independently capped by its constant; only the legal-term bonus
// accumulates unbounded before the final clip.
func (s *Scorer) bonuses(c *document.Candidate, pq *query.Processed, req *request.Query) float64 {
	var bonus float64

	if !c.PublishedAt().IsZero() && s.now().Sub(c.PublishedAt()) <= recencyWindow {
		bonus += recencyBonus
	}

	switch c.ConfidenceHint() {
	case string(result.High):
		bonus += highConfidenceBonus
	case string(result.Medium):
		bonus += medConfidenceBonus
	}

	content := queryproc.Normalize(c.Content())
	for _, term := range pq.LegalTerms() {
		if strings.Contains(content, term) {
			bonus += legalTermBonus
		}
	}

	if c.Jurisdiction() != "" && c.Jurisdiction() == string(req.Jurisdiction()) {
		bonus += jurisdictionBonus
	}

	return bonus
}
