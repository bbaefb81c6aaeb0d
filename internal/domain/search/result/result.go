// Package result defines the scored search hit and its confidence tier.
package result

import "github.com/mizan-legal/mizan/internal/domain/document"

// Level is the coarse confidence tier of a ranked result.
type Level string

// Confidence levels.
const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// IsValid checks if the level is one of the supported values.
func (l Level) IsValid() bool {
	return l == High || l == Medium || l == Low
}

// Scored is a candidate document plus its ranking scores. All scores are
// in [0,1]; the final list is strictly sorted descending by FinalScore.
type Scored struct {
	doc           document.Candidate
	titleScore    float64
	semanticScore float64
	contextScore  float64
	finalScore    float64
	confidence    Level
}

// New creates a scored result. Confidence is assigned in a later pass.
func New(doc document.Candidate, titleScore, semanticScore, contextScore, finalScore float64) Scored {
	return Scored{
		doc:           doc,
		titleScore:    titleScore,
		semanticScore: semanticScore,
		contextScore:  contextScore,
		finalScore:    finalScore,
	}
}

// Document returns the underlying candidate.
func (s *Scored) Document() document.Candidate { return s.doc }

// TitleScore returns the title token-overlap score.
func (s *Scored) TitleScore() float64 { return s.titleScore }

// SemanticScore returns the semantic relevance score.
func (s *Scored) SemanticScore() float64 { return s.semanticScore }

// ContextScore returns the context relevance score.
func (s *Scored) ContextScore() float64 { return s.contextScore }

// FinalScore returns the adjusted, clamped final score.
func (s *Scored) FinalScore() float64 { return s.finalScore }

// Confidence returns the assigned confidence tier ("" before assignment).
func (s *Scored) Confidence() Level { return s.confidence }

// WithConfidence returns a copy carrying the given confidence tier. The
// assigner's verdict overrides any hint a source set earlier.
func (s Scored) WithConfidence(l Level) Scored {
	s.confidence = l
	return s
}
