package ranking

import "github.com/mizan-legal/mizan/internal/domain/search/result"

// Confidence tier thresholds.
const (
	highScoreFloor = 0.8
	lowScoreCeil   = 0.5
)

// AssignConfidence classifies every result into a confidence tier,
// overriding any hint a source set earlier:
//
//	high:   finalScore >= 0.8 and the document cites legal references
//	low:    finalScore < 0.5 or no legal references
//	medium: otherwise
func AssignConfidence(results []result.Scored) []result.Scored {
	out := make([]result.Scored, len(results))
	for i, r := range results {
		out[i] = r.WithConfidence(classify(&r))
	}
	return out
}

func classify(r *result.Scored) result.Level {
	doc := r.Document()
	hasRefs := len(doc.LegalReferences()) > 0

	switch {
	case r.FinalScore() >= highScoreFloor && hasRefs:
		return result.High
	case r.FinalScore() < lowScoreCeil || !hasRefs:
		return result.Low
	default:
		return result.Medium
	}
}
