// Package ranking scores, orders, deduplicates, and classifies candidate
// documents into the final ranked result list.
package ranking

import "github.com/mizan-legal/mizan/internal/usecase/queryproc"

// Title score composition weights.
const (
	coverageWeight = 0.6
	jaccardWeight  = 0.4
)

// TitleScore computes the token-overlap relevance of a title against a
// query: 0.6 * coverage + 0.4 * jaccard, clamped to [0,1]. Both inputs
// are normalized first (normalization is idempotent, so already-normalized
// text is fine).
func TitleScore(title, query string) float64 {
	titleTokens := tokenSet(queryproc.Tokenize(queryproc.Normalize(title)))
	queryTokens := tokenSet(queryproc.Tokenize(queryproc.Normalize(query)))

	if len(titleTokens) == 0 || len(queryTokens) == 0 {
		return 0
	}

	matched := 0
	for tok := range queryTokens {
		if _, ok := titleTokens[tok]; ok {
			matched++
		}
	}

	coverage := float64(matched) / float64(len(queryTokens))
	union := len(titleTokens) + len(queryTokens) - matched
	jaccard := float64(matched) / float64(union)

	return clamp01(coverageWeight*coverage + jaccardWeight*jaccard)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
