// Package strategy defines the search strategy derived from query analysis.
package strategy

// Strategy biases which sources and rankings a search favors.
type Strategy string

// Strategy constants.
const (
	// JudgmentFocused targets court decisions (litigation intent detected).
	JudgmentFocused Strategy = "judgment_focused"
	// LegislationFocused targets statutes (many legal terms detected).
	LegislationFocused Strategy = "legislation_focused"
	// ResearchFocused targets academic material.
	ResearchFocused Strategy = "research_focused"
	// Mixed is the default when no dominant intent is detected.
	Mixed Strategy = "mixed"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == JudgmentFocused || s == LegislationFocused || s == ResearchFocused || s == Mixed
}

// FromSearchType maps an explicit request search type to a strategy.
// Returns Mixed and false when the search type implies no strategy.
func FromSearchType(searchType string) (Strategy, bool) {
	switch searchType {
	case "references":
		return JudgmentFocused, true
	case "full_text":
		return LegislationFocused, true
	case "summary":
		return ResearchFocused, true
	case "mixed":
		return Mixed, true
	}
	return Mixed, false
}
