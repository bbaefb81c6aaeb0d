package ranking

import (
	"github.com/mizan-legal/mizan/internal/domain/search/result"
	"github.com/mizan-legal/mizan/internal/usecase/queryproc"
)

// Dedup removes redundant results by composite identity: normalized title
// plus source name. The input is already sorted descending by score, so a
// single stable pass keeps the highest-scored occurrence.
func Dedup(sorted []result.Scored) []result.Scored {
	type identity struct {
		title  string
		source string
	}

	seen := make(map[identity]struct{}, len(sorted))
	out := sorted[:0]
	for _, r := range sorted {
		doc := r.Document()
		key := identity{
			title:  queryproc.Normalize(doc.Title()),
			source: doc.SourceName(),
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
