// Package rank re-scores completion candidates against the cursor
// context. Every function is pure: inputs are copied, never mutated, and
// the combinators compose in any order.
package rank

import (
	"sort"
	"strings"

	"github.com/hollis-dev/symserve/pkg/model"
)

// defaultBaseScore is assumed for candidates that arrive unscored.
const defaultBaseScore = 0.5

// Ranker applies the multi-factor relevance model.
type Ranker struct {
	kindWeights map[model.Kind]float64
}

// New creates a ranker with the stock kind weights.
func New() *Ranker {
	return &Ranker{
		kindWeights: map[model.Kind]float64{
			model.KindKeyword:    1.4,
			model.KindBuiltin:    1.2,
			model.KindFunction:   1.0,
			model.KindClass:      0.95,
			model.KindVariable:   0.7,
			model.KindImport:     0.7,
			model.KindIdentifier: 0.6,
		},
	}
}

// Rank returns the suggestions re-scored against ctx and stably sorted by
// descending score. A nil context leaves only the kind and frequency
// factors in play.
func (r *Ranker) Rank(suggestions []model.Completion, ctx *model.Context) []model.Completion {
	if len(suggestions) == 0 {
		return nil
	}

	available := make(map[string]struct{})
	var scope, contextLang, prefix string
	if ctx != nil {
		for _, name := range ctx.AvailableSymbols {
			available[name] = struct{}{}
		}
		scope = ctx.Scope
		contextLang = ctx.Language
		prefix = ctx.Prefix
	}

	ranked := make([]model.Completion, len(suggestions))
	copy(ranked, suggestions)

	for i := range ranked {
		s := &ranked[i]
		score := s.Score
		if score == 0 {
			score = defaultBaseScore
		}

		weight, ok := r.kindWeights[s.Kind]
		if !ok {
			weight = 0.5
		}
		score *= weight

		if s.Scope != "" && s.Scope == scope {
			score *= 1.2
		} else if scope != "" && s.Scope != "" && strings.HasPrefix(scope, s.Scope+".") {
			score *= 1.1
		}

		if _, ok := available[s.Text]; ok {
			score *= 1.15
		}

		// Keywords matching the typed prefix beat everything else.
		if prefix != "" && s.Text != "" {
			switch {
			case s.Text == prefix && s.Kind == model.KindKeyword:
				score *= 3.0
			case strings.HasPrefix(s.Text, prefix) && s.Kind == model.KindKeyword:
				score *= 2.0
			case strings.HasPrefix(s.Text, prefix):
				score *= 1.2
			}
		}

		if contextLang != "" && s.Language != "" {
			if s.Language == contextLang {
				score *= 1.3
			} else {
				score *= 0.1
			}
		}

		if s.Frequency > 0 {
			boost := 1.0 + float64(s.Frequency)/100.0
			if boost > 1.2 {
				boost = 1.2
			}
			score *= boost
		}

		if score > 1.0 {
			score = 1.0
		}
		s.Score = score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// FilterByKind keeps only suggestions whose kind is in allowed. An empty
// allowed list passes everything through.
func FilterByKind(suggestions []model.Completion, allowed []model.Kind) []model.Completion {
	if len(allowed) == 0 {
		return suggestions
	}
	permitted := make(map[model.Kind]struct{}, len(allowed))
	for _, k := range allowed {
		permitted[k] = struct{}{}
	}
	var kept []model.Completion
	for _, s := range suggestions {
		if _, ok := permitted[s.Kind]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// Limit truncates suggestions to at most max entries.
func Limit(suggestions []model.Completion, max int) []model.Completion {
	if max < 0 || len(suggestions) <= max {
		return suggestions
	}
	return suggestions[:max]
}
