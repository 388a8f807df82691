package advice

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ScoredBullet is a bullet with its relevance to a query.
type ScoredBullet struct {
	Text  string
	Score float64
}

// Filter narrows bullets to those relevant to q. Allocation questions keep
// allocation statements; otherwise boost-term matches win over plain term
// matches, and a few unfiltered bullets are kept when nothing matches.
func (r *Rules) Filter(bullets []string, q Query) []string {
	if len(bullets) == 0 {
		return nil
	}

	if r.IsAllocation(q) {
		var alloc []string
		for _, b := range bullets {
			if containsAny(strings.ToLower(b), r.Allocation.Terms) {
				alloc = append(alloc, b)
			}
		}
		if len(alloc) > 0 {
			return head(alloc, r.Caps.Allocation)
		}
	}

	if len(q.Terms) == 0 && len(q.Boost) == 0 {
		return bullets
	}

	var strong, weak []string
	for _, b := range bullets {
		lw := words(b)
		switch {
		case lw.overlap(q.Boost) > 0:
			strong = append(strong, b)
		case lw.overlap(q.Terms) > 0:
			weak = append(weak, b)
		}
	}

	switch {
	case len(strong) > 0:
		return head(strong, r.Caps.Strong)
	case len(weak) > 0:
		return head(weak, r.Caps.Weak)
	default:
		return head(bullets, r.Caps.Minimal)
	}
}

// Score combines term overlap, a boost indicator and a brevity bonus.
func (r *Rules) Score(line string, q Query) float64 {
	lw := words(line)
	score := float64(lw.overlap(q.Terms))
	if lw.overlap(q.Boost) > 0 {
		score += r.Scoring.BoostBonus
	}
	if utf8.RuneCountInString(line) <= r.Scoring.BrevityLength {
		score += r.Scoring.BrevityBonus
	}
	return score
}

// Rank filters bullets and orders the survivors by descending score. Equal
// scores keep their filtered order.
func (r *Rules) Rank(bullets []string, q Query) []ScoredBullet {
	filtered := r.Filter(bullets, q)
	if len(filtered) == 0 {
		filtered = bullets
	}

	scored := make([]ScoredBullet, len(filtered))
	for i, b := range filtered {
		scored[i] = ScoredBullet{Text: b, Score: r.Score(b, q)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
