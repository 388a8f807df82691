package advice

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z]{3,}`)

type termSet map[string]struct{}

func words(text string) termSet {
	set := termSet{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		set[w] = struct{}{}
	}
	return set
}

// overlap counts the members of s also in other.
func (s termSet) overlap(other termSet) int {
	n := 0
	for w := range s {
		if _, ok := other[w]; ok {
			n++
		}
	}
	return n
}

// Query is a question prepared for filtering and scoring.
type Query struct {
	Text  string
	Lower string
	Terms termSet // words of three or more letters
	Boost termSet // topic terms pulled in by topic names in the question
}

func (r *Rules) ParseQuery(question string) Query {
	q := Query{
		Text:  strings.TrimSpace(question),
		Lower: strings.ToLower(question),
		Boost: termSet{},
	}
	q.Terms = words(q.Lower)
	for _, t := range r.Topics {
		if t.Name == "" || !strings.Contains(q.Lower, strings.ToLower(t.Name)) {
			continue
		}
		for _, term := range t.Terms {
			q.Boost[strings.ToLower(term)] = struct{}{}
		}
	}
	return q
}

// IsAllocation reports whether the question asks about splitting income
// between needs, wants and savings.
func (r *Rules) IsAllocation(q Query) bool {
	if containsAny(q.Lower, r.Allocation.QuestionPatterns) {
		return true
	}
	for term := range q.Terms {
		if containsAny(term, r.Allocation.QuestionHints) {
			return true
		}
	}
	return false
}

// IsFastPath reports whether the question is answered by the fixed
// fast-path statement.
func (r *Rules) IsFastPath(q Query) bool {
	return r.FastPath.Answer != "" && containsAny(q.Lower, lowerAll(r.FastPath.Patterns))
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
