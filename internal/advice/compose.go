package advice

import (
	"strings"
)

// Compose renders the answer from ranked bullets: duplicates are dropped
// ignoring case, at most maxBullets are kept and each is annotated.
func (r *Rules) Compose(q Query, ranked []ScoredBullet, maxBullets int) string {
	seen := make(map[string]struct{}, len(ranked))
	var picked []string
	for _, sb := range ranked {
		if len(picked) >= maxBullets {
			break
		}
		key := strings.ToLower(sb.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		picked = append(picked, r.Annotate(sb.Text, q))
	}

	if len(picked) == 0 {
		return r.NoStatement(q.Text)
	}
	return r.render(q.Text, picked)
}

// Annotate appends the example clause of the first annotation whose topic
// appears in the question and whose phrase appears in line.
func (r *Rules) Annotate(line string, q Query) string {
	lower := strings.ToLower(line)
	for _, a := range r.Annotations {
		if !containsAny(q.Lower, lowerAll(a.Topics)) {
			continue
		}
		if containsAny(lower, lowerAll(a.Match)) {
			return line + " " + a.Example
		}
	}
	return line
}

// Insufficient is the answer when retrieval found nothing.
func (r *Rules) Insufficient(question string) string {
	return r.message(question, r.Messages.Insufficient)
}

// NoStatement is the answer when context was found but nothing could be
// extracted from it.
func (r *Rules) NoStatement(question string) string {
	return r.message(question, r.Messages.NoStatement)
}

func (r *Rules) render(question string, bullets []string) string {
	var b strings.Builder
	b.WriteString("**Answer:** ")
	b.WriteString(strings.TrimSpace(question))
	for _, line := range bullets {
		b.WriteString("\n• ")
		b.WriteString(line)
	}
	b.WriteString("\n\n")
	b.WriteString(r.footer())
	return b.String()
}

func (r *Rules) message(question, text string) string {
	return "**Answer:** " + strings.TrimSpace(question) + "\n" + text + "\n\n" + r.footer()
}

func (r *Rules) footer() string {
	return "_Source: " + r.Source + "_"
}
