package advice

import (
	"strings"
	"unicode/utf8"
)

// Extract pulls candidate statements out of chunk text in order of
// appearance. Marked lines and lines opening with a lead word come first;
// when there are none it falls back to allocation lines, then to any
// sentence-like line.
func (r *Rules) Extract(text string) []string {
	lines := splitLines(text)
	cutset := strings.Join(r.Bullets.Markers, "") + " "

	var bullets []string
	for _, line := range lines {
		if !r.isBullet(line) {
			continue
		}
		clean := strings.TrimSpace(strings.TrimLeft(line, cutset))
		if clean != "" {
			bullets = append(bullets, clean)
		}
	}
	if len(bullets) > 0 {
		return bullets
	}

	if containsAny(text, r.Allocation.ContextMarkers) {
		for _, line := range lines {
			if utf8.RuneCountInString(line) > r.Allocation.MinLength && containsAny(strings.ToLower(line), r.Allocation.Terms) {
				bullets = append(bullets, line)
			}
		}
		if len(bullets) > 0 {
			return bullets
		}
	}

	for _, line := range lines {
		if utf8.RuneCountInString(line) > r.Bullets.MinSentenceLength && containsAny(line, r.Bullets.SentencePunctuation) {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func (r *Rules) isBullet(line string) bool {
	for _, m := range r.Bullets.Markers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	if utf8.RuneCountInString(line) <= r.Bullets.MinLeadLength {
		return false
	}
	for _, w := range r.Bullets.LeadWords {
		if strings.HasPrefix(line, w) {
			return true
		}
	}
	return false
}

// splitLines returns the trimmed non-empty lines of text.
func splitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
