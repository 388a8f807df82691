// Package budget compares monthly spending per category against budget.
package budget

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const monthLayout = "2006-01"

var (
	monthPattern = regexp.MustCompile(`(20\d{2}-\d{2})`)
	topPattern   = regexp.MustCompile(`top\s+(\d+)`)

	printer = message.NewPrinter(language.English)
)

// Line is one category of a month report. Positive variance means
// overspending.
type Line struct {
	Category string
	Budget   float64
	Actual   float64
	Variance float64
}

// Source produces month reports for a "2006-01" month key.
type Source interface {
	MonthReport(ctx context.Context, month string) ([]Line, error)
}

// StubSource returns the same fixed report for every month.
type StubSource struct{}

func (StubSource) MonthReport(_ context.Context, _ string) ([]Line, error) {
	return []Line{
		{Category: "Restaurants", Budget: 150, Actual: 172.34, Variance: 22.34},
		{Category: "Internet", Budget: 75, Actual: 75, Variance: 0},
	}, nil
}

// ParseMonth finds a "20YY-MM" month key in text.
func ParseMonth(text string) (string, bool) {
	m := monthPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseTop reads "top N" from text, returning def when absent.
func ParseTop(text string, def int) int {
	m := topPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return def
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return def
	}
	return n
}

// HumanMonth renders "2019-09" as "September 2019"; other input is returned
// unchanged.
func HumanMonth(ym string) string {
	t, err := time.Parse(monthLayout, ym)
	if err != nil {
		return ym
	}
	return t.Format("January 2006")
}

// Summary lists the top over-budget and under-budget categories.
func Summary(report []Line, top int, label string) string {
	var over, under []Line
	for _, l := range report {
		switch {
		case l.Variance > 0:
			over = append(over, l)
		case l.Variance < 0:
			under = append(under, l)
		}
	}
	sort.SliceStable(over, func(i, j int) bool { return over[i].Variance > over[j].Variance })
	sort.SliceStable(under, func(i, j int) bool { return under[i].Variance < under[j].Variance })
	over = head(over, top)
	under = head(under, top)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Budget Summary for %s ---\n\n", label)
	fmt.Fprintf(&b, "Top %d over-budget categories:\n", len(over))
	for _, l := range over {
		b.WriteString(printer.Sprintf("  - %s: +$%.2f (Actual $%.2f vs Budget $%.2f)\n", l.Category, l.Variance, l.Actual, l.Budget))
	}
	fmt.Fprintf(&b, "\nTop %d under-budget categories:\n", len(under))
	for _, l := range under {
		b.WriteString(printer.Sprintf("  - %s: $%.2f (Actual $%.2f vs Budget $%.2f)\n", l.Category, l.Variance, l.Actual, l.Budget))
	}
	return strings.TrimRight(b.String(), "\n")
}

func head(lines []Line, n int) []Line {
	if n < 0 {
		n = 0
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
