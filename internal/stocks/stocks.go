// Package stocks summarises ticker returns over a period.
package stocks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultTicker = "SPY"
	DefaultPeriod = "1y"
)

var (
	tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
	periodPattern = regexp.MustCompile(`\b(\d+)\s*([dwmy])\b`)

	notTickers = map[string]bool{"USD": true, "ETF": true, "YTD": true, "YOY": true, "Q": true, "VS": true}

	printer = message.NewPrinter(language.English)
)

type Quote struct {
	Ticker    string
	ReturnPct float64
	Start     float64
	End       float64
	LastClose float64
}

// Source returns one quote per ticker for a period such as "1y", "6mo" or
// "ytd".
type Source interface {
	Summary(ctx context.Context, tickers []string, period string) ([]Quote, error)
}

// StubSource reports a flat 10% gain for every ticker.
type StubSource struct{}

func (StubSource) Summary(_ context.Context, tickers []string, _ string) ([]Quote, error) {
	quotes := make([]Quote, len(tickers))
	for i, t := range tickers {
		quotes[i] = Quote{Ticker: t, ReturnPct: 10, Start: 100, End: 110, LastClose: 110}
	}
	return quotes, nil
}

// ParseTickers returns the upper-case symbols in text, skipping common
// abbreviations that are not tickers.
func ParseTickers(text string) []string {
	var tickers []string
	for _, tok := range tickerPattern.FindAllString(text, -1) {
		if !notTickers[tok] {
			tickers = append(tickers, tok)
		}
	}
	return tickers
}

// ParsePeriod reads "ytd" or a count with a d/w/m/y unit; months become "mo".
func ParsePeriod(text, def string) string {
	q := strings.ToLower(text)
	if strings.Contains(q, "ytd") {
		return "ytd"
	}
	m := periodPattern.FindStringSubmatch(q)
	if m == nil {
		return def
	}
	unit := m[2]
	if unit == "m" {
		unit = "mo"
	}
	return m[1] + unit
}

func Format(quotes []Quote, period string) string {
	if len(quotes) == 0 {
		return "No data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Investment Summary for %s ---\n", period)
	for _, q := range quotes {
		b.WriteString("\n")
		b.WriteString(printer.Sprintf("%s: %.2f%% (Start $%.2f → End $%.2f; Last $%.2f)", q.Ticker, q.ReturnPct, q.Start, q.End, q.LastClose))
	}
	return b.String()
}

type Handler struct {
	source Source
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

func (h *Handler) Answer(ctx context.Context, question string) (string, error) {
	tickers := ParseTickers(question)
	if len(tickers) == 0 {
		tickers = []string{DefaultTicker}
	}
	period := ParsePeriod(question, DefaultPeriod)

	quotes, err := h.source.Summary(ctx, tickers, period)
	if err != nil {
		return "", fmt.Errorf("stock summary: %w", err)
	}
	return Format(quotes, period), nil
}
