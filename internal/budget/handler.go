package budget

import (
	"context"
	"fmt"
)

const defaultTop = 5

type Handler struct {
	source Source
	ledger Ledger
}

func NewHandler(source Source, ledger Ledger) *Handler {
	return &Handler{source: source, ledger: ledger}
}

// Answer summarises the month named in the question, or the latest month
// with spending in the ledger.
func (h *Handler) Answer(ctx context.Context, question string) (string, error) {
	month, ok := ParseMonth(question)
	if !ok {
		month, ok = h.ledger.LatestSpendMonth()
	}
	if !ok {
		return "No spending recorded yet.", nil
	}

	report, err := h.source.MonthReport(ctx, month)
	if err != nil {
		return "", fmt.Errorf("month report %s: %w", month, err)
	}
	return Summary(report, ParseTop(question, defaultTop), HumanMonth(month)), nil
}
