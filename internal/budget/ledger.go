package budget

import (
	"strings"
	"time"
)

type Transaction struct {
	Date     time.Time
	Amount   float64
	Type     string // debit or credit
	Category string
}

// Spend is the absolute amount of a debit, zero otherwise.
func (t Transaction) Spend() float64 {
	if !strings.EqualFold(t.Type, "debit") {
		return 0
	}
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

type Ledger []Transaction

// SampleLedger is a handful of transactions used when no ledger is loaded.
func SampleLedger() Ledger {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		amount   float64
		kind     string
		category string
	}{
		{-50, "debit", "Restaurants"},
		{-20, "debit", "Internet"},
		{-30, "debit", "Restaurants"},
		{1000, "credit", "Paycheck"},
		{-15, "debit", "Coffee"},
	}

	ledger := make(Ledger, len(rows))
	for i, r := range rows {
		ledger[i] = Transaction{Date: start.AddDate(0, 0, i), Amount: r.amount, Type: r.kind, Category: r.category}
	}
	return ledger
}

// LatestSpendMonth returns the most recent "2006-01" month with spending.
func (l Ledger) LatestSpendMonth() (string, bool) {
	spend := make(map[string]float64)
	for _, t := range l {
		spend[t.Date.Format(monthLayout)] += t.Spend()
	}

	latest := ""
	for month, total := range spend {
		if total > 0 && month > latest {
			latest = month
		}
	}
	return latest, latest != ""
}
