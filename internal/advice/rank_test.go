package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	r := DefaultRules()

	q := r.ParseQuery("  How do I lower my Internet bill? ")

	assert.Equal(t, "How do I lower my Internet bill?", q.Text)
	assert.Contains(t, q.Terms, "lower")
	assert.Contains(t, q.Terms, "internet")
	assert.NotContains(t, q.Terms, "do")
	assert.Contains(t, q.Boost, "provider")
	assert.Contains(t, q.Boost, "autopay")
	assert.NotContains(t, q.Boost, "plan", "mobile topic not mentioned")
}

func TestIsAllocation(t *testing.T) {
	r := DefaultRules()

	assert.True(t, r.IsAllocation(r.ParseQuery("Explain the budgeting rules")))
	assert.True(t, r.IsAllocation(r.ParseQuery("is 50/30/20 realistic")))
	assert.False(t, r.IsAllocation(r.ParseQuery("How can I cut coffee costs?")))
}

func TestFilter(t *testing.T) {
	r := DefaultRules()

	t.Run("Allocation questions keep allocation bullets", func(t *testing.T) {
		bullets := []string{
			"Call your provider yearly.",
			"Allocate half to needs.",
			"Keep wants under 30%.",
			"Move 20% to savings.",
			"Needs come first.",
		}

		got := r.Filter(bullets, r.ParseQuery("What is a good budgeting rule?"))

		assert.Equal(t, []string{"Allocate half to needs.", "Keep wants under 30%.", "Move 20% to savings."}, got)
	})

	t.Run("Strong matches win and are capped", func(t *testing.T) {
		bullets := []string{
			"Save on groceries with lists.",
			"Cap dining one.", "Cap dining two.", "Cap dining three.",
			"Track coffee four.", "Track coffee five.", "Track coffee six.",
		}

		got := r.Filter(bullets, r.ParseQuery("How do I save on restaurant meals?"))

		require.Len(t, got, 5)
		assert.Equal(t, "Cap dining one.", got[0])
		assert.NotContains(t, got, "Save on groceries with lists.")
	})

	t.Run("Weak matches when no boost term overlaps", func(t *testing.T) {
		bullets := []string{
			"Refinance the mortgage when rates drop.",
			"Pay the mortgage biweekly.",
			"Plant a garden.",
			"Mortgage points can pay off.",
			"Mortgage insurance ends at 20% equity.",
		}

		got := r.Filter(bullets, r.ParseQuery("mortgage tips"))

		assert.Equal(t, []string{
			"Refinance the mortgage when rates drop.",
			"Pay the mortgage biweekly.",
			"Mortgage points can pay off.",
		}, got)
	})

	t.Run("Minimal fallback keeps a couple of bullets", func(t *testing.T) {
		bullets := []string{"Plant a garden.", "Walk more.", "Read books."}

		got := r.Filter(bullets, r.ParseQuery("retirement accounts"))

		assert.Equal(t, []string{"Plant a garden.", "Walk more."}, got)
	})

	t.Run("No terms keeps everything", func(t *testing.T) {
		bullets := []string{"Plant a garden.", "Walk more.", "Read books."}

		assert.Equal(t, bullets, r.Filter(bullets, r.ParseQuery("?!")))
	})

	t.Run("No bullets", func(t *testing.T) {
		assert.Empty(t, r.Filter(nil, r.ParseQuery("dining")))
	})
}

func TestScore(t *testing.T) {
	r := DefaultRules()
	q := r.ParseQuery("restaurant dining")

	assert.InDelta(t, 2.2, r.Score("Cap dining spend.", q), 1e-9)
	assert.InDelta(t, 0.2, r.Score("Walk more.", q), 1e-9)

	long := "Dining is the one category where a little planning ahead of time makes an outsized difference every month."
	require.Greater(t, len(long), 100)
	assert.InDelta(t, 2.0, r.Score(long, q), 1e-9)
}

func TestRank(t *testing.T) {
	r := DefaultRules()
	q := r.ParseQuery("How can I save money on restaurant spending?")

	ranked := r.Rank([]string{
		"Meal prep lunches twice a week.",
		"Cap dining out and track weekly spend.",
		"Save money by cooking at home with coffee.",
	}, q)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Save money by cooking at home with coffee.", ranked[0].Text)
	assert.InDelta(t, 3.2, ranked[0].Score, 1e-9)
	assert.Equal(t, "Meal prep lunches twice a week.", ranked[1].Text, "ties keep their order")
	assert.Equal(t, "Cap dining out and track weekly spend.", ranked[2].Text)
}
