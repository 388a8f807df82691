package advice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	r := DefaultRules()

	t.Run("Marked lines and lead words", func(t *testing.T) {
		text := "# Dining Out\n- Cap dining out and track weekly spend.\n  • Meal prep on Sundays.\n* **Coffee** at home\nSet a weekly cap on dining.\nSet up\nplain prose without a marker"

		got := r.Extract(text)

		assert.Equal(t, []string{
			"Cap dining out and track weekly spend.",
			"Meal prep on Sundays.",
			"Coffee** at home",
			"Set a weekly cap on dining.",
		}, got)
	})

	t.Run("Bare markers are skipped", func(t *testing.T) {
		assert.Equal(t, []string{"real item"}, r.Extract("-\n* \n- real item"))
	})

	t.Run("Allocation fallback", func(t *testing.T) {
		text := "The 50/30/20 rule splits pay.\nPut 50% toward needs every month.\nshort 20%"

		assert.Equal(t, []string{"Put 50% toward needs every month."}, r.Extract(text))
	})

	t.Run("Sentence fallback", func(t *testing.T) {
		text := "Nothing structured here, just prose\nTiny, line.\nno punctuation in this long line at all"

		assert.Equal(t, []string{"Nothing structured here, just prose"}, r.Extract(text))
	})

	t.Run("Nothing usable", func(t *testing.T) {
		assert.Empty(t, r.Extract(""))
		assert.Empty(t, r.Extract("# Heading\nshort"))
	})

	t.Run("Re-extracting marked bullets is stable", func(t *testing.T) {
		text := "# Internet\n- Call your provider yearly.\n• Bundle internet and mobile.\nAutomate bill payments to avoid late fees."
		first := r.Extract(text)

		rendered := make([]string, len(first))
		for i, b := range first {
			rendered[i] = "- " + b
		}
		second := r.Extract(strings.Join(rendered, "\n"))

		assert.Equal(t, first, second)
	})
}
