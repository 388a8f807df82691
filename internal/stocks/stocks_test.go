package stocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickers(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, ParseTickers("Compare AAPL and MSFT over 1y"))
	assert.Equal(t, []string{"QQQ"}, ParseTickers("QQQ vs USD ETF YTD"))
	assert.Empty(t, ParseTickers("compare some stocks"))
	assert.Empty(t, ParseTickers("TOOLONG ticker"))
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]string{
		"Compare AAPL and MSFT over 1y": "1y",
		"returns over 6 m":              "6mo",
		"last 2w":                       "2w",
		"YTD performance":               "ytd",
		"how did it do":                 "1y",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePeriod(in, DefaultPeriod), in)
	}
}

func TestFormat(t *testing.T) {
	got := Format([]Quote{{Ticker: "AAPL", ReturnPct: 12.5, Start: 1000, End: 1125, LastClose: 1130.5}}, "1y")

	assert.Equal(t, "--- Investment Summary for 1y ---\n\nAAPL: 12.50% (Start $1,000.00 → End $1,125.00; Last $1,130.50)", got)
	assert.Equal(t, "No data available.", Format(nil, "1y"))
}

func TestHandler(t *testing.T) {
	h := NewHandler(StubSource{})

	t.Run("Named tickers", func(t *testing.T) {
		got, err := h.Answer(context.Background(), "Compare AAPL and MSFT over 1y")

		require.NoError(t, err)
		assert.Contains(t, got, "AAPL: 10.00% (Start $100.00 → End $110.00; Last $110.00)")
		assert.Contains(t, got, "MSFT: 10.00%")
	})

	t.Run("Defaults to SPY", func(t *testing.T) {
		got, err := h.Answer(context.Background(), "how is the market doing")

		require.NoError(t, err)
		assert.Contains(t, got, "--- Investment Summary for 1y ---")
		assert.Contains(t, got, "SPY: 10.00%")
	})
}
