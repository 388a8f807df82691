package advice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finassist/internal/chunker"
	"finassist/internal/embedding"
	"finassist/internal/index"
	"finassist/internal/logging"
	"finassist/internal/retriever"
)

type fakeSearcher struct {
	hits  []index.Hit
	err   error
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, k int) ([]index.Hit, error) {
	f.calls++
	if len(f.hits) > k {
		return f.hits[:k], f.err
	}
	return f.hits, f.err
}

func passages(texts ...string) []index.Hit {
	hits := make([]index.Hit, len(texts))
	for i, t := range texts {
		hits[i] = index.Hit{Chunk: chunker.Chunk{Ordinal: i, Text: t}, Similarity: 1 - float32(i)/10}
	}
	return hits
}

func newEngine(s Searcher) *Engine {
	return NewEngine(DefaultRules(), s, Options{TopK: 3, MaxBullets: 5}, logging.Discard())
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocation rule uses the fast path", func(t *testing.T) {
		s := &fakeSearcher{}

		got, err := newEngine(s).Answer(ctx, "What is the 50/30/20 rule?")

		require.NoError(t, err)
		assert.Contains(t, got, "50% to needs, 30% to wants, 20% to savings")
		assert.Equal(t, 1, strings.Count(got, "\n• "))
		assert.True(t, strings.HasPrefix(got, "**Answer:** What is the 50/30/20 rule?\n"))
		assert.Equal(t, 0, s.calls, "fast path must not retrieve")
	})

	t.Run("Restaurant question gets an annotated cap bullet first", func(t *testing.T) {
		s := &fakeSearcher{hits: passages(
			"## Dining Out\n- Cap dining out and track weekly spend.\n- Meal prep lunches twice a week.",
			"## Internet\n- Call your provider for promo pricing.",
		)}

		got, err := newEngine(s).Answer(ctx, "How can I save money on restaurant spending?")

		require.NoError(t, err)
		lines := strings.Split(got, "\n")
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, "• Cap dining out and track weekly spend. (e.g., set a weekly dining cap of $40-60 and track spend).", lines[1])
		assert.True(t, strings.HasSuffix(got, "\n\n_Source: FinAssist KB_"))
	})

	t.Run("No hits gives the insufficient-information answer", func(t *testing.T) {
		got, err := newEngine(&fakeSearcher{}).Answer(ctx, "How do I save?")

		require.NoError(t, err)
		assert.Equal(t, DefaultRules().Insufficient("How do I save?"), got)
	})

	t.Run("Unextractable context", func(t *testing.T) {
		s := &fakeSearcher{hits: passages("# Notes\nshort\nalso short")}

		got, err := newEngine(s).Answer(ctx, "How do I save?")

		require.NoError(t, err)
		assert.Equal(t, DefaultRules().NoStatement("How do I save?"), got)
	})

	t.Run("Provider failures propagate", func(t *testing.T) {
		s := &fakeSearcher{err: fmt.Errorf("%w: timeout", embedding.ErrProvider)}

		_, err := newEngine(s).Answer(ctx, "How do I lower my internet bill?")

		assert.ErrorIs(t, err, embedding.ErrProvider)
	})

	t.Run("Respond exposes hits", func(t *testing.T) {
		s := &fakeSearcher{hits: passages("- Automate a transfer to savings every payday.")}

		res, err := newEngine(s).Respond(ctx, "emergency savings tips", 2)

		require.NoError(t, err)
		assert.Len(t, res.Hits, 1)
		assert.False(t, res.FastPath)
		assert.Contains(t, res.Text, "• Automate a transfer to savings every payday.")
	})
}

func TestAnswerEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kb := filepath.Join(dir, "finance_guide.md")
	emb := embedding.NewHash(512)

	build := func(t *testing.T) *Engine {
		t.Helper()
		ix := index.New(index.Options{
			DocumentPath:   kb,
			CachePath:      filepath.Join(dir, "embeddings.gob"),
			MaxChunkLength: 120,
			MinChunks:      1,
			MinChars:       1,
		}, emb, logging.Discard())
		return newEngine(retriever.New(ix, emb, logging.Discard()))
	}

	t.Run("Missing knowledge base", func(t *testing.T) {
		got, err := build(t).Answer(ctx, "How can I reduce restaurant spending?")

		require.NoError(t, err)
		assert.Equal(t, DefaultRules().Insufficient("How can I reduce restaurant spending?"), got)
	})

	t.Run("Dining advice from the guide", func(t *testing.T) {
		guide := "# Dining Out\n- Cap dining out and track weekly spend.\n\n# Emergency Fund\n- Target three months of expenses.\n"
		require.NoError(t, os.WriteFile(kb, []byte(guide), 0o644))

		got, err := build(t).Answer(ctx, "How can I save money on restaurant spending?")

		require.NoError(t, err)
		assert.Contains(t, got, "\n• Cap dining out and track weekly spend. (e.g., set a weekly dining cap of $40-60 and track spend).")
	})
}
