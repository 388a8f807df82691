package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitByParagraphs(t *testing.T) {
	t.Run("Blank lines with trailing spaces still separate blocks", func(t *testing.T) {
		text := "first\n\nsecond\n   \nthird\n\t\n\nfourth"

		assert.Equal(t, []string{"first", "second", "third", "fourth"}, SplitByParagraphs(text))
	})

	t.Run("Single newlines stay inside a block", func(t *testing.T) {
		text := "- one\n- two\n\n- three"

		assert.Equal(t, []string{"- one\n- two", "- three"}, SplitByParagraphs(text))
	})

	t.Run("Empty and whitespace-only text", func(t *testing.T) {
		assert.Empty(t, SplitByParagraphs(""))
		assert.Empty(t, SplitByParagraphs("  \n\n \t \n"))
	})
}

func TestPack(t *testing.T) {
	t.Run("Blocks are packed while they fit", func(t *testing.T) {
		blocks := []string{"aaaa", "bbbb", "cccc"}

		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, Pack(blocks, 9))
	})

	t.Run("Separator counts toward the limit", func(t *testing.T) {
		blocks := []string{"aaaa", "bbbb"}

		assert.Equal(t, []string{"aaaa", "bbbb"}, Pack(blocks, 8))
	})

	t.Run("Oversized block becomes its own chunk", func(t *testing.T) {
		long := strings.Repeat("x", 30)
		blocks := []string{"short", long, "tail"}

		chunks := Pack(blocks, 10)

		assert.Equal(t, []string{"short", long, "tail"}, chunks)
	})

	t.Run("Length is measured in characters", func(t *testing.T) {
		blocks := []string{"• ab", "• cd"}

		assert.Equal(t, []string{"• ab\n• cd"}, Pack(blocks, 9))
	})
}

func TestTextChunker(t *testing.T) {
	doc := "# Budgeting\n\nTrack every expense for a month.\n\n" +
		"- Set a weekly cap.\n- Review it on Sundays.\n\n" +
		"Emergency funds cover three to six months of needs.\n\n" +
		strings.Repeat("Long paragraph text. ", 10)

	t.Run("Reconstructs the trimmed paragraphs in order", func(t *testing.T) {
		c := NewTextChunker(Config{MaxChunkSize: 80})

		chunks, err := c.Chunk(doc, "guide.md")

		require.NoError(t, err)
		texts := make([]string, 0, len(chunks))
		for _, ch := range chunks {
			texts = append(texts, ch.Text)
		}
		assert.Equal(t, strings.Join(SplitByParagraphs(doc), "\n"), strings.Join(texts, "\n"))
	})

	t.Run("No chunk is empty or over the limit unless it is one paragraph", func(t *testing.T) {
		c := NewTextChunker(Config{MaxChunkSize: 80})

		chunks, err := c.Chunk(doc, "guide.md")

		require.NoError(t, err)
		paragraphs := SplitByParagraphs(doc)
		for i, ch := range chunks {
			assert.Equal(t, i, ch.Ordinal)
			assert.Equal(t, "guide.md", ch.Source)
			assert.NotEmpty(t, ch.Text)
			if utf8.RuneCountInString(ch.Text) > 80 {
				assert.Contains(t, paragraphs, ch.Text, "only a single paragraph may exceed the limit")
			}
		}
	})

	t.Run("Empty document yields no chunks", func(t *testing.T) {
		c := NewTextChunker(Config{MaxChunkSize: 80})

		chunks, err := c.Chunk(" \n\n ", "empty.md")

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("Non-positive size is rejected", func(t *testing.T) {
		c := NewTextChunker(Config{MaxChunkSize: 0})

		_, err := c.Chunk(doc, "guide.md")

		assert.Error(t, err)
	})
}
