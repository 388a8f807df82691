package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

// CreateChunk builds a chunk with trimmed text.
func CreateChunk(ordinal int, text, source, section string, metadata map[string]string) Chunk {
	if metadata == nil {
		metadata = make(map[string]string)
	}

	return Chunk{
		Ordinal:  ordinal,
		Text:     strings.TrimSpace(text),
		Source:   source,
		Section:  section,
		Metadata: metadata,
	}
}

// SplitByParagraphs splits text on blank lines and drops empty blocks.
func SplitByParagraphs(text string) []string {
	var result []string
	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Pack greedily joins consecutive blocks with a newline while the result stays
// within maxLen characters. A block longer than maxLen becomes its own chunk.
func Pack(blocks []string, maxLen int) []string {
	var chunks []string
	var buf strings.Builder
	bufLen := 0

	for _, b := range blocks {
		n := utf8.RuneCountInString(b)
		switch {
		case bufLen == 0:
			buf.WriteString(b)
			bufLen = n
		case bufLen+1+n <= maxLen:
			buf.WriteString("\n")
			buf.WriteString(b)
			bufLen += 1 + n
		default:
			chunks = append(chunks, buf.String())
			buf.Reset()
			buf.WriteString(b)
			bufLen = n
		}
	}

	if bufLen > 0 {
		chunks = append(chunks, buf.String())
	}

	return chunks
}
