package chunker

import (
	"fmt"
	"strconv"
)

// TextChunker packs blank-line separated paragraphs into bounded chunks.
type TextChunker struct {
	config Config
}

// NewTextChunker creates a paragraph chunker.
func NewTextChunker(config Config) *TextChunker {
	return &TextChunker{config: config}
}

func (s *TextChunker) Name() string {
	return "text"
}

func (s *TextChunker) Chunk(content, source string) ([]Chunk, error) {
	if s.config.MaxChunkSize <= 0 {
		return nil, fmt.Errorf("max chunk size must be positive, got %d", s.config.MaxChunkSize)
	}

	packed := Pack(SplitByParagraphs(content), s.config.MaxChunkSize)
	chunks := make([]Chunk, 0, len(packed))
	for i, text := range packed {
		chunks = append(chunks, CreateChunk(i, text, source, "", map[string]string{
			"chunk_num": strconv.Itoa(i + 1),
			"method":    "paragraphs",
		}))
	}

	return chunks, nil
}
