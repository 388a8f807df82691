package chunker

import "time"

// Document is a knowledge-base source read once per run.
type Document struct {
	Source  string    // Path of the source file
	Content string    // Raw UTF-8 text
	ModTime time.Time // Last modification time of the source
	Size    int64     // Size in bytes on disk
}

// Chunk is a bounded-length passage of a Document.
type Chunk struct {
	Ordinal  int               // Position of the chunk within the document, from 0
	Text     string            // Chunk text
	Source   string            // Base name of the source file
	Section  string            // Nearest markdown heading, empty for plain text
	Metadata map[string]string // Extra attributes
}

// Chunker splits document content into chunks.
type Chunker interface {
	// Chunk splits content into ordered chunks.
	Chunk(content, source string) ([]Chunk, error)

	// Name returns the chunker name for logging.
	Name() string
}

// Config holds the parameters shared by all chunkers.
type Config struct {
	MaxChunkSize int // Maximum chunk length in characters
}
