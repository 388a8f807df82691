package chunker

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Factory creates chunkers by method name or source file type.
type Factory struct {
	config Config
}

// NewFactory creates a chunker factory.
func NewFactory(config Config) *Factory {
	return &Factory{config: config}
}

// GetChunker returns the chunker suited to the file's extension.
func (f *Factory) GetChunker(filePath string) Chunker {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".md", ".markdown":
		return NewMarkdownChunker(f.config)
	default:
		return NewTextChunker(f.config)
	}
}

// GetChunkerByMethod returns a chunker by method name.
func (f *Factory) GetChunkerByMethod(method string) (Chunker, error) {
	switch strings.ToLower(method) {
	case "markdown", "md":
		return NewMarkdownChunker(f.config), nil
	case "text", "txt", "paragraphs":
		return NewTextChunker(f.config), nil
	default:
		return nil, fmt.Errorf("unknown chunking method: %s", method)
	}
}
