// Package index maintains the embedding index over the knowledge-base
// document. The index lives in a chromem-go collection and is persisted as a
// single exported file that is reused only while it matches the configured
// embedding model and the current source document.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/philippgille/chromem-go"

	"finassist/internal/chunker"
	"finassist/internal/embedding"
)

const collectionName = "kb"

// Options configures an Index.
type Options struct {
	DocumentPath   string // Knowledge-base source file
	CachePath      string // Exported index artifact
	MaxChunkLength int    // Chunk length limit in characters
	ChunkMethod    string // markdown, text, or empty to pick by extension
	MinChunks      int    // Cached artifacts with fewer chunks are rebuilt
	MinChars       int    // Cached artifacts with less text are rebuilt
	Compress       bool   // Gzip the exported artifact
}

// Hit is a chunk retrieved for a query with its cosine similarity.
type Hit struct {
	Chunk      chunker.Chunk
	Similarity float32
}

// Stats summarises a ready index.
type Stats struct {
	Chunks int
	Chars  int
	Model  string
	Cache  string
}

// Index holds chunks and their vectors. It is built lazily by Ensure and kept
// for the lifetime of the process.
type Index struct {
	opts     Options
	embedder embedding.Embedder
	factory  *chunker.Factory
	logger   *slog.Logger

	mu      sync.Mutex
	ready   bool
	coll    *chromem.Collection
	chunks  []chunker.Chunk
	vectors [][]float32
}

// New creates an index; nothing is read until Ensure is called.
func New(opts Options, embedder embedding.Embedder, logger *slog.Logger) *Index {
	return &Index{
		opts:     opts,
		embedder: embedder,
		factory:  chunker.NewFactory(chunker.Config{MaxChunkSize: opts.MaxChunkLength}),
		logger:   logger.With(slog.String("component", "index")),
	}
}

// Ensure makes the index ready, reusing the cached artifact when it is still
// valid and rebuilding it otherwise. It returns ErrKnowledgeBaseUnavailable
// when the source document is missing or empty and wraps
// embedding.ErrProvider when vectors cannot be computed.
func (ix *Index) Ensure(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.ready {
		return nil
	}

	if _, err := os.Stat(ix.opts.DocumentPath); err != nil {
		ix.logger.Warn("Knowledge base not found", slog.String("path", ix.opts.DocumentPath))
		return fmt.Errorf("%w: %s", ErrKnowledgeBaseUnavailable, ix.opts.DocumentPath)
	}

	coll, chunks, vectors, err := ix.load(ctx)
	if err == nil {
		ix.logger.Debug("Using cached index", slog.Int("chunks", len(chunks)), slog.String("cache", ix.opts.CachePath))
		ix.set(coll, chunks, vectors)
		return nil
	}

	switch {
	case errors.Is(err, errNoCache):
		ix.logger.Debug("No cached index, building")
	case errors.Is(err, ErrCorruptCache), errors.Is(err, errSmallCache):
		ix.logger.Warn("Discarding cached index", slog.String("reason", err.Error()))
		if rmErr := os.Remove(ix.opts.CachePath); rmErr != nil && !os.IsNotExist(rmErr) {
			ix.logger.Warn("Failed to remove cached index", slog.String("error", rmErr.Error()))
		}
	default:
		ix.logger.Info("Rebuilding index", slog.String("reason", err.Error()))
	}

	return ix.rebuild(ctx)
}

// Build rebuilds the index from the source document regardless of the cache.
func (ix *Index) Build(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.ready = false
	return ix.rebuild(ctx)
}

// Refresh drops the in-memory index and validates the cache again.
func (ix *Index) Refresh(ctx context.Context) error {
	ix.mu.Lock()
	ix.ready = false
	ix.coll, ix.chunks, ix.vectors = nil, nil, nil
	ix.mu.Unlock()

	return ix.Ensure(ctx)
}

// Chunks returns the indexed chunks in document order.
func (ix *Index) Chunks() []chunker.Chunk {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.chunks
}

// Vectors returns one unit vector per chunk, aligned with Chunks.
func (ix *Index) Vectors() [][]float32 {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.vectors
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.chunks)
}

// Stats reports the size of the ready index.
func (ix *Index) Stats() Stats {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	chars := 0
	for _, c := range ix.chunks {
		chars += len([]rune(c.Text))
	}
	return Stats{
		Chunks: len(ix.chunks),
		Chars:  chars,
		Model:  ix.embedder.ModelName(),
		Cache:  ix.opts.CachePath,
	}
}

func (ix *Index) set(coll *chromem.Collection, chunks []chunker.Chunk, vectors [][]float32) {
	ix.coll = coll
	ix.chunks = chunks
	ix.vectors = vectors
	ix.ready = true
}
