package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/philippgille/chromem-go"

	"finassist/internal/chunker"
	"finassist/internal/embedding"
)

// Metadata keys stored on every document of the exported collection.
const (
	metaModel       = "model"
	metaOrdinal     = "ordinal"
	metaSection     = "section"
	metaSource      = "source"
	metaSourceMTime = "source_mtime"
	metaSourceSize  = "source_size"
)

// load restores the collection from the cache file and checks it against the
// current model and source document.
func (ix *Index) load(ctx context.Context) (*chromem.Collection, []chunker.Chunk, [][]float32, error) {
	if _, err := os.Stat(ix.opts.CachePath); err != nil {
		return nil, nil, nil, errNoCache
	}

	ix.logger.Debug("Loading index cache", slog.String("path", ix.opts.CachePath))
	db := chromem.NewDB()
	if err := db.ImportFromFile(ix.opts.CachePath, "", collectionName); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: import: %w", ErrCorruptCache, err)
	}

	coll := db.GetCollection(collectionName, embedding.EmbeddingFunc(ix.embedder))
	if coll == nil {
		return nil, nil, nil, fmt.Errorf("%w: collection %q not found", ErrCorruptCache, collectionName)
	}

	n := coll.Count()
	if n == 0 {
		return nil, nil, nil, fmt.Errorf("%w: empty collection", ErrCorruptCache)
	}

	info, err := os.Stat(ix.opts.DocumentPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrKnowledgeBaseUnavailable, ix.opts.DocumentPath)
	}

	chunks := make([]chunker.Chunk, 0, n)
	vectors := make([][]float32, 0, n)
	chars := 0
	dims := 0
	for i := 0; i < n; i++ {
		doc, err := coll.GetByID(ctx, strconv.Itoa(i))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: chunk %d: %w", ErrCorruptCache, i, err)
		}
		if doc.Metadata[metaModel] != ix.embedder.ModelName() {
			return nil, nil, nil, fmt.Errorf("%w: cached %q, configured %q", errModelMismatch, doc.Metadata[metaModel], ix.embedder.ModelName())
		}
		if i == 0 {
			dims = len(doc.Embedding)
			if err := checkFresh(doc.Metadata, info); err != nil {
				return nil, nil, nil, err
			}
		}
		if len(doc.Embedding) == 0 || len(doc.Embedding) != dims {
			return nil, nil, nil, fmt.Errorf("%w: chunk %d has %d dimensions, want %d", ErrCorruptCache, i, len(doc.Embedding), dims)
		}

		chunks = append(chunks, chunker.Chunk{
			Ordinal:  i,
			Text:     doc.Content,
			Source:   doc.Metadata[metaSource],
			Section:  doc.Metadata[metaSection],
			Metadata: doc.Metadata,
		})
		vectors = append(vectors, doc.Embedding)
		chars += len([]rune(doc.Content))
	}

	if n < ix.opts.MinChunks || chars < ix.opts.MinChars {
		return nil, nil, nil, fmt.Errorf("%w: %d chunks, %d characters", errSmallCache, n, chars)
	}

	return coll, chunks, vectors, nil
}

func checkFresh(meta map[string]string, info os.FileInfo) error {
	mtime := strconv.FormatInt(info.ModTime().UnixNano(), 10)
	size := strconv.FormatInt(info.Size(), 10)
	if meta[metaSourceMTime] != mtime || meta[metaSourceSize] != size {
		return fmt.Errorf("%w: source changed since %s", errStaleCache, describeMTime(meta[metaSourceMTime]))
	}
	return nil
}

func describeMTime(raw string) string {
	ns, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "unknown time"
	}
	return time.Unix(0, ns).Format(time.RFC3339)
}

// save exports the collection next to the cache path and renames it into
// place so a reader never observes a partially written artifact.
func (ix *Index) save(db *chromem.DB) error {
	dir := filepath.Dir(ix.opts.CachePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp cache: %w", err)
	}

	if err := db.ExportToFile(tmpPath, ix.opts.Compress, "", collectionName); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("export index: %w", err)
	}
	if err := os.Rename(tmpPath, ix.opts.CachePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}
