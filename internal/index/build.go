package index

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"finassist/internal/chunker"
	"finassist/internal/embedding"
)

// rebuild chunks and embeds the source document, installs the result and
// persists it. A failed save is logged; the in-memory index stays usable.
func (ix *Index) rebuild(ctx context.Context) error {
	doc, err := chunker.LoadDocument(ix.opts.DocumentPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKnowledgeBaseUnavailable, err)
	}

	splitter, err := ix.chunker()
	if err != nil {
		return err
	}
	chunks, err := splitter.Chunk(doc.Content, filepath.Base(doc.Source))
	if err != nil {
		return fmt.Errorf("chunk %s: %w", ix.opts.DocumentPath, err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrKnowledgeBaseUnavailable, ix.opts.DocumentPath)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	ix.logger.Info("Embedding knowledge base",
		slog.Int("chunks", len(chunks)),
		slog.String("chunker", splitter.Name()),
		slog.String("model", ix.embedder.ModelName()),
	)
	vectors, err := ix.embedder.Encode(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", embedding.ErrProvider, len(vectors), len(chunks))
	}

	db := chromem.NewDB()
	coll, err := db.CreateCollection(collectionName, map[string]string{metaModel: ix.embedder.ModelName()}, embedding.EmbeddingFunc(ix.embedder))
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	mtime := strconv.FormatInt(doc.ModTime.UnixNano(), 10)
	size := strconv.FormatInt(doc.Size, 10)
	docs := make([]chromem.Document, len(chunks))
	for i := range chunks {
		meta := make(map[string]string, len(chunks[i].Metadata)+6)
		for k, v := range chunks[i].Metadata {
			meta[k] = v
		}
		meta[metaModel] = ix.embedder.ModelName()
		meta[metaOrdinal] = strconv.Itoa(i)
		meta[metaSection] = chunks[i].Section
		meta[metaSource] = chunks[i].Source
		meta[metaSourceMTime] = mtime
		meta[metaSourceSize] = size
		chunks[i].Ordinal = i
		chunks[i].Metadata = meta

		docs[i] = chromem.Document{
			ID:        strconv.Itoa(i),
			Metadata:  meta,
			Embedding: vectors[i],
			Content:   chunks[i].Text,
		}
	}

	if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	if err := ix.save(db); err != nil {
		ix.logger.Warn("Failed to persist index", slog.String("error", err.Error()))
	} else {
		ix.logger.Debug("Index persisted", slog.String("path", ix.opts.CachePath))
	}

	ix.set(coll, chunks, vectors)
	return nil
}

func (ix *Index) chunker() (chunker.Chunker, error) {
	switch ix.opts.ChunkMethod {
	case "", "auto":
		return ix.factory.GetChunker(ix.opts.DocumentPath), nil
	default:
		return ix.factory.GetChunkerByMethod(ix.opts.ChunkMethod)
	}
}
