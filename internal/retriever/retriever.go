// Package retriever finds the knowledge-base chunks most relevant to a
// question: vector similarity picks a wide candidate pool, a lexical gate
// keeps candidates that share a word with the question.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"finassist/internal/embedding"
	"finassist/internal/index"
)

// Oversample is the candidate pool size as a multiple of k.
const Oversample = 3

var queryWord = regexp.MustCompile(`[a-z]{3,}`)

// Store is the part of the index the retriever reads from.
type Store interface {
	Ensure(ctx context.Context) error
	Nearest(ctx context.Context, query []float32, n int) ([]index.Hit, error)
}

type Retriever struct {
	store    Store
	embedder embedding.Embedder
	logger   *slog.Logger
}

func New(store Store, embedder embedding.Embedder, logger *slog.Logger) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		logger:   logger.With(slog.String("component", "retriever")),
	}
}

// Search returns at most k hits in descending similarity. An unavailable
// knowledge base yields no hits and no error; provider failures are returned.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]index.Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	if err := r.store.Ensure(ctx); err != nil {
		if errors.Is(err, index.ErrKnowledgeBaseUnavailable) {
			r.logger.Warn("Knowledge base unavailable", slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, fmt.Errorf("prepare index: %w", err)
	}

	vecs, err := r.embedder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("%w: got %d vectors for one query", embedding.ErrProvider, len(vecs))
	}

	candidates, err := r.store.Nearest(ctx, vecs[0], Oversample*k)
	if err != nil {
		return nil, err
	}

	hits := LexicalFilter(candidates, query)
	if len(hits) == 0 {
		r.logger.Debug("Lexical filter kept nothing, using similarity order", slog.Int("candidates", len(candidates)))
		hits = candidates
	}
	if len(hits) > k {
		hits = hits[:k]
	}

	for i, h := range hits {
		r.logger.Debug("Hit",
			slog.Int("rank", i+1),
			slog.Int("chunk", h.Chunk.Ordinal),
			slog.String("section", h.Chunk.Section),
			slog.Float64("similarity", float64(h.Similarity)),
		)
	}
	return hits, nil
}

// LexicalFilter keeps the hits whose text contains a word of three or more
// letters from the query, preserving order.
func LexicalFilter(hits []index.Hit, query string) []index.Hit {
	words := queryWord.FindAllString(strings.ToLower(query), -1)
	if len(words) == 0 {
		return nil
	}

	var kept []index.Hit
	for _, h := range hits {
		text := strings.ToLower(h.Chunk.Text)
		for _, w := range words {
			if strings.Contains(text, w) {
				kept = append(kept, h)
				break
			}
		}
	}
	return kept
}

// Context joins the hit texts with blank lines.
func Context(hits []index.Hit) string {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Chunk.Text
	}
	return strings.Join(texts, "\n\n")
}
