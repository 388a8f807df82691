package index

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// Nearest returns up to n chunks ordered by descending similarity to query.
// Equal similarities are ordered by chunk ordinal. query must be a unit
// vector produced by the same embedder as the index.
//
// Every chunk is scored before the cut: chromem picks among ties at the n-th
// place in scheduling order, so truncating its top-n would not be repeatable.
func (ix *Index) Nearest(ctx context.Context, query []float32, n int) ([]Hit, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !ix.ready || len(ix.chunks) == 0 || n <= 0 {
		return nil, nil
	}
	if n > len(ix.chunks) {
		n = len(ix.chunks)
	}
	if len(query) != len(ix.vectors[0]) {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(query), len(ix.vectors[0]))
	}

	results, err := ix.coll.QueryEmbedding(ctx, query, len(ix.chunks), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		ord, err := strconv.Atoi(r.ID)
		if err != nil || ord < 0 || ord >= len(ix.chunks) {
			return nil, fmt.Errorf("%w: unknown chunk id %q", ErrCorruptCache, r.ID)
		}
		hits = append(hits, Hit{Chunk: ix.chunks[ord], Similarity: r.Similarity})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Chunk.Ordinal < hits[j].Chunk.Ordinal
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}
