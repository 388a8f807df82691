package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

var hashToken = regexp.MustCompile(`[a-z0-9%/$]+`)

// Hash is an offline embedder that feature-hashes lowercase tokens into a
// fixed number of buckets. It needs no model and is fully deterministic.
type Hash struct {
	dims int
}

// NewHash creates a hashing embedder; dims below 8 fall back to 256.
func NewHash(dims int) *Hash {
	if dims < 8 {
		dims = 256
	}
	return &Hash{dims: dims}
}

func (h *Hash) ModelName() string {
	return fmt.Sprintf("hash-%d", h.dims)
}

func (h *Hash) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, h.dims)
		tokens := hashToken.FindAllString(strings.ToLower(text), -1)
		if len(tokens) == 0 {
			v[0] = 1
		}
		for _, tok := range tokens {
			f := fnv.New32a()
			_, _ = f.Write([]byte(tok))
			sum := f.Sum32()
			sign := float32(1)
			if sum&(1<<31) != 0 {
				sign = -1
			}
			v[int(sum%uint32(h.dims))] += sign
		}
		if isZero(v) {
			v[0] = 1
		}
		vectors[i] = Normalize(v)
	}
	return vectors, nil
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
