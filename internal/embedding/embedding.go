// Package embedding provides the text embedding providers used to index the
// knowledge base and to encode questions. Every provider returns unit-length
// vectors so that a dot product equals cosine similarity.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrProvider marks a failed call into an embedding provider. It is never
// retried; callers surface it as a failure.
var ErrProvider = errors.New("embedding provider failed")

// Embedder encodes texts into fixed-dimension unit vectors.
type Embedder interface {
	// Encode returns one vector per input text, in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName identifies the model. Cached vectors are only reused when
	// the recorded model name matches.
	ModelName() string
}

// Default model per provider.
const (
	DefaultHugotModel  = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultOllamaModel = "nomic-embed-text"
	DefaultOpenAIModel = "text-embedding-3-small"
)

// Options selects and configures a provider.
type Options struct {
	Provider       string // hugot, ollama, openai or hash
	Model          string // empty selects the provider default
	OllamaURL      string
	OpenAIKey      string
	ModelsDir      string
	HashDimensions int
}

// New builds the provider named in opts.
func New(opts Options) (Embedder, error) {
	switch strings.ToLower(opts.Provider) {
	case "hugot", "":
		return NewHugot(withDefault(opts.Model, DefaultHugotModel), opts.ModelsDir)
	case "ollama":
		return NewOllama(withDefault(opts.Model, DefaultOllamaModel), opts.OllamaURL), nil
	case "openai":
		if opts.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider needs OPENAI_API_KEY")
		}
		return NewOpenAI(opts.OpenAIKey, withDefault(opts.Model, DefaultOpenAIModel)), nil
	case "hash":
		return NewHash(opts.HashDimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", opts.Provider)
	}
}

// Close releases provider resources when the provider holds any.
func Close(e Embedder) error {
	if c, ok := e.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Normalize scales v to unit length in place and returns it. A zero vector is
// returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func providerError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrProvider, provider, err)
}
