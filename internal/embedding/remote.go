package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
)

// FuncEmbedder adapts a chromem-go embedding function to Embedder.
type FuncEmbedder struct {
	provider string
	model    string
	embed    chromem.EmbeddingFunc
}

// NewOllama embeds through an Ollama server's embeddings API.
func NewOllama(model, baseURL string) *FuncEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/api"
	return &FuncEmbedder{
		provider: "ollama",
		model:    model,
		embed:    chromem.NewEmbeddingFuncOllama(model, apiURL),
	}
}

// NewOpenAI embeds through the OpenAI embeddings API.
func NewOpenAI(apiKey, model string) *FuncEmbedder {
	return &FuncEmbedder{
		provider: "openai",
		model:    model,
		embed:    chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI(model)),
	}
}

// NewFuncEmbedder wraps an arbitrary chromem-go embedding function.
func NewFuncEmbedder(provider, model string, fn chromem.EmbeddingFunc) *FuncEmbedder {
	return &FuncEmbedder{provider: provider, model: model, embed: fn}
}

func (e *FuncEmbedder) ModelName() string {
	return e.model
}

func (e *FuncEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		v, err := e.embed(ctx, text)
		if err != nil {
			return nil, providerError(e.provider, fmt.Errorf("text %d: %w", i, err))
		}
		if len(v) == 0 {
			return nil, providerError(e.provider, fmt.Errorf("text %d: empty embedding", i))
		}
		vectors = append(vectors, Normalize(append([]float32(nil), v...)))
	}
	return vectors, nil
}

// EmbeddingFunc exposes the embedder as a chromem-go embedding function for
// query-time use by a collection.
func EmbeddingFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := e.Encode(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		return vectors[0], nil
	}
}
