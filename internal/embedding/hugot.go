package embedding

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// Hugot runs a sentence-transformers model locally through hugot's pure Go
// backend.
type Hugot struct {
	model    string
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.Mutex
}

// NewHugot prepares the model under modelsDir, downloading it on first use,
// and opens a feature-extraction pipeline.
func NewHugot(model, modelsDir string) (*Hugot, error) {
	modelPath, err := PrepareModel(model, modelsDir)
	if err != nil {
		return nil, providerError("hugot", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, providerError("hugot", fmt.Errorf("failed to create hugot session: %w", err))
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "finassist-embedder",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, providerError("hugot", fmt.Errorf("failed to create pipeline: %w (cleanup error: %v)", err, destroyErr))
		}
		return nil, providerError("hugot", fmt.Errorf("failed to create pipeline: %w", err))
	}

	return &Hugot{model: model, session: session, pipeline: pipeline}, nil
}

// PrepareModel returns the local path of model, downloading its ONNX export
// into modelsDir when it is not there yet.
func PrepareModel(model, modelsDir string) (string, error) {
	if modelsDir == "" {
		modelsDir = "./models"
	}
	modelPath := filepath.Join(modelsDir, strings.ReplaceAll(model, "/", "_"))

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat model directory: %w", err)
	}

	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}
	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = "onnx/model.onnx"
	downloaded, err := hugot.DownloadModel(model, modelsDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return downloaded, nil
}

func (h *Hugot) ModelName() string {
	return h.model
}

func (h *Hugot) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, providerError("hugot", fmt.Errorf("failed to generate embeddings: %w", err))
	}
	if len(result.Embeddings) != len(texts) {
		return nil, providerError("hugot", fmt.Errorf("embedding count mismatch: got %d for %d texts", len(result.Embeddings), len(texts)))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, v := range result.Embeddings {
		vectors[i] = Normalize(append([]float32(nil), v...))
	}
	return vectors, nil
}

// Close destroys the hugot session.
func (h *Hugot) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return nil
	}
	err := h.session.Destroy()
	h.session = nil
	return err
}
