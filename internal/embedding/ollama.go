package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type ollamaPullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// EnsureOllamaModel checks that an Ollama server is reachable at baseURL and
// pulls model when the server does not have it yet.
func EnsureOllamaModel(ctx context.Context, client *http.Client, baseURL, model string, logger *slog.Logger) error {
	if client == nil {
		client = http.DefaultClient
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return providerError("ollama", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return providerError("ollama", fmt.Errorf("ollama is not reachable at %s: %w", baseURL, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return providerError("ollama", fmt.Errorf("ollama at %s answered %d", baseURL, resp.StatusCode))
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return providerError("ollama", fmt.Errorf("decode model list: %w", err))
	}
	for _, m := range tags.Models {
		if m.Name == model || m.Name == model+":latest" {
			logger.Debug("Ollama model is available", slog.String("model", model))
			return nil
		}
	}

	logger.Info("Pulling Ollama model", slog.String("model", model))
	body, err := json.Marshal(ollamaPullRequest{Name: model, Stream: false})
	if err != nil {
		return providerError("ollama", err)
	}
	pullReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return providerError("ollama", err)
	}
	pullReq.Header.Set("Content-Type", "application/json")
	pullResp, err := client.Do(pullReq)
	if err != nil {
		return providerError("ollama", fmt.Errorf("pull %s: %w", model, err))
	}
	defer pullResp.Body.Close()
	if pullResp.StatusCode != http.StatusOK {
		return providerError("ollama", fmt.Errorf("pull %s: status %d", model, pullResp.StatusCode))
	}

	logger.Info("Ollama model pulled", slog.String("model", model))
	return nil
}
