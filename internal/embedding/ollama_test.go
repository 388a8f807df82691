package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finassist/internal/logging"
)

func fakeOllama(t *testing.T, installed []string, pullStatus int) (*httptest.Server, *[]string) {
	t.Helper()
	var pulled []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		var tags ollamaTags
		for _, name := range installed {
			tags.Models = append(tags.Models, struct {
				Name string `json:"name"`
			}{Name: name})
		}
		_ = json.NewEncoder(w).Encode(tags)
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		var req ollamaPullRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		pulled = append(pulled, req.Name)
		w.WriteHeader(pullStatus)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &pulled
}

func TestEnsureOllamaModel(t *testing.T) {
	ctx := context.Background()
	logger := logging.Discard()

	t.Run("Installed model is not pulled", func(t *testing.T) {
		srv, pulled := fakeOllama(t, []string{"nomic-embed-text:latest"}, http.StatusOK)

		err := EnsureOllamaModel(ctx, srv.Client(), srv.URL, "nomic-embed-text", logger)

		require.NoError(t, err)
		assert.Empty(t, *pulled)
	})

	t.Run("Missing model is pulled", func(t *testing.T) {
		srv, pulled := fakeOllama(t, nil, http.StatusOK)

		err := EnsureOllamaModel(ctx, srv.Client(), srv.URL+"/", "all-minilm", logger)

		require.NoError(t, err)
		assert.Equal(t, []string{"all-minilm"}, *pulled)
	})

	t.Run("Failed pull", func(t *testing.T) {
		srv, _ := fakeOllama(t, nil, http.StatusInternalServerError)

		err := EnsureOllamaModel(ctx, srv.Client(), srv.URL, "all-minilm", logger)

		assert.ErrorIs(t, err, ErrProvider)
	})

	t.Run("Unreachable server", func(t *testing.T) {
		srv, _ := fakeOllama(t, nil, http.StatusOK)
		url := srv.URL
		srv.Close()

		err := EnsureOllamaModel(ctx, nil, url, "all-minilm", logger)

		assert.ErrorIs(t, err, ErrProvider)
	})
}
