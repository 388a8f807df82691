package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finassist/internal/advice"
	"finassist/internal/budget"
	"finassist/internal/config"
	"finassist/internal/embedding"
	"finassist/internal/index"
	"finassist/internal/retriever"
	"finassist/internal/router"
	"finassist/internal/stocks"
)

// Reply is an answer with the route that produced it. Hits holds the
// knowledge-base passages behind an advice answer and is empty otherwise.
type Reply struct {
	Route string
	Text  string
	Hits  []index.Hit
}

type hitsKey struct{}

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	embedder embedding.Embedder
	index    *index.Index
	engine   *advice.Engine
	router   *router.Router
}

// New wires the assistant from configuration. The embedding provider is
// opened here; the index is only read on first use.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	rules, err := advice.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.New(embedding.Options{
		Provider:       cfg.EmbedProvider,
		Model:          cfg.EmbedModel,
		OllamaURL:      cfg.OllamaURL,
		OpenAIKey:      cfg.OpenAIKey,
		ModelsDir:      cfg.ModelsDir,
		HashDimensions: cfg.HashDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	return newApp(cfg, logger, embedder, rules), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, embedder embedding.Embedder, rules *advice.Rules) *App {
	ix := index.New(index.Options{
		DocumentPath:   cfg.KnowledgeBase,
		CachePath:      cfg.IndexFile,
		MaxChunkLength: cfg.ChunkSize,
		ChunkMethod:    cfg.ChunkMethod,
		MinChunks:      cfg.MinCachedChunks,
		MinChars:       cfg.MinCachedChars,
		Compress:       cfg.CompressIndex,
	}, embedder, logger)

	engine := advice.NewEngine(rules, retriever.New(ix, embedder, logger), advice.Options{
		TopK:       cfg.TopK,
		MaxBullets: cfg.MaxBullets,
	}, logger)

	budgets := budget.NewHandler(budget.StubSource{}, budget.SampleLedger())
	investments := stocks.NewHandler(stocks.StubSource{})

	a := &App{
		cfg:      cfg,
		logger:   logger,
		embedder: embedder,
		index:    ix,
		engine:   engine,
	}
	a.router = router.New(logger, router.Default(a.advise, budgets.Answer, investments.Answer)...)
	return a
}

// advise answers from the knowledge base and hands the hits to the Reply
// being built for this call, if any.
func (a *App) advise(ctx context.Context, question string) (string, error) {
	res, err := a.engine.Respond(ctx, question, a.cfg.TopK)
	if err != nil {
		return "", err
	}
	if hits, ok := ctx.Value(hitsKey{}).(*[]index.Hit); ok {
		*hits = res.Hits
	}
	return res.Text, nil
}

// Init checks that the embedding backend is usable before the first question.
func (a *App) Init(ctx context.Context) error {
	if a.cfg.EmbedProvider == "ollama" {
		client := &http.Client{Timeout: 10 * time.Minute}
		if err := embedding.EnsureOllamaModel(ctx, client, a.cfg.OllamaURL, a.embedder.ModelName(), a.logger); err != nil {
			return fmt.Errorf("ollama model check failed: %w", err)
		}
	}
	return nil
}

// Ask answers one question. Failures come back as an apology so the caller
// always has text to show.
func (a *App) Ask(ctx context.Context, question string) string {
	return a.Answer(ctx, question).Text
}

// Answer is Ask with the route and, for advice, the passages used.
func (a *App) Answer(ctx context.Context, question string) Reply {
	var hits []index.Hit
	route, text, err := a.router.Dispatch(context.WithValue(ctx, hitsKey{}, &hits), question)
	if err != nil {
		a.logger.Error("Failed to answer", slog.String("route", route), slog.String("error", err.Error()))
		if errors.Is(err, embedding.ErrProvider) {
			text = "Sorry, the embedding model is unavailable right now, so I can't search the knowledge base. Please try again later."
		} else {
			text = "Sorry, something went wrong while answering that question."
		}
		return Reply{Route: route, Text: text}
	}
	if text == "" {
		text = "(No output)"
	}
	return Reply{Route: route, Text: text, Hits: hits}
}

// BuildIndex prepares the index, rebuilding it from the knowledge base when
// rebuild is set.
func (a *App) BuildIndex(ctx context.Context, rebuild bool) (index.Stats, error) {
	var err error
	if rebuild {
		err = a.index.Build(ctx)
	} else {
		err = a.index.Ensure(ctx)
	}
	if err != nil {
		return index.Stats{}, err
	}
	return a.index.Stats(), nil
}

// Close releases the embedding provider.
func (a *App) Close() error {
	return embedding.Close(a.embedder)
}
