// Package advice answers finance questions from the knowledge base. It pulls
// short statements out of retrieved passages, keeps those relevant to the
// question, and renders them as a bulleted answer.
package advice

import (
	"context"
	"log/slog"

	"finassist/internal/index"
	"finassist/internal/retriever"
)

// Searcher retrieves the passages an answer is built from.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]index.Hit, error)
}

type Options struct {
	TopK       int
	MaxBullets int
}

// Result is an answer together with the passages it came from.
type Result struct {
	Text     string
	Hits     []index.Hit
	FastPath bool
}

type Engine struct {
	rules    *Rules
	searcher Searcher
	opts     Options
	logger   *slog.Logger
}

func NewEngine(rules *Rules, searcher Searcher, opts Options, logger *slog.Logger) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.MaxBullets <= 0 {
		opts.MaxBullets = 5
	}
	return &Engine{
		rules:    rules,
		searcher: searcher,
		opts:     opts,
		logger:   logger.With(slog.String("component", "advice")),
	}
}

// Answer returns the formatted answer to question. Errors are returned only
// when the embedding provider fails; every empty outcome is a fallback text.
func (e *Engine) Answer(ctx context.Context, question string) (string, error) {
	res, err := e.Respond(ctx, question, e.opts.TopK)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Respond is Answer with an explicit retrieval depth and the hits exposed.
func (e *Engine) Respond(ctx context.Context, question string, k int) (Result, error) {
	q := e.rules.ParseQuery(question)
	e.logger.Debug("Answering", slog.String("question", q.Text), slog.Int("terms", len(q.Terms)), slog.Int("boost", len(q.Boost)))

	if e.rules.IsFastPath(q) {
		e.logger.Debug("Fast path")
		return Result{Text: e.rules.render(q.Text, []string{e.rules.FastPath.Answer}), FastPath: true}, nil
	}

	hits, err := e.searcher.Search(ctx, question, k)
	if err != nil {
		return Result{}, err
	}
	if len(hits) == 0 {
		return Result{Text: e.rules.Insufficient(q.Text)}, nil
	}

	passage := retriever.Context(hits)
	bullets := e.rules.Extract(passage)
	e.logger.Debug("Extracted bullets", slog.Int("count", len(bullets)), slog.Int("context_chars", len(passage)))
	if len(bullets) == 0 {
		return Result{Text: e.rules.NoStatement(q.Text), Hits: hits}, nil
	}

	ranked := e.rules.Rank(bullets, q)
	for _, sb := range ranked {
		e.logger.Debug("Ranked", slog.String("bullet", sb.Text), slog.Float64("score", sb.Score))
	}

	return Result{Text: e.rules.Compose(q, ranked, e.opts.MaxBullets), Hits: hits}, nil
}
