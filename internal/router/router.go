// Package router sends a question to the first handler whose predicate
// matches it. Routes are tried in the order given.
package router

import (
	"context"
	"log/slog"
	"strings"
)

// HelpText is returned when no route matches.
const HelpText = "Try:\n • Where am I over budget in 2019-09?\n • Compare AAPL and MSFT over 1y\n • How can I reduce restaurant spending?"

type Handler func(ctx context.Context, question string) (string, error)

// Route pairs a predicate over the lower-cased question with its handler.
type Route struct {
	Name   string
	Match  func(lower string) bool
	Handle Handler
}

type Router struct {
	routes []Route
	logger *slog.Logger
}

func New(logger *slog.Logger, routes ...Route) *Router {
	return &Router{routes: routes, logger: logger.With(slog.String("component", "router"))}
}

// Dispatch answers question with the first matching route and reports its
// name. Unmatched questions get HelpText and the name "help".
func (r *Router) Dispatch(ctx context.Context, question string) (string, string, error) {
	lower := strings.ToLower(question)
	for _, route := range r.routes {
		if !route.Match(lower) {
			continue
		}
		r.logger.Debug("Routed", slog.String("route", route.Name))
		answer, err := route.Handle(ctx, question)
		return route.Name, answer, err
	}
	r.logger.Debug("No route matched")
	return "help", HelpText, nil
}

// Names lists the routes in evaluation order.
func (r *Router) Names() []string {
	names := make([]string, len(r.routes))
	for i, route := range r.routes {
		names[i] = route.Name
	}
	return names
}

var (
	adviceHints = []string{
		"how", "tips", "tricks", "reduce", "lower", "cut", "save", "optimize", "explain", "rule", "50/30/20",
		"internet", "phone", "mobile", "restaurant", "dining", "fast food", "coffee", "bill", "bills",
	}
	budgetHints = []string{"budget", "over budget", "under budget", "variance", "category", "spend"}
	investHints = []string{"stock", "ticker", "price", "return", "market", "invest", "compare"}
)

func LooksLikeAdvice(lower string) bool { return containsAny(lower, adviceHints) }
func LooksLikeBudget(lower string) bool { return containsAny(lower, budgetHints) }
func LooksLikeInvest(lower string) bool { return containsAny(lower, investHints) }

// Default orders advice before budget before investments.
func Default(advice, budget, invest Handler) []Route {
	return []Route{
		{Name: "advice", Match: LooksLikeAdvice, Handle: advice},
		{Name: "budget", Match: LooksLikeBudget, Handle: budget},
		{Name: "invest", Match: LooksLikeInvest, Handle: invest},
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
