package service

import (
	"context"
	"strings"

	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// Route is the strict classification of a canonical intent.
type Route string

const (
	RouteGreeting   Route = "GREETING"
	RouteMeta       Route = "META"
	RouteIrrelevant Route = "IRRELEVANT"
	RouteEducation  Route = "EDUCATION"
	RouteFAQ        Route = "FAQ"
	RouteGeneral    Route = "GENERAL"
)

// defaultRoute is the safe-fallback label used when every backend fails or
// returns garbage. The router never errors; it always resolves to a label.
const defaultRoute = RouteEducation

var validRoutes = map[Route]bool{
	RouteGreeting:   true,
	RouteMeta:       true,
	RouteIrrelevant: true,
	RouteEducation:  true,
	RouteFAQ:        true,
	RouteGeneral:    true,
}

// ParseRoute validates a stored or model-emitted label. Accepts any case,
// trims surrounding whitespace and punctuation.
func ParseRoute(s string) (Route, bool) {
	label := Route(strings.ToUpper(strings.Trim(strings.TrimSpace(s), ".,!\"'")))
	return label, validRoutes[label]
}

// routerBackend is one classifier in the ordered fallback chain: a model
// paired with a prompt revision. Adding a third tier is appending an entry.
type routerBackend struct {
	name   string
	model  string
	system string
}

// StrictRouter classifies canonical intents into one of the six routes using
// an ordered list of completion backends with a uniform try/accept loop.
type StrictRouter struct {
	llm      CompletionProvider
	backends []routerBackend
}

// RouterConfig holds the primary and secondary routing models. An empty
// PrimaryModel leaves only the secondary backend configured.
type RouterConfig struct {
	PrimaryModel   string
	SecondaryModel string
}

// NewStrictRouter creates a router with the two-tier backend chain.
func NewStrictRouter(llm CompletionProvider, cfg *RouterConfig) *StrictRouter {
	backends := make([]routerBackend, 0, 2)
	if cfg.PrimaryModel != "" {
		backends = append(backends, routerBackend{
			name:   "primary",
			model:  cfg.PrimaryModel,
			system: prompts.RouterSystemPrompt,
		})
	}
	if cfg.SecondaryModel != "" {
		backends = append(backends, routerBackend{
			name:   "secondary",
			model:  cfg.SecondaryModel,
			system: prompts.RouterCompactPrompt,
		})
	}
	return &StrictRouter{llm: llm, backends: backends}
}

// Route classifies canonicalIntent. Each backend is tried in order; a
// response is accepted only when it is exactly one of the six labels. When
// the chain is exhausted the default label is returned. Never errors.
func (r *StrictRouter) Route(ctx context.Context, canonicalIntent string) Route {
	for _, backend := range r.backends {
		out, err := r.llm.Complete(ctx, &CompletionRequest{
			Model:       backend.model,
			System:      backend.system,
			User:        canonicalIntent,
			Temperature: 0,
			MaxTokens:   5,
		})
		if err != nil {
			logger.CtxWarn(ctx, "Router backend failed: backend=%s, error=%v", backend.name, err)
			continue
		}
		if route, ok := ParseRoute(out); ok {
			return route
		}
		logger.CtxWarn(ctx, "Router backend returned unrecognized label: backend=%s, label=%q", backend.name, out)
	}

	logger.CtxWarn(ctx, "All router backends exhausted, using default route %s", defaultRoute)
	return defaultRoute
}
