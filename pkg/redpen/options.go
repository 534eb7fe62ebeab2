package redpen

import (
	"log/slog"

	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

type options struct {
	logger      *slog.Logger
	registry    *validator.Registry
	concurrency int
}

// Option configures a RedPen.
type Option func(*options)

// WithLogger sets the structured logger. nil uses a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry resolves validator names against r instead of the default
// registry.
func WithRegistry(r *validator.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithConcurrency validates up to n documents at once. Values below 2 keep
// the run sequential.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}
