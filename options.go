package twisty

import (
	"io"
	"log/slog"
)

// Option configures Puzzle construction.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	precomputeMoves bool
}

func defaultConfig() *config {
	return &config{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		precomputeMoves: true,
	}
}

// WithLogger sets the logger used while building the puzzle.
// The engine never logs after New returns.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrecomputedDerivedMoves controls whether derived moves are evaluated
// once during New (default) or on every lookup.
// Disable this for definitions with many derived moves that are rarely used.
func WithPrecomputedDerivedMoves(enabled bool) Option {
	return func(c *config) {
		c.precomputeMoves = enabled
	}
}
