package worker

import "github.com/alliancelab/warboard/pkg/logger"

// Option applies a configuration option to a Worker.
type Option func(*Worker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDistributionBins sets the histogram bin count passed to the engine.
func WithDistributionBins(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.bins = n
		}
	}
}
