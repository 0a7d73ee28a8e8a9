// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the processing-request idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ReportTTLSeconds is the report cache freshness window.
	ReportTTLSeconds int `koanf:"report_ttl_seconds"`

	// DistributionBins sets the histogram bin count for reports.
	DistributionBins int `koanf:"distribution_bins"`

	// MaxTopLimit caps the ?top= query on ranking reads.
	MaxTopLimit int `koanf:"max_top_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8090",
		QueueSize:        1024,
		WorkerCount:      runtime.NumCPU(),
		DedupeSize:       50_000,
		ReportTTLSeconds: 180, // middle of the observed 2-5 minute band
		DistributionBins: 6,
		MaxTopLimit:      100,
	}
}
