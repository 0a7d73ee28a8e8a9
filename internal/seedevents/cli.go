package seedevents

import (
	"fmt"
	"os"

	"github.com/alliancelab/warboard/pkg/logger"
)

// SetupLogging initializes the shared logger for the seed tool.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Warboard Seed Tool
==================

Seeds the analytics service with synthetic events and snapshot pairs,
queues them for analysis, then fetches and verifies the reports.

Usage:
  go run cmd/seed-events/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8090")
  -events int
        Number of events to create (default 9, cycling categories)
  -members int
        Roster size per snapshot (default 120)
  -groups int
        Number of alliance groups (default 4)
  -workers int
        Number of concurrent workers (default CPU cores)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-events/main.go

  # Seed a large roster against a remote instance
  go run cmd/seed-events/main.go -events 30 -members 500 -url http://10.0.0.5:8090
`)
}
