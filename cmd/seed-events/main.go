package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/alliancelab/warboard/internal/seedevents"
)

// Default configuration constants.
const (
	defaultNumEvents  = 9
	defaultNumMembers = 120
	defaultNumGroups  = 4
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8090", "Base URL of the service")
		numEvents  = flag.Int("events", defaultNumEvents, "Number of events to create")
		numMembers = flag.Int("members", defaultNumMembers, "Roster size per snapshot")
		numGroups  = flag.Int("groups", defaultNumGroups, "Number of alliance groups")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedevents.ShowHelp()
		return
	}

	if err := seedevents.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedevents.Config{
		BaseURL:    *baseURL,
		NumEvents:  *numEvents,
		NumMembers: *numMembers,
		NumGroups:  *numGroups,
		Workers:    *workers,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := seedevents.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
