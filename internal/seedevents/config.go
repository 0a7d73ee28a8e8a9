package seedevents

import "time"

// Config holds configuration for the seed run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumEvents  int           // Number of events to create
	NumMembers int           // Roster size per snapshot
	NumGroups  int           // Number of alliance groups in the roster
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Enable verbose logging
}

// Stats holds seed run statistics.
type Stats struct {
	EventsCreated      int
	SnapshotsImported  int
	ProcessesAccepted  int
	ProcessesDuplicate int
	ProcessesFailed    int
	ReportsVerified    int
	ReportsFailed      int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
