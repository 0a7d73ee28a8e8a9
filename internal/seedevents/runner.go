package seedevents

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/logger"
)

// Report polling constants.
const (
	reportPollInterval = 200 * time.Millisecond
	reportPollTimeout  = 30 * time.Second
)

var categories = []model.EventCategory{
	model.CategoryBattle,
	model.CategorySiege,
	model.CategoryForbidden,
}

// Run executes the complete seed cycle against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting warboard seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("events", config.NumEvents),
		logger.Int("members", config.NumMembers),
		logger.Int("groups", config.NumGroups),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := NewClient(config.BaseURL, config.Timeout)

	if err := checkServiceHealth(ctx, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	var (
		created   int64
		snapshots int64
		accepted  int64
		failed    int64
		verified  int64
		badReport int64
	)

	indexChan := make(chan int, config.Workers)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				category := categories[i%len(categories)]
				rep, err := seedOneEvent(ctx, client, config, i, category, &created, &snapshots)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Warn(ctx, "seed event failed",
						logger.Int("index", i), logger.Error(err))
					continue
				}
				atomic.AddInt64(&accepted, 1)
				if err := verifyReport(category, rep); err != nil {
					atomic.AddInt64(&badReport, 1)
					logger.Get().Warn(ctx, "report verification failed",
						logger.String("eventID", rep.EventID), logger.Error(err))
					continue
				}
				atomic.AddInt64(&verified, 1)
				if config.Verbose {
					logger.Get().Info(ctx, "report verified",
						logger.String("eventID", rep.EventID),
						logger.String("category", string(category)),
						logger.Float64("participationRate", rep.Summary.ParticipationRate))
				}
			}
		}()
	}

	for i := 0; i < config.NumEvents; i++ {
		select {
		case <-ctx.Done():
			break
		case indexChan <- i:
		}
	}
	close(indexChan)
	wg.Wait()

	stats.EventsCreated = int(atomic.LoadInt64(&created))
	stats.SnapshotsImported = int(atomic.LoadInt64(&snapshots))
	stats.ProcessesAccepted = int(atomic.LoadInt64(&accepted))
	stats.ProcessesFailed = int(atomic.LoadInt64(&failed))
	stats.ReportsVerified = int(atomic.LoadInt64(&verified))
	stats.ReportsFailed = int(atomic.LoadInt64(&badReport))
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.ProcessesFailed > 0 || stats.ReportsFailed > 0 {
		return fmt.Errorf("seed run finished with %d failed events and %d bad reports",
			stats.ProcessesFailed, stats.ReportsFailed)
	}
	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// seedOneEvent drives one event through the full pipeline and returns its
// report.
func seedOneEvent(
	ctx context.Context,
	client *Client,
	config *Config,
	index int,
	category model.EventCategory,
	created, snapshots *int64,
) (*report.EventReport, error) {
	var ev model.Event
	status, err := client.Post(ctx, "/events", map[string]string{
		"name":     "Seed " + string(category) + " " + strconv.Itoa(index+1),
		"category": string(category),
	}, &ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("create event: unexpected status %d", status)
	}
	atomic.AddInt64(created, 1)

	roster := makeRoster(config.NumMembers, config.NumGroups)
	now := time.Now().UTC()

	beforeID, err := importSnapshot(ctx, client, now.Add(-time.Hour), roster)
	if err != nil {
		return nil, fmt.Errorf("before snapshot: %w", err)
	}
	atomic.AddInt64(snapshots, 1)

	afterID, err := importSnapshot(ctx, client, now, advanceRoster(roster, category))
	if err != nil {
		return nil, fmt.Errorf("after snapshot: %w", err)
	}
	atomic.AddInt64(snapshots, 1)

	status, err = client.Post(ctx, "/events/"+ev.ID+"/process", map[string]string{
		"request_id":         uuid.NewString(),
		"before_snapshot_id": beforeID,
		"after_snapshot_id":  afterID,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	if status != http.StatusAccepted && status != http.StatusOK {
		return nil, fmt.Errorf("process: unexpected status %d", status)
	}

	return awaitReport(ctx, client, ev.ID)
}

func importSnapshot(ctx context.Context, client *Client, takenAt time.Time, members []model.MemberRecord) (string, error) {
	var snap model.Snapshot
	status, err := client.Post(ctx, "/snapshots", map[string]any{
		"taken_at": takenAt.Format(time.RFC3339),
		"members":  members,
	}, &snap)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", status)
	}
	return snap.ID, nil
}

// awaitReport polls the report endpoint until the analysis completes.
func awaitReport(ctx context.Context, client *Client, eventID string) (*report.EventReport, error) {
	deadline := time.Now().Add(reportPollTimeout)
	for {
		var rep report.EventReport
		status, err := client.Get(ctx, "/events/"+eventID+"/report", &rep)
		if err != nil {
			return nil, err
		}
		switch status {
		case http.StatusOK:
			return &rep, nil
		case http.StatusConflict:
			// Not computed yet, keep polling.
		default:
			return nil, fmt.Errorf("report: unexpected status %d", status)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("report for event %s not ready after %s", eventID, reportPollTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(reportPollInterval):
		}
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *Client) error {
	logger.Get().Info(ctx, "checking service health")

	status, err := client.Get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final seed run statistics.
func displayFinalStats(stats *Stats) {
	var eventsPerSecond float64
	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsCreated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsCreated", stats.EventsCreated),
		logger.Int("snapshotsImported", stats.SnapshotsImported),
		logger.Int("processesAccepted", stats.ProcessesAccepted),
		logger.Int("processesFailed", stats.ProcessesFailed),
		logger.Int("reportsVerified", stats.ReportsVerified),
		logger.Int("reportsFailed", stats.ReportsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("eventsPerSecond", eventsPerSecond))
}
