// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alliancelab/warboard/internal/adapters/cache"
	jobqueue "github.com/alliancelab/warboard/internal/adapters/mq/queue"
	workerpool "github.com/alliancelab/warboard/internal/adapters/mq/worker"
	"github.com/alliancelab/warboard/internal/adapters/repository"
	"github.com/alliancelab/warboard/internal/domain/dedupe"
	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/logger"
	"github.com/alliancelab/warboard/pkg/metrics"
)

// Service wires the store, the analysis pipeline, and the report cache.
type Service struct {
	mu sync.RWMutex

	store       repository.Store
	deduper     dedupe.Deduper
	jobs        *jobqueue.InMemoryQueue
	pool        *workerpool.Pool
	reportCache *cache.ReportCache

	workerCount int
	queueSize   int
	dedupeSize  int
	reportTTL   time.Duration
	binCount    int

	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the analysis job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithReportTTL sets the report cache freshness window.
func WithReportTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.reportTTL = ttl
		}
	}
}

// WithDistributionBins sets the histogram bin count used by the engine.
func WithDistributionBins(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.binCount = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  50_000,
		reportTTL:   3 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	s.store = repository.NewMemoryStore()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobs = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.reportCache = cache.New(storeSource{s.store}, cache.WithTTL(s.reportTTL))

	poolCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.workerCount, s.jobs, s.store,
		workerpool.WithDistributionBins(s.binCount),
	)
	s.pool.Start(poolCtx)

	s.started = true
	s.logger.Info(ctx, "report service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service, draining queued jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping report service...")

	_ = s.jobs.Close() // lets workers drain the backlog
	s.pool.Stop()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "report service stopped")
}

// storeSource adapts the repository to the cache's Source interface.
type storeSource struct {
	store repository.Store
}

func (ss storeSource) Report(ctx context.Context, eventID string) (*report.EventReport, error) {
	return ss.store.Report(ctx, eventID)
}

// CreateEvent registers a new event of the given category.
func (s *Service) CreateEvent(ctx context.Context, name string, category model.EventCategory) (model.Event, error) {
	if !category.Valid() {
		return model.Event{}, model.ErrUnknownCategory
	}
	ev := model.Event{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Status:    model.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateEvent(ctx, ev); err != nil {
		return model.Event{}, err
	}
	s.logger.Info(ctx, "event created",
		logger.String("eventID", ev.ID),
		logger.String("category", string(category)),
	)
	return ev, nil
}

// Event returns one event.
func (s *Service) Event(ctx context.Context, id string) (model.Event, error) {
	return s.store.Event(ctx, id)
}

// Events lists every event, newest first.
func (s *Service) Events(ctx context.Context) []model.Event {
	return s.store.Events(ctx)
}

// ImportSnapshot stores a member snapshot and returns it with its id.
func (s *Service) ImportSnapshot(ctx context.Context, takenAt time.Time, members []model.MemberRecord) (model.Snapshot, error) {
	snap := model.Snapshot{
		ID:      uuid.NewString(),
		TakenAt: takenAt,
		Members: members,
	}
	if err := s.store.PutSnapshot(ctx, snap); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

// SeenAndRecord checks and records a processing-request id.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordDuplicateRequest()
	}
	return seen
}

// Unrecord forgets a processing-request id so it can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// EnqueueProcess validates the job's references and queues it for the
// worker pool. Returns false on backpressure.
func (s *Service) EnqueueProcess(ctx context.Context, job model.ProcessJob) (bool, error) {
	if _, err := s.store.Event(ctx, job.EventID); err != nil {
		return false, err
	}
	if _, err := s.store.Snapshot(ctx, job.BeforeSnapshotID); err != nil {
		return false, fmt.Errorf("before snapshot: %w", err)
	}
	if _, err := s.store.Snapshot(ctx, job.AfterSnapshotID); err != nil {
		return false, fmt.Errorf("after snapshot: %w", err)
	}
	if !s.jobs.Enqueue(ctx, job) {
		return false, nil
	}
	// Readers should not keep seeing the pre-reprocessing report for a
	// whole freshness window.
	s.reportCache.Invalidate(job.EventID)
	return true, nil
}

// Report returns the canonical report for an event through the cache.
func (s *Service) Report(ctx context.Context, eventID string) (*report.EventReport, error) {
	return s.reportCache.Get(ctx, eventID)
}

// Members returns the per-member deltas in the report's canonical order.
func (s *Service) Members(ctx context.Context, eventID string) ([]model.MemberEventDelta, error) {
	rep, err := s.Report(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return rep.Members, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		ctx := context.Background()
		events, reports := s.store.Counts(ctx)
		stats["queueLength"] = s.jobs.Len(ctx)
		stats["events"] = events
		stats["reports"] = reports
		stats["pendingRequests"] = s.deduper.Size()

		metrics.UpdateEventsTracked(events)
		metrics.UpdateReportsStored(reports)
	}
	return stats
}
