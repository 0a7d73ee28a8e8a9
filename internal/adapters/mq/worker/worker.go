// Package worker runs the asynchronous snapshot-analysis pipeline: dequeue
// a job, diff the snapshot pair, assemble the canonical report, store it.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alliancelab/warboard/internal/domain/delta"
	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/logger"
	"github.com/alliancelab/warboard/pkg/metrics"
)

// Job is what workers read off the queue.
type Job = model.ProcessJob

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Store is the slice of the repository the pipeline needs.
type Store interface {
	Event(ctx context.Context, id string) (model.Event, error)
	Snapshot(ctx context.Context, id string) (model.Snapshot, error)
	SetEventWindow(ctx context.Context, id, beforeID, afterID string, start, end time.Time) error
	SetEventStatus(ctx context.Context, id string, status model.EventStatus) error
	PutReport(ctx context.Context, eventID string, deltas []model.MemberEventDelta, rep *report.EventReport) error
}

// Worker consumes jobs until its context is canceled or the queue closes.
type Worker struct {
	queue  Queue
	store  Store
	name   string
	bins   int
	logger logger.Logger

	done chan struct{}
}

// New creates a worker with configuration options.
func New(q Queue, store Store, opts ...Option) *Worker {
	w := &Worker{
		queue: q,
		store: store,
		name:  "worker",
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				metrics.RecordAnalysisError()
				w.logger.Error(ctx, "snapshot analysis failed",
					logger.String("eventID", job.EventID),
					logger.Error(err),
				)
			}
		}
	}
}

// Wait blocks until the worker loop has exited or ctx expires.
func (w *Worker) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s shutdown: %w", w.name, ctx.Err())
	}
}

// process runs one job end to end. Reprocessing an event replaces its
// previous report.
func (w *Worker) process(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))
	}()

	ev, err := w.store.Event(ctx, job.EventID)
	if err != nil {
		return fmt.Errorf("load event %s: %w", job.EventID, err)
	}
	before, err := w.store.Snapshot(ctx, job.BeforeSnapshotID)
	if err != nil {
		return fmt.Errorf("load before snapshot: %w", err)
	}
	after, err := w.store.Snapshot(ctx, job.AfterSnapshotID)
	if err != nil {
		return fmt.Errorf("load after snapshot: %w", err)
	}

	if err := w.store.SetEventStatus(ctx, ev.ID, model.StatusAnalyzing); err != nil {
		return err
	}
	// The event window comes from the snapshot capture times.
	if err := w.store.SetEventWindow(ctx, ev.ID, before.ID, after.ID, before.TakenAt, after.TakenAt); err != nil {
		return err
	}
	ev.EventStart, ev.EventEnd = before.TakenAt, after.TakenAt
	ev.BeforeSnapshotID, ev.AfterSnapshotID = before.ID, after.ID

	deltas := delta.Compute(ev.Category, before, after)

	opts := []report.Option{report.WithEventInfo(ev)}
	if w.bins > 0 {
		opts = append(opts, report.WithDistributionBins(w.bins))
	}
	rep, err := report.Assemble(ev.Category, deltas, opts...)
	if err != nil {
		return fmt.Errorf("assemble report for event %s: %w", ev.ID, err)
	}

	if err := w.store.PutReport(ctx, ev.ID, deltas, rep); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	if err := w.store.SetEventStatus(ctx, ev.ID, model.StatusCompleted); err != nil {
		return err
	}

	metrics.RecordReportAssembled()
	w.logger.Info(ctx, "report assembled",
		logger.String("eventID", ev.ID),
		logger.String("category", string(ev.Category)),
		logger.Int("members", len(deltas)),
	)
	return nil
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
	logger  logger.Logger
}

// NewPool creates count workers sharing q and store.
func NewPool(count int, q Queue, store Store, opts ...Option) *Pool {
	if count < 1 {
		count = 1
	}
	p := &Pool{logger: logger.Named("workerpool")}
	for i := 0; i < count; i++ {
		wopts := append([]Option{WithName(fmt.Sprintf("worker-%d", i))}, opts...)
		p.workers = append(p.workers, New(q, store, wopts...))
	}
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(len(p.workers))
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Stop waits for the workers to drain; callers close the queue first.
func (p *Pool) Stop() {
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}
