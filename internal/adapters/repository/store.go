// Package repository defines the event/snapshot/report store and errors.
package repository

import (
	"context"
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

// Store provides access to events, imported snapshots, and the canonical
// reports assembled from them.
type Store interface {
	// CreateEvent registers a new event. Returns ErrEventExists on id reuse.
	CreateEvent(ctx context.Context, ev model.Event) error

	// Event returns one event. Returns ErrEventNotFound if unknown.
	Event(ctx context.Context, id string) (model.Event, error)

	// Events returns every event ordered by creation time desc, newest
	// first, ties by id asc.
	Events(ctx context.Context) []model.Event

	// SetEventWindow records the snapshot pair and the event window taken
	// from the snapshot capture times.
	SetEventWindow(ctx context.Context, id, beforeID, afterID string, start, end time.Time) error

	// SetEventStatus moves an event through its processing lifecycle.
	SetEventStatus(ctx context.Context, id string, status model.EventStatus) error

	// PutSnapshot stores an imported snapshot.
	PutSnapshot(ctx context.Context, snap model.Snapshot) error

	// Snapshot returns one snapshot. Returns ErrSnapshotNotFound if unknown.
	Snapshot(ctx context.Context, id string) (model.Snapshot, error)

	// PutReport stores an event's member deltas and assembled report,
	// replacing any previous result (reprocessing is allowed).
	PutReport(ctx context.Context, eventID string, deltas []model.MemberEventDelta, rep *report.EventReport) error

	// Report returns the assembled report for an event. Returns
	// ErrReportNotReady until processing has completed.
	Report(ctx context.Context, eventID string) (*report.EventReport, error)

	// Deltas returns the stored member deltas for an event.
	Deltas(ctx context.Context, eventID string) ([]model.MemberEventDelta, error)

	// Counts returns the number of tracked events and stored reports.
	Counts(ctx context.Context) (events, reports int)
}
