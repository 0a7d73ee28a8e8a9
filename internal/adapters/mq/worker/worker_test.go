package worker_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/adapters/mq/queue"
	"github.com/alliancelab/warboard/internal/adapters/mq/worker"
	"github.com/alliancelab/warboard/internal/adapters/repository"
	"github.com/alliancelab/warboard/internal/domain/model"
)

func seedStore(ctx context.Context, store *repository.MemoryStore, category model.EventCategory) {
	start := time.Date(2026, 8, 22, 18, 0, 0, 0, time.UTC)
	So(store.CreateEvent(ctx, model.Event{ID: "ev-1", Name: "Battle Night", Category: category, Status: model.StatusCreated}), ShouldBeNil)
	So(store.PutSnapshot(ctx, model.Snapshot{
		ID:      "snap-before",
		TakenAt: start,
		Members: []model.MemberRecord{
			{MemberID: "m1", Name: "Ann", Group: "Alpha", Merit: 1000},
			{MemberID: "m2", Name: "Ben", Group: "Alpha", Merit: 2000},
		},
	}), ShouldBeNil)
	So(store.PutSnapshot(ctx, model.Snapshot{
		ID:      "snap-after",
		TakenAt: start.Add(2 * time.Hour),
		Members: []model.MemberRecord{
			{MemberID: "m1", Name: "Ann", Group: "Alpha", Merit: 1400},
			{MemberID: "m2", Name: "Ben", Group: "Alpha", Merit: 2000},
		},
	}), ShouldBeNil)
}

func awaitReport(ctx context.Context, store *repository.MemoryStore, eventID string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := store.Report(ctx, eventID); err == nil {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestWorkerPipeline(t *testing.T) {
	Convey("Given a worker pool over a seeded store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := repository.NewMemoryStore()
		seedStore(ctx, store, model.CategoryBattle)

		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		pool := worker.NewPool(2, q, store)
		pool.Start(ctx)

		Convey("When a processing job is enqueued", func() {
			ok := q.Enqueue(ctx, worker.Job{
				RequestID:        "req-1",
				EventID:          "ev-1",
				BeforeSnapshotID: "snap-before",
				AfterSnapshotID:  "snap-after",
			})
			So(ok, ShouldBeTrue)
			So(awaitReport(ctx, store, "ev-1", 5*time.Second), ShouldBeTrue)

			Convey("Then the assembled report lands in the store", func() {
				rep, err := store.Report(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(rep.EventID, ShouldEqual, "ev-1")
				So(rep.EventName, ShouldEqual, "Battle Night")
				So(rep.Summary.TotalMembers, ShouldEqual, 2)
				So(rep.Summary.ParticipatedCount, ShouldEqual, 1)
			})

			Convey("Then the event carries its window and completed status", func() {
				ev, err := store.Event(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(ev.Status, ShouldEqual, model.StatusCompleted)
				So(ev.BeforeSnapshotID, ShouldEqual, "snap-before")
				So(ev.AfterSnapshotID, ShouldEqual, "snap-after")
				So(ev.EventEnd.Sub(ev.EventStart), ShouldEqual, 2*time.Hour)
			})

			Convey("Then the deltas are stored alongside", func() {
				deltas, err := store.Deltas(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(len(deltas), ShouldEqual, 2)
			})
		})

		Convey("When the job references a missing snapshot", func() {
			ok := q.Enqueue(ctx, worker.Job{
				RequestID:        "req-2",
				EventID:          "ev-1",
				BeforeSnapshotID: "missing",
				AfterSnapshotID:  "snap-after",
			})
			So(ok, ShouldBeTrue)

			Convey("Then no report is produced", func() {
				So(awaitReport(ctx, store, "ev-1", 500*time.Millisecond), ShouldBeFalse)
			})
		})

		Convey("When the queue closes", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then the pool drains and stops", func() {
				pool.Stop()
			})
		})
	})
}
