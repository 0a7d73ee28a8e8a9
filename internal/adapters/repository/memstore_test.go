package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/adapters/repository"
	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

func TestMemoryStoreEvents(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()

		Convey("When creating an event", func() {
			ev := model.Event{ID: "ev-1", Name: "Siege Night", Category: model.CategorySiege, Status: model.StatusCreated, CreatedAt: time.Now()}
			So(store.CreateEvent(ctx, ev), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Event(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Siege Night")
			})

			Convey("Then creating the same id again fails", func() {
				So(store.CreateEvent(ctx, ev), ShouldEqual, repository.ErrEventExists)
			})
		})

		Convey("When reading an unknown event", func() {
			_, err := store.Event(ctx, "missing")

			Convey("Then it reports not found", func() {
				So(err, ShouldEqual, repository.ErrEventNotFound)
			})
		})

		Convey("When listing events", func() {
			base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			So(store.CreateEvent(ctx, model.Event{ID: "older", CreatedAt: base}), ShouldBeNil)
			So(store.CreateEvent(ctx, model.Event{ID: "newer", CreatedAt: base.Add(time.Hour)}), ShouldBeNil)
			So(store.CreateEvent(ctx, model.Event{ID: "same-b", CreatedAt: base}), ShouldBeNil)

			events := store.Events(ctx)

			Convey("Then newest comes first, ids break ties", func() {
				So(len(events), ShouldEqual, 3)
				So(events[0].ID, ShouldEqual, "newer")
				So(events[1].ID, ShouldEqual, "older")
				So(events[2].ID, ShouldEqual, "same-b")
			})
		})

		Convey("When updating status and window", func() {
			So(store.CreateEvent(ctx, model.Event{ID: "ev-1"}), ShouldBeNil)
			start := time.Now().Add(-time.Hour)
			end := time.Now()

			So(store.SetEventStatus(ctx, "ev-1", model.StatusAnalyzing), ShouldBeNil)
			So(store.SetEventWindow(ctx, "ev-1", "snap-a", "snap-b", start, end), ShouldBeNil)

			got, err := store.Event(ctx, "ev-1")
			So(err, ShouldBeNil)

			Convey("Then the event reflects both updates", func() {
				So(got.Status, ShouldEqual, model.StatusAnalyzing)
				So(got.BeforeSnapshotID, ShouldEqual, "snap-a")
				So(got.AfterSnapshotID, ShouldEqual, "snap-b")
			})

			Convey("And updating an unknown event fails", func() {
				So(store.SetEventStatus(ctx, "missing", model.StatusCompleted), ShouldEqual, repository.ErrEventNotFound)
			})
		})
	})
}

func TestMemoryStoreSnapshots(t *testing.T) {
	Convey("Given a store with one snapshot", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()

		members := []model.MemberRecord{{MemberID: "m1", Name: "Ann", Merit: 100}}
		So(store.PutSnapshot(ctx, model.Snapshot{ID: "snap-1", Members: members}), ShouldBeNil)

		Convey("When mutating the caller's slice after storing", func() {
			members[0].Merit = 999

			Convey("Then the stored snapshot is unaffected", func() {
				got, err := store.Snapshot(ctx, "snap-1")
				So(err, ShouldBeNil)
				So(got.Members[0].Merit, ShouldEqual, int64(100))
			})
		})

		Convey("When reading an unknown snapshot", func() {
			_, err := store.Snapshot(ctx, "missing")

			Convey("Then it reports not found", func() {
				So(err, ShouldEqual, repository.ErrSnapshotNotFound)
			})
		})
	})
}

func TestMemoryStoreReports(t *testing.T) {
	Convey("Given a store with one event", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		So(store.CreateEvent(ctx, model.Event{ID: "ev-1", Category: model.CategoryBattle}), ShouldBeNil)

		Convey("When the report has not been computed yet", func() {
			_, err := store.Report(ctx, "ev-1")

			Convey("Then reads report not ready", func() {
				So(err, ShouldEqual, repository.ErrReportNotReady)
			})
		})

		Convey("When the event does not exist", func() {
			_, err := store.Report(ctx, "missing")

			Convey("Then reads report not found", func() {
				So(err, ShouldEqual, repository.ErrEventNotFound)
			})
		})

		Convey("When a report is stored", func() {
			deltas := []model.MemberEventDelta{{MemberID: "m1", MeritDiff: 10, Participated: true}}
			rep := &report.EventReport{EventID: "ev-1", Category: model.CategoryBattle}
			So(store.PutReport(ctx, "ev-1", deltas, rep), ShouldBeNil)

			Convey("Then the report and deltas can be read back", func() {
				got, err := store.Report(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(got.EventID, ShouldEqual, "ev-1")

				gotDeltas, err := store.Deltas(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(len(gotDeltas), ShouldEqual, 1)
			})

			Convey("Then counts reflect stored state", func() {
				events, reports := store.Counts(ctx)
				So(events, ShouldEqual, 1)
				So(reports, ShouldEqual, 1)
			})

			Convey("And storing again replaces the previous report", func() {
				rep2 := &report.EventReport{EventID: "ev-1", EventName: "second pass"}
				So(store.PutReport(ctx, "ev-1", deltas, rep2), ShouldBeNil)

				got, err := store.Report(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(got.EventName, ShouldEqual, "second pass")
			})
		})

		Convey("When storing a report for an unknown event", func() {
			err := store.PutReport(ctx, "missing", nil, &report.EventReport{})

			Convey("Then it fails with not found", func() {
				So(err, ShouldEqual, repository.ErrEventNotFound)
			})
		})
	})
}
