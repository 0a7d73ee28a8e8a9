package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/adapters/repository"
	"github.com/alliancelab/warboard/internal/app"
	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

func startedService() *app.Service {
	svc := app.New(
		app.WithWorkerCount(2),
		app.WithQueueSize(8),
		app.WithReportTTL(time.Minute),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func awaitServiceReport(ctx context.Context, svc *app.Service, eventID string) (*report.EventReport, error) {
	deadline := time.Now().Add(5 * time.Second)
	for {
		rep, err := svc.Report(ctx, eventID)
		if err == nil {
			return rep, nil
		}
		if !errors.Is(err, repository.ErrReportNotReady) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When an event flows through the whole pipeline", func() {
			ev, err := svc.CreateEvent(ctx, "Battle Night", model.CategoryBattle)
			So(err, ShouldBeNil)
			So(ev.ID, ShouldNotBeEmpty)
			So(ev.Status, ShouldEqual, model.StatusCreated)

			start := time.Now().UTC().Add(-2 * time.Hour)
			before, err := svc.ImportSnapshot(ctx, start, []model.MemberRecord{
				{MemberID: "m1", Name: "Ann", Group: "Alpha", Merit: 1000},
				{MemberID: "m2", Name: "Ben", Group: "Alpha", Merit: 2000},
			})
			So(err, ShouldBeNil)
			after, err := svc.ImportSnapshot(ctx, start.Add(2*time.Hour), []model.MemberRecord{
				{MemberID: "m1", Name: "Ann", Group: "Alpha", Merit: 1800},
				{MemberID: "m2", Name: "Ben", Group: "Alpha", Merit: 2000},
			})
			So(err, ShouldBeNil)

			ok, err := svc.EnqueueProcess(ctx, model.ProcessJob{
				RequestID:        "req-1",
				EventID:          ev.ID,
				BeforeSnapshotID: before.ID,
				AfterSnapshotID:  after.ID,
			})
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			rep, err := awaitServiceReport(ctx, svc, ev.ID)
			So(err, ShouldBeNil)

			Convey("Then the report matches the snapshot pair", func() {
				So(rep.EventID, ShouldEqual, ev.ID)
				So(rep.Summary.TotalMembers, ShouldEqual, 2)
				So(rep.Summary.ParticipatedCount, ShouldEqual, 1)
				So(rep.Summary.MVP.MemberID, ShouldEqual, "m1")
			})

			Convey("Then members are served in the report's canonical order", func() {
				members, err := svc.Members(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(len(members), ShouldEqual, 2)
				So(members[0].MemberID, ShouldEqual, "m1")
			})

			Convey("Then the event ends up completed", func() {
				got, err := svc.Event(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, model.StatusCompleted)
			})
		})

		Convey("When creating an event with a bad category", func() {
			_, err := svc.CreateEvent(ctx, "Raid", model.EventCategory("raid"))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrUnknownCategory), ShouldBeTrue)
			})
		})

		Convey("When enqueuing with a missing reference", func() {
			ev, err := svc.CreateEvent(ctx, "Battle", model.CategoryBattle)
			So(err, ShouldBeNil)

			ok, err := svc.EnqueueProcess(ctx, model.ProcessJob{
				RequestID:        "req-x",
				EventID:          ev.ID,
				BeforeSnapshotID: "missing",
				AfterSnapshotID:  "missing",
			})

			Convey("Then the job is rejected before queueing", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(err, repository.ErrSnapshotNotFound), ShouldBeTrue)
			})
		})

		Convey("When recording processing request ids", func() {
			So(svc.SeenAndRecord(ctx, "req-1"), ShouldBeFalse)
			So(svc.SeenAndRecord(ctx, "req-1"), ShouldBeTrue)

			svc.Unrecord(ctx, "req-1")
			So(svc.SeenAndRecord(ctx, "req-1"), ShouldBeFalse)
		})

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then the snapshot reports running state", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["workerCount"], ShouldEqual, 2)
				So(stats, ShouldContainKey, "queueLength")
			})
		})

		Convey("When listing events", func() {
			_, err := svc.CreateEvent(ctx, "A", model.CategoryBattle)
			So(err, ShouldBeNil)
			_, err = svc.CreateEvent(ctx, "B", model.CategorySiege)
			So(err, ShouldBeNil)

			Convey("Then both are listed", func() {
				So(len(svc.Events(ctx)), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a stopped service", t, func() {
		svc := startedService()
		svc.Stop()

		Convey("Then stopping again is harmless", func() {
			So(svc.Stop, ShouldNotPanic)
		})
	})
}
