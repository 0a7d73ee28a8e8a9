package report_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

func TestPositionalRanks(t *testing.T) {
	Convey("Given battle scores 500, 300, 300, 100", t, func() {
		deltas := []model.MemberEventDelta{
			{MemberID: "m4", MemberName: "Dee", MeritDiff: 100},
			{MemberID: "m3", MemberName: "Cam", MeritDiff: 300},
			{MemberID: "m1", MemberName: "Ann", MeritDiff: 500},
			{MemberID: "m2", MemberName: "Ben", MeritDiff: 300},
		}
		rep, err := report.Assemble(model.CategoryBattle, deltas)
		So(err, ShouldBeNil)

		Convey("Then ranks are positional even across equal scores", func() {
			So(len(rep.TopMembers), ShouldEqual, 4)
			for i, entry := range rep.TopMembers {
				So(entry.Rank, ShouldEqual, i+1)
			}
		})

		Convey("Then equal scores order by member id ascending", func() {
			So(rep.TopMembers[0].MemberID, ShouldEqual, "m1")
			So(rep.TopMembers[1].MemberID, ShouldEqual, "m2")
			So(rep.TopMembers[2].MemberID, ShouldEqual, "m3")
			So(rep.TopMembers[3].MemberID, ShouldEqual, "m4")
		})

		Convey("Then each row carries its score and deltas", func() {
			So(rep.TopMembers[0].Score, ShouldEqual, int64(500))
			So(rep.TopMembers[0].MeritDiff, ShouldEqual, int64(500))
		})
	})
}

func TestSiegeRankingFilters(t *testing.T) {
	Convey("Given siege members where some score on only one metric", t, func() {
		deltas := []model.MemberEventDelta{
			{MemberID: "s1", ContributionDiff: 100},
			{MemberID: "s2", AssistDiff: 100},
			{MemberID: "s3", ContributionDiff: 50, AssistDiff: 50},
			{MemberID: "s4"},
		}
		rep, err := report.Assemble(model.CategorySiege, deltas)
		So(err, ShouldBeNil)

		Convey("Then the contributor ranking holds only positive contributors", func() {
			So(len(rep.TopContributors), ShouldEqual, 2)
			So(rep.TopContributors[0].MemberID, ShouldEqual, "s1")
			So(rep.TopContributors[1].MemberID, ShouldEqual, "s3")
		})

		Convey("Then the assister ranking holds only positive assisters", func() {
			So(len(rep.TopAssisters), ShouldEqual, 2)
			So(rep.TopAssisters[0].MemberID, ShouldEqual, "s2")
			So(rep.TopAssisters[1].MemberID, ShouldEqual, "s3")
		})

		Convey("Then a member can appear in both rankings", func() {
			So(rep.TopContributors[1].MemberID, ShouldEqual, rep.TopAssisters[1].MemberID)
		})
	})
}

func TestViolatorRanking(t *testing.T) {
	Convey("Given forbidden members with mixed power movement", t, func() {
		deltas := []model.MemberEventDelta{
			{MemberID: "f1", PowerDiff: 5_000},
			{MemberID: "f2", PowerDiff: -3_000},
			{MemberID: "f3", PowerDiff: 5_000},
			{MemberID: "f4", PowerDiff: 20_000},
			{MemberID: "f5"},
		}
		rep, err := report.Assemble(model.CategoryForbidden, deltas)
		So(err, ShouldBeNil)

		Convey("Then only positive power gains are violations", func() {
			So(len(rep.Violators), ShouldEqual, 3)
		})

		Convey("Then severity order is power desc with id breaking ties", func() {
			So(rep.Violators[0].MemberID, ShouldEqual, "f4")
			So(rep.Violators[1].MemberID, ShouldEqual, "f1")
			So(rep.Violators[2].MemberID, ShouldEqual, "f3")
			So(rep.Violators[2].Rank, ShouldEqual, 3)
		})
	})
}
