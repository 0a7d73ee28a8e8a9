package report_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

func battleSeries(values ...int64) []model.MemberEventDelta {
	deltas := make([]model.MemberEventDelta, len(values))
	for i, v := range values {
		deltas[i] = model.MemberEventDelta{
			MemberID:  "m" + string(rune('a'+i)),
			MeritDiff: v,
		}
	}
	return deltas
}

func TestDistributionBins(t *testing.T) {
	Convey("Given a series that divides evenly into six bins", t, func() {
		rep, err := report.Assemble(model.CategoryBattle,
			battleSeries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12))
		So(err, ShouldBeNil)

		Convey("Then the bins are equal width and contiguous", func() {
			So(len(rep.Distribution), ShouldEqual, 6)
			So(rep.Distribution[0].Lower, ShouldEqual, int64(1))
			So(rep.Distribution[0].Upper, ShouldEqual, int64(2))
			So(rep.Distribution[5].Lower, ShouldEqual, int64(11))
			So(rep.Distribution[5].Upper, ShouldEqual, int64(12))
			for i := 1; i < len(rep.Distribution); i++ {
				So(rep.Distribution[i].Lower, ShouldEqual, rep.Distribution[i-1].Upper+1)
			}
		})

		Convey("Then every value lands in exactly one bin", func() {
			for _, bin := range rep.Distribution {
				So(bin.Count, ShouldEqual, 2)
			}
		})

		Convey("Then labels show the inclusive range", func() {
			So(rep.Distribution[0].Label, ShouldEqual, "1-2")
			So(rep.Distribution[5].Label, ShouldEqual, "11-12")
		})
	})

	Convey("Given a span that does not divide evenly", t, func() {
		rep, err := report.Assemble(model.CategoryBattle, battleSeries(1, 10))
		So(err, ShouldBeNil)

		Convey("Then the tail bin is clamped to the maximum", func() {
			last := rep.Distribution[len(rep.Distribution)-1]
			So(last.Upper, ShouldEqual, int64(10))
			So(last.Lower, ShouldBeLessThanOrEqualTo, int64(10))
		})

		Convey("Then counts still sum to the series size", func() {
			total := 0
			for _, bin := range rep.Distribution {
				total += bin.Count
			}
			So(total, ShouldEqual, 2)
		})
	})

	Convey("Given fewer distinct values than bins", t, func() {
		rep, err := report.Assemble(model.CategoryBattle, battleSeries(5, 5, 5))
		So(err, ShouldBeNil)

		Convey("Then a single-point span yields one single-value bin", func() {
			So(len(rep.Distribution), ShouldEqual, 1)
			So(rep.Distribution[0].Label, ShouldEqual, "5")
			So(rep.Distribution[0].Lower, ShouldEqual, int64(5))
			So(rep.Distribution[0].Upper, ShouldEqual, int64(5))
			So(rep.Distribution[0].Count, ShouldEqual, 3)
		})
	})

	Convey("Given no participants at all", t, func() {
		rep, err := report.Assemble(model.CategoryBattle, battleSeries(0, 0))
		So(err, ShouldBeNil)

		Convey("Then the distribution is empty but not nil", func() {
			So(rep.Distribution, ShouldNotBeNil)
			So(rep.Distribution, ShouldBeEmpty)
		})
	})
}
