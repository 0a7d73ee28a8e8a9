package report_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

func TestClassify(t *testing.T) {
	Convey("Given battle deltas", t, func() {
		Convey("Then merit gain means participated", func() {
			p, a := report.Classify(model.CategoryBattle, model.MemberEventDelta{MeritDiff: 1})
			So(p, ShouldBeTrue)
			So(a, ShouldBeFalse)
		})

		Convey("Then a flat merit means absent", func() {
			p, a := report.Classify(model.CategoryBattle, model.MemberEventDelta{})
			So(p, ShouldBeFalse)
			So(a, ShouldBeTrue)
		})

		Convey("Then contribution never counts for battle", func() {
			p, a := report.Classify(model.CategoryBattle, model.MemberEventDelta{ContributionDiff: 500})
			So(p, ShouldBeFalse)
			So(a, ShouldBeTrue)
		})
	})

	Convey("Given siege deltas", t, func() {
		Convey("Then either contribution or assist counts", func() {
			p, _ := report.Classify(model.CategorySiege, model.MemberEventDelta{AssistDiff: 1})
			So(p, ShouldBeTrue)

			p, _ = report.Classify(model.CategorySiege, model.MemberEventDelta{ContributionDiff: 1})
			So(p, ShouldBeTrue)
		})

		Convey("Then merit alone does not count for siege", func() {
			p, a := report.Classify(model.CategorySiege, model.MemberEventDelta{MeritDiff: 1_000})
			So(p, ShouldBeFalse)
			So(a, ShouldBeTrue)
		})
	})

	Convey("Given forbidden deltas", t, func() {
		Convey("Then neither flag is ever set", func() {
			p, a := report.Classify(model.CategoryForbidden, model.MemberEventDelta{PowerDiff: 99_999})
			So(p, ShouldBeFalse)
			So(a, ShouldBeFalse)
		})
	})

	Convey("Given a new member", t, func() {
		Convey("Then they are neither participated nor absent in any category", func() {
			for _, category := range []model.EventCategory{
				model.CategoryBattle, model.CategorySiege, model.CategoryForbidden,
			} {
				p, a := report.Classify(category, model.MemberEventDelta{
					IsNewMember: true, MeritDiff: 500, ContributionDiff: 500,
				})
				So(p, ShouldBeFalse)
				So(a, ShouldBeFalse)
			}
		})
	})
}

func TestIsViolator(t *testing.T) {
	Convey("Given power movement during a forbidden window", t, func() {
		Convey("Then any increase is a violation", func() {
			So(report.IsViolator(model.MemberEventDelta{PowerDiff: 1}), ShouldBeTrue)
		})

		Convey("Then flat or shrinking power is compliant", func() {
			So(report.IsViolator(model.MemberEventDelta{}), ShouldBeFalse)
			So(report.IsViolator(model.MemberEventDelta{PowerDiff: -10_000}), ShouldBeFalse)
		})
	})
}
