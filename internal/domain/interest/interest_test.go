package interest_test

import (
	"testing"

	"github.com/minglehq/mingle/internal/domain/interest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given raw interest strings", t, func() {
		Convey("Then normalization should trim and lower-case", func() {
			So(interest.Normalize("  Hiking "), ShouldEqual, "hiking")
			So(interest.Normalize("PHOTOGRAPHY"), ShouldEqual, "photography")
			So(interest.Normalize("chess"), ShouldEqual, "chess")
		})

		Convey("And whitespace-only input should normalize to empty", func() {
			So(interest.Normalize("   "), ShouldEqual, "")
			So(interest.Normalize(""), ShouldEqual, "")
		})
	})
}

func TestNewSet(t *testing.T) {
	Convey("Given a raw interest list with duplicates and noise", t, func() {
		set := interest.NewSet([]string{" Hiking", "hiking", "HIKING ", "chess", "", "  "})

		Convey("Then the set should be normalized and deduplicated", func() {
			So(len(set), ShouldEqual, 2)
			So(set, ShouldContainKey, "hiking")
			So(set, ShouldContainKey, "chess")
		})
	})

	Convey("Given an empty input", t, func() {
		Convey("Then the set should be empty but non-nil", func() {
			set := interest.NewSet(nil)
			So(set, ShouldNotBeNil)
			So(len(set), ShouldEqual, 0)
		})
	})
}

func TestSorted(t *testing.T) {
	Convey("Given an interest set", t, func() {
		set := interest.NewSet([]string{"zines", "art", "music"})

		Convey("Then Sorted should return ascending order", func() {
			So(interest.Sorted(set), ShouldResemble, []string{"art", "music", "zines"})
		})
	})
}

func TestIntersect(t *testing.T) {
	Convey("Given two interest sets", t, func() {
		a := interest.NewSet([]string{"hiking", "chess", "music"})
		b := interest.NewSet([]string{"music", "chess", "cooking"})

		Convey("Then the intersection should be sorted and exact", func() {
			So(interest.Intersect(a, b), ShouldResemble, []string{"chess", "music"})
		})

		Convey("And intersection should be symmetric", func() {
			So(interest.Intersect(a, b), ShouldResemble, interest.Intersect(b, a))
		})

		Convey("And disjoint sets should intersect to empty", func() {
			c := interest.NewSet([]string{"pottery"})
			So(len(interest.Intersect(a, c)), ShouldEqual, 0)
		})
	})
}
