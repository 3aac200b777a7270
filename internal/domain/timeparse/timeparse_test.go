package timeparse_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/peloton/internal/domain/timeparse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a well-formed race time", t, func() {
		got, err := timeparse.Parse("36:50")

		Convey("Then it should land on the epoch plus minutes and seconds", func() {
			So(err, ShouldBeNil)
			So(got.Equal(timeparse.Epoch.Add(36*time.Minute+50*time.Second)), ShouldBeTrue)
			So(timeparse.Seconds(got), ShouldEqual, 2210.0)
		})

		Convey("And formatting should give the input back", func() {
			So(timeparse.Format(got), ShouldEqual, "36:50")
		})
	})

	Convey("Given malformed race times", t, func() {
		for _, in := range []string{"", "36", "6:50", "36:5", "36:60", "60:00", "36:50:01", "ab:cd", " 36:50", "36.50"} {
			_, err := timeparse.Parse(in)

			Convey(fmt.Sprintf("Then %q should be rejected with a ParseError", in), func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, timeparse.ErrParse), ShouldBeTrue)
				var pe *timeparse.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(pe.Input, ShouldEqual, in)
				So(pe.Index, ShouldEqual, -1)
			})
		}
	})
}

func TestParseMonotonic(t *testing.T) {
	Convey("Given every valid race time in order", t, func() {
		var prev time.Time
		ordered := true
		for m := 0; m < 60; m++ {
			for s := 0; s < 60; s++ {
				cur, err := timeparse.Parse(fmt.Sprintf("%02d:%02d", m, s))
				So(err, ShouldBeNil)
				if (m > 0 || s > 0) && !cur.After(prev) {
					ordered = false
				}
				prev = cur
			}
		}

		Convey("Then parsing should be strictly increasing", func() {
			So(ordered, ShouldBeTrue)
		})
	})
}

func TestParseAll(t *testing.T) {
	Convey("Given a dataset of race times", t, func() {
		Convey("When every value is valid", func() {
			got, err := timeparse.ParseAll([]string{"37:15", "36:50"})

			Convey("Then values should keep dataset order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[1].Before(got[0]), ShouldBeTrue)
			})
		})

		Convey("When one value is malformed", func() {
			got, err := timeparse.ParseAll([]string{"37:15", "36:50", "3650"})

			Convey("Then the error should name the record index", func() {
				So(got, ShouldBeNil)
				var pe *timeparse.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(pe.Index, ShouldEqual, 2)
				So(err.Error(), ShouldContainSubstring, "record 2")
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given scalar values on the epoch", t, func() {
		So(timeparse.Format(timeparse.FromSeconds(2235)), ShouldEqual, "37:15")
		So(timeparse.Format(timeparse.FromSeconds(61*60)), ShouldEqual, "61:00")
		So(timeparse.Format(timeparse.FromSeconds(0)), ShouldEqual, "00:00")
		So(timeparse.Format(timeparse.Epoch.Add(-time.Second)), ShouldEqual, "00:00")
	})
}
