package render_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/peloton/internal/adapters/source"
	"github.com/okian/peloton/internal/adapters/surface"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/internal/domain/scale"
	"github.com/okian/peloton/internal/domain/timeparse"
	"github.com/okian/peloton/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleChart() *render.Chart {
	records, err := source.Sample().Fetch(context.Background())
	So(err, ShouldBeNil)
	chart, err := render.Build(records, render.DefaultLayout())
	So(err, ShouldBeNil)
	return chart
}

func TestBuild(t *testing.T) {
	Convey("Given the sample dataset", t, func() {
		chart := sampleChart()

		Convey("Then the chart should carry the stock layout", func() {
			So(chart.Width, ShouldEqual, 700.0)
			So(chart.SurfaceHeight(), ShouldEqual, 535.0)
			So(chart.Markers, ShouldHaveLength, 35)
			So(chart.XAxis.TranslateY, ShouldEqual, 500.0)
			So(chart.YAxis.TranslateX, ShouldEqual, 60.0)
			So(chart.Legend.Entries, ShouldHaveLength, 2)
		})
	})

	Convey("Given a dataset with a malformed time", t, func() {
		_, err := render.Build(model.Dataset{{Year: 2000, Time: "37:00"}, {Year: 2001, Time: "3700"}}, render.DefaultLayout())

		Convey("Then nothing should be built", func() {
			So(errors.Is(err, timeparse.ErrParse), ShouldBeTrue)
		})
	})

	Convey("Given an empty dataset", t, func() {
		_, err := render.Build(model.Dataset{}, render.DefaultLayout())

		Convey("Then the scales should refuse it", func() {
			So(errors.Is(err, scale.ErrEmptyDomain), ShouldBeTrue)
		})
	})
}

func TestDraw(t *testing.T) {
	Convey("Given a built chart and a recorder", t, func() {
		chart := sampleChart()
		rec := surface.NewRecorder()
		So(render.Draw(rec, chart), ShouldBeNil)

		Convey("Then titles should come first", func() {
			texts := rec.Texts()
			So(texts[0].ID, ShouldEqual, "title")
			So(texts[0].Content, ShouldEqual, "Doping in Professional Bicycle Racing")
			So(texts[0].X, ShouldEqual, 350.0)
			So(texts[1].ID, ShouldEqual, "sub-title")
			So(texts[1].Y, ShouldEqual, 65.0)
		})

		Convey("Then both axes should be drawn as translated groups", func() {
			x, ok := rec.Group("x-axis")
			So(ok, ShouldBeTrue)
			So(x.TranslateY, ShouldEqual, 500.0)
			y, ok := rec.Group("y-axis")
			So(ok, ShouldBeTrue)
			So(y.TranslateX, ShouldEqual, 60.0)
			So(rec.Depth(), ShouldEqual, 0)
		})

		Convey("Then every marker should be a tagged dot", func() {
			circles := rec.Circles()
			So(circles, ShouldHaveLength, 35)
			for i, c := range circles {
				So(c.Class, ShouldEqual, "dot")
				So(c.Stroke, ShouldEqual, "black")
				So(c.Attrs[0].Name, ShouldEqual, "data-xvalue")
				So(c.Attrs[0].Value, ShouldEqual, strconv.Itoa(chart.Markers[i].Record.Year))
				So(c.Attrs[1].Value, ShouldStartWith, "1900-01-01T00:")
			}
		})

		Convey("Then the legend should close the drawing", func() {
			rects := rec.Rects()
			So(rects, ShouldHaveLength, 2)
			So(rects[0].Fill, ShouldEqual, "darkcyan")
			texts := rec.Texts()
			last := texts[len(texts)-1]
			So(last.Class, ShouldEqual, "legend-label")
			So(last.Content, ShouldEqual, "No doping allegations")
		})
	})
}

func TestSVG(t *testing.T) {
	Convey("Given a built chart", t, func() {
		chart := sampleChart()

		first, err := render.SVG(chart)
		So(err, ShouldBeNil)
		second, err := render.SVG(chart)
		So(err, ShouldBeNil)

		Convey("Then rendering should be idempotent", func() {
			So(string(second), ShouldEqual, string(first))
		})

		Convey("Then the document should hold the expected elements", func() {
			doc := string(first)
			So(doc, ShouldContainSubstring, `width="700" height="535"`)
			So(strings.Count(doc, `class="dot"`), ShouldEqual, 35)
			So(strings.Count(doc, `id="legend"`), ShouldEqual, 2)
			So(doc, ShouldContainSubstring, `id="x-axis"`)
			So(doc, ShouldContainSubstring, `>37:00</text>`)
			So(doc, ShouldContainSubstring, `>1994</text>`)
			So(doc, ShouldNotContainSubstring, "tooltip")
		})
	})
}
