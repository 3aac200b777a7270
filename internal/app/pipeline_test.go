package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/peloton/internal/adapters/source"
	"github.com/okian/peloton/internal/adapters/surface"
	"github.com/okian/peloton/internal/app"
	"github.com/okian/peloton/internal/domain/interaction"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/internal/domain/timeparse"
	"github.com/okian/peloton/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type staticSource struct {
	records model.Dataset
	err     error
	calls   atomic.Int32
}

func (s *staticSource) Fetch(context.Context) (model.Dataset, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *staticSource) Location() string { return "static" }

func started(src source.Source, opts ...app.Option) *app.Pipeline {
	p := app.Initialize(src, opts...)
	So(p.Start(context.Background()), ShouldBeNil)
	return p
}

func TestPipeline_Initialize(t *testing.T) {
	Convey("Given two initialized pipelines", t, func() {
		a := app.Initialize(source.Sample())
		b := app.Initialize(source.Sample(), app.WithQueueSize(8))

		Convey("Then each should own a distinct identity and start idle", func() {
			So(a.ID, ShouldNotBeEmpty)
			So(a.ID, ShouldNotEqual, b.ID)
			So(a.Tooltip().State, ShouldEqual, interaction.Idle)
			So(a.Stats().Loaded, ShouldBeFalse)
		})

		Convey("Then nothing should be available before loading", func() {
			_, err := a.Chart()
			So(err, ShouldEqual, app.ErrNotLoaded)
			So(a.Render(surface.NewRecorder()), ShouldEqual, app.ErrNotLoaded)
		})
	})
}

func TestPipeline_Load(t *testing.T) {
	Convey("Given a pipeline over the sample dataset", t, func() {
		p := started(source.Sample())
		defer p.Stop()

		err := p.Load(context.Background())

		Convey("Then the chart should be built from every record", func() {
			So(err, ShouldBeNil)
			markers, err := p.Markers()
			So(err, ShouldBeNil)
			So(markers, ShouldHaveLength, 35)
			So(p.Stats().Records, ShouldEqual, 35)
		})

		Convey("Then rendering should draw every marker", func() {
			rec := surface.NewRecorder()
			So(p.Render(rec), ShouldBeNil)
			So(rec.Circles(), ShouldHaveLength, 35)
			doc, err := p.SVG()
			So(err, ShouldBeNil)
			So(string(doc), ShouldContainSubstring, `id="title"`)
		})
	})

	Convey("Given a source that is loaded twice", t, func() {
		src := &staticSource{records: model.Dataset{{Year: 2000, Time: "37:00", Place: 1}}}
		p := app.Initialize(src)

		So(p.Load(context.Background()), ShouldBeNil)
		So(p.Load(context.Background()), ShouldBeNil)

		Convey("Then the dataset should be fetched once", func() {
			So(src.calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a failing source", t, func() {
		fetchErr := &source.FetchError{URL: "static", Kind: source.KindStatus, StatusCode: 500}
		p := app.Initialize(&staticSource{err: fetchErr})

		err := p.Load(context.Background())

		Convey("Then the fetch error should surface and nothing be kept", func() {
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			_, cerr := p.Chart()
			So(cerr, ShouldEqual, app.ErrNotLoaded)
		})
	})

	Convey("Given a dataset with one malformed time", t, func() {
		p := app.Initialize(&staticSource{records: model.Dataset{
			{Year: 2000, Time: "37:00"},
			{Year: 2001, Time: "37:0"},
		}})

		err := p.Load(context.Background())

		Convey("Then the whole load should fail", func() {
			So(errors.Is(err, timeparse.ErrParse), ShouldBeTrue)
			So(p.Stats().Loaded, ShouldBeFalse)
		})
	})
}

func TestPipeline_Pointer(t *testing.T) {
	Convey("Given a clean 1996 ride of 36:50 and a doped 1999 ride", t, func() {
		p := started(&staticSource{records: model.Dataset{
			{Name: "Rider A", Nationality: "FRA", Year: 1996, Time: "36:50", Place: 1},
			{Name: "Rider B", Nationality: "ITA", Year: 1999, Time: "38:10", Place: 2, Doping: "Positive test"},
		}})
		defer p.Stop()
		So(p.Load(context.Background()), ShouldBeNil)

		markers, err := p.Markers()
		So(err, ShouldBeNil)
		m := markers[0]
		want, _ := timeparse.Parse("36:50")

		Convey("Then its marker should be gold with the raw values exposed", func() {
			So(m.Fill, ShouldEqual, "gold")
			So(m.XValue, ShouldEqual, 1996)
			So(m.YValue.Equal(want), ShouldBeTrue)
			So(markers[1].Fill, ShouldEqual, "darkcyan")
		})

		Convey("When the pointer enters it", func() {
			ctx := context.Background()
			tip, err := p.Enter(ctx, 0, m.CX, m.CY)

			Convey("Then the tooltip should be active beside the marker", func() {
				So(err, ShouldBeNil)
				So(tip.State, ShouldEqual, interaction.Active)
				So(tip.X, ShouldAlmostEqual, m.CX+15)
				So(tip.Y, ShouldAlmostEqual, m.CY-70)
				So(tip.Opacity, ShouldEqual, 0.9)
				So(tip.Content, ShouldEqual, "Rider A: FRA\nYear: 1996, Time: 36:50\nPlace: 1")
				So(p.Tooltip(), ShouldResemble, tip)
			})

			Convey("And leaves", func() {
				tip, err := p.Leave(ctx)

				Convey("Then the tooltip should be idle and hidden", func() {
					So(err, ShouldBeNil)
					So(tip.State, ShouldEqual, interaction.Idle)
					So(tip.Y, ShouldEqual, -2000.0)
					So(tip.Opacity, ShouldEqual, 0.0)
					stats := p.Stats()
					So(stats.Enters, ShouldEqual, 1)
					So(stats.Leaves, ShouldEqual, 1)
					So(stats.State, ShouldEqual, "idle")
				})
			})
		})

		Convey("When the pointer enters an unknown marker", func() {
			_, err := p.Enter(context.Background(), 99, 0, 0)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, app.ErrUnknownMarker), ShouldBeTrue)
				So(p.Tooltip().State, ShouldEqual, interaction.Idle)
			})
		})

		Convey("When many pointer events race", func() {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					if i%2 == 0 {
						_, _ = p.Enter(ctx, i%2, 10, 10)
					} else {
						_, _ = p.Leave(ctx)
					}
				}(i)
			}
			wg.Wait()

			Convey("Then the tooltip should end in a consistent state", func() {
				tip := p.Tooltip()
				if tip.State == interaction.Active {
					So(tip.Visible, ShouldBeTrue)
					So(tip.Marker, ShouldEqual, 0)
				} else {
					So(tip.Y, ShouldEqual, -2000.0)
					So(tip.Marker, ShouldEqual, -1)
				}
			})
		})
	})

	Convey("Given a pipeline that was never started", t, func() {
		p := app.Initialize(source.Sample())
		So(p.Load(context.Background()), ShouldBeNil)

		_, err := p.Enter(context.Background(), 0, 0, 0)

		Convey("Then pointer events should be refused", func() {
			So(err, ShouldEqual, app.ErrStopped)
		})
	})

	Convey("Given a started pipeline with nothing loaded", t, func() {
		p := started(source.Sample())
		defer p.Stop()

		_, err := p.Leave(context.Background())

		Convey("Then pointer events should report it", func() {
			So(err, ShouldEqual, app.ErrNotLoaded)
		})
	})

	Convey("Given a stopped pipeline", t, func() {
		p := started(source.Sample())
		So(p.Load(context.Background()), ShouldBeNil)
		p.Stop()

		_, err := p.Enter(context.Background(), 0, 0, 0)

		Convey("Then pointer events should be refused", func() {
			So(err, ShouldEqual, app.ErrStopped)
			So(p.Start(context.Background()), ShouldEqual, app.ErrStopped)
			So(p.Stats().Started, ShouldBeFalse)
		})
	})
}
