// Package render draws a computed chart onto a surface.Canvas.
//
// Drawing has no side effects beyond the canvas, so the same Chart always
// produces the same sequence of primitives.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/peloton/internal/adapters/surface"
	"github.com/okian/peloton/internal/domain/axis"
	"github.com/okian/peloton/internal/domain/legend"
	"github.com/okian/peloton/internal/domain/plot"
)

// SurfaceExtra is added to the plot height so the x axis labels fit.
const SurfaceExtra = 35

// Title placement.
const (
	TitleY    = 35
	SubtitleY = 65
)

// Chart is everything needed to draw the plot. It is built once after the
// dataset loads and never mutated.
type Chart struct {
	Width    float64
	Height   float64
	Title    string
	Subtitle string
	XAxis    axis.Axis
	YAxis    axis.Axis
	Markers  []plot.Marker
	Legend   legend.Legend
}

// SurfaceHeight is the full drawing height.
func (c *Chart) SurfaceHeight() float64 { return c.Height + SurfaceExtra }

// Draw renders c in order: titles, x axis, y axis, markers, legend.
func Draw(canvas surface.Canvas, c *Chart) error {
	canvas.Text(surface.Text{Shape: surface.Shape{ID: "title"}, X: c.Width / 2, Y: TitleY, Anchor: "middle", Content: c.Title})
	canvas.Text(surface.Text{Shape: surface.Shape{ID: "sub-title"}, X: c.Width / 2, Y: SubtitleY, Anchor: "middle", Content: c.Subtitle})

	if err := drawAxis(canvas, c.XAxis); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := drawAxis(canvas, c.YAxis); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}

	for _, m := range c.Markers {
		canvas.Circle(surface.Circle{
			Shape: surface.Shape{
				Class:  "dot",
				Fill:   m.Fill,
				Stroke: "black",
				Attrs: []surface.Attr{
					{Name: "data-xvalue", Value: strconv.Itoa(m.XValue)},
					{Name: "data-yvalue", Value: m.YValue.UTC().Format(time.RFC3339)},
					{Name: "data-index", Value: strconv.Itoa(m.Index)},
				},
			},
			CX: m.CX,
			CY: m.CY,
			R:  m.R,
		})
	}

	for _, e := range c.Legend.Entries {
		canvas.Rect(surface.Rect{
			Shape:  surface.Shape{ID: "legend", Fill: e.Color, Stroke: "black"},
			X:      e.X,
			Y:      e.Y,
			Width:  e.Size,
			Height: e.Size,
		})
	}
	for _, e := range c.Legend.Entries {
		canvas.Text(surface.Text{
			Shape:    surface.Shape{Class: "legend-label", Style: "alignment-baseline: middle"},
			X:        e.LabelX,
			Y:        e.LabelY,
			FontSize: c.Legend.FontSize,
			Content:  e.Label,
		})
	}
	return nil
}

func drawAxis(canvas surface.Canvas, a axis.Axis) error {
	canvas.Begin(surface.Group{
		Shape: surface.Shape{
			ID:    a.ID,
			Fill:  "none",
			Attrs: []surface.Attr{{Name: "font-size", Value: "10"}, {Name: "font-family", Value: "sans-serif"}},
		},
		TranslateX: a.TranslateX,
		TranslateY: a.TranslateY,
	})

	k := float64(axis.TickSize)
	var domain string
	if a.Orientation == axis.OrientLeft {
		domain = fmt.Sprintf("M%s,%sH0V%sH%s", fnum(-k), fnum(a.RangeStart), fnum(a.RangeEnd), fnum(-k))
	} else {
		domain = fmt.Sprintf("M%s,%sV0H%sV%s", fnum(a.RangeStart), fnum(k), fnum(a.RangeEnd), fnum(k))
	}
	canvas.Path(surface.Path{Shape: surface.Shape{Class: "domain", Stroke: "currentColor"}, D: domain})

	for _, t := range a.Ticks {
		tick := surface.Group{Shape: surface.Shape{Class: "tick"}}
		line := surface.Line{Shape: surface.Shape{Stroke: "currentColor"}}
		label := surface.Text{Shape: surface.Shape{Fill: "currentColor"}, Content: t.Label}
		if a.Orientation == axis.OrientLeft {
			tick.TranslateY = t.Pos
			line.X2 = -k
			label.X = -(k + 3)
			label.Anchor = "end"
			label.Attrs = []surface.Attr{{Name: "dy", Value: "0.32em"}}
		} else {
			tick.TranslateX = t.Pos
			line.Y2 = k
			label.Y = k + 3
			label.Anchor = "middle"
			label.Attrs = []surface.Attr{{Name: "dy", Value: "0.71em"}}
		}
		canvas.Begin(tick)
		canvas.Line(line)
		canvas.Text(label)
		if err := canvas.End(); err != nil {
			return err
		}
	}
	return canvas.End()
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SVG draws c into a fresh SVG document.
func SVG(c *Chart) ([]byte, error) {
	doc := surface.NewSVG(c.Width, c.SurfaceHeight())
	if err := Draw(doc, c); err != nil {
		return nil, err
	}
	return doc.Bytes()
}
