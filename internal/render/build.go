package render

import (
	"fmt"

	"github.com/okian/peloton/internal/domain/axis"
	"github.com/okian/peloton/internal/domain/legend"
	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/internal/domain/plot"
	"github.com/okian/peloton/internal/domain/scale"
	"github.com/okian/peloton/internal/domain/timeparse"
)

// Layout holds the dimensions and text a chart is built with.
type Layout struct {
	Width        float64
	Height       float64
	Padding      float64 // left and right inset of the x range
	TopPadding   float64 // top of the y range
	MarkerRadius float64
	TickCount    int
	Title        string
	Subtitle     string
}

// DefaultLayout returns the stock 700x500 layout.
func DefaultLayout() Layout {
	return Layout{
		Width:        700,
		Height:       500,
		Padding:      60,
		TopPadding:   100,
		MarkerRadius: 5,
		TickCount:    10,
		Title:        "Doping in Professional Bicycle Racing",
		Subtitle:     "35 Fastest times up Alpe d'Huez",
	}
}

// Build runs the dataset through parsing, scaling and plotting. Any
// malformed record fails the whole build.
func Build(records model.Dataset, l Layout) (*Chart, error) {
	parsed, err := timeparse.ParseAll(records.Times())
	if err != nil {
		return nil, err
	}
	xs, err := scale.Years(records.Years(), l.Padding, l.Width-l.Padding)
	if err != nil {
		return nil, fmt.Errorf("x scale: %w", err)
	}
	ys, err := scale.Durations(parsed, l.TopPadding, l.Height)
	if err != nil {
		return nil, fmt.Errorf("y scale: %w", err)
	}
	markers, err := plot.Points(records, parsed, xs, ys, l.MarkerRadius)
	if err != nil {
		return nil, err
	}
	return &Chart{
		Width:    l.Width,
		Height:   l.Height,
		Title:    l.Title,
		Subtitle: l.Subtitle,
		XAxis:    axis.Bottom(xs, l.TickCount, axis.Year, l.Height),
		YAxis:    axis.Left(ys, l.TickCount, axis.Clock, l.Padding),
		Markers:  markers,
		Legend:   legend.Build(l.Width, l.Height),
	}, nil
}
