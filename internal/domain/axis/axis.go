// Package axis computes tick geometry for the chart's two axes.
package axis

import (
	"strconv"

	"github.com/okian/peloton/internal/domain/timeparse"
)

// TickSize is the length of a tick line in pixels.
const TickSize = 6

// Orientation says which side of the plot an axis sits on.
type Orientation string

const (
	OrientBottom Orientation = "bottom"
	OrientLeft   Orientation = "left"
)

// Scale is what an axis needs from a scale.
type Scale interface {
	Map(v float64) float64
	Range() (float64, float64)
	Ticks(count int) []float64
}

// Formatter renders a tick value as its label.
type Formatter func(v float64) string

// Tick is one labelled position along an axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis is the geometry of one axis, ready to be drawn.
type Axis struct {
	ID          string
	Orientation Orientation
	TranslateX  float64
	TranslateY  float64
	// RangeStart and RangeEnd bound the domain line.
	RangeStart float64
	RangeEnd   float64
	Ticks      []Tick
}

// Bottom builds the x axis, translated down to y.
func Bottom(s Scale, count int, format Formatter, y float64) Axis {
	return build("x-axis", OrientBottom, s, count, format, 0, y)
}

// Left builds the y axis, translated right to x.
func Left(s Scale, count int, format Formatter, x float64) Axis {
	return build("y-axis", OrientLeft, s, count, format, x, 0)
}

func build(id string, o Orientation, s Scale, count int, format Formatter, tx, ty float64) Axis {
	if format == nil {
		format = Number
	}
	r0, r1 := s.Range()
	values := s.Ticks(count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: s.Map(v), Label: format(v)}
	}
	return Axis{
		ID:          id,
		Orientation: o,
		TranslateX:  tx,
		TranslateY:  ty,
		RangeStart:  r0,
		RangeEnd:    r1,
		Ticks:       ticks,
	}
}

// Year formats a year without grouping separators.
func Year(v float64) string {
	return strconv.Itoa(int(v))
}

// Clock formats seconds since the race epoch as "MM:SS".
func Clock(v float64) string {
	return timeparse.Format(timeparse.FromSeconds(v))
}

// Number formats any other value in its shortest form.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
