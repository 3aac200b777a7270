// Package scale maps data extents onto pixel ranges and picks tick values.
//
// A Linear scale is immutable once built. Normalisation to [0, 1] is done by
// go-moremath; the pixel range is applied on top.
package scale

import (
	"errors"
	"math"
	"slices"
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/okian/peloton/internal/domain/timeparse"
)

// ErrEmptyDomain is returned when a scale is built from no values.
var ErrEmptyDomain = errors.New("scale domain is empty")

type ticker func(d0, d1 float64, count int) []float64

// Linear maps a numeric domain [d0, d1] onto a range [r0, r1].
type Linear struct {
	norm   mscale.Linear
	d0, d1 float64
	r0, r1 float64
	ticks  ticker
}

// NewLinear builds a linear scale with numeric ticks.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{
		norm:  mscale.Linear{Min: d0, Max: d1},
		d0:    d0,
		d1:    d1,
		r0:    r0,
		r1:    r1,
		ticks: numericTicks,
	}
}

// Years builds the x scale: the year extent padded by one year on each side.
func Years(years []int, r0, r1 float64) (Linear, error) {
	if len(years) == 0 {
		return Linear{}, ErrEmptyDomain
	}
	lo, hi := slices.Min(years), slices.Max(years)
	return NewLinear(float64(lo-1), float64(hi+1), r0, r1), nil
}

// Durations builds the y scale over parsed race times, expressed in seconds
// since timeparse.Epoch. The range is not inverted, so the fastest time maps
// to r0.
func Durations(ts []time.Time, r0, r1 float64) (Linear, error) {
	if len(ts) == 0 {
		return Linear{}, ErrEmptyDomain
	}
	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	s := NewLinear(timeparse.Seconds(lo), timeparse.Seconds(hi), r0, r1)
	s.ticks = durationTicks
	return s, nil
}

// Map returns the pixel position of v. A degenerate domain maps every value
// to the middle of the range.
func (s Linear) Map(v float64) float64 {
	return s.r0 + s.norm.Map(v)*(s.r1-s.r0)
}

// MapTime maps a parsed race time.
func (s Linear) MapTime(t time.Time) float64 {
	return s.Map(timeparse.Seconds(t))
}

// Invert returns the domain value at pixel px.
func (s Linear) Invert(px float64) float64 {
	if s.r0 == s.r1 {
		return s.d0
	}
	return s.norm.Unmap((px - s.r0) / (s.r1 - s.r0))
}

// Domain returns the data extent.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the pixel extent.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Ticks returns roughly count human-friendly values inside the domain, in
// ascending order.
func (s Linear) Ticks(count int) []float64 {
	if s.ticks == nil {
		return numericTicks(s.d0, s.d1, count)
	}
	return s.ticks(s.d0, s.d1, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times a power of ten step. Negative
// results encode the reciprocal of a sub-unit step so that ticks stay exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func numericTicks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	if stop < start {
		start, stop = stop, start
	}
	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}
	var ticks []float64
	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
		return ticks
	}
	inc = -inc
	lo, hi := math.Ceil(start*inc), math.Floor(stop*inc)
	for i := lo; i <= hi; i++ {
		ticks = append(ticks, i/inc)
	}
	return ticks
}

// clockSteps are the tick intervals offered to a duration axis.
var clockSteps = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
}

// durationTicks picks the clock interval closest (by ratio) to span/count
// and returns its multiples inside [start, stop], in seconds.
func durationTicks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	if stop < start {
		start, stop = stop, start
	}
	target := (stop - start) / float64(count)
	i, _ := slices.BinarySearchFunc(clockSteps, target, func(step time.Duration, t float64) int {
		if step.Seconds() <= t {
			return -1
		}
		return 1
	})
	var step float64
	switch {
	case i == 0:
		return numericTicks(start, stop, count)
	case i == len(clockSteps):
		hours := numericTicks(start/3600, stop/3600, count)
		for j := range hours {
			hours[j] *= 3600
		}
		return hours
	default:
		prev, next := clockSteps[i-1].Seconds(), clockSteps[i].Seconds()
		step = next
		if target/prev < next/target {
			step = prev
		}
	}
	var ticks []float64
	for v := math.Ceil(start/step) * step; v <= stop; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}
