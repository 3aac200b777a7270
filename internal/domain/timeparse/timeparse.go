// Package timeparse converts "MM:SS" race times into ordered time values
// anchored on a fixed epoch, and formats them back.
package timeparse

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the accepted and rendered race time layout.
const Layout = "04:05"

// Epoch anchors every parsed value: a zero clock reading on 1900-01-01 UTC.
var Epoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrParse is matched by every error returned from Parse.
var ErrParse = errors.New("malformed race time")

// ParseError reports a race time that does not match Layout.
type ParseError struct {
	Input string
	Index int // position in the dataset, -1 for a single value
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: record %d: %q: %v", ErrParse, e.Index, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q: %v", ErrParse, e.Input, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Parse converts "MM:SS" (two zero-padded fields, each 00-59) into a time
// on Epoch. Anything else is rejected.
func Parse(s string) (time.Time, error) {
	clock, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Index: -1, Err: err}
	}
	offset := time.Duration(clock.Minute())*time.Minute + time.Duration(clock.Second())*time.Second
	return Epoch.Add(offset), nil
}

// ParseAll parses every value, failing on the first malformed one.
func ParseAll(values []string) ([]time.Time, error) {
	parsed := make([]time.Time, len(values))
	for i, v := range values {
		t, err := Parse(v)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Index = i
			}
			return nil, err
		}
		parsed[i] = t
	}
	return parsed, nil
}

// Format renders t back into "MM:SS". Minutes past the hour keep counting,
// so 61 minutes render as "61:00".
func Format(t time.Time) string {
	d := t.Sub(Epoch)
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Seconds returns t as seconds since Epoch, the scalar used by scales.
func Seconds(t time.Time) float64 {
	return t.Sub(Epoch).Seconds()
}

// FromSeconds is the inverse of Seconds.
func FromSeconds(s float64) time.Time {
	return Epoch.Add(time.Duration(s * float64(time.Second)))
}
