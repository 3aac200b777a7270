// Package plot places one marker per record.
package plot

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/peloton/internal/domain/model"
	"github.com/okian/peloton/internal/domain/timeparse"
)

// ErrLengthMismatch is returned when records and parsed times differ in length.
var ErrLengthMismatch = errors.New("records and parsed times differ in length")

// Category is the closed two-value classification of a record.
type Category string

const (
	Clean  Category = "clean"
	Doping Category = "doping"
)

// Marker colors.
const (
	ColorClean  = "gold"
	ColorDoping = "darkcyan"
)

// Classify returns the category of r.
func Classify(r model.Record) Category {
	if r.HasDopingAllegation() {
		return Doping
	}
	return Clean
}

// Color returns the fill used for c.
func (c Category) Color() string {
	if c == Doping {
		return ColorDoping
	}
	return ColorClean
}

// Mapper is the scale behaviour the plotter needs.
type Mapper interface {
	Map(v float64) float64
}

// Marker is the geometry and metadata of one plotted record.
type Marker struct {
	Index    int
	CX       float64
	CY       float64
	R        float64
	Fill     string
	Category Category
	XValue   int       // year
	YValue   time.Time // parsed race time
	Record   model.Record
}

// Points maps every record to a marker, in dataset order.
func Points(records model.Dataset, parsed []time.Time, xs, ys Mapper, radius float64) ([]Marker, error) {
	if len(records) != len(parsed) {
		return nil, fmt.Errorf("%w: %d records, %d times", ErrLengthMismatch, len(records), len(parsed))
	}
	markers := make([]Marker, len(records))
	for i, r := range records {
		c := Classify(r)
		markers[i] = Marker{
			Index:    i,
			CX:       xs.Map(float64(r.Year)),
			CY:       ys.Map(timeparse.Seconds(parsed[i])),
			R:        radius,
			Fill:     c.Color(),
			Category: c,
			XValue:   r.Year,
			YValue:   parsed[i],
			Record:   r,
		}
	}
	return markers, nil
}
