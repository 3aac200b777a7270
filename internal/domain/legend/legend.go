// Package legend lays out the two-entry category key.
package legend

import "github.com/okian/peloton/internal/domain/plot"

// Layout constants.
const (
	SwatchSize   = 20
	Spacing      = 10
	RowHeight    = 30
	RightInset   = 180
	LabelOffsetX = 25
	LabelOffsetY = 10
	FontSize     = 12
)

// Entry is one swatch and its label.
type Entry struct {
	Label    string
	Color    string
	Category plot.Category
	X, Y     float64 // swatch top-left
	Size     float64
	LabelX   float64
	LabelY   float64
}

// Legend is the fixed key drawn beside the plot.
type Legend struct {
	Entries  []Entry
	FontSize float64
}

var entries = []struct {
	label    string
	category plot.Category
}{
	{"Riders with doping allegations", plot.Doping},
	{"No doping allegations", plot.Clean},
}

// Build lays the legend out for a plot of the given size. It does not
// depend on the data.
func Build(width, height float64) Legend {
	x := width - RightInset
	l := Legend{FontSize: FontSize, Entries: make([]Entry, len(entries))}
	for i, e := range entries {
		y := -SwatchSize + height/2 + float64(i*RowHeight)
		l.Entries[i] = Entry{
			Label:    e.label,
			Color:    e.category.Color(),
			Category: e.category,
			X:        x,
			Y:        y,
			Size:     SwatchSize,
			LabelX:   x + LabelOffsetX,
			LabelY:   y + LabelOffsetY,
		}
	}
	return l
}
