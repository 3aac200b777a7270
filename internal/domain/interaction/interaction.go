// Package interaction holds the tooltip state machine.
//
// A Controller is not safe for concurrent use; callers serialize events onto
// it (see the pointer dispatcher in internal/adapters/mq/worker).
package interaction

import (
	"fmt"

	"github.com/okian/peloton/internal/domain/model"
)

// Tooltip placement relative to the pointer, and where it hides.
const (
	OffsetX      = 15
	OffsetY      = -70
	HiddenY      = -2000
	ShownOpacity = 0.9
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = Idle
	case "active":
		*s = Active
	default:
		return fmt.Errorf("unknown tooltip state %q", b)
	}
	return nil
}

// Point is a pointer position in surface coordinates.
type Point struct {
	X, Y float64
}

// Tooltip is the observable tooltip.
type Tooltip struct {
	State   State   `json:"state"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Year    int     `json:"year,omitempty"`
	Marker  int     `json:"marker"`
}

func hidden() Tooltip {
	return Tooltip{State: Idle, Y: HiddenY, Marker: -1}
}

// Content builds the tooltip text for r. The doping note, when present,
// follows a blank line.
func Content(r model.Record) string {
	base := fmt.Sprintf("%s: %s\nYear: %d, Time: %s\nPlace: %d", r.Name, r.Nationality, r.Year, r.Time, r.Place)
	if r.Doping == "" {
		return base
	}
	return base + "\n\n" + r.Doping
}

// Controller moves the tooltip between Idle and Active.
type Controller struct {
	tip Tooltip
}

// NewController returns a controller in the Idle state.
func NewController() *Controller {
	return &Controller{tip: hidden()}
}

// Enter activates the tooltip for marker index. Entering the marker that
// already owns the tooltip changes nothing.
func (c *Controller) Enter(index int, r model.Record, at Point) Tooltip {
	if c.tip.State == Active && c.tip.Marker == index {
		return c.tip
	}
	c.tip = Tooltip{
		State:   Active,
		Visible: true,
		Opacity: ShownOpacity,
		X:       at.X + OffsetX,
		Y:       at.Y + OffsetY,
		Content: Content(r),
		Year:    r.Year,
		Marker:  index,
	}
	return c.tip
}

// Leave hides the tooltip. Leaving while idle changes nothing.
func (c *Controller) Leave() Tooltip {
	if c.tip.State == Idle {
		return c.tip
	}
	tip := hidden()
	tip.X = c.tip.X
	c.tip = tip
	return c.tip
}

// State returns the current state.
func (c *Controller) State() State { return c.tip.State }

// Tooltip returns the current tooltip.
func (c *Controller) Tooltip() Tooltip { return c.tip }
