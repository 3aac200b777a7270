package model

import "time"

// PointerKind is the kind of a pointer event on a marker.
type PointerKind string

const (
	PointerEnter PointerKind = "enter"
	PointerLeave PointerKind = "leave"
)

// PointerEvent is a pointer entering or leaving a plotted marker. Index and
// the coordinates are meaningful for enter only.
type PointerEvent struct {
	ID    string      `json:"id"`
	Kind  PointerKind `json:"kind"`
	Index int         `json:"index"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	At    time.Time   `json:"at"`
}
