// Package surface defines the primitive drawing calls a chart is rendered
// with, and two implementations: an SVG writer and an in-memory recorder.
package surface

import "errors"

// ErrUnbalanced is returned by End when no group is open, and by SVG.Bytes
// when a group was never closed.
var ErrUnbalanced = errors.New("unbalanced group")

// Attr is an extra attribute, typically data-*.
type Attr struct {
	Name  string
	Value string
}

// Shape carries the attributes every primitive accepts.
type Shape struct {
	ID     string
	Class  string
	Fill   string
	Stroke string
	Style  string
	Attrs  []Attr
}

// Text is a text run anchored at (X, Y).
type Text struct {
	Shape
	X, Y     float64
	Content  string
	Anchor   string // start, middle, end
	FontSize float64
}

type Line struct {
	Shape
	X1, Y1, X2, Y2 float64
}

// Path is an SVG path with data D.
type Path struct {
	Shape
	D string
}

type Circle struct {
	Shape
	CX, CY, R float64
}

type Rect struct {
	Shape
	X, Y, Width, Height float64
}

// Group nests the following primitives until the matching End, optionally
// translated.
type Group struct {
	Shape
	TranslateX float64
	TranslateY float64
}

// Canvas receives primitives in drawing order.
type Canvas interface {
	Text(t Text)
	Line(l Line)
	Path(p Path)
	Circle(c Circle)
	Rect(r Rect)
	Begin(g Group)
	End() error
}
