package surface

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// SVG writes an SVG 1.1 document.
type SVG struct {
	width  float64
	height float64
	body   bytes.Buffer
	depth  int
}

// NewSVG returns an empty document of the given size.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

// Bytes returns the complete document. It fails if a group is still open.
func (s *SVG) Bytes() ([]byte, error) {
	if s.depth != 0 {
		return nil, fmt.Errorf("%w: %d open", ErrUnbalanced, s.depth)
	}
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s">`+"\n", num(s.width), num(s.height))
	out.Write(s.body.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes(), nil
}

func (s *SVG) indent() {
	s.body.WriteString(strings.Repeat("  ", s.depth+1))
}

func (s *SVG) Text(t Text) {
	s.indent()
	fmt.Fprintf(&s.body, `<text x="%s" y="%s"`, num(t.X), num(t.Y))
	if t.Anchor != "" {
		attr(&s.body, "text-anchor", t.Anchor)
	}
	if t.FontSize > 0 {
		attr(&s.body, "font-size", num(t.FontSize))
	}
	shape(&s.body, t.Shape)
	fmt.Fprintf(&s.body, ">%s</text>\n", html.EscapeString(t.Content))
}

func (s *SVG) Line(l Line) {
	s.indent()
	fmt.Fprintf(&s.body, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
	shape(&s.body, l.Shape)
	s.body.WriteString("/>\n")
}

func (s *SVG) Path(p Path) {
	s.indent()
	s.body.WriteString("<path")
	attr(&s.body, "d", p.D)
	shape(&s.body, p.Shape)
	s.body.WriteString("/>\n")
}

func (s *SVG) Circle(c Circle) {
	s.indent()
	fmt.Fprintf(&s.body, `<circle cx="%s" cy="%s" r="%s"`, num(c.CX), num(c.CY), num(c.R))
	shape(&s.body, c.Shape)
	s.body.WriteString("/>\n")
}

func (s *SVG) Rect(r Rect) {
	s.indent()
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s"`, num(r.X), num(r.Y), num(r.Width), num(r.Height))
	shape(&s.body, r.Shape)
	s.body.WriteString("/>\n")
}

func (s *SVG) Begin(g Group) {
	s.indent()
	s.body.WriteString("<g")
	if g.TranslateX != 0 || g.TranslateY != 0 {
		attr(&s.body, "transform", fmt.Sprintf("translate(%s,%s)", num(g.TranslateX), num(g.TranslateY)))
	}
	shape(&s.body, g.Shape)
	s.body.WriteString(">\n")
	s.depth++
}

func (s *SVG) End() error {
	if s.depth == 0 {
		return ErrUnbalanced
	}
	s.depth--
	s.indent()
	s.body.WriteString("</g>\n")
	return nil
}

func shape(b *bytes.Buffer, sh Shape) {
	for _, kv := range [...][2]string{
		{"id", sh.ID},
		{"class", sh.Class},
		{"fill", sh.Fill},
		{"stroke", sh.Stroke},
		{"style", sh.Style},
	} {
		if kv[1] != "" {
			attr(b, kv[0], kv[1])
		}
	}
	for _, a := range sh.Attrs {
		attr(b, a.Name, a.Value)
	}
}

func attr(b *bytes.Buffer, name, value string) {
	fmt.Fprintf(b, ` %s="%s"`, name, html.EscapeString(value))
}

// num prints v with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
