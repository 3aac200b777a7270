package surface

// Kind names a recorded primitive.
type Kind string

const (
	KindText   Kind = "text"
	KindLine   Kind = "line"
	KindPath   Kind = "path"
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindBegin  Kind = "begin"
	KindEnd    Kind = "end"
)

// Op is one recorded call. Value holds the primitive (Text, Line, ...) and
// is nil for End.
type Op struct {
	Kind  Kind
	Depth int
	Value any
}

// Recorder keeps every primitive in memory.
type Recorder struct {
	ops   []Op
	depth int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) push(k Kind, v any) {
	r.ops = append(r.ops, Op{Kind: k, Depth: r.depth, Value: v})
}

func (r *Recorder) Text(t Text)     { r.push(KindText, t) }
func (r *Recorder) Line(l Line)     { r.push(KindLine, l) }
func (r *Recorder) Path(p Path)     { r.push(KindPath, p) }
func (r *Recorder) Circle(c Circle) { r.push(KindCircle, c) }
func (r *Recorder) Rect(rc Rect)    { r.push(KindRect, rc) }

func (r *Recorder) Begin(g Group) {
	r.push(KindBegin, g)
	r.depth++
}

func (r *Recorder) End() error {
	if r.depth == 0 {
		return ErrUnbalanced
	}
	r.depth--
	r.push(KindEnd, nil)
	return nil
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Circles returns every recorded circle in order.
func (r *Recorder) Circles() []Circle {
	var out []Circle
	for _, op := range r.ops {
		if c, ok := op.Value.(Circle); ok {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns every recorded text in order.
func (r *Recorder) Texts() []Text {
	var out []Text
	for _, op := range r.ops {
		if t, ok := op.Value.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// Rects returns every recorded rect in order.
func (r *Recorder) Rects() []Rect {
	var out []Rect
	for _, op := range r.ops {
		if rc, ok := op.Value.(Rect); ok {
			out = append(out, rc)
		}
	}
	return out
}

// Group returns the group with the given id.
func (r *Recorder) Group(id string) (Group, bool) {
	for _, op := range r.ops {
		if g, ok := op.Value.(Group); ok && g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Depth is the number of groups still open.
func (r *Recorder) Depth() int { return r.depth }

