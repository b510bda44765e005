package render

import (
	"fmt"

	"NotePDF/internal/state"
)

type opKind int

const (
	opColor opKind = iota
	opWidth
	opMove
	opLine
	opStroke
	opBegin
	opEnd
)

type op struct {
	kind  opKind
	x, y  float64
	color state.RGB
}

func (o op) String() string {
	switch o.kind {
	case opColor:
		return fmt.Sprintf("color%v", o.color)
	case opWidth:
		return fmt.Sprintf("width(%g)", o.x)
	case opMove:
		return fmt.Sprintf("move(%g,%g)", o.x, o.y)
	case opLine:
		return fmt.Sprintf("line(%g,%g)", o.x, o.y)
	case opStroke:
		return "stroke"
	case opBegin:
		return "begin"
	default:
		return "end"
	}
}

// recorder is a Document that keeps every call it receives.
type recorder struct {
	ops       []op
	closed    bool
	discarded bool
	endErr    error
}

func (r *recorder) SetColor(c state.RGB) { r.ops = append(r.ops, op{kind: opColor, color: c}) }
func (r *recorder) SetLineWidth(w float64) { r.ops = append(r.ops, op{kind: opWidth, x: w}) }
func (r *recorder) MoveTo(x, y float64) { r.ops = append(r.ops, op{kind: opMove, x: x, y: y}) }
func (r *recorder) LineTo(x, y float64) { r.ops = append(r.ops, op{kind: opLine, x: x, y: y}) }
func (r *recorder) Stroke() { r.ops = append(r.ops, op{kind: opStroke}) }
func (r *recorder) BeginPage() { r.ops = append(r.ops, op{kind: opBegin}) }

func (r *recorder) EndPage() error {
	r.ops = append(r.ops, op{kind: opEnd})
	return r.endErr
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func (r *recorder) Discard() error {
	r.discarded = true
	return nil
}

func (r *recorder) count(k opKind) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) kinds() []opKind {
	out := make([]opKind, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.kind
	}
	return out
}
