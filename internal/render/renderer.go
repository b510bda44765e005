// Package render turns decoded strokes into vector path commands.
package render

import (
	"math"

	"NotePDF/internal/smooth"
	"NotePDF/internal/state"
)

// Canvas receives path and paint commands for one page. Paint changes apply
// to the next Stroke call.
type Canvas interface {
	SetColor(c state.RGB)
	SetLineWidth(w float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

// Tuning holds the constants that shape rendered strokes.
type Tuning struct {
	WidthScale    float64 // logical thickness to output width
	MinWidth      float64 // floor for pressure-scaled widths
	Window        int     // moving average window
	Subsample     int     // subsample block size
	PressureShape int     // shape tag of pressure-sensitive pens
	Pressure      bool    // honour pressure at all
	Scale         float64 // normalized page units to points
}

// DefaultTuning returns the settings used for US Letter output.
func DefaultTuning() Tuning {
	return Tuning{
		WidthScale:    0.3,
		MinWidth:      0.1,
		Window:        10,
		Subsample:     2,
		PressureShape: 5,
		Pressure:      true,
		Scale:         LetterHeight,
	}
}

// Pen is the per-page state threaded through Renderer calls. The zero value
// is a fresh page: no paint applied and nothing pending.
type Pen struct {
	Paint   state.PaintState
	Pending bool // the canvas path holds at least one segment
}

// Renderer draws strokes onto a Canvas.
type Renderer struct {
	Tuning Tuning
}

// Stroke draws one stroke and returns the updated pen.
func (r Renderer) Stroke(c Canvas, pen Pen, samples []state.Sample, attrs state.Attrs) Pen {
	t := r.Tuning
	hasPressure := t.Pressure && attrs.Shape == t.PressureShape

	paint := state.NewPaintState(state.UnpackColor(attrs.Color), attrs.Thickness, hasPressure)
	if !pen.Paint.Same(paint) {
		pen = r.Finish(c, pen)
		pen.Paint = paint
		c.SetColor(paint.Color)
		c.SetLineWidth(paint.Thickness * t.WidthScale)
	}
	if len(samples) == 0 {
		return pen
	}

	pos := make([][]float64, len(samples))
	pressure := make([][]float64, len(samples))
	for i, s := range samples {
		pos[i] = []float64{s.Pos.X, s.Pos.Y}
		pressure[i] = []float64{s.Pressure}
	}
	pos = smooth.Smooth(pos, t.Window, t.Subsample)
	pressure = smooth.Smooth(pressure, t.Window, t.Subsample)

	for i, p := range pos {
		x, y := p[0]*t.Scale, p[1]*t.Scale
		if i == 0 {
			c.MoveTo(x, y)
			continue
		}
		if !hasPressure {
			c.LineTo(x, y)
			pen.Pending = true
			continue
		}
		c.SetLineWidth(r.width(attrs.Thickness, pressure[i][0]))
		c.LineTo(x, y)
		c.Stroke()
		c.MoveTo(x, y)
	}
	return pen
}

// Finish commits the pending path, if any, under the current paint.
func (r Renderer) Finish(c Canvas, pen Pen) Pen {
	if pen.Pending {
		c.Stroke()
		pen.Pending = false
	}
	return pen
}

func (r Renderer) width(thickness, pressure float64) float64 {
	w := thickness * r.Tuning.WidthScale * pressure
	if math.IsNaN(w) || w < r.Tuning.MinWidth {
		return r.Tuning.MinWidth
	}
	return w
}
