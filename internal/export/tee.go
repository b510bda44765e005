// Package export implements the output documents a note is rendered into.
package export

import (
	"errors"

	"NotePDF/internal/render"
	"NotePDF/internal/state"
)

// Tee forwards every call to each of its documents in order.
type Tee []render.Document

var _ render.Document = Tee(nil)

func (t Tee) BeginPage() {
	for _, d := range t {
		d.BeginPage()
	}
}

func (t Tee) SetColor(c state.RGB) {
	for _, d := range t {
		d.SetColor(c)
	}
}

func (t Tee) SetLineWidth(w float64) {
	for _, d := range t {
		d.SetLineWidth(w)
	}
}

func (t Tee) MoveTo(x, y float64) {
	for _, d := range t {
		d.MoveTo(x, y)
	}
}

func (t Tee) LineTo(x, y float64) {
	for _, d := range t {
		d.LineTo(x, y)
	}
}

func (t Tee) Stroke() {
	for _, d := range t {
		d.Stroke()
	}
}

func (t Tee) EndPage() error {
	var errs []error
	for _, d := range t {
		errs = append(errs, d.EndPage())
	}
	return errors.Join(errs...)
}

func (t Tee) Close() error {
	var errs []error
	for _, d := range t {
		errs = append(errs, d.Close())
	}
	return errors.Join(errs...)
}

func (t Tee) Discard() error {
	var errs []error
	for _, d := range t {
		errs = append(errs, d.Discard())
	}
	return errors.Join(errs...)
}
