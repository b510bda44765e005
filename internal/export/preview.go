package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"NotePDF/internal/render"
	"NotePDF/internal/state"
)

// Preview rasterizes each page to dir/page-NNN.png.
type Preview struct {
	dir     string
	scale   float64
	page    int
	dc      *gg.Context
	err     error
	written []string
}

var _ render.Document = (*Preview)(nil)

// NewPreview renders at scale pixels per point.
func NewPreview(dir string, scale float64) *Preview {
	if scale <= 0 {
		scale = 1
	}
	return &Preview{dir: dir, scale: scale}
}

func (p *Preview) BeginPage() {
	w := int(render.LetterWidth * p.scale)
	h := int(render.LetterHeight * p.scale)
	p.dc = gg.NewContext(w, h)
	p.dc.ClearWithColor(gg.White)
	p.dc.SetLineCap(gg.LineCapRound)
	p.dc.SetLineJoin(gg.LineJoinRound)
}

func (p *Preview) SetColor(c state.RGB) { p.dc.SetRGB(c.R, c.G, c.B) }

func (p *Preview) SetLineWidth(w float64) { p.dc.SetLineWidth(w * p.scale) }

func (p *Preview) MoveTo(x, y float64) { p.dc.MoveTo(x*p.scale, y*p.scale) }

func (p *Preview) LineTo(x, y float64) { p.dc.LineTo(x*p.scale, y*p.scale) }

func (p *Preview) Stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *Preview) EndPage() error {
	p.page++
	dc := p.dc
	p.dc = nil
	defer dc.Close()

	if p.err != nil {
		return fmt.Errorf("preview page %d: %w", p.page, p.err)
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("creating preview directory: %w", err)
	}
	name := filepath.Join(p.dir, fmt.Sprintf("page-%03d.png", p.page))
	if err := dc.SavePNG(name); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	p.written = append(p.written, name)
	return nil
}

func (p *Preview) Close() error { return nil }

// Discard removes the pages written so far.
func (p *Preview) Discard() error {
	var errs []error
	for _, name := range p.written {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	p.written = nil
	_ = os.Remove(p.dir) // only succeeds when empty
	return errors.Join(errs...)
}
