package export

import (
	"math"

	"github.com/jung-kurt/gofpdf"

	"NotePDF/internal/render"
	"NotePDF/internal/state"
)

type pathOp struct {
	line bool
	x, y float64
}

// PDF writes pages to a US Letter PDF file. Path operations are held back
// until Stroke so that width and color operators always sit between path
// objects.
type PDF struct {
	path    string
	f       *gofpdf.Fpdf
	pending []pathOp
	lines   int
}

var _ render.Document = (*PDF)(nil)

// NewPDF prepares a document that is written to path on Close.
func NewPDF(path, title string) *PDF {
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: render.LetterWidth, Ht: render.LetterHeight},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCreator("NotePDF", true)
	if title != "" {
		f.SetTitle(title, true)
	}
	return &PDF{path: path, f: f}
}

func (d *PDF) BeginPage() {
	d.f.AddPage()
	d.f.SetLineCapStyle("round")
	d.f.SetLineJoinStyle("round")
	d.reset()
}

func (d *PDF) SetColor(c state.RGB) {
	d.f.SetDrawColor(channel(c.R), channel(c.G), channel(c.B))
}

func (d *PDF) SetLineWidth(w float64) {
	d.f.SetLineWidth(w)
}

func (d *PDF) MoveTo(x, y float64) {
	d.pending = append(d.pending, pathOp{x: x, y: y})
}

func (d *PDF) LineTo(x, y float64) {
	d.pending = append(d.pending, pathOp{line: true, x: x, y: y})
	d.lines++
}

func (d *PDF) Stroke() {
	if d.lines > 0 {
		for i, op := range d.pending {
			switch {
			case op.line:
				d.f.LineTo(op.x, op.y)
			case i+1 == len(d.pending) || !d.pending[i+1].line:
				// move without a following segment
			default:
				d.f.MoveTo(op.x, op.y)
			}
		}
		d.f.DrawPath("D")
	}
	d.reset()
}

// EndPage drops any path that was never stroked.
func (d *PDF) EndPage() error {
	d.reset()
	return d.f.Error()
}

func (d *PDF) Close() error {
	return d.f.OutputFileAndClose(d.path)
}

// Discard abandons the document; nothing has been written yet.
func (d *PDF) Discard() error {
	d.f.Close()
	return nil
}

func (d *PDF) reset() {
	d.pending = d.pending[:0]
	d.lines = 0
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
