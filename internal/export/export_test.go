package export

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NotePDF/internal/state"
)

func TestPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.pdf")
	d := NewPDF(path, "Note")
	d.f.SetCompression(false)

	d.BeginPage()
	d.SetColor(state.RGB{B: 1})
	d.SetLineWidth(0.6)
	d.MoveTo(0, 0)
	d.MoveTo(10, 10)
	d.LineTo(20, 20)
	d.Stroke()
	// a lone move is never emitted
	d.MoveTo(30, 30)
	d.Stroke()
	// nor a trailing one after a segment
	d.MoveTo(40, 40)
	d.LineTo(50, 50)
	d.MoveTo(60, 60)
	d.Stroke()
	require.NoError(t, d.EndPage())

	d.BeginPage()
	require.NoError(t, d.EndPage())
	require.NoError(t, d.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "%PDF-"))
	assert.Contains(t, content, "1 J")
	assert.Contains(t, content, "1 j")
	assert.Equal(t, 2, strings.Count(content, " m\n"))
	assert.Equal(t, 2, strings.Count(content, " l\n"))
	assert.NotContains(t, content, "60.00 732.00 m")
	assert.Contains(t, content, "10.00 782.00 m")
}

func TestPDFDiscardWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.pdf")
	d := NewPDF(path, "")
	d.BeginPage()
	require.NoError(t, d.EndPage())
	require.NoError(t, d.Discard())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestChannel(t *testing.T) {
	assert.Equal(t, 0, channel(0))
	assert.Equal(t, 255, channel(1))
	assert.Equal(t, 51, channel(51.0/255))
	assert.Equal(t, 255, channel(3))
	assert.Equal(t, 0, channel(-1))
}

func TestPreviewWritesPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "previews")
	p := NewPreview(dir, 0.5)

	p.BeginPage()
	p.SetColor(state.RGB{})
	p.SetLineWidth(20)
	p.MoveTo(0, 400)
	p.LineTo(612, 400)
	p.Stroke()
	require.NoError(t, p.EndPage())

	p.BeginPage()
	require.NoError(t, p.EndPage())
	require.NoError(t, p.Close())

	for _, name := range []string{"page-001.png", "page-002.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 306, img.Bounds().Dx())
		assert.Equal(t, 396, img.Bounds().Dy())
	}

	f, err := os.Open(filepath.Join(dir, "page-001.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, _, _ := img.At(150, 200).RGBA()
	assert.Less(t, r, uint32(0x8000), "line pixel should be dark")
	r, _, _, _ = img.At(5, 5).RGBA()
	assert.Greater(t, r, uint32(0xF000), "background should be white")
}

func TestPreviewDiscard(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "previews")
	p := NewPreview(dir, 0.25)
	p.BeginPage()
	require.NoError(t, p.EndPage())
	require.FileExists(t, filepath.Join(dir, "page-001.png"))

	require.NoError(t, p.Discard())
	assert.NoDirExists(t, dir)
}

type countDoc struct {
	calls map[string]int
	err   error
}

func (c *countDoc) hit(name string) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[name]++
}

func (c *countDoc) BeginPage() { c.hit("begin") }
func (c *countDoc) SetColor(state.RGB) { c.hit("color") }
func (c *countDoc) SetLineWidth(float64) { c.hit("width") }
func (c *countDoc) MoveTo(float64, float64) { c.hit("move") }
func (c *countDoc) LineTo(float64, float64) { c.hit("line") }
func (c *countDoc) Stroke() { c.hit("stroke") }

func (c *countDoc) EndPage() error {
	c.hit("end")
	return c.err
}

func (c *countDoc) Close() error {
	c.hit("close")
	return c.err
}

func (c *countDoc) Discard() error {
	c.hit("discard")
	return nil
}

func TestTee(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countDoc{}, &countDoc{err: boom}
	tee := Tee{a, b}

	tee.BeginPage()
	tee.SetColor(state.RGB{})
	tee.SetLineWidth(1)
	tee.MoveTo(1, 1)
	tee.LineTo(2, 2)
	tee.Stroke()
	assert.ErrorIs(t, tee.EndPage(), boom)
	assert.ErrorIs(t, tee.Close(), boom)
	assert.NoError(t, tee.Discard())

	for _, d := range []*countDoc{a, b} {
		for _, k := range []string{"begin", "color", "width", "move", "line", "stroke", "end", "close", "discard"} {
			assert.Equal(t, 1, d.calls[k], k)
		}
	}
}
