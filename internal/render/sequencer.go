package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NotePDF/internal/state"
	"NotePDF/internal/stroke"
)

// US Letter in points.
const (
	LetterWidth  = 8.5 * 72
	LetterHeight = 11 * 72
)

// ErrPageNotFound is returned by a StrokeSource that has no data for a page.
var ErrPageNotFound = errors.New("page not found")

// StrokeSource yields the strokes of a page in drawing order.
type StrokeSource interface {
	PageStrokes(ctx context.Context, pageID string) ([]state.RawStroke, error)
}

// Document is a paginated Canvas. Close finalizes the output; Discard drops
// whatever was produced so far.
type Document interface {
	Canvas
	BeginPage()
	EndPage() error
	Close() error
	Discard() error
}

// StrokeError identifies the stroke a note failed on.
type StrokeError struct {
	Page  string
	Index int
	Err   error
}

func (e *StrokeError) Error() string {
	return fmt.Sprintf("page %s stroke %d: %v", e.Page, e.Index, e.Err)
}

func (e *StrokeError) Unwrap() error { return e.Err }

// Report summarizes one rendered note.
type Report struct {
	Pages   int
	Strokes int
	Missing []string // pages rendered blank because the source had no data
}

// Sequencer renders the pages of a note into a Document.
type Sequencer struct {
	Renderer Renderer
	Decoder  stroke.Decoder
	// Strict fails the note on a missing page instead of rendering it blank.
	Strict   bool
	Progress func(done, total int)
	Logger   *slog.Logger
}

// Render draws every page of note in order and closes doc. On error doc is
// left open for the caller to discard.
func (s *Sequencer) Render(ctx context.Context, note state.Note, src StrokeSource, doc Document) (Report, error) {
	var rep Report
	log := s.logger().With("note", note.Title)

	for i, pageID := range note.Pages {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		strokes, err := src.PageStrokes(ctx, pageID)
		if errors.Is(err, ErrPageNotFound) && !s.Strict {
			log.Warn("page has no stroke data, rendering blank", "page", pageID)
			rep.Missing = append(rep.Missing, pageID)
			strokes, err = nil, nil
		}
		if err != nil {
			return rep, fmt.Errorf("page %s: %w", pageID, err)
		}

		if err := s.renderPage(doc, pageID, strokes); err != nil {
			return rep, err
		}
		rep.Pages++
		rep.Strokes += len(strokes)
		log.Debug("page rendered", "page", pageID, "strokes", len(strokes))

		if s.Progress != nil {
			s.Progress(i+1, len(note.Pages))
		}
	}

	if err := doc.Close(); err != nil {
		return rep, fmt.Errorf("closing document: %w", err)
	}
	return rep, nil
}

func (s *Sequencer) renderPage(doc Document, pageID string, strokes []state.RawStroke) error {
	doc.BeginPage()
	var pen Pen
	for i, raw := range strokes {
		samples, err := s.Decoder.Decode(raw)
		if err != nil {
			return &StrokeError{Page: pageID, Index: i, Err: err}
		}
		pen = s.Renderer.Stroke(doc, pen, samples, raw.Attrs())
	}
	s.Renderer.Finish(doc, pen)
	if err := doc.EndPage(); err != nil {
		return fmt.Errorf("page %s: %w", pageID, err)
	}
	return nil
}

func (s *Sequencer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
