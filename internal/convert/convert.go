// Package convert drives a whole backup through the renderer, one document per
// note.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"NotePDF/internal/catalog"
	"NotePDF/internal/config"
	"NotePDF/internal/export"
	"NotePDF/internal/output"
	"NotePDF/internal/render"
	"NotePDF/internal/state"
)

// Summary lists what a run produced.
type Summary struct {
	Written []string // output paths of the converted notes
	Failed  []string // titles of the notes that could not be converted
}

// NoteError reports the note a failure belongs to.
type NoteError struct {
	Note string
	Err  error
}

func (e *NoteError) Error() string { return fmt.Sprintf("note %q: %v", e.Note, e.Err) }

func (e *NoteError) Unwrap() error { return e.Err }

type Converter struct {
	cfg   *config.Config
	log   *slog.Logger
	out   *output.Formatter
	runID string
}

func New(cfg *config.Config, log *slog.Logger, out *output.Formatter) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	id := uuid.NewString()
	return &Converter{
		cfg:   cfg,
		log:   log.With("run", id),
		out:   out,
		runID: id,
	}
}

// Notes extracts archive and lists the notes it holds.
func (c *Converter) Notes(ctx context.Context, archive string) ([]state.Note, error) {
	dir, cleanup, err := c.unpack(archive)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return catalog.New(dir).Notes(ctx)
}

// Run converts every note in archive into outDir. A failing note is logged,
// its partial output removed, and the run carries on with the next one. The
// returned error joins all note failures.
func (c *Converter) Run(ctx context.Context, archive, outDir string) (Summary, error) {
	var sum Summary

	dir, cleanup, err := c.unpack(archive)
	if err != nil {
		return sum, err
	}
	defer cleanup()

	cat := catalog.New(dir)
	notes, err := cat.Notes(ctx)
	if err != nil {
		return sum, err
	}
	c.out.NoteTree(notes)
	c.log.Info("catalog loaded", "notes", len(notes))

	var errs []error
	used := make(map[string]bool)
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		note.OutputPath = outputPath(outDir, note, used)

		c.out.Rendering(note)
		rep, err := c.convertNote(ctx, cat, note)
		if err != nil {
			c.log.Error("note failed", "note", note.Title, "id", note.ID, "error", err)
			c.out.NoteFailed(note.Title, err)
			sum.Failed = append(sum.Failed, note.Title)
			errs = append(errs, &NoteError{Note: note.Title, Err: err})
			continue
		}
		c.log.Info("note written", "note", note.Title, "path", note.OutputPath,
			"pages", rep.Pages, "strokes", rep.Strokes, "missing", len(rep.Missing))
		c.out.NoteDone(note.OutputPath, rep.Pages, rep.Missing)
		sum.Written = append(sum.Written, note.OutputPath)
	}

	c.out.Summary(len(sum.Written), len(sum.Failed))
	return sum, errors.Join(errs...)
}

// outputPath places note under outDir. Titles that collide within a folder
// get a numeric suffix.
func outputPath(outDir string, note state.Note, used map[string]bool) string {
	base := filepath.Join(outDir, note.Dir, catalog.SafeName(note.Title))
	path := base + ".pdf"
	for n := 2; used[strings.ToLower(path)]; n++ {
		path = fmt.Sprintf("%s (%d).pdf", base, n)
	}
	used[strings.ToLower(path)] = true
	return path
}

func (c *Converter) convertNote(ctx context.Context, cat *catalog.Catalog, note state.Note) (render.Report, error) {
	if err := os.MkdirAll(filepath.Dir(note.OutputPath), 0o755); err != nil {
		return render.Report{}, fmt.Errorf("creating output directory: %w", err)
	}

	store, err := cat.OpenStore(note.ID)
	if err != nil {
		return render.Report{}, err
	}
	defer store.Close()

	var doc render.Document = export.NewPDF(note.OutputPath, note.Title)
	if c.cfg.Preview {
		previews := strings.TrimSuffix(note.OutputPath, ".pdf")
		doc = export.Tee{doc, export.NewPreview(previews, c.cfg.PreviewScale)}
	}

	seq := &render.Sequencer{
		Renderer: render.Renderer{Tuning: c.cfg.Tuning},
		Decoder:  c.cfg.Decoder,
		Strict:   c.cfg.Strict,
		Progress: c.out.Progress,
		Logger:   c.log,
	}
	rep, err := seq.Render(ctx, note, store, doc)
	if err != nil {
		if derr := doc.Discard(); derr != nil {
			c.log.Warn("discarding partial output", "note", note.Title, "error", derr)
		}
		return rep, err
	}
	return rep, nil
}

func (c *Converter) unpack(archive string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "notepdf-"+c.runID[:8]+"-")
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			c.log.Warn("removing scratch directory", "dir", dir, "error", err)
		}
	}
	if err := catalog.Extract(archive, dir); err != nil {
		cleanup()
		return "", nil, err
	}
	c.log.Debug("archive extracted", "archive", archive, "dir", dir)
	return dir, cleanup, nil
}
