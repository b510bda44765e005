package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"NotePDF/internal/state"
)

type Formatter struct {
	w   io.Writer
	tty bool
}

// NewFormatter writes to w. The progress line is drawn only when w is a
// terminal.
func NewFormatter(w io.Writer) *Formatter {
	f := &Formatter{w: w}
	if file, ok := w.(*os.File); ok {
		f.tty = term.IsTerminal(int(file.Fd()))
	}
	return f
}

func (f *Formatter) NoteTree(notes []state.Note) {
	fmt.Fprintf(f.w, "📚 Found note structure:\n")
	for _, n := range notes {
		fmt.Fprintf(f.w, "    %s\n", filepath.Join(n.Dir, n.Title))
	}
}

func (f *Formatter) Rendering(note state.Note) {
	fmt.Fprintf(f.w, "🖊️  Rendering note %s\n", note.Title)
}

// Progress redraws the page counter of the note being rendered.
func (f *Formatter) Progress(done, total int) {
	if !f.tty {
		return
	}
	fmt.Fprintf(f.w, "\r   page %d/%d", done, total)
	if done == total {
		fmt.Fprintf(f.w, "\r\033[K")
	}
}

func (f *Formatter) NoteDone(path string, pages int, missing []string) {
	fmt.Fprintf(f.w, "✅ Saved %s (%d pages)\n", path, pages)
	if len(missing) > 0 {
		fmt.Fprintf(f.w, "⚠️  %d page(s) had no stroke data and were left blank\n", len(missing))
	}
}

func (f *Formatter) NoteFailed(title string, err error) {
	fmt.Fprintf(f.w, "❌ %s: %v\n", title, err)
}

func (f *Formatter) Summary(converted, failed int) {
	if failed == 0 {
		fmt.Fprintf(f.w, "\n📁 Converted %d note(s)\n", converted)
		return
	}
	fmt.Fprintf(f.w, "\n📁 Converted %d note(s), %d failed\n", converted, failed)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}
