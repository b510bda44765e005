// Package catalogtest builds synthetic backups for tests.
package catalogtest

import (
	"archive/zip"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"NotePDF/internal/state"
)

type entry struct {
	id, title, parent string
	typ               int
	pages             []string
}

type shape struct {
	page   string
	stroke state.RawStroke
	matrix string // overrides stroke.Transform when set
}

// Backup collects catalog and stroke records before writing them out.
type Backup struct {
	entries []entry
	shapes  map[string][]shape
}

func New() *Backup {
	return &Backup{shapes: make(map[string][]shape)}
}

func (b *Backup) Folder(id, title, parent string) *Backup {
	b.entries = append(b.entries, entry{id: id, title: title, parent: parent, typ: 0})
	return b
}

func (b *Backup) Note(id, title, parent string, pages ...string) *Backup {
	b.entries = append(b.entries, entry{id: id, title: title, parent: parent, typ: 1, pages: pages})
	if _, ok := b.shapes[id]; !ok {
		b.shapes[id] = nil
	}
	return b
}

func (b *Backup) Stroke(note, page string, s state.RawStroke) *Backup {
	b.shapes[note] = append(b.shapes[note], shape{page: page, stroke: s})
	return b
}

// RawMatrix stores a stroke whose matrixValues column is the given text.
func (b *Backup) RawMatrix(note, page string, s state.RawStroke, matrix string) *Backup {
	b.shapes[note] = append(b.shapes[note], shape{page: page, stroke: s, matrix: matrix})
	return b
}

// Drop removes the stroke database of a note.
func (b *Backup) Drop(note string) *Backup {
	delete(b.shapes, note)
	return b
}

// Write creates the databases in dir.
func (b *Backup) Write(dir string) error {
	db, err := sql.Open("sqlite", filepath.Join(dir, "ShapeDatabase.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE NoteModel (
		uniqueId TEXT PRIMARY KEY, title TEXT, parentUniqueId TEXT, type INTEGER, pageNameList TEXT)`); err != nil {
		return err
	}
	for _, e := range b.entries {
		var parent, pages any
		if e.parent != "" {
			parent = e.parent
		}
		if e.typ == 1 {
			raw, _ := json.Marshal(map[string][]string{"pageNameList": e.pages})
			pages = string(raw)
		}
		if _, err := db.Exec(`INSERT INTO NoteModel VALUES (?, ?, ?, ?, ?)`,
			e.id, e.title, parent, e.typ, pages); err != nil {
			return err
		}
	}

	for note, shapes := range b.shapes {
		if err := writeShapes(filepath.Join(dir, note+".db"), shapes); err != nil {
			return err
		}
	}
	return nil
}

func writeShapes(path string, shapes []shape) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE NewShapeModel (
		id INTEGER PRIMARY KEY AUTOINCREMENT, pageUniqueId TEXT, points BLOB,
		matrixValues TEXT, thickness REAL, shapeType INTEGER, color INTEGER)`); err != nil {
		return err
	}
	for _, s := range shapes {
		matrix := s.matrix
		if matrix == "" {
			raw, _ := json.Marshal(map[string][]float32{"values": s.stroke.Transform})
			matrix = string(raw)
		}
		if _, err := db.Exec(`INSERT INTO NewShapeModel
			(pageUniqueId, points, matrixValues, thickness, shapeType, color) VALUES (?, ?, ?, ?, ?, ?)`,
			s.page, s.stroke.Points, matrix, s.stroke.Thickness, s.stroke.Shape, int64(int32(s.stroke.Color))); err != nil {
			return err
		}
	}
	return nil
}

// Zip writes the backup as a zip archive at path.
func (b *Backup) Zip(path string) error {
	dir, err := os.MkdirTemp("", "catalogtest")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	if err := b.Write(dir); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := addFile(zw, dir, e.Name()); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addFile(zw *zip.Writer, dir, name string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Identity is the row-major identity transform.
var Identity = []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}

// Points encodes x, y, pressure triples as a device point buffer.
func Points(xyp ...float32) []byte {
	var buf []byte
	for i := 0; i+2 < len(xyp); i += 3 {
		for _, f := range []float32{xyp[i], xyp[i+1], xyp[i+2], 0, 0, 0} {
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}
