// Package catalog reads the note hierarchy and stroke tables of an extracted
// backup.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"NotePDF/internal/state"
)

// IndexFile is the database holding the folder and note records.
const IndexFile = "ShapeDatabase.db"

const (
	typeFolder = 0
	typeNote   = 1
)

// ErrNoteNotFound is returned when a note has no stroke database.
var ErrNoteNotFound = errors.New("note not found")

// Catalog reads an extracted backup directory.
type Catalog struct {
	dir string
}

func New(dir string) *Catalog {
	return &Catalog{dir: dir}
}

type folder struct {
	title  string
	parent sql.NullString
}

// Notes lists every note with its folder path, in table order.
func (c *Catalog) Notes(ctx context.Context) ([]state.Note, error) {
	path := filepath.Join(c.dir, IndexFile)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	folders, err := readFolders(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT uniqueId, title, pageNameList, parentUniqueId FROM NoteModel WHERE type = ?`, typeNote)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []state.Note
	for rows.Next() {
		var (
			id, title string
			pages     sql.NullString
			parent    sql.NullString
		)
		if err := rows.Scan(&id, &title, &pages, &parent); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		list, err := parsePageList(pages.String)
		if err != nil {
			return nil, fmt.Errorf("note %q: %w", title, err)
		}
		dir, err := folderPath(folders, parent)
		if err != nil {
			return nil, fmt.Errorf("note %q: %w", title, err)
		}
		notes = append(notes, state.Note{ID: id, Title: title, Dir: dir, Pages: list})
	}
	return notes, rows.Err()
}

func readFolders(ctx context.Context, db *sql.DB) (map[string]folder, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT uniqueId, title, parentUniqueId FROM NoteModel WHERE type = ?`, typeFolder)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	folders := make(map[string]folder)
	for rows.Next() {
		var id string
		var f folder
		if err := rows.Scan(&id, &f.title, &f.parent); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders[id] = f
	}
	return folders, rows.Err()
}

// folderPath joins the titles of the parent chain, root first. An unknown
// parent ends the chain.
func folderPath(folders map[string]folder, parent sql.NullString) (string, error) {
	var parts []string
	seen := make(map[string]bool)
	for parent.Valid && parent.String != "" {
		if seen[parent.String] {
			return "", fmt.Errorf("folder cycle at %s", parent.String)
		}
		seen[parent.String] = true
		f, ok := folders[parent.String]
		if !ok {
			break
		}
		parts = append([]string{SafeName(f.title)}, parts...)
		parent = f.parent
	}
	return filepath.Join(parts...), nil
}

func parsePageList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var v struct {
		PageNameList []string `json:"pageNameList"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("parsing page list: %w", err)
	}
	return v.PageNameList, nil
}

// SafeName makes a title usable as a single path element.
func SafeName(title string) string {
	out := []rune(title)
	for i, r := range out {
		if r == '/' || r == '\\' || r == 0 {
			out[i] = '_'
		}
	}
	switch s := string(out); s {
	case "", ".", "..":
		return "_" + s
	default:
		return s
	}
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return db, nil
}
