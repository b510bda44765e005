package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"NotePDF/internal/render"
	"NotePDF/internal/state"
	"NotePDF/internal/stroke"
)

// Store reads the strokes of one note.
type Store struct {
	db *sql.DB
}

var _ render.StrokeSource = (*Store)(nil)

// OpenStore opens the stroke database of note id.
func (c *Catalog) OpenStore(id string) (*Store, error) {
	path := filepath.Join(c.dir, id+".db")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no database for %s", ErrNoteNotFound, id)
		}
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PageStrokes returns the strokes of a page in the order they were drawn. A
// listed page without rows yields render.ErrPageNotFound.
func (s *Store) PageStrokes(ctx context.Context, pageID string) ([]state.RawStroke, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT points, matrixValues, thickness, shapeType, color
		 FROM NewShapeModel WHERE pageUniqueId = ? ORDER BY rowid`, pageID)
	if err != nil {
		return nil, fmt.Errorf("querying strokes: %w", err)
	}
	defer rows.Close()

	var strokes []state.RawStroke
	for rows.Next() {
		var (
			points    []byte
			matrix    sql.NullString
			thickness float64
			shape     int
			color     int64
		)
		if err := rows.Scan(&points, &matrix, &thickness, &shape, &color); err != nil {
			return nil, fmt.Errorf("scanning stroke %d: %w", len(strokes), err)
		}
		transform, err := parseMatrix(matrix.String)
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", len(strokes), err)
		}
		strokes = append(strokes, state.RawStroke{
			Points:    points,
			Transform: transform,
			Thickness: thickness,
			Shape:     shape,
			Color:     uint32(color),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(strokes) == 0 {
		return nil, fmt.Errorf("%w: no strokes for %s", render.ErrPageNotFound, pageID)
	}
	return strokes, nil
}

func parseMatrix(raw string) ([]float32, error) {
	var v struct {
		Values []float32 `json:"values"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: matrix values: %v", stroke.ErrMalformed, err)
	}
	return v.Values, nil
}
