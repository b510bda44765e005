package stroke

import "fmt"

// Matrix is a 3x3 transform in homogeneous coordinates, row-major:
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	| m[6] m[7] m[8] |
type Matrix [9]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// NewMatrix builds a Matrix from nine row-major values.
func NewMatrix(values []float32) (Matrix, error) {
	var m Matrix
	if len(values) != len(m) {
		return m, fmt.Errorf("%w: transform has %d values, want %d", ErrMalformed, len(values), len(m))
	}
	for i, v := range values {
		m[i] = float64(v)
	}
	return m, nil
}

// Apply multiplies the row vector [x y 1] by the transpose of m and returns
// the homogeneous result.
func (m Matrix) Apply(x, y float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2],
		m[3]*x + m[4]*y + m[5],
		m[6]*x + m[7]*y + m[8]
}

// TransformPoint applies m and keeps the first two components.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	tx, ty, _ := m.Apply(x, y)
	return tx, ty
}
