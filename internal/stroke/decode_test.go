package stroke

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NotePDF/internal/state"
)

// encode packs rows of x, y, pressure the way the device stores them.
func encode(rows ...[3]float32) []byte {
	buf := make([]byte, 0, len(rows)*bytesPerSample)
	for _, r := range rows {
		fields := [FieldsPerSample]float32{r[0], r[1], r[2], 11, 22, 33}
		for _, f := range fields {
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

var identity = []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}

func TestDecodeIdentity(t *testing.T) {
	raw := state.RawStroke{
		Points:    encode([3]float32{0.25, 0.5, 1000}, [3]float32{0.125, 0.75, 250}),
		Transform: identity,
	}
	samples, err := DefaultDecoder().Decode(raw)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, state.Point{X: 0.25, Y: 0.5}, samples[0].Pos)
	assert.Equal(t, state.Point{X: 0.125, Y: 0.75}, samples[1].Pos)
	assert.InDelta(t, 1.0, samples[0].Pressure, 1e-12)
	assert.InDelta(t, 0.5, samples[1].Pressure, 1e-12)
}

func TestDecodeTransform(t *testing.T) {
	// scale by 2, translate by (10, -4)
	raw := state.RawStroke{
		Points:    encode([3]float32{1, 3, 0}),
		Transform: []float32{2, 0, 10, 0, 2, -4, 0, 0, 1},
	}
	samples, err := DefaultDecoder().Decode(raw)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, state.Point{X: 12, Y: 2}, samples[0].Pos)
}

func TestDecodeFullMatrix(t *testing.T) {
	// the bottom row only feeds the discarded homogeneous component
	raw := state.RawStroke{
		Points:    encode([3]float32{1, 2, 0}),
		Transform: []float32{0, 1, 0, 1, 0, 0, 5, 5, 5},
	}
	samples, err := DefaultDecoder().Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, state.Point{X: 2, Y: 1}, samples[0].Pos)

	_, _, w := Matrix{0, 1, 0, 1, 0, 0, 5, 5, 5}.Apply(1, 2)
	assert.Equal(t, 20.0, w)
}

func TestDecodeKeepsOrder(t *testing.T) {
	rows := make([][3]float32, 50)
	for i := range rows {
		rows[i] = [3]float32{float32(i), float32(-i), 0}
	}
	samples, err := DefaultDecoder().Decode(state.RawStroke{Points: encode(rows...), Transform: identity})
	require.NoError(t, err)
	require.Len(t, samples, 50)
	for i, s := range samples {
		assert.Equal(t, float64(i), s.Pos.X)
		assert.Equal(t, float64(-i), s.Pos.Y)
	}
}

func TestDecodeEmpty(t *testing.T) {
	samples, err := DefaultDecoder().Decode(state.RawStroke{Transform: identity})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestDecodeMalformed(t *testing.T) {
	good := encode([3]float32{1, 1, 1})

	for _, n := range []int{1, 4, 20, 23, 25, 47} {
		buf := make([]byte, n)
		_, err := DefaultDecoder().Decode(state.RawStroke{Points: buf, Transform: identity})
		assert.ErrorIs(t, err, ErrMalformed, "length %d", n)
	}

	for _, m := range [][]float32{nil, {1, 0, 0}, append(identity, 0)} {
		_, err := DefaultDecoder().Decode(state.RawStroke{Points: good, Transform: m})
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestNormalizePressure(t *testing.T) {
	d := DefaultDecoder()
	assert.Equal(t, 0.0, d.NormalizePressure(0))
	assert.InDelta(t, 1.0, d.NormalizePressure(1000), 1e-12)
	assert.InDelta(t, 0.5, d.NormalizePressure(250), 1e-12)
	// not clamped
	assert.Greater(t, d.NormalizePressure(4000), 1.0)

	prev := d.NormalizePressure(0)
	for raw := 1.0; raw <= 2000; raw += 7 {
		cur := d.NormalizePressure(raw)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(identity)
	require.NoError(t, err)
	assert.Equal(t, Identity(), m)

	_, err = NewMatrix([]float32{1, 2})
	assert.ErrorIs(t, err, ErrMalformed)
}
