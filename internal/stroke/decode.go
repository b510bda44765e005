// Package stroke decodes the point buffers recorded by the pen device.
package stroke

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"NotePDF/internal/state"
)

// ErrMalformed is returned for point buffers or transforms that do not have
// the recorded layout.
var ErrMalformed = errors.New("malformed stroke")

const (
	// FieldsPerSample is the number of float32 values per recorded point:
	// x, y, pressure and three fields the renderer does not use.
	FieldsPerSample = 6

	bytesPerSample = FieldsPerSample * 4
)

// Decoder turns raw strokes into page-space samples.
type Decoder struct {
	PressureNorm     float64
	PressureExponent float64
}

// DefaultDecoder matches the device's pressure encoding.
func DefaultDecoder() Decoder {
	return Decoder{PressureNorm: 1000, PressureExponent: 0.5}
}

// NormalizePressure maps a raw pressure reading back towards [0,1]. The
// result is not clamped.
func (d Decoder) NormalizePressure(raw float64) float64 {
	return math.Pow(raw/d.PressureNorm, d.PressureExponent)
}

// Decode reads raw.Points as big-endian float32 rows and projects each
// position through raw.Transform. Samples keep drawing order.
func (d Decoder) Decode(raw state.RawStroke) ([]state.Sample, error) {
	if len(raw.Points)%bytesPerSample != 0 {
		return nil, fmt.Errorf("%w: point buffer of %d bytes is not a multiple of %d",
			ErrMalformed, len(raw.Points), bytesPerSample)
	}
	m, err := NewMatrix(raw.Transform)
	if err != nil {
		return nil, err
	}

	n := len(raw.Points) / bytesPerSample
	samples := make([]state.Sample, n)
	for i := range samples {
		row := raw.Points[i*bytesPerSample:]
		x := readFloat(row, 0)
		y := readFloat(row, 1)
		p := readFloat(row, 2)

		tx, ty := m.TransformPoint(x, y)
		samples[i] = state.Sample{
			Pos:      state.Point{X: tx, Y: ty},
			Pressure: d.NormalizePressure(p),
		}
	}
	return samples, nil
}

// readFloat returns field i of a row.
func readFloat(row []byte, i int) float64 {
	bits := binary.BigEndian.Uint32(row[i*4:])
	return float64(math.Float32frombits(bits))
}
