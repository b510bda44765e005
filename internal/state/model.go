package state

// Point is a position in page space.
type Point struct{ X, Y float64 }

// Sample is one decoded point of a stroke.
type Sample struct {
	Pos      Point
	Pressure float64
}

// Attrs are the paint attributes a stroke is recorded with.
type Attrs struct {
	Thickness float64
	Color     uint32 // device ARGB, alpha ignored
	Shape     int
}

// RawStroke is one stroke row as stored by the device.
type RawStroke struct {
	Points    []byte    // big-endian float32, 6 per sample
	Transform []float32 // 3x3 row-major
	Thickness float64
	Shape     int
	Color     uint32
}

// Attrs returns the paint attributes of the stroke.
func (r RawStroke) Attrs() Attrs {
	return Attrs{Thickness: r.Thickness, Color: r.Color, Shape: r.Shape}
}

// Note is a titled list of pages found in the catalog.
type Note struct {
	ID         string
	Title      string
	Dir        string // folder path relative to the catalog root
	Pages      []string
	OutputPath string
}
