package state

// RGB is a color with channels in [0,1].
type RGB struct{ R, G, B float64 }

// UnpackColor splits a device ARGB integer into normalized channels.
func UnpackColor(packed uint32) RGB {
	return RGB{
		R: float64((packed>>16)&0xFF) / 255,
		G: float64((packed>>8)&0xFF) / 255,
		B: float64(packed&0xFF) / 255,
	}
}

// PaintState is the set of canvas attributes that forces a new path when it
// changes. The zero value is the unset state and never equals a set one.
type PaintState struct {
	Color     RGB
	Thickness float64
	Pressure  bool
	set       bool
}

// NewPaintState returns a set PaintState.
func NewPaintState(c RGB, thickness float64, pressure bool) PaintState {
	return PaintState{Color: c, Thickness: thickness, Pressure: pressure, set: true}
}

// IsSet reports whether p was produced by NewPaintState.
func (p PaintState) IsSet() bool { return p.set }

// Same reports whether switching from p to o needs no flush.
func (p PaintState) Same(o PaintState) bool {
	if !p.set || !o.set {
		return false
	}
	return p.Color == o.Color && p.Thickness == o.Thickness && p.Pressure == o.Pressure
}
