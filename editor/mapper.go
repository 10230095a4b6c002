package editor

import "github.com/ByLCY/rosterboard/layout"

// Point is a pointer position in viewport px.
type Point struct {
	X, Y float64
}

// CoordinateMapper converts viewport deltas into surface deltas.
type CoordinateMapper struct {
	surface *layout.Surface
}

// ScaleDelta multiplies each viewport delta by logical/rendered size of its axis.
// The scale is read on every call because the rendered size can change between
// pointer events; a zero rendered extent maps 1:1.
func (m CoordinateMapper) ScaleDelta(dx, dy float64) (float64, float64) {
	if m.surface == nil {
		return dx, dy
	}
	sx, sy := m.surface.Scale()
	return dx * sx, dy * sy
}
