package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/rosterboard/layout"
)

func TestScaleDeltaAtHalfScale(t *testing.T) {
	s := &layout.Surface{Width: 2000, Height: 1414, Rendered: layout.Rect{Width: 1000, Height: 707}}
	dx, dy := CoordinateMapper{surface: s}.ScaleDelta(100, 100)
	assert.InDelta(t, 200, dx, 1e-9)
	assert.InDelta(t, 200, dy, 1e-9)
}

func TestScaleDeltaReadsRenderedSizeEachCall(t *testing.T) {
	s := &layout.Surface{Width: 2000, Height: 1414, Rendered: layout.Rect{Width: 2000, Height: 1414}}
	m := CoordinateMapper{surface: s}
	dx, _ := m.ScaleDelta(10, 10)
	assert.InDelta(t, 10, dx, 1e-9)

	s.Rendered.Width = 500
	dx, dy := m.ScaleDelta(10, 10)
	assert.InDelta(t, 40, dx, 1e-9)
	assert.InDelta(t, 10, dy, 1e-9)
}

func TestScaleDeltaFallsBackToIdentity(t *testing.T) {
	s := &layout.Surface{Width: 2000, Height: 1414}
	dx, dy := CoordinateMapper{surface: s}.ScaleDelta(7, -3)
	assert.Equal(t, 7.0, dx)
	assert.Equal(t, -3.0, dy)

	dx, dy = CoordinateMapper{}.ScaleDelta(7, -3)
	assert.Equal(t, 7.0, dx)
	assert.Equal(t, -3.0, dy)
}
