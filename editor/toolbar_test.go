package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
)

func TestRepositionPrefersAbove(t *testing.T) {
	f := newFixture(t)
	tb := NewToolbar(config.Default().Toolbar)
	tb.Reposition(f.surface, f.block(t, "tuesday"))
	require.True(t, tb.Visible())
	assert.Equal(t, layout.Rect{X: 400, Y: 248, Width: 260, Height: 40}, tb.Rect())
}

func TestRepositionFlipsBelowNearTop(t *testing.T) {
	f := newFixture(t)
	tb := NewToolbar(config.Default().Toolbar)
	tb.Reposition(f.surface, f.block(t, "monday"))
	// monday 的屏幕矩形为 (50,50) 200x43，上方空间不足。
	assert.Equal(t, layout.Rect{X: 50, Y: 103, Width: 260, Height: 40}, tb.Rect())
}

func TestRepositionClampsRightEdge(t *testing.T) {
	f := newFixture(t)
	f.surface.Viewport.Width = 800
	b := f.block(t, "tuesday")
	b.Left = 1200 // viewport x 600

	tb := NewToolbar(config.Default().Toolbar)
	tb.Reposition(f.surface, b)
	assert.Equal(t, 528.0, tb.Rect().X)

	b.Left = 1060 // viewport x 530, 530+260 fits in 800
	tb.Reposition(f.surface, b)
	assert.Equal(t, 530.0, tb.Rect().X)
}

func TestToolbarButtons(t *testing.T) {
	tb := NewToolbar(config.Default().Toolbar)
	_, ok := tb.ButtonAt(0, 0)
	assert.False(t, ok, "hidden toolbar has no buttons")

	s := &layout.Surface{Width: 1000, Height: 1000, Rendered: layout.Rect{Width: 1000, Height: 1000}, Viewport: layout.Size{Width: 1000, Height: 1000}}
	b := &layout.Block{Left: 100, Top: 300, Width: 200, MinHeight: 40}
	s.AddBlock(b)
	tb.Reposition(s, b)
	require.Equal(t, layout.Rect{X: 100, Y: 248, Width: 260, Height: 40}, tb.Rect())

	cases := map[Button]float64{ButtonMinus: 220, ButtonPlus: 260, ButtonBold: 300, ButtonClose: 340}
	for want, x := range cases {
		got, ok := tb.ButtonAt(x, 260)
		require.True(t, ok, "button %s", want)
		assert.Equal(t, want, got)
	}
	_, ok = tb.ButtonAt(150, 260)
	assert.False(t, ok, "readout area")
	assert.True(t, tb.Contains(150, 260))

	tb.Hide()
	assert.False(t, tb.Contains(150, 260))
}

func TestParseButton(t *testing.T) {
	for _, name := range []string{"minus", "plus", "bold", "close"} {
		b, ok := ParseButton(name)
		require.True(t, ok)
		assert.Equal(t, Button(name), b)
	}
	_, ok := ParseButton("italic")
	assert.False(t, ok)
}
