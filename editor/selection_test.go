package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectIsExclusive(t *testing.T) {
	f := newFixture(t)
	monday, tuesday := f.block(t, "monday"), f.block(t, "tuesday")

	f.app.Selection.Select(monday)
	f.app.Selection.Select(tuesday)
	assert.False(t, monday.Selected)
	assert.True(t, tuesday.Selected)
	assert.Same(t, tuesday, f.app.Selection.Current())

	f.app.Selection.Select(tuesday)
	assert.True(t, tuesday.Selected)
}

func TestSelectLeavesGeometryAndStyleAlone(t *testing.T) {
	f := newFixture(t)
	before := snapshot(f.surface)
	f.app.Selection.Select(f.block(t, "monday"))
	f.app.Settle()
	f.app.Selection.Deselect()
	assert.Equal(t, before, snapshot(f.surface))
}

func TestSelectUpdatesReadout(t *testing.T) {
	f := newFixture(t)
	b := f.block(t, "monday")
	b.FontSize = 17.6
	f.app.Selection.Select(b)
	assert.Equal(t, "18px", f.app.Toolbar.Readout())
}

func TestDeselect(t *testing.T) {
	f := newFixture(t)
	f.app.Selection.Deselect()
	assert.Nil(t, f.app.Selection.Current())

	b := f.block(t, "tuesday")
	f.app.Selection.Select(b)
	f.app.Settle()
	require.True(t, f.app.Toolbar.Visible())

	f.app.Selection.Deselect()
	assert.False(t, b.Selected)
	assert.Nil(t, f.app.Selection.Current())
	assert.False(t, f.app.Toolbar.Visible())

	f.app.Settle()
	assert.False(t, f.app.Toolbar.Visible())
}
