package editor

import (
	"math"

	"github.com/ByLCY/rosterboard/layout"
)

// DragController moves a block by its drag handle. Positions are clamped so
// the block always stays inside the surface.
type DragController struct {
	mode      *Interaction
	mapper    CoordinateMapper
	surface   *layout.Surface
	selection *SelectionModel
	toolbar   *Toolbar
	settler   *Settler

	start     Point
	startLeft float64
	startTop  float64
}

// Begin starts dragging b from pointer position p. It reports false when
// another interaction is active.
func (d *DragController) Begin(b *layout.Block, p Point) bool {
	if !d.mode.enter(Dragging, b) {
		return false
	}
	d.start = p
	d.startLeft, d.startTop = b.Left, b.Top
	d.selection.Select(b)
	b.Dragging = true
	d.toolbar.Hide()
	return true
}

// Continue moves the dragged block to follow p. Ignored unless dragging.
func (d *DragController) Continue(p Point) {
	b, ok := d.mode.active(Dragging)
	if !ok {
		return
	}
	dx, dy := d.mapper.ScaleDelta(p.X-d.start.X, p.Y-d.start.Y)
	b.Left = clampOrigin(d.startLeft+dx, d.surface.Width-b.Width)
	b.Top = clampOrigin(d.startTop+dy, d.surface.Height-b.Height())
}

// End finishes the drag and schedules the toolbar to follow the block.
func (d *DragController) End() {
	b, ok := d.mode.leave(Dragging)
	if !ok {
		return
	}
	b.Dragging = false
	d.settler.Schedule()
}

// clampOrigin 将 v 限制在 [0, hi]；hi 为负时结果为 0。
func clampOrigin(v, hi float64) float64 {
	return math.Max(0, math.Min(v, hi))
}
