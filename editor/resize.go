package editor

import (
	"math"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
)

// ResizeController resizes a block by its bottom-right corner. Width is a hard
// width; height is written as min-height so content can still grow past it.
type ResizeController struct {
	cfg       config.Interaction
	mode      *Interaction
	mapper    CoordinateMapper
	selection *SelectionModel
	toolbar   *Toolbar
	settler   *Settler

	start       Point
	startWidth  float64
	startHeight float64
}

// Begin starts resizing b from pointer position p.
func (r *ResizeController) Begin(b *layout.Block, p Point) bool {
	if !r.mode.enter(Resizing, b) {
		return false
	}
	r.start = p
	r.startWidth, r.startHeight = b.Width, b.Height()
	r.selection.Select(b)
	r.toolbar.Hide()
	return true
}

// Continue applies the mapped pointer delta, floored at the minimum size.
func (r *ResizeController) Continue(p Point) {
	b, ok := r.mode.active(Resizing)
	if !ok {
		return
	}
	dx, dy := r.mapper.ScaleDelta(p.X-r.start.X, p.Y-r.start.Y)
	b.Width = math.Max(r.cfg.MinWidth, r.startWidth+dx)
	b.MinHeight = math.Max(r.cfg.MinHeight, r.startHeight+dy)
}

// End finishes the resize.
func (r *ResizeController) End() {
	if _, ok := r.mode.leave(Resizing); ok {
		r.settler.Schedule()
	}
}
