package editor

import "github.com/ByLCY/rosterboard/layout"

// EventKind is the type of a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer event in viewport px.
type PointerEvent struct {
	Kind EventKind
	X, Y float64
}

func (e PointerEvent) point() Point { return Point{X: e.X, Y: e.Y} }

// Target identifies what a pointer-down landed on.
type Target int

const (
	TargetOutside Target = iota
	TargetSurface
	TargetBlock
	TargetContent
	TargetDragHandle
	TargetResizeHandle
	TargetToolbar
	TargetToolbarButton
)

var targetNames = map[Target]string{
	TargetOutside:       "outside",
	TargetSurface:       "surface",
	TargetBlock:         "block",
	TargetContent:       "content",
	TargetDragHandle:    "drag-handle",
	TargetResizeHandle:  "resize-handle",
	TargetToolbar:       "toolbar",
	TargetToolbarButton: "toolbar-button",
}

func (t Target) String() string { return targetNames[t] }

// Hit is the result of a hit test.
type Hit struct {
	Target Target
	Block  *layout.Block
	Button Button
}

// Router dispatches pointer events. The target of a pointer-down is
// identified once, then the event goes to exactly one handler.
type Router struct {
	surface   *layout.Surface
	mode      *Interaction
	toolbar   *Toolbar
	selection *SelectionModel
	drag      *DragController
	resize    *ResizeController
	press     func(Button)
	busy      func() bool
}

// HitTest finds the topmost target under viewport point (x, y). The toolbar
// floats above everything; later blocks are drawn over earlier ones.
func (r *Router) HitTest(x, y float64) Hit {
	if r.toolbar.Contains(x, y) {
		if btn, ok := r.toolbar.ButtonAt(x, y); ok {
			return Hit{Target: TargetToolbarButton, Button: btn}
		}
		return Hit{Target: TargetToolbar}
	}
	if !r.surface.Rendered.Contains(x, y) {
		return Hit{Target: TargetOutside}
	}
	lx, ly := r.surface.ToLogical(x, y)
	for i := len(r.surface.Blocks) - 1; i >= 0; i-- {
		b := r.surface.Blocks[i]
		if !b.Bounds().Contains(lx, ly) {
			continue
		}
		switch {
		case !b.HandlesHidden && b.ResizeHandleRect().Contains(lx, ly):
			return Hit{Target: TargetResizeHandle, Block: b}
		case !b.HandlesHidden && b.DragHandleRect().Contains(lx, ly):
			return Hit{Target: TargetDragHandle, Block: b}
		case b.ContentRect().Contains(lx, ly):
			return Hit{Target: TargetContent, Block: b}
		default:
			return Hit{Target: TargetBlock, Block: b}
		}
	}
	return Hit{Target: TargetSurface}
}

// Dispatch routes ev and reports whether it was handled.
func (r *Router) Dispatch(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		return r.down(ev)
	case PointerMove:
		switch r.mode.Kind() {
		case Dragging:
			r.drag.Continue(ev.point())
		case Resizing:
			r.resize.Continue(ev.point())
		default:
			return false
		}
		return true
	case PointerUp:
		active := r.mode.Kind() != Idle
		r.drag.End()
		r.resize.End()
		return active
	}
	return false
}

func (r *Router) down(ev PointerEvent) bool {
	if r.busy != nil && r.busy() {
		return false
	}
	if r.mode.Kind() != Idle {
		return false
	}
	hit := r.HitTest(ev.X, ev.Y)
	switch hit.Target {
	case TargetToolbarButton:
		r.press(hit.Button)
	case TargetToolbar, TargetContent:
		// 工具栏与文本内部的点击不改变选中状态
	case TargetResizeHandle:
		return r.resize.Begin(hit.Block, ev.point())
	case TargetDragHandle:
		return r.drag.Begin(hit.Block, ev.point())
	case TargetBlock:
		r.selection.Select(hit.Block)
	case TargetSurface, TargetOutside:
		r.selection.Deselect()
	}
	return true
}
