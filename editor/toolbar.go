package editor

import (
	"fmt"
	"math"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
)

// Button is a toolbar command.
type Button string

const (
	ButtonMinus Button = "minus"
	ButtonPlus  Button = "plus"
	ButtonBold  Button = "bold"
	ButtonClose Button = "close"
)

// Buttons lists the toolbar commands in panel order.
var Buttons = []Button{ButtonMinus, ButtonPlus, ButtonBold, ButtonClose}

// ParseButton maps a script word to a Button.
func ParseButton(name string) (Button, bool) {
	for _, b := range Buttons {
		if string(b) == name {
			return b, true
		}
	}
	return "", false
}

const emptyReadout = "—"

// Toolbar is the floating panel that follows the selected block. It has no
// state machine of its own: visibility and position are derived from the
// selection whenever layout settles.
type Toolbar struct {
	cfg     config.Toolbar
	visible bool
	rect    layout.Rect
	readout string
}

// NewToolbar creates a hidden toolbar.
func NewToolbar(cfg config.Toolbar) *Toolbar {
	return &Toolbar{cfg: cfg, readout: emptyReadout}
}

// Visible reports whether the panel is shown.
func (t *Toolbar) Visible() bool { return t.visible }

// Rect is the panel rectangle in viewport px.
func (t *Toolbar) Rect() layout.Rect { return t.rect }

// Readout is the font-size label, e.g. "18px".
func (t *Toolbar) Readout() string { return t.readout }

// Hide hides the panel and keeps its last position.
func (t *Toolbar) Hide() { t.visible = false }

// Reposition shows the panel anchored to b's on-screen bounds: above the block
// when there is room below the top margin, otherwise below it, and pulled back
// from the right viewport edge when it would overflow.
func (t *Toolbar) Reposition(s *layout.Surface, b *layout.Block) {
	if s == nil || b == nil {
		return
	}
	anchor := s.ToViewport(b.Bounds())
	top := anchor.Y - t.cfg.Height - t.cfg.GapAbove
	if top < t.cfg.MinTop {
		top = anchor.Bottom() + t.cfg.GapBelow
	}
	left := anchor.X
	if vw := s.Viewport.Width; vw > 0 && left+t.cfg.Width > vw {
		left = vw - t.cfg.Width - t.cfg.EdgeMargin
	}
	t.rect = layout.Rect{X: left, Y: top, Width: t.cfg.Width, Height: t.cfg.Height}
	t.visible = true
}

// UpdateReadout refreshes the font-size label from b.
func (t *Toolbar) UpdateReadout(b *layout.Block) {
	if b == nil {
		return
	}
	t.readout = fmt.Sprintf("%dpx", int(math.Round(b.EffectiveFontSize())))
}

// Contains reports whether the visible panel covers (x, y).
func (t *Toolbar) Contains(x, y float64) bool {
	return t.visible && t.rect.Contains(x, y)
}

// ButtonRect returns the hit area of btn. Buttons sit flush right, the readout
// takes the remaining space on the left.
func (t *Toolbar) ButtonRect(btn Button) (layout.Rect, bool) {
	for i, b := range Buttons {
		if b != btn {
			continue
		}
		x := t.rect.Right() - float64(len(Buttons)-i)*t.cfg.ButtonWidth
		return layout.Rect{X: x, Y: t.rect.Y, Width: t.cfg.ButtonWidth, Height: t.rect.Height}, true
	}
	return layout.Rect{}, false
}

// ButtonAt returns the button under (x, y), if any.
func (t *Toolbar) ButtonAt(x, y float64) (Button, bool) {
	if !t.Contains(x, y) {
		return "", false
	}
	for _, b := range Buttons {
		if r, _ := t.ButtonRect(b); r.Contains(x, y) {
			return b, true
		}
	}
	return "", false
}
