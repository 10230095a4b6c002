package editor

import "github.com/ByLCY/rosterboard/layout"

// SelectionModel tracks the single selected block.
type SelectionModel struct {
	current *layout.Block
	toolbar *Toolbar
	settler *Settler
}

// Current returns the selected block or nil.
func (m *SelectionModel) Current() *layout.Block { return m.current }

// Select makes b the only selected block. The toolbar is shown once layout
// settles so it is measured against the block's final bounds.
func (m *SelectionModel) Select(b *layout.Block) {
	if b == nil {
		return
	}
	if m.current != nil && m.current != b {
		m.current.Selected = false
	}
	m.current = b
	b.Selected = true
	m.toolbar.UpdateReadout(b)
	m.settler.Schedule()
}

// Deselect clears the selection and hides the toolbar.
func (m *SelectionModel) Deselect() {
	if m.current != nil {
		m.current.Selected = false
		m.current = nil
	}
	m.toolbar.Hide()
}
