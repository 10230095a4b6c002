package editor

import "github.com/ByLCY/rosterboard/layout"

// ModeKind names the interaction the editor is in.
type ModeKind int

const (
	Idle ModeKind = iota
	Dragging
	Resizing
)

func (k ModeKind) String() string {
	switch k {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Interaction is the single mode shared by the drag and resize controllers.
// At most one block is being dragged or resized at a time.
type Interaction struct {
	kind  ModeKind
	block *layout.Block
}

// Kind returns the current mode.
func (m *Interaction) Kind() ModeKind { return m.kind }

// Block returns the block the active mode operates on, nil when idle.
func (m *Interaction) Block() *layout.Block { return m.block }

// enter 仅允许从 Idle 进入 Dragging/Resizing。
func (m *Interaction) enter(kind ModeKind, b *layout.Block) bool {
	if m.kind != Idle || kind == Idle || b == nil {
		return false
	}
	m.kind, m.block = kind, b
	return true
}

func (m *Interaction) active(kind ModeKind) (*layout.Block, bool) {
	if m.kind != kind || kind == Idle {
		return nil, false
	}
	return m.block, true
}

func (m *Interaction) leave(kind ModeKind) (*layout.Block, bool) {
	b, ok := m.active(kind)
	if ok {
		m.kind, m.block = Idle, nil
	}
	return b, ok
}
