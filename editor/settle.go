package editor

// Settler defers work until block geometry has settled after a mutation.
// Mutations call Schedule; the host calls Settle once it has laid out the
// surface again (the replay player does so after every pointer event).
type Settler struct {
	pending     bool
	subscribers []func()
}

// Subscribe registers fn to run on every settle.
func (s *Settler) Subscribe(fn func()) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

// Schedule marks layout as pending.
func (s *Settler) Schedule() { s.pending = true }

// Pending reports whether a settle is outstanding.
func (s *Settler) Pending() bool { return s.pending }

// Settle runs the subscribers if a settle was scheduled.
func (s *Settler) Settle() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	for _, fn := range s.subscribers {
		fn()
	}
	return true
}
