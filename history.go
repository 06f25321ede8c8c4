package mandel

// History holds the undo and redo stacks of viewport snapshots.
//
// Callers pass the current viewport into every operation; History never
// stores it except by pushing it onto a stack. The zero History is empty,
// unlimited and ready to use. History is not safe for concurrent use; the
// Controller guards it with its own lock.
type History struct {
	undo  []Viewport
	redo  []Viewport
	limit int
}

// NewHistory returns a History keeping at most limit undo entries. A limit
// of zero or less means unlimited.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 0)}
}

// Record saves current before a direct viewport change (zoom, reset, set)
// and discards the redo stack. When the undo stack exceeds the limit its
// oldest entry is dropped.
func (h *History) Record(current Viewport) {
	h.undo = append(h.undo, current)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = h.redo[:0]
}

// Undo pushes current onto the redo stack and returns the most recent undo
// entry. It reports false and changes nothing when there is nothing to undo.
func (h *History) Undo(current Viewport) (Viewport, bool) {
	v, ok := pop(&h.undo)
	if !ok {
		return current, false
	}
	h.redo = append(h.redo, current)
	return v, true
}

// Redo pushes current onto the undo stack and returns the most recently
// undone viewport. It reports false and changes nothing when there is nothing
// to redo.
func (h *History) Redo(current Viewport) (Viewport, bool) {
	v, ok := pop(&h.redo)
	if !ok {
		return current, false
	}
	h.undo = append(h.undo, current)
	return v, true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoStack returns a copy of the undo stack, oldest first.
func (h *History) UndoStack() []Viewport { return append([]Viewport(nil), h.undo...) }

// RedoStack returns a copy of the redo stack, oldest first.
func (h *History) RedoStack() []Viewport { return append([]Viewport(nil), h.redo...) }

func pop(s *[]Viewport) (Viewport, bool) {
	n := len(*s)
	if n == 0 {
		return Viewport{}, false
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}
