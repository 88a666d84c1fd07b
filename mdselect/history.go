package mdselect

// History is a bounded generic stack used to make selection expansion
// reversible: each expansion pushes the state it grew out of, and shrinking
// pops back to it. Oldest entries are discarded past maxSize.
type History[T any] struct {
	stack   []T
	maxSize int
}

// NewHistory creates a history with the given maximum size. A non-positive
// size means unbounded.
func NewHistory[T any](maxSize int) *History[T] {
	return &History[T]{maxSize: maxSize}
}

// Push records a state.
func (h *History[T]) Push(state T) {
	h.stack = append(h.stack, state)
	if h.maxSize > 0 && len(h.stack) > h.maxSize {
		// keep the most recent entries
		h.stack = h.stack[len(h.stack)-h.maxSize:]
	}
}

// Pop removes and returns the most recent state.
func (h *History[T]) Pop() (T, bool) {
	if len(h.stack) == 0 {
		var zero T
		return zero, false
	}
	last := len(h.stack) - 1
	state := h.stack[last]
	h.stack = h.stack[:last]
	return state, true
}

// Len returns the number of recorded states.
func (h *History[T]) Len() int { return len(h.stack) }

// Clear removes all recorded states.
func (h *History[T]) Clear() { h.stack = nil }
