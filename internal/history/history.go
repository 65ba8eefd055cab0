// Package history implements the linear undo stack over build snapshots:
// commit appends, undo/redo move an index, and committing while behind the end
// discards the forward branch.
package history

import (
	"github.com/jinzhu/copier"

	"brickforge/internal/build"
)

// DefaultLimit caps the number of retained snapshots. The oldest snapshot is
// evicted first, so very long sessions lose only their deepest undo targets.
const DefaultLimit = 256

// sentinel index for "before the first snapshot": undoing past snapshot 0
// yields the empty build.
const initialIndex = -1

// History holds build snapshots plus the current index. Index initialIndex
// (-1) denotes the empty initial state.
type History struct {
	snaps [][]build.Part
	index int
	limit int
}

// New returns an empty history. limit <= 0 uses DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{index: initialIndex, limit: limit}
}

// Push records a new committed state. Any snapshots beyond the current index
// (the redo branch) are discarded first.
func (h *History) Push(state []build.Part) {
	h.snaps = h.snaps[:h.index+1]
	h.snaps = append(h.snaps, clone(state))
	h.index++
	if len(h.snaps) > h.limit {
		drop := len(h.snaps) - h.limit
		h.snaps = h.snaps[drop:]
		h.index -= drop
	}
}

// Undo steps back one snapshot and returns the state to restore. Stepping back
// from the first snapshot returns the empty build with the index at the
// sentinel; undo at the sentinel is a no-op with ok false.
func (h *History) Undo() (state []build.Part, ok bool) {
	if h.index <= initialIndex {
		return nil, false
	}
	h.index--
	if h.index == initialIndex {
		return []build.Part{}, true
	}
	return clone(h.snaps[h.index]), true
}

// Redo steps forward one snapshot. Redo past the last recorded snapshot is a
// no-op with ok false.
func (h *History) Redo() (state []build.Part, ok bool) {
	if h.index >= len(h.snaps)-1 {
		return nil, false
	}
	h.index++
	return clone(h.snaps[h.index]), true
}

// CanUndo reports whether Undo would change state.
func (h *History) CanUndo() bool { return h.index > initialIndex }

// CanRedo reports whether Redo would change state.
func (h *History) CanRedo() bool { return h.index < len(h.snaps)-1 }

// Index returns the current index (-1 = empty initial state).
func (h *History) Index() int { return h.index }

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.snaps) }

// clone deep-copies a snapshot so later store mutations never alias history.
func clone(state []build.Part) []build.Part {
	out := make([]build.Part, 0, len(state))
	if err := copier.CopyWithOption(&out, &state, copier.Option{DeepCopy: true}); err != nil {
		// Parts are plain value types; copier cannot fail on them. Fall back
		// to a shallow copy rather than losing the snapshot.
		out = append(out[:0], state...)
	}
	return out
}
