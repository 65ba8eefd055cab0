// Package build owns the ordered set of currently placed parts. Every
// committed edit replaces the whole sequence, which keeps history snapshots
// trivially correct.
package build

import (
	"github.com/google/uuid"

	"brickforge/internal/catalog"
)

// Part is one placed part. TypeID is a weak reference into the catalog,
// resolved by lookup at render time; a dangling reference is skipped, never an
// error. Position is in grid units: X/Z snapped, Y continuous but >= 0.
type Part struct {
	ID       string
	TypeID   string
	Position [3]float32
	Rotation int
	Color    string
}

// Valid reports whether a part record satisfies the placement invariants.
// Invalid records are dropped on import rather than corrupting the batch.
func Valid(p Part) bool {
	return p.TypeID != "" &&
		p.Rotation >= 0 && p.Rotation <= 3 &&
		p.Position[1] >= 0
}

// Store is the source of truth for the current build. It also maintains the
// render-handle side table: the scene draws and picks by handle, and the store
// maps handles back to part ids without any scene-graph traversal.
type Store struct {
	parts      []Part
	handles    map[int]string // render handle -> part id
	handleByID map[string]int
	nextHandle int
}

// NewStore returns an empty build.
func NewStore() *Store {
	return &Store{
		handles:    make(map[int]string),
		handleByID: make(map[string]int),
		nextHandle: 1,
	}
}

// Parts returns a copy of the current sequence in insertion order.
func (s *Store) Parts() []Part {
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// Len returns the number of placed parts.
func (s *Store) Len() int { return len(s.parts) }

// Place appends a new part with a freshly generated id and returns it.
// Rotation is normalized into {0..3}; Y below ground is floored at 0.
func (s *Store) Place(def catalog.PartDefinition, pos [3]float32, rotation int, colorID string) Part {
	rotation = ((rotation % 4) + 4) % 4
	if pos[1] < 0 {
		pos[1] = 0
	}
	p := Part{
		ID:       uuid.NewString(),
		TypeID:   def.ID,
		Position: pos,
		Rotation: rotation,
		Color:    colorID,
	}
	s.parts = append(s.parts, p)
	s.register(p.ID)
	return p
}

// RemoveByID filters out the matching part. Absent id is a no-op.
func (s *Store) RemoveByID(id string) {
	kept := s.parts[:0]
	for _, p := range s.parts {
		if p.ID == id {
			s.unregister(id)
			continue
		}
		kept = append(kept, p)
	}
	s.parts = kept
}

// Recolor replaces the color of the matching part. Absent id is a no-op.
func (s *Store) Recolor(id, colorID string) {
	for i := range s.parts {
		if s.parts[i].ID == id {
			s.parts[i].Color = colorID
			return
		}
	}
}

// BulkAppend appends a batch (file import, AI import). Records that violate
// the placement invariants are dropped individually; parts without an id get
// a fresh one.
func (s *Store) BulkAppend(parts []Part) (appended int) {
	for _, p := range parts {
		if !Valid(p) {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.parts = append(s.parts, p)
		s.register(p.ID)
		appended++
	}
	return appended
}

// Clear replaces the build with the empty sequence. Confirmation is the
// caller's concern.
func (s *Store) Clear() {
	s.parts = nil
	s.handles = make(map[int]string)
	s.handleByID = make(map[string]int)
}

// Replace swaps in a full snapshot (undo/redo restore). Handles are reissued
// for parts not currently tracked.
func (s *Store) Replace(parts []Part) {
	s.parts = make([]Part, len(parts))
	copy(s.parts, parts)
	live := make(map[string]bool, len(parts))
	for _, p := range s.parts {
		live[p.ID] = true
		if _, ok := s.handleByID[p.ID]; !ok {
			s.register(p.ID)
		}
	}
	for id := range s.handleByID {
		if !live[id] {
			s.unregister(id)
		}
	}
}

// PartForHandle resolves a render handle to the part it draws.
func (s *Store) PartForHandle(h int) (Part, bool) {
	id, ok := s.handles[h]
	if !ok {
		return Part{}, false
	}
	for _, p := range s.parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// HandleOf returns the render handle for a part id.
func (s *Store) HandleOf(id string) (int, bool) {
	h, ok := s.handleByID[id]
	return h, ok
}

func (s *Store) register(id string) {
	h := s.nextHandle
	s.nextHandle++
	s.handles[h] = id
	s.handleByID[id] = h
}

func (s *Store) unregister(id string) {
	if h, ok := s.handleByID[id]; ok {
		delete(s.handles, h)
		delete(s.handleByID, id)
	}
}
