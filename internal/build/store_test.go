package build

import (
	"testing"

	"brickforge/internal/catalog"
)

func def(id string) catalog.PartDefinition {
	return catalog.PartDefinition{ID: id, Category: catalog.CategoryBasic, Width: 2, Depth: 2, HeightUnits: 1}
}

func TestPlaceGeneratesUniqueIDs(t *testing.T) {
	s := NewStore()
	a := s.Place(def("brick-2x2"), [3]float32{0, 0, 0}, 0, "red")
	b := s.Place(def("brick-2x2"), [3]float32{2, 0, 0}, 0, "red")
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("ids not unique: %q vs %q", a.ID, b.ID)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestPlaceNormalizesInvariants(t *testing.T) {
	s := NewStore()
	p := s.Place(def("b"), [3]float32{0, -1, 0}, 5, "red")
	if p.Rotation != 1 {
		t.Errorf("rotation = %d, want 1", p.Rotation)
	}
	if p.Position[1] != 0 {
		t.Errorf("Y = %v, want 0", p.Position[1])
	}
}

func TestRemoveByID(t *testing.T) {
	s := NewStore()
	a := s.Place(def("b"), [3]float32{0, 0, 0}, 0, "red")
	b := s.Place(def("b"), [3]float32{1, 0, 0}, 0, "blue")
	s.RemoveByID(a.ID)
	parts := s.Parts()
	if len(parts) != 1 || parts[0].ID != b.ID {
		t.Fatalf("parts after remove = %+v", parts)
	}
	s.RemoveByID("absent") // no-op, not an error
	if s.Len() != 1 {
		t.Fatal("removing an absent id changed the build")
	}
}

func TestRecolor(t *testing.T) {
	s := NewStore()
	p := s.Place(def("b"), [3]float32{0, 0, 0}, 0, "red")
	s.Recolor(p.ID, "blue")
	if got := s.Parts()[0].Color; got != "blue" {
		t.Fatalf("color = %q, want blue", got)
	}
	s.Recolor("absent", "green") // no-op
}

func TestBulkAppendDropsInvalidRecords(t *testing.T) {
	s := NewStore()
	n := s.BulkAppend([]Part{
		{TypeID: "brick-1x1", Position: [3]float32{0, 0, 0}, Rotation: 0, Color: "red"},
		{TypeID: "brick-1x1", Position: [3]float32{0, -2, 0}, Rotation: 0, Color: "red"}, // below ground
		{TypeID: "brick-1x1", Position: [3]float32{0, 0, 0}, Rotation: 7, Color: "red"},  // bad rotation
		{TypeID: "", Position: [3]float32{0, 0, 0}, Rotation: 0, Color: "red"},           // no type
		{TypeID: "brick-1x1", Position: [3]float32{1, 0.4, 1}, Rotation: 3, Color: "blue"},
	})
	if n != 2 {
		t.Fatalf("appended %d, want 2", n)
	}
	for _, p := range s.Parts() {
		if p.ID == "" {
			t.Error("bulk-appended part has no id")
		}
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Place(def("b"), [3]float32{0, 0, 0}, 0, "red")
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear left parts behind")
	}
}

func TestHandleSideTable(t *testing.T) {
	s := NewStore()
	a := s.Place(def("b"), [3]float32{0, 0, 0}, 0, "red")
	h, ok := s.HandleOf(a.ID)
	if !ok {
		t.Fatal("no handle for placed part")
	}
	got, ok := s.PartForHandle(h)
	if !ok || got.ID != a.ID {
		t.Fatalf("PartForHandle(%d) = %+v, %v", h, got, ok)
	}
	s.RemoveByID(a.ID)
	if _, ok := s.PartForHandle(h); ok {
		t.Fatal("handle survived removal")
	}
}

func TestReplaceReissuesHandles(t *testing.T) {
	s := NewStore()
	a := s.Place(def("b"), [3]float32{0, 0, 0}, 0, "red")
	snapshot := s.Parts()
	s.Clear()
	s.Replace(snapshot)
	if s.Len() != 1 {
		t.Fatalf("Len after Replace = %d", s.Len())
	}
	if _, ok := s.HandleOf(a.ID); !ok {
		t.Fatal("restored part has no handle")
	}
}
