package history

import (
	"fmt"
	"testing"

	"brickforge/internal/build"
)

func onePart(id string) []build.Part {
	return []build.Part{{ID: id, TypeID: "brick-1x1", Position: [3]float32{0, 0, 0}, Color: "red"}}
}

func TestUndoAfterSinglePlace(t *testing.T) {
	h := New(0)
	h.Push(onePart("a"))
	state, ok := h.Undo()
	if !ok {
		t.Fatal("Undo refused after one push")
	}
	if len(state) != 0 {
		t.Fatalf("state after undo = %d parts, want empty", len(state))
	}
	if h.Index() != -1 {
		t.Fatalf("index = %d, want -1 sentinel", h.Index())
	}
	restored, ok := h.Redo()
	if !ok {
		t.Fatal("Redo refused at sentinel with a recorded future")
	}
	if len(restored) != 1 || restored[0].ID != "a" {
		t.Fatalf("redo restored %+v", restored)
	}
}

func TestUndoAtSentinelIsNoop(t *testing.T) {
	h := New(0)
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo succeeded on empty history")
	}
	h.Push(onePart("a"))
	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo succeeded past the sentinel")
	}
}

func TestRedoPastEndIsNoop(t *testing.T) {
	h := New(0)
	h.Push(onePart("a"))
	if _, ok := h.Redo(); ok {
		t.Fatal("Redo succeeded at the end of history")
	}
}

func TestPushDiscardsRedoBranch(t *testing.T) {
	h := New(0)
	h.Push(onePart("a"))
	h.Push(append(onePart("a"), onePart("b")...))
	h.Undo()
	h.Push(append(onePart("a"), onePart("c")...))
	if h.CanRedo() {
		t.Fatal("redo branch survived a new commit")
	}
	state, ok := h.Undo()
	if !ok || len(state) != 1 || state[0].ID != "a" {
		t.Fatalf("undo after branch discard = %+v, %v", state, ok)
	}
	state, ok = h.Redo()
	if !ok || len(state) != 2 || state[1].ID != "c" {
		t.Fatalf("redo restored the discarded branch: %+v", state)
	}
}

func TestSnapshotsDoNotAliasCaller(t *testing.T) {
	h := New(0)
	live := onePart("a")
	h.Push(live)
	live[0].Color = "blue" // later store mutation must not rewrite history
	state, _ := h.Undo()
	_ = state
	restored, _ := h.Redo()
	if restored[0].Color != "red" {
		t.Fatalf("snapshot aliased live state: color = %q", restored[0].Color)
	}
}

func TestDepthCapEvictsOldest(t *testing.T) {
	h := New(4)
	for i := 0; i < 10; i++ {
		h.Push(onePart(fmt.Sprintf("p%d", i)))
	}
	if h.Len() != 4 {
		t.Fatalf("Len = %d, want 4", h.Len())
	}
	if h.Index() != 3 {
		t.Fatalf("index = %d, want 3", h.Index())
	}
	// Undo all the way down: the oldest reachable snapshot is p6.
	var last []build.Part
	for h.CanUndo() {
		last, _ = h.Undo()
	}
	_ = last
	state, ok := h.Redo()
	if !ok || state[0].ID != "p6" {
		t.Fatalf("deepest retained snapshot = %+v", state)
	}
}
