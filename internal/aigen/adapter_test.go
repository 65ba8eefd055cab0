package aigen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"brickforge/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	parts := []catalog.PartDefinition{
		{ID: "brick-1x1", Category: catalog.CategoryBasic, Width: 1, Depth: 1, HeightUnits: 1, Studs: true},
		{ID: "brick-2x4", Category: catalog.CategoryBasic, Width: 2, Depth: 4, HeightUnits: 1, Studs: true},
	}
	colors := []catalog.Color{
		{ID: "red", RGBA: [4]uint8{255, 0, 0, 255}},
		{ID: "blue", RGBA: [4]uint8{0, 0, 255, 255}},
	}
	c, err := catalog.New(parts, colors)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// stubClient returns a canned reply or error; blocking lets the busy-flag
// tests hold a request in flight.
type stubClient struct {
	reply   string
	err     error
	release chan struct{}
}

func (s *stubClient) Complete(ctx context.Context, model, sys, user string) (string, error) {
	if s.release != nil {
		<-s.release
	}
	return s.reply, s.err
}

func model() string { return "test-model" }

func TestConvertFallbackSubstitution(t *testing.T) {
	a := New(&stubClient{}, testCatalog(t), model)
	reply := `[
		{"partId":"no-such-part","x":0,"y":0,"z":0,"rotation":0,"colorId":"nope"},
		{"partId":"brick-2x4","x":1,"y":1.2,"z":-2,"rotation":3,"colorId":"blue"}
	]`
	parts, dropped, err := a.Convert(reply)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2 (never a dropped batch)", len(parts))
	}
	if parts[0].TypeID != "brick-1x1" || parts[0].Color != "red" {
		t.Fatalf("fallback substitution failed: %+v", parts[0])
	}
	if parts[1].TypeID != "brick-2x4" || parts[1].Color != "blue" || parts[1].Rotation != 3 {
		t.Fatalf("valid record mangled: %+v", parts[1])
	}
}

func TestConvertDropsMalformedRecords(t *testing.T) {
	a := New(&stubClient{}, testCatalog(t), model)
	reply := `[
		{"partId":"brick-1x1","x":0,"y":0,"z":0},
		{"partId":"brick-1x1","x":"zero","y":0,"z":0},
		{"partId":"brick-1x1","y":0,"z":0},
		{"partId":"brick-1x1","x":0,"y":0,"z":0,"rotation":9},
		17
	]`
	parts, dropped, err := a.Convert(reply)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
	if dropped != 4 {
		t.Fatalf("dropped = %d, want 4", dropped)
	}
	if parts[0].Rotation != 0 {
		t.Fatalf("missing rotation defaulted to %d, want 0", parts[0].Rotation)
	}
}

func TestConvertClampsNegativeY(t *testing.T) {
	a := New(&stubClient{}, testCatalog(t), model)
	parts, _, err := a.Convert(`[{"partId":"brick-1x1","x":0,"y":-3,"z":0}]`)
	if err != nil {
		t.Fatal(err)
	}
	if parts[0].Position[1] != 0 {
		t.Fatalf("Y = %v, want clamped to 0", parts[0].Position[1])
	}
}

func TestConvertToleratesFencesAndProse(t *testing.T) {
	a := New(&stubClient{}, testCatalog(t), model)
	reply := "Here you go:\n```json\n[{\"partId\":\"brick-1x1\",\"x\":0,\"y\":0,\"z\":0}]\n```\nEnjoy!"
	parts, _, err := a.Convert(reply)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
}

func TestConvertRejectsNonJSON(t *testing.T) {
	a := New(&stubClient{}, testCatalog(t), model)
	if _, _, err := a.Convert("I cannot help with that."); err == nil {
		t.Fatal("Convert accepted a reply with no array")
	}
}

func TestTransportFailureYieldsNoticeNotFault(t *testing.T) {
	a := New(&stubClient{err: errors.New("connection refused")}, testCatalog(t), model)
	res, err := a.Generate(context.Background(), "a house")
	if err != nil {
		t.Fatalf("Generate returned a fault: %v", err)
	}
	if res.Parts != nil {
		t.Fatal("failed generation produced parts")
	}
	if res.Notice == "" {
		t.Fatal("failed generation produced no notice")
	}
}

func TestBusyFlagBlocksReentrantStart(t *testing.T) {
	release := make(chan struct{})
	stub := &stubClient{reply: `[]`, release: release}
	a := New(stub, testCatalog(t), model)

	if err := a.Start(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}
	if !a.Busy() {
		t.Fatal("adapter not busy after Start")
	}
	if err := a.Start(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Start = %v, want ErrBusy", err)
	}
	close(release)

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := a.Poll(); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no result delivered")
		case <-time.After(time.Millisecond):
		}
	}
	// Busy clears before the result is delivered, so once Poll succeeds the
	// flag must already read false and a new request must be accepted.
	if a.Busy() {
		t.Fatal("adapter still busy after Poll delivered")
	}
	if err := a.Start(context.Background(), "third"); err != nil {
		t.Fatalf("Start after completion = %v", err)
	}
}

func TestSystemPromptEmbedsCatalog(t *testing.T) {
	cat := testCatalog(t)
	p := buildSystemPrompt(cat)
	for _, id := range cat.PartIDs() {
		if !strings.Contains(p, id) {
			t.Errorf("prompt missing part id %q", id)
		}
	}
	for _, id := range cat.ColorIDs() {
		if !strings.Contains(p, id) {
			t.Errorf("prompt missing color id %q", id)
		}
	}
}
