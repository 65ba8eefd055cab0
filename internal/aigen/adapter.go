// Package aigen turns a free-text prompt into a validated batch of placement
// records via the remote generation collaborator. Failures never reach build
// state: a transport or parse fault yields an empty result with a notice, and
// individually bad records are repaired or dropped.
package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"brickforge/internal/build"
	"brickforge/internal/catalog"
	"brickforge/internal/llm"
)

// ErrBusy is returned by Start while a previous request is still in flight.
// There is no queueing and no user-initiated abort; the request completes or
// fails on its own.
var ErrBusy = errors.New("aigen: generation already in flight")

// Record is one placement record in the response contract.
type Record struct {
	PartID   string  `json:"partId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation int     `json:"rotation"`
	ColorID  string  `json:"colorId"`
}

// Result is the outcome of one generation request. On failure Parts is nil and
// Notice carries the one-shot user-visible message.
type Result struct {
	Parts   []build.Part
	Dropped int
	Notice  string
}

// Adapter is the single-slot future for AI imports: one request in flight,
// guarded by a busy flag, result delivered through Poll on the frame loop.
type Adapter struct {
	client llm.Client
	cat    *catalog.Catalog
	model  func() string

	busy    atomic.Bool
	results chan Result
}

// New returns an adapter using the given client and model getter.
func New(client llm.Client, cat *catalog.Catalog, model func() string) *Adapter {
	return &Adapter{
		client:  client,
		cat:     cat,
		model:   model,
		results: make(chan Result, 1),
	}
}

// Busy reports whether a request is in flight. The triggering UI affordance
// must be disabled while true.
func (a *Adapter) Busy() bool { return a.busy.Load() }

// Start submits a generation request. Returns ErrBusy if one is already in
// flight. The result is delivered via Poll; Start itself never fails on
// transport errors.
func (a *Adapter) Start(ctx context.Context, prompt string) error {
	if !a.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		res := a.run(ctx, prompt)
		// Clear busy before delivering: a caller that saw Poll succeed can
		// Start a new request without observing a stale busy flag.
		a.busy.Store(false)
		a.results <- res
	}()
	return nil
}

// Poll returns a completed result, if any. Call once per frame; the build
// state mutation happens on the caller's (single-threaded) event loop.
func (a *Adapter) Poll() (Result, bool) {
	select {
	case r := <-a.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Generate runs one request synchronously (headless CLI path). The busy guard
// still applies.
func (a *Adapter) Generate(ctx context.Context, prompt string) (Result, error) {
	if !a.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer a.busy.Store(false)
	return a.run(ctx, prompt), nil
}

func (a *Adapter) run(ctx context.Context, prompt string) Result {
	model := a.model()
	if model == "" {
		model = "gpt-4o-mini"
	}
	reply, err := a.client.Complete(ctx, model, buildSystemPrompt(a.cat), prompt)
	if err != nil {
		return Result{Notice: fmt.Sprintf("AI generation failed: %v", err)}
	}
	parts, dropped, err := a.Convert(reply)
	if err != nil {
		return Result{Notice: fmt.Sprintf("AI response invalid: %v", err)}
	}
	return Result{Parts: parts, Dropped: dropped}
}

// Convert parses a model reply into placement records and validates each one
// independently: unknown part ids fall back to the first catalog entry,
// unknown color ids to the first palette entry, missing rotation to 0.
// Records that fail the schema are dropped, never the whole batch.
func (a *Adapter) Convert(reply string) (parts []build.Part, dropped int, err error) {
	raw, err := extractArray(reply)
	if err != nil {
		return nil, 0, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, err
	}
	for _, item := range items {
		rec, ok := decodeRecord(item)
		if !ok {
			dropped++
			continue
		}
		if _, found := a.cat.Find(rec.PartID); !found {
			rec.PartID = a.cat.FirstPart().ID
		}
		if _, found := a.cat.FindColor(rec.ColorID); !found {
			rec.ColorID = a.cat.FirstColor().ID
		}
		y := rec.Y
		if y < 0 {
			y = 0
		}
		parts = append(parts, build.Part{
			TypeID:   rec.PartID,
			Position: [3]float32{float32(rec.X), float32(y), float32(rec.Z)},
			Rotation: rec.Rotation,
			Color:    rec.ColorID,
		})
	}
	return parts, dropped, nil
}

var codeFence = regexp.MustCompile("^```\\w*\\n?")

// extractArray finds the first complete JSON array in the reply, tolerating
// markdown fences and prose around it.
func extractArray(reply string) ([]byte, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = codeFence.ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	start := strings.Index(reply, "[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON array in response")
	}
	reply = reply[start:]
	depth := 0
	inString := false
	escaped := false
	for i, c := range reply {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return []byte(reply[:i+1]), nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced JSON brackets")
}
