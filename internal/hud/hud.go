// Package hud draws the editor status overlay: FPS plus build statistics.
package hud

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// refresh the text every N frames to limit per-frame allocations
	updateInterval = 30
)

// Stats is the per-frame readout the editor hands to Draw.
type Stats struct {
	Mode         string
	Parts        int
	HistoryIndex int
	HistoryLen   int
	AIBusy       bool
}

// HUD holds overlay toggles. All overlays are off by default.
type HUD struct {
	ShowFPS    bool
	ShowStats  bool
	frameCount uint32
	fpsText    string
	statsText  string
}

// New returns a HUD with all overlays hidden.
func New() *HUD {
	return &HUD{}
}

// Draw renders enabled overlays at the top-right. Call after the 3D scene in
// the draw loop.
func (h *HUD) Draw(stats Stats) {
	h.frameCount++
	update := h.frameCount%updateInterval == 0 || h.fpsText == ""

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if h.ShowFPS {
		if update {
			h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(h.fpsText, fontSize)
		rl.DrawText(h.fpsText, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if h.ShowStats {
		if update || h.statsText == "" {
			h.statsText = fmt.Sprintf("%s | parts %d | undo %d/%d",
				stats.Mode, stats.Parts, stats.HistoryIndex+1, stats.HistoryLen)
		}
		w := rl.MeasureText(h.statsText, fontSize)
		rl.DrawText(h.statsText, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if stats.AIBusy {
		text := "generating..."
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Yellow)
	}
}
