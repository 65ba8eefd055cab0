// Package console is the text input bar at the bottom of the editor window.
// Lines starting with "cmd " run through the command registry; anything else
// is handed to OnPrompt as an AI generation request.
package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"brickforge/internal/commands"
	"brickforge/internal/logger"
)

const (
	barHeight  = 40
	prompt     = "> "
	fontSize   = 20
	padding    = 8
	// log lines drawn above the input bar when the console is open
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	scrollColor = rl.NewColor(24, 24, 24, 240)
)

// Console captures typing while open and draws the input bar plus recent log
// lines. ESC toggles it; while open the editor ignores build input.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	// OnPrompt receives non-command lines (AI build requests). Called on the
	// frame loop; the adapter's busy flag decides whether it is accepted.
	OnPrompt func(line string)
}

// New returns a closed console that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is capturing input.
func (c *Console) IsOpen() bool { return c.open }

// Update handles the ESC toggle and, when open, typing/backspace/enter.
// Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = !c.open
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.log.Info(line)
		if args, isCmd := commands.Parse(line); isCmd {
			if err := c.reg.Execute(args); err != nil {
				c.log.Error(err.Error())
			}
		} else if c.OnPrompt != nil {
			c.OnPrompt(line)
		}
	}
}

// Draw renders the input bar and scrollback when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - barHeight

	scrollHeight := maxLinesOnScreen * lineHeight
	scrollY := barY - scrollHeight
	if scrollY < 0 {
		scrollHeight = barY
		scrollY = 0
	}
	if scrollHeight > 0 {
		rl.DrawRectangle(0, int32(scrollY), int32(screenW), int32(scrollHeight), scrollColor)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := scrollY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), int32(fontSize), rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(barHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	rl.DrawText(prompt+c.inputBuf+"|", int32(padding), int32(barY+padding), int32(fontSize), rl.White)
}
