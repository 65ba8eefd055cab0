// Package editor is the interactive edit session: it routes pointer and key
// events through the placement resolver into the build store, snapshots every
// committed edit into history, and owns the edit/simulate mode switch.
package editor

import (
	"context"
	"flag"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"brickforge/internal/aigen"
	"brickforge/internal/build"
	"brickforge/internal/catalog"
	"brickforge/internal/commands"
	"brickforge/internal/console"
	"brickforge/internal/engineconfig"
	"brickforge/internal/geometry"
	"brickforge/internal/grid"
	"brickforge/internal/history"
	"brickforge/internal/hud"
	"brickforge/internal/logger"
	"brickforge/internal/persist"
	"brickforge/internal/scene"
	"brickforge/internal/sim"
)

// Tool selects what a left click does in edit mode.
type Tool int

const (
	ToolPlace Tool = iota
	ToolPaint
	ToolDelete
)

// Mode is the editor's top-level state.
type Mode int

const (
	ModeEdit Mode = iota
	ModeSimulate
)

const ghostOpacity = 0.45

// Editor owns the edit session. All mutation happens synchronously on the
// frame loop; the only asynchronous input is the AI future, polled per frame.
type Editor struct {
	cat     *catalog.Catalog
	store   *build.Store
	hist    *history.History
	shapes  *geometry.Cache
	scn     *scene.Scene
	adapter *aigen.Adapter
	log     *logger.Logger
	lib     *persist.Library // may be nil (library unavailable)
	prefs   engineconfig.Prefs
	cons    *console.Console
	reg     *commands.Registry
	overlay *hud.HUD

	ghost    grid.Ghost
	tool     Tool
	mode     Mode
	partIdx  int
	colorIdx int
	rotation int

	// Simulation session, rebuilt on every entry and discarded on exit.
	// world.Bodies[0] is the ground; simParts[i] pairs with Bodies[i+1].
	world    *sim.World
	simParts []build.Part
}

// New wires up an edit session. lib may be nil when the build library could
// not be opened; library commands then report that instead of crashing.
func New(cat *catalog.Catalog, adapter *aigen.Adapter, lib *persist.Library, log *logger.Logger, prefs engineconfig.Prefs) *Editor {
	e := &Editor{
		cat:     cat,
		store:   build.NewStore(),
		hist:    history.New(prefs.HistoryLimit),
		shapes:  geometry.NewCache(),
		scn:     scene.New(),
		adapter: adapter,
		log:     log,
		lib:     lib,
		prefs:   prefs,
		reg:     commands.NewRegistry(),
		overlay: hud.New(),
	}
	e.scn.SetGridVisible(prefs.GridVisible)
	e.overlay.ShowFPS = prefs.ShowFPS
	e.overlay.ShowStats = prefs.ShowStats
	e.cons = console.New(log, e.reg)
	e.cons.OnPrompt = e.submitPrompt
	e.registerCommands()
	log.Info("ready. ESC opens the console; type a build request or cmd <command>.")
	return e
}

// Parts returns the current build (for autosave on exit).
func (e *Editor) Parts() []build.Part { return e.store.Parts() }

// Prefs returns the current preferences (persisted by the caller on exit).
func (e *Editor) Prefs() engineconfig.Prefs { return e.prefs }

// Update advances the session one frame.
func (e *Editor) Update() {
	e.cons.Update()
	e.pollAI()

	if e.cons.IsOpen() {
		e.ghost.Hide()
		return
	}
	e.scn.Update()

	if e.mode == ModeSimulate {
		if rl.IsKeyPressed(rl.KeyTab) {
			e.exitSimulation()
			return
		}
		e.world.Step(rl.GetFrameTime())
		return
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		e.enterSimulation()
		return
	}
	e.handleEditKeys()
	e.handlePointer()
}

func (e *Editor) handleEditKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		e.tool = ToolPlace
	case rl.IsKeyPressed(rl.KeyTwo):
		e.tool = ToolPaint
	case rl.IsKeyPressed(rl.KeyThree):
		e.tool = ToolDelete
	}
	if rl.IsKeyPressed(rl.KeyR) {
		e.rotation = (e.rotation + 1) % 4
	}
	if rl.IsKeyPressed(rl.KeyC) {
		e.colorIdx = (e.colorIdx + 1) % len(e.cat.Colors())
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		e.partIdx = (e.partIdx + 1) % len(e.cat.Parts())
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		e.partIdx = (e.partIdx + len(e.cat.Parts()) - 1) % len(e.cat.Parts())
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl && rl.IsKeyPressed(rl.KeyZ) {
		e.undo()
	}
	if ctrl && rl.IsKeyPressed(rl.KeyY) {
		e.redo()
	}
}

func (e *Editor) handlePointer() {
	hit, ok := e.scn.Pick(e.store.Parts(), e.cat)
	if !ok {
		// Pointer left the build surface: clear visibility, keep the last
		// resolved position for a smooth re-entry.
		e.ghost.Hide()
		return
	}

	def := e.selectedDef()
	color := e.selectedColor()

	switch e.tool {
	case ToolPlace:
		pos := grid.Resolve(hit, def.Width, def.Depth, e.rotation)
		e.ghost.Set(def.ID, pos, e.rotation, color.ID)
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			e.store.Place(def, pos, e.rotation, color.ID)
			e.commit()
		}
	case ToolPaint:
		e.ghost.Hide()
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && hit.PartID != "" {
			e.store.Recolor(hit.PartID, color.ID)
			e.commit()
		}
	case ToolDelete:
		e.ghost.Hide()
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && hit.PartID != "" {
			e.store.RemoveByID(hit.PartID)
			e.commit()
		}
	}
}

// commit snapshots the store after a successful mutation.
func (e *Editor) commit() {
	e.hist.Push(e.store.Parts())
}

func (e *Editor) undo() {
	if state, ok := e.hist.Undo(); ok {
		e.store.Replace(state)
	}
}

func (e *Editor) redo() {
	if state, ok := e.hist.Redo(); ok {
		e.store.Replace(state)
	}
}

func (e *Editor) selectedDef() catalog.PartDefinition {
	parts := e.cat.Parts()
	return parts[e.partIdx%len(parts)]
}

func (e *Editor) selectedColor() catalog.Color {
	colors := e.cat.Colors()
	return colors[e.colorIdx%len(colors)]
}

// enterSimulation hands the build to physics. Edit state is left untouched;
// the bodies are a one-way copy.
func (e *Editor) enterSimulation() {
	parts := e.store.Parts()
	e.simParts = e.simParts[:0]
	for _, p := range parts {
		if _, ok := e.cat.Find(p.TypeID); ok {
			e.simParts = append(e.simParts, p)
		}
	}
	e.world = sim.NewSession(parts, e.cat)
	e.mode = ModeSimulate
	e.ghost.Hide()
	e.log.Info("simulation started (Tab to stop)")
}

// exitSimulation discards physics output; the edit-mode build resumes exactly
// as it was before the simulation started.
func (e *Editor) exitSimulation() {
	e.world = nil
	e.simParts = nil
	e.mode = ModeEdit
	e.log.Info("simulation stopped")
}

func (e *Editor) submitPrompt(line string) {
	if err := e.adapter.Start(context.Background(), line); err != nil {
		e.log.Error("a generation request is already running")
		return
	}
	e.log.Info("generating...")
}

// pollAI merges a completed AI result into the build on the frame loop.
func (e *Editor) pollAI() {
	res, ok := e.adapter.Poll()
	if !ok {
		return
	}
	if res.Notice != "" {
		e.log.Error(res.Notice)
		return
	}
	if len(res.Parts) == 0 {
		e.log.Info("the model returned no parts")
		return
	}
	n := e.store.BulkAppend(res.Parts)
	if n > 0 {
		e.commit()
	}
	if res.Dropped > 0 {
		e.log.Infof("added %d parts (%d invalid records dropped)", n, res.Dropped)
	} else {
		e.log.Infof("added %d parts", n)
	}
}

// Draw renders the frame: build (or simulation bodies), ghost, overlays.
func (e *Editor) Draw() {
	e.scn.Begin()
	if e.mode == ModeSimulate {
		e.drawSimulation()
	} else {
		e.drawBuild()
	}
	e.scn.End()

	mode := "edit"
	if e.mode == ModeSimulate {
		mode = "simulate"
	}
	e.overlay.Draw(hud.Stats{
		Mode:         mode,
		Parts:        e.store.Len(),
		HistoryIndex: e.hist.Index(),
		HistoryLen:   e.hist.Len(),
		AIBusy:       e.adapter.Busy(),
	})
	e.cons.Draw()
}

func (e *Editor) drawBuild() {
	for _, p := range e.store.Parts() {
		def, ok := e.cat.Find(p.TypeID)
		if !ok {
			continue // dangling reference: skip, never crash
		}
		shape := e.shapes.Get(def, e.colorOf(p.Color), 1)
		e.scn.DrawShape(shape, p.Position, p.Rotation)
	}
	if e.tool == ToolPlace && e.ghost.Visible {
		def := e.selectedDef()
		shape := e.shapes.Get(def, e.colorOf(e.ghost.ColorID), ghostOpacity)
		e.scn.DrawShape(shape, e.ghost.Position, e.ghost.Rotation)
	}
}

// drawSimulation renders parts at their body transforms. Body positions are
// centers; DrawShape expects the floor-aligned position, so subtract half the
// part height.
func (e *Editor) drawSimulation() {
	for i, p := range e.simParts {
		def, ok := e.cat.Find(p.TypeID)
		if !ok {
			continue
		}
		body := e.world.Bodies[i+1]
		pos := [3]float32{
			body.Position[0],
			body.Position[1] - def.HeightUnits*grid.BrickHeight/2,
			body.Position[2],
		}
		shape := e.shapes.Get(def, e.colorOf(p.Color), 1)
		e.scn.DrawShape(shape, pos, p.Rotation)
	}
}

func (e *Editor) colorOf(id string) [4]uint8 {
	if c, ok := e.cat.FindColor(id); ok {
		return c.RGBA
	}
	return e.cat.FirstColor().RGBA
}

// registerCommands wires the console command set.
func (e *Editor) registerCommands() {
	saveFS := flag.NewFlagSet("save", flag.ContinueOnError)
	saveName := saveFS.String("name", "", "build name in the library")
	e.reg.Register("save", saveFS, func() error {
		if e.lib == nil {
			return fmt.Errorf("build library unavailable")
		}
		name := *saveName
		if name == "" {
			name = e.prefs.AutosaveBuild
		}
		if err := e.lib.Save(name, e.store.Parts()); err != nil {
			return err
		}
		e.log.Infof("saved %q (%d parts)", name, e.store.Len())
		return nil
	})

	loadFS := flag.NewFlagSet("load", flag.ContinueOnError)
	loadName := loadFS.String("name", "", "build name in the library")
	e.reg.Register("load", loadFS, func() error {
		if e.lib == nil {
			return fmt.Errorf("build library unavailable")
		}
		name := *loadName
		if name == "" {
			name = e.prefs.AutosaveBuild
		}
		parts, dropped, err := e.lib.Load(name)
		if err != nil {
			return err
		}
		e.store.Replace(parts)
		e.commit()
		if dropped > 0 {
			e.log.Infof("loaded %q with %d invalid records dropped", name, dropped)
		} else {
			e.log.Infof("loaded %q (%d parts)", name, len(parts))
		}
		return nil
	})

	exportFS := flag.NewFlagSet("export", flag.ContinueOnError)
	exportPath := exportFS.String("path", "build.json", "output file")
	e.reg.Register("export", exportFS, func() error {
		if err := persist.SaveFile(*exportPath, e.store.Parts()); err != nil {
			return err
		}
		e.log.Infof("exported %d parts to %s", e.store.Len(), *exportPath)
		return nil
	})

	importFS := flag.NewFlagSet("import", flag.ContinueOnError)
	importPath := importFS.String("path", "build.json", "input file")
	e.reg.Register("import", importFS, func() error {
		parts, dropped, err := persist.LoadFile(*importPath)
		if err != nil {
			return err
		}
		n := e.store.BulkAppend(parts)
		if n > 0 {
			e.commit()
		}
		e.log.Infof("imported %d parts (%d dropped)", n, dropped)
		return nil
	})

	clearFS := flag.NewFlagSet("clear", flag.ContinueOnError)
	clearYes := clearFS.Bool("yes", false, "confirm clearing the build")
	e.reg.Register("clear", clearFS, func() error {
		if !*clearYes {
			return fmt.Errorf("clearing removes every part; run cmd clear -yes to confirm")
		}
		*clearYes = false
		e.store.Clear()
		e.commit()
		e.log.Info("cleared")
		return nil
	})

	e.reg.Register("undo", flag.NewFlagSet("undo", flag.ContinueOnError), func() error {
		e.undo()
		return nil
	})
	e.reg.Register("redo", flag.NewFlagSet("redo", flag.ContinueOnError), func() error {
		e.redo()
		return nil
	})

	e.reg.Register("sim", flag.NewFlagSet("sim", flag.ContinueOnError), func() error {
		if e.mode == ModeSimulate {
			e.exitSimulation()
		} else {
			e.enterSimulation()
		}
		return nil
	})

	gridFS := flag.NewFlagSet("grid", flag.ContinueOnError)
	gridShow := gridFS.Bool("show", false, "show the grid")
	gridHide := gridFS.Bool("hide", false, "hide the grid")
	e.reg.Register("grid", gridFS, func() error {
		switch {
		case *gridShow:
			e.prefs.GridVisible = true
		case *gridHide:
			e.prefs.GridVisible = false
		}
		*gridShow, *gridHide = false, false
		e.scn.SetGridVisible(e.prefs.GridVisible)
		return nil
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fpsShow := fpsFS.Bool("show", false, "show FPS")
	fpsHide := fpsFS.Bool("hide", false, "hide FPS")
	e.reg.Register("fps", fpsFS, func() error {
		switch {
		case *fpsShow:
			e.prefs.ShowFPS = true
		case *fpsHide:
			e.prefs.ShowFPS = false
		}
		*fpsShow, *fpsHide = false, false
		e.overlay.ShowFPS = e.prefs.ShowFPS
		return nil
	})

	statsFS := flag.NewFlagSet("stats", flag.ContinueOnError)
	statsShow := statsFS.Bool("show", false, "show build stats")
	statsHide := statsFS.Bool("hide", false, "hide build stats")
	e.reg.Register("stats", statsFS, func() error {
		switch {
		case *statsShow:
			e.prefs.ShowStats = true
		case *statsHide:
			e.prefs.ShowStats = false
		}
		*statsShow, *statsHide = false, false
		e.overlay.ShowStats = e.prefs.ShowStats
		return nil
	})

	modelFS := flag.NewFlagSet("model", flag.ContinueOnError)
	e.reg.Register("model", modelFS, func() error {
		args := modelFS.Args()
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd model <model-name>")
		}
		e.prefs.AIModel = args[0]
		e.log.Infof("AI model set to %s", args[0])
		return nil
	})

	e.reg.Register("help", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		e.log.Info("commands: " + strings.Join(e.reg.Names(), ", "))
		return nil
	})
}
