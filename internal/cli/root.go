// Package cli defines the brickforge command tree. The bare command opens the
// interactive editor; subcommands cover headless generation and build-library
// maintenance.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brickforge/internal/aigen"
	"brickforge/internal/catalog"
	"brickforge/internal/editor"
	"brickforge/internal/engineconfig"
	"brickforge/internal/env"
	"brickforge/internal/graphics"
	"brickforge/internal/llm"
	"brickforge/internal/logger"
	"brickforge/internal/persist"
)

// LibraryPath is the sqlite build library, relative to the working directory.
const LibraryPath = "builds/library.db"

var rootCmd = &cobra.Command{
	Use:   "brickforge",
	Short: "Interactive 3D brick construction editor",
	Long: `brickforge opens a 3D editor for stud-grid brick building: place, paint
and delete parts, undo/redo, drop the build into a physics simulation, and
generate builds from a text prompt via an AI model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor()
	},
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runEditor() error {
	_ = env.Load(".env")
	prefs, _ := engineconfig.Load()
	log := logger.New()
	cat := catalog.Default()

	lib, err := persist.OpenLibrary(LibraryPath)
	if err != nil {
		log.Errorf("build library unavailable: %v", err)
		lib = nil
	} else {
		defer lib.Close()
	}

	// The model command changes prefs at runtime, so the adapter reads the
	// model name through the editor once it exists.
	var ed *editor.Editor
	adapter := aigen.New(newClient(), cat, func() string {
		if ed != nil {
			return ed.Prefs().AIModel
		}
		return prefs.AIModel
	})
	ed = editor.New(cat, adapter, lib, log, prefs)

	graphics.Run("brickforge", ed.Update, ed.Draw)

	// Autosave the working build and preferences on exit.
	out := ed.Prefs()
	if lib != nil && out.AutosaveBuild != "" {
		if err := lib.Save(out.AutosaveBuild, ed.Parts()); err != nil {
			log.Errorf("autosave failed: %v", err)
		}
	}
	if err := engineconfig.Save(out); err != nil {
		log.Errorf("saving preferences failed: %v", err)
	}
	return nil
}

// newClient picks the generation backend from the environment: OpenAI when
// OPENAI_API_KEY is set, then Groq, each falling back to a local Ollama.
func newClient() llm.Client {
	local := llm.NewOllama("")
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return llm.NewFallback(llm.NewOpenAI(key), local)
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return llm.NewFallback(llm.NewGroq(key), local)
	}
	return local
}
