package engineconfig

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Path is the preferences file, relative to the process working directory.
const Path = "config/brickforge.toml"

// Prefs holds editor-only preferences persisted across runs. Build data is
// separate (see the persist package).
type Prefs struct {
	GridVisible   bool   `toml:"grid_visible"`
	ShowFPS       bool   `toml:"show_fps"`
	ShowStats     bool   `toml:"show_stats"`
	AIModel       string `toml:"ai_model"`
	AutosaveBuild string `toml:"autosave_build"`
	HistoryLimit  int    `toml:"history_limit"`
}

// Default returns the default preferences (grid on, overlays off).
func Default() Prefs {
	return Prefs{
		GridVisible:   true,
		ShowFPS:       false,
		ShowStats:     false,
		AIModel:       "gpt-4o-mini",
		AutosaveBuild: "autosave",
		HistoryLimit:  0, // 0 = history.DefaultLimit
	}
}

// Load reads preferences from Path. A missing or invalid file yields
// Default() without creating anything.
func Load() (Prefs, error) {
	p := Default()
	if _, err := toml.DecodeFile(Path, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to Path, creating the config directory if needed.
func Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	f, err := os.Create(Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}
