package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"brickforge/internal/build"
)

// Library is the on-disk store of named builds, backed by sqlite. Builds are
// stored as record JSON so the library and the export format never diverge.
type Library struct {
	db *sql.DB
}

const librarySchema = `
CREATE TABLE IF NOT EXISTS builds (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	parts      INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);`

// BuildInfo is one library listing entry.
type BuildInfo struct {
	Name      string
	Parts     int
	UpdatedAt time.Time
}

// OpenLibrary opens (or creates) the library at path, creating parent
// directories as needed.
func OpenLibrary(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	if _, err := db.Exec(librarySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: %w", err)
	}
	return &Library{db: db}, nil
}

// Save stores (or replaces) a named build.
func (l *Library) Save(name string, parts []build.Part) error {
	if name == "" {
		return fmt.Errorf("library: empty build name")
	}
	data, err := Export(parts)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(
		`INSERT INTO builds (name, data, parts, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data=excluded.data, parts=excluded.parts, updated_at=excluded.updated_at`,
		name, string(data), len(parts), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}
	return nil
}

// Load returns the named build. A missing name is an error (unlike catalog
// misses, the user asked for this build explicitly).
func (l *Library) Load(name string) (parts []build.Part, dropped int, err error) {
	var data string
	err = l.db.QueryRow(`SELECT data FROM builds WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("library: no build named %q", name)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("library: %w", err)
	}
	return Import([]byte(data))
}

// List returns all builds, most recently updated first.
func (l *Library) List() ([]BuildInfo, error) {
	rows, err := l.db.Query(`SELECT name, parts, updated_at FROM builds ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	defer rows.Close()
	var out []BuildInfo
	for rows.Next() {
		var info BuildInfo
		var ts string
		if err := rows.Scan(&info.Name, &info.Parts, &ts); err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a named build. Absent names are a no-op.
func (l *Library) Delete(name string) error {
	_, err := l.db.Exec(`DELETE FROM builds WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}
