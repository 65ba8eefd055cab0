// Package persist handles the exported build format (a JSON array of placed
// part records) and the on-disk build library. The record format must
// round-trip exactly: export then import yields the identical part sequence.
package persist

import (
	"encoding/json"
	"fmt"
	"os"

	"brickforge/internal/build"
)

// Record is the wire form of one placed part.
type Record struct {
	ID       string     `json:"id"`
	TypeID   string     `json:"typeId"`
	Position [3]float32 `json:"position"`
	Rotation int        `json:"rotation"`
	Color    string     `json:"color"`
}

// Export marshals the build to the record format.
func Export(parts []build.Part) ([]byte, error) {
	recs := make([]Record, len(parts))
	for i, p := range parts {
		recs[i] = Record{
			ID:       p.ID,
			TypeID:   p.TypeID,
			Position: p.Position,
			Rotation: p.Rotation,
			Color:    p.Color,
		}
	}
	return json.MarshalIndent(recs, "", "  ")
}

// Import parses the record format. Records violating the placement invariants
// are dropped individually; unknown type ids are kept, because the catalog
// lookup contract tolerates them at render time. A malformed document (not a
// JSON array) is an error with no partial result.
func Import(data []byte) (parts []build.Part, dropped int, err error) {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, 0, fmt.Errorf("persist: %w", err)
	}
	for _, r := range recs {
		p := build.Part{
			ID:       r.ID,
			TypeID:   r.TypeID,
			Position: r.Position,
			Rotation: r.Rotation,
			Color:    r.Color,
		}
		if !build.Valid(p) {
			dropped++
			continue
		}
		parts = append(parts, p)
	}
	return parts, dropped, nil
}

// SaveFile exports the build to path.
func SaveFile(path string, parts []build.Part) error {
	data, err := Export(parts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile imports the build at path.
func LoadFile(path string) (parts []build.Part, dropped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return Import(data)
}
