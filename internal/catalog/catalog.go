package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is the closed set of part families. Anything else fails validation.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryPlate   Category = "plate"
	CategoryTechnic Category = "technic"
	CategorySlope   Category = "slope"
)

// PartDefinition describes one buildable part type (see assets parts.yaml).
// Width and Depth are the footprint in studs; HeightUnits is a multiple of the
// standard brick height (1.0 = brick, 0.33 = plate).
type PartDefinition struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    Category `yaml:"category"`
	Width       int      `yaml:"width"`
	Depth       int      `yaml:"depth"`
	HeightUnits float32  `yaml:"height"`
	Studs       bool     `yaml:"studs"`
	Holes       bool     `yaml:"holes,omitempty"`
}

// Color is one palette entry. RGBA is [r, g, b, a].
type Color struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	RGBA [4]uint8 `yaml:"rgba"`
}

// Catalog is an immutable lookup of part definitions and colors. Construct once
// and pass it in; there are no mutation operations.
type Catalog struct {
	parts      []PartDefinition
	colors     []Color
	partIndex  map[string]int
	colorIndex map[string]int
}

//go:embed parts.yaml
var defaultPartsYAML []byte

//go:embed colors.yaml
var defaultColorsYAML []byte

// New builds a catalog from the given definitions. Definitions with a bad
// footprint, height, category, or duplicate id are rejected.
func New(parts []PartDefinition, colors []Color) (*Catalog, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("catalog: no part definitions")
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("catalog: no colors")
	}
	c := &Catalog{
		parts:      make([]PartDefinition, len(parts)),
		colors:     make([]Color, len(colors)),
		partIndex:  make(map[string]int, len(parts)),
		colorIndex: make(map[string]int, len(colors)),
	}
	copy(c.parts, parts)
	copy(c.colors, colors)
	for i, p := range c.parts {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: part %d has no id", i)
		}
		if _, dup := c.partIndex[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate part id %q", p.ID)
		}
		if p.Width < 1 || p.Depth < 1 {
			return nil, fmt.Errorf("catalog: part %q footprint %dx%d (must be >= 1x1)", p.ID, p.Width, p.Depth)
		}
		if p.HeightUnits <= 0 {
			return nil, fmt.Errorf("catalog: part %q height %v (must be > 0)", p.ID, p.HeightUnits)
		}
		switch p.Category {
		case CategoryBasic, CategoryPlate, CategoryTechnic, CategorySlope:
		default:
			return nil, fmt.Errorf("catalog: part %q has unknown category %q", p.ID, p.Category)
		}
		c.partIndex[p.ID] = i
	}
	for i, col := range c.colors {
		if col.ID == "" {
			return nil, fmt.Errorf("catalog: color %d has no id", i)
		}
		if _, dup := c.colorIndex[col.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate color id %q", col.ID)
		}
		c.colorIndex[col.ID] = i
	}
	return c, nil
}

type partsFile struct {
	Parts []PartDefinition `yaml:"parts"`
}

type colorsFile struct {
	Colors []Color `yaml:"colors"`
}

// Default returns the catalog built from the embedded YAML definitions.
// The embedded data is validated by tests, so failure here is a build defect.
func Default() *Catalog {
	var pf partsFile
	if err := yaml.Unmarshal(defaultPartsYAML, &pf); err != nil {
		panic(fmt.Sprintf("catalog: embedded parts.yaml: %v", err))
	}
	var cf colorsFile
	if err := yaml.Unmarshal(defaultColorsYAML, &cf); err != nil {
		panic(fmt.Sprintf("catalog: embedded colors.yaml: %v", err))
	}
	c, err := New(pf.Parts, cf.Colors)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded defaults: %v", err))
	}
	return c
}

// Find returns the part definition for id. ok is false on a miss; callers are
// expected to skip the part, not fail, because stored builds may reference
// parts removed in a later catalog revision.
func (c *Catalog) Find(id string) (PartDefinition, bool) {
	i, ok := c.partIndex[id]
	if !ok {
		return PartDefinition{}, false
	}
	return c.parts[i], true
}

// FindColor returns the color for id, with the same miss contract as Find.
func (c *Catalog) FindColor(id string) (Color, bool) {
	i, ok := c.colorIndex[id]
	if !ok {
		return Color{}, false
	}
	return c.colors[i], true
}

// FirstPart is the fallback substituted for unknown part ids on import.
func (c *Catalog) FirstPart() PartDefinition { return c.parts[0] }

// FirstColor is the fallback substituted for unknown color ids on import.
func (c *Catalog) FirstColor() Color { return c.colors[0] }

// Parts returns a copy of all definitions in catalog order.
func (c *Catalog) Parts() []PartDefinition {
	out := make([]PartDefinition, len(c.parts))
	copy(out, c.parts)
	return out
}

// Colors returns a copy of the palette in catalog order.
func (c *Catalog) Colors() []Color {
	out := make([]Color, len(c.colors))
	copy(out, c.colors)
	return out
}

// PartIDs returns every part id in catalog order (used to constrain AI output).
func (c *Catalog) PartIDs() []string {
	out := make([]string, len(c.parts))
	for i, p := range c.parts {
		out[i] = p.ID
	}
	return out
}

// ColorIDs returns every color id in catalog order.
func (c *Catalog) ColorIDs() []string {
	out := make([]string, len(c.colors))
	for i, col := range c.colors {
		out[i] = col.ID
	}
	return out
}
