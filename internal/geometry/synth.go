// Package geometry turns part definitions into composite shape descriptions:
// a base volume, optional stud cylinders, and optional technic hole markers.
// Synthesis is a pure function of (definition, color, opacity), so shapes are
// cached by that key and uploaded to the GPU once per key by the scene.
package geometry

import (
	"sync"

	"brickforge/internal/catalog"
	"brickforge/internal/grid"
)

const (
	// visualInset shrinks the base volume so adjacent parts sharing a cell
	// boundary read as separate pieces. It never affects collision or snapping.
	visualInset float32 = 0.05

	studRadius float32 = 0.3
	studHeight float32 = 0.18

	holeRadius float32 = 0.24
	// holeOverrun extends hole markers slightly past the base faces so they
	// stay visible at the surface instead of z-fighting with it.
	holeOverrun float32 = 0.02
)

// Axis selects the long axis of a cylinder.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Box is an axis-aligned volume in part-local space (origin at the part's
// floor-aligned center, Y up).
type Box struct {
	Center [3]float32
	Size   [3]float32
}

// Cylinder is a solid cylinder in part-local space.
type Cylinder struct {
	Center [3]float32
	Radius float32
	Height float32
	Axis   Axis
}

// Shape is the renderable description of one part type in one color. Holes are
// rendered as dark inset cylinders layered over the base volume; no boolean
// subtraction is performed.
type Shape struct {
	Base    Box
	Studs   []Cylinder
	Holes   []Cylinder
	Color   [4]uint8
	Opacity float32
}

// Key identifies a synthesized shape. Definitions are immutable and
// catalog-owned, so the part id stands in for the whole definition.
type Key struct {
	PartID  string
	Color   [4]uint8
	Opacity float32
}

// Synthesize builds the composite shape for a definition. Stud centers use the
// same footprint-centering convention as the placement resolver, so studs line
// up across adjacent parts.
func Synthesize(def catalog.PartDefinition, color [4]uint8, opacity float32) Shape {
	w := float32(def.Width)
	d := float32(def.Depth)
	h := def.HeightUnits * grid.BrickHeight

	s := Shape{
		Base: Box{
			Center: [3]float32{0, h / 2, 0},
			Size:   [3]float32{w*grid.StudSize - visualInset, h, d*grid.StudSize - visualInset},
		},
		Color:   color,
		Opacity: opacity,
	}

	if def.Studs {
		s.Studs = make([]Cylinder, 0, def.Width*def.Depth)
		for i := 0; i < def.Width; i++ {
			for j := 0; j < def.Depth; j++ {
				cx := (float32(i) - (w-1)/2) * grid.StudSize
				cz := (float32(j) - (d-1)/2) * grid.StudSize
				s.Studs = append(s.Studs, Cylinder{
					Center: [3]float32{cx, h + studHeight/2, cz},
					Radius: studRadius,
					Height: studHeight,
					Axis:   AxisY,
				})
			}
		}
	}

	// Technic holes only make sense on 1-wide beams: the marker runs across
	// the short axis, one per depth unit.
	if def.Holes && def.Width == 1 {
		s.Holes = make([]Cylinder, 0, def.Depth)
		for j := 0; j < def.Depth; j++ {
			cz := (float32(j) - (d-1)/2) * grid.StudSize
			s.Holes = append(s.Holes, Cylinder{
				Center: [3]float32{0, h / 2, cz},
				Radius: holeRadius,
				Height: w*grid.StudSize - visualInset + holeOverrun,
				Axis:   AxisX,
			})
		}
	}
	return s
}

// Cache memoizes Synthesize by key. Safe for the single-threaded frame loop;
// the mutex only guards the occasional headless caller.
type Cache struct {
	mu     sync.Mutex
	shapes map[Key]Shape
}

// NewCache returns an empty shape cache.
func NewCache() *Cache {
	return &Cache{shapes: make(map[Key]Shape)}
}

// Get returns the cached shape for (def, color, opacity), synthesizing on the
// first request.
func (c *Cache) Get(def catalog.PartDefinition, color [4]uint8, opacity float32) Shape {
	key := Key{PartID: def.ID, Color: color, Opacity: opacity}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.shapes[key]; ok {
		return s
	}
	s := Synthesize(def, color, opacity)
	c.shapes[key] = s
	return s
}

// Len returns the number of distinct cached shapes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shapes)
}
