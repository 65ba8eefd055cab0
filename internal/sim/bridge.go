package sim

import (
	"brickforge/internal/build"
	"brickforge/internal/catalog"
	"brickforge/internal/grid"
)

// jitterMargin shrinks colliders so exactly touching faces do not jitter.
const jitterMargin float32 = 0.02

// groundExtent is the side length of the static ground slab.
const groundExtent float32 = 200

// BodyFor translates one placed part into a physics body. Edit-mode positions
// are floor-aligned while the physics world places bodies by center of mass,
// so the center Y is the stored Y plus half the part's world height. Parts
// whose definition no longer resolves in the catalog return ok false and are
// skipped.
func BodyFor(p build.Part, cat *catalog.Catalog) (*Body, bool) {
	def, ok := cat.Find(p.TypeID)
	if !ok {
		return nil, false
	}
	effW, effD := grid.EffectiveFootprint(def.Width, def.Depth, p.Rotation)
	h := def.HeightUnits * grid.BrickHeight
	size := [3]float32{
		float32(effW)*grid.StudSize - jitterMargin,
		h,
		float32(effD)*grid.StudSize - jitterMargin,
	}
	center := [3]float32{p.Position[0], p.Position[1] + h/2, p.Position[2]}
	mass := float32(effW*effD) * def.HeightUnits
	b := NewBody(center, size, mass, false)
	b.PartID = p.ID
	return b, true
}

// GroundBody returns the static slab whose top face is the editor floor y=0.
func GroundBody() *Body {
	return NewBody([3]float32{0, -0.5, 0}, [3]float32{groundExtent, 1, groundExtent}, 1, true)
}

// NewSession builds a world for the given build: one dynamic body per
// resolvable part plus the ground. Invoked once per entry into simulation
// mode; the caller steps it per frame and throws it away on exit.
func NewSession(parts []build.Part, cat *catalog.Catalog) *World {
	w := NewWorld()
	w.AddBody(GroundBody())
	for _, p := range parts {
		if b, ok := BodyFor(p, cat); ok {
			w.AddBody(b)
		}
	}
	return w
}
