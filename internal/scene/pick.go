package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"brickforge/internal/build"
	"brickforge/internal/catalog"
	"brickforge/internal/grid"
)

// Pick casts a ray from the mouse cursor and returns the nearest intersection
// with a placed part or the ground plane. ok is false when the ray escapes the
// scene (pointer off the build surface). Parts whose definition no longer
// resolves are not pickable, matching the render-side skip.
func (s *Scene) Pick(parts []build.Part, cat *catalog.Catalog) (grid.Hit, bool) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)

	best := grid.Hit{}
	bestDist := float32(0)
	found := false

	for _, p := range parts {
		def, ok := cat.Find(p.TypeID)
		if !ok {
			continue
		}
		col := rl.GetRayCollisionBox(ray, PartBox(p, def))
		if !col.Hit {
			continue
		}
		if !found || col.Distance < bestDist {
			found = true
			bestDist = col.Distance
			best = grid.Hit{
				Point:  [3]float32{col.Point.X, col.Point.Y, col.Point.Z},
				Normal: [3]float32{col.Normal.X, col.Normal.Y, col.Normal.Z},
				PartID: p.ID,
			}
		}
	}

	// Ground plane y=0, only hit from above.
	if ray.Direction.Y < 0 && ray.Position.Y > 0 {
		t := -ray.Position.Y / ray.Direction.Y
		if t > 0 && (!found || t < bestDist) {
			px := ray.Position.X + ray.Direction.X*t
			pz := ray.Position.Z + ray.Direction.Z*t
			if px >= -gridExtent && px <= gridExtent && pz >= -gridExtent && pz <= gridExtent {
				found = true
				best = grid.Hit{
					Point:  [3]float32{px, 0, pz},
					Normal: [3]float32{0, 1, 0},
				}
			}
		}
	}
	return best, found
}

// PartBox returns the world-space AABB of a placed part: full footprint, no
// visual inset, rotation applied via the effective footprint swap.
func PartBox(p build.Part, def catalog.PartDefinition) rl.BoundingBox {
	effW, effD := grid.EffectiveFootprint(def.Width, def.Depth, p.Rotation)
	halfW := float32(effW) * grid.StudSize / 2
	halfD := float32(effD) * grid.StudSize / 2
	h := def.HeightUnits * grid.BrickHeight
	return rl.NewBoundingBox(
		rl.NewVector3(p.Position[0]-halfW, p.Position[1], p.Position[2]-halfD),
		rl.NewVector3(p.Position[0]+halfW, p.Position[1]+h, p.Position[2]+halfD),
	)
}
