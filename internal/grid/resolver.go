// Package grid turns free pointer input into discrete, grid-snapped placement
// targets. Horizontal cells are one stud wide; vertical stacking is in plate
// units so thin parts interleave with full bricks.
package grid

import "math"

// World-space constants shared by placement, synthesis, and simulation.
const (
	// StudSize is the horizontal spacing of the placement grid.
	StudSize float32 = 1.0
	// BrickHeight is the world height of one brick height unit.
	BrickHeight float32 = 1.2
	// PlateHeight is the vertical snapping granularity.
	PlateHeight float32 = 0.4
)

// surfaceEpsilon nudges the hit point off the surface before snapping so a
// click on top of a face resolves to the cell above it, not the cell it caps.
const surfaceEpsilon float32 = 0.01

// Hit is one pointer/surface intersection event from the scene. PartID is the
// placed part that was hit, or empty when the ray hit the ground plane.
type Hit struct {
	Point  [3]float32
	Normal [3]float32
	PartID string
}

// EffectiveFootprint applies a quarter-turn rotation to a footprint: 90 and
// 270 degree rotations swap width and depth.
func EffectiveFootprint(width, depth, rotation int) (effWidth, effDepth int) {
	if rotation&1 == 1 {
		return depth, width
	}
	return width, depth
}

// Resolve snaps a hit to the placement cell for a part with the given
// footprint and rotation:
//
//  1. offset the point by surfaceEpsilon along the surface normal,
//  2. snap X and Z to the nearest grid line,
//  3. snap Y to the nearest plate-height multiple, floored at 0 and rounded
//     to 2 decimals so accumulated float error never leaks into state,
//  4. shift X (or Z) by half a stud when the effective width (or depth) is
//     even, so the part's visual center sits between grid lines.
func Resolve(hit Hit, width, depth, rotation int) [3]float32 {
	px := hit.Point[0] + hit.Normal[0]*surfaceEpsilon
	py := hit.Point[1] + hit.Normal[1]*surfaceEpsilon
	pz := hit.Point[2] + hit.Normal[2]*surfaceEpsilon

	x := float32(math.Round(float64(px / StudSize)))
	z := float32(math.Round(float64(pz / StudSize)))

	y := float32(math.Round(float64(py/PlateHeight))) * PlateHeight
	if y < 0 {
		y = 0
	}
	y = float32(math.Round(float64(y)*100) / 100)

	effW, effD := EffectiveFootprint(width, depth, rotation)
	if effW%2 == 0 {
		x += 0.5
	}
	if effD%2 == 0 {
		z += 0.5
	}
	return [3]float32{x, y, z}
}

// Ghost is the hovered, not-yet-committed placement candidate. It is ephemeral
// session state: recomputed on every pointer move and never persisted.
type Ghost struct {
	PartID   string
	Position [3]float32
	Rotation int
	ColorID  string
	Visible  bool
}

// Set updates the ghost for a newly resolved candidate.
func (g *Ghost) Set(partID string, pos [3]float32, rotation int, colorID string) {
	g.PartID = partID
	g.Position = pos
	g.Rotation = rotation
	g.ColorID = colorID
	g.Visible = true
}

// Hide clears visibility but keeps the last resolved position, so re-entering
// the build surface does not jump the preview from the origin.
func (g *Ghost) Hide() {
	g.Visible = false
}
