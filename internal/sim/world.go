// Package sim owns the physics side of simulation mode: a rigid-body world
// (gravity, integration, AABB push-out) and the bridge that turns the current
// build into body descriptors. The hand-off is one-way; body transforms are
// display-only and discarded when simulation mode exits.
package sim

// World holds a set of bodies and runs the physics step: gravity, integration,
// then pairwise AABB resolution along the minimum penetration axis.
type World struct {
	Gravity [3]float32
	Bodies  []*Body
}

// NewWorld returns a world with gravity (0, -9.8, 0); the scene is Y-up, so
// down is -Y.
func NewWorld() *World {
	return &World{Gravity: [3]float32{0, -9.8, 0}}
}

// AddBody appends a body. Order is preserved so callers can sync transforms
// back to their own display lists by index.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		for i := 0; i < 3; i++ {
			b.Velocity[i] += w.Gravity[i] * dt
			b.Position[i] += b.Velocity[i] * dt
		}
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		boxI := bi.bounds()
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			boxJ := bj.bounds()
			if !boxI.overlaps(boxJ) {
				continue
			}
			depth, axis := penetration(boxI, boxJ)
			if axis < 0 {
				continue
			}
			if bi.Static && bj.Static {
				continue
			}
			// Separate along the axis, split by mass; static bodies do not move.
			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			// The split above assumes bi sits on the lower side of the axis;
			// flip both moves when the centers say otherwise.
			if bi.Position[axis] > bj.Position[axis] {
				moveI, moveJ = -moveI, -moveJ
			}
			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI = bi.bounds()
		}
	}
}
