package sim

// Body is a rigid body with center position, velocity, and AABB extents.
// Static bodies ignore gravity and never move; the ground slab is the only
// static body a bridge session creates.
type Body struct {
	Position [3]float32
	Velocity [3]float32
	Size     [3]float32
	Mass     float32
	Static   bool
	// PartID links the body back to the placed part it was built from, for
	// display only. Simulation results are never written into build state.
	PartID string
}

// NewBody returns a body at the given center with the given extents.
// Non-positive mass falls back to 1.
func NewBody(position, size [3]float32, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position: position,
		Size:     size,
		Mass:     mass,
		Static:   static,
	}
}

type aabb struct {
	min, max [3]float32
}

func (b *Body) bounds() aabb {
	var box aabb
	for i := 0; i < 3; i++ {
		half := b.Size[i] * 0.5
		if half <= 0 {
			half = 0.5
		}
		box.min[i] = b.Position[i] - half
		box.max[i] = b.Position[i] + half
	}
	return box
}

func (a aabb) overlaps(b aabb) bool {
	for i := 0; i < 3; i++ {
		if a.max[i] <= b.min[i] || b.max[i] <= a.min[i] {
			return false
		}
	}
	return true
}

// penetration returns the overlap depth and axis (0=X, 1=Y, 2=Z) of minimum
// penetration, or (0, -1) when the boxes do not overlap.
func penetration(a, b aabb) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		o := minf(a.max[i], b.max[i]) - maxf(a.min[i], b.min[i])
		if o <= 0 {
			return 0, -1
		}
		if axis < 0 || o < depth {
			depth = o
			axis = i
		}
	}
	return depth, axis
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
