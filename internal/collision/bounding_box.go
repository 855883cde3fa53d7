package collision

// Box is an axis-aligned footprint on the XZ plane, centered on a world
// position. Movers and obstacles are squares as far as blocking is
// concerned.
type Box struct {
	X     float64 // Center X coordinate
	Z     float64 // Center Z coordinate
	Width float64 // Total width on both axes
}

// NewBox creates a footprint centered at the given position.
func NewBox(x, z, width float64) Box {
	return Box{X: x, Z: z, Width: width}
}

// Bounds returns the min/max world coordinates of the footprint.
func (b Box) Bounds() (minX, minZ, maxX, maxZ float64) {
	half := b.Width / 2
	return b.X - half, b.Z - half, b.X + half, b.Z + half
}

// Intersects checks if this footprint overlaps another.
func (b Box) Intersects(other Box) bool {
	minX1, minZ1, maxX1, maxZ1 := b.Bounds()
	minX2, minZ2, maxX2, maxZ2 := other.Bounds()

	return !(maxX1 < minX2 || maxX2 < minX1 || maxZ1 < minZ2 || maxZ2 < minZ1)
}

// MovedTo returns the footprint recentered at a new position.
func (b Box) MovedTo(x, z float64) Box {
	return Box{X: x, Z: z, Width: b.Width}
}
