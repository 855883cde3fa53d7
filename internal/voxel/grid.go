package voxel

import "fmt"

// Grid is a dense 3D array of voxel IDs plus the definition table the IDs
// index into. Content is mutated by game logic between frames but is
// read-only to the renderer within a frame.
type Grid struct {
	width  int
	height int
	depth  int
	voxels []uint16
	defs   []Definition
}

// NewGrid allocates a grid of the given dimensions filled with ID 0, which
// always maps to the None definition.
func NewGrid(width, height, depth int) *Grid {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%dx%d", width, height, depth))
	}

	return &Grid{
		width:  width,
		height: height,
		depth:  depth,
		voxels: make([]uint16, width*height*depth),
		defs:   []Definition{MakeNone()},
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Depth() int  { return g.depth }

// Contains returns whether the XZ coordinate is inside the grid.
func (g *Grid) Contains(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.depth
}

func (g *Grid) index(x, y, z int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height || z < 0 || z >= g.depth {
		panic(fmt.Sprintf("voxel coordinate (%d, %d, %d) out of %dx%dx%d grid",
			x, y, z, g.width, g.height, g.depth))
	}
	return x + (y * g.width) + (z * g.width * g.height)
}

// Voxel returns the voxel ID at the given coordinate.
func (g *Grid) Voxel(x, y, z int) uint16 {
	return g.voxels[g.index(x, y, z)]
}

// SetVoxel writes a voxel ID at the given coordinate.
func (g *Grid) SetVoxel(x, y, z int, id uint16) {
	if int(id) >= len(g.defs) {
		panic(fmt.Sprintf("voxel ID %d has no definition (table size %d)", id, len(g.defs)))
	}
	g.voxels[g.index(x, y, z)] = id
}

// AddDefinition appends a definition and returns its new ID.
func (g *Grid) AddDefinition(def Definition) uint16 {
	g.defs = append(g.defs, def)
	return uint16(len(g.defs) - 1)
}

// Definition returns the definition for a voxel ID.
func (g *Grid) Definition(id uint16) *Definition {
	if int(id) >= len(g.defs) {
		panic(fmt.Sprintf("voxel ID %d out of definition table (size %d)", id, len(g.defs)))
	}
	return &g.defs[id]
}
