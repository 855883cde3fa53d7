package collision

import (
	"math"

	"voxelcast/internal/voxel"
)

// A door only stops blocking once it is mostly open.
const doorPassablePercent = 0.85

// DoorChecker reports how far open the door at a voxel is, in [0, 1].
// Door open state lives with the game, not the grid, so the system asks
// back for it.
type DoorChecker func(voxelX, voxelZ int) float64

// System answers whether a footprint can occupy a position in the voxel
// grid. It only looks at the story the mover stands in; floors and chasms
// below do not block walking over them.
type System struct {
	grid        *voxel.Grid
	doorChecker DoorChecker
}

// NewSystem creates a collision system for a grid. doorChecker may be nil,
// in which case all doors block.
func NewSystem(grid *voxel.Grid, doorChecker DoorChecker) *System {
	if grid == nil {
		panic("collision system requires a grid")
	}
	return &System{grid: grid, doorChecker: doorChecker}
}

// VoxelBlocks checks whether the voxel at the given coordinates blocks
// movement. Coordinates outside the grid block.
func (s *System) VoxelBlocks(voxelX, voxelY, voxelZ int) bool {
	if !s.grid.Contains(voxelX, voxelZ) || voxelY < 0 || voxelY >= s.grid.Height() {
		return true
	}

	def := s.grid.Definition(s.grid.Voxel(voxelX, voxelY, voxelZ))
	switch def.Type {
	case voxel.TypeWall, voxel.TypeRaised, voxel.TypeDiagonal, voxel.TypeEdge:
		return true
	case voxel.TypeTransparentWall:
		return def.TransparentWall.Collider
	case voxel.TypeDoor:
		if s.doorChecker == nil {
			return true
		}
		return s.doorChecker(voxelX, voxelZ) < doorPassablePercent
	default:
		return false
	}
}

// CanOccupy checks whether a footprint fits at its position in the given
// story without overlapping blocking voxels or solid obstacles.
func (s *System) CanOccupy(box Box, voxelY int, obstacles []Box) bool {
	minX, minZ, maxX, maxZ := box.Bounds()

	startX := int(math.Floor(minX))
	startZ := int(math.Floor(minZ))
	endX := int(math.Floor(maxX))
	endZ := int(math.Floor(maxZ))

	for voxelZ := startZ; voxelZ <= endZ; voxelZ++ {
		for voxelX := startX; voxelX <= endX; voxelX++ {
			if s.VoxelBlocks(voxelX, voxelY, voxelZ) {
				return false
			}
		}
	}

	for _, obstacle := range obstacles {
		if box.Intersects(obstacle) {
			return false
		}
	}

	return true
}

// Move attempts to move a footprint by an offset, sliding along blocking
// voxels by trying each axis separately when the full move is blocked.
// Returns the footprint at the best reachable position.
func (s *System) Move(box Box, voxelY int, dx, dz float64, obstacles []Box) Box {
	moved := box.MovedTo(box.X+dx, box.Z+dz)
	if s.CanOccupy(moved, voxelY, obstacles) {
		return moved
	}

	xOnly := box.MovedTo(box.X+dx, box.Z)
	if s.CanOccupy(xOnly, voxelY, obstacles) {
		return xOnly
	}

	zOnly := box.MovedTo(box.X, box.Z+dz)
	if s.CanOccupy(zOnly, voxelY, obstacles) {
		return zOnly
	}

	return box
}
