package collision

import (
	"testing"

	"voxelcast/internal/voxel"
)

// buildTestGrid makes an 8x8 walled yard with one door gap in the north
// wall at (4, 0).
func buildTestGrid() *voxel.Grid {
	grid := voxel.NewGrid(8, 2, 8)
	wall := grid.AddDefinition(voxel.MakeWall(0, 0, 0))
	door := grid.AddDefinition(voxel.MakeDoor(0, voxel.DoorSwinging))
	hedge := grid.AddDefinition(voxel.MakeTransparentWall(0, true))
	arch := grid.AddDefinition(voxel.MakeTransparentWall(1, false))

	for i := 0; i < 8; i++ {
		grid.SetVoxel(i, 1, 0, wall)
		grid.SetVoxel(i, 1, 7, wall)
		grid.SetVoxel(0, 1, i, wall)
		grid.SetVoxel(7, 1, i, wall)
	}
	grid.SetVoxel(4, 1, 0, door)
	grid.SetVoxel(3, 1, 3, hedge)
	grid.SetVoxel(5, 1, 3, arch)
	return grid
}

func TestVoxelBlocks_WallsAndAir(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)

	if !system.VoxelBlocks(0, 1, 3) {
		t.Errorf("Expected the perimeter wall to block")
	}
	if system.VoxelBlocks(4, 1, 4) {
		t.Errorf("Expected open yard air to not block")
	}
	// Outside the grid always blocks.
	if !system.VoxelBlocks(-1, 1, 3) {
		t.Errorf("Expected out-of-grid to block")
	}
	if !system.VoxelBlocks(3, 1, 99) {
		t.Errorf("Expected out-of-grid to block")
	}
}

func TestVoxelBlocks_TransparentWallCollider(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)

	// The hedge has its collider flag set, the arch does not.
	if !system.VoxelBlocks(3, 1, 3) {
		t.Errorf("Expected the hedge to block")
	}
	if system.VoxelBlocks(5, 1, 3) {
		t.Errorf("Expected the arch to be walkable")
	}
}

func TestVoxelBlocks_DoorOpenState(t *testing.T) {
	openPercent := 0.0
	system := NewSystem(buildTestGrid(), func(voxelX, voxelZ int) float64 {
		if voxelX == 4 && voxelZ == 0 {
			return openPercent
		}
		return 0.0
	})

	if !system.VoxelBlocks(4, 1, 0) {
		t.Errorf("Expected a closed door to block")
	}

	openPercent = 0.5
	if !system.VoxelBlocks(4, 1, 0) {
		t.Errorf("Expected a half-open door to still block")
	}

	openPercent = 1.0
	if system.VoxelBlocks(4, 1, 0) {
		t.Errorf("Expected a fully open door to be passable")
	}
}

func TestVoxelBlocks_DoorWithoutChecker(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)
	if !system.VoxelBlocks(4, 1, 0) {
		t.Errorf("Expected doors to block when no door state is available")
	}
}

func TestCanOccupy_FootprintOverlap(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)

	// Centered in open yard: fine.
	if !system.CanOccupy(NewBox(4.5, 4.5, 0.4), 1, nil) {
		t.Errorf("Expected open position to be occupiable")
	}

	// Center in an open voxel but the footprint edge reaches into the wall
	// at x=0 (wall spans world X [0, 1]).
	if system.CanOccupy(NewBox(1.1, 4.5, 0.4), 1, nil) {
		t.Errorf("Expected footprint overlapping the wall to be rejected")
	}

	// Backed off past the wall face plus the half width.
	if !system.CanOccupy(NewBox(1.3, 4.5, 0.4), 1, nil) {
		t.Errorf("Expected footprint clear of the wall to be accepted")
	}
}

func TestCanOccupy_SolidObstacles(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)
	obstacles := []Box{NewBox(4.5, 4.5, 1.0)}

	if system.CanOccupy(NewBox(4.8, 4.5, 0.4), 1, obstacles) {
		t.Errorf("Expected overlap with an obstacle to be rejected")
	}
	if !system.CanOccupy(NewBox(6.0, 4.5, 0.4), 1, obstacles) {
		t.Errorf("Expected position clear of obstacles to be accepted")
	}
}

func TestMove_SlidesAlongWalls(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)

	// Moving diagonally into the west wall: the X component is blocked but
	// the Z component goes through.
	start := NewBox(1.3, 4.5, 0.4)
	moved := system.Move(start, 1, -0.5, 0.5, nil)

	if moved.X != start.X {
		t.Errorf("Expected X blocked by the wall, moved to %f", moved.X)
	}
	if moved.Z != start.Z+0.5 {
		t.Errorf("Expected slide along the wall in Z, moved to %f", moved.Z)
	}
}

func TestMove_FullyBlockedStaysPut(t *testing.T) {
	system := NewSystem(buildTestGrid(), nil)

	// In the corner moving into both walls at once.
	start := NewBox(1.3, 1.3, 0.4)
	moved := system.Move(start, 1, -0.5, -0.5, nil)

	if moved.X != start.X || moved.Z != start.Z {
		t.Errorf("Expected no movement into the corner, got (%f, %f)", moved.X, moved.Z)
	}
}

func TestBox_Intersects(t *testing.T) {
	a := NewBox(4.0, 4.0, 1.0)

	if !a.Intersects(NewBox(4.8, 4.0, 1.0)) {
		t.Errorf("Expected overlapping boxes to intersect")
	}
	if a.Intersects(NewBox(6.0, 4.0, 1.0)) {
		t.Errorf("Expected separated boxes to not intersect")
	}
	// Touching edges count as contact.
	if !a.Intersects(NewBox(5.0, 4.0, 1.0)) {
		t.Errorf("Expected edge-touching boxes to intersect")
	}
}
