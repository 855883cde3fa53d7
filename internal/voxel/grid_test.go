package voxel

import "testing"

func TestNewGrid_DefaultsToNone(t *testing.T) {
	grid := NewGrid(4, 2, 4)

	if grid.Voxel(0, 0, 0) != 0 {
		t.Errorf("Expected fresh grid filled with ID 0")
	}
	if grid.Definition(0).Type != TypeNone {
		t.Errorf("Expected ID 0 to map to the None definition")
	}
}

func TestGrid_AddDefinitionAndSet(t *testing.T) {
	grid := NewGrid(4, 2, 4)

	wall := grid.AddDefinition(MakeWall(1, 2, 3))
	if wall != 1 {
		t.Errorf("Expected first added definition to get ID 1, got %d", wall)
	}

	grid.SetVoxel(2, 1, 3, wall)
	def := grid.Definition(grid.Voxel(2, 1, 3))
	if def.Type != TypeWall {
		t.Errorf("Expected wall definition, got type %d", def.Type)
	}
	if def.Wall.SideID != 1 || def.Wall.FloorID != 2 || def.Wall.CeilingID != 3 {
		t.Errorf("Wall texture IDs not preserved: %+v", def.Wall)
	}
}

func TestGrid_SetVoxelUnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for voxel ID with no definition")
		}
	}()
	grid := NewGrid(4, 2, 4)
	grid.SetVoxel(0, 0, 0, 7)
}

func TestGrid_Contains(t *testing.T) {
	grid := NewGrid(4, 2, 6)

	if !grid.Contains(0, 0) || !grid.Contains(3, 5) {
		t.Errorf("Expected corners to be inside")
	}
	if grid.Contains(-1, 0) || grid.Contains(4, 0) || grid.Contains(0, 6) {
		t.Errorf("Expected out-of-range coordinates to be outside")
	}
}

func TestChasmData_FaceIsVisible(t *testing.T) {
	def := MakeChasm(0, ChasmWet, [4]bool{true, false, true, false})

	if !def.Chasm.FaceIsVisible(FacingPositiveX) {
		t.Errorf("Expected +X face visible")
	}
	if def.Chasm.FaceIsVisible(FacingNegativeX) {
		t.Errorf("Expected -X face hidden")
	}
	if !def.Chasm.FaceIsVisible(FacingPositiveZ) {
		t.Errorf("Expected +Z face visible")
	}
}

func TestFacing_NormalAndOpposite(t *testing.T) {
	for _, facing := range []Facing{FacingPositiveX, FacingNegativeX, FacingPositiveZ, FacingNegativeZ} {
		normal := facing.Normal()
		oppositeNormal := facing.Opposite().Normal()
		sum := normal.Add(oppositeNormal)
		if sum.Len() != 0.0 {
			t.Errorf("Expected %v normal to cancel its opposite, got sum %v", facing, sum)
		}
		if facing.Opposite().Opposite() != facing {
			t.Errorf("Expected double opposite to round-trip for %v", facing)
		}
	}
}
