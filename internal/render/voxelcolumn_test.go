package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/voxel"
)

func TestWallFaceU_Range(t *testing.T) {
	facings := []voxel.Facing{
		voxel.FacingPositiveX, voxel.FacingNegativeX,
		voxel.FacingPositiveZ, voxel.FacingNegativeZ,
	}
	points := []mgl64.Vec2{
		{3.25, 7.80}, {3.0, 7.0}, {3.999, 7.001}, {0.5, 0.5},
	}

	for _, facing := range facings {
		for _, point := range points {
			front := wallFrontFaceU(point, facing)
			back := wallBackFaceU(point, facing)

			if front < 0.0 || front >= 1.0 {
				t.Errorf("Front U out of [0, 1) for %v at %v: %f", facing, point, front)
			}
			if back < 0.0 || back >= 1.0 {
				t.Errorf("Back U out of [0, 1) for %v at %v: %f", facing, point, back)
			}
		}
	}
}

func TestWallFaceU_FrontBackComplement(t *testing.T) {
	// Looking at the same hit point from the two sides of a wall face, the
	// texture coordinates mirror each other.
	point := mgl64.Vec2{3.25, 7.80}

	for _, facing := range []voxel.Facing{
		voxel.FacingPositiveX, voxel.FacingNegativeX,
		voxel.FacingPositiveZ, voxel.FacingNegativeZ,
	} {
		front := wallFrontFaceU(point, facing)
		back := wallBackFaceU(point, facing)

		if !mathutil.AlmostEqual(front+back, mathutil.JustBelowOne) {
			t.Errorf("Front and back U do not mirror for %v: %f + %f", facing, front, back)
		}
	}
}

func TestWallFaceU_TranslationInvariant(t *testing.T) {
	// Only the fractional part of the hit point matters; whole-voxel offsets
	// change nothing.
	base := mgl64.Vec2{3.25, 7.80}
	shifted := mgl64.Vec2{8.25, 2.80}

	for _, facing := range []voxel.Facing{voxel.FacingPositiveX, voxel.FacingNegativeZ} {
		if !mathutil.AlmostEqual(wallFrontFaceU(base, facing), wallFrontFaceU(shifted, facing)) {
			t.Errorf("Front U not translation invariant for %v", facing)
		}
		if !mathutil.AlmostEqual(wallBackFaceU(base, facing), wallBackFaceU(shifted, facing)) {
			t.Errorf("Back U not translation invariant for %v", facing)
		}
	}
}

func TestWallFaceU_DirectionConvention(t *testing.T) {
	// On a +X face the U coordinate runs against Z so textures read
	// left-to-right when viewed from outside the wall.
	low := wallFrontFaceU(mgl64.Vec2{3.0, 7.10}, voxel.FacingPositiveX)
	high := wallFrontFaceU(mgl64.Vec2{3.0, 7.90}, voxel.FacingPositiveX)
	if low <= high {
		t.Errorf("Expected +X front U to decrease with Z: %f vs %f", low, high)
	}

	// On a +Z face it runs with X.
	low = wallFrontFaceU(mgl64.Vec2{3.10, 7.0}, voxel.FacingPositiveZ)
	high = wallFrontFaceU(mgl64.Vec2{3.90, 7.0}, voxel.FacingPositiveZ)
	if low >= high {
		t.Errorf("Expected +Z front U to increase with X: %f vs %f", low, high)
	}
}

func TestChasmDepth(t *testing.T) {
	// Dry chasms fall a full story; wet and lava have a fixed shallow depth
	// regardless of ceiling height.
	if got := chasmDepth(voxel.ChasmDry, 2.5); got != 2.5 {
		t.Errorf("Expected dry chasm depth to match voxel height, got %f", got)
	}
	if got := chasmDepth(voxel.ChasmWet, 2.5); got != voxel.WetLavaChasmDepth {
		t.Errorf("Expected wet chasm at fixed depth, got %f", got)
	}
	if got := chasmDepth(voxel.ChasmLava, 1.0); got != voxel.WetLavaChasmDepth {
		t.Errorf("Expected lava chasm at fixed depth, got %f", got)
	}
}

func TestDoorPercentOpen(t *testing.T) {
	openDoors := []DoorState{
		{X: 3, Z: 7, PercentOpen: 0.40},
		{X: 5, Z: 2, PercentOpen: 1.0},
	}

	if got := doorPercentOpen(3, 7, openDoors); got != 0.40 {
		t.Errorf("Expected open percent 0.40, got %f", got)
	}
	// Doors not in the list are closed.
	if got := doorPercentOpen(9, 9, openDoors); got != 0.0 {
		t.Errorf("Expected closed door, got %f", got)
	}
	if got := doorPercentOpen(3, 7, nil); got != 0.0 {
		t.Errorf("Expected closed door with no open list, got %f", got)
	}
}
