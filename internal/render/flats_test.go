package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/entity"
	"voxelcast/internal/mathutil"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

func flatTestGrid() *voxel.Grid {
	return voxel.NewGrid(16, 3, 16)
}

func makeTestEntity(x, z float64) entity.Entity {
	return entity.Entity{
		Type:      entity.Static,
		Position:  mgl64.Vec2{x, z},
		StateType: tex.AnimStateIdle,
		Width:     1.0,
		Height:    1.5,
	}
}

func TestUpdateVisibleFlats_RejectsBehindCamera(t *testing.T) {
	camera := testCamera(mgl64.Vec3{8.0, 0.5, 8.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	snapshot := &entity.Snapshot{Entities: []entity.Entity{
		makeTestEntity(8.0, 12.0), // ahead
		makeTestEntity(8.0, 4.0),  // behind
	}}

	flats := updateVisibleFlats(nil, snapshot, &camera, 1.0, 30.0, flatTestGrid())
	if len(flats) != 1 {
		t.Fatalf("Expected only the flat ahead of the camera, got %d", len(flats))
	}
	if flats[0].BottomLeft.Z() != 12.0 {
		t.Errorf("Wrong flat survived culling: %+v", flats[0])
	}
}

func TestUpdateVisibleFlats_RejectsBeyondFog(t *testing.T) {
	camera := testCamera(mgl64.Vec3{8.0, 0.5, 1.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	snapshot := &entity.Snapshot{Entities: []entity.Entity{
		makeTestEntity(8.0, 5.0),
		makeTestEntity(8.0, 14.0),
	}}

	// Fog distance between the two flats.
	flats := updateVisibleFlats(nil, snapshot, &camera, 1.0, 8.0, flatTestGrid())
	if len(flats) != 1 {
		t.Fatalf("Expected the far flat dropped by fog, got %d flats", len(flats))
	}
	if flats[0].BottomLeft.Z() != 5.0 {
		t.Errorf("Wrong flat survived fog culling: %+v", flats[0])
	}
}

func TestUpdateVisibleFlats_SortedFarthestFirst(t *testing.T) {
	camera := testCamera(mgl64.Vec3{8.0, 0.5, 1.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	snapshot := &entity.Snapshot{Entities: []entity.Entity{
		makeTestEntity(8.0, 5.0),
		makeTestEntity(8.0, 12.0),
		makeTestEntity(8.0, 8.0),
	}}

	flats := updateVisibleFlats(nil, snapshot, &camera, 1.0, 30.0, flatTestGrid())
	if len(flats) != 3 {
		t.Fatalf("Expected all three flats visible, got %d", len(flats))
	}
	for i := 1; i < len(flats); i++ {
		if flats[i].Z > flats[i-1].Z {
			t.Errorf("Flats not sorted farthest first: Z %f after %f",
				flats[i].Z, flats[i-1].Z)
		}
	}
}

func TestUpdateVisibleFlats_BottomRestsOnGround(t *testing.T) {
	camera := testCamera(mgl64.Vec3{8.0, 0.5, 1.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	snapshot := &entity.Snapshot{Entities: []entity.Entity{makeTestEntity(8.0, 5.0)}}

	ceilingHeight := 1.0
	flats := updateVisibleFlats(nil, snapshot, &camera, ceilingHeight, 30.0, flatTestGrid())
	if len(flats) != 1 {
		t.Fatalf("Expected one visible flat, got %d", len(flats))
	}

	flat := flats[0]
	// Bottom corners sit on the ceiling-height plane of the ground story,
	// tops one entity height above.
	if flat.BottomLeft.Y() != ceilingHeight {
		t.Errorf("Expected flat bottom at %f, got %f", ceilingHeight, flat.BottomLeft.Y())
	}
	if !mathutil.AlmostEqual(flat.TopLeft.Y()-flat.BottomLeft.Y(), 1.5) {
		t.Errorf("Expected flat height 1.5, got %f", flat.TopLeft.Y()-flat.BottomLeft.Y())
	}
	// Corners span the entity width centered on its position.
	width := flat.BottomLeft.Sub(flat.BottomRight).Len()
	if !mathutil.AlmostEqual(width, 1.0) {
		t.Errorf("Expected flat width 1.0, got %f", width)
	}
}

func TestRaisedPlatformYOffset(t *testing.T) {
	grid := flatTestGrid()
	platform := grid.AddDefinition(voxel.MakeRaised(0, 0, 0, 0.25, 0.50, 1.0, 0.0))
	grid.SetVoxel(4, 1, 4, platform)

	// Standing in the platform voxel lifts by (yOffset + ySize) stories.
	got := raisedPlatformYOffset(mgl64.Vec2{4.5, 4.5}, 1.0, grid)
	if !mathutil.AlmostEqual(got, 0.75) {
		t.Errorf("Expected lift of 0.75, got %f", got)
	}

	// Ordinary ground gives no lift.
	if got := raisedPlatformYOffset(mgl64.Vec2{8.5, 8.5}, 1.0, grid); got != 0.0 {
		t.Errorf("Expected no lift outside platforms, got %f", got)
	}

	// Outside the grid gives no lift rather than panicking.
	if got := raisedPlatformYOffset(mgl64.Vec2{-3.0, 4.5}, 1.0, grid); got != 0.0 {
		t.Errorf("Expected no lift outside the grid, got %f", got)
	}
}

func TestFlatAnimAngle_StaticAlwaysZero(t *testing.T) {
	e := makeTestEntity(5.0, 5.0)
	for _, eye := range []mgl64.Vec2{{0.0, 0.0}, {10.0, 3.0}, {5.0, -5.0}} {
		if got := flatAnimAngle(&e, eye); got != 0.0 {
			t.Errorf("Expected static entity angle 0 from eye %v, got %f", eye, got)
		}
	}
}

func TestFlatAnimAngle_DynamicInRange(t *testing.T) {
	e := entity.Entity{
		Type:       entity.Dynamic,
		Position:   mgl64.Vec2{5.0, 5.0},
		Direction:  mgl64.Vec2{1.0, 0.0},
		StateCount: 4,
	}

	for _, eye := range []mgl64.Vec2{{0.0, 0.0}, {10.0, 3.0}, {5.0, -5.0}} {
		got := flatAnimAngle(&e, eye)
		if got < 0.0 || got >= mathutil.TwoPi {
			t.Errorf("Angle out of [0, 2pi) from eye %v: %f", eye, got)
		}
	}

	// Facing directly away from the camera and facing toward it land in
	// different angle halves.
	away := flatAnimAngle(&e, mgl64.Vec2{0.0, 5.0})
	e.Direction = mgl64.Vec2{-1.0, 0.0}
	toward := flatAnimAngle(&e, mgl64.Vec2{0.0, 5.0})
	if math.Abs(away-toward) < 0.5 {
		t.Errorf("Expected distinct angles for away (%f) and toward (%f)", away, toward)
	}
}

func TestFlatReflectedColor(t *testing.T) {
	const width, height = 8, 8
	colorBuffer := make([]uint32, width*height)
	depthBuffer := make([]float64, width*height)
	frame := newFrameView(colorBuffer, depthBuffer, width, height)

	// Paint a known color at the row that should be sampled.
	horizonScreenY := 4
	x, y := 3, 6
	reflectedY := horizonScreenY - (y - horizonScreenY) // 2
	colorBuffer[x+(reflectedY*width)] = 0x102030

	fogColor := mgl64.Vec3{1.0, 1.0, 1.0}
	evenTexel := &tex.FlatTexel{Reflection: 1, A: 1.0}

	got := flatReflectedColor(evenTexel, x, y, horizonScreenY, fogColor, &frame)
	want := rgbToColor(0x102030)
	if got != want {
		t.Errorf("Expected mirrored frame-buffer color %v, got %v", want, got)
	}

	// Odd rows sample one pixel lower.
	colorBuffer[x+((reflectedY+1)*width)] = 0x405060
	oddTexel := &tex.FlatTexel{Reflection: 2, A: 1.0}
	got = flatReflectedColor(oddTexel, x, y, horizonScreenY, fogColor, &frame)
	if got != rgbToColor(0x405060) {
		t.Errorf("Expected odd-row sample one pixel lower, got %v", got)
	}

	// A mirror target outside the screen falls back to fog.
	got = flatReflectedColor(evenTexel, x, 40, horizonScreenY, fogColor, &frame)
	if got != fogColor {
		t.Errorf("Expected fog fallback off-screen, got %v", got)
	}
}
