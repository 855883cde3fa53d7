package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

func testCamera(eye, direction mgl64.Vec3) Camera {
	return NewCamera(eye, direction, 75.0, 320.0/200.0, tallPixelRatio)
}

func TestNewCamera_LevelDirection(t *testing.T) {
	camera := testCamera(mgl64.Vec3{5.0, 0.5, 5.0}, mgl64.Vec3{0.0, 0.0, 1.0})

	if !mathutil.AlmostZero(camera.YShear) {
		t.Errorf("Expected no y-shear for level direction, got %f", camera.YShear)
	}
	if !mathutil.AlmostEqual(camera.ForwardZ, 1.0) || !mathutil.AlmostZero(camera.ForwardX) {
		t.Errorf("Unexpected forward (%f, %f)", camera.ForwardX, camera.ForwardZ)
	}
	// Right of +Z is -X under a Y-up right-handed cross product.
	if !mathutil.AlmostEqual(camera.RightX, -1.0) {
		t.Errorf("Unexpected right (%f, %f)", camera.RightX, camera.RightZ)
	}
}

func TestNewCamera_LookDownShearsNegative(t *testing.T) {
	level := testCamera(mgl64.Vec3{}, mgl64.Vec3{0.0, 0.0, 1.0})
	down := testCamera(mgl64.Vec3{}, mgl64.Vec3{0.0, -0.5, 1.0})

	// Looking down shifts projected rows upward on screen, a negative shear.
	if down.YShear >= level.YShear {
		t.Errorf("Expected negative y-shear when looking down, got %f", down.YShear)
	}

	// The XZ forward stays normalized regardless of pitch.
	forwardLen := math.Hypot(down.ForwardX, down.ForwardZ)
	if !mathutil.AlmostEqual(forwardLen, 1.0) {
		t.Errorf("Expected unit XZ forward, got length %f", forwardLen)
	}
}

func TestNewCamera_DegeneratePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for zero direction")
		}
	}()
	testCamera(mgl64.Vec3{}, mgl64.Vec3{})
}

func TestCamera_AdjustedEyeVoxelY(t *testing.T) {
	camera := testCamera(mgl64.Vec3{0.0, 2.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})

	if got := camera.AdjustedEyeVoxelY(1.0); got != 2 {
		t.Errorf("Expected voxel Y 2 at unit ceiling, got %d", got)
	}
	// A taller ceiling puts the same eye in a lower voxel.
	if got := camera.AdjustedEyeVoxelY(2.0); got != 1 {
		t.Errorf("Expected voxel Y 1 at ceiling height 2, got %d", got)
	}
}

func TestCamera_XZAngleRadians(t *testing.T) {
	camera := testCamera(mgl64.Vec3{}, mgl64.Vec3{0.0, 0.0, 1.0})
	// FullAtan2(forwardX, forwardZ) with forward +Z gives 0.
	if got := camera.XZAngleRadians(); !mathutil.AlmostZero(got) {
		t.Errorf("Expected heading 0 for +Z, got %f", got)
	}

	camera = testCamera(mgl64.Vec3{}, mgl64.Vec3{1.0, 0.0, 0.0})
	if got := camera.XZAngleRadians(); !mathutil.AlmostEqual(got, math.Pi/2.0) {
		t.Errorf("Expected heading pi/2 for +X, got %f", got)
	}
}

func TestScreenPointToRay_Center(t *testing.T) {
	direction := mgl64.Vec3{0.0, 0.0, 1.0}
	ray := ScreenPointToRay(0.50, 0.50, direction, 75.0, 320.0/200.0)

	// The screen center looks straight along the camera direction.
	if !mathutil.AlmostEqual(ray.Dot(direction), 1.0) {
		t.Errorf("Expected center ray along camera direction, got %v", ray)
	}
}

func TestScreenPointToRay_EdgesDiverge(t *testing.T) {
	direction := mgl64.Vec3{0.0, 0.0, 1.0}

	left := ScreenPointToRay(0.0, 0.50, direction, 75.0, 320.0/200.0)
	right := ScreenPointToRay(1.0, 0.50, direction, 75.0, 320.0/200.0)
	top := ScreenPointToRay(0.50, 0.0, direction, 75.0, 320.0/200.0)
	bottom := ScreenPointToRay(0.50, 1.0, direction, 75.0, 320.0/200.0)

	// With forward +Z, screen left is +X (right vector is -X).
	if left.X() <= 0.0 || right.X() >= 0.0 {
		t.Errorf("Expected horizontal divergence, got left %v right %v", left, right)
	}
	if top.Y() <= 0.0 || bottom.Y() >= 0.0 {
		t.Errorf("Expected vertical divergence, got top %v bottom %v", top, bottom)
	}
}

func TestProjectedY_DepthOrdering(t *testing.T) {
	camera := testCamera(mgl64.Vec3{0.0, 0.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})

	// A point above the eye projects above a point below it.
	high := projectedY(mgl64.Vec3{0.0, 1.0, 5.0}, &camera.Transform, camera.YShear)
	low := projectedY(mgl64.Vec3{0.0, 0.0, 5.0}, &camera.Transform, camera.YShear)
	if high >= low {
		t.Errorf("Expected higher point to project to smaller Y: %f vs %f", high, low)
	}

	// A point at eye height dead ahead projects to the screen middle.
	mid := projectedY(mgl64.Vec3{0.0, 0.5, 5.0}, &camera.Transform, camera.YShear)
	if !mathutil.AlmostEqual(mid, 0.50) {
		t.Errorf("Expected eye-height point at screen middle, got %f", mid)
	}
}

func TestDrawRangeTwoPart_SharesSeam(t *testing.T) {
	camera := testCamera(mgl64.Vec3{0.0, 0.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	colorBuffer := make([]uint32, 320*200)
	depthBuffer := make([]float64, 320*200)
	frame := newFrameView(colorBuffer, depthBuffer, 320, 200)

	top := mgl64.Vec3{0.0, 1.5, 3.0}
	mid := mgl64.Vec3{0.0, 0.8, 3.0}
	bottom := mgl64.Vec3{0.0, 0.0, 3.0}
	ranges := makeDrawRangeTwoPart(top, mid, bottom, &camera, &frame)

	// No gap and no overlap at the seam.
	if ranges[0].yEnd != ranges[1].yStart {
		t.Errorf("Expected shared seam pixel, got %d and %d", ranges[0].yEnd, ranges[1].yStart)
	}
	if ranges[0].yProjEnd != ranges[1].yProjStart {
		t.Errorf("Expected shared seam projection")
	}
	if ranges[0].yStart > ranges[0].yEnd || ranges[1].yStart > ranges[1].yEnd {
		t.Errorf("Expected non-inverted ranges: %+v", ranges)
	}
}

func TestDrawRange_ClampsToFrame(t *testing.T) {
	camera := testCamera(mgl64.Vec3{0.0, 0.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	colorBuffer := make([]uint32, 320*200)
	depthBuffer := make([]float64, 320*200)
	frame := newFrameView(colorBuffer, depthBuffer, 320, 200)

	// A wall towering over the frustum clamps to the screen rows.
	drawRange := makeDrawRange(mgl64.Vec3{0.0, 50.0, 1.0}, mgl64.Vec3{0.0, -50.0, 1.0},
		&camera, &frame)
	if drawRange.yStart < 0 || drawRange.yEnd > frame.height {
		t.Errorf("Expected pixel bounds inside the frame, got [%d, %d)",
			drawRange.yStart, drawRange.yEnd)
	}
	if drawRange.yStart != 0 || drawRange.yEnd != frame.height {
		t.Errorf("Expected full-height range for a towering wall, got [%d, %d)",
			drawRange.yStart, drawRange.yEnd)
	}
}
