package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

// DrawRange is the unit of vertical column drawing: the projected screen Y
// bounds before clamping, plus the clamped integer pixel bounds.
type DrawRange struct {
	yProjStart float64
	yProjEnd   float64
	yStart     int
	yEnd       int
}

// projectedY projects a world point and returns its Y percentage on-screen,
// offset by the camera's y-shear.
func projectedY(point mgl64.Vec3, transform *mgl64.Mat4, yShear float64) float64 {
	// Only the Y and W rows of the matrix product matter here.
	projY := transform[1]*point.X() + transform[5]*point.Y() + transform[9]*point.Z() + transform[13]
	projW := transform[3]*point.X() + transform[7]*point.Y() + transform[11]*point.Z() + transform[15]
	projY /= projW

	return (0.50 + yShear) - (projY * 0.50)
}

// lowerBoundedPixel rounds a projected coordinate to its first pixel.
func lowerBoundedPixel(projected float64, frameDim int) int {
	return mathutil.ClampInt(int(math.Ceil(projected-0.50)), 0, frameDim)
}

// upperBoundedPixel rounds a projected coordinate to its last pixel.
func upperBoundedPixel(projected float64, frameDim int) int {
	return mathutil.ClampInt(int(math.Floor(projected+0.50)), 0, frameDim)
}

func makeDrawRange(startPoint, endPoint mgl64.Vec3, camera *Camera, frame *FrameView) DrawRange {
	yProjStart := projectedY(startPoint, &camera.Transform, camera.YShear) * frame.heightReal
	yProjEnd := projectedY(endPoint, &camera.Transform, camera.YShear) * frame.heightReal
	return DrawRange{
		yProjStart: yProjStart,
		yProjEnd:   yProjEnd,
		yStart:     lowerBoundedPixel(yProjStart, frame.height),
		yEnd:       upperBoundedPixel(yProjEnd, frame.height),
	}
}

// makeDrawRangeTwoPart makes two contiguous draw ranges sharing the middle
// projection, so no pixel row is drawn twice or skipped at the seam.
func makeDrawRangeTwoPart(startPoint, midPoint, endPoint mgl64.Vec3, camera *Camera,
	frame *FrameView) [2]DrawRange {

	startYProjStart := projectedY(startPoint, &camera.Transform, camera.YShear) * frame.heightReal
	startYProjEnd := projectedY(midPoint, &camera.Transform, camera.YShear) * frame.heightReal
	endYProjEnd := projectedY(endPoint, &camera.Transform, camera.YShear) * frame.heightReal

	startYStart := lowerBoundedPixel(startYProjStart, frame.height)
	startYEnd := upperBoundedPixel(startYProjEnd, frame.height)
	endYEnd := upperBoundedPixel(endYProjEnd, frame.height)

	return [2]DrawRange{
		{yProjStart: startYProjStart, yProjEnd: startYProjEnd, yStart: startYStart, yEnd: startYEnd},
		{yProjStart: startYProjEnd, yProjEnd: endYProjEnd, yStart: startYEnd, yEnd: endYEnd},
	}
}

func makeDrawRangeThreePart(startPoint, midPoint1, midPoint2, endPoint mgl64.Vec3,
	camera *Camera, frame *FrameView) [3]DrawRange {

	startYProjStart := projectedY(startPoint, &camera.Transform, camera.YShear) * frame.heightReal
	startYProjEnd := projectedY(midPoint1, &camera.Transform, camera.YShear) * frame.heightReal
	mid1YProjEnd := projectedY(midPoint2, &camera.Transform, camera.YShear) * frame.heightReal
	mid2YProjEnd := projectedY(endPoint, &camera.Transform, camera.YShear) * frame.heightReal

	startYStart := lowerBoundedPixel(startYProjStart, frame.height)
	startYEnd := upperBoundedPixel(startYProjEnd, frame.height)
	mid1YEnd := upperBoundedPixel(mid1YProjEnd, frame.height)
	mid2YEnd := upperBoundedPixel(mid2YProjEnd, frame.height)

	return [3]DrawRange{
		{yProjStart: startYProjStart, yProjEnd: startYProjEnd, yStart: startYStart, yEnd: startYEnd},
		{yProjStart: startYProjEnd, yProjEnd: mid1YProjEnd, yStart: startYEnd, yEnd: mid1YEnd},
		{yProjStart: mid1YProjEnd, yProjEnd: mid2YProjEnd, yStart: mid1YEnd, yEnd: mid2YEnd},
	}
}
