package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// JustBelowOne is the largest double strictly less than 1.0, used to keep
// normalized texture coordinates inside [0, 1).
var JustBelowOne = math.Nextafter(1.0, 0.0)

// Epsilon for floating-point comparisons against zero.
const Epsilon = 1.0e-5

const (
	DegToRad = math.Pi / 180.0
	RadToDeg = 180.0 / math.Pi
	TwoPi    = 2.0 * math.Pi
)

// Clamp limits value to the inclusive range [low, high].
func Clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// ClampInt limits value to the inclusive range [low, high].
func ClampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// Lerp interpolates linearly between a and b by percent.
func Lerp(a, b, percent float64) float64 {
	return a + ((b - a) * percent)
}

// LerpVec3 interpolates each component of a toward b by percent.
func LerpVec3(a, b mgl64.Vec3, percent float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(a.X(), b.X(), percent),
		Lerp(a.Y(), b.Y(), percent),
		Lerp(a.Z(), b.Z(), percent),
	}
}

// AlmostZero returns whether value is within Epsilon of zero.
func AlmostZero(value float64) bool {
	return math.Abs(value) < Epsilon
}

// AlmostEqual returns whether a and b are within Epsilon of each other.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// FullAtan2 is a variant of atan2 with a range of [0, 2pi) instead of
// [-pi, pi]. The argument order matches atan2.
func FullAtan2(y, x float64) float64 {
	angle := math.Atan2(y, x)
	if angle < 0.0 {
		angle += TwoPi
	}
	return angle
}

// VerticalFovToZoom converts a vertical field of view in degrees to camera
// zoom, where 90 degrees equals 1.0 zoom.
func VerticalFovToZoom(fovY float64) float64 {
	return 1.0 / math.Tan((fovY*0.50)*DegToRad)
}

// VerticalFovToHorizontalFov converts a vertical field of view in degrees to
// the horizontal field of view for the given aspect ratio.
func VerticalFovToHorizontalFov(fovY, aspect float64) float64 {
	if fovY <= 0.0 || fovY >= 180.0 {
		panic("vertical FOV out of range")
	}
	if aspect <= 0.0 {
		panic("aspect ratio must be positive")
	}

	halfDim := aspect * math.Tan((fovY*0.50)*DegToRad)
	return 2.0 * math.Atan(halfDim) * RadToDeg
}

// RealIndex gets a real (not integer) index in a buffer from the given
// percent.
func RealIndex(bufferSize int, percent float64) float64 {
	return float64(bufferSize) * percent
}

// WrappedIndex wraps the given index into the buffer's range, so a buffer
// size of 5 maps index 5 to 0 and index -1 to 4.
func WrappedIndex(bufferSize, index int) int {
	for index >= bufferSize {
		index -= bufferSize
	}
	for index < 0 {
		index += bufferSize
	}
	return index
}

// YAngle returns the angle of the vector above or below the horizon in
// radians.
func YAngle(v mgl64.Vec3) float64 {
	length := v.Len()
	if AlmostZero(length) {
		return 0.0
	}
	return math.Asin(Clamp(v.Y()/length, -1.0, 1.0))
}

// IsPointInHalfSpace returns whether point lies in the half space divided at
// dividerPoint with the given normal.
func IsPointInHalfSpace(point, dividerPoint, normal mgl64.Vec2) bool {
	return point.Sub(dividerPoint).Dot(normal) >= 0.0
}

// TriangleCircleIntersection returns whether the triangle (counter-clockwise
// points) and circle intersect each other.
func TriangleCircleIntersection(p0, p1, p2, circlePoint mgl64.Vec2, circleRadius float64) bool {
	radiusSqr := circleRadius * circleRadius

	// Check if the circle's center is near or inside the triangle.
	insideCount := 0
	for _, edge := range [3][2]mgl64.Vec2{{p0, p1}, {p1, p2}, {p2, p0}} {
		edgeVec := edge[1].Sub(edge[0])
		inwardNormal := mgl64.Vec2{-edgeVec.Y(), edgeVec.X()}
		if IsPointInHalfSpace(circlePoint, edge[0], inwardNormal) {
			insideCount++
		}

		// Distance from the circle's center to the edge segment.
		edgeLenSqr := edgeVec.Dot(edgeVec)
		t := 0.0
		if edgeLenSqr > 0.0 {
			t = Clamp(circlePoint.Sub(edge[0]).Dot(edgeVec)/edgeLenSqr, 0.0, 1.0)
		}

		closest := edge[0].Add(edgeVec.Mul(t))
		diff := circlePoint.Sub(closest)
		if diff.Dot(diff) <= radiusSqr {
			return true
		}
	}

	return insideCount == 3
}
