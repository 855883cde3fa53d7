package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

const (
	nearPlane = 0.0001
	farPlane  = 1000.0

	// Screen pixels are rendered 20% taller than wide so the scene has the
	// aspect the source art was drawn for.
	tallPixelRatio = 1.20
)

// Camera is the per-frame view state. The 2.5D caster is tricked into
// thinking the viewer always looks straight ahead; the Y component of the
// true direction only shears projected Y coordinates.
type Camera struct {
	Eye          mgl64.Vec3
	EyeVoxelReal mgl64.Vec3
	EyeVoxel     [3]int
	Direction    mgl64.Vec3
	Transform    mgl64.Mat4

	ForwardX, ForwardZ float64
	RightX, RightZ     float64

	FovY   float64
	Zoom   float64
	Aspect float64

	// Forward and right modifiers for interpolating rays across the screen
	// with vertical FOV and aspect ratio taken into account.
	ForwardZoomedX, ForwardZoomedZ float64
	RightAspectedX, RightAspectedZ float64

	// 2D vectors along the left and right edges of the view frustum.
	FrustumLeftX, FrustumLeftZ   float64
	FrustumRightX, FrustumRightZ float64

	YAngleRadians float64
	YShear        float64
}

// viewMatrix builds the world-to-camera matrix from unnormalized axes. The
// up axis is deliberately non-unit to account for tall pixels.
func viewMatrix(eye, forward, right, up mgl64.Vec3) mgl64.Mat4 {
	rotation := mgl64.Mat4{
		right.X(), up.X(), -forward.X(), 0.0,
		right.Y(), up.Y(), -forward.Y(), 0.0,
		right.Z(), up.Z(), -forward.Z(), 0.0,
		0.0, 0.0, 0.0, 1.0,
	}
	translation := mgl64.Translate3D(-eye.X(), -eye.Y(), -eye.Z())
	return rotation.Mul4(translation)
}

// NewCamera derives the frame-immutable camera from the raw player pose.
// Panics on a degenerate direction.
func NewCamera(eye, direction mgl64.Vec3, fovY, aspect, projectionModifier float64) Camera {
	if mathutil.AlmostZero(direction.Len()) {
		panic("camera direction is degenerate")
	}

	var c Camera
	c.Eye = eye
	c.Direction = direction
	c.EyeVoxelReal = mgl64.Vec3{
		math.Floor(eye.X()),
		math.Floor(eye.Y()),
		math.Floor(eye.Z()),
	}
	c.EyeVoxel = [3]int{
		int(c.EyeVoxelReal.X()),
		int(c.EyeVoxelReal.Y()),
		int(c.EyeVoxelReal.Z()),
	}

	forwardXZ := mgl64.Vec3{direction.X(), 0.0, direction.Z()}.Normalize()
	rightXZ := forwardXZ.Cross(mgl64.Vec3{0.0, 1.0, 0.0}).Normalize()

	up := mgl64.Vec3{0.0, 1.0, 0.0}.Mul(projectionModifier)
	view := viewMatrix(eye, forwardXZ, rightXZ, up)
	projection := mgl64.Perspective(fovY*mathutil.DegToRad, aspect, nearPlane, farPlane)
	c.Transform = projection.Mul4(view)

	c.ForwardX = forwardXZ.X()
	c.ForwardZ = forwardXZ.Z()
	c.RightX = rightXZ.X()
	c.RightZ = rightXZ.Z()

	c.FovY = fovY
	c.Zoom = mathutil.VerticalFovToZoom(fovY)
	c.Aspect = aspect

	c.ForwardZoomedX = c.ForwardX * c.Zoom
	c.ForwardZoomedZ = c.ForwardZ * c.Zoom
	c.RightAspectedX = c.RightX * c.Aspect
	c.RightAspectedZ = c.RightZ * c.Aspect

	frustumLeft := mgl64.Vec2{
		c.ForwardZoomedX - c.RightAspectedX,
		c.ForwardZoomedZ - c.RightAspectedZ,
	}.Normalize()
	frustumRight := mgl64.Vec2{
		c.ForwardZoomedX + c.RightAspectedX,
		c.ForwardZoomedZ + c.RightAspectedZ,
	}.Normalize()
	c.FrustumLeftX = frustumLeft.X()
	c.FrustumLeftZ = frustumLeft.Y()
	c.FrustumRightX = frustumRight.X()
	c.FrustumRightZ = frustumRight.Y()

	c.YAngleRadians = mathutil.YAngle(direction)

	// Y-shearing moves all projected Y coordinates by some number of screen
	// heights based on the vertical look angle and zoom. Roughly -1 to 1 at
	// a 90 degree FOV for acceptable skewing.
	c.YShear = math.Tan(c.YAngleRadians) * c.Zoom

	return c
}

// XZAngleRadians is the camera's heading in the XZ plane, in [0, 2pi).
func (c *Camera) XZAngleRadians() float64 {
	return mathutil.FullAtan2(c.ForwardX, c.ForwardZ)
}

// AdjustedEyeVoxelY is the eye's voxel Y for a non-unit ceiling height.
func (c *Camera) AdjustedEyeVoxelY(ceilingHeight float64) int {
	return int(c.Eye.Y() / ceilingHeight)
}

// ScreenPointToRay converts 0-1 screen percentages to a world-space ray
// direction through that pixel, honoring y-shear and tall pixels.
func ScreenPointToRay(xPercent, yPercent float64, cameraDirection mgl64.Vec3, fovY, aspect float64) mgl64.Vec3 {
	up := mgl64.Vec3{0.0, 1.0, 0.0}
	right := cameraDirection.Cross(up).Normalize()
	forward := up.Cross(right).Normalize()

	rightPercent := ((xPercent * 2.0) - 1.0) * aspect

	// Y coordinates on-screen grow downward, so the up component subtracts.
	yAngleRadians := mathutil.YAngle(cameraDirection)
	zoom := mathutil.VerticalFovToZoom(fovY)
	yShear := math.Tan(yAngleRadians) * zoom
	upPercent := (((yPercent - 0.50) + yShear) * 2.0) * (1.0 / tallPixelRatio)

	forwardComponent := forward.Mul(zoom)
	rightComponent := right.Mul(rightPercent)
	upComponent := up.Mul(upPercent)
	return forwardComponent.Add(rightComponent).Sub(upComponent).Normalize()
}
