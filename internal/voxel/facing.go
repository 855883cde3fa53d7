package voxel

import "github.com/go-gl/mathgl/mgl64"

// Facing is one of the four axis-aligned directions a voxel face points
// toward in the XZ plane.
type Facing int

const (
	FacingPositiveX Facing = iota
	FacingNegativeX
	FacingPositiveZ
	FacingNegativeZ
)

// Normal returns the outward direction of the facing in the XZ plane.
func (f Facing) Normal() mgl64.Vec3 {
	switch f {
	case FacingPositiveX:
		return mgl64.Vec3{1.0, 0.0, 0.0}
	case FacingNegativeX:
		return mgl64.Vec3{-1.0, 0.0, 0.0}
	case FacingPositiveZ:
		return mgl64.Vec3{0.0, 0.0, 1.0}
	case FacingNegativeZ:
		return mgl64.Vec3{0.0, 0.0, -1.0}
	default:
		panic("invalid facing")
	}
}

// Opposite returns the facing pointing the other way.
func (f Facing) Opposite() Facing {
	switch f {
	case FacingPositiveX:
		return FacingNegativeX
	case FacingNegativeX:
		return FacingPositiveX
	case FacingPositiveZ:
		return FacingNegativeZ
	case FacingNegativeZ:
		return FacingPositiveZ
	default:
		panic("invalid facing")
	}
}

func (f Facing) String() string {
	switch f {
	case FacingPositiveX:
		return "+X"
	case FacingNegativeX:
		return "-X"
	case FacingPositiveZ:
		return "+Z"
	case FacingNegativeZ:
		return "-Z"
	default:
		return "?"
	}
}
