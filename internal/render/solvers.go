package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/voxel"
)

// doorMinVisible is the fraction of a sliding or splitting door that stays
// visible at 100% open.
const doorMinVisible = 0.10

// RayHit is the result of a geometry intersection inside a voxel: the 0-1
// horizontal texture coordinate, the XZ hit point, the depth past the near
// point, and the face normal.
type RayHit struct {
	U      float64
	Point  mgl64.Vec2
	InnerZ float64
	Normal mgl64.Vec3
}

func leftPerp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

func rightPerp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.Y(), -v.X()}
}

func cross2(a, b mgl64.Vec2) float64 {
	return (a.X() * b.Y()) - (b.X() * a.Y())
}

func lerpVec2(a, b mgl64.Vec2, percent float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(percent))
}

// findDiag1Intersection intersects the ray segment with the diagonal from
// (nearX, nearZ) to (farX, farZ). Returns whether an intersection occurred
// within the voxel.
func findDiag1Intersection(voxelX, voxelZ int, nearPoint, farPoint mgl64.Vec2, hit *RayHit) bool {
	diagStart := mgl64.Vec2{float64(voxelX), float64(voxelZ)}
	diagMiddle := mgl64.Vec2{float64(voxelX) + 0.50, float64(voxelZ) + 0.50}

	// Normals for the left and right faces of the wall, facing up-left and
	// down-right respectively (magic number is sqrt(2) / 2).
	leftNormal := mgl64.Vec3{0.7071068, 0.0, -0.7071068}
	rightNormal := mgl64.Vec3{-0.7071068, 0.0, 0.7071068}

	// An intersection occurs if the near and far points are on different
	// sides of the diagonal line, or if the near point lies on it.
	leftNormal2D := mgl64.Vec2{leftNormal.X(), leftNormal.Z()}
	nearOnLeft := leftNormal2D.Dot(nearPoint.Sub(diagMiddle)) >= 0.0
	farOnLeft := leftNormal2D.Dot(farPoint.Sub(diagMiddle)) >= 0.0
	if nearOnLeft == farOnLeft {
		return false
	}

	dx := farPoint.X() - nearPoint.X()
	dz := farPoint.Y() - nearPoint.Y()

	// The hit coordinate is a 0->1 value representing where the diagonal
	// was hit. This treats the X axis as the vertical axis and the Z axis
	// as the horizontal axis, with special cases for horizontal and
	// vertical rays solved by axis intercept instead of the general line
	// intersection, avoiding a divide by zero.
	var hitCoordinate float64
	isHorizontal := math.Abs(dx) < mathutil.Epsilon
	isVertical := math.Abs(dz) < mathutil.Epsilon
	if isHorizontal {
		hitCoordinate = nearPoint.X() - diagStart.X()
	} else if isVertical {
		hitCoordinate = nearPoint.Y() - diagStart.Y()
	} else {
		// Slope of the diagonal line (trivial, x = z).
		diagSlope := 1.0
		diagXIntercept := diagStart.X() - diagStart.Y()

		raySlope := dx / dz
		rayXIntercept := nearPoint.X() - (raySlope * nearPoint.Y())

		hitCoordinate = ((rayXIntercept - diagXIntercept) / (diagSlope - raySlope)) - diagStart.Y()
	}

	hit.U = mathutil.Clamp(hitCoordinate, 0.0, mathutil.JustBelowOne)
	hit.Point = mgl64.Vec2{float64(voxelX) + hit.U, float64(voxelZ) + hit.U}
	hit.InnerZ = hit.Point.Sub(nearPoint).Len()
	if nearOnLeft {
		hit.Normal = leftNormal
	} else {
		hit.Normal = rightNormal
	}
	return true
}

// findDiag2Intersection intersects the ray segment with the diagonal from
// (farX, nearZ) to (nearX, farZ).
func findDiag2Intersection(voxelX, voxelZ int, nearPoint, farPoint mgl64.Vec2, hit *RayHit) bool {
	diagStart := mgl64.Vec2{float64(voxelX) + mathutil.JustBelowOne, float64(voxelZ)}
	diagMiddle := mgl64.Vec2{float64(voxelX) + 0.50, float64(voxelZ) + 0.50}

	// Normals face up-right and down-left respectively.
	leftNormal := mgl64.Vec3{0.7071068, 0.0, 0.7071068}
	rightNormal := mgl64.Vec3{-0.7071068, 0.0, -0.7071068}

	leftNormal2D := mgl64.Vec2{leftNormal.X(), leftNormal.Z()}
	nearOnLeft := leftNormal2D.Dot(nearPoint.Sub(diagMiddle)) >= 0.0
	farOnLeft := leftNormal2D.Dot(farPoint.Sub(diagMiddle)) >= 0.0
	if nearOnLeft == farOnLeft {
		return false
	}

	dx := farPoint.X() - nearPoint.X()
	dz := farPoint.Y() - nearPoint.Y()

	var hitCoordinate float64
	isHorizontal := math.Abs(dx) < mathutil.Epsilon
	isVertical := math.Abs(dz) < mathutil.Epsilon
	if isHorizontal {
		// The X axis intercept is the complement of the intersection
		// coordinate.
		hitCoordinate = mathutil.JustBelowOne - (nearPoint.X() - diagStart.X())
	} else if isVertical {
		hitCoordinate = mathutil.JustBelowOne - (nearPoint.Y() - diagStart.Y())
	} else {
		// Slope of the diagonal line (trivial, x = -z).
		diagSlope := -1.0
		diagXIntercept := diagStart.X() + diagStart.Y()

		raySlope := dx / dz
		rayXIntercept := nearPoint.X() - (raySlope * nearPoint.Y())

		hitCoordinate = ((rayXIntercept - diagXIntercept) / (diagSlope - raySlope)) - diagStart.Y()
	}

	hit.U = mathutil.Clamp(hitCoordinate, 0.0, mathutil.JustBelowOne)
	hit.Point = mgl64.Vec2{
		float64(voxelX) + (mathutil.JustBelowOne - hit.U),
		float64(voxelZ) + hit.U,
	}
	hit.InnerZ = hit.Point.Sub(nearPoint).Len()
	if nearOnLeft {
		hit.Normal = leftNormal
	} else {
		hit.Normal = rightNormal
	}
	return true
}

// getInitialChasmFarFacing decides which face the ray exits the camera's own
// voxel through, by comparing the ray angle to the corner-to-eye angles.
func getInitialChasmFarFacing(voxelX, voxelZ int, eye mgl64.Vec2, ray Ray) voxel.Facing {
	angle := mathutil.FullAtan2(ray.DirX, ray.DirZ)

	bottomLeftCorner := mgl64.Vec2{float64(voxelX), float64(voxelZ)}
	topLeftCorner := mgl64.Vec2{bottomLeftCorner.X() + 1.0, bottomLeftCorner.Y()}
	bottomRightCorner := mgl64.Vec2{bottomLeftCorner.X(), bottomLeftCorner.Y() + 1.0}
	topRightCorner := mgl64.Vec2{topLeftCorner.X(), bottomRightCorner.Y()}

	upLeft := topLeftCorner.Sub(eye).Normalize()
	upRight := topRightCorner.Sub(eye).Normalize()
	downLeft := bottomLeftCorner.Sub(eye).Normalize()
	downRight := bottomRightCorner.Sub(eye).Normalize()
	upLeftAngle := mathutil.FullAtan2(upLeft.X(), upLeft.Y())
	upRightAngle := mathutil.FullAtan2(upRight.X(), upRight.Y())
	downLeftAngle := mathutil.FullAtan2(downLeft.X(), downLeft.Y())
	downRightAngle := mathutil.FullAtan2(downRight.X(), downRight.Y())

	if angle < upRightAngle || angle > downRightAngle {
		return voxel.FacingPositiveZ
	} else if angle < upLeftAngle {
		return voxel.FacingPositiveX
	} else if angle < downLeftAngle {
		return voxel.FacingNegativeZ
	}
	return voxel.FacingNegativeX
}

// getChasmFarFacing decides which face the ray exits a non-initial voxel
// through. The near facing excludes the corner nearest the camera, which is
// never a valid far face from that entry side.
func getChasmFarFacing(voxelX, voxelZ int, nearFacing voxel.Facing, camera *Camera, ray Ray) voxel.Facing {
	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}

	angle := mathutil.FullAtan2(ray.DirX, ray.DirZ)

	bottomLeftCorner := mgl64.Vec2{float64(voxelX), float64(voxelZ)}
	topLeftCorner := mgl64.Vec2{bottomLeftCorner.X() + 1.0, bottomLeftCorner.Y()}
	bottomRightCorner := mgl64.Vec2{bottomLeftCorner.X(), bottomLeftCorner.Y() + 1.0}
	topRightCorner := mgl64.Vec2{topLeftCorner.X(), bottomRightCorner.Y()}

	upLeft := topLeftCorner.Sub(eye2D).Normalize()
	upRight := topRightCorner.Sub(eye2D).Normalize()
	downLeft := bottomLeftCorner.Sub(eye2D).Normalize()
	downRight := bottomRightCorner.Sub(eye2D).Normalize()
	upLeftAngle := mathutil.FullAtan2(upLeft.X(), upLeft.Y())
	upRightAngle := mathutil.FullAtan2(upRight.X(), upRight.Y())
	downLeftAngle := mathutil.FullAtan2(downLeft.X(), downLeft.Y())
	downRightAngle := mathutil.FullAtan2(downRight.X(), downRight.Y())

	switch nearFacing {
	case voxel.FacingPositiveX:
		// Starts on (1.0, z).
		onRight := camera.EyeVoxel[2] > voxelZ
		onLeft := camera.EyeVoxel[2] < voxelZ

		if onRight {
			// Ignore top-right corner.
			if angle < downLeftAngle {
				return voxel.FacingNegativeZ
			}
			return voxel.FacingNegativeX
		} else if onLeft {
			// Ignore top-left corner.
			if angle > downLeftAngle && angle < downRightAngle {
				return voxel.FacingNegativeX
			}
			return voxel.FacingPositiveZ
		}
		if angle > downRightAngle {
			return voxel.FacingPositiveZ
		} else if angle > downLeftAngle {
			return voxel.FacingNegativeX
		}
		return voxel.FacingNegativeZ

	case voxel.FacingNegativeX:
		// Starts on (0.0, z).
		onRight := camera.EyeVoxel[2] > voxelZ
		onLeft := camera.EyeVoxel[2] < voxelZ

		if onRight {
			// Ignore bottom-right corner.
			if angle < upLeftAngle {
				return voxel.FacingPositiveX
			}
			return voxel.FacingNegativeZ
		} else if onLeft {
			// Ignore bottom-left corner.
			if angle < upRightAngle {
				return voxel.FacingPositiveZ
			}
			return voxel.FacingPositiveX
		}
		if angle < upRightAngle {
			return voxel.FacingPositiveZ
		} else if angle < upLeftAngle {
			return voxel.FacingPositiveX
		}
		return voxel.FacingNegativeZ

	case voxel.FacingPositiveZ:
		// Starts on (x, 1.0).
		onTop := camera.EyeVoxel[0] > voxelX
		onBottom := camera.EyeVoxel[0] < voxelX

		if onTop {
			// Ignore top-right corner.
			if angle < downLeftAngle {
				return voxel.FacingNegativeZ
			}
			return voxel.FacingNegativeX
		} else if onBottom {
			// Ignore bottom-right corner.
			if angle < upLeftAngle {
				return voxel.FacingPositiveX
			}
			return voxel.FacingNegativeZ
		}
		if angle < upLeftAngle {
			return voxel.FacingPositiveX
		} else if angle < downLeftAngle {
			return voxel.FacingNegativeZ
		}
		return voxel.FacingNegativeX

	default:
		// Starts on (x, 0.0). This side splits the angle origin, so it
		// needs some special cases.
		onTop := camera.EyeVoxel[0] > voxelX
		onBottom := camera.EyeVoxel[0] < voxelX

		if onTop {
			// Ignore top-left corner.
			if angle > downLeftAngle && angle < downRightAngle {
				return voxel.FacingNegativeX
			}
			return voxel.FacingPositiveZ
		} else if onBottom {
			// Ignore bottom-left corner.
			if angle > upRightAngle && angle < upLeftAngle {
				return voxel.FacingPositiveX
			}
			return voxel.FacingPositiveZ
		}
		if angle < upRightAngle || angle > downRightAngle {
			return voxel.FacingPositiveZ
		} else if angle > downLeftAngle {
			return voxel.FacingNegativeX
		}
		return voxel.FacingPositiveX
	}
}

// edgeFarU computes the horizontal texture coordinate of a far face hit.
func edgeFarU(farPoint mgl64.Vec2, farFacing voxel.Facing, flipped bool) float64 {
	var uVal float64
	switch farFacing {
	case voxel.FacingPositiveX:
		uVal = mathutil.JustBelowOne - (farPoint.Y() - math.Floor(farPoint.Y()))
	case voxel.FacingNegativeX:
		uVal = farPoint.Y() - math.Floor(farPoint.Y())
	case voxel.FacingPositiveZ:
		uVal = farPoint.X() - math.Floor(farPoint.X())
	default:
		uVal = mathutil.JustBelowOne - (farPoint.X() - math.Floor(farPoint.X()))
	}

	if flipped {
		uVal = mathutil.JustBelowOne - uVal
	}
	return mathutil.Clamp(uVal, 0.0, mathutil.JustBelowOne)
}

// findInitialEdgeIntersection tests an edge voxel in the camera's own
// column. The edge is only hit when the ray exits through its facing.
func findInitialEdgeIntersection(voxelX, voxelZ int, edgeFacing voxel.Facing, flipped bool,
	nearPoint, farPoint mgl64.Vec2, camera *Camera, ray Ray, hit *RayHit) bool {

	farFacing := getInitialChasmFarFacing(voxelX, voxelZ,
		mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}, ray)

	if edgeFacing != farFacing {
		return false
	}

	hit.InnerZ = farPoint.Sub(nearPoint).Len()
	hit.U = edgeFarU(farPoint, farFacing, flipped)
	hit.Point = farPoint
	hit.Normal = farFacing.Normal().Mul(-1.0)
	return true
}

// findEdgeIntersection tests an edge voxel along the ray. The solution is
// trivial when the edge and near facings match.
func findEdgeIntersection(voxelX, voxelZ int, edgeFacing voxel.Facing, flipped bool,
	nearFacing voxel.Facing, nearPoint, farPoint mgl64.Vec2, nearU float64,
	camera *Camera, ray Ray, hit *RayHit) bool {

	if edgeFacing == nearFacing {
		hit.InnerZ = 0.0
		if !flipped {
			hit.U = nearU
		} else {
			hit.U = mathutil.Clamp(mathutil.JustBelowOne-nearU, 0.0, mathutil.JustBelowOne)
		}
		hit.Point = nearPoint
		hit.Normal = nearFacing.Normal()
		return true
	}

	farFacing := getChasmFarFacing(voxelX, voxelZ, nearFacing, camera, ray)
	if edgeFacing != farFacing {
		return false
	}

	hit.InnerZ = farPoint.Sub(nearPoint).Len()
	hit.U = edgeFarU(farPoint, farFacing, flipped)
	hit.Point = farPoint
	hit.Normal = farFacing.Normal().Mul(-1.0)
	return true
}

// swingingDoorHit solves the line-line intersection between the ray segment
// and the rotated door segment.
func swingingDoorHit(pivot, doorVec, nearPoint, farPoint mgl64.Vec2, hit *RayHit) bool {
	p1 := pivot
	v1 := doorVec
	p2 := nearPoint
	v2 := farPoint.Sub(nearPoint)

	// Percent from p1 to (p1 + v1).
	t := cross2(p2.Sub(p1), v2) / cross2(v1, v2)
	if t < 0.0 || t >= 1.0 {
		return false
	}

	hit.Point = p1.Add(v1.Mul(t))
	hit.InnerZ = hit.Point.Sub(nearPoint).Len()
	hit.U = t
	norm2D := rightPerp(v1)
	hit.Normal = mgl64.Vec3{norm2D.X(), 0.0, norm2D.Y()}
	return true
}

// doorPivot picks the hinge corner for a swinging door and the door's
// closed-position direction, biasing the pivot slightly toward the voxel
// center to avoid Z-fighting with adjacent walls.
func doorPivot(voxelX, voxelZ int, cornerX, cornerZ int, interpStart mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	cornerReal := mgl64.Vec2{float64(cornerX), float64(cornerZ)}
	voxelCenter := mgl64.Vec2{float64(voxelX) + 0.50, float64(voxelZ) + 0.50}
	bias := voxelCenter.Sub(cornerReal).Mul(mathutil.Epsilon)
	return cornerReal.Add(bias), interpStart
}

// findInitialSwingingDoorIntersection tests a swinging door in the camera's
// own voxel, with back-face culling so an opening door doesn't block the
// view.
func findInitialSwingingDoorIntersection(voxelX, voxelZ int, percentOpen float64,
	nearPoint, farPoint mgl64.Vec2, xAxis bool, camera *Camera, hit *RayHit) bool {

	var pivot, interpStart mgl64.Vec2
	if xAxis {
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX+1, voxelZ+1, mgl64.Vec2{-1.0, 0.0})
	} else {
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX, voxelZ+1, mgl64.Vec2{0.0, -1.0})
	}

	// The left perpendicular of the closed position is the fully open
	// position.
	interpEnd := leftPerp(interpStart)
	doorVec := lerpVec2(interpStart, interpEnd, 1.0-percentOpen).Normalize()

	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}
	isFrontFace := eye2D.Sub(pivot).Normalize().Dot(leftPerp(doorVec)) > 0.0
	if !isFrontFace {
		return false
	}

	return swingingDoorHit(pivot, doorVec, nearPoint, farPoint, hit)
}

// findInitialDoorIntersection tests a door voxel in the camera's own
// column. Closed doors and all non-swinging types are solved against the
// far facing like a wall.
func findInitialDoorIntersection(voxelX, voxelZ int, doorType voxel.DoorType,
	percentOpen float64, nearPoint, farPoint mgl64.Vec2, camera *Camera, ray Ray,
	grid *voxel.Grid, hit *RayHit) bool {

	// Determine which axis the door opens and closes on by checking the
	// adjacent voxels on the X axis for air. Anything past the map edge is
	// considered air.
	voxelIsAir := func(x, z int) bool {
		if !grid.Contains(x, z) {
			return true
		}
		id := grid.Voxel(x, 1, z)
		return grid.Definition(id).Type == voxel.TypeNone
	}
	xAxis := voxelIsAir(voxelX-1, voxelZ) && voxelIsAir(voxelX+1, voxelZ)

	isClosed := percentOpen == 0.0
	useFarFacing := isClosed || doorType == voxel.DoorSliding ||
		doorType == voxel.DoorRaising || doorType == voxel.DoorSplitting

	if useFarFacing {
		// Treat the door like a wall based on the far facing.
		farFacing := getInitialChasmFarFacing(voxelX, voxelZ,
			mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}, ray)
		doorFacing := voxel.FacingPositiveZ
		if xAxis {
			doorFacing = voxel.FacingPositiveX
		}

		if doorFacing != farFacing {
			return false
		}

		var farU float64
		if xAxis {
			farU = mathutil.JustBelowOne - (farPoint.Y() - math.Floor(farPoint.Y()))
		} else {
			farU = farPoint.X() - math.Floor(farPoint.X())
		}
		farU = mathutil.Clamp(farU, 0.0, mathutil.JustBelowOne)

		switch doorType {
		case voxel.DoorSwinging:
			hit.InnerZ = farPoint.Sub(nearPoint).Len()
			hit.U = farU
			hit.Point = farPoint
			hit.Normal = farFacing.Normal().Mul(-1.0)
			return true

		case voxel.DoorSliding:
			// At 100% open a sliding door is still partially visible.
			visibleAmount := 1.0 - ((1.0 - doorMinVisible) * percentOpen)
			if visibleAmount > farU {
				hit.InnerZ = farPoint.Sub(nearPoint).Len()
				hit.U = mathutil.Clamp(farU+(1.0-visibleAmount), 0.0, mathutil.JustBelowOne)
				hit.Point = farPoint
				hit.Normal = farFacing.Normal().Mul(-1.0)
				return true
			}
			return false

		case voxel.DoorRaising:
			// Raising doors are always hit.
			hit.InnerZ = farPoint.Sub(nearPoint).Len()
			hit.U = farU
			hit.Point = farPoint
			hit.Normal = farFacing.Normal().Mul(-1.0)
			return true

		case voxel.DoorSplitting:
			u, ok := splittingDoorU(farU, percentOpen)
			if !ok {
				return false
			}
			hit.InnerZ = farPoint.Sub(nearPoint).Len()
			hit.U = u
			hit.Point = farPoint
			hit.Normal = farFacing.Normal().Mul(-1.0)
			return true

		default:
			return false
		}
	} else if doorType == voxel.DoorSwinging {
		return findInitialSwingingDoorIntersection(voxelX, voxelZ, percentOpen,
			nearPoint, farPoint, xAxis, camera, hit)
	}

	return false
}

// splittingDoorU maps a face U to the splitting door's texture U, or
// reports no hit when the U falls in the opened gap between the halves.
func splittingDoorU(faceU, percentOpen float64) (float64, bool) {
	leftHalf := faceU < 0.50
	rightHalf := faceU > 0.50

	if leftHalf {
		leftVisAmount := 0.50 - ((0.50 - doorMinVisible) * percentOpen)
		if faceU > leftVisAmount {
			return 0.0, false
		}
		return mathutil.Clamp((faceU+0.50)-leftVisAmount, 0.0, mathutil.JustBelowOne), true
	} else if rightHalf {
		rightVisAmount := 0.50 + ((0.50 - doorMinVisible) * percentOpen)
		if faceU < rightVisAmount {
			return 0.0, false
		}
		return mathutil.Clamp((faceU+0.50)-rightVisAmount, 0.0, mathutil.JustBelowOne), true
	}

	// Midpoint, only hit when the door is completely closed.
	if percentOpen == 0.0 {
		return 0.50, true
	}
	return 0.0, false
}

// findSwingingDoorIntersection tests a swinging door along the ray, hinged
// on a corner of the near face.
func findSwingingDoorIntersection(voxelX, voxelZ int, percentOpen float64,
	nearFacing voxel.Facing, nearPoint, farPoint mgl64.Vec2, hit *RayHit) bool {

	var pivot, interpStart mgl64.Vec2
	switch nearFacing {
	case voxel.FacingPositiveX:
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX+1, voxelZ+1, mgl64.Vec2{-1.0, 0.0})
	case voxel.FacingNegativeX:
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX, voxelZ, mgl64.Vec2{1.0, 0.0})
	case voxel.FacingPositiveZ:
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX, voxelZ+1, mgl64.Vec2{0.0, -1.0})
	case voxel.FacingNegativeZ:
		pivot, interpStart = doorPivot(voxelX, voxelZ, voxelX+1, voxelZ, mgl64.Vec2{0.0, 1.0})
	default:
		panic("invalid near facing")
	}

	interpEnd := leftPerp(interpStart)
	doorVec := lerpVec2(interpStart, interpEnd, 1.0-percentOpen).Normalize()

	return swingingDoorHit(pivot, doorVec, nearPoint, farPoint, hit)
}

// findDoorIntersection tests a door voxel along the ray. Closed doors of
// every type degenerate to wall behavior with the wall's U coordinate.
func findDoorIntersection(voxelX, voxelZ int, doorType voxel.DoorType, percentOpen float64,
	nearFacing voxel.Facing, nearPoint, farPoint mgl64.Vec2, nearU float64, hit *RayHit) bool {

	if percentOpen == 0.0 {
		// Treat like a wall.
		hit.InnerZ = 0.0
		hit.U = nearU
		hit.Point = nearPoint
		hit.Normal = nearFacing.Normal()
		return true
	}

	switch doorType {
	case voxel.DoorSwinging:
		return findSwingingDoorIntersection(voxelX, voxelZ, percentOpen, nearFacing,
			nearPoint, farPoint, hit)

	case voxel.DoorSliding:
		// At 100% open a sliding door is still partially visible.
		visibleAmount := 1.0 - ((1.0 - doorMinVisible) * percentOpen)
		if visibleAmount > nearU {
			hit.InnerZ = 0.0
			hit.U = mathutil.Clamp(nearU+(1.0-visibleAmount), 0.0, mathutil.JustBelowOne)
			hit.Point = nearPoint
			hit.Normal = nearFacing.Normal()
			return true
		}
		return false

	case voxel.DoorRaising:
		// Raising doors are always hit.
		hit.InnerZ = 0.0
		hit.U = nearU
		hit.Point = nearPoint
		hit.Normal = nearFacing.Normal()
		return true

	case voxel.DoorSplitting:
		u, ok := splittingDoorU(nearU, percentOpen)
		if !ok {
			return false
		}
		hit.InnerZ = 0.0
		hit.U = u
		hit.Point = nearPoint
		hit.Normal = nearFacing.Normal()
		return true

	default:
		return false
	}
}
