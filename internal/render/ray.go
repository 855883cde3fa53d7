package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/voxel"
)

// Ray is the XZ direction of one screen column's ray.
type Ray struct {
	DirX float64
	DirZ float64
}

// DoorState is an externally animated door keyed by voxel coordinate.
type DoorState struct {
	X, Z        int
	PercentOpen float64
}

// FadeState is a voxel being faded out (destroyed), keyed by coordinate.
type FadeState struct {
	X, Y, Z     int
	PercentDone float64
}

// doorPercentOpen finds the open percent for a door voxel, zero when the
// door is not in the open-doors list.
func doorPercentOpen(voxelX, voxelZ int, openDoors []DoorState) float64 {
	for i := range openDoors {
		if openDoors[i].X == voxelX && openDoors[i].Z == voxelZ {
			return openDoors[i].PercentOpen
		}
	}
	return 0.0
}

// fadingVoxelPercent finds the remaining visibility of a fading voxel, one
// when the voxel is not fading.
func fadingVoxelPercent(voxelX, voxelY, voxelZ int, fadingVoxels []FadeState) float64 {
	for i := range fadingVoxels {
		f := &fadingVoxels[i]
		if f.X == voxelX && f.Y == voxelY && f.Z == voxelZ {
			if remaining := 1.0 - f.PercentDone; remaining > 0.0 {
				if remaining < 1.0 {
					return remaining
				}
				return 1.0
			}
			return 0.0
		}
	}
	return 1.0
}

// rayCast2D walks one screen column's ray through the XZ grid, drawing the
// full vertical voxel stack at each visited column. Initially based on Lode
// Vandevenne's algorithm, extended to keep going past the first wall and to
// render voxels above and below the current floor.
func rayCast2D(x int, camera *Camera, ray Ray, ctx *castContext, occlusion *OcclusionData) {
	dirXSquared := ray.DirX * ray.DirX
	dirZSquared := ray.DirZ * ray.DirZ

	deltaDistX := math.Sqrt(1.0 + (dirZSquared / dirXSquared))
	deltaDistZ := math.Sqrt(1.0 + (dirXSquared / dirZSquared))

	nonNegativeDirX := ray.DirX >= 0.0
	nonNegativeDirZ := ray.DirZ >= 0.0

	var stepX, stepZ int
	var sideDistX, sideDistZ float64
	if nonNegativeDirX {
		stepX = 1
		sideDistX = (camera.EyeVoxelReal.X() + 1.0 - camera.Eye.X()) * deltaDistX
	} else {
		stepX = -1
		sideDistX = (camera.Eye.X() - camera.EyeVoxelReal.X()) * deltaDistX
	}

	if nonNegativeDirZ {
		stepZ = 1
		sideDistZ = (camera.EyeVoxelReal.Z() + 1.0 - camera.Eye.Z()) * deltaDistZ
	} else {
		stepZ = -1
		sideDistZ = (camera.Eye.Z() - camera.EyeVoxelReal.Z()) * deltaDistZ
	}

	grid := ctx.grid

	// The initial Z distance and facing are a special case outside the DDA
	// loop since the camera is inside the first voxel.
	var zDistance float64
	var facing voxel.Facing

	voxelIsValid := camera.EyeVoxel[0] >= 0 && camera.EyeVoxel[1] >= 0 && camera.EyeVoxel[2] >= 0 &&
		camera.EyeVoxel[0] < grid.Width() && camera.EyeVoxel[1] < grid.Height() &&
		camera.EyeVoxel[2] < grid.Depth()

	if voxelIsValid {
		if sideDistX < sideDistZ {
			zDistance = sideDistX
			if nonNegativeDirX {
				facing = voxel.FacingNegativeX
			} else {
				facing = voxel.FacingPositiveX
			}
		} else {
			zDistance = sideDistZ
			if nonNegativeDirZ {
				facing = voxel.FacingNegativeZ
			} else {
				facing = voxel.FacingPositiveZ
			}
		}

		// The initial near point is directly in front of the camera in the
		// near Z plane; the far point is the first wall hit.
		initialNearPoint := mgl64.Vec2{
			camera.Eye.X() + (ray.DirX * nearPlane),
			camera.Eye.Z() + (ray.DirZ * nearPlane),
		}
		initialFarPoint := mgl64.Vec2{
			camera.Eye.X() + (ray.DirX * zDistance),
			camera.Eye.Z() + (ray.DirZ * zDistance),
		}

		drawInitialVoxelColumn(x, camera.EyeVoxel[0], camera.EyeVoxel[2], camera, ray,
			facing, initialNearPoint, initialFarPoint, nearPlane, zDistance, ctx, occlusion)
	}

	cellX := camera.EyeVoxel[0]
	cellZ := camera.EyeVoxel[2]

	doDDAStep := func() {
		if sideDistX < sideDistZ {
			sideDistX += deltaDistX
			cellX += stepX
			if nonNegativeDirX {
				facing = voxel.FacingNegativeX
			} else {
				facing = voxel.FacingPositiveX
			}
			voxelIsValid = voxelIsValid && cellX >= 0 && cellX < grid.Width()
		} else {
			sideDistZ += deltaDistZ
			cellZ += stepZ
			if nonNegativeDirZ {
				facing = voxel.FacingNegativeZ
			} else {
				facing = voxel.FacingPositiveZ
			}
			voxelIsValid = voxelIsValid && cellZ >= 0 && cellZ < grid.Depth()
		}

		onXAxis := facing == voxel.FacingPositiveX || facing == voxel.FacingNegativeX
		if onXAxis {
			zDistance = (float64(cellX) - camera.Eye.X() + float64((1-stepX)/2)) / ray.DirX
		} else {
			zDistance = (float64(cellZ) - camera.Eye.Z() + float64((1-stepZ)/2)) / ray.DirZ
		}
	}

	// Step once to leave the initial voxel.
	doDDAStep()

	// Walk the grid while the coordinate is valid, the distance is inside
	// the fog, and the column still has visible pixels.
	for voxelIsValid && zDistance < ctx.shading.fogDistance && !occlusion.Empty() {
		savedCellX := cellX
		savedCellZ := cellZ
		savedFacing := facing
		wallDistance := zDistance

		// Step again so the current cell's far point is known.
		doDDAStep()

		nearPoint := mgl64.Vec2{
			camera.Eye.X() + (ray.DirX * wallDistance),
			camera.Eye.Z() + (ray.DirZ * wallDistance),
		}
		farPoint := mgl64.Vec2{
			camera.Eye.X() + (ray.DirX * zDistance),
			camera.Eye.Z() + (ray.DirZ * zDistance),
		}

		drawVoxelColumn(x, savedCellX, savedCellZ, camera, ray, savedFacing, nearPoint,
			farPoint, wallDistance, zDistance, ctx, occlusion)
	}
}
