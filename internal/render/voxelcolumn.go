package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/voxel"
)

// wallFrontFaceU is the horizontal texture coordinate of a wall face seen
// from outside its voxel.
func wallFrontFaceU(point mgl64.Vec2, facing voxel.Facing) float64 {
	var uVal float64
	switch facing {
	case voxel.FacingPositiveX:
		uVal = mathutil.JustBelowOne - (point.Y() - math.Floor(point.Y()))
	case voxel.FacingNegativeX:
		uVal = point.Y() - math.Floor(point.Y())
	case voxel.FacingPositiveZ:
		uVal = point.X() - math.Floor(point.X())
	default:
		uVal = mathutil.JustBelowOne - (point.X() - math.Floor(point.X()))
	}
	return mathutil.Clamp(uVal, 0.0, mathutil.JustBelowOne)
}

// wallBackFaceU is the horizontal texture coordinate of a wall face seen
// from inside its voxel, mirrored from the front face so the texture does
// not appear flipped.
func wallBackFaceU(point mgl64.Vec2, facing voxel.Facing) float64 {
	var uVal float64
	switch facing {
	case voxel.FacingPositiveX:
		uVal = point.Y() - math.Floor(point.Y())
	case voxel.FacingNegativeX:
		uVal = mathutil.JustBelowOne - (point.Y() - math.Floor(point.Y()))
	case voxel.FacingPositiveZ:
		uVal = mathutil.JustBelowOne - (point.X() - math.Floor(point.X()))
	default:
		uVal = point.X() - math.Floor(point.X())
	}
	return mathutil.Clamp(uVal, 0.0, mathutil.JustBelowOne)
}

// chasmDepth is how far below the ceiling a chasm floor sits. Wet and lava
// chasms are unaffected by ceiling height.
func chasmDepth(chasmType voxel.ChasmType, voxelHeight float64) float64 {
	if chasmType == voxel.ChasmDry {
		return voxelHeight
	}
	return voxel.WetLavaChasmDepth
}

// drawDiagonalColumn draws a diagonal wall's intersection column. The code
// path is the same whether or not the camera shares the voxel column.
func drawDiagonalColumn(x, voxelX, voxelY, voxelZ int, data *voxel.DiagonalData,
	voxelYReal, voxelHeight float64, nearPoint, farPoint mgl64.Vec2, nearZ,
	lightPercent float64, camera *Camera, ctx *castContext, occlusion *OcclusionData) {

	var hit RayHit
	var success bool
	if data.Type1 {
		success = findDiag1Intersection(voxelX, voxelZ, nearPoint, farPoint, &hit)
	} else {
		success = findDiag2Intersection(voxelX, voxelZ, nearPoint, farPoint, &hit)
	}
	if !success {
		return
	}

	diagTopPoint := mgl64.Vec3{hit.Point.X(), voxelYReal + voxelHeight, hit.Point.Y()}
	diagBottomPoint := mgl64.Vec3{diagTopPoint.X(), voxelYReal, diagTopPoint.Z()}

	drawRange := makeDrawRange(diagTopPoint, diagBottomPoint, camera, &ctx.frame)
	fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

	drawPixels(x, &drawRange, nearZ+hit.InnerZ, hit.U, 0.0, mathutil.JustBelowOne,
		hit.Normal, ctx.voxelTexture(data.ID), fadePercent, lightPercent, ctx, occlusion)
}

// drawEdgeHit draws a previously solved edge billboard intersection.
func drawEdgeHit(x int, hit *RayHit, data *voxel.EdgeData, voxelYReal, voxelHeight,
	nearZ, lightPercent float64, camera *Camera, ctx *castContext, occlusion *OcclusionData) {

	edgeTopPoint := mgl64.Vec3{hit.Point.X(), voxelYReal + voxelHeight + data.YOffset, hit.Point.Y()}
	edgeBottomPoint := mgl64.Vec3{hit.Point.X(), voxelYReal + data.YOffset, hit.Point.Y()}

	drawRange := makeDrawRange(edgeTopPoint, edgeBottomPoint, camera, &ctx.frame)

	drawTransparentPixels(x, &drawRange, nearZ+hit.InnerZ, hit.U, 0.0,
		mathutil.JustBelowOne, hit.Normal, ctx.voxelTexture(data.ID), lightPercent,
		ctx, occlusion)
}

// drawDoorHit draws a previously solved door intersection. Swinging doors
// carry their intersection depth; the wall-aligned types use the given base
// depth instead.
func drawDoorHit(x int, hit *RayHit, data *voxel.DoorData, percentOpen, voxelYReal,
	voxelHeight, swingDepth, baseDepth, lightPercent float64, camera *Camera,
	ctx *castContext, occlusion *OcclusionData) {

	doorTopPoint := mgl64.Vec3{hit.Point.X(), voxelYReal + voxelHeight, hit.Point.Y()}

	switch data.Type {
	case voxel.DoorSwinging:
		doorBottomPoint := mgl64.Vec3{doorTopPoint.X(), voxelYReal, doorTopPoint.Z()}
		drawRange := makeDrawRange(doorTopPoint, doorBottomPoint, camera, &ctx.frame)

		drawTransparentPixels(x, &drawRange, swingDepth, hit.U, 0.0,
			mathutil.JustBelowOne, hit.Normal, ctx.voxelTexture(data.ID), lightPercent,
			ctx, occlusion)

	case voxel.DoorSliding, voxel.DoorSplitting:
		doorBottomPoint := mgl64.Vec3{doorTopPoint.X(), voxelYReal, doorTopPoint.Z()}
		drawRange := makeDrawRange(doorTopPoint, doorBottomPoint, camera, &ctx.frame)

		drawTransparentPixels(x, &drawRange, baseDepth, hit.U, 0.0,
			mathutil.JustBelowOne, hit.Normal, ctx.voxelTexture(data.ID), lightPercent,
			ctx, occlusion)

	case voxel.DoorRaising:
		// Top point is fixed, bottom point depends on percent open.
		raisedAmount := (voxelHeight * (1.0 - doorMinVisible)) * percentOpen
		doorBottomPoint := mgl64.Vec3{doorTopPoint.X(), voxelYReal + raisedAmount, doorTopPoint.Z()}
		drawRange := makeDrawRange(doorTopPoint, doorBottomPoint, camera, &ctx.frame)

		// The start of the vertical texture coordinate depends on the
		// percent open.
		vStart := raisedAmount / voxelHeight

		drawTransparentPixels(x, &drawRange, baseDepth, hit.U, vStart,
			mathutil.JustBelowOne, hit.Normal, ctx.voxelTexture(data.ID), lightPercent,
			ctx, occlusion)

	default:
		panic("invalid door type")
	}
}

// drawInitialRaised draws a raised platform in the camera's own voxel
// column, where both the near and far projections are available.
func drawInitialRaised(x, voxelX, voxelY, voxelZ int, data *voxel.RaisedData,
	voxelYReal, voxelHeight float64, nearPoint, farPoint mgl64.Vec2, nearZ, farZ,
	wallU float64, wallNormal mgl64.Vec3, visLightList *VisibleLightList,
	wallLightPercent float64, camera *Camera, ctx *castContext, occlusion *OcclusionData) {

	nearCeilingPoint := mgl64.Vec3{
		nearPoint.X(),
		voxelYReal + ((data.YOffset + data.YSize) * voxelHeight),
		nearPoint.Y(),
	}
	nearFloorPoint := mgl64.Vec3{
		nearPoint.X(),
		voxelYReal + (data.YOffset * voxelHeight),
		nearPoint.Y(),
	}

	fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

	// Draw order depends on the camera's Y position relative to the
	// platform.
	if camera.Eye.Y() > nearCeilingPoint.Y() {
		// Above platform.
		farCeilingPoint := mgl64.Vec3{farPoint.X(), nearCeilingPoint.Y(), farPoint.Y()}

		drawRange := makeDrawRange(farCeilingPoint, nearCeilingPoint, camera, &ctx.frame)

		drawPerspectivePixels(x, &drawRange, farPoint, nearPoint, farZ, nearZ,
			mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(data.CeilingID), fadePercent,
			visLightList, ctx, occlusion)
	} else if camera.Eye.Y() < nearFloorPoint.Y() {
		// Below platform.
		farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

		drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)

		drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
			mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(data.FloorID), fadePercent,
			visLightList, ctx, occlusion)
	} else {
		// Between top and bottom.
		farCeilingPoint := mgl64.Vec3{farPoint.X(), nearCeilingPoint.Y(), farPoint.Y()}
		farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

		drawRanges := makeDrawRangeThreePart(nearCeilingPoint, farCeilingPoint,
			farFloorPoint, nearFloorPoint, camera, &ctx.frame)

		drawPerspectivePixels(x, &drawRanges[0], nearPoint, farPoint, nearZ, farZ,
			mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(data.CeilingID), fadePercent,
			visLightList, ctx, occlusion)

		drawTransparentPixels(x, &drawRanges[1], farZ, wallU, data.VTop, data.VBottom,
			wallNormal, ctx.voxelTexture(data.SideID), wallLightPercent, ctx, occlusion)

		drawPerspectivePixels(x, &drawRanges[2], farPoint, nearPoint, farZ, nearZ,
			mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(data.FloorID), fadePercent,
			visLightList, ctx, occlusion)
	}
}

// drawRaised draws a raised platform in a voxel column the ray entered
// through a wall face.
func drawRaised(x, voxelX, voxelY, voxelZ int, data *voxel.RaisedData,
	voxelYReal, voxelHeight float64, nearPoint, farPoint mgl64.Vec2, nearZ, farZ,
	wallU float64, wallNormal mgl64.Vec3, visLightList *VisibleLightList,
	wallLightPercent float64, camera *Camera, ctx *castContext, occlusion *OcclusionData) {

	nearCeilingPoint := mgl64.Vec3{
		nearPoint.X(),
		voxelYReal + ((data.YOffset + data.YSize) * voxelHeight),
		nearPoint.Y(),
	}
	nearFloorPoint := mgl64.Vec3{
		nearPoint.X(),
		voxelYReal + (data.YOffset * voxelHeight),
		nearPoint.Y(),
	}

	if camera.Eye.Y() > nearCeilingPoint.Y() {
		// Above platform.
		farCeilingPoint := mgl64.Vec3{farPoint.X(), nearCeilingPoint.Y(), farPoint.Y()}

		drawRanges := makeDrawRangeTwoPart(farCeilingPoint, nearCeilingPoint,
			nearFloorPoint, camera, &ctx.frame)
		fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

		drawPerspectivePixels(x, &drawRanges[0], farPoint, nearPoint, farZ, nearZ,
			mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(data.CeilingID), fadePercent,
			visLightList, ctx, occlusion)

		drawTransparentPixels(x, &drawRanges[1], nearZ, wallU, data.VTop, data.VBottom,
			wallNormal, ctx.voxelTexture(data.SideID), wallLightPercent, ctx, occlusion)
	} else if camera.Eye.Y() < nearFloorPoint.Y() {
		// Below platform.
		farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

		drawRanges := makeDrawRangeTwoPart(nearCeilingPoint, nearFloorPoint,
			farFloorPoint, camera, &ctx.frame)
		fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

		drawTransparentPixels(x, &drawRanges[0], nearZ, wallU, data.VTop, data.VBottom,
			wallNormal, ctx.voxelTexture(data.SideID), wallLightPercent, ctx, occlusion)

		drawPerspectivePixels(x, &drawRanges[1], nearPoint, farPoint, nearZ, farZ,
			mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(data.FloorID), fadePercent,
			visLightList, ctx, occlusion)
	} else {
		// Between top and bottom.
		drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)

		drawTransparentPixels(x, &drawRange, nearZ, wallU, data.VTop, data.VBottom,
			wallNormal, ctx.voxelTexture(data.SideID), wallLightPercent, ctx, occlusion)
	}
}

// drawChasmFarFace draws the far wall face of a chasm, with the
// screen-space chasm texture behind its transparent texels.
func drawChasmFarFace(x int, data *voxel.ChasmData, farFacing voxel.Facing,
	voxelYReal, voxelHeight float64, farPoint mgl64.Vec2, farZ, lightPercent float64,
	camera *Camera, ctx *castContext, occlusion *OcclusionData) {

	if !data.FaceIsVisible(farFacing) {
		return
	}

	farU := wallBackFaceU(farPoint, farFacing)
	farNormal := farFacing.Normal().Mul(-1.0)

	farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
	farFloorPoint := mgl64.Vec3{
		farPoint.X(),
		farCeilingPoint.Y() - chasmDepth(data.Type, voxelHeight),
		farPoint.Y(),
	}

	drawRange := makeDrawRange(farCeilingPoint, farFloorPoint, camera, &ctx.frame)

	drawChasmPixels(x, &drawRange, farZ, farU, 0.0, mathutil.JustBelowOne, farNormal,
		data.Type == voxel.ChasmLava, ctx.voxelTexture(data.ID),
		ctx.chasmTexture(data.Type), lightPercent, ctx, occlusion)
}

// drawChasmFloor draws the chasm surface between two points, seen from
// above. Depth stays at infinity so flats standing in the chasm still draw.
func drawChasmFloor(x int, data *voxel.ChasmData, voxelYReal, voxelHeight float64,
	nearPoint, farPoint mgl64.Vec2, nearZ, farZ float64, camera *Camera,
	ctx *castContext, occlusion *OcclusionData) {

	floorY := (voxelYReal + voxelHeight) - chasmDepth(data.Type, voxelHeight)
	farFloorPoint := mgl64.Vec3{farPoint.X(), floorY, farPoint.Y()}
	nearFloorPoint := mgl64.Vec3{nearPoint.X(), floorY, nearPoint.Y()}

	drawRange := makeDrawRange(farFloorPoint, nearFloorPoint, camera, &ctx.frame)

	drawPerspectiveChasmPixels(x, &drawRange, farPoint, nearPoint, farZ, nearZ,
		data.Type == voxel.ChasmLava, ctx.chasmTexture(data.Type), ctx, occlusion)
}

// drawInitialVoxelColumn draws the full vertical voxel stack of the
// camera's own voxel column. This handles some special cases such as
// drawing the back-faces of wall sides.
func drawInitialVoxelColumn(x, voxelX, voxelZ int, camera *Camera, ray Ray,
	facing voxel.Facing, nearPoint, farPoint mgl64.Vec2, nearZ, farZ float64,
	ctx *castContext, occlusion *OcclusionData) {

	grid := ctx.grid
	voxelHeight := ctx.ceilingHeight

	// Horizontal texture coordinate and normal for the far wall face,
	// shared between the voxels in this column.
	wallU := wallBackFaceU(farPoint, facing)
	wallNormal := facing.Normal().Mul(-1.0)

	visLightList := ctx.lightListAt(voxelX, voxelZ)
	wallLightPercent := lightContributionAtPoint(farPoint, ctx.visLights,
		visLightList, ctx.cappedLight)

	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}

	// Voxel at the camera's own height.
	drawInitialVoxel := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			// Draw inner ceiling, wall, and floor.
			wallData := &def.Wall

			farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), farCeilingPoint.Y(), nearPoint.Y()}
			farFloorPoint := mgl64.Vec3{farPoint.X(), voxelYReal, farPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), farFloorPoint.Y(), nearPoint.Y()}

			drawRanges := makeDrawRangeThreePart(nearCeilingPoint, farCeilingPoint,
				farFloorPoint, nearFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRanges[0], nearPoint, farPoint, nearZ, farZ,
				mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(wallData.CeilingID), fadePercent,
				visLightList, ctx, occlusion)

			drawPixels(x, &drawRanges[1], farZ, wallU, 0.0, mathutil.JustBelowOne,
				wallNormal, ctx.voxelTexture(wallData.SideID), fadePercent,
				wallLightPercent, ctx, occlusion)

			drawPerspectivePixels(x, &drawRanges[2], farPoint, nearPoint, farZ, nearZ,
				mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(wallData.FloorID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeFloor:
			// Floors can only be seen from above.

		case voxel.TypeCeiling:
			// Draw the bottom if the camera is below it.
			if camera.Eye.Y() < voxelYReal {
				ceilingData := &def.Ceiling

				nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
				farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

				drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)
				fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

				drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
					mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(ceilingData.ID), fadePercent,
					visLightList, ctx, occlusion)
			}

		case voxel.TypeRaised:
			drawInitialRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, farZ, wallU, wallNormal,
				visLightList, wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			// Transparent walls have no back-faces.

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findInitialEdgeIntersection(voxelX, voxelZ, edgeData.Facing,
				edgeData.Flipped, nearPoint, farPoint, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			// Render the chasm surface and the back face.
			chasmData := &def.Chasm
			farFacing := getInitialChasmFarFacing(voxelX, voxelZ, eye2D, ray)

			drawChasmFloor(x, chasmData, voxelYReal, voxelHeight, nearPoint, farPoint,
				nearZ, farZ, camera, ctx, occlusion)
			drawChasmFarFace(x, chasmData, farFacing, voxelYReal, voxelHeight,
				farPoint, farZ, wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findInitialDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen,
				nearPoint, farPoint, camera, ray, grid, &hit) {
				depth := nearZ + hit.InnerZ
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					depth, depth, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	// Voxel below the camera, seen from above.
	drawInitialVoxelBelow := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			wallData := &def.Wall

			farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), farCeilingPoint.Y(), nearPoint.Y()}

			drawRange := makeDrawRange(farCeilingPoint, nearCeilingPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, farPoint, nearPoint, farZ, nearZ,
				mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(wallData.CeilingID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeFloor:
			// Draw the top of the floor voxel.
			floorData := &def.Floor

			farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), farCeilingPoint.Y(), nearPoint.Y()}

			drawRange := makeDrawRange(farCeilingPoint, nearCeilingPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, farPoint, nearPoint, farZ, nearZ,
				mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(floorData.ID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeCeiling:
			// Ceilings can only be seen from below.

		case voxel.TypeRaised:
			drawInitialRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, farZ, wallU, wallNormal,
				visLightList, wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			// Transparent walls have no back-faces.

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findInitialEdgeIntersection(voxelX, voxelZ, edgeData.Facing,
				edgeData.Flipped, nearPoint, farPoint, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			chasmData := &def.Chasm
			farFacing := getInitialChasmFarFacing(voxelX, voxelZ, eye2D, ray)

			drawChasmFloor(x, chasmData, voxelYReal, voxelHeight, nearPoint, farPoint,
				nearZ, farZ, camera, ctx, occlusion)
			drawChasmFarFace(x, chasmData, farFacing, voxelYReal, voxelHeight,
				farPoint, farZ, wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findInitialDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen,
				nearPoint, farPoint, camera, ray, grid, &hit) {
				depth := nearZ + hit.InnerZ
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					depth, depth, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	// Voxel above the camera, seen from below.
	drawInitialVoxelAbove := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			wallData := &def.Wall

			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
			farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

			drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
				mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(wallData.FloorID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeFloor:
			// Floors can only be seen from above.

		case voxel.TypeCeiling:
			// Draw the bottom of the ceiling voxel.
			ceilingData := &def.Ceiling

			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
			farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

			drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
				mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(ceilingData.ID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeRaised:
			drawInitialRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, farZ, wallU, wallNormal,
				visLightList, wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			// Transparent walls have no back-faces.

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findInitialEdgeIntersection(voxelX, voxelZ, edgeData.Facing,
				edgeData.Flipped, nearPoint, farPoint, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			// Chasms are never above the camera's voxel.

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findInitialDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen,
				nearPoint, farPoint, camera, ray, grid, &hit) {
				depth := nearZ + hit.InnerZ
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					depth, depth, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	// Relative Y voxel coordinate of the camera, compensating for the
	// ceiling height.
	adjustedVoxelY := camera.AdjustedEyeVoxelY(voxelHeight)

	drawInitialVoxel(adjustedVoxelY)

	for voxelY := adjustedVoxelY - 1; voxelY >= 0; voxelY-- {
		drawInitialVoxelBelow(voxelY)
	}

	for voxelY := adjustedVoxelY + 1; voxelY < grid.Height(); voxelY++ {
		drawInitialVoxelAbove(voxelY)
	}
}

// drawVoxelColumn draws the full vertical voxel stack of one voxel column
// the ray entered through a wall face. Much of the code is near-duplicated
// from the initial column drawing with the horizontal texture coordinate
// flipped and slightly different draw orders; keeping the cases separate
// avoids a branch on an "initial column" flag that is almost always false.
func drawVoxelColumn(x, voxelX, voxelZ int, camera *Camera, ray Ray,
	facing voxel.Facing, nearPoint, farPoint mgl64.Vec2, nearZ, farZ float64,
	ctx *castContext, occlusion *OcclusionData) {

	grid := ctx.grid
	voxelHeight := ctx.ceilingHeight

	// Horizontal texture coordinate and normal for the near wall face,
	// shared between the voxels in this column.
	wallU := wallFrontFaceU(nearPoint, facing)
	wallNormal := facing.Normal()

	visLightList := ctx.lightListAt(voxelX, voxelZ)
	wallLightPercent := lightContributionAtPoint(nearPoint, ctx.visLights,
		visLightList, ctx.cappedLight)

	// Voxel at the camera's height.
	drawVoxel := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			// Draw the side.
			wallData := &def.Wall

			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}

			drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPixels(x, &drawRange, nearZ, wallU, 0.0, mathutil.JustBelowOne,
				wallNormal, ctx.voxelTexture(wallData.SideID), fadePercent,
				wallLightPercent, ctx, occlusion)

		case voxel.TypeFloor:
			// Floors can only be seen from above.

		case voxel.TypeCeiling:
			// Draw the bottom if the camera is below it.
			if camera.Eye.Y() < voxelYReal {
				ceilingData := &def.Ceiling

				nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
				farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

				drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)
				fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

				drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
					mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(ceilingData.ID), fadePercent,
					visLightList, ctx, occlusion)
			}

		case voxel.TypeRaised:
			drawRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal, voxelHeight,
				nearPoint, farPoint, nearZ, farZ, wallU, wallNormal, visLightList,
				wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			// Draw the transparent side.
			transparentWallData := &def.TransparentWall

			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}

			drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)

			drawTransparentPixels(x, &drawRange, nearZ, wallU, 0.0,
				mathutil.JustBelowOne, wallNormal, ctx.voxelTexture(transparentWallData.ID),
				wallLightPercent, ctx, occlusion)

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findEdgeIntersection(voxelX, voxelZ, edgeData.Facing, edgeData.Flipped,
				facing, nearPoint, farPoint, wallU, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			drawChasmColumn(x, voxelX, voxelZ, &def.Chasm, facing, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, farZ, wallU, wallNormal,
				wallLightPercent, camera, ray, ctx, occlusion)

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen, facing,
				nearPoint, farPoint, wallU, &hit) {
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					nearZ+hit.InnerZ, nearZ, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	// Voxel below the camera, seen from above.
	drawVoxelBelow := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			wallData := &def.Wall

			farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), farCeilingPoint.Y(), nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}

			drawRanges := makeDrawRangeTwoPart(farCeilingPoint, nearCeilingPoint,
				nearFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRanges[0], farPoint, nearPoint, farZ, nearZ,
				mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(wallData.CeilingID), fadePercent,
				visLightList, ctx, occlusion)

			drawPixels(x, &drawRanges[1], nearZ, wallU, 0.0, mathutil.JustBelowOne,
				wallNormal, ctx.voxelTexture(wallData.SideID), fadePercent,
				wallLightPercent, ctx, occlusion)

		case voxel.TypeFloor:
			// Draw the top of the floor voxel.
			floorData := &def.Floor

			farCeilingPoint := mgl64.Vec3{farPoint.X(), voxelYReal + voxelHeight, farPoint.Y()}
			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), farCeilingPoint.Y(), nearPoint.Y()}

			drawRange := makeDrawRange(farCeilingPoint, nearCeilingPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, farPoint, nearPoint, farZ, nearZ,
				mgl64.Vec3{0, 1, 0}, ctx.voxelTexture(floorData.ID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeCeiling:
			// Ceilings can only be seen from below.

		case voxel.TypeRaised:
			drawRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal, voxelHeight,
				nearPoint, farPoint, nearZ, farZ, wallU, wallNormal, visLightList,
				wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			transparentWallData := &def.TransparentWall

			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}

			drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)

			drawTransparentPixels(x, &drawRange, nearZ, wallU, 0.0,
				mathutil.JustBelowOne, wallNormal, ctx.voxelTexture(transparentWallData.ID),
				wallLightPercent, ctx, occlusion)

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findEdgeIntersection(voxelX, voxelZ, edgeData.Facing, edgeData.Flipped,
				facing, nearPoint, farPoint, wallU, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			drawChasmColumn(x, voxelX, voxelZ, &def.Chasm, facing, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, farZ, wallU, wallNormal,
				wallLightPercent, camera, ray, ctx, occlusion)

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen, facing,
				nearPoint, farPoint, wallU, &hit) {
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					nearZ+hit.InnerZ, nearZ, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	// Voxel above the camera, seen from below.
	drawVoxelAbove := func(voxelY int) {
		voxelID := grid.Voxel(voxelX, voxelY, voxelZ)
		def := grid.Definition(voxelID)
		voxelYReal := float64(voxelY) * voxelHeight

		switch def.Type {
		case voxel.TypeWall:
			wallData := &def.Wall

			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
			farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

			drawRanges := makeDrawRangeTwoPart(nearCeilingPoint, nearFloorPoint,
				farFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPixels(x, &drawRanges[0], nearZ, wallU, 0.0, mathutil.JustBelowOne,
				wallNormal, ctx.voxelTexture(wallData.SideID), fadePercent,
				wallLightPercent, ctx, occlusion)

			drawPerspectivePixels(x, &drawRanges[1], nearPoint, farPoint, nearZ, farZ,
				mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(wallData.FloorID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeFloor:
			// Floors can only be seen from above.

		case voxel.TypeCeiling:
			// Draw the bottom of the ceiling voxel.
			ceilingData := &def.Ceiling

			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}
			farFloorPoint := mgl64.Vec3{farPoint.X(), nearFloorPoint.Y(), farPoint.Y()}

			drawRange := makeDrawRange(nearFloorPoint, farFloorPoint, camera, &ctx.frame)
			fadePercent := fadingVoxelPercent(voxelX, voxelY, voxelZ, ctx.fadingVoxels)

			drawPerspectivePixels(x, &drawRange, nearPoint, farPoint, nearZ, farZ,
				mgl64.Vec3{0, -1, 0}, ctx.voxelTexture(ceilingData.ID), fadePercent,
				visLightList, ctx, occlusion)

		case voxel.TypeRaised:
			drawRaised(x, voxelX, voxelY, voxelZ, &def.Raised, voxelYReal, voxelHeight,
				nearPoint, farPoint, nearZ, farZ, wallU, wallNormal, visLightList,
				wallLightPercent, camera, ctx, occlusion)

		case voxel.TypeDiagonal:
			drawDiagonalColumn(x, voxelX, voxelY, voxelZ, &def.Diagonal, voxelYReal,
				voxelHeight, nearPoint, farPoint, nearZ, wallLightPercent, camera,
				ctx, occlusion)

		case voxel.TypeTransparentWall:
			transparentWallData := &def.TransparentWall

			nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
			nearFloorPoint := mgl64.Vec3{nearPoint.X(), voxelYReal, nearPoint.Y()}

			drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)

			drawTransparentPixels(x, &drawRange, nearZ, wallU, 0.0,
				mathutil.JustBelowOne, wallNormal, ctx.voxelTexture(transparentWallData.ID),
				wallLightPercent, ctx, occlusion)

		case voxel.TypeEdge:
			edgeData := &def.Edge
			var hit RayHit
			if findEdgeIntersection(voxelX, voxelZ, edgeData.Facing, edgeData.Flipped,
				facing, nearPoint, farPoint, wallU, camera, ray, &hit) {
				drawEdgeHit(x, &hit, edgeData, voxelYReal, voxelHeight, nearZ,
					wallLightPercent, camera, ctx, occlusion)
			}

		case voxel.TypeChasm:
			// Chasms are never above the camera's voxel.

		case voxel.TypeDoor:
			doorData := &def.Door
			percentOpen := doorPercentOpen(voxelX, voxelZ, ctx.openDoors)

			var hit RayHit
			if findDoorIntersection(voxelX, voxelZ, doorData.Type, percentOpen, facing,
				nearPoint, farPoint, wallU, &hit) {
				drawDoorHit(x, &hit, doorData, percentOpen, voxelYReal, voxelHeight,
					nearZ+hit.InnerZ, nearZ, wallLightPercent, camera, ctx, occlusion)
			}
		}
	}

	adjustedVoxelY := camera.AdjustedEyeVoxelY(voxelHeight)

	drawVoxel(adjustedVoxelY)

	for voxelY := adjustedVoxelY - 1; voxelY >= 0; voxelY-- {
		drawVoxelBelow(voxelY)
	}

	for voxelY := adjustedVoxelY + 1; voxelY < grid.Height(); voxelY++ {
		drawVoxelAbove(voxelY)
	}
}

// drawChasmColumn draws the near face, surface, and far face of a chasm
// voxel the ray entered through a wall face.
func drawChasmColumn(x, voxelX, voxelZ int, data *voxel.ChasmData, nearFacing voxel.Facing,
	voxelYReal, voxelHeight float64, nearPoint, farPoint mgl64.Vec2, nearZ, farZ,
	wallU float64, wallNormal mgl64.Vec3, lightPercent float64, camera *Camera, ray Ray,
	ctx *castContext, occlusion *OcclusionData) {

	farFacing := getChasmFarFacing(voxelX, voxelZ, nearFacing, camera, ray)

	// Near face.
	if data.FaceIsVisible(nearFacing) {
		nearU := mathutil.Clamp(mathutil.JustBelowOne-wallU, 0.0, mathutil.JustBelowOne)

		nearCeilingPoint := mgl64.Vec3{nearPoint.X(), voxelYReal + voxelHeight, nearPoint.Y()}
		nearFloorPoint := mgl64.Vec3{
			nearPoint.X(),
			nearCeilingPoint.Y() - chasmDepth(data.Type, voxelHeight),
			nearPoint.Y(),
		}

		drawRange := makeDrawRange(nearCeilingPoint, nearFloorPoint, camera, &ctx.frame)

		drawChasmPixels(x, &drawRange, nearZ, nearU, 0.0, mathutil.JustBelowOne,
			wallNormal, data.Type == voxel.ChasmLava, ctx.voxelTexture(data.ID),
			ctx.chasmTexture(data.Type), lightPercent, ctx, occlusion)
	}

	drawChasmFloor(x, data, voxelYReal, voxelHeight, nearPoint, farPoint, nearZ, farZ,
		camera, ctx, occlusion)

	drawChasmFarFace(x, data, farFacing, voxelYReal, voxelHeight, farPoint, farZ,
		lightPercent, camera, ctx, occlusion)
}
