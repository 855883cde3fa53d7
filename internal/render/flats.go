package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/entity"
	"voxelcast/internal/mathutil"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

// VisibleFlat is one billboard that survived culling this frame, with its
// world-space corners and projected screen coordinates.
type VisibleFlat struct {
	FlatIndex int
	StateType tex.AnimStateType
	TextureID int

	// 0-1 view angle the animation frames were picked for.
	AnglePercent float64

	TopLeft     mgl64.Vec3
	TopRight    mgl64.Vec3
	BottomLeft  mgl64.Vec3
	BottomRight mgl64.Vec3

	// Projected screen-space coordinates, in 0-1 percentages. Y percentages
	// can be outside the screen.
	StartX, EndX float64
	StartY, EndY float64

	// Camera-space Z, for far-to-near sorting.
	Z float64
}

// flatAnimAngle is the angle used to select which view-angle frame list an
// entity presents. Static entities always face the camera.
func flatAnimAngle(e *entity.Entity, eye2D mgl64.Vec2) float64 {
	if e.Type == entity.Static {
		return 0.0
	}

	diffDir := eye2D.Sub(e.Position).Normalize()

	// Use the difference of the entity direction and the camera-to-entity
	// direction as the angle vector.
	resultDir := e.Direction.Sub(diffDir)
	resultAngle := math.Pi + mathutil.FullAtan2(resultDir.Y(), resultDir.X())

	// Angle bias so the final direction is centered within its angle range.
	angleBias := (mathutil.TwoPi / float64(e.StateCount)) * 0.50

	return math.Mod(resultAngle+angleBias, mathutil.TwoPi)
}

// raisedPlatformYOffset lifts an entity standing in a raised platform voxel
// onto the platform's top.
func raisedPlatformYOffset(position mgl64.Vec2, ceilingHeight float64, grid *voxel.Grid) float64 {
	voxelX := int(position.X())
	voxelZ := int(position.Y())
	if !grid.Contains(voxelX, voxelZ) {
		return 0.0
	}

	voxelID := grid.Voxel(voxelX, 1, voxelZ)
	def := grid.Definition(voxelID)
	if def.Type != voxel.TypeRaised {
		return 0.0
	}
	return (def.Raised.YOffset + def.Raised.YSize) * ceilingHeight
}

// updateVisibleFlats culls the frame's entities down to the billboards that
// can appear on screen, projected and sorted farthest to nearest so
// transparency overlaps correctly. The previous slice is reused as scratch.
func updateVisibleFlats(visibleFlats []VisibleFlat, snapshot *entity.Snapshot,
	camera *Camera, ceilingHeight, fogDistance float64, grid *voxel.Grid) []VisibleFlat {

	visibleFlats = visibleFlats[:0]
	if snapshot == nil {
		return visibleFlats
	}

	// Each flat shares the same axes. The forward direction always faces
	// opposite to the camera direction.
	flatForward := mgl64.Vec3{-camera.ForwardX, 0.0, -camera.ForwardZ}.Normalize()
	flatUp := mgl64.Vec3{0.0, 1.0, 0.0}
	flatRight := flatForward.Cross(flatUp).Normalize()

	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}
	cameraDir := mgl64.Vec2{camera.ForwardX, camera.ForwardZ}

	for i := range snapshot.Entities {
		e := &snapshot.Entities[i]

		animAngle := flatAnimAngle(e, eye2D)
		anglePercent := mathutil.Clamp(animAngle/mathutil.TwoPi, 0.0, mathutil.JustBelowOne)

		flatHalfWidth := e.Width * 0.50

		// Bottom center of the flat.
		flatPosition := mgl64.Vec3{
			e.Position.X(),
			ceilingHeight + e.YOffset + raisedPlatformYOffset(e.Position, ceilingHeight, grid),
			e.Position.Y(),
		}
		flatPosition2D := mgl64.Vec2{flatPosition.X(), flatPosition.Z()}

		// Reject flats behind the camera.
		flatEyeDiff := flatPosition2D.Sub(eye2D)
		flatEyeDiffLen := flatEyeDiff.Len()
		flatEyeDir := flatEyeDiff.Mul(1.0 / flatEyeDiffLen)
		if cameraDir.Dot(flatEyeDir) <= 0.0 {
			continue
		}

		// Reject flats past the fog distance, treating the flat as a
		// cylinder centered on its position.
		if (flatEyeDiffLen - flatHalfWidth) >= fogDistance {
			continue
		}

		flatRightScaled := flatRight.Mul(flatHalfWidth)
		flatUpScaled := flatUp.Mul(e.Height)

		var visFlat VisibleFlat
		visFlat.FlatIndex = e.FlatIndex
		visFlat.StateType = e.StateType
		visFlat.TextureID = e.TextureID
		visFlat.AnglePercent = anglePercent

		visFlat.BottomLeft = flatPosition.Add(flatRightScaled)
		visFlat.BottomRight = flatPosition.Sub(flatRightScaled)
		visFlat.TopLeft = visFlat.BottomLeft.Add(flatUpScaled)
		visFlat.TopRight = visFlat.BottomRight.Add(flatUpScaled)

		// Project two opposing corner points into camera space. The Z value
		// is used for sorting; X and Y locate the flat on screen.
		projStart := camera.Transform.Mul4x1(visFlat.TopLeft.Vec4(1.0))
		projEnd := camera.Transform.Mul4x1(visFlat.BottomRight.Vec4(1.0))
		projStart = projStart.Mul(1.0 / projStart.W())
		projEnd = projEnd.Mul(1.0 / projEnd.W())

		visFlat.StartX = 0.50 + (projStart.X() * 0.50)
		visFlat.EndX = 0.50 + (projEnd.X() * 0.50)
		visFlat.StartY = (0.50 + camera.YShear) - (projStart.Y() * 0.50)
		visFlat.EndY = (0.50 + camera.YShear) - (projEnd.Y() * 0.50)
		visFlat.Z = projStart.Z()

		inScreenX := (visFlat.StartX < 1.0) && (visFlat.EndX > 0.0)
		inScreenY := (visFlat.StartY < 1.0) && (visFlat.EndY > 0.0)
		inPlanes := (visFlat.Z >= nearPlane) && (visFlat.Z <= farPlane)
		if !inScreenX || !inScreenY || !inPlanes {
			continue
		}

		visibleFlats = append(visibleFlats, visFlat)
	}

	// Farthest to nearest, relevant for transparencies.
	sort.Slice(visibleFlats, func(a, b int) bool {
		return visibleFlats[a].Z > visibleFlats[b].Z
	})

	return visibleFlats
}

// flatHorizonProjY is the projected Y percent of the horizon, used for
// mirroring puddle reflections.
func flatHorizonProjY(camera *Camera) float64 {
	horizonPoint := camera.Eye.Add(mgl64.Vec3{camera.ForwardX, 0.0, camera.ForwardZ})
	return projectedY(horizonPoint, &camera.Transform, camera.YShear)
}

// flatReflectedColor samples the frame buffer mirrored around the horizon
// for a puddle texel, falling back to the fog color above the screen or
// below the horizon.
func flatReflectedColor(texel *tex.FlatTexel, x, y, horizonScreenY int,
	fogColor mgl64.Vec3, frame *FrameView) mgl64.Vec3 {

	reflectedY := horizonScreenY - (y - horizonScreenY)

	// Interleave odd puddle rows one pixel lower so near-horizon ripples
	// don't read as solid bands.
	if texel.Reflection == 2 {
		reflectedY++
	}

	if (reflectedY < 0) || (reflectedY >= frame.height) || (reflectedY >= y) {
		return fogColor
	}
	return rgbToColor(frame.colorBuffer[x+(reflectedY*frame.width)])
}

// drawFlat draws the portion of one billboard within the given X range of
// the screen. The end X value is exclusive.
func drawFlat(startX, endX int, flat *VisibleFlat, normal mgl64.Vec3,
	horizonProjY float64, texture *tex.FlatTexture, eye2D mgl64.Vec2,
	ctx *castContext, frame *FrameView) {

	shadingInfo := ctx.shading
	shading := sunShading(normal, shadingInfo)

	// X percents across the screen for the given start and end columns.
	startXPercent := (float64(startX) + 0.50) / frame.widthReal
	endXPercent := (float64(endX) + 0.50) / frame.widthReal

	startsInRange := (flat.StartX >= startXPercent) && (flat.StartX <= endXPercent)
	endsInRange := (flat.EndX >= startXPercent) && (flat.EndX <= endXPercent)
	coversRange := (flat.StartX <= startXPercent) && (flat.EndX >= endXPercent)
	if !startsInRange && !endsInRange && !coversRange {
		return
	}

	// Screen-space X range contained within the flat.
	clampedStartXPercent := mathutil.Clamp(startXPercent, flat.StartX, flat.EndX)
	clampedEndXPercent := mathutil.Clamp(endXPercent, flat.StartX, flat.EndX)

	// The percentages from start to end within the flat.
	startFlatPercent := (clampedStartXPercent - flat.StartX) / (flat.EndX - flat.StartX)
	endFlatPercent := (clampedEndXPercent - flat.StartX) / (flat.EndX - flat.StartX)

	// Points interpolated between for per-column depth calculations in the
	// XZ plane.
	startTopPoint := mathutil.LerpVec3(flat.TopLeft, flat.TopRight, startFlatPercent)
	endTopPoint := mathutil.LerpVec3(flat.TopLeft, flat.TopRight, endFlatPercent)

	// Although the flat percent can reach 1.0, the texture coordinate needs
	// to stay below 1.0.
	startU := mathutil.Clamp(startFlatPercent, 0.0, mathutil.JustBelowOne)
	endU := mathutil.Clamp(endFlatPercent, 0.0, mathutil.JustBelowOne)

	projectedXStart := clampedStartXPercent * frame.widthReal
	projectedXEnd := clampedEndXPercent * frame.widthReal
	projectedYStart := flat.StartY * frame.heightReal
	projectedYEnd := flat.EndY * frame.heightReal

	xStart := lowerBoundedPixel(projectedXStart, frame.width)
	xEnd := upperBoundedPixel(projectedXEnd, frame.width)
	yStart := lowerBoundedPixel(projectedYStart, frame.height)
	yEnd := upperBoundedPixel(projectedYEnd, frame.height)

	horizonScreenY := int(horizonProjY * frame.heightReal)

	fogColor := shadingInfo.FogColor()

	for x := xStart; x < xEnd; x++ {
		xPercent := ((float64(x) + 0.50) - projectedXStart) / (projectedXEnd - projectedXStart)

		u := startU + ((endU - startU) * xPercent)
		textureX := int(u * float64(texture.Width()))

		topPoint := mathutil.LerpVec3(startTopPoint, endTopPoint, xPercent)
		topPoint2D := mgl64.Vec2{topPoint.X(), topPoint.Z()}

		// True XZ distance for the depth.
		depth := topPoint2D.Sub(eye2D).Len()

		fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

		// Light contribution from the voxel column the flat's center column
		// stands in.
		lightVoxelX := mathutil.ClampInt(int(topPoint.X()), 0, ctx.grid.Width()-1)
		lightVoxelZ := mathutil.ClampInt(int(topPoint.Z()), 0, ctx.grid.Depth()-1)
		lightContributionPercent := lightContributionAtPoint(topPoint2D, ctx.visLights,
			ctx.lightListAt(lightVoxelX, lightVoxelZ), ctx.cappedLight)

		for y := yStart; y < yEnd; y++ {
			index := x + (y * frame.width)

			if depth > frame.depthBuffer[index] {
				continue
			}

			yPercent := ((float64(y) + 0.50) - projectedYStart) / (projectedYEnd - projectedYStart)

			v := yPercent * mathutil.JustBelowOne
			textureY := int(v * float64(texture.Height()))

			// Transparent texels are not drawn. Flats have no emission.
			texel := texture.TexelAt(textureX, textureY)
			if texel.A <= 0.0 {
				continue
			}

			var colorR, colorG, colorB float64
			if texel.Reflection != 0 {
				// Puddle texel, mirrored around the horizon.
				reflected := flatReflectedColor(texel, x, y, horizonScreenY, fogColor, frame)
				colorR = reflected.X()
				colorG = reflected.Y()
				colorB = reflected.Z()
			} else if texel.A < 1.0 {
				// Diminish the previous color in the frame buffer.
				prevColor := rgbToColor(frame.colorBuffer[index])
				visPercent := mathutil.Clamp(1.0-texel.A, 0.0, 1.0)
				colorR = prevColor.X() * visPercent
				colorG = prevColor.Y() * visPercent
				colorB = prevColor.Z() * visPercent
			} else {
				// Texture color with shading.
				shadingMax := 1.0
				colorR = texel.R * math.Min(shading.X()+lightContributionPercent, shadingMax)
				colorG = texel.G * math.Min(shading.Y()+lightContributionPercent, shadingMax)
				colorB = texel.B * math.Min(shading.Z()+lightContributionPercent, shadingMax)
			}

			// Linearly interpolate with fog.
			colorR += (fogColor.X() - colorR) * fogPercent
			colorG += (fogColor.Y() - colorG) * fogPercent
			colorB += (fogColor.Z() - colorB) * fogPercent

			// Clamp maximum; negative values cannot occur.
			colorR = math.Min(colorR, 1.0)
			colorG = math.Min(colorG, 1.0)
			colorB = math.Min(colorB, 1.0)

			frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
			frame.depthBuffer[index] = depth
		}
	}
}

// drawFlats draws all visible billboards intersecting the given X range,
// farthest first.
func drawFlats(startX, endX int, camera *Camera, visibleFlats []VisibleFlat,
	ctx *castContext) {

	// All flats share the same normal, facing opposite the camera.
	flatNormal := mgl64.Vec3{-camera.ForwardX, 0.0, -camera.ForwardZ}.Normalize()

	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}
	horizonProjY := flatHorizonProjY(camera)

	for i := range visibleFlats {
		flat := &visibleFlats[i]
		texture := ctx.flatTexture(flat)

		drawFlat(startX, endX, flat, flatNormal, horizonProjY, texture, eye2D,
			ctx, &ctx.frame)
	}
}
