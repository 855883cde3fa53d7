package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/sky"
	"voxelcast/internal/tex"
)

const (
	// skyGradientAngle is how many degrees above the horizon the sky
	// gradient spans.
	skyGradientAngle = 30.0

	// distantCloudsMaxAngle is the angle of the highest distant clouds above
	// the horizon.
	distantCloudsMaxAngle = 25.0
)

// noSunIndex marks a distant scene without a sun (interiors).
const noSunIndex = -1

type distantLand struct {
	textureIndex int
	angleRadians float64
}

type distantAnimLand struct {
	// First frame's texture index; the active frame is an offset from it.
	textureIndex int
	frameCount   int
	angleRadians float64
}

type distantAir struct {
	textureIndex int
	angleRadians float64
	height       float64
}

type distantMoon struct {
	textureIndex int
	moonType     sky.MoonType
	phasePercent float64
}

type distantStar struct {
	textureIndex int
	direction    mgl64.Vec3
}

// distantObjects is the decoded distant-sky scene: every object image
// becomes a SkyTexture at registration time, so per-frame work is only
// projection.
type distantObjects struct {
	skyTextures []*tex.SkyTexture

	lands     []distantLand
	animLands []distantAnimLand
	airs      []distantAir
	moons     []distantMoon
	stars     []distantStar

	sunTextureIndex int

	// Animated land frame offsets, advanced by the caller between frames.
	animLandFrames []int
}

func (d *distantObjects) addSkyTexture(image *sky.Image, palette *tex.Palette) int {
	d.skyTextures = append(d.skyTextures, tex.DecodeSkyTexture(image.Texels,
		image.Width, image.Height, palette))
	return len(d.skyTextures) - 1
}

// newDistantObjects decodes a distant scene description into renderer-side
// textures and angle records.
func newDistantObjects(scene *sky.DistantSky, palette *tex.Palette) *distantObjects {
	d := &distantObjects{sunTextureIndex: noSunIndex}

	for i := range scene.Lands {
		land := &scene.Lands[i]
		d.lands = append(d.lands, distantLand{
			textureIndex: d.addSkyTexture(&land.Image, palette),
			angleRadians: land.AngleRadians,
		})
	}

	for i := range scene.AnimLands {
		animLand := &scene.AnimLands[i]
		if len(animLand.Frames) == 0 {
			panic("animated land has no frames")
		}

		first := -1
		for j := range animLand.Frames {
			index := d.addSkyTexture(&animLand.Frames[j], palette)
			if first == -1 {
				first = index
			}
		}

		d.animLands = append(d.animLands, distantAnimLand{
			textureIndex: first,
			frameCount:   len(animLand.Frames),
			angleRadians: animLand.AngleRadians,
		})
		d.animLandFrames = append(d.animLandFrames, animLand.FrameIndex)
	}

	for i := range scene.Airs {
		air := &scene.Airs[i]
		d.airs = append(d.airs, distantAir{
			textureIndex: d.addSkyTexture(&air.Image, palette),
			angleRadians: air.AngleRadians,
			height:       air.Height,
		})
	}

	for i := range scene.Moons {
		moon := &scene.Moons[i]
		d.moons = append(d.moons, distantMoon{
			textureIndex: d.addSkyTexture(&moon.Image, palette),
			moonType:     moon.Type,
			phasePercent: moon.PhasePercent,
		})
	}

	if scene.Sun != nil {
		d.sunTextureIndex = d.addSkyTexture(scene.Sun, palette)
	}

	for i := range scene.Stars {
		star := &scene.Stars[i]

		var textureIndex int
		if star.Small {
			r := float64((star.Color>>16)&0xFF) / 255.0
			g := float64((star.Color>>8)&0xFF) / 255.0
			b := float64(star.Color&0xFF) / 255.0
			d.skyTextures = append(d.skyTextures, tex.MakeUniformSkyTexture(r, g, b))
			textureIndex = len(d.skyTextures) - 1
		} else {
			textureIndex = d.addSkyTexture(&star.Image, palette)
		}

		d.stars = append(d.stars, distantStar{
			textureIndex: textureIndex,
			direction:    star.Direction,
		})
	}

	return d
}

// setAnimLandFrame advances one animated land's frame offset.
func (d *distantObjects) setAnimLandFrame(animLandIndex, frameIndex int) {
	if animLandIndex < 0 || animLandIndex >= len(d.animLands) {
		panic("animated land index out of range")
	}
	animLand := &d.animLands[animLandIndex]
	if frameIndex < 0 || frameIndex >= animLand.frameCount {
		panic("animated land frame index out of range")
	}
	d.animLandFrames[animLandIndex] = frameIndex
}

// parallaxData is the visible angle range and texture coordinates of a
// distant object when parallax rendering is enabled.
type parallaxData struct {
	xVisAngleStart, xVisAngleEnd float64
	uStart, uEnd                 float64
}

// VisDistantObject is one distant object that survived projection this
// frame.
type VisDistantObject struct {
	texture  *tex.SkyTexture
	parallax parallaxData

	drawRange            DrawRange
	xProjStart, xProjEnd float64
	xStart, xEnd         int
	emissive             bool
}

// visDistantObjects partitions the visible distant objects by category so
// each can be drawn with the right shading, in back-to-front category order.
type visDistantObjects struct {
	objs []VisDistantObject

	landStart, landEnd         int
	animLandStart, animLandEnd int
	airStart, airEnd           int
	moonStart, moonEnd         int
	sunStart, sunEnd           int
	starStart, starEnd         int
}

func (v *visDistantObjects) clear() {
	v.objs = v.objs[:0]
	v.landStart, v.landEnd = 0, 0
	v.animLandStart, v.animLandEnd = 0, 0
	v.airStart, v.airEnd = 0, 0
	v.moonStart, v.moonEnd = 0, 0
	v.sunStart, v.sunEnd = 0, 0
	v.starStart, v.starEnd = 0, 0
}

// distantOrientation determines the vertical anchor of a distant object's
// origin on-screen. Most objects anchor at the bottom, but the sun and
// moons anchor at the top so their top edge meets the horizon at 6am/6pm.
type distantOrientation int

const (
	orientTop distantOrientation = iota
	orientBottom
)

// spaceCorrectedAngles rotates a celestial direction by latitude and time of
// day and converts back to sky angles.
func spaceCorrectedAngles(xAngleRadians, yAngleRadians float64,
	shadingInfo *ShadingInfo) (float64, float64) {

	direction := mgl64.Vec3{
		math.Sin(xAngleRadians),
		math.Tan(yAngleRadians),
		math.Cos(xAngleRadians),
	}.Normalize()

	rotated := rotateDirection(&shadingInfo.latitudeRotation,
		rotateDirection(&shadingInfo.timeRotation, direction))
	return math.Atan2(rotated.X(), rotated.Z()), math.Asin(rotated.Y())
}

// moonDirection is the moon's celestial direction, modified by its phase.
// The base directions are tuned so the two moons track believable paths.
func moonDirection(moonType sky.MoonType, phasePercent float64) mgl64.Vec3 {
	var baseDir mgl64.Vec3
	var bonusLatitude float64
	switch moonType {
	case sky.MoonFirst:
		baseDir = mgl64.Vec3{0.0, -57536.0, 0.0}.Normalize()
		bonusLatitude = -15.0 / 100.0
	case sky.MoonSecond:
		baseDir = mgl64.Vec3{-3000.0, -53536.0, 0.0}.Normalize()
		bonusLatitude = -30.0 / 100.0
	default:
		panic("invalid moon type")
	}

	phaseModifier := phasePercent + bonusLatitude
	moonRotation := latitudeRotation(phaseModifier)
	return rotateDirection(&moonRotation, baseDir).Normalize()
}

// updateVisibleDistantObjects projects the distant scene onto the screen and
// collects the objects that land at least partially within it.
func updateVisibleDistantObjects(visObjs *visDistantObjects, distant *distantObjects,
	parallaxSky bool, shadingInfo *ShadingInfo, camera *Camera, frame *FrameView) {

	visObjs.clear()
	if distant == nil {
		return
	}

	forward := mgl64.Vec2{camera.ForwardX, camera.ForwardZ}

	tryAddObject := func(texture *tex.SkyTexture, xAngleRadians, yAngleRadians float64,
		emissive bool, orientation distantOrientation) {

		objWidth := float64(texture.Width()) / sky.IdentityDim
		objHeight := float64(texture.Height()) / sky.IdentityDim
		objHalfWidth := objWidth * 0.50

		// Y position on-screen is the same regardless of parallax. Project
		// the bottom first and add the height above it in screen-space so
		// objects don't appear squished the higher they are in the sky.
		objDirBottom := mgl64.Vec3{
			camera.ForwardX,
			math.Tan(yAngleRadians),
			camera.ForwardZ,
		}.Normalize()
		objPointBottom := camera.Eye.Add(objDirBottom)

		yProjEnd := projectedY(objPointBottom, &camera.Transform, camera.YShear)
		yProjStart := yProjEnd - (objHeight * camera.Zoom)

		yProjBias := 0.0
		if orientation == orientTop {
			yProjBias = yProjEnd - yProjStart
		}

		yProjScreenStart := (yProjStart + yProjBias) * frame.heightReal
		yProjScreenEnd := (yProjEnd + yProjBias) * frame.heightReal

		drawRange := DrawRange{
			yProjStart: yProjScreenStart,
			yProjEnd:   yProjScreenEnd,
			yStart:     lowerBoundedPixel(yProjScreenStart, frame.height),
			yEnd:       upperBoundedPixel(yProjScreenEnd, frame.height),
		}

		if parallaxSky {
			// X angles for the left and right edges based on half width.
			xDeltaRadians := objHalfWidth * sky.IdentityAngle
			xAngleRadiansLeft := xAngleRadians + xDeltaRadians
			xAngleRadiansRight := xAngleRadians - xDeltaRadians

			cameraHFov := mathutil.VerticalFovToHorizontalFov(camera.FovY, camera.Aspect)
			halfCameraHFovRadians := (cameraHFov * 0.50) * mathutil.DegToRad

			cameraAngleRadians := camera.XZAngleRadians()
			cameraAngleLeft := cameraAngleRadians + halfCameraHFovRadians
			cameraAngleRight := cameraAngleRadians - halfCameraHFovRadians

			// Handle angle ranges that span zero.
			var xVisAngleLeft, xVisAngleRight float64
			cameraIsGeneralCase := cameraAngleLeft < mathutil.TwoPi
			objectIsGeneralCase := xAngleRadiansLeft < mathutil.TwoPi
			if cameraIsGeneralCase == objectIsGeneralCase {
				xVisAngleLeft = math.Min(xAngleRadiansLeft, cameraAngleLeft)
				xVisAngleRight = math.Max(xAngleRadiansRight, cameraAngleRight)
			} else if !cameraIsGeneralCase {
				xVisAngleLeft = math.Min(xAngleRadiansLeft, cameraAngleLeft-mathutil.TwoPi)
				xVisAngleRight = math.Max(xAngleRadiansRight, cameraAngleRight-mathutil.TwoPi)
			} else {
				xVisAngleLeft = math.Min(xAngleRadiansLeft-mathutil.TwoPi, cameraAngleLeft)
				xVisAngleRight = math.Max(xAngleRadiansRight-mathutil.TwoPi, cameraAngleRight)
			}

			if (xAngleRadiansLeft < cameraAngleRight) || (xAngleRadiansRight > cameraAngleLeft) {
				return
			}

			parallax := parallaxData{
				xVisAngleStart: xVisAngleLeft,
				xVisAngleEnd:   xVisAngleRight,
				uStart: 1.0 - ((xVisAngleLeft - xAngleRadiansRight) /
					(xAngleRadiansLeft - xAngleRadiansRight)),
				uEnd: mathutil.JustBelowOne - ((xAngleRadiansRight - xVisAngleRight) /
					(xAngleRadiansRight - xAngleRadiansLeft)),
			}

			// Project the vertical edges.
			objDirLeft := mgl64.Vec3{math.Sin(xAngleRadiansLeft), 0.0, math.Cos(xAngleRadiansLeft)}
			objDirRight := mgl64.Vec3{math.Sin(xAngleRadiansRight), 0.0, math.Cos(xAngleRadiansRight)}

			objProjPointLeft := camera.Transform.Mul4x1(camera.Eye.Add(objDirLeft).Vec4(1.0))
			objProjPointRight := camera.Transform.Mul4x1(camera.Eye.Add(objDirRight).Vec4(1.0))

			xProjStart := 0.50 + ((objProjPointLeft.X() / objProjPointLeft.W()) * 0.50)
			xProjEnd := 0.50 + ((objProjPointRight.X() / objProjPointRight.W()) * 0.50)

			visObjs.objs = append(visObjs.objs, VisDistantObject{
				texture:    texture,
				parallax:   parallax,
				drawRange:  drawRange,
				xProjStart: xProjStart,
				xProjEnd:   xProjEnd,
				xStart:     lowerBoundedPixel(xProjStart*frame.widthReal, frame.width),
				xEnd:       upperBoundedPixel(xProjEnd*frame.widthReal, frame.width),
				emissive:   emissive,
			})
		} else {
			// Classic rendering based on the object's midpoint.
			objDir := mgl64.Vec3{math.Sin(xAngleRadians), 0.0, math.Cos(xAngleRadians)}

			// A point arbitrarily far away for the object's center.
			objPoint := camera.Eye.Add(objDir)

			objProjPoint := camera.Transform.Mul4x1(objPoint.Vec4(1.0))
			xProjCenter := 0.50 + ((objProjPoint.X() / objProjPoint.W()) * 0.50)

			objProjWidth := (objWidth * camera.Zoom) / (camera.Aspect * tallPixelRatio)
			objProjHalfWidth := objProjWidth * 0.50

			xProjStart := xProjCenter - objProjHalfWidth
			xProjEnd := xProjCenter + objProjHalfWidth

			objDir2D := mgl64.Vec2{objDir.X(), objDir.Z()}
			onScreen := (objDir2D.Dot(forward) > 0.0) && (xProjStart <= 1.0) && (xProjEnd >= 0.0)
			if !onScreen {
				return
			}

			visObjs.objs = append(visObjs.objs, VisDistantObject{
				texture:    texture,
				drawRange:  drawRange,
				xProjStart: xProjStart,
				xProjEnd:   xProjEnd,
				xStart:     lowerBoundedPixel(xProjStart*frame.widthReal, frame.width),
				xEnd:       upperBoundedPixel(xProjEnd*frame.widthReal, frame.width),
				emissive:   emissive,
			})
		}
	}

	visObjs.landStart = 0
	for i := range distant.lands {
		land := &distant.lands[i]
		tryAddObject(distant.skyTextures[land.textureIndex], land.angleRadians,
			0.0, false, orientBottom)
	}
	visObjs.landEnd = len(visObjs.objs)

	visObjs.animLandStart = visObjs.landEnd
	for i := range distant.animLands {
		animLand := &distant.animLands[i]
		texture := distant.skyTextures[animLand.textureIndex+distant.animLandFrames[i]]
		tryAddObject(texture, animLand.angleRadians, 0.0, true, orientBottom)
	}
	visObjs.animLandEnd = len(visObjs.objs)

	visObjs.airStart = visObjs.animLandEnd
	for i := range distant.airs {
		air := &distant.airs[i]

		// Height is 0 at the horizon and 1 at the distant cloud limit.
		yAngleRadians := air.height * (distantCloudsMaxAngle * mathutil.DegToRad)

		tryAddObject(distant.skyTextures[air.textureIndex], air.angleRadians,
			yAngleRadians, false, orientBottom)
	}
	visObjs.airEnd = len(visObjs.objs)

	visObjs.moonStart = visObjs.airEnd
	for i := range distant.moons {
		moon := &distant.moons[i]

		direction := moonDirection(moon.moonType, moon.phasePercent)
		xAngleRadians := mathutil.FullAtan2(direction.X(), direction.Z())
		yAngleRadians := mathutil.YAngle(direction)

		newXAngle, newYAngle := spaceCorrectedAngles(xAngleRadians, yAngleRadians, shadingInfo)
		tryAddObject(distant.skyTextures[moon.textureIndex], newXAngle, newYAngle,
			true, orientTop)
	}
	visObjs.moonEnd = len(visObjs.objs)

	visObjs.sunStart = visObjs.moonEnd
	if distant.sunTextureIndex != noSunIndex {
		// The sun direction is already corrected for latitude and time of
		// day since the shading environment reuses it.
		sunDirection := shadingInfo.sunDirection
		sunXAngleRadians := mathutil.FullAtan2(sunDirection.X(), sunDirection.Z())

		// When the sun is directly above or below, the X angle can be
		// undefined; filter that out before projecting.
		if !math.IsNaN(sunXAngleRadians) && !math.IsInf(sunXAngleRadians, 0) {
			sunYAngleRadians := mathutil.YAngle(sunDirection)
			tryAddObject(distant.skyTextures[distant.sunTextureIndex],
				sunXAngleRadians, sunYAngleRadians, true, orientTop)
		}
	}
	visObjs.sunEnd = len(visObjs.objs)

	visObjs.starStart = visObjs.sunEnd
	for i := range distant.stars {
		star := &distant.stars[i]

		xAngleRadians := mathutil.FullAtan2(star.direction.X(), star.direction.Z())
		yAngleRadians := mathutil.YAngle(star.direction)

		newXAngle, newYAngle := spaceCorrectedAngles(xAngleRadians, yAngleRadians, shadingInfo)
		tryAddObject(distant.skyTextures[star.textureIndex], newXAngle, newYAngle,
			true, orientBottom)
	}
	visObjs.starEnd = len(visObjs.objs)
}

// skyGradientProjectedYRange projects the top and bottom of the sky
// gradient. Values outside 0-1 are off-screen.
func skyGradientProjectedYRange(camera *Camera) (float64, float64) {
	forward := mgl64.Vec3{camera.ForwardX, 0.0, camera.ForwardZ}.Normalize()

	// Top of the gradient is some angle above the horizon; its direction is
	// the forward direction tilted up by that angle.
	upPercent := math.Tan(skyGradientAngle * mathutil.DegToRad)
	gradientTopDir := forward.Add(mgl64.Vec3{0.0, upPercent, 0.0}).Normalize()

	projectedYTop := projectedY(camera.Eye.Add(gradientTopDir), &camera.Transform, camera.YShear)
	projectedYBottom := projectedY(camera.Eye.Add(forward), &camera.Transform, camera.YShear)
	return projectedYTop, projectedYBottom
}

// skyGradientPercent is 0 at the horizon and just below 1 at the top.
func skyGradientPercent(projectedY, projectedYTop, projectedYBottom float64) float64 {
	return mathutil.JustBelowOne - mathutil.Clamp(
		(projectedY-projectedYTop)/(projectedYBottom-projectedYTop),
		0.0, mathutil.JustBelowOne)
}

// drawSkyGradient draws rows of the sky gradient, caches each row's color
// for star rendering, and reports whether any row is dark enough for stars.
func drawSkyGradient(startY, endY int, gradientProjYTop, gradientProjYBottom float64,
	skyGradientRowCache []mgl64.Vec3, shadingInfo *ShadingInfo, frame *FrameView) bool {

	isDarkEnough := false

	for y := startY; y < endY; y++ {
		yPercent := (float64(y) + 0.50) / frame.heightReal
		gradientPercent := skyGradientPercent(yPercent, gradientProjYTop, gradientProjYBottom)
		color := skyGradientRowColor(gradientPercent, shadingInfo)

		skyGradientRowCache[y] = color

		maxComp := math.Max(math.Max(color.X(), color.Y()), color.Z())
		isDarkEnough = isDarkEnough || (maxComp <= starVisThreshold)

		// Clear the color and depth of one row.
		colorValue := colorToRGB(color.X(), color.Y(), color.Z())
		startIndex := y * frame.width
		endIndex := (y + 1) * frame.width
		for i := startIndex; i < endIndex; i++ {
			frame.colorBuffer[i] = colorValue
			frame.depthBuffer[i] = math.Inf(1)
		}
	}

	return isDarkEnough
}

// distantRenderType selects the column compositor for a distant object
// category.
type distantRenderType int

const (
	distantRenderGeneral distantRenderType = iota
	distantRenderMoon
	distantRenderStar
)

// drawDistantSky draws the visible distant objects intersecting the given
// screen X range, category by category from farthest to nearest.
func drawDistantSky(startX, endX int, visObjs *visDistantObjects,
	skyGradientRowCache []mgl64.Vec3, shouldDrawStars bool,
	shadingInfo *ShadingInfo, frame *FrameView) {

	drawDistantObj := func(obj *VisDistantObject, renderType distantRenderType) {
		xDrawStart := mathutil.ClampInt(obj.xStart, startX, endX)
		xDrawEnd := mathutil.ClampInt(obj.xEnd, startX, endX)

		for x := xDrawStart; x < xDrawEnd; x++ {
			xPercent := (float64(x) + 0.50) / frame.widthReal

			// Percentage across the horizontal span of the object.
			widthPercent := mathutil.Clamp(
				(xPercent-obj.xProjStart)/(obj.xProjEnd-obj.xProjStart),
				0.0, mathutil.JustBelowOne)

			u := widthPercent

			switch renderType {
			case distantRenderGeneral:
				drawDistantPixels(x, &obj.drawRange, u, 0.0, mathutil.JustBelowOne,
					obj.texture, obj.emissive, shadingInfo, frame)
			case distantRenderMoon:
				drawMoonPixels(x, &obj.drawRange, u, 0.0, mathutil.JustBelowOne,
					obj.texture, shadingInfo, frame)
			case distantRenderStar:
				drawStarPixels(x, &obj.drawRange, u, 0.0, mathutil.JustBelowOne,
					obj.texture, skyGradientRowCache, frame)
			}
		}
	}

	// Reverse iterate so objects draw far to near within a category.
	drawDistantObjRange := func(start, end int, renderType distantRenderType) {
		for i := end - 1; i >= start; i-- {
			drawDistantObj(&visObjs.objs[i], renderType)
		}
	}

	// Stars only draw when the sky gradient is dark enough, which also
	// saves the work during daytime.
	if shouldDrawStars {
		drawDistantObjRange(visObjs.starStart, visObjs.starEnd, distantRenderStar)
	}

	drawDistantObjRange(visObjs.sunStart, visObjs.sunEnd, distantRenderGeneral)
	drawDistantObjRange(visObjs.moonStart, visObjs.moonEnd, distantRenderMoon)
	drawDistantObjRange(visObjs.airStart, visObjs.airEnd, distantRenderGeneral)
	drawDistantObjRange(visObjs.animLandStart, visObjs.animLandEnd, distantRenderGeneral)
	drawDistantObjRange(visObjs.landStart, visObjs.landEnd, distantRenderGeneral)
}
