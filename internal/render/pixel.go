package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/tex"
)

// colorToRGB packs normalized color components into 0xRRGGBB.
func colorToRGB(r, g, b float64) uint32 {
	return (uint32(uint8(r*255.0)) << 16) | (uint32(uint8(g*255.0)) << 8) |
		uint32(uint8(b*255.0))
}

// rgbToColor unpacks 0xRRGGBB into normalized color components.
func rgbToColor(rgb uint32) mgl64.Vec3 {
	return mgl64.Vec3{
		float64((rgb>>16)&0xFF) / 255.0,
		float64((rgb>>8)&0xFF) / 255.0,
		float64(rgb&0xFF) / 255.0,
	}
}

// sampleVoxelTexture samples a voxel texture at (u, v) with the given filter
// mode. The transparent result is only meaningful to callers that draw
// transparency.
func sampleVoxelTexture(texture *tex.VoxelTexture, u, v float64,
	filterMode int) (r, g, b, emission float64, transparent bool) {

	widthReal := float64(texture.Width())
	heightReal := float64(texture.Height())

	switch filterMode {
	case filterModeNearest:
		textureX := int(u * widthReal)
		textureY := int(v * heightReal)
		texel := texture.TexelAt(textureX, textureY)
		return texel.R, texel.G, texel.B, texel.Emission, texel.Transparent

	case filterModeLinear:
		texelWidth := 1.0 / widthReal
		texelHeight := 1.0 / heightReal
		halfTexelWidth := texelWidth / 2.0
		halfTexelHeight := texelHeight / 2.0
		uL := math.Max(u-halfTexelWidth, 0.0)
		uR := math.Min(u+halfTexelWidth, mathutil.JustBelowOne)
		vT := math.Max(v-halfTexelHeight, 0.0)
		vB := math.Min(v+halfTexelHeight, mathutil.JustBelowOne)
		uLWidth := uL * widthReal
		vTHeight := vT * heightReal
		uLPercent := 1.0 - (uLWidth - math.Floor(uLWidth))
		uRPercent := 1.0 - uLPercent
		vTPercent := 1.0 - (vTHeight - math.Floor(vTHeight))
		vBPercent := 1.0 - vTPercent
		tlPercent := uLPercent * vTPercent
		trPercent := uRPercent * vTPercent
		blPercent := uLPercent * vBPercent
		brPercent := uRPercent * vBPercent

		texelTL := texture.TexelAt(int(uL*widthReal), int(vT*heightReal))
		texelTR := texture.TexelAt(int(uR*widthReal), int(vT*heightReal))
		texelBL := texture.TexelAt(int(uL*widthReal), int(vB*heightReal))
		texelBR := texture.TexelAt(int(uR*widthReal), int(vB*heightReal))

		r = (texelTL.R * tlPercent) + (texelTR.R * trPercent) +
			(texelBL.R * blPercent) + (texelBR.R * brPercent)
		g = (texelTL.G * tlPercent) + (texelTR.G * trPercent) +
			(texelBL.G * blPercent) + (texelBR.G * brPercent)
		b = (texelTL.B * tlPercent) + (texelTR.B * trPercent) +
			(texelBL.B * blPercent) + (texelBR.B * brPercent)
		emission = (texelTL.Emission * tlPercent) + (texelTR.Emission * trPercent) +
			(texelBL.Emission * blPercent) + (texelBR.Emission * brPercent)
		transparent = texelTL.Transparent && texelTR.Transparent &&
			texelBL.Transparent && texelBR.Transparent
		return r, g, b, emission, transparent

	default:
		panic("invalid texture filter mode")
	}
}

// sampleChasmTexture samples the screen-space chasm texture, which tracks
// the screen rather than the chasm surface.
func sampleChasmTexture(texture *tex.ChasmTexture, screenXPercent,
	screenYPercent float64) (r, g, b float64) {

	textureX := int(screenXPercent * float64(texture.Width()))
	textureY := int(screenYPercent * float64(texture.Height()))
	texel := texture.TexelAt(textureX, textureY)
	return texel.R, texel.G, texel.B
}

// lightContributionAtPoint sums the contribution of a column's visible
// lights at a point, optionally capped at 100% intensity.
func lightContributionAtPoint(point mgl64.Vec2, visLights []VisibleLight,
	visLightList *VisibleLightList, capped bool) float64 {

	contribution := 0.0
	for i := 0; i < visLightList.count; i++ {
		light := &visLights[visLightList.lightIDs[i]]
		lightDist := math.Hypot(light.Position.X()-point.X(), light.Position.Z()-point.Y())
		contribution += mathutil.Clamp((light.Radius-lightDist)/light.Radius, 0.0, 1.0)

		if capped && contribution >= 1.0 {
			contribution = 1.0
			break
		}
	}
	return contribution
}

// sunShading is the combined ambient plus sun contribution for a surface
// normal, clamped so the two together never exceed full intensity.
func sunShading(normal mgl64.Vec3, shadingInfo *ShadingInfo) mgl64.Vec3 {
	lightNormalDot := math.Max(0.0, shadingInfo.sunDirection.Dot(normal))
	sunComponent := clampColor(shadingInfo.sunColor.Mul(lightNormalDot),
		0.0, 1.0-shadingInfo.ambient)
	return mgl64.Vec3{
		shadingInfo.ambient + sunComponent.X(),
		shadingInfo.ambient + sunComponent.Y(),
		shadingInfo.ambient + sunComponent.Z(),
	}
}

// drawPixels draws a column of opaque pixels at constant depth, for wall
// faces. Fading and light contribution are folded into the shading term.
func drawPixels(x int, drawRange *DrawRange, depth, u, vStart, vEnd float64,
	normal mgl64.Vec3, texture *tex.VoxelTexture, fadePercent,
	lightContributionPercent float64, ctx *castContext, occlusion *OcclusionData) {

	shadingInfo := ctx.shading
	frame := &ctx.frame

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	fogColor := shadingInfo.FogColor()
	fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

	shading := sunShading(normal, shadingInfo)

	// Clip the Y start and end coordinates as needed, and refresh the
	// occlusion buffer.
	occlusion.ClipRange(&yStart, &yEnd)
	occlusion.Update(yStart, yEnd)

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		// Check depth of the pixel before rendering.
		if depth > (frame.depthBuffer[index] - mathutil.Epsilon) {
			continue
		}

		// Percent stepped from beginning to end on the column.
		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)

		// Transparent texels appear black here since alpha is ignored.
		colorR, colorG, colorB, colorEmission, _ := sampleVoxelTexture(texture, u, v, ctx.filterMode)

		// Shading from the sun and nearby lights.
		const shadingMax = 1.0
		lightShading := colorEmission + lightContributionPercent
		colorR *= math.Min(shading.X()+lightShading, shadingMax)
		colorG *= math.Min(shading.Y()+lightShading, shadingMax)
		colorB *= math.Min(shading.Z()+lightShading, shadingMax)

		if fadePercent != 1.0 {
			colorR *= fadePercent
			colorG *= fadePercent
			colorB *= fadePercent
		}

		// Linearly interpolate with fog.
		colorR += (fogColor.X() - colorR) * fogPercent
		colorG += (fogColor.Y() - colorG) * fogPercent
		colorB += (fogColor.Z() - colorB) * fogPercent

		// Clamp maximum (don't worry about negative values).
		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
		frame.depthBuffer[index] = depth
	}
}

// drawPerspectivePixels draws a column of opaque pixels with
// perspective-correct interpolation between a near and far point, for floor
// and ceiling faces. The pixel drawing order is top to bottom, so the start
// and end values should be passed with that in mind.
func drawPerspectivePixels(x int, drawRange *DrawRange, startPoint, endPoint mgl64.Vec2,
	depthStart, depthEnd float64, normal mgl64.Vec3, texture *tex.VoxelTexture,
	fadePercent float64, visLightList *VisibleLightList, ctx *castContext,
	occlusion *OcclusionData) {

	shadingInfo := ctx.shading
	frame := &ctx.frame

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	fogColor := shadingInfo.FogColor()

	shading := sunShading(normal, shadingInfo)

	// Values for perspective-correct interpolation.
	depthStartRecip := 1.0 / depthStart
	depthEndRecip := 1.0 / depthEnd
	startPointDiv := startPoint.Mul(depthStartRecip)
	endPointDiv := endPoint.Mul(depthEndRecip)
	pointDivDiff := endPointDiv.Sub(startPointDiv)

	occlusion.ClipRange(&yStart, &yEnd)
	occlusion.Update(yStart, yEnd)

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)

		// Interpolate between the near and far depth.
		depth := 1.0 / (depthStartRecip + ((depthEndRecip - depthStartRecip) * yPercent))

		// Check depth of the pixel before rendering.
		if depth > frame.depthBuffer[index] {
			continue
		}

		fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

		// Interpolate between start and end points.
		currentPointX := (startPointDiv.X() + (pointDivDiff.X() * yPercent)) * depth
		currentPointY := (startPointDiv.Y() + (pointDivDiff.Y() * yPercent)) * depth

		u := mathutil.Clamp(
			mathutil.JustBelowOne-(currentPointX-math.Floor(currentPointX)),
			0.0, mathutil.JustBelowOne)
		v := mathutil.Clamp(
			mathutil.JustBelowOne-(currentPointY-math.Floor(currentPointY)),
			0.0, mathutil.JustBelowOne)

		colorR, colorG, colorB, colorEmission, _ := sampleVoxelTexture(texture, u, v, ctx.filterMode)

		// Light contribution varies across the span since the world point
		// does.
		lightContributionPercent := lightContributionAtPoint(
			mgl64.Vec2{currentPointX, currentPointY}, ctx.visLights, visLightList,
			ctx.cappedLight)

		const shadingMax = 1.0
		lightShading := colorEmission + lightContributionPercent
		colorR *= math.Min(shading.X()+lightShading, shadingMax)
		colorG *= math.Min(shading.Y()+lightShading, shadingMax)
		colorB *= math.Min(shading.Z()+lightShading, shadingMax)

		if fadePercent != 1.0 {
			colorR *= fadePercent
			colorG *= fadePercent
			colorB *= fadePercent
		}

		colorR += (fogColor.X() - colorR) * fogPercent
		colorG += (fogColor.Y() - colorG) * fogPercent
		colorB += (fogColor.Z() - colorB) * fogPercent

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
		frame.depthBuffer[index] = depth
	}
}

// drawTransparentPixels draws a column of pixels with transparency but no
// perspective, for transparent walls, edges, and doors. Transparent draws
// never update the occlusion window.
func drawTransparentPixels(x int, drawRange *DrawRange, depth, u, vStart, vEnd float64,
	normal mgl64.Vec3, texture *tex.VoxelTexture, lightContributionPercent float64,
	ctx *castContext, occlusion *OcclusionData) {

	shadingInfo := ctx.shading
	frame := &ctx.frame

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	fogColor := shadingInfo.FogColor()
	fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

	shading := sunShading(normal, shadingInfo)

	// Clip the Y start and end coordinates as needed, but do not refresh
	// the occlusion buffer, because transparent ranges do not occlude as
	// simply as opaque ranges.
	occlusion.ClipRange(&yStart, &yEnd)

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		if depth > (frame.depthBuffer[index] - mathutil.Epsilon) {
			continue
		}

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)

		// Transparent texels are not drawn.
		colorR, colorG, colorB, colorEmission, transparent := sampleVoxelTexture(
			texture, u, v, ctx.filterMode)
		if transparent {
			continue
		}

		const shadingMax = 1.0
		lightShading := colorEmission + lightContributionPercent
		colorR *= math.Min(shading.X()+lightShading, shadingMax)
		colorG *= math.Min(shading.Y()+lightShading, shadingMax)
		colorB *= math.Min(shading.Z()+lightShading, shadingMax)

		colorR += (fogColor.X() - colorR) * fogPercent
		colorG += (fogColor.Y() - colorG) * fogPercent
		colorB += (fogColor.Z() - colorB) * fogPercent

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
		frame.depthBuffer[index] = depth
	}
}

// drawChasmPixels draws a column of chasm wall pixels. Texels that are
// transparent in the wall texture show the screen-space chasm texture
// instead, so lava can animate behind the wall cutouts.
func drawChasmPixels(x int, drawRange *DrawRange, depth, u, vStart, vEnd float64,
	normal mgl64.Vec3, emissive bool, texture *tex.VoxelTexture,
	chasmTexture *tex.ChasmTexture, lightContributionPercent float64,
	ctx *castContext, occlusion *OcclusionData) {

	shadingInfo := ctx.shading
	frame := &ctx.frame

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	fogColor := shadingInfo.FogColor()
	fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

	shading := sunShading(normal, shadingInfo)

	occlusion.ClipRange(&yStart, &yEnd)
	occlusion.Update(yStart, yEnd)

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		if depth > (frame.depthBuffer[index] - mathutil.Epsilon) {
			continue
		}

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)

		colorR, colorG, colorB, colorEmission, transparent := sampleVoxelTexture(
			texture, u, v, ctx.filterMode)

		if !transparent {
			// Regular wall texel.
			const shadingMax = 1.0
			lightShading := colorEmission + lightContributionPercent
			colorR *= math.Min(shading.X()+lightShading, shadingMax)
			colorG *= math.Min(shading.Y()+lightShading, shadingMax)
			colorB *= math.Min(shading.Z()+lightShading, shadingMax)

			colorR += (fogColor.X() - colorR) * fogPercent
			colorG += (fogColor.Y() - colorG) * fogPercent
			colorB += (fogColor.Z() - colorB) * fogPercent
		} else {
			// The chasm surface tracks the screen, not the wall.
			screenXPercent := float64(x) / frame.widthReal
			screenYPercent := float64(y) / frame.heightReal
			colorR, colorG, colorB = sampleChasmTexture(chasmTexture,
				screenXPercent, screenYPercent)

			if !emissive {
				colorR *= shadingInfo.distantAmbient
				colorG *= shadingInfo.distantAmbient
				colorB *= shadingInfo.distantAmbient
			}
		}

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
		frame.depthBuffer[index] = depth
	}
}

// drawPerspectiveChasmPixels draws a column of chasm floor pixels. The
// depth buffer is left at infinity so flats standing in the chasm still
// draw over the surface.
func drawPerspectiveChasmPixels(x int, drawRange *DrawRange, startPoint, endPoint mgl64.Vec2,
	depthStart, depthEnd float64, emissive bool, chasmTexture *tex.ChasmTexture,
	ctx *castContext, occlusion *OcclusionData) {

	shadingInfo := ctx.shading
	frame := &ctx.frame

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	fogColor := shadingInfo.FogColor()

	depthStartRecip := 1.0 / depthStart
	depthEndRecip := 1.0 / depthEnd

	occlusion.ClipRange(&yStart, &yEnd)
	occlusion.Update(yStart, yEnd)

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		depth := 1.0 / (depthStartRecip + ((depthEndRecip - depthStartRecip) * yPercent))

		if depth > frame.depthBuffer[index] {
			continue
		}

		fogPercent := math.Min(depth/shadingInfo.fogDistance, 1.0)

		screenXPercent := float64(x) / frame.widthReal
		screenYPercent := float64(y) / frame.heightReal
		colorR, colorG, colorB := sampleChasmTexture(chasmTexture,
			screenXPercent, screenYPercent)

		if !emissive {
			colorR *= shadingInfo.distantAmbient
			colorG *= shadingInfo.distantAmbient
			colorB *= shadingInfo.distantAmbient
		}

		colorR += (fogColor.X() - colorR) * fogPercent
		colorG += (fogColor.Y() - colorG) * fogPercent
		colorB += (fogColor.Z() - colorB) * fogPercent

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
	}
}

// drawDistantPixels draws a column of pixels for a distant sky object
// (mountain, cloud, etc.). The emissive parameter is for animated objects
// like volcanoes that ignore ambient dimming.
func drawDistantPixels(x int, drawRange *DrawRange, u, vStart, vEnd float64,
	texture *tex.SkyTexture, emissive bool, shadingInfo *ShadingInfo, frame *FrameView) {

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	textureX := int(u * float64(texture.Width()))

	// Some distant objects are completely bright.
	shading := shadingInfo.distantAmbient
	if emissive {
		shading = 1.0
	}

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)
		textureY := int(v * float64(texture.Height()))

		// Transparent texels are not drawn.
		texel := texture.TexelAt(textureX, textureY)
		if texel.A == 0.0 {
			continue
		}

		// Fractional alpha diminishes the previously rendered pixel
		// instead, mostly pertinent to the soft edges of clouds.
		var colorR, colorG, colorB float64
		if texel.A < 1.0 {
			prevColor := rgbToColor(frame.colorBuffer[index])
			visPercent := mathutil.Clamp(1.0-texel.A, 0.0, 1.0)
			colorR = prevColor.X() * visPercent
			colorG = prevColor.Y() * visPercent
			colorB = prevColor.Z() * visPercent
		} else {
			colorR = texel.R * shading
			colorG = texel.G * shading
			colorB = texel.B * shading
		}

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
	}
}

// drawMoonPixels draws a column of pixels for a moon. Moons have their own
// shading because their "unlit" texels show the sky gradient through them.
func drawMoonPixels(x int, drawRange *DrawRange, u, vStart, vEnd float64,
	texture *tex.SkyTexture, shadingInfo *ShadingInfo, frame *FrameView) {

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	textureX := int(u * float64(texture.Width()))

	// The gradient color is used for unlit texels on the moon's texture.
	const gradientPercent = 0.80
	gradientColor := skyGradientRowColor(gradientPercent, shadingInfo)

	// The signal color denoting moon texels that should use the gradient
	// color behind the moon instead.
	unlitColor := mgl64.Vec3{170.0 / 255.0, 0.0, 0.0}

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)
		textureY := int(v * float64(texture.Height()))

		texel := texture.TexelAt(textureX, textureY)
		if texel.A == 0.0 {
			continue
		}

		// Exact comparisons are safe since decoded texels are unmodified.
		texelIsLit := (texel.R != unlitColor.X()) && (texel.G != unlitColor.Y()) &&
			(texel.B != unlitColor.Z())

		var colorR, colorG, colorB float64
		if texelIsLit {
			colorR = texel.R
			colorG = texel.G
			colorB = texel.B
		} else {
			colorR = gradientColor.X()
			colorG = gradientColor.Y()
			colorB = gradientColor.Z()
		}

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
	}
}

// drawStarPixels draws a column of pixels for a star, fading it in against
// the cached sky gradient row colors so stars don't blink on at dusk.
func drawStarPixels(x int, drawRange *DrawRange, u, vStart, vEnd float64,
	texture *tex.SkyTexture, skyGradientRowCache []mgl64.Vec3,
	frame *FrameView) {

	yProjStart := drawRange.yProjStart
	yProjEnd := drawRange.yProjEnd
	yStart := drawRange.yStart
	yEnd := drawRange.yEnd

	textureX := int(u * float64(texture.Width()))

	for y := yStart; y < yEnd; y++ {
		index := x + (y * frame.width)

		yPercent := ((float64(y) + 0.50) - yProjStart) / (yProjEnd - yProjStart)
		v := vStart + ((vEnd - vStart) * yPercent)
		textureY := int(v * float64(texture.Height()))

		texel := texture.TexelAt(textureX, textureY)
		if texel.A == 0.0 {
			continue
		}

		gradientColor := skyGradientRowCache[y]

		// Only draw when the gradient behind the star is dark enough, with
		// a range of intensities so stars don't immediately blink on/off
		// when the gradient crosses the threshold.
		const brightestThreshold = 32.0 / 255.0

		brightestComponent := math.Max(math.Max(gradientColor.X(), gradientColor.Y()),
			gradientColor.Z())
		if brightestComponent > starVisThreshold {
			continue
		}

		gradientVisPercent := mathutil.Clamp(
			(brightestComponent-brightestThreshold)/(starVisThreshold-brightestThreshold),
			0.0, 1.0)

		colorR := texel.R
		colorG := texel.G
		colorB := texel.B

		// Lerp with the sky gradient for a smoother transition between day
		// and night.
		colorR += (gradientColor.X() - colorR) * gradientVisPercent
		colorG += (gradientColor.Y() - colorG) * gradientVisPercent
		colorB += (gradientColor.Z() - colorB) * gradientVisPercent

		colorR = math.Min(colorR, 1.0)
		colorG = math.Min(colorG, 1.0)
		colorB = math.Min(colorB, 1.0)

		frame.colorBuffer[index] = colorToRGB(colorR, colorG, colorB)
	}
}
