package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
	"voxelcast/internal/sky"
	"voxelcast/internal/tex"
)

func distantTestPalette() *tex.Palette {
	var p tex.Palette
	for i := 1; i < 256; i++ {
		p[i] = 0xFF606060
	}
	return &p
}

func distantTestScene() *sky.DistantSky {
	image := sky.Image{Texels: make([]uint8, 16*8), Width: 16, Height: 8}
	for i := range image.Texels {
		image.Texels[i] = 20
	}

	scene := &sky.DistantSky{}
	scene.Lands = append(scene.Lands,
		sky.LandObject{AngleRadians: 0.0, Image: image},
		sky.LandObject{AngleRadians: math.Pi, Image: image},
	)
	scene.AnimLands = append(scene.AnimLands, sky.AnimatedLandObject{
		AngleRadians: 0.5,
		Frames:       []sky.Image{image, image, image},
	})
	scene.Airs = append(scene.Airs, sky.AirObject{
		AngleRadians: 0.0, Height: 0.5, Image: image,
	})
	scene.Moons = append(scene.Moons, sky.MoonObject{
		Type: sky.MoonFirst, PhasePercent: 0.25, Image: image,
	})
	sun := image
	scene.Sun = &sun
	scene.Stars = append(scene.Stars,
		sky.StarObject{Direction: mgl64.Vec3{0.0, 1.0, 0.0}, Small: true, Color: 0xFFFFFFFF},
	)
	return scene
}

func TestNewDistantObjects_DecodesScene(t *testing.T) {
	d := newDistantObjects(distantTestScene(), distantTestPalette())

	if len(d.lands) != 2 || len(d.animLands) != 1 || len(d.airs) != 1 ||
		len(d.moons) != 1 || len(d.stars) != 1 {
		t.Errorf("Unexpected object counts: %d lands, %d anim lands, %d airs, %d moons, %d stars",
			len(d.lands), len(d.animLands), len(d.airs), len(d.moons), len(d.stars))
	}
	if d.sunTextureIndex == noSunIndex {
		t.Errorf("Expected sun texture registered")
	}
	if d.animLands[0].frameCount != 3 {
		t.Errorf("Expected 3 volcano frames, got %d", d.animLands[0].frameCount)
	}

	// Every land, air, moon, anim frame, sun, and small star gets a texture.
	expectedTextures := 2 + 3 + 1 + 1 + 1 + 1
	if len(d.skyTextures) != expectedTextures {
		t.Errorf("Expected %d sky textures, got %d", expectedTextures, len(d.skyTextures))
	}
}

func TestNewDistantObjects_NoSun(t *testing.T) {
	scene := distantTestScene()
	scene.Sun = nil

	d := newDistantObjects(scene, distantTestPalette())
	if d.sunTextureIndex != noSunIndex {
		t.Errorf("Expected no-sun marker, got index %d", d.sunTextureIndex)
	}
}

func TestSetAnimLandFrame(t *testing.T) {
	d := newDistantObjects(distantTestScene(), distantTestPalette())

	d.setAnimLandFrame(0, 2)
	if d.animLandFrames[0] != 2 {
		t.Errorf("Expected frame offset 2, got %d", d.animLandFrames[0])
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for frame index past the count")
		}
	}()
	d.setAnimLandFrame(0, 3)
}

func distantTestFrame() (FrameView, []uint32) {
	colorBuffer := make([]uint32, 320*200)
	depthBuffer := make([]float64, 320*200)
	return newFrameView(colorBuffer, depthBuffer, 320, 200), colorBuffer
}

func TestUpdateVisibleDistantObjects_CullsBehind(t *testing.T) {
	d := newDistantObjects(distantTestScene(), distantTestPalette())
	shading := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 1.0, 30.0, 0.0, false)
	frame, _ := distantTestFrame()

	// Facing +Z (angle 0): the land at angle 0 is ahead, the one at pi is
	// behind.
	camera := testCamera(mgl64.Vec3{0.0, 1.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})

	var visObjs visDistantObjects
	updateVisibleDistantObjects(&visObjs, d, false, &shading, &camera, &frame)

	if visObjs.landEnd-visObjs.landStart != 1 {
		t.Errorf("Expected exactly one visible land, got %d",
			visObjs.landEnd-visObjs.landStart)
	}

	// Turning around swaps which land is visible but not the count.
	camera = testCamera(mgl64.Vec3{0.0, 1.5, 0.0}, mgl64.Vec3{0.0, 0.0, -1.0})
	updateVisibleDistantObjects(&visObjs, d, false, &shading, &camera, &frame)
	if visObjs.landEnd-visObjs.landStart != 1 {
		t.Errorf("Expected one visible land after turning, got %d",
			visObjs.landEnd-visObjs.landStart)
	}
}

func TestUpdateVisibleDistantObjects_NilScene(t *testing.T) {
	shading := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 1.0, 30.0, 0.0, false)
	frame, _ := distantTestFrame()
	camera := testCamera(mgl64.Vec3{0.0, 1.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})

	visObjs := visDistantObjects{objs: make([]VisDistantObject, 3)}
	updateVisibleDistantObjects(&visObjs, nil, false, &shading, &camera, &frame)
	if len(visObjs.objs) != 0 {
		t.Errorf("Expected cleared object list for nil scene")
	}
}

func TestSkyGradientPercent(t *testing.T) {
	top, bottom := 0.10, 0.50

	// At the horizon the gradient is at its maximum percent, at the top it
	// approaches zero from below one.
	if got := skyGradientPercent(bottom, top, bottom); got > 0.0001 {
		t.Errorf("Expected near-zero gradient percent at the horizon, got %f", got)
	}
	if got := skyGradientPercent(top, top, bottom); got < mathutil.JustBelowOne-0.0001 {
		t.Errorf("Expected near-one gradient percent at the top, got %f", got)
	}

	// Above the top it stays clamped.
	if got := skyGradientPercent(-5.0, top, bottom); got != skyGradientPercent(top, top, bottom) {
		t.Errorf("Expected clamped percent above the gradient top")
	}
}

func TestDrawSkyGradient_FillsRowsAndDetectsDark(t *testing.T) {
	frame, colorBuffer := distantTestFrame()
	camera := testCamera(mgl64.Vec3{0.0, 1.5, 0.0}, mgl64.Vec3{0.0, 0.0, 1.0})
	top, bottom := skyGradientProjectedYRange(&camera)
	rowCache := make([]mgl64.Vec3, frame.height)

	// Bright palette: no stars.
	brightPalette := make([]mgl64.Vec3, 4)
	for i := range brightPalette {
		brightPalette[i] = mgl64.Vec3{0.8, 0.8, 0.8}
	}
	shading := NewShadingInfo(brightPalette, 0.50, 0.0, 1.0, 30.0, 0.0, false)

	if drawSkyGradient(0, frame.height, top, bottom, rowCache, &shading, &frame) {
		t.Errorf("Expected bright sky to suppress stars")
	}

	// Every pixel was filled with the row color and infinite depth.
	for _, y := range []int{0, frame.height / 2, frame.height - 1} {
		want := colorToRGB(rowCache[y].X(), rowCache[y].Y(), rowCache[y].Z())
		if colorBuffer[y*frame.width] != want {
			t.Errorf("Row %d not filled with cached color", y)
		}
		if !math.IsInf(frame.depthBuffer[y*frame.width], 1) {
			t.Errorf("Row %d depth not reset to infinity", y)
		}
	}

	// Dark palette: stars become visible.
	darkPalette := make([]mgl64.Vec3, 4)
	for i := range darkPalette {
		darkPalette[i] = mgl64.Vec3{0.05, 0.05, 0.05}
	}
	shading = NewShadingInfo(darkPalette, 0.0, 0.0, 0.30, 30.0, 0.0, true)
	if !drawSkyGradient(0, frame.height, top, bottom, rowCache, &shading, &frame) {
		t.Errorf("Expected dark sky to enable stars")
	}
}

func TestSpaceCorrectedAngles_IdentityAtMidnight(t *testing.T) {
	// At daytime 0 with zero latitude both rotations are identity, so the
	// angles round-trip.
	shading := NewShadingInfo(testSkyPalette(), 0.0, 0.0, 0.30, 30.0, 0.0, true)

	xIn, yIn := 0.70, 0.30
	xOut, yOut := spaceCorrectedAngles(xIn, yIn, &shading)
	if !mathutil.AlmostEqual(xOut, xIn) || !mathutil.AlmostEqual(yOut, yIn) {
		t.Errorf("Expected identity correction at midnight, got (%f, %f)", xOut, yOut)
	}

	// At another time of day the same star moves.
	shading = NewShadingInfo(testSkyPalette(), 0.30, 0.0, 1.0, 30.0, 0.0, false)
	xMoved, yMoved := spaceCorrectedAngles(xIn, yIn, &shading)
	if mathutil.AlmostEqual(xMoved, xIn) && mathutil.AlmostEqual(yMoved, yIn) {
		t.Errorf("Expected star to move with time of day")
	}
}

func TestMoonDirection_DistinctTracks(t *testing.T) {
	first := moonDirection(sky.MoonFirst, 0.25)
	second := moonDirection(sky.MoonSecond, 0.25)

	if !mathutil.AlmostEqual(first.Len(), 1.0) || !mathutil.AlmostEqual(second.Len(), 1.0) {
		t.Errorf("Expected unit moon directions")
	}
	if first.Sub(second).Len() < 0.01 {
		t.Errorf("Expected the two moons on distinct tracks")
	}

	// Phase changes move a moon along its track.
	later := moonDirection(sky.MoonFirst, 0.60)
	if first.Sub(later).Len() < 0.01 {
		t.Errorf("Expected phase to move the moon")
	}
}
