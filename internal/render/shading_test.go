package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

func testSkyPalette() []mgl64.Vec3 {
	// Eight colors around the day, each a distinct gray level.
	palette := make([]mgl64.Vec3, 8)
	for i := range palette {
		level := float64(i) / 8.0
		palette[i] = mgl64.Vec3{level, level, level}
	}
	return palette
}

func TestNewShadingInfo_FogColorIsHorizon(t *testing.T) {
	shading := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 1.0, 30.0, 0.0, false)

	if shading.FogColor() != shading.skyColors[0] {
		t.Errorf("Expected fog color to equal the horizon sky color")
	}
}

func TestNewShadingInfo_SunAboveHorizonAtNoon(t *testing.T) {
	noon := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 1.0, 30.0, 0.0, false)
	if noon.sunDirection.Y() <= 0.0 {
		t.Errorf("Expected sun above the horizon at noon, got Y %f", noon.sunDirection.Y())
	}

	midnight := NewShadingInfo(testSkyPalette(), 0.0, 0.0, 0.30, 30.0, 0.0, true)
	if midnight.sunDirection.Y() >= 0.0 {
		t.Errorf("Expected sun below the horizon at midnight, got Y %f", midnight.sunDirection.Y())
	}
	// Below the horizon the sun color darkens.
	if midnight.sunColor.X() >= noon.sunColor.X() {
		t.Errorf("Expected darker sun at midnight")
	}
}

func TestNewShadingInfo_DistantAmbientFloor(t *testing.T) {
	dark := NewShadingInfo(testSkyPalette(), 0.0, 0.0, 0.05, 30.0, 0.0, true)
	if dark.distantAmbient != 0.25 {
		t.Errorf("Expected distant ambient floored at 0.25, got %f", dark.distantAmbient)
	}

	bright := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 0.90, 30.0, 0.0, false)
	if bright.distantAmbient != 0.90 {
		t.Errorf("Expected distant ambient to follow ambient when above the floor, got %f",
			bright.distantAmbient)
	}
}

func TestNewShadingInfo_EmptyPalettePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for empty sky palette")
		}
	}()
	NewShadingInfo(nil, 0.50, 0.0, 1.0, 30.0, 0.0, false)
}

func TestSkyGradientRowColor_Interpolates(t *testing.T) {
	shading := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 1.0, 30.0, 0.0, false)

	// Percent 0 is exactly the horizon color, the top approaches the last
	// window color.
	horizon := skyGradientRowColor(0.0, &shading)
	if horizon != shading.skyColors[0] {
		t.Errorf("Expected exact horizon color at percent 0")
	}

	top := skyGradientRowColor(mathutil.JustBelowOne, &shading)
	last := shading.skyColors[skyColorCount-1]
	if !mathutil.AlmostEqual(top.X(), last.X()) {
		t.Errorf("Expected top of gradient near the last sky color, got %f vs %f",
			top.X(), last.X())
	}
}

func TestSunShading_IncludesAmbient(t *testing.T) {
	shading := NewShadingInfo(testSkyPalette(), 0.50, 0.0, 0.40, 30.0, 0.0, false)

	// A normal facing away from the sun still gets the ambient term.
	awayNormal := shading.sunDirection.Mul(-1.0)
	away := sunShading(awayNormal, &shading)
	if !mathutil.AlmostEqual(away.X(), 0.40) {
		t.Errorf("Expected pure ambient for away-facing normal, got %f", away.X())
	}

	// A sun-facing normal gets more, but never past full intensity.
	toward := sunShading(shading.sunDirection, &shading)
	if toward.X() <= away.X() {
		t.Errorf("Expected sun-facing normal to be brighter")
	}
	if toward.X() > 1.0 || toward.Y() > 1.0 || toward.Z() > 1.0 {
		t.Errorf("Expected shading clamped to 1.0, got %v", toward)
	}
}

func TestNewShadingInfo_SkyWindowSlides(t *testing.T) {
	morning := NewShadingInfo(testSkyPalette(), 0.30, 0.0, 1.0, 30.0, 0.0, false)
	evening := NewShadingInfo(testSkyPalette(), 0.70, 0.0, 1.0, 30.0, 0.0, false)

	// AM and PM at mirrored times sample different window directions, so the
	// horizon colors differ.
	if morning.skyColors[0] == evening.skyColors[0] &&
		morning.skyColors[1] == evening.skyColors[1] {
		t.Errorf("Expected sliding window to differ between AM and PM")
	}
	if !morning.isAM || evening.isAM {
		t.Errorf("Expected AM flag before midday only")
	}
}
