package tex

import (
	"testing"
)

// testPalette builds a palette with known colors: index 0 transparent,
// index 200 pure red, index 201 pure green, everything else opaque gray.
func testPalette() *Palette {
	var p Palette
	for i := 1; i < 256; i++ {
		p[i] = 0xFF808080
	}
	p[0] = 0x00000000
	p[200] = 0xFFFF0000
	p[201] = 0xFF00FF00
	p[PaletteIndexNightLight] = 0xFF504628
	p[PaletteIndexRedDst1] = 0xFF8C0A0A
	p[PaletteIndexRedDst2] = 0xFFA01414
	return &p
}

func TestDecodeVoxelTexture_Transparency(t *testing.T) {
	palette := testPalette()
	src := make([]uint8, 4*4)
	src[0] = 0 // transparent
	for i := 1; i < len(src); i++ {
		src[i] = 200
	}

	texture := DecodeVoxelTexture(src, 4, palette)

	if !texture.TexelAt(0, 0).Transparent {
		t.Errorf("Expected palette index 0 to decode transparent")
	}
	texel := texture.TexelAt(1, 0)
	if texel.Transparent {
		t.Errorf("Expected opaque texel for index 200")
	}
	if texel.R != 1.0 || texel.G != 0.0 || texel.B != 0.0 {
		t.Errorf("Expected pure red, got (%f, %f, %f)", texel.R, texel.G, texel.B)
	}
}

func TestDecodeVoxelTexture_RejectsNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for non-power-of-two dimension")
		}
	}()
	DecodeVoxelTexture(make([]uint8, 9), 3, testPalette())
}

func TestVoxelTexture_NightLightToggle(t *testing.T) {
	palette := testPalette()
	src := make([]uint8, 4*4)
	for i := range src {
		src[i] = 200
	}
	src[5] = PaletteIndexNightLight

	texture := DecodeVoxelTexture(src, 4, palette)

	original := *texture.TexelAt(1, 1)
	if original.Emission != 0.0 {
		t.Errorf("Expected no emission before activation")
	}

	texture.SetNightLightsActive(true)
	lit := texture.TexelAt(1, 1)
	if lit.Emission != 1.0 {
		t.Errorf("Expected full emission while active, got %f", lit.Emission)
	}
	if lit.R != 1.0 || lit.B != 0.0 {
		t.Errorf("Expected amber texel while active, got (%f, %f, %f)", lit.R, lit.G, lit.B)
	}

	// Non-light texels are untouched.
	if texture.TexelAt(0, 0).Emission != 0.0 {
		t.Errorf("Expected regular texel to keep zero emission")
	}

	// Deactivating restores the original decoded color exactly.
	texture.SetNightLightsActive(false)
	restored := texture.TexelAt(1, 1)
	if *restored != original {
		t.Errorf("Expected original texel restored, got %+v", *restored)
	}
}

func TestMakeFlatTexel_LightLevels(t *testing.T) {
	palette := testPalette()

	// Ghost indices decode as pure alpha diminish values.
	texel := MakeFlatTexel(PaletteIndexLightLevelLowest, false, palette)
	if texel.A <= 0.0 || texel.A >= 1.0 {
		t.Errorf("Expected fractional alpha for light level texel, got %f", texel.A)
	}
	if texel.R != 0.0 || texel.G != 0.0 || texel.B != 0.0 {
		t.Errorf("Expected no color on light level texel")
	}

	highest := MakeFlatTexel(PaletteIndexLightLevelHighest, false, palette)
	if highest.A <= texel.A {
		t.Errorf("Expected higher index to diminish less: %f vs %f", highest.A, texel.A)
	}
}

func TestMakeFlatTexel_PuddleRows(t *testing.T) {
	palette := testPalette()

	even := MakeFlatTexel(PaletteIndexPuddleEvenRow, true, palette)
	if even.Reflection != 1 || even.A != 1.0 {
		t.Errorf("Expected even-row reflection texel, got %+v", even)
	}

	odd := MakeFlatTexel(PaletteIndexPuddleOddRow, true, palette)
	if odd.Reflection != 2 {
		t.Errorf("Expected odd-row reflection texel, got %+v", odd)
	}

	// Without the reflective flag the indices are ordinary colors.
	plain := MakeFlatTexel(PaletteIndexPuddleEvenRow, false, palette)
	if plain.Reflection != 0 {
		t.Errorf("Expected no reflection on non-reflective texture")
	}
}

func TestMakeFlatTexel_RedRemap(t *testing.T) {
	palette := testPalette()

	texel := MakeFlatTexel(PaletteIndexRedSrc1, false, palette)
	wantR, _, _, _ := palette.Get(PaletteIndexRedDst1)
	if texel.R != wantR {
		t.Errorf("Expected source red 1 remapped to destination red 1")
	}

	texel = MakeFlatTexel(PaletteIndexRedSrc2, false, palette)
	wantR, _, _, _ = palette.Get(PaletteIndexRedDst2)
	if texel.R != wantR {
		t.Errorf("Expected source red 2 remapped to destination red 2")
	}
}

func TestDecodeFlatTexture_Flipped(t *testing.T) {
	palette := testPalette()
	src := []uint8{200, 201, 200, 201} // 2x2, red green per row
	texture := DecodeFlatTexture(src, 2, 2, true, false, palette)

	// Flipping mirrors horizontally, so green lands on the left.
	if texture.TexelAt(0, 0).G != 1.0 {
		t.Errorf("Expected flipped texture to put green at x=0")
	}
	if texture.TexelAt(1, 0).R != 1.0 {
		t.Errorf("Expected flipped texture to put red at x=1")
	}
}

func TestMakeUniformSkyTexture(t *testing.T) {
	texture := MakeUniformSkyTexture(0.5, 0.6, 0.7)
	if texture.Width() != 1 || texture.Height() != 1 {
		t.Errorf("Expected 1x1 texture, got %dx%d", texture.Width(), texture.Height())
	}
	texel := texture.TexelAt(0, 0)
	if texel.A != 1.0 || texel.G != 0.6 {
		t.Errorf("Unexpected uniform texel %+v", texel)
	}
}
