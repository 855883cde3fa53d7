package tex

import (
	"fmt"
	"math/bits"
)

// VoxelTexel is one decoded texel of a voxel texture.
type VoxelTexel struct {
	R, G, B     float64
	Emission    float64
	Transparent bool
}

// FlatTexel is one decoded texel of a flat (sprite) texture. An alpha in
// (0, 1) marks a light-level diminish texel rather than a color. Reflection
// is nonzero for puddle texels (1 = even source row, 2 = odd source row).
type FlatTexel struct {
	R, G, B, A float64
	Reflection uint8
}

// SkyTexel is one decoded texel of a distant-sky texture. Alpha may be
// fractional for soft cloud edges.
type SkyTexel struct {
	R, G, B, A float64
}

// ChasmTexel is one decoded texel of an animated chasm texture.
type ChasmTexel struct {
	R, G, B float64
}

// MakeVoxelTexel decodes one source texel for a voxel texture.
func MakeVoxelTexel(src uint8, palette *Palette) VoxelTexel {
	r, g, b, a := palette.Get(src)
	return VoxelTexel{R: r, G: g, B: b, Transparent: a == 0.0}
}

// MakeFlatTexel decodes one source texel for a flat texture, applying the
// light-level, red-remap, and puddle-row index rules.
func MakeFlatTexel(src uint8, reflective bool, palette *Palette) FlatTexel {
	if src >= PaletteIndexLightLevelLowest && src <= PaletteIndexLightLevelHighest {
		return FlatTexel{A: float64(src) / float64(PaletteIndexLightLevelDivisor)}
	}

	if reflective {
		if src == PaletteIndexPuddleEvenRow {
			return FlatTexel{Reflection: 1, A: 1.0}
		}
		if src == PaletteIndexPuddleOddRow {
			return FlatTexel{Reflection: 2, A: 1.0}
		}
	}

	index := src
	if src == PaletteIndexRedSrc1 {
		index = PaletteIndexRedDst1
	} else if src == PaletteIndexRedSrc2 {
		index = PaletteIndexRedDst2
	}

	r, g, b, a := palette.Get(index)
	return FlatTexel{R: r, G: g, B: b, A: a}
}

// MakeSkyTexel decodes one source texel for a sky texture. Same as flat
// texels but without the hardcoded index remaps.
func MakeSkyTexel(src uint8, palette *Palette) SkyTexel {
	if src >= PaletteIndexLightLevelLowest && src <= PaletteIndexLightLevelHighest {
		return SkyTexel{A: float64(src) / float64(PaletteIndexLightLevelDivisor)}
	}

	r, g, b, a := palette.Get(src)
	return SkyTexel{R: r, G: g, B: b, A: a}
}

// MakeChasmTexel decodes one source texel for a chasm texture.
func MakeChasmTexel(src uint8, palette *Palette) ChasmTexel {
	r, g, b, _ := palette.Get(src)
	return ChasmTexel{R: r, G: g, B: b}
}

func checkDims(width, height, texelCount int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid texture dimensions %dx%d", width, height))
	}
	if width*height != texelCount {
		panic(fmt.Sprintf("texture dimensions %dx%d do not match texel count %d",
			width, height, texelCount))
	}
}

// VoxelTexture is a power-of-two square texture with a cached list of
// night-light texel coordinates for runtime toggling.
type VoxelTexture struct {
	width       int
	height      int
	texels      []VoxelTexel
	lightTexels [][2]int

	// Decoded colors of the night-light texels, for restoring when the
	// lights are switched off.
	lightOriginals []VoxelTexel
}

// DecodeVoxelTexture decodes a power-of-two square 8-bit image.
func DecodeVoxelTexture(srcTexels []uint8, dim int, palette *Palette) *VoxelTexture {
	if dim <= 0 || bits.OnesCount(uint(dim)) != 1 {
		panic(fmt.Sprintf("voxel texture dimension %d is not a power of two", dim))
	}
	checkDims(dim, dim, len(srcTexels))

	t := &VoxelTexture{
		width:  dim,
		height: dim,
		texels: make([]VoxelTexel, dim*dim),
	}

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			index := x + (y * dim)
			src := srcTexels[index]
			texel := MakeVoxelTexel(src, palette)
			t.texels[index] = texel

			if src == PaletteIndexNightLight {
				t.lightTexels = append(t.lightTexels, [2]int{x, y})
				t.lightOriginals = append(t.lightOriginals, texel)
			}
		}
	}

	return t
}

func (t *VoxelTexture) Width() int  { return t.width }
func (t *VoxelTexture) Height() int { return t.height }

// TexelAt returns the texel at (x, y), panicking on out-of-range
// coordinates.
func (t *VoxelTexture) TexelAt(x, y int) *VoxelTexel {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic(fmt.Sprintf("texel (%d, %d) out of %dx%d texture", x, y, t.width, t.height))
	}
	return &t.texels[x+(y*t.width)]
}

// SetNightLightsActive swaps the cached night-light texels between amber
// emission and their original decoded color.
func (t *VoxelTexture) SetNightLightsActive(active bool) {
	for i, coord := range t.lightTexels {
		texel := &t.texels[coord[0]+(coord[1]*t.width)]
		if active {
			texel.R = 255.0 / 255.0
			texel.G = 166.0 / 255.0
			texel.B = 0.0
			texel.Transparent = false
			texel.Emission = 1.0
		} else {
			*texel = t.lightOriginals[i]
		}
	}
}

// FlatTexture is one sprite animation frame. Flipping happens at decode
// time so drawing never needs a direction check.
type FlatTexture struct {
	width      int
	height     int
	texels     []FlatTexel
	reflective bool
}

// DecodeFlatTexture decodes an 8-bit sprite frame, mirroring it
// horizontally when flipped.
func DecodeFlatTexture(srcTexels []uint8, width, height int, flipped, reflective bool, palette *Palette) *FlatTexture {
	checkDims(width, height, len(srcTexels))

	t := &FlatTexture{
		width:      width,
		height:     height,
		texels:     make([]FlatTexel, width*height),
		reflective: reflective,
	}

	if !flipped {
		for i, src := range srcTexels {
			t.texels[i] = MakeFlatTexel(src, reflective, palette)
		}
	} else {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				srcIndex := x + (y * width)
				dstIndex := ((width - 1) - x) + (y * width)
				t.texels[dstIndex] = MakeFlatTexel(srcTexels[srcIndex], reflective, palette)
			}
		}
	}

	return t
}

func (t *FlatTexture) Width() int       { return t.width }
func (t *FlatTexture) Height() int      { return t.height }
func (t *FlatTexture) Reflective() bool { return t.reflective }

func (t *FlatTexture) TexelAt(x, y int) *FlatTexel {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic(fmt.Sprintf("texel (%d, %d) out of %dx%d texture", x, y, t.width, t.height))
	}
	return &t.texels[x+(y*t.width)]
}

// SkyTexture is one distant-sky object image.
type SkyTexture struct {
	width  int
	height int
	texels []SkyTexel
}

// DecodeSkyTexture decodes an 8-bit distant-sky image.
func DecodeSkyTexture(srcTexels []uint8, width, height int, palette *Palette) *SkyTexture {
	checkDims(width, height, len(srcTexels))

	t := &SkyTexture{
		width:  width,
		height: height,
		texels: make([]SkyTexel, width*height),
	}

	for i, src := range srcTexels {
		t.texels[i] = MakeSkyTexel(src, palette)
	}

	return t
}

// MakeUniformSkyTexture builds a 1x1 texture of a single color, used for
// small stars.
func MakeUniformSkyTexture(r, g, b float64) *SkyTexture {
	return &SkyTexture{
		width:  1,
		height: 1,
		texels: []SkyTexel{{R: r, G: g, B: b, A: 1.0}},
	}
}

func (t *SkyTexture) Width() int  { return t.width }
func (t *SkyTexture) Height() int { return t.height }

func (t *SkyTexture) TexelAt(x, y int) *SkyTexel {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic(fmt.Sprintf("texel (%d, %d) out of %dx%d texture", x, y, t.width, t.height))
	}
	return &t.texels[x+(y*t.width)]
}

// ChasmTexture is one animation frame of a chasm floor.
type ChasmTexture struct {
	width  int
	height int
	texels []ChasmTexel
}

// DecodeChasmTexture decodes an 8-bit chasm animation frame.
func DecodeChasmTexture(srcTexels []uint8, width, height int, palette *Palette) *ChasmTexture {
	checkDims(width, height, len(srcTexels))

	t := &ChasmTexture{
		width:  width,
		height: height,
		texels: make([]ChasmTexel, width*height),
	}

	for i, src := range srcTexels {
		t.texels[i] = MakeChasmTexel(src, palette)
	}

	return t
}

func (t *ChasmTexture) Width() int  { return t.width }
func (t *ChasmTexture) Height() int { return t.height }

func (t *ChasmTexture) TexelAt(x, y int) *ChasmTexel {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic(fmt.Sprintf("texel (%d, %d) out of %dx%d texture", x, y, t.width, t.height))
	}
	return &t.texels[x+(y*t.width)]
}
