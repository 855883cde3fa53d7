// Package tex converts 8-bit paletted source images into renderer-native
// texel arrays, encoding the special palette-index semantics the source art
// relies on (transparency, light-level diminishing, night-lights, puddle
// reflections).
package tex

// Palette-index semantics baked into the source art. Indices 1-13 are
// progressively darker "ghost" overlays, index 113 is a night-light that
// swaps between its decoded color and amber at runtime, and the two red
// source indices are remapped to dark reds (an art-pipeline compatibility
// quirk that must be preserved exactly).
const (
	PaletteIndexLightLevelLowest  = 1
	PaletteIndexLightLevelHighest = 13
	PaletteIndexLightLevelDivisor = 14
	PaletteIndexRedSrc1           = 14
	PaletteIndexRedSrc2           = 15
	PaletteIndexNightLight        = 113
	PaletteIndexRedDst1           = 158
	PaletteIndexRedDst2           = 159
	PaletteIndexPuddleEvenRow     = 30
	PaletteIndexPuddleOddRow      = 103
)

// Palette is a 256-entry ARGB color table.
type Palette [256]uint32

// Get returns the palette color split into normalized RGBA components.
func (p *Palette) Get(index uint8) (r, g, b, a float64) {
	argb := p[index]
	a = float64((argb>>24)&0xFF) / 255.0
	r = float64((argb>>16)&0xFF) / 255.0
	g = float64((argb>>8)&0xFF) / 255.0
	b = float64(argb&0xFF) / 255.0
	return
}
