// Package sky describes the distant-sky scene handed to the renderer:
// horizon land silhouettes, animated volcanoes, clouds, moons, the sun, and
// stars. The renderer decodes the images into sky textures at registration
// time and projects the objects every frame.
package sky

import "github.com/go-gl/mathgl/mgl64"

// IdentityDim is the image dimension whose projected size matches
// IdentityAngle of the view. Object screen size scales from it.
const IdentityDim = 320.0

// IdentityAngle is the angle subtended by an identity-sized object, in
// radians.
const IdentityAngle = 90.0 * (3.141592653589793 / 180.0)

// Image is an 8-bit paletted source image for one sky object.
type Image struct {
	Texels []uint8
	Width  int
	Height int
}

// LandObject is a static horizon silhouette (mountains, city walls).
type LandObject struct {
	AngleRadians float64
	Image        Image
}

// AnimatedLandObject is a horizon silhouette with animation frames
// (volcanoes). FrameIndex is advanced by game logic between frames.
type AnimatedLandObject struct {
	AngleRadians float64
	Frames       []Image
	FrameIndex   int
}

// AirObject is a cloud. Height is 0 at the horizon and 1 at the distant
// cloud height limit.
type AirObject struct {
	AngleRadians float64
	Height       float64
	Image        Image
}

// MoonType selects which of the two moons an object is; their base sky
// positions differ.
type MoonType int

const (
	MoonFirst MoonType = iota
	MoonSecond
)

// MoonObject is one moon with its current phase.
type MoonObject struct {
	Type         MoonType
	PhasePercent float64
	Image        Image
}

// StarObject is either a small single-color star or a large textured one.
// Direction is its fixed direction in the celestial sphere before latitude
// and time-of-day rotation.
type StarObject struct {
	Direction mgl64.Vec3

	// Small stars are a single ARGB color; large stars carry an image.
	Small bool
	Color uint32
	Image Image
}

// DistantSky is the full distant scene description.
type DistantSky struct {
	Lands     []LandObject
	AnimLands []AnimatedLandObject
	Airs      []AirObject
	Moons     []MoonObject
	Stars     []StarObject

	// Sun is nil when the scene has no sun (interiors).
	Sun *Image
}
