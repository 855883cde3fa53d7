package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

const skyColorCount = 5

// starVisThreshold is the sky gradient brightness below which stars become
// visible.
const starVisThreshold = 64.0 / 255.0

// ShadingInfo is the per-frame lighting environment, computed once before
// the worker threads start.
type ShadingInfo struct {
	skyColors [skyColorCount]mgl64.Vec3

	timeRotation     mgl64.Mat4
	latitudeRotation mgl64.Mat4

	sunDirection mgl64.Vec3
	sunColor     mgl64.Vec3

	isAM bool

	ambient        float64
	distantAmbient float64
	fogDistance    float64

	chasmAnimPercent  float64
	nightLightsActive bool
}

// latitudeRotation rotates about Z for the given latitude in original angle
// units (0 to 100).
func latitudeRotation(latitude float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(latitude * (math.Pi / 8.0))
}

// timeOfDayRotation rotates about X for the given fraction of the day.
func timeOfDayRotation(daytimePercent float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(daytimePercent * mathutil.TwoPi)
}

func rotateDirection(m *mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	rotated := m.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 0.0})
	return mgl64.Vec3{rotated.X(), rotated.Y(), rotated.Z()}
}

func clampColor(c mgl64.Vec3, low, high float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mathutil.Clamp(c.X(), low, high),
		mathutil.Clamp(c.Y(), low, high),
		mathutil.Clamp(c.Z(), low, high),
	}
}

// NewShadingInfo derives the frame's shading environment from the sky
// palette and scalar frame parameters.
func NewShadingInfo(skyPalette []mgl64.Vec3, daytimePercent, latitude, ambient,
	fogDistance, chasmAnimPercent float64, nightLightsActive bool) ShadingInfo {

	if len(skyPalette) == 0 {
		panic("sky palette is empty")
	}

	var s ShadingInfo
	s.timeRotation = timeOfDayRotation(daytimePercent)
	s.latitudeRotation = latitudeRotation(latitude)

	// The sliding window of sky colors is backwards in the AM (horizon is
	// latest in the palette) and forwards in the PM (horizon is earliest).
	s.isAM = daytimePercent < 0.50
	slideDirection := 1
	if s.isAM {
		slideDirection = -1
	}

	realIndex := mathutil.RealIndex(len(skyPalette), daytimePercent)
	percent := realIndex - math.Floor(realIndex)

	for i := 0; i < skyColorCount; i++ {
		index := mathutil.WrappedIndex(len(skyPalette), int(realIndex)+(slideDirection*i))
		nextIndex := mathutil.WrappedIndex(len(skyPalette), index+slideDirection)
		color := skyPalette[index]
		nextColor := skyPalette[nextIndex]

		lerpPercent := percent
		if s.isAM {
			lerpPercent = 1.0 - percent
		}
		s.skyColors[i] = mathutil.LerpVec3(color, nextColor, lerpPercent)
	}

	// The sun rises in the west (-Z) and sets in the east (+Z). It gets a
	// bonus to latitude, in original angle units of 0 to 100.
	sunLatitude := -(latitude + (13.0 / 100.0))
	sunRotation := latitudeRotation(sunLatitude)
	baseDir := mgl64.Vec3{0.0, -1.0, 0.0}
	s.sunDirection = rotateDirection(&sunRotation, rotateDirection(&s.timeRotation, baseDir)).Normalize()

	baseSunColor := mgl64.Vec3{0.90, 0.875, 0.85}
	if s.sunDirection.Y() >= 0.0 {
		s.sunColor = baseSunColor
	} else {
		// Darken the sun below the horizon so wall faces aren't lit as much
		// during the night; compensates for the lack of shadows.
		s.sunColor = clampColor(baseSunColor.Mul(1.0-(5.0*math.Abs(s.sunDirection.Y()))), 0.0, 1.0)
	}

	s.ambient = ambient

	// At their darkest, distant objects are about 1/4 of their intensity.
	s.distantAmbient = mathutil.Clamp(ambient, 0.25, 1.0)

	s.fogDistance = fogDistance
	s.chasmAnimPercent = chasmAnimPercent
	s.nightLightsActive = nightLightsActive
	return s
}

// FogColor is the same as the horizon sky color.
func (s *ShadingInfo) FogColor() mgl64.Vec3 {
	return s.skyColors[0]
}

// skyGradientRowColor interpolates between the sky colors for one gradient
// percent.
func skyGradientRowColor(gradientPercent float64, shadingInfo *ShadingInfo) mgl64.Vec3 {
	realIndex := gradientPercent * float64(skyColorCount)
	percent := realIndex - math.Floor(realIndex)
	index := int(realIndex)
	nextIndex := mathutil.ClampInt(index+1, 0, skyColorCount-1)
	return mathutil.LerpVec3(shadingInfo.skyColors[index], shadingInfo.skyColors[nextIndex], percent)
}
