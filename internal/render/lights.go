package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/mathutil"
)

// maxLightsPerColumn caps how many visible lights one voxel column tracks.
// Extra lights are silently truncated.
const maxLightsPerColumn = 16

// VisibleLight is a point light that survived frustum culling this frame.
type VisibleLight struct {
	Position mgl64.Vec3
	Radius   float64
}

// LightVisibilityData is the result of testing one light source against the
// camera frustum.
type LightVisibilityData struct {
	Position          mgl64.Vec3
	Radius            float64
	IntersectsFrustum bool
}

// VisibleLightList is the fixed-capacity set of visible light IDs touching
// one voxel column.
type VisibleLightList struct {
	lightIDs [maxLightsPerColumn]int
	count    int
}

func (l *VisibleLightList) isFull() bool {
	return l.count == maxLightsPerColumn
}

func (l *VisibleLightList) clear() {
	l.count = 0
}

func (l *VisibleLightList) add(lightID int) {
	if l.isFull() {
		panic("visible light list is full")
	}

	l.lightIDs[l.count] = lightID
	l.count++
}

// sortByNearest orders the list's lights by increasing distance from the
// given point.
func (l *VisibleLightList) sortByNearest(point mgl64.Vec2, visLights []VisibleLight) {
	ids := l.lightIDs[:l.count]
	sort.Slice(ids, func(a, b int) bool {
		lightA := &visLights[ids[a]]
		lightB := &visLights[ids[b]]
		distSqrA := lightDistSqr(point, lightA)
		distSqrB := lightDistSqr(point, lightB)
		return distSqrA < distSqrB
	})
}

func lightDistSqr(point mgl64.Vec2, light *VisibleLight) float64 {
	dx := light.Position.X() - point.X()
	dz := light.Position.Z() - point.Y()
	return (dx * dx) + (dz * dz)
}

// rotateVec2 rotates a 2D vector counter-clockwise by the given radians.
func rotateVec2(v mgl64.Vec2, radians float64) mgl64.Vec2 {
	sinA := math.Sin(radians)
	cosA := math.Cos(radians)
	return mgl64.Vec2{
		(v.X() * cosA) - (v.Y() * sinA),
		(v.X() * sinA) + (v.Y() * cosA),
	}
}

// getLightVisibilityData tests one light source against the camera's
// view-frustum triangle. The light sits at half the owning flat's height.
func getLightVisibilityData(flatPosition mgl64.Vec3, flatHeight, lightRadius float64,
	eye2D, cameraDir mgl64.Vec2, fovXDegrees, viewDistance float64) LightVisibilityData {

	lightPosition2D := mgl64.Vec2{flatPosition.X(), flatPosition.Z()}

	// The frustum is approximated by the triangle spanned by the camera's
	// left and right view edges.
	halfFovX := fovXDegrees * 0.50 * mathutil.DegToRad
	leftDir := rotateVec2(cameraDir, halfFovX)
	rightDir := rotateVec2(cameraDir, -halfFovX)

	p0 := eye2D
	p1 := eye2D.Add(leftDir.Mul(viewDistance))
	p2 := eye2D.Add(rightDir.Mul(viewDistance))

	return LightVisibilityData{
		Position: mgl64.Vec3{
			flatPosition.X(),
			flatPosition.Y() + (flatHeight * 0.50),
			flatPosition.Z(),
		},
		Radius:            lightRadius,
		IntersectsFrustum: mathutil.TriangleCircleIntersection(p0, p2, p1, lightPosition2D, lightRadius),
	}
}

// populateVisibleLightLists rebuilds the per-voxel-column light lists from
// this frame's visible lights. Each light lands in every column its radius
// overlaps, then each touched list is sorted nearest-first.
func populateVisibleLightLists(visLightLists []VisibleLightList, visLights []VisibleLight,
	gridWidth, gridDepth int) {

	for i := range visLightLists {
		visLightLists[i].clear()
	}

	for lightID := range visLights {
		light := &visLights[lightID]

		// Voxel columns covered by the light radius's bounding box.
		startX := mathutil.ClampInt(int(light.Position.X()-light.Radius), 0, gridWidth-1)
		endX := mathutil.ClampInt(int(light.Position.X()+light.Radius), 0, gridWidth-1)
		startZ := mathutil.ClampInt(int(light.Position.Z()-light.Radius), 0, gridDepth-1)
		endZ := mathutil.ClampInt(int(light.Position.Z()+light.Radius), 0, gridDepth-1)

		for z := startZ; z <= endZ; z++ {
			for x := startX; x <= endX; x++ {
				list := &visLightLists[x+(z*gridWidth)]
				if !list.isFull() {
					list.add(lightID)
				}
			}
		}
	}

	for z := 0; z < gridDepth; z++ {
		for x := 0; x < gridWidth; x++ {
			list := &visLightLists[x+(z*gridWidth)]
			if list.count > 1 {
				voxelCenter := mgl64.Vec2{float64(x) + 0.50, float64(z) + 0.50}
				list.sortByNearest(voxelCenter, visLights)
			}
		}
	}
}
