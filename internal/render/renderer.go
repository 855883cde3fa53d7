// Package render implements a software 2.5D ray-casting rasterizer: given a
// camera pose, a grid of typed voxels, decoded textures, dynamic lights,
// door and chasm animation state, and a distant-sky description, it fills a
// full-screen color and depth buffer every frame.
package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/entity"
	"voxelcast/internal/mathutil"
	"voxelcast/internal/sky"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

// defaultVoxelTextureCount is the initial size of the voxel texture table.
// The table grows on demand for larger IDs.
const defaultVoxelTextureCount = 64

// playerLightRadius is the radius of the camera-carried light.
const playerLightRadius = 5.0

// Light is a registered dynamic point light. Color is kept for future use;
// contribution is currently monochrome.
type Light struct {
	Position mgl64.Vec3
	Color    mgl64.Vec3
	Radius   float64
}

// RenderFrame bundles the per-frame inputs to Render. Everything here is
// read-only for the duration of the call.
type RenderFrame struct {
	Eye       mgl64.Vec3
	Direction mgl64.Vec3
	FovY      float64

	Ambient        float64
	DaytimePercent float64
	Latitude       float64

	CeilingHeight     float64
	ParallaxSky       bool
	NightLightsActive bool
	IsExterior        bool
	PlayerHasLight    bool
	ChasmAnimPercent  float64

	Grid     *voxel.Grid
	Entities *entity.Snapshot

	OpenDoors    []DoorState
	FadingVoxels []FadeState
}

// ProfilerData is a snapshot of renderer statistics for HUD display.
type ProfilerData struct {
	Width, Height int
	ThreadCount   int

	VisFlatCount  int
	VisLightCount int
}

// Renderer is the top-level software renderer. It owns all decoded texture
// storage, the depth buffer, and a persistent pool of render workers. It is
// not safe for concurrent use; one goroutine drives it.
type Renderer struct {
	width, height     int
	renderThreadsMode int

	depthBuffer         []float64
	occlusion           []OcclusionData
	skyGradientRowCache []mgl64.Vec3

	voxelTextures      []*tex.VoxelTexture
	flatTextureGroups  map[int]*tex.FlatTextureGroup
	chasmTextureGroups map[voxel.ChasmType]*tex.ChasmTextureGroup

	skyPalette []mgl64.Vec3
	distant    *distantObjects

	fogDistance float64

	lights      map[int]Light
	cappedLight bool
	filterMode  int

	nightLightsActive bool

	visibleFlats   []VisibleFlat
	visDistantObjs visDistantObjects
	visLights      []VisibleLight
	visLightLists  []VisibleLightList

	pool *renderPool
}

// New creates a renderer with the given output dimensions and render
// threads mode and starts its worker pool.
func New(width, height, renderThreadsMode int) *Renderer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid frame dimensions %dx%d", width, height))
	}

	r := &Renderer{
		renderThreadsMode:  renderThreadsMode,
		voxelTextures:      make([]*tex.VoxelTexture, defaultVoxelTextureCount),
		flatTextureGroups:  make(map[int]*tex.FlatTextureGroup),
		chasmTextureGroups: make(map[voxel.ChasmType]*tex.ChasmTextureGroup),
		lights:             make(map[int]Light),
		cappedLight:        true,
	}
	r.allocateFrameBuffers(width, height)
	r.pool = newRenderPool(width, height, getRenderThreadsFromMode(renderThreadsMode))
	return r
}

func (r *Renderer) allocateFrameBuffers(width, height int) {
	pixelCount := width * height

	r.depthBuffer = make([]float64, pixelCount)
	for i := range r.depthBuffer {
		r.depthBuffer[i] = math.Inf(1)
	}

	r.occlusion = make([]OcclusionData, width)
	for i := range r.occlusion {
		r.occlusion[i] = NewOcclusionData(0, height)
	}

	r.skyGradientRowCache = make([]mgl64.Vec3, height)

	r.width = width
	r.height = height
}

// Resize reallocates the frame buffers and restarts the worker pool for the
// new dimensions.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid frame dimensions %dx%d", width, height))
	}

	r.pool.shutdown()
	r.allocateFrameBuffers(width, height)
	r.pool = newRenderPool(width, height, getRenderThreadsFromMode(r.renderThreadsMode))
}

// SetRenderThreadsMode restarts the worker pool with a new thread count.
func (r *Renderer) SetRenderThreadsMode(mode int) {
	threadCount := getRenderThreadsFromMode(mode)
	r.renderThreadsMode = mode

	r.pool.shutdown()
	r.pool = newRenderPool(r.width, r.height, threadCount)
}

// Shutdown stops the worker pool. The renderer cannot be used afterwards.
func (r *Renderer) Shutdown() {
	r.pool.shutdown()
}

// SetLightCapEnabled selects whether summed point-light contribution
// saturates at full intensity or keeps accumulating.
func (r *Renderer) SetLightCapEnabled(enabled bool) {
	r.cappedLight = enabled
}

// SetFilterMode selects nearest or linear voxel texture sampling.
func (r *Renderer) SetFilterMode(mode int) {
	if mode != filterModeNearest && mode != filterModeLinear {
		panic(fmt.Sprintf("invalid filter mode %d", mode))
	}
	r.filterMode = mode
}

// SetVoxelTexture decodes a power-of-two square 8-bit image into the voxel
// texture slot for the given ID, growing the table if necessary.
func (r *Renderer) SetVoxelTexture(id int, texels []uint8, palette *tex.Palette) {
	if id < 0 {
		panic(fmt.Sprintf("invalid voxel texture ID %d", id))
	}
	for id >= len(r.voxelTextures) {
		r.voxelTextures = append(r.voxelTextures, nil)
	}

	dim := int(math.Sqrt(float64(len(texels))))
	if dim*dim != len(texels) {
		panic(fmt.Sprintf("voxel texture with %d texels is not square", len(texels)))
	}

	texture := tex.DecodeVoxelTexture(texels, dim, palette)
	texture.SetNightLightsActive(r.nightLightsActive)
	r.voxelTextures[id] = texture
}

// AddFlatTexture decodes one sprite animation frame and registers it under
// the flat index, animation state, and view angle.
func (r *Renderer) AddFlatTexture(flatIndex int, stateType tex.AnimStateType,
	angleID int, texels []uint8, flipped, reflective bool, width, height int,
	palette *tex.Palette) {

	group, ok := r.flatTextureGroups[flatIndex]
	if !ok {
		group = &tex.FlatTextureGroup{}
		r.flatTextureGroups[flatIndex] = group
	}

	group.AddTexture(stateType, angleID,
		tex.DecodeFlatTexture(texels, width, height, flipped, reflective, palette))
}

// AddChasmTexture appends one animation frame for a chasm type.
func (r *Renderer) AddChasmTexture(chasmType voxel.ChasmType, texels []uint8,
	width, height int, palette *tex.Palette) {

	group, ok := r.chasmTextureGroups[chasmType]
	if !ok {
		group = &tex.ChasmTextureGroup{}
		r.chasmTextureGroups[chasmType] = group
	}

	group.AddTexture(tex.DecodeChasmTexture(texels, width, height, palette))
}

// SetSkyPalette sets the colors the sky gradient slides through over a day.
func (r *Renderer) SetSkyPalette(colors []uint32) {
	r.skyPalette = make([]mgl64.Vec3, len(colors))
	for i, color := range colors {
		r.skyPalette[i] = rgbToColor(color)
	}
}

// SetDistantSky decodes a distant scene description, replacing any previous
// one.
func (r *Renderer) SetDistantSky(scene *sky.DistantSky, palette *tex.Palette) {
	r.distant = newDistantObjects(scene, palette)
}

// ClearDistantSky removes the distant scene.
func (r *Renderer) ClearDistantSky() {
	r.distant = nil
}

// SetAnimLandFrame advances one animated land object's frame (volcano
// animation).
func (r *Renderer) SetAnimLandFrame(animLandIndex, frameIndex int) {
	if r.distant == nil {
		panic("no distant sky set")
	}
	r.distant.setAnimLandFrame(animLandIndex, frameIndex)
}

// SetNightLightsActive swaps night-light texels in every registered voxel
// texture between amber emission and their original colors.
func (r *Renderer) SetNightLightsActive(active bool) {
	r.nightLightsActive = active
	for _, texture := range r.voxelTextures {
		if texture != nil {
			texture.SetNightLightsActive(active)
		}
	}
}

// SetFogDistance sets how far geometry stays visible before fading into the
// horizon color.
func (r *Renderer) SetFogDistance(fogDistance float64) {
	r.fogDistance = fogDistance
}

// AddLight registers a dynamic point light. The ID must be unused.
func (r *Renderer) AddLight(id int, point, color mgl64.Vec3, radius float64) {
	if _, ok := r.lights[id]; ok {
		panic(fmt.Sprintf("light ID %d already registered", id))
	}
	r.lights[id] = Light{Position: point, Color: color, Radius: radius}
}

// UpdateLight modifies a registered light. Nil fields keep their values.
func (r *Renderer) UpdateLight(id int, point, color *mgl64.Vec3, radius *float64) {
	light, ok := r.lights[id]
	if !ok {
		panic(fmt.Sprintf("light ID %d not registered", id))
	}

	if point != nil {
		light.Position = *point
	}
	if color != nil {
		light.Color = *color
	}
	if radius != nil {
		light.Radius = *radius
	}
	r.lights[id] = light
}

// RemoveLight unregisters a dynamic point light.
func (r *Renderer) RemoveLight(id int) {
	if _, ok := r.lights[id]; !ok {
		panic(fmt.Sprintf("light ID %d not registered", id))
	}
	delete(r.lights, id)
}

// ClearTextures drops all registered voxel, flat, chasm, and sky textures.
func (r *Renderer) ClearTextures() {
	for i := range r.voxelTextures {
		r.voxelTextures[i] = nil
	}
	r.flatTextureGroups = make(map[int]*tex.FlatTextureGroup)
	r.chasmTextureGroups = make(map[voxel.ChasmType]*tex.ChasmTextureGroup)
	r.distant = nil
}

// ScreenPointToRay converts 0-1 screen percentages to a world-space ray
// direction through that pixel, for picking.
func (r *Renderer) ScreenPointToRay(xPercent, yPercent float64,
	cameraDirection mgl64.Vec3, fovY float64) mgl64.Vec3 {

	aspect := float64(r.width) / float64(r.height)
	return ScreenPointToRay(xPercent, yPercent, cameraDirection, fovY, aspect)
}

// ProfilerData reports renderer statistics from the last frame.
func (r *Renderer) ProfilerData() ProfilerData {
	return ProfilerData{
		Width:         r.width,
		Height:        r.height,
		ThreadCount:   r.pool.totalThreads,
		VisFlatCount:  len(r.visibleFlats),
		VisLightCount: len(r.visLights),
	}
}

// updateVisibleLights culls this frame's point lights against the view
// frustum and rebuilds the per-voxel-column light lists.
func (r *Renderer) updateVisibleLights(frame *RenderFrame, camera *Camera) {
	r.visLights = r.visLights[:0]

	eye2D := mgl64.Vec2{camera.Eye.X(), camera.Eye.Z()}
	cameraDir := mgl64.Vec2{camera.ForwardX, camera.ForwardZ}
	fovX := mathutil.VerticalFovToHorizontalFov(camera.FovY, camera.Aspect)
	viewDistance := r.fogDistance

	tryAddLight := func(position mgl64.Vec3, height, radius float64) {
		data := getLightVisibilityData(position, height, radius, eye2D, cameraDir,
			fovX, viewDistance)
		if data.IntersectsFrustum {
			r.visLights = append(r.visLights, VisibleLight{
				Position: data.Position,
				Radius:   data.Radius,
			})
		}
	}

	if frame.PlayerHasLight {
		tryAddLight(camera.Eye, 0.0, playerLightRadius)
	}

	if frame.Entities != nil {
		for i := range frame.Entities.Entities {
			e := &frame.Entities.Entities[i]
			if e.LightRadius <= 0.0 {
				continue
			}
			if e.IsStreetLight && !frame.NightLightsActive {
				continue
			}

			position := mgl64.Vec3{
				e.Position.X(),
				frame.CeilingHeight + e.YOffset +
					raisedPlatformYOffset(e.Position, frame.CeilingHeight, frame.Grid),
				e.Position.Y(),
			}
			tryAddLight(position, e.Height, e.LightRadius)
		}
	}

	for _, light := range r.lights {
		tryAddLight(light.Position, 0.0, light.Radius)
	}

	gridWidth := frame.Grid.Width()
	gridDepth := frame.Grid.Depth()
	if len(r.visLightLists) != gridWidth*gridDepth {
		r.visLightLists = make([]VisibleLightList, gridWidth*gridDepth)
	}
	populateVisibleLightLists(r.visLightLists, r.visLights, gridWidth, gridDepth)
}

// Render draws one frame into colorBuffer. The worker pool draws the sky
// gradient, distant sky, voxels, and flats in strict stage order while this
// goroutine interleaves the visibility updates that gate each stage.
func (r *Renderer) Render(frame RenderFrame, colorBuffer []uint32) {
	if frame.Grid == nil {
		panic("render frame has no voxel grid")
	}
	if len(r.skyPalette) == 0 {
		panic("sky palette not set")
	}

	aspect := float64(r.width) / float64(r.height)
	camera := NewCamera(frame.Eye, frame.Direction, frame.FovY, aspect, tallPixelRatio)

	shading := NewShadingInfo(r.skyPalette, frame.DaytimePercent, frame.Latitude,
		frame.Ambient, r.fogDistance, frame.ChasmAnimPercent, frame.NightLightsActive)

	frameView := newFrameView(colorBuffer, r.depthBuffer, r.width, r.height)

	ctx := &castContext{
		grid:          frame.Grid,
		shading:       &shading,
		ceilingHeight: frame.CeilingHeight,
		openDoors:     frame.OpenDoors,
		fadingVoxels:  frame.FadingVoxels,
		voxelTextures: r.voxelTextures,
		flatTextures:  r.flatTextureGroups,
		chasmTextures: r.chasmTextureGroups,
		cappedLight:   r.cappedLight,
		filterMode:    r.filterMode,
		frame:         frameView,
	}

	gradientProjYTop, gradientProjYBottom := skyGradientProjectedYRange(&camera)

	drawDistant := frame.IsExterior && (r.distant != nil)

	plan := r.pool.newFramePlan(&camera, ctx, gradientProjYTop, gradientProjYBottom,
		r.skyGradientRowCache, drawDistant, &r.visDistantObjs, r.occlusion)

	// Workers start on the sky gradient while this goroutine does the
	// per-frame visibility work.
	r.pool.start(plan)

	// Reset occlusion. The sky gradient row cache needs no reset since it
	// is written before it is read.
	for i := range r.occlusion {
		r.occlusion[i] = NewOcclusionData(0, r.height)
	}

	if drawDistant {
		updateVisibleDistantObjects(&r.visDistantObjs, r.distant, frame.ParallaxSky,
			&shading, &camera, &frameView)
	} else {
		r.visDistantObjs.clear()
	}
	close(plan.visTestingDone)

	r.updateVisibleLights(&frame, &camera)
	ctx.visLights = r.visLights
	ctx.visLightLists = r.visLightLists
	close(plan.lightsDone)

	r.visibleFlats = updateVisibleFlats(r.visibleFlats, frame.Entities, &camera,
		frame.CeilingHeight, r.fogDistance, frame.Grid)
	plan.flats = r.visibleFlats
	close(plan.sortingDone)

	plan.done.Wait()
}
