package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/entity"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

func rendererTestPalette() *tex.Palette {
	var p tex.Palette
	for i := 1; i < 256; i++ {
		p[i] = 0xFF808080
	}
	return &p
}

// newTestRenderer builds a single-threaded renderer with one gray voxel
// texture and a basic sky palette.
func newTestRenderer(width, height int) *Renderer {
	r := New(width, height, 0)
	r.SetFogDistance(20.0)

	texels := make([]uint8, 4*4)
	for i := range texels {
		texels[i] = 20
	}
	r.SetVoxelTexture(0, texels, rendererTestPalette())

	r.SetSkyPalette([]uint32{0x202040, 0x404060, 0x8080A0, 0x6060A0})
	return r
}

// rendererTestGrid is a walled 8x8 yard with a floor.
func rendererTestGrid() *voxel.Grid {
	grid := voxel.NewGrid(8, 2, 8)
	floor := grid.AddDefinition(voxel.MakeFloor(0))
	wall := grid.AddDefinition(voxel.MakeWall(0, 0, 0))

	for z := 0; z < 8; z++ {
		for x := 0; x < 8; x++ {
			grid.SetVoxel(x, 0, z, floor)
		}
	}
	for i := 0; i < 8; i++ {
		grid.SetVoxel(i, 1, 0, wall)
		grid.SetVoxel(i, 1, 7, wall)
		grid.SetVoxel(0, 1, i, wall)
		grid.SetVoxel(7, 1, i, wall)
	}
	return grid
}

func testRenderFrame(grid *voxel.Grid) RenderFrame {
	return RenderFrame{
		Eye:            mgl64.Vec3{4.0, 1.60, 1.5},
		Direction:      mgl64.Vec3{0.0, 0.0, 1.0},
		FovY:           75.0,
		Ambient:        1.0,
		DaytimePercent: 0.50,
		CeilingHeight:  1.0,
		IsExterior:     true,
		Grid:           grid,
	}
}

func TestRenderer_RenderFillsFrame(t *testing.T) {
	const width, height = 160, 100
	r := newTestRenderer(width, height)
	defer r.Shutdown()

	colorBuffer := make([]uint32, width*height)
	r.Render(testRenderFrame(rendererTestGrid()), colorBuffer)

	// The wall ahead leaves finite depth in the middle of the screen.
	centerIndex := (width / 2) + ((height / 2) * width)
	centerDepth := r.depthBuffer[centerIndex]
	if math.IsInf(centerDepth, 1) {
		t.Errorf("Expected finite depth at the wall ahead")
	}
	if centerDepth <= 0.0 || centerDepth > 8.0 {
		t.Errorf("Wall depth %f outside the yard", centerDepth)
	}

	// The sky above the wall stays at infinite depth.
	if !math.IsInf(r.depthBuffer[width/2], 1) {
		t.Errorf("Expected infinite depth at the top sky row")
	}

	// Every depth value was written this frame: infinite sky or positive
	// geometry depth, never stale zero.
	for i, depth := range r.depthBuffer {
		if !math.IsInf(depth, 1) && depth <= 0.0 {
			t.Fatalf("Pixel %d has invalid depth %f", i, depth)
		}
	}
}

func TestRenderer_ConsecutiveFramesMatch(t *testing.T) {
	const width, height = 80, 50
	r := newTestRenderer(width, height)
	defer r.Shutdown()

	grid := rendererTestGrid()
	first := make([]uint32, width*height)
	second := make([]uint32, width*height)

	r.Render(testRenderFrame(grid), first)
	r.Render(testRenderFrame(grid), second)

	// Identical frame inputs produce identical output; occlusion and depth
	// reset correctly between frames.
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Pixel %d differs between identical frames", i)
		}
	}
}

func TestRenderer_ProfilerData(t *testing.T) {
	r := newTestRenderer(160, 100)
	defer r.Shutdown()

	profiler := r.ProfilerData()
	if profiler.Width != 160 || profiler.Height != 100 {
		t.Errorf("Unexpected profiler dimensions %dx%d", profiler.Width, profiler.Height)
	}
	if profiler.ThreadCount != 1 {
		t.Errorf("Expected one thread in mode 0, got %d", profiler.ThreadCount)
	}

	// A visible lit entity shows up in the counts after a frame.
	r.AddFlatTexture(0, tex.AnimStateIdle, 0, []uint8{20}, false, false, 1, 1,
		rendererTestPalette())
	frame := testRenderFrame(rendererTestGrid())
	frame.Entities = &entity.Snapshot{Entities: []entity.Entity{{
		Type:        entity.Static,
		Position:    mgl64.Vec2{4.0, 4.0},
		StateType:   tex.AnimStateIdle,
		Width:       0.5,
		Height:      1.0,
		LightRadius: 3.0,
	}}}

	colorBuffer := make([]uint32, 160*100)
	r.Render(frame, colorBuffer)

	profiler = r.ProfilerData()
	if profiler.VisFlatCount != 1 {
		t.Errorf("Expected one visible flat, got %d", profiler.VisFlatCount)
	}
	if profiler.VisLightCount != 1 {
		t.Errorf("Expected one visible light, got %d", profiler.VisLightCount)
	}
}

func TestRenderer_Resize(t *testing.T) {
	r := newTestRenderer(160, 100)
	defer r.Shutdown()

	r.Resize(80, 60)
	if r.width != 80 || r.height != 60 {
		t.Fatalf("Resize did not update dimensions")
	}

	colorBuffer := make([]uint32, 80*60)
	r.Render(testRenderFrame(rendererTestGrid()), colorBuffer)

	if len(r.depthBuffer) != 80*60 {
		t.Errorf("Depth buffer not reallocated on resize")
	}
}

func TestRenderer_VoxelTextureTableGrows(t *testing.T) {
	r := newTestRenderer(80, 50)
	defer r.Shutdown()

	texels := make([]uint8, 2*2)
	r.SetVoxelTexture(100, texels, rendererTestPalette())
	if len(r.voxelTextures) < 101 {
		t.Errorf("Expected texture table grown to at least 101, got %d", len(r.voxelTextures))
	}
	if r.voxelTextures[100] == nil {
		t.Errorf("Expected texture registered at slot 100")
	}
}

func TestRenderer_LightRegistration(t *testing.T) {
	r := newTestRenderer(80, 50)
	defer r.Shutdown()

	r.AddLight(1, mgl64.Vec3{4.0, 0.5, 4.0}, mgl64.Vec3{1.0, 1.0, 1.0}, 3.0)

	newPoint := mgl64.Vec3{5.0, 0.5, 5.0}
	r.UpdateLight(1, &newPoint, nil, nil)
	if r.lights[1].Position != newPoint {
		t.Errorf("Expected light position updated")
	}
	if r.lights[1].Radius != 3.0 {
		t.Errorf("Expected radius untouched by nil update")
	}

	r.RemoveLight(1)
	if len(r.lights) != 0 {
		t.Errorf("Expected light removed")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic updating an unregistered light")
		}
	}()
	r.UpdateLight(1, nil, nil, nil)
}

func TestRenderer_AddDuplicateLightPanics(t *testing.T) {
	r := newTestRenderer(80, 50)
	defer r.Shutdown()

	r.AddLight(1, mgl64.Vec3{}, mgl64.Vec3{}, 1.0)
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for duplicate light ID")
		}
	}()
	r.AddLight(1, mgl64.Vec3{}, mgl64.Vec3{}, 1.0)
}

func TestRenderer_ClearTextures(t *testing.T) {
	r := newTestRenderer(80, 50)
	defer r.Shutdown()

	r.AddFlatTexture(3, tex.AnimStateIdle, 0, []uint8{20}, false, false, 1, 1,
		rendererTestPalette())
	r.ClearTextures()

	if r.voxelTextures[0] != nil {
		t.Errorf("Expected voxel textures cleared")
	}
	if len(r.flatTextureGroups) != 0 {
		t.Errorf("Expected flat texture groups cleared")
	}
}

func TestRenderer_RenderWithoutGridPanics(t *testing.T) {
	r := newTestRenderer(80, 50)
	defer r.Shutdown()

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic rendering without a grid")
		}
	}()
	r.Render(RenderFrame{}, make([]uint32, 80*50))
}
