package demo

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"voxelcast/internal/collision"
	"voxelcast/internal/config"
	"voxelcast/internal/entity"
	"voxelcast/internal/mathutil"
	"voxelcast/internal/render"
	"voxelcast/internal/sky"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

// Animation cycle lengths in seconds.
const (
	chasmAnimSeconds   = 2.5
	doorCycleSeconds   = 6.0
	creatureLapSeconds = 20.0
	walkFrameSeconds   = 0.30
	volcanoFrameSeconds = 0.70
)

// nightStart and nightEnd bracket the part of the day with night lights on.
const (
	nightStart = 0.80
	nightEnd   = 0.20
)

// playerWidth is the camera's collision footprint in voxels.
const playerWidth = 0.4

// Game drives the renderer from ebiten's loop: it owns the camera pose, the
// clock, and the per-frame animation state, and converts the renderer's
// packed color output into screen pixels.
type Game struct {
	cfg      *config.Config
	renderer *render.Renderer
	grid     *voxel.Grid
	collide  *collision.System
	palette  *tex.Palette
	scene    *sky.DistantSky

	entities []entity.Entity
	snapshot entity.Snapshot

	eye   mgl64.Vec3
	yaw   float64
	pitch float64

	elapsed        float64
	daytimePercent float64

	nightLightsActive bool
	playerHasLight    bool
	parallaxSky       bool
	showHUD           bool

	volcanoFrame int

	colorBuffer []uint32
	pixels      []uint8
	frameImage  *ebiten.Image
}

// NewGame builds the demo scene and a renderer sized from the config.
func NewGame(cfg *config.Config) *Game {
	width := cfg.GetScreenWidth()
	height := cfg.GetScreenHeight()

	renderer := render.New(width, height, cfg.Renderer.RenderThreadsMode)
	renderer.SetFogDistance(cfg.Renderer.FogDistance)
	renderer.SetFilterMode(cfg.Renderer.FilterMode)
	renderer.SetLightCapEnabled(cfg.Renderer.LightCap)

	palette := BuildPalette()
	RegisterTextures(renderer, palette)

	scene := BuildSky()
	renderer.SetDistantSky(scene, palette)
	renderer.SetSkyPalette(daySkyPalette())

	g := &Game{
		cfg:            cfg,
		renderer:       renderer,
		grid:           BuildGrid(),
		palette:        palette,
		scene:          scene,
		entities:       BuildEntities(),
		eye:            mgl64.Vec3{12.0, 1.60 * cfg.World.CeilingHeight, 20.0},
		yaw:            math.Pi,
		daytimePercent: cfg.Time.StartDaytimePercent,
		parallaxSky:    cfg.Renderer.ParallaxSky,
		showHUD:        true,
		colorBuffer:    make([]uint32, width*height),
		pixels:         make([]uint8, width*height*4),
		frameImage:     ebiten.NewImage(width, height),
	}
	g.snapshot.Entities = make([]entity.Entity, len(g.entities))
	g.collide = collision.NewSystem(g.grid, func(voxelX, voxelZ int) float64 {
		for _, door := range g.openDoors() {
			if door.X == voxelX && door.Z == voxelZ {
				return door.PercentOpen
			}
		}
		return 0.0
	})
	return g
}

// daySkyPalette is the color cycle the sky gradient slides through over one
// day, midnight first.
func daySkyPalette() []uint32 {
	return []uint32{
		0x0A0A18, // midnight
		0x141430,
		0x3C2846, // pre-dawn
		0xB4643C, // sunrise
		0x88AADC, // morning
		0x64A0E6, // noon
		0x5A96DC, // afternoon
		0xC86432, // sunset
		0x28203C, // dusk
		0x10101E,
	}
}

func (g *Game) isNight() bool {
	return g.daytimePercent >= nightStart || g.daytimePercent < nightEnd
}

// ambient fades between the configured night and day levels around dawn and
// dusk.
func (g *Game) ambient() float64 {
	dayness := mathutil.Clamp(0.50+2.0*math.Sin((g.daytimePercent-0.25)*mathutil.TwoPi), 0.0, 1.0)
	return mathutil.Lerp(g.cfg.World.AmbientNight, g.cfg.World.AmbientDay, dayness)
}

func (g *Game) handleInput(dt float64) {
	turn := g.cfg.GetTurnSpeed() * dt
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.yaw += turn
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.yaw -= turn
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.pitch = mathutil.Clamp(g.pitch+turn, -1.2, 1.2)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.pitch = mathutil.Clamp(g.pitch-turn, -1.2, 1.2)
	}

	forward := mgl64.Vec2{math.Sin(g.yaw), math.Cos(g.yaw)}
	right := mgl64.Vec2{forward.Y(), -forward.X()}
	step := g.cfg.GetMoveSpeed() * dt

	move := mgl64.Vec2{}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move = move.Add(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move = move.Sub(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move = move.Add(right)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move = move.Sub(right)
	}
	if !mathutil.AlmostZero(move.Len()) {
		move = move.Normalize().Mul(step)
		story := int(g.eye.Y() / g.cfg.World.CeilingHeight)
		box := collision.NewBox(g.eye.X(), g.eye.Z(), playerWidth)
		box = g.collide.Move(box, story, move.X(), move.Y(), nil)
		g.eye = mgl64.Vec3{box.X, g.eye.Y(), box.Z}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.playerHasLight = !g.playerHasLight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.parallaxSky = !g.parallaxSky
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		// Jump the clock forward an hour.
		g.daytimePercent = math.Mod(g.daytimePercent+(1.0/24.0), 1.0)
	}
}

// updateSnapshot refreshes the per-frame entity list; only the creature
// moves, walking a circle around the yard center.
func (g *Game) updateSnapshot() {
	copy(g.snapshot.Entities, g.entities)

	lap := math.Mod(g.elapsed/creatureLapSeconds, 1.0) * mathutil.TwoPi
	center := mgl64.Vec2{12.0, 14.0}
	radius := 4.0

	creature := &g.snapshot.Entities[len(g.snapshot.Entities)-1]
	creature.Position = mgl64.Vec2{
		center.X() + radius*math.Cos(lap),
		center.Y() + radius*math.Sin(lap),
	}
	// Tangent of the circle, the walking direction.
	creature.Direction = mgl64.Vec2{-math.Sin(lap), math.Cos(lap)}
	creature.TextureID = int(g.elapsed/walkFrameSeconds) % 2
}

func (g *Game) updateVolcano() {
	frame := int(g.elapsed/volcanoFrameSeconds) % len(g.scene.AnimLands[0].Frames)
	if frame != g.volcanoFrame {
		g.volcanoFrame = frame
		g.renderer.SetAnimLandFrame(0, frame)
	}
}

// openDoors animates every door in the keep through an open-close cycle.
func (g *Game) openDoors() []render.DoorState {
	cycle := math.Mod(g.elapsed/doorCycleSeconds, 1.0)
	percentOpen := 0.50 - 0.50*math.Cos(cycle*mathutil.TwoPi)

	return []render.DoorState{
		{X: 6, Z: 4, PercentOpen: percentOpen},
		{X: 6, Z: 8, PercentOpen: percentOpen},
		{X: 4, Z: 6, PercentOpen: percentOpen},
		{X: 8, Z: 6, PercentOpen: percentOpen},
	}
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.elapsed += dt
	g.daytimePercent = math.Mod(g.daytimePercent+(dt/g.cfg.Time.DayLengthSeconds), 1.0)

	g.handleInput(dt)

	night := g.isNight()
	if night != g.nightLightsActive {
		g.nightLightsActive = night
		g.renderer.SetNightLightsActive(night)
	}

	g.updateSnapshot()
	g.updateVolcano()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	direction := mgl64.Vec3{
		math.Sin(g.yaw) * math.Cos(g.pitch),
		math.Sin(g.pitch),
		math.Cos(g.yaw) * math.Cos(g.pitch),
	}

	frame := render.RenderFrame{
		Eye:               g.eye,
		Direction:         direction,
		FovY:              g.cfg.GetCameraFOV(),
		Ambient:           g.ambient(),
		DaytimePercent:    g.daytimePercent,
		Latitude:          g.cfg.Time.Latitude,
		CeilingHeight:     g.cfg.World.CeilingHeight,
		ParallaxSky:       g.parallaxSky,
		NightLightsActive: g.nightLightsActive,
		IsExterior:        g.cfg.World.Exterior,
		PlayerHasLight:    g.playerHasLight,
		ChasmAnimPercent:  math.Mod(g.elapsed, chasmAnimSeconds) / chasmAnimSeconds,
		Grid:              g.grid,
		Entities:          &g.snapshot,
		OpenDoors:         g.openDoors(),
	}
	g.renderer.Render(frame, g.colorBuffer)

	for i, rgb := range g.colorBuffer {
		g.pixels[i*4] = uint8(rgb >> 16)
		g.pixels[i*4+1] = uint8(rgb >> 8)
		g.pixels[i*4+2] = uint8(rgb)
		g.pixels[i*4+3] = 0xFF
	}
	g.frameImage.WritePixels(g.pixels)
	screen.DrawImage(g.frameImage, nil)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	ebitext.Draw(screen, "voxelcast", face, 4, 4+face.Ascent, color.RGBA{255, 220, 120, 255})

	profiler := g.renderer.ProfilerData()
	hour := g.daytimePercent * 24.0
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"%dx%d threads:%d flats:%d lights:%d\ntime %02d:%02d fps %.0f\nWASD move, arrows look, L lamp, P parallax, T +1h, H hud",
		profiler.Width, profiler.Height, profiler.ThreadCount,
		profiler.VisFlatCount, profiler.VisLightCount,
		int(hour), int(math.Mod(hour, 1.0)*60.0), ebiten.ActualFPS()), 4, 20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}
