// Package demo builds a small self-contained scene (palette, textures,
// level grid, distant sky, entities) and drives the renderer with it under
// ebiten. Everything is generated procedurally so the demo runs without
// asset files.
package demo

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/entity"
	"voxelcast/internal/render"
	"voxelcast/internal/sky"
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

// Voxel texture IDs used by the demo level.
const (
	texStoneWall = iota
	texGrass
	texDirt
	texWoodDoor
	texBrick
	texFence
	texHedge
	texRailing
	texLanternWall
)

// Flat indices used by the demo entities.
const (
	flatTree = iota
	flatLantern
	flatCreature
	flatPuddle
)

func argb(a, r, g, b uint8) uint32 {
	return (uint32(a) << 24) | (uint32(r) << 16) | (uint32(g) << 8) | uint32(b)
}

// BuildPalette fills a 256-entry palette with the color ramps the procedural
// textures index into. Index 0 stays fully transparent.
func BuildPalette() *tex.Palette {
	var p tex.Palette

	// Ramps of 16 shades each, darkest first.
	ramp := func(base int, r, g, b float64) {
		for i := 0; i < 16; i++ {
			shade := 0.25 + (0.75 * (float64(i) / 15.0))
			p[base+i] = argb(255, uint8(r*shade), uint8(g*shade), uint8(b*shade))
		}
	}
	ramp(16, 140, 140, 150)  // stone
	ramp(48, 70, 130, 60)    // grass and hedge
	ramp(64, 130, 95, 60)    // wood and dirt
	ramp(80, 160, 80, 60)    // brick
	ramp(128, 60, 90, 170)   // water
	ramp(144, 230, 120, 30)  // lava and flame
	ramp(176, 120, 110, 130) // creature hide

	// Ghost light levels keep their indices; any opaque color works since
	// the decoder only reads the index.
	for i := tex.PaletteIndexLightLevelLowest; i <= tex.PaletteIndexLightLevelHighest; i++ {
		p[i] = argb(255, 0, 0, 0)
	}

	p[tex.PaletteIndexNightLight] = argb(255, 80, 70, 40)
	p[tex.PaletteIndexPuddleEvenRow] = argb(255, 60, 90, 170)
	p[tex.PaletteIndexPuddleOddRow] = argb(255, 70, 100, 180)
	p[tex.PaletteIndexRedDst1] = argb(255, 140, 10, 10)
	p[tex.PaletteIndexRedDst2] = argb(255, 160, 20, 20)

	return &p
}

// checker fills a dim*dim image with a two-shade checkerboard from a ramp.
func checker(dim, rampBase, cell int) []uint8 {
	texels := make([]uint8, dim*dim)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			shade := 10
			if ((x/cell)+(y/cell))%2 == 0 {
				shade = 13
			}
			texels[x+(y*dim)] = uint8(rampBase + shade)
		}
	}
	return texels
}

// brick fills a dim*dim image with offset brick courses.
func brick(dim, rampBase int) []uint8 {
	texels := make([]uint8, dim*dim)
	courseHeight := dim / 4
	brickWidth := dim / 2
	for y := 0; y < dim; y++ {
		course := y / courseHeight
		offset := (course % 2) * (brickWidth / 2)
		for x := 0; x < dim; x++ {
			shade := 12
			if y%courseHeight == 0 || (x+offset)%brickWidth == 0 {
				shade = 5
			}
			texels[x+(y*dim)] = uint8(rampBase + shade)
		}
	}
	return texels
}

// slats fills a dim*dim image with vertical slats separated by transparent
// gaps.
func slats(dim, rampBase int) []uint8 {
	texels := make([]uint8, dim*dim)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if (x/4)%2 == 1 {
				continue // transparent gap
			}
			shade := 10 + (x % 3)
			texels[x+(y*dim)] = uint8(rampBase + shade)
		}
	}
	return texels
}

// lanternWall is a stone wall with a band of night-light texels that the
// renderer swaps to amber after dark.
func lanternWall(dim int) []uint8 {
	texels := checker(dim, 16, dim/4)
	for y := dim / 3; y < dim/2; y++ {
		for x := dim / 3; x < 2*dim/3; x++ {
			texels[x+(y*dim)] = tex.PaletteIndexNightLight
		}
	}
	return texels
}

// RegisterTextures decodes the demo's procedural voxel, flat, and chasm
// textures into the renderer.
func RegisterTextures(r *render.Renderer, palette *tex.Palette) {
	const dim = 32

	r.SetVoxelTexture(texStoneWall, checker(dim, 16, dim/4), palette)
	r.SetVoxelTexture(texGrass, checker(dim, 48, dim/8), palette)
	r.SetVoxelTexture(texDirt, checker(dim, 64, dim/8), palette)
	r.SetVoxelTexture(texWoodDoor, brick(dim, 64), palette)
	r.SetVoxelTexture(texBrick, brick(dim, 80), palette)
	r.SetVoxelTexture(texFence, slats(dim, 64), palette)
	r.SetVoxelTexture(texHedge, checker(dim, 48, dim/16), palette)
	r.SetVoxelTexture(texRailing, slats(dim, 16), palette)
	r.SetVoxelTexture(texLanternWall, lanternWall(dim), palette)

	// Chasm animation frames shift their ramp shade so the surface moves.
	for frame := 0; frame < 4; frame++ {
		water := make([]uint8, dim*dim)
		lava := make([]uint8, dim*dim)
		for y := 0; y < dim; y++ {
			for x := 0; x < dim; x++ {
				wave := (x + y + (frame * dim / 4)) / 8 % 4
				water[x+(y*dim)] = uint8(128 + 8 + wave)
				lava[x+(y*dim)] = uint8(144 + 8 + wave)
			}
		}
		r.AddChasmTexture(voxel.ChasmWet, water, dim, dim, palette)
		r.AddChasmTexture(voxel.ChasmLava, lava, dim, dim, palette)
	}

	registerFlatTextures(r, palette)
}

// blob draws a rough filled ellipse into an image, for trees and creatures.
func blob(texels []uint8, width, height int, cx, cy, rx, ry float64, index uint8) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if (dx*dx)+(dy*dy) <= 1.0 {
				texels[x+(y*width)] = index
			}
		}
	}
}

func registerFlatTextures(r *render.Renderer, palette *tex.Palette) {
	// Tree: trunk plus canopy, one idle frame.
	const treeW, treeH = 24, 48
	tree := make([]uint8, treeW*treeH)
	for y := treeH / 2; y < treeH; y++ {
		for x := treeW/2 - 2; x < treeW/2+2; x++ {
			tree[x+(y*treeW)] = 64 + 8
		}
	}
	blob(tree, treeW, treeH, float64(treeW)/2, float64(treeH)/3, 10, 14, 48+11)
	r.AddFlatTexture(flatTree, tex.AnimStateIdle, 0, tree, false, false, treeW, treeH, palette)

	// Lantern post: pole with a glowing head.
	const postW, postH = 8, 40
	post := make([]uint8, postW*postH)
	for y := 6; y < postH; y++ {
		post[postW/2+(y*postW)] = 16 + 6
	}
	blob(post, postW, postH, float64(postW)/2, 4, 3, 4, 144+12)
	r.AddFlatTexture(flatLantern, tex.AnimStateIdle, 0, post, false, false, postW, postH, palette)

	// Creature: two walk frames, front and back angle groups.
	const creatureW, creatureH = 20, 24
	for angleID := 0; angleID < 2; angleID++ {
		for frame := 0; frame < 2; frame++ {
			c := make([]uint8, creatureW*creatureH)
			bounce := float64(frame * 2)
			blob(c, creatureW, creatureH, float64(creatureW)/2, 10+bounce, 8, 8, uint8(176+10+angleID))
			blob(c, creatureW, creatureH, float64(creatureW)/2, 4+bounce, 3, 3, uint8(176+13))
			r.AddFlatTexture(flatCreature, tex.AnimStateWalk, angleID, c, angleID == 1, false, creatureW, creatureH, palette)
		}
	}

	// Puddle: alternating reflection rows, drawn flat on the ground.
	const puddleW, puddleH = 32, 6
	puddle := make([]uint8, puddleW*puddleH)
	for y := 0; y < puddleH; y++ {
		index := uint8(tex.PaletteIndexPuddleEvenRow)
		if y%2 == 1 {
			index = tex.PaletteIndexPuddleOddRow
		}
		for x := 2; x < puddleW-2; x++ {
			puddle[x+(y*puddleW)] = index
		}
	}
	r.AddFlatTexture(flatPuddle, tex.AnimStateIdle, 0, puddle, false, true, puddleW, puddleH, palette)
}

// BuildGrid creates the demo level: a walled yard with a raised platform, a
// hedge diagonal, a fence, railings, a water pool, a lava chasm, and doors
// of every type.
func BuildGrid() *voxel.Grid {
	const size = 24
	grid := voxel.NewGrid(size, 3, size)

	floor := grid.AddDefinition(voxel.MakeFloor(texGrass))
	dirtFloor := grid.AddDefinition(voxel.MakeFloor(texDirt))
	wall := grid.AddDefinition(voxel.MakeWall(texStoneWall, texDirt, texStoneWall))
	lantern := grid.AddDefinition(voxel.MakeWall(texLanternWall, texDirt, texStoneWall))
	platform := grid.AddDefinition(voxel.MakeRaised(texBrick, texBrick, texBrick,
		0.0, 0.40, 1.0, 0.60))
	ledge := grid.AddDefinition(voxel.MakeRaised(texBrick, texBrick, texBrick,
		0.60, 0.40, 0.40, 0.0))
	hedge := grid.AddDefinition(voxel.MakeDiagonal(texHedge, true))
	hedgeBack := grid.AddDefinition(voxel.MakeDiagonal(texHedge, false))
	fence := grid.AddDefinition(voxel.MakeTransparentWall(texFence, true))
	railing := grid.AddDefinition(voxel.MakeEdge(texRailing, 0.0, false, voxel.FacingPositiveX))
	pool := grid.AddDefinition(voxel.MakeChasm(texDirt, voxel.ChasmWet,
		[4]bool{true, true, true, true}))
	lavaPit := grid.AddDefinition(voxel.MakeChasm(texDirt, voxel.ChasmLava,
		[4]bool{true, true, true, true}))

	swinging := grid.AddDefinition(voxel.MakeDoor(texWoodDoor, voxel.DoorSwinging))
	sliding := grid.AddDefinition(voxel.MakeDoor(texWoodDoor, voxel.DoorSliding))
	raising := grid.AddDefinition(voxel.MakeDoor(texWoodDoor, voxel.DoorRaising))
	splitting := grid.AddDefinition(voxel.MakeDoor(texWoodDoor, voxel.DoorSplitting))

	// Ground floor everywhere, dirt along the center path.
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			id := floor
			if x >= 10 && x <= 13 {
				id = dirtFloor
			}
			grid.SetVoxel(x, 0, z, id)
		}
	}

	// Perimeter walls with lantern blocks at intervals.
	for i := 0; i < size; i++ {
		for _, at := range [][2]int{{i, 0}, {i, size - 1}, {0, i}, {size - 1, i}} {
			id := wall
			if i%6 == 3 {
				id = lantern
			}
			grid.SetVoxel(at[0], 1, at[1], id)
		}
	}

	// Inner keep with one door of each type in its walls.
	for x := 4; x <= 8; x++ {
		grid.SetVoxel(x, 1, 4, wall)
		grid.SetVoxel(x, 1, 8, wall)
	}
	for z := 5; z <= 7; z++ {
		grid.SetVoxel(4, 1, z, wall)
		grid.SetVoxel(8, 1, z, wall)
	}
	grid.SetVoxel(6, 1, 4, swinging)
	grid.SetVoxel(6, 1, 8, sliding)
	grid.SetVoxel(4, 1, 6, raising)
	grid.SetVoxel(8, 1, 6, splitting)
	grid.SetVoxel(6, 1, 6, platform)
	grid.SetVoxel(6, 2, 6, wall)

	// Raised walk with a ledge above it and railings along its side.
	for z := 14; z <= 18; z++ {
		grid.SetVoxel(16, 1, z, platform)
		grid.SetVoxel(17, 1, z, railing)
	}
	grid.SetVoxel(16, 2, 16, ledge)

	// Hedge maze corner.
	grid.SetVoxel(10, 1, 16, hedge)
	grid.SetVoxel(11, 1, 17, hedgeBack)
	grid.SetVoxel(12, 1, 18, hedge)

	// Fence line.
	for x := 14; x <= 18; x++ {
		grid.SetVoxel(x, 1, 10, fence)
	}

	// Water pool and lava pit sunk into the ground floor.
	for z := 3; z <= 5; z++ {
		for x := 14; x <= 17; x++ {
			grid.SetVoxel(x, 0, z, pool)
		}
	}
	for z := 20; z <= 21; z++ {
		for x := 4; x <= 6; x++ {
			grid.SetVoxel(x, 0, z, lavaPit)
		}
	}

	return grid
}

// silhouette makes a horizon image whose bottom rows rise and fall like a
// mountain ridge.
func silhouette(width, height, rampBase int, jag float64) sky.Image {
	texels := make([]uint8, width*height)
	for x := 0; x < width; x++ {
		ridge := int((0.40 + 0.35*math.Sin(float64(x)*jag)) * float64(height))
		for y := height - ridge; y < height; y++ {
			texels[x+(y*width)] = uint8(rampBase + 4 + (y % 3))
		}
	}
	return sky.Image{Texels: texels, Width: width, Height: height}
}

// disc makes a filled circle image, for moons and the sun.
func disc(dim, rampBase int) sky.Image {
	texels := make([]uint8, dim*dim)
	half := float64(dim) / 2
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			dx := float64(x) - half
			dy := float64(y) - half
			if (dx*dx)+(dy*dy) <= half*half {
				texels[x+(y*dim)] = uint8(rampBase + 12)
			}
		}
	}
	return sky.Image{Texels: texels, Width: dim, Height: dim}
}

// BuildSky creates the distant scene: mountain ridges, an erupting volcano,
// clouds, both moons, the sun, and a star field.
func BuildSky() *sky.DistantSky {
	scene := &sky.DistantSky{}

	for i := 0; i < 4; i++ {
		scene.Lands = append(scene.Lands, sky.LandObject{
			AngleRadians: float64(i) * (math.Pi / 2.0),
			Image:        silhouette(96, 24, 16, 0.11+0.02*float64(i)),
		})
	}

	volcano := sky.AnimatedLandObject{AngleRadians: math.Pi / 4.0}
	for frame := 0; frame < 3; frame++ {
		img := silhouette(48, 32, 16, 0.16)
		// Glow at the peak that brightens per frame.
		for x := 20; x < 28; x++ {
			for y := 8; y < 12; y++ {
				img.Texels[x+(y*img.Width)] = uint8(144 + 10 + frame)
			}
		}
		volcano.Frames = append(volcano.Frames, img)
	}
	scene.AnimLands = append(scene.AnimLands, volcano)

	for i := 0; i < 5; i++ {
		cloud := sky.Image{Texels: make([]uint8, 32*8), Width: 32, Height: 8}
		blob(cloud.Texels, 32, 8, 16, 4, 14, 3, 16+15)
		scene.Airs = append(scene.Airs, sky.AirObject{
			AngleRadians: float64(i) * 1.3,
			Height:       0.20 + 0.15*float64(i%3),
			Image:        cloud,
		})
	}

	scene.Moons = append(scene.Moons,
		sky.MoonObject{Type: sky.MoonFirst, PhasePercent: 0.25, Image: disc(16, 16)},
		sky.MoonObject{Type: sky.MoonSecond, PhasePercent: 0.60, Image: disc(12, 16)},
	)

	sun := disc(20, 144)
	scene.Sun = &sun

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 80; i++ {
		// Uniform over the upper hemisphere.
		theta := rng.Float64() * 2.0 * math.Pi
		phi := math.Acos(rng.Float64())
		direction := mgl64.Vec3{
			math.Sin(phi) * math.Cos(theta),
			math.Cos(phi),
			math.Sin(phi) * math.Sin(theta),
		}
		shade := uint8(150 + rng.Intn(105))
		scene.Stars = append(scene.Stars, sky.StarObject{
			Direction: direction,
			Small:     true,
			Color:     argb(255, shade, shade, shade),
		})
	}
	scene.Stars = append(scene.Stars, sky.StarObject{
		Direction: mgl64.Vec3{0.30, 0.80, 0.52}.Normalize(),
		Image:     disc(6, 16),
	})

	return scene
}

// BuildEntities places the demo's flats: trees around the yard, street
// lanterns, the puddle, and one walking creature. The creature's snapshot
// entry is updated every frame by the game loop.
func BuildEntities() []entity.Entity {
	entities := []entity.Entity{}

	treeSpots := [][2]float64{{3.5, 12.5}, {20.5, 6.5}, {19.5, 20.5}, {9.5, 21.5}}
	for _, spot := range treeSpots {
		entities = append(entities, entity.Entity{
			Type:      entity.Static,
			Position:  mgl64.Vec2{spot[0], spot[1]},
			FlatIndex: flatTree,
			StateType: tex.AnimStateIdle,
			Width:     1.0,
			Height:    2.0,
		})
	}

	lanternSpots := [][2]float64{{10.5, 10.5}, {13.5, 14.5}}
	for _, spot := range lanternSpots {
		entities = append(entities, entity.Entity{
			Type:          entity.Static,
			Position:      mgl64.Vec2{spot[0], spot[1]},
			FlatIndex:     flatLantern,
			StateType:     tex.AnimStateIdle,
			Width:         0.30,
			Height:        1.50,
			LightRadius:   4.0,
			IsStreetLight: true,
		})
	}

	entities = append(entities, entity.Entity{
		Type:      entity.Static,
		Position:  mgl64.Vec2{15.5, 12.5},
		FlatIndex: flatPuddle,
		StateType: tex.AnimStateIdle,
		Width:     1.0,
		Height:    0.10,
	})

	entities = append(entities, entity.Entity{
		Type:       entity.Dynamic,
		Position:   mgl64.Vec2{12.0, 12.0},
		Direction:  mgl64.Vec2{1.0, 0.0},
		FlatIndex:  flatCreature,
		StateType:  tex.AnimStateWalk,
		StateCount: 2,
		Width:      0.80,
		Height:     1.0,
	})

	return entities
}
