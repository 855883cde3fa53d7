package render

import (
	"voxelcast/internal/tex"
	"voxelcast/internal/voxel"
)

// Texture filter modes for voxel texture sampling.
const (
	filterModeNearest = 0
	filterModeLinear  = 1
)

// castContext bundles the per-frame state shared by every ray cast: the
// level geometry, the frame's shading environment, animation state, texture
// storage, and the visible light sets. All of it is read-only while worker
// threads are drawing.
type castContext struct {
	grid          *voxel.Grid
	shading       *ShadingInfo
	ceilingHeight float64

	openDoors    []DoorState
	fadingVoxels []FadeState

	voxelTextures []*tex.VoxelTexture
	flatTextures  map[int]*tex.FlatTextureGroup
	chasmTextures map[voxel.ChasmType]*tex.ChasmTextureGroup

	visLights     []VisibleLight
	visLightLists []VisibleLightList

	cappedLight bool
	filterMode  int

	frame FrameView
}

// voxelTexture looks up a registered voxel texture by ID.
func (ctx *castContext) voxelTexture(id int) *tex.VoxelTexture {
	if id < 0 || id >= len(ctx.voxelTextures) {
		panic("voxel texture ID out of range")
	}

	texture := ctx.voxelTextures[id]
	if texture == nil {
		panic("voxel texture ID not registered")
	}
	return texture
}

// flatTexture looks up one animation frame for a visible flat.
func (ctx *castContext) flatTexture(flat *VisibleFlat) *tex.FlatTexture {
	group, ok := ctx.flatTextures[flat.FlatIndex]
	if !ok {
		panic("no flat textures registered for flat index")
	}

	textureList := group.TextureList(flat.StateType, flat.AnglePercent)
	if flat.TextureID < 0 || flat.TextureID >= len(textureList) {
		panic("flat texture ID out of range")
	}
	return textureList[flat.TextureID]
}

// chasmTexture picks the current animation frame for a chasm type.
func (ctx *castContext) chasmTexture(chasmType voxel.ChasmType) *tex.ChasmTexture {
	group, ok := ctx.chasmTextures[chasmType]
	if !ok {
		panic("no chasm textures registered for chasm type")
	}
	return group.FrameAt(ctx.shading.chasmAnimPercent)
}

// lightListAt is the visible light list for one voxel column.
func (ctx *castContext) lightListAt(voxelX, voxelZ int) *VisibleLightList {
	index := voxelX + (voxelZ * ctx.grid.Width())
	return &ctx.visLightLists[index]
}
