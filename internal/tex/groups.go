package tex

import (
	"fmt"

	"voxelcast/internal/mathutil"
)

// AnimStateType distinguishes the animation states an entity can present.
// Flat textures are grouped per state so the renderer can pick the list
// matching the entity's current behavior.
type AnimStateType int

const (
	AnimStateIdle AnimStateType = iota
	AnimStateLook
	AnimStateWalk
	AnimStateAttack
	AnimStateDeath
)

type angleEntry struct {
	angleID  int
	textures []*FlatTexture
}

type stateMapping struct {
	stateType AnimStateType
	angles    []angleEntry
}

// FlatTextureGroup holds all animation frames for one flat index, organized
// by animation state type and view angle.
type FlatTextureGroup struct {
	mappings []stateMapping
}

func (g *FlatTextureGroup) findMapping(stateType AnimStateType) *stateMapping {
	for i := range g.mappings {
		if g.mappings[i].stateType == stateType {
			return &g.mappings[i]
		}
	}
	return nil
}

func (m *stateMapping) findAngle(angleID int) *angleEntry {
	for i := range m.angles {
		if m.angles[i].angleID == angleID {
			return &m.angles[i]
		}
	}
	return nil
}

// anglePercentToIndex maps a 0-1 view-angle percent to an index into the
// state's angle group.
func anglePercentToIndex(angleCount int, anglePercent float64) int {
	if angleCount <= 0 {
		panic("angle group is empty")
	}
	if anglePercent < 0.0 || anglePercent > 1.0 {
		panic(fmt.Sprintf("angle percent %.2f out of range", anglePercent))
	}

	index := int(float64(angleCount) * anglePercent)
	return mathutil.ClampInt(index, 0, angleCount-1)
}

// AddTexture registers one animation frame under a state type and angle ID.
func (g *FlatTextureGroup) AddTexture(stateType AnimStateType, angleID int, texture *FlatTexture) {
	mapping := g.findMapping(stateType)
	if mapping == nil {
		g.mappings = append(g.mappings, stateMapping{stateType: stateType})
		mapping = &g.mappings[len(g.mappings)-1]
	}

	entry := mapping.findAngle(angleID)
	if entry == nil {
		mapping.angles = append(mapping.angles, angleEntry{angleID: angleID})
		entry = &mapping.angles[len(mapping.angles)-1]
	}

	entry.textures = append(entry.textures, texture)
}

// TextureList returns the frame list for the state type at the given view
// angle, or nil when the state has no registered frames.
func (g *FlatTextureGroup) TextureList(stateType AnimStateType, anglePercent float64) []*FlatTexture {
	mapping := g.findMapping(stateType)
	if mapping == nil || len(mapping.angles) == 0 {
		return nil
	}

	index := anglePercentToIndex(len(mapping.angles), anglePercent)
	return mapping.angles[index].textures
}

// ChasmTextureGroup is the animation frame list for one chasm type.
type ChasmTextureGroup struct {
	textures []*ChasmTexture
}

// AddTexture appends an animation frame.
func (g *ChasmTextureGroup) AddTexture(texture *ChasmTexture) {
	g.textures = append(g.textures, texture)
}

// FrameAt returns the frame for the given animation percent.
func (g *ChasmTextureGroup) FrameAt(animPercent float64) *ChasmTexture {
	if len(g.textures) == 0 {
		panic("chasm texture group is empty")
	}

	index := int(float64(len(g.textures)) * mathutil.Clamp(animPercent, 0.0, mathutil.JustBelowOne))
	return g.textures[mathutil.ClampInt(index, 0, len(g.textures)-1)]
}
