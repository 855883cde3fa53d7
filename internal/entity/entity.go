// Package entity defines the per-frame snapshot of active entities the
// renderer consumes. Simulation (movement, AI, animation advancement) is an
// external collaborator; the renderer only reads resolved positions and
// animation-frame geometry.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelcast/internal/tex"
)

// Type distinguishes entities that always face the camera from ones whose
// visible angle depends on their own direction.
type Type int

const (
	Static Type = iota
	Dynamic
)

// Entity is one snapshot entry. Position and Direction are in the XZ plane.
type Entity struct {
	Type     Type
	Position mgl64.Vec2
	Direction mgl64.Vec2

	// Flat (billboard) appearance: resolved by the animation system before
	// the snapshot is taken.
	FlatIndex  int
	StateType  tex.AnimStateType
	StateCount int
	TextureID  int
	Width      float64
	Height     float64
	YOffset    float64

	// Point-light emission. LightRadius 0 means the entity casts no light.
	// Street lights only light up while night lights are active.
	LightRadius   float64
	IsStreetLight bool
}

// Snapshot is the read-only entity list for one frame.
type Snapshot struct {
	Entities []Entity
}
