package voxel

// Type determines which payload of a Definition is active.
type Type int

const (
	TypeNone Type = iota
	TypeWall
	TypeFloor
	TypeCeiling
	TypeRaised
	TypeDiagonal
	TypeTransparentWall
	TypeEdge
	TypeChasm
	TypeDoor
)

// ChasmType affects the depth and texture animation of a chasm voxel.
type ChasmType int

const (
	ChasmDry ChasmType = iota
	ChasmWet
	ChasmLava
)

// WetLavaChasmDepth is the depth of wet and lava chasms in world units. Dry
// chasms use the full voxel height instead.
const WetLavaChasmDepth = 100.0 / 128.0

// DoorType determines how a door voxel animates between closed and open.
type DoorType int

const (
	DoorSwinging DoorType = iota
	DoorSliding
	DoorRaising
	DoorSplitting
)

// WallData is a regular wall with height equal to ceiling height.
type WallData struct {
	SideID    int
	FloorID   int
	CeilingID int
}

// FloorData only has its top face rendered.
type FloorData struct {
	ID int
}

// CeilingData only has its bottom face rendered.
type CeilingData struct {
	ID int
}

// RaisedData is a platform at some Y offset in the voxel. VTop and VBottom
// are the texture coordinates of the side faces.
type RaisedData struct {
	SideID    int
	FloorID   int
	CeilingID int
	YOffset   float64
	YSize     float64
	VTop      float64
	VBottom   float64
}

// DiagonalData is a wall across one of the voxel's two diagonals.
// Type1 runs from (nearX, nearZ) to (farX, farZ).
type DiagonalData struct {
	ID    int
	Type1 bool
}

// TransparentWallData only shows front-facing textures (arches, hedges).
// Nothing is drawn when the camera is in the same voxel.
type TransparentWallData struct {
	ID       int
	Collider bool
}

// EdgeData is rendered on one edge of a voxel with height equal to ceiling
// height. The facing determines which side the edge is on.
type EdgeData struct {
	ID      int
	YOffset float64
	Flipped bool
	Facing  Facing
}

// ChasmData has zero to four wall faces depending on adjacent floors.
type ChasmData struct {
	ID   int
	Type ChasmType

	// Face visibility in facing order: +X, -X, +Z, -Z.
	VisibleFaces [4]bool
}

// FaceIsVisible returns whether the chasm has a wall on the given face.
func (c *ChasmData) FaceIsVisible(facing Facing) bool {
	return c.VisibleFaces[facing]
}

// DoorData is an animated door; the open percent lives with the game state,
// not the definition.
type DoorData struct {
	ID   int
	Type DoorType
}

// Definition is the tagged variant a voxel ID points to. Only the payload
// matching Type is meaningful.
type Definition struct {
	Type Type

	Wall            WallData
	Floor           FloorData
	Ceiling         CeilingData
	Raised          RaisedData
	Diagonal        DiagonalData
	TransparentWall TransparentWallData
	Edge            EdgeData
	Chasm           ChasmData
	Door            DoorData
}

func MakeNone() Definition {
	return Definition{Type: TypeNone}
}

func MakeWall(sideID, floorID, ceilingID int) Definition {
	return Definition{
		Type: TypeWall,
		Wall: WallData{SideID: sideID, FloorID: floorID, CeilingID: ceilingID},
	}
}

func MakeFloor(id int) Definition {
	return Definition{Type: TypeFloor, Floor: FloorData{ID: id}}
}

func MakeCeiling(id int) Definition {
	return Definition{Type: TypeCeiling, Ceiling: CeilingData{ID: id}}
}

func MakeRaised(sideID, floorID, ceilingID int, yOffset, ySize, vTop, vBottom float64) Definition {
	return Definition{
		Type: TypeRaised,
		Raised: RaisedData{
			SideID:    sideID,
			FloorID:   floorID,
			CeilingID: ceilingID,
			YOffset:   yOffset,
			YSize:     ySize,
			VTop:      vTop,
			VBottom:   vBottom,
		},
	}
}

func MakeDiagonal(id int, type1 bool) Definition {
	return Definition{Type: TypeDiagonal, Diagonal: DiagonalData{ID: id, Type1: type1}}
}

func MakeTransparentWall(id int, collider bool) Definition {
	return Definition{
		Type:            TypeTransparentWall,
		TransparentWall: TransparentWallData{ID: id, Collider: collider},
	}
}

func MakeEdge(id int, yOffset float64, flipped bool, facing Facing) Definition {
	return Definition{
		Type: TypeEdge,
		Edge: EdgeData{ID: id, YOffset: yOffset, Flipped: flipped, Facing: facing},
	}
}

func MakeChasm(id int, chasmType ChasmType, visibleFaces [4]bool) Definition {
	return Definition{
		Type:  TypeChasm,
		Chasm: ChasmData{ID: id, Type: chasmType, VisibleFaces: visibleFaces},
	}
}

func MakeDoor(id int, doorType DoorType) Definition {
	return Definition{Type: TypeDoor, Door: DoorData{ID: id, Type: doorType}}
}
