package tex

import "testing"

func makeTestFlatTexture(p *Palette) *FlatTexture {
	return DecodeFlatTexture([]uint8{200}, 1, 1, false, false, p)
}

func TestFlatTextureGroup_AngleSelection(t *testing.T) {
	palette := testPalette()
	group := &FlatTextureGroup{}

	front := makeTestFlatTexture(palette)
	back := makeTestFlatTexture(palette)
	group.AddTexture(AnimStateWalk, 0, front)
	group.AddTexture(AnimStateWalk, 1, back)

	// The first half of the angle range picks the first group, the second
	// half the second.
	if got := group.TextureList(AnimStateWalk, 0.10); got[0] != front {
		t.Errorf("Expected front angle group at low angle percent")
	}
	if got := group.TextureList(AnimStateWalk, 0.90); got[0] != back {
		t.Errorf("Expected back angle group at high angle percent")
	}
	// Exactly 1.0 clamps into the last group instead of indexing past it.
	if got := group.TextureList(AnimStateWalk, 1.0); got[0] != back {
		t.Errorf("Expected angle percent 1.0 to clamp to last group")
	}
}

func TestFlatTextureGroup_MissingState(t *testing.T) {
	palette := testPalette()
	group := &FlatTextureGroup{}
	group.AddTexture(AnimStateIdle, 0, makeTestFlatTexture(palette))

	if got := group.TextureList(AnimStateDeath, 0.0); got != nil {
		t.Errorf("Expected nil list for unregistered state")
	}
}

func TestFlatTextureGroup_FrameOrder(t *testing.T) {
	palette := testPalette()
	group := &FlatTextureGroup{}

	frame0 := makeTestFlatTexture(palette)
	frame1 := makeTestFlatTexture(palette)
	group.AddTexture(AnimStateIdle, 0, frame0)
	group.AddTexture(AnimStateIdle, 0, frame1)

	list := group.TextureList(AnimStateIdle, 0.0)
	if len(list) != 2 || list[0] != frame0 || list[1] != frame1 {
		t.Errorf("Expected frames in registration order")
	}
}

func TestChasmTextureGroup_FrameAt(t *testing.T) {
	palette := testPalette()
	group := &ChasmTextureGroup{}

	frames := make([]*ChasmTexture, 4)
	for i := range frames {
		frames[i] = DecodeChasmTexture([]uint8{200}, 1, 1, palette)
		group.AddTexture(frames[i])
	}

	if got := group.FrameAt(0.0); got != frames[0] {
		t.Errorf("Expected first frame at percent 0")
	}
	if got := group.FrameAt(0.30); got != frames[1] {
		t.Errorf("Expected second frame at percent 0.30")
	}
	// Exactly 1.0 must stay on the last frame.
	if got := group.FrameAt(1.0); got != frames[3] {
		t.Errorf("Expected last frame at percent 1.0")
	}
}

func TestChasmTextureGroup_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for empty chasm group")
		}
	}()
	group := &ChasmTextureGroup{}
	group.FrameAt(0.5)
}
