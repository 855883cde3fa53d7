package render

import "testing"

func TestOcclusionData_ClipRange(t *testing.T) {
	o := NewOcclusionData(0, 100)

	// Fully visible span is untouched.
	yStart, yEnd := 10, 20
	o.ClipRange(&yStart, &yEnd)
	if yStart != 10 || yEnd != 20 {
		t.Errorf("Expected untouched span, got [%d, %d)", yStart, yEnd)
	}

	// Span partially above the window clips to it.
	o = NewOcclusionData(15, 100)
	yStart, yEnd = 10, 20
	o.ClipRange(&yStart, &yEnd)
	if yStart != 15 || yEnd != 20 {
		t.Errorf("Expected span clipped to [15, 20), got [%d, %d)", yStart, yEnd)
	}

	// Fully occluded span collapses to empty.
	o = NewOcclusionData(30, 100)
	yStart, yEnd = 10, 20
	o.ClipRange(&yStart, &yEnd)
	if yStart != yEnd {
		t.Errorf("Expected collapsed span, got [%d, %d)", yStart, yEnd)
	}
}

func TestOcclusionData_Update(t *testing.T) {
	o := NewOcclusionData(0, 100)

	// A draw touching the top boundary raises the minimum.
	o.Update(0, 30)
	yStart, yEnd := 0, 100
	o.ClipRange(&yStart, &yEnd)
	if yStart != 30 {
		t.Errorf("Expected window to start at 30 after top draw, got %d", yStart)
	}

	// A draw touching the bottom boundary lowers the maximum.
	o.Update(80, 100)
	yStart, yEnd = 0, 100
	o.ClipRange(&yStart, &yEnd)
	if yEnd != 80 {
		t.Errorf("Expected window to end at 80 after bottom draw, got %d", yEnd)
	}

	// A floating span in the middle changes nothing.
	o.Update(50, 60)
	yStart, yEnd = 0, 100
	o.ClipRange(&yStart, &yEnd)
	if yStart != 30 || yEnd != 80 {
		t.Errorf("Expected middle draw to leave window [30, 80), got [%d, %d)", yStart, yEnd)
	}
}

func TestOcclusionData_OnlyShrinks(t *testing.T) {
	o := NewOcclusionData(0, 100)

	// Walls narrow the window step by step; it must never widen again.
	o.Update(0, 20)
	o.Update(90, 100)
	o.Update(0, 10) // weaker than the current boundary

	yStart, yEnd := 0, 100
	o.ClipRange(&yStart, &yEnd)
	if yStart != 20 || yEnd != 90 {
		t.Errorf("Expected window [20, 90), got [%d, %d)", yStart, yEnd)
	}
}

func TestOcclusionData_FullColumn(t *testing.T) {
	o := NewOcclusionData(0, 100)

	// A full-height draw occludes the whole column.
	o.Update(0, 100)
	if !o.Empty() {
		t.Errorf("Expected empty window after full-height draw")
	}

	yStart, yEnd := 40, 60
	o.ClipRange(&yStart, &yEnd)
	if yStart != yEnd {
		t.Errorf("Expected all spans to collapse once empty")
	}
}
