package render

import "voxelcast/internal/mathutil"

// OcclusionData tracks the still-visible vertical window [yMin, yMax) of one
// screen column. It only ever shrinks within a frame.
type OcclusionData struct {
	yMin int
	yMax int
}

// NewOcclusionData starts with the whole column visible.
func NewOcclusionData(yMin, yMax int) OcclusionData {
	return OcclusionData{yMin: yMin, yMax: yMax}
}

// ClipRange shrinks a candidate draw span to the visible window, collapsing
// it to empty when fully occluded.
func (o *OcclusionData) ClipRange(yStart, yEnd *int) {
	occluded := (*yEnd <= o.yMin) || (*yStart >= o.yMax)

	if occluded {
		// The drawing range is completely hidden.
		*yStart = *yEnd
	} else {
		*yStart = mathutil.IntMax(*yStart, o.yMin)
		*yEnd = mathutil.IntMin(*yEnd, o.yMax)
	}
}

// Update grows the occluded region after an opaque draw. Unlike ClipRange,
// the span only needs to be adjacent to a boundary, not overlapping.
func (o *OcclusionData) Update(yStart, yEnd int) {
	canIncreaseMin := yStart <= o.yMin
	canDecreaseMax := yEnd >= o.yMax

	if canIncreaseMin && canDecreaseMax {
		// The span touches the top and bottom occlusion values; the entire
		// column is occluded.
		o.yMin = o.yMax
	} else if canIncreaseMin {
		o.yMin = mathutil.IntMax(yEnd, o.yMin)
	} else if canDecreaseMax {
		o.yMax = mathutil.IntMin(yStart, o.yMax)
	}
}

// Empty returns whether the visible window has collapsed.
func (o *OcclusionData) Empty() bool {
	return o.yMin >= o.yMax
}
