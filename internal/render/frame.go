package render

// FrameView is a lightweight view into the output color/depth buffers for
// one frame. Workers write disjoint columns and rows, so no synchronization
// is needed on the buffers themselves.
type FrameView struct {
	colorBuffer []uint32
	depthBuffer []float64
	width       int
	height      int
	widthReal   float64
	heightReal  float64
}

func newFrameView(colorBuffer []uint32, depthBuffer []float64, width, height int) FrameView {
	if len(colorBuffer) < width*height {
		panic("color buffer smaller than frame dimensions")
	}
	if len(depthBuffer) < width*height {
		panic("depth buffer smaller than frame dimensions")
	}

	return FrameView{
		colorBuffer: colorBuffer,
		depthBuffer: depthBuffer,
		width:       width,
		height:      height,
		widthReal:   float64(width),
		heightReal:  float64(height),
	}
}
