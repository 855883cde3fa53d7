package render

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// getRenderThreadsFromMode maps a quality mode 0-5 to a worker count as a
// fraction of available hardware parallelism. Panics on an unknown mode.
func getRenderThreadsFromMode(mode int) int {
	threadCount := runtime.NumCPU()

	var count int
	switch mode {
	case 0:
		// Very low.
		count = 1
	case 1:
		// Low.
		count = threadCount / 4
	case 2:
		// Medium.
		count = threadCount / 2
	case 3:
		// High.
		count = (3 * threadCount) / 4
	case 4:
		// Very high.
		count = threadCount - 1
	case 5:
		// Max.
		count = threadCount
	default:
		panic(fmt.Sprintf("invalid render threads mode %d", mode))
	}

	if count < 1 {
		count = 1
	}
	return count
}

// barrier is a reusable stage barrier: every worker that arrives blocks
// until the last one does, then all are released together.
type barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	total      int
	arrived    int
	generation int
}

func newBarrier(total int) *barrier {
	b := &barrier{total: total}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) wait() {
	b.mu.Lock()
	generation := b.generation

	b.arrived++
	if b.arrived == b.total {
		b.arrived = 0
		b.generation++
		b.mu.Unlock()
		b.cond.Broadcast()
		return
	}

	for generation == b.generation {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// framePlan is the immutable per-frame input handed to every worker. The
// readiness channels are closed by the coordinator once the corresponding
// shared data is safe to read.
type framePlan struct {
	camera *Camera
	ctx    *castContext

	gradientProjYTop    float64
	gradientProjYBottom float64
	skyGradientRowCache []mgl64.Vec3

	drawDistant bool
	visObjs     *visDistantObjects

	occlusion []OcclusionData

	// Set by workers during the sky gradient stage, read after its barrier.
	starsVisible atomic.Bool

	// Closed when the coordinator finishes distant object projection.
	visTestingDone chan struct{}
	// Closed when the coordinator finishes light visibility updates.
	lightsDone chan struct{}
	// Closed when the coordinator finishes sorting visible flats; the flats
	// slice must not be read before then.
	sortingDone chan struct{}
	flats       []VisibleFlat

	skyBarrier     *barrier
	distantBarrier *barrier
	voxelsBarrier  *barrier

	done *sync.WaitGroup
}

// renderWorker owns a fixed slice of screen columns for distant sky and
// flat drawing, a fixed row range for the sky gradient, and an interleaved
// stride of columns for voxels.
type renderWorker struct {
	index        int
	startX, endX int
	startY, endY int
}

func (w *renderWorker) run(plans <-chan *framePlan, totalThreads int) {
	for plan := range plans {
		// Stage 1: sky gradient rows.
		if drawSkyGradient(w.startY, w.endY, plan.gradientProjYTop,
			plan.gradientProjYBottom, plan.skyGradientRowCache, plan.ctx.shading,
			&plan.ctx.frame) {
			plan.starsVisible.Store(true)
		}
		plan.skyBarrier.wait()

		// Stage 2: distant sky objects, once projection has finished.
		<-plan.visTestingDone
		if plan.drawDistant {
			drawDistantSky(w.startX, w.endX, plan.visObjs, plan.skyGradientRowCache,
				plan.starsVisible.Load(), plan.ctx.shading, &plan.ctx.frame)
		}
		plan.distantBarrier.wait()

		// Stage 3: voxel columns, once the light lists are rebuilt. Columns
		// interleave across workers for load balancing.
		<-plan.lightsDone
		drawWorkerVoxels(w.index, totalThreads, plan.camera, plan.ctx, plan.occlusion)
		plan.voxelsBarrier.wait()

		// Stage 4: flats, once sorted.
		<-plan.sortingDone
		drawFlats(w.startX, w.endX, plan.camera, plan.flats, plan.ctx)

		plan.done.Done()
	}
}

// drawWorkerVoxels ray-casts one worker's interleaved share of screen
// columns.
func drawWorkerVoxels(startX, stride int, camera *Camera, ctx *castContext,
	occlusion []OcclusionData) {

	frame := &ctx.frame
	for x := startX; x < frame.width; x += stride {
		xPercent := (float64(x) + 0.50) / frame.widthReal

		// "Right" component of the ray direction, based on the screen X.
		rightCompX := camera.RightAspectedX * ((2.0 * xPercent) - 1.0)
		rightCompZ := camera.RightAspectedZ * ((2.0 * xPercent) - 1.0)

		// The ray direction is normalized or the insides of voxels look
		// wrong.
		dirX := camera.ForwardZoomedX + rightCompX
		dirZ := camera.ForwardZoomedZ + rightCompZ
		dirLen := math.Hypot(dirX, dirZ)
		ray := Ray{DirX: dirX / dirLen, DirZ: dirZ / dirLen}

		rayCast2D(x, camera, ray, ctx, &occlusion[x])
	}
}

// renderPool is the persistent set of render workers. Workers are created
// once per resolution or thread-count change and wait on the plan channel
// between frames; closing the channel shuts them down.
type renderPool struct {
	plans        chan *framePlan
	totalThreads int
}

func newRenderPool(width, height, threadCount int) *renderPool {
	pool := &renderPool{
		plans:        make(chan *framePlan),
		totalThreads: threadCount,
	}

	// Block width and height are the approximate number of columns and rows
	// per worker. Rounding keeps the boundaries exact at any resolution.
	blockWidth := float64(width) / float64(threadCount)
	blockHeight := float64(height) / float64(threadCount)

	for i := 0; i < threadCount; i++ {
		worker := renderWorker{
			index:  i,
			startX: int(math.Round(float64(i) * blockWidth)),
			endX:   int(math.Round(float64(i+1) * blockWidth)),
			startY: int(math.Round(float64(i) * blockHeight)),
			endY:   int(math.Round(float64(i+1) * blockHeight)),
		}
		go worker.run(pool.plans, threadCount)
	}

	return pool
}

// newFramePlan bundles the per-frame state with fresh barriers and
// readiness channels.
func (p *renderPool) newFramePlan(camera *Camera, ctx *castContext,
	gradientProjYTop, gradientProjYBottom float64, skyGradientRowCache []mgl64.Vec3,
	drawDistant bool, visObjs *visDistantObjects,
	occlusion []OcclusionData) *framePlan {

	plan := &framePlan{
		camera:              camera,
		ctx:                 ctx,
		gradientProjYTop:    gradientProjYTop,
		gradientProjYBottom: gradientProjYBottom,
		skyGradientRowCache: skyGradientRowCache,
		drawDistant:         drawDistant,
		visObjs:             visObjs,
		occlusion:           occlusion,
		visTestingDone:      make(chan struct{}),
		lightsDone:          make(chan struct{}),
		sortingDone:         make(chan struct{}),
		skyBarrier:          newBarrier(p.totalThreads),
		distantBarrier:      newBarrier(p.totalThreads),
		voxelsBarrier:       newBarrier(p.totalThreads),
		done:                &sync.WaitGroup{},
	}
	plan.done.Add(p.totalThreads)
	return plan
}

// start hands the plan to every worker.
func (p *renderPool) start(plan *framePlan) {
	for i := 0; i < p.totalThreads; i++ {
		p.plans <- plan
	}
}

// shutdown stops all workers. The pool cannot be reused afterwards.
func (p *renderPool) shutdown() {
	close(p.plans)
}
