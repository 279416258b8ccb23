// Package pipeline drives the synchronous per-frame lane detection loop:
// source, detector, smoothing, overlay, then fan-out to the attached sinks.
// One frame is in flight at a time; the capture handle is owned exclusively
// for the duration of a run.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/roadeye/lanewatch/internal/log"
	"github.com/roadeye/lanewatch/pkg/lane"
	"github.com/roadeye/lanewatch/pkg/video"
)

// windowTitle is the display window name.
const windowTitle = "lanewatch"

// defaultFrameDelay paces the display loop, matching typical dashcam rates.
const defaultFrameDelay = 25 * time.Millisecond

// Config wires the pipeline together.
type Config struct {
	Source   video.Source
	Detector *lane.Detector

	// Smoother is optional; nil disables temporal smoothing.
	Smoother *lane.Smoother

	// Display opens a preview window. Pressing q or ESC stops the run.
	Display bool

	// FrameDelay is the display pacing delay. Zero means the default;
	// ignored when Display is false.
	FrameDelay time.Duration

	MatSinks  []MatSink
	JPEGSinks []JPEGSink
}

// Pipeline runs the per-frame loop and keeps run statistics.
type Pipeline struct {
	cfg Config

	mu    sync.RWMutex
	stats Stats
}

// New validates the wiring and creates a pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Source == nil {
		return nil, errors.New("pipeline needs a video source")
	}
	if cfg.Detector == nil {
		return nil, errors.New("pipeline needs a detector")
	}
	if cfg.FrameDelay <= 0 {
		cfg.FrameDelay = defaultFrameDelay
	}
	return &Pipeline{cfg: cfg}, nil
}

// Stats returns a copy of the current run statistics.
func (p *Pipeline) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// Run processes frames until the source is exhausted, the context is
// cancelled, or the user quits via the display window. The source itself is
// not closed here; the caller owns it.
func (p *Pipeline) Run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	var window *gocv.Window
	if p.cfg.Display {
		window = gocv.NewWindow(windowTitle)
		defer window.Close()
	}

	frameIdx := 0
	for {
		select {
		case <-ctx.Done():
			log.Info("pipeline interrupted", "frames", frameIdx)
			return nil
		default:
		}

		if !p.cfg.Source.Read(&frame) {
			log.Info("video exhausted", "frames", frameIdx)
			return nil
		}
		frameIdx++

		start := time.Now()
		det, err := p.cfg.Detector.Detect(frame)
		if err != nil {
			log.Warn("detection failed", "frame", frameIdx, "error", err)
			p.record(lane.Detection{}, time.Since(start))
			continue
		}

		if det.Empty() {
			// Nothing to fit this frame; present it bare.
			log.Debug("no segments found", "frame", frameIdx)
		} else {
			p.smooth(&det)
			lane.DrawOverlay(&frame, det, p.cfg.Detector.Config().Horizon)
		}

		p.record(det, time.Since(start))
		p.fanOut(frame, det, frameIdx)

		if window != nil {
			window.IMShow(frame)
			key := window.WaitKey(int(p.cfg.FrameDelay.Milliseconds()))
			if key == 'q' || key == 27 { // ESC
				log.Info("stopped by user", "frames", frameIdx)
				return nil
			}
		}
	}
}

// smooth blends the frame's fits into the running per-side estimates.
func (p *Pipeline) smooth(det *lane.Detection) {
	if p.cfg.Smoother == nil {
		return
	}
	if det.Left != nil {
		f := p.cfg.Smoother.Update(lane.LeftSide, *det.Left)
		det.Left = &f
	}
	if det.Right != nil {
		f := p.cfg.Smoother.Update(lane.RightSide, *det.Right)
		det.Right = &f
	}
}

// fanOut hands the annotated frame to every sink. Sink errors are logged,
// not fatal: a failing writer must not stop the detection loop.
func (p *Pipeline) fanOut(frame gocv.Mat, det lane.Detection, frameIdx int) {
	for _, sink := range p.cfg.MatSinks {
		if err := sink.WriteFrame(frame, det, frameIdx); err != nil {
			log.Warn("frame sink failed", "frame", frameIdx, "error", err)
		}
	}

	if len(p.cfg.JPEGSinks) == 0 {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		log.Warn("jpeg encode failed", "frame", frameIdx, "error", err)
		return
	}
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	buf.Close()

	for _, sink := range p.cfg.JPEGSinks {
		if err := sink.WriteJPEG(data, det, frameIdx); err != nil {
			log.Warn("jpeg sink failed", "frame", frameIdx, "error", err)
		}
	}
}

func (p *Pipeline) record(det lane.Detection, elapsed time.Duration) {
	p.mu.Lock()
	p.stats.Record(det, elapsed)
	p.mu.Unlock()
}
