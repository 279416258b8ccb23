package pipeline

import (
	"time"

	"github.com/roadeye/lanewatch/pkg/lane"
)

// fpsSmoothing is the EMA factor for the frames-per-second estimate.
const fpsSmoothing = 0.1

// Stats tracks per-run pipeline counters. Exposed on the dashboard.
type Stats struct {
	// Frames is the number of frames read from the source.
	Frames int `json:"frames"`
	// Skipped counts frames with no usable Hough segments.
	Skipped int `json:"skipped"`
	// Segments is the total segment count across all frames.
	Segments int `json:"segments"`
	// LeftFrames / RightFrames count frames where that lane was fitted.
	LeftFrames  int `json:"left_frames"`
	RightFrames int `json:"right_frames"`
	// FPS is a smoothed processing rate (detection only, excludes display).
	FPS float64 `json:"fps"`
}

// Record folds one frame's outcome into the counters.
func (s *Stats) Record(det lane.Detection, elapsed time.Duration) {
	s.Frames++
	s.Segments += len(det.Segments)

	if det.Empty() {
		s.Skipped++
	}
	if det.Left != nil {
		s.LeftFrames++
	}
	if det.Right != nil {
		s.RightFrames++
	}

	if elapsed > 0 {
		inst := 1 / elapsed.Seconds()
		if s.FPS == 0 {
			s.FPS = inst
		} else {
			s.FPS = (1-fpsSmoothing)*s.FPS + fpsSmoothing*inst
		}
	}
}
