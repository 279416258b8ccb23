package pipeline

import (
	"testing"
	"time"

	"github.com/roadeye/lanewatch/pkg/lane"
)

func TestStats_Record(t *testing.T) {
	var s Stats

	fit := lane.Fit{Slope: 2, Support: 8}
	s.Record(lane.Detection{
		Segments: make([]lane.Segment, 5),
		Left:     &fit,
		Right:    &fit,
	}, 10*time.Millisecond)

	if s.Frames != 1 {
		t.Errorf("Frames: got %d, want 1", s.Frames)
	}
	if s.Segments != 5 {
		t.Errorf("Segments: got %d, want 5", s.Segments)
	}
	if s.Skipped != 0 {
		t.Errorf("Skipped: got %d, want 0", s.Skipped)
	}
	if s.LeftFrames != 1 || s.RightFrames != 1 {
		t.Errorf("lane frames: got %d/%d, want 1/1", s.LeftFrames, s.RightFrames)
	}
}

func TestStats_RecordSkipped(t *testing.T) {
	var s Stats

	s.Record(lane.Detection{}, time.Millisecond)
	s.Record(lane.Detection{}, time.Millisecond)

	if s.Frames != 2 {
		t.Errorf("Frames: got %d, want 2", s.Frames)
	}
	if s.Skipped != 2 {
		t.Errorf("Skipped: got %d, want 2", s.Skipped)
	}
}

func TestStats_FPS(t *testing.T) {
	var s Stats

	// 10ms per frame = 100 fps instantaneous
	s.Record(lane.Detection{}, 10*time.Millisecond)
	if s.FPS < 99 || s.FPS > 101 {
		t.Errorf("first FPS sample: got %v, want ~100", s.FPS)
	}

	// A slower frame should pull the estimate down, but only gently
	s.Record(lane.Detection{}, 100*time.Millisecond)
	if s.FPS >= 100 || s.FPS < 80 {
		t.Errorf("smoothed FPS: got %v, want between 80 and 100", s.FPS)
	}
}

func TestStats_ZeroElapsed(t *testing.T) {
	var s Stats

	s.Record(lane.Detection{}, 0)
	if s.FPS != 0 {
		t.Errorf("FPS with zero elapsed: got %v, want 0", s.FPS)
	}
}
