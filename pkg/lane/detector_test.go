package lane

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// syntheticRoad draws two thick white lane markings converging toward the
// frame center on a black 640x480 frame, roughly what a dashcam sees.
func syntheticRoad() gocv.Mat {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// Left marking, negative slope in image coordinates
	gocv.Line(&frame, image.Pt(180, 470), image.Pt(300, 280), white, 10)
	// Right marking, positive slope
	gocv.Line(&frame, image.Pt(460, 470), image.Pt(340, 280), white, 10)

	return frame
}

func TestDetector_Detect(t *testing.T) {
	det, err := NewDetector(DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	frame := syntheticRoad()
	defer frame.Close()

	result, err := det.Detect(frame)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if result.Empty() {
		t.Fatal("no segments detected on synthetic road")
	}

	if result.Left == nil {
		t.Fatal("left lane not fitted")
	}
	if result.Right == nil {
		t.Fatal("right lane not fitted")
	}

	if result.Left.Slope >= 0 {
		t.Errorf("left lane slope: got %v, want negative", result.Left.Slope)
	}
	if result.Right.Slope <= 0 {
		t.Errorf("right lane slope: got %v, want positive", result.Right.Slope)
	}
}

func TestDetector_EmptyRoad(t *testing.T) {
	det, err := NewDetector(DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	result, err := det.Detect(frame)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !result.Empty() {
		t.Errorf("black frame produced %d segments", len(result.Segments))
	}
}

func TestDetector_EmptyFrame(t *testing.T) {
	det, err := NewDetector(DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if _, err := det.Detect(frame); err == nil {
		t.Error("expected error on empty frame")
	}
}

func TestDetector_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinVotes = 0

	if _, err := NewDetector(cfg); err == nil {
		t.Error("NewDetector accepted invalid config")
	}
}

func TestDetector_SetConfig(t *testing.T) {
	det, err := NewDetector(DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	cfg := DefaultConfig()
	cfg.MinVotes = 40
	if err := det.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if got := det.Config().MinVotes; got != 40 {
		t.Errorf("MinVotes: got %d, want 40", got)
	}

	cfg.MinVotes = 0
	if err := det.SetConfig(cfg); err == nil {
		t.Error("SetConfig accepted invalid config")
	}
}
