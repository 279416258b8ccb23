package lane

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// Detection is the result of running the detector on one frame.
type Detection struct {
	// Segments are the raw Hough segments that survived the slope filter
	// plus everything that fed the fits below.
	Segments []Segment
	// Left and Right are the fitted lane lines. Either can be nil when no
	// candidate points were found on that side this frame.
	Left  *Fit
	Right *Fit
}

// Empty reports whether the frame produced no usable segments at all.
func (d Detection) Empty() bool {
	return len(d.Segments) == 0
}

// Detector runs the color/edge preprocessing and Hough stage on video
// frames. Safe for use from multiple goroutines; inference is serialized.
type Detector struct {
	mu  sync.Mutex // Protects cfg and the gocv call sequence
	cfg Config
}

// NewDetector creates a detector after validating the config.
func NewDetector(cfg Config) (*Detector, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid lane config: %v", errs)
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns the current detection parameters.
func (d *Detector) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// SetConfig swaps the detection parameters, e.g. from the dashboard API.
func (d *Detector) SetConfig(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid lane config: %v", errs)
	}
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()
	return nil
}

// Detect runs the full per-frame stage: preprocess, Hough, slope split and
// robust fit per side. The frame is not modified.
func (d *Detector) Detect(frame gocv.Mat) (Detection, error) {
	segs, err := d.DetectSegments(frame)
	if err != nil {
		return Detection{}, err
	}

	cfg := d.Config()
	det := Detection{Segments: segs}

	leftPts, rightPts := SplitBySide(segs, cfg.MinSlope, frame.Cols())

	if fit, err := FitLine(leftPts); err == nil {
		det.Left = &fit
	}
	if fit, err := FitLine(rightPts); err == nil {
		det.Right = &fit
	}

	return det, nil
}

// DetectSegments runs preprocessing and the probabilistic Hough transform
// and returns the raw candidate segments.
func (d *Detector) DetectSegments(frame gocv.Mat) ([]Segment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	edges := gocv.NewMat()
	defer edges.Close()

	if err := d.preprocess(frame, &edges); err != nil {
		return nil, err
	}

	lines := gocv.NewMat()
	defer lines.Close()

	gocv.HoughLinesPWithParams(
		edges,
		&lines,
		float32(d.cfg.Rho),
		float32(d.cfg.Theta),
		d.cfg.MinVotes,
		float32(d.cfg.MinLineLength),
		float32(d.cfg.MaxLineGap),
	)

	segs := make([]Segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segs = append(segs, Segment{
			X1: int(v[0]), Y1: int(v[1]),
			X2: int(v[2]), Y2: int(v[3]),
		})
	}

	return segs, nil
}

// preprocess reduces a BGR frame to a binary edge map of likely lane
// markings: keep only yellow and white pixels, edge-detect, then zero out
// everything outside the road-facing region of interest.
func (d *Detector) preprocess(frame gocv.Mat, edges *gocv.Mat) error {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	yellow := gocv.NewMat()
	defer yellow.Close()
	gocv.InRangeWithScalar(hsv, scalar(d.cfg.YellowLow), scalar(d.cfg.YellowHigh), &yellow)

	white := gocv.NewMat()
	defer white.Close()
	gocv.InRangeWithScalar(hsv, scalar(d.cfg.WhiteLow), scalar(d.cfg.WhiteHigh), &white)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.BitwiseOr(yellow, white, &mask)

	masked := gocv.NewMat()
	defer masked.Close()
	gocv.BitwiseAndWithMask(frame, frame, &masked, mask)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(masked, &gray, gocv.ColorBGRToGray)

	gocv.Canny(gray, edges, float32(d.cfg.CannyLow), float32(d.cfg.CannyHigh))

	d.carveROI(edges)
	return nil
}

// carveROI fills everything outside the road-facing trapezoid with zeros.
// The kept region runs from the bottom corners up to a narrow notch just
// above the frame center, where the lanes converge at the horizon.
func (d *Detector) carveROI(edges *gocv.Mat) {
	h := edges.Rows()
	w := edges.Cols()
	notch := d.cfg.RoiNotch

	// The complement of the region of interest as one polygon.
	outside := [][]image.Point{{
		{X: 0, Y: 0},
		{X: 0, Y: h},
		{X: w/2 - notch, Y: h/2 + notch},
		{X: w/2 + notch, Y: h/2 + notch},
		{X: w, Y: h},
		{X: w, Y: 0},
	}}

	pv := gocv.NewPointsVectorFromPoints(outside)
	defer pv.Close()
	gocv.FillPoly(edges, pv, color.RGBA{})
}

func scalar(c HSV) gocv.Scalar {
	return gocv.NewScalar(c.H, c.S, c.V, 0)
}
