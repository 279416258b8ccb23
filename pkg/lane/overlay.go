package lane

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// overlayThickness is the line width of the lane overlay in pixels.
const overlayThickness = 5

// DrawOverlay draws the fitted lanes onto the frame in place. Each lane is
// drawn from the bottom edge of the frame up to the horizon line, colored by
// fit confidence (red = poor, green = solid).
func DrawOverlay(frame *gocv.Mat, det Detection, horizon float64) {
	h := float64(frame.Rows())
	horizonY := h * horizon

	for _, fit := range []*Fit{det.Left, det.Right} {
		if fit == nil {
			continue
		}
		drawLane(frame, *fit, h, horizonY)
	}
}

func drawLane(frame *gocv.Mat, fit Fit, bottomY, horizonY float64) {
	// A near-horizontal fit cannot be extended to the frame bottom in a
	// meaningful way; the classifier should have rejected it already.
	if math.Abs(fit.Slope) < 1e-3 {
		return
	}

	bottom := image.Pt(int(fit.XAt(bottomY)), int(bottomY))
	top := image.Pt(int(fit.XAt(horizonY)), int(horizonY))

	gocv.Line(frame, bottom, top, ConfidenceColor(fit.Confidence()), overlayThickness)
}

// ConfidenceColor maps a confidence in [0, 1] onto a red-to-green ramp.
func ConfidenceColor(conf float64) color.RGBA {
	conf = math.Max(0, math.Min(1, conf))

	// Hue 0 is red, 120 is green.
	c := colorful.Hsv(120*conf, 1, 1)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
