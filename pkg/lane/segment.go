// Package lane implements lane-marking detection for dashcam footage:
// color/edge preprocessing, a probabilistic Hough transform for candidate
// segments, and a robust line fit per lane side.
package lane

import "math"

// Point is a 2D point in pixel coordinates.
type Point struct {
	X, Y float64
}

// Segment is one line segment returned by the Hough transform, in pixel
// coordinates. Image origin is top-left, y grows downward.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Slope returns dy/dx for the segment. ok is false for vertical segments.
func (s Segment) Slope() (slope float64, ok bool) {
	if s.X1 == s.X2 {
		return 0, false
	}
	dy := float64(s.Y2) - float64(s.Y1)
	dx := float64(s.X2) - float64(s.X1)
	return dy / dx, true
}

// Length returns the segment length in pixels.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Hypot(dx, dy)
}

// MidX returns the x coordinate of the segment midpoint.
func (s Segment) MidX() float64 {
	return (float64(s.X1) + float64(s.X2)) / 2
}

// Points returns both segment endpoints.
func (s Segment) Points() [2]Point {
	return [2]Point{
		{X: float64(s.X1), Y: float64(s.Y1)},
		{X: float64(s.X2), Y: float64(s.Y2)},
	}
}

// Side identifies which lane marking a segment belongs to.
type Side int

const (
	// LeftSide markings slope up-left in image coordinates (negative slope).
	LeftSide Side = iota
	// RightSide markings slope up-right (positive slope).
	RightSide
)

// String returns the side name for logs and telemetry.
func (s Side) String() string {
	if s == LeftSide {
		return "left"
	}
	return "right"
}

// SplitBySide partitions segment endpoints into left and right lane candidate
// point sets. Near-horizontal segments (|slope| < minSlope) are discarded:
// lane markings seen from a dashcam are never horizontal. Positive slope
// means the right lane because y grows downward. Vertical segments carry no
// slope sign, so they are assigned by which half of the frame they sit in.
func SplitBySide(segs []Segment, minSlope float64, frameWidth int) (left, right []Point) {
	mid := float64(frameWidth) / 2

	for _, seg := range segs {
		slope, ok := seg.Slope()

		switch {
		case !ok:
			// Vertical segment: classify by position.
			if seg.MidX() < mid {
				left = append(left, seg.Points()[0], seg.Points()[1])
			} else {
				right = append(right, seg.Points()[0], seg.Points()[1])
			}
		case math.Abs(slope) < minSlope:
			continue
		case slope > 0:
			right = append(right, seg.Points()[0], seg.Points()[1])
		default:
			left = append(left, seg.Points()[0], seg.Points()[1])
		}
	}

	return left, right
}
