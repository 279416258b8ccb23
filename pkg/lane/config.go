package lane

import "math"

// HSV is a color bound in OpenCV's HSV space (H 0-180, S/V 0-255).
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Config holds all lane detection parameters.
// These can be modified via the dashboard API at runtime.
type Config struct {
	// === Hough transform ===
	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64 `json:"rho"`
	// Theta is the angle resolution of the accumulator in radians.
	Theta float64 `json:"theta"`
	// MinVotes is the accumulator threshold: only lines with at least
	// this many votes are returned.
	MinVotes int `json:"min_votes"`
	// MinLineLength is the minimum segment length in pixels.
	MinLineLength float64 `json:"min_line_length"`
	// MaxLineGap is the maximum gap between points on the same line.
	MaxLineGap float64 `json:"max_line_gap"`

	// === Edge detection ===
	CannyLow  float64 `json:"canny_low"`
	CannyHigh float64 `json:"canny_high"`

	// === Color thresholds ===
	// Lane markings are yellow or white; everything else is masked out
	// before edge detection.
	YellowLow  HSV `json:"yellow_low"`
	YellowHigh HSV `json:"yellow_high"`
	WhiteLow   HSV `json:"white_low"`
	WhiteHigh  HSV `json:"white_high"`

	// === Segment classification ===
	// MinSlope rejects near-horizontal segments. Lane markings seen from
	// a dashcam always have a significant vertical component.
	MinSlope float64 `json:"min_slope"`

	// === Region of interest ===
	// RoiNotch is the half-width in pixels of the horizon notch: the kept
	// region is the trapezoid from the bottom corners of the frame up to
	// a 2*RoiNotch wide band just above the frame center.
	RoiNotch int `json:"roi_notch"`

	// === Temporal smoothing ===
	// SmoothAlpha is the exponential smoothing factor for fitted lane
	// parameters across frames. 1.0 disables smoothing.
	SmoothAlpha float64 `json:"smooth_alpha"`

	// Horizon is the fraction of the frame height the overlay is drawn
	// up to, measured from the top.
	Horizon float64 `json:"horizon"`
}

// DefaultConfig returns the tuned defaults for daytime highway footage.
func DefaultConfig() Config {
	return Config{
		Rho:           1,
		Theta:         math.Pi / 90,
		MinVotes:      20,
		MinLineLength: 20,
		MaxLineGap:    5,

		CannyLow:  50,
		CannyHigh: 150,

		YellowLow:  HSV{H: 20, S: 100, V: 100},
		YellowHigh: HSV{H: 30, S: 255, V: 255},
		WhiteLow:   HSV{H: 0, S: 0, V: 230},
		WhiteHigh:  HSV{H: 255, S: 80, V: 255},

		MinSlope: 0.2,
		RoiNotch: 25,

		SmoothAlpha: 0.3,
		Horizon:     0.6,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Rho <= 0 {
		errors = append(errors, "rho must be positive")
	}
	if c.Theta <= 0 || c.Theta > math.Pi {
		errors = append(errors, "theta must be in (0, pi]")
	}
	if c.MinVotes < 1 {
		errors = append(errors, "min_votes must be at least 1")
	}
	if c.MinLineLength <= 0 {
		errors = append(errors, "min_line_length must be positive")
	}
	if c.MaxLineGap < 0 {
		errors = append(errors, "max_line_gap must not be negative")
	}

	if c.CannyLow <= 0 || c.CannyHigh <= 0 {
		errors = append(errors, "canny thresholds must be positive")
	}
	if c.CannyLow >= c.CannyHigh {
		errors = append(errors, "canny_low must be below canny_high")
	}

	if c.MinSlope < 0 || c.MinSlope >= 1 {
		errors = append(errors, "min_slope must be in [0, 1)")
	}
	if c.RoiNotch < 0 {
		errors = append(errors, "roi_notch must not be negative")
	}

	if c.SmoothAlpha <= 0 || c.SmoothAlpha > 1 {
		errors = append(errors, "smooth_alpha must be in (0, 1]")
	}
	if c.Horizon <= 0 || c.Horizon >= 1 {
		errors = append(errors, "horizon must be in (0, 1)")
	}

	return errors
}
