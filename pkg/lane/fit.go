package lane

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fitting errors.
var (
	ErrTooFewPoints = errors.New("lane fit needs at least two points")
	ErrDegenerate   = errors.New("lane fit is degenerate")
)

const (
	// irlsIterations bounds the reweighting loop.
	irlsIterations = 20
	// irlsEpsilon floors residuals so weights stay finite.
	irlsEpsilon = 1e-6
	// irlsTolerance stops iterating once the parameters settle.
	irlsTolerance = 1e-4
)

// Fit is a fitted lane line y = Slope*x + Intercept in pixel coordinates.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	// Support is the number of candidate points behind the fit.
	Support int `json:"support"`
	// Residual is the mean absolute residual of the fit in pixels.
	Residual float64 `json:"residual"`
}

// XAt returns the x coordinate where the fitted line crosses the given y.
func (f Fit) XAt(y float64) float64 {
	return (y - f.Intercept) / f.Slope
}

// Confidence maps support and residual quality into [0, 1].
// More supporting points and tighter residuals score higher.
func (f Fit) Confidence() float64 {
	if f.Support == 0 {
		return 0
	}
	// Saturates around 20 supporting points.
	support := math.Min(float64(f.Support)/20.0, 1.0)
	// A mean residual of 10px or more is considered poor.
	tightness := 1.0 - math.Min(f.Residual/10.0, 1.0)
	return support*0.5 + tightness*0.5
}

// FitLine fits y = m*x + c to the points by least absolute deviations,
// computed as iteratively reweighted least squares seeded with an ordinary
// least squares fit. LAD keeps stray segments from shadows or road texture
// from dragging the lane line around, which a plain OLS fit is prone to.
func FitLine(pts []Point) (Fit, error) {
	if len(pts) < 2 {
		return Fit{}, ErrTooFewPoints
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	if spread(xs) < irlsEpsilon {
		// All points share one x: vertical line, no y = m*x + c form.
		return Fit{}, ErrDegenerate
	}

	c, m := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return Fit{}, ErrDegenerate
	}

	weights := make([]float64, len(pts))
	for iter := 0; iter < irlsIterations; iter++ {
		for i := range xs {
			r := math.Abs(ys[i] - (m*xs[i] + c))
			weights[i] = 1 / math.Max(r, irlsEpsilon)
		}

		nc, nm := stat.LinearRegression(xs, ys, weights, false)
		if math.IsNaN(nm) || math.IsInf(nm, 0) {
			break
		}

		converged := math.Abs(nm-m) < irlsTolerance && math.Abs(nc-c) < irlsTolerance
		m, c = nm, nc
		if converged {
			break
		}
	}

	total := 0.0
	for i := range xs {
		total += math.Abs(ys[i] - (m*xs[i] + c))
	}

	return Fit{
		Slope:     m,
		Intercept: c,
		Support:   len(pts),
		Residual:  total / float64(len(xs)),
	}, nil
}

func spread(vals []float64) float64 {
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
