package lane

import "sync"

// Smoother applies exponential smoothing to fitted lane parameters across
// frames so the overlay does not jitter. With alpha = 1 every update replaces
// the previous fit outright.
type Smoother struct {
	alpha float64

	mu    sync.Mutex
	lanes map[Side]Fit
}

// NewSmoother creates a smoother with the given smoothing factor in (0, 1].
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	return &Smoother{
		alpha: alpha,
		lanes: make(map[Side]Fit),
	}
}

// Update blends the new fit into the running estimate for the side and
// returns the smoothed fit. Support and residual always reflect the latest
// observation; only the line parameters are smoothed.
func (s *Smoother) Update(side Side, f Fit) Fit {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.lanes[side]
	if !ok {
		s.lanes[side] = f
		return f
	}

	blended := Fit{
		Slope:     s.alpha*f.Slope + (1-s.alpha)*prev.Slope,
		Intercept: s.alpha*f.Intercept + (1-s.alpha)*prev.Intercept,
		Support:   f.Support,
		Residual:  f.Residual,
	}
	s.lanes[side] = blended
	return blended
}

// Current returns the running estimate for the side, if any.
func (s *Smoother) Current(side Side) (Fit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.lanes[side]
	return f, ok
}

// Reset clears the running estimates, e.g. when switching videos.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lanes = make(map[Side]Fit)
}
