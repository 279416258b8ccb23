package lane

import (
	"math"
	"testing"
)

func TestSmoother_FirstUpdatePassesThrough(t *testing.T) {
	s := NewSmoother(0.3)

	f := Fit{Slope: 2, Intercept: 100, Support: 8}
	got := s.Update(LeftSide, f)

	if got != f {
		t.Errorf("first update: got %+v, want %+v", got, f)
	}
}

func TestSmoother_Blends(t *testing.T) {
	s := NewSmoother(0.5)

	s.Update(RightSide, Fit{Slope: 2, Intercept: 100})
	got := s.Update(RightSide, Fit{Slope: 4, Intercept: 200, Support: 12, Residual: 1.5})

	if !floatEquals(got.Slope, 3) {
		t.Errorf("blended slope: got %v, want 3", got.Slope)
	}
	if !floatEquals(got.Intercept, 150) {
		t.Errorf("blended intercept: got %v, want 150", got.Intercept)
	}
	// Support and residual reflect the latest observation, not a blend
	if got.Support != 12 || !floatEquals(got.Residual, 1.5) {
		t.Errorf("support/residual not passed through: %+v", got)
	}
}

func TestSmoother_SidesAreIndependent(t *testing.T) {
	s := NewSmoother(0.5)

	s.Update(LeftSide, Fit{Slope: -2, Intercept: 600})
	s.Update(RightSide, Fit{Slope: 2, Intercept: -100})

	left, ok := s.Current(LeftSide)
	if !ok || !floatEquals(left.Slope, -2) {
		t.Errorf("left estimate: got %+v ok=%v", left, ok)
	}
	right, ok := s.Current(RightSide)
	if !ok || !floatEquals(right.Slope, 2) {
		t.Errorf("right estimate: got %+v ok=%v", right, ok)
	}
}

func TestSmoother_AlphaOneReplaces(t *testing.T) {
	s := NewSmoother(1)

	s.Update(LeftSide, Fit{Slope: -5, Intercept: 900})
	got := s.Update(LeftSide, Fit{Slope: -2, Intercept: 600})

	if !floatEquals(got.Slope, -2) || !floatEquals(got.Intercept, 600) {
		t.Errorf("alpha=1 should replace: got %+v", got)
	}
}

func TestSmoother_InvalidAlphaDisablesSmoothing(t *testing.T) {
	for _, alpha := range []float64{0, -1, 1.5} {
		s := NewSmoother(alpha)
		s.Update(LeftSide, Fit{Slope: 1})
		got := s.Update(LeftSide, Fit{Slope: 3})
		if !floatEquals(got.Slope, 3) {
			t.Errorf("alpha=%v: got slope %v, want 3", alpha, got.Slope)
		}
	}
}

func TestSmoother_ConvergesToSteadyInput(t *testing.T) {
	s := NewSmoother(0.3)

	s.Update(RightSide, Fit{Slope: 0, Intercept: 0})
	var got Fit
	for i := 0; i < 50; i++ {
		got = s.Update(RightSide, Fit{Slope: 2, Intercept: 100})
	}

	if math.Abs(got.Slope-2) > 1e-6 || math.Abs(got.Intercept-100) > 1e-4 {
		t.Errorf("did not converge: %+v", got)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(0.3)
	s.Update(LeftSide, Fit{Slope: -2})

	s.Reset()

	if _, ok := s.Current(LeftSide); ok {
		t.Error("estimate survived Reset")
	}
}
