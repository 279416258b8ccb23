package lane

import (
	"math"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("DefaultConfig should validate, got: %v", errs)
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rho != 1 {
		t.Errorf("Rho: got %v, want 1", cfg.Rho)
	}
	if !floatEquals(cfg.Theta, math.Pi/90) {
		t.Errorf("Theta: got %v, want pi/90", cfg.Theta)
	}
	if cfg.MinVotes != 20 {
		t.Errorf("MinVotes: got %d, want 20", cfg.MinVotes)
	}
	if cfg.CannyLow != 50 || cfg.CannyHigh != 150 {
		t.Errorf("Canny thresholds: got %v/%v, want 50/150", cfg.CannyLow, cfg.CannyHigh)
	}
	if cfg.MinSlope != 0.2 {
		t.Errorf("MinSlope: got %v, want 0.2", cfg.MinSlope)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rho", func(c *Config) { c.Rho = 0 }},
		{"negative theta", func(c *Config) { c.Theta = -0.1 }},
		{"theta above pi", func(c *Config) { c.Theta = 4 }},
		{"zero votes", func(c *Config) { c.MinVotes = 0 }},
		{"zero line length", func(c *Config) { c.MinLineLength = 0 }},
		{"negative line gap", func(c *Config) { c.MaxLineGap = -1 }},
		{"canny low above high", func(c *Config) { c.CannyLow = 200 }},
		{"min slope out of range", func(c *Config) { c.MinSlope = 1.5 }},
		{"negative roi notch", func(c *Config) { c.RoiNotch = -5 }},
		{"smooth alpha zero", func(c *Config) { c.SmoothAlpha = 0 }},
		{"smooth alpha above one", func(c *Config) { c.SmoothAlpha = 1.2 }},
		{"horizon at one", func(c *Config) { c.Horizon = 1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if errs := cfg.Validate(); len(errs) == 0 {
				t.Error("expected validation errors, got none")
			}
		})
	}
}
