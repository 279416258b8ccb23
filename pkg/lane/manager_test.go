package lane

import (
	"strings"
	"testing"
)

func TestManager_GetSet(t *testing.T) {
	m := NewManager(DefaultConfig())

	cfg := m.GetConfig()
	cfg.MinVotes = 35
	if err := m.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	if got := m.GetConfig().MinVotes; got != 35 {
		t.Errorf("MinVotes after set: got %d, want 35", got)
	}
}

func TestManager_SetRejectsInvalid(t *testing.T) {
	m := NewManager(DefaultConfig())

	cfg := m.GetConfig()
	cfg.Rho = -1
	if err := m.SetConfig(cfg); err == nil {
		t.Fatal("SetConfig accepted invalid config")
	}

	// Original config untouched
	if got := m.GetConfig().Rho; got != 1 {
		t.Errorf("Rho after rejected set: got %v, want 1", got)
	}
}

func TestManager_UpdateConfig(t *testing.T) {
	m := NewManager(DefaultConfig())

	err := m.UpdateConfig(map[string]interface{}{
		"min_votes":  float64(30), // JSON numbers decode as float64
		"canny_low":  40.0,
		"canny_high": 120.0,
		"min_slope":  0.25,
	})
	if err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	cfg := m.GetConfig()
	if cfg.MinVotes != 30 {
		t.Errorf("MinVotes: got %d, want 30", cfg.MinVotes)
	}
	if cfg.CannyLow != 40 || cfg.CannyHigh != 120 {
		t.Errorf("Canny: got %v/%v, want 40/120", cfg.CannyLow, cfg.CannyHigh)
	}
	if cfg.MinSlope != 0.25 {
		t.Errorf("MinSlope: got %v, want 0.25", cfg.MinSlope)
	}
}

func TestManager_UpdateConfigUnknownKey(t *testing.T) {
	m := NewManager(DefaultConfig())

	err := m.UpdateConfig(map[string]interface{}{"bogus": 1})
	if err == nil || !strings.Contains(err.Error(), "unknown parameter") {
		t.Errorf("expected unknown parameter error, got %v", err)
	}
}

func TestManager_UpdateConfigValidates(t *testing.T) {
	m := NewManager(DefaultConfig())

	if err := m.UpdateConfig(map[string]interface{}{"rho": -2.0}); err == nil {
		t.Fatal("UpdateConfig accepted invalid rho")
	}

	if got := m.GetConfig().Rho; got != 1 {
		t.Errorf("Rho after rejected update: got %v, want 1", got)
	}
}

func TestManager_OnConfigChange(t *testing.T) {
	m := NewManager(DefaultConfig())

	var applied *Config
	m.OnConfigChange = func(cfg Config) error {
		applied = &cfg
		return nil
	}

	if err := m.UpdateConfig(map[string]interface{}{"min_votes": 25}); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	if applied == nil {
		t.Fatal("OnConfigChange was not called")
	}
	if applied.MinVotes != 25 {
		t.Errorf("callback config MinVotes: got %d, want 25", applied.MinVotes)
	}
}
