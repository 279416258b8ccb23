package lane

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Manager holds the current detection configuration and handles updates.
// The dashboard API mutates parameters through it while the pipeline runs.
type Manager struct {
	config Config
	mu     sync.RWMutex

	// Callback when config changes (for applying to the detector)
	OnConfigChange func(cfg Config) error
}

// NewManager creates a manager seeded with the given config.
func NewManager(cfg Config) *Manager {
	return &Manager{config: cfg}
}

// GetConfig returns the current detection configuration.
func (m *Manager) GetConfig() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig updates the detection configuration.
func (m *Manager) SetConfig(cfg Config) error {
	// Validate
	if errors := cfg.Validate(); len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	m.mu.Lock()
	m.config = cfg
	callback := m.OnConfigChange
	m.mu.Unlock()

	// Notify callback if set
	if callback != nil {
		if err := callback(cfg); err != nil {
			return fmt.Errorf("failed to apply config: %w", err)
		}
	}

	return nil
}

// UpdateConfig updates specific fields of the configuration.
// Accepts a map of field names to values.
func (m *Manager) UpdateConfig(params map[string]interface{}) error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	for key, value := range params {
		switch key {
		case "rho":
			if v, ok := toFloat(value); ok {
				cfg.Rho = v
			}
		case "theta":
			if v, ok := toFloat(value); ok {
				cfg.Theta = v
			}
		case "min_votes":
			if v, ok := toInt(value); ok {
				cfg.MinVotes = v
			}
		case "min_line_length":
			if v, ok := toFloat(value); ok {
				cfg.MinLineLength = v
			}
		case "max_line_gap":
			if v, ok := toFloat(value); ok {
				cfg.MaxLineGap = v
			}
		case "canny_low":
			if v, ok := toFloat(value); ok {
				cfg.CannyLow = v
			}
		case "canny_high":
			if v, ok := toFloat(value); ok {
				cfg.CannyHigh = v
			}
		case "min_slope":
			if v, ok := toFloat(value); ok {
				cfg.MinSlope = v
			}
		case "roi_notch":
			if v, ok := toInt(value); ok {
				cfg.RoiNotch = v
			}
		case "smooth_alpha":
			if v, ok := toFloat(value); ok {
				cfg.SmoothAlpha = v
			}
		case "horizon":
			if v, ok := toFloat(value); ok {
				cfg.Horizon = v
			}
		default:
			return fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return m.SetConfig(cfg)
}

// Helper functions for type conversion

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		i, err := val.Int64()
		if err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err == nil {
			return f, true
		}
	}
	return 0, false
}
