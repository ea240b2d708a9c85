// Package config loads capture tuning values from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CaptureConfig holds tunable capture settings. All fields are pointers so
// a partial JSON file only overrides what it names; nil fields fall back to
// the accessor defaults.
type CaptureConfig struct {
	SensorID      *string  `json:"sensor_id,omitempty"`
	Width         *int     `json:"width,omitempty"`
	Height        *int     `json:"height,omitempty"`
	FOVDegrees    *float64 `json:"fov_degrees,omitempty"` // field-of-view half-angle
	SceneDepth    *float64 `json:"scene_depth,omitempty"` // simulated scene depth, metres
	FrameInterval *string  `json:"frame_interval,omitempty"`
	StatsInterval *string  `json:"stats_interval,omitempty"`
}

// LoadCaptureConfig loads a CaptureConfig from a JSON file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadCaptureConfig(path string) (*CaptureConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &CaptureConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// GetSensorID returns the sensor identifier or its default.
func (c *CaptureConfig) GetSensorID() string {
	if c != nil && c.SensorID != nil {
		return *c.SensorID
	}
	return "sim0"
}

// GetWidth returns the sensor width in pixels or its default.
func (c *CaptureConfig) GetWidth() int {
	if c != nil && c.Width != nil {
		return *c.Width
	}
	return 80
}

// GetHeight returns the sensor height in pixels or its default.
func (c *CaptureConfig) GetHeight() int {
	if c != nil && c.Height != nil {
		return *c.Height
	}
	return 60
}

// GetFOVDegrees returns the field-of-view half-angle in degrees or its default.
func (c *CaptureConfig) GetFOVDegrees() float64 {
	if c != nil && c.FOVDegrees != nil {
		return *c.FOVDegrees
	}
	return 45
}

// GetSceneDepth returns the simulated scene depth in metres or its default.
func (c *CaptureConfig) GetSceneDepth() float64 {
	if c != nil && c.SceneDepth != nil {
		return *c.SceneDepth
	}
	return 1.5
}

// GetFrameInterval returns the simulated frame interval or its default.
// Malformed duration strings fall back to the default.
func (c *CaptureConfig) GetFrameInterval() time.Duration {
	if c != nil && c.FrameInterval != nil {
		if d, err := time.ParseDuration(*c.FrameInterval); err == nil {
			return d
		}
	}
	return 33 * time.Millisecond
}

// GetStatsInterval returns the statistics logging interval or its default.
func (c *CaptureConfig) GetStatsInterval() time.Duration {
	if c != nil && c.StatsInterval != nil {
		if d, err := time.ParseDuration(*c.StatsInterval); err == nil {
			return d
		}
	}
	return 2 * time.Second
}
