package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureConfigDefaults(t *testing.T) {
	cfg := &CaptureConfig{}

	if cfg.GetSensorID() != "sim0" {
		t.Errorf("GetSensorID() = %q, want sim0", cfg.GetSensorID())
	}
	if cfg.GetWidth() != 80 || cfg.GetHeight() != 60 {
		t.Errorf("dimensions = %dx%d, want 80x60", cfg.GetWidth(), cfg.GetHeight())
	}
	if cfg.GetFOVDegrees() != 45 {
		t.Errorf("GetFOVDegrees() = %f, want 45", cfg.GetFOVDegrees())
	}
	if cfg.GetFrameInterval() != 33*time.Millisecond {
		t.Errorf("GetFrameInterval() = %v, want 33ms", cfg.GetFrameInterval())
	}

	// A nil config also yields defaults.
	var nilCfg *CaptureConfig
	if nilCfg.GetStatsInterval() != 2*time.Second {
		t.Errorf("nil GetStatsInterval() = %v, want 2s", nilCfg.GetStatsInterval())
	}
}

func TestLoadCaptureConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "capture.json")

	testJSON := `{
  "sensor_id": "tof-front",
  "width": 320,
  "height": 240,
  "fov_degrees": 30,
  "frame_interval": "16ms"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	cfg, err := LoadCaptureConfig(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.GetSensorID() != "tof-front" {
		t.Errorf("GetSensorID() = %q, want tof-front", cfg.GetSensorID())
	}
	if cfg.GetWidth() != 320 || cfg.GetHeight() != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", cfg.GetWidth(), cfg.GetHeight())
	}
	if cfg.GetFOVDegrees() != 30 {
		t.Errorf("GetFOVDegrees() = %f, want 30", cfg.GetFOVDegrees())
	}
	if cfg.GetFrameInterval() != 16*time.Millisecond {
		t.Errorf("GetFrameInterval() = %v, want 16ms", cfg.GetFrameInterval())
	}
	// Omitted fields keep defaults.
	if cfg.GetSceneDepth() != 1.5 {
		t.Errorf("GetSceneDepth() = %f, want default 1.5", cfg.GetSceneDepth())
	}
}

func TestLoadCaptureConfigRejectsBadInput(t *testing.T) {
	if _, err := LoadCaptureConfig("capture.yaml"); err == nil {
		t.Error("non-JSON extension should be rejected")
	}
	if _, err := LoadCaptureConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should be rejected")
	}

	badPath := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(badPath, []byte("{not json"), 0644)
	if _, err := LoadCaptureConfig(badPath); err == nil {
		t.Error("malformed JSON should be rejected")
	}
}

func TestLoadCaptureConfigBadDurationFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.json")
	os.WriteFile(path, []byte(`{"frame_interval": "often"}`), 0644)

	cfg, err := LoadCaptureConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GetFrameInterval() != 33*time.Millisecond {
		t.Errorf("GetFrameInterval() = %v, want default 33ms", cfg.GetFrameInterval())
	}
}
