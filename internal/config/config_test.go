package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/code-pasu/Wision/internal/control"
	"github.com/code-pasu/Wision/internal/gesture"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/wision/config.json")
	if err != nil {
		t.Fatalf("expected no error for a missing config file, got %v", err)
	}

	def := Default()
	if cfg.Cursor.Sensitivity != def.Cursor.Sensitivity {
		t.Errorf("expected default sensitivity %f, got %f", def.Cursor.Sensitivity, cfg.Cursor.Sensitivity)
	}
	if cfg.Server.Addr != def.Server.Addr {
		t.Errorf("expected default server addr %s, got %s", def.Server.Addr, cfg.Server.Addr)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wision-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.json")
	content := `{
		"camera": {"device_id": 2},
		"cursor": {"sensitivity": 3.5}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.DeviceID != 2 {
		t.Errorf("expected device_id 2, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Cursor.Sensitivity != 3.5 {
		t.Errorf("expected sensitivity 3.5, got %f", cfg.Cursor.Sensitivity)
	}

	// Untouched sections keep their defaults
	if cfg.Gestures.ExtendedAngle != 140 {
		t.Errorf("expected default extended angle, got %f", cfg.Gestures.ExtendedAngle)
	}
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wision-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestConfig_TablesDefaultsValidate(t *testing.T) {
	tables, err := Default().Tables()
	if err != nil {
		t.Fatalf("expected default tables to build, got %v", err)
	}
	if err := tables.Validate(); err != nil {
		t.Errorf("expected built tables to validate, got %v", err)
	}
}

func TestConfig_TablesAppliesOverrides(t *testing.T) {
	cfg := Default()
	cfg.Actions.Thresholds = map[string]map[string]ThresholdEntry{
		"CURSOR": {
			"PINCH_MIDDLE": {Frames: 7, HoldSec: 0.9},
		},
	}
	cfg.Actions.CooldownsSec = map[string]float64{
		"left_click": 1.5,
	}
	settle := 2.0
	cfg.Actions.SettleSec = &settle

	tables, err := cfg.Tables()
	if err != nil {
		t.Fatalf("failed to build tables: %v", err)
	}

	th := tables.Thresholds[control.ModeCursor][gesture.PinchMiddle]
	if th.Frames != 7 {
		t.Errorf("expected 7 frames, got %d", th.Frames)
	}
	if th.Hold != 900*time.Millisecond {
		t.Errorf("expected 900ms hold, got %v", th.Hold)
	}
	if tables.Cooldowns[control.ActLeftClick] != 1500*time.Millisecond {
		t.Errorf("expected 1.5s cooldown, got %v", tables.Cooldowns[control.ActLeftClick])
	}
	if tables.Settle != 2*time.Second {
		t.Errorf("expected 2s settle, got %v", tables.Settle)
	}
}

func TestConfig_TablesRejectsUnknownNames(t *testing.T) {
	cfg := Default()
	cfg.Actions.Thresholds = map[string]map[string]ThresholdEntry{
		"TURBO": {"GRAB": {Frames: 1}},
	}
	if _, err := cfg.Tables(); !errors.Is(err, control.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}

	cfg = Default()
	cfg.Actions.Thresholds = map[string]map[string]ThresholdEntry{
		"CURSOR": {"WAVE": {Frames: 1}},
	}
	if _, err := cfg.Tables(); !errors.Is(err, control.ErrUnknownGesture) {
		t.Errorf("expected ErrUnknownGesture, got %v", err)
	}

	cfg = Default()
	cfg.Actions.Effects = map[string]map[string]string{
		"CURSOR": {"GRAB": "teleport"},
	}
	if _, err := cfg.Tables(); !errors.Is(err, control.ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestConfig_TypedSections(t *testing.T) {
	cfg := Default()

	tc := cfg.TrackerConfig()
	if tc.MaxHands != 1 || tc.MinDetectionConf != 0.7 {
		t.Errorf("unexpected tracker config: %+v", tc)
	}

	ec := cfg.ExtractorConfig()
	if ec.ExtendedAngle != 140 || ec.ThumbAwayMin != 0.08 {
		t.Errorf("unexpected extractor config: %+v", ec)
	}

	cc := cfg.ClassifierConfig()
	if cc.OKSignMax != 0.05 || cc.PinchMax != 0.06 {
		t.Errorf("unexpected classifier config: %+v", cc)
	}

	sc := cfg.SmoothingConfig()
	if sc.MinCutoff != 0.8 || sc.DeadzonePx != 2.0 {
		t.Errorf("unexpected smoothing config: %+v", sc)
	}
}
