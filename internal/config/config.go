// Package config loads the Wision configuration file and converts it into
// the typed configuration structs the engine packages consume. All values
// have sensible defaults; a missing config file is not an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/code-pasu/Wision/internal/control"
	"github.com/code-pasu/Wision/internal/cursor"
	"github.com/code-pasu/Wision/internal/gesture"
	"github.com/code-pasu/Wision/internal/tracker"
)

// Config is the on-disk configuration format. Durations are expressed in
// seconds as floating point numbers, matching the granularity of frame
// timestamps.
type Config struct {
	Camera    CameraConfig    `json:"camera"`
	Detection DetectionConfig `json:"detection"`
	Cursor    CursorConfig    `json:"cursor"`
	Gestures  GestureConfig   `json:"gestures"`
	Actions   ActionConfig    `json:"actions"`
	Server    ServerConfig    `json:"server"`
	Sink      SinkConfig      `json:"sink"`
}

// CameraConfig controls the video capture device.
type CameraConfig struct {
	DeviceID int `json:"device_id"`
}

// DetectionConfig controls the hand landmark tracker.
type DetectionConfig struct {
	MaxHands         int     `json:"max_hands"`
	MinDetectionConf float64 `json:"min_detection_confidence"`
	MinTrackingConf  float64 `json:"min_tracking_confidence"`
}

// CursorConfig controls pointer smoothing and mapping.
type CursorConfig struct {
	ScreenWidth  int     `json:"screen_width"`
	ScreenHeight int     `json:"screen_height"`
	Sensitivity  float64 `json:"sensitivity"`
	MinCutoff    float64 `json:"min_cutoff"`
	Beta         float64 `json:"beta"`
	DeadzonePx   float64 `json:"deadzone_px"`
	EdgeMargin   float64 `json:"edge_margin"`
	EdgeFactor   float64 `json:"edge_factor"`
}

// GestureConfig controls the geometric thresholds of the finger state
// extractor and the gesture classifier.
type GestureConfig struct {
	ExtendedAngle float64 `json:"extended_angle"`
	CurlAngle     float64 `json:"curl_angle"`
	ThumbAngle    float64 `json:"thumb_angle"`
	ThumbAwayMin  float64 `json:"thumb_away_min"`
	OKSignMax     float64 `json:"ok_sign_max"`
	OKSeparation  float64 `json:"ok_separation"`
	PinchMax      float64 `json:"pinch_max"`
	ThumbTuckMax  float64 `json:"thumb_tuck_max"`
	RockSpreadMin float64 `json:"rock_spread_min"`
	ThumbReachMin float64 `json:"thumb_reach_min"`
}

// ThresholdEntry is the on-disk shape of a stability requirement for one
// gesture within one mode.
type ThresholdEntry struct {
	Frames     int     `json:"frames"`
	HoldSec    float64 `json:"hold_sec"`
	Continuous bool    `json:"continuous,omitempty"`
}

// ActionConfig overrides the dispatch tables. Keys are mode, gesture and
// action names as strings; they are validated against the known sets when
// the config is built, so a typo fails at startup rather than silently
// dropping a binding.
type ActionConfig struct {
	Thresholds   map[string]map[string]ThresholdEntry `json:"thresholds,omitempty"`
	Effects      map[string]map[string]string         `json:"effects,omitempty"`
	CooldownsSec map[string]float64                   `json:"cooldowns_sec,omitempty"`
	SettleSec    *float64                             `json:"settle_sec,omitempty"`
}

// ServerConfig controls the status HTTP server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SinkConfig controls the desktop action helper.
type SinkConfig struct {
	HelperPath string `json:"helper_path"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Camera: CameraConfig{DeviceID: 0},
		Detection: DetectionConfig{
			MaxHands:         1,
			MinDetectionConf: 0.7,
			MinTrackingConf:  0.7,
		},
		Cursor: CursorConfig{
			ScreenWidth:  1920,
			ScreenHeight: 1080,
			Sensitivity:  2.5,
			MinCutoff:    0.8,
			Beta:         0.4,
			DeadzonePx:   2.0,
			EdgeMargin:   0.15,
			EdgeFactor:   0.6,
		},
		Gestures: GestureConfig{
			ExtendedAngle: 140,
			CurlAngle:     150,
			ThumbAngle:    140,
			ThumbAwayMin:  0.08,
			OKSignMax:     0.05,
			OKSeparation:  1.5,
			PinchMax:      0.06,
			ThumbTuckMax:  0.08,
			RockSpreadMin: 0.10,
			ThumbReachMin: 0.15,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the config file at path and merges it over the defaults. A
// missing file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// TrackerConfig converts the detection section into a tracker config.
func (c Config) TrackerConfig() tracker.Config {
	return tracker.Config{
		CameraID:         c.Camera.DeviceID,
		MaxHands:         c.Detection.MaxHands,
		MinDetectionConf: c.Detection.MinDetectionConf,
		MinTrackingConf:  c.Detection.MinTrackingConf,
	}
}

// ExtractorConfig converts the gesture section into extractor thresholds.
func (c Config) ExtractorConfig() gesture.ExtractorConfig {
	return gesture.ExtractorConfig{
		ExtendedAngle: c.Gestures.ExtendedAngle,
		CurlAngle:     c.Gestures.CurlAngle,
		ThumbAngle:    c.Gestures.ThumbAngle,
		ThumbAwayMin:  c.Gestures.ThumbAwayMin,
	}
}

// ClassifierConfig converts the gesture section into classifier thresholds.
func (c Config) ClassifierConfig() gesture.ClassifierConfig {
	return gesture.ClassifierConfig{
		OKSignMax:     c.Gestures.OKSignMax,
		OKSeparation:  c.Gestures.OKSeparation,
		PinchMax:      c.Gestures.PinchMax,
		ThumbTuckMax:  c.Gestures.ThumbTuckMax,
		RockSpreadMin: c.Gestures.RockSpreadMin,
		ThumbReachMin: c.Gestures.ThumbReachMin,
	}
}

// SmoothingConfig converts the cursor section into smoother parameters.
func (c Config) SmoothingConfig() cursor.Config {
	sc := cursor.DefaultConfig()
	sc.MinCutoff = c.Cursor.MinCutoff
	sc.Beta = c.Cursor.Beta
	sc.DeadzonePx = c.Cursor.DeadzonePx
	sc.EdgeMargin = c.Cursor.EdgeMargin
	sc.EdgeFactor = c.Cursor.EdgeFactor
	return sc
}

// Tables applies the action overrides on top of the default dispatch tables
// and validates the result. Unknown mode, gesture or action names are
// reported as errors.
func (c Config) Tables() (control.Tables, error) {
	tables := control.DefaultTables()

	for modeName, entries := range c.Actions.Thresholds {
		mode := control.Mode(modeName)
		if !mode.Valid() {
			return tables, fmt.Errorf("%w: %q", control.ErrUnknownMode, modeName)
		}
		for gestureName, entry := range entries {
			label := gesture.Label(gestureName)
			if !gesture.Known(label) {
				return tables, fmt.Errorf("%w: %q", control.ErrUnknownGesture, gestureName)
			}
			tables.Thresholds[mode][label] = control.Threshold{
				Frames:     entry.Frames,
				Hold:       secondsToDuration(entry.HoldSec),
				Continuous: entry.Continuous,
			}
		}
	}

	for modeName, entries := range c.Actions.Effects {
		mode := control.Mode(modeName)
		if !mode.Valid() {
			return tables, fmt.Errorf("%w: %q", control.ErrUnknownMode, modeName)
		}
		for gestureName, actionName := range entries {
			label := gesture.Label(gestureName)
			if !gesture.Known(label) {
				return tables, fmt.Errorf("%w: %q", control.ErrUnknownGesture, gestureName)
			}
			tables.Effects[mode][label] = control.ActionKind(actionName)
		}
	}

	for actionName, sec := range c.Actions.CooldownsSec {
		tables.Cooldowns[control.ActionKind(actionName)] = secondsToDuration(sec)
	}

	if c.Actions.SettleSec != nil {
		tables.Settle = secondsToDuration(*c.Actions.SettleSec)
	}

	if err := tables.Validate(); err != nil {
		return tables, err
	}
	return tables, nil
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
