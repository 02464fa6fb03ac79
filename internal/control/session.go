package control

import (
	"fmt"
	"time"

	"github.com/code-pasu/Wision/internal/cursor"
	"github.com/code-pasu/Wision/internal/gesture"
	"github.com/code-pasu/Wision/internal/sink"
	"github.com/code-pasu/Wision/internal/tracker"
)

// Scroll direction bands for the peace-sign tilt, degrees from vertical.
// Near vertical scrolls up, near horizontal scrolls down, with a neutral
// band in between; speed grows toward the extremes, capped at maxScrollSpeed.
const (
	scrollUpBand   = 25.0
	scrollDownBand = 65.0
	maxScrollSpeed = 5
)

// SessionConfig collects everything a session needs: component thresholds,
// dispatch tables, screen geometry, and cursor behavior.
type SessionConfig struct {
	Extractor  gesture.ExtractorConfig
	Classifier gesture.ClassifierConfig
	Tables     Tables
	Smoothing  cursor.Config

	// MoveLabels are the gestures that drive continuous pointer movement.
	// Movement bypasses stability tracking and the cooldown gate; it is
	// rate-bound only by frame rate.
	MoveLabels []gesture.Label

	ScreenWidth  int
	ScreenHeight int

	// Sensitivity scales fingertip displacement around the screen center
	// (default: 2.5). Higher values need less hand travel.
	Sensitivity float64
}

// DefaultSessionConfig returns a config with all component defaults and the
// stock dispatch tables.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Extractor:    gesture.DefaultExtractorConfig(),
		Classifier:   gesture.DefaultClassifierConfig(),
		Tables:       DefaultTables(),
		Smoothing:    cursor.DefaultConfig(),
		MoveLabels:   []gesture.Label{gesture.IndexUp, gesture.LSign},
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Sensitivity:  2.5,
	}
}

// ConfirmedGesture is a label that satisfied both its stability and duration
// thresholds, together with the mode it was confirmed under. It exists only
// as the payload of one dispatch cycle.
type ConfirmedGesture struct {
	Label gesture.Label
	Mode  Mode
	At    time.Time
}

// Result summarizes the fully resolved outcome of one frame: its label, the
// active mode after processing, whether a gesture was confirmed, and whether
// an action actually fired.
type Result struct {
	Label     gesture.Label
	Mode      Mode
	Confirmed *ConfirmedGesture
	Action    ActionKind // empty when no action was dispatched
	Fired     bool
}

// Session owns all mutable engine state for one control surface: the
// stability streak, the active mode, the cooldown table, and the cursor
// filter. Frames pass through it strictly sequentially; a session must not
// be shared across goroutines. Independent sessions never interfere.
type Session struct {
	cfg        SessionConfig
	classifier *gesture.Classifier
	stability  *Stability
	gate       *Gate
	smoother   *cursor.Smoother
	out        sink.Sink

	mode       Mode
	switchedAt time.Time
	moveLabels map[gesture.Label]bool
}

// NewSession validates the configuration tables and builds a session
// starting in CURSOR mode. Table validation failures are configuration
// bugs and should abort startup.
func NewSession(cfg SessionConfig, out sink.Sink) (*Session, error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}
	for _, l := range cfg.MoveLabels {
		if !gesture.Known(l) {
			return nil, fmt.Errorf("move labels: %w: %q", ErrUnknownGesture, l)
		}
	}

	moveLabels := make(map[gesture.Label]bool, len(cfg.MoveLabels))
	for _, l := range cfg.MoveLabels {
		moveLabels[l] = true
	}

	return &Session{
		cfg:        cfg,
		classifier: gesture.NewClassifier(cfg.Classifier),
		stability:  NewStability(),
		gate:       NewGate(cfg.Tables.Cooldowns),
		smoother:   cursor.NewSmoother(cfg.Smoothing, cfg.ScreenWidth, cfg.ScreenHeight),
		out:        out,
		mode:       ModeCursor,
		moveLabels: moveLabels,
	}, nil
}

// Mode returns the active control mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Process runs one frame through the pipeline: extract, classify, stability
// track, and dispatch. A nil snapshot means no hand was visible this frame;
// it feeds NONE into the tracker and resets the cursor filter so
// re-acquisition starts a fresh track. Time comes from the snapshot (or the
// supplied now for hand-less frames), never from the wall clock.
//
// The returned error reports sink failures only. Cooldown state is recorded
// before the sink call, so a failed action still consumes its window and a
// struggling sink is never hammered with retries.
func (s *Session) Process(snap *tracker.HandSnapshot, now time.Time) (Result, error) {
	label := gesture.None
	var feat gesture.Features

	if snap == nil {
		s.smoother.Reset()
	} else {
		now = snap.Timestamp
		state, f, err := gesture.Extract(snap, s.cfg.Extractor)
		if err == nil {
			label = s.classifier.Classify(state, f)
			feat = f
		}
		// An invalid snapshot skips the frame as NONE; nothing propagates
		// beyond it.
	}

	res := Result{Label: label, Mode: s.mode}
	streak := s.stability.Observe(label, now)

	var sinkErr error
	if snap != nil && s.moveLabels[label] {
		sinkErr = s.pointerMove(snap, now)
	}

	th, tracked := s.cfg.Tables.Thresholds[s.mode][label]
	if !tracked || !streak.Fire(th, now) {
		return res, sinkErr
	}

	res.Confirmed = &ConfirmedGesture{Label: label, Mode: s.mode, At: now}

	kind, bound := s.cfg.Tables.Effects[s.mode][label]
	if !bound {
		return res, sinkErr // confirmed but unmapped: no-op
	}
	res.Action = kind

	if kind == ActModeSwitch {
		if s.gate.Allow(ActModeSwitch, now) {
			s.mode = s.mode.Next()
			s.switchedAt = now
			res.Fired = true
			res.Mode = s.mode
		}
		return res, sinkErr
	}

	// Discrete actions stay suppressed briefly after a mode switch so the
	// tail of the OK-sign hold cannot trigger something in the new mode.
	if !th.Continuous && !s.switchedAt.IsZero() && now.Sub(s.switchedAt) < s.cfg.Tables.Settle {
		return res, sinkErr
	}

	if !s.gate.Allow(kind, now) {
		return res, sinkErr
	}

	fired, err := s.perform(kind, feat)
	res.Fired = fired
	if err != nil {
		sinkErr = err
	}
	return res, sinkErr
}

// pointerMove maps the index fingertip to screen space, mirrors x so the
// cursor follows the hand like a mirror, scales displacement around the
// screen center by the sensitivity, and pushes the smoothed target to the
// sink.
func (s *Session) pointerMove(snap *tracker.HandSnapshot, now time.Time) error {
	if !snap.Complete() {
		return nil
	}
	tip := snap.Points[tracker.IndexTip]

	nx := 0.5 + ((1-tip.X)-0.5)*s.cfg.Sensitivity
	ny := 0.5 + (tip.Y-0.5)*s.cfg.Sensitivity

	tx := clamp(nx*float64(s.cfg.ScreenWidth-1), 0, float64(s.cfg.ScreenWidth-1))
	ty := clamp(ny*float64(s.cfg.ScreenHeight-1), 0, float64(s.cfg.ScreenHeight-1))

	sx, sy := s.smoother.Smooth(tx, ty, now)
	return s.out.PointerMove(int(sx), int(sy))
}

// perform translates an action kind into the corresponding sink call.
// Returns whether anything was actually sent (a neutral scroll angle sends
// nothing).
func (s *Session) perform(kind ActionKind, feat gesture.Features) (bool, error) {
	switch kind {
	case ActLeftClick:
		return true, s.out.PointerClick(sink.ButtonLeft, 1)
	case ActDoubleClick:
		return true, s.out.PointerClick(sink.ButtonLeft, 2)
	case ActRightClick:
		return true, s.out.PointerClick(sink.ButtonRight, 1)
	case ActMiddleClick:
		return true, s.out.PointerClick(sink.ButtonMiddle, 1)
	case ActScroll:
		amount := scrollAmount(feat.PeaceAngle)
		if amount == 0 {
			return false, nil
		}
		return true, s.out.Scroll(amount)
	case ActMaximize:
		return true, s.out.WindowOp("maximize")
	case ActMinimize:
		return true, s.out.WindowOp("minimize")
	case ActCloseWindow:
		return true, s.out.WindowOp("close")
	case ActSwitchWindow:
		return true, s.out.WindowOp("switch")
	case ActShowDesktop:
		return true, s.out.WindowOp("show_desktop")
	case ActScreenshot:
		return true, s.out.KeyCombo("printscreen")
	case ActPlayPause:
		return true, s.out.KeyCombo("playpause")
	case ActNextTrack:
		return true, s.out.KeyCombo("nexttrack")
	case ActPrevTrack:
		return true, s.out.KeyCombo("prevtrack")
	case ActVolumeUp:
		return true, s.out.KeyCombo("volumeup")
	case ActVolumeDown:
		return true, s.out.KeyCombo("volumedown")
	case ActMute:
		return true, s.out.KeyCombo("volumemute")
	}
	return false, nil
}

// scrollAmount converts the peace-sign tilt into a signed scroll magnitude:
// near vertical scrolls up 1..5, near horizontal scrolls down 1..5, the band
// in between is neutral.
func scrollAmount(angleDeg float64) int {
	abs := angleDeg
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < scrollUpBand:
		speed := int((scrollUpBand-abs)/5) + 1
		if speed > maxScrollSpeed {
			speed = maxScrollSpeed
		}
		return speed
	case abs > scrollDownBand:
		speed := int((abs-scrollDownBand)/5) + 1
		if speed > maxScrollSpeed {
			speed = maxScrollSpeed
		}
		return -speed
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
