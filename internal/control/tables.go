package control

import (
	"errors"
	"fmt"
	"time"

	"github.com/code-pasu/Wision/internal/gesture"
)

// Configuration table errors. These indicate a broken configuration, not a
// runtime condition, and are fatal at startup.
var (
	ErrUnknownMode    = errors.New("unknown control mode")
	ErrUnknownAction  = errors.New("unknown action kind")
	ErrUnknownGesture = errors.New("unknown gesture label")
)

// Tables is the immutable configuration dispatch consults: per-(mode,
// gesture) stability thresholds, per-(mode, gesture) effects, and per-action
// cooldowns. Loaded once at startup and never mutated afterwards.
type Tables struct {
	// Thresholds maps (mode, label) to the temporal-validation
	// requirement. Pairs absent from the table are never confirmed.
	Thresholds map[Mode]map[gesture.Label]Threshold

	// Effects maps (mode, label) to the action that fires on
	// confirmation. Pairs absent from the table are no-ops.
	Effects map[Mode]map[gesture.Label]ActionKind

	// Cooldowns maps an action kind to its minimum re-fire interval.
	// Kinds absent from the map are uncooled (continuous actions).
	Cooldowns map[ActionKind]time.Duration

	// Settle suppresses discrete in-mode actions for this long after a
	// mode switch, so the tail of the OK-sign hold cannot trigger an
	// action in the new mode.
	Settle time.Duration
}

// DefaultTables returns the stock gesture-to-action mapping. The OK sign
// switches modes everywhere; the per-mode rows mirror the product's
// gesture table.
func DefaultTables() Tables {
	ms := Threshold{Frames: 5, Hold: 300 * time.Millisecond}

	return Tables{
		Thresholds: map[Mode]map[gesture.Label]Threshold{
			ModeCursor: {
				gesture.OKSign:      ms,
				gesture.PinchMiddle: {Frames: 3, Hold: 350 * time.Millisecond},
				gesture.Rock:        {Frames: 3, Hold: 820 * time.Millisecond},
				gesture.CallMe:      {Frames: 5, Hold: 250 * time.Millisecond},
				gesture.RingCurl:    {Frames: 3, Hold: 200 * time.Millisecond},
				gesture.LSign:       {Frames: 2, Hold: 800 * time.Millisecond},
				gesture.Peace:       {Frames: 1, Hold: 100 * time.Millisecond, Continuous: true},
			},
			ModeScroll: {
				gesture.OKSign: ms,
				gesture.Peace:  {Frames: 1, Hold: 100 * time.Millisecond, Continuous: true},
			},
			ModeWindow: {
				gesture.OKSign:      ms,
				gesture.OpenPalm:    {Frames: 5, Hold: 1500 * time.Millisecond},
				gesture.Grab:        {Frames: 5, Hold: 1500 * time.Millisecond},
				gesture.Rock:        {Frames: 3, Hold: 620 * time.Millisecond},
				gesture.PinchMiddle: {Frames: 3, Hold: 520 * time.Millisecond},
				gesture.CallMe:      {Frames: 8, Hold: 500 * time.Millisecond},
				gesture.Peace:       {Frames: 5, Hold: 830 * time.Millisecond},
			},
			ModeMedia: {
				gesture.OKSign:      ms,
				gesture.OpenPalm:    {Frames: 3, Hold: 200 * time.Millisecond},
				gesture.Peace:       {Frames: 3, Hold: 200 * time.Millisecond},
				gesture.CallMe:      {Frames: 5, Hold: 300 * time.Millisecond},
				gesture.Grab:        {Frames: 5, Hold: 300 * time.Millisecond},
				gesture.PinchMiddle: {Frames: 1, Hold: 100 * time.Millisecond, Continuous: true},
				gesture.Rock:        {Frames: 1, Hold: 100 * time.Millisecond, Continuous: true},
			},
		},
		Effects: map[Mode]map[gesture.Label]ActionKind{
			ModeCursor: {
				gesture.OKSign:      ActModeSwitch,
				gesture.PinchMiddle: ActLeftClick,
				gesture.Rock:        ActRightClick,
				gesture.CallMe:      ActDoubleClick,
				gesture.RingCurl:    ActMiddleClick,
				gesture.LSign:       ActLeftClick,
				gesture.Peace:       ActScroll,
			},
			ModeScroll: {
				gesture.OKSign: ActModeSwitch,
				gesture.Peace:  ActScroll,
			},
			ModeWindow: {
				gesture.OKSign:      ActModeSwitch,
				gesture.OpenPalm:    ActMaximize,
				gesture.Grab:        ActMinimize,
				gesture.Rock:        ActSwitchWindow,
				gesture.PinchMiddle: ActShowDesktop,
				gesture.CallMe:      ActCloseWindow,
				gesture.Peace:       ActScreenshot,
			},
			ModeMedia: {
				gesture.OKSign:      ActModeSwitch,
				gesture.OpenPalm:    ActPlayPause,
				gesture.Peace:       ActPrevTrack,
				gesture.CallMe:      ActNextTrack,
				gesture.Grab:        ActMute,
				gesture.PinchMiddle: ActVolumeUp,
				gesture.Rock:        ActVolumeDown,
			},
		},
		Cooldowns: map[ActionKind]time.Duration{
			ActModeSwitch:   800 * time.Millisecond,
			ActLeftClick:    500 * time.Millisecond,
			ActRightClick:   700 * time.Millisecond,
			ActDoubleClick:  600 * time.Millisecond,
			ActMiddleClick:  500 * time.Millisecond,
			ActMaximize:     800 * time.Millisecond,
			ActMinimize:     800 * time.Millisecond,
			ActCloseWindow:  1000 * time.Millisecond,
			ActSwitchWindow: 500 * time.Millisecond,
			ActShowDesktop:  1000 * time.Millisecond,
			ActScreenshot:   1500 * time.Millisecond,
			ActPlayPause:    500 * time.Millisecond,
			ActNextTrack:    500 * time.Millisecond,
			ActPrevTrack:    500 * time.Millisecond,
			ActVolumeUp:     100 * time.Millisecond,
			ActVolumeDown:   100 * time.Millisecond,
			ActMute:         500 * time.Millisecond,
		},
		Settle: time.Second,
	}
}

// Validate checks every mode, gesture label, and action kind the tables
// reference against their closed sets. A failure means the configuration
// file is broken and the process should not start.
func (t Tables) Validate() error {
	for mode, rows := range t.Thresholds {
		if !mode.Valid() {
			return fmt.Errorf("thresholds: %w: %q", ErrUnknownMode, mode)
		}
		for label := range rows {
			if !gesture.Known(label) {
				return fmt.Errorf("thresholds[%s]: %w: %q", mode, ErrUnknownGesture, label)
			}
		}
	}
	for mode, rows := range t.Effects {
		if !mode.Valid() {
			return fmt.Errorf("effects: %w: %q", ErrUnknownMode, mode)
		}
		for label, kind := range rows {
			if !gesture.Known(label) {
				return fmt.Errorf("effects[%s]: %w: %q", mode, ErrUnknownGesture, label)
			}
			if !KnownAction(kind) {
				return fmt.Errorf("effects[%s][%s]: %w: %q", mode, label, ErrUnknownAction, kind)
			}
		}
	}
	for kind := range t.Cooldowns {
		if !KnownAction(kind) {
			return fmt.Errorf("cooldowns: %w: %q", ErrUnknownAction, kind)
		}
	}
	return nil
}
