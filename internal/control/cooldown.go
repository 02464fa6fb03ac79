package control

import "time"

// ActionKind identifies the kind of action a confirmed gesture maps to.
// It is the key of the cooldown table and of the per-mode effect tables.
type ActionKind string

const (
	ActModeSwitch   ActionKind = "mode_switch"
	ActPointerMove  ActionKind = "pointer_move"
	ActLeftClick    ActionKind = "left_click"
	ActRightClick   ActionKind = "right_click"
	ActMiddleClick  ActionKind = "middle_click"
	ActDoubleClick  ActionKind = "double_click"
	ActScroll       ActionKind = "scroll"
	ActMaximize     ActionKind = "maximize"
	ActMinimize     ActionKind = "minimize"
	ActCloseWindow  ActionKind = "close_window"
	ActSwitchWindow ActionKind = "switch_window"
	ActShowDesktop  ActionKind = "show_desktop"
	ActScreenshot   ActionKind = "screenshot"
	ActPlayPause    ActionKind = "play_pause"
	ActNextTrack    ActionKind = "next_track"
	ActPrevTrack    ActionKind = "prev_track"
	ActVolumeUp     ActionKind = "volume_up"
	ActVolumeDown   ActionKind = "volume_down"
	ActMute         ActionKind = "mute"
)

// knownActions is the closed action-kind set used for config validation.
var knownActions = map[ActionKind]bool{
	ActModeSwitch: true, ActPointerMove: true,
	ActLeftClick: true, ActRightClick: true, ActMiddleClick: true,
	ActDoubleClick: true, ActScroll: true,
	ActMaximize: true, ActMinimize: true, ActCloseWindow: true,
	ActSwitchWindow: true, ActShowDesktop: true, ActScreenshot: true,
	ActPlayPause: true, ActNextTrack: true, ActPrevTrack: true,
	ActVolumeUp: true, ActVolumeDown: true, ActMute: true,
}

// KnownAction reports whether kind is a recognized action kind.
func KnownAction(kind ActionKind) bool {
	return knownActions[kind]
}

// Gate rate-limits actions: an action kind may fire again only once its
// cooldown has elapsed since it last fired. Kinds without a configured
// cooldown (pointer movement, scrolling) always pass. Denial is silent by
// design; the gate is a rate limiter, not a fault detector.
type Gate struct {
	cooldowns map[ActionKind]time.Duration
	last      map[ActionKind]time.Time
}

// NewGate creates a gate with the given per-kind cooldown durations.
// Every kind starts as "never fired".
func NewGate(cooldowns map[ActionKind]time.Duration) *Gate {
	return &Gate{
		cooldowns: cooldowns,
		last:      make(map[ActionKind]time.Time),
	}
}

// Allow reports whether the action may fire at time now, and on permit
// records now as the last-fired timestamp. Recording happens before the
// caller invokes the sink, so a slow or failing sink cannot cause a
// re-entrant double fire; a failed action still consumes its cooldown
// window.
func (g *Gate) Allow(kind ActionKind, now time.Time) bool {
	cd, ok := g.cooldowns[kind]
	if ok {
		if last, fired := g.last[kind]; fired && now.Sub(last) < cd {
			return false
		}
	}
	g.last[kind] = now
	return true
}

// LastFired returns when the kind last fired, or the zero time if never.
func (g *Gate) LastFired(kind ActionKind) time.Time {
	return g.last[kind]
}
