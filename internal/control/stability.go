package control

import (
	"time"

	"github.com/code-pasu/Wision/internal/gesture"
)

// Threshold is the temporal-validation requirement for one (mode, gesture)
// pair: how many consecutive frames and how much wall-clock hold time a
// frame-local label needs before it is confirmed.
type Threshold struct {
	// Frames is the minimum consecutive-frame count (inclusive: the
	// Frames-th identical frame satisfies it).
	Frames int

	// Hold is the minimum wall-clock duration since the streak began
	// (inclusive).
	Hold time.Duration

	// Continuous marks gestures that re-emit every tick once past the
	// hold threshold (scrolling, volume ramps) instead of firing once
	// per streak.
	Continuous bool
}

// Streak records the run of identical frame-local labels currently in
// progress: the candidate label, its consecutive-frame count, and when the
// run began. At most one streak exists at a time; a differing label
// atomically replaces it.
type Streak struct {
	Label  gesture.Label
	Frames int
	Since  time.Time
	fired  bool
}

// Held returns how long the streak has been running as of now.
func (s *Streak) Held(now time.Time) time.Duration {
	return now.Sub(s.Since)
}

// Fire reports whether the streak satisfies the threshold and should emit a
// confirmed gesture this tick. Discrete gestures are edge-triggered: Fire
// returns true exactly once per unbroken streak, on the first tick both
// thresholds are crossed. Continuous gestures return true on every
// qualifying tick.
func (s *Streak) Fire(th Threshold, now time.Time) bool {
	if s.Frames < th.Frames || s.Held(now) < th.Hold {
		return false
	}
	if th.Continuous {
		return true
	}
	if s.fired {
		return false
	}
	s.fired = true
	return true
}

// Stability tracks the label streak across frames. State advances on every
// observed frame and is owned by a single Session; it must not be shared
// across goroutines.
type Stability struct {
	cur Streak
}

// NewStability returns a tracker with no active streak.
func NewStability() *Stability {
	return &Stability{}
}

// Observe feeds one frame-local label. If it matches the running streak the
// frame counter increments; otherwise the streak resets to (label, 1, now),
// clearing the previous candidate entirely, including its fired latch.
// The returned streak stays valid until the next Observe call.
func (t *Stability) Observe(label gesture.Label, now time.Time) *Streak {
	if t.cur.Frames == 0 || t.cur.Label != label {
		t.cur = Streak{Label: label, Frames: 1, Since: now}
	} else {
		t.cur.Frames++
	}
	return &t.cur
}

// Current returns the running streak, or nil if nothing has been observed.
func (t *Stability) Current() *Streak {
	if t.cur.Frames == 0 {
		return nil
	}
	return &t.cur
}

// Reset drops the running streak, e.g. when the session is re-initialized.
func (t *Stability) Reset() {
	t.cur = Streak{}
}
