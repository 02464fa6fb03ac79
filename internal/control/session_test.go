package control

import (
	"errors"
	"testing"
	"time"

	"github.com/code-pasu/Wision/internal/gesture"
	"github.com/code-pasu/Wision/internal/sink"
	"github.com/code-pasu/Wision/internal/tracker"
)

// frameAt returns the timestamp of frame n at roughly 15 FPS.
func frameAt(n int) time.Time {
	return t0.Add(time.Duration(n) * 66 * time.Millisecond)
}

func newTestSession(t *testing.T) (*Session, *sink.MockSink) {
	t.Helper()
	out := sink.NewMockSink()
	s, err := NewSession(DefaultSessionConfig(), out)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s, out
}

// feed runs n consecutive frames of the same pose through the session,
// starting at frame index start, and returns the last result.
func feed(t *testing.T, s *Session, pose func(time.Time) *tracker.HandSnapshot, start, n int) Result {
	t.Helper()
	var res Result
	for i := 0; i < n; i++ {
		var err error
		res, err = s.Process(pose(frameAt(start+i)), frameAt(start+i))
		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", start+i, err)
		}
	}
	return res
}

func TestSession_StartsInCursorMode(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Mode() != ModeCursor {
		t.Errorf("expected CURSOR at start, got %s", s.Mode())
	}
}

// A pinch held for half a second produces exactly one left click; holding it
// longer adds nothing; after the cooldown a fresh pinch clicks again.
func TestSession_PinchClicksOnce(t *testing.T) {
	s, out := newTestSession(t)

	// ~0.5s of PINCH_MIDDLE at 15 FPS
	feed(t, s, tracker.PinchMiddlePose, 0, 8)
	if got := out.CountPrefix("click:left:1"); got != 1 {
		t.Fatalf("expected exactly one left click, got %d", got)
	}

	// Keep holding for another ~0.1s: still one click
	feed(t, s, tracker.PinchMiddlePose, 8, 2)
	if got := out.CountPrefix("click:left:1"); got != 1 {
		t.Errorf("expected no further clicks while held, got %d", got)
	}
}

// fastFrame returns the timestamp of frame n at roughly 30 FPS, fast enough
// for a released-and-rebuilt pinch to land inside the click cooldown.
func fastFrame(n int) time.Time {
	return t0.Add(time.Duration(n) * 33 * time.Millisecond)
}

// feedFast is feed at the 30 FPS frame rate, collecting any sink error.
func feedFast(t *testing.T, s *Session, pose func(time.Time) *tracker.HandSnapshot, start, n int) (Result, error) {
	t.Helper()
	var res Result
	var lastErr error
	for i := 0; i < n; i++ {
		var err error
		res, err = s.Process(pose(fastFrame(start+i)), fastFrame(start+i))
		if err != nil {
			lastErr = err
		}
	}
	return res, lastErr
}

func TestSession_CooldownBlocksQuickRepinch(t *testing.T) {
	s, out := newTestSession(t)

	// First pinch fires at ~0.36s into the streak
	if _, err := feedFast(t, s, tracker.PinchMiddlePose, 0, 12); err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if got := out.CountPrefix("click:left:1"); got != 1 {
		t.Fatalf("expected one left click, got %d", got)
	}

	// Release, immediately re-pinch: the rebuilt streak confirms again but
	// the 500ms left-click cooldown denies it
	if _, err := s.Process(nil, fastFrame(12)); err != nil {
		t.Fatalf("no-hand frame: %v", err)
	}
	res, err := feedFast(t, s, tracker.PinchMiddlePose, 13, 12)
	if err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if res.Confirmed == nil {
		t.Fatal("expected the rebuilt streak to confirm")
	}
	if got := out.CountPrefix("click:left:1"); got != 1 {
		t.Errorf("expected the cooldown to block the second click, got %d clicks", got)
	}

	// A third pinch well past the cooldown fires again
	if _, err := s.Process(nil, fastFrame(25)); err != nil {
		t.Fatalf("no-hand frame: %v", err)
	}
	if _, err := feedFast(t, s, tracker.PinchMiddlePose, 26, 12); err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if got := out.CountPrefix("click:left:1"); got != 2 {
		t.Errorf("expected a second click after the cooldown, got %d", got)
	}
}

func TestSession_OKSignCyclesMode(t *testing.T) {
	s, _ := newTestSession(t)

	res := feed(t, s, tracker.OKSignPose, 0, 8)
	if s.Mode() != ModeScroll {
		t.Fatalf("expected SCROLL after one OK sign, got %s", s.Mode())
	}
	if res.Mode != ModeScroll {
		t.Errorf("expected result to report the new mode, got %s", res.Mode)
	}

	// Holding the OK sign does not keep cycling
	feed(t, s, tracker.OKSignPose, 8, 10)
	if s.Mode() != ModeScroll {
		t.Errorf("expected held OK sign to switch once, now in %s", s.Mode())
	}
}

func TestSession_FourSwitchesReturnToCursor(t *testing.T) {
	s, _ := newTestSession(t)

	// Each switch: break the streak, wait out the mode_switch cooldown,
	// then hold the OK sign long enough to confirm
	start := 0
	for i := 0; i < 4; i++ {
		feed(t, s, tracker.OKSignPose, start, 8)
		start += 8
		if _, err := s.Process(nil, frameAt(start)); err != nil {
			t.Fatalf("no-hand frame: %v", err)
		}
		start += 15 // ~1s gap clears the 800ms cooldown
	}

	if s.Mode() != ModeCursor {
		t.Errorf("expected four switches to return to CURSOR, got %s", s.Mode())
	}
}

// After a mode switch, discrete actions in the new mode stay suppressed for
// the settle window so the tail of the OK hold cannot trigger them.
func TestSession_SettleSuppressesDiscreteActions(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Tables.Thresholds[ModeScroll][gesture.Grab] = Threshold{Frames: 1}
	cfg.Tables.Effects[ModeScroll][gesture.Grab] = ActMinimize

	out := sink.NewMockSink()
	s, err := NewSession(cfg, out)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	// Switch to SCROLL, then immediately show a fist
	feed(t, s, tracker.OKSignPose, 0, 8)
	if s.Mode() != ModeScroll {
		t.Fatalf("expected SCROLL, got %s", s.Mode())
	}
	res := feed(t, s, tracker.FistPose, 8, 1)
	if res.Confirmed == nil {
		t.Fatal("expected the fist to confirm")
	}
	if res.Fired {
		t.Error("expected the settle window to suppress the action")
	}
	if out.CountPrefix("window:") != 0 {
		t.Error("expected no window op during the settle window")
	}

	// Re-show the fist well past the settle window
	if _, err := s.Process(nil, frameAt(25)); err != nil {
		t.Fatalf("no-hand frame: %v", err)
	}
	res = feed(t, s, tracker.FistPose, 26, 1)
	if !res.Fired {
		t.Error("expected the action to fire after the settle window")
	}
	if out.CountPrefix("window:minimize") != 1 {
		t.Errorf("expected one minimize, got %d", out.CountPrefix("window:minimize"))
	}
}

// Pointer movement bypasses stability and cooldown: every frame of a move
// gesture produces a move call.
func TestSession_IndexUpMovesEveryFrame(t *testing.T) {
	s, out := newTestSession(t)

	feed(t, s, tracker.IndexUpPose, 0, 5)
	if got := out.CountPrefix("move:"); got != 5 {
		t.Errorf("expected 5 pointer moves, got %d", got)
	}
	if got := out.CountPrefix("click:"); got != 0 {
		t.Errorf("expected no clicks from a move gesture, got %d", got)
	}
}

func TestSession_PeaceScrollsContinuously(t *testing.T) {
	s, out := newTestSession(t)

	// A vertical V in CURSOR mode scrolls up every qualifying tick
	feed(t, s, func(at time.Time) *tracker.HandSnapshot {
		return tracker.PeacePose(at, 0)
	}, 0, 8)

	if got := out.CountPrefix("scroll:"); got < 2 {
		t.Errorf("expected repeated scrolling from a held V, got %d calls", got)
	}
	for _, c := range out.Calls() {
		if c == "scroll:0" {
			t.Error("neutral scroll amounts must not reach the sink")
		}
	}
}

func TestSession_NoHandResetsStreak(t *testing.T) {
	s, out := newTestSession(t)

	// Pinch almost to confirmation, lose the hand, pinch again: the
	// interrupted progress must not carry over
	feed(t, s, tracker.PinchMiddlePose, 0, 5)
	if _, err := s.Process(nil, frameAt(5)); err != nil {
		t.Fatalf("no-hand frame: %v", err)
	}
	feed(t, s, tracker.PinchMiddlePose, 6, 5)

	if got := out.CountPrefix("click:"); got != 0 {
		t.Errorf("expected no click from two interrupted sub-threshold holds, got %d", got)
	}
}

// A failing sink still consumes the cooldown window, so a struggling helper
// is not hammered with retries.
func TestSession_SinkFailureConsumesCooldown(t *testing.T) {
	s, out := newTestSession(t)

	out.SetError(errors.New("helper crashed"))
	if _, err := feedFast(t, s, tracker.PinchMiddlePose, 0, 12); err == nil {
		t.Fatal("expected the sink failure to surface")
	}

	// Sink recovers; an immediate re-pinch is still inside the cooldown
	out.SetError(nil)
	if _, err := s.Process(nil, fastFrame(12)); err != nil {
		t.Fatalf("no-hand frame: %v", err)
	}
	if _, err := feedFast(t, s, tracker.PinchMiddlePose, 13, 12); err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if got := out.CountPrefix("click:"); got != 0 {
		t.Errorf("expected the failed attempt to consume the cooldown, got %d clicks", got)
	}
}

func TestSession_IndependentSessionsDoNotInterfere(t *testing.T) {
	s1, out1 := newTestSession(t)
	s2, out2 := newTestSession(t)

	feed(t, s1, tracker.OKSignPose, 0, 8)
	feed(t, s2, tracker.PinchMiddlePose, 0, 8)

	if s1.Mode() != ModeScroll {
		t.Errorf("session 1: expected SCROLL, got %s", s1.Mode())
	}
	if s2.Mode() != ModeCursor {
		t.Errorf("session 2: expected CURSOR, got %s", s2.Mode())
	}
	if out1.CountPrefix("click:") != 0 {
		t.Error("session 1 should not have clicked")
	}
	if out2.CountPrefix("click:") != 1 {
		t.Errorf("session 2: expected one click, got %d", out2.CountPrefix("click:"))
	}
}

func TestNewSession_RejectsBrokenTables(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Tables.Effects[ModeCursor][gesture.Grab] = ActionKind("teleport")
	cfg.Tables.Thresholds[ModeCursor][gesture.Grab] = Threshold{Frames: 1}

	if _, err := NewSession(cfg, sink.NewMockSink()); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestNewSession_RejectsUnknownMoveLabel(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.MoveLabels = []gesture.Label{gesture.Label("WAVE")}

	if _, err := NewSession(cfg, sink.NewMockSink()); !errors.Is(err, ErrUnknownGesture) {
		t.Errorf("expected ErrUnknownGesture, got %v", err)
	}
}

func TestScrollAmount(t *testing.T) {
	cases := []struct {
		angle float64
		want  int
	}{
		{0, 5},    // straight up, max speed
		{24, 1},   // just inside the up band
		{-24, 1},  // bands are symmetric
		{40, 0},   // neutral band
		{66, -1},  // just inside the down band
		{88, -5},  // near horizontal, max down speed
		{-88, -5}, // symmetric
		{180, -5}, // capped
	}

	for _, tc := range cases {
		if got := scrollAmount(tc.angle); got != tc.want {
			t.Errorf("scrollAmount(%f): expected %d, got %d", tc.angle, tc.want, got)
		}
	}
}
