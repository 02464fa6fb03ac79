package gesture

import (
	"testing"
	"time"

	"github.com/code-pasu/Wision/internal/tracker"
)

// classify runs a snapshot through extraction and classification with the
// default thresholds.
func classify(t *testing.T, snap *tracker.HandSnapshot) Label {
	t.Helper()
	state, feat, err := Extract(snap, DefaultExtractorConfig())
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	return NewClassifier(DefaultClassifierConfig()).Classify(state, feat)
}

func TestClassify_Poses(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		snap *tracker.HandSnapshot
		want Label
	}{
		{"open palm", tracker.OpenPalmPose(at), OpenPalm},
		{"index up", tracker.IndexUpPose(at), IndexUp},
		{"l sign", tracker.LSignPose(at), LSign},
		{"peace", tracker.PeacePose(at, 0), Peace},
		{"rock", tracker.RockPose(at), Rock},
		{"call me", tracker.CallMePose(at), CallMe},
		{"ok sign", tracker.OKSignPose(at), OKSign},
		{"pinch middle", tracker.PinchMiddlePose(at), PinchMiddle},
		{"fist", tracker.FistPose(at), Grab},
		{"ring curl", tracker.RingCurlPose(at), RingCurl},
		{"middle curl", tracker.MiddleCurlPose(at), MiddleCurl},
		{"pinky curl", tracker.PinkyCurlPose(at), PinkyCurl},
	}

	for _, tc := range cases {
		got := classify(t, tc.snap)
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	snap := tracker.RockPose(at)

	first := classify(t, snap)
	for i := 0; i < 5; i++ {
		if got := classify(t, snap); got != first {
			t.Fatalf("classification changed across identical frames: %s then %s", first, got)
		}
	}
}

// The thumb decides between L_SIGN and INDEX_UP: the same finger pattern with
// the thumb splayed out must never fall through to the lower-priority label.
func TestClassify_LSignBeatsIndexUp(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	if got := classify(t, tracker.LSignPose(at)); got != LSign {
		t.Errorf("thumb out: expected L_SIGN, got %s", got)
	}
	if got := classify(t, tracker.IndexUpPose(at)); got != IndexUp {
		t.Errorf("thumb tucked: expected INDEX_UP, got %s", got)
	}
}

// OK_SIGN requires the separation margin: when all fingertips bunch together
// the thumb-middle distance no longer exceeds thumb-index by the required
// factor, and the shape must not be read as OK.
func TestClassify_OKSignSeparation(t *testing.T) {
	s := FingerState{}
	s.Extended[Middle] = true
	s.Extended[Ring] = true
	s.Extended[Pinky] = true

	c := NewClassifier(DefaultClassifierConfig())

	// Clear separation: OK sign
	f := Features{ThumbIndex: 0.03, ThumbMiddle: 0.20}
	if got := c.Classify(s, f); got != OKSign {
		t.Errorf("separated: expected OK_SIGN, got %s", got)
	}

	// Whole-hand pinch: thumb-middle barely larger than thumb-index
	f = Features{ThumbIndex: 0.03, ThumbMiddle: 0.04}
	if got := c.Classify(s, f); got == OKSign {
		t.Error("bunched fingertips must not classify as OK_SIGN")
	}
}

// ROCK requires the fingertip spread; a narrow index+pinky shape falls
// through to lower-priority rules.
func TestClassify_RockRequiresSpread(t *testing.T) {
	s := FingerState{}
	s.Extended[Index] = true
	s.Extended[Pinky] = true
	s.Curled[Middle] = true
	s.Curled[Ring] = true

	c := NewClassifier(DefaultClassifierConfig())

	f := Features{ThumbToIndexMCP: 0.03, IndexPinkySpread: 0.15, ThumbIndex: 0.2, ThumbMiddle: 0.2}
	if got := c.Classify(s, f); got != Rock {
		t.Errorf("splayed horns: expected ROCK, got %s", got)
	}

	// Same finger pattern, fingers nearly parallel
	f.IndexPinkySpread = 0.05
	if got := c.Classify(s, f); got == Rock {
		t.Error("narrow index+pinky must not classify as ROCK")
	}
}

// Threshold comparisons are strict: a distance exactly at the limit does not
// qualify.
func TestClassify_StrictBoundaries(t *testing.T) {
	cfg := DefaultClassifierConfig()
	c := NewClassifier(cfg)

	s := FingerState{}
	s.Extended[Middle] = true
	s.Extended[Ring] = true
	s.Extended[Pinky] = true

	// Thumb-index exactly at OKSignMax: not an OK sign
	f := Features{ThumbIndex: cfg.OKSignMax, ThumbMiddle: 1.0}
	if got := c.Classify(s, f); got == OKSign {
		t.Error("thumb-index distance exactly at the limit must not classify as OK_SIGN")
	}

	// Just inside: OK sign
	f.ThumbIndex = cfg.OKSignMax - 1e-9
	if got := c.Classify(s, f); got != OKSign {
		t.Errorf("thumb-index just under the limit: expected OK_SIGN, got %s", got)
	}

	// Thumb-middle exactly at PinchMax: not a pinch
	f = Features{ThumbMiddle: cfg.PinchMax, ThumbIndex: 1.0}
	if got := c.Classify(FingerState{}, f); got == PinchMiddle {
		t.Error("thumb-middle distance exactly at the limit must not classify as PINCH_MIDDLE")
	}
}

// PINCH_MIDDLE requires the middle pinch to be tighter than any thumb-index
// proximity, so an OK-shaped hand never reads as a pinch.
func TestClassify_PinchVersusOK(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())

	// Thumb closer to index than to middle: not a middle pinch
	f := Features{ThumbIndex: 0.02, ThumbMiddle: 0.05}
	if got := c.Classify(FingerState{}, f); got == PinchMiddle {
		t.Error("thumb closer to index must not classify as PINCH_MIDDLE")
	}

	// Thumb clearly on the middle tip
	f = Features{ThumbIndex: 0.12, ThumbMiddle: 0.03}
	if got := c.Classify(FingerState{}, f); got != PinchMiddle {
		t.Errorf("expected PINCH_MIDDLE, got %s", got)
	}
}

func TestClassify_NoMatchIsNone(t *testing.T) {
	// Two fingers curled, rest neither extended nor curled: matches nothing
	s := FingerState{}
	s.Curled[Index] = true
	s.Curled[Middle] = true

	c := NewClassifier(DefaultClassifierConfig())
	if got := c.Classify(s, Features{ThumbIndex: 1, ThumbMiddle: 1}); got != None {
		t.Errorf("expected NONE, got %s", got)
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	want := []Label{
		OKSign, CallMe, LSign, Rock, PinchMiddle, Peace,
		RingCurl, MiddleCurl, PinkyCurl, OpenPalm, IndexUp, Grab,
	}

	got := NewClassifier(DefaultClassifierConfig()).Priority()
	if len(got) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestKnown(t *testing.T) {
	for _, l := range All {
		if !Known(l) {
			t.Errorf("expected %s to be known", l)
		}
	}
	if Known(Label("WAVE")) {
		t.Error("expected unlisted label to be unknown")
	}
}
