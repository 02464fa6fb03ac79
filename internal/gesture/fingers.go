// Package gesture derives finger states from hand snapshots and classifies
// them into a closed set of gesture labels.
package gesture

import (
	"errors"
	"math"

	"github.com/code-pasu/Wision/internal/tracker"
)

// ErrInvalidSnapshot is returned when a snapshot is missing landmarks or is
// geometrically degenerate. The frame is skipped and treated as no gesture.
var ErrInvalidSnapshot = errors.New("invalid hand snapshot")

// ExtractorConfig holds the angle and distance thresholds used to classify
// each finger as extended or curled. All angle comparisons are strict:
// a PIP angle exactly at ExtendedAngle does not count as extended.
type ExtractorConfig struct {
	// ExtendedAngle is the joint angle in degrees above which a finger
	// joint counts as straight (default: 140). A finger is extended when
	// both its PIP and DIP angles are strictly greater.
	ExtendedAngle float64

	// CurlAngle is the PIP angle in degrees below which a finger counts
	// as curled (default: 150, strictly less).
	CurlAngle float64

	// ThumbAngle is the minimum interphalangeal angle in degrees for an
	// extended thumb (default: 140, strictly greater).
	ThumbAngle float64

	// ThumbAwayMin is the minimum 2D distance between the thumb tip and
	// the index MCP for an extended thumb (default: 0.08, strictly
	// greater). Keeps a straight but palm-hugging thumb from counting.
	ThumbAwayMin float64
}

// DefaultExtractorConfig returns the extractor thresholds tuned for
// MediaPipe's normalized hand model.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ExtendedAngle: 140,
		CurlAngle:     150,
		ThumbAngle:    140,
		ThumbAwayMin:  0.08,
	}
}

// Finger indexes into the per-finger arrays of FingerState.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	numFingers
)

// FingerState holds the extended/curled classification for all five fingers
// along with the joint angles the classification was derived from. Derived
// fresh for every frame, never persisted.
type FingerState struct {
	Extended [numFingers]bool

	// Curled is meaningful for Index..Pinky; the thumb has no PIP-based
	// curl test.
	Curled [numFingers]bool

	// PIPAngle and DIPAngle are in degrees for Index..Pinky. For the
	// thumb, PIPAngle carries the interphalangeal angle.
	PIPAngle [numFingers]float64
	DIPAngle [numFingers]float64
}

// CurledCount returns how many of the four non-thumb fingers are curled.
func (s FingerState) CurledCount() int {
	n := 0
	for f := Index; f <= Pinky; f++ {
		if s.Curled[f] {
			n++
		}
	}
	return n
}

// Features carries the raw distances and angles the classifier consumes in
// addition to finger states. Distances are in normalized image units.
type Features struct {
	ThumbIndex  float64 // thumb tip to index tip, 3D
	ThumbMiddle float64 // thumb tip to middle tip, 3D
	ThumbRing   float64 // thumb tip to ring tip, 3D
	ThumbPinky  float64 // thumb tip to pinky tip, 3D

	ThumbToIndexMCP float64 // thumb tip to index MCP, 2D (thumb tuck test)
	ThumbToWrist    float64 // thumb tip to wrist, 3D

	IndexPinkySpread float64 // index tip to pinky tip, 3D

	// PeaceAngle is the tilt of the index+middle pair in degrees from
	// vertical: 0 pointing straight up, positive leaning right.
	PeaceAngle float64
}

// fingerJoints maps each non-thumb finger to its MCP landmark index; the
// PIP/DIP/TIP follow consecutively.
var fingerJoints = map[Finger]int{
	Index:  tracker.IndexMCP,
	Middle: tracker.MiddleMCP,
	Ring:   tracker.RingMCP,
	Pinky:  tracker.PinkyMCP,
}

// Extract computes finger states and geometric features from one snapshot.
// It is a pure function of the snapshot; malformed input (missing landmarks,
// zero-size hand) yields ErrInvalidSnapshot.
func Extract(snap *tracker.HandSnapshot, cfg ExtractorConfig) (FingerState, Features, error) {
	var state FingerState
	var feat Features

	if !snap.Complete() {
		return state, feat, ErrInvalidSnapshot
	}
	pts := snap.Points
	if tracker.Distance(pts[tracker.Wrist], pts[tracker.MiddleMCP]) < 1e-9 {
		return state, feat, ErrInvalidSnapshot
	}

	for f, mcp := range fingerJoints {
		pipAngle := tracker.Angle(pts[mcp], pts[mcp+1], pts[mcp+2])
		dipAngle := tracker.Angle(pts[mcp+1], pts[mcp+2], pts[mcp+3])
		state.PIPAngle[f] = pipAngle
		state.DIPAngle[f] = dipAngle
		state.Extended[f] = pipAngle > cfg.ExtendedAngle && dipAngle > cfg.ExtendedAngle
		state.Curled[f] = pipAngle < cfg.CurlAngle
	}

	thumbAngle := tracker.Angle(pts[tracker.ThumbMCP], pts[tracker.ThumbIP], pts[tracker.ThumbTip])
	state.PIPAngle[Thumb] = thumbAngle

	thumbTip := pts[tracker.ThumbTip]
	feat.ThumbToIndexMCP = tracker.Distance2D(thumbTip, pts[tracker.IndexMCP])
	state.Extended[Thumb] = thumbAngle > cfg.ThumbAngle && feat.ThumbToIndexMCP > cfg.ThumbAwayMin

	feat.ThumbIndex = tracker.Distance(thumbTip, pts[tracker.IndexTip])
	feat.ThumbMiddle = tracker.Distance(thumbTip, pts[tracker.MiddleTip])
	feat.ThumbRing = tracker.Distance(thumbTip, pts[tracker.RingTip])
	feat.ThumbPinky = tracker.Distance(thumbTip, pts[tracker.PinkyTip])
	feat.ThumbToWrist = tracker.Distance(thumbTip, pts[tracker.Wrist])
	feat.IndexPinkySpread = tracker.Distance(pts[tracker.IndexTip], pts[tracker.PinkyTip])
	feat.PeaceAngle = peaceAngle(pts)

	return state, feat, nil
}

// peaceAngle measures the tilt of the index+middle pair: the direction from
// the midpoint of their MCPs to the midpoint of their tips, in degrees from
// vertical. Image y grows downward, so pointing up is 0.
func peaceAngle(pts []tracker.Point3D) float64 {
	tipMidX := (pts[tracker.IndexTip].X + pts[tracker.MiddleTip].X) / 2
	tipMidY := (pts[tracker.IndexTip].Y + pts[tracker.MiddleTip].Y) / 2
	mcpMidX := (pts[tracker.IndexMCP].X + pts[tracker.MiddleMCP].X) / 2
	mcpMidY := (pts[tracker.IndexMCP].Y + pts[tracker.MiddleMCP].Y) / 2

	dx := tipMidX - mcpMidX
	dy := tipMidY - mcpMidY
	return math.Atan2(dx, -dy) * 180.0 / math.Pi
}
