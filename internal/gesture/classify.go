package gesture

// Label is a frame-local gesture classification.
type Label string

// The closed set of gesture labels, one per recognizable hand shape.
const (
	None        Label = "NONE"
	OKSign      Label = "OK_SIGN"      // thumb+index circle, others extended
	CallMe      Label = "CALL_ME"      // thumb + pinky extended
	LSign       Label = "L_SIGN"       // thumb + index extended, others curled
	Rock        Label = "ROCK"         // index + pinky extended, thumb tucked
	PinchMiddle Label = "PINCH_MIDDLE" // thumb + middle fingertip touching
	Peace       Label = "PEACE"        // index + middle extended (V)
	RingCurl    Label = "RING_CURL"    // only ring finger curled
	MiddleCurl  Label = "MIDDLE_CURL"  // only middle finger curled
	PinkyCurl   Label = "PINKY_CURL"   // only pinky curled
	OpenPalm    Label = "OPEN_PALM"    // all five fingers extended
	IndexUp     Label = "INDEX_UP"     // index extended only (cursor move)
	Grab        Label = "GRAB"         // closed or semi-closed hand
)

// ClassifierConfig holds the geometric thresholds of the gesture predicates.
// Distances are in normalized image units; all comparisons are strict, so a
// thumb-index distance exactly at OKSignMax does not qualify as an OK sign.
type ClassifierConfig struct {
	// OKSignMax is the maximum thumb-index tip distance for the OK sign
	// (default: 0.05).
	OKSignMax float64

	// OKSeparation requires the thumb-middle distance to exceed the
	// thumb-index distance by this factor, so a whole-hand pinch is not
	// read as OK (default: 1.5).
	OKSeparation float64

	// PinchMax is the maximum thumb-middle tip distance for the middle
	// pinch (default: 0.06).
	PinchMax float64

	// ThumbTuckMax is the maximum 2D thumb-tip-to-index-MCP distance for
	// the tucked thumb the rock sign requires (default: 0.08).
	ThumbTuckMax float64

	// RockSpreadMin is the minimum index-pinky tip spread for the rock
	// sign, distinguishing splayed horns from a closing fist
	// (default: 0.10).
	RockSpreadMin float64

	// ThumbReachMin is the minimum thumb-tip-to-wrist distance for the
	// call-me sign, requiring the thumb to actually stick out
	// (default: 0.15).
	ThumbReachMin float64
}

// DefaultClassifierConfig returns the predicate thresholds tuned for
// MediaPipe's normalized hand model.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		OKSignMax:     0.05,
		OKSeparation:  1.5,
		PinchMax:      0.06,
		ThumbTuckMax:  0.08,
		RockSpreadMin: 0.10,
		ThumbReachMin: 0.15,
	}
}

// rule pairs a label with its predicate. Rules are evaluated top to bottom
// and the first match wins.
type rule struct {
	label Label
	match func(s FingerState, f Features) bool
}

// Classifier turns finger states and features into a gesture label using a
// fixed-priority decision list: the most geometrically specific shapes are
// tested first so that, for example, an L-shaped hand is never read as a
// bare INDEX_UP. Stateless and deterministic per frame.
type Classifier struct {
	cfg   ClassifierConfig
	rules []rule
}

// NewClassifier builds a classifier with its rules in priority order.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	c := &Classifier{cfg: cfg}
	c.rules = []rule{
		{OKSign, c.isOKSign},
		{CallMe, c.isCallMe},
		{LSign, c.isLSign},
		{Rock, c.isRock},
		{PinchMiddle, c.isPinchMiddle},
		{Peace, c.isPeace},
		{RingCurl, c.isRingCurl},
		{MiddleCurl, c.isMiddleCurl},
		{PinkyCurl, c.isPinkyCurl},
		{OpenPalm, c.isOpenPalm},
		{IndexUp, c.isIndexUp},
		{Grab, c.isGrab},
	}
	return c
}

// Classify evaluates the rules in order and returns the first matching
// label, or None when nothing matches.
func (c *Classifier) Classify(s FingerState, f Features) Label {
	for _, r := range c.rules {
		if r.match(s, f) {
			return r.label
		}
	}
	return None
}

// Priority returns the labels in evaluation order.
func (c *Classifier) Priority() []Label {
	labels := make([]Label, len(c.rules))
	for i, r := range c.rules {
		labels[i] = r.label
	}
	return labels
}

// isOKSign: thumb and index forming a circle, remaining fingers extended.
// The separation check keeps a full pinch (all tips together) out.
func (c *Classifier) isOKSign(s FingerState, f Features) bool {
	return f.ThumbIndex < c.cfg.OKSignMax &&
		s.Extended[Middle] && s.Extended[Ring] && s.Extended[Pinky] &&
		f.ThumbMiddle > f.ThumbIndex*c.cfg.OKSeparation
}

// isCallMe: thumb and pinky out, middle fingers curled, thumb clear of the
// wrist.
func (c *Classifier) isCallMe(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Pinky] &&
		s.Curled[Index] && s.Curled[Middle] && s.Curled[Ring] &&
		f.ThumbToWrist > c.cfg.ThumbReachMin
}

// isLSign: thumb and index extended, others curled. Checked before Rock and
// IndexUp so the straight outward thumb always wins.
func (c *Classifier) isLSign(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Index] &&
		s.Curled[Middle] && s.Curled[Ring] && s.Curled[Pinky]
}

// isRock: index and pinky extended and splayed, middle and ring curled,
// thumb tucked against the palm.
func (c *Classifier) isRock(s FingerState, f Features) bool {
	return !s.Extended[Thumb] &&
		f.ThumbToIndexMCP < c.cfg.ThumbTuckMax &&
		s.Extended[Index] && s.Extended[Pinky] &&
		s.Curled[Middle] && s.Curled[Ring] &&
		f.IndexPinkySpread > c.cfg.RockSpreadMin
}

// isPinchMiddle: thumb and middle tips together, and closer than thumb and
// index so an OK-shaped hand is not read as a pinch.
func (c *Classifier) isPinchMiddle(s FingerState, f Features) bool {
	return f.ThumbMiddle < c.cfg.PinchMax && f.ThumbIndex > f.ThumbMiddle
}

// isPeace: index and middle extended, ring and pinky curled.
func (c *Classifier) isPeace(s FingerState, f Features) bool {
	return s.Extended[Index] && s.Extended[Middle] &&
		s.Curled[Ring] && s.Curled[Pinky]
}

func (c *Classifier) isRingCurl(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Index] && s.Extended[Middle] &&
		s.Curled[Ring] && s.Extended[Pinky]
}

func (c *Classifier) isMiddleCurl(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Index] && s.Curled[Middle] &&
		s.Extended[Ring] && s.Extended[Pinky]
}

func (c *Classifier) isPinkyCurl(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Index] && s.Extended[Middle] &&
		s.Extended[Ring] && s.Curled[Pinky]
}

func (c *Classifier) isOpenPalm(s FingerState, f Features) bool {
	return s.Extended[Thumb] && s.Extended[Index] && s.Extended[Middle] &&
		s.Extended[Ring] && s.Extended[Pinky]
}

// isIndexUp: index extended, other fingers not. The thumb is deliberately
// ignored so cursor movement is forgiving about thumb posture.
func (c *Classifier) isIndexUp(s FingerState, f Features) bool {
	return s.Extended[Index] &&
		!s.Extended[Middle] && !s.Extended[Ring] && !s.Extended[Pinky]
}

// isGrab: closed or semi-closed hand, three or more fingers curled.
func (c *Classifier) isGrab(s FingerState, f Features) bool {
	return s.CurledCount() >= 3
}
