// Package tracker provides hand tracking interfaces and landmark types for the
// Wision gesture control engine.
package tracker

import (
	"math"
	"time"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in normalized image coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandSnapshot is one frame's worth of hand pose: the 21 landmarks reported
// by the tracking collaborator, the handedness tag, and the capture timestamp.
// Snapshots are immutable once produced; downstream stages never retain them
// past the frame they arrived in.
type HandSnapshot struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
	Timestamp  time.Time `json:"timestamp"`
}

// Complete reports whether the snapshot carries all 21 landmarks.
func (h *HandSnapshot) Complete() bool {
	return h != nil && len(h.Points) == NumLandmarks
}

// Distance returns the Euclidean distance between two landmarks in 3D.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance2D returns the distance between two landmarks in the image plane,
// ignoring depth. Depth from the tracker is noisy near the palm, so the
// thumb-tuck test uses the 2D distance.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the angle in degrees at vertex b formed by the segments b-a
// and b-c. Degenerate segments yield 180 (treated as straight).
func Angle(a, b, c Point3D) float64 {
	v1 := Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
	v2 := Point3D{X: c.X - b.X, Y: c.Y - b.Y, Z: c.Z - b.Z}

	n1 := math.Sqrt(v1.X*v1.X + v1.Y*v1.Y + v1.Z*v1.Z)
	n2 := math.Sqrt(v2.X*v2.X + v2.Y*v2.Y + v2.Z*v2.Z)
	if n1 == 0 || n2 == 0 {
		return 180.0
	}

	cos := (v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z) / (n1 * n2)
	cos = math.Max(-1.0, math.Min(1.0, cos))
	return math.Acos(cos) * 180.0 / math.Pi
}
