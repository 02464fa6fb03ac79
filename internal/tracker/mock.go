package tracker

import (
	"math"
	"sync"
	"time"
)

// MockTracker is a test implementation of the Tracker interface. Tests queue
// snapshots (or no-hand frames) and the pipeline consumes them in order.
type MockTracker struct {
	mu    sync.Mutex
	queue []mockFrame
	err   error
}

type mockFrame struct {
	snap   *HandSnapshot
	noHand bool
}

// NewMockTracker creates an empty MockTracker. With nothing queued, Next
// reports ErrNoHand.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// Enqueue adds a snapshot frame to the queue.
func (m *MockTracker) Enqueue(snap *HandSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockFrame{snap: snap})
}

// EnqueueNoHand adds a frame on which no hand is visible.
func (m *MockTracker) EnqueueNoHand() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockFrame{noHand: true})
}

// SetError makes every subsequent Next call fail with err.
func (m *MockTracker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Next pops the oldest queued frame. An empty queue behaves like an idle
// camera pointed at nothing.
func (m *MockTracker) Next() (*HandSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) == 0 {
		return nil, ErrNoHand
	}
	frame := m.queue[0]
	m.queue = m.queue[1:]
	if frame.noHand {
		return nil, ErrNoHand
	}
	return frame.snap, nil
}

// Close is a no-op for the mock tracker.
func (m *MockTracker) Close() error {
	return nil
}

// Pose fixture geometry. The builders below construct snapshots that satisfy
// the finger-state extractor's angle and distance tests: extended fingers are
// straight columns of joints, curled fingers fold back toward the palm, and
// the thumb is either splayed away from the index MCP or tucked against it.
const (
	poseWristX = 0.50
	poseWristY = 0.82
	poseMCPY   = 0.62
)

var poseFingerX = map[int]float64{
	IndexMCP:  0.56,
	MiddleMCP: 0.52,
	RingMCP:   0.48,
	PinkyMCP:  0.44,
}

func basePose(at time.Time) *HandSnapshot {
	snap := &HandSnapshot{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
		Timestamp:  at,
	}
	snap.Points[Wrist] = Point3D{X: poseWristX, Y: poseWristY}
	return snap
}

// straightFinger lays the finger's joints in a straight line from the MCP
// along the given tilt (degrees from vertical, positive leaning right).
func straightFinger(snap *HandSnapshot, mcp int, tiltDeg float64) {
	x := poseFingerX[mcp]
	rad := tiltDeg * math.Pi / 180.0
	dx, dy := math.Sin(rad), -math.Cos(rad)

	snap.Points[mcp] = Point3D{X: x, Y: poseMCPY}
	for i, d := range []float64{0.08, 0.14, 0.19} {
		snap.Points[mcp+1+i] = Point3D{X: x + d*dx, Y: poseMCPY + d*dy}
	}
}

// curledFinger folds the finger back toward the palm: sharp bend at the PIP,
// tip below the MCP line.
func curledFinger(snap *HandSnapshot, mcp int) {
	x := poseFingerX[mcp]
	snap.Points[mcp] = Point3D{X: x, Y: poseMCPY}
	snap.Points[mcp+1] = Point3D{X: x, Y: poseMCPY - 0.06}
	snap.Points[mcp+2] = Point3D{X: x + 0.03, Y: poseMCPY}
	snap.Points[mcp+3] = Point3D{X: x + 0.04, Y: poseMCPY + 0.04}
}

// splayedThumb extends the thumb diagonally, well clear of the index MCP.
func splayedThumb(snap *HandSnapshot) {
	snap.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	snap.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.71}
	snap.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.66}
	snap.Points[ThumbTip] = Point3D{X: 0.72, Y: 0.61}
}

// tuckedThumb bends the thumb in against the palm next to the index MCP.
func tuckedThumb(snap *HandSnapshot) {
	snap.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	snap.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.72}
	snap.Points[ThumbIP] = Point3D{X: 0.59, Y: 0.67}
	snap.Points[ThumbTip] = Point3D{X: 0.575, Y: 0.635}
}

// OpenPalmPose returns a snapshot with all five fingers extended.
func OpenPalmPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	straightFinger(snap, MiddleMCP, 0)
	straightFinger(snap, RingMCP, 0)
	straightFinger(snap, PinkyMCP, 0)
	return snap
}

// IndexUpPose returns a pointing hand: index extended, everything else in.
func IndexUpPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	tuckedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	curledFinger(snap, MiddleMCP)
	curledFinger(snap, RingMCP)
	curledFinger(snap, PinkyMCP)
	return snap
}

// LSignPose returns an L shape: thumb and index extended, others curled.
func LSignPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	curledFinger(snap, MiddleMCP)
	curledFinger(snap, RingMCP)
	curledFinger(snap, PinkyMCP)
	return snap
}

// PeacePose returns a V sign tilted the given degrees from vertical
// (0 = pointing straight up, positive = leaning right).
func PeacePose(at time.Time, tiltDeg float64) *HandSnapshot {
	snap := basePose(at)
	tuckedThumb(snap)
	straightFinger(snap, IndexMCP, tiltDeg)
	straightFinger(snap, MiddleMCP, tiltDeg)
	curledFinger(snap, RingMCP)
	curledFinger(snap, PinkyMCP)
	return snap
}

// RockPose returns the horns: index and pinky extended and splayed, middle
// and ring curled, thumb tucked.
func RockPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	tuckedThumb(snap)
	straightFinger(snap, IndexMCP, 8)
	curledFinger(snap, MiddleMCP)
	curledFinger(snap, RingMCP)
	straightFinger(snap, PinkyMCP, -8)
	return snap
}

// CallMePose returns the shaka: thumb and pinky extended, others curled.
func CallMePose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	curledFinger(snap, IndexMCP)
	curledFinger(snap, MiddleMCP)
	curledFinger(snap, RingMCP)
	straightFinger(snap, PinkyMCP, -10)
	return snap
}

// OKSignPose returns an OK sign: thumb and index tips touching in a circle,
// the remaining three fingers extended.
func OKSignPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	straightFinger(snap, MiddleMCP, 0)
	straightFinger(snap, RingMCP, 0)
	straightFinger(snap, PinkyMCP, 0)

	// Index curls toward the thumb
	snap.Points[IndexMCP] = Point3D{X: 0.56, Y: poseMCPY}
	snap.Points[IndexPIP] = Point3D{X: 0.585, Y: 0.56}
	snap.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.60}
	snap.Points[IndexTip] = Point3D{X: 0.605, Y: 0.635}

	// Thumb meets the index tip
	snap.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	snap.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.71}
	snap.Points[ThumbIP] = Point3D{X: 0.61, Y: 0.67}
	snap.Points[ThumbTip] = Point3D{X: 0.615, Y: 0.645}
	return snap
}

// PinchMiddlePose returns a pinch between thumb and middle fingertip with
// index, ring, and pinky extended.
func PinchMiddlePose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	straightFinger(snap, IndexMCP, 0)
	straightFinger(snap, RingMCP, 0)
	straightFinger(snap, PinkyMCP, 0)

	// Middle curls toward the thumb
	snap.Points[MiddleMCP] = Point3D{X: 0.52, Y: poseMCPY}
	snap.Points[MiddlePIP] = Point3D{X: 0.545, Y: 0.56}
	snap.Points[MiddleDIP] = Point3D{X: 0.555, Y: 0.59}
	snap.Points[MiddleTip] = Point3D{X: 0.555, Y: 0.615}

	// Thumb meets the middle tip
	snap.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	snap.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.71}
	snap.Points[ThumbIP] = Point3D{X: 0.585, Y: 0.665}
	snap.Points[ThumbTip] = Point3D{X: 0.565, Y: 0.625}
	return snap
}

// FistPose returns a closed hand: all four fingers curled, thumb tucked.
func FistPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	tuckedThumb(snap)
	curledFinger(snap, IndexMCP)
	curledFinger(snap, MiddleMCP)
	curledFinger(snap, RingMCP)
	curledFinger(snap, PinkyMCP)
	return snap
}

// RingCurlPose returns an open hand with only the ring finger curled.
func RingCurlPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	straightFinger(snap, MiddleMCP, 0)
	curledFinger(snap, RingMCP)
	straightFinger(snap, PinkyMCP, 0)
	return snap
}

// MiddleCurlPose returns an open hand with only the middle finger curled.
func MiddleCurlPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	curledFinger(snap, MiddleMCP)
	straightFinger(snap, RingMCP, 0)
	straightFinger(snap, PinkyMCP, 0)
	return snap
}

// PinkyCurlPose returns an open hand with only the pinky curled.
func PinkyCurlPose(at time.Time) *HandSnapshot {
	snap := basePose(at)
	splayedThumb(snap)
	straightFinger(snap, IndexMCP, 0)
	straightFinger(snap, MiddleMCP, 0)
	straightFinger(snap, RingMCP, 0)
	curledFinger(snap, PinkyMCP)
	return snap
}
