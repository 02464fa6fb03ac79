package cursor

import (
	"math"
	"testing"
)

func newTestSmoother() *Smoother {
	return NewSmoother(DefaultConfig(), 1920, 1080)
}

func TestSmoother_FirstSamplePassesThrough(t *testing.T) {
	s := newTestSmoother()

	x, y := s.Smooth(960, 540, sampleAt(0))
	if x != 960 || y != 540 {
		t.Errorf("expected first sample unchanged, got (%f, %f)", x, y)
	}
}

// Constant input converges to within the deadzone and then the output holds
// perfectly still.
func TestSmoother_ConstantInputSettles(t *testing.T) {
	s := newTestSmoother()

	s.Smooth(900, 500, sampleAt(0))

	var x, y float64
	for i := 1; i < 200; i++ {
		x, y = s.Smooth(960, 540, sampleAt(i))
	}

	if math.Abs(x-960) > DefaultConfig().DeadzonePx || math.Abs(y-540) > DefaultConfig().DeadzonePx {
		t.Fatalf("expected settling near (960, 540), got (%f, %f)", x, y)
	}

	// Once settled, the same input must not move the output at all
	for i := 200; i < 210; i++ {
		nx, ny := s.Smooth(960, 540, sampleAt(i))
		if nx != x || ny != y {
			t.Fatalf("tick %d: settled output moved from (%f, %f) to (%f, %f)", i, x, y, nx, ny)
		}
	}
}

func TestSmoother_DeadzoneHoldsSmallMovement(t *testing.T) {
	s := newTestSmoother()

	x0, y0 := s.Smooth(960, 540, sampleAt(0))

	// A sub-deadzone wiggle must not move the output
	x1, y1 := s.Smooth(960.5, 540.5, sampleAt(1))
	if x1 != x0 || y1 != y0 {
		t.Errorf("expected deadzone hold, moved from (%f, %f) to (%f, %f)", x0, y0, x1, y1)
	}
}

func TestSmoother_DeadzoneIsPerAxis(t *testing.T) {
	s := newTestSmoother()

	x0, y0 := s.Smooth(960, 540, sampleAt(0))

	// Large x jump, tiny y wiggle: x moves, y holds
	x1, y1 := s.Smooth(1400, 540.5, sampleAt(1))
	if x1 == x0 {
		t.Error("expected x to move on a large jump")
	}
	if y1 != y0 {
		t.Errorf("expected y to hold inside the deadzone, got %f", y1)
	}
}

func TestSmoother_EdgeDampsMovement(t *testing.T) {
	cfg := DefaultConfig()

	// Same jump executed in the screen center and in the edge band
	center := NewSmoother(cfg, 1920, 1080)
	center.Smooth(900, 540, sampleAt(0))
	cx, _ := center.Smooth(1000, 540, sampleAt(1))
	centerStep := cx - 900

	edge := NewSmoother(cfg, 1920, 1080)
	edge.Smooth(50, 540, sampleAt(0))
	ex, _ := edge.Smooth(150, 540, sampleAt(1))
	edgeStep := ex - 50

	if edgeStep >= centerStep {
		t.Errorf("expected damped movement near the edge: center step %f, edge step %f", centerStep, edgeStep)
	}
	if edgeStep <= 0 {
		t.Errorf("expected the edge band to damp, not freeze, got step %f", edgeStep)
	}
}

func TestSmoother_ResetStartsFreshTrack(t *testing.T) {
	s := newTestSmoother()

	// Sweep quickly to build up filter velocity
	for i := 0; i < 20; i++ {
		s.Smooth(float64(i*90), 540, sampleAt(i))
	}

	s.Reset()

	// The first sample after reset passes through with no spike from the
	// stale state
	x, y := s.Smooth(100, 100, sampleAt(40))
	if x != 100 || y != 100 {
		t.Errorf("expected passthrough after reset, got (%f, %f)", x, y)
	}
}
