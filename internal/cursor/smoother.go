package cursor

import (
	"math"
	"time"
)

// Config holds the smoothing parameters. All have documented defaults; see
// DefaultConfig.
type Config struct {
	// MinCutoff is the One Euro base cutoff in Hz. Lower values smooth
	// more at rest (default: 0.8).
	MinCutoff float64

	// Beta is the One Euro speed coefficient. Higher values reduce lag
	// during fast motion (default: 0.4).
	Beta float64

	// DCutoff is the cutoff for the derivative estimate (default: 1.0).
	DCutoff float64

	// DeadzonePx holds the emitted position still when the filtered
	// position moved less than this many pixels per axis (default: 2).
	DeadzonePx float64

	// EdgeMargin is the fraction of each screen dimension that counts as
	// the edge band (default: 0.15).
	EdgeMargin float64

	// EdgeFactor is the movement scale applied right at the screen edge;
	// it ramps linearly back to 1.0 at the inner margin boundary
	// (default: 0.6).
	EdgeFactor float64
}

// DefaultConfig returns smoothing parameters tuned for webcam-rate hand
// tracking.
func DefaultConfig() Config {
	return Config{
		MinCutoff:  0.8,
		Beta:       0.4,
		DCutoff:    1.0,
		DeadzonePx: 2.0,
		EdgeMargin: 0.15,
		EdgeFactor: 0.6,
	}
}

// Smoother combines per-axis One Euro filters with a deadzone and edge
// damping, producing the final screen-space pointer target. It owns the
// per-axis FilterState (previous value, derivative, timestamp) and must be
// Reset when the hand is lost and re-acquired.
type Smoother struct {
	cfg    Config
	fx     *OneEuro
	fy     *OneEuro
	width  float64
	height float64

	prevX  float64
	prevY  float64
	primed bool
}

// NewSmoother creates a smoother for the given screen dimensions in pixels.
func NewSmoother(cfg Config, width, height int) *Smoother {
	return &Smoother{
		cfg:    cfg,
		fx:     NewOneEuro(cfg.MinCutoff, cfg.Beta, cfg.DCutoff),
		fy:     NewOneEuro(cfg.MinCutoff, cfg.Beta, cfg.DCutoff),
		width:  float64(width),
		height: float64(height),
	}
}

// Smooth feeds one raw screen-space sample and returns the position the
// pointer should move to. Stages, in order: adaptive low-pass per axis,
// per-axis deadzone (sub-threshold movement holds the previous output), and
// edge damping (movement scaled down progressively inside the margin band).
func (s *Smoother) Smooth(x, y float64, t time.Time) (float64, float64) {
	fx := s.fx.Filter(x, t)
	fy := s.fy.Filter(y, t)

	if s.primed {
		if math.Abs(fx-s.prevX) < s.cfg.DeadzonePx {
			fx = s.prevX
		}
		if math.Abs(fy-s.prevY) < s.cfg.DeadzonePx {
			fy = s.prevY
		}

		if factor := s.edgeFactor(fx, fy); factor < 1.0 {
			fx = s.prevX + (fx-s.prevX)*factor
			fy = s.prevY + (fy-s.prevY)*factor
		}
	}

	s.prevX, s.prevY = fx, fy
	s.primed = true
	return fx, fy
}

// Reset discards all filter and position state. The next sample passes
// through unfiltered.
func (s *Smoother) Reset() {
	s.fx.Reset()
	s.fy.Reset()
	s.primed = false
	s.prevX = 0
	s.prevY = 0
}

// edgeFactor returns the movement scale for a position: 1.0 in the screen
// interior, ramping down to EdgeFactor at the boundary.
func (s *Smoother) edgeFactor(x, y float64) float64 {
	if s.width <= 0 || s.height <= 0 || s.cfg.EdgeMargin <= 0 {
		return 1.0
	}

	nx := x / s.width
	ny := y / s.height
	dist := math.Min(
		math.Min(nx, 1-nx),
		math.Min(ny, 1-ny),
	)
	if dist >= s.cfg.EdgeMargin {
		return 1.0
	}
	if dist < 0 {
		dist = 0
	}
	ramp := dist / s.cfg.EdgeMargin // 0 at the edge, 1 at the margin
	return s.cfg.EdgeFactor + (1-s.cfg.EdgeFactor)*ramp
}
