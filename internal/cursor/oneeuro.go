// Package cursor turns raw fingertip positions into a smoothed screen-space
// pointer target: a One Euro filter per axis, a pixel deadzone, and
// progressive damping near the screen edges.
package cursor

import (
	"math"
	"time"
)

// defaultFreq is assumed until two samples establish a real interval.
const defaultFreq = 60.0

// OneEuro is a speed-adaptive low-pass filter for one axis. The cutoff rises
// with the estimated derivative (cutoff = mincutoff + beta*|dx|), so fast
// motion tracks with little lag while slow motion is smoothed hard.
// Reference: https://cristal.univ-lille.fr/~casiez/1euro/
type OneEuro struct {
	mincutoff float64
	beta      float64
	dcutoff   float64

	freq   float64
	xPrev  float64
	dxPrev float64
	tPrev  time.Time
	primed bool
}

// NewOneEuro creates a filter with the given base cutoff, speed coefficient,
// and derivative cutoff.
func NewOneEuro(mincutoff, beta, dcutoff float64) *OneEuro {
	return &OneEuro{
		mincutoff: mincutoff,
		beta:      beta,
		dcutoff:   dcutoff,
		freq:      defaultFreq,
	}
}

// Filter feeds one sample and returns the filtered value. The first sample
// after construction or Reset passes through unchanged and primes the
// derivative estimate at zero, so a gap in tracking cannot manufacture a
// velocity spike.
func (f *OneEuro) Filter(x float64, t time.Time) float64 {
	if !f.primed {
		f.primed = true
		f.xPrev = x
		f.dxPrev = 0
		f.tPrev = t
		return x
	}

	if dt := t.Sub(f.tPrev).Seconds(); dt > 0 {
		f.freq = 1.0 / dt
	}
	f.tPrev = t

	// Low-pass the raw derivative, then derive the adaptive cutoff from it.
	ad := alpha(f.dcutoff, f.freq)
	dx := (x - f.xPrev) * f.freq
	dxHat := ad*dx + (1-ad)*f.dxPrev
	f.dxPrev = dxHat

	cutoff := f.mincutoff + f.beta*math.Abs(dxHat)
	a := alpha(cutoff, f.freq)

	xHat := a*x + (1-a)*f.xPrev
	f.xPrev = xHat
	return xHat
}

// Reset discards all filter state. Call when the hand is lost so the next
// sample starts a fresh track.
func (f *OneEuro) Reset() {
	f.primed = false
	f.xPrev = 0
	f.dxPrev = 0
	f.freq = defaultFreq
}

// alpha converts a cutoff frequency into an exponential smoothing factor at
// the given sampling frequency.
func alpha(cutoff, freq float64) float64 {
	tau := 1.0 / (2.0 * math.Pi * cutoff)
	te := 1.0 / freq
	return 1.0 / (1.0 + tau/te)
}
