package tracker

import "errors"

// ErrNoHand is returned by Next when the frame was processed successfully but
// no hand is visible. Callers treat it as a signal, not a failure.
var ErrNoHand = errors.New("no hand detected")

// Tracker is the upstream collaborator interface: it owns video capture and
// landmark inference and hands the engine one HandSnapshot per frame.
type Tracker interface {
	// Next blocks until the next frame has been processed and returns its
	// snapshot, or ErrNoHand if the frame contained no hand.
	Next() (*HandSnapshot, error)

	// Close releases capture and inference resources.
	Close() error
}

// Config holds tracking options passed through to the landmark detector.
type Config struct {
	// CameraID selects the video capture device (default: 0).
	CameraID int

	// MaxHands is the maximum number of hands to track (default: 1).
	MaxHands int

	// MinDetectionConf is the minimum confidence for initial hand
	// detection, 0.0-1.0 (default: 0.7).
	MinDetectionConf float64

	// MinTrackingConf is the minimum confidence for landmark tracking
	// across frames, 0.0-1.0 (default: 0.7).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		CameraID:         0,
		MaxHands:         1,
		MinDetectionConf: 0.7,
		MinTrackingConf:  0.7,
	}
}
