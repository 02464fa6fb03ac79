// Package control holds the temporal-validation and dispatch engine: the
// stability tracker, the mode state machine, the cooldown gate, and the
// session that runs one frame through all of them.
package control

// Mode is the active control mode. It scopes which effect table dispatch
// consults, and is advanced only by a confirmed OK sign.
type Mode string

const (
	ModeCursor Mode = "CURSOR"
	ModeScroll Mode = "SCROLL"
	ModeWindow Mode = "WINDOW"
	ModeMedia  Mode = "MEDIA"
)

// modeOrder is the cyclic rotation the OK sign walks through.
var modeOrder = []Mode{ModeCursor, ModeScroll, ModeWindow, ModeMedia}

// Modes returns the rotation order.
func Modes() []Mode {
	return modeOrder
}

// Valid reports whether m is one of the four control modes.
func (m Mode) Valid() bool {
	for _, o := range modeOrder {
		if o == m {
			return true
		}
	}
	return false
}

// Next returns the successor mode in the rotation. Unknown modes map to
// ModeCursor; configuration validation keeps them out at startup.
func (m Mode) Next() Mode {
	for i, o := range modeOrder {
		if o == m {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return ModeCursor
}
