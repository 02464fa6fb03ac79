// Package sink defines the narrow interface to the action collaborator that
// actually injects input events, and a helper-process implementation of it.
// Platform-specific injection mechanics live behind the helper, not here.
package sink

// Button identifies a pointer button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// Sink receives the engine's output actions. Implementations must tolerate
// being called once per frame for continuous actions (pointer movement,
// scrolling); discrete actions arrive no faster than their configured
// cooldowns allow.
type Sink interface {
	// PointerMove moves the pointer to absolute screen coordinates.
	PointerMove(x, y int) error

	// PointerClick presses the given button count times (2 = double
	// click) at the current pointer position.
	PointerClick(button Button, count int) error

	// Scroll scrolls by the given magnitude; positive is up.
	Scroll(amount int) error

	// KeyCombo sends a symbolic key or chord, e.g. "playpause" or
	// "printscreen".
	KeyCombo(name string) error

	// WindowOp performs a symbolic window operation, e.g. "maximize",
	// "close", "switch", "show_desktop".
	WindowOp(name string) error
}
