// Package app wires the Wision pipeline together: the tracker collaborator,
// the control session, the activity log, and the frame loop that drives them.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/code-pasu/Wision/internal/control"
	"github.com/code-pasu/Wision/internal/store"
	"github.com/code-pasu/Wision/internal/tracker"
)

// Frame loop timing constants.
const (
	// IdleFPS is the frame rate while no hand is visible.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a hand is being tracked.
	ActiveFPS = 15
	// IdleTimeout is how long the hand must stay gone before the loop
	// drops back to the idle rate.
	IdleTimeout = 2 * time.Second
)

// Config holds the collaborators the app orchestrates. Store is optional;
// without it no activity log is written.
type Config struct {
	Tracker tracker.Tracker
	Session *control.Session
	Store   *store.Store
}

// State is a snapshot of the engine for the tray and the status server.
type State struct {
	Mode    string
	Gesture string
	Enabled bool
	Hand    bool
}

// App runs the frame loop and owns the enabled flag shared with the tray
// and server. All engine state lives in the session and is touched only
// from the loop goroutine; App's own fields are the only ones guarded by
// the mutex.
type App struct {
	config Config

	mu      sync.RWMutex
	enabled bool
	stopCh  chan struct{}
	last    State
	onState func(State)
}

// New creates an App around the given collaborators. Detection starts
// disabled; the tray or the host enables it.
func New(config Config) *App {
	return &App{
		config: config,
		last:   State{Mode: string(config.Session.Mode())},
	}
}

// SetEnabled enables or disables gesture detection. While disabled, frames
// are read but not processed.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.last.Enabled = enabled
	state := a.last
	cb := a.onState
	a.mu.Unlock()

	if cb != nil {
		cb(state)
	}
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnStateChange registers a callback invoked whenever the engine state
// (mode, gesture, enabled) changes. Used by the tray.
func (a *App) OnStateChange(cb func(State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onState = cb
}

// ControlState reports the current mode, frame-local gesture, and enabled
// flag for the status server.
func (a *App) ControlState() (mode, gesture string, enabled bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last.Mode, a.last.Gesture, a.last.Enabled
}

// Start begins the frame loop. Safe to call once; subsequent calls are
// no-ops until Stop.
func (a *App) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return
	}
	a.stopCh = make(chan struct{})
	go a.runLoop(a.stopCh)

	log.Println("Frame loop started")
}

// Stop halts the frame loop and closes the tracker. The loop terminates
// between frames; no frame is left half-processed.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.config.Tracker != nil {
		if err := a.config.Tracker.Close(); err != nil {
			log.Printf("Error closing tracker: %v", err)
		}
	}

	log.Println("Frame loop stopped")
}

func (a *App) publish(state State) {
	a.mu.Lock()
	changed := state != a.last
	a.last = state
	cb := a.onState
	a.mu.Unlock()

	if changed && cb != nil {
		cb(state)
	}
}
