package app

import (
	"errors"
	"log"
	"time"

	"github.com/code-pasu/Wision/internal/store"
	"github.com/code-pasu/Wision/internal/tracker"
)

// runLoop is the frame loop: one frame is pulled from the tracker and pushed
// synchronously through the session before the next is accepted. The tick
// rate follows hand presence: idle while nothing is visible, active while a
// hand is tracked, falling back to idle after a timeout.
func (a *App) runLoop(stopCh chan struct{}) {
	active := false
	lastHand := time.Now()

	interval := time.Second / IdleFPS
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			snap, err := a.config.Tracker.Next()
			switch {
			case errors.Is(err, tracker.ErrNoHand):
				snap = nil
			case err != nil:
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if snap != nil {
				lastHand = time.Now()
				if !active {
					active = true
					interval = time.Second / ActiveFPS
					ticker.Reset(interval)
				}
			} else if active && time.Since(lastHand) > IdleTimeout {
				active = false
				interval = time.Second / IdleFPS
				ticker.Reset(interval)
			}

			a.processFrame(snap)
		}
	}
}

// processFrame runs one frame through the session, records confirmed
// gestures in the activity log, and publishes the resulting state.
func (a *App) processFrame(snap *tracker.HandSnapshot) {
	res, err := a.config.Session.Process(snap, time.Now())
	if err != nil {
		// Sink failures never unwind engine state; the action's
		// cooldown window is already consumed.
		log.Printf("Sink error: %v", err)
	}

	if res.Confirmed != nil {
		log.Printf("Confirmed %s in %s (action=%s fired=%v)",
			res.Confirmed.Label, res.Confirmed.Mode, res.Action, res.Fired)
		a.recordEvent(res.Confirmed.At, string(res.Confirmed.Mode),
			string(res.Confirmed.Label), string(res.Action), res.Fired)
	}

	a.publish(State{
		Mode:    string(a.config.Session.Mode()),
		Gesture: string(res.Label),
		Enabled: true,
		Hand:    snap != nil,
	})
}

func (a *App) recordEvent(at time.Time, mode, gest, action string, fired bool) {
	if a.config.Store == nil {
		return
	}
	err := a.config.Store.Events().Create(&store.Event{
		At:      at,
		Mode:    mode,
		Gesture: gest,
		Action:  action,
		Fired:   fired,
	})
	if err != nil {
		log.Printf("Failed to record event: %v", err)
	}
}
