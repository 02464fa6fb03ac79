package store

import (
	"time"

	"github.com/google/uuid"
)

// Event is one confirmed gesture and the outcome of its dispatch cycle.
type Event struct {
	ID      string
	At      time.Time
	Mode    string
	Gesture string
	Action  string // empty when the gesture mapped to no action
	Fired   bool   // false when the cooldown gate dropped the action
}

// EventRepository provides access to the activity log.
type EventRepository struct {
	store *Store
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{store: s}
}

// Create inserts a new event. A missing ID is filled with a fresh UUID.
func (r *EventRepository) Create(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	fired := 0
	if e.Fired {
		fired = 1
	}

	_, err := r.store.db.Exec(
		`INSERT INTO events (id, at, mode, gesture, action, fired)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.At, e.Mode, e.Gesture, e.Action, fired,
	)
	return err
}

// ListRecent returns up to limit events, newest first.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	rows, err := r.store.db.Query(
		`SELECT id, at, mode, gesture, action, fired
		 FROM events ORDER BY at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var fired int
		if err := rows.Scan(&e.ID, &e.At, &e.Mode, &e.Gesture, &e.Action, &fired); err != nil {
			return nil, err
		}
		e.Fired = fired != 0
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Prune deletes events older than the cutoff and returns how many went.
func (r *EventRepository) Prune(olderThan time.Time) (int64, error) {
	result, err := r.store.db.Exec(`DELETE FROM events WHERE at < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
