package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Events table - one row per confirmed gesture, with the action
		// outcome of its dispatch cycle
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			at DATETIME NOT NULL,
			mode TEXT NOT NULL,
			gesture TEXT NOT NULL,
			action TEXT NOT NULL DEFAULT '',
			fired INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_at ON events(at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
