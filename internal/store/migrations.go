package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Chord mappings table - the remappable gesture-to-chord table.
		// Pattern is a gesture pattern key: "0".."5", "rock", "side_rock".
		`CREATE TABLE IF NOT EXISTS chord_mappings (
			id TEXT PRIMARY KEY,
			pattern TEXT NOT NULL UNIQUE,
			chord TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Audio samples table - registry of chord sample files on disk
		`CREATE TABLE IF NOT EXISTS audio_samples (
			chord TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_chord_mappings_pattern ON chord_mappings(pattern)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
