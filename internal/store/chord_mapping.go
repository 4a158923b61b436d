package store

import (
	"database/sql"
	"errors"
	"time"
)

// ChordMapping represents one row of the remappable gesture-to-chord table.
type ChordMapping struct {
	ID        string
	Pattern   string
	Chord     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChordMappingRepository provides CRUD operations for chord mappings.
type ChordMappingRepository struct {
	db *sql.DB
}

// ChordMappings returns the chord mapping repository for this store.
func (s *Store) ChordMappings() *ChordMappingRepository {
	return &ChordMappingRepository{db: s.db}
}

// Upsert inserts a mapping or updates the chord for an existing pattern.
func (r *ChordMappingRepository) Upsert(m *ChordMapping) error {
	now := time.Now()
	m.UpdatedAt = now
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	_, err := r.db.Exec(
		`INSERT INTO chord_mappings (id, pattern, chord, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(pattern) DO UPDATE SET chord = excluded.chord, updated_at = excluded.updated_at`,
		m.ID, m.Pattern, m.Chord, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetByPattern retrieves a mapping by its gesture pattern key.
func (r *ChordMappingRepository) GetByPattern(pattern string) (*ChordMapping, error) {
	m := &ChordMapping{}

	err := r.db.QueryRow(
		`SELECT id, pattern, chord, created_at, updated_at
		 FROM chord_mappings WHERE pattern = ?`,
		pattern,
	).Scan(&m.ID, &m.Pattern, &m.Chord, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

// List retrieves all chord mappings.
func (r *ChordMappingRepository) List() ([]*ChordMapping, error) {
	rows, err := r.db.Query(
		`SELECT id, pattern, chord, created_at, updated_at
		 FROM chord_mappings ORDER BY pattern`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*ChordMapping
	for rows.Next() {
		m := &ChordMapping{}
		if err := rows.Scan(&m.ID, &m.Pattern, &m.Chord, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mappings, nil
}

// Delete removes a mapping by pattern, restoring the built-in default for
// that gesture on next load.
func (r *ChordMappingRepository) Delete(pattern string) error {
	result, err := r.db.Exec(`DELETE FROM chord_mappings WHERE pattern = ?`, pattern)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
