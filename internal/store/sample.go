package store

import (
	"database/sql"
	"errors"
	"time"
)

// AudioSample registers a recorded sample file for a chord.
type AudioSample struct {
	Chord   string
	Path    string
	AddedAt time.Time
}

// SampleRepository provides access to the sample library registry.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Set registers or replaces the sample file for a chord.
func (r *SampleRepository) Set(chord, path string) error {
	_, err := r.db.Exec(
		`INSERT INTO audio_samples (chord, path, added_at) VALUES (?, ?, ?)
		 ON CONFLICT(chord) DO UPDATE SET path = excluded.path, added_at = excluded.added_at`,
		chord, path, time.Now(),
	)
	return err
}

// Get retrieves the registered sample for a chord.
func (r *SampleRepository) Get(chord string) (*AudioSample, error) {
	s := &AudioSample{}

	err := r.db.QueryRow(
		`SELECT chord, path, added_at FROM audio_samples WHERE chord = ?`,
		chord,
	).Scan(&s.Chord, &s.Path, &s.AddedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

// List retrieves all registered samples.
func (r *SampleRepository) List() ([]*AudioSample, error) {
	rows, err := r.db.Query(`SELECT chord, path, added_at FROM audio_samples ORDER BY chord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*AudioSample
	for rows.Next() {
		s := &AudioSample{}
		if err := rows.Scan(&s.Chord, &s.Path, &s.AddedAt); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// Delete removes the registered sample for a chord.
func (r *SampleRepository) Delete(chord string) error {
	result, err := r.db.Exec(`DELETE FROM audio_samples WHERE chord = ?`, chord)
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
