package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestChordMappings_UpsertAndGet(t *testing.T) {
	s := newTestStore(t)

	m := &ChordMapping{
		ID:      uuid.NewString(),
		Pattern: "rock",
		Chord:   "F",
	}
	if err := s.ChordMappings().Upsert(m); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := s.ChordMappings().GetByPattern("rock")
	if err != nil {
		t.Fatalf("GetByPattern() error = %v", err)
	}
	if got.Chord != "F" {
		t.Errorf("Chord = %q, want F", got.Chord)
	}

	// Remap the same pattern
	m.Chord = "D"
	if err := s.ChordMappings().Upsert(m); err != nil {
		t.Fatalf("Upsert() (remap) error = %v", err)
	}

	got, err = s.ChordMappings().GetByPattern("rock")
	if err != nil {
		t.Fatalf("GetByPattern() after remap error = %v", err)
	}
	if got.Chord != "D" {
		t.Errorf("Chord after remap = %q, want D", got.Chord)
	}
}

func TestChordMappings_List(t *testing.T) {
	s := newTestStore(t)

	for pattern, chord := range map[string]string{"0": "Am", "rock": "F", "side_rock": "Em"} {
		err := s.ChordMappings().Upsert(&ChordMapping{
			ID:      uuid.NewString(),
			Pattern: pattern,
			Chord:   chord,
		})
		if err != nil {
			t.Fatalf("Upsert(%s) error = %v", pattern, err)
		}
	}

	mappings, err := s.ChordMappings().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mappings) != 3 {
		t.Errorf("len(mappings) = %d, want 3", len(mappings))
	}
}

func TestChordMappings_Delete(t *testing.T) {
	s := newTestStore(t)

	err := s.ChordMappings().Upsert(&ChordMapping{
		ID:      uuid.NewString(),
		Pattern: "5",
		Chord:   "A",
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := s.ChordMappings().Delete("5"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.ChordMappings().GetByPattern("5"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPattern() after delete error = %v, want ErrNotFound", err)
	}

	if err := s.ChordMappings().Delete("5"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing pattern error = %v, want ErrNotFound", err)
	}
}

func TestSamples_SetGetList(t *testing.T) {
	s := newTestStore(t)

	if err := s.Samples().Set("Am", "/samples/Am.wav"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sample, err := s.Samples().Get("Am")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if sample.Path != "/samples/Am.wav" {
		t.Errorf("Path = %q, want /samples/Am.wav", sample.Path)
	}

	// Replace path for the same chord
	if err := s.Samples().Set("Am", "/other/Am.wav"); err != nil {
		t.Fatalf("Set() (replace) error = %v", err)
	}
	sample, err = s.Samples().Get("Am")
	if err != nil {
		t.Fatalf("Get() after replace error = %v", err)
	}
	if sample.Path != "/other/Am.wav" {
		t.Errorf("Path after replace = %q, want /other/Am.wav", sample.Path)
	}

	samples, err := s.Samples().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("len(samples) = %d, want 1", len(samples))
	}

	if _, err := s.Samples().Get("G"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(G) error = %v, want ErrNotFound", err)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get("enabled"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of missing key error = %v, want ErrNotFound", err)
	}

	if err := s.Settings().Set("enabled", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := s.Settings().Get("enabled")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "true" {
		t.Errorf("value = %q, want true", value)
	}

	if err := s.Settings().Set("enabled", "false"); err != nil {
		t.Fatalf("Set() (overwrite) error = %v", err)
	}
	value, _ = s.Settings().Get("enabled")
	if value != "false" {
		t.Errorf("value after overwrite = %q, want false", value)
	}

	if err := s.Settings().Delete("enabled"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Settings().Get("enabled"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
