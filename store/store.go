// Package store persists animal records and discovery audit events in
// sqlite. It is the record-store collaborator of the genetics engine: the
// engine itself only ever works on records the caller fetched from here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hoofbeat/lineage/genetics"
	"github.com/hoofbeat/lineage/telemetry"
	"github.com/hoofbeat/lineage/traits"
)

// Animal is the persisted record for one animal, bred or store-bought.
type Animal struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Breed       string                    `json:"breed"`
	SireID      string                    `json:"sire_id,omitempty"`
	DamID       string                    `json:"dam_id,omitempty"`
	AgeDays     int                       `json:"age_days"`
	Discipline  string                    `json:"discipline,omitempty"`
	Genotype    genetics.Genotype         `json:"genotype"`
	Phenotype   genetics.Phenotype        `json:"phenotype"`
	Ratings     genetics.AttributeRatings `json:"ratings"`
	Temperament string                    `json:"temperament"`
	Traits      traits.Set                `json:"traits"`
	Counters    traits.Counters           `json:"counters,omitempty"`
}

// Store wraps the sqlite database.
type Store struct {
	path string
	db   *sql.DB
}

// New creates a store for the given sqlite path. Call Init before use.
func New(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates the schema.
func (s *Store) Init(ctx context.Context) error {
	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS animals (
			id       TEXT PRIMARY KEY,
			breed    TEXT NOT NULL,
			sire_id  TEXT,
			dam_id   TEXT,
			age_days INTEGER NOT NULL,
			payload  BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS discovery_events (
			animal_id TEXT NOT NULL,
			day       INTEGER NOT NULL,
			condition TEXT NOT NULL,
			trait     TEXT NOT NULL,
			category  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_discovery_animal ON discovery_events(animal_id);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	if s.db == nil {
		return nil, errors.New("store not initialized")
	}
	return s.db, nil
}

// SaveAnimal inserts or replaces one animal record.
func (s *Store) SaveAnimal(ctx context.Context, a Animal) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding animal %s: %w", a.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO animals (id, breed, sire_id, dam_id, age_days, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			breed = excluded.breed,
			sire_id = excluded.sire_id,
			dam_id = excluded.dam_id,
			age_days = excluded.age_days,
			payload = excluded.payload
	`, a.ID, a.Breed, a.SireID, a.DamID, a.AgeDays, payload)
	return err
}

// GetAnimal fetches one animal record by ID.
func (s *Store) GetAnimal(ctx context.Context, id string) (Animal, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Animal{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM animals WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Animal{}, false, nil
		}
		return Animal{}, false, err
	}

	var a Animal
	if err := json.Unmarshal(payload, &a); err != nil {
		return Animal{}, false, fmt.Errorf("decoding animal %s: %w", id, err)
	}
	return a, true, nil
}

// Ancestors walks the sire/dam links of an animal up to the given number of
// generations back and returns the distinct ancestors found. Shaped to serve
// as the traits.AncestryLookup of the birth-trait engine.
func (s *Store) Ancestors(ctx context.Context, id string, generations int) ([]traits.Ancestor, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var out []traits.Ancestor
	seen := map[string]bool{id: true}
	frontier := []string{id}

	for gen := 0; gen < generations && len(frontier) > 0; gen++ {
		var next []string
		for _, cur := range frontier {
			var sireID, damID sql.NullString
			err := db.QueryRowContext(ctx,
				`SELECT sire_id, dam_id FROM animals WHERE id = ?`, cur).Scan(&sireID, &damID)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("ancestry of %s: %w", id, err)
			}
			for _, parent := range []sql.NullString{sireID, damID} {
				if !parent.Valid || parent.String == "" || seen[parent.String] {
					continue
				}
				seen[parent.String] = true

				rec, found, err := s.GetAnimal(ctx, parent.String)
				if err != nil {
					return nil, err
				}
				ancestor := traits.Ancestor{ID: parent.String}
				if found {
					ancestor.Discipline = rec.Discipline
				}
				out = append(out, ancestor)
				next = append(next, parent.String)
			}
		}
		frontier = next
	}

	return out, nil
}

// AncestryLookup adapts the store to the birth-trait engine's lookup
// signature.
func (s *Store) AncestryLookup(ctx context.Context) traits.AncestryLookup {
	return func(animalID string, generations int) ([]traits.Ancestor, error) {
		return s.Ancestors(ctx, animalID, generations)
	}
}

// SaveDiscoveryEvents persists discovery audit records.
func (s *Store) SaveDiscoveryEvents(ctx context.Context, events []telemetry.DiscoveryEvent) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	for _, ev := range events {
		_, err := db.ExecContext(ctx, `
			INSERT INTO discovery_events (animal_id, day, condition, trait, category)
			VALUES (?, ?, ?, ?, ?)
		`, ev.AnimalID, ev.Day, ev.Condition, ev.Trait, ev.Category)
		if err != nil {
			return fmt.Errorf("saving discovery event for %s: %w", ev.AnimalID, err)
		}
	}
	return nil
}

// DiscoveryEvents fetches the audit trail of one animal in insertion order.
func (s *Store) DiscoveryEvents(ctx context.Context, animalID string) ([]telemetry.DiscoveryEvent, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT animal_id, day, condition, trait, category
		FROM discovery_events WHERE animal_id = ? ORDER BY rowid
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []telemetry.DiscoveryEvent
	for rows.Next() {
		var ev telemetry.DiscoveryEvent
		if err := rows.Scan(&ev.AnimalID, &ev.Day, &ev.Condition, &ev.Trait, &ev.Category); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CountAnimals returns the number of stored animal records.
func (s *Store) CountAnimals(ctx context.Context) (int, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`).Scan(&n)
	return n, err
}
