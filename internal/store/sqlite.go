package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nuptial/flightcast/internal/models"
)

// Store persists the append-only sightings log. There are no UPDATE or
// DELETE paths: a sighting is visible to readers only once its insert has
// committed, which gives atomic publish under concurrent readers.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertSighting appends a sighting and returns it with the assigned ID and
// creation time filled in.
func (s *Store) InsertSighting(sighting models.Sighting) (models.Sighting, error) {
	createdAt := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO sightings (observed_at, latitude, longitude, genus, species, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sighting.ObservedAt.UTC(), sighting.Latitude, sighting.Longitude,
		sighting.Genus, sighting.Species, sighting.Confidence, createdAt)
	if err != nil {
		return models.Sighting{}, fmt.Errorf("insert sighting: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Sighting{}, fmt.Errorf("sighting id: %w", err)
	}

	sighting.ID = id
	sighting.CreatedAt = createdAt
	return sighting, nil
}

// ListSightings returns all sightings, newest observation first. Datetime
// ties resolve to the most recently inserted row.
func (s *Store) ListSightings() ([]models.Sighting, error) {
	rows, err := s.db.Query(`
		SELECT id, observed_at, latitude, longitude, genus, species, confidence, created_at
		FROM sightings
		ORDER BY observed_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sightings []models.Sighting
	for rows.Next() {
		var sg models.Sighting
		if err := rows.Scan(&sg.ID, &sg.ObservedAt, &sg.Latitude, &sg.Longitude,
			&sg.Genus, &sg.Species, &sg.Confidence, &sg.CreatedAt); err != nil {
			return nil, err
		}
		sightings = append(sightings, sg)
	}
	return sightings, rows.Err()
}

func (s *Store) CountSightings() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sightings`).Scan(&count)
	return count, err
}
