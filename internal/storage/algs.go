package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// AlgRecord is a named move expression stored for a definition.
type AlgRecord struct {
	AlgID        string
	DefinitionID string
	Name         string
	Alg          alg.Alg
	CreatedAt    time.Time
}

// AlgRepository provides CRUD operations for algs.
type AlgRepository struct {
	db *DB
}

// NewAlgRepository creates a new alg repository.
func NewAlgRepository(db *DB) *AlgRepository {
	return &AlgRepository{db: db}
}

// Put stores a under name for the definition, replacing an existing alg of
// the same name. It returns the alg ID.
func (r *AlgRepository) Put(definitionID, name string, a alg.Alg) (string, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode alg: %w", err)
	}

	id := uuid.New().String()
	_, err = r.db.Exec(`
		INSERT INTO algs (alg_id, definition_id, name, body, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(definition_id, name) DO UPDATE SET body = excluded.body
	`, id, definitionID, name, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to store alg: %w", err)
	}

	// On conflict the existing row keeps its ID.
	if err := r.db.QueryRow(
		"SELECT alg_id FROM algs WHERE definition_id = ? AND name = ?", definitionID, name,
	).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to get alg ID: %w", err)
	}
	return id, nil
}

// Get retrieves a named alg of a definition.
func (r *AlgRepository) Get(definitionID, name string) (*AlgRecord, error) {
	var rec AlgRecord
	var body, createdAt string

	err := r.db.QueryRow(`
		SELECT alg_id, definition_id, name, body, created_at
		FROM algs
		WHERE definition_id = ? AND name = ?
	`, definitionID, name).Scan(&rec.AlgID, &rec.DefinitionID, &rec.Name, &body, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alg %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alg: %w", err)
	}

	if err := json.Unmarshal([]byte(body), &rec.Alg); err != nil {
		return nil, fmt.Errorf("failed to decode stored alg %q: %w", name, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &rec, nil
}

// List retrieves all algs of a definition ordered by name.
func (r *AlgRepository) List(definitionID string) ([]AlgRecord, error) {
	rows, err := r.db.Query(`
		SELECT alg_id, definition_id, name, body, created_at
		FROM algs
		WHERE definition_id = ?
		ORDER BY name
	`, definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list algs: %w", err)
	}
	defer rows.Close()

	var algs []AlgRecord
	for rows.Next() {
		var rec AlgRecord
		var body, createdAt string
		if err := rows.Scan(&rec.AlgID, &rec.DefinitionID, &rec.Name, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan alg: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &rec.Alg); err != nil {
			return nil, fmt.Errorf("failed to decode stored alg %q: %w", rec.Name, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		algs = append(algs, rec)
	}

	return algs, rows.Err()
}
