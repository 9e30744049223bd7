package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/twisty"
)

// DefinitionRecord is a stored puzzle definition.
type DefinitionRecord struct {
	DefinitionID string
	Name         string
	Definition   *twisty.Definition
	CreatedAt    time.Time
}

// DefinitionSummary is a listing row without the decoded body.
type DefinitionSummary struct {
	DefinitionID string
	Name         string
	CreatedAt    time.Time
	AlgCount     int
	PatternCount int
}

// DefinitionRepository provides CRUD operations for definitions.
type DefinitionRepository struct {
	db *DB
}

// NewDefinitionRepository creates a new definition repository.
func NewDefinitionRepository(db *DB) *DefinitionRepository {
	return &DefinitionRepository{db: db}
}

// Put stores def under def.Name, replacing the body of an existing
// definition with the same name. It returns the definition ID.
func (r *DefinitionRepository) Put(def *twisty.Definition) (string, error) {
	if def.Name == "" {
		return "", fmt.Errorf("failed to store definition: name is empty")
	}
	body, err := json.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("failed to encode definition: %w", err)
	}

	var id string
	err = r.db.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow("SELECT definition_id FROM definitions WHERE name = ?", def.Name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.New().String()
			_, err = tx.Exec(`
				INSERT INTO definitions (definition_id, name, body, created_at)
				VALUES (?, ?, ?, ?)
			`, id, def.Name, string(body), time.Now().UTC().Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("failed to create definition: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up definition: %w", err)
		default:
			if _, err := tx.Exec("UPDATE definitions SET body = ? WHERE definition_id = ?", string(body), id); err != nil {
				return fmt.Errorf("failed to update definition: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get retrieves a definition by name.
func (r *DefinitionRepository) Get(name string) (*DefinitionRecord, error) {
	var rec DefinitionRecord
	var body, createdAt string

	err := r.db.QueryRow(`
		SELECT definition_id, name, body, created_at
		FROM definitions
		WHERE name = ?
	`, name).Scan(&rec.DefinitionID, &rec.Name, &body, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("definition %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get definition: %w", err)
	}

	rec.Definition, err = twisty.ParseDefinitionJSON([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored definition %q: %w", name, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &rec, nil
}

// ID returns the ID of the named definition.
func (r *DefinitionRepository) ID(name string) (string, error) {
	var id string
	err := r.db.QueryRow("SELECT definition_id FROM definitions WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("definition %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get definition ID: %w", err)
	}
	return id, nil
}

// List retrieves all definitions ordered by name.
func (r *DefinitionRepository) List() ([]DefinitionSummary, error) {
	rows, err := r.db.Query(`
		SELECT d.definition_id, d.name, d.created_at,
			(SELECT COUNT(*) FROM algs a WHERE a.definition_id = d.definition_id),
			(SELECT COUNT(*) FROM patterns p WHERE p.definition_id = d.definition_id)
		FROM definitions d
		ORDER BY d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	defer rows.Close()

	var defs []DefinitionSummary
	for rows.Next() {
		var s DefinitionSummary
		var createdAt string
		if err := rows.Scan(&s.DefinitionID, &s.Name, &createdAt, &s.AlgCount, &s.PatternCount); err != nil {
			return nil, fmt.Errorf("failed to scan definition: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		defs = append(defs, s)
	}

	return defs, rows.Err()
}

// Delete deletes a definition and its algs and patterns (cascading).
func (r *DefinitionRepository) Delete(name string) error {
	result, err := r.db.Exec("DELETE FROM definitions WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete definition: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete definition: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("definition %q: %w", name, ErrNotFound)
	}
	return nil
}
