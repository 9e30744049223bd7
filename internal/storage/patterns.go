package storage

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/SeamusWaldron/twisty"
)

// encMode uses Core Deterministic Encoding, so equal pattern data always
// produces identical blobs.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("storage: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("storage: CBOR decoder initialization failed: " + err.Error())
	}
}

// PatternRecord is a stored pattern snapshot.
type PatternRecord struct {
	PatternID    string
	DefinitionID string
	Name         string
	Data         twisty.PatternData
	Fingerprint  string
	CreatedAt    time.Time
}

// PatternRepository provides CRUD operations for pattern snapshots.
type PatternRepository struct {
	db *DB
}

// NewPatternRepository creates a new pattern repository.
func NewPatternRepository(db *DB) *PatternRepository {
	return &PatternRepository{db: db}
}

// encodePattern returns the CBOR blob of p and its hex BLAKE3 fingerprint.
// Both are computed from the orbit-name-keyed data form, so they do not
// depend on the puzzle's packed layout and stay valid when a stored
// definition's orbits are reordered.
func encodePattern(p *twisty.Pattern) ([]byte, string, error) {
	data, err := encMode.Marshal(p.ToData())
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode pattern: %w", err)
	}
	sum := blake3.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

// FingerprintHex returns the fingerprint a snapshot of p is stored under.
func FingerprintHex(p *twisty.Pattern) (string, error) {
	_, fingerprint, err := encodePattern(p)
	return fingerprint, err
}

// Create stores a snapshot of p and returns its ID.
func (r *PatternRepository) Create(definitionID, name string, p *twisty.Pattern) (string, error) {
	data, fingerprint, err := encodePattern(p)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = r.db.Exec(`
		INSERT INTO patterns (pattern_id, definition_id, name, data, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, definitionID, name, data, fingerprint, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to create pattern: %w", err)
	}

	return id, nil
}

// Get retrieves a pattern snapshot by ID.
func (r *PatternRepository) Get(patternID string) (*PatternRecord, error) {
	row := r.db.QueryRow(`
		SELECT pattern_id, definition_id, name, data, fingerprint, created_at
		FROM patterns
		WHERE pattern_id = ?
	`, patternID)

	rec, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pattern %s: %w", patternID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves the snapshots of a definition, newest first.
func (r *PatternRepository) List(definitionID string) ([]PatternRecord, error) {
	return r.query(`
		SELECT pattern_id, definition_id, name, data, fingerprint, created_at
		FROM patterns
		WHERE definition_id = ?
		ORDER BY created_at DESC, name
	`, definitionID)
}

// FindByFingerprint retrieves the snapshots of a definition equal to p.
func (r *PatternRepository) FindByFingerprint(definitionID string, p *twisty.Pattern) ([]PatternRecord, error) {
	fingerprint, err := FingerprintHex(p)
	if err != nil {
		return nil, err
	}
	return r.query(`
		SELECT pattern_id, definition_id, name, data, fingerprint, created_at
		FROM patterns
		WHERE definition_id = ? AND fingerprint = ?
		ORDER BY name
	`, definitionID, fingerprint)
}

func (r *PatternRepository) query(query string, args ...any) ([]PatternRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []PatternRecord
	for rows.Next() {
		rec, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, *rec)
	}

	return patterns, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPattern(s scanner) (*PatternRecord, error) {
	var rec PatternRecord
	var data []byte
	var createdAt string

	err := s.Scan(&rec.PatternID, &rec.DefinitionID, &rec.Name, &data, &rec.Fingerprint, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan pattern: %w", err)
	}

	if err := decMode.Unmarshal(data, &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to decode pattern %s: %w", rec.PatternID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &rec, nil
}

// Pattern rebuilds the snapshot against p and checks its fingerprint.
func (rec *PatternRecord) Pattern(p *twisty.Puzzle) (*twisty.Pattern, error) {
	pattern, err := p.PatternFromData(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", rec.Name, err)
	}
	got, err := FingerprintHex(pattern)
	if err != nil {
		return nil, err
	}
	if got != rec.Fingerprint {
		return nil, fmt.Errorf("pattern %s: fingerprint mismatch (stored %s, computed %s)", rec.Name, rec.Fingerprint, got)
	}
	return pattern, nil
}
