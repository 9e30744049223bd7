package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/alg"
	"github.com/SeamusWaldron/twisty/pkg/puzzles"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "twisty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_Migrates(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// Applying again is a no-op.
	require.NoError(t, db.MigrateUp())
	version, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestDefinitions_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefinitionRepository(db)

	def := puzzles.Cube3x3x3Definition()
	id, err := repo.Put(def)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := repo.Get("3x3x3")
	require.NoError(t, err)
	assert.Equal(t, id, rec.DefinitionID)
	assert.Equal(t, def, rec.Definition)

	// Putting the same name again keeps the ID.
	again, err := repo.Put(def)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "3x3x3", list[0].Name)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete("3x3x3"))
	assert.ErrorIs(t, repo.Delete("3x3x3"), ErrNotFound)
}

func TestAlgs_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	defID, err := NewDefinitionRepository(db).Put(puzzles.Cube3x3x3Definition())
	require.NoError(t, err)

	repo := NewAlgRepository(db)
	sexy := alg.New(alg.Group(alg.New(alg.Comm(
		alg.MustParseMoveSequence("R"),
		alg.MustParseMoveSequence("U"),
	)), 6))

	id, err := repo.Put(defID, "sexy", sexy)
	require.NoError(t, err)

	rec, err := repo.Get(defID, "sexy")
	require.NoError(t, err)
	assert.Equal(t, id, rec.AlgID)
	assert.Equal(t, sexy.String(), rec.Alg.String())

	replaced, err := repo.Put(defID, "sexy", alg.MustParseMoveSequence("R U R' U'"))
	require.NoError(t, err)
	assert.Equal(t, id, replaced)

	list, err := repo.List(defID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "R U R' U'", list[0].Alg.String())

	_, err = repo.Get(defID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatterns_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	defID, err := NewDefinitionRepository(db).Put(puzzles.Cube3x3x3Definition())
	require.NoError(t, err)

	p := puzzles.Cube3x3x3()
	scrambled, err := p.DefaultPattern().ApplyAlg(alg.MustParseMoveSequence("R U F' D2 Rw"))
	require.NoError(t, err)

	repo := NewPatternRepository(db)
	id, err := repo.Create(defID, "scramble", scrambled)
	require.NoError(t, err)
	_, err = repo.Create(defID, "solved", p.DefaultPattern())
	require.NoError(t, err)

	rec, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "scramble", rec.Name)
	fingerprint, err := FingerprintHex(scrambled)
	require.NoError(t, err)
	assert.Equal(t, fingerprint, rec.Fingerprint)

	loaded, err := rec.Pattern(p)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(scrambled))

	found, err := repo.FindByFingerprint(defID, scrambled)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].PatternID)

	list, err := repo.List(defID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	rec.Fingerprint = "00"
	_, err = rec.Pattern(p)
	assert.Error(t, err)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatterns_SurviveOrbitReorder(t *testing.T) {
	db := openTestDB(t)
	defs := NewDefinitionRepository(db)
	repo := NewPatternRepository(db)

	def := puzzles.Cube3x3x3Definition()
	defID, err := defs.Put(def)
	require.NoError(t, err)

	before := twisty.MustNew(def)
	ru, err := before.PatternFromAlg(alg.MustParseMoveSequence("R U"))
	require.NoError(t, err)
	id, err := repo.Create(defID, "ru", ru)
	require.NoError(t, err)

	// Same puzzle, different packed layout.
	reordered := puzzles.Cube3x3x3Definition()
	reordered.Orbits[0], reordered.Orbits[1] = reordered.Orbits[1], reordered.Orbits[0]
	again, err := defs.Put(reordered)
	require.NoError(t, err)
	require.Equal(t, defID, again)

	stored, err := defs.Get("3x3x3")
	require.NoError(t, err)
	after := twisty.MustNew(stored.Definition)
	require.NotEqual(t, before.Orbits()[0].Name, after.Orbits()[0].Name)

	same, err := after.PatternFromAlg(alg.MustParseMoveSequence("R U"))
	require.NoError(t, err)
	require.Equal(t, ru.ToData(), same.ToData())
	require.NotEqual(t, ru.Bytes(), same.Bytes())

	found, err := repo.FindByFingerprint(defID, same)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].PatternID)

	loaded, err := found[0].Pattern(after)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(same))
}
