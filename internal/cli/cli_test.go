package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
	"github.com/SeamusWaldron/twisty/pkg/alg"
	"github.com/SeamusWaldron/twisty/pkg/puzzles"
)

const swapYAML = `name: swap
orbits:
  - orbitName: PIECES
    numPieces: 3
    numOrientations: 2
defaultPattern:
  PIECES:
    pieces: [0, 1, 2]
    orientation: [0, 0, 0]
moves:
  S:
    PIECES:
      permutation: [1, 0, 2]
      orientationDelta: [1, 1, 0]
derivedMoves:
  T:
    - type: commutator
      a: [{type: move, move: S}]
      b: [{type: move, move: "S'"}]
`

func useTempDB(t *testing.T) {
	t.Helper()
	prev := dbPath
	dbPath = filepath.Join(t.TempDir(), "twisty.db")
	t.Cleanup(func() { dbPath = prev })
}

func TestLoadDefinition_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(swapYAML), 0644))

	def, err := loadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "swap", def.Name)
	require.Contains(t, def.DerivedMoves, alg.MustParseMove("T"))

	p, err := twisty.New(def)
	require.NoError(t, err)
	s, err := p.TransformationFromMove(alg.MustParseMove("S"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Order())

	tr, err := p.TransformationFromMove(alg.MustParseMove("T"))
	require.NoError(t, err)
	assert.True(t, tr.IsIdentity())
}

func TestLoadDefinition_JSONFileAndBuiltin(t *testing.T) {
	useTempDB(t)

	def, err := loadDefinition("3x3x3")
	require.NoError(t, err)
	assert.Equal(t, "3x3x3", def.Name)

	data, err := def.MarshalIndent()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cube.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	fromFile, err := loadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, def, fromFile)

	_, err = loadDefinition("no-such-puzzle")
	assert.Error(t, err)
}

func TestLoadDefinition_Library(t *testing.T) {
	useTempDB(t)

	def := puzzles.Cube3x3x3Definition()
	def.Name = "my-cube"

	db, err := openDB()
	require.NoError(t, err)
	defID, err := storage.NewDefinitionRepository(db).Put(def)
	require.NoError(t, err)
	_, err = storage.NewAlgRepository(db).Put(defID, "sexy", alg.MustParseMoveSequence("R U R' U'"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	loaded, err := loadDefinition("my-cube")
	require.NoError(t, err)
	assert.Equal(t, def, loaded)

	a, err := loadAlg("my-cube", "@sexy")
	require.NoError(t, err)
	assert.Equal(t, "R U R' U'", a.String())

	_, err = loadAlg("my-cube", "@missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadAlg_Inline(t *testing.T) {
	a, err := loadAlg("3x3x3", "R U2 F'")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())

	_, err = loadAlg("3x3x3", "R (U")
	assert.Error(t, err)
}

func TestExpandAlg(t *testing.T) {
	r := alg.MustParseMoveSequence("R")
	u := alg.MustParseMoveSequence("U")

	tests := []struct {
		name string
		alg  alg.Alg
		want string
	}{
		{"moves", alg.MustParseMoveSequence("R U2 F'"), "R U2 F'"},
		{"commutator", alg.New(alg.Comm(r, u)), "R U R' U'"},
		{"conjugate", alg.New(alg.Conj(r, u)), "R U R'"},
		{"grouping", alg.New(alg.Group(alg.MustParseMoveSequence("R U"), 2)), "R U R U"},
		{"inverse grouping", alg.New(alg.Group(alg.MustParseMoveSequence("R U"), -1)), "U' R'"},
		{"pauses", alg.New(alg.MustParseMove("R"), alg.Pause{}, alg.Newline{}), "R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, alg.FormatMoves(expandAlg(tt.alg)))
		})
	}
}

func TestExpandAlg_MatchesEvaluation(t *testing.T) {
	p := puzzles.Cube3x3x3()
	a := alg.New(
		alg.Conj(alg.MustParseMoveSequence("F"), alg.New(alg.Comm(
			alg.MustParseMoveSequence("R"), alg.MustParseMoveSequence("U"),
		))),
		alg.Group(alg.MustParseMoveSequence("M' U"), 3),
	)

	want, err := p.TransformationFromAlg(a)
	require.NoError(t, err)
	got, err := p.TransformationFromAlg(alg.FromMoves(expandAlg(a)...))
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestComputeOrders(t *testing.T) {
	p := puzzles.Cube3x3x3()

	results, err := computeOrders(context.Background(), p, []string{"R", "R U R' U'", "R U R' U", "R U"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, orderResult{arg: "R", order: 4, patternOrder: 4}, results[0])
	assert.Equal(t, orderResult{arg: "R U R' U'", order: 6, patternOrder: 6}, results[1])
	assert.Equal(t, orderResult{arg: "R U R' U", order: 10, patternOrder: 5}, results[2])
	assert.Equal(t, orderResult{arg: "R U", order: 420, patternOrder: 105}, results[3])

	_, err = computeOrders(context.Background(), p, []string{"R", "Q"})
	assert.ErrorIs(t, err, twisty.ErrInvalidMove)
}

func TestReplayModel(t *testing.T) {
	p := puzzles.Cube3x3x3()
	moves := expandAlg(alg.New(alg.Comm(alg.MustParseMoveSequence("R"), alg.MustParseMoveSequence("U"))))

	m, err := newReplayModel(p, moves, 1, false)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	assert.Equal(t, 4, m.index)
	assert.False(t, m.forward())

	want, err := p.PatternFromAlg(alg.MustParseMoveSequence("R U R' U'"))
	require.NoError(t, err)
	assert.True(t, m.buf.Current().Equal(want))

	m.back()
	want, err = p.PatternFromAlg(alg.MustParseMoveSequence("R U R'"))
	require.NoError(t, err)
	assert.True(t, m.buf.Current().Equal(want))
	assert.Contains(t, m.View(), "Move 3/4")

	m.reset()
	assert.Equal(t, 0, m.index)
	assert.True(t, m.buf.Current().Equal(p.DefaultPattern()))

	_, err = newReplayModel(p, []alg.Move{alg.MustParseMove("Q")}, 1, false)
	assert.ErrorIs(t, err, twisty.ErrInvalidMove)
}

func useExportFlags(t *testing.T, format, output string) {
	t.Helper()
	prevFormat, prevOutput := exportFormat, exportOutput
	exportFormat, exportOutput = format, output
	t.Cleanup(func() { exportFormat, exportOutput = prevFormat, prevOutput })
}

func TestExportMoves(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "comm.txt")
	useExportFlags(t, "", txt)
	require.NoError(t, runExportMoves(nil, []string{"3x3x3", "R U R' U'"}))
	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "R U R' U'\n", string(data))

	list := filepath.Join(dir, "comm.json")
	useExportFlags(t, "", list)
	require.NoError(t, runExportMoves(nil, []string{"3x3x3", "R2 U'"}))
	var moves []exportedMove
	require.NoError(t, decodeFile(list, &moves))
	assert.Equal(t, []exportedMove{
		{MoveIndex: 0, Family: "R", Amount: 2, Notation: "R2"},
		{MoveIndex: 1, Family: "U", Amount: -1, Notation: "U'"},
	}, moves)

	err = runExportMoves(nil, []string{"3x3x3", "R Q"})
	assert.ErrorIs(t, err, twisty.ErrInvalidMove)
}

func TestExportLibrary(t *testing.T) {
	useTempDB(t)

	def, err := loadDefinition(filepathOf(t, "swap.yaml", swapYAML))
	require.NoError(t, err)

	db, err := openDB()
	require.NoError(t, err)
	defID, err := storage.NewDefinitionRepository(db).Put(def)
	require.NoError(t, err)
	_, err = storage.NewAlgRepository(db).Put(defID, "twice", alg.MustParseMoveSequence("S2"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out := filepath.Join(t.TempDir(), "swap-export.yaml")
	useExportFlags(t, "", out)
	require.NoError(t, runExportLibrary(nil, []string{"swap"}))

	var bundle exportedLibrary
	require.NoError(t, decodeFile(out, &bundle))
	assert.Equal(t, def, bundle.Definition)
	require.Contains(t, bundle.Algs, "twice")
	assert.Equal(t, "S2", bundle.Algs["twice"].String())

	useExportFlags(t, "txt", out)
	assert.Error(t, runExportLibrary(nil, []string{"swap"}))
}

func filepathOf(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
