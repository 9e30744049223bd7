package twisty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/alg"
	"github.com/SeamusWaldron/twisty/pkg/puzzles"
)

func seq(t *testing.T, p *twisty.Puzzle, s string) *twisty.Transformation {
	t.Helper()
	tr, err := p.TransformationFromAlg(alg.MustParseMoveSequence(s))
	require.NoError(t, err)
	return tr
}

func TestCube_FaceMovesHaveOrderFour(t *testing.T) {
	p := puzzles.Cube3x3x3()
	for _, face := range []string{"U", "L", "F", "R", "B", "D", "x", "y", "z"} {
		t.Run(face, func(t *testing.T) {
			m := seq(t, p, face)
			assert.Equal(t, 4, m.Order())
			assert.True(t, seq(t, p, face+"4").IsIdentity())
			assert.False(t, seq(t, p, face+"2").IsIdentity())
		})
	}
}

func TestCube_GroupLaws(t *testing.T) {
	p := puzzles.Cube3x3x3()
	identity := p.IdentityTransformation()

	for _, s := range []string{"R", "R U F'", "x L2 D' B", "Rw M' E2 S"} {
		t.Run(s, func(t *testing.T) {
			tr := seq(t, p, s)

			assert.True(t, tr.Apply(identity).Equal(tr))
			assert.True(t, identity.Apply(tr).Equal(tr))
			assert.True(t, tr.Apply(tr.Invert()).IsIdentity())
			assert.True(t, tr.Invert().Apply(tr).IsIdentity())
			assert.True(t, tr.SelfMultiply(-1).Equal(tr.Invert()))
			assert.True(t, tr.SelfMultiply(0).IsIdentity())
			assert.True(t, tr.SelfMultiply(tr.Order()).IsIdentity())

			for m := -3; m <= 3; m++ {
				for n := -3; n <= 3; n++ {
					got := tr.SelfMultiply(m).Apply(tr.SelfMultiply(n))
					assert.True(t, got.Equal(tr.SelfMultiply(m+n)), "m=%d n=%d", m, n)
				}
			}

			inverse, err := p.TransformationFromAlg(alg.MustParseMoveSequence(s).Invert())
			require.NoError(t, err)
			assert.True(t, inverse.Equal(tr.Invert()))
		})
	}
}

func TestCube_PatternApplicationIsAssociative(t *testing.T) {
	p := puzzles.Cube3x3x3()
	a := seq(t, p, "R U R'")
	b := seq(t, p, "F2 D y")
	start := p.DefaultPattern()

	stepwise := start.ApplyTransformation(a).ApplyTransformation(b)
	combined := start.ApplyTransformation(a.Apply(b))
	assert.True(t, stepwise.Equal(combined))
	assert.Equal(t, stepwise.Hash(), combined.Hash())
	assert.Equal(t, stepwise.Fingerprint(), combined.Fingerprint())
}

func TestCube_Commutators(t *testing.T) {
	p := puzzles.Cube3x3x3()
	r := alg.MustParseMoveSequence("R")
	u := alg.MustParseMoveSequence("U")

	comm, err := p.TransformationFromAlg(alg.New(alg.Comm(r, u)))
	require.NoError(t, err)
	assert.True(t, comm.Equal(seq(t, p, "R U R' U'")))

	conj, err := p.TransformationFromAlg(alg.New(alg.Conj(r, u)))
	require.NoError(t, err)
	assert.True(t, conj.Equal(seq(t, p, "R U R'")))

	sexy, err := p.TransformationFromAlg(alg.New(alg.Group(alg.New(alg.Comm(r, u)), 6)))
	require.NoError(t, err)
	assert.True(t, sexy.IsIdentity())
	assert.Equal(t, 6, comm.Order())

	// Non-moving nodes evaluate to the identity.
	withPauses := alg.New(
		alg.MustParseMove("R"), alg.Pause{}, alg.LineComment{Text: "setup"},
		alg.Newline{}, alg.MustParseMove("U"),
	)
	tr, err := p.TransformationFromAlg(withPauses)
	require.NoError(t, err)
	assert.True(t, tr.Equal(seq(t, p, "R U")))

	zero, err := p.TransformationFromAlg(alg.New(alg.Group(alg.MustParseMoveSequence("R U F"), 0)))
	require.NoError(t, err)
	assert.True(t, zero.IsIdentity())
}

func TestCube_CenterModulus(t *testing.T) {
	p := puzzles.Cube3x3x3()
	rur := alg.MustParseMoveSequence("R U R' U")

	tr, err := p.TransformationFromAlg(alg.New(alg.Group(rur, 5)))
	require.NoError(t, err)

	// The U center has turned twice, so the transformation is not the
	// identity, but centers carry modulus 1 in the default pattern.
	assert.False(t, tr.IsIdentity())
	assert.Equal(t, 10, seq(t, p, "R U R' U").Order())
	assert.True(t, p.DefaultPattern().ApplyTransformation(tr).Equal(p.DefaultPattern()))
}

func TestCube_DerivedMovesKeepModulus(t *testing.T) {
	p := puzzles.Cube3x3x3()
	centers, ok := p.LookupOrbit("CENTERS")
	require.True(t, ok)

	for _, m := range []string{"Rw", "Uw", "M", "E", "S", "r"} {
		t.Run(m, func(t *testing.T) {
			single := seq(t, p, m)
			for k := -2; k <= 3; k++ {
				raised, err := p.TransformationFromMove(alg.MustParseMove(m).WithAmount(k))
				require.NoError(t, err)
				assert.True(t, raised.Equal(single.SelfMultiply(k)), "k=%d", k)

				pattern := p.DefaultPattern().ApplyTransformation(raised)
				for i := 0; i < centers.NumPieces; i++ {
					assert.Equal(t, byte(1), pattern.OrientationWithMod(centers, i).OrientationMod)
					assert.Equal(t, byte(0), pattern.OrientationWithMod(centers, i).Orientation)
				}
			}
		})
	}

	assert.True(t, seq(t, p, "Rw").Equal(seq(t, p, "x L")))
	assert.True(t, seq(t, p, "M").Equal(seq(t, p, "x' L' R")))
}

func TestCube_UnknownMoveDoesNotPoisonPuzzle(t *testing.T) {
	p := puzzles.Cube3x3x3()

	_, err := p.TransformationFromAlg(alg.MustParseMoveSequence("R 2Q U"))
	require.ErrorIs(t, err, twisty.ErrInvalidMove)

	_, err = p.DefaultPattern().ApplyMove(alg.MustParseMove("3R"))
	require.ErrorIs(t, err, twisty.ErrInvalidMove)

	assert.True(t, seq(t, p, "R U").Equal(seq(t, p, "R").Apply(seq(t, p, "U"))))
}

func TestCube_PatternData(t *testing.T) {
	p := puzzles.Cube3x3x3()

	data := p.DefaultPattern().ToData()
	assert.Nil(t, data["EDGES"].OrientationMod)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, data["CENTERS"].OrientationMod)

	moved, err := p.DefaultPattern().ApplyAlg(alg.MustParseMoveSequence("F"))
	require.NoError(t, err)
	// F flips the four edges it moves.
	assert.Equal(t, []int{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0}, moved.ToData()["EDGES"].Orientation)

	back, err := p.PatternFromData(moved.ToData())
	require.NoError(t, err)
	assert.True(t, back.Equal(moved))

	bad := moved.ToData()
	bad["CORNERS"] = twisty.PatternOrbitData{Pieces: []int{0, 1}, Orientation: []int{0, 0}}
	_, err = p.PatternFromData(bad)
	assert.ErrorIs(t, err, twisty.ErrInvalidPatternData)
}

func TestCube_Buffers(t *testing.T) {
	p := puzzles.Cube3x3x3()
	r, u := seq(t, p, "R"), seq(t, p, "U")

	pb := twisty.NewPatternBuffer(p.DefaultPattern())
	for i := 0; i < 4; i++ {
		pb.ApplyTransformation(r)
	}
	assert.True(t, pb.Current().Equal(p.DefaultPattern()))

	pb.ApplyTransformation(u)
	assert.True(t, pb.Current().Equal(p.DefaultPattern().ApplyTransformation(u)))

	pb.Reset(p.DefaultPattern())
	assert.True(t, pb.Current().Equal(p.DefaultPattern()))

	tb := twisty.NewTransformationBuffer(p.IdentityTransformation())
	tb.ApplyTransformation(r)
	tb.ApplyTransformation(u)
	tb.ApplyTransformation(r.Invert())
	assert.True(t, tb.Current().Equal(seq(t, p, "R U R'")))
}

func TestCube_SharedAcrossGoroutines(t *testing.T) {
	p := puzzles.Cube3x3x3()
	want := seq(t, p, "R U R' U' F2 D")
	wantPattern := p.DefaultPattern().ApplyTransformation(want)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				got, err := p.TransformationFromAlg(alg.MustParseMoveSequence("R U R' U' F2 D"))
				if err != nil {
					return err
				}
				if !got.Equal(want) {
					t.Errorf("transformation mismatch")
				}
				if !p.DefaultPattern().ApplyTransformation(got).Equal(wantPattern) {
					t.Errorf("pattern mismatch")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{"2x2x2", "3x3x3"}, puzzles.Names())

	p, err := puzzles.Get("2x2x2")
	require.NoError(t, err)
	assert.Same(t, puzzles.Cube2x2x2(), p)
	assert.Equal(t, 4, seq(t, p, "R").Order())
	assert.True(t, seq(t, p, "Rw").Equal(seq(t, p, "x")))

	_, err = puzzles.Get("megaminx")
	assert.Error(t, err)

	def := puzzles.Cube3x3x3Definition()
	def.Name = "renamed"
	assert.Equal(t, "3x3x3", puzzles.Cube3x3x3().Name())
}
