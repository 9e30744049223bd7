package twisty

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// Puzzle is a validated definition together with its packed layout.
// A Puzzle is immutable once New returns and may be shared by any number of
// goroutines; every Pattern and Transformation keeps a pointer to the Puzzle
// it was built from.
type Puzzle struct {
	definition *Definition
	name       string
	orbits     []*OrbitInfo
	numBytes   int

	identity       *Transformation
	defaultPattern *Pattern

	// Decoded primitive moves, the derived move algs and, when precomputed,
	// evaluated derived moves, keyed exactly as in the definition. Lookups
	// only consult these, never the definition.
	moves       map[alg.Move]*Transformation
	derivedAlgs map[alg.Move]alg.Alg
	derived     map[alg.Move]*Transformation
}

// New validates def and builds its Puzzle. The definition must not be
// modified afterwards.
func New(def *Definition, opts ...Option) (*Puzzle, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if def == nil {
		return nil, &DefinitionError{Description: "definition is nil"}
	}

	defErr := func(format string, args ...any) error {
		return &DefinitionError{Puzzle: def.Name, Description: fmt.Sprintf(format, args...)}
	}

	if len(def.Orbits) == 0 {
		return nil, defErr("no orbits")
	}

	// Orbit limits
	seen := make(map[string]bool, len(def.Orbits))
	for _, o := range def.Orbits {
		if seen[o.OrbitName] {
			return nil, defErr("duplicate orbit %s", o.OrbitName)
		}
		seen[o.OrbitName] = true
		if o.NumOrientations < 1 || o.NumOrientations > MaxNumOrientations {
			return nil, defErr("`numOrientations` for orbit %s is %d; it must be between 1 and %d",
				o.OrbitName, o.NumOrientations, MaxNumOrientations)
		}
		if o.NumPieces < 1 || o.NumPieces > 255 {
			return nil, defErr("`numPieces` for orbit %s is %d; it must be between 1 and 255",
				o.OrbitName, o.NumPieces)
		}
	}

	// Derived move graph
	if err := checkDerivedMoves(def); err != nil {
		return nil, err
	}

	// Layout
	p := &Puzzle{
		definition:  def,
		name:        def.Name,
		moves:       make(map[alg.Move]*Transformation, len(def.Moves)),
		derivedAlgs: make(map[alg.Move]alg.Alg, len(def.DerivedMoves)),
		derived:     make(map[alg.Move]*Transformation, len(def.DerivedMoves)),
	}
	for key, a := range def.DerivedMoves {
		p.derivedAlgs[key] = a
	}
	offset := 0
	for _, o := range def.Orbits {
		info := &OrbitInfo{
			Name:               o.OrbitName,
			NumPieces:          o.NumPieces,
			NumOrientations:    o.NumOrientations,
			PiecesOffset:       offset,
			OrientationsOffset: offset + o.NumPieces,
			Packer:             newOrientationPacker(o.NumOrientations),
		}
		p.orbits = append(p.orbits, info)
		offset += o.NumPieces * 2

		cfg.logger.Debug("orbit layout",
			slog.String("puzzle", def.Name),
			slog.String("orbit", info.Name),
			slog.Int("pieces_offset", info.PiecesOffset),
			slog.Int("orientations_offset", info.OrientationsOffset),
			slog.Int("packed_codes", info.Packer.NumCodes()),
		)
	}
	p.numBytes = offset
	p.identity = p.newIdentity()

	// Default pattern
	defaultPattern, err := p.PatternFromData(def.DefaultPattern)
	if err != nil {
		return nil, &DefinitionError{
			Puzzle:      def.Name,
			Description: fmt.Sprintf("default pattern: %v", err),
			Err:         err,
		}
	}
	p.defaultPattern = defaultPattern

	// Primitive moves
	for _, key := range sortedMoveKeys(def.Moves) {
		t, err := p.TransformationFromData(def.Moves[key])
		if err != nil {
			return nil, &DefinitionError{
				Puzzle:      def.Name,
				Description: fmt.Sprintf("move %s: %v", key, err),
				Err:         err,
			}
		}
		p.moves[key] = t
	}

	// Derived moves. The graph is acyclic, so evaluating in any order
	// terminates; lookups fall back to evaluating uncached entries.
	if cfg.precomputeMoves {
		for _, key := range sortedMoveKeys(def.DerivedMoves) {
			t, err := p.TransformationFromAlg(def.DerivedMoves[key])
			if err != nil {
				return nil, &DefinitionError{
					Puzzle:      def.Name,
					Description: fmt.Sprintf("derived move %s: %v", key, err),
					Err:         err,
				}
			}
			p.derived[key] = t
		}
	}

	cfg.logger.Debug("puzzle built",
		slog.String("puzzle", def.Name),
		slog.Int("orbits", len(p.orbits)),
		slog.Int("bytes", p.numBytes),
		slog.Int("moves", len(p.moves)),
		slog.Int("derived_moves", len(def.DerivedMoves)),
	)

	return p, nil
}

// MustNew is like New but panics if the definition is invalid.
func MustNew(def *Definition, opts ...Option) *Puzzle {
	p, err := New(def, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the puzzle name.
func (p *Puzzle) Name() string {
	return p.name
}

// Definition returns the definition the puzzle was built from.
// It must be treated as read-only; changing it does not change the puzzle.
func (p *Puzzle) Definition() *Definition {
	return p.definition
}

// Orbits returns the orbit layouts in declaration order.
func (p *Puzzle) Orbits() []*OrbitInfo {
	return p.orbits
}

// LookupOrbit returns the layout of the named orbit.
func (p *Puzzle) LookupOrbit(name string) (*OrbitInfo, bool) {
	for _, o := range p.orbits {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// NumBytes returns the size of every packed buffer of this puzzle.
func (p *Puzzle) NumBytes() int {
	return p.numBytes
}

// IdentityTransformation returns a new identity transformation.
func (p *Puzzle) IdentityTransformation() *Transformation {
	return p.identity.Clone()
}

// DefaultPattern returns a new copy of the default pattern.
func (p *Puzzle) DefaultPattern() *Pattern {
	return p.defaultPattern.Clone()
}

// MoveKeys returns the primitive and derived move keys, sorted by notation.
func (p *Puzzle) MoveKeys() (primitive, derived []alg.Move) {
	return sortedMoveKeys(p.moves), sortedMoveKeys(p.derivedAlgs)
}

func (p *Puzzle) String() string {
	return fmt.Sprintf("Puzzle(%s, %d orbits, %d bytes)", p.Name(), len(p.orbits), p.numBytes)
}

func (p *Puzzle) newIdentity() *Transformation {
	t := &Transformation{data: p.newOrbitData()}
	for _, orbit := range p.orbits {
		for i := 0; i < orbit.NumPieces; i++ {
			t.data.bytes[orbit.PiecesOffset+i] = byte(i)
		}
	}
	return t
}

func sortedMoveKeys[V any](m map[alg.Move]V) []alg.Move {
	keys := make([]alg.Move, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Notation() < keys[j].Notation()
	})
	return keys
}
