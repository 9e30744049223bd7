package twisty

import "github.com/SeamusWaldron/twisty/pkg/alg"

type moveSource int

const (
	sourcePrimitive moveSource = iota
	sourceDerived
)

// moveLookup is where a requested move was found and the amount the stored
// transformation must be raised to.
type moveLookup struct {
	key            alg.Move
	relativeAmount int
	source         moveSource
}

// lookupMove resolves m against a primitive and a derived move table, in order of
// commonality:
//  1. the amount-1 key in the primitive table (R2 -> R, amount 2)
//  2. the amount-1 key in the derived table
//  3. an exact match in either table (notations like y2 that are not
//     amount-parameterized)
//  4. the exact inverse in either table, at amount -1
//
// Only key presence is consulted, so it works both on a Definition's raw
// tables and on the tables a Puzzle owns.
func lookupMove[P, D any](primitive map[alg.Move]P, derived map[alg.Move]D, m alg.Move) (moveLookup, bool) {
	canonical := m.Canonical()
	if _, ok := primitive[canonical]; ok {
		return moveLookup{key: canonical, relativeAmount: m.Amount, source: sourcePrimitive}, true
	}
	if _, ok := derived[canonical]; ok {
		return moveLookup{key: canonical, relativeAmount: m.Amount, source: sourceDerived}, true
	}

	if _, ok := primitive[m]; ok {
		return moveLookup{key: m, relativeAmount: 1, source: sourcePrimitive}, true
	}
	if _, ok := derived[m]; ok {
		return moveLookup{key: m, relativeAmount: 1, source: sourceDerived}, true
	}

	inverse := m.Invert()
	if _, ok := primitive[inverse]; ok {
		return moveLookup{key: inverse, relativeAmount: -1, source: sourcePrimitive}, true
	}
	if _, ok := derived[inverse]; ok {
		return moveLookup{key: inverse, relativeAmount: -1, source: sourceDerived}, true
	}

	return moveLookup{}, false
}

// HasMove reports whether m resolves on this puzzle.
func (p *Puzzle) HasMove(m alg.Move) bool {
	_, ok := lookupMove(p.moves, p.derivedAlgs, m)
	return ok
}

// TransformationFromMove returns the transformation of a single move.
// An unknown move returns a *MoveError; the puzzle stays usable.
func (p *Puzzle) TransformationFromMove(m alg.Move) (*Transformation, error) {
	found, ok := lookupMove(p.moves, p.derivedAlgs, m)
	if !ok {
		return nil, &MoveError{Move: m, Puzzle: p.Name()}
	}

	var t *Transformation
	switch found.source {
	case sourcePrimitive:
		t = p.moves[found.key]
	case sourceDerived:
		t = p.derived[found.key]
		if t == nil {
			var err error
			t, err = p.TransformationFromAlg(p.derivedAlgs[found.key])
			if err != nil {
				return nil, err
			}
		}
	}
	return t.SelfMultiply(found.relativeAmount), nil
}
