package twisty

import (
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

type visitStatus int

const (
	unvisited visitStatus = iota
	inProgress
	done
)

// derivedMovesChecker walks the derived move table as a graph, where a
// derived move has an edge to every move key its alg resolves to.
type derivedMovesChecker struct {
	def      *Definition
	statuses map[alg.Move]visitStatus
}

// checkDerivedMoves rejects derived move definitions that refer to
// themselves, directly or through other derived moves, and definitions that
// use moves the puzzle does not have.
func checkDerivedMoves(def *Definition) error {
	if len(def.DerivedMoves) == 0 {
		return nil
	}
	c := &derivedMovesChecker{
		def:      def,
		statuses: make(map[alg.Move]visitStatus, len(def.DerivedMoves)),
	}
	for _, key := range sortedMoveKeys(def.DerivedMoves) {
		if err := c.visit(key); err != nil {
			return err
		}
	}
	return nil
}

func (c *derivedMovesChecker) visit(key alg.Move) error {
	switch c.statuses[key] {
	case inProgress:
		return &DefinitionError{
			Puzzle:      c.def.Name,
			Description: fmt.Sprintf("recursive derived move definition for: %s", key),
			Err:         ErrRecursiveDerived,
		}
	case done:
		return nil
	}
	c.statuses[key] = inProgress

	if a, ok := c.def.DerivedMoves[key]; ok {
		var lookupErr error
		a.Moves(func(m alg.Move) {
			if lookupErr != nil {
				return
			}
			found, ok := lookupMove(c.def.Moves, c.def.DerivedMoves, m)
			if !ok {
				lookupErr = &DefinitionError{
					Puzzle:      c.def.Name,
					Description: fmt.Sprintf("invalid move used in the definition of derived move %s: %s", key, m),
				}
				return
			}
			if found.source == sourceDerived {
				lookupErr = c.visit(found.key)
			}
		})
		if lookupErr != nil {
			return lookupErr
		}
	}

	c.statuses[key] = done
	return nil
}
