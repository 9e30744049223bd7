package twisty

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// Sentinel errors for the twisty package.
var (
	// Definition errors (permanent, reported by New)
	ErrInvalidDefinition = errors.New("twisty: invalid puzzle definition")
	ErrRecursiveDerived  = errors.New("twisty: recursive derived move definition")

	// Lookup errors (per call, the puzzle stays usable)
	ErrInvalidMove = errors.New("twisty: move does not exist on this puzzle")

	// Data errors (one conversion)
	ErrInvalidPatternData = errors.New("twisty: invalid pattern data")
)

// DefinitionError describes a structural problem found while building a
// Puzzle. A definition that fails once always fails.
type DefinitionError struct {
	Puzzle      string
	Description string
	// Err is the more specific cause, if any.
	Err error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid definition for puzzle %q: %s", e.Puzzle, e.Description)
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// MoveError is returned when a move cannot be resolved against a puzzle.
type MoveError struct {
	Move   alg.Move
	Puzzle string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move does not exist on puzzle %q: %s", e.Puzzle, e.Move)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// PatternDataError is returned when externally supplied pattern or
// transformation data does not match the puzzle's orbit shapes.
type PatternDataError struct {
	Orbit       string
	Description string
}

func (e *PatternDataError) Error() string {
	if e.Orbit == "" {
		return "invalid pattern data: " + e.Description
	}
	return fmt.Sprintf("invalid pattern data for orbit %s: %s", e.Orbit, e.Description)
}

func (e *PatternDataError) Is(target error) bool {
	return target == ErrInvalidPatternData
}
