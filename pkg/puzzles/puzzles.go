// Package puzzles ships built-in twisty puzzle definitions.
package puzzles

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/SeamusWaldron/twisty"
)

var (
	//go:embed 3x3x3.kpuzzle.json
	cube3x3x3JSON []byte

	//go:embed 2x2x2.kpuzzle.json
	cube2x2x2JSON []byte
)

// Names of the built-in puzzles.
const (
	Cube3x3x3Name = "3x3x3"
	Cube2x2x2Name = "2x2x2"
)

type entry struct {
	data   []byte
	puzzle func() *twisty.Puzzle
}

var catalog = map[string]*entry{
	Cube3x3x3Name: newEntry(cube3x3x3JSON),
	Cube2x2x2Name: newEntry(cube2x2x2JSON),
}

func newEntry(data []byte) *entry {
	e := &entry{data: data}
	e.puzzle = sync.OnceValue(func() *twisty.Puzzle {
		return twisty.MustNew(mustDecode(e.data))
	})
	return e
}

func mustDecode(data []byte) *twisty.Definition {
	def, err := twisty.ParseDefinitionJSON(data)
	if err != nil {
		panic(err)
	}
	return def
}

// Cube3x3x3Definition returns a fresh copy of the 3x3x3 definition.
// Orbits EDGES, CORNERS and CENTERS; centers carry orientation modulus 1.
func Cube3x3x3Definition() *twisty.Definition {
	return mustDecode(cube3x3x3JSON)
}

// Cube3x3x3 returns the shared 3x3x3 puzzle.
func Cube3x3x3() *twisty.Puzzle {
	return catalog[Cube3x3x3Name].puzzle()
}

// Cube2x2x2 returns the shared 2x2x2 puzzle.
func Cube2x2x2() *twisty.Puzzle {
	return catalog[Cube2x2x2Name].puzzle()
}

// Get returns the shared built-in puzzle with the given name.
func Get(name string) (*twisty.Puzzle, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in puzzle: %s", name)
	}
	return e.puzzle(), nil
}

// Definition returns a fresh copy of the named built-in definition.
func Definition(name string) (*twisty.Definition, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in puzzle: %s", name)
	}
	return mustDecode(e.data), nil
}

// Names returns the built-in puzzle names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
