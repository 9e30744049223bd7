// twisty - CLI for simulating twisty puzzles and managing a library of
// definitions, algs and pattern snapshots.
package main

import (
	"github.com/SeamusWaldron/twisty/internal/cli"
)

func main() {
	cli.Execute()
}
