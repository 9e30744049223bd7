// Package twisty evaluates move sequences on twisty puzzles described by
// data rather than code.
//
// A puzzle is a set of orbits. Each orbit holds a fixed number of pieces that
// can trade places with each other and carry an orientation. Moves are
// transformations of those orbits, and algs are trees of moves, groupings,
// commutators and conjugates built with package alg.
//
// # Features
//
//   - Puzzle definitions loaded from JSON (see ParseDefinitionJSON)
//   - Primitive and derived moves, including amounts and inverses
//   - Transformation algebra: compose, invert, repeat, order
//   - Patterns with partially known orientation (orientation modulus)
//   - Allocation-free buffers for replaying long sequences
//   - Puzzles are immutable and safe to share between goroutines
//
// # Quick Start
//
// Use a bundled puzzle and apply an alg to its default pattern:
//
//	p := puzzles.Cube3x3x3()
//
//	sexy := alg.MustParseMoveSequence("R U R' U'")
//	t, err := p.TransformationFromAlg(sexy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Order:", t.Order()) // 6
//
//	pattern := p.DefaultPattern().ApplyTransformation(t)
//	fmt.Println(pattern.Equal(p.DefaultPattern())) // false
//
// # Custom Puzzles
//
// Any definition that passes validation can be built:
//
//	def, err := twisty.ParseDefinitionJSON(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := twisty.New(def, twisty.WithLogger(slog.Default()))
//
// # Buffers
//
// PatternBuffer and TransformationBuffer keep two values and swap between
// them, so applying many moves does not allocate:
//
//	buf := twisty.NewPatternBuffer(p.DefaultPattern())
//	for _, t := range moves {
//	    buf.ApplyTransformation(t)
//	}
//	result := buf.Current()
package twisty
