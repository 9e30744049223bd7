package twisty

import (
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// TransformationFromAlg evaluates a to its net transformation. Pauses,
// newlines and comments are the identity. The first move that does not
// resolve aborts evaluation with a *MoveError.
func (p *Puzzle) TransformationFromAlg(a alg.Alg) (*Transformation, error) {
	buf := NewTransformationBuffer(p.IdentityTransformation())
	for _, node := range a.Nodes {
		t, err := p.transformationFromNode(node)
		if err != nil {
			return nil, err
		}
		if t != nil {
			buf.ApplyTransformation(t)
		}
	}
	return buf.Current(), nil
}

// transformationFromNode returns nil for nodes with no effect.
func (p *Puzzle) transformationFromNode(node alg.Node) (*Transformation, error) {
	switch n := node.(type) {
	case alg.Move:
		return p.TransformationFromMove(n)
	case alg.Pause, alg.Newline, alg.LineComment:
		return nil, nil
	case alg.Grouping:
		t, err := p.TransformationFromAlg(n.Alg)
		if err != nil {
			return nil, err
		}
		return t.SelfMultiply(n.Amount), nil
	case alg.Commutator:
		a, b, err := p.evaluatePair(n.A, n.B)
		if err != nil {
			return nil, err
		}
		return a.Apply(b).Apply(a.Invert()).Apply(b.Invert()), nil
	case alg.Conjugate:
		a, b, err := p.evaluatePair(n.A, n.B)
		if err != nil {
			return nil, err
		}
		return a.Apply(b).Apply(a.Invert()), nil
	default:
		return nil, fmt.Errorf("twisty: unsupported alg node %T", node)
	}
}

func (p *Puzzle) evaluatePair(a, b alg.Alg) (*Transformation, *Transformation, error) {
	ta, err := p.TransformationFromAlg(a)
	if err != nil {
		return nil, nil, err
	}
	tb, err := p.TransformationFromAlg(b)
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

// PatternFromAlg applies a to the puzzle's default pattern.
func (p *Puzzle) PatternFromAlg(a alg.Alg) (*Pattern, error) {
	return p.defaultPattern.ApplyAlg(a)
}
