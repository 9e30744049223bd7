package alg

import (
	"encoding/json"
	"fmt"
)

// Node type tags used in the JSON form of an alg.
const (
	TypeMove       = "move"
	TypePause      = "pause"
	TypeNewline    = "newline"
	TypeComment    = "comment"
	TypeGrouping   = "grouping"
	TypeCommutator = "commutator"
	TypeConjugate  = "conjugate"
)

// jsonNode is the wire form of a single node. Only the fields relevant to
// Type are set.
type jsonNode struct {
	Type   string `json:"type" yaml:"type"`
	Move   *Move  `json:"move,omitempty" yaml:"move,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Amount *int   `json:"amount,omitempty" yaml:"amount,omitempty"`
	Alg    *Alg   `json:"alg,omitempty" yaml:"alg,omitempty"`
	A      *Alg   `json:"a,omitempty" yaml:"a,omitempty"`
	B      *Alg   `json:"b,omitempty" yaml:"b,omitempty"`
}

// MarshalJSON encodes the alg as an array of tagged node objects.
func (a Alg) MarshalJSON() ([]byte, error) {
	nodes, err := a.wireNodes()
	if err != nil {
		return nil, err
	}
	return json.Marshal(nodes)
}

// MarshalYAML encodes the alg with the same node layout as MarshalJSON.
func (a Alg) MarshalYAML() (any, error) {
	return a.wireNodes()
}

func (a Alg) wireNodes() ([]jsonNode, error) {
	nodes := make([]jsonNode, 0, len(a.Nodes))
	for _, n := range a.Nodes {
		jn, err := toJSONNode(n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, jn)
	}
	return nodes, nil
}

// UnmarshalJSON decodes the array form written by MarshalJSON.
func (a *Alg) UnmarshalJSON(data []byte) error {
	var nodes []jsonNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return fmt.Errorf("failed to decode alg: %w", err)
	}
	a.Nodes = make([]Node, 0, len(nodes))
	for i, jn := range nodes {
		n, err := fromJSONNode(jn)
		if err != nil {
			return fmt.Errorf("alg node %d: %w", i, err)
		}
		a.Nodes = append(a.Nodes, n)
	}
	return nil
}

func toJSONNode(n Node) (jsonNode, error) {
	switch n := n.(type) {
	case Move:
		return jsonNode{Type: TypeMove, Move: &n}, nil
	case Pause:
		return jsonNode{Type: TypePause}, nil
	case Newline:
		return jsonNode{Type: TypeNewline}, nil
	case LineComment:
		return jsonNode{Type: TypeComment, Text: n.Text}, nil
	case Grouping:
		amount := n.Amount
		return jsonNode{Type: TypeGrouping, Alg: &n.Alg, Amount: &amount}, nil
	case Commutator:
		return jsonNode{Type: TypeCommutator, A: &n.A, B: &n.B}, nil
	case Conjugate:
		return jsonNode{Type: TypeConjugate, A: &n.A, B: &n.B}, nil
	default:
		return jsonNode{}, fmt.Errorf("unknown alg node %T", n)
	}
}

func fromJSONNode(jn jsonNode) (Node, error) {
	switch jn.Type {
	case TypeMove:
		if jn.Move == nil {
			return nil, fmt.Errorf("move node without move")
		}
		return *jn.Move, nil
	case TypePause:
		return Pause{}, nil
	case TypeNewline:
		return Newline{}, nil
	case TypeComment:
		return LineComment{Text: jn.Text}, nil
	case TypeGrouping:
		g := Grouping{Amount: 1}
		if jn.Alg != nil {
			g.Alg = *jn.Alg
		}
		if jn.Amount != nil {
			g.Amount = *jn.Amount
		}
		return g, nil
	case TypeCommutator, TypeConjugate:
		var a, b Alg
		if jn.A != nil {
			a = *jn.A
		}
		if jn.B != nil {
			b = *jn.B
		}
		if jn.Type == TypeCommutator {
			return Commutator{A: a, B: b}, nil
		}
		return Conjugate{A: a, B: b}, nil
	default:
		return nil, fmt.Errorf("unknown alg node type %q", jn.Type)
	}
}
