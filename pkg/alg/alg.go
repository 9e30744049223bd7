package alg

import (
	"strconv"
	"strings"
)

// Node is one element of an Alg. The set of node types is closed:
// Move, Pause, Newline, LineComment, Grouping, Commutator and Conjugate.
type Node interface {
	invertNode() Node
	writeTo(b *strings.Builder)
}

// Pause is a timing marker ("."). It has no effect on a puzzle.
type Pause struct{}

// Newline is a line break inside an alg. It has no effect on a puzzle.
type Newline struct{}

// LineComment is a "//" comment. It has no effect on a puzzle.
type LineComment struct {
	Text string
}

// Grouping is (Alg)Amount.
type Grouping struct {
	Alg    Alg
	Amount int
}

// Commutator is [A, B] = A B A' B'.
type Commutator struct {
	A Alg
	B Alg
}

// Conjugate is [A: B] = A B A'.
type Conjugate struct {
	A Alg
	B Alg
}

// Alg is a sequence of nodes.
type Alg struct {
	Nodes []Node
}

// New builds an alg from nodes.
func New(nodes ...Node) Alg {
	return Alg{Nodes: nodes}
}

// FromMoves builds an alg made only of moves.
func FromMoves(moves ...Move) Alg {
	nodes := make([]Node, len(moves))
	for i, m := range moves {
		nodes[i] = m
	}
	return Alg{Nodes: nodes}
}

// ParseMoveSequence parses a space-separated move sequence into an alg.
func ParseMoveSequence(s string) (Alg, error) {
	moves, err := ParseMoves(s)
	if err != nil {
		return Alg{}, err
	}
	return FromMoves(moves...), nil
}

// MustParseMoveSequence is like ParseMoveSequence but panics on invalid input.
func MustParseMoveSequence(s string) Alg {
	a, err := ParseMoveSequence(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Group returns (a)amount.
func Group(a Alg, amount int) Grouping {
	return Grouping{Alg: a, Amount: amount}
}

// Comm returns [a, b].
func Comm(a, b Alg) Commutator {
	return Commutator{A: a, B: b}
}

// Conj returns [a: b].
func Conj(a, b Alg) Conjugate {
	return Conjugate{A: a, B: b}
}

// Invert returns the inverse alg: nodes reversed, each one inverted.
func (a Alg) Invert() Alg {
	nodes := make([]Node, len(a.Nodes))
	for i, n := range a.Nodes {
		nodes[len(a.Nodes)-1-i] = n.invertNode()
	}
	return Alg{Nodes: nodes}
}

// Len returns the number of top-level nodes.
func (a Alg) Len() int {
	return len(a.Nodes)
}

// Moves calls fn for every move reachable in the alg, depth first.
func (a Alg) Moves(fn func(Move)) {
	for _, n := range a.Nodes {
		switch n := n.(type) {
		case Move:
			fn(n)
		case Grouping:
			n.Alg.Moves(fn)
		case Commutator:
			n.A.Moves(fn)
			n.B.Moves(fn)
		case Conjugate:
			n.A.Moves(fn)
			n.B.Moves(fn)
		}
	}
}

func (a Alg) String() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

func (a Alg) writeTo(b *strings.Builder) {
	for i, n := range a.Nodes {
		if i > 0 {
			if _, ok := a.Nodes[i-1].(Newline); !ok {
				if _, ok := n.(Newline); !ok {
					b.WriteByte(' ')
				}
			}
		}
		n.writeTo(b)
	}
}

func (m Move) invertNode() Node           { return m.Invert() }
func (m Move) writeTo(b *strings.Builder) { b.WriteString(m.Notation()) }

func (p Pause) invertNode() Node           { return p }
func (p Pause) writeTo(b *strings.Builder) { b.WriteByte('.') }

func (n Newline) invertNode() Node           { return n }
func (n Newline) writeTo(b *strings.Builder) { b.WriteByte('\n') }

func (c LineComment) invertNode() Node { return c }
func (c LineComment) writeTo(b *strings.Builder) {
	b.WriteString("//")
	b.WriteString(c.Text)
}

func (g Grouping) invertNode() Node {
	return Grouping{Alg: g.Alg, Amount: -g.Amount}
}

func (g Grouping) writeTo(b *strings.Builder) {
	b.WriteByte('(')
	g.Alg.writeTo(b)
	b.WriteByte(')')
	amount := g.Amount
	if amount < 0 {
		amount = -amount
	}
	if amount != 1 {
		b.WriteString(strconv.Itoa(amount))
	}
	if g.Amount < 0 {
		b.WriteByte('\'')
	}
}

// The inverse of [A, B] is [B, A].
func (c Commutator) invertNode() Node {
	return Commutator{A: c.B, B: c.A}
}

func (c Commutator) writeTo(b *strings.Builder) {
	b.WriteByte('[')
	c.A.writeTo(b)
	b.WriteString(", ")
	c.B.writeTo(b)
	b.WriteByte(']')
}

// The inverse of [A: B] is [A: B'].
func (c Conjugate) invertNode() Node {
	return Conjugate{A: c.A, B: c.B.Invert()}
}

func (c Conjugate) writeTo(b *strings.Builder) {
	b.WriteByte('[')
	c.A.writeTo(b)
	b.WriteString(": ")
	c.B.writeTo(b)
	b.WriteByte(']')
}
