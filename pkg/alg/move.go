// Package alg contains the move-expression tree consumed by the twisty engine:
// moves, groupings, commutators, conjugates and the non-moving nodes.
package alg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned when a move token cannot be parsed.
var ErrInvalidNotation = errors.New("alg: invalid move notation")

// QuantumMove is a move identity without its amount: a family ("R", "Rw",
// "y") plus an optional layer or range prefix ("2R", "2-3Rw").
//
// InnerLayer == 0 means no prefix. OuterLayer is only meaningful together with
// InnerLayer and turns the prefix into a range.
type QuantumMove struct {
	Family     string
	OuterLayer uint32
	InnerLayer uint32
}

// HasPrefix reports whether the quantum move carries a layer or range prefix.
func (q QuantumMove) HasPrefix() bool {
	return q.InnerLayer != 0
}

// IsRange reports whether the prefix is an outer-inner range.
func (q QuantumMove) IsRange() bool {
	return q.InnerLayer != 0 && q.OuterLayer != 0
}

func (q QuantumMove) String() string {
	switch {
	case q.IsRange():
		return fmt.Sprintf("%d-%d%s", q.OuterLayer, q.InnerLayer, q.Family)
	case q.HasPrefix():
		return fmt.Sprintf("%d%s", q.InnerLayer, q.Family)
	default:
		return q.Family
	}
}

// Move is a quantum move with an amount. R is amount 1, R2 is 2, R' is -1.
// Move is comparable and is used directly as a table key.
type Move struct {
	Quantum QuantumMove
	Amount  int
}

// NewMove returns an unprefixed move.
func NewMove(family string, amount int) Move {
	return Move{Quantum: QuantumMove{Family: family}, Amount: amount}
}

// WithAmount returns a copy of the move with the given amount.
func (m Move) WithAmount(amount int) Move {
	m.Amount = amount
	return m
}

// Canonical returns the amount-1 form of the move, the key primitive moves
// are normally stored under.
func (m Move) Canonical() Move {
	return m.WithAmount(1)
}

// Invert returns the inverse of the move.
// R becomes R', R2' becomes R2.
func (m Move) Invert() Move {
	m.Amount = -m.Amount
	return m
}

// Notation returns the move token: R, R', R2, 2R, 2-3Rw2'.
func (m Move) Notation() string {
	var b strings.Builder
	b.WriteString(m.Quantum.String())
	amount := m.Amount
	if amount < 0 {
		amount = -amount
	}
	if amount != 1 {
		b.WriteString(strconv.Itoa(amount))
	}
	if m.Amount < 0 {
		b.WriteByte('\'')
	}
	return b.String()
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// MarshalText encodes the move as its token, so moves can key JSON objects.
func (m Move) MarshalText() ([]byte, error) {
	if m.Quantum.Family == "" {
		return nil, ErrInvalidNotation
	}
	return []byte(m.Notation()), nil
}

// UnmarshalText decodes a move token.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMove parses a single move token.
// Examples: R, R', R2, R2', 2R, 3-4Rw, y2, BR3'
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var q QuantumMove
	i := 0

	// Prefix: N or N-M
	first, n := scanDigits(s, i)
	if n > 0 {
		i += n
		if i < len(s) && s[i] == '-' {
			second, m := scanDigits(s, i+1)
			if m == 0 {
				return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
			}
			q.OuterLayer = first
			q.InnerLayer = second
			i += 1 + m
		} else {
			q.InnerLayer = first
		}
		if q.InnerLayer == 0 {
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	// Family
	start := i
	for i < len(s) && isFamilyByte(s[i]) {
		i++
	}
	if i == start {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	q.Family = s[start:i]

	// Amount
	amount := 1
	value, n := scanDigits(s, i)
	if n > 0 {
		amount = int(value)
		i += n
	}
	if i < len(s) && (s[i] == '\'' || s[i] == '`') {
		amount = -amount
		i++
	}
	if i != len(s) {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Move{Quantum: q, Amount: amount}, nil
}

// MustParseMove is like ParseMove but panics on invalid input.
// Intended for package-level tables and tests.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoves parses a space-separated sequence of move tokens.
// Example: "R U R' U'"
// Only plain moves are accepted; nested structure is built with the node types.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

func isFamilyByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scanDigits reads a run of decimal digits starting at i.
func scanDigits(s string, i int) (uint32, int) {
	var value uint64
	n := 0
	for i+n < len(s) && s[i+n] >= '0' && s[i+n] <= '9' {
		value = value*10 + uint64(s[i+n]-'0')
		if value > 1<<31 {
			return 0, 0
		}
		n++
	}
	return uint32(value), n
}
