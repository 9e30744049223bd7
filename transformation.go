package twisty

import "fmt"

// Transformation is the net effect of a move or a sequence of moves,
// independent of any starting pattern: slot i takes its piece from old slot
// Permutation[i] and adds OrientationDelta[i] to that piece's orientation.
//
// Transformations are values. Apply, Invert and SelfMultiply always return a
// new Transformation; only the Into variants and the Set methods write to an
// existing one.
type Transformation struct {
	data orbitData
}

func (p *Puzzle) newTransformation() *Transformation {
	return &Transformation{data: p.newOrbitData()}
}

// TransformationFromData builds a transformation from its plain form,
// validating it against the puzzle's orbits.
func (p *Puzzle) TransformationFromData(data TransformationData) (*Transformation, error) {
	t := p.newTransformation()
	for _, orbit := range p.orbits {
		orbitData, ok := data[orbit.Name]
		if !ok {
			return nil, &PatternDataError{Orbit: orbit.Name, Description: "missing orbit"}
		}
		if len(orbitData.Permutation) != orbit.NumPieces || len(orbitData.OrientationDelta) != orbit.NumPieces {
			return nil, &PatternDataError{
				Orbit: orbit.Name,
				Description: fmt.Sprintf("expected %d entries, got %d permutation and %d orientationDelta",
					orbit.NumPieces, len(orbitData.Permutation), len(orbitData.OrientationDelta)),
			}
		}
		used := make([]bool, orbit.NumPieces)
		for i := 0; i < orbit.NumPieces; i++ {
			from := orbitData.Permutation[i]
			if from < 0 || from >= orbit.NumPieces || used[from] {
				return nil, &PatternDataError{
					Orbit:       orbit.Name,
					Description: fmt.Sprintf("permutation is not a permutation of 0..%d (index %d)", orbit.NumPieces-1, i),
				}
			}
			used[from] = true
			delta := orbitData.OrientationDelta[i]
			if delta < 0 || delta >= orbit.NumOrientations {
				return nil, &PatternDataError{
					Orbit:       orbit.Name,
					Description: fmt.Sprintf("orientationDelta %d at index %d is not below %d", delta, i, orbit.NumOrientations),
				}
			}
			t.SetPermutationIndexUnchecked(orbit, i, byte(from))
			t.SetOrientationDeltaUnchecked(orbit, i, byte(delta))
		}
	}
	return t, nil
}

// ToData returns the plain form of the transformation.
func (t *Transformation) ToData() TransformationData {
	data := make(TransformationData, len(t.data.puzzle.orbits))
	for _, orbit := range t.data.puzzle.orbits {
		od := TransformationOrbitData{
			Permutation:      make([]int, orbit.NumPieces),
			OrientationDelta: make([]int, orbit.NumPieces),
		}
		for i := 0; i < orbit.NumPieces; i++ {
			od.Permutation[i] = int(t.PermutationIndexUnchecked(orbit, i))
			od.OrientationDelta[i] = int(t.OrientationDeltaUnchecked(orbit, i))
		}
		data[orbit.Name] = od
	}
	return data
}

// Puzzle returns the puzzle the transformation belongs to.
func (t *Transformation) Puzzle() *Puzzle {
	return t.data.puzzle
}

// PermutationIndex returns the slot that slot i takes its piece from.
// It panics if i is outside the orbit.
func (t *Transformation) PermutationIndex(orbit *OrbitInfo, i int) byte {
	return t.data.pieceOrPermutation(orbit, i)
}

// PermutationIndexUnchecked is PermutationIndex without the range check.
func (t *Transformation) PermutationIndexUnchecked(orbit *OrbitInfo, i int) byte {
	return t.data.bytes[orbit.PiecesOffset+i]
}

// OrientationDelta returns the orientation added at slot i.
// It panics if i is outside the orbit.
func (t *Transformation) OrientationDelta(orbit *OrbitInfo, i int) byte {
	return t.data.orientation(orbit, i)
}

// OrientationDeltaUnchecked is OrientationDelta without the range check.
func (t *Transformation) OrientationDeltaUnchecked(orbit *OrbitInfo, i int) byte {
	return t.data.bytes[orbit.OrientationsOffset+i]
}

// SetPermutationIndex sets the permutation entry of slot i.
// It panics if i or value is outside the orbit.
func (t *Transformation) SetPermutationIndex(orbit *OrbitInfo, i int, value byte) {
	if int(value) >= orbit.NumPieces {
		panic("twisty: permutation index out of range for orbit " + orbit.Name)
	}
	t.data.setPieceOrPermutation(orbit, i, value)
}

// SetPermutationIndexUnchecked is SetPermutationIndex without range checks.
func (t *Transformation) SetPermutationIndexUnchecked(orbit *OrbitInfo, i int, value byte) {
	t.data.bytes[orbit.PiecesOffset+i] = value
}

// SetOrientationDelta sets the orientation delta of slot i.
// It panics if i or delta is outside the orbit.
func (t *Transformation) SetOrientationDelta(orbit *OrbitInfo, i int, delta byte) {
	if int(delta) >= orbit.NumOrientations {
		panic("twisty: orientation delta out of range for orbit " + orbit.Name)
	}
	t.data.setOrientation(orbit, i, delta)
}

// SetOrientationDeltaUnchecked is SetOrientationDelta without range checks.
func (t *Transformation) SetOrientationDeltaUnchecked(orbit *OrbitInfo, i int, delta byte) {
	t.data.bytes[orbit.OrientationsOffset+i] = delta
}

// Apply returns t followed by other.
func (t *Transformation) Apply(other *Transformation) *Transformation {
	result := t.data.puzzle.newTransformation()
	t.ApplyInto(other, result)
	return result
}

// ApplyInto writes t followed by other into dst. dst must not be t or other.
func (t *Transformation) ApplyInto(other, dst *Transformation) {
	p := t.data.puzzle
	p.mustMatch(other.data.puzzle)
	p.mustMatch(dst.data.puzzle)

	src, next, out := t.data.bytes, other.data.bytes, dst.data.bytes
	for _, orbit := range p.orbits {
		n := byte(orbit.NumOrientations)
		pieces, orientations := orbit.PiecesOffset, orbit.OrientationsOffset
		for i := 0; i < orbit.NumPieces; i++ {
			from := int(next[pieces+i])
			out[pieces+i] = src[pieces+from]
			out[orientations+i] = (src[orientations+from] + next[orientations+i]) % n
		}
	}
}

// Invert returns the transformation that undoes t.
func (t *Transformation) Invert() *Transformation {
	p := t.data.puzzle
	result := p.newTransformation()
	src, out := t.data.bytes, result.data.bytes
	for _, orbit := range p.orbits {
		n := byte(orbit.NumOrientations)
		pieces, orientations := orbit.PiecesOffset, orbit.OrientationsOffset
		for i := 0; i < orbit.NumPieces; i++ {
			from := int(src[pieces+i])
			out[pieces+from] = byte(i)
			out[orientations+from] = (n - src[orientations+i]) % n
		}
	}
	return result
}

// SelfMultiply returns t applied amount times. Negative amounts repeat the
// inverse. It uses repeated squaring, so large amounts are cheap, and
// allocates the same amount regardless of amount.
func (t *Transformation) SelfMultiply(amount int) *Transformation {
	switch {
	case amount == 0:
		return t.data.puzzle.IdentityTransformation()
	case amount < 0:
		return t.Invert().SelfMultiply(-amount)
	case amount == 1:
		return t.Clone()
	}

	result := t.data.puzzle.IdentityTransformation()
	scratch := t.data.puzzle.newTransformation()
	base := t.Clone()
	for {
		if amount&1 == 1 {
			result.ApplyInto(base, scratch)
			result, scratch = scratch, result
		}
		amount >>= 1
		if amount == 0 {
			return result
		}
		base.ApplyInto(base, scratch)
		base, scratch = scratch, base
	}
}

// IsIdentity reports whether t leaves every piece in place unchanged.
func (t *Transformation) IsIdentity() bool {
	return t.Equal(t.data.puzzle.identity)
}

// Order returns the smallest k > 0 such that t applied k times is the
// identity. It is computed from the cycle structure: a cycle of length l
// whose orientation deltas sum to s in an orbit with n orientations closes
// after l * n/gcd(s, n) applications.
func (t *Transformation) Order() int {
	order := 1
	src := t.data.bytes
	for _, orbit := range t.data.puzzle.orbits {
		n := orbit.NumOrientations
		visited := make([]bool, orbit.NumPieces)
		for start := 0; start < orbit.NumPieces; start++ {
			if visited[start] {
				continue
			}
			length, sum := 0, 0
			for i := start; !visited[i]; i = int(src[orbit.PiecesOffset+i]) {
				visited[i] = true
				length++
				sum += int(src[orbit.OrientationsOffset+i])
			}
			order = lcm(order, length*(n/gcd(sum%n, n)))
		}
	}
	return order
}

// Equal reports whether both transformations have identical bytes.
func (t *Transformation) Equal(other *Transformation) bool {
	return t.data.equal(&other.data)
}

// Hash returns a hash of the packed bytes, consistent with Equal.
func (t *Transformation) Hash() uint64 {
	return t.data.hash()
}

// Fingerprint returns the BLAKE3 digest of the packed bytes.
func (t *Transformation) Fingerprint() [32]byte {
	return t.data.fingerprint()
}

// Clone returns an independent copy.
func (t *Transformation) Clone() *Transformation {
	return &Transformation{data: t.data.clone()}
}

// Bytes returns a copy of the packed bytes. The layout is only stable within
// one process.
func (t *Transformation) Bytes() []byte {
	return append([]byte(nil), t.data.bytes...)
}

func (t *Transformation) String() string {
	return fmt.Sprintf("Transformation(%s, %v)", t.data.puzzle.Name(), t.data.bytes)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
