package twisty

import "fmt"

// MaxNumOrientations is the largest orientation count an orbit may declare.
// Every (orientation, modulus) pair of an orbit with n orientations needs one
// packed code per divisor-sized slot, sigma(n) codes in total, and sigma(n)
// stays below 256 for every n up to 107.
const MaxNumOrientations = 107

// OrientationWithMod is a piece orientation together with the piece's own
// orientation modulus.
//
// OrientationMod == 0 means the orbit's full orientation count applies.
// A nonzero OrientationMod must divide the orbit's orientation count; pieces
// that look identical after a fraction of a turn use it so that, for example,
// a center with modulus 1 never records a twist.
type OrientationWithMod struct {
	Orientation    byte
	OrientationMod byte
}

// OrientationPacker packs OrientationWithMod values of one orbit into single
// bytes and composes orientation deltas on the packed form.
//
// Packed codes 0..n-1 are the modulus-0 orientations, so a packed modulus-0
// value equals its orientation. Each proper divisor d of n, in ascending
// order, follows with d codes.
type OrientationPacker struct {
	numOrientations int
	// base[mod] is the first code used by modulus mod, or -1 if mod does not
	// divide numOrientations. base[numOrientations] aliases base[0].
	base      []int
	unpacked  []OrientationWithMod
	transform []byte // [packed*numOrientations + delta]
}

func newOrientationPacker(numOrientations int) *OrientationPacker {
	n := numOrientations
	op := &OrientationPacker{
		numOrientations: n,
		base:            make([]int, n+1),
	}
	for i := range op.base {
		op.base[i] = -1
	}

	op.base[0] = 0
	op.base[n] = 0
	for o := 0; o < n; o++ {
		op.unpacked = append(op.unpacked, OrientationWithMod{Orientation: byte(o)})
	}
	for d := 1; d < n; d++ {
		if n%d != 0 {
			continue
		}
		op.base[d] = len(op.unpacked)
		for o := 0; o < d; o++ {
			op.unpacked = append(op.unpacked, OrientationWithMod{
				Orientation:    byte(o),
				OrientationMod: byte(d),
			})
		}
	}

	op.transform = make([]byte, len(op.unpacked)*n)
	for packed, v := range op.unpacked {
		mod := int(v.OrientationMod)
		if mod == 0 {
			mod = n
		}
		for delta := 0; delta < n; delta++ {
			next := (int(v.Orientation) + delta) % mod
			op.transform[packed*n+delta] = byte(op.base[v.OrientationMod] + next)
		}
	}
	return op
}

// NumOrientations returns the orbit's orientation count.
func (op *OrientationPacker) NumOrientations() int {
	return op.numOrientations
}

// NumCodes returns how many packed codes the orbit uses.
func (op *OrientationPacker) NumCodes() int {
	return len(op.unpacked)
}

// Validate reports whether v can be packed for this orbit.
func (op *OrientationPacker) Validate(v OrientationWithMod) error {
	mod := int(v.OrientationMod)
	if mod > op.numOrientations || op.base[mod] < 0 {
		return fmt.Errorf("orientation modulus %d does not divide %d", mod, op.numOrientations)
	}
	if mod == 0 {
		mod = op.numOrientations
	}
	if int(v.Orientation) >= mod {
		return fmt.Errorf("orientation %d is not below modulus %d", v.Orientation, mod)
	}
	return nil
}

// Pack encodes v. A modulus equal to the orientation count packs like
// modulus 0. Pack panics if v is invalid.
func (op *OrientationPacker) Pack(v OrientationWithMod) byte {
	if err := op.Validate(v); err != nil {
		panic("twisty: " + err.Error())
	}
	return op.PackUnchecked(v)
}

// PackUnchecked encodes v without validating it. The caller guarantees v is
// valid for this orbit.
func (op *OrientationPacker) PackUnchecked(v OrientationWithMod) byte {
	return byte(op.base[v.OrientationMod] + int(v.Orientation))
}

// Unpack decodes a packed value.
func (op *OrientationPacker) Unpack(packed byte) OrientationWithMod {
	return op.unpacked[packed]
}

// Transform adds delta to the orientation held in packed, modulo the piece's
// effective modulus, keeping the modulus. delta must be below the orbit's
// orientation count.
func (op *OrientationPacker) Transform(packed, delta byte) byte {
	return op.transform[int(packed)*op.numOrientations+int(delta)]
}
