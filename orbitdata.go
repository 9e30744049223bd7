package twisty

import (
	"bytes"
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// OrbitInfo is the fixed layout of one orbit inside every packed buffer of a
// puzzle. Buffers hold, per orbit in declaration order, NumPieces
// piece/permutation bytes followed by NumPieces orientation bytes.
type OrbitInfo struct {
	Name               string
	NumPieces          int
	NumOrientations    int
	PiecesOffset       int
	OrientationsOffset int
	Packer             *OrientationPacker
}

// orbitData is the byte storage shared by Pattern and Transformation.
// It is only ever allocated through Puzzle.newOrbitData so its length always
// matches the puzzle layout.
type orbitData struct {
	puzzle *Puzzle
	bytes  []byte
}

func (p *Puzzle) newOrbitData() orbitData {
	return orbitData{puzzle: p, bytes: make([]byte, p.numBytes)}
}

func (d *orbitData) clone() orbitData {
	c := d.puzzle.newOrbitData()
	copy(c.bytes, d.bytes)
	return c
}

func (d *orbitData) copyFrom(src *orbitData) {
	copy(d.bytes, src.bytes)
}

func (d *orbitData) equal(other *orbitData) bool {
	return bytes.Equal(d.bytes, other.bytes)
}

func (d *orbitData) fingerprint() [32]byte {
	return blake3.Sum256(d.bytes)
}

func (d *orbitData) hash() uint64 {
	sum := d.fingerprint()
	return binary.LittleEndian.Uint64(sum[:8])
}

// Checked accessors. They panic when i is outside the orbit.

func (d *orbitData) pieceOrPermutation(orbit *OrbitInfo, i int) byte {
	checkIndex(orbit, i)
	return d.bytes[orbit.PiecesOffset+i]
}

func (d *orbitData) setPieceOrPermutation(orbit *OrbitInfo, i int, value byte) {
	checkIndex(orbit, i)
	d.bytes[orbit.PiecesOffset+i] = value
}

func (d *orbitData) orientation(orbit *OrbitInfo, i int) byte {
	checkIndex(orbit, i)
	return d.bytes[orbit.OrientationsOffset+i]
}

func (d *orbitData) setOrientation(orbit *OrbitInfo, i int, value byte) {
	checkIndex(orbit, i)
	d.bytes[orbit.OrientationsOffset+i] = value
}

func checkIndex(orbit *OrbitInfo, i int) {
	if i < 0 || i >= orbit.NumPieces {
		panic("twisty: index out of range for orbit " + orbit.Name)
	}
}

func (p *Puzzle) mustMatch(other *Puzzle) {
	if p != other {
		panic("twisty: values from different puzzles cannot be combined")
	}
}
