package twisty

import (
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// Pattern is a concrete puzzle state: which piece sits in each slot and how
// it is oriented. Orientations are stored packed together with each piece's
// orientation modulus, see OrientationPacker.
type Pattern struct {
	data orbitData
}

func (p *Puzzle) newPattern() *Pattern {
	return &Pattern{data: p.newOrbitData()}
}

// PatternFromData builds a pattern from its plain form, validating it against
// the puzzle's orbits.
func (p *Puzzle) PatternFromData(data PatternData) (*Pattern, error) {
	pattern := p.newPattern()
	for _, orbit := range p.orbits {
		orbitData, ok := data[orbit.Name]
		if !ok {
			return nil, &PatternDataError{Orbit: orbit.Name, Description: "missing orbit"}
		}
		if len(orbitData.Pieces) != orbit.NumPieces || len(orbitData.Orientation) != orbit.NumPieces {
			return nil, &PatternDataError{
				Orbit: orbit.Name,
				Description: fmt.Sprintf("expected %d entries, got %d pieces and %d orientation",
					orbit.NumPieces, len(orbitData.Pieces), len(orbitData.Orientation)),
			}
		}
		if orbitData.OrientationMod != nil && len(orbitData.OrientationMod) != orbit.NumPieces {
			return nil, &PatternDataError{
				Orbit:       orbit.Name,
				Description: fmt.Sprintf("expected %d orientationMod entries, got %d", orbit.NumPieces, len(orbitData.OrientationMod)),
			}
		}
		for i := 0; i < orbit.NumPieces; i++ {
			piece := orbitData.Pieces[i]
			if piece < 0 || piece > 255 {
				return nil, &PatternDataError{
					Orbit:       orbit.Name,
					Description: fmt.Sprintf("piece %d at index %d does not fit in a byte", piece, i),
				}
			}
			orientation, mod := orbitData.Orientation[i], 0
			if orbitData.OrientationMod != nil {
				mod = orbitData.OrientationMod[i]
			}
			if orientation < 0 || orientation > 255 || mod < 0 || mod > 255 {
				return nil, &PatternDataError{
					Orbit:       orbit.Name,
					Description: fmt.Sprintf("orientation %d with modulus %d at index %d is out of range", orientation, mod, i),
				}
			}
			v := OrientationWithMod{Orientation: byte(orientation), OrientationMod: byte(mod)}
			if err := orbit.Packer.Validate(v); err != nil {
				return nil, &PatternDataError{
					Orbit:       orbit.Name,
					Description: fmt.Sprintf("index %d: %v", i, err),
				}
			}
			pattern.SetPieceUnchecked(orbit, i, byte(piece))
			pattern.SetOrientationWithModUnchecked(orbit, i, v)
		}
	}
	return pattern, nil
}

// ToData returns the plain form of the pattern. OrientationMod is omitted for
// orbits where every piece has modulus 0.
func (pt *Pattern) ToData() PatternData {
	data := make(PatternData, len(pt.data.puzzle.orbits))
	for _, orbit := range pt.data.puzzle.orbits {
		od := PatternOrbitData{
			Pieces:      make([]int, orbit.NumPieces),
			Orientation: make([]int, orbit.NumPieces),
		}
		mods := make([]int, orbit.NumPieces)
		anyMod := false
		for i := 0; i < orbit.NumPieces; i++ {
			v := pt.OrientationWithModUnchecked(orbit, i)
			od.Pieces[i] = int(pt.PieceUnchecked(orbit, i))
			od.Orientation[i] = int(v.Orientation)
			mods[i] = int(v.OrientationMod)
			anyMod = anyMod || v.OrientationMod != 0
		}
		if anyMod {
			od.OrientationMod = mods
		}
		data[orbit.Name] = od
	}
	return data
}

// Puzzle returns the puzzle the pattern belongs to.
func (pt *Pattern) Puzzle() *Puzzle {
	return pt.data.puzzle
}

// Piece returns the piece in slot i. It panics if i is outside the orbit.
func (pt *Pattern) Piece(orbit *OrbitInfo, i int) byte {
	return pt.data.pieceOrPermutation(orbit, i)
}

// PieceUnchecked is Piece without the range check.
func (pt *Pattern) PieceUnchecked(orbit *OrbitInfo, i int) byte {
	return pt.data.bytes[orbit.PiecesOffset+i]
}

// SetPiece sets the piece in slot i. It panics if i is outside the orbit.
func (pt *Pattern) SetPiece(orbit *OrbitInfo, i int, piece byte) {
	pt.data.setPieceOrPermutation(orbit, i, piece)
}

// SetPieceUnchecked is SetPiece without the range check.
func (pt *Pattern) SetPieceUnchecked(orbit *OrbitInfo, i int, piece byte) {
	pt.data.bytes[orbit.PiecesOffset+i] = piece
}

// OrientationWithMod returns the unpacked orientation of slot i.
// It panics if i is outside the orbit.
func (pt *Pattern) OrientationWithMod(orbit *OrbitInfo, i int) OrientationWithMod {
	return orbit.Packer.Unpack(pt.data.orientation(orbit, i))
}

// OrientationWithModUnchecked is OrientationWithMod without the range check.
func (pt *Pattern) OrientationWithModUnchecked(orbit *OrbitInfo, i int) OrientationWithMod {
	return orbit.Packer.Unpack(pt.data.bytes[orbit.OrientationsOffset+i])
}

// SetOrientationWithMod sets the orientation of slot i. It panics if i is
// outside the orbit or v cannot be packed for it.
func (pt *Pattern) SetOrientationWithMod(orbit *OrbitInfo, i int, v OrientationWithMod) {
	pt.data.setOrientation(orbit, i, orbit.Packer.Pack(v))
}

// SetOrientationWithModUnchecked is SetOrientationWithMod without checks.
func (pt *Pattern) SetOrientationWithModUnchecked(orbit *OrbitInfo, i int, v OrientationWithMod) {
	pt.data.bytes[orbit.OrientationsOffset+i] = orbit.Packer.PackUnchecked(v)
}

// PackedOrientation returns the packed orientation byte of slot i.
// It panics if i is outside the orbit.
func (pt *Pattern) PackedOrientation(orbit *OrbitInfo, i int) byte {
	return pt.data.orientation(orbit, i)
}

// PackedOrientationUnchecked is PackedOrientation without the range check.
func (pt *Pattern) PackedOrientationUnchecked(orbit *OrbitInfo, i int) byte {
	return pt.data.bytes[orbit.OrientationsOffset+i]
}

// SetPackedOrientation writes a packed orientation byte. It panics if i is
// outside the orbit or packed is not one of the orbit's codes.
func (pt *Pattern) SetPackedOrientation(orbit *OrbitInfo, i int, packed byte) {
	if int(packed) >= orbit.Packer.NumCodes() {
		panic("twisty: packed orientation out of range for orbit " + orbit.Name)
	}
	pt.data.setOrientation(orbit, i, packed)
}

// SetPackedOrientationUnchecked is SetPackedOrientation without checks.
func (pt *Pattern) SetPackedOrientationUnchecked(orbit *OrbitInfo, i int, packed byte) {
	pt.data.bytes[orbit.OrientationsOffset+i] = packed
}

// ApplyTransformation returns the pattern reached by applying t.
func (pt *Pattern) ApplyTransformation(t *Transformation) *Pattern {
	result := pt.data.puzzle.newPattern()
	pt.ApplyTransformationInto(t, result)
	return result
}

// ApplyTransformationInto writes the pattern reached by applying t into dst.
// dst must not be pt.
func (pt *Pattern) ApplyTransformationInto(t *Transformation, dst *Pattern) {
	p := pt.data.puzzle
	p.mustMatch(t.data.puzzle)
	p.mustMatch(dst.data.puzzle)

	src, tb, out := pt.data.bytes, t.data.bytes, dst.data.bytes
	for _, orbit := range p.orbits {
		pieces, orientations := orbit.PiecesOffset, orbit.OrientationsOffset
		for i := 0; i < orbit.NumPieces; i++ {
			from := int(tb[pieces+i])
			out[pieces+i] = src[pieces+from]
			out[orientations+i] = orbit.Packer.Transform(src[orientations+from], tb[orientations+i])
		}
	}
}

// ApplyAlg returns the pattern reached by applying a.
func (pt *Pattern) ApplyAlg(a alg.Alg) (*Pattern, error) {
	t, err := pt.data.puzzle.TransformationFromAlg(a)
	if err != nil {
		return nil, err
	}
	return pt.ApplyTransformation(t), nil
}

// ApplyMove returns the pattern reached by applying m.
func (pt *Pattern) ApplyMove(m alg.Move) (*Pattern, error) {
	t, err := pt.data.puzzle.TransformationFromMove(m)
	if err != nil {
		return nil, err
	}
	return pt.ApplyTransformation(t), nil
}

// Equal reports whether both patterns have identical bytes. Two pieces with
// different orientation moduli are never equal, even at orientation 0.
func (pt *Pattern) Equal(other *Pattern) bool {
	return pt.data.equal(&other.data)
}

// Hash returns a hash of the packed bytes, consistent with Equal.
func (pt *Pattern) Hash() uint64 {
	return pt.data.hash()
}

// Fingerprint returns the BLAKE3 digest of the packed bytes.
func (pt *Pattern) Fingerprint() [32]byte {
	return pt.data.fingerprint()
}

// Clone returns an independent copy.
func (pt *Pattern) Clone() *Pattern {
	return &Pattern{data: pt.data.clone()}
}

// Bytes returns a copy of the packed bytes. The layout is only stable within
// one process.
func (pt *Pattern) Bytes() []byte {
	return append([]byte(nil), pt.data.bytes...)
}

func (pt *Pattern) String() string {
	return fmt.Sprintf("Pattern(%s, %v)", pt.data.puzzle.Name(), pt.data.bytes)
}
