package twisty

import (
	"encoding/json"
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/alg"
)

// OrbitDefinition declares one orbit of a puzzle.
type OrbitDefinition struct {
	OrbitName       string `json:"orbitName" yaml:"orbitName"`
	NumPieces       int    `json:"numPieces" yaml:"numPieces"`
	NumOrientations int    `json:"numOrientations" yaml:"numOrientations"`
}

// PatternOrbitData is the plain form of one orbit of a Pattern.
// OrientationMod may be omitted, meaning modulus 0 for every piece.
type PatternOrbitData struct {
	Pieces         []int `json:"pieces" yaml:"pieces"`
	Orientation    []int `json:"orientation" yaml:"orientation"`
	OrientationMod []int `json:"orientationMod,omitempty" yaml:"orientationMod,omitempty"`
}

// PatternData maps orbit names to orbit data.
type PatternData map[string]PatternOrbitData

// TransformationOrbitData is the plain form of one orbit of a Transformation.
type TransformationOrbitData struct {
	Permutation      []int `json:"permutation" yaml:"permutation"`
	OrientationDelta []int `json:"orientationDelta" yaml:"orientationDelta"`
}

// TransformationData maps orbit names to orbit data.
type TransformationData map[string]TransformationOrbitData

// Definition is the declarative description of a puzzle. It is the shape
// definitions are persisted in; decoding it from text is left to the caller
// (encoding/json works directly, move keys are move tokens).
type Definition struct {
	Name           string                          `json:"name" yaml:"name"`
	Orbits         []OrbitDefinition               `json:"orbits" yaml:"orbits"`
	DefaultPattern PatternData                     `json:"defaultPattern" yaml:"defaultPattern"`
	Moves          map[alg.Move]TransformationData `json:"moves" yaml:"moves"`
	DerivedMoves   map[alg.Move]alg.Alg            `json:"derivedMoves,omitempty" yaml:"derivedMoves,omitempty"`
}

// ParseDefinitionJSON decodes a definition from its JSON form.
func ParseDefinitionJSON(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &DefinitionError{
			Description: fmt.Sprintf("could not parse JSON: %v", err),
			Err:         err,
		}
	}
	return &def, nil
}

// MarshalIndent encodes the definition as indented JSON.
func (d *Definition) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
