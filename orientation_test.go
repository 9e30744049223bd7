package twisty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientationPacker_RoundTripAllSizes(t *testing.T) {
	for n := 1; n <= MaxNumOrientations; n++ {
		op := newOrientationPacker(n)
		require.LessOrEqual(t, op.NumCodes(), 256, "n=%d", n)

		for code := 0; code < op.NumCodes(); code++ {
			v := op.Unpack(byte(code))
			require.NoError(t, op.Validate(v), "n=%d code=%d", n, code)
			require.Equal(t, byte(code), op.Pack(v), "n=%d code=%d", n, code)
		}

		for mod := 0; mod < n; mod++ {
			if mod != 0 && n%mod != 0 {
				continue
			}
			limit := mod
			if mod == 0 {
				limit = n
			}
			for o := 0; o < limit; o++ {
				v := OrientationWithMod{Orientation: byte(o), OrientationMod: byte(mod)}
				assert.Equal(t, v, op.Unpack(op.Pack(v)), "n=%d", n)
			}
		}
	}
}

func TestOrientationPacker_Layout(t *testing.T) {
	op := newOrientationPacker(4)

	// 0..3 modulus 0, then modulus 1 at 4, modulus 2 at 5..6.
	assert.Equal(t, 7, op.NumCodes())
	assert.Equal(t, byte(3), op.Pack(OrientationWithMod{Orientation: 3}))
	assert.Equal(t, byte(4), op.Pack(OrientationWithMod{Orientation: 0, OrientationMod: 1}))
	assert.Equal(t, byte(6), op.Pack(OrientationWithMod{Orientation: 1, OrientationMod: 2}))
}

func TestOrientationPacker_FullModulusNormalizes(t *testing.T) {
	op := newOrientationPacker(4)
	packed := op.Pack(OrientationWithMod{Orientation: 2, OrientationMod: 4})
	assert.Equal(t, byte(2), packed)
	assert.Equal(t, OrientationWithMod{Orientation: 2}, op.Unpack(packed))
}

func TestOrientationPacker_Transform(t *testing.T) {
	op := newOrientationPacker(4)

	tests := []struct {
		name  string
		start OrientationWithMod
		delta byte
		want  OrientationWithMod
	}{
		{"mod 0 wraps", OrientationWithMod{Orientation: 3}, 2, OrientationWithMod{Orientation: 1}},
		{"mod 0 zero delta", OrientationWithMod{Orientation: 2}, 0, OrientationWithMod{Orientation: 2}},
		{"mod 2", OrientationWithMod{Orientation: 0, OrientationMod: 2}, 3, OrientationWithMod{Orientation: 1, OrientationMod: 2}},
		{"mod 1 never twists", OrientationWithMod{Orientation: 0, OrientationMod: 1}, 3, OrientationWithMod{Orientation: 0, OrientationMod: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := op.Unpack(op.Transform(op.Pack(tt.start), tt.delta))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrientationPacker_Invalid(t *testing.T) {
	op := newOrientationPacker(4)

	assert.Error(t, op.Validate(OrientationWithMod{Orientation: 0, OrientationMod: 3}))
	assert.Error(t, op.Validate(OrientationWithMod{Orientation: 2, OrientationMod: 2}))
	assert.Error(t, op.Validate(OrientationWithMod{Orientation: 4}))
	assert.Error(t, op.Validate(OrientationWithMod{Orientation: 0, OrientationMod: 8}))
	assert.Panics(t, func() { op.Pack(OrientationWithMod{Orientation: 5}) })
}
