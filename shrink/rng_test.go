package shrink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNG_ZeroSeedPolicy(t *testing.T) {
	a := RNG(0)
	b := RNG(defaultSeed)
	for i := 0; i < 32; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	require.Equal(t, DeriveSeed(42, 7), DeriveSeed(42, 7))
	require.NotEqual(t, DeriveSeed(42, 7), DeriveSeed(42, 8))
	require.NotEqual(t, DeriveSeed(42, 7), DeriveSeed(43, 7))
}

func TestDeriveRNG_IndependentStreams(t *testing.T) {
	a := DeriveRNG(42, 0)
	b := DeriveRNG(42, 1)

	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	require.Zero(t, same, "adjacent streams must not collide")
}

func TestDeriveRNG_ZeroSeedPolicy(t *testing.T) {
	a := DeriveRNG(0, 3)
	b := DeriveRNG(defaultSeed, 3)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}
