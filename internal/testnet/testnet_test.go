package testnet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/internal/testnet"
	"github.com/katalvlaran/rrrsub/traverse"
)

func TestChain_BuildsAcyclicSingleOutputNetwork(t *testing.T) {
	r := require.New(t)
	ntk, err := testnet.Chain(5)
	r.NoError(err)
	r.Equal(1, ntk.NumPos())
	r.Equal(2, ntk.NumPis())

	_, err = traverse.TopologicalOrder(ntk)
	r.NoError(err, "a chain must never contain a cycle")
}

func TestChain_RejectsNonPositiveLength(t *testing.T) {
	_, err := testnet.Chain(0)
	require.ErrorIs(t, err, testnet.ErrTooFewNodes)
}

func TestRandomDAG_IsAlwaysAcyclicAndFullyDriven(t *testing.T) {
	r := require.New(t)
	for seed := int64(0); seed < 10; seed++ {
		ntk, err := testnet.RandomDAG(4, 20, 0.3, seed)
		r.NoError(err)

		_, err = traverse.TopologicalOrder(ntk)
		r.NoError(err, "seed %d: random construction must stay acyclic by fanin selection", seed)
		r.Greater(ntk.NumPos(), 0)
	}
}

func TestRandomDAG_RejectsInvalidProbability(t *testing.T) {
	_, err := testnet.RandomDAG(4, 10, 1.5, 1)
	require.ErrorIs(t, err, testnet.ErrInvalidProbability)
}
