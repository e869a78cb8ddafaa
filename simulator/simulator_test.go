package simulator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/pattern"
	"github.com/katalvlaran/rrrsub/simulator"
)

// TestCheckRedundancy_DominatedFanin mirrors spec scenario 2: u = a AND b;
// t = u AND b; PO p = t. b is redundant in t because u already implies it.
func TestCheckRedundancy_DominatedFanin(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	pats := pattern.NewRandom(2, 4, 7)
	sim := simulator.New(pats)
	sim.AssignNetwork(ntk, false)

	r.True(sim.CheckRedundancy(target, 1), "b at idx 1 is dominated by u")
}

// TestCheckRedundancy_NotRedundantWhenBothFaninsMatter mirrors spec scenario
// 1: t = a AND b; PO p = t. Neither fanin is removable.
func TestCheckRedundancy_NotRedundantWhenBothFaninsMatter(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	target := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	pats := pattern.NewRandom(2, 4, 11)
	sim := simulator.New(pats)
	sim.AssignNetwork(ntk, false)

	r.False(sim.CheckRedundancy(target, 0))
	r.False(sim.CheckRedundancy(target, 1))
}

func TestCheckFeasibility_RedundantAdditionIsAlwaysFeasible(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: a}})
	ntk.AddPo(network.Fanin{Node: target})

	pats := pattern.NewRandom(2, 4, 3)
	sim := simulator.New(pats)
	sim.AssignNetwork(ntk, false)

	r.True(sim.CheckFeasibility(target, a, false), "adding a again changes nothing")
}

func TestIngestFusesCounterExample(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	target := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	pats := pattern.NewRandom(2, 1, 5)
	sim := simulator.New(pats)
	sim.AssignNetwork(ntk, false)

	r.NoError(sim.Ingest(map[int]bool{0: true, 1: false}))
}
