package sat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/sat"
)

// TestCheckRedundancy_DominatedFanin mirrors the spec scenario: u = a AND b;
// t = u AND b; PO p = t. b is redundant in t because u already implies it.
func TestCheckRedundancy_DominatedFanin(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	an := sat.New()
	an.AssignNetwork(ntk, false)

	r.True(an.CheckRedundancy(target, 1), "b at idx 1 is dominated by u")
	r.Equal(sat.Unsat, an.LastOutcome())
}

// TestCheckRedundancy_NotRedundantWhenBothFaninsMatter mirrors: t = a AND b;
// PO p = t. Neither fanin is removable, and a satisfying counter-example
// must be extractable for both.
func TestCheckRedundancy_NotRedundantWhenBothFaninsMatter(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	target := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	an := sat.New()
	an.AssignNetwork(ntk, false)

	r.False(an.CheckRedundancy(target, 0))
	r.Equal(sat.Sat, an.LastOutcome())
	r.NotNil(an.LastCounterExample())

	r.False(an.CheckRedundancy(target, 1))
	r.Equal(sat.Sat, an.LastOutcome())
	r.NotNil(an.LastCounterExample())
}

// TestCheckFeasibility_RedundantAdditionIsAlwaysFeasible: target = u AND a;
// adding b as a new fanin is feasible because u already implies b, so the
// addition can never change the target's value.
func TestCheckFeasibility_RedundantAdditionIsAlwaysFeasible(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: a}})
	ntk.AddPo(network.Fanin{Node: target})

	an := sat.New()
	an.AssignNetwork(ntk, false)

	r.True(an.CheckFeasibility(target, b, false))
	r.Equal(sat.Unsat, an.LastOutcome())
}

// TestCheckRedundancy_TargetWithNoPoIsTriviallyRedundant covers the §4.5
// empty-XOR-set shortcut: a node outside every PO's transitive fanin has no
// observable effect, so any fanin removal is trivially redundant.
func TestCheckRedundancy_TargetWithNoPoIsTriviallyRedundant(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	dangling := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	// dangling drives no PO.

	an := sat.New()
	an.AssignNetwork(ntk, false)

	r.True(an.CheckRedundancy(dangling, 0))
	r.Equal(sat.Unsat, an.LastOutcome())
}

func TestDPLLSolvesSimpleClauses(t *testing.T) {
	r := require.New(t)
	d := sat.NewDPLL()
	x := d.NewVar()
	y := d.NewVar()
	d.AddClause(sat.Lit{Var: x}, sat.Lit{Var: y})
	d.AddClause(sat.Lit{Var: x, Neg: true}, sat.Lit{Var: y, Neg: true})

	outcome, model := d.Solve(nil, 0)
	r.Equal(sat.Sat, outcome)
	r.NotEqual(model[x], model[y])
}

func TestDPLLDetectsUnsat(t *testing.T) {
	r := require.New(t)
	d := sat.NewDPLL()
	x := d.NewVar()
	d.AddClause(sat.Lit{Var: x})
	d.AddClause(sat.Lit{Var: x, Neg: true})

	outcome, _ := d.Solve(nil, 0)
	r.Equal(sat.Unsat, outcome)
}
