package bdd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/bdd"
	"github.com/katalvlaran/rrrsub/network"
)

func TestTableBasicLaws(t *testing.T) {
	r := require.New(t)
	tb := bdd.NewTable()
	x := tb.IthVar(0)
	y := tb.IthVar(1)

	r.True(tb.IsConst0(tb.And(x, tb.Not(x))), "x & !x == 0")
	r.True(tb.IsConst1(tb.Or(x, tb.Not(x))), "x | !x == 1")
	r.True(tb.LitIsEq(tb.And(x, y), tb.And(y, x)), "AND is commutative under canonical form")
	r.True(tb.LitIsEq(tb.Not(tb.Not(x)), x))
}

func TestAnalyzer_DominatedFaninIsRedundant(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	an := bdd.New(bdd.NewTable())
	an.AssignNetwork(ntk, false)

	r.True(an.CheckRedundancy(target, 1))
}

func TestAnalyzer_BothFaninsMatter(t *testing.T) {
	r := require.New(t)
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	target := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	an := bdd.New(bdd.NewTable())
	an.AssignNetwork(ntk, false)

	r.False(an.CheckRedundancy(target, 0))
	r.False(an.CheckRedundancy(target, 1))
}
