package partitioner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/partitioner"
)

// buildChain makes a AND b = u; u AND c = v; v AND d = w; PO = w, a straight
// AND chain with no reconvergence. A 0-hop window around v (just the seed,
// no neighbors pulled in) has fanin boundary {u, c} and, since v's only
// consumer w sits outside the window, output {v}.
func buildChain(t *testing.T) (ntk *network.Network, a, b, c, d, u, v, w network.NodeID) {
	t.Helper()
	ntk = network.NewNetwork()
	a = ntk.AddPi()
	b = ntk.AddPi()
	c = ntk.AddPi()
	d = ntk.AddPi()
	u = ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	v = ntk.AddAnd([]network.Fanin{{Node: u}, {Node: c}})
	w = ntk.AddAnd([]network.Fanin{{Node: v}, {Node: d}})
	ntk.AddPo(network.Fanin{Node: w})
	return
}

func TestExtract_ZeroHopWindowAroundInteriorNode(t *testing.T) {
	r := require.New(t)
	ntk, _, _, c, _, u, v, _ := buildChain(t)

	win, err := partitioner.Extract(ntk, v, 0, partitioner.StrategyPullIn)
	r.NoError(err)
	r.ElementsMatch([]network.NodeID{u, c}, win.Inputs())
	r.ElementsMatch([]network.NodeID{v}, win.Outputs())
	r.Equal(2, win.Network().NumPis())
	r.Equal(1, win.Network().NumPos())
}

func TestExtract_OneHopWindowSpansBothFaninAndFanoutCones(t *testing.T) {
	r := require.New(t)
	ntk, a, b, c, d, u, v, w := buildChain(t)

	win, err := partitioner.Extract(ntk, v, 1, partitioner.StrategyPullIn)
	r.NoError(err)
	// u (fanin neighbor) and w (fanout neighbor) both join the core; only
	// w remains an output, since u's and v's sole consumers (v and w) are
	// now both inside the window.
	r.ElementsMatch([]network.NodeID{a, b, c, d}, win.Inputs())
	r.ElementsMatch([]network.NodeID{w}, win.Outputs())
}

func TestExtract_SeedMustBeAndNode(t *testing.T) {
	r := require.New(t)
	ntk, a, _, _, _, _, _, _ := buildChain(t)

	_, err := partitioner.Extract(ntk, a, 1, partitioner.StrategyPullIn)
	r.ErrorIs(err, partitioner.ErrSeedNotAnd)
}

// buildReconverging makes a diamond: s = a AND b; t1 = s AND c; t2 = s AND d;
// PO1 = t1; PO2 = t2.
func buildReconverging(t *testing.T) (ntk *network.Network, a, b, s, t1, t2 network.NodeID) {
	t.Helper()
	ntk = network.NewNetwork()
	a = ntk.AddPi()
	b = ntk.AddPi()
	c := ntk.AddPi()
	d := ntk.AddPi()
	s = ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	t1 = ntk.AddAnd([]network.Fanin{{Node: s}, {Node: c}})
	t2 = ntk.AddAnd([]network.Fanin{{Node: s}, {Node: d}})
	ntk.AddPo(network.Fanin{Node: t1})
	ntk.AddPo(network.Fanin{Node: t2})
	return
}

// A 0-hop window around s has two external consumers (t1 and t2), neither of
// which is upstream of a or b (both are PIs, with no fanins to reach through),
// so StrategyPullIn must leave the core exactly {s} rather than spuriously
// absorbing t1 or t2.
func TestExtract_NoSpuriousPullInWhenNoCycleRisk(t *testing.T) {
	r := require.New(t)
	ntk, a, b, s, _, _ := buildReconverging(t)

	win, err := partitioner.Extract(ntk, s, 0, partitioner.StrategyPullIn)
	r.NoError(err)
	r.ElementsMatch([]network.NodeID{s}, win.Outputs())
	r.ElementsMatch([]network.NodeID{a, b}, win.Inputs())
	r.Equal(1, win.Network().NumPos())
}

func TestInsert_RoundTripPreservesStructureWhenUnmodified(t *testing.T) {
	r := require.New(t)
	ntk, _, _, c, _, u, v, w := buildChain(t)

	win, err := partitioner.Extract(ntk, v, 0, partitioner.StrategyPullIn)
	r.NoError(err)

	r.NoError(win.Insert(ntk))

	// Insert removes w's edge to v and appends the rebuilt driver after w's
	// remaining fanin d, so w's fanin 1 must now point at a live And node
	// whose own fanins are {u, c}, exactly reproducing the extracted logic.
	fi0, comp0, err := ntk.GetFanin(w, 1)
	r.NoError(err)
	r.False(comp0)
	r.True(ntk.IsInt(fi0))
	r.Equal(2, ntk.NumFanins(fi0))

	fanins := ntk.Fanins(fi0)
	gotSrc := []network.NodeID{fanins[0].Node, fanins[1].Node}
	r.ElementsMatch([]network.NodeID{u, c}, gotSrc)

	// the old v node must have been swept: it is no longer live.
	r.False(ntk.Live(v))
}
