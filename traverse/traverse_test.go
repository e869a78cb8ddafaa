package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
)

func buildDiamond(t *testing.T) (*network.Network, network.NodeID, network.NodeID, network.NodeID, network.NodeID) {
	t.Helper()
	n := network.NewNetwork()
	a := n.AddPi()
	b := n.AddPi()
	c := n.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	d := n.AddAnd([]network.Fanin{{Node: a}, {Node: c}})
	// d drives a PrimaryOutput so that every node is live: the traversals
	// only order live nodes.
	n.AddPo(network.Fanin{Node: d})
	return n, a, b, c, d
}

func TestTopologicalOrderRespectsFanins(t *testing.T) {
	r := require.New(t)
	n, a, b, c, d := buildDiamond(t)

	order, err := traverse.TopologicalOrder(n)
	r.NoError(err)

	pos := make(map[network.NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	r.Less(pos[a], pos[c])
	r.Less(pos[b], pos[c])
	r.Less(pos[c], pos[d])
	r.Less(pos[a], pos[d])
}

func TestForEachIntReverseIsExactReverse(t *testing.T) {
	r := require.New(t)
	n, _, _, _, _ := buildDiamond(t)

	fwd, err := traverse.ForEachInt(n)
	r.NoError(err)
	var fwdIDs []network.NodeID
	for id, ok := fwd.Next(); ok; id, ok = fwd.Next() {
		fwdIDs = append(fwdIDs, id)
	}

	rev, err := traverse.ForEachIntReverse(n)
	r.NoError(err)
	var revIDs []network.NodeID
	for id, ok := rev.Next(); ok; id, ok = rev.Next() {
		revIDs = append(revIDs, id)
	}

	r.Equal(len(fwdIDs), len(revIDs))
	for i := range fwdIDs {
		r.Equal(fwdIDs[i], revIDs[len(revIDs)-1-i])
	}
}

func TestForEachTfiCollectsAncestors(t *testing.T) {
	r := require.New(t)
	n, a, b, c, d := buildDiamond(t)

	it := traverse.ForEachTfi(n, []network.NodeID{d})
	var got []network.NodeID
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		got = append(got, id)
	}
	r.ElementsMatch([]network.NodeID{d, a, c, b}, got)
}

func TestForEachTfoCollectsDescendants(t *testing.T) {
	r := require.New(t)
	n, a, _, c, d := buildDiamond(t)

	it := traverse.ForEachTfo(n, []network.NodeID{a})
	var got []network.NodeID
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		got = append(got, id)
	}
	r.ElementsMatch([]network.NodeID{a, c, d, n.Pos()[0]}, got)
}

// TestForEachTfoOrdersByTopologyNotByBfsDepth builds a DAG where a plain
// level-by-level BFS and a correct topological order disagree: R has two
// fanout paths, a 3-hop chain R->A->B->Z and a 1-hop chain R->C, and D is an
// AND of (C, Z). BFS visits C at depth 1 and so enqueues D immediately after,
// well before Z (depth 3) is reached, even though D depends on Z. A correct
// topological walk must still place Z before D.
func TestForEachTfoOrdersByTopologyNotByBfsDepth(t *testing.T) {
	r := require.New(t)
	n := network.NewNetwork()
	root := n.AddPi()
	px := n.AddPi()
	py := n.AddPi()
	pw := n.AddPi()
	pc := n.AddPi()

	a := n.AddAnd([]network.Fanin{{Node: root}, {Node: px}})
	b := n.AddAnd([]network.Fanin{{Node: a}, {Node: py}})
	z := n.AddAnd([]network.Fanin{{Node: b}, {Node: pw}})
	c := n.AddAnd([]network.Fanin{{Node: root}, {Node: pc}})
	d := n.AddAnd([]network.Fanin{{Node: c}, {Node: z}})
	n.AddPo(network.Fanin{Node: d})

	it := traverse.ForEachTfo(n, []network.NodeID{root})
	pos := make(map[network.NodeID]int)
	i := 0
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		pos[id] = i
		i++
	}

	r.Less(pos[z], pos[d], "z must be visited before d even though c (d's other fanin) is closer to root by BFS depth")
	r.Less(pos[c], pos[d])
	r.Less(pos[a], pos[b])
	r.Less(pos[b], pos[z])
}

func TestForEachTfosUpdatePrunesOnFalse(t *testing.T) {
	r := require.New(t)
	n, _, b, c, d := buildDiamond(t)

	// b reaches d only through c, so pruning at c must keep d unvisited.
	var visited []network.NodeID
	traverse.ForEachTfosUpdate(n, []network.NodeID{b}, func(id network.NodeID) bool {
		visited = append(visited, id)
		return id != c // stop propagating through c
	})
	r.ElementsMatch([]network.NodeID{b, c}, visited)
	r.NotContains(visited, d)
}
