package simulator

import (
	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
)

// Drain flushes every pending update (§4.3 Incremental update): first any
// single-node fUpdate left by a RemoveFanin, then a topological TFO walk over
// the union of stale cones, pruning propagation once a recomputed
// word-vector equals the one already stored.
func (s *Simulator) Drain() {
	s.growValues()
	if s.fUpdate != network.NoNode {
		s.stale[s.fUpdate] = true
		s.fUpdate = network.NoNode
	}
	if len(s.stale) == 0 {
		return
	}
	roots := make([]network.NodeID, 0, len(s.stale))
	for id := range s.stale {
		roots = append(roots, id)
	}
	s.forEachTfoTopo(roots, func(id network.NodeID) bool {
		old := append([]uint64(nil), s.values[id]...)
		s.resimOne(id, s.values)
		changed := !wordsEqual(old, s.values[id])
		delete(s.stale, id)
		return changed
	})
}

// forEachTfoTopo visits the transitive fanout cone of roots in topological
// order, invoking visit(id) and stopping propagation through id (not
// enqueuing its consumers) when visit returns false. The direct consumers of
// every root are enqueued up front, so they are visited whatever visit
// returns for the root.
func (s *Simulator) forEachTfoTopo(roots []network.NodeID, visit func(network.NodeID) bool) {
	order, err := topoOf(s.ntk)
	if err != nil {
		return
	}
	pos := make(map[network.NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	inCone := make(map[network.NodeID]bool, len(roots))
	var frontier []network.NodeID
	for _, r := range roots {
		if !inCone[r] {
			inCone[r] = true
			frontier = append(frontier, r)
		}
	}
	for _, r := range roots {
		for _, fo := range s.ntk.Fanouts(r) {
			if !inCone[fo.Consumer] {
				inCone[fo.Consumer] = true
				frontier = append(frontier, fo.Consumer)
			}
		}
	}
	for {
		sortByTopo(frontier, pos)
		if len(frontier) == 0 {
			return
		}
		id := frontier[0]
		frontier = frontier[1:]
		if !s.ntk.Live(id) {
			continue
		}
		if visit(id) {
			for _, fo := range s.ntk.Fanouts(id) {
				if !inCone[fo.Consumer] {
					inCone[fo.Consumer] = true
					frontier = append(frontier, fo.Consumer)
				}
			}
		}
	}
}

func sortByTopo(ids []network.NodeID, pos map[network.NodeID]int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && pos[ids[j-1]] > pos[ids[j]]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// resimOne recomputes dst[id] from dst's current values of id's fanins.
func (s *Simulator) resimOne(id network.NodeID, dst [][]uint64) {
	typ, err := s.ntk.GetNodeType(id)
	if err != nil {
		return
	}
	switch typ {
	case network.KindConstant:
		for i := range dst[id] {
			dst[id][i] = 0
		}
	case network.KindPrimaryInput:
		pi := piIndex(s.ntk, id)
		bs, err := s.pats.Input(pi)
		if err != nil {
			return
		}
		for w := 0; w < s.words; w++ {
			var word uint64
			for b := 0; b < 64; b++ {
				if bs.Test(uint(w*64 + b)) {
					word |= 1 << uint(b)
				}
			}
			dst[id][w] = word
		}
	case network.KindPrimaryOutput, network.KindAnd:
		fanins := s.ntk.Fanins(id)
		out := make([]uint64, s.words)
		for i := range out {
			out[i] = ^uint64(0)
		}
		for _, fi := range fanins {
			ev := edgeValue(dst[fi.Node], fi.Complement, s.words)
			for w := range out {
				out[w] &= ev[w]
			}
		}
		copy(dst[id], out)
	}
}

func edgeValue(v []uint64, complement bool, words int) []uint64 {
	if !complement {
		return v
	}
	out := make([]uint64, words)
	for i, word := range v {
		out[i] = ^word
	}
	return out
}

func wordsEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func piIndex(ntk *network.Network, id network.NodeID) int {
	for i, pi := range ntk.Pis() {
		if pi == id {
			return i
		}
	}
	return -1
}

func topoOf(ntk *network.Network) ([]network.NodeID, error) {
	return traverse.TopologicalOrder(ntk)
}
