package simulator

import "github.com/katalvlaran/rrrsub/network"

// CareSet computes the care-set vector of node t (§4.3): the set of
// patterns on which some PrimaryOutput driver's value depends on t's value.
// PO-driving targets short-circuit to an all-ones vector.
func (s *Simulator) CareSet(t network.NodeID) []uint64 {
	s.Drain()
	if s.ntk.IsPoDriver(t) {
		ones := make([]uint64, s.words)
		for i := range ones {
			ones[i] = ^uint64(0)
		}
		return ones
	}

	cone := s.tfoIDs(t)
	shadow := make(map[network.NodeID][]uint64, len(cone))
	shadow[t] = complementWords(s.values[t])

	order, err := topoOf(s.ntk)
	if err != nil {
		return make([]uint64, s.words)
	}
	inCone := make(map[network.NodeID]bool, len(cone))
	for _, id := range cone {
		inCone[id] = true
	}

	care := make([]uint64, s.words)
	for _, id := range order {
		if id == t || !inCone[id] {
			continue
		}
		old := append([]uint64(nil), s.shadowGet(shadow, id)...)
		s.resimShadow(id, shadow)
		if !s.ntk.IsPoDriver(id) {
			continue
		}
		updated := shadow[id]
		if !wordsEqual(old, updated) {
			for w := range care {
				care[w] |= old[w] ^ updated[w]
			}
		}
	}
	return care
}

func (s *Simulator) tfoIDs(t network.NodeID) []network.NodeID {
	visited := map[network.NodeID]bool{t: true}
	queue := []network.NodeID{t}
	var out []network.NodeID
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		for _, fo := range s.ntk.Fanouts(id) {
			if !visited[fo.Consumer] {
				visited[fo.Consumer] = true
				queue = append(queue, fo.Consumer)
			}
		}
	}
	return out
}

func (s *Simulator) shadowGet(shadow map[network.NodeID][]uint64, id network.NodeID) []uint64 {
	if v, ok := shadow[id]; ok {
		return v
	}
	return s.values[id]
}

// resimShadow recomputes id's value into the shadow map, reading fanins from
// shadow where overridden and from the committed s.values otherwise. PI and
// Constant nodes never change under a shadow re-simulation, so they are
// copied through verbatim the first time they are read.
func (s *Simulator) resimShadow(id network.NodeID, shadow map[network.NodeID][]uint64) {
	typ, err := s.ntk.GetNodeType(id)
	if err != nil {
		return
	}
	if typ != network.KindAnd && typ != network.KindPrimaryOutput {
		if _, ok := shadow[id]; !ok {
			shadow[id] = append([]uint64(nil), s.values[id]...)
		}
		return
	}
	fanins := s.ntk.Fanins(id)
	out := make([]uint64, s.words)
	for i := range out {
		out[i] = ^uint64(0)
	}
	for _, fi := range fanins {
		ev := edgeValue(s.shadowGet(shadow, fi.Node), fi.Complement, s.words)
		for w := range out {
			out[w] &= ev[w]
		}
	}
	shadow[id] = out
}

func complementWords(v []uint64) []uint64 {
	out := make([]uint64, len(v))
	for i, w := range v {
		out[i] = ^w
	}
	return out
}
