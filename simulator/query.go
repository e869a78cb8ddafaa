package simulator

import "github.com/katalvlaran/rrrsub/network"

// CheckRedundancy reports whether the fanin at position idx of And node id
// can be removed without changing any PrimaryOutput on the care set (§4.3).
func (s *Simulator) CheckRedundancy(id network.NodeID, idx int) bool {
	s.SetTarget(id)
	s.Drain()
	fanins := s.ntk.Fanins(id)
	if idx < 0 || idx >= len(fanins) {
		return false
	}
	care := s.CareSet(id)

	g := make([]uint64, s.words)
	for i := range g {
		g[i] = ^uint64(0)
	}
	for i, fi := range fanins {
		if i == idx {
			continue
		}
		ev := edgeValue(s.values[fi.Node], fi.Complement, s.words)
		for w := range g {
			g[w] &= ev[w]
		}
	}
	for w := range g {
		g[w] &= care[w]
	}

	target := fanins[idx]
	tv := edgeValue(s.values[target.Node], target.Complement, s.words)
	for w := range g {
		if g[w]&^tv[w] != 0 {
			return false
		}
	}
	return true
}

// CheckFeasibility reports whether a new fanin (fi, c) can be added to And
// node id while preserving PrimaryOutput functionality (§4.3).
func (s *Simulator) CheckFeasibility(id, fi network.NodeID, c bool) bool {
	s.SetTarget(id)
	s.Drain()
	care := s.CareSet(id)

	h := make([]uint64, s.words)
	for i := range h {
		h[i] = ^uint64(0)
	}
	for _, f := range s.ntk.Fanins(id) {
		ev := edgeValue(s.values[f.Node], f.Complement, s.words)
		for w := range h {
			h[w] &= ev[w]
		}
	}
	for w := range h {
		h[w] &= care[w]
	}

	nv := edgeValue(s.values[fi], c, s.words)
	for w := range h {
		if h[w]&^nv[w] != 0 {
			return false
		}
	}
	return true
}
