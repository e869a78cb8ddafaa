//go:build rrrdebug

package network

import "fmt"

// CheckInvariants walks every live node and validates I1-I6. It is compiled
// only under the rrrdebug build tag; production builds never pay for it.
// Tests that want it unconditionally should build with -tags rrrdebug.
func (n *Network) CheckInvariants() error {
	for id, rec := range n.nodes {
		nid := NodeID(id)
		if !rec.alive {
			continue
		}
		switch rec.kind {
		case KindConstant:
			if nid != ConstZero {
				return fmt.Errorf("network: constant node at non-zero id %d", nid)
			}
		case KindPrimaryInput:
			if len(rec.fanins) != 0 {
				return fmt.Errorf("network: PI %d has fanins", nid)
			}
		case KindPrimaryOutput:
			if len(rec.fanins) != 1 {
				return fmt.Errorf("network: PO %d has %d fanins, want 1 (I5)", nid, len(rec.fanins))
			}
		case KindAnd:
			if len(rec.fanins) < 2 {
				return fmt.Errorf("network: And %d has %d fanins, want >=2 (I2)", nid, len(rec.fanins))
			}
		}
		for idx, fi := range rec.fanins {
			if int(fi.Node) < 0 || int(fi.Node) >= len(n.nodes) || !n.nodes[fi.Node].alive {
				return fmt.Errorf("network: node %d fanin %d references dead/unknown node %d (I1)", nid, idx, fi.Node)
			}
			if !hasFanoutRef(n.nodes[fi.Node].fanouts, nid, idx) {
				return fmt.Errorf("network: node %d fanin %d missing matching fanout ref on %d", nid, idx, fi.Node)
			}
		}
		if rec.kind != KindPrimaryOutput && rec.kind != KindPrimaryInput && rec.kind != KindConstant && len(rec.fanouts) == 0 {
			return fmt.Errorf("network: node %d is dead weight with zero fanouts (I6)", nid)
		}
	}
	if n.IsCyclic() {
		return fmt.Errorf("network: cycle detected (I3)")
	}
	return nil
}

func hasFanoutRef(refs []FanoutRef, consumer NodeID, idx int) bool {
	for _, r := range refs {
		if r.Consumer == consumer && r.EdgeIndex == idx {
			return true
		}
	}
	return false
}

// IsCyclic reports whether the fanin graph contains a cycle, via iterative
// white/gray/black coloring (dfs/topological.go's scheme, generalized from
// string vertex ids to NodeID).
func (n *Network) IsCyclic() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(n.nodes))
	var stack []NodeID
	for id, rec := range n.nodes {
		if !rec.alive || color[id] != white {
			continue
		}
		stack = append(stack, NodeID(id))
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			if color[cur] == white {
				color[cur] = gray
			}
			advanced := false
			for _, fi := range n.nodes[cur].fanins {
				switch color[fi.Node] {
				case white:
					stack = append(stack, fi.Node)
					advanced = true
				case gray:
					return true
				}
				if advanced {
					break
				}
			}
			if !advanced {
				color[cur] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return false
}
