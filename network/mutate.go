package network

// AddFanin appends a new fanin edge (fi, complement) to the And node id and
// broadcasts ActionAddFanin. It panics if id is not a live And node, if fi is
// not live, or if the new edge would close a cycle (I3).
func (n *Network) AddFanin(id NodeID, fi NodeID, complement bool) {
	n.mustLive(id)
	n.mustLive(fi)
	if n.nodes[id].kind != KindAnd {
		panic("network: AddFanin target is not an And node")
	}
	if n.IsReachable(fi, id) {
		panic("network: AddFanin would close a cycle")
	}
	idx := len(n.nodes[id].fanins)
	n.nodes[id].fanins = append(n.nodes[id].fanins, Fanin{Node: fi, Complement: complement})
	n.addFanoutRef(fi, id, idx)
	n.invalidateTopo()
	n.broadcast(Action{Kind: ActionAddFanin, ID: id, Idx: idx, Fi: fi, Complement: complement})
}

// SetPoFanin replaces a PrimaryOutput's single driving edge, broadcasting
// ActionAddFanin at index 0 (any Analyzer that already reacts to fanin
// changes at a given node handles a PO's redriving with no special case).
// Used by the partitioner to rewire a window's outputs after re-insertion.
// Returns ErrNotPo if id is not a PrimaryOutput.
func (n *Network) SetPoFanin(id NodeID, fi Fanin) error {
	n.mustLive(id)
	if n.nodes[id].kind != KindPrimaryOutput {
		return ErrNotPo
	}
	n.mustLive(fi.Node)
	old := n.nodes[id].fanins[0]
	n.removeFanoutRef(old.Node, id, 0)
	n.nodes[id].fanins[0] = fi
	n.addFanoutRef(fi.Node, id, 0)
	n.invalidateTopo()
	n.broadcast(Action{Kind: ActionAddFanin, ID: id, Idx: 0, Fi: fi.Node, Complement: fi.Complement})
	return nil
}

// RemoveFanin deletes the idx-th fanin edge of the And node id and
// broadcasts ActionRemoveFanin. The resulting node may transiently hold
// fewer than two fanins (I2); callers must follow up with Propagate before
// any other mutator observes id in that state. Returns ErrNotAnd or
// ErrIndexOutOfRange.
func (n *Network) RemoveFanin(id NodeID, idx int) error {
	n.mustLive(id)
	if n.nodes[id].kind != KindAnd {
		return ErrNotAnd
	}
	fanins := n.nodes[id].fanins
	if idx < 0 || idx >= len(fanins) {
		return ErrIndexOutOfRange
	}
	removed := fanins[idx]
	n.removeFanoutRef(removed.Node, id, idx)
	n.nodes[id].fanins = append(fanins[:idx], fanins[idx+1:]...)
	for j := idx; j < len(n.nodes[id].fanins); j++ {
		src := n.nodes[id].fanins[j].Node
		n.updateFanoutRefIndex(src, id, j+1, j)
	}
	n.invalidateTopo()
	n.broadcast(Action{Kind: ActionRemoveFanin, ID: id, Idx: idx, Fi: removed.Node, Complement: removed.Complement})
	return nil
}

// Propagate collapses an And node whose fanin count has dropped to one
// (buffer) or zero (constant true, by the empty-AND convention) into its
// consumers, destroying id and broadcasting ActionRemoveBuffer or
// ActionRemoveConst. It is a no-op, returning nil, if id still has two or
// more fanins. Returns ErrNotAnd if id is not an And node.
func (n *Network) Propagate(id NodeID) error {
	n.mustLive(id)
	if n.nodes[id].kind != KindAnd {
		return ErrNotAnd
	}
	fanins := n.nodes[id].fanins
	if len(fanins) >= 2 {
		return nil
	}

	origFanouts := append([]FanoutRef(nil), n.nodes[id].fanouts...)

	var replNode NodeID
	var replComplement bool
	var kind ActionKind
	if len(fanins) == 1 {
		replNode, replComplement = fanins[0].Node, fanins[0].Complement
		n.removeFanoutRef(replNode, id, 0)
		kind = ActionRemoveBuffer
	} else {
		replNode, replComplement = ConstZero, true
		kind = ActionRemoveConst
	}

	for _, fo := range origFanouts {
		old := n.nodes[fo.Consumer].fanins[fo.EdgeIndex]
		newComplement := replComplement != old.Complement
		n.nodes[fo.Consumer].fanins[fo.EdgeIndex] = Fanin{Node: replNode, Complement: newComplement}
		n.addFanoutRef(replNode, fo.Consumer, fo.EdgeIndex)
	}

	n.nodes[id].fanins = nil
	n.nodes[id].fanouts = nil
	n.nodes[id].alive = false
	n.invalidateTopo()
	n.broadcast(Action{Kind: kind, ID: id, Fi: replNode, Complement: replComplement, Fanouts: origFanouts})
	return nil
}

// SortFanins reorders id's fanin edges into ascending NodeID order (ties
// broken by Complement, false before true) and broadcasts ActionSortFanins
// with Indices[newPos] = oldPos. Returns ErrNotAnd if id is not an And node.
func (n *Network) SortFanins(id NodeID) error {
	n.mustLive(id)
	if n.nodes[id].kind != KindAnd {
		return ErrNotAnd
	}
	fanins := n.nodes[id].fanins
	order := make([]int, len(fanins))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := fanins[order[j-1]], fanins[order[j]]
			if a.Node < b.Node || (a.Node == b.Node && !a.Complement) {
				break
			}
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	sorted := make([]Fanin, len(fanins))
	for newIdx, oldIdx := range order {
		sorted[newIdx] = fanins[oldIdx]
		n.updateFanoutRefIndex(fanins[oldIdx].Node, id, oldIdx, newIdx)
	}
	n.nodes[id].fanins = sorted
	n.broadcast(Action{Kind: ActionSortFanins, ID: id, Indices: order})
	return nil
}

// TrivialCollapse flattens every same-polarity, single-fanout And child of id
// into id itself (associativity of AND under a non-inverted edge), then
// broadcasts one ActionTrivialCollapse summarizing the resulting fanin list.
// It is a no-op if no eligible child exists. Returns ErrNotAnd otherwise.
func (n *Network) TrivialCollapse(id NodeID) error {
	n.mustLive(id)
	if n.nodes[id].kind != KindAnd {
		return ErrNotAnd
	}
	changed := false
	for {
		idx := -1
		fanins := n.nodes[id].fanins
		for i, fi := range fanins {
			if fi.Complement {
				continue
			}
			if n.nodes[fi.Node].kind != KindAnd {
				continue
			}
			if len(n.nodes[fi.Node].fanouts) == 1 {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		changed = true
		child := fanins[idx].Node
		childFanins := append([]Fanin(nil), n.nodes[child].fanins...)

		n.removeFanoutRef(child, id, idx)
		rest := append([]Fanin(nil), fanins[idx+1:]...)
		for j, fi := range rest {
			n.updateFanoutRefIndex(fi.Node, id, idx+1+j, idx+len(childFanins)+j)
		}
		merged := append([]Fanin(nil), fanins[:idx]...)
		merged = append(merged, childFanins...)
		merged = append(merged, rest...)
		n.nodes[id].fanins = merged
		for k, fi := range childFanins {
			n.addFanoutRef(fi.Node, id, idx+k)
		}
		n.nodes[child].fanins = nil
		n.nodes[child].fanouts = nil
		n.nodes[child].alive = false
	}
	if !changed {
		return nil
	}
	n.invalidateTopo()
	n.broadcast(Action{Kind: ActionTrivialCollapse, ID: id, Fanins: append([]Fanin(nil), n.nodes[id].fanins...)})
	return nil
}

// TrivialDecompose splits the first k fanin edges of id off into a freshly
// created And node, which becomes id's new fanin 0, and broadcasts
// ActionTrivialDecompose. Returns the new node's id, or ErrNotAnd /
// ErrTooFewFanins.
func (n *Network) TrivialDecompose(id NodeID, k int) (NodeID, error) {
	n.mustLive(id)
	if n.nodes[id].kind != KindAnd {
		return NoNode, ErrNotAnd
	}
	fanins := n.nodes[id].fanins
	if k < 2 || k > len(fanins)-1 {
		return NoNode, ErrTooFewFanins
	}

	split := append([]Fanin(nil), fanins[:k]...)
	for idx, fi := range split {
		n.removeFanoutRef(fi.Node, id, idx)
	}
	newNode := n.AddAnd(split)

	rest := fanins[k:]
	merged := append([]Fanin{{Node: newNode, Complement: false}}, rest...)
	for j, fi := range rest {
		n.updateFanoutRefIndex(fi.Node, id, k+j, 1+j)
	}
	n.nodes[id].fanins = merged
	n.addFanoutRef(newNode, id, 0)

	n.invalidateTopo()
	n.broadcast(Action{Kind: ActionTrivialDecompose, ID: id, Fi: newNode, Indices: []int{k}, Fanins: split})
	return newNode, nil
}
