package network

// AddPi appends a new PrimaryInput node and returns its id.
// Complexity: O(1) amortized.
func (n *Network) AddPi() NodeID {
	id := n.allocNode(nodeRecord{kind: KindPrimaryInput, alive: true})
	n.pis = append(n.pis, id)
	n.invalidateTopo()
	return id
}

// AddAnd appends a new And node with the given fanins and returns its id.
// AddAnd panics if fewer than two fanins are given (I2) or if any fanin
// references a non-existent or dead node (structural contract violation,
// §7).
func (n *Network) AddAnd(fanins []Fanin) NodeID {
	if len(fanins) < 2 {
		panic("network: AddAnd requires at least two fanins")
	}
	for _, fi := range fanins {
		n.mustLive(fi.Node)
	}
	cp := append([]Fanin(nil), fanins...)
	id := n.allocNode(nodeRecord{kind: KindAnd, alive: true, fanins: cp})
	for idx, fi := range cp {
		n.addFanoutRef(fi.Node, id, idx)
	}
	n.invalidateTopo()
	return id
}

// AddPo appends a new PrimaryOutput node driven by fanin and returns its id
// (I5: POs always have exactly one fanin).
func (n *Network) AddPo(fanin Fanin) NodeID {
	n.mustLive(fanin.Node)
	id := n.allocNode(nodeRecord{kind: KindPrimaryOutput, alive: true, fanins: []Fanin{fanin}})
	n.addFanoutRef(fanin.Node, id, 0)
	n.pos = append(n.pos, id)
	n.invalidateTopo()
	return id
}

// allocNode appends rec as a freshly-allocated node and returns its id.
func (n *Network) allocNode(rec nodeRecord) NodeID {
	id := NodeID(len(n.nodes))
	n.nodes = append(n.nodes, rec)
	return id
}

// mustLive panics if id does not reference a live node (structural contract
// violation per §7).
func (n *Network) mustLive(id NodeID) {
	if int(id) < 0 || int(id) >= len(n.nodes) || !n.nodes[id].alive {
		panic("network: reference to dead or unknown node")
	}
}

// addFanoutRef appends a back-reference on source for (consumer, idx).
func (n *Network) addFanoutRef(source, consumer NodeID, idx int) {
	n.nodes[source].fanouts = append(n.nodes[source].fanouts, FanoutRef{Consumer: consumer, EdgeIndex: idx})
}
