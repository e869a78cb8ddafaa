package partitioner

import (
	"errors"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
)

// ErrSeedNotAnd is returned by Extract when seed is not an And node.
var ErrSeedNotAnd = errors.New("partitioner: seed is not an And node")

// ErrWindowCollapsed is returned by Extract when StrategyDropOutputs
// shrinks the core set to empty (every candidate node was disqualified by
// the cycle check).
var ErrWindowCollapsed = errors.New("partitioner: window collapsed to empty under cycle avoidance")

// Extract builds a k-hop neighborhood of seed into a standalone Window
// (§4.8). The neighborhood is grown over the And-node induced subgraph
// (both fanin and fanout edges, so the hop count spans both cones);
// PrimaryInput, Constant, and PrimaryOutput nodes are never part of the
// window's internal node set — they are always boundary, becoming either a
// window input or simply left as the original network's own PO.
func Extract(orig *network.Network, seed network.NodeID, hops int, strategy CycleStrategy) (*Window, error) {
	typ, err := orig.GetNodeType(seed)
	if err != nil {
		return nil, err
	}
	if typ != network.KindAnd {
		return nil, ErrSeedNotAnd
	}

	core := map[network.NodeID]bool{seed: true}
	frontier := []network.NodeID{seed}
	for depth := 0; depth < hops && len(frontier) > 0; depth++ {
		var next []network.NodeID
		for _, id := range frontier {
			for _, fi := range orig.Fanins(id) {
				if isAnd(orig, fi.Node) && !core[fi.Node] {
					core[fi.Node] = true
					next = append(next, fi.Node)
				}
			}
			for _, fo := range orig.Fanouts(id) {
				if isAnd(orig, fo.Consumer) && !core[fo.Consumer] {
					core[fo.Consumer] = true
					next = append(next, fo.Consumer)
				}
			}
		}
		frontier = next
	}

	switch strategy {
	case StrategyPullIn:
		pullInUntilFixpoint(orig, core)
	case StrategyDropOutputs:
		if err := dropOutputsUntilFixpoint(orig, core); err != nil {
			return nil, err
		}
	}
	if len(core) == 0 {
		return nil, ErrWindowCollapsed
	}

	inputsSet, outputsSet := boundary(orig, core)
	return build(orig, core, inputsSet, outputsSet)
}

func isAnd(orig *network.Network, id network.NodeID) bool {
	k, err := orig.GetNodeType(id)
	return err == nil && k == network.KindAnd
}

// boundary computes, in a stable order, the window inputs (external fanin
// sources of core nodes) and window outputs (core nodes with a fanout
// outside core, or that drive a PrimaryOutput directly).
func boundary(orig *network.Network, core map[network.NodeID]bool) (inputs, outputs []network.NodeID) {
	seenIn := make(map[network.NodeID]bool)
	seenOut := make(map[network.NodeID]bool)
	// Stable order: walk core via a topological pass so Extract's output is
	// deterministic across calls on the same network.
	order, err := traverse.TopologicalOrder(orig)
	if err != nil {
		order = nil
		for id := range core {
			order = append(order, id)
		}
	}
	for _, id := range order {
		if !core[id] {
			continue
		}
		for _, fi := range orig.Fanins(id) {
			if !core[fi.Node] && !seenIn[fi.Node] {
				seenIn[fi.Node] = true
				inputs = append(inputs, fi.Node)
			}
		}
		isOutput := orig.IsPoDriver(id)
		if !isOutput {
			for _, fo := range orig.Fanouts(id) {
				if !core[fo.Consumer] {
					isOutput = true
					break
				}
			}
		}
		if isOutput && !seenOut[id] {
			seenOut[id] = true
			outputs = append(outputs, id)
		}
	}
	return inputs, outputs
}

// pullInUntilFixpoint implements §4.8 strategy (a): grow core by pulling in
// any external consumer of a window output that can reach back to a window
// input, until no such consumer remains. A PrimaryOutput consumer can never
// satisfy the reach check (it has no fanouts to propagate through), so only
// And-node consumers are ever pulled in.
func pullInUntilFixpoint(orig *network.Network, core map[network.NodeID]bool) {
	for {
		inputs, outputs := boundary(orig, core)
		grew := false
		for _, o := range outputs {
			for _, fo := range orig.Fanouts(o) {
				cons := fo.Consumer
				if core[cons] {
					continue
				}
				for _, i := range inputs {
					if orig.IsReachable(i, cons) {
						core[cons] = true
						grew = true
						break
					}
				}
				if grew {
					break
				}
			}
			if grew {
				break
			}
		}
		if !grew {
			return
		}
	}
}

// dropOutputsUntilFixpoint implements §4.8 strategy (b): shrink core by
// dropping any output whose external fanout can reach a window input,
// cascading the drop through that output's fanin cone as long as the
// cascaded node has no remaining consumer elsewhere in core (the "up to
// those inputs" boundary).
func dropOutputsUntilFixpoint(orig *network.Network, core map[network.NodeID]bool) error {
	for {
		inputs, outputs := boundary(orig, core)
		dropped := false
		for _, o := range outputs {
			risky := false
			for _, fo := range orig.Fanouts(o) {
				cons := fo.Consumer
				if core[cons] {
					continue
				}
				for _, i := range inputs {
					if orig.IsReachable(i, cons) {
						risky = true
						break
					}
				}
				if risky {
					break
				}
			}
			if !risky {
				continue
			}
			cascadeDrop(orig, core, o)
			dropped = true
			break
		}
		if !dropped {
			if len(core) == 0 {
				return ErrWindowCollapsed
			}
			return nil
		}
	}
}

func cascadeDrop(orig *network.Network, core map[network.NodeID]bool, start network.NodeID) {
	removed := map[network.NodeID]bool{start: true}
	stack := []network.NodeID{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, fi := range orig.Fanins(cur) {
			if !core[fi.Node] || removed[fi.Node] {
				continue
			}
			stillNeeded := false
			for _, fo := range orig.Fanouts(fi.Node) {
				if core[fo.Consumer] && !removed[fo.Consumer] {
					stillNeeded = true
					break
				}
			}
			if !stillNeeded {
				removed[fi.Node] = true
				stack = append(stack, fi.Node)
			}
		}
	}
	for id := range removed {
		delete(core, id)
	}
}

// build materializes core as a standalone network with fresh ids: one PI
// per window input, one And node per core node (referencing either other
// freshly built core nodes or the corresponding input PI), and one PO per
// window output.
func build(orig *network.Network, core map[network.NodeID]bool, inputs, outputs []network.NodeID) (*Window, error) {
	sub := network.NewNetwork()
	orig2sub := make(map[network.NodeID]network.NodeID, len(core)+len(inputs))
	for _, origID := range inputs {
		orig2sub[origID] = sub.AddPi()
	}

	order, err := traverse.TopologicalOrder(orig)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		if !core[id] {
			continue
		}
		fanins := orig.Fanins(id)
		subFanins := make([]network.Fanin, len(fanins))
		for i, fi := range fanins {
			subFanins[i] = network.Fanin{Node: orig2sub[fi.Node], Complement: fi.Complement}
		}
		orig2sub[id] = sub.AddAnd(subFanins)
	}

	for _, origID := range outputs {
		sub.AddPo(network.Fanin{Node: orig2sub[origID]})
	}

	coreCopy := make(map[network.NodeID]bool, len(core))
	for id := range core {
		coreCopy[id] = true
	}
	return &Window{ntk: sub, inputs: inputs, outputs: outputs, core: coreCopy}, nil
}
