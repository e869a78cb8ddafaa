package partitioner

import (
	"sort"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
)

// Insert wires a (possibly re-optimized) Window back into dst, which must be
// the same network (or share the same id space) that the window was
// extracted from. It rebuilds the window's And structure directly in dst,
// redirects every external consumer of a window output to the freshly built
// driver, then sweeps the old window's now-unreachable nodes (§4.8).
func (w *Window) Insert(dst *network.Network) error {
	order, err := traverse.TopologicalOrder(w.ntk)
	if err != nil {
		return err
	}

	subPis := w.ntk.Pis()
	sub2dst := make(map[network.NodeID]network.NodeID, len(order)+len(subPis))
	for i, subPi := range subPis {
		sub2dst[subPi] = w.inputs[i]
	}
	for _, id := range order {
		if !w.ntk.IsInt(id) {
			continue
		}
		fanins := w.ntk.Fanins(id)
		dstFanins := make([]network.Fanin, len(fanins))
		for i, fi := range fanins {
			dstFanins[i] = network.Fanin{Node: sub2dst[fi.Node], Complement: fi.Complement}
		}
		sub2dst[id] = dst.AddAnd(dstFanins)
	}

	subPos := w.ntk.Pos()
	for j, origOutput := range w.outputs {
		driverSub := w.ntk.Fanins(subPos[j])[0].Node
		dstDriver := sub2dst[driverSub]
		if err := redirectConsumers(dst, origOutput, dstDriver, w.core); err != nil {
			return err
		}
	}

	dst.Sweep(false)
	return nil
}

type faninEdge struct {
	consumer   network.NodeID
	idx        int
	complement bool
}

// redirectConsumers points every external (non-core) consumer of origOutput
// at dstDriver instead, preserving each edge's complement flag.
func redirectConsumers(dst *network.Network, origOutput, dstDriver network.NodeID, core map[network.NodeID]bool) error {
	fanouts := append([]network.FanoutRef(nil), dst.Fanouts(origOutput)...)

	var poConsumers []network.NodeID
	byConsumer := make(map[network.NodeID][]faninEdge)
	for _, fo := range fanouts {
		if core[fo.Consumer] {
			continue
		}
		if dst.IsPo(fo.Consumer) {
			poConsumers = append(poConsumers, fo.Consumer)
			continue
		}
		_, complement, err := dst.GetFanin(fo.Consumer, fo.EdgeIndex)
		if err != nil {
			return err
		}
		byConsumer[fo.Consumer] = append(byConsumer[fo.Consumer], faninEdge{fo.Consumer, fo.EdgeIndex, complement})
	}

	for _, po := range poConsumers {
		_, complement, err := dst.GetFanin(po, 0)
		if err != nil {
			return err
		}
		if err := dst.SetPoFanin(po, network.Fanin{Node: dstDriver, Complement: complement}); err != nil {
			return err
		}
	}

	for consumer, edges := range byConsumer {
		sort.Slice(edges, func(i, k int) bool { return edges[i].idx > edges[k].idx })
		for _, e := range edges {
			if err := dst.RemoveFanin(consumer, e.idx); err != nil {
				return err
			}
		}
		for _, e := range edges {
			dst.AddFanin(consumer, dstDriver, e.complement)
		}
	}
	return nil
}
