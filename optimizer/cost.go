package optimizer

import "github.com/katalvlaran/rrrsub/network"

// CostFunc scores a network for the optimizer's greedy accept/reject
// decision (§4.7). Lower is better.
type CostFunc func(*network.Network) float64

// DefaultCost is the two-input-AND-equivalent size: the sum over internal
// nodes of (num_fanins - 1), i.e. how many binary AND gates a k-input node
// would decompose into.
func DefaultCost(ntk *network.Network) float64 {
	var size float64
	for _, id := range ntk.Ints() {
		size += float64(ntk.NumFanins(id) - 1)
	}
	return size
}
