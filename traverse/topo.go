package traverse

import "github.com/katalvlaran/rrrsub/network"

const (
	white = 0
	gray  = 1
	black = 2
)

// frame is one entry of the explicit DFS stack: the node being visited and
// how many of its fanins have already been pushed.
type frame struct {
	id   network.NodeID
	next int
}

// TopologicalOrder computes a linear ordering of v's live nodes such that
// every fanin of a node precedes it (dfs/topological.go's White/Gray/Black
// coloring scheme, reimplemented iteratively so AIG depth cannot blow the
// Go call stack). Returns ErrCycleDetected if a back-edge is found (I3).
func TopologicalOrder(v network.View) ([]network.NodeID, error) {
	n := v.NumNodes()
	color := make([]int, n)
	order := make([]network.NodeID, 0, n)

	for start := 0; start < n; start++ {
		if color[start] != white || !v.Live(network.NodeID(start)) {
			continue
		}
		stack := []frame{{id: network.NodeID(start)}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			fanins := v.Fanins(top.id)
			if top.next < len(fanins) {
				fi := fanins[top.next].Node
				top.next++
				switch color[fi] {
				case white:
					color[fi] = gray
					stack = append(stack, frame{id: fi})
				case gray:
					return nil, ErrCycleDetected
				}
				continue
			}
			color[top.id] = black
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return order, nil
}

// ForEachInt returns an Iterator over v's live nodes in topological order
// (every fanin before its consumer).
func ForEachInt(v network.View) (*Iterator, error) {
	order, err := TopologicalOrder(v)
	if err != nil {
		return nil, err
	}
	return newIterator(order), nil
}

// ForEachIntReverse returns an Iterator over v's live nodes in reverse
// topological order (every consumer before its fanins) — the natural order
// for fanout-style passes such as Sweep's strict reachability mark.
func ForEachIntReverse(v network.View) (*Iterator, error) {
	order, err := TopologicalOrder(v)
	if err != nil {
		return nil, err
	}
	rev := make([]network.NodeID, len(order))
	for i, id := range order {
		rev[len(order)-1-i] = id
	}
	return newIterator(rev), nil
}
