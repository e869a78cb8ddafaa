package scheduler

// resultHeap is a container/heap min-heap of Results keyed by JobIndex. It
// realizes the "dispatcher blocks until the next job id in sequence is
// ready" rule (§5 Ordering guarantees) the same way the teacher's graph
// package uses a heap.Interface priority queue for Dijkstra's frontier
// (graph/dijkstra.go's nodePQ).
type resultHeap []Result

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return h[i].JobIndex < h[j].JobIndex }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x interface{}) {
	*h = append(*h, x.(Result))
}

func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
