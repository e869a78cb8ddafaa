package network

// View is the read-only surface the traverse package walks. *Network
// satisfies it directly; callers needing read-only traversal over a Network
// they do not own can pass it through without importing the mutators.
type View interface {
	NumNodes() int
	Pis() []NodeID
	Pos() []NodeID
	GetNodeType(id NodeID) (NodeKind, error)
	Fanins(id NodeID) []Fanin
	Fanouts(id NodeID) []FanoutRef
	Live(id NodeID) bool
}

var _ View = (*Network)(nil)
