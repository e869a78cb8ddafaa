package network

import (
	"github.com/katalvlaran/rrrsub/internal/xlog"
	"github.com/rs/zerolog"
)

// NodeID is the dense, non-negative integer identity of a node. Id 0 is the
// dedicated constant-zero node (I4); ids are stable for the lifetime of the
// node. A freed id is not handed out again, except that Load/PopBack of an
// earlier checkpoint drops every id allocated after it, and later
// allocations then reuse those ids.
type NodeID int

// NoNode is the sentinel "absent node" value (for example an analyzer's
// "no current target").
const NoNode NodeID = -1

// ConstZero is the id of the always-present constant-zero node.
const ConstZero NodeID = 0

// NodeKind enumerates the node variants of §3. This spec requires full
// mutator support only for Constant, PrimaryInput, PrimaryOutput, and And;
// Xor and Lut are declared for forward compatibility with richer node types
// but have no constructors or mutators in this package.
type NodeKind int

const (
	KindConstant NodeKind = iota
	KindPrimaryInput
	KindPrimaryOutput
	KindAnd
	KindXor
	KindLut
)

// String renders the node kind for logging and diagnostics.
func (k NodeKind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindPrimaryInput:
		return "PrimaryInput"
	case KindPrimaryOutput:
		return "PrimaryOutput"
	case KindAnd:
		return "And"
	case KindXor:
		return "Xor"
	case KindLut:
		return "Lut"
	default:
		return "Unknown"
	}
}

// Fanin is one ordered, per-consumer input edge: the id of the source node
// and whether the edge carries a complement (inversion).
type Fanin struct {
	Node       NodeID
	Complement bool
}

// FanoutRef is a back-reference from a node to one of its consumers: which
// node consumes it (Consumer) and at which fanin position (EdgeIndex).
type FanoutRef struct {
	Consumer  NodeID
	EdgeIndex int
}

// nodeRecord is the internal storage for one node. alive tracks whether the
// id is currently in use; once freed (by Sweep, Propagate, RemoveUnused or
// TrivialCollapse), the slot stays dead unless a Load/PopBack truncates the
// node table below it.
type nodeRecord struct {
	kind    NodeKind
	fanins  []Fanin
	fanouts []FanoutRef
	alive   bool
}

// ActionKind tags the payload of a broadcast Action (§3).
type ActionKind int

const (
	ActionRemoveFanin ActionKind = iota
	ActionRemoveUnused
	ActionRemoveBuffer
	ActionRemoveConst
	ActionAddFanin
	ActionTrivialCollapse
	ActionTrivialDecompose
	ActionSortFanins
	ActionRead
	ActionSave
	ActionLoad
	ActionPopBack
	ActionInsert
)

// String renders the action kind for logging.
func (k ActionKind) String() string {
	switch k {
	case ActionRemoveFanin:
		return "REMOVE_FANIN"
	case ActionRemoveUnused:
		return "REMOVE_UNUSED"
	case ActionRemoveBuffer:
		return "REMOVE_BUFFER"
	case ActionRemoveConst:
		return "REMOVE_CONST"
	case ActionAddFanin:
		return "ADD_FANIN"
	case ActionTrivialCollapse:
		return "TRIVIAL_COLLAPSE"
	case ActionTrivialDecompose:
		return "TRIVIAL_DECOMPOSE"
	case ActionSortFanins:
		return "SORT_FANINS"
	case ActionRead:
		return "READ"
	case ActionSave:
		return "SAVE"
	case ActionLoad:
		return "LOAD"
	case ActionPopBack:
		return "POP_BACK"
	case ActionInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// Action is the callback payload broadcast to every subscriber after each
// structural mutation (§3). Fields an ActionKind does not use are left at
// their Go zero values (ID 0, Idx 0, Fi 0, nil slices); they are not set to
// NoNode or -1, so a zero in an unused field is indistinguishable from a
// real id 0 or index 0.
type Action struct {
	Kind       ActionKind
	ID         NodeID
	Idx        int
	Fi         NodeID
	Complement bool
	Fanins     []Fanin
	Indices    []int
	Fanouts    []FanoutRef
}

// CallbackHandle identifies a registered subscriber for later removal.
type CallbackHandle int

type callbackEntry struct {
	handle CallbackHandle
	fn     func(Action)
	active bool
}

// Option configures a Network at construction time, mirroring the teacher
// package's functional-option idiom (core.GraphOption).
type Option func(*Network)

// WithVerbosity sets the structured-logging verbosity for this Network,
// mirroring the CLI's -V flag (§6).
func WithVerbosity(level int) Option {
	return func(n *Network) { n.log = xlog.WithComponent("network", level) }
}

// Network is the mutable And-Inverter Graph described by §3/§4.1.
type Network struct {
	nodes       []nodeRecord
	pis         []NodeID
	pos         []NodeID
	callbacks   []callbackEntry
	nextHandle  CallbackHandle
	checkpoints []snapshot

	topoOrder []NodeID
	topoValid bool

	log zerolog.Logger
}

// NewNetwork returns an empty Network containing only the constant-zero
// node at id 0 (I4).
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		log: xlog.WithComponent("network", 0),
	}
	n.nodes = append(n.nodes, nodeRecord{kind: KindConstant, alive: true})
	for _, opt := range opts {
		opt(n)
	}
	return n
}
