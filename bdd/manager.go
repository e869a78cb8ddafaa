package bdd

// Ref is an opaque, reference-counted handle to a BDD node. RefInvalid never
// denotes a live node.
type Ref int

// RefInvalid is the sentinel "no node" handle.
const RefInvalid Ref = -1

// Manager is the §6 library boundary the Analyzer depends on. It is
// satisfied by *Table (this package's reference implementation) and is the
// seam a cgo CUDD binding would occupy in a production build.
type Manager interface {
	Const0() Ref
	Const1() Ref
	IthVar(i int) Ref
	And(a, b Ref) Ref
	Or(a, b Ref) Ref
	Not(a Ref) Ref
	LitIsEq(a, b Ref) bool
	IsConst0(a Ref) bool
	IsConst1(a Ref) bool
	IncRef(a Ref)
	DecRef(a Ref)
	Reorder()
	TurnOffReo()
	GetNumTotalCreatedNodes() int
}
