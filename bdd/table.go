package bdd

// node is one interior ROBDD vertex: decision on variable Var, with Lo/Hi
// the else/then branches. Terminal nodes use Var -1.
type node struct {
	Var    int
	Lo, Hi Ref
}

// Table is the reference Manager: a single-owner (§9 "per-worker, never
// shared") unique-table ROBDD with a recursive ITE engine and a computed
// cache. It does not implement node reclamation on DecRef reaching zero or
// dynamic variable reordering — Reorder/TurnOffReo are no-ops here, which is
// fine for a reference/test implementation; a production cgo CUDD binding
// behind the same Manager interface would supply both.
type Table struct {
	nodes    []node
	unique   map[node]Ref
	refcount []int
	iteCache map[[3]Ref]Ref
	reorderd bool
}

// NewTable allocates an empty ROBDD manager with the two terminal nodes
// pre-registered (Const0 = 0, Const1 = 1).
func NewTable() *Table {
	t := &Table{
		unique:   make(map[node]Ref),
		iteCache: make(map[[3]Ref]Ref),
	}
	t.nodes = append(t.nodes, node{Var: -1}) // Const0
	t.nodes = append(t.nodes, node{Var: -1}) // Const1
	t.refcount = append(t.refcount, 1, 1)
	return t
}

func (t *Table) Const0() Ref { return 0 }
func (t *Table) Const1() Ref { return 1 }

func (t *Table) IthVar(i int) Ref {
	return t.unique_(i, t.Const0(), t.Const1())
}

// unique_ returns the canonical node for (v, lo, hi), creating it if absent,
// applying the ROBDD reduction rule lo==hi -> lo.
func (t *Table) unique_(v int, lo, hi Ref) Ref {
	if lo == hi {
		return lo
	}
	key := node{Var: v, Lo: lo, Hi: hi}
	if r, ok := t.unique[key]; ok {
		return r
	}
	r := Ref(len(t.nodes))
	t.nodes = append(t.nodes, key)
	t.refcount = append(t.refcount, 0)
	t.unique[key] = r
	return r
}

func (t *Table) varOf(r Ref) int {
	if int(r) < len(t.nodes) {
		return t.nodes[r].Var
	}
	return -1
}

// ite computes if-then-else(f,g,h) via the standard Shannon-expansion
// recursion with a memoized computed cache, terminating at the three
// trivial cases (f constant, g==h, g/h both terminal with matching polarity).
func (t *Table) ite(f, g, h Ref) Ref {
	if f == t.Const1() {
		return g
	}
	if f == t.Const0() {
		return h
	}
	if g == h {
		return g
	}
	if g == t.Const1() && h == t.Const0() {
		return f
	}
	key := [3]Ref{f, g, h}
	if r, ok := t.iteCache[key]; ok {
		return r
	}

	top := t.varOf(f)
	if v := t.varOf(g); t.varOf(g) >= 0 && (top < 0 || v < top) {
		top = v
	}
	if v := t.varOf(h); t.varOf(h) >= 0 && (top < 0 || v < top) {
		top = v
	}

	fLo, fHi := t.branch(f, top)
	gLo, gHi := t.branch(g, top)
	hLo, hHi := t.branch(h, top)

	lo := t.ite(fLo, gLo, hLo)
	hi := t.ite(fHi, gHi, hHi)
	r := t.unique_(top, lo, hi)
	t.iteCache[key] = r
	return r
}

// branch returns (lo, hi) of r with respect to variable v: r itself if r's
// top variable is not v (r does not depend on v), else its two children.
func (t *Table) branch(r Ref, v int) (Ref, Ref) {
	if t.varOf(r) != v {
		return r, r
	}
	n := t.nodes[r]
	return n.Lo, n.Hi
}

func (t *Table) And(a, b Ref) Ref { return t.ite(a, b, t.Const0()) }
func (t *Table) Or(a, b Ref) Ref  { return t.ite(a, t.Const1(), b) }
func (t *Table) Not(a Ref) Ref    { return t.ite(a, t.Const0(), t.Const1()) }

func (t *Table) LitIsEq(a, b Ref) bool { return a == b }
func (t *Table) IsConst0(a Ref) bool   { return a == t.Const0() }
func (t *Table) IsConst1(a Ref) bool   { return a == t.Const1() }

func (t *Table) IncRef(a Ref) {
	if int(a) < len(t.refcount) {
		t.refcount[a]++
	}
}

func (t *Table) DecRef(a Ref) {
	if int(a) < len(t.refcount) && t.refcount[a] > 0 {
		t.refcount[a]--
	}
}

// Reorder triggers variable-order sifting in a production CUDD binding; the
// reference table never reorders, so this is a no-op.
func (t *Table) Reorder() {}

// TurnOffReo disables automatic reordering; a no-op here for the same reason
// as Reorder, kept so callers can write manager-agnostic init code.
func (t *Table) TurnOffReo() { t.reorderd = true }

func (t *Table) GetNumTotalCreatedNodes() int { return len(t.nodes) }

var _ Manager = (*Table)(nil)
