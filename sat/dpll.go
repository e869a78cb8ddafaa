package sat

// DPLL is the reference Solver: a recursive Davis-Putnam-Logemann-
// Loveland search with unit propagation and a conflict budget that yields
// Undef once exceeded (§4.5, §7 "Solver under-determination"). It favors
// clarity over CDCL-grade performance, matching this module's role as a
// swappable reference behind the Solver interface rather than a production
// engine.
type DPLL struct {
	clauses [][]Lit
	nvars   int
	model   []int8 // -1 unassigned, 0 false, 1 true
}

// NewDPLL returns an empty solver with zero variables.
func NewDPLL() *DPLL {
	return &DPLL{}
}

func (d *DPLL) NewVar() int {
	d.nvars++
	d.model = append(d.model, -1)
	return d.nvars - 1
}

func (d *DPLL) SetNVars(n int) {
	for d.nvars < n {
		d.NewVar()
	}
}

func (d *DPLL) AddClause(lits ...Lit) {
	cl := append([]Lit(nil), lits...)
	d.clauses = append(d.clauses, cl)
}

// AddAnd Tseitin-encodes out <-> AND(ins): out implies every input, and all
// inputs true implies out.
func (d *DPLL) AddAnd(out int, ins []Lit) {
	all := make([]Lit, 0, len(ins)+1)
	all = append(all, Lit{Var: out, Neg: false})
	for _, in := range ins {
		d.AddClause(Lit{Var: out, Neg: true}, in)
		all = append(all, in.Not())
	}
	d.AddClause(all...)
}

// AddBuffer Tseitin-encodes out <-> in.
func (d *DPLL) AddBuffer(out int, in Lit) {
	d.AddClause(Lit{Var: out, Neg: true}, in)
	d.AddClause(Lit{Var: out, Neg: false}, in.Not())
}

// AddConst fixes out to a unit clause.
func (d *DPLL) AddConst(out int, value bool) {
	d.AddClause(Lit{Var: out, Neg: !value})
}

// AddXor Tseitin-encodes out <-> (a XOR b).
func (d *DPLL) AddXor(out int, a, b Lit) {
	o := Lit{Var: out}
	d.AddClause(a.Not(), b.Not(), o.Not())
	d.AddClause(a, b, o.Not())
	d.AddClause(a, b.Not(), o)
	d.AddClause(a.Not(), b, o)
}

// Solve searches for a satisfying assignment consistent with assumptions,
// giving up with Undef once the number of backtracks exceeds conflictLimit
// (conflictLimit <= 0 means unbounded).
func (d *DPLL) Solve(assumptions []Lit, conflictLimit int) (Outcome, []bool) {
	assign := make([]int8, d.nvars)
	for i := range assign {
		assign[i] = -1
	}
	for _, a := range assumptions {
		assign[a.Var] = boolToTrit(!a.Neg)
	}

	conflicts := 0
	ok := d.search(assign, 0, &conflicts, conflictLimit)
	if conflicts > conflictLimit && conflictLimit > 0 && !ok {
		return Undef, nil
	}
	if !ok {
		return Unsat, nil
	}
	d.model = assign
	out := make([]bool, d.nvars)
	for i, v := range assign {
		out[i] = v == 1
	}
	return Sat, out
}

func boolToTrit(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

// search is a backtracking DFS with unit propagation at each node.
func (d *DPLL) search(assign []int8, depth int, conflicts *int, limit int) bool {
	prop := append([]int8(nil), assign...)
	if !d.propagate(prop) {
		*conflicts++
		return false
	}
	if limit > 0 && *conflicts > limit {
		return false
	}

	v := firstUnassigned(prop)
	if v < 0 {
		copy(assign, prop)
		return true
	}

	for _, val := range [2]int8{1, 0} {
		trial := append([]int8(nil), prop...)
		trial[v] = val
		if d.search(trial, depth+1, conflicts, limit) {
			copy(assign, trial)
			return true
		}
		if limit > 0 && *conflicts > limit {
			return false
		}
	}
	return false
}

// propagate applies unit propagation in place until fixpoint or conflict.
func (d *DPLL) propagate(assign []int8) bool {
	changed := true
	for changed {
		changed = false
		for _, cl := range d.clauses {
			sat := false
			var unassignedLit Lit
			unassignedCount := 0
			for _, lit := range cl {
				v := assign[lit.Var]
				if v == -1 {
					unassignedCount++
					unassignedLit = lit
					continue
				}
				if (v == 1) != lit.Neg {
					sat = true
					break
				}
			}
			if sat {
				continue
			}
			if unassignedCount == 0 {
				return false // conflict: every literal false
			}
			if unassignedCount == 1 {
				assign[unassignedLit.Var] = boolToTrit(!unassignedLit.Neg)
				changed = true
			}
		}
	}
	return true
}

func firstUnassigned(assign []int8) int {
	for i, v := range assign {
		if v == -1 {
			return i
		}
	}
	return -1
}

func (d *DPLL) VarValue(v int) bool {
	if v < 0 || v >= len(d.model) {
		return false
	}
	return d.model[v] == 1
}

// Restart drops any cached model; clauses and variables are unaffected.
func (d *DPLL) Restart() { d.model = nil }

// Delete releases all clauses and variables.
func (d *DPLL) Delete() {
	d.clauses = nil
	d.nvars = 0
	d.model = nil
}

var _ Solver = (*DPLL)(nil)
