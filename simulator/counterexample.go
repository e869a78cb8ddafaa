package simulator

import "github.com/katalvlaran/rrrsub/network"

// Ingest fuses a SAT counter-example (a partial assignment over PrimaryInput
// indices) into the live pattern set (§4.3). It looks for a pattern slot
// whose already-committed bits agree with assignment everywhere it is
// locked; if none exists, a round-robin pivot evicts an old pattern. The
// fused slot is then re-simulated and the current target's cone is marked
// stale so the next CareSet/CheckRedundancy call picks up the change.
func (s *Simulator) Ingest(assignment map[int]bool) error {
	s.ensureLocks()
	slot := s.findCompatibleSlot(assignment)
	if slot < 0 {
		slot = int(s.pivot)
		s.pivot = (s.pivot + 1) % (uint(s.words) * 64)
	}
	for pi, bit := range assignment {
		if pi < 0 || pi >= len(s.locked) {
			continue
		}
		if err := s.pats.Ingest(pi, uint(slot), bit); err != nil {
			return err
		}
		s.locked[pi].Set(uint(slot))
	}
	s.resimWord(slot)
	if s.target != network.NoNode {
		s.stale[s.target] = true
	}
	return nil
}

func (s *Simulator) ensureLocks() {
	if s.locked != nil {
		return
	}
	s.locked = make([]*lockSet, s.pats.NumPis())
	for i := range s.locked {
		s.locked[i] = newLockSet(uint(s.words) * 64)
	}
}

// findCompatibleSlot returns the first pattern index compatible with
// assignment (every locked, disagreeing bit disqualifies a slot), or -1.
func (s *Simulator) findCompatibleSlot(assignment map[int]bool) int {
	numPatterns := uint(s.words) * 64
	for p := uint(0); p < numPatterns; p++ {
		ok := true
		for pi, bit := range assignment {
			if pi < 0 || pi >= len(s.locked) || !s.locked[pi].test(p) {
				continue
			}
			bs, err := s.pats.Input(pi)
			if err != nil {
				continue
			}
			if bs.Test(p) != bit {
				ok = false
				break
			}
		}
		if ok {
			return int(p)
		}
	}
	return -1
}

// resimWord re-simulates pattern slot `slot` (one bit position, not a whole
// 64-bit word despite the name — retained from the source's per-bit
// "single-word re-simulation" terminology) across every live node in
// topological order.
func (s *Simulator) resimWord(slot int) {
	order, err := topoOf(s.ntk)
	if err != nil {
		return
	}
	wordIdx := slot / 64
	bit := uint(slot % 64)
	for _, id := range order {
		typ, err := s.ntk.GetNodeType(id)
		if err != nil {
			continue
		}
		switch typ {
		case network.KindConstant:
			clearBit(s.values[id], wordIdx, bit)
		case network.KindPrimaryInput:
			pi := piIndex(s.ntk, id)
			bs, err := s.pats.Input(pi)
			if err != nil {
				continue
			}
			setBitTo(s.values[id], wordIdx, bit, bs.Test(uint(slot)))
		case network.KindAnd, network.KindPrimaryOutput:
			val := true
			for _, fi := range s.ntk.Fanins(id) {
				v := testBit(s.values[fi.Node], wordIdx, bit)
				if fi.Complement {
					v = !v
				}
				val = val && v
			}
			setBitTo(s.values[id], wordIdx, bit, val)
		}
	}
}

func testBit(words []uint64, wordIdx int, bit uint) bool {
	return words[wordIdx]>>bit&1 == 1
}

func setBitTo(words []uint64, wordIdx int, bit uint, v bool) {
	if v {
		words[wordIdx] |= 1 << bit
	} else {
		words[wordIdx] &^= 1 << bit
	}
}

func clearBit(words []uint64, wordIdx int, bit uint) {
	words[wordIdx] &^= 1 << bit
}

// lockSet is a minimal fixed-width bitset tracking which pattern slots have
// been fused by a prior counter-example (local to avoid a bitset-per-PI
// dependency edge just for this one internal use).
type lockSet struct {
	words []uint64
}

func newLockSet(n uint) *lockSet {
	return &lockSet{words: make([]uint64, (n+63)/64)}
}

func (l *lockSet) Set(i uint) {
	l.words[i/64] |= 1 << (i % 64)
}

func (l *lockSet) test(i uint) bool {
	return l.words[i/64]>>(i%64)&1 == 1
}
