package pattern

import (
	"errors"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/rrrsub/internal/rng"
)

// ErrWidthMismatch is returned by Store accessors given a PI/PO index
// outside the range fixed at construction.
var ErrWidthMismatch = errors.New("pattern: index out of declared width")

// Store holds one packed-bit stimulus vector per PrimaryInput plus an
// optional reference-output vector per PrimaryOutput. NumPatterns is fixed
// at construction (64*words), matching the teacher's fixed-width word-array
// convention rather than a growable bit slice.
type Store struct {
	nPis, nPos  int
	numPatterns uint
	inputs      []*bitset.BitSet
	outputs     []*bitset.BitSet
}

// NewStore allocates an empty Store sized for nPis inputs, nPos outputs, and
// 64*words patterns, with every bit initially zero.
func NewStore(nPis, nPos, words int) *Store {
	numPatterns := uint(64 * words)
	s := &Store{nPis: nPis, nPos: nPos, numPatterns: numPatterns}
	s.inputs = make([]*bitset.BitSet, nPis)
	for i := range s.inputs {
		s.inputs[i] = bitset.New(numPatterns)
	}
	s.outputs = make([]*bitset.BitSet, nPos)
	for i := range s.outputs {
		s.outputs[i] = bitset.New(numPatterns)
	}
	return s
}

// NewRandom allocates a Store of nPis inputs and 64*words patterns, filled
// with independent uniformly-random bits seeded from seed (no reference
// outputs — NewRandom is for stimulus generation, not regression checking).
func NewRandom(nPis, words int, seed int64) *Store {
	s := NewStore(nPis, 0, words)
	src := rng.New(seed)
	for _, bs := range s.inputs {
		for i := uint(0); i < s.numPatterns; i++ {
			if src.Float64() < 0.5 {
				bs.Set(i)
			}
		}
	}
	return s
}

// NumPatterns returns the fixed pattern-vector width (64*words).
func (s *Store) NumPatterns() uint { return s.numPatterns }

// NumPis returns the declared PrimaryInput count.
func (s *Store) NumPis() int { return s.nPis }

// NumPos returns the declared reference-output count (0 for a Store built
// via NewRandom).
func (s *Store) NumPos() int { return s.nPos }

// Input returns the pattern bitset for PrimaryInput index pi.
func (s *Store) Input(pi int) (*bitset.BitSet, error) {
	if pi < 0 || pi >= len(s.inputs) {
		return nil, ErrWidthMismatch
	}
	return s.inputs[pi], nil
}

// Output returns the reference-output bitset for PrimaryOutput index po.
func (s *Store) Output(po int) (*bitset.BitSet, error) {
	if po < 0 || po >= len(s.outputs) {
		return nil, ErrWidthMismatch
	}
	return s.outputs[po], nil
}

// Ingest overwrites pattern index p of PrimaryInput pi with bit, used by
// simulator.Simulator.Ingest to fuse a SAT counter-example into the live stimulus set
// (§4.5). Growing numPatterns is not supported; p must already be in range.
func (s *Store) Ingest(pi int, p uint, bit bool) error {
	if pi < 0 || pi >= len(s.inputs) {
		return ErrWidthMismatch
	}
	if p >= s.numPatterns {
		return ErrWidthMismatch
	}
	s.inputs[pi].SetTo(p, bit)
	return nil
}
