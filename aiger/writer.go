package aiger

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/rrrsub/network"
	"github.com/katalvlaran/rrrsub/traverse"
)

// Write serializes ntk as AIGER, ASCII ("aag") when binary is false,
// delta-encoded binary ("aig") otherwise. Every live And node must have
// exactly two fanins; Network's AddAnd permits k>2 for the optimizer's own
// use, but this format has no record shape for it, so such a node yields
// ErrMalformedAnd rather than a silent lossy encoding.
func Write(ntk *network.Network, w io.Writer, binary bool) error {
	order, err := traverse.TopologicalOrder(ntk)
	if err != nil {
		return err
	}

	var ands []network.NodeID
	for _, id := range order {
		if ntk.IsInt(id) {
			ands = append(ands, id)
		}
	}

	pis := ntk.Pis()
	pos := ntk.Pos()

	varOf := make(map[network.NodeID]uint32, len(pis)+len(ands)+1)
	varOf[network.ConstZero] = 0
	for i, pi := range pis {
		varOf[pi] = uint32(i + 1)
	}
	nextVar := uint32(len(pis) + 1)
	for _, id := range ands {
		varOf[id] = nextVar
		nextVar++
	}

	magic := "aag"
	if binary {
		magic = "aig"
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %d %d %d %d %d\n", magic, nextVar-1, len(pis), 0, len(pos), len(ands)); err != nil {
		return err
	}

	if !binary {
		for _, pi := range pis {
			if _, err := fmt.Fprintf(bw, "%d\n", literalOf(varOf[pi], false)); err != nil {
				return err
			}
		}
	}

	for _, po := range pos {
		fi, comp, err := ntk.GetFanin(po, 0)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%d\n", literalOf(varOf[fi], comp)); err != nil {
			return err
		}
	}

	var binBuf []byte
	for _, id := range ands {
		fins := ntk.Fanins(id)
		if len(fins) != 2 {
			return ErrMalformedAnd
		}
		lhs := literalOf(varOf[id], false)
		r0 := literalOf(varOf[fins[0].Node], fins[0].Complement)
		r1 := literalOf(varOf[fins[1].Node], fins[1].Complement)
		if r0 < r1 {
			r0, r1 = r1, r0
		}
		if binary {
			binBuf = encodeDelta(binBuf, lhs-r0)
			binBuf = encodeDelta(binBuf, r0-r1)
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", lhs, r0, r1); err != nil {
			return err
		}
	}
	if binary {
		if _, err := bw.Write(binBuf); err != nil {
			return err
		}
	}

	return bw.Flush()
}
