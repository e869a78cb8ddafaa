package aiger

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/rrrsub/network"
)

// Read parses an AIGER stream (either "aag" ASCII or "aig" binary) into a
// fresh Network. PrimaryInputs are created in the header's input order and
// And nodes in the file's definition order, which is already a valid
// topological order per the format's own "definition precedes use" rule.
func Read(r io.Reader) (*network.Network, error) {
	br := bufio.NewReader(r)

	headerLine, err := readLine(br)
	if err != nil {
		return nil, ErrTruncated
	}
	fields := strings.Fields(headerLine)
	if len(fields) != 6 {
		return nil, ErrBadHeader
	}
	var binary bool
	switch fields[0] {
	case "aag":
		binary = false
	case "aig":
		binary = true
	default:
		return nil, ErrBadHeader
	}
	m, i, l, o, a, err := parseCounts(fields[1:])
	if err != nil {
		return nil, ErrBadHeader
	}
	if l > 0 {
		return nil, ErrLatchesUnsupported
	}

	ntk := network.NewNetwork()
	varToNode := make([]network.NodeID, m+1)
	varToNode[0] = network.ConstZero

	if !binary {
		for idx := 0; idx < i; idx++ {
			lit, err := readLiteralLine(br)
			if err != nil {
				return nil, err
			}
			v, comp := varOfLiteral(lit)
			if comp || int(v) > m {
				return nil, ErrBadLiteral
			}
			varToNode[v] = ntk.AddPi()
		}
	} else {
		for idx := 0; idx < i; idx++ {
			varToNode[idx+1] = ntk.AddPi()
		}
	}

	outLits := make([]uint32, o)
	for idx := 0; idx < o; idx++ {
		lit, err := readLiteralLine(br)
		if err != nil {
			return nil, err
		}
		outLits[idx] = lit
	}

	if !binary {
		for idx := 0; idx < a; idx++ {
			line, err := readLine(br)
			if err != nil {
				return nil, ErrTruncated
			}
			parts := strings.Fields(line)
			if len(parts) != 3 {
				return nil, ErrMalformedAnd
			}
			lhs, err1 := strconv.ParseUint(parts[0], 10, 32)
			r0, err2 := strconv.ParseUint(parts[1], 10, 32)
			r1, err3 := strconv.ParseUint(parts[2], 10, 32)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, ErrMalformedAnd
			}
			v, comp := varOfLiteral(uint32(lhs))
			if comp || int(v) > m {
				return nil, ErrMalformedAnd
			}
			fi0, fi1, err := resolveAndFanins(varToNode, uint32(r0), uint32(r1), m)
			if err != nil {
				return nil, err
			}
			varToNode[v] = ntk.AddAnd([]network.Fanin{fi0, fi1})
		}
	} else {
		for idx := 0; idx < a; idx++ {
			v := uint32(i + 1 + idx)
			lhs := literalOf(v, false)
			d0, err := decodeDelta(br)
			if err != nil {
				return nil, ErrTruncated
			}
			d1, err := decodeDelta(br)
			if err != nil {
				return nil, ErrTruncated
			}
			if d0 > lhs {
				return nil, ErrMalformedAnd
			}
			r0 := lhs - d0
			if d1 > r0 {
				return nil, ErrMalformedAnd
			}
			r1 := r0 - d1
			fi0, fi1, err := resolveAndFanins(varToNode, r0, r1, m)
			if err != nil {
				return nil, err
			}
			varToNode[v] = ntk.AddAnd([]network.Fanin{fi0, fi1})
		}
	}

	for _, lit := range outLits {
		v, comp := varOfLiteral(lit)
		if int(v) > m {
			return nil, ErrBadLiteral
		}
		ntk.AddPo(network.Fanin{Node: varToNode[v], Complement: comp})
	}

	return ntk, nil
}

func resolveAndFanins(varToNode []network.NodeID, r0, r1 uint32, m int) (network.Fanin, network.Fanin, error) {
	v0, c0 := varOfLiteral(r0)
	v1, c1 := varOfLiteral(r1)
	if int(v0) > m || int(v1) > m {
		return network.Fanin{}, network.Fanin{}, ErrBadLiteral
	}
	return network.Fanin{Node: varToNode[v0], Complement: c0}, network.Fanin{Node: varToNode[v1], Complement: c1}, nil
}

func parseCounts(fields []string) (m, i, l, o, a int, err error) {
	vals := make([]int, 5)
	for idx, f := range fields {
		n, e := strconv.Atoi(f)
		if e != nil {
			return 0, 0, 0, 0, 0, e
		}
		vals[idx] = n
	}
	return vals[0], vals[1], vals[2], vals[3], vals[4], nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readLiteralLine(br *bufio.Reader) (uint32, error) {
	line, err := readLine(br)
	if err != nil {
		return 0, ErrTruncated
	}
	n, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return 0, ErrBadLiteral
	}
	return uint32(n), nil
}

func decodeDelta(br *bufio.Reader) (uint32, error) {
	var x uint32
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		x |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return x, nil
}
