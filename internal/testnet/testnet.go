// Package testnet builds synthetic AIG networks for exercising the
// optimizer, partitioner, and scheduler beyond the few hand-built 3-4 node
// fixtures those packages' own tests construct inline. Adapted from the
// teacher's builder package: Chain mirrors builder.Path's sequential,
// index-ordered construction; RandomDAG mirrors builder.RandomSparse's
// Erdős-Rényi admissible-edge-with-probability-p model, reseated from
// undirected vertex pairs onto AND-node fanin selection among
// already-constructed nodes (so the result is acyclic by construction,
// matching I3).
package testnet

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/rrrsub/network"
)

// ErrTooFewNodes mirrors builder.ErrTooFewVertices: a requested size is
// below the minimum the constructor can honor.
var ErrTooFewNodes = errors.New("testnet: requested size too small")

// ErrInvalidProbability mirrors builder.ErrInvalidProbability.
var ErrInvalidProbability = errors.New("testnet: probability out of range")

// Chain builds a straight-line AND chain of the given length over two
// PrimaryInputs: pi0 AND pi1 = n0; n0 AND pi1 = n1; ...; the last node
// drives the single PrimaryOutput. length must be >= 1.
func Chain(length int) (*network.Network, error) {
	if length < 1 {
		return nil, ErrTooFewNodes
	}
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	cur := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	for i := 1; i < length; i++ {
		cur = ntk.AddAnd([]network.Fanin{{Node: cur}, {Node: b}})
	}
	ntk.AddPo(network.Fanin{Node: cur})
	return ntk, nil
}

// RandomDAG builds an AIG with nPis PrimaryInputs and up to nAnds And nodes,
// seeded for reproducibility. Each new And node independently samples two
// fanins from the nodes already constructed (PIs and earlier Ands), with
// each fanin independently complemented with probability p — the same
// "independent Bernoulli trial per admissible edge" model builder.RandomSparse
// uses for undirected edges, reseated onto a topologically-safe DAG fanin
// choice instead of an unordered vertex pair. Every live node (one with no
// consumer yet) is wired to a PrimaryOutput at the end, so the network has
// no dangling internal logic.
func RandomDAG(nPis, nAnds int, p float64, seed int64) (*network.Network, error) {
	if nPis < 2 {
		return nil, ErrTooFewNodes
	}
	if p < 0 || p > 1 {
		return nil, ErrInvalidProbability
	}
	rnd := rand.New(rand.NewSource(seed))

	ntk := network.NewNetwork()
	pool := make([]network.NodeID, 0, nPis+nAnds)
	for i := 0; i < nPis; i++ {
		pool = append(pool, ntk.AddPi())
	}

	for i := 0; i < nAnds; i++ {
		i0 := rnd.Intn(len(pool))
		i1 := rnd.Intn(len(pool))
		fi0 := network.Fanin{Node: pool[i0], Complement: rnd.Float64() < p}
		fi1 := network.Fanin{Node: pool[i1], Complement: rnd.Float64() < p}
		if fi0.Node == fi1.Node && fi0.Complement == fi1.Complement {
			// Network requires two distinct fanin edges' combined effect to
			// be meaningful; degenerate self-AND collapses later anyway, but
			// pick a second distinct source up front to avoid relying on
			// TrivialCollapse firing mid-construction.
			i1 = (i1 + 1) % len(pool)
			fi1 = network.Fanin{Node: pool[i1], Complement: rnd.Float64() < p}
		}
		id := ntk.AddAnd([]network.Fanin{fi0, fi1})
		pool = append(pool, id)
	}

	for _, id := range pool {
		if ntk.NumFanouts(id) == 0 {
			ntk.AddPo(network.Fanin{Node: id})
		}
	}
	return ntk, nil
}
