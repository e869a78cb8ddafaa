package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/rrrsub/network"
)

type MutateSuite struct {
	suite.Suite
	n          *network.Network
	a, b, c    network.NodeID
	and1, and2 network.NodeID
}

func (s *MutateSuite) SetupTest() {
	s.n = network.NewNetwork()
	s.a = s.n.AddPi()
	s.b = s.n.AddPi()
	s.c = s.n.AddPi()
	s.and1 = s.n.AddAnd([]network.Fanin{{Node: s.a}, {Node: s.b}})
	s.and2 = s.n.AddAnd([]network.Fanin{{Node: s.and1}, {Node: s.c}})
}

func (s *MutateSuite) TestRemoveFaninShiftsIndices() {
	r := require.New(s.T())
	// and2 has fanins [and1@0, c@1]; remove and1 leaves c at index 0.
	r.NoError(s.n.RemoveFanin(s.and2, 0))
	fi, _, err := s.n.GetFanin(s.and2, 0)
	r.NoError(err)
	r.Equal(s.c, fi)
}

func (s *MutateSuite) TestPropagateCollapsesBuffer() {
	r := require.New(s.T())
	r.NoError(s.n.RemoveFanin(s.and2, 1)) // and2 now has sole fanin and1@0
	r.NoError(s.n.Propagate(s.and2))

	typ, err := s.n.GetNodeType(s.and2)
	r.Error(err, "and2 must be destroyed")
	_ = typ
}

func (s *MutateSuite) TestPropagateRewiresConsumers() {
	r := require.New(s.T())
	po := s.n.AddPo(network.Fanin{Node: s.and2})

	r.NoError(s.n.RemoveFanin(s.and2, 1))
	r.NoError(s.n.Propagate(s.and2))

	fi, comp, err := s.n.GetFanin(po, 0)
	r.NoError(err)
	r.Equal(s.and1, fi)
	r.False(comp)
}

func (s *MutateSuite) TestAddFaninRejectsCycle() {
	r := require.New(s.T())
	r.Panics(func() { s.n.AddFanin(s.and1, s.and2, false) }, "and1 is a fanin of and2; wiring and2 back into and1 would cycle")
}

func (s *MutateSuite) TestTrivialDecompose() {
	r := require.New(s.T())
	d := s.n.AddPi()
	e := s.n.AddPi()
	big := s.n.AddAnd([]network.Fanin{{Node: s.a}, {Node: s.b}, {Node: s.c}, {Node: d}, {Node: e}})

	newNode, err := s.n.TrivialDecompose(big, 3)
	r.NoError(err)
	r.Equal(3, s.n.NumFanins(newNode))
	r.Equal(3, s.n.NumFanins(big)) // [newNode, d, e]
	fi, _, err := s.n.GetFanin(big, 0)
	r.NoError(err)
	r.Equal(newNode, fi)
}

func (s *MutateSuite) TestSweepRefcountRemovesDeadChain() {
	r := require.New(s.T())
	// and1 currently feeds and2 only; detach and2's dependency on it.
	r.NoError(s.n.RemoveFanin(s.and2, 0))
	r.NoError(s.n.Propagate(s.and2)) // and2 now a buffer over c, destroyed
	s.n.Sweep(false)

	_, err := s.n.GetNodeType(s.and1)
	r.Error(err, "and1 lost its only consumer and must be swept")
}

func TestMutateSuite(t *testing.T) {
	suite.Run(t, new(MutateSuite))
}
