package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/rrrsub/network"
)

type NetworkSuite struct {
	suite.Suite
	n *network.Network
}

func (s *NetworkSuite) SetupTest() {
	s.n = network.NewNetwork()
}

func (s *NetworkSuite) TestConstantAlwaysPresent() {
	r := require.New(s.T())
	r.Equal(1, s.n.NumNodes())
	typ, err := s.n.GetNodeType(network.ConstZero)
	r.NoError(err)
	r.Equal(network.KindConstant, typ)
}

func (s *NetworkSuite) TestAddPiAndAnd() {
	r := require.New(s.T())
	a := s.n.AddPi()
	b := s.n.AddPi()
	c := s.n.AddAnd([]network.Fanin{{Node: a}, {Node: b, Complement: true}})

	r.Equal(2, s.n.NumFanins(c))
	fi, comp, err := s.n.GetFanin(c, 1)
	r.NoError(err)
	r.Equal(b, fi)
	r.True(comp)
	r.Equal(1, s.n.NumFanouts(a))
}

func (s *NetworkSuite) TestAddAndPanicsOnTooFewFanins() {
	a := s.n.AddPi()
	r := require.New(s.T())
	r.Panics(func() { s.n.AddAnd([]network.Fanin{{Node: a}}) })
}

func (s *NetworkSuite) TestAddPoRequiresSingleFanin() {
	r := require.New(s.T())
	a := s.n.AddPi()
	po := s.n.AddPo(network.Fanin{Node: a})
	r.True(s.n.IsPo(po))
	r.Equal(1, s.n.NumFanins(po))
}

func (s *NetworkSuite) TestIsReachable() {
	r := require.New(s.T())
	a := s.n.AddPi()
	b := s.n.AddPi()
	c := s.n.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	r.True(s.n.IsReachable(c, a))
	r.False(s.n.IsReachable(a, c))
}

func (s *NetworkSuite) TestCallbackReceivesActions() {
	r := require.New(s.T())
	a := s.n.AddPi()
	b := s.n.AddPi()
	c := s.n.AddAnd([]network.Fanin{{Node: a}, {Node: b}})

	var kinds []network.ActionKind
	h := s.n.AddCallback(func(act network.Action) { kinds = append(kinds, act.Kind) })

	s.n.AddFanin(c, a, true)
	r.Equal([]network.ActionKind{network.ActionAddFanin}, kinds)

	s.n.DeleteCallback(h)
	s.n.AddFanin(c, b, false)
	r.Equal([]network.ActionKind{network.ActionAddFanin}, kinds, "no further callbacks after DeleteCallback")
}

func TestNetworkSuite(t *testing.T) {
	suite.Run(t, new(NetworkSuite))
}
