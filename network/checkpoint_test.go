package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/rrrsub/network"
)

type CheckpointSuite struct {
	suite.Suite
	n *network.Network
}

func (s *CheckpointSuite) SetupTest() {
	s.n = network.NewNetwork()
}

func (s *CheckpointSuite) TestSaveLoadRoundTrip() {
	r := require.New(s.T())
	a := s.n.AddPi()
	b := s.n.AddPi()
	slot := s.n.Save()

	s.n.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	r.Equal(4, s.n.NumNodes())

	r.NoError(s.n.Load(slot))
	r.Equal(3, s.n.NumNodes())
}

func (s *CheckpointSuite) TestPopBackRemovesSlot() {
	r := require.New(s.T())
	s.n.Save()
	r.NoError(s.n.PopBack())
	r.Error(s.n.Load(0))
}

func (s *CheckpointSuite) TestLoadInvalidSlot() {
	r := require.New(s.T())
	r.ErrorIs(s.n.Load(5), network.ErrInvalidSlot)
}

func TestCheckpointSuite(t *testing.T) {
	suite.Run(t, new(CheckpointSuite))
}
