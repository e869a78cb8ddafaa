package pattern_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/pattern"
)

func TestReadStimuliUnpacksMSBFirst(t *testing.T) {
	r := require.New(t)
	// 2 inputs, 1 byte each: 0xF0 -> bits 11110000 MSB-first, 0x0F -> 00001111.
	data := []byte{0xF0, 0x0F}
	s, err := pattern.ReadStimuli(bytes.NewReader(data), 2)
	r.NoError(err)
	r.EqualValues(64, s.NumPatterns()) // 1 byte -> 1 word, left-padded to 8 bytes

	in0, err := s.Input(0)
	r.NoError(err)
	// Real byte sits at the low-order end of the left-padded word: bit 56..63.
	r.True(in0.Test(56))
	r.True(in0.Test(57))
	r.True(in0.Test(58))
	r.True(in0.Test(59))
	r.False(in0.Test(60))
	r.False(in0.Test(0))
}

func TestReadStimuliRejectsMisalignedFile(t *testing.T) {
	r := require.New(t)
	_, err := pattern.ReadStimuli(bytes.NewReader([]byte{1, 2, 3}), 2)
	r.ErrorIs(err, pattern.ErrMalformedStimuli)
}

func TestWriteStimuliRoundTrips(t *testing.T) {
	r := require.New(t)
	data := []byte{0xAB, 0xCD, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE}
	s, err := pattern.ReadStimuli(bytes.NewReader(data), 1)
	r.NoError(err)

	var buf bytes.Buffer
	r.NoError(pattern.WriteStimuli(&buf, s))

	s2, err := pattern.ReadStimuli(bytes.NewReader(buf.Bytes()), 1)
	r.NoError(err)
	in1, _ := s.Input(0)
	in2, _ := s2.Input(0)
	r.True(in1.Equal(in2))
}

func TestNewRandomDeterministicWithSeed(t *testing.T) {
	r := require.New(t)
	a := pattern.NewRandom(4, 1, 42)
	b := pattern.NewRandom(4, 1, 42)
	for i := 0; i < 4; i++ {
		ai, _ := a.Input(i)
		bi, _ := b.Input(i)
		r.True(ai.Equal(bi))
	}
}
