package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrrsub/aiger"
	"github.com/katalvlaran/rrrsub/network"
)

// writeRedundantAiger writes u = a AND b; target = u AND b; PO = target (the
// same redundant-fanin scenario optimizer/scheduler tests use) to path.
func writeRedundantAiger(t *testing.T, path string, binary bool) {
	t.Helper()
	ntk := network.NewNetwork()
	a := ntk.AddPi()
	b := ntk.AddPi()
	u := ntk.AddAnd([]network.Fanin{{Node: a}, {Node: b}})
	target := ntk.AddAnd([]network.Fanin{{Node: u}, {Node: b}})
	ntk.AddPo(network.Fanin{Node: target})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, aiger.Write(ntk, f, binary))
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRun_OptimizesAndWritesSmallerNetwork(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.aig")
	out := filepath.Join(dir, "out.aig")
	writeRedundantAiger(t, in, true)

	code := run([]string{"-Y", "0", "-o", out, in}, devNull(t))
	require.Equal(t, 0, code)

	outFile, err := os.Open(out)
	require.NoError(t, err)
	defer outFile.Close()
	result, err := aiger.Read(outFile)
	require.NoError(t, err)

	require.Equal(t, 1, result.NumPos())
	require.Len(t, result.Ints(), 1, "the redundant target is removed, leaving only u")
	fi, _, err := result.GetFanin(result.Pos()[0], 0)
	require.NoError(t, err)
	require.True(t, result.Live(fi))
}

func TestRun_RejectsMissingOutputFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.aig")
	writeRedundantAiger(t, in, true)

	code := run([]string{in}, devNull(t))
	require.Equal(t, 2, code)
}

func TestRun_RejectsBadInputPath(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"-o", filepath.Join(dir, "out.aig"), filepath.Join(dir, "missing.aig")}, devNull(t))
	require.Equal(t, 1, code)
}

func TestRun_AsciiOutputExtensionRoundTrips(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.aag")
	out := filepath.Join(dir, "out.aag")
	writeRedundantAiger(t, in, false)

	code := run([]string{"-Y", "0", "-X", "0", "-o", out, in}, devNull(t))
	require.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("aag ")))
}
