package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRun_RepetitionCode exercises the CLI end to end against temp files,
// without invoking flag.Parse (package-level flag vars are set directly,
// the same pattern the stdlib's own flag-heavy commands use in tests).
func TestRun_RepetitionCode(t *testing.T) {
	dir := t.TempDir()

	demContents := "error(0.1) D0 D1 L0\n" +
		"error(0.1) D1 D2\n" +
		"error(0.1) D2 D3\n" +
		"error(0.1) D3 D4\n" +
		"error(0.1) D0\n" +
		"error(0.1) D4\n"
	demFile := filepath.Join(dir, "model.dem")
	require.NoError(t, os.WriteFile(demFile, []byte(demContents), 0o644))

	syndromeFile := filepath.Join(dir, "syndromes.txt")
	require.NoError(t, os.WriteFile(syndromeFile, []byte("11000\n00110\n00000\n"), 0o644))

	resetFlags(t)
	*demPath = demFile
	*syndromePath = syndromeFile

	outPath := filepath.Join(dir, "out.txt")
	out, err := os.Create(outPath)
	require.NoError(t, err)
	restoreStdout := redirectStdout(t, out)
	code := run()
	restoreStdout()
	require.NoError(t, out.Close())

	require.Equal(t, 0, code)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "1\n0\n0\n", string(got))
}

func TestRun_SyndromeLengthMismatch(t *testing.T) {
	dir := t.TempDir()

	demFile := filepath.Join(dir, "model.dem")
	require.NoError(t, os.WriteFile(demFile, []byte("error(0.1) D0 D1 L0\nerror(0.1) D0\nerror(0.1) D1\n"), 0o644))

	syndromeFile := filepath.Join(dir, "syndromes.txt")
	require.NoError(t, os.WriteFile(syndromeFile, []byte("1\n"), 0o644))

	resetFlags(t)
	*demPath = demFile
	*syndromePath = syndromeFile

	require.Equal(t, 2, run())
}

func resetFlags(t *testing.T) {
	t.Helper()
	orig := *demPath
	origS := *syndromePath
	origOffset := *detOffset
	origMetrics := *metrics
	origMetricsAddr := *metricsAddr
	origVerbose := *verbose
	t.Cleanup(func() {
		*demPath = orig
		*syndromePath = origS
		*detOffset = origOffset
		*metrics = origMetrics
		*metricsAddr = origMetricsAddr
		*verbose = origVerbose
	})
	*detOffset = 0
	*metrics = false
	*metricsAddr = ""
	*verbose = false
}

func redirectStdout(t *testing.T, f *os.File) func() {
	t.Helper()
	old := os.Stdout
	os.Stdout = f
	return func() { os.Stdout = old }
}
