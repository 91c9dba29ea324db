package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/dspcheck/dsp/core"
	"github.com/cwbudde/dspcheck/dsp/signal"
	"github.com/cwbudde/dspcheck/wavfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func defaultOptions(dir string) options {
	return options{
		SampleRate: 16000,
		Duration:   signal.DefaultDuration,
		LevelDB:    signal.DefaultLevelDB,
		ClickValue: signal.DefaultClickValue,
		OutputDir:  dir,
		Verify:     true,
	}
}

func TestRun_WritesGrid(t *testing.T) {
	obsCore, logs := observer.New(zap.InfoLevel)
	dir := t.TempDir()

	res, err := run(context.Background(), defaultOptions(dir), zap.New(obsCore))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "synth_grid_fs16000.wav"), res.WAV)
	assert.Empty(t, res.Manifest)
	assert.Empty(t, res.Plot)

	x, info, err := wavfile.ReadFile(res.WAV)
	require.NoError(t, err)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	require.Len(t, x, 64000)
	for _, idx := range []int{0, 16000, 32000, 48000, 63999} {
		assert.Equal(t, 0.5, x[idx], "click at %d", idx)
	}

	var lines []string
	for _, e := range logs.FilterMessageSnippet("Synthesise: ").All() {
		lines = append(lines, e.Message)
	}
	assert.Equal(t, []string{
		"Synthesise:     0.00Hz at -32dB",
		"Synthesise:  1000.00Hz at -32dB",
		"Synthesise:  7000.00Hz at -32dB",
		"Synthesise:  8000.00Hz at -32dB",
	}, lines)

	verified := logs.FilterMessage("verified tones").All()
	require.Len(t, verified, 1)
	assert.EqualValues(t, 4096, verified[0].ContextMap()["frame"])
	assert.EqualValues(t, 1, verified[0].ContextMap()["start"])
}

func TestRun_ManifestAndPlot(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions(dir)
	opts.Manifest = true
	opts.Plot = true

	res, err := run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "synth_grid_fs16000.yaml"), res.Manifest)
	assert.Equal(t, filepath.Join(dir, "synth_grid_fs16000.png"), res.Plot)

	f, err := os.Open(res.Manifest)
	require.NoError(t, err)
	defer f.Close()

	m, err := signal.ReadManifest(f)
	require.NoError(t, err)
	assert.Equal(t, "synth_grid_fs16000.wav", m.File)
	assert.Equal(t, 64000, m.Samples)
	require.Len(t, m.Clicks, 5)
	assert.Equal(t, 63999, m.Clicks[4].Index)

	png, err := os.ReadFile(res.Plot)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRun_OtherRate(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.SampleRate = 48000
	opts.LevelDB = -20

	res, err := run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)

	x, info, err := wavfile.ReadFile(res.WAV)
	require.NoError(t, err)
	assert.Equal(t, 48000, info.SampleRate)
	assert.Len(t, x, 4*48000)
	assert.Equal(t, "synth_grid_fs48000.wav", filepath.Base(res.WAV))
}

func TestRun_Errors(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.SampleRate = 16000.5
	_, err := run(context.Background(), opts, zap.NewNop())
	assert.Error(t, err)

	opts = defaultOptions(t.TempDir())
	opts.Duration = 0
	_, err = run(context.Background(), opts, zap.NewNop())
	assert.ErrorIs(t, err, signal.ErrInvalidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = run(ctx, defaultOptions(t.TempDir()), zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_VerifyNeedsQuietFrame(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions(dir)
	opts.Duration = 0.01

	_, err := run(context.Background(), opts, zap.NewNop())
	require.ErrorIs(t, err, errNoQuietFrame)
	assert.NoFileExists(t, filepath.Join(dir, "synth_grid_fs16000.wav"))

	opts.Verify = false
	res, err := run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, res.WAV)
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SYNTHGRID_SAMPLE_RATE", "8000")

	var logOut bytes.Buffer
	cmd := newRootCmd(&logOut)
	cmd.SetArgs([]string{"--output-dir", dir, "--manifest"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "synth_grid_fs8000.wav"))
	assert.FileExists(t, filepath.Join(dir, "synth_grid_fs8000.yaml"))
	assert.Contains(t, logOut.String(), "Synthesise:   500.00Hz at -32dB")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestRootCommand_DefaultRate(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCmd(io.Discard)
	assert.Equal(t, "16000", cmd.Flags().Lookup("sample-rate").DefValue)

	cmd.SetArgs([]string{"--output-dir", dir, "--verify=false"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(dir, signal.GridFileName(core.DefaultSampleRate)))
}
