// Command synthgrid writes a calibration signal: four tones on a frequency
// grid (DC, fs/16, fs/2-fs/16, Nyquist) at equal level plus unit-spaced
// clicks, stored as mono IEEE float WAV.
//
// Usage:
//
//	synthgrid [flags]
//
// Examples:
//
//	synthgrid
//	synthgrid --sample-rate 48000 --manifest
//	SYNTHGRID_LEVEL_DB=-20 synthgrid --output-dir /tmp
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/cwbudde/dspcheck/dsp/core"
	"github.com/cwbudde/dspcheck/dsp/signal"
	"github.com/cwbudde/dspcheck/internal/cli"
	"github.com/spf13/cobra"
)

const envPrefix = "SYNTHGRID"

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	v := cli.NewViper(envPrefix, map[string]any{
		"sample_rate": float64(core.DefaultSampleRate),
		"duration":    signal.DefaultDuration,
		"level_db":    signal.DefaultLevelDB,
		"click_value": signal.DefaultClickValue,
		"output_dir":  ".",
		"verify":      true,
		"manifest":    false,
		"plot":        false,
	})

	cmd := &cobra.Command{
		Use:           "synthgrid",
		Short:         "Synthesize clicks and sinusoids at regular times and frequencies",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.Setup(cmd, v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := cli.NewLogger(cli.LogOptions{
				Verbose: v.GetBool("verbose"),
				Level:   v.GetString("log_level"),
				Output:  logOut,
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts := options{
				SampleRate: v.GetFloat64("sample_rate"),
				Duration:   v.GetFloat64("duration"),
				LevelDB:    v.GetFloat64("level_db"),
				ClickValue: v.GetFloat64("click_value"),
				OutputDir:  v.GetString("output_dir"),
				Verify:     v.GetBool("verify"),
				Manifest:   v.GetBool("manifest"),
				Plot:       v.GetBool("plot"),
			}
			_, err = run(cmd.Context(), opts, log)
			return err
		},
	}

	cli.AddCommonFlags(cmd)
	fs := cmd.Flags()
	fs.Float64("sample-rate", core.DefaultSampleRate, "sample rate in Hz")
	fs.Float64("duration", signal.DefaultDuration, "signal length in seconds")
	fs.Float64("level-db", signal.DefaultLevelDB, "tone level in dB")
	fs.Float64("click-value", signal.DefaultClickValue, "sample value written at each click")
	fs.String("output-dir", ".", "directory for the generated files")
	fs.Bool("verify", true, "check tone levels with an FFT before writing")
	fs.Bool("manifest", false, "write a YAML manifest next to the WAV file")
	fs.Bool("plot", false, "render the waveform to a PNG next to the WAV file")

	return cmd
}
