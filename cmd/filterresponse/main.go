// Command filterresponse plots the zero-phase magnitude response of
// Butterworth low-pass filters of several orders on one dB figure, then
// waits for Enter so the figure can be inspected.
//
// Usage:
//
//	filterresponse [flags]
//
// Examples:
//
//	filterresponse
//	filterresponse --orders 2,4,6 --cutoff 1000 --output resp.svg
//	filterresponse --digital --wait=false
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/dspcheck/dsp/core"
	"github.com/cwbudde/dspcheck/internal/cli"
	"github.com/cwbudde/dspcheck/measure/response"
	"github.com/spf13/cobra"
)

const envPrefix = "FILTERRESPONSE"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	v := cli.NewViper(envPrefix, map[string]any{
		"sample_rate": float64(core.DefaultSampleRate),
		"cutoff":      response.DefaultCutoff,
		"orders":      response.DefaultOrders,
		"dft_len":     response.DefaultDFTLen,
		"output":      "",
		"ymin":        -100.0,
		"ymax":        10.0,
		"digital":     false,
		"wait":        true,
	})

	cmd := &cobra.Command{
		Use:           "filterresponse",
		Short:         "Show Butterworth filter responses",
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
				Output:  out,
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			orders, err := cli.IntSlice(v, "orders")
			if err != nil {
				return err
			}

			opts := options{
				Response: response.Config{
					SampleRate: v.GetFloat64("sample_rate"),
					Cutoff:     v.GetFloat64("cutoff"),
					Orders:     orders,
					DFTLen:     v.GetInt("dft_len"),
					Digital:    v.GetBool("digital"),
				},
				Output: v.GetString("output"),
				YMin:   v.GetFloat64("ymin"),
				YMax:   v.GetFloat64("ymax"),
			}

			path, err := run(opts, log)
			if err != nil {
				return err
			}

			if !v.GetBool("wait") {
				return nil
			}
			prompt := fmt.Sprintf("Figure written to %s. Press Enter to exit.\n", path)
			return cli.WaitForEnter(cmd.Context(), in, out, prompt)
		},
	}

	cli.AddCommonFlags(cmd)
	fs := cmd.Flags()
	fs.Float64("sample-rate", core.DefaultSampleRate, "sample rate in Hz")
	fs.Float64("cutoff", response.DefaultCutoff, "cutoff frequency in Hz")
	fs.IntSlice("orders", response.DefaultOrders, "filter orders to draw")
	fs.Int("dft-len", response.DefaultDFTLen, "DFT length; the grid has dft-len/2+1 points")
	fs.StringP("output", "o", "", "figure path; the extension picks the format (default butterworth_response_fs<rate>.png)")
	fs.Float64("ymin", -100, "lower dB limit")
	fs.Float64("ymax", 10, "upper dB limit")
	fs.Bool("digital", false, "overlay the bilinear biquad cascade of each order")
	fs.Bool("wait", true, "wait for Enter after writing the figure")

	return cmd
}
