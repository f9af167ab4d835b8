package cmd

import (
	"github.com/spf13/cobra"
)

var envelopeRange rangeFlags

var envelopeCmd = &cobra.Command{
	Use:   "envelope <speaker> <file>",
	Short: "Compute the LPC spectral envelope of a time range",
	Long: `Compute the LPC spectral envelope of [start, end) in dB, one bin per Hz
up to the Nyquist frequency. The peak bin is always reported; the full curve
is included with --verbose.

Examples:
  digit-formants envelope nicolas 2_nicolas_1.wav --start 0.05 --end 0.25
  digit-formants envelope nicolas 2_nicolas_1.wav -v -o csv --output-file env.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	addRangeFlags(envelopeCmd, &envelopeRange)
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.Envelope(ctx, envelopeRange.target(args))
	if err != nil {
		return err
	}
	return formantApp.Output(report)
}
