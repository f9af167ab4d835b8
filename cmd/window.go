package cmd

import (
	"github.com/spf13/cobra"
)

var (
	windowRange rangeFlags
	windowWAV   string
)

var windowCmd = &cobra.Command{
	Use:   "window <speaker> <file>",
	Short: "Extract the Hamming windowed samples of a time range",
	Long: `Extract [start, end) of a recording, apply the Hamming taper and the
pre-emphasis filter, and optionally export the result as 16-bit WAV.

Examples:
  digit-formants window theo 3_theo_2.wav --start 0.1 --end 0.3
  digit-formants window theo 3_theo_2.wav --wav segment.wav`,
	Args: cobra.ExactArgs(2),
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)

	addRangeFlags(windowCmd, &windowRange)
	windowCmd.Flags().StringVar(&windowWAV, "wav", "",
		"export the windowed samples to this WAV file")
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.Window(ctx, windowRange.target(args), windowWAV)
	if err != nil {
		return err
	}
	return formantApp.Output(report)
}
