package cmd

import (
	"github.com/spf13/cobra"
)

var (
	trackRange rangeFlags
	trackSteps int
)

var trackCmd = &cobra.Command{
	Use:   "track <speaker> <file>",
	Short: "Track formants across a time range",
	Long: `Split [start, end) into equal sub-ranges and find the formants of each,
reporting them at the sub-range centres.

Examples:
  digit-formants track jackson 0_jackson_0.wav --start 0 --end 0.5
  digit-formants track jackson 0_jackson_0.wav --steps 80 -o yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	addRangeFlags(trackCmd, &trackRange)
	trackCmd.Flags().IntVar(&trackSteps, "steps", 0,
		"number of sub-ranges (default analysis.track_steps)")
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.Track(ctx, trackRange.target(args), trackSteps)
	if err != nil {
		return err
	}
	return formantApp.Output(report)
}
