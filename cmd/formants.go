package cmd

import (
	"github.com/spf13/cobra"
)

var (
	formantsRange      rangeFlags
	formantsCrosscheck bool
)

var formantsCmd = &cobra.Command{
	Use:   "formants <speaker> <file>",
	Short: "Find the formants of a time range",
	Long: `Compute the LPC spectral envelope of [start, end) of a recording and
report its strongest formant peaks above the minimum formant bin.

Fewer peaks than analysis.max_formants are reported with complete=false.

Examples:
  digit-formants formants jackson 0_jackson_0.wav --start 0.1 --end 0.3
  digit-formants formants jackson 0_jackson_0.wav --crosscheck -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runFormants,
}

func init() {
	rootCmd.AddCommand(formantsCmd)

	addRangeFlags(formantsCmd, &formantsRange)
	formantsCmd.Flags().BoolVar(&formantsCrosscheck, "crosscheck", false,
		"also report an autocorrelation-method LPC estimate")
}

func runFormants(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.Formants(ctx, formantsRange.target(args), formantsCrosscheck)
	if err != nil {
		return err
	}
	return formantApp.Output(report)
}
