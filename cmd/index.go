package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the corpus and list its speakers and recordings",
	Long: `Walk <data-dir>/digits_audio/<split>/<speaker>/<file>, decode every
supported recording and summarise the index. With --verbose every recording
is listed with its split and duration.

Examples:
  digit-formants index --data-dir ./corpus
  digit-formants index -v -o json`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.ListRecordings(ctx)
	if err != nil {
		return fmt.Errorf("failed to index corpus: %w", err)
	}
	return formantApp.Output(report)
}
