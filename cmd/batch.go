package cmd

import (
	"fmt"

	"github.com/RyanBlaney/digit-formants/internal/app"
	"github.com/spf13/cobra"
)

var batchGenerateExample string

var batchCmd = &cobra.Command{
	Use:   "batch <job-file>",
	Short: "Run formant analyses listed in a YAML or JSON job file",
	Long: `Run every job of a job file concurrently (batch.max_concurrency) and
report per-job results with F1/F2/F3 statistics across the batch. Failed jobs
are reported and do not stop the others. When metrics.enabled is set, job
timings and formant values are emitted through the metrics collector.

Examples:
  # Write an example job file
  digit-formants batch --generate-example jobs.yaml

  # Run it
  digit-formants batch jobs.yaml -o json --output-file results.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && batchGenerateExample == "" {
			return fmt.Errorf("requires a job file or --generate-example")
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchGenerateExample, "generate-example", "",
		"write an example job file to this path and exit")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchGenerateExample != "" {
		if err := app.GenerateExampleJobFile(batchGenerateExample); err != nil {
			return err
		}
		fmt.Printf("%sExample job file written to: %s%s\n", ColorGreen, batchGenerateExample, ColorReset)
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	jobs, err := app.LoadJobFile(args[0])
	if err != nil {
		return err
	}

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	summary, err := formantApp.RunBatch(ctx, jobs)
	if summary != nil {
		if outErr := formantApp.Output(summary); outErr != nil {
			return outErr
		}
	}
	return err
}
