package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/RyanBlaney/digit-formants/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var outputFile string

// rangeFlags select the analysed time range of a recording
type rangeFlags struct {
	start float64
	end   float64
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "",
		"write results to this file instead of stdout")
}

func addRangeFlags(cmd *cobra.Command, r *rangeFlags) {
	cmd.Flags().Float64Var(&r.start, "start", 0.1, "range start in seconds")
	cmd.Flags().Float64Var(&r.end, "end", 0.3, "range end in seconds")
}

// target builds the analysis target from <speaker> <file> arguments
func (r *rangeFlags) target(args []string) app.Target {
	t := app.Target{Speaker: args[0], File: args[1]}
	t.Range.Start, t.Range.End = r.start, r.end
	return t
}

// newApp creates the application from the bound viper configuration
func newApp() (*app.FormantApp, error) {
	return app.NewFormantApp(&app.Context{
		OutputFile:   outputFile,
		OutputFormat: viper.GetString("output_format"),
		Verbose:      viper.GetBool("verbose"),
	})
}

// commandContext is cancelled on interrupt
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
