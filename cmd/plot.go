package cmd

import (
	"github.com/RyanBlaney/digit-formants/internal/app"
	"github.com/spf13/cobra"
)

var (
	plotRange       rangeFlags
	plotOut         string
	plotPhones      bool
	plotWords       bool
	plotSpectrogram bool
)

var plotCmd = &cobra.Command{
	Use:   "plot <speaker> <file>",
	Short: "Render analysis figures of a recording to PNG",
	Long: `Render the waveform, the Hamming windowed samples of [start, end) and
their magnitude spectrum with the LPC envelope and labelled formants, stacked
into one PNG. Transcript overlays are read from
time_marked_transcript_<model>_<phones|words>.ctm.

Examples:
  digit-formants plot jackson 0_jackson_0.wav --out jackson.png
  digit-formants plot jackson 0_jackson_0.wav --phones --words --spectrogram --out fig.png`,
	Args: cobra.ExactArgs(2),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	addRangeFlags(plotCmd, &plotRange)
	plotCmd.Flags().StringVar(&plotOut, "out", "formants.png", "PNG output path")
	plotCmd.Flags().BoolVar(&plotPhones, "phones", false, "overlay the phone transcript")
	plotCmd.Flags().BoolVar(&plotWords, "words", false, "overlay the word transcript")
	plotCmd.Flags().BoolVar(&plotSpectrogram, "spectrogram", false,
		"add a spectrogram panel with the formant track")
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	formantApp, err := newApp()
	if err != nil {
		return err
	}

	report, err := formantApp.Plot(ctx, app.PlotRequest{
		Target:      plotRange.target(args),
		Phones:      plotPhones,
		Words:       plotWords,
		Spectrogram: plotSpectrogram,
		Output:      plotOut,
	})
	if err != nil {
		return err
	}
	return formantApp.Output(report)
}
