package cmd

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/digit-formants/configs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorReset = "\033[0m"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and display all configuration values",
	Long: `Load the configuration, validate it and display every value.

Values come from the config file, DIGIT_FORMANTS_* environment variables
(e.g. DIGIT_FORMANTS_ANALYSIS_LPC_ORDER=12) and flags, in increasing order
of precedence.

Examples:
  # Show the effective configuration
  digit-formants config

  # Check a specific config file
  digit-formants --config /path/to/digit-formants.yaml config`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	fmt.Println("DIGIT FORMANTS CONFIGURATION")
	fmt.Println(strings.Repeat("=", 80))

	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Output Format", config.OutputFormat)
	printKeyValue("Config Directory", config.ConfigDir)
	printKeyValue("Data Directory", config.DataDir)

	printSection("ANALYSIS")
	printKeyValue("Sample Rate", fmt.Sprintf("%d Hz", config.Analysis.SampleRate))
	printKeyValue("LPC Order", fmt.Sprintf("%d", config.Analysis.LPCOrder))
	printKeyValue("Eps", fmt.Sprintf("%g", config.Analysis.Eps))
	printKeyValue("Pre-emphasis", fmt.Sprintf("%g", config.Analysis.PreEmphasis))
	printKeyValue("Min Formant Bin", fmt.Sprintf("%d", config.Analysis.MinFormantBin))
	printKeyValue("Max Formants", fmt.Sprintf("%d", config.Analysis.MaxFormants))
	printKeyValue("Floor", fmt.Sprintf("%g dB", config.Analysis.FloorDB))
	printKeyValue("Track Steps", fmt.Sprintf("%d", config.Analysis.TrackSteps))

	printSection("DATASET")
	printKeyValue("Audio Directory", config.DatasetSettings().AudioRoot())
	printKeyValue("Concurrency", fmt.Sprintf("%d", config.Dataset.Concurrency))
	printKeyValue("Content Type", config.Dataset.ContentType)

	printSection("TRANSCRIPTS")
	printKeyValue("Directory", config.TranscriptDir())
	printKeyValue("Model", config.Transcript.Model)

	printSection("RENDER")
	printKeyValue("Width", fmt.Sprintf("%g in", config.Render.WidthIn))
	printKeyValue("Panel Height", fmt.Sprintf("%g in", config.Render.PanelHeightIn))

	printSection("BATCH")
	printKeyValue("Max Concurrency", fmt.Sprintf("%d", config.Batch.MaxConcurrency))
	printKeyValue("Timeout", config.Batch.Timeout.String())

	printSection("METRICS")
	printKeyValue("Enabled", fmt.Sprintf("%t", config.Metrics.Enabled))
	printKeyValue("Log File", config.Metrics.LogFile)
	printKeyValue("Prefix", config.Metrics.Prefix)

	fmt.Println()
	if err := configs.ValidateConfig(config); err != nil {
		fmt.Println(ColorRed + strings.Repeat("-", 80))
		fmt.Printf("CONFIGURATION INVALID: %v\n", err)
		fmt.Println(strings.Repeat("=", 80) + ColorReset)
		return err
	}

	fmt.Println(ColorGreen + strings.Repeat("-", 80))
	fmt.Println("CONFIGURATION IS VALID")
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("Config file: %s\n", used)
	}
	fmt.Println(strings.Repeat("=", 80) + ColorReset)

	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", title)
	fmt.Println(strings.Repeat("-", len(title)))
}

func printKeyValue(key, value string) {
	if value == "" {
		fmt.Printf("%-35s\n", key)
	} else {
		fmt.Printf("%-35s %s\n", key+":", value)
	}
}
