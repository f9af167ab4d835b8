package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "digit-formants"
	envPrefix = "DIGIT_FORMANTS"
)

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	configDir    string
	dataDir      string
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "LPC formant analysis of spoken-digit recordings",
	Long: `A formant analysis tool for spoken-digit corpora.
Recordings are loaded from <data-dir>/digits_audio/<split>/<speaker>/<file>
and analysed with Burg linear prediction to find the vocal tract resonances.

Key features:
- LPC spectral envelopes and F1/F2/F3 formant selection
- Formant tracks over a time range
- Hamming windowed segment export as WAV
- Waveform, spectrogram and spectrum figures with transcript overlays
- Batch analysis from YAML or JSON job files`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "",
		"config directory (default is $HOME/.config/digit-formants)")
	flags.StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/digit-formants/digit-formants.yaml)")
	flags.StringVar(&dataDir, "data-dir", "",
		"corpus root holding digits_audio and the transcripts (default is $HOME/.local/share/digit-formants)")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"include full envelopes and per-recording listings")
	flags.StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	flags.StringVarP(&outputFormat, "output", "o", "table",
		"output format (json, table, csv, yaml)")

	for key, flag := range map[string]string{
		"verbose":       "verbose",
		"log_level":     "log-level",
		"output_format": "output",
		"config_dir":    "config-dir",
		"data_dir":      "data-dir",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig locates the config file and enables DIGIT_FORMANTS_* overrides
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
		os.Exit(1)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", appName))
		viper.AddConfigPath("/etc/" + appName)
		viper.AddConfigPath("./configs")
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// analysis, dataset and render defaults come from configs.LoadConfig
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("output_format", "table")
	viper.SetDefault("config_dir", filepath.Join(home, ".config", appName))
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", appName))

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindFlags copies config values into unset flags, then binds every flag to
// viper and to its DIGIT_FORMANTS_<FLAG> variable. The last error wins.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				lastErr = err
			}
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}

		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if err := v.BindEnv(f.Name, envVar); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
