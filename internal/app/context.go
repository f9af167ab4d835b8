package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/RyanBlaney/digit-formants/configs"
	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/dataset"
	"github.com/RyanBlaney/digit-formants/pkg/render"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/RyanBlaney/latency-benchmark-common/output"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	OutputFile   string
	OutputFormat string
	Verbose      bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// FormantApp wires the corpus index, the analyzer and the renderer together
// for the CLI commands.
type FormantApp struct {
	ctx      *Context
	config   *configs.Config
	logger   logging.Logger
	analyzer *analysis.Analyzer
	renderer *render.Renderer
	index    *dataset.Index

	indexMu    sync.Mutex
	indexBuilt bool
}

// NewFormantApp creates a new application from ctx. A nil ctx.Config is
// loaded from viper.
func NewFormantApp(ctx *Context) (*FormantApp, error) {
	config := ctx.Config
	if config == nil {
		var err error
		config, err = configs.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		ctx.Config = config
	}

	if ctx.OutputFormat == "" {
		ctx.OutputFormat = config.OutputFormat
	}
	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogging(ctx, config)
	ctx.Logger = logger

	analyzer, err := analysis.NewAnalyzer(config.Analysis, logger.WithFields(logging.Fields{"component": "analysis"}))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	renderer, err := render.NewRenderer(analyzer, config.Render, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	index, err := dataset.NewIndex(config.DatasetSettings(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset index: %w", err)
	}

	logger.Debug("Formant application initialized", logging.Fields{
		"data_dir":      config.DataDir,
		"output_format": ctx.OutputFormat,
		"sample_rate":   config.Analysis.SampleRate,
		"lpc_order":     config.Analysis.LPCOrder,
	})

	return &FormantApp{
		ctx:      ctx,
		config:   config,
		logger:   logger,
		analyzer: analyzer,
		renderer: renderer,
		index:    index,
	}, nil
}

// setupLogging configures logging based on context and the configured level
func setupLogging(ctx *Context, config *configs.Config) logging.Logger {
	logger := ctx.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	level := config.LoggingLevel()
	logger.SetLevel(level)
	logging.SetLevel(level)
	return logger
}

// Analyzer returns the configured analyzer
func (app *FormantApp) Analyzer() *analysis.Analyzer {
	return app.analyzer
}

// Index returns the corpus index, loading it on first use
func (app *FormantApp) Index(ctx context.Context) (*dataset.Index, error) {
	app.indexMu.Lock()
	defer app.indexMu.Unlock()

	if !app.indexBuilt {
		if err := app.index.Build(ctx); err != nil {
			return nil, fmt.Errorf("failed to build dataset index: %w", err)
		}
		app.indexBuilt = true
	}
	return app.index, nil
}

// Output formats data with the configured formatter and writes it to the
// output file or stdout.
func (app *FormantApp) Output(data any) error {
	var formatter output.Formatter
	switch app.ctx.OutputFormat {
	case "json":
		formatter = &output.JSONFormatter{}
	case "yaml":
		formatter = &output.YAMLFormatter{}
	case "csv":
		formatter = &output.CSVFormatter{}
	case "table":
		formatter = &output.TableFormatter{}
	default:
		formatter = &output.JSONFormatter{}
	}

	formattedData, err := formatter.Format(data, true)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	if app.ctx.OutputFile != "" {
		return app.writeToFile(formattedData)
	}

	_, err = os.Stdout.Write(formattedData)
	return err
}

// writeToFile writes data to the specified output file
func (app *FormantApp) writeToFile(data []byte) error {
	dir := filepath.Dir(app.ctx.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(app.ctx.OutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": app.ctx.OutputFile,
		"size_bytes":  len(data),
	})

	return nil
}
