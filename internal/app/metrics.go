package app

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/tunein/go-logging/v7/pkg/logger"
	"github.com/tunein/go-logging/v7/pkg/logger/logtypes"
	"github.com/tunein/go-logging/v7/pkg/rootcollector"
	"github.com/tunein/go-logging/v7/pkg/rootlogger"
)

// collectBatchMetrics sends job timings and formant values to rootcollector
func (app *FormantApp) collectBatchMetrics(summary *BatchSummary) {
	if summary == nil || !app.config.Metrics.Enabled {
		return
	}

	out := app.config.Metrics.LogFile
	if out == "" {
		out = filepath.Join(os.TempDir(), "digit-formants-metrics.log")
	}

	err := rootlogger.Configure(logger.LogOptions{
		Out:          out,
		ReopenSignal: syscall.SIGHUP,
		Level:        logtypes.InfoLevel,
	})
	if err != nil {
		logging.Error(err, "Failed configuring log writer")
	}

	prefix := app.config.Metrics.Prefix
	for _, result := range summary.Results {
		status := "ok"
		if result.Error != "" {
			status = "failed"
		}

		baseTags := []string{
			"operation:" + result.Operation,
			"speaker:" + result.Speaker,
			"status:" + status,
		}
		rootcollector.Metric(prefix+".job.duration.milliseconds", result.DurationMs, baseTags)

		if result.Formants != nil {
			app.sendFormantMetrics(prefix, result.Formants.Frequencies, baseTags)
		}
	}

	rootcollector.Metric(prefix+".batch.duration.milliseconds", summary.TotalDuration.Milliseconds(),
		[]string{"jobs:" + strconv.Itoa(len(summary.Results))})
}

// sendFormantMetrics reports each frequency in Hz tagged with its F-label
func (app *FormantApp) sendFormantMetrics(prefix string, frequencies []float64, baseTags []string) {
	freqs := slices.Clone(frequencies)
	slices.Sort(freqs)

	for i, f := range freqs {
		tags := slices.Concat(baseTags, []string{fmt.Sprintf("formant:F%d", i+1)})
		rootcollector.Metric(prefix+".formant.hz", int64(math.Round(f)), tags)
	}
}
