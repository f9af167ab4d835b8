package app

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"golang.org/x/sync/errgroup"
)

// JobResult is the outcome of one batch job
type JobResult struct {
	Name       string         `json:"name"`
	Operation  string         `json:"operation"`
	Speaker    string         `json:"speaker"`
	File       string         `json:"file"`
	DurationMs int64          `json:"duration_ms"`
	Formants   *FormantReport `json:"formants,omitempty"`
	Track      *TrackReport   `json:"track,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// BatchSummary collects the results of a batch run
type BatchSummary struct {
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	TotalDuration time.Duration   `json:"total_duration"`
	Successful    int             `json:"successful_jobs"`
	Failed        int             `json:"failed_jobs"`
	Results       []*JobResult    `json:"results"`
	FormantStats  []*FormantStats `json:"formant_stats,omitempty"`
}

// RunBatch runs every job with at most Batch.MaxConcurrency in flight. A
// failing job is recorded in its result and does not stop the others.
func (app *FormantApp) RunBatch(ctx context.Context, jobs *JobFile) (*BatchSummary, error) {
	if err := jobs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job file: %w", err)
	}

	startTime := time.Now()

	if app.config.Batch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Batch.Timeout)
		defer cancel()
	}

	app.logger.Debug("Starting batch", logging.Fields{
		"jobs":            len(jobs.Jobs),
		"max_concurrency": app.config.Batch.MaxConcurrency,
		"timeout_s":       app.config.Batch.Timeout.Seconds(),
	})

	// load the corpus once before fanning out
	if _, err := app.Index(ctx); err != nil {
		return nil, err
	}

	results := make([]*JobResult, len(jobs.Jobs))
	g := new(errgroup.Group)
	g.SetLimit(app.config.Batch.MaxConcurrency)

	for i, job := range jobs.Jobs {
		g.Go(func() error {
			results[i] = app.runJob(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	endTime := time.Now()
	summary := &BatchSummary{
		StartTime:     startTime,
		EndTime:       endTime,
		TotalDuration: endTime.Sub(startTime),
		Results:       results,
	}
	for _, r := range results {
		if r.Error == "" {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	summary.FormantStats = CalculateFormantStats(results)

	app.logger.Info("Batch completed", logging.Fields{
		"total_duration_s": summary.TotalDuration.Seconds(),
		"successful_jobs":  summary.Successful,
		"failed_jobs":      summary.Failed,
	})

	app.collectBatchMetrics(summary)

	if summary.Failed > 0 && summary.Successful == 0 {
		return summary, fmt.Errorf("all %d batch jobs failed", summary.Failed)
	}
	return summary, nil
}

func (app *FormantApp) runJob(ctx context.Context, job *Job) *JobResult {
	start := time.Now()
	result := &JobResult{
		Name:      job.Name,
		Operation: job.Operation,
		Speaker:   job.Speaker,
		File:      job.File,
	}

	var err error
	if err = ctx.Err(); err == nil {
		switch job.Operation {
		case OperationTrack:
			result.Track, err = app.Track(ctx, job.Target(), job.Steps)
		default:
			result.Formants, err = app.Formants(ctx, job.Target(), job.Crosscheck)
		}
	}

	result.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		app.logger.Warn("Batch job failed", logging.Fields{
			"job":   job.Name,
			"error": err.Error(),
		})
	}
	return result
}
