package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Batch job operations
const (
	OperationFormants = "formants"
	OperationTrack    = "track"
)

// JobFile lists the analyses run by the batch command
type JobFile struct {
	Version     string      `yaml:"version" json:"version"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Defaults    JobDefaults `yaml:"defaults" json:"defaults"`
	Jobs        []*Job      `yaml:"jobs" json:"jobs"`
}

// JobDefaults apply to every job that leaves the field unset
type JobDefaults struct {
	Operation  string `yaml:"operation,omitempty" json:"operation,omitempty"`
	Steps      int    `yaml:"steps,omitempty" json:"steps,omitempty"`
	Crosscheck bool   `yaml:"crosscheck,omitempty" json:"crosscheck,omitempty"`
}

// Job is one analysis of one recording range
type Job struct {
	Name       string  `yaml:"name,omitempty" json:"name,omitempty"`
	Operation  string  `yaml:"operation,omitempty" json:"operation,omitempty"`
	Speaker    string  `yaml:"speaker" json:"speaker"`
	File       string  `yaml:"file" json:"file"`
	Start      float64 `yaml:"start" json:"start"`
	End        float64 `yaml:"end" json:"end"`
	Steps      int     `yaml:"steps,omitempty" json:"steps,omitempty"`
	Crosscheck bool    `yaml:"crosscheck,omitempty" json:"crosscheck,omitempty"`
}

// Validate applies the defaults and checks every job
func (f *JobFile) Validate() error {
	if len(f.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}

	names := make(map[string]bool, len(f.Jobs))
	for i, job := range f.Jobs {
		if job == nil {
			return fmt.Errorf("job %d is empty", i)
		}
		f.applyDefaults(i, job)

		if names[job.Name] {
			return fmt.Errorf("duplicate job name %q", job.Name)
		}
		names[job.Name] = true

		if err := job.validate(); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}
	return nil
}

func (f *JobFile) applyDefaults(i int, job *Job) {
	if job.Operation == "" {
		job.Operation = f.Defaults.Operation
	}
	if job.Operation == "" {
		job.Operation = OperationFormants
	}
	if job.Steps == 0 {
		job.Steps = f.Defaults.Steps
	}
	if f.Defaults.Crosscheck {
		job.Crosscheck = true
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("%s_%s_%d", job.Speaker, job.File, i)
	}
}

func (j *Job) validate() error {
	if j.Operation != OperationFormants && j.Operation != OperationTrack {
		return fmt.Errorf("unknown operation %q", j.Operation)
	}
	if j.Steps < 0 {
		return fmt.Errorf("steps cannot be negative")
	}
	return j.Target().Validate()
}

// Target is the recording range the job analyses
func (j *Job) Target() Target {
	t := Target{Speaker: j.Speaker, File: j.File}
	t.Range.Start, t.Range.End = j.Start, j.End
	return t
}

// LoadJobFile loads a batch job file, choosing the format by extension
func LoadJobFile(filePath string) (*JobFile, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("job file does not exist: %s", filePath)
	}

	var (
		jobs *JobFile
		err  error
	)
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		jobs, err = loadJobFileFromYAML(filePath)
	case ".json":
		jobs, err = loadJobFileFromJSON(filePath)
	default:
		// Try YAML first, then JSON
		if jobs, err = loadJobFileFromYAML(filePath); err != nil {
			jobs, err = loadJobFileFromJSON(filePath)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := jobs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job file %s: %w", filePath, err)
	}
	return jobs, nil
}

func loadJobFileFromYAML(filePath string) (*JobFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var jobs JobFile
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML job file: %w", err)
	}
	return &jobs, nil
}

func loadJobFileFromJSON(filePath string) (*JobFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var jobs JobFile
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON job file: %w", err)
	}
	return &jobs, nil
}

// GenerateExampleJobFile writes an example batch job file in YAML
func GenerateExampleJobFile(outputFile string) error {
	example := &JobFile{
		Version:     "1.0",
		Description: "Vowel formants of the first recordings of each speaker",
		Defaults: JobDefaults{
			Operation: OperationFormants,
			Steps:     40,
		},
		Jobs: []*Job{
			{Name: "jackson_zero", Speaker: "jackson", File: "0_jackson_0.wav", Start: 0.1, End: 0.3},
			{Name: "nicolas_zero", Speaker: "nicolas", File: "0_nicolas_0.wav", Start: 0.1, End: 0.3, Crosscheck: true},
			{Name: "theo_zero_track", Operation: OperationTrack, Speaker: "theo", File: "0_theo_0.wav", Start: 0.05, End: 0.45},
		},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example job file: %w", err)
	}

	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}

	return nil
}
