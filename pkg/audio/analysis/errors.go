package analysis

import "errors"

// Sentinel causes carried by AnalysisError. Match them with errors.Is.
var (
	ErrInvalidRange        = errors.New("invalid range")
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrInsufficientPeaks   = errors.New("insufficient peaks")
	ErrNonFiniteSamples    = errors.New("non-finite samples")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrInvalidParameter    = errors.New("invalid parameter")
)

// Error codes
const (
	ErrCodeInvalidRange        = "INVALID_RANGE"
	ErrCodeInsufficientSamples = "INSUFFICIENT_SAMPLES"
	ErrCodeInsufficientPeaks   = "INSUFFICIENT_PEAKS"
	ErrCodeNonFinite           = "NON_FINITE_SAMPLES"
	ErrCodeMissingParameter    = "MISSING_PARAMETER"
	ErrCodeInvalidParameter    = "INVALID_PARAMETER"
)

// AnalysisError represents a failed analysis operation
type AnalysisError struct {
	Operation string `json:"operation"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Cause     error  `json:"-"`
}

func (e *AnalysisError) Error() string {
	msg := e.Operation + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewAnalysisError creates a new analysis error
func NewAnalysisError(operation, code, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Operation: operation,
		Code:      code,
		Message:   message,
		Cause:     cause,
	}
}
