package dataset

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidConfig     = errors.New("invalid dataset config")
	ErrDecoding          = errors.New("decoding failed")
)

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnsupported   = "UNSUPPORTED_FORMAT"
	ErrCodeDecoding      = "DECODING_FAILED"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
)

// DatasetError represents a failure tied to one dataset file or key
type DatasetError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *DatasetError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *DatasetError) Unwrap() error {
	return e.Cause
}

// NewDatasetError creates a new dataset error
func NewDatasetError(path, code, message string, cause error) *DatasetError {
	return &DatasetError{
		Path:    path,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
