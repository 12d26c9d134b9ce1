package errors

import "fmt"

// ErrorType classifies the failures the archiver can encounter
type ErrorType string

const (
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeResolution ErrorType = "resolution"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeDownload   ErrorType = "download"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error represents a classified archiver error
type Error struct {
	Type    ErrorType
	Message string
	URL     string
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s error: %s (url: %s)", e.Type, e.Message, e.URL)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// IsFatal reports whether an error type aborts the whole run.
// Transport, IO and configuration failures are fatal; resolution and
// per-file download failures degrade the affected record only.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTransport, ErrorTypeIO, ErrorTypeConfig:
		return true
	case ErrorTypeResolution, ErrorTypeDownload:
		return false
	default:
		return true
	}
}
