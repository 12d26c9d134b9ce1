package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := &Error{Type: ErrorTypeIO, Message: "disk full", URL: "output/media.csv"}
	assert.Equal(t, "io error: disk full (url: output/media.csv)", err.Error())

	bare := &Error{Type: ErrorTypeConfig, Message: "no token"}
	assert.Equal(t, "config error: no token", bare.Error())
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		fatal     bool
	}{
		{ErrorTypeTransport, true},
		{ErrorTypeIO, true},
		{ErrorTypeConfig, true},
		{ErrorTypeResolution, false},
		{ErrorTypeDownload, false},
		{ErrorTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.errorType))
		})
	}
}
