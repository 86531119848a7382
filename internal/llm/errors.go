package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// TransientError marks a generation failure worth retrying: timeouts, rate
// limits, 5xx responses from the provider.
type TransientError struct {
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transient llm error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transient llm error: %s", e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// FatalError marks a generation failure that retrying cannot fix: invalid
// API key, malformed request, blocked content.
type FatalError struct {
	Message string
	Cause   error
}

func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fatal llm error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fatal llm error: %s", e.Message)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err should be retried
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// transientMarkers are provider error substrings that indicate a retryable
// condition. The Gemini SDK does not expose typed errors for these.
var transientMarkers = []string{
	"429", "rate limit", "quota", "resource exhausted",
	"500", "502", "503", "504", "internal error", "unavailable",
	"deadline exceeded", "timeout", "connection reset", "eof",
}

// ClassifyError wraps a provider error as transient or fatal. Context
// cancellation is passed through untouched so deadline handling upstream
// sees the original error.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Message: "network timeout", Cause: err}
	}

	lower := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(lower, marker) {
			return &TransientError{Message: "provider error", Cause: err}
		}
	}

	return &FatalError{Message: "provider error", Cause: err}
}
