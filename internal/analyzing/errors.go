package analyzing

import "fmt"

// AnalysisError represents a failure to extract requirements from job text
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("requirement analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("requirement analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
