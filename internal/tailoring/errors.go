package tailoring

import "fmt"

// ConfigError is the only error class fatal to a whole tailoring run:
// a missing client or cache. Per-edit failures are reported on the edits
// themselves, never as errors.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tailoring configuration error: %s", e.Message)
}
