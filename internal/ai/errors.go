package ai

import (
	"errors"
	"fmt"
)

// ErrNoCredential signals that the external tier should be skipped
// entirely. It is an operating condition, not a failure.
var ErrNoCredential = errors.New("no model service credential configured")

// ModelError is a failure from one external model attempt. Retryable
// errors advance the identifier chain; fatal ones stop it.
type ModelError struct {
	Model     string
	Status    int
	Retryable bool
	Unsafe    bool
	Message   string
}

func (e *ModelError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Model, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Model, e.Message)
}

// IsUnsafeQuery reports whether err is the terminal unsafe-SQL rejection.
// Unsafe model output is never retried against another identifier.
func IsUnsafeQuery(err error) bool {
	var me *ModelError
	return errors.As(err, &me) && me.Unsafe
}
