package investmap

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors returned by this module match one of them with
// errors.Is.
var (
	// ErrNetwork reports a request that failed or got no usable response.
	ErrNetwork = errors.New("network error")
	// ErrValidation reports user input rejected before any request is sent.
	ErrValidation = errors.New("invalid input")
	// ErrAuth reports a missing, expired or rejected session token.
	ErrAuth = errors.New("not authenticated")
	// ErrLimitExceeded reports an attempt to select more than MaxSelection assets.
	ErrLimitExceeded = fmt.Errorf("you can select a maximum of %d assets", MaxSelection)
	// ErrNotFound reports an unknown asset record.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
