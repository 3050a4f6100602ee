package coercible

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedCoercion matches every *UnsupportedCoercionError via errors.Is.
var ErrUnsupportedCoercion = errors.New("coercible: unsupported coercion")

// UnsupportedCoercionError reports that a value has no valid reading as the
// requested target. It is the only error returned by coercion operations.
type UnsupportedCoercionError struct {
	Value  string // Offending input
	Target Target // Attempted conversion
}

func (e *UnsupportedCoercionError) Error() string {
	return fmt.Sprintf("coercible: unsupported coercion of %q to %s", e.Value, e.Target)
}

// Is reports whether target is ErrUnsupportedCoercion.
func (e *UnsupportedCoercionError) Is(target error) bool {
	return target == ErrUnsupportedCoercion
}

// Error codes for configuration failures.
const (
	ErrCodeRequired     = "required"
	ErrCodeInvalidType  = "invalid_type"
	ErrCodeInvalidValue = "invalid_value"
	ErrCodeLowercase    = "lowercase"
	ErrCodeConflict     = "conflict"
	ErrCodeUnknownKey   = "unknown_key"
)

// ValidationError aggregates field-level configuration failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "config validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("config validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "config validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FieldError represents a single configuration failure.
type FieldError struct {
	FieldPath string // Key path (e.g., "boolean.truthy")
	Code      string // Error code (e.g., "lowercase")
	Message   string // Human-readable description
}
