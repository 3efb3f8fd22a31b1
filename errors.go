package multiver

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for version handling.
var (
	// ErrInvalidVersion is returned when a version literal cannot be parsed.
	ErrInvalidVersion = errors.New("multiver: invalid version")

	// ErrInvalidRange is returned when a range literal cannot be parsed.
	ErrInvalidRange = errors.New("multiver: invalid range")
)

// VersionError represents a malformed semantic version literal.
type VersionError struct {
	input string
	wrap  error
}

// Error returns the error string.
func (e *VersionError) Error() string {
	return fmt.Sprintf("multiver: invalid version %q: %v", e.input, e.wrap)
}

// Is reports whether the target error matches VersionError.
// This allows errors.Is(versionErr, ErrInvalidVersion) to return true.
func (e *VersionError) Is(err error) bool {
	return err == ErrInvalidVersion
}

// Unwrap returns the underlying parse error.
func (e *VersionError) Unwrap() error {
	return e.wrap
}

// Input returns the literal that failed to parse.
func (e *VersionError) Input() string {
	return e.input
}

// NewVersionError returns a new VersionError for the given literal.
func NewVersionError(input string, wrap error) *VersionError {
	return &VersionError{input: input, wrap: wrap}
}

// IsInvalidVersion returns true if the error is a VersionError.
func IsInvalidVersion(err error) bool {
	if err == nil {
		return false
	}
	var e *VersionError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidVersion)
}

// RangeError represents a malformed version range literal.
type RangeError struct {
	input string
	wrap  error
}

// Error returns the error string.
func (e *RangeError) Error() string {
	return fmt.Sprintf("multiver: invalid range %q: %v", e.input, e.wrap)
}

// Is reports whether the target error matches RangeError.
// This allows errors.Is(rangeErr, ErrInvalidRange) to return true.
func (e *RangeError) Is(err error) bool {
	return err == ErrInvalidRange
}

// Unwrap returns the underlying parse error.
func (e *RangeError) Unwrap() error {
	return e.wrap
}

// Input returns the literal that failed to parse.
func (e *RangeError) Input() string {
	return e.input
}

// NewRangeError returns a new RangeError for the given literal.
func NewRangeError(input string, wrap error) *RangeError {
	return &RangeError{input: input, wrap: wrap}
}

// IsInvalidRange returns true if the error is a RangeError.
func IsInvalidRange(err error) bool {
	if err == nil {
		return false
	}
	var e *RangeError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidRange)
}
