package load

import (
	"errors"
	"strings"
)

// ErrInvalidProfile indicates a profile descriptor error.
var ErrInvalidProfile = errors.New("astm: invalid profile")

// ProfileError represents a profile descriptor or resolution error.
type ProfileError struct {
	Profile string // profile name, if known
	Record  string // record or component layout name, if applicable
	Field   string // field name, if applicable
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	var b strings.Builder
	b.WriteString("astm: profile error")
	if e.Profile != "" {
		b.WriteString(" in profile ")
		b.WriteString(e.Profile)
	}
	if e.Record != "" {
		b.WriteString(" on record ")
		b.WriteString(e.Record)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ProfileError.
func (e *ProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// NewProfileError creates a new ProfileError.
func NewProfileError(profile, record, field, message string, cause error) *ProfileError {
	return &ProfileError{
		Profile: profile,
		Record:  record,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// IsProfileError reports whether the error is a ProfileError.
func IsProfileError(err error) bool {
	var profileErr *ProfileError
	return errors.As(err, &profileErr)
}
