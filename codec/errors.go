package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for wire-level failures.
var (
	// ErrMalformedMessage indicates framing that does not match the
	// protocol shape.
	ErrMalformedMessage = errors.New("astm: malformed message")

	// ErrChecksumMismatch indicates a message whose carried checksum does
	// not match the one computed over its frame.
	ErrChecksumMismatch = errors.New("astm: checksum mismatch")
)

// MessageError represents framing that does not match the protocol shape.
type MessageError struct {
	Reason string // what the framing is missing
	Data   []byte // the offending input, if any
}

// Error returns the error string.
func (e *MessageError) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("astm: malformed message: %s", e.Reason)
	}
	return fmt.Sprintf("astm: malformed message: %s: %q", e.Reason, e.Data)
}

// Is implements the errors.Is interface.
func (e *MessageError) Is(err error) bool {
	return err == ErrMalformedMessage
}

// NewMessageError creates a new MessageError.
func NewMessageError(reason string, data []byte) *MessageError {
	return &MessageError{Reason: reason, Data: data}
}

// IsMalformedMessage returns true if the error rejects the framing of an
// input.
func IsMalformedMessage(err error) bool {
	if err == nil {
		return false
	}
	var e *MessageError
	return errors.As(err, &e) || errors.Is(err, ErrMalformedMessage)
}

// ChecksumError represents a checksum verification failure.
type ChecksumError struct {
	Carried  string // checksum digits carried by the message
	Computed string // checksum computed over the frame
}

// Error returns the error string.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("astm: checksum mismatch: message carries %s, frame sums to %s", e.Carried, e.Computed)
}

// Is implements the errors.Is interface.
func (e *ChecksumError) Is(err error) bool {
	return err == ErrChecksumMismatch
}

// NewChecksumError creates a new ChecksumError.
func NewChecksumError(carried, computed string) *ChecksumError {
	return &ChecksumError{Carried: carried, Computed: computed}
}

// IsChecksumMismatch returns true if the error reports a checksum
// verification failure.
func IsChecksumMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *ChecksumError
	return errors.As(err, &e) || errors.Is(err, ErrChecksumMismatch)
}
