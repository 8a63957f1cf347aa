package astm

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for schema definition and record access.
var (
	// ErrInvalidValueType is returned when an assigned value has a Go type
	// the field kind cannot coerce.
	ErrInvalidValueType = errors.New("astm: invalid value type")

	// ErrInvalidValue is returned when a well-typed value violates a field
	// constraint (required, length, set membership, layout).
	ErrInvalidValue = errors.New("astm: invalid value")

	// ErrReassignment is returned when a constant field that already holds
	// a value is assigned a different one.
	ErrReassignment = errors.New("astm: constant reassignment not allowed")

	// ErrDuplicateField is returned when a schema declares two fields with
	// the same name.
	ErrDuplicateField = errors.New("astm: duplicate field name")

	// ErrMissingFieldName is returned when a schema declares a field
	// without a name.
	ErrMissingFieldName = errors.New("astm: missing field name")

	// ErrUnexpectedArgument is returned when record construction receives
	// arguments that do not bind to any declared field.
	ErrUnexpectedArgument = errors.New("astm: unexpected argument")

	// ErrItemNotFound is returned when an element lookup by value or index
	// finds no match.
	ErrItemNotFound = errors.New("astm: item not found")

	// ErrUnsupported is returned when a deliberately excluded operation is
	// invoked.
	ErrUnsupported = errors.New("astm: unsupported operation")
)

// ValueTypeError represents an assignment whose Go type the field kind
// cannot coerce.
type ValueTypeError struct {
	Field string // field name
	Value any    // the rejected value
	Want  string // description of the accepted forms
}

// Error returns the error string.
func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("astm: field %q: unexpected %T value, want %s", e.Field, e.Value, e.Want)
}

// Is implements the errors.Is interface.
func (e *ValueTypeError) Is(err error) bool {
	return err == ErrInvalidValueType
}

// NewValueTypeError creates a new ValueTypeError.
func NewValueTypeError(field string, value any, want string) *ValueTypeError {
	return &ValueTypeError{Field: field, Value: value, Want: want}
}

// IsInvalidValueType returns true if the error rejects the Go type of an
// assigned value.
func IsInvalidValueType(err error) bool {
	if err == nil {
		return false
	}
	var e *ValueTypeError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidValueType)
}

// ValueError represents a well-typed value that violates a field
// constraint.
type ValueError struct {
	Field  string // field name
	Value  any    // the rejected value, if any
	Reason string // constraint description
}

// Error returns the error string.
func (e *ValueError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "astm: field %q: %s", e.Field, e.Reason)
	if e.Value != nil {
		fmt.Fprintf(&b, ": %v", e.Value)
	}
	return b.String()
}

// Is implements the errors.Is interface.
func (e *ValueError) Is(err error) bool {
	return err == ErrInvalidValue
}

// NewValueError creates a new ValueError.
func NewValueError(field string, value any, reason string) *ValueError {
	return &ValueError{Field: field, Value: value, Reason: reason}
}

// IsInvalidValue returns true if the error rejects a value on a field
// constraint.
func IsInvalidValue(err error) bool {
	if err == nil {
		return false
	}
	var e *ValueError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidValue)
}

// ReassignmentError represents an attempt to change a constant field that
// already holds a value.
type ReassignmentError struct {
	Field string // field name
	Bound any    // the value the field is bound to
	Value any    // the rejected replacement
}

// Error returns the error string.
func (e *ReassignmentError) Error() string {
	return fmt.Sprintf("astm: field %q: bound to %v, cannot reassign to %v", e.Field, e.Bound, e.Value)
}

// Is implements the errors.Is interface.
func (e *ReassignmentError) Is(err error) bool {
	return err == ErrReassignment
}

// NewReassignmentError creates a new ReassignmentError.
func NewReassignmentError(field string, bound, value any) *ReassignmentError {
	return &ReassignmentError{Field: field, Bound: bound, Value: value}
}

// IsReassignment returns true if the error rejects a constant field
// change.
func IsReassignment(err error) bool {
	if err == nil {
		return false
	}
	var e *ReassignmentError
	return errors.As(err, &e) || errors.Is(err, ErrReassignment)
}

// DuplicateFieldError represents a schema declaring the same field name
// twice.
type DuplicateFieldError struct {
	Schema string // schema name
	Field  string // the repeated field name
}

// Error returns the error string.
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("astm: schema %q: duplicate field %q", e.Schema, e.Field)
}

// Is implements the errors.Is interface.
func (e *DuplicateFieldError) Is(err error) bool {
	return err == ErrDuplicateField
}

// NewDuplicateFieldError creates a new DuplicateFieldError.
func NewDuplicateFieldError(schema, field string) *DuplicateFieldError {
	return &DuplicateFieldError{Schema: schema, Field: field}
}

// IsDuplicateField returns true if the error reports a repeated field
// name.
func IsDuplicateField(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateFieldError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateField)
}

// MissingFieldNameError represents a schema declaring a field without a
// name.
type MissingFieldNameError struct {
	Schema string // schema name
	Index  int    // position of the unnamed field
}

// Error returns the error string.
func (e *MissingFieldNameError) Error() string {
	return fmt.Sprintf("astm: schema %q: field at index %d has no name", e.Schema, e.Index)
}

// Is implements the errors.Is interface.
func (e *MissingFieldNameError) Is(err error) bool {
	return err == ErrMissingFieldName
}

// NewMissingFieldNameError creates a new MissingFieldNameError.
func NewMissingFieldNameError(schema string, index int) *MissingFieldNameError {
	return &MissingFieldNameError{Schema: schema, Index: index}
}

// IsMissingFieldName returns true if the error reports an unnamed field.
func IsMissingFieldName(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingFieldNameError
	return errors.As(err, &e) || errors.Is(err, ErrMissingFieldName)
}

// UnexpectedArgumentError represents construction arguments that do not
// bind to any declared field: unknown names, or more positional values
// than fields.
type UnexpectedArgumentError struct {
	Schema string   // schema name
	Names  []string // unknown argument names, if any
	Got    int      // positional arguments received
	Want   int      // declared field count
}

// Error returns the error string.
func (e *UnexpectedArgumentError) Error() string {
	if len(e.Names) == 0 {
		return fmt.Sprintf("astm: schema %q: %d positional arguments for %d fields", e.Schema, e.Got, e.Want)
	}
	return fmt.Sprintf("astm: schema %q: unexpected arguments %s", e.Schema, strings.Join(e.Names, ", "))
}

// Is implements the errors.Is interface.
func (e *UnexpectedArgumentError) Is(err error) bool {
	return err == ErrUnexpectedArgument
}

// NewUnexpectedArgumentError creates a new UnexpectedArgumentError for
// unknown argument names.
func NewUnexpectedArgumentError(schema string, names ...string) *UnexpectedArgumentError {
	return &UnexpectedArgumentError{Schema: schema, Names: names}
}

// NewArgumentCountError creates a new UnexpectedArgumentError for a
// positional argument overflow.
func NewArgumentCountError(schema string, got, want int) *UnexpectedArgumentError {
	return &UnexpectedArgumentError{Schema: schema, Got: got, Want: want}
}

// IsUnexpectedArgument returns true if the error reports unbound
// construction arguments.
func IsUnexpectedArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *UnexpectedArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrUnexpectedArgument)
}

// ItemNotFoundError represents an element lookup that found no match.
type ItemNotFoundError struct {
	Value any // the missing value or index
}

// Error returns the error string.
func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("astm: item not found: %v", e.Value)
}

// Is implements the errors.Is interface.
func (e *ItemNotFoundError) Is(err error) bool {
	return err == ErrItemNotFound
}

// NewItemNotFoundError creates a new ItemNotFoundError.
func NewItemNotFoundError(value any) *ItemNotFoundError {
	return &ItemNotFoundError{Value: value}
}

// IsItemNotFound returns true if the error reports a missed element
// lookup.
func IsItemNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *ItemNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrItemNotFound)
}

// UnsupportedError represents an operation the model deliberately
// excludes.
type UnsupportedError struct {
	Op string // operation description
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("astm: %s is not supported", e.Op)
}

// Is implements the errors.Is interface.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// NewUnsupportedError creates a new UnsupportedError.
func NewUnsupportedError(op string) *UnsupportedError {
	return &UnsupportedError{Op: op}
}

// IsUnsupported returns true if the error reports an excluded operation.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}
