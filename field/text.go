package field

import (
	"fmt"
	"unicode/utf8"

	"github.com/labwire/astm"
)

// TextField stores free-form wire text.
type TextField struct {
	base
	maxLen int
}

// Text returns a new text field with the given name.
func Text(name string) *TextField {
	return &TextField{base: base{name: name, kind: astm.KindText}}
}

// Default sets the value resolved when the field is absent.
func (f *TextField) Default(s string) *TextField {
	f.def = s
	return f
}

// DefaultFunc sets a factory invoked fresh whenever the absent field
// resolves its default.
func (f *TextField) DefaultFunc(fn func() string) *TextField {
	f.defFunc = func() any { return fn() }
	return f
}

// Required marks the field as rejecting nil assignments.
func (f *TextField) Required() *TextField {
	f.required = true
	return f
}

// MaxLen bounds the accepted text length in runes.
func (f *TextField) MaxLen(n int) *TextField {
	f.maxLen = n
	return f
}

// Encode accepts string or []byte values and stores them verbatim.
func (f *TextField) Encode(v any) (any, error) {
	s, ok := asText(v)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, v, "text")
	}
	if f.maxLen > 0 && utf8.RuneCountInString(s) > f.maxLen {
		return nil, astm.NewValueError(f.name, s, fmt.Sprintf("text longer than %d", f.maxLen))
	}
	return s, nil
}

// Decode returns the stored text.
func (f *TextField) Decode(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored text")
	}
	return s, nil
}

// ConstantField stores a single permitted text value. A declared default
// binds the value at definition; without one, the first value a record
// stores binds that record.
type ConstantField struct {
	base
	value string
	bound bool
}

// Constant returns a new constant field with the given name.
func Constant(name string) *ConstantField {
	return &ConstantField{base: base{name: name, kind: astm.KindConstant}}
}

// Default binds the constant to s at definition.
func (f *ConstantField) Default(s string) *ConstantField {
	f.value = s
	f.bound = true
	f.def = s
	return f
}

// Encode accepts text equal to the bound value; anything else fails
// reassignment.
func (f *ConstantField) Encode(v any) (any, error) {
	s, ok := asText(v)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, v, "text")
	}
	if f.bound && s != f.value {
		return nil, astm.NewReassignmentError(f.name, f.value, s)
	}
	return s, nil
}

// Decode returns the bound value, or the stored text for per-record
// bindings.
func (f *ConstantField) Decode(raw any) (any, error) {
	if f.bound {
		return f.value, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored text")
	}
	return s, nil
}

// NotUsedField declares a wire position the layout carries but the model
// ignores: assignments are discarded and reads yield nil.
type NotUsedField struct {
	base
}

// NotUsed returns a new ignored field with the given name.
func NotUsed(name string) *NotUsedField {
	return &NotUsedField{base: base{name: name, kind: astm.KindNotUsed}}
}

// Encode discards the value.
func (f *NotUsedField) Encode(any) (any, error) {
	return nil, nil
}

// Decode yields nil regardless of the stored value.
func (f *NotUsedField) Decode(any) (any, error) {
	return nil, nil
}
