package field

import (
	"time"

	"github.com/labwire/astm"
)

// Wire layouts shared by every instrument profile the package ships.
const (
	TimestampLayout = "20060102150405"
	DateLayout      = "20060102"
)

// TimestampField stores date-and-time values as layout-formatted wire
// text.
type TimestampField struct {
	base
	layout string
}

// Timestamp returns a new timestamp field with the given name, using the
// standard 14-digit wire layout.
func Timestamp(name string) *TimestampField {
	return &TimestampField{
		base:   base{name: name, kind: astm.KindTimestamp},
		layout: TimestampLayout,
	}
}

// Layout replaces the wire layout.
func (f *TimestampField) Layout(layout string) *TimestampField {
	if layout == "" {
		f.fail(astm.NewValueError(f.name, nil, "layout must not be empty"))
		return f
	}
	f.layout = layout
	return f
}

// Default sets the value resolved when the field is absent.
func (f *TimestampField) Default(t time.Time) *TimestampField {
	f.def = t
	return f
}

// DefaultFunc sets a factory invoked fresh whenever the absent field
// resolves its default. time.Now is the common choice for header
// timestamps.
func (f *TimestampField) DefaultFunc(fn func() time.Time) *TimestampField {
	f.defFunc = func() any { return fn() }
	return f
}

// Required marks the field as rejecting nil assignments.
func (f *TimestampField) Required() *TimestampField {
	f.required = true
	return f
}

// Encode accepts a time.Time or text matching the layout exactly, storing
// the canonical layout rendering.
func (f *TimestampField) Encode(v any) (any, error) {
	return encodeTime(&f.base, f.layout, v)
}

// Decode parses the stored text back into a time.Time.
func (f *TimestampField) Decode(raw any) (any, error) {
	return decodeTime(&f.base, f.layout, raw)
}

// DateField stores calendar dates as layout-formatted wire text.
type DateField struct {
	base
	layout string
}

// Date returns a new date field with the given name, using the standard
// 8-digit wire layout.
func Date(name string) *DateField {
	return &DateField{
		base:   base{name: name, kind: astm.KindDate},
		layout: DateLayout,
	}
}

// Layout replaces the wire layout.
func (f *DateField) Layout(layout string) *DateField {
	if layout == "" {
		f.fail(astm.NewValueError(f.name, nil, "layout must not be empty"))
		return f
	}
	f.layout = layout
	return f
}

// Default sets the value resolved when the field is absent.
func (f *DateField) Default(t time.Time) *DateField {
	f.def = t
	return f
}

// DefaultFunc sets a factory invoked fresh whenever the absent field
// resolves its default.
func (f *DateField) DefaultFunc(fn func() time.Time) *DateField {
	f.defFunc = func() any { return fn() }
	return f
}

// Required marks the field as rejecting nil assignments.
func (f *DateField) Required() *DateField {
	f.required = true
	return f
}

// Encode accepts a time.Time or text matching the layout exactly.
func (f *DateField) Encode(v any) (any, error) {
	return encodeTime(&f.base, f.layout, v)
}

// Decode parses the stored text back into a time.Time.
func (f *DateField) Decode(raw any) (any, error) {
	return decodeTime(&f.base, f.layout, raw)
}

func encodeTime(b *base, layout string, v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout), nil
	case string, []byte:
		s, _ := asText(v)
		parsed, err := time.Parse(layout, s)
		if err != nil {
			return nil, astm.NewValueError(b.name, s, "text does not match layout "+layout)
		}
		return parsed.Format(layout), nil
	}
	return nil, astm.NewValueTypeError(b.name, v, "time.Time or layout text")
}

func decodeTime(b *base, layout string, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(b.name, raw, "stored layout text")
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, astm.NewValueError(b.name, s, "stored text does not match layout "+layout)
	}
	return t, nil
}
