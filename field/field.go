package field

import (
	"github.com/labwire/astm"
)

// Compile-time builder conformance checks.
var (
	_ astm.Field = (*TextField)(nil)
	_ astm.Field = (*ConstantField)(nil)
	_ astm.Field = (*NotUsedField)(nil)
	_ astm.Field = (*IntegerField)(nil)
	_ astm.Field = (*DecimalField)(nil)
	_ astm.Field = (*TimestampField)(nil)
	_ astm.Field = (*DateField)(nil)
	_ astm.Field = (*EnumField)(nil)
	_ astm.Field = (*ComponentField)(nil)
	_ astm.Field = (*RepeatedField)(nil)
)

// base carries the pieces every builder shares. Concrete builders embed
// it and add their coercion pair plus typed chaining options.
type base struct {
	name     string
	kind     astm.Kind
	required bool
	def      any
	defFunc  func() any
	err      error
}

// Name returns the field name.
func (b *base) Name() string { return b.name }

// Kind returns the coercion category.
func (b *base) Kind() astm.Kind { return b.kind }

// Optional reports if the field tolerates an explicit nil assignment.
func (b *base) Optional() bool { return !b.required }

// HasDefault reports if the field resolves a value for absent input.
func (b *base) HasDefault() bool { return b.def != nil || b.defFunc != nil }

// DefaultValue returns the static default as-is, or invokes the factory
// fresh.
func (b *base) DefaultValue() any {
	if b.defFunc != nil {
		return b.defFunc()
	}
	return b.def
}

// Err returns the first error recorded during definition.
func (b *base) Err() error { return b.err }

// fail records the first definition error; later ones are dropped.
func (b *base) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// asText widens the textual input forms to a string.
func asText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}
