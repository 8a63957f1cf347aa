package field

import (
	"github.com/labwire/astm"
)

// EnumField stores one member of a declared value set. Coercion is
// delegated to an inner field (text unless Of replaces it); the allowed
// members are canonicalized through the inner field at definition, so
// membership is checked on canonical wire text and a typed member equals
// its wire form.
type EnumField struct {
	base
	inner     astm.Field
	values    []any
	allowed   map[string]struct{}
	memberErr error
}

// Enum returns a new enumerated field with the given name, coercing
// members as text.
func Enum(name string) *EnumField {
	return &EnumField{
		base:  base{name: name, kind: astm.KindEnum},
		inner: Text(name),
	}
}

// Of replaces the inner field that coerces members, e.g.
// field.Enum("flag").Of(field.Integer("flag")).Values(0, 1).
func (f *EnumField) Of(inner astm.Field) *EnumField {
	if inner == nil {
		f.fail(astm.NewValueError(f.name, nil, "inner field must not be nil"))
		return f
	}
	f.inner = inner
	f.rebuild()
	return f
}

// Values declares the allowed members. Nil members are skipped: absence
// is optionality, not membership.
func (f *EnumField) Values(vs ...any) *EnumField {
	f.values = vs
	f.rebuild()
	return f
}

// Default sets the member resolved when the field is absent. Membership
// is verified when the schema is assembled.
func (f *EnumField) Default(v any) *EnumField {
	f.def = v
	return f
}

// Members returns the allowed members in declaration order, in their
// canonical wire form.
func (f *EnumField) Members() []string {
	members := make([]string, 0, len(f.values))
	for _, v := range f.values {
		if v == nil {
			continue
		}
		raw, err := f.inner.Encode(v)
		if err != nil {
			continue
		}
		if s, ok := raw.(string); ok {
			members = append(members, s)
		}
	}
	return members
}

// Required marks the field as rejecting nil assignments.
func (f *EnumField) Required() *EnumField {
	f.required = true
	return f
}

// rebuild recomputes the canonical member set. Member coercion errors are
// kept apart from base errors so that a later Of or Values call can
// recover a declaration the earlier inner field rejected.
func (f *EnumField) rebuild() {
	f.memberErr = nil
	f.allowed = make(map[string]struct{}, len(f.values))
	for _, v := range f.values {
		if v == nil {
			continue
		}
		raw, err := f.inner.Encode(v)
		if err != nil {
			if f.memberErr == nil {
				f.memberErr = err
			}
			continue
		}
		s, ok := raw.(string)
		if !ok {
			if f.memberErr == nil {
				f.memberErr = astm.NewValueTypeError(f.name, v, "textually encodable member")
			}
			continue
		}
		f.allowed[s] = struct{}{}
	}
}

// Err reports definition errors: a failing member declaration, an empty
// member set, or a default outside the set.
func (f *EnumField) Err() error {
	if f.base.err != nil {
		return f.base.err
	}
	if f.memberErr != nil {
		return f.memberErr
	}
	if len(f.allowed) == 0 {
		return astm.NewValueError(f.name, nil, "enumerated field declares no values")
	}
	if f.def != nil {
		raw, err := f.inner.Encode(f.def)
		if err != nil {
			return err
		}
		s, ok := raw.(string)
		if !ok {
			return astm.NewValueTypeError(f.name, f.def, "textually encodable member")
		}
		if _, member := f.allowed[s]; !member {
			return astm.NewValueError(f.name, f.def, "default is not in the allowed set")
		}
	}
	return nil
}

// Encode coerces v through the inner field and verifies membership.
func (f *EnumField) Encode(v any) (any, error) {
	raw, err := f.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, v, "textually encodable member")
	}
	if _, member := f.allowed[s]; !member {
		return nil, astm.NewValueError(f.name, v, "value not in allowed set")
	}
	return s, nil
}

// Decode delegates to the inner field.
func (f *EnumField) Decode(raw any) (any, error) {
	return f.inner.Decode(raw)
}
