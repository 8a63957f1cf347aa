package field

import (
	"github.com/labwire/astm"
)

// ComponentField nests an instance of another schema inside one wire
// position. When the nested schema constructs empty, absent components
// default to a fresh instance per construction; nested schemas with
// required fields carry no default and stay absent instead.
type ComponentField struct {
	base
	schema     *astm.Schema
	hasDefault bool
}

// Component returns a new component field nesting the given schema.
func Component(name string, schema *astm.Schema) *ComponentField {
	f := &ComponentField{base: base{name: name, kind: astm.KindComponent}}
	if schema == nil {
		f.fail(astm.NewValueError(name, nil, "component schema is required"))
		return f
	}
	f.schema = schema
	if _, err := schema.New(); err == nil {
		f.hasDefault = true
	}
	return f
}

// Schema returns the nested schema.
func (f *ComponentField) Schema() *astm.Schema {
	return f.schema
}

// HasDefault reports if the nested schema constructs empty.
func (f *ComponentField) HasDefault() bool {
	return f.hasDefault
}

// DefaultValue builds a fresh empty instance of the nested schema, or nil
// when the schema requires values.
func (f *ComponentField) DefaultValue() any {
	if !f.hasDefault {
		return nil
	}
	rec, err := f.schema.New()
	if err != nil {
		return nil
	}
	return rec
}

// Encode accepts an instance of the nested schema, Named values, or a
// positional value sequence. Plain text is rejected: a component position
// holds structure, not a scalar.
func (f *ComponentField) Encode(v any) (any, error) {
	if f.schema == nil {
		return nil, f.err
	}
	switch x := v.(type) {
	case *astm.Record:
		if x.Schema() != f.schema {
			return nil, astm.NewValueTypeError(f.name, v, "instance of "+f.schema.Name())
		}
		return x, nil
	case astm.Named:
		return f.construct(nil, x)
	case map[string]any:
		return f.construct(nil, astm.Named(x))
	case string, []byte:
		return nil, astm.NewValueTypeError(f.name, v, "component values, not plain text")
	case []any:
		return f.construct(x, nil)
	}
	return nil, astm.NewValueTypeError(f.name, v, "component instance, named values, or value sequence")
}

// Decode returns the stored nested instance.
func (f *ComponentField) Decode(raw any) (any, error) {
	if f.schema == nil {
		return nil, f.err
	}
	rec, ok := raw.(*astm.Record)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored component instance")
	}
	return rec, nil
}

func (f *ComponentField) construct(positional []any, named astm.Named) (any, error) {
	args := make([]any, 0, len(positional)+1)
	args = append(args, positional...)
	if named != nil {
		args = append(args, named)
	}
	rec, err := f.schema.New(args...)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RepeatedField nests a variable-length group of component instances
// inside one wire position. Reads yield an *astm.ComponentList view
// aliasing the stored sequence; every view of the same record field
// mutates the same sequence.
type RepeatedField struct {
	base
	elem *ComponentField
}

// Repeated returns a new repeated-component field over the given schema.
func Repeated(name string, schema *astm.Schema) *RepeatedField {
	f := &RepeatedField{base: base{name: name, kind: astm.KindRepeated}}
	f.elem = Component(name, schema)
	if err := f.elem.Err(); err != nil {
		f.fail(err)
	}
	return f
}

// Schema returns the element schema.
func (f *RepeatedField) Schema() *astm.Schema {
	return f.elem.schema
}

// HasDefault reports true: absent groups default to an empty sequence.
func (f *RepeatedField) HasDefault() bool {
	return true
}

// DefaultValue returns a fresh empty element sequence.
func (f *RepeatedField) DefaultValue() any {
	return []any{}
}

// Encode accepts an existing view, a slice of instances, or a sequence of
// component-acceptable forms, encoding each element through the component
// field. A fresh backing sequence is allocated per assignment, so views
// over a previously stored sequence keep aliasing the old elements.
func (f *RepeatedField) Encode(v any) (any, error) {
	if f.elem.schema == nil {
		return nil, f.err
	}
	var src []any
	switch x := v.(type) {
	case *astm.ComponentList:
		items, err := x.Items()
		if err != nil {
			return nil, err
		}
		src = items
	case []any:
		src = x
	case [][]any:
		src = make([]any, len(x))
		for i, vals := range x {
			src[i] = vals
		}
	case []*astm.Record:
		src = make([]any, len(x))
		for i, rec := range x {
			src[i] = rec
		}
	case string, []byte:
		return nil, astm.NewValueTypeError(f.name, v, "sequence of component values, not plain text")
	default:
		return nil, astm.NewValueTypeError(f.name, v, "sequence of component values")
	}
	elems := make([]any, 0, len(src))
	for _, item := range src {
		raw, err := f.elem.Encode(item)
		if err != nil {
			return nil, err
		}
		elems = append(elems, raw)
	}
	return &elems, nil
}

// Decode binds a view to the stored element sequence.
func (f *RepeatedField) Decode(raw any) (any, error) {
	if f.elem.schema == nil {
		return nil, f.err
	}
	elems, ok := raw.(*[]any)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored element sequence")
	}
	return astm.NewComponentList(elems, f.elem), nil
}
