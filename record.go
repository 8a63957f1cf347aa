package astm

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a typed instance of a Schema. It serves both roles the wire
// format distinguishes: a top-level record and a component nested inside a
// field of another record.
//
// The record holds raw wire values keyed by field name: canonical wire
// text for scalar kinds, a nested *Record for components, a shared
// element sequence for repeated groups, nil for absent. Typed values are
// produced on every read by the field's Decode; nothing is cached.
//
// Records are not synchronized. Share the schema, not the instance.
type Record struct {
	schema *Schema
	data   map[string]any
}

// New constructs a record instance. Positional arguments bind to fields
// in declared order; Named arguments bind by name and win over positional
// values for the same field. Nil and missing both mean "use the default".
// Every field is materialized through its set-conversion; any failure
// rejects the whole instance.
func (s *Schema) New(args ...any) (*Record, error) {
	var (
		positional []any
		named      Named
	)
	for _, arg := range args {
		if n, ok := arg.(Named); ok {
			if named == nil {
				named = make(Named, len(n))
			}
			for k, v := range n {
				named[k] = v
			}
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) > len(s.fields) {
		return nil, NewArgumentCountError(s.name, len(positional), len(s.fields))
	}
	values := make(map[string]any, len(positional)+len(named))
	for i, v := range positional {
		values[s.fields[i].Name()] = v
	}
	var unknown []string
	for k, v := range named {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
			continue
		}
		values[k] = v
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, NewUnexpectedArgumentError(s.name, unknown...)
	}
	r := &Record{schema: s, data: make(map[string]any, len(s.fields))}
	for _, f := range s.fields {
		v := values[f.Name()]
		if v == nil {
			v = f.DefaultValue()
		}
		if v == nil {
			if !f.Optional() {
				return nil, NewValueError(f.Name(), nil, "value is required")
			}
			r.data[f.Name()] = nil
			continue
		}
		if err := r.Set(f.Name(), v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(args ...any) *Record {
	r, err := s.New(args...)
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the schema the record was built from.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Len returns the declared field count.
func (r *Record) Len() int {
	return len(r.schema.fields)
}

// Names returns the field names in declared order.
func (r *Record) Names() []string {
	return r.schema.Names()
}

// Get returns the typed value of the named field, re-running the field's
// get-conversion on the stored raw value. An absent field resolves its
// default: static defaults are returned as-is, factory defaults are
// invoked fresh, and nil is returned when there is none.
func (r *Record) Get(name string) (any, error) {
	f, ok := r.schema.Field(name)
	if !ok {
		return nil, NewItemNotFoundError(name)
	}
	raw := r.data[name]
	if raw == nil {
		return f.DefaultValue(), nil
	}
	return f.Decode(raw)
}

// At returns the typed value of the field at position i in declared
// order.
func (r *Record) At(i int) (any, error) {
	if i < 0 || i >= len(r.schema.fields) {
		return nil, NewItemNotFoundError(i)
	}
	return r.Get(r.schema.fields[i].Name())
}

// Set assigns a value to the named field through its set-conversion and
// stores the raw result. Assigning nil to an optional field clears it;
// assigning nil to a required field fails.
func (r *Record) Set(name string, v any) error {
	f, ok := r.schema.Field(name)
	if !ok {
		return NewItemNotFoundError(name)
	}
	if v == nil {
		if !f.Optional() {
			return NewValueError(name, nil, "value is required")
		}
		r.data[name] = nil
		return nil
	}
	raw, err := f.Encode(v)
	if err != nil {
		return err
	}
	// A constant without a declared default binds to the first value this
	// instance stores. Binding state lives here, never on the shared field.
	if f.Kind() == KindConstant {
		if prev, ok := r.data[name]; ok && prev != nil && prev != raw {
			return NewReassignmentError(name, prev, raw)
		}
	}
	r.data[name] = raw
	return nil
}

// SetAt assigns a value to the field at position i in declared order.
func (r *Record) SetAt(i int, v any) error {
	if i < 0 || i >= len(r.schema.fields) {
		return NewItemNotFoundError(i)
	}
	return r.Set(r.schema.fields[i].Name(), v)
}

// Unset resets the named field to absent. The default applies again on
// the next read; required is deliberately not re-checked here.
func (r *Record) Unset(name string) error {
	if _, ok := r.schema.Field(name); !ok {
		return NewItemNotFoundError(name)
	}
	r.data[name] = nil
	return nil
}

// Clear resets the field at position i to absent.
func (r *Record) Clear(i int) error {
	if i < 0 || i >= len(r.schema.fields) {
		return NewItemNotFoundError(i)
	}
	r.data[r.schema.fields[i].Name()] = nil
	return nil
}

// Values returns the typed values of all fields in declared order.
func (r *Record) Values() ([]any, error) {
	values := make([]any, len(r.schema.fields))
	for i, f := range r.schema.fields {
		v, err := r.Get(f.Name())
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Equal reports if both records hold the same number of fields with equal
// decoded values in declared order. Schema identity is not required; only
// the value sequences are compared.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.Len() != other.Len() {
		return false
	}
	values, err := other.Values()
	if err != nil {
		return false
	}
	return r.EqualValues(values)
}

// EqualValues reports if the record's decoded values match the given
// sequence in declared order.
func (r *Record) EqualValues(values []any) bool {
	if r.Len() != len(values) {
		return false
	}
	own, err := r.Values()
	if err != nil {
		return false
	}
	for i := range own {
		if !valueEqual(own[i], values[i]) {
			return false
		}
	}
	return true
}

// ToWire lowers the record into the nested wire shape: raw values in
// declared order, nested records recursing, repeated groups lowering
// element-wise. Scalars emit their stored wire text or nil when absent.
func (r *Record) ToWire() []any {
	out := make([]any, 0, len(r.schema.fields))
	for _, f := range r.schema.fields {
		switch raw := r.data[f.Name()].(type) {
		case *Record:
			out = append(out, raw.ToWire())
		case *[]any:
			elems := make([]any, 0, len(*raw))
			for _, item := range *raw {
				if nested, ok := item.(*Record); ok {
					elems = append(elems, nested.ToWire())
				} else {
					elems = append(elems, item)
				}
			}
			out = append(out, elems)
		default:
			out = append(out, raw)
		}
	}
	return out
}

// String renders the record as SchemaName(field=value, ...) using decoded
// values where they resolve.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.schema.name)
	b.WriteByte('(')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name())
		b.WriteByte('=')
		v, err := r.Get(f.Name())
		if err != nil {
			b.WriteString("<invalid>")
			continue
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteByte(')')
	return b.String()
}

// Value returns the decoded value of the named field asserted to T. An
// absent field yields the zero value.
func Value[T any](r *Record, name string) (T, error) {
	var zero T
	v, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, NewValueTypeError(name, v, fmt.Sprintf("%T", zero))
	}
	return t, nil
}

// valueEqual compares decoded values: decimals by numeric equality, times
// by instant, records and element views recursively, everything else by
// deep equality.
func valueEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *Record:
		switch y := b.(type) {
		case *Record:
			return x.Equal(y)
		case []any:
			return x.EqualValues(y)
		}
		return false
	case *ComponentList:
		switch y := b.(type) {
		case *ComponentList:
			return x.Equal(y)
		case [][]any:
			return x.EqualValues(y)
		}
		return false
	}
	switch y := b.(type) {
	case *Record:
		if vals, ok := a.([]any); ok {
			return y.EqualValues(vals)
		}
		return false
	case *ComponentList:
		if vals, ok := a.([][]any); ok {
			return y.EqualValues(vals)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
