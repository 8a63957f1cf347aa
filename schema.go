package astm

import "slices"

// Schema is an immutable, ordered collection of named fields. The declared
// order is fixed at construction and drives positional binding, iteration,
// and lowering to the wire shape. Schemas are safe to share across
// goroutines once built.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from the given fields, preserving their order.
// It fails if a field carries a definition error, has an empty name, or
// repeats a name already declared.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f == nil || f.Name() == "" {
			return nil, NewMissingFieldNameError(name, i)
		}
		if err := f.Err(); err != nil {
			return nil, err
		}
		if _, ok := s.index[f.Name()]; ok {
			return nil, NewDuplicateFieldError(name, f.Name())
		}
		s.index[f.Name()] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for
// package-level schema variables.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a new schema from s: a field whose name matches an
// existing one replaces it in place, new names append in declared order.
// The receiver is left untouched and field values are shared, never
// copied.
func (s *Schema) Extend(name string, fields ...Field) (*Schema, error) {
	merged := slices.Clone(s.fields)
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f == nil || f.Name() == "" {
			return nil, NewMissingFieldNameError(name, i)
		}
		if err := f.Err(); err != nil {
			return nil, err
		}
		if _, ok := seen[f.Name()]; ok {
			return nil, NewDuplicateFieldError(name, f.Name())
		}
		seen[f.Name()] = struct{}{}
		if at, ok := s.index[f.Name()]; ok {
			merged[at] = f
		} else {
			merged = append(merged, f)
		}
	}
	return NewSchema(name, merged...)
}

// MustExtend is like Extend but panics on error.
func (s *Schema) MustExtend(name string, fields ...Field) *Schema {
	next, err := s.Extend(name, fields...)
	if err != nil {
		panic(err)
	}
	return next
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the declared field count.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns the declared fields in order. The slice is a copy; the
// fields themselves are shared.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field returns the declared field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	at, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[at], true
}

// FieldAt returns the field at position i in declared order. It panics if
// i is out of range, like a slice index.
func (s *Schema) FieldAt(i int) Field {
	return s.fields[i]
}

// Names returns the field names in declared order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return names
}
