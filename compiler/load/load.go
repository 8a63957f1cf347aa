// Package load parses instrument profile descriptors and resolves them
// into live schemas.
//
// A profile is a YAML document describing the record and component
// layouts one instrument speaks. Build compiles the descriptors into
// *astm.Schema values, components first so record fields can reference
// them, with extends resolving against layouts declared earlier in the
// profile and against the standard catalog in the records package.
package load

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/labwire/astm"
	"github.com/labwire/astm/field"
	"github.com/labwire/astm/records"
)

// Profile describes the record and component layouts of one instrument.
type Profile struct {
	Name       string    `yaml:"name"`
	Package    string    `yaml:"package,omitempty"`
	Version    string    `yaml:"version,omitempty"`
	Components []*Record `yaml:"components,omitempty"`
	Records    []*Record `yaml:"records,omitempty"`
}

// Record describes one record or component layout. Extends names a base
// layout whose fields are inherited; a field with a name matching a base
// field replaces it in place, new names append in declared order.
type Record struct {
	Name    string   `yaml:"name"`
	Extends string   `yaml:"extends,omitempty"`
	Fields  []*Field `yaml:"fields,omitempty"`
}

// Field describes a single field position within a layout. Kind selects
// the coercion category; the remaining options apply only to the kinds
// that take them.
type Field struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Required  bool   `yaml:"required,omitempty"`
	Default   any    `yaml:"default,omitempty"`
	MaxLen    int    `yaml:"max_len,omitempty"`
	Layout    string `yaml:"layout,omitempty"`
	Values    []any  `yaml:"values,omitempty"`
	Of        string `yaml:"of,omitempty"`
	Component string `yaml:"component,omitempty"`
}

// Parse decodes a YAML profile descriptor.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, NewProfileError("", "", "", "malformed descriptor", err)
	}
	if p.Name == "" {
		return nil, NewProfileError("", "", "", "profile name is required", nil)
	}
	return p, nil
}

// ParseFile reads and decodes a YAML profile descriptor from path.
func ParseFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// plainProfile strips the Profile method set. msgpack honors
// encoding.BinaryMarshaler, so encoding the receiver directly would
// re-enter MarshalBinary.
type plainProfile Profile

// MarshalBinary encodes the descriptor in the compact binary form used
// to snapshot compiled profiles between generator runs.
func (p *Profile) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*plainProfile)(p))
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary.
func (p *Profile) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, (*plainProfile)(p))
}

// Built is the resolved form of a profile: every layout compiled to a
// live schema. Components holds the declared component layouts followed
// by layouts pulled in by standard bases; Records holds the record
// layouts in declaration order.
type Built struct {
	*Profile
	Components []*BuiltRecord
	Records    []*BuiltRecord
}

// BuiltRecord pairs a resolved layout with its descriptors.
type BuiltRecord struct {
	Name string

	// Extends names the base layout, empty for standalone layouts.
	// StandardBase reports that the base resolved against the standard
	// catalog rather than a profile-local layout.
	Extends      string
	StandardBase bool

	// Component reports that the layout nests inside record fields
	// instead of standing alone at record level.
	Component bool

	// Declared holds the descriptors written in the profile. Fields
	// holds the merged list in wire order, including descriptors
	// synthesized for fields inherited from a standard base.
	Declared []*Field
	Fields   []*Field

	Schema *astm.Schema
}

// Lookup returns the built layout with the given name, searching
// components before records.
func (b *Built) Lookup(name string) (*BuiltRecord, bool) {
	for _, br := range b.Components {
		if br.Name == name {
			return br, true
		}
	}
	for _, br := range b.Records {
		if br.Name == name {
			return br, true
		}
	}
	return nil, false
}

// Build resolves the profile into live schemas.
func (p *Profile) Build() (*Built, error) {
	if p.Name == "" {
		return nil, NewProfileError("", "", "", "profile name is required", nil)
	}
	if len(p.Records) == 0 {
		return nil, NewProfileError(p.Name, "", "", "profile declares no records", nil)
	}
	b := &builder{
		profile:    p,
		components: make(map[string]*BuiltRecord),
		records:    make(map[string]*BuiltRecord),
	}
	built := &Built{Profile: p}
	for _, rd := range p.Components {
		br, err := b.record(rd, true)
		if err != nil {
			return nil, err
		}
		built.Components = append(built.Components, br)
	}
	for _, rd := range p.Records {
		br, err := b.record(rd, false)
		if err != nil {
			return nil, err
		}
		built.Records = append(built.Records, br)
	}
	built.Components = append(built.Components, b.synthesized...)
	return built, nil
}

// builder carries the resolution state of a single Build call.
type builder struct {
	profile    *Profile
	components map[string]*BuiltRecord
	records    map[string]*BuiltRecord
	// synthesized collects component layouts pulled in by standard
	// bases that the profile never declares itself.
	synthesized []*BuiltRecord
}

func (b *builder) errorf(record, field, message string, cause error) error {
	return NewProfileError(b.profile.Name, record, field, message, cause)
}

func (b *builder) record(rd *Record, component bool) (*BuiltRecord, error) {
	if rd.Name == "" {
		return nil, b.errorf("", "", "layout name is required", nil)
	}
	if _, ok := b.components[rd.Name]; ok {
		return nil, b.errorf(rd.Name, "", "layout is already defined", nil)
	}
	if _, ok := b.records[rd.Name]; ok {
		return nil, b.errorf(rd.Name, "", "layout is already defined", nil)
	}
	live := make([]astm.Field, len(rd.Fields))
	for i, fd := range rd.Fields {
		f, err := b.field(rd.Name, fd)
		if err != nil {
			return nil, err
		}
		live[i] = f
	}
	br := &BuiltRecord{
		Name:      rd.Name,
		Extends:   rd.Extends,
		Component: component,
		Declared:  rd.Fields,
	}
	if rd.Extends == "" {
		schema, err := astm.NewSchema(rd.Name, live...)
		if err != nil {
			return nil, b.errorf(rd.Name, "", "", err)
		}
		br.Schema = schema
		br.Fields = rd.Fields
	} else {
		base, standard, err := b.base(rd, component)
		if err != nil {
			return nil, err
		}
		schema, err := base.Schema.Extend(rd.Name, live...)
		if err != nil {
			return nil, b.errorf(rd.Name, "", "", err)
		}
		br.Schema = schema
		br.StandardBase = standard
		br.Fields = mergeFields(base.Fields, rd.Fields)
	}
	if err := b.registerSubLayouts(rd.Name, br.Schema); err != nil {
		return nil, err
	}
	if component {
		b.components[rd.Name] = br
	} else {
		b.records[rd.Name] = br
	}
	return br, nil
}

// base resolves the layout named by extends: profile-local layouts of
// the same scope first, then the standard catalog.
func (b *builder) base(rd *Record, component bool) (*BuiltRecord, bool, error) {
	scope := b.records
	if component {
		scope = b.components
	}
	if base, ok := scope[rd.Extends]; ok {
		return base, false, nil
	}
	if schema, ok := records.Standard(rd.Extends); ok {
		return &BuiltRecord{
			Name:   schema.Name(),
			Fields: describeSchema(schema),
			Schema: schema,
		}, true, nil
	}
	return nil, false, b.errorf(rd.Name, "", fmt.Sprintf("unknown base layout %q", rd.Extends), nil)
}

// registerSubLayouts walks the component fields of a resolved schema and
// surfaces the sub-layouts they reference, so every nested layout ends
// up with a built entry of its own.
func (b *builder) registerSubLayouts(record string, s *astm.Schema) error {
	for _, f := range s.Fields() {
		var sub *astm.Schema
		switch inner := f.(type) {
		case *field.ComponentField:
			sub = inner.Schema()
		case *field.RepeatedField:
			sub = inner.Schema()
		default:
			continue
		}
		if err := b.subLayout(record, sub); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) subLayout(record string, s *astm.Schema) error {
	name := s.Name()
	if br, ok := b.components[name]; ok {
		if br.Schema != s {
			return b.errorf(record, "", fmt.Sprintf("component %q shadows a standard layout with the same name", name), nil)
		}
		return nil
	}
	if _, ok := b.records[name]; ok {
		return b.errorf(record, "", fmt.Sprintf("record %q collides with a component layout of the same name", name), nil)
	}
	br := &BuiltRecord{
		Name:         name,
		Extends:      name,
		StandardBase: true,
		Component:    true,
		Schema:       s,
	}
	// Register before describing so nested references resolve to this
	// entry instead of synthesizing it twice.
	b.components[name] = br
	br.Fields = describeSchema(s)
	b.synthesized = append(b.synthesized, br)
	return b.registerSubLayouts(record, s)
}

// describeSchema synthesizes descriptors for a live schema, capturing
// the shape accessors need: names, kinds, optionality, enum members and
// component layout names. Defaults stay behind the live schema.
func describeSchema(s *astm.Schema) []*Field {
	fields := make([]*Field, 0, s.Len())
	for _, f := range s.Fields() {
		fields = append(fields, describeField(f))
	}
	return fields
}

func describeField(f astm.Field) *Field {
	d := &Field{
		Name:     f.Name(),
		Kind:     f.Kind().String(),
		Required: !f.Optional(),
	}
	switch inner := f.(type) {
	case *field.ComponentField:
		d.Component = inner.Schema().Name()
	case *field.RepeatedField:
		d.Component = inner.Schema().Name()
	case *field.EnumField:
		for _, m := range inner.Members() {
			d.Values = append(d.Values, m)
		}
	}
	return d
}

// mergeFields overlays the declared descriptors on the base descriptors
// with the same replace-in-place, append-new rule the schemas use.
func mergeFields(base, declared []*Field) []*Field {
	merged := make([]*Field, len(base))
	copy(merged, base)
	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.Name] = i
	}
	for _, f := range declared {
		if i, ok := index[f.Name]; ok {
			merged[i] = f
			continue
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}
	return merged
}

// field maps one descriptor to a live field builder.
func (b *builder) field(record string, fd *Field) (astm.Field, error) {
	if fd.Name == "" {
		return nil, b.errorf(record, "", "field name is required", nil)
	}
	switch fd.Kind {
	case "text":
		if err := b.reject(record, fd, "layout", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Text(fd.Name)
		if fd.Required {
			f = f.Required()
		}
		if fd.MaxLen > 0 {
			f = f.MaxLen(fd.MaxLen)
		}
		if fd.Default != nil {
			s, ok := fd.Default.(string)
			if !ok {
				return nil, b.errorf(record, fd.Name, fmt.Sprintf("text default must be a string, got %T", fd.Default), nil)
			}
			f = f.Default(s)
		}
		return f, nil
	case "constant":
		if err := b.reject(record, fd, "required", "max_len", "layout", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Constant(fd.Name)
		if fd.Default != nil {
			s, ok := fd.Default.(string)
			if !ok {
				return nil, b.errorf(record, fd.Name, fmt.Sprintf("constant default must be a string, got %T", fd.Default), nil)
			}
			f = f.Default(s)
		}
		return f, nil
	case "integer":
		if err := b.reject(record, fd, "max_len", "layout", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Integer(fd.Name)
		if fd.Required {
			f = f.Required()
		}
		if fd.Default != nil {
			n, ok := fd.Default.(int)
			if !ok {
				return nil, b.errorf(record, fd.Name, fmt.Sprintf("integer default must be an integer, got %T", fd.Default), nil)
			}
			f = f.Default(n)
		}
		return f, nil
	case "decimal":
		if err := b.reject(record, fd, "max_len", "layout", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Decimal(fd.Name)
		if fd.Required {
			f = f.Required()
		}
		if fd.Default != nil {
			d, err := decimalDefault(fd.Default)
			if err != nil {
				return nil, b.errorf(record, fd.Name, "", err)
			}
			f = f.Default(d)
		}
		return f, nil
	case "timestamp":
		if err := b.reject(record, fd, "max_len", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Timestamp(fd.Name)
		if fd.Layout != "" {
			f = f.Layout(fd.Layout)
		}
		if fd.Required {
			f = f.Required()
		}
		layout := fd.Layout
		if layout == "" {
			layout = field.TimestampLayout
		}
		switch def := fd.Default.(type) {
		case nil:
		case string:
			if def == "now" {
				f = f.DefaultFunc(time.Now)
				break
			}
			t, err := time.Parse(layout, def)
			if err != nil {
				return nil, b.errorf(record, fd.Name, fmt.Sprintf("default %q does not match layout %s", def, layout), nil)
			}
			f = f.Default(t)
		default:
			return nil, b.errorf(record, fd.Name, fmt.Sprintf("timestamp default must be now or layout text, got %T", fd.Default), nil)
		}
		return f, nil
	case "date":
		if err := b.reject(record, fd, "max_len", "values", "of", "component"); err != nil {
			return nil, err
		}
		f := field.Date(fd.Name)
		if fd.Layout != "" {
			f = f.Layout(fd.Layout)
		}
		if fd.Required {
			f = f.Required()
		}
		layout := fd.Layout
		if layout == "" {
			layout = field.DateLayout
		}
		switch def := fd.Default.(type) {
		case nil:
		case string:
			if def == "now" {
				f = f.DefaultFunc(time.Now)
				break
			}
			t, err := time.Parse(layout, def)
			if err != nil {
				return nil, b.errorf(record, fd.Name, fmt.Sprintf("default %q does not match layout %s", def, layout), nil)
			}
			f = f.Default(t)
		default:
			return nil, b.errorf(record, fd.Name, fmt.Sprintf("date default must be now or layout text, got %T", fd.Default), nil)
		}
		return f, nil
	case "enum":
		if err := b.reject(record, fd, "max_len", "layout", "component"); err != nil {
			return nil, err
		}
		if len(fd.Values) == 0 {
			return nil, b.errorf(record, fd.Name, "enum declares no values", nil)
		}
		f := field.Enum(fd.Name)
		if fd.Of != "" {
			inner, err := b.enumInner(record, fd)
			if err != nil {
				return nil, err
			}
			f = f.Of(inner)
		}
		f = f.Values(fd.Values...)
		if fd.Required {
			f = f.Required()
		}
		if fd.Default != nil {
			f = f.Default(fd.Default)
		}
		return f, nil
	case "component":
		if err := b.reject(record, fd, "required", "default", "max_len", "layout", "values", "of"); err != nil {
			return nil, err
		}
		sub, err := b.componentSchema(record, fd)
		if err != nil {
			return nil, err
		}
		return field.Component(fd.Name, sub), nil
	case "repeated":
		if err := b.reject(record, fd, "required", "default", "max_len", "layout", "values", "of"); err != nil {
			return nil, err
		}
		sub, err := b.componentSchema(record, fd)
		if err != nil {
			return nil, err
		}
		return field.Repeated(fd.Name, sub), nil
	case "notused":
		if err := b.reject(record, fd, "required", "default", "max_len", "layout", "values", "of", "component"); err != nil {
			return nil, err
		}
		return field.NotUsed(fd.Name), nil
	}
	return nil, b.errorf(record, fd.Name, fmt.Sprintf("unknown field kind %q", fd.Kind), nil)
}

// reject reports the first descriptor option set that the kind does not
// take.
func (b *builder) reject(record string, fd *Field, opts ...string) error {
	for _, opt := range opts {
		var set bool
		switch opt {
		case "required":
			set = fd.Required
		case "default":
			set = fd.Default != nil
		case "max_len":
			set = fd.MaxLen != 0
		case "layout":
			set = fd.Layout != ""
		case "values":
			set = len(fd.Values) > 0
		case "of":
			set = fd.Of != ""
		case "component":
			set = fd.Component != ""
		}
		if set {
			return b.errorf(record, fd.Name, fmt.Sprintf("kind %q does not take %s", fd.Kind, opt), nil)
		}
	}
	return nil
}

func (b *builder) enumInner(record string, fd *Field) (astm.Field, error) {
	switch fd.Of {
	case "text":
		return field.Text(fd.Name), nil
	case "integer":
		return field.Integer(fd.Name), nil
	case "decimal":
		return field.Decimal(fd.Name), nil
	}
	return nil, b.errorf(record, fd.Name, fmt.Sprintf("unsupported enum member kind %q", fd.Of), nil)
}

// componentSchema resolves the layout a component or repeated field
// nests: profile components first, then the standard catalog.
func (b *builder) componentSchema(record string, fd *Field) (*astm.Schema, error) {
	if fd.Component == "" {
		return nil, b.errorf(record, fd.Name, fmt.Sprintf("kind %q requires a component layout", fd.Kind), nil)
	}
	if br, ok := b.components[fd.Component]; ok {
		return br.Schema, nil
	}
	if schema, ok := records.Standard(fd.Component); ok {
		if err := b.subLayout(record, schema); err != nil {
			return nil, err
		}
		return schema, nil
	}
	return nil, b.errorf(record, fd.Name, fmt.Sprintf("unknown component layout %q", fd.Component), nil)
}

func decimalDefault(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("decimal default %q is not numeric", n)
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("decimal default must be numeric, got %T", v)
}
