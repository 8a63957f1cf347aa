package gen

import (
	"fmt"
	"path"

	"github.com/labwire/astm"
	"github.com/labwire/astm/compiler/load"
)

// Graph is the generator's view of a compiled profile: every layout wrapped
// with the Go names it will be emitted under.
type Graph struct {
	*Config

	// Profile is the compiled profile the graph was built from.
	Profile *load.Built

	// Nodes holds all layouts in emission order: components first, then
	// record layouts, matching the compiled profile.
	Nodes []*Record
}

// Record is a layout node in the graph.
type Record struct {
	*load.BuiltRecord

	// Fields wraps the merged field descriptors in wire order.
	Fields []*Field
}

// Field is a single field position of a layout node.
type Field struct {
	*load.Field
}

// reservedMethods are emitted on every generated view; field accessors must
// not collide with them.
var reservedMethods = map[string]struct{}{
	"Record": {},
	"ToWire": {},
	"String": {},
}

// NewGraph wraps a compiled profile for code generation. It validates that
// every layout and field maps to a distinct Go declaration.
func NewGraph(c *Config, built *load.Built) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "configuration is required")
	}
	if c.Package == "" {
		return nil, NewConfigError("Package", nil, "package cannot be empty")
	}
	if built == nil || len(built.Records) == 0 {
		return nil, NewGraphError("", "", "profile has no record layouts", nil)
	}
	g := &Graph{
		Config:  c,
		Profile: built,
		Nodes:   make([]*Record, 0, len(built.Components)+len(built.Records)),
	}
	structs := make(map[string]string)
	codes := make(map[string]string)
	for _, br := range built.Components {
		r, err := g.node(br, structs)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, r)
	}
	for _, br := range built.Records {
		r, err := g.node(br, structs)
		if err != nil {
			return nil, err
		}
		if code := r.TypeCode(); code != "" {
			if other, ok := codes[code]; ok {
				return nil, NewGraphError(br.Name, "", fmt.Sprintf("record type code %q is already used by %q", code, other), nil)
			}
			codes[code] = br.Name
		}
		g.Nodes = append(g.Nodes, r)
	}
	return g, nil
}

func (g *Graph) node(br *load.BuiltRecord, structs map[string]string) (*Record, error) {
	r := &Record{BuiltRecord: br}
	name := r.StructName()
	if other, ok := structs[name]; ok {
		return nil, NewGraphError(br.Name, "", fmt.Sprintf("layout maps to Go type %s, already taken by %q", name, other), nil)
	}
	structs[name] = br.Name
	getters := make(map[string]string)
	for _, fd := range br.Fields {
		f := &Field{Field: fd}
		if f.IsNotUsed() {
			r.Fields = append(r.Fields, f)
			continue
		}
		getter := f.GetterName()
		if _, ok := reservedMethods[getter]; ok {
			return nil, NewGraphError(br.Name, fd.Name, fmt.Sprintf("field maps to reserved method %s", getter), nil)
		}
		if other, ok := getters[getter]; ok {
			return nil, NewGraphError(br.Name, fd.Name, fmt.Sprintf("field maps to accessor %s, already taken by %q", getter, other), nil)
		}
		getters[getter] = fd.Name
		r.Fields = append(r.Fields, f)
	}
	return r, nil
}

// PkgName returns the package name of the emitted files: the base element
// of the configured package path.
func (g *Graph) PkgName() string {
	return path.Base(g.Package)
}

// RecordNodes returns the record layout nodes, skipping components.
func (g *Graph) RecordNodes() []*Record {
	nodes := make([]*Record, 0, len(g.Nodes))
	for _, r := range g.Nodes {
		if !r.Component {
			nodes = append(nodes, r)
		}
	}
	return nodes
}

// StructName returns the Go type name of the layout's generated view.
func (r *Record) StructName() string {
	return pascal(r.Name)
}

// SchemaName returns the name of the generated schema variable.
func (r *Record) SchemaName() string {
	return r.StructName() + "Schema"
}

// FileName returns the base name of the view file, without extension.
func (r *Record) FileName() string {
	return snake(r.StructName())
}

// SchemaFileName returns the base name of the schema file, without
// extension.
func (r *Record) SchemaFileName() string {
	return r.FileName() + "_schema"
}

// Receiver returns the receiver name used by the view's methods.
func (r *Record) Receiver() string {
	return receiver(r.StructName())
}

// TypeCode returns the wire type code of a record layout: the default of a
// leading constant field. Layouts without one return "".
func (r *Record) TypeCode() string {
	if r.Schema == nil || r.Schema.Len() == 0 {
		return ""
	}
	f := r.Schema.FieldAt(0)
	if f.Kind() != astm.KindConstant {
		return ""
	}
	code, ok := f.DefaultValue().(string)
	if !ok {
		return ""
	}
	return code
}

// GetterName returns the name of the generated getter.
func (f *Field) GetterName() string {
	return pascal(f.Name)
}

// SetterName returns the name of the generated setter.
func (f *Field) SetterName() string {
	return "Set" + pascal(f.Name)
}

// IsComponent reports if the field nests a single component group.
func (f *Field) IsComponent() bool {
	return f.Kind == "component"
}

// IsRepeated reports if the field nests a repeated component group.
func (f *Field) IsRepeated() bool {
	return f.Kind == "repeated"
}

// IsEnum reports if the field is an enum.
func (f *Field) IsEnum() bool {
	return f.Kind == "enum"
}

// IsConstant reports if the field is a constant.
func (f *Field) IsConstant() bool {
	return f.Kind == "constant"
}

// IsNotUsed reports if the field is a reserved position.
func (f *Field) IsNotUsed() bool {
	return f.Kind == "notused"
}

// StringEnum reports if every enum member is a string.
func (f *Field) StringEnum() bool {
	if !f.IsEnum() || len(f.Values) == 0 {
		return false
	}
	for _, v := range f.Values {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}
