package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/labwire/astm/field"
)

// Import paths of the packages generated code depends on.
const (
	astmPkg    = "github.com/labwire/astm"
	fieldPkg   = "github.com/labwire/astm/field"
	recordsPkg = "github.com/labwire/astm/records"
	decimalPkg = "github.com/shopspring/decimal"
)

var titleCase = cases.Title(language.English)

// Generator emits the Go bindings of one layout graph: a schema variable
// and a typed view per layout, a profile index, and the package doc.
type Generator struct {
	graph   *Graph
	target  string
	header  string
	workers int
}

// NewGenerator creates a generator for the graph. The graph's config must
// carry a target directory.
func NewGenerator(g *Graph) (*Generator, error) {
	if g == nil {
		return nil, NewConfigError("Graph", nil, "graph is required")
	}
	if g.Target == "" {
		return nil, NewConfigError("Target", nil, "target directory cannot be empty")
	}
	header := g.Header
	if header == "" {
		header = defaultHeader
	}
	return &Generator{
		graph:   g,
		target:  g.Target,
		header:  header,
		workers: g.workerCount(),
	}, nil
}

// Gen generates the typed bindings for the graph's profile.
func (g *Graph) Gen() error {
	return Generate(context.Background(), g)
}

// Generate emits all files of the graph under its configured target.
func Generate(ctx context.Context, graph *Graph) error {
	gen, err := NewGenerator(graph)
	if err != nil {
		return err
	}
	return gen.Generate(ctx)
}

// Generate emits the layout files concurrently, then the snapshot when the
// feature is enabled. Files are complete or absent; a failed render never
// leaves a partial file behind.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.target, 0o755); err != nil {
		return err
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, r := range g.graph.Nodes {
		r := r
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.genSchema(r)
			if err != nil {
				return err
			}
			return g.writeFile(f, r.Name, r.SchemaFileName()+".go")
		})
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.genRecord(r)
			if err != nil {
				return err
			}
			return g.writeFile(f, r.Name, r.FileName()+".go")
		})
	}
	errg.Go(func() error {
		return g.writeFile(g.genProfile(), "", "profile.go")
	})
	errg.Go(func() error {
		return NewTemplateWriter(g.graph, g.target).WriteDoc()
	})
	if err := errg.Wait(); err != nil {
		return err
	}
	// Dropped feature-flags clean their output from previous runs.
	for _, feat := range AllFeatures {
		if feat.cleanup == nil || g.graph.HasFeature(feat.Name) {
			continue
		}
		if err := feat.cleanup(g.graph.Config); err != nil {
			return NewGenerationError("", "", fmt.Sprintf("cleanup feature %q", feat.Name), err)
		}
	}
	if g.graph.HasFeature(FeatureSnapshot.Name) {
		return Snapshot(g.graph.Profile.Profile, g.target)
	}
	return nil
}

// newFile creates a Jennifer file with the configured header comment.
func (g *Generator) newFile() *jen.File {
	f := jen.NewFilePathName(g.graph.Package, g.graph.PkgName())
	f.HeaderComment(g.header)
	return f
}

func (g *Generator) writeFile(f *jen.File, layout, filename string) error {
	var buf strings.Builder
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(layout, filename, "render", err)
	}
	path := filepath.Join(g.target, filename)
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return NewGenerationError(layout, filename, "write", err)
	}
	return nil
}

// genSchema emits the layout's schema variable.
func (g *Generator) genSchema(r *Record) (*jen.File, error) {
	f := g.newFile()
	expr, err := g.schemaExpr(r)
	if err != nil {
		return nil, err
	}
	profile := g.graph.Profile.Name
	switch {
	case r.StandardBase && len(r.Declared) == 0:
		f.Commentf("%s is the standard %s layout used by the %s profile.", r.SchemaName(), r.Name, profile)
	case r.StandardBase:
		f.Commentf("%s is the %s layout of the %s profile, extending the standard %s layout.", r.SchemaName(), r.Name, profile, r.Extends)
	case r.Extends != "":
		f.Commentf("%s is the %s layout of the %s profile, extending its %s layout.", r.SchemaName(), r.Name, profile, r.Extends)
	default:
		f.Commentf("%s is the %s layout of the %s profile.", r.SchemaName(), r.Name, profile)
	}
	f.Var().Id(r.SchemaName()).Op("=").Add(expr)
	return f, nil
}

func (g *Generator) schemaExpr(r *Record) (jen.Code, error) {
	builders := make([]jen.Code, 0, len(r.Declared))
	for _, fd := range r.Declared {
		b, err := fieldExpr(&Field{Field: fd})
		if err != nil {
			return nil, NewGenerationError(r.Name, r.SchemaFileName()+".go", fmt.Sprintf("field %s", fd.Name), err)
		}
		builders = append(builders, b)
	}
	switch {
	case r.StandardBase && len(builders) == 0:
		return jen.Qual(recordsPkg, r.Extends), nil
	case r.StandardBase:
		return jen.Qual(recordsPkg, r.Extends).Dot("MustExtend").Call(schemaArgs(r.Name, builders)...), nil
	case r.Extends != "":
		return jen.Id(pascal(r.Extends) + "Schema").Dot("MustExtend").Call(schemaArgs(r.Name, builders)...), nil
	default:
		return jen.Qual(astmPkg, "MustSchema").Call(schemaArgs(r.Name, builders)...), nil
	}
}

// schemaArgs lays the layout name and one builder per line out as call
// arguments.
func schemaArgs(name string, builders []jen.Code) []jen.Code {
	args := make([]jen.Code, 0, len(builders)+2)
	args = append(args, jen.Lit(name))
	if len(builders) == 0 {
		return args
	}
	for _, b := range builders {
		args = append(args, jen.Line().Add(b))
	}
	return append(args, jen.Line())
}

// fieldExpr emits the builder chain declaring one field.
func fieldExpr(f *Field) (jen.Code, error) {
	switch f.Kind {
	case "text":
		expr := jen.Qual(fieldPkg, "Text").Call(jen.Lit(f.Name))
		if f.Required {
			expr.Dot("Required").Call()
		}
		if f.MaxLen > 0 {
			expr.Dot("MaxLen").Call(jen.Lit(f.MaxLen))
		}
		if f.Default != nil {
			expr.Dot("Default").Call(jen.Lit(f.Default))
		}
		return expr, nil
	case "constant":
		expr := jen.Qual(fieldPkg, "Constant").Call(jen.Lit(f.Name))
		if f.Default != nil {
			expr.Dot("Default").Call(jen.Lit(f.Default))
		}
		return expr, nil
	case "integer":
		expr := jen.Qual(fieldPkg, "Integer").Call(jen.Lit(f.Name))
		if f.Required {
			expr.Dot("Required").Call()
		}
		if f.Default != nil {
			expr.Dot("Default").Call(jen.Lit(f.Default))
		}
		return expr, nil
	case "decimal":
		expr := jen.Qual(fieldPkg, "Decimal").Call(jen.Lit(f.Name))
		if f.Required {
			expr.Dot("Required").Call()
		}
		if f.Default != nil {
			def, err := decimalExpr(f.Default)
			if err != nil {
				return nil, err
			}
			expr.Dot("Default").Call(def)
		}
		return expr, nil
	case "timestamp", "date":
		ctor := "Timestamp"
		layout := field.TimestampLayout
		if f.Kind == "date" {
			ctor = "Date"
			layout = field.DateLayout
		}
		if f.Layout != "" {
			layout = f.Layout
		}
		expr := jen.Qual(fieldPkg, ctor).Call(jen.Lit(f.Name))
		if f.Layout != "" {
			expr.Dot("Layout").Call(jen.Lit(f.Layout))
		}
		if f.Required {
			expr.Dot("Required").Call()
		}
		switch def := f.Default.(type) {
		case nil:
		case string:
			if def == "now" {
				expr.Dot("DefaultFunc").Call(jen.Qual("time", "Now"))
				break
			}
			t, err := time.Parse(layout, def)
			if err != nil {
				return nil, fmt.Errorf("default %q does not match layout %s", def, layout)
			}
			expr.Dot("Default").Call(timeExpr(t))
		default:
			return nil, fmt.Errorf("unsupported %s default %v", f.Kind, f.Default)
		}
		return expr, nil
	case "enum":
		expr := jen.Qual(fieldPkg, "Enum").Call(jen.Lit(f.Name))
		switch f.Of {
		case "":
		case "integer":
			expr.Dot("Of").Call(jen.Qual(fieldPkg, "Integer").Call(jen.Lit(f.Name)))
		case "decimal":
			expr.Dot("Of").Call(jen.Qual(fieldPkg, "Decimal").Call(jen.Lit(f.Name)))
		default:
			expr.Dot("Of").Call(jen.Qual(fieldPkg, "Text").Call(jen.Lit(f.Name)))
		}
		expr.Dot("Values").CallFunc(func(vg *jen.Group) {
			for _, v := range f.Values {
				vg.Lit(v)
			}
		})
		if f.Required {
			expr.Dot("Required").Call()
		}
		if f.Default != nil {
			expr.Dot("Default").Call(jen.Lit(f.Default))
		}
		return expr, nil
	case "component":
		return jen.Qual(fieldPkg, "Component").Call(jen.Lit(f.Name), jen.Id(pascal(f.Component)+"Schema")), nil
	case "repeated":
		return jen.Qual(fieldPkg, "Repeated").Call(jen.Lit(f.Name), jen.Id(pascal(f.Component)+"Schema")), nil
	case "notused":
		return jen.Qual(fieldPkg, "NotUsed").Call(jen.Lit(f.Name)), nil
	}
	return nil, fmt.Errorf("unknown field kind %q", f.Kind)
}

func decimalExpr(v any) (jen.Code, error) {
	switch n := v.(type) {
	case int:
		return jen.Qual(decimalPkg, "NewFromInt").Call(jen.Lit(n)), nil
	case float64:
		return jen.Qual(decimalPkg, "NewFromFloat").Call(jen.Lit(n)), nil
	case string:
		return jen.Qual(decimalPkg, "RequireFromString").Call(jen.Lit(n)), nil
	}
	return nil, fmt.Errorf("unsupported decimal default %v", v)
}

// timeExpr emits a time.Date call reproducing the parsed default.
func timeExpr(t time.Time) jen.Code {
	return jen.Qual("time", "Date").Call(
		jen.Lit(t.Year()), jen.Qual("time", t.Month().String()), jen.Lit(t.Day()),
		jen.Lit(t.Hour()), jen.Lit(t.Minute()), jen.Lit(t.Second()), jen.Lit(0),
		jen.Qual("time", "UTC"),
	)
}

// genRecord emits the layout's typed view: constructor, wrapper, and one
// accessor pair per used field.
func (g *Generator) genRecord(r *Record) (*jen.File, error) {
	f := g.newFile()
	name := r.StructName()
	rcv := r.Receiver()
	profile := g.graph.Profile.Name

	if g.graph.HasFeature(FeatureEnumValues.Name) {
		g.genEnumValues(f, r)
	}

	if r.Component {
		f.Commentf("%s is a typed view over one %s component group of the %s profile.", name, r.Name, profile)
	} else {
		f.Commentf("%s is a typed view over one %s record of the %s profile.", name, r.Name, profile)
	}
	f.Type().Id(name).Struct(
		jen.Id("rec").Op("*").Qual(astmPkg, "Record"),
	)

	f.Commentf("New%s builds a %s seeded with the layout defaults.", name, r.Name)
	f.Func().Id("New" + name).Params().Params(jen.Op("*").Id(name), jen.Error()).Block(
		jen.List(jen.Id("rec"), jen.Err()).Op(":=").Id(r.SchemaName()).Dot("New").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{jen.Id("rec"): jen.Id("rec")}), jen.Nil()),
	)

	f.Comment(fmt.Sprintf("Wrap%s wraps an existing record in the typed view. It fails when the\nrecord was built from a different layout.", name))
	f.Func().Id("Wrap" + name).Params(
		jen.Id("rec").Op("*").Qual(astmPkg, "Record"),
	).Params(jen.Op("*").Id(name), jen.Error()).Block(
		jen.If(jen.Id("rec").Op("==").Nil().Op("||").Id("rec").Dot("Schema").Call().Op("!=").Id(r.SchemaName())).Block(
			jen.Return(jen.Nil(), jen.Qual("errors", "New").Call(jen.Lit(g.graph.PkgName()+": record is not a "+r.Name))),
		),
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{jen.Id("rec"): jen.Id("rec")}), jen.Nil()),
	)

	f.Comment("Record returns the underlying record.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id("Record").Params().Op("*").Qual(astmPkg, "Record").Block(
		jen.Return(jen.Id(rcv).Dot("rec")),
	)

	f.Comment("ToWire lowers the record into its positional wire values.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id("ToWire").Params().Index().Any().Block(
		jen.Return(jen.Id(rcv).Dot("rec").Dot("ToWire").Call()),
	)

	f.Comment("String renders the record with its decoded values.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.Id(rcv).Dot("rec").Dot("String").Call()),
	)

	for _, fld := range r.Fields {
		switch {
		case fld.IsNotUsed():
		case fld.IsComponent():
			g.genComponentAccessors(f, r, fld)
		case fld.IsRepeated():
			g.genRepeatedAccessors(f, r, fld)
		default:
			g.genScalarAccessors(f, r, fld)
		}
	}
	return f, nil
}

// genEnumValues emits a constant per member of each string-valued enum.
func (g *Generator) genEnumValues(f *jen.File, r *Record) {
	for _, fld := range r.Fields {
		if !fld.StringEnum() {
			continue
		}
		prefix := r.StructName() + fld.GetterName()
		seen := make(map[string]struct{}, len(fld.Values))
		f.Commentf("%s values accepted on the wire.", prefix)
		f.Const().DefsFunc(func(cg *jen.Group) {
			for _, v := range fld.Values {
				member := v.(string)
				constName := enumConstName(prefix, member)
				if constName == prefix {
					continue
				}
				if _, ok := seen[constName]; ok {
					continue
				}
				seen[constName] = struct{}{}
				cg.Id(constName).Op("=").Lit(member)
			}
		})
	}
}

// enumConstName derives an identifier for an enum member: title-cased with
// non-identifier runes dropped.
func enumConstName(prefix, member string) string {
	word := titleCase.String(strings.ToLower(member))
	var b strings.Builder
	b.WriteString(prefix)
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *Generator) genScalarAccessors(f *jen.File, r *Record, fld *Field) {
	name := r.StructName()
	rcv := r.Receiver()
	typ := goType(fld)

	f.Commentf("%s returns the decoded value of the %s field.", fld.GetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.GetterName()).Params().Params(typ, jen.Error()).Block(
		jen.Return(jen.Qual(astmPkg, "Value").Index(goType(fld)).Call(jen.Id(rcv).Dot("rec"), jen.Lit(fld.Name))),
	)

	// Constants bind once through the schema; no setter is emitted.
	if fld.IsConstant() {
		return
	}

	f.Commentf("%s assigns the %s field.", fld.SetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.SetterName()).Params(
		jen.Id("v").Add(goType(fld)),
	).Error().Block(
		jen.Return(jen.Id(rcv).Dot("rec").Dot("Set").Call(jen.Lit(fld.Name), jen.Id("v"))),
	)
}

func (g *Generator) genComponentAccessors(f *jen.File, r *Record, fld *Field) {
	name := r.StructName()
	rcv := r.Receiver()
	comp := pascal(fld.Component)

	f.Commentf("%s returns the typed view over the %s component group.", fld.GetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.GetterName()).Params().Params(jen.Op("*").Id(comp), jen.Error()).Block(
		jen.List(jen.Id("rec"), jen.Err()).Op(":=").Qual(astmPkg, "Value").Index(jen.Op("*").Qual(astmPkg, "Record")).Call(jen.Id(rcv).Dot("rec"), jen.Lit(fld.Name)),
		jen.If(jen.Err().Op("!=").Nil().Op("||").Id("rec").Op("==").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Op("&").Id(comp).Values(jen.Dict{jen.Id("rec"): jen.Id("rec")}), jen.Nil()),
	)

	f.Commentf("%s assigns the %s component group.", fld.SetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.SetterName()).Params(
		jen.Id("v").Op("*").Id(comp),
	).Error().Block(
		jen.If(jen.Id("v").Op("==").Nil()).Block(
			jen.Return(jen.Id(rcv).Dot("rec").Dot("Set").Call(jen.Lit(fld.Name), jen.Nil())),
		),
		jen.Return(jen.Id(rcv).Dot("rec").Dot("Set").Call(jen.Lit(fld.Name), jen.Id("v").Dot("Record").Call())),
	)
}

func (g *Generator) genRepeatedAccessors(f *jen.File, r *Record, fld *Field) {
	name := r.StructName()
	rcv := r.Receiver()
	comp := pascal(fld.Component)

	f.Commentf("%s returns the live view over the %s element sequence.", fld.GetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.GetterName()).Params().Params(jen.Op("*").Qual(astmPkg, "ComponentList"), jen.Error()).Block(
		jen.Return(jen.Qual(astmPkg, "Value").Index(jen.Op("*").Qual(astmPkg, "ComponentList")).Call(jen.Id(rcv).Dot("rec"), jen.Lit(fld.Name))),
	)

	f.Commentf("%s replaces the %s element sequence.", fld.SetterName(), fld.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(name)).Id(fld.SetterName()).Params(
		jen.Id("items").Op("...").Op("*").Id(comp),
	).Error().Block(
		jen.Id("elems").Op(":=").Make(jen.Index().Any(), jen.Len(jen.Id("items"))),
		jen.For(jen.List(jen.Id("i"), jen.Id("item")).Op(":=").Range().Id("items")).Block(
			jen.Id("elems").Index(jen.Id("i")).Op("=").Id("item").Dot("Record").Call(),
		),
		jen.Return(jen.Id(rcv).Dot("rec").Dot("Set").Call(jen.Lit(fld.Name), jen.Id("elems"))),
	)
}

// goType maps a field kind to the Go type its accessors speak.
func goType(f *Field) jen.Code {
	switch f.Kind {
	case "integer":
		return jen.Int()
	case "decimal":
		return jen.Qual(decimalPkg, "Decimal")
	case "timestamp", "date":
		return jen.Qual("time", "Time")
	case "enum":
		switch f.Of {
		case "integer":
			return jen.Int()
		case "decimal":
			return jen.Qual(decimalPkg, "Decimal")
		default:
			return jen.String()
		}
	default:
		return jen.String()
	}
}

// genProfile emits the profile index: name and version constants, the
// layout schema list, and the type code lookup.
func (g *Generator) genProfile() *jen.File {
	f := g.newFile()
	profile := g.graph.Profile

	f.Comment("ProfileName is the instrument profile these bindings were generated from.")
	f.Const().Id("ProfileName").Op("=").Lit(profile.Name)
	if profile.Version != "" {
		f.Comment("ProfileVersion is the descriptor version the bindings reflect.")
		f.Const().Id("ProfileVersion").Op("=").Lit(profile.Version)
	}

	f.Comment("Schemas lists every layout of the profile: components first, then\nrecords in declaration order.")
	f.Var().Id("Schemas").Op("=").Index().Op("*").Qual(astmPkg, "Schema").ValuesFunc(func(vg *jen.Group) {
		for _, r := range g.graph.Nodes {
			vg.Line().Id(r.SchemaName())
		}
		vg.Line()
	})

	f.Comment("byType indexes the record layouts by their wire type code.")
	f.Var().Id("byType").Op("=").Map(jen.String()).Op("*").Qual(astmPkg, "Schema").Values(jen.DictFunc(func(d jen.Dict) {
		for _, r := range g.graph.RecordNodes() {
			if code := r.TypeCode(); code != "" {
				d[jen.Lit(code)] = jen.Id(r.SchemaName())
			}
		}
	}))

	f.Comment("ByType returns the record schema registered for the given type code.")
	f.Func().Id("ByType").Params(jen.Id("code").String()).Params(jen.Op("*").Qual(astmPkg, "Schema"), jen.Bool()).Block(
		jen.List(jen.Id("s"), jen.Id("ok")).Op(":=").Id("byType").Index(jen.Id("code")),
		jen.Return(jen.Id("s"), jen.Id("ok")),
	)
	return f
}
