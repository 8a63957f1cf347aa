package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"
)

// docTemplate renders the package documentation file. It is the one file
// written from a template rather than built expression by expression,
// since it is comment-only prose.
var docTemplate = template.Must(template.New("doc").Parse(`// {{ .Header }}

// Package {{ .PkgName }} holds the generated bindings of the {{ .Profile.Name }} profile.
//
// The package declares one schema and one typed view per layout:
{{- range .Nodes }}
//   - {{ .StructName }}{{ if .Component }} (component group){{ end }}
{{- end }}
package {{ .PkgName }}
`))

// TemplateWriter renders the template-backed files of a graph and formats
// them with goimports before writing.
type TemplateWriter struct {
	graph  *Graph
	outDir string
}

// NewTemplateWriter creates a writer emitting under outDir.
func NewTemplateWriter(g *Graph, outDir string) *TemplateWriter {
	return &TemplateWriter{graph: g, outDir: outDir}
}

// WriteDoc renders and writes the package doc.go file.
func (w *TemplateWriter) WriteDoc() error {
	header := w.graph.Header
	if header == "" {
		header = defaultHeader
	}
	data := struct {
		*Graph
		Header string
	}{Graph: w.graph, Header: header}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return NewGenerationError("", "doc.go", "execute template", err)
	}
	path := filepath.Join(w.outDir, "doc.go")
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return NewGenerationError("", "doc.go", "format", err)
	}
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError("", "doc.go", "create directory", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("", "doc.go", "write", err)
	}
	return nil
}
