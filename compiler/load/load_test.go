package load_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labwire/astm"
	"github.com/labwire/astm/compiler/load"
	"github.com/labwire/astm/records"
)

func TestParseFile(t *testing.T) {
	p, err := load.ParseFile("testdata/cobalt.yaml")
	require.NoError(t, err)

	assert.Equal(t, "cobalt", p.Name)
	assert.Equal(t, "github.com/labwire/astm/examples/cobalt", p.Package)
	assert.Equal(t, "2.1", p.Version)
	require.Len(t, p.Components, 1)
	require.Len(t, p.Records, 3)
	assert.Equal(t, "TestCode", p.Components[0].Name)
	assert.Equal(t, "Header", p.Records[0].Extends)
}

func TestParseErrors(t *testing.T) {
	t.Run("MalformedDescriptor", func(t *testing.T) {
		_, err := load.Parse([]byte("records: ]["))
		require.Error(t, err)
		assert.True(t, load.IsProfileError(err))
		assert.True(t, errors.Is(err, load.ErrInvalidProfile))
		assert.Contains(t, err.Error(), "malformed descriptor")
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := load.Parse([]byte("version: \"1\"\n"))
		require.Error(t, err)
		assert.True(t, load.IsProfileError(err))
		assert.Contains(t, err.Error(), "profile name is required")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := load.ParseFile("testdata/nope.yaml")
		require.Error(t, err)
		assert.False(t, load.IsProfileError(err))
	})
}

func TestBuild(t *testing.T) {
	p, err := load.ParseFile("testdata/cobalt.yaml")
	require.NoError(t, err)
	built, err := p.Build()
	require.NoError(t, err)

	t.Run("Layouts", func(t *testing.T) {
		require.Len(t, built.Records, 3)
		assert.Equal(t, "Header", built.Records[0].Name)
		assert.Equal(t, "Result", built.Records[1].Name)
		assert.Equal(t, "Scan", built.Records[2].Name)

		// TestCode is declared, Sender is pulled in by the standard
		// Header base.
		require.Len(t, built.Components, 2)
		assert.Equal(t, "TestCode", built.Components[0].Name)
		assert.Equal(t, "Sender", built.Components[1].Name)
	})

	t.Run("Lookup", func(t *testing.T) {
		tc, ok := built.Lookup("TestCode")
		require.True(t, ok)
		assert.True(t, tc.Component)
		assert.False(t, tc.StandardBase)

		sender, ok := built.Lookup("Sender")
		require.True(t, ok)
		assert.True(t, sender.Component)
		assert.True(t, sender.StandardBase)
		assert.Equal(t, "Sender", sender.Extends)
		assert.Same(t, records.Sender, sender.Schema)

		hdr, ok := built.Lookup("Header")
		require.True(t, ok)
		assert.False(t, hdr.Component)

		_, ok = built.Lookup("Missing")
		assert.False(t, ok)
	})

	t.Run("StandardExtension", func(t *testing.T) {
		hdr, ok := built.Lookup("Header")
		require.True(t, ok)
		assert.True(t, hdr.StandardBase)
		assert.Equal(t, "Header", hdr.Extends)
		require.Len(t, hdr.Declared, 1)
		require.Len(t, hdr.Fields, records.Header.Len())

		// The declared constant replaces the inherited text field in
		// place.
		assert.Equal(t, records.Header.Len(), hdr.Schema.Len())
		rec := hdr.Schema.MustNew()
		version, err := rec.Get("version")
		require.NoError(t, err)
		assert.Equal(t, "LIS2-A2", version)
		processing, err := rec.Get("processing_id")
		require.NoError(t, err)
		assert.Equal(t, "P", processing)
	})

	t.Run("MergedDescriptors", func(t *testing.T) {
		hdr, ok := built.Lookup("Header")
		require.True(t, ok)
		byName := make(map[string]*load.Field, len(hdr.Fields))
		for _, fd := range hdr.Fields {
			byName[fd.Name] = fd
		}
		require.Contains(t, byName, "version")
		assert.Equal(t, "constant", byName["version"].Kind)
		assert.Equal(t, "LIS2-A2", byName["version"].Default)
		require.Contains(t, byName, "sender")
		assert.Equal(t, "component", byName["sender"].Kind)
		assert.Equal(t, "Sender", byName["sender"].Component)
		require.Contains(t, byName, "processing_id")
		assert.Equal(t, "enum", byName["processing_id"].Kind)
		assert.Equal(t, []any{"P", "D", "Q", "T"}, byName["processing_id"].Values)
	})

	t.Run("LocalComponent", func(t *testing.T) {
		res, ok := built.Lookup("Result")
		require.True(t, ok)
		rec := res.Schema.MustNew()
		require.NoError(t, rec.Set("test", astm.Named{"code": "GLU"}))
		sub, err := astm.Value[*astm.Record](rec, "test")
		require.NoError(t, err)
		code, err := sub.Get("code")
		require.NoError(t, err)
		assert.Equal(t, "GLU", code)

		require.NoError(t, rec.Set("value", "12.5"))
		value, err := astm.Value[decimal.Decimal](rec, "value")
		require.NoError(t, err)
		assert.True(t, value.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("StandaloneRecord", func(t *testing.T) {
		scan, ok := built.Lookup("Scan")
		require.True(t, ok)
		assert.False(t, scan.StandardBase)
		assert.Empty(t, scan.Extends)
		require.Equal(t, 8, scan.Schema.Len())

		rec := scan.Schema.MustNew()
		typ, err := rec.Get("type")
		require.NoError(t, err)
		assert.Equal(t, "M", typ)
		seq, err := rec.Get("seq")
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
		rate, err := astm.Value[decimal.Decimal](rec, "rate")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.5")))
		mode, err := rec.Get("mode")
		require.NoError(t, err)
		assert.Equal(t, 0, mode)
		measured, err := astm.Value[time.Time](rec, "measured")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), measured, time.Minute)

		tests, err := astm.Value[*astm.ComponentList](rec, "tests")
		require.NoError(t, err)
		assert.Equal(t, 0, tests.Len())
		require.NoError(t, tests.Append(astm.Named{"code": "NA"}))
		assert.Equal(t, 1, tests.Len())
	})
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    string
	}{
		{
			name: "UnknownKind",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: blob
`,
			want: `unknown field kind "blob"`,
		},
		{
			name: "UnknownBase",
			profile: `
name: bad
records:
  - name: R
    extends: Missing
`,
			want: `unknown base layout "Missing"`,
		},
		{
			name: "UnknownComponent",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: component
        component: Missing
`,
			want: `unknown component layout "Missing"`,
		},
		{
			name: "ComponentWithoutLayout",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: repeated
`,
			want: `kind "repeated" requires a component layout`,
		},
		{
			name: "EnumWithoutValues",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: enum
`,
			want: "enum declares no values",
		},
		{
			name: "EnumUnknownInner",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: enum
        of: boolean
        values: [Y, N]
`,
			want: `unsupported enum member kind "boolean"`,
		},
		{
			name: "ConstantTakesNoRequired",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: constant
        required: true
`,
			want: `kind "constant" does not take required`,
		},
		{
			name: "TextTakesNoLayout",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: text
        layout: "20060102"
`,
			want: `kind "text" does not take layout`,
		},
		{
			name: "TextDefaultType",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: text
        default: 5
`,
			want: "text default must be a string, got int",
		},
		{
			name: "IntegerDefaultType",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: integer
        default: x
`,
			want: "integer default must be an integer, got string",
		},
		{
			name: "DecimalDefaultType",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: decimal
        default: true
`,
			want: "decimal default must be numeric, got bool",
		},
		{
			name: "TimestampDefaultLayout",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: timestamp
        default: later
`,
			want: `default "later" does not match layout 20060102150405`,
		},
		{
			name: "DuplicateLayout",
			profile: `
name: bad
records:
  - name: R
    fields:
      - name: a
        kind: text
  - name: R
    fields:
      - name: a
        kind: text
`,
			want: "layout is already defined",
		},
		{
			name: "MissingLayoutName",
			profile: `
name: bad
records:
  - fields:
      - name: a
        kind: text
`,
			want: "layout name is required",
		},
		{
			name: "MissingFieldName",
			profile: `
name: bad
records:
  - name: R
    fields:
      - kind: text
`,
			want: "field name is required",
		},
		{
			name: "NoRecords",
			profile: `
name: bad
components:
  - name: C
    fields:
      - name: a
        kind: text
`,
			want: "profile declares no records",
		},
		{
			name: "ShadowedStandardLayout",
			profile: `
name: bad
components:
  - name: Sender
    fields:
      - name: x
        kind: text
records:
  - name: Header
    extends: Header
`,
			want: `component "Sender" shadows a standard layout`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := load.Parse([]byte(tt.profile))
			require.NoError(t, err)
			_, err = p.Build()
			require.Error(t, err)
			assert.True(t, load.IsProfileError(err))
			assert.True(t, errors.Is(err, load.ErrInvalidProfile))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "astm: profile error")
		})
	}
}

func TestProfileError(t *testing.T) {
	t.Run("Message", func(t *testing.T) {
		cause := errors.New("boom")
		err := load.NewProfileError("cobalt", "Header", "version", "bad field", cause)
		assert.Contains(t, err.Error(), "astm: profile error")
		assert.Contains(t, err.Error(), "in profile cobalt")
		assert.Contains(t, err.Error(), "on record Header")
		assert.Contains(t, err.Error(), "field version")
		assert.Contains(t, err.Error(), "bad field")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("root cause")
		err := load.NewProfileError("", "", "", "", cause)
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("IsHelper", func(t *testing.T) {
		err := load.NewProfileError("cobalt", "", "", "x", nil)
		assert.True(t, load.IsProfileError(err))
		assert.False(t, load.IsProfileError(errors.New("other")))
	})
}

func TestProfileSnapshot(t *testing.T) {
	p, err := load.ParseFile("testdata/cobalt.yaml")
	require.NoError(t, err)

	snap, err := p.MarshalBinary()
	require.NoError(t, err)
	require.NotEmpty(t, snap)

	// Same descriptor, same bytes.
	again, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, snap, again)

	var back load.Profile
	require.NoError(t, back.UnmarshalBinary(snap))
	assert.Equal(t, p.Name, back.Name)
	assert.Equal(t, p.Version, back.Version)
	require.Len(t, back.Records, len(p.Records))
	assert.Equal(t, p.Records[0].Name, back.Records[0].Name)
	assert.Equal(t, p.Records[0].Extends, back.Records[0].Extends)

	// Any descriptor change shows up in the snapshot.
	p.Records[0].Fields[0].Default = "LIS2-A3"
	changed, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.NotEqual(t, snap, changed)
}
