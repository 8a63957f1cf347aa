// Package astm implements a typed schema layer for ASTM E1394
// laboratory-instrument records: flat, order-sensitive sequences of text
// fields, nested components, and repeated component groups.
//
// A Schema is an immutable, ordered collection of named fields. Each field
// carries a bidirectional coercion pair: Encode turns a typed value into
// its canonical wire-text form on assignment, Decode turns stored wire
// text back into a typed value on every read. A Record is an instance of
// a Schema holding the raw wire values; nothing is cached between reads.
//
// Field implementations live in the field subpackage and are attached at
// schema definition:
//
//	order := astm.MustSchema("Order",
//		field.Constant("type").Default("O"),
//		field.Integer("seq").Default(1),
//		field.Text("sample_id").Required(),
//		field.Timestamp("created_at"),
//	)
//	rec, err := order.New(astm.Named{"sample_id": "12120001"})
//
// Records lower to nested wire sequences with ToWire; the codec package
// renders those sequences to frame bytes and back.
package astm

// A Kind identifies the coercion category of a field. The kind decides
// which Go values an assignment accepts and what type a read returns.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindText
	KindConstant
	KindInteger
	KindDecimal
	KindTimestamp
	KindDate
	KindEnum
	KindComponent
	KindRepeated
	KindNotUsed
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindText:      "text",
	KindConstant:  "constant",
	KindInteger:   "integer",
	KindDecimal:   "decimal",
	KindTimestamp: "timestamp",
	KindDate:      "date",
	KindEnum:      "enum",
	KindComponent: "component",
	KindRepeated:  "repeated",
	KindNotUsed:   "notused",
}

// String returns the lower-cased name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports if the kind is one of the declared coercion categories.
func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < len(kindNames)
}

// Field is the building block of a Schema: a named, ordered slot with a
// coercion pair. Implementations are fluent builders from the field
// subpackage; definition errors are deferred and surface through Err at
// schema construction.
//
// Encode converts an assigned value into the raw form held by the record
// (canonical wire text for scalar kinds). Decode converts the raw form
// back into the typed value returned to callers. Both report coercion
// failures instead of panicking.
type Field interface {
	// Name returns the field name used for named access.
	Name() string

	// Kind returns the coercion category.
	Kind() Kind

	// Optional reports if the field tolerates an explicit nil assignment.
	Optional() bool

	// HasDefault reports if the field resolves a value for absent input.
	HasDefault() bool

	// DefaultValue returns the resolved default value, or nil if none.
	// Factory defaults produce a fresh value on every call. The name
	// leaves Default free for the builders' fluent setters.
	DefaultValue() any

	// Encode coerces an assigned value into its raw stored form.
	Encode(v any) (any, error)

	// Decode coerces a raw stored form back into the typed value.
	Decode(raw any) (any, error)

	// Err returns the first error recorded during field definition.
	Err() error
}

// Named carries by-name construction arguments to Schema.New. Multiple
// Named arguments merge, later entries winning; a Named entry overrides a
// positional argument bound to the same field.
type Named map[string]any
