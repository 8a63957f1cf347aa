// Package field provides fluent builders for declaring schema fields.
//
// Builders mutate and return themselves, so declarations chain; the
// result implements astm.Field and is handed to astm.NewSchema:
//
//	astm.MustSchema("Patient",
//		field.Constant("type").Default("P"),
//		field.Integer("seq").Required(),
//		field.Component("name", PatientName),
//		field.Date("birthdate"),
//		field.Enum("sex").Values("M", "F", "U").Default("U"),
//	)
//
// # Field Kinds
//
//	// Text, optionally bounded
//	field.Text("sample_id").Required().MaxLen(12)
//
//	// Constants bind once; a declared default binds at definition
//	field.Constant("type").Default("H")
//
//	// Numeric kinds store canonical wire text
//	field.Integer("seq").Default(1)
//	field.Decimal("value")
//
//	// Temporal kinds parse and render a fixed layout
//	field.Timestamp("created_at")
//	field.Date("birthdate").Layout("20060102")
//
//	// Enumerated sets delegate coercion to an inner field
//	field.Enum("priority").Values("S", "R").Default("S")
//	field.Enum("abnormal_flag").Of(field.Integer("abnormal_flag")).Values(0, 1, 2, 3)
//
//	// Nested structure
//	field.Component("sender", Sender)
//	field.Repeated("test", Test)
//
//	// Declared but ignored positions
//	field.NotUsed("reserved")
//
// # Definition Errors
//
// Builders never panic. An invalid declaration records its first error,
// and astm.NewSchema reports it when the schema is assembled:
//
//	_, err := astm.NewSchema("Result",
//		field.Enum("status").Values(), // no members: err
//	)
package field
