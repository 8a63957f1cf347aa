// Package omnilab declares the record layouts of the OmniLab LabOnline
// middleware link. Request layouts describe host to middleware traffic,
// Response layouts the reverse direction; both extend the standard
// layouts of the records package.
package omnilab

import (
	"github.com/labwire/astm"
	"github.com/labwire/astm/field"
	"github.com/labwire/astm/records"
)

// Sender identifies the transmitting side of the link.
var Sender = astm.MustSchema("Sender",
	field.Text("name"),
	field.Text("version"),
)

// PatientName is the name component of a patient record.
var PatientName = astm.MustSchema("PatientName",
	field.Text("last").MaxLen(50),
	field.Text("first").MaxLen(50),
)

// PatientAge carries an age value with its unit.
var PatientAge = astm.MustSchema("PatientAge",
	field.Integer("value"),
	field.Enum("unit").Values("years", "months", "days"),
)

// Test is the universal test id component: the first three positions of
// the standard id stay empty, the assay is addressed by its local code.
var Test = astm.MustSchema("Test",
	field.NotUsed("universal_id"),
	field.NotUsed("universal_name"),
	field.NotUsed("universal_type"),
	field.Text("assay_code").Required().MaxLen(20),
	field.Text("assay_name").MaxLen(8),
)

// TestEx extends the universal test id with reagent and control details
// reported by the analyzer.
var TestEx = astm.MustSchema("TestEx",
	field.NotUsed("universal_id"),
	field.NotUsed("universal_name"),
	field.NotUsed("universal_type"),
	field.Text("assay_code").Required().MaxLen(20),
	field.Text("assay_name").MaxLen(8),
	field.Text("dilution").MaxLen(10),
	field.Text("status").MaxLen(1),
	field.Text("reagent_lot").MaxLen(15),
	field.Text("reagent_number").MaxLen(5),
	field.Text("control_lot").MaxLen(25),
	field.Enum("type").Values("CE", "TX"),
)

// Operator identifies who validated a result, by middleware and analyzer
// operator codes.
var Operator = astm.MustSchema("Operator",
	field.Text("code_on_labonline").MaxLen(12),
	field.Text("code_on_analyzer").MaxLen(20),
)

// CompletionDate pairs the middleware and analyzer completion times of a
// result.
var CompletionDate = astm.MustSchema("CompletionDate",
	field.Timestamp("labonline"),
	field.Timestamp("analyzer"),
)

// CommentText is a coded comment with free-text qualifiers.
var CommentText = astm.MustSchema("CommentText",
	field.Enum("code").Values(
		"PC", "RC", "SC", "TC", // host to middleware
		"CK", "SE", "CL", "TA", "SS", "HQ", "AL", "PT", // middleware to host
	),
	field.Text("value"),
	field.Text("field_1"),
	field.Text("field_2"),
	field.Text("field_3"),
	field.Text("field_4"),
	field.Text("field_5"),
)

// Instrument locates a sample on the analyzer.
var Instrument = astm.MustSchema("Instrument",
	field.NotUsed("reserved"),
	field.Text("rack").MaxLen(5),
	field.Text("position").MaxLen(3),
)

var headerCommon = records.Header.MustExtend("Header",
	field.Component("sender", Sender),
	field.Constant("processing_id").Default("P"),
	field.Constant("version").Default("E 1394-97"),
)

// Header layouts. Both directions carry the same fields.
var (
	HeaderRequest  = headerCommon.MustExtend("HeaderRequest")
	HeaderResponse = headerCommon.MustExtend("HeaderResponse")
)

var patientCommon = records.Patient.MustExtend("Patient",
	field.Text("laboratory_id").Required().MaxLen(16),
	field.Text("location").MaxLen(20),
	field.Component("name", PatientName),
	field.Text("practice_id").Required().MaxLen(12),
	field.Enum("sex").Values("M", "F", "I"),
	field.Enum("special_2").Values("0", "1"),
)

// Patient layouts. Requests may carry the referring physician and the
// patient age, responses never do.
var (
	PatientRequest = patientCommon.MustExtend("PatientRequest",
		field.Text("physician_id").MaxLen(35),
		field.Component("special_1", PatientAge),
	)
	PatientResponse = patientCommon.MustExtend("PatientResponse")
)

var orderCommon = records.Order.MustExtend("Order",
	field.Text("laboratory_field_2").MaxLen(12),
	field.Enum("priority").Values("S", "R").Default("S"),
	field.Text("sample_id").Required().MaxLen(12),
	field.Text("specimen_descriptor").MaxLen(20),
	field.Text("user_field_1").MaxLen(20),
	field.Text("user_field_2").MaxLen(1024),
)

// Order layouts. Requests order a repeated group of tests and must be
// stamped; responses acknowledge a single test and may leave the creation
// time empty.
var (
	OrderRequest = orderCommon.MustExtend("OrderRequest",
		field.Enum("action_code").Values("C", "A", "N", "R").Default("N"),
		field.Timestamp("created_at").Required(),
		field.Text("laboratory").MaxLen(20),
		field.Text("laboratory_field_1").MaxLen(20),
		field.Constant("report_type").Default("O"),
		field.Repeated("test", Test),
	)
	OrderResponse = orderCommon.MustExtend("OrderResponse",
		field.Enum("action_code").Values("Q"),
		field.Component("instrument_id", Instrument),
		field.Constant("report_type").Default("F"),
		field.Component("test", Test),
	)
)

var resultCommon = records.Result.MustExtend("Result",
	field.Timestamp("completed_at").Required(),
	field.Text("value").Required().MaxLen(20),
)

// Result layouts. Responses replace the completion time with the
// middleware/analyzer pair and report validation details.
var (
	ResultRequest = resultCommon.MustExtend("ResultRequest",
		field.Component("test", Test),
	)
	ResultResponse = resultCommon.MustExtend("ResultResponse",
		field.Enum("is_abnormal").Of(field.Integer("is_abnormal")).Values(
			0, 1, 2, 3,
			10, 11, 12, 13,
			1000, 1001, 1002, 1003,
		),
		field.Enum("abnormality_nature").Values("N", "L", "H", "LL", "HH"),
		field.Component("completed_at", CompletionDate),
		field.Text("instrument").MaxLen(16),
		field.Component("operator", Operator),
		field.Text("reference_ranges"),
		field.Timestamp("started_at").Required(),
		field.Enum("status").Values("F", "R"),
		field.Component("test", TestEx),
		field.Text("units").MaxLen(20),
	)
)

var commentCommon = records.Comment.MustExtend("Comment",
	field.Enum("source").Values("L", "I").Default("L"),
	field.Component("text", CommentText),
	field.Constant("ctype").Default("G"),
)

// Comment layouts. Both directions carry the same fields.
var (
	CommentRequest  = commentCommon.MustExtend("CommentRequest")
	CommentResponse = commentCommon.MustExtend("CommentResponse")
)

// Terminator layouts. Both directions carry the standard layout.
var (
	TerminatorRequest  = records.Terminator.MustExtend("TerminatorRequest")
	TerminatorResponse = records.Terminator.MustExtend("TerminatorResponse")
)
