// Package records declares the standard ASTM E1394 record layouts:
// header, patient, order, result, comment and terminator, plus the common
// component layouts headers and patient records embed.
//
// The layouts are the interchange baseline. Instrument profiles extend
// them with the fields a concrete analyzer fills in, see the omnilab
// package for a complete example.
package records

import (
	"time"

	"github.com/labwire/astm"
	"github.com/labwire/astm/field"
)

// Sender identifies the sending party of a message: instrument or host
// name, software version and device serial.
var Sender = astm.MustSchema("Sender",
	field.Text("name"),
	field.Text("version"),
	field.Text("serial"),
)

// PatientName is a person name split into its wire components.
var PatientName = astm.MustSchema("PatientName",
	field.Text("last"),
	field.Text("first"),
	field.Text("middle"),
)

// Header opens every message. It declares the delimiters, names the
// sender and stamps the transmission time.
var Header = astm.MustSchema("Header",
	field.Constant("type").Default("H"),
	field.Constant("delimiter").Default(`\^&`),
	field.NotUsed("message_id"),
	field.NotUsed("password"),
	field.Component("sender", Sender),
	field.NotUsed("address"),
	field.NotUsed("reserved"),
	field.NotUsed("phone"),
	field.NotUsed("chars"),
	field.NotUsed("receiver"),
	field.NotUsed("comments"),
	field.Enum("processing_id").Values("P", "D", "Q", "T").Default("P"),
	field.Text("version"),
	field.Timestamp("timestamp").DefaultFunc(time.Now),
)

// Patient carries the subject of the following orders. The sequence
// number is mandatory, instruments reject unnumbered patient records.
var Patient = astm.MustSchema("Patient",
	field.Constant("type").Default("P"),
	field.Integer("seq").Required(),
	field.Text("practice_id"),
	field.NotUsed("laboratory_id"),
	field.NotUsed("id"),
	field.Component("name", PatientName),
	field.NotUsed("maiden_name"),
	field.Date("birthdate"),
	field.Enum("sex").Values("M", "F", "U").Default("U"),
	field.NotUsed("race"),
	field.NotUsed("address"),
	field.NotUsed("reserved"),
	field.NotUsed("phone"),
	field.NotUsed("physician_id"),
	field.NotUsed("special_1"),
	field.NotUsed("special_2"),
	field.NotUsed("height"),
	field.NotUsed("weight"),
	field.NotUsed("diagnosis"),
	field.NotUsed("medication"),
	field.NotUsed("diet"),
	field.NotUsed("practice_field_1"),
	field.NotUsed("practice_field_2"),
	field.NotUsed("admission_date"),
	field.NotUsed("admission_status"),
	field.NotUsed("location"),
	field.NotUsed("diagnostic_code_nature"),
	field.NotUsed("diagnostic_code"),
	field.NotUsed("religion"),
	field.NotUsed("martial_status"),
	field.NotUsed("isolation_status"),
	field.NotUsed("language"),
	field.NotUsed("hospital_service"),
	field.NotUsed("hospital_institution"),
	field.NotUsed("dosage_category"),
)

// Order requests tests for a sample.
var Order = astm.MustSchema("Order",
	field.Constant("type").Default("O"),
	field.Integer("seq").Default(1),
	field.Text("sample_id"),
	field.NotUsed("instrument_id"),
	field.NotUsed("test"),
	field.NotUsed("priority"),
	field.Timestamp("created_at"),
	field.Timestamp("sampled_at"),
	field.NotUsed("collected_at"),
	field.NotUsed("volume"),
	field.NotUsed("collector"),
	field.NotUsed("action_code"),
	field.NotUsed("danger_code"),
	field.NotUsed("clinical_info"),
	field.Timestamp("delivered_at"),
	field.NotUsed("specimen_descriptor"),
	field.NotUsed("physician"),
	field.NotUsed("physician_phone"),
	field.NotUsed("user_field_1"),
	field.NotUsed("user_field_2"),
	field.NotUsed("laboratory_field_1"),
	field.NotUsed("laboratory_field_2"),
	field.Timestamp("modified_at"),
	field.NotUsed("instrument_charge"),
	field.NotUsed("instrument_section"),
	field.NotUsed("report_type"),
	field.NotUsed("reserved"),
	field.NotUsed("location_ward"),
	field.NotUsed("infection_flag"),
	field.NotUsed("specimen_service"),
	field.NotUsed("laboratory"),
)

// Result reports one measured value of an ordered test.
var Result = astm.MustSchema("Result",
	field.Constant("type").Default("R"),
	field.Integer("seq").Default(1),
	field.NotUsed("test"),
	field.NotUsed("value"),
	field.NotUsed("units"),
	field.NotUsed("reference_ranges"),
	field.NotUsed("is_abnormal"),
	field.NotUsed("abnormality_nature"),
	field.NotUsed("status"),
	field.NotUsed("normatives_changed_at"),
	field.NotUsed("operator"),
	field.NotUsed("started_at"),
	field.NotUsed("completed_at"),
	field.NotUsed("instrument"),
)

// Comment annotates the preceding record.
var Comment = astm.MustSchema("Comment",
	field.Constant("type").Default("C"),
	field.Integer("seq").Default(1),
	field.NotUsed("source"),
	field.NotUsed("text"),
	field.NotUsed("ctype"),
)

// Terminator closes a message.
var Terminator = astm.MustSchema("Terminator",
	field.Constant("type").Default("L"),
	field.Integer("seq").Default(1),
	field.Constant("code").Default("N"),
)

var standard = map[string]*astm.Schema{
	"Header": Header, "H": Header,
	"Patient": Patient, "P": Patient,
	"Order": Order, "O": Order,
	"Result": Result, "R": Result,
	"Comment": Comment, "C": Comment,
	"Terminator": Terminator, "L": Terminator,
	"Sender":      Sender,
	"PatientName": PatientName,
}

// Standard resolves a standard layout by its schema name or, for record
// layouts, by its single-letter type code.
func Standard(name string) (*astm.Schema, bool) {
	s, ok := standard[name]
	return s, ok
}
