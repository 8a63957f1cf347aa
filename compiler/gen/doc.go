// Package gen generates typed Go bindings from compiled instrument
// profiles.
//
// The generation pipeline follows this flow:
//
//	Profile descriptor (YAML)
//	        ↓
//	   load.Profile → load.Built (live schemas)
//	        ↓
//	   Graph (layouts wrapped with their Go names)
//	        ↓
//	   Generated package (one schema file and one typed view per layout)
//
// For every layout the generator emits a schema variable built from the
// field builders in the field package and a typed view struct wrapping
// *astm.Record with one getter/setter pair per field. Components get the
// same treatment, so nested groups are navigated through typed views all
// the way down. A profile index file exposes the layout list and the wire
// type code lookup.
//
// Generation is configured through functional options:
//
//	cfg, err := gen.NewConfig(
//		gen.WithPackage("github.com/org/lab/profiles/cobalt"),
//		gen.WithTarget("./profiles/cobalt"),
//		gen.WithFeatures(gen.FeatureSnapshot),
//	)
//
// Feature-flags gate optional output: FeatureSnapshot stores the compiled
// descriptor next to the generated code so unchanged profiles skip
// regeneration, and FeatureEnumValues emits named constants for enum
// members.
package gen
