package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureSnapshot stores the profile descriptor next to the generated
	// code, letting astmgen skip regeneration while the profile is
	// unchanged.
	FeatureSnapshot = Feature{
		Name:        "profile/snapshot",
		Stage:       Beta,
		Default:     false,
		Description: "Snapshot stores the compiled profile descriptor with the generated code and skips regeneration when the profile did not change",
		cleanup: func(c *Config) error {
			return remove(filepath.Join(c.Target, "internal"), "profile.snapshot")
		},
	}

	// FeatureEnumValues emits a named constant for every member of a
	// string-valued enum field.
	FeatureEnumValues = Feature{
		Name:        "enum/values",
		Stage:       Stable,
		Default:     false,
		Description: "EnumValues emits a named constant for each enum member, so callers never spell wire codes by hand",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSnapshot,
		FeatureEnumValues,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and their APIs may change
	// without notice.
	Experimental

	// Alpha features are functionally complete, but breaking-changes to
	// their APIs are still expected.
	Alpha

	// Beta features are documented and no breaking-changes are expected
	// for them.
	Beta

	// Stable features are Beta features that have been in use for a few
	// releases.
	Stable
)

// A Feature of the astm codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the feature's output when the flag is dropped
	// between codegen runs.
	cleanup func(*Config) error
}

func featureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
