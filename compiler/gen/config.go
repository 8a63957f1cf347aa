package gen

import "runtime"

// defaultHeader is the comment placed at the top of every generated file.
const defaultHeader = "Code generated by astmgen. DO NOT EDIT."

// Config holds the global code generation settings.
type Config struct {
	// Package is the import path of the generated package, for example
	// "github.com/org/lab/profiles/cobalt". The package name of the
	// emitted files is its base element.
	Package string

	// Target is the directory generated files are written to.
	Target string

	// Header is the comment placed at the top of each generated file.
	Header string

	// Workers bounds the number of files emitted concurrently. Zero
	// means one worker per CPU.
	Workers int

	// Features holds the enabled feature-flags.
	Features []Feature
}

// DefaultConfig returns a Config with the default header and one emission
// worker per CPU.
func DefaultConfig() *Config {
	return &Config{
		Header:  defaultHeader,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// FeatureEnabled reports if the named feature-flag is enabled. It fails
// when the name does not match any known feature.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if !knownFeature(name) {
		return false, NewConfigError("Features", name, "unknown feature-flag")
	}
	return c.HasFeature(name), nil
}

// HasFeature reports if the named feature-flag was added to the config.
func (c *Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

func knownFeature(name string) bool {
	for _, f := range AllFeatures {
		if f.Name == name {
			return true
		}
	}
	return false
}

// workerCount resolves the effective worker bound.
func (c *Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
