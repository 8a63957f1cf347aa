package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/labwire/astm/compiler/load"
)

// snapshotFile is the snapshot location relative to the target directory.
const snapshotFile = "internal/profile.snapshot"

// SnapshotPath returns the location of the profile snapshot under the
// target directory.
func SnapshotPath(target string) string {
	return filepath.Join(target, filepath.FromSlash(snapshotFile))
}

// Snapshot persists the descriptor the bindings were generated from.
// UpToDate compares against it to skip regeneration of unchanged profiles.
func Snapshot(p *load.Profile, target string) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return NewGenerationError("", snapshotFile, "encode snapshot", err)
	}
	path := SnapshotPath(target)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError("", snapshotFile, "create directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewGenerationError("", snapshotFile, "write", err)
	}
	return nil
}

// UpToDate reports whether the snapshot under target matches the profile.
// A missing or unreadable snapshot counts as stale.
func UpToDate(p *load.Profile, target string) bool {
	prev, err := os.ReadFile(SnapshotPath(target))
	if err != nil {
		return false
	}
	cur, err := p.MarshalBinary()
	if err != nil {
		return false
	}
	return bytes.Equal(prev, cur)
}
