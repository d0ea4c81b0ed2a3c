package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionUnsatisfied is returned when the running binary falls outside the
// project's requires range.
var ErrVersionUnsatisfied = errors.New("version requirement not satisfied")

// CheckVersion verifies that version satisfies f.Requires. Development builds
// ("dev" or empty) and files without a requirement always pass.
func (f *File) CheckVersion(version string) error {
	if f == nil || strings.TrimSpace(f.Requires) == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(f.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires %q: %w", f.Requires, err)
	}

	if version == "" || version == "dev" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: project requires %s, running %s", ErrVersionUnsatisfied, f.Requires, version)
	}
	return nil
}
