// Package zmqversion evaluates the libzmq compatibility rule enforced at
// build time by package zmqguard, for tooling that runs outside the C
// preprocessor.
package zmqversion

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Diagnostic is the message the build fails with. It matches the #error text
// in zmqguard/zmq_version_guard.h.
const Diagnostic = "Only libzmq >= 3.3.0 is supported."

// MinSupported is the oldest libzmq release the binding was written against.
var MinSupported = Version{Major: 3, Minor: 3, Patch: 0}

var (
	// ErrUnsupportedVersion is returned by Check when the rule rejects a version.
	ErrUnsupportedVersion = errors.New(Diagnostic)
	// ErrInvalidVersion is returned by Parse for strings that are not versions.
	ErrInvalidVersion = errors.New("invalid libzmq version")
)

// Version is a libzmq release identifier.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Supported reports whether the build may proceed with v.
func (v Version) Supported() bool {
	return IsSupported(v.Major, v.Minor)
}

// IsSupported accepts 3.3 and later 3.x releases only. Other majors are
// rejected, including newer ones.
func IsSupported(major, minor int) bool {
	return major == MinSupported.Major && minor >= MinSupported.Minor
}

// Check returns nil when v is supported and an error wrapping
// ErrUnsupportedVersion otherwise.
func Check(v Version) error {
	if v.Supported() {
		return nil
	}
	return fmt.Errorf("%w (detected %s)", ErrUnsupportedVersion, v)
}

// Parse reads a version as printed by `pkg-config --modversion libzmq`.
// Missing components default to zero; pre-release and build metadata are
// dropped.
func Parse(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{
		Major: int(sv.Major()),
		Minor: int(sv.Minor()),
		Patch: int(sv.Patch()),
	}, nil
}
