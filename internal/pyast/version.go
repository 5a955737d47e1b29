package pyast

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// supportedVersions is the range of Python releases accepted as a target.
var supportedVersions = mustConstraint(">= 3.7, < 3.15")

// DefaultVersion is the target used when none is given.
var DefaultVersion = Version{Major: 3, Minor: 12}

// Version is a Python MAJOR.MINOR release.
type Version struct {
	Major uint64
	Minor uint64
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses a "MAJOR.MINOR" string such as "3.12".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ".") != 1 {
		return Version{}, fmt.Errorf("invalid python version %q", s)
	}
	v, err := semver.StrictNewVersion(s + ".0")
	if err != nil {
		return Version{}, fmt.Errorf("invalid python version %q", s)
	}
	if !supportedVersions.Check(v) {
		return Version{}, fmt.Errorf("unsupported python version %q", s)
	}
	return Version{Major: v.Major(), Minor: v.Minor()}, nil
}

func mustConstraint(c string) *semver.Constraints {
	out, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return out
}
