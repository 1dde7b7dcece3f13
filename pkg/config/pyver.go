package config

import (
	"fmt"
	"regexp"
	"strconv"
)

// maxKnownMinor is the newest CPython minor the classifier ladder extends to
// when the configuration leaves max_python unset. Bump as new versions ship.
const maxKnownMinor = 13

var pyVerPattern = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// PyVer is a MAJOR.MINOR Python version. Parsing is strict: qualifiers,
// patch components, and surrounding noise are rejected rather than stripped,
// so a typo in the configuration surfaces instead of silently narrowing the
// supported range.
type PyVer struct {
	Major int
	Minor int
}

// ParsePyVer parses a strict MAJOR.MINOR version string.
func ParsePyVer(raw string) (PyVer, error) {
	match := pyVerPattern.FindStringSubmatch(raw)
	if match == nil {
		return PyVer{}, fmt.Errorf("config: invalid python version %q, expected MAJOR.MINOR", raw)
	}
	major, err := strconv.Atoi(match[1])
	if err != nil {
		return PyVer{}, fmt.Errorf("config: invalid python major version %q: %w", match[1], err)
	}
	minor, err := strconv.Atoi(match[2])
	if err != nil {
		return PyVer{}, fmt.Errorf("config: invalid python minor version %q: %w", match[2], err)
	}
	return PyVer{Major: major, Minor: minor}, nil
}

func (v PyVer) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Before reports whether v orders strictly before other.
func (v PyVer) Before(other PyVer) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// Next returns the following minor version.
func (v PyVer) Next() PyVer {
	return PyVer{Major: v.Major, Minor: v.Minor + 1}
}

// RuffTarget renders the version the way ruff's target-version option expects,
// e.g. "py310".
func (v PyVer) RuffTarget() string {
	return fmt.Sprintf("py%d%d", v.Major, v.Minor)
}

// VersionSpec carries every derived representation of a supported Python
// range that the templates need. It is computed once per configuration and
// never touches the filesystem or network.
type VersionSpec struct {
	// RequiresPython is the PEP 440 requires-python specifier. When a maximum
	// is configured the upper bound excludes the *next* minor so the maximum
	// itself stays supported, e.g. min 3.10 / max 3.12 -> ">=3.10,<3.13".
	RequiresPython string

	// Classifiers lists one trove classifier per supported minor version,
	// lowest first.
	Classifiers []string

	// RuffTarget is the style-tool target token for the highest supported
	// minor version.
	RuffTarget string

	// MypyVersion is the type-checker floor, the lowest supported minor.
	MypyVersion string
}

// NewVersionSpec derives a VersionSpec from a minimum version and an optional
// maximum. It assumes the pair was validated by Parse; max, when present,
// must not order before min and must share min's major version.
func NewVersionSpec(min PyVer, max *PyVer) VersionSpec {
	requires := ">=" + min.String()
	highest := PyVer{Major: min.Major, Minor: maxKnownMinor}
	if max != nil {
		requires += ",<" + max.Next().String()
		highest = *max
	}
	if highest.Before(min) {
		highest = min
	}

	classifiers := make([]string, 0, highest.Minor-min.Minor+1)
	for minor := min.Minor; minor <= highest.Minor; minor++ {
		classifiers = append(classifiers, fmt.Sprintf("Programming Language :: Python :: %d.%d", min.Major, minor))
	}

	return VersionSpec{
		RequiresPython: requires,
		Classifiers:    classifiers,
		RuffTarget:     highest.RuffTarget(),
		MypyVersion:    min.String(),
	}
}

// ContextMap flattens the spec into the nested mapping templates consume.
func (s VersionSpec) ContextMap() map[string]any {
	return map[string]any{
		"requires_python": s.RequiresPython,
		"classifiers":     s.Classifiers,
		"ruff_target":     s.RuffTarget,
		"mypy_version":    s.MypyVersion,
	}
}
