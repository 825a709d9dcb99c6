/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
// Package semver provides strict three-part semantic version parsing and
// increment arithmetic for package manifests.
//
// cascade rewrites manifest versions in place, so tolerant parsing is
// dangerous: a version it cannot represent exactly is a version it would
// corrupt on write. Parse therefore accepts exactly `major.minor.patch`
// with non-negative integer parts and rejects everything else, including
// pre-release and build-metadata suffixes.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
)

// versionRe matches exactly three dot-separated non-negative integers.
// No leading "v", no pre-release, no build metadata.
var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a parsed major.minor.patch version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Kind selects which component of a version an increment applies to.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// InvalidVersionError is returned when a version string is not exactly
// three dot-separated non-negative integers.
type InvalidVersionError struct {
	Raw string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: expected major.minor.patch with non-negative integers", e.Raw)
}

// Parse parses a strict major.minor.patch version string.
// Returns *InvalidVersionError for anything else.
func Parse(raw string) (Version, error) {
	m := versionRe.FindStringSubmatch(raw)
	if m == nil {
		return Version{}, &InvalidVersionError{Raw: raw}
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, &InvalidVersionError{Raw: raw}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, &InvalidVersionError{Raw: raw}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, &InvalidVersionError{Raw: raw}
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String formats the version as major.minor.patch.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the version incremented according to kind:
// major resets minor and patch, minor resets patch, patch increments patch.
func (v Version) Bump(kind Kind) Version {
	switch kind {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// ParseKind validates a bump kind supplied as user input.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case Major, Minor, Patch:
		return Kind(raw), nil
	}
	return "", fmt.Errorf("invalid bump kind %q: expected major, minor, or patch", raw)
}
