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
package semver_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cascade/semver"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    semver.Version
		wantErr bool
	}{
		{
			name:  "simple version",
			input: "1.2.3",
			want:  semver.Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "zeros",
			input: "0.0.0",
			want:  semver.Version{},
		},
		{
			name:  "multi-digit components",
			input: "10.20.30",
			want:  semver.Version{Major: 10, Minor: 20, Patch: 30},
		},
		{
			name:    "leading v",
			input:   "v1.2.3",
			wantErr: true,
		},
		{
			name:    "pre-release suffix",
			input:   "1.2.3-beta.1",
			wantErr: true,
		},
		{
			name:    "build metadata",
			input:   "1.2.3+build.5",
			wantErr: true,
		},
		{
			name:    "two parts",
			input:   "1.2",
			wantErr: true,
		},
		{
			name:    "four parts",
			input:   "1.2.3.4",
			wantErr: true,
		},
		{
			name:    "negative component",
			input:   "1.-2.3",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "a.b.c",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := semver.Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				var invalidErr *semver.InvalidVersionError
				if !errors.As(err, &invalidErr) {
					t.Errorf("Parse(%q) error = %v, want *InvalidVersionError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		name string
		kind semver.Kind
		want string
	}{
		{name: "patch", kind: semver.Patch, want: "1.2.4"},
		{name: "minor", kind: semver.Minor, want: "1.3.0"},
		{name: "major", kind: semver.Major, want: "2.0.0"},
	}

	base := semver.Version{Major: 1, Minor: 2, Patch: 3}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Bump(tt.kind).String(); got != tt.want {
				t.Errorf("Bump(%s) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	v := semver.Version{Major: 10, Minor: 0, Patch: 7}
	if got := v.String(); got != "10.0.7" {
		t.Errorf("String() = %q, want %q", got, "10.0.7")
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"major", "minor", "patch"} {
		if _, err := semver.ParseKind(valid); err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Major", "huge", "prerelease"} {
		if _, err := semver.ParseKind(invalid); err == nil {
			t.Errorf("ParseKind(%q) expected error", invalid)
		}
	}
}
