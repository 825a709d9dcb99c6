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
package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "version only",
			info: Info{Version: "v1.2.3"},
			want: "v1.2.3",
		},
		{
			name: "revision truncated",
			info: Info{Version: "dev", Revision: "0123456789abcdef"},
			want: "dev (0123456)",
		},
		{
			name: "short revision kept",
			info: Info{Version: "dev", Revision: "abc"},
			want: "dev (abc)",
		},
		{
			name: "modified flag",
			info: Info{Version: "v2.0.0", Revision: "0123456789abcdef", Modified: true},
			want: "v2.0.0 (0123456, modified)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetNeverEmpty(t *testing.T) {
	if got := Get(); got.Version == "" {
		t.Error("Get().Version is empty")
	}
}
