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
package packagejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	cascadefs "bennypowers.dev/cascade/fs"
)

// ErrMissingVersion is returned when a manifest has no top-level version field.
var ErrMissingVersion = errors.New("package.json has no version")

// SetVersion rewrites the top-level version field of a package.json file in
// place, leaving every other byte of the document untouched. Key order,
// indentation, and fields cascade does not model all survive the rewrite.
func SetVersion(fsys cascadefs.FileSystem, path string, version string) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}

	info, err := fsys.Stat(path)
	var perm fs.FileMode = 0644
	if err == nil {
		perm = info.Mode().Perm()
	}

	updated, err := replaceVersion(data, version)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return fsys.WriteFile(path, updated, perm)
}

// frame tracks the decoder's position inside one container so key tokens
// can be told apart from string values.
type frame struct {
	object    bool
	expectKey bool
}

// replaceVersion locates the top-level "version" string value with a token
// scan and splices in the new value. Tracking container frames keeps nested
// keys named "version" (e.g. a dependency literally called "version") and
// string values that happen to equal "version" out of scope.
func replaceVersion(data []byte, version string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var stack []frame

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, ErrMissingVersion
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				if n := len(stack); n > 0 && stack[n-1].object {
					stack[n-1].expectKey = true
				}
				stack = append(stack, frame{object: t == '{', expectKey: t == '{'})
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
		case string:
			n := len(stack)
			if n == 0 {
				return nil, ErrMissingVersion
			}
			if stack[n-1].object && stack[n-1].expectKey {
				// Key token.
				stack[n-1].expectKey = false
				if n == 1 && t == "version" {
					return spliceVersionValue(dec, data, version)
				}
			} else if stack[n-1].object {
				stack[n-1].expectKey = true
			}
		default:
			if n := len(stack); n > 0 && stack[n-1].object {
				stack[n-1].expectKey = true
			}
		}
	}
}

// spliceVersionValue consumes the value following the top-level version key
// and rewrites its bytes.
func spliceVersionValue(dec *json.Decoder, data []byte, version string) ([]byte, error) {
	val, err := dec.Token()
	if err != nil {
		return nil, ErrMissingVersion
	}
	old, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("version field is not a string")
	}

	// InputOffset points just past the closing quote. A valid version
	// string never contains escapes, so the quoted value spans exactly
	// len(old)+2 bytes.
	end := int(dec.InputOffset())
	start := end - len(old) - 2

	var out bytes.Buffer
	out.Grow(len(data) + len(version) - len(old))
	out.Write(data[:start])
	out.WriteByte('"')
	out.WriteString(version)
	out.WriteByte('"')
	out.Write(data[end:])
	return out.Bytes(), nil
}
