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
package release

import (
	"fmt"

	"bennypowers.dev/cascade/fs"
	"bennypowers.dev/cascade/packagejson"
	"bennypowers.dev/cascade/semver"
	"bennypowers.dev/cascade/workspace"
)

// BumpResult records one applied version increment.
type BumpResult struct {
	Package    string      `json:"package"`
	OldVersion string      `json:"oldVersion"`
	NewVersion string      `json:"newVersion"`
	Kind       semver.Kind `json:"kind"`
}

// BumpAll applies a version increment of the given kind to each named
// package, writing every new version straight through to the package's
// manifest file.
//
// Bumps are applied in order and are not transactional: when bump N
// fails, bumps 1..N-1 stay applied and the results accumulated so far are
// returned alongside the error. A missing package fails with
// *PackageNotFoundError; a version that is not exactly three non-negative
// integers fails with a wrapped *semver.InvalidVersionError before any
// write is attempted for that package.
func BumpAll(fsys fs.FileSystem, catalog *workspace.Catalog, names []string, kind semver.Kind) ([]BumpResult, error) {
	results := make([]BumpResult, 0, len(names))

	for _, name := range names {
		pkg, ok := catalog.Get(name)
		if !ok {
			return results, &PackageNotFoundError{Name: name}
		}

		current, err := semver.Parse(pkg.Version)
		if err != nil {
			return results, fmt.Errorf("bump %s: %w", name, err)
		}

		next := current.Bump(kind)
		if err := packagejson.SetVersion(fsys, pkg.ManifestPath(), next.String()); err != nil {
			return results, fmt.Errorf("bump %s: %w", name, err)
		}

		results = append(results, BumpResult{
			Package:    name,
			OldVersion: current.String(),
			NewVersion: next.String(),
			Kind:       kind,
		})
	}

	return results, nil
}
