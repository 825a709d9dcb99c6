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
// Package changes attributes changed file paths to the workspace packages
// that own them.
package changes

import (
	"log/slog"
	"slices"
	"strings"

	"bennypowers.dev/cascade/vcs"
	"bennypowers.dev/cascade/workspace"
)

// Kind classifies how a package's files changed.
type Kind string

const (
	Added    Kind = "added"
	Modified Kind = "modified"
	Deleted  Kind = "deleted"
)

// KindOf maps a VCS status letter to a change kind: 'A' is added, 'D' is
// deleted, anything else is a modification.
func KindOf(status byte) Kind {
	switch status {
	case 'A':
		return Added
	case 'D':
		return Deleted
	default:
		return Modified
	}
}

// ChangedPackage is one workspace package together with the changed files
// it owns. Values are fully built before Detect returns and must not be
// mutated afterwards.
type ChangedPackage struct {
	Package *workspace.Package

	// Files are the owned changed paths, sorted and deduplicated.
	Files []string

	// Kinds is the sorted set of change kinds seen across Files.
	Kinds []Kind
}

// HasKind reports whether the package saw a change of the given kind.
func (cp *ChangedPackage) HasKind(kind Kind) bool {
	return slices.Contains(cp.Kinds, kind)
}

// Detect groups changed paths by owning package. Ownership is
// longest-prefix: the package whose directory is the longest path prefix
// of the file owns it, which handles nested package directories. Paths
// owned by no package are ignored. Results are sorted by package name.
func Detect(entries []vcs.Entry, catalog *workspace.Catalog) []*ChangedPackage {
	type accum struct {
		files map[string]struct{}
		kinds map[Kind]struct{}
	}
	byName := make(map[string]*accum)

	for _, entry := range entries {
		owner := owningPackage(entry.Path, catalog)
		if owner == nil {
			slog.Debug("changed path belongs to no workspace package", "path", entry.Path)
			continue
		}

		acc := byName[owner.Name]
		if acc == nil {
			acc = &accum{
				files: make(map[string]struct{}),
				kinds: make(map[Kind]struct{}),
			}
			byName[owner.Name] = acc
		}
		acc.files[entry.Path] = struct{}{}
		acc.kinds[KindOf(entry.Status)] = struct{}{}
	}

	result := make([]*ChangedPackage, 0, len(byName))
	for name, acc := range byName {
		pkg, _ := catalog.Get(name)
		result = append(result, &ChangedPackage{
			Package: pkg,
			Files:   sortedKeys(acc.files),
			Kinds:   sortedKeys(acc.kinds),
		})
	}
	slices.SortFunc(result, func(a, b *ChangedPackage) int {
		return strings.Compare(a.Package.Name, b.Package.Name)
	})
	return result
}

// owningPackage finds the package whose directory is the longest prefix of
// path, or nil when no package owns it. Equal-length ties are impossible:
// the catalog rejects duplicate directory paths at build time.
func owningPackage(path string, catalog *workspace.Catalog) *workspace.Package {
	var best *workspace.Package
	for _, pkg := range catalog.Packages() {
		if path != pkg.RelPath && !strings.HasPrefix(path, pkg.RelPath+"/") {
			continue
		}
		if best == nil || len(pkg.RelPath) > len(best.RelPath) {
			best = pkg
		}
	}
	return best
}

func sortedKeys[K ~string](set map[K]struct{}) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
