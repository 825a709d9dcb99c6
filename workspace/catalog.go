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
package workspace

import (
	"fmt"
	"slices"
	"strings"
)

// DuplicateNameError reports two workspace directories declaring the same
// package name.
type DuplicateNameError struct {
	Name  string
	PathA string
	PathB string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate package name %q declared at %s and %s", e.Name, e.PathA, e.PathB)
}

// OverlappingPathError reports two packages resolving to the same
// directory. Equal paths would make longest-prefix change attribution
// ambiguous, so they are rejected when the catalog is built.
type OverlappingPathError struct {
	Path  string
	NameA string
	NameB string
}

func (e *OverlappingPathError) Error() string {
	return fmt.Sprintf("packages %q and %q share the directory %s", e.NameA, e.NameB, e.Path)
}

// Catalog is an immutable snapshot of the workspace's member packages.
// It is rebuilt from manifests on every invocation; nothing is cached
// across calls.
type Catalog struct {
	root     string
	packages []*Package
	byName   map[string]*Package
}

// NewCatalog builds a catalog from discovered packages, rejecting duplicate
// names and equal directory paths. Packages are held sorted by name.
func NewCatalog(root string, pkgs []*Package) (*Catalog, error) {
	byName := make(map[string]*Package, len(pkgs))
	byPath := make(map[string]*Package, len(pkgs))

	for _, pkg := range pkgs {
		if prev, ok := byName[pkg.Name]; ok {
			return nil, &DuplicateNameError{Name: pkg.Name, PathA: prev.RelPath, PathB: pkg.RelPath}
		}
		if prev, ok := byPath[pkg.RelPath]; ok {
			return nil, &OverlappingPathError{Path: pkg.RelPath, NameA: prev.Name, NameB: pkg.Name}
		}
		byName[pkg.Name] = pkg
		byPath[pkg.RelPath] = pkg
	}

	sorted := slices.Clone(pkgs)
	slices.SortFunc(sorted, func(a, b *Package) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &Catalog{root: root, packages: sorted, byName: byName}, nil
}

// Root returns the workspace root directory.
func (c *Catalog) Root() string {
	return c.root
}

// Len returns the number of member packages.
func (c *Catalog) Len() int {
	return len(c.packages)
}

// Packages returns the member packages sorted by name.
// Callers must not mutate the returned slice.
func (c *Catalog) Packages() []*Package {
	return c.packages
}

// Get looks up a package by name.
func (c *Catalog) Get(name string) (*Package, bool) {
	pkg, ok := c.byName[name]
	return pkg, ok
}

// Names returns the package names sorted ascending.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.packages))
	for i, pkg := range c.packages {
		names[i] = pkg.Name
	}
	return names
}
