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
// Package workspace discovers member packages of a monorepo and assembles
// them into a catalog keyed by package name.
package workspace

import (
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	cascadefs "bennypowers.dev/cascade/fs"
	"bennypowers.dev/cascade/packagejson"
)

// Package is one workspace member: its manifest data plus where it lives.
type Package struct {
	// Name is the unique package name from the manifest.
	Name string

	// RelPath is the slash-separated directory path relative to the
	// workspace root. Changed-file attribution matches against it.
	RelPath string

	// Dir is the manifest directory joined onto the workspace root,
	// suitable for passing back to the filesystem.
	Dir string

	Version         string
	Private         bool
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// ManifestPath returns the location of the package's package.json.
func (p *Package) ManifestPath() string {
	return path.Join(p.Dir, "package.json")
}

// Discover finds workspace packages under root matching the given patterns
// and returns them as a catalog.
//
// A pattern without glob metacharacters names a parent directory whose
// immediate subdirectories are candidate packages ("packages" is shorthand
// for "packages/*"). Patterns with metacharacters match candidate
// directories themselves. Candidates without a parseable package.json are
// skipped; a single malformed manifest never fails discovery.
//
// When patterns is empty, the workspaces field of the root package.json
// supplies them.
func Discover(fsys cascadefs.FileSystem, root string, patterns []string) (*Catalog, error) {
	if len(patterns) == 0 {
		patterns = rootPatterns(fsys, root)
	}

	var pkgs []*Package
	for _, pattern := range patterns {
		dirs := expandPattern(fsys, root, pattern)
		for _, rel := range dirs {
			pkg, err := readPackage(fsys, root, rel)
			if err != nil {
				slog.Debug("skipping directory without valid manifest",
					"dir", rel, "error", err)
				continue
			}
			pkgs = append(pkgs, pkg)
		}
	}

	return NewCatalog(root, pkgs)
}

// rootPatterns reads workspace patterns from the root manifest, if any.
func rootPatterns(fsys cascadefs.FileSystem, root string) []string {
	rootPkg, err := packagejson.ParseFile(fsys, path.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	return rootPkg.WorkspacePatterns()
}

// expandPattern resolves one pattern to candidate package directories,
// returned as slash-separated paths relative to root.
func expandPattern(fsys cascadefs.FileSystem, root, pattern string) []string {
	pattern = strings.TrimSuffix(pattern, "/")
	if !strings.ContainsAny(pattern, "*?[{") {
		pattern += "/*"
	}

	matches, err := doublestar.Glob(rootFS{fsys: fsys, root: root}, pattern)
	if err != nil {
		slog.Debug("skipping unexpandable workspace pattern",
			"pattern", pattern, "error", err)
		return nil
	}

	var dirs []string
	for _, match := range matches {
		info, err := fsys.Stat(path.Join(root, match))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, match)
	}
	return dirs
}

// readPackage parses the manifest in the directory rel (relative to root)
// and builds a Package from it.
func readPackage(fsys cascadefs.FileSystem, root, rel string) (*Package, error) {
	dir := path.Join(root, rel)
	pkg, err := packagejson.ParseFile(fsys, path.Join(dir, "package.json"))
	if err != nil {
		return nil, err
	}
	if pkg.Name == "" {
		return nil, packagejson.ErrMissingName
	}

	return &Package{
		Name:            pkg.Name,
		RelPath:         rel,
		Dir:             dir,
		Version:         pkg.Version,
		Private:         pkg.Private,
		Dependencies:    pkg.Dependencies,
		DevDependencies: pkg.DevDependencies,
	}, nil
}

// rootFS exposes the workspace subtree as an fs.FS for doublestar.
type rootFS struct {
	fsys cascadefs.FileSystem
	root string
}

func (r rootFS) Open(name string) (fs.File, error) {
	return r.fsys.Open(path.Join(r.root, name))
}
