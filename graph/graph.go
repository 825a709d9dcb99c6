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
// Package graph builds the in-workspace dependency graph of a package
// catalog.
//
// Packages are interned to dense integer indices when the graph is built,
// and both adjacency directions are stored as index slices. Traversals
// work entirely on integers; names reappear only at reporting boundaries.
// A graph is an immutable snapshot: it is rebuilt from the catalog on
// every invocation and never mutated afterwards.
package graph

import (
	"slices"

	"bennypowers.dev/cascade/workspace"
)

// Graph holds forward (package → dependency) and reverse (dependency →
// consumer) adjacency restricted to packages present in the catalog.
// External dependencies never appear as nodes; self-loops are impossible.
type Graph struct {
	names   []string
	index   map[string]int32
	forward [][]int32
	reverse [][]int32
}

// Build constructs the dependency graph for a catalog. For every package,
// each entry of dependencies and devDependencies whose name is itself a
// catalog member contributes a forward edge and its reverse. Version
// ranges are not interpreted; only name membership matters.
func Build(catalog *workspace.Catalog) *Graph {
	names := catalog.Names()
	n := len(names)

	g := &Graph{
		names:   names,
		index:   make(map[string]int32, n),
		forward: make([][]int32, n),
		reverse: make([][]int32, n),
	}
	for i, name := range names {
		g.index[name] = int32(i)
	}

	for _, pkg := range catalog.Packages() {
		from := g.index[pkg.Name]
		for _, deps := range []map[string]string{pkg.Dependencies, pkg.DevDependencies} {
			for dep := range deps {
				to, ok := g.index[dep]
				if !ok || to == from {
					continue
				}
				g.forward[from] = append(g.forward[from], to)
			}
		}
	}

	// Sort and deduplicate (a name can appear in both dependency maps),
	// then derive reverse adjacency. Sorted slices keep every traversal
	// deterministic.
	for from := range g.forward {
		slices.Sort(g.forward[from])
		g.forward[from] = slices.Compact(g.forward[from])
		for _, to := range g.forward[from] {
			g.reverse[to] = append(g.reverse[to], int32(from))
		}
	}
	for to := range g.reverse {
		slices.Sort(g.reverse[to])
	}

	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.names)
}

// Names returns all node names sorted ascending.
// Callers must not mutate the returned slice.
func (g *Graph) Names() []string {
	return g.names
}

// Index returns the dense index for a package name.
func (g *Graph) Index(name string) (int32, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Name returns the package name for a dense index.
func (g *Graph) Name(i int32) string {
	return g.names[i]
}

// DependsOn returns the in-workspace dependencies of node i, sorted by
// index. Callers must not mutate the returned slice.
func (g *Graph) DependsOn(i int32) []int32 {
	return g.forward[i]
}

// Dependents returns the in-workspace consumers of node i, sorted by
// index. Callers must not mutate the returned slice.
func (g *Graph) Dependents(i int32) []int32 {
	return g.reverse[i]
}

// Dependencies returns the names of pkg's in-workspace dependencies,
// sorted ascending. Unknown names yield nil.
func (g *Graph) Dependencies(pkg string) []string {
	i, ok := g.index[pkg]
	if !ok {
		return nil
	}
	return g.resolve(g.forward[i])
}

// Consumers returns the names of packages depending on pkg, sorted
// ascending. Unknown names yield nil.
func (g *Graph) Consumers(pkg string) []string {
	i, ok := g.index[pkg]
	if !ok {
		return nil
	}
	return g.resolve(g.reverse[i])
}

// resolve maps an index slice back to names. Index order is name order,
// so the result is already sorted.
func (g *Graph) resolve(idx []int32) []string {
	if len(idx) == 0 {
		return nil
	}
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = g.names[j]
	}
	return names
}
