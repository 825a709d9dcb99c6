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
// Package release turns impact analysis into action: it orders packages
// for publishing and applies version bumps to their manifests.
package release

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/cascade/graph"
)

// CircularDependencyError is returned when the target set cannot be
// ordered because some of its packages depend on each other in a cycle.
// Remaining holds the sorted names of the packages left unordered; no
// partial order is ever returned alongside it.
type CircularDependencyError struct {
	Remaining []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency among packages: %s", strings.Join(e.Remaining, ", "))
}

// PackageNotFoundError is returned when a requested package is not a
// member of the workspace.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %q not found in workspace", e.Name)
}

// Plan computes a deterministic publish order for the target packages:
// every in-workspace dependency of a package that is itself a target
// precedes that package. Edges leaving the target set are ignored.
//
// The order is Kahn's algorithm with a lexicographic tie-break: among all
// packages whose dependencies are satisfied, the smallest name is emitted
// first, so identical inputs always produce identical output. Duplicate
// target names are collapsed. A target absent from the graph fails with
// *PackageNotFoundError; a cycle fails with *CircularDependencyError.
func Plan(g *graph.Graph, targets []string) ([]string, error) {
	inTarget := make([]bool, g.Len())
	var members []int32
	for _, name := range targets {
		i, ok := g.Index(name)
		if !ok {
			return nil, &PackageNotFoundError{Name: name}
		}
		if !inTarget[i] {
			inTarget[i] = true
			members = append(members, i)
		}
	}

	// In-degree counts only dependency edges staying inside the target set.
	indegree := make([]int, g.Len())
	for _, i := range members {
		for _, dep := range g.DependsOn(i) {
			if inTarget[dep] {
				indegree[i]++
			}
		}
	}

	// Node indices follow name order, so a queue kept sorted by index is
	// a queue kept sorted lexicographically.
	var ready []int32
	for _, i := range members {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}
	slices.Sort(ready)

	order := make([]string, 0, len(members))
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		order = append(order, g.Name(cur))

		for _, dependent := range g.Dependents(cur) {
			if !inTarget[dependent] {
				continue
			}
			indegree[dependent]--
			if indegree[dependent] == 0 {
				pos, _ := slices.BinarySearch(ready, dependent)
				ready = slices.Insert(ready, pos, dependent)
			}
		}
	}

	if len(order) < len(members) {
		var remaining []string
		for _, i := range members {
			if indegree[i] > 0 {
				remaining = append(remaining, g.Name(i))
			}
		}
		slices.Sort(remaining)
		return nil, &CircularDependencyError{Remaining: remaining}
	}

	return order, nil
}
