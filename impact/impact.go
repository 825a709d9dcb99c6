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
// Package impact propagates a set of changed packages across the reverse
// dependency graph to find every package affected by them.
package impact

import "bennypowers.dev/cascade/graph"

// Analysis is the result of impact propagation. Direct and Indirect are
// disjoint, All is their sorted union, and seed packages appear in none of
// them: seeds are inputs, not discoveries.
type Analysis struct {
	// Direct holds packages that consume a seed package immediately.
	Direct []string `json:"direct"`

	// Indirect holds packages reachable from a seed only through chains
	// of two or more dependency edges.
	Indirect []string `json:"indirect"`

	// All is the sorted union of Direct and Indirect.
	All []string `json:"all"`

	// Graph is the snapshot the analysis ran against.
	Graph *graph.Graph `json:"-"`
}

// Analyze finds all packages affected by the seed packages via a
// multi-source breadth-first traversal of the reverse graph. The visited
// set makes the traversal terminate on cyclic graphs. A package that is
// both an immediate consumer of a seed and reachable through a longer
// chain is classified as directly affected only. Seed names absent from
// the graph are ignored.
func Analyze(g *graph.Graph, seeds []string) *Analysis {
	n := g.Len()
	seed := make([]bool, n)
	visited := make([]bool, n)
	direct := make([]bool, n)

	var queue []int32
	for _, name := range seeds {
		i, ok := g.Index(name)
		if !ok || seed[i] {
			continue
		}
		seed[i] = true
		visited[i] = true
		queue = append(queue, i)
	}

	// Immediate consumers of any seed are directly affected, regardless
	// of what other paths reach them.
	for _, s := range queue {
		for _, d := range g.Dependents(s) {
			if !seed[d] {
				direct[d] = true
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range g.Dependents(cur) {
			if visited[d] {
				continue
			}
			visited[d] = true
			queue = append(queue, d)
		}
	}

	analysis := &Analysis{Graph: g}
	for i := 0; i < n; i++ {
		if seed[i] || !visited[i] {
			continue
		}
		name := g.Name(int32(i))
		if direct[i] {
			analysis.Direct = append(analysis.Direct, name)
		} else {
			analysis.Indirect = append(analysis.Indirect, name)
		}
		analysis.All = append(analysis.All, name)
	}
	return analysis
}
