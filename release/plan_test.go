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
package release_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/cascade/graph"
	"bennypowers.dev/cascade/release"
	"bennypowers.dev/cascade/workspace"
)

// buildGraph creates a graph from a name -> dependencies table.
func buildGraph(t *testing.T, deps map[string][]string) *graph.Graph {
	t.Helper()
	var pkgs []*workspace.Package
	for name, depNames := range deps {
		depMap := make(map[string]string, len(depNames))
		for _, dep := range depNames {
			depMap[dep] = "^1.0.0"
		}
		pkgs = append(pkgs, &workspace.Package{
			Name:         name,
			RelPath:      fmt.Sprintf("packages/%s", name),
			Version:      "1.0.0",
			Dependencies: depMap,
		})
	}
	catalog, err := workspace.NewCatalog("/repo", pkgs)
	require.NoError(t, err)
	return graph.Build(catalog)
}

func TestPlanChain(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	})

	order, err := release.Plan(g, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPlanIsTopological(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"app":    {"ui", "api"},
		"ui":     {"core"},
		"api":    {"core"},
		"core":   nil,
		"extras": {"ui"},
	})
	targets := []string{"app", "ui", "api", "core", "extras"}

	order, err := release.Plan(g, targets)
	require.NoError(t, err)
	require.Len(t, order, len(targets))

	// Every retained dependency must precede its consumer.
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	for _, name := range targets {
		for _, dep := range g.Dependencies(name) {
			require.Less(t, pos[dep], pos[name], "%s must precede %s", dep, name)
		}
	}
}

func TestPlanLexicographicTieBreak(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"zeta":  nil,
		"alpha": nil,
		"mid":   nil,
	})

	order, err := release.Plan(g, []string{"zeta", "mid", "alpha"})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, order)
}

func TestPlanDeterministic(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	})
	targets := []string{"a", "b", "c", "d"}

	first, err := release.Plan(g, targets)
	require.NoError(t, err)

	// Identical graph and target set yields an identical sequence,
	// regardless of target ordering.
	reversed := slices.Clone(targets)
	slices.Reverse(reversed)
	again, err := release.Plan(g, reversed)
	require.NoError(t, err)
	require.Equal(t, first, again)

	again, err = release.Plan(g, []string{"d", "b", "a", "c"})
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestPlanRestrictsEdgesToTargetSet(t *testing.T) {
	// b depends on a, but a is not a target: the edge is ignored.
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	})

	order, err := release.Plan(g, []string{"b", "c"})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, order)
}

func TestPlanCycle(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"x": {"y"},
		"y": {"x"},
	})

	order, err := release.Plan(g, []string{"x", "y"})
	require.Nil(t, order, "no partial order on cycle")

	var cycleErr *release.CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	require.Equal(t, []string{"x", "y"}, cycleErr.Remaining)
}

func TestPlanCycleWithTail(t *testing.T) {
	// The acyclic prefix orders fine but the cycle poisons the whole call.
	g := buildGraph(t, map[string][]string{
		"base": nil,
		"x":    {"y", "base"},
		"y":    {"x"},
	})

	order, err := release.Plan(g, []string{"base", "x", "y"})
	require.Nil(t, order)

	var cycleErr *release.CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	require.Equal(t, []string{"x", "y"}, cycleErr.Remaining)
}

func TestPlanUnknownTarget(t *testing.T) {
	g := buildGraph(t, map[string][]string{"a": nil})

	_, err := release.Plan(g, []string{"a", "ghost"})
	var notFound *release.PackageNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.Name)
}

func TestPlanDuplicateTargets(t *testing.T) {
	g := buildGraph(t, map[string][]string{
		"a": nil,
		"b": {"a"},
	})

	order, err := release.Plan(g, []string{"b", "a", "b", "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestPlanEmptyTargets(t *testing.T) {
	g := buildGraph(t, map[string][]string{"a": nil})

	order, err := release.Plan(g, nil)
	require.NoError(t, err)
	require.Empty(t, order)
}
