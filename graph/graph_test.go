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
package graph_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/cascade/graph"
	"bennypowers.dev/cascade/workspace"
)

// buildCatalog creates a catalog from a name -> dependencies table.
func buildCatalog(t *testing.T, deps map[string][]string) *workspace.Catalog {
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
	return catalog
}

func TestBuildEdges(t *testing.T) {
	catalog := buildCatalog(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"a", "b"},
	})
	g := graph.Build(catalog)

	require.Equal(t, 3, g.Len())
	require.Empty(t, g.Dependencies("a"))
	require.Equal(t, []string{"a"}, g.Dependencies("b"))
	require.Equal(t, []string{"a", "b"}, g.Dependencies("c"))

	require.Equal(t, []string{"b", "c"}, g.Consumers("a"))
	require.Equal(t, []string{"c"}, g.Consumers("b"))
	require.Empty(t, g.Consumers("c"))
}

func TestBuildIgnoresExternalDependencies(t *testing.T) {
	catalog := buildCatalog(t, map[string][]string{
		"a": {"lodash", "react"},
		"b": {"a", "typescript"},
	})
	g := graph.Build(catalog)

	require.Equal(t, 2, g.Len())
	require.Empty(t, g.Dependencies("a"))
	require.Equal(t, []string{"a"}, g.Dependencies("b"))

	_, ok := g.Index("lodash")
	require.False(t, ok, "external dependencies must not become nodes")
}

func TestBuildIncludesDevDependencies(t *testing.T) {
	pkgs := []*workspace.Package{
		{Name: "a", RelPath: "packages/a", Version: "1.0.0"},
		{
			Name:            "b",
			RelPath:         "packages/b",
			Version:         "1.0.0",
			DevDependencies: map[string]string{"a": "^1.0.0"},
		},
	}
	catalog, err := workspace.NewCatalog("/repo", pkgs)
	require.NoError(t, err)

	g := graph.Build(catalog)
	require.Equal(t, []string{"a"}, g.Dependencies("b"))
	require.Equal(t, []string{"b"}, g.Consumers("a"))
}

func TestBuildDeduplicatesMixedDependencyKinds(t *testing.T) {
	// A dependency declared in both dependencies and devDependencies
	// contributes one edge.
	pkgs := []*workspace.Package{
		{Name: "a", RelPath: "packages/a", Version: "1.0.0"},
		{
			Name:            "b",
			RelPath:         "packages/b",
			Version:         "1.0.0",
			Dependencies:    map[string]string{"a": "^1.0.0"},
			DevDependencies: map[string]string{"a": "^1.0.0"},
		},
	}
	catalog, err := workspace.NewCatalog("/repo", pkgs)
	require.NoError(t, err)

	g := graph.Build(catalog)
	require.Equal(t, []string{"a"}, g.Dependencies("b"))
	require.Equal(t, []string{"b"}, g.Consumers("a"))
}

func TestBuildExcludesSelfLoops(t *testing.T) {
	catalog := buildCatalog(t, map[string][]string{
		"a": {"a"},
	})
	g := graph.Build(catalog)
	require.Empty(t, g.Dependencies("a"))
	require.Empty(t, g.Consumers("a"))
}

func TestIndexRoundTrip(t *testing.T) {
	catalog := buildCatalog(t, map[string][]string{
		"alpha": nil,
		"beta":  nil,
		"gamma": nil,
	})
	g := graph.Build(catalog)

	for _, name := range g.Names() {
		i, ok := g.Index(name)
		require.True(t, ok)
		require.Equal(t, name, g.Name(i))
	}

	_, ok := g.Index("delta")
	require.False(t, ok)
}

func TestUnknownNameQueries(t *testing.T) {
	g := graph.Build(buildCatalog(t, map[string][]string{"a": nil}))
	require.Nil(t, g.Dependencies("nope"))
	require.Nil(t, g.Consumers("nope"))
}
