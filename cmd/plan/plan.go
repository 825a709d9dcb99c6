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

// Package plan provides the plan command for cascade.
package plan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/cascade/changes"
	"bennypowers.dev/cascade/fs"
	"bennypowers.dev/cascade/graph"
	"bennypowers.dev/cascade/impact"
	"bennypowers.dev/cascade/internal/output"
	"bennypowers.dev/cascade/release"
	"bennypowers.dev/cascade/vcs"
	"bennypowers.dev/cascade/workspace"
)

// Cmd is the plan cobra command that computes a dependency-respecting
// publish order.
var Cmd = &cobra.Command{
	Use:   "plan [package...]",
	Short: "Compute a publish order for packages",
	Long: `Compute a deterministic publish order in which every package's
in-workspace dependencies are published before the package itself.

With explicit package arguments, orders exactly those packages. With
--from, orders the packages changed since that ref plus everything they
affect. With neither, orders the whole workspace.`,
	Example: `  # Order the whole workspace
  cascade plan

  # Order an explicit set
  cascade plan @acme/core @acme/ui

  # Order everything touched by this branch
  cascade plan --from main`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", "", "Base git ref: plan changed packages and their dependents")
	Cmd.Flags().String("to", "HEAD", "Target git ref")
	Cmd.Flags().StringP("format", "f", "json", "Output format (json, text)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	absRoot, err := filepath.Abs(viper.GetString("workspace"))
	if err != nil {
		return fmt.Errorf("invalid workspace directory: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format %q: expected json or text", format)
	}

	catalog, err := workspace.Discover(osfs, absRoot, viper.GetStringSlice("pattern"))
	if err != nil {
		return err
	}
	g := graph.Build(catalog)

	targets := args
	if len(targets) == 0 {
		from, _ := cmd.Flags().GetString("from")
		if from != "" {
			to, _ := cmd.Flags().GetString("to")
			targets, err = changedTargets(cmd, osfs, absRoot, catalog, g, from, to)
			if err != nil {
				return err
			}
		} else {
			targets = catalog.Names()
		}
	}

	order, err := release.Plan(g, targets)
	if err != nil {
		return err
	}

	if format == "text" {
		return output.Lines(osfs, order)
	}
	return output.JSON(osfs, struct {
		Order []string `json:"order"`
	}{Order: order})
}

// changedTargets resolves the target set for --from: the changed packages
// together with every package affected by them.
func changedTargets(cmd *cobra.Command, osfs fs.FileSystem, absRoot string, catalog *workspace.Catalog, g *graph.Graph, from, to string) ([]string, error) {
	entries, err := vcs.NewGit(absRoot).Diff(cmd.Context(), from, to)
	if err != nil {
		return nil, err
	}

	changedPkgs := changes.Detect(entries, catalog)
	seeds := make([]string, len(changedPkgs))
	for i, cp := range changedPkgs {
		seeds[i] = cp.Package.Name
	}

	analysis := impact.Analyze(g, seeds)
	return append(seeds, analysis.All...), nil
}
