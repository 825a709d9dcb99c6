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

// Package bump provides the bump command for cascade.
package bump

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
	"bennypowers.dev/cascade/semver"
	"bennypowers.dev/cascade/vcs"
	"bennypowers.dev/cascade/workspace"
)

// Cmd is the bump cobra command that applies semantic-version increments
// to package manifests.
var Cmd = &cobra.Command{
	Use:   "bump KIND [package...]",
	Short: "Apply a version increment to package manifests",
	Long: `Apply a semantic-version increment (major, minor, or patch) to the
named packages, rewriting each package.json in place.

With --from and no package arguments, bumps the packages changed since
that ref plus everything they affect. Bumps are applied one package at a
time and are not rolled back when a later package fails.`,
	Example: `  # Patch-bump two packages
  cascade bump patch @acme/core @acme/ui

  # Minor-bump everything touched by this branch
  cascade bump minor --from main`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", "", "Base git ref: bump changed packages and their dependents")
	Cmd.Flags().String("to", "HEAD", "Target git ref")
	Cmd.Flags().StringP("format", "f", "json", "Output format (json, text)")
}

func run(cmd *cobra.Command, args []string) error {
	kind, err := semver.ParseKind(args[0])
	if err != nil {
		return err
	}

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

	names := args[1:]
	if len(names) == 0 {
		from, _ := cmd.Flags().GetString("from")
		if from == "" {
			return fmt.Errorf("nothing to bump: name packages or pass --from")
		}
		to, _ := cmd.Flags().GetString("to")
		names, err = changedNames(cmd, osfs, absRoot, catalog, from, to)
		if err != nil {
			return err
		}
	}

	results, bumpErr := release.BumpAll(osfs, catalog, names, kind)

	// Bumps already applied stand even when a later one fails, so report
	// them before surfacing the error.
	if len(results) > 0 {
		var outErr error
		if format == "text" {
			lines := make([]string, len(results))
			for i, r := range results {
				lines[i] = fmt.Sprintf("%s: %s -> %s", r.Package, r.OldVersion, r.NewVersion)
			}
			outErr = output.Lines(osfs, lines)
		} else {
			outErr = output.JSON(osfs, results)
		}
		if bumpErr == nil {
			bumpErr = outErr
		}
	}

	return bumpErr
}

// changedNames resolves the bump set for --from: changed packages plus
// every package affected by them.
func changedNames(cmd *cobra.Command, osfs fs.FileSystem, absRoot string, catalog *workspace.Catalog, from, to string) ([]string, error) {
	entries, err := vcs.NewGit(absRoot).Diff(cmd.Context(), from, to)
	if err != nil {
		return nil, err
	}

	changedPkgs := changes.Detect(entries, catalog)
	seeds := make([]string, len(changedPkgs))
	for i, cp := range changedPkgs {
		seeds[i] = cp.Package.Name
	}

	analysis := impact.Analyze(graph.Build(catalog), seeds)
	return append(seeds, analysis.All...), nil
}
