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

// Package changed provides the changed command for cascade.
package changed

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
	"bennypowers.dev/cascade/vcs"
	"bennypowers.dev/cascade/workspace"
)

// Cmd is the changed cobra command that maps a git diff onto workspace
// packages and propagates the impact across the dependency graph.
var Cmd = &cobra.Command{
	Use:   "changed",
	Short: "List changed packages and everything they affect",
	Long: `List packages changed between two git refs, together with every
package affected directly or transitively through workspace dependencies.`,
	Example: `  # Packages changed on this branch relative to main
  cascade changed --from main

  # Changes between two tags, as plain text
  cascade changed --from v1.0.0 --to v1.1.0 --format text`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", "", "Base git ref to diff against (required)")
	Cmd.Flags().String("to", "HEAD", "Target git ref")
	Cmd.Flags().StringP("format", "f", "json", "Output format (json, text)")
	_ = Cmd.MarkFlagRequired("from")
}

// changedPackage is the JSON shape for one changed package.
type changedPackage struct {
	Name  string         `json:"name"`
	Path  string         `json:"path"`
	Files []string       `json:"files"`
	Kinds []changes.Kind `json:"kinds"`
}

// result is the JSON shape of the command output.
type result struct {
	Changed  []changedPackage `json:"changed"`
	Direct   []string         `json:"direct"`
	Indirect []string         `json:"indirect"`
	All      []string         `json:"all"`
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

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	entries, err := vcs.NewGit(absRoot).Diff(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	changedPkgs := changes.Detect(entries, catalog)
	seeds := make([]string, len(changedPkgs))
	for i, cp := range changedPkgs {
		seeds[i] = cp.Package.Name
	}

	analysis := impact.Analyze(graph.Build(catalog), seeds)

	res := result{
		Changed:  make([]changedPackage, len(changedPkgs)),
		Direct:   analysis.Direct,
		Indirect: analysis.Indirect,
		All:      analysis.All,
	}
	for i, cp := range changedPkgs {
		res.Changed[i] = changedPackage{
			Name:  cp.Package.Name,
			Path:  cp.Package.RelPath,
			Files: cp.Files,
			Kinds: cp.Kinds,
		}
	}

	if format == "text" {
		return output.Lines(osfs, textLines(res))
	}
	return output.JSON(osfs, res)
}

func textLines(res result) []string {
	lines := []string{"changed:"}
	for _, cp := range res.Changed {
		lines = append(lines, fmt.Sprintf("  %s (%d files)", cp.Name, len(cp.Files)))
	}
	lines = append(lines, "affected:")
	for _, name := range res.Direct {
		lines = append(lines, fmt.Sprintf("  %s (direct)", name))
	}
	for _, name := range res.Indirect {
		lines = append(lines, fmt.Sprintf("  %s (indirect)", name))
	}
	return lines
}
