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
// Package vcs adapts version control systems to the one question cascade
// asks them: which paths changed between two refs, and how.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Entry is one changed path as reported by the VCS.
type Entry struct {
	// Status is the single-letter change status. Only 'A' (added) and
	// 'D' (deleted) are distinguished downstream; everything else is
	// treated as a modification.
	Status byte

	// Path is the changed file path relative to the workspace root,
	// slash-separated.
	Path string
}

// Differ reports the paths changed between two refs.
type Differ interface {
	Diff(ctx context.Context, from, to string) ([]Entry, error)
}

// Git is a Differ that shells out to the git binary.
type Git struct {
	dir     string
	timeout time.Duration
}

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 30 * time.Second

// NewGit creates a git Differ running in the given workspace directory.
func NewGit(dir string) *Git {
	return &Git{dir: dir, timeout: DefaultTimeout}
}

// Diff runs `git diff --name-status` between the two refs. Paths are made
// relative to the configured directory so they line up with catalog
// package paths. Renames are reported under the new path as modifications.
func (g *Git) Diff(ctx context.Context, from, to string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := []string{"diff", "--name-status", "--relative", from, to}
	slog.Debug("running git", "dir", g.dir, "args", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("git diff: timeout after %v", g.timeout)
		}
		return nil, fmt.Errorf("git diff %s..%s: %w: %s", from, to, err, strings.TrimSpace(stderr.String()))
	}

	return parseNameStatus(stdout.String()), nil
}

// parseNameStatus parses `git diff --name-status` output. Each line is a
// status field and one path, except renames/copies (R###/C###) which carry
// the old and new path; the new path wins.
func parseNameStatus(out string) []Entry {
	var entries []Entry
	for _, line := range strings.SplitAfter(out, "\n") {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}

		status := fields[0][0]
		path := fields[1]
		if (status == 'R' || status == 'C') && len(fields) > 2 {
			status = 'M'
			path = fields[2]
		}

		entries = append(entries, Entry{Status: status, Path: path})
	}
	return entries
}
