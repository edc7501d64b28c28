// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders the human-readable run report. It is the sole
// user-facing output channel; structured zerolog output is kept separate
// for debugging.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/walteh/photorc/pkg/execute"
	"github.com/walteh/photorc/pkg/scan"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent pair entries
	nameWidth  = 42 // Base width for filenames
)

// 🖥️ Console writes the run report to one writer.
type Console struct {
	out io.Writer
	mu  sync.Mutex
}

// 🏭 NewConsole creates a new console reporter
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// 📣 Banner prints the mode banner.
func (c *Console) Banner(apply bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := "DRY RUN"
	if apply {
		mode = "LIVE RENAME"
	}
	pterm.DefaultSection.WithWriter(c.out).Println(mode)
}

// 📣 MatchCount prints the matched-file count line.
func (c *Console) MatchCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "Found %d files matching the format to process.\n", n)
}

// 📣 NoMatches prints the empty-run line.
func (c *Console) NoMatches() {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, "No files found that matched the pattern. Check the directory or the pattern.")
}

// ⚠️ SuspectContent warns about a match whose bytes do not look like the
// extension claims. The file is still renamed.
func (c *Console) SuspectContent(m scan.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s%s %s looks like %q, not JPEG\n",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(color.FgYellow).Sprint("!"),
		m.Name,
		m.SniffedExt)
}

// 📝 Pair prints one pair's resolution. Implements execute.Reporter.
func (c *Console) Pair(ctx context.Context, res execute.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, formatPair(res))
}

// 📝 formatPair formats a pair resolution for display
func formatPair(res execute.Result) string {
	var symbol rune
	var symbolColor color.Attribute
	var detail string

	switch res.Outcome {
	case execute.OutcomeRenamed:
		symbol = '✓'
		symbolColor = color.FgGreen
		detail = fmt.Sprintf("-> %s", res.Pair.To)
	case execute.OutcomeNoop:
		symbol = '•'
		symbolColor = color.FgCyan
		detail = "filename is already correct"
	case execute.OutcomeDuplicate:
		symbol = '='
		symbolColor = color.FgYellow
		detail = fmt.Sprintf("target %s already exists with identical content", res.Pair.To)
	case execute.OutcomeConflict:
		symbol = '✗'
		symbolColor = color.FgRed
		detail = fmt.Sprintf("target %s already exists, not renaming", res.Pair.To)
	case execute.OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		detail = fmt.Sprintf("failed: %v", res.Err)
	default:
		symbol = '?'
		symbolColor = color.FgYellow
		detail = res.Outcome.String()
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.Pair.From),
		detail)
}

// 📊 Summary prints the closing totals table.
func (c *Console) Summary(apply bool, s *execute.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := "DRY RUN"
	if apply {
		mode = "LIVE RENAME"
	}

	data := pterm.TableData{
		{"outcome", "count"},
		{"renamed", strconv.Itoa(s.Renamed)},
		{"no-op", strconv.Itoa(s.Noops)},
		{"conflict", strconv.Itoa(s.Conflicts)},
		{"duplicate", strconv.Itoa(s.Duplicates)},
		{"failed", strconv.Itoa(s.Failed)},
	}
	if err := pterm.DefaultTable.WithWriter(c.out).WithHasHeader().WithData(data).Render(); err != nil {
		fmt.Fprintf(c.out, "rendering summary: %v\n", err)
	}

	fmt.Fprintf(c.out, "%s completed, %d files were processed.\n",
		mode, s.Total)
}
