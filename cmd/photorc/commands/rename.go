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

package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/photorc/cmd/photorc/opts"
	"github.com/walteh/photorc/pkg/execute"
	"github.com/walteh/photorc/pkg/plan"
	"github.com/walteh/photorc/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// applyToken is the positional argument that switches to apply mode,
// matched case-insensitively.
const applyToken = "execute"

// NewRenameCmd creates the rename command. Preview is the default; the
// positional token "execute" or the --execute flag performs the renames.
func NewRenameCmd(o *opts.RootOpts) *cobra.Command {
	var executeFlag bool

	cmd := &cobra.Command{
		Use:   "rename [execute]",
		Short: "Normalize timestamp-named photo files",
		Long: `Rename scans the directory for photo files named like
2022-01-14-14-33-00_photo_12.683_MB.jpg and renames them to
20220114_143300_photo.jpg, numbering same-second bursts _1, _2, ...

Without arguments it previews the plan. Pass "execute" (or --execute)
to perform the renames.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apply, err := ParseModeArg(args)
			if err != nil {
				return err
			}
			return Run(cmd.Context(), o, apply || executeFlag)
		},
	}

	cmd.Flags().BoolVar(&executeFlag, "execute", false, "perform the renames instead of previewing")

	return cmd
}

// 🔒 ParseModeArg interprets the optional positional mode token. An
// unrecognized token is an error rather than a silent dry run, so a typo
// of "execute" cannot masquerade as a preview.
func ParseModeArg(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	if strings.EqualFold(args[0], applyToken) {
		return true, nil
	}
	return false, errors.Errorf("unknown mode %q (pass %q to perform renames, or nothing to preview)", args[0], applyToken)
}

// 🏃 Run executes the scan → group → plan → execute pipeline. The plan is
// fully materialized before any filesystem mutation; with apply=false the
// filesystem is never mutated at all.
func Run(ctx context.Context, o *opts.RootOpts, apply bool) error {
	pattern, err := o.Config.CompilePattern()
	if err != nil {
		return errors.Errorf("compiling pattern: %w", err)
	}

	scanner, err := scan.New(scan.Options{
		Fs:      o.Fs,
		Dir:     o.Dir,
		Pattern: pattern,
		Ignore:  o.Config.Ignore,
		Verify:  o.Config.Verify,
	})
	if err != nil {
		return errors.Errorf("creating scanner: %w", err)
	}

	matches, err := scanner.Scan(ctx)
	if err != nil {
		return errors.Errorf("scanning directory: %w", err)
	}

	if len(matches) == 0 {
		o.Console.NoMatches()
		return nil
	}
	o.Console.MatchCount(len(matches))
	for _, m := range matches {
		if m.Suspect {
			o.Console.SuspectContent(m)
		}
	}

	p, err := plan.Build(ctx, matches)
	if err != nil {
		return errors.Errorf("building rename plan: %w", err)
	}

	o.Console.Banner(apply)

	executor, err := execute.New(execute.Options{
		Fs:       o.Fs,
		Dir:      o.Dir,
		Reporter: o.Console,
	})
	if err != nil {
		return errors.Errorf("creating executor: %w", err)
	}

	summary, err := executor.Run(ctx, p, apply)
	if err != nil {
		return errors.Errorf("running rename plan: %w", err)
	}

	o.Console.Summary(apply, summary)
	return nil
}
