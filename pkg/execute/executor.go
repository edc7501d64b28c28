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

// Package execute walks a rename plan against the filesystem. Every pair
// is resolved independently; a conflict or a failed rename never aborts
// the rest of the batch.
package execute

import (
	"context"
	"io"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/photorc/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome classifies what happened to one pair.
type Outcome int

const (
	OutcomeUnknown  Outcome = iota
	OutcomeRenamed          // Renamed (or would be, in preview)
	OutcomeNoop             // Name already correct
	OutcomeConflict         // Target exists with different content
	OutcomeDuplicate        // Target exists with identical content
	OutcomeFailed           // Rename call failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeRenamed:
		return "renamed"
	case OutcomeNoop:
		return "no-op"
	case OutcomeConflict:
		return "conflict"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Result is the resolution of one pair.
type Result struct {
	Pair    plan.Pair
	Outcome Outcome
	Err     error // Set only for OutcomeFailed
}

// 🧮 Summary counts pair outcomes for one run.
type Summary struct {
	Total      int
	Renamed    int
	Noops      int
	Conflicts  int
	Duplicates int
	Failed     int
}

// 📈 Reporter receives each pair's resolution as it happens.
type Reporter interface {
	Pair(ctx context.Context, res Result)
}

// 🔧 Options contains configuration for the executor
type Options struct {
	// Fs is the filesystem the plan runs against
	Fs afero.Fs
	// Dir is the directory holding the plan's entries
	Dir string
	// Reporter receives per-pair results (nil disables reporting)
	Reporter Reporter
}

// 🏃 Executor applies or previews a rename plan.
type Executor struct {
	fs       afero.Fs
	dir      string
	reporter Reporter
}

// 🏭 New creates a new executor
func New(opts Options) (*Executor, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Dir == "" {
		return nil, errors.Errorf("directory is required")
	}
	return &Executor{
		fs:       opts.Fs,
		dir:      opts.Dir,
		reporter: opts.Reporter,
	}, nil
}

// 🏃 Run resolves every pair in the plan. In preview mode (apply=false)
// no filesystem mutation occurs; the outcomes describe what apply mode
// would do. The returned summary covers every pair considered.
func (e *Executor) Run(ctx context.Context, p *plan.Plan, apply bool) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	summary := &Summary{Total: p.Len()}

	for _, pair := range p.Pairs() {
		res := e.resolve(ctx, pair, apply)
		summary.count(res.Outcome)
		if e.reporter != nil {
			e.reporter.Pair(ctx, res)
		}
		logger.Debug().
			Str("from", pair.From).
			Str("to", pair.To).
			Str("outcome", res.Outcome.String()).
			Bool("apply", apply).
			Msg("pair resolved")
	}

	return summary, nil
}

// 🔒 resolve decides one pair's outcome, mutating only in apply mode.
func (e *Executor) resolve(ctx context.Context, pair plan.Pair, apply bool) Result {
	if pair.From == pair.To {
		return Result{Pair: pair, Outcome: OutcomeNoop}
	}

	exists, err := afero.Exists(e.fs, e.path(pair.To))
	if err != nil {
		return Result{Pair: pair, Outcome: OutcomeFailed, Err: errors.Errorf("checking target %s: %w", pair.To, err)}
	}
	if exists {
		// Never overwrite a distinct existing entry. Classify the clash
		// by content so the user can tell a stray duplicate from a
		// genuine conflict.
		if same, hashErr := e.sameContent(pair.From, pair.To); hashErr == nil && same {
			return Result{Pair: pair, Outcome: OutcomeDuplicate}
		}
		return Result{Pair: pair, Outcome: OutcomeConflict}
	}

	if !apply {
		return Result{Pair: pair, Outcome: OutcomeRenamed}
	}
	if err := e.fs.Rename(e.path(pair.From), e.path(pair.To)); err != nil {
		return Result{Pair: pair, Outcome: OutcomeFailed, Err: errors.Errorf("renaming %s to %s: %w", pair.From, pair.To, err)}
	}
	return Result{Pair: pair, Outcome: OutcomeRenamed}
}

// 🔍 sameContent hashes both files and reports whether they are
// byte-identical.
func (e *Executor) sameContent(a, b string) (bool, error) {
	ha, err := e.hash(a)
	if err != nil {
		return false, err
	}
	hb, err := e.hash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// 🔒 hash computes the xxhash64 digest of one file.
func (e *Executor) hash(name string) (uint64, error) {
	f, err := e.fs.Open(e.path(name))
	if err != nil {
		return 0, errors.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, errors.Errorf("hashing %s: %w", name, err)
	}
	return h.Sum64(), nil
}

// 🔒 path joins the working directory with an entry name.
func (e *Executor) path(name string) string {
	return filepath.Join(e.dir, name)
}

// 🔒 count tallies one outcome into the summary.
func (s *Summary) count(o Outcome) {
	switch o {
	case OutcomeRenamed:
		s.Renamed++
	case OutcomeNoop:
		s.Noops++
	case OutcomeConflict:
		s.Conflicts++
	case OutcomeDuplicate:
		s.Duplicates++
	case OutcomeFailed:
		s.Failed++
	}
}
