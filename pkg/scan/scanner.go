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

// Package scan lists a directory and collects the entries that conform to
// the timestamp filename pattern.
package scan

import (
	"context"
	"io"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/h2non/filetype"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// sniffLen is how many leading bytes filetype needs to identify content.
const sniffLen = 261

// 🔧 Options configures a Scanner.
type Options struct {
	// Fs is the filesystem to scan
	Fs afero.Fs
	// Dir is the directory whose entries are considered
	Dir string
	// Pattern is the filename matching rule (nil means DefaultPattern)
	Pattern *Pattern
	// Ignore holds glob patterns for entries to skip before matching
	Ignore []string
	// Verify sniffs each match's content and flags non-JPEG bytes
	Verify bool
}

// 🔍 Scanner collects pattern matches from one directory.
type Scanner struct {
	fs      afero.Fs
	dir     string
	pattern *Pattern
	ignore  []string
	verify  bool
}

// 🏭 New creates a new scanner
func New(opts Options) (*Scanner, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Dir == "" {
		return nil, errors.Errorf("directory is required")
	}
	pattern := opts.Pattern
	if pattern == nil {
		pattern = DefaultPattern()
	}
	// Reject bad globs up front rather than during the walk
	for _, g := range opts.Ignore {
		if !doublestar.ValidatePattern(g) {
			return nil, errors.Errorf("invalid ignore pattern: %s", g)
		}
	}
	return &Scanner{
		fs:      opts.Fs,
		dir:     opts.Dir,
		pattern: pattern,
		ignore:  opts.Ignore,
		verify:  opts.Verify,
	}, nil
}

// 🏃 Scan lists the directory and returns every conforming file, in
// directory listing order. Non-conforming entries and directories are
// silently excluded.
func (s *Scanner) Scan(ctx context.Context) ([]Match, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, errors.Errorf("listing directory %s: %w", s.dir, err)
	}

	var matches []Match
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.ignored(name) {
			logger.Debug().Str("name", name).Msg("entry ignored by glob")
			continue
		}
		match, ok := s.pattern.Parse(name)
		if !ok {
			logger.Debug().Str("name", name).Msg("entry does not match pattern")
			continue
		}
		if s.verify {
			if err := s.sniff(ctx, &match); err != nil {
				// Verification is advisory, the rename still proceeds
				logger.Debug().Err(err).Str("name", name).Msg("content sniff failed")
			}
		}
		matches = append(matches, match)
	}

	logger.Debug().Int("matches", len(matches)).Int("entries", len(entries)).Msg("scan complete")
	return matches, nil
}

// 🔒 ignored reports whether name hits any of the ignore globs.
func (s *Scanner) ignored(name string) bool {
	for _, g := range s.ignore {
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
	}
	return false
}

// 🔬 sniff reads the file's magic bytes and flags matches whose content
// is not actually JPEG.
func (s *Scanner) sniff(ctx context.Context, m *Match) error {
	f, err := s.fs.Open(s.path(m.Name))
	if err != nil {
		return errors.Errorf("opening %s: %w", m.Name, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return errors.Errorf("reading %s: %w", m.Name, err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return errors.Errorf("sniffing %s: %w", m.Name, err)
	}
	m.SniffedExt = kind.Extension
	m.Suspect = kind.Extension != "jpg"
	return nil
}

// 🔒 path joins the scan directory with an entry name.
func (s *Scanner) path(name string) string {
	return filepath.Join(s.dir, name)
}
