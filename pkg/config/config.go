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

// Package config holds the run configuration. A config file is optional;
// with none present the built-in defaults reproduce the zero-config
// behavior exactly.
package config

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/photorc/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ DefaultCandidates are the config filenames probed, in order, when no
// explicit path is given.
var DefaultCandidates = []string{".photorc.yaml", ".photorc.yml", ".photorc.hcl"}

// 📚 Config represents the complete configuration
type Config struct {
	// Pattern is the filename matching rule. It must expose seven capture
	// groups: year, month, day, hour, minute, second, extension.
	Pattern string `yaml:"pattern,omitempty"`
	// Stem is the word placed after the timestamp in target names
	Stem string `yaml:"stem,omitempty"`
	// Ignore holds glob patterns for entries to skip before matching
	Ignore []string `yaml:"ignore,omitempty"`
	// Verify sniffs each match's content and warns when it is not JPEG
	Verify bool `yaml:"verify,omitempty"`
}

// 🏭 Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pattern: scan.DefaultExpr,
		Stem:    scan.DefaultStem,
	}
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load loads the configuration. With an explicit path the file must
// exist and parse. With path empty the default candidates are probed and
// the built-in defaults are returned when none exists.
func Load(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		for _, candidate := range DefaultCandidates {
			ok, err := afero.Exists(fs, candidate)
			if err != nil {
				return nil, errors.Errorf("probing config file %s: %w", candidate, err)
			}
			if ok {
				path = candidate
				break
			}
		}
		if path == "" {
			logger.Debug().Msg("no config file, using defaults")
			return Default(), nil
		}
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults.
func (cfg *Config) Validate() error {
	if cfg.Pattern == "" {
		cfg.Pattern = scan.DefaultExpr
	}
	if cfg.Stem == "" {
		cfg.Stem = scan.DefaultStem
	}
	for _, g := range cfg.Ignore {
		if strings.TrimSpace(g) == "" {
			return errors.Errorf("ignore patterns must not be empty")
		}
	}

	// Compiling up front surfaces a bad pattern before any scanning
	if _, err := scan.NewPattern(cfg.Pattern, cfg.Stem); err != nil {
		return errors.Errorf("invalid pattern: %w", err)
	}

	return nil
}

// 🧵 CompilePattern compiles the configured matching rule.
func (cfg *Config) CompilePattern() (*scan.Pattern, error) {
	return scan.NewPattern(cfg.Pattern, cfg.Stem)
}
