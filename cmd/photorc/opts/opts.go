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

// Package opts carries shared dependencies between the root command and
// subcommands.
package opts

import (
	"github.com/spf13/afero"
	"github.com/walteh/photorc/pkg/config"
	"github.com/walteh/photorc/pkg/report"
)

// 🔧 RootOpts holds dependencies shared by all commands
type RootOpts struct {
	// Config is the photorc configuration
	Config *config.Config
	// Fs is the filesystem everything runs against
	Fs afero.Fs
	// Dir is the directory to process
	Dir string
	// Console renders the user-facing report
	Console *report.Console
}
