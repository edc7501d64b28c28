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

package commands_test

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/photorc/cmd/photorc/commands"
	"github.com/walteh/photorc/cmd/photorc/opts"
	"github.com/walteh/photorc/pkg/config"
	"github.com/walteh/photorc/pkg/report"
)

func init() {
	color.NoColor = true
}

// 🧪 testEnv builds a MemMapFs working directory plus root options whose
// console writes into the returned buffer.
func testEnv(t *testing.T, files map[string]string) (context.Context, *opts.RootOpts, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("photos", 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, "photos/"+name, []byte(content), 0o644))
	}

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var buf bytes.Buffer
	return ctx, &opts.RootOpts{
		Config:  config.Default(),
		Fs:      fs,
		Dir:     "photos",
		Console: report.NewConsole(&buf),
	}, &buf
}

// 🧪 listNames snapshots the working directory listing.
func listNames(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, "photos")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestParseModeArg(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantApply bool
		wantErr   bool
	}{
		{name: "no_args_previews", args: nil, wantApply: false},
		{name: "execute_token", args: []string{"execute"}, wantApply: true},
		{name: "token_is_case_insensitive", args: []string{"EXECUTE"}, wantApply: true},
		{name: "typo_is_an_error", args: []string{"exeucte"}, wantErr: true},
		{name: "random_token_is_an_error", args: []string{"yes"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apply, err := commands.ParseModeArg(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantApply, apply)
		})
	}
}

func TestRunPreview(t *testing.T) {
	ctx, o, buf := testEnv(t, map[string]string{
		"2022-01-14-14-33-00_photo_12.683_MB.jpg": "a",
		"2022-01-14-14-33-00_photo_9.1_MB.JPG":    "b",
		"vacation.jpg":                            "c",
	})
	before := listNames(t, o.Fs)

	require.NoError(t, commands.Run(ctx, o, false))

	assert.Equal(t, before, listNames(t, o.Fs), "preview must not touch the filesystem")
	out := buf.String()
	assert.Contains(t, out, "Found 2 files")
	assert.Contains(t, out, "DRY RUN")
	assert.Contains(t, out, "20220114_143300_photo_1.jpg")
	assert.Contains(t, out, "20220114_143300_photo_2.JPG")
	assert.NotContains(t, out, "vacation.jpg", "non-conforming files are excluded, not reported")
}

func TestRunApply(t *testing.T) {
	ctx, o, buf := testEnv(t, map[string]string{
		"2022-01-14-14-33-00_photo_12.683_MB.jpg": "a",
		"2022-01-14-14-33-00_photo_9.1_MB.JPG":    "b",
		"2023-05-01-09-00-00_photo_3.2_MB.jpg":    "c",
	})

	require.NoError(t, commands.Run(ctx, o, true))

	assert.Equal(t, []string{
		"20220114_143300_photo_1.jpg",
		"20220114_143300_photo_2.JPG",
		"20230501_090000_photo.jpg",
	}, listNames(t, o.Fs))
	assert.Contains(t, buf.String(), "LIVE RENAME")
}

func TestRunNoMatches(t *testing.T) {
	ctx, o, buf := testEnv(t, map[string]string{
		"vacation.jpg": "c",
	})

	require.NoError(t, commands.Run(ctx, o, true))

	assert.Contains(t, buf.String(), "No files found that matched the pattern")
	assert.NotContains(t, buf.String(), "LIVE RENAME", "empty runs end before the banner")
}

func TestRunConflictKeepsGoing(t *testing.T) {
	ctx, o, buf := testEnv(t, map[string]string{
		"2023-05-01-09-00-00_photo_3.2_MB.jpg": "source",
		"20230501_090000_photo.jpg":            "occupied",
		"2023-05-01-09-00-01_photo_1.0_MB.jpg": "fine",
	})

	require.NoError(t, commands.Run(ctx, o, true))

	names := listNames(t, o.Fs)
	assert.Contains(t, names, "2023-05-01-09-00-00_photo_3.2_MB.jpg", "conflicting source stays put")
	assert.Contains(t, names, "20230501_090001_photo.jpg", "other pairs still rename")
	assert.Contains(t, buf.String(), "already exists")
}

func TestRunIsIdempotent(t *testing.T) {
	ctx, o, _ := testEnv(t, map[string]string{
		"2022-01-14-14-33-00_photo_12.683_MB.jpg": "a",
		"2022-01-14-14-33-00_photo_9.1_MB.JPG":    "b",
	})

	require.NoError(t, commands.Run(ctx, o, true))
	after := listNames(t, o.Fs)

	require.NoError(t, commands.Run(ctx, o, true))
	assert.Equal(t, after, listNames(t, o.Fs), "second run performs zero additional renames")
}

func TestRunBadConfiguredPattern(t *testing.T) {
	ctx, o, _ := testEnv(t, nil)
	o.Config.Pattern = "(unclosed"

	err := commands.Run(ctx, o, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}
