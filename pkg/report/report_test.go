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

package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/photorc/pkg/execute"
	"github.com/walteh/photorc/pkg/plan"
	"github.com/walteh/photorc/pkg/report"
	"github.com/walteh/photorc/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

func init() {
	// Plain output so assertions can match text
	color.NoColor = true
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf)

	c.Banner(false)
	assert.Contains(t, buf.String(), "DRY RUN")

	buf.Reset()
	c.Banner(true)
	assert.Contains(t, buf.String(), "LIVE RENAME")
}

func TestMatchCount(t *testing.T) {
	var buf bytes.Buffer
	report.NewConsole(&buf).MatchCount(7)
	assert.Contains(t, buf.String(), "Found 7 files")
}

func TestNoMatches(t *testing.T) {
	var buf bytes.Buffer
	report.NewConsole(&buf).NoMatches()
	assert.Contains(t, buf.String(), "No files found that matched the pattern")
}

func TestPairLines(t *testing.T) {
	pair := plan.Pair{
		From: "2023-05-01-09-00-00_photo_3.2_MB.jpg",
		To:   "20230501_090000_photo.jpg",
	}

	tests := []struct {
		name     string
		res      execute.Result
		contains []string
	}{
		{
			name:     "renamed",
			res:      execute.Result{Pair: pair, Outcome: execute.OutcomeRenamed},
			contains: []string{pair.From, "-> " + pair.To},
		},
		{
			name:     "noop",
			res:      execute.Result{Pair: plan.Pair{From: pair.To, To: pair.To}, Outcome: execute.OutcomeNoop},
			contains: []string{"already correct"},
		},
		{
			name:     "conflict",
			res:      execute.Result{Pair: pair, Outcome: execute.OutcomeConflict},
			contains: []string{pair.To, "already exists", "not renaming"},
		},
		{
			name:     "duplicate",
			res:      execute.Result{Pair: pair, Outcome: execute.OutcomeDuplicate},
			contains: []string{"identical content"},
		},
		{
			name:     "failed",
			res:      execute.Result{Pair: pair, Outcome: execute.OutcomeFailed, Err: errors.New("permission denied")},
			contains: []string{"failed", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			report.NewConsole(&buf).Pair(context.Background(), tt.res)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSuspectContent(t *testing.T) {
	var buf bytes.Buffer
	report.NewConsole(&buf).SuspectContent(scan.Match{
		Name:       "2023-05-01-09-00-00_photo_3.2_MB.jpg",
		SniffedExt: "png",
	})
	out := buf.String()
	assert.Contains(t, out, "2023-05-01-09-00-00_photo_3.2_MB.jpg")
	assert.Contains(t, out, `"png"`)
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	report.NewConsole(&buf).Summary(true, &execute.Summary{
		Total:      5,
		Renamed:    2,
		Noops:      1,
		Conflicts:  1,
		Duplicates: 0,
		Failed:     1,
	})

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "LIVE RENAME completed")
	assert.Contains(t, out, "5 files were processed")
	assert.Contains(t, out, "renamed")
	assert.Contains(t, out, "conflict")
}
