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

package scan

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🕰️ DefaultExpr matches camera exports like
// "2022-01-14-14-33-00_photo_12.683_MB.jpg". Captures, in order:
// year, month, day, hour, minute, second, extension. The extension is
// matched case-insensitively but captured with its original case.
const DefaultExpr = `(?i)^(\d{4})-(\d{2})-(\d{2})-(\d{2})-(\d{2})-(\d{2})_photo_[\d.]+_MB(\.jpg)$`

// 🪨 DefaultStem is the word placed after the timestamp in target names.
const DefaultStem = "photo"

// captureCount is the number of capture groups a pattern must expose.
const captureCount = 7

// 🎯 Pattern is the compiled filename matching rule. It is injected into
// the scanner rather than living as a process-wide constant so tests can
// run against alternate rules.
type Pattern struct {
	re   *regexp.Regexp
	stem string
}

// 🏭 NewPattern compiles expr and validates its capture shape. The
// expression must expose exactly seven capture groups: six fixed-width
// date/time fields followed by the extension.
func NewPattern(expr, stem string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling filename pattern: %w", err)
	}
	if n := re.NumSubexp(); n != captureCount {
		return nil, errors.Errorf("filename pattern has %d capture groups, need %d (year..second, extension)", n, captureCount)
	}
	if stem == "" {
		stem = DefaultStem
	}
	return &Pattern{re: re, stem: stem}, nil
}

// 🏭 DefaultPattern returns the built-in rule.
func DefaultPattern() *Pattern {
	p, err := NewPattern(DefaultExpr, DefaultStem)
	if err != nil {
		panic(err) // DefaultExpr is a compile-checked constant
	}
	return p
}

// 📄 Match is one directory entry that conforms to the pattern, with its
// captured fields. All numeric fields are kept as the fixed-width decimal
// strings the filename carried.
type Match struct {
	Name string // Original filename
	Ext  string // Extension with original casing, including the dot

	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
	Second string

	SniffedExt string // Detected content type extension, when verification ran
	Suspect    bool   // Content does not look like the extension claims

	stem string // Target stem word, set by Pattern.Parse
}

// 🔑 BaseKey derives the normalized name stem shared by every photo taken
// in the same second: "YYYYMMDD_HHMMSS_<stem>". It is a pure function of
// the captured date/time fields.
func (m Match) BaseKey() string {
	return m.Year + m.Month + m.Day + "_" + m.Hour + m.Minute + m.Second + "_" + m.stem
}

// 📝 Parse matches name against the pattern. ok is false for entries that
// do not conform; such entries take no further part in the run.
func (p *Pattern) Parse(name string) (Match, bool) {
	groups := p.re.FindStringSubmatch(name)
	if groups == nil {
		return Match{}, false
	}
	return Match{
		Name:   name,
		Year:   groups[1],
		Month:  groups[2],
		Day:    groups[3],
		Hour:   groups[4],
		Minute: groups[5],
		Second: groups[6],
		Ext:    groups[7],
		stem:   p.stem,
	}, true
}
