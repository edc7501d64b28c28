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

// Package plan turns a set of pattern matches into a fully materialized
// rename plan. The plan is built before any filesystem mutation begins and
// is never modified afterwards.
package plan

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/photorc/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 🔗 Pair maps one original filename to its target name.
type Pair struct {
	From string // Original filename
	To   string // Target filename
}

// 📋 Plan is the ordered set of rename pairs for one run. Pairs from the
// same base-key group appear consecutively, in lexicographic order of
// their original names.
type Plan struct {
	pairs []Pair
}

// 📄 Pairs returns the plan's pairs. The returned slice is shared; the
// plan is immutable once built, so callers must not modify it.
func (p *Plan) Pairs() []Pair {
	return p.pairs
}

// 🔢 Len returns the number of pairs in the plan.
func (p *Plan) Len() int {
	return len(p.pairs)
}

// 🏗️ Build groups the matches by base key, sorts each group
// lexicographically, and assigns targets. A group of one gets the bare
// base key; a group of N>1 gets suffixes _1.._N in sorted order, so the
// assignment is deterministic across repeated runs regardless of
// directory listing order.
func Build(ctx context.Context, matches []scan.Match) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	// Group by base key
	groups := make(map[string][]scan.Match)
	for _, m := range matches {
		key := m.BaseKey()
		groups[key] = append(groups[key], m)
	}

	// Keys are processed in sorted order so the plan's pair order is
	// stable run to run, not just its assignments.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	p := &Plan{}
	for _, key := range keys {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Name < group[j].Name
		})

		if len(group) == 1 {
			p.pairs = append(p.pairs, Pair{
				From: group[0].Name,
				To:   key + group[0].Ext,
			})
			continue
		}
		for i, m := range group {
			p.pairs = append(p.pairs, Pair{
				From: m.Name,
				To:   fmt.Sprintf("%s_%d%s", key, i+1, m.Ext),
			})
		}
		logger.Debug().Str("key", key).Int("members", len(group)).Msg("suffixed burst group")
	}

	// The suffixing scheme makes intra-plan target collisions impossible;
	// assert it anyway so a future pattern change cannot silently violate
	// collision safety.
	if err := assertUniqueTargets(p.pairs); err != nil {
		return nil, err
	}

	logger.Debug().Int("pairs", p.Len()).Int("groups", len(groups)).Msg("plan built")
	return p, nil
}

// ✅ assertUniqueTargets rejects plans in which two pairs share a target.
func assertUniqueTargets(pairs []Pair) error {
	seen := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if prev, ok := seen[pair.To]; ok {
			return errors.Errorf("plan targets collide: %s and %s both map to %s", prev, pair.From, pair.To)
		}
		seen[pair.To] = pair.From
	}
	return nil
}
