/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package merge resolves overlapping candidate spans into a single
// consistent annotation and projects it to the output shape.
package merge

import (
	"sort"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
)

type Merger struct {
	priorities entity.Priorities
}

func NewMerger(priorities entity.Priorities) Merger {
	return Merger{priorities: priorities}
}

/**
	Merge returns a pairwise non-overlapping subset of candidates.

	Exact (category, start, end) duplicates are dropped first. The rest are swept
	in order of start, then priority (high first), then length (long first).
	A candidate that overlaps an accepted span replaces it when it has a higher
	priority, or the same priority and is strictly longer; otherwise it is
	discarded. Replacements are appended, so the output is not sorted.

	Since the sweep is in start order and the accepted set stays disjoint, a
	candidate can only ever overlap the most recently started accepted span.
**/
func (m Merger) Merge(candidates []entity.Candidate) []entity.Candidate {
	seen := make(map[entity.Key]bool, len(candidates))
	unique := make([]entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		unique = append(unique, c)
	}

	m.order(unique)

	accepted := make([]entity.Candidate, 0, len(unique))
	for _, c := range unique {
		i := firstOverlap(accepted, c.Span)
		if i < 0 {
			accepted = append(accepted, c)
			continue
		}

		kept := accepted[i]
		pc, pk := m.priorities.Rank(c.Category), m.priorities.Rank(kept.Category)
		if pc > pk || (pc == pk && c.Len() > kept.Len()) {
			accepted = append(accepted[:i], accepted[i+1:]...)
			accepted = append(accepted, c)
		}
	}

	return accepted
}

// order sorts by start, then priority (high first), then length (long first).
func (m Merger) order(candidates []entity.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if pa, pb := m.priorities.Rank(a.Category), m.priorities.Rank(b.Category); pa != pb {
			return pa > pb
		}
		return a.Len() > b.Len()
	})
}

func firstOverlap(accepted []entity.Candidate, s entity.Span) int {
	for i, a := range accepted {
		if a.Overlaps(s) {
			return i
		}
	}
	return -1
}

type Formatter struct {
	blocklist *blocklist.Blocklist
}

func NewFormatter(bl *blocklist.Blocklist) Formatter {
	if bl == nil {
		bl = blocklist.Default()
	}
	return Formatter{blocklist: bl}
}

// Format converts spans to entities for a text of textLen runes, dropping
// anything blocklisted, empty or out of bounds.
func (f Formatter) Format(spans []entity.Span, textLen int) []entity.Entity {
	res := make([]entity.Entity, 0, len(spans))
	for _, s := range spans {
		if s.Category == "" || !f.blocklist.AllowedCategory(s.Category) {
			continue
		}
		length := s.Len()
		if length <= 0 || s.Start < 0 || s.End >= textLen {
			continue
		}
		res = append(res, entity.Entity{Category: s.Category, Offset: s.Start, Length: length})
	}
	return res
}
