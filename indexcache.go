// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package telegraph

import "strings"

// indexCache answers repeated substring searches over a fixed string.
// It remembers the result of the last search for each substring,
// so a sequence of searches whose starting offsets move forward
// (or back by only a few bytes)
// examines each byte of the string a constant number of times.
type indexCache struct {
	s       string
	fold    bool
	entries map[string]cachedIndex
}

type cachedIndex struct {
	from  int // offset the search started at
	index int // first occurrence at or after from, or -1
}

// newIndexCache returns a cache for searching s.
// If fold is true, searches ignore ASCII case.
func newIndexCache(s string, fold bool) *indexCache {
	return &indexCache{
		s:       s,
		fold:    fold,
		entries: make(map[string]cachedIndex),
	}
}

// index returns the offset of the first occurrence of substr in the string
// at or after from, or -1 if there is none.
func (c *indexCache) index(substr string, from int) int {
	if from > len(c.s) {
		return -1
	}
	e, ok := c.entries[substr]
	switch {
	case ok && e.from <= from && (e.index < 0 || e.index >= from):
		return e.index
	case ok && from < e.from:
		// Only occurrences starting before the previous search need a look.
		limit := e.from + len(substr) - 1
		if limit > len(c.s) {
			limit = len(c.s)
		}
		i := c.search(c.s[from:limit], substr)
		if i >= 0 {
			i += from
		} else {
			i = e.index
		}
		c.entries[substr] = cachedIndex{from: from, index: i}
		return i
	}
	i := c.search(c.s[from:], substr)
	if i >= 0 {
		i += from
	}
	c.entries[substr] = cachedIndex{from: from, index: i}
	return i
}

func (c *indexCache) search(s, substr string) int {
	if c.fold {
		return indexFold(s, substr)
	}
	return strings.Index(s, substr)
}
