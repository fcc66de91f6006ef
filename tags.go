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

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// tagSet describes the tags a tagScanner looks for.
type tagSet struct {
	// paired is the list of tag names matched as <name ...>content</name>.
	// The content is the shortest run up to the first matching end tag,
	// so nested elements of the same name are not supported.
	paired []string
	// void is the list of tag names matched as a single <name ...> tag.
	void []string
	// voidAttrs reports whether void tags may carry attributes.
	// If false, only whitespace and an optional slash
	// may appear between the name and the closing angle bracket.
	voidAttrs bool
}

// tagMatch is a single element found by a tagSet.
type tagMatch struct {
	start int // offset of the opening '<'
	end   int // offset just past the match
	name  string
	tag   atom.Atom
	attrs string // raw text between the tag name and '>'
	inner string // content between the start and end tags
	void  bool
}

// tagScanner finds the elements of a tagSet in a fixed string.
type tagScanner struct {
	set *tagSet
	s   string
	idx *indexCache
}

// scanner returns a tagScanner over s.
func (ts *tagSet) scanner(s string) *tagScanner {
	return &tagScanner{
		set: ts,
		s:   s,
		idx: newIndexCache(s, true),
	}
}

// find returns the leftmost element at or after the given offset.
// At a given position, paired tags take precedence over void tags.
// Successive calls should use nondecreasing offsets.
func (sc *tagScanner) find(from int) (tagMatch, bool) {
	for pos := from; pos < len(sc.s); pos++ {
		if sc.s[pos] != '<' {
			continue
		}
		if m, ok := sc.matchPaired(pos); ok {
			return m, true
		}
		if m, ok := sc.matchVoid(pos); ok {
			return m, true
		}
	}
	return tagMatch{}, false
}

func (sc *tagScanner) matchPaired(pos int) (tagMatch, bool) {
	rest := sc.s[pos+1:]
	for _, name := range sc.set.paired {
		if !hasTagNamePrefix(rest, name) {
			continue
		}
		gt := sc.idx.index(">", pos+1+len(name))
		if gt < 0 {
			continue
		}
		contentStart := gt + 1
		endTag := "</" + name + ">"
		contentEnd := sc.idx.index(endTag, contentStart)
		if contentEnd < 0 {
			continue
		}
		return tagMatch{
			start: pos,
			end:   contentEnd + len(endTag),
			name:  name,
			tag:   atom.Lookup([]byte(name)),
			attrs: sc.s[pos+1+len(name) : gt],
			inner: sc.s[contentStart:contentEnd],
		}, true
	}
	return tagMatch{}, false
}

func (sc *tagScanner) matchVoid(pos int) (tagMatch, bool) {
	rest := sc.s[pos+1:]
	for _, name := range sc.set.void {
		if !hasTagNamePrefix(rest, name) {
			continue
		}
		gt := sc.idx.index(">", pos+1+len(name))
		if gt < 0 {
			continue
		}
		attrs := sc.s[pos+1+len(name) : gt]
		if !sc.set.voidAttrs && strings.TrimSpace(strings.TrimSuffix(attrs, "/")) != "" {
			continue
		}
		return tagMatch{
			start: pos,
			end:   gt + 1,
			name:  name,
			tag:   atom.Lookup([]byte(name)),
			attrs: attrs,
			void:  true,
		}, true
	}
	return tagMatch{}, false
}

// hasTagNamePrefix reports whether s begins with the given tag name
// (ignoring ASCII case)
// followed by whitespace, a slash, or a closing angle bracket.
func hasTagNamePrefix(s, name string) bool {
	if len(s) <= len(name) || !equalFoldASCII(s[:len(name)], name) {
		return false
	}
	switch s[len(name)] {
	case ' ', '\t', '\n', '\r', '\f', '/', '>':
		return true
	default:
		return false
	}
}

// indexFold returns the index of the first instance of substr in s
// ignoring ASCII case,
// or -1 if substr is not present in s.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLowerASCII(a[i]) != toLowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
