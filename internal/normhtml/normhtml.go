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

// Package normhtml provides a function for normalizing HTML
// so that two fragments describing the same Telegraph content compare equal.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// keptAttrs is the set of attributes that survive normalization.
// Telegraph content carries no other attributes.
var keptAttrs = map[string]struct{}{
	"href": {},
	"src":  {},
}

// NormalizeHTML strips insignificant differences from an HTML fragment:
// tag and attribute case, attribute order and quoting,
// attributes other than href and src,
// character reference spelling,
// and whitespace around block elements.
// Whitespace inside text is collapsed to a single space
// except within pre elements.
func NormalizeHTML(b []byte) []byte {
	type htmlAttribute struct {
		key   string
		value string
	}

	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	last := html.StartTagToken
	var lastTag atom.Atom
	inPre := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return bytes.TrimSpace(output)
		case html.TextToken:
			data := tok.Text()
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
				if afterTag := last != html.TextToken; afterTag && isBlockTag(lastTag) {
					data = bytes.TrimLeftFunc(data, unicode.IsSpace)
				}
			}
			output = append(output, htmlEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := atom.Lookup(name)
			if tag == atom.Pre {
				inPre = false
			} else if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = append(output, name...)
			output = append(output, '>')
			lastTag = tag
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			tag := atom.Lookup(name)
			if tag == atom.Pre {
				inPre = true
			}
			if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, '<')
			output = append(output, name...)
			var attrs []htmlAttribute
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = tok.TagAttr()
				if _, ok := keptAttrs[string(k)]; ok {
					attrs = append(attrs, htmlAttribute{string(k), string(v)})
				}
			}
			sort.Slice(attrs, func(i, j int) bool {
				return attrs[i].key < attrs[j].key
			})
			for _, attr := range attrs {
				output = append(output, ' ')
				output = append(output, attr.key...)
				output = append(output, `="`...)
				output = append(output, htmlEscaper.Replace([]byte(attr.value))...)
				output = append(output, '"')
			}
			output = append(output, '>')
			lastTag = tag
		}

		last = tt
		if tt == html.SelfClosingTagToken {
			last = html.EndTagToken
		}
	}
}

var blockTags = map[atom.Atom]struct{}{
	atom.Aside:      {},
	atom.Blockquote: {},
	atom.Figcaption: {},
	atom.Figure:     {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.H4:         {},
	atom.H5:         {},
	atom.H6:         {},
	atom.Hr:         {},
	atom.Li:         {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.Ul:         {},
}

func isBlockTag(tag atom.Atom) bool {
	_, ok := blockTags[tag]
	return ok
}
