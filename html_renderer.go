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
	"fmt"
	"io"
	"sort"

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&#39;", // "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// An HTMLRenderer converts Telegraph nodes into HTML.
//
// The output uses the Telegraph content model directly,
// so rendering the result of [ParseHTML] for a document
// that only uses canonical tags reproduces the document's structure.
type HTMLRenderer struct {
	// FilterTag is a predicate function
	// that reports whether an element with the given tag
	// should have its start and end tags escaped,
	// so that they show up as text.
	// The element's children are rendered normally.
	// If FilterTag is nil, then no filtering will occur.
	FilterTag func(tag atom.Atom) bool
}

// RenderHTML writes the given nodes to the given writer as HTML
// using the default options for [HTMLRenderer].
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, nodes []Node) error {
	return new(HTMLRenderer).Render(w, nodes)
}

// Render writes the given nodes to the given writer as HTML.
// It will return the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, nodes []Node) error {
	var buf []byte
	for _, n := range nodes {
		buf = r.AppendNode(buf[:0], n)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render telegraph nodes to html: %w", err)
		}
	}
	return nil
}

// AppendNode appends the rendered HTML of a node to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendNode(dst []byte, n Node) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
	}
	state.node(n)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst []byte
}

func (r *renderState) node(n Node) {
	switch n.Kind() {
	case TextKind:
		r.dst = append(r.dst, htmlEscaper.Replace([]byte(n.Text()))...)
	case ElementKind:
		filtered := r.FilterTag != nil && r.FilterTag(n.Tag())
		r.openTag(n, filtered)
		if isVoidTag(n.Tag()) {
			return
		}
		for _, c := range n.Children() {
			r.node(c)
		}
		r.closeTag(n.Tag(), filtered)
	}
}

func (r *renderState) openTag(n Node, filtered bool) {
	if filtered {
		r.dst = append(r.dst, "&lt;"...)
	} else {
		r.dst = append(r.dst, '<')
	}
	r.dst = append(r.dst, n.Tag().String()...)
	attrs := n.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.dst = append(r.dst, ' ')
		r.dst = append(r.dst, k...)
		r.dst = append(r.dst, `="`...)
		r.dst = append(r.dst, htmlEscaper.Replace([]byte(attrs[k]))...)
		r.dst = append(r.dst, '"')
	}
	if filtered {
		r.dst = append(r.dst, "&gt;"...)
	} else {
		r.dst = append(r.dst, '>')
	}
}

func (r *renderState) closeTag(tag atom.Atom, filtered bool) {
	if filtered {
		r.dst = append(r.dst, "&lt;/"...)
		r.dst = append(r.dst, tag.String()...)
		r.dst = append(r.dst, "&gt;"...)
		return
	}
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, tag.String()...)
	r.dst = append(r.dst, '>')
}

func isVoidTag(tag atom.Atom) bool {
	return tag == atom.Hr || tag == atom.Img || tag == atom.Br
}
