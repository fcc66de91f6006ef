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

// Package telegraph converts Markdown and a restricted subset of HTML
// into the node tree accepted by the [Telegraph API].
//
// Both [ParseMarkdown] and [ParseHTML] are total:
// they never fail, and malformed input degrades to literal text.
//
// [Telegraph API]: https://telegra.ph/api#Node
package telegraph

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// NodeKind is an enumeration of values returned by [Node.Kind].
type NodeKind uint8

const (
	// TextKind is a run of literal text.
	TextKind NodeKind = 1 + iota
	// ElementKind is a tagged element with optional attributes and children.
	ElementKind
)

// Node is a single entry in a Telegraph content tree:
// either literal text or an element.
// The zero value is not a valid node.
// Nodes are immutable once constructed and can be shared freely.
type Node struct {
	kind     NodeKind
	text     string
	tag      atom.Atom
	attrs    map[string]string
	children []Node
}

// Text returns a text node.
func Text(s string) Node {
	return Node{kind: TextKind, text: s}
}

// Element returns an element node.
// An empty attrs map is treated the same as nil.
// Element copies attrs and children,
// so the caller may reuse them afterward.
func Element(tag atom.Atom, attrs map[string]string, children ...Node) Node {
	n := Node{kind: ElementKind, tag: tag}
	if len(attrs) > 0 {
		n.attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			n.attrs[k] = v
		}
	}
	if len(children) > 0 {
		n.children = append([]Node(nil), children...)
	}
	return n
}

// Kind returns the type of node or zero for the zero Node.
func (n Node) Kind() NodeKind {
	return n.kind
}

// Text returns the content of a [TextKind] node
// or the empty string for any other node.
func (n Node) Text() string {
	return n.text
}

// Tag returns the element's tag or zero for a text node.
func (n Node) Tag() atom.Atom {
	return n.tag
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (value string, ok bool) {
	value, ok = n.attrs[name]
	return value, ok
}

// Attrs returns a copy of the element's attributes
// or nil if the element has none.
func (n Node) Attrs() map[string]string {
	if len(n.attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		m[k] = v
	}
	return m
}

// Children returns the element's children in document order.
// The returned slice must not be modified.
func (n Node) Children() []Node {
	return n.children
}

// ChildCount returns the number of children the node has.
func (n Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i'th child of the node.
func (n Node) Child(i int) Node {
	return n.children[i]
}

// String returns a compact debugging representation of the node.
func (n Node) String() string {
	sb := new(strings.Builder)
	n.debugString(sb)
	return sb.String()
}

func (n Node) debugString(sb *strings.Builder) {
	switch n.kind {
	case TextKind:
		sb.WriteByte('"')
		sb.WriteString(n.text)
		sb.WriteByte('"')
	case ElementKind:
		sb.WriteString(n.tag.String())
		if v, ok := n.attrs["href"]; ok {
			sb.WriteString("(href=")
			sb.WriteString(v)
			sb.WriteByte(')')
		}
		if v, ok := n.attrs["src"]; ok {
			sb.WriteString("(src=")
			sb.WriteString(v)
			sb.WriteByte(')')
		}
		if len(n.children) > 0 {
			sb.WriteByte('[')
			for i, c := range n.children {
				if i > 0 {
					sb.WriteString(", ")
				}
				c.debugString(sb)
			}
			sb.WriteByte(']')
		}
	default:
		sb.WriteString("<nil>")
	}
}

// MergeText returns a new slice with every run of consecutive text nodes
// joined into a single text node.
// Empty text nodes are dropped.
// Element nodes are kept in their original order and are not descended into.
func MergeText(nodes []Node) []Node {
	var result []Node
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			result = append(result, Text(pending.String()))
			pending.Reset()
		}
	}
	for _, n := range nodes {
		if n.kind == TextKind {
			pending.WriteString(n.text)
			continue
		}
		flush()
		result = append(result, n)
	}
	flush()
	return result
}

// canonicalTags is the set of tags accepted by the Telegraph API.
var canonicalTags = map[atom.Atom]struct{}{
	atom.A:          {},
	atom.B:          {},
	atom.Blockquote: {},
	atom.Code:       {},
	atom.Em:         {},
	atom.Figcaption: {},
	atom.Figure:     {},
	atom.H3:         {},
	atom.H4:         {},
	atom.Hr:         {},
	atom.I:          {},
	atom.Img:        {},
	atom.Li:         {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.S:          {},
	atom.Strong:     {},
	atom.U:          {},
	atom.Ul:         {},
}

// IsCanonicalTag reports whether tag is part of the Telegraph content model.
func IsCanonicalTag(tag atom.Atom) bool {
	_, ok := canonicalTags[tag]
	return ok
}

// HeadingTag returns the tag used for a heading of the given level.
// Telegraph only supports two heading levels,
// so levels 3 and below collapse to h3 and the rest to h4.
func HeadingTag(level int) atom.Atom {
	if level <= 3 {
		return atom.H3
	}
	return atom.H4
}
