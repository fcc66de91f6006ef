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

// Package format provides a function to write Telegraph nodes
// as Markdown that [telegraph.ParseMarkdown] reads back.
package format

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
	"zombiezen.com/go/telegraph"
)

// Format writes the given nodes as Markdown to the given writer.
// Blocks are separated by a blank line.
// Tags without a Markdown form (such as u) are dropped,
// keeping their content.
func Format(w io.Writer, nodes []telegraph.Node) error {
	ww := &errWriter{w: w}
	for i, root := range nodes {
		if i > 0 {
			ww.WriteString("\n")
		}
		telegraph.Walk(root, &telegraph.WalkOptions{
			Pre: func(c *telegraph.Cursor) bool {
				if c.Parent() == nil {
					return preBlock(ww, c.Node())
				}
				return preInline(ww, c)
			},
			Post: func(c *telegraph.Cursor) bool {
				if c.Parent() == nil {
					postBlock(ww, c.Node())
				} else {
					postInline(ww, c)
				}
				return ww.err == nil
			},
		})
		if ww.err != nil {
			return ww.err
		}
	}
	return ww.err
}

func preBlock(w *errWriter, n telegraph.Node) (descend bool) {
	if n.Kind() == telegraph.TextKind {
		// Post is skipped when Pre returns false,
		// so blocks without children end their own lines.
		writeText(w, n.Text())
		w.WriteString("\n")
		return false
	}
	switch n.Tag() {
	case atom.H1, atom.H2, atom.H3:
		w.WriteString("### ")
	case atom.H4, atom.H5, atom.H6:
		w.WriteString("#### ")
	case atom.Hr:
		w.WriteString("---\n")
		return false
	case atom.Pre:
		w.WriteString("```\n")
		w.WriteString(plainText(n))
		w.WriteString("\n```\n")
		return false
	case atom.Blockquote:
		w.WriteString("> ")
	case atom.Figure:
		w.WriteString("![")
	}
	return true
}

func postBlock(w *errWriter, n telegraph.Node) {
	switch n.Tag() {
	case atom.Ul, atom.Ol:
		// Items end their own lines.
		return
	case atom.Figure:
		w.WriteString("](")
		for _, c := range n.Children() {
			if src, ok := c.Attr("src"); ok && c.Tag() == atom.Img {
				w.WriteString(src)
				break
			}
		}
		w.WriteString(")")
	}
	w.WriteString("\n")
}

func preInline(w *errWriter, c *telegraph.Cursor) (descend bool) {
	n := c.Node()
	if n.Kind() == telegraph.TextKind {
		writeText(w, n.Text())
		return false
	}
	switch parent := c.Parent(); {
	case parent.Tag() == atom.Ul && n.Tag() == atom.Li:
		w.WriteString("- ")
		return true
	case parent.Tag() == atom.Ol && n.Tag() == atom.Li:
		w.WriteString(strconv.Itoa(c.Index() + 1))
		w.WriteString(". ")
		return true
	case parent.Tag() == atom.Figure && n.Tag() == atom.Img:
		// Written as part of the figure.
		return false
	}
	switch n.Tag() {
	case atom.Strong, atom.B:
		w.WriteString("**")
	case atom.Em, atom.I:
		w.WriteString("*")
	case atom.S:
		w.WriteString("~~")
	case atom.Code:
		w.WriteString("`")
		w.WriteString(plainText(n))
		w.WriteString("`")
		return false
	case atom.A:
		w.WriteString("[")
	case atom.Img:
		src, _ := n.Attr("src")
		w.WriteString("![](")
		w.WriteString(src)
		w.WriteString(")")
		return false
	}
	return true
}

func postInline(w *errWriter, c *telegraph.Cursor) {
	n := c.Node()
	if n.Kind() == telegraph.TextKind {
		return
	}
	if n.Tag() == atom.Li && c.Depth() == 1 {
		w.WriteString("\n")
		return
	}
	switch n.Tag() {
	case atom.Strong, atom.B:
		w.WriteString("**")
	case atom.Em, atom.I:
		w.WriteString("*")
	case atom.S:
		w.WriteString("~~")
	case atom.A:
		href, _ := n.Attr("href")
		w.WriteString("](")
		w.WriteString(href)
		w.WriteString(")")
	}
}

// writeText writes inline text on a single line.
func writeText(w *errWriter, s string) {
	w.WriteString(strings.ReplaceAll(s, "\n", " "))
}

// plainText returns the concatenated text of n and its descendants.
func plainText(n telegraph.Node) string {
	sb := new(strings.Builder)
	telegraph.Walk(n, &telegraph.WalkOptions{
		Pre: func(c *telegraph.Cursor) bool {
			sb.WriteString(c.Node().Text())
			return true
		},
	})
	return sb.String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
