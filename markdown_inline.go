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

// markdownSpecialChars are the bytes that may begin an inline span.
const markdownSpecialChars = "*_~`[!"

// emphasisDelims lists the triple, double, and single emphasis delimiters
// for each emphasis character.
var emphasisDelims = map[byte][3]string{
	'*': {"***", "**", "*"},
	'_': {"___", "__", "_"},
}

// ParseMarkdownInline converts a single line of Markdown
// into a sequence of inline nodes.
// Unbalanced delimiters are kept as literal text.
func ParseMarkdownInline(text string) []Node {
	sc := newInlineScanner(text)
	var result []Node
	for pos := 0; pos < len(text); {
		if node, end := sc.span(pos); end > pos {
			result = append(result, node)
			pos = end
			continue
		}

		if strings.IndexByte(markdownSpecialChars, text[pos]) >= 0 {
			// A special character that did not begin a span is literal.
			result = append(result, Text(text[pos:pos+1]))
			pos++
			continue
		}
		end := strings.IndexAny(text[pos:], markdownSpecialChars)
		if end < 0 {
			end = len(text) - pos
		}
		result = append(result, Text(text[pos:pos+end]))
		pos += end
	}
	return MergeText(result)
}

// inlineScanner matches inline spans in a line of Markdown.
type inlineScanner struct {
	text string
	idx  *indexCache
}

func newInlineScanner(text string) *inlineScanner {
	return &inlineScanner{
		text: text,
		idx:  newIndexCache(text, false),
	}
}

// span attempts each inline span form in precedence order at pos.
// It returns the offset just past the span, or zero if no span matched.
func (sc *inlineScanner) span(pos int) (_ Node, end int) {
	switch c := sc.text[pos]; c {
	case '*', '_':
		delims := emphasisDelims[c]
		if inner, end := sc.delimited(pos, delims[0]); end > 0 {
			// Triple emphasis content is intentionally not parsed further.
			return Element(atom.Strong, nil, Element(atom.Em, nil, Text(inner))), end
		}
		if inner, end := sc.delimited(pos, delims[1]); end > 0 {
			return Element(atom.Strong, nil, ParseMarkdownInline(inner)...), end
		}
		if inner, end := sc.delimited(pos, delims[2]); end > 0 {
			return Element(atom.Em, nil, ParseMarkdownInline(inner)...), end
		}
	case '~':
		if inner, end := sc.delimited(pos, "~~"); end > 0 {
			return Element(atom.S, nil, ParseMarkdownInline(inner)...), end
		}
	case '`':
		if closing := sc.idx.index("`", pos+1); closing > pos+1 {
			return Element(atom.Code, nil, Text(sc.text[pos+1:closing])), closing + 1
		}
	case '[':
		if label, dest, end := sc.linkTail(pos + 1); end > 0 && label != "" {
			return Element(atom.A, map[string]string{"href": dest}, ParseMarkdownInline(label)...), end
		}
	case '!':
		if strings.HasPrefix(sc.text[pos:], "![") {
			if _, dest, end := sc.linkTail(pos + 2); end > 0 {
				return Element(atom.Img, map[string]string{"src": dest}), end
			}
		}
	}
	return Node{}, 0
}

// delimited matches delim at pos, at least one byte of content,
// and the nearest following occurrence of delim.
// The content may not span a line break.
// It returns the content and the offset just past the closing delimiter,
// or zero if there is no delimited span at pos.
func (sc *inlineScanner) delimited(pos int, delim string) (inner string, end int) {
	if !strings.HasPrefix(sc.text[pos:], delim) {
		return "", 0
	}
	start := pos + len(delim)
	if start >= len(sc.text) || isLineBreakByte(sc.text[start]) {
		return "", 0
	}
	closing := sc.idx.index(delim, start+1)
	if closing < 0 {
		return "", 0
	}
	if brk := sc.lineBreak(start); brk >= 0 && brk < closing {
		return "", 0
	}
	return sc.text[start:closing], closing + len(delim)
}

// lineBreak returns the offset of the first CR or LF at or after from,
// or -1 if there is none.
func (sc *inlineScanner) lineBreak(from int) int {
	lf := sc.idx.index("\n", from)
	cr := sc.idx.index("\r", from)
	if cr >= 0 && (lf < 0 || cr < lf) {
		return cr
	}
	return lf
}

// linkTail parses the "label](destination)" portion of a link or image,
// with from just after the opening bracket.
// The label may be empty; the destination may not.
// It returns the offset just past the closing parenthesis,
// or zero if the text at from does not match.
func (sc *inlineScanner) linkTail(from int) (label, dest string, end int) {
	labelEnd := sc.idx.index("]", from)
	if labelEnd < 0 || !strings.HasPrefix(sc.text[labelEnd+1:], "(") {
		return "", "", 0
	}
	destStart := labelEnd + 2
	destEnd := sc.idx.index(")", destStart)
	if destEnd <= destStart {
		return "", "", 0
	}
	return sc.text[from:labelEnd], sc.text[destStart:destEnd], destEnd + 1
}

func isLineBreakByte(c byte) bool {
	return c == '\n' || c == '\r'
}
