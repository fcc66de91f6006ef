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
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

var (
	thematicBreakRE   = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	atxHeadingRE      = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletItemRE      = regexp.MustCompile(`^[*\-+]\s+`)
	orderedItemRE     = regexp.MustCompile(`^[0-9]+\.\s+`)
	standaloneImageRE = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)

	// paragraphBreakRE matches lines that end a paragraph.
	paragraphBreakRE = regexp.MustCompile("^(?:#{1,6}\\s|```|>|\\*\\s|-\\s|\\+\\s|[0-9]+\\.\\s|!\\[|---)")
)

const codeFence = "```"

// ParseMarkdown converts a Markdown document into a sequence of block nodes.
// It never fails: anything it does not recognize becomes paragraph text.
// The result is never nil, so a document without blocks
// encodes as an empty JSON array.
func ParseMarkdown(markdown string) []Node {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	c := &lineCursor{lines: lines}
	result := []Node{}
	for {
		line, ok := c.peek()
		if !ok {
			return result
		}
		if isBlankLine(line) {
			c.advance()
			continue
		}
		for _, start := range markdownBlockStarts {
			if node, ok := start(c); ok {
				result = append(result, node)
				break
			}
		}
	}
}

// lineCursor is a position in a sequence of lines.
type lineCursor struct {
	lines []string
	pos   int
}

// peek returns the line at the cursor
// or false if all lines have been consumed.
func (c *lineCursor) peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}

// advance moves the cursor to the next line.
func (c *lineCursor) advance() {
	c.pos++
}

// collect consumes lines for as long as f reports true,
// returning the values f produced.
func (c *lineCursor) collect(f func(line string) (string, bool)) []string {
	var collected []string
	for {
		line, ok := c.peek()
		if !ok {
			return collected
		}
		s, ok := f(line)
		if !ok {
			return collected
		}
		collected = append(collected, s)
		c.advance()
	}
}

// markdownBlockStarts is the list of block constructs in priority order.
// Each function either consumes the block at the cursor and returns true,
// or returns false without moving the cursor.
// The last function always matches.
var markdownBlockStarts = []func(c *lineCursor) (Node, bool){
	// Thematic break.
	func(c *lineCursor) (Node, bool) {
		line, _ := c.peek()
		if !thematicBreakRE.MatchString(strings.TrimSpace(line)) {
			return Node{}, false
		}
		c.advance()
		return Element(atom.Hr, nil), true
	},

	// ATX heading.
	func(c *lineCursor) (Node, bool) {
		line, _ := c.peek()
		m := atxHeadingRE.FindStringSubmatch(line)
		if m == nil {
			return Node{}, false
		}
		c.advance()
		return Element(HeadingTag(len(m[1])), nil, ParseMarkdownInline(m[2])...), true
	},

	// Fenced code block.
	func(c *lineCursor) (Node, bool) {
		line, _ := c.peek()
		if !isCodeFence(line) {
			return Node{}, false
		}
		c.advance()
		code := c.collect(func(line string) (string, bool) {
			return line, !isCodeFence(line)
		})
		// Closing fence, if any.
		c.advance()
		return Element(atom.Pre, nil, Text(strings.Join(code, "\n"))), true
	},

	// Block quote.
	func(c *lineCursor) (Node, bool) {
		quote := c.collect(func(line string) (string, bool) {
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
			if !strings.HasPrefix(line, ">") {
				return "", false
			}
			line = line[1:]
			if r, size := utf8.DecodeRuneInString(line); size > 0 && unicode.IsSpace(r) {
				line = line[size:]
			}
			return line, true
		})
		if len(quote) == 0 {
			return Node{}, false
		}
		return Element(atom.Blockquote, nil, ParseMarkdownInline(strings.Join(quote, " "))...), true
	},

	// Bullet list.
	func(c *lineCursor) (Node, bool) {
		return parseMarkdownList(c, atom.Ul, bulletItemRE)
	},

	// Ordered list.
	func(c *lineCursor) (Node, bool) {
		return parseMarkdownList(c, atom.Ol, orderedItemRE)
	},

	// Standalone image.
	func(c *lineCursor) (Node, bool) {
		line, _ := c.peek()
		m := standaloneImageRE.FindStringSubmatch(line)
		if m == nil {
			return Node{}, false
		}
		c.advance()
		img := Element(atom.Img, map[string]string{"src": m[2]})
		if m[1] == "" {
			return Element(atom.Figure, nil, img), true
		}
		caption := Element(atom.Figcaption, nil, ParseMarkdownInline(m[1])...)
		return Element(atom.Figure, nil, img, caption), true
	},

	// Paragraph.
	func(c *lineCursor) (Node, bool) {
		// The first line is always taken so that lines which look like,
		// but are not, another construct still make progress.
		first, _ := c.peek()
		c.advance()
		rest := c.collect(func(line string) (string, bool) {
			return line, !isBlankLine(line) && !paragraphBreakRE.MatchString(line)
		})
		text := strings.Join(append([]string{first}, rest...), " ")
		return Element(atom.P, nil, ParseMarkdownInline(text)...), true
	},
}

// parseMarkdownList collects consecutive list items whose trimmed line matches marker.
func parseMarkdownList(c *lineCursor, tag atom.Atom, marker *regexp.Regexp) (Node, bool) {
	var items []Node
	c.collect(func(line string) (string, bool) {
		if !marker.MatchString(strings.TrimSpace(line)) {
			return "", false
		}
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		text := line[marker.FindStringIndex(line)[1]:]
		items = append(items, Element(atom.Li, nil, ParseMarkdownInline(text)...))
		return text, true
	})
	if len(items) == 0 {
		return Node{}, false
	}
	return Element(tag, nil, items...), true
}

func isCodeFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), codeFence)
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
