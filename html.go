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

	"golang.org/x/net/html/atom"
)

var blockTags = &tagSet{
	paired: []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "pre", "blockquote", "ul", "ol", "figure", "hr", "aside",
	},
	void: []string{"hr", "br"},
}

var listItemTags = &tagSet{
	paired: []string{"li"},
}

// documentWrapperREs match the markup around a document's content.
// The head element is removed along with everything inside it.
var documentWrapperREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<!DOCTYPE[^>]*>`),
	regexp.MustCompile(`(?i)</?html[^>]*>`),
	regexp.MustCompile(`(?is)<head>.*?</head>`),
	regexp.MustCompile(`(?i)</?body[^>]*>`),
}

var (
	codeTagRE       = regexp.MustCompile(`(?i)</?code[^>]*>`)
	figureImageRE   = regexp.MustCompile(`(?i)<img[^>]*src=["']([^"']+)["'][^>]*>`)
	figureCaptionRE = regexp.MustCompile(`(?is)<figcaption[^>]*>(.*?)</figcaption>`)
)

// ParseHTML converts an HTML document or fragment
// into a sequence of block nodes.
// Text outside of any recognized block element is wrapped in paragraphs.
// ParseHTML never returns an empty slice:
// if no blocks are found,
// the result is a single paragraph holding the input verbatim.
func ParseHTML(html string) []Node {
	content := html
	for _, re := range documentWrapperREs {
		content = re.ReplaceAllString(content, "")
	}
	content = strings.TrimSpace(content)

	var result []Node
	loose := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, Element(atom.P, nil, ParseHTMLInline(s)...))
		}
	}
	sc := blockTags.scanner(content)
	pos := 0
	for {
		m, ok := sc.find(pos)
		if !ok {
			break
		}
		loose(content[pos:m.start])
		if node, ok := htmlBlock(m); ok {
			result = append(result, node)
		}
		pos = m.end
	}
	loose(content[pos:])

	if len(result) == 0 {
		if html == "" {
			return []Node{Element(atom.P, nil)}
		}
		return []Node{Element(atom.P, nil, Text(html))}
	}
	return result
}

// htmlBlock converts a matched block element.
// It returns false for elements that produce no output.
func htmlBlock(m tagMatch) (Node, bool) {
	if m.void {
		if m.tag == atom.Hr {
			return Element(atom.Hr, nil), true
		}
		return Node{}, false
	}
	switch m.tag {
	case atom.Hr:
		return Element(atom.Hr, nil), true
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(m.name[1] - '0')
		return Element(HeadingTag(level), nil, ParseHTMLInline(m.inner)...), true
	case atom.Ul, atom.Ol:
		return Element(m.tag, nil, parseHTMLListItems(m.inner)...), true
	case atom.Figure:
		return parseHTMLFigure(m.inner), true
	case atom.Pre:
		code := codeTagRE.ReplaceAllString(m.inner, "")
		return Element(atom.Pre, nil, Text(decodeEntities(code))), true
	default:
		return Element(m.tag, nil, ParseHTMLInline(m.inner)...), true
	}
}

func parseHTMLListItems(html string) []Node {
	var items []Node
	sc := listItemTags.scanner(html)
	pos := 0
	for {
		m, ok := sc.find(pos)
		if !ok {
			return items
		}
		items = append(items, Element(atom.Li, nil, ParseHTMLInline(m.inner)...))
		pos = m.end
	}
}

// parseHTMLFigure extracts the first image and the caption of a figure.
func parseHTMLFigure(html string) Node {
	var children []Node
	if img := figureImageRE.FindStringSubmatch(html); img != nil {
		children = append(children, Element(atom.Img, map[string]string{"src": img[1]}))
	}
	if caption := figureCaptionRE.FindStringSubmatch(html); caption != nil {
		children = append(children, Element(atom.Figcaption, nil, ParseHTMLInline(caption[1])...))
	}
	return Element(atom.Figure, nil, children...)
}
