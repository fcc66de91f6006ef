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

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

var inlineTags = &tagSet{
	paired:    []string{"strong", "b", "em", "i", "u", "s", "strike", "del", "code", "a"},
	void:      []string{"br", "img"},
	voidAttrs: true,
}

// inlineTagMap maps HTML inline tags to their Telegraph equivalents.
// Tags not present in the map are used as-is.
var inlineTagMap = map[atom.Atom]atom.Atom{
	atom.Strike: atom.S,
	atom.Del:    atom.S,
}

var (
	hrefAttrRE  = regexp.MustCompile(`(?i)href=["']([^"']+)["']`)
	srcAttrRE   = regexp.MustCompile(`(?i)src=["']([^"']+)["']`)
	lineBreakRE = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// entityDecoders are applied in order,
// each to the output of the previous one,
// so "&amp;lt;" decodes to "<".
var entityDecoders = []*bytereplacer.Replacer{
	bytereplacer.New("&amp;", "&"),
	bytereplacer.New("&lt;", "<"),
	bytereplacer.New("&gt;", ">"),
	bytereplacer.New("&quot;", `"`),
	bytereplacer.New("&#39;", "'"),
	bytereplacer.New("&nbsp;", " "),
}

// ParseHTMLInline converts an HTML fragment into a sequence of inline nodes.
// Recognized formatting tags become elements;
// everything else, including unrecognized tags, is kept as decoded text.
func ParseHTMLInline(html string) []Node {
	var result []Node
	sc := inlineTags.scanner(html)
	pos := 0
	for {
		m, ok := sc.find(pos)
		if !ok {
			break
		}
		result = append(result, Text(decodeEntities(html[pos:m.start])))
		switch {
		case m.tag == atom.Br:
			result = append(result, Text("\n"))
		case m.tag == atom.Img:
			if src := srcAttrRE.FindStringSubmatch(m.attrs); src != nil {
				result = append(result, Element(atom.Img, map[string]string{"src": src[1]}))
			}
		default:
			tag := m.tag
			if mapped, ok := inlineTagMap[tag]; ok {
				tag = mapped
			}
			var attrs map[string]string
			if tag == atom.A {
				if href := hrefAttrRE.FindStringSubmatch(m.attrs); href != nil {
					attrs = map[string]string{"href": href[1]}
				}
			}
			result = append(result, Element(tag, attrs, ParseHTMLInline(m.inner)...))
		}
		pos = m.end
	}
	result = append(result, Text(decodeEntities(html[pos:])))
	return MergeText(result)
}

// decodeEntities replaces the small set of character references
// Telegraph content commonly carries
// and then turns <br> tags, including decoded ones, into newlines.
func decodeEntities(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for _, r := range entityDecoders {
		b = r.Replace(b)
	}
	return lineBreakRE.ReplaceAllString(string(b), "\n")
}
