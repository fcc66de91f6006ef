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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html/atom"
)

func TestMergeText(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []Node
	}{
		{
			name:  "Nil",
			nodes: nil,
			want:  nil,
		},
		{
			name:  "Single",
			nodes: []Node{Text("a")},
			want:  []Node{Text("a")},
		},
		{
			name:  "Adjacent",
			nodes: []Node{Text("a"), Text("b"), Text("c")},
			want:  []Node{Text("abc")},
		},
		{
			name:  "DropsEmpty",
			nodes: []Node{Text(""), Element(atom.Hr, nil), Text("")},
			want:  []Node{Element(atom.Hr, nil)},
		},
		{
			name: "AroundElements",
			nodes: []Node{
				Text("a"),
				Text(""),
				Text("b"),
				Element(atom.Em, nil, Text("x")),
				Text("c"),
			},
			want: []Node{
				Text("ab"),
				Element(atom.Em, nil, Text("x")),
				Text("c"),
			},
		},
		{
			name:  "DoesNotDescend",
			nodes: []Node{Element(atom.P, nil, Text("a"), Text("b"))},
			want:  []Node{Element(atom.P, nil, Text("a"), Text("b"))},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := MergeText(test.nodes)
			if diff := cmp.Diff(test.want, got, nodeCompareOptions); diff != "" {
				t.Errorf("MergeText(...) (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, MergeText(got), nodeCompareOptions); diff != "" {
				t.Errorf("MergeText not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestElementCopiesArguments(t *testing.T) {
	attrs := map[string]string{"href": "https://example.com/"}
	children := []Node{Text("a")}
	n := Element(atom.A, attrs, children...)
	attrs["href"] = "https://example.org/"
	children[0] = Text("b")

	if got, _ := n.Attr("href"); got != "https://example.com/" {
		t.Errorf("n.Attr(\"href\") = %q; want %q", got, "https://example.com/")
	}
	if got := n.Child(0).Text(); got != "a" {
		t.Errorf("n.Child(0).Text() = %q; want %q", got, "a")
	}
	n.Attrs()["href"] = "mutated"
	if got, _ := n.Attr("href"); got != "https://example.com/" {
		t.Errorf("after modifying Attrs(), n.Attr(\"href\") = %q; want %q", got, "https://example.com/")
	}
}

func TestElementEmptyAttrs(t *testing.T) {
	n := Element(atom.P, map[string]string{})
	if attrs := n.Attrs(); attrs != nil {
		t.Errorf("Element(atom.P, {}).Attrs() = %v; want nil", attrs)
	}
	if _, ok := n.Attr("href"); ok {
		t.Error("Element(atom.P, {}).Attr(\"href\") reported present")
	}
}

func TestHeadingTag(t *testing.T) {
	want := []atom.Atom{atom.H3, atom.H3, atom.H3, atom.H4, atom.H4, atom.H4}
	for i, w := range want {
		level := i + 1
		if got := HeadingTag(level); got != w {
			t.Errorf("HeadingTag(%d) = %v; want %v", level, got, w)
		}
	}
}

func TestIsCanonicalTag(t *testing.T) {
	for _, tag := range []atom.Atom{atom.P, atom.H3, atom.H4, atom.Figcaption, atom.U} {
		if !IsCanonicalTag(tag) {
			t.Errorf("IsCanonicalTag(%v) = false; want true", tag)
		}
	}
	for _, tag := range []atom.Atom{0, atom.H1, atom.Aside, atom.Br, atom.Div, atom.Strike} {
		if IsCanonicalTag(tag) {
			t.Errorf("IsCanonicalTag(%v) = true; want false", tag)
		}
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{}, "<nil>"},
		{Text("hi"), `"hi"`},
		{Element(atom.Hr, nil), "hr"},
		{
			Element(atom.P, nil,
				Text("a"),
				Element(atom.A, map[string]string{"href": "u"}, Text("b")),
			),
			`p["a", a(href=u)["b"]]`,
		},
		{
			Element(atom.Figure, nil, Element(atom.Img, map[string]string{"src": "x.png"})),
			"figure[img(src=x.png)]",
		},
	}
	for _, test := range tests {
		if got := test.node.String(); got != test.want {
			t.Errorf("String() = %q; want %q", got, test.want)
		}
	}
}
