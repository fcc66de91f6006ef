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

package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/net/html/atom"
	"zombiezen.com/go/telegraph"
	"zombiezen.com/go/telegraph/internal/testcorpus"
)

var nodeCompareOptions = cmp.Options{
	cmp.AllowUnexported(telegraph.Node{}),
	cmpopts.EquateEmpty(),
}

func TestFormat(t *testing.T) {
	text := telegraph.Text
	elem := telegraph.Element

	tests := []struct {
		name  string
		nodes []telegraph.Node
		want  string
	}{
		{
			name:  "Empty",
			nodes: nil,
			want:  "",
		},
		{
			name: "Blocks",
			nodes: []telegraph.Node{
				elem(atom.H3, nil, text("Title")),
				elem(atom.P, nil, text("Hello, "), elem(atom.Strong, nil, text("World")), text("!")),
				elem(atom.Hr, nil),
				elem(atom.Pre, nil, text("a := 1\nb := 2")),
				elem(atom.Blockquote, nil, text("quoted")),
			},
			want: "### Title\n" +
				"\n" +
				"Hello, **World**!\n" +
				"\n" +
				"---\n" +
				"\n" +
				"```\na := 1\nb := 2\n```\n" +
				"\n" +
				"> quoted\n",
		},
		{
			name: "Lists",
			nodes: []telegraph.Node{
				elem(atom.Ul, nil,
					elem(atom.Li, nil, text("a")),
					elem(atom.Li, nil, elem(atom.Em, nil, text("b"))),
				),
				elem(atom.Ol, nil,
					elem(atom.Li, nil, text("x")),
					elem(atom.Li, nil, text("y")),
				),
			},
			want: "- a\n- *b*\n\n1. x\n2. y\n",
		},
		{
			name: "Figure",
			nodes: []telegraph.Node{
				elem(atom.Figure, nil,
					elem(atom.Img, map[string]string{"src": "cat.jpg"}),
					elem(atom.Figcaption, nil, text("A "), elem(atom.Em, nil, text("cat"))),
				),
			},
			want: "![A *cat*](cat.jpg)\n",
		},
		{
			name: "Inline",
			nodes: []telegraph.Node{
				elem(atom.P, nil,
					elem(atom.S, nil, text("x")),
					text(" "),
					elem(atom.Code, nil, text("a*b")),
					text(" "),
					elem(atom.A, map[string]string{"href": "u"}, text("link")),
					text(" "),
					elem(atom.Img, map[string]string{"src": "i.png"}),
				),
			},
			want: "~~x~~ `a*b` [link](u) ![](i.png)\n",
		},
		{
			name: "TripleEmphasis",
			nodes: []telegraph.Node{
				elem(atom.P, nil, elem(atom.Strong, nil, elem(atom.Em, nil, text("x")))),
			},
			want: "***x***\n",
		},
		{
			name: "HTMLTags",
			nodes: []telegraph.Node{
				elem(atom.H1, nil, text("a")),
				elem(atom.H5, nil, text("b")),
				elem(atom.P, nil,
					elem(atom.B, nil, text("b")),
					text(" "),
					elem(atom.I, nil, text("i")),
					text(" "),
					elem(atom.U, nil, text("u")),
				),
				elem(atom.Aside, nil, text("n")),
			},
			want: "### a\n\n#### b\n\n**b** *i* u\n\nn\n",
		},
		{
			name:  "LineBreaks",
			nodes: []telegraph.Node{elem(atom.P, nil, text("one\ntwo"))},
			want:  "one two\n",
		},
		{
			name:  "TopLevelText",
			nodes: []telegraph.Node{text("loose")},
			want:  "loose\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := new(strings.Builder)
			if err := Format(got, test.nodes); err != nil {
				t.Error("Format:", err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tests := []string{
		"# Title\n\nHello, **World**!",
		"- a\n- *b*\n\n1. x\n2. y",
		"```go\ncode *here*\n\n  indented\n```",
		"> quote [link](u)",
		"![cap](x.png)",
		"***both*** and ~~gone~~ with `code`",
		"a\n\n---\n\nb",
		"![](i.png) after",
		"one\ntwo\n- three",
	}
	for _, input := range tests {
		want := telegraph.ParseMarkdown(input)
		formatted := new(strings.Builder)
		if err := Format(formatted, want); err != nil {
			t.Errorf("Format(ParseMarkdown(%q)): %v", input, err)
			continue
		}
		got := telegraph.ParseMarkdown(formatted.String())
		if diff := cmp.Diff(want, got, nodeCompareOptions); diff != "" {
			t.Errorf("ParseMarkdown(Format(ParseMarkdown(%q))) (-want +got):\n%s\nformatted:\n%s",
				input, diff, formatted)
		}
	}
}

func FuzzFormat(f *testing.F) {
	examples, err := testcorpus.LoadFormat(testcorpus.Markdown)
	if err != nil {
		f.Fatal(err)
	}
	for _, ex := range examples {
		f.Add(ex.Input)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		nodes := telegraph.ParseMarkdown(markdown)
		got := new(strings.Builder)
		if err := Format(got, nodes); err != nil {
			t.Fatal("Format #1:", err)
		}

		formattedNodes := telegraph.ParseMarkdown(got.String())
		if diff := cmp.Diff(nodes, formattedNodes, nodeCompareOptions); diff != "" {
			// Literal delimiters in text are not escaped,
			// so some documents change meaning when reformatted.
			t.Skipf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nDiff (-want +got):\n%s", markdown, got, diff)
		}

		reformatted := new(strings.Builder)
		if err := Format(reformatted, formattedNodes); err != nil {
			t.Error("Format #2:", err)
		}
		if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}

func TestFormatWriteError(t *testing.T) {
	errFull := errors.New("disk full")
	nodes := []telegraph.Node{
		telegraph.Element(atom.P, nil, telegraph.Text("a")),
		telegraph.Element(atom.P, nil, telegraph.Text("b")),
	}
	if err := Format(failWriter{errFull}, nodes); !errors.Is(err, errFull) {
		t.Errorf("Format(...) = %v; want %v", err, errFull)
	}
}

func TestPlainText(t *testing.T) {
	n := telegraph.Element(atom.Code, nil,
		telegraph.Text("a"),
		telegraph.Element(atom.Em, nil, telegraph.Text("b")),
		telegraph.Text("c"),
	)
	if got, want := plainText(n), "abc"; got != want {
		t.Errorf("plainText(%v) = %q; want %q", n, got, want)
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
