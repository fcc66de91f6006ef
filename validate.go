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
	"strconv"
	"strings"
)

// A ValidationError describes the first node in a tree
// that the Telegraph API would not accept.
type ValidationError struct {
	// Path is the sequence of child indices leading from the top-level slice
	// to the offending node.
	Path []int
	// Node is the offending node.
	Node Node
	// Reason is a short human-readable description of the problem.
	Reason string
}

func (e *ValidationError) Error() string {
	sb := new(strings.Builder)
	sb.WriteString("telegraph: node ")
	for i, idx := range e.Path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}

// allowedAttrs is the attribute each canonical tag may carry.
var allowedAttrs = map[string]string{
	"a":   "href",
	"img": "src",
}

// Validate reports whether the given nodes fit the Telegraph content model:
// every element uses a canonical tag,
// only links carry href and only images carry src,
// and no element has two adjacent text children.
// It returns a [*ValidationError] describing the first violation found
// in document order, or nil.
func Validate(nodes []Node) error {
	if err := validateSiblings(nodes, nil); err != nil {
		return err
	}
	var verr *ValidationError
	var path []int
	WalkAll(nodes, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if verr != nil {
				return false
			}
			path = append(path[:c.Depth()], c.Index())
			verr = validateNode(c.Node(), path)
			return verr == nil
		},
		Post: func(c *Cursor) bool {
			return verr == nil
		},
	})
	if verr != nil {
		return verr
	}
	return nil
}

func validateNode(n Node, path []int) *ValidationError {
	newError := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Path:   append([]int(nil), path...),
			Node:   n,
			Reason: fmt.Sprintf(format, args...),
		}
	}
	switch n.Kind() {
	case TextKind:
		return nil
	case ElementKind:
	default:
		return newError("zero node")
	}
	if !IsCanonicalTag(n.Tag()) {
		return newError("tag %q is not supported", n.Tag())
	}
	want := allowedAttrs[n.Tag().String()]
	for k := range n.Attrs() {
		if k != want {
			return newError("attribute %q is not allowed on %s", k, n.Tag())
		}
	}
	return validateSiblings(n.Children(), path)
}

func validateSiblings(nodes []Node, parentPath []int) *ValidationError {
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].Kind() == TextKind && nodes[i].Kind() == TextKind {
			return &ValidationError{
				Path:   append(append([]int(nil), parentPath...), i),
				Node:   nodes[i],
				Reason: "adjacent text nodes",
			}
		}
	}
	return nil
}
