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

// A Cursor describes a [Node] encountered during [Walk].
type Cursor struct {
	node   Node
	parent *Node
	index  int
	depth  int
}

// Node returns the current [Node].
func (c *Cursor) Node() Node {
	return c.node
}

// Parent returns the parent of the current [Node]
// or nil if the current node is the root of the walk.
func (c *Cursor) Parent() *Node {
	return c.parent
}

// Index returns the position of the current [Node]
// within its parent's children,
// or -1 if the current node is the root passed to [Walk].
func (c *Cursor) Index() int {
	return c.index
}

// Depth returns the number of ancestors between the current [Node]
// and the root of the walk.
func (c *Cursor) Depth() int {
	return c.depth
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each node before the node's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that node.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each node after the node's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
}

type walkFrame struct {
	node   Node
	parent *Node
	index  int
	depth  int
	post   bool
}

// Walk traverses a [Node] recursively, starting with root,
// and calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(root Node, opts *WalkOptions) {
	walk([]walkFrame{{node: root, index: -1}}, opts)
}

// WalkAll traverses each of the given sibling nodes in order
// as if they were the children of an implicit parent.
// The top-level nodes report a nil [Cursor.Parent]
// and their position in nodes as [Cursor.Index].
// A Post callback returning false stops the entire traversal.
func WalkAll(nodes []Node, opts *WalkOptions) {
	stack := make([]walkFrame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{node: nodes[i], index: i})
	}
	walk(stack, opts)
}

func walk(stack []walkFrame, opts *WalkOptions) {
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.node = curr.node
		cursor.parent = curr.parent
		cursor.index = curr.index
		cursor.depth = curr.depth
		if curr.post {
			if opts.Post != nil && !opts.Post(cursor) {
				break
			}
			continue
		}

		if opts.Pre != nil && !opts.Pre(cursor) {
			continue
		}
		curr.post = true
		stack = append(stack, curr)
		parent := new(Node)
		*parent = curr.node
		for i := curr.node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{
				node:   curr.node.Child(i),
				parent: parent,
				index:  i,
				depth:  curr.depth + 1,
			})
		}
	}
}
