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
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/net/html/atom"
)

type jsonElement struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// MarshalJSON encodes the node in the shape the Telegraph API expects:
// a JSON string for text
// and an object with "tag", "attrs", and "children" fields for an element.
// Absent attributes and children are omitted.
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case TextKind:
		return json.Marshal(n.text)
	case ElementKind:
		return json.Marshal(jsonElement{
			Tag:      n.tag.String(),
			Attrs:    n.attrs,
			Children: n.children,
		})
	default:
		return nil, fmt.Errorf("telegraph: marshal zero node")
	}
}

// UnmarshalJSON decodes a node from either a JSON string or an element object.
// It returns an error for tag names outside of the HTML vocabulary.
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("telegraph: unmarshal text node: %w", err)
		}
		*n = Text(s)
		return nil
	}
	var elem jsonElement
	if err := json.Unmarshal(data, &elem); err != nil {
		return fmt.Errorf("telegraph: unmarshal element: %w", err)
	}
	tag := atom.Lookup([]byte(elem.Tag))
	if tag == 0 {
		return fmt.Errorf("telegraph: unmarshal element: unknown tag %q", elem.Tag)
	}
	*n = Element(tag, elem.Attrs, elem.Children...)
	return nil
}
