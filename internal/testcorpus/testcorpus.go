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

// Package testcorpus provides access to conversion examples
// shared by the tests of several packages.
package testcorpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Source formats an example may be written in.
const (
	Markdown = "markdown"
	HTML     = "html"
)

// Example is a single conversion example.
type Example struct {
	Name   string
	Format string
	Input  string
	// Want is the expected node array in Telegraph JSON form.
	Want json.RawMessage
}

//go:embed examples.json
var examplesData []byte

// Load returns all examples.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(examplesData, &examples); err != nil {
		return nil, fmt.Errorf("load test corpus: %w", err)
	}
	return examples, nil
}

// LoadFormat returns the examples written in the given format.
func LoadFormat(format string) ([]Example, error) {
	all, err := Load()
	if err != nil {
		return nil, err
	}
	var examples []Example
	for _, ex := range all {
		if ex.Format == format {
			examples = append(examples, ex)
		}
	}
	return examples, nil
}
