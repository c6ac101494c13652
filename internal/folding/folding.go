// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements text normalization for entry fields.
package folding

import (
	"fmt"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/text/transform"
)

// Func normalizes a field value.
type Func func(string) (string, error)

// Nop returns s unchanged.
func Nop(s string) (string, error) {
	return s, nil
}

// Whitespace folds whitespace spans to a single space, keeping line breaks.
func Whitespace(s string) (string, error) {
	out, _, err := transform.String(&WhitespaceFolder{KeepLines: true}, s)
	if err != nil {
		return "", fmt.Errorf("folding whitespace: %w", err)
	}
	return out, nil
}

// Markup strips HTML markup and decodes HTML entities. Text without markup
// is returned unchanged.
func Markup(s string) (string, error) {
	if !strings.ContainsAny(s, "<&") {
		return s, nil
	}
	return strings.ReplaceAll(html2text.HTML2Text(s), "\r\n", "\n"), nil
}

// Chain returns a Func that applies fs in order.
func Chain(fs ...Func) Func {
	if len(fs) == 0 {
		return Nop
	}
	return func(s string) (string, error) {
		var err error
		for _, f := range fs {
			s, err = f(s)
			if err != nil {
				return "", err
			}
		}
		return s, nil
	}
}
