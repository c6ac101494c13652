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

package folding

import (
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestWhitespaceFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		keepLines bool
		expected  string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \t\r\n ", expected: ""},
		{name: "leading and trailing", input: "  hola  ", expected: "hola"},
		{name: "internal spans", input: "el \t perro", expected: "el perro"},
		{name: "line breaks folded", input: "uno\r\ndos", expected: "uno dos"},
		{name: "line breaks kept", input: "uno  \r\n\r\n  dos", keepLines: true, expected: "uno\ndos"},
		{name: "spaces with keep lines", input: "a   b", keepLines: true, expected: "a b"},
		{name: "non-ascii", input: " año nuevo ", expected: "año nuevo"},
		{name: "long input", input: strings.Repeat("ab  ", 2000), expected: strings.TrimSpace(strings.Repeat("ab ", 2000))},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&WhitespaceFolder{KeepLines: test.keepLines}, test.input)
			if err != nil {
				t.Fatalf("transform: %v", err)
			}
			if want := test.expected; want != got {
				t.Errorf("want: %q, got: %q", want, got)
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain text", expected: "plain text"},
		{input: "<b>el</b> perro", expected: "el perro"},
		{input: "salt &amp; pepper", expected: "salt & pepper"},
	}

	for _, test := range tests {
		got, err := Markup(test.input)
		if err != nil {
			t.Fatalf("Markup: %v", err)
		}
		if want := test.expected; want != got {
			t.Errorf("Markup(%q); want: %q, got: %q", test.input, want, got)
		}
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	f := Chain(Markup, Whitespace)
	got, err := f("  <i>la</i>   casa ")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if want := "la casa"; want != got {
		t.Errorf("want: %q, got: %q", want, got)
	}

	got, err = Chain()("  x ")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if want := "  x "; want != got {
		t.Errorf("want: %q, got: %q", want, got)
	}
}
