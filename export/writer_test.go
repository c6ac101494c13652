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

package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-interlex"
)

func entry(word, translation string) *interlex.Entry {
	return interlex.NewEntry(interlex.EntryFields{
		Word:        word,
		Translation: translation,
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *Options
		entries  []*interlex.Entry
		expected string
	}{
		{
			name:     "empty",
			expected: "word,part_of_speech,notes,translation,counter,penalty_points,file_description\r\n",
		},
		{
			name:     "empty no header",
			opts:     &Options{NoHeader: true},
			expected: "",
		},
		{
			name: "two entries",
			opts: &Options{Columns: []Column{Word, Translation}},
			entries: []*interlex.Entry{
				entry("hola", "hello"),
				entry("adios", "goodbye"),
			},
			expected: "word,translation\r\nhola,hello\r\nadios,goodbye\r\n",
		},
		{
			name: "default columns",
			entries: []*interlex.Entry{
				interlex.NewEntry(interlex.EntryFields{
					Word:            "perro",
					PartOfSpeech:    "n",
					Notes:           "el perro",
					Translation:     "dog",
					Counter:         7,
					PenaltyPoints:   -1,
					FileDescription: "Animals",
				}),
			},
			expected: "word,part_of_speech,notes,translation,counter,penalty_points,file_description\r\n" +
				"perro,n,el perro,dog,7,-1,Animals\r\n",
		},
		{
			name: "quoting",
			opts: &Options{Columns: []Column{Word, Translation}, UseLF: true},
			entries: []*interlex.Entry{
				entry("a, b", `say "hi"`),
				entry("line\nbreak", "plain"),
			},
			expected: "word,translation\n\"a, b\",\"say \"\"hi\"\"\"\n\"line\nbreak\",plain\n",
		},
		{
			name: "semicolon delimiter",
			opts: &Options{Columns: []Column{Word, Translation}, Delimiter: ';', UseLF: true},
			entries: []*interlex.Entry{
				entry("a, b", "c; d"),
			},
			expected: "word;translation\na, b;\"c; d\"\n",
		},
		{
			name: "single empty column",
			opts: &Options{Columns: []Column{Notes}, UseLF: true},
			entries: []*interlex.Entry{
				interlex.NewEntry(interlex.EntryFields{}),
				interlex.NewEntry(interlex.EntryFields{Notes: "x"}),
				interlex.NewEntry(interlex.EntryFields{}),
			},
			expected: "notes\n\"\"\nx\n\"\"\n",
		},
		{
			name: "single empty column crlf no header",
			opts: &Options{Columns: []Column{Word}, NoHeader: true},
			entries: []*interlex.Entry{
				interlex.NewEntry(interlex.EntryFields{}),
				entry("hola", ""),
			},
			expected: "\"\"\r\nhola\r\n",
		},
		{
			name: "extra columns",
			opts: &Options{Columns: []Column{Word, Learned, Source}, NoHeader: true, UseLF: true},
			entries: []*interlex.Entry{
				interlex.NewEntry(interlex.EntryFields{Word: "gato", PenaltyPoints: -1, Source: "a.ilx"}),
				interlex.NewEntry(interlex.EntryFields{Word: "perro", Source: "b.ilx"}),
			},
			expected: "gato,true,a.ilx\nperro,false,b.ilx\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, err := NewWriter(&buf, test.opts)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			if err := w.Write(test.entries...); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}
			if diff := cmp.Diff(test.expected, buf.String()); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
			if want, got := len(test.entries), w.Rows(); want != got {
				t.Errorf("Rows; want: %d, got: %d", want, got)
			}
		})
	}
}

// TestWriter_roundTrip checks that rows read back with encoding/csv match
// the entries' values.
func TestWriter_roundTrip(t *testing.T) {
	t.Parallel()

	entries := []*interlex.Entry{
		interlex.NewEntry(interlex.EntryFields{
			Word:            `"quoted"`,
			PartOfSpeech:    "adj.",
			Notes:           "multi\nline, with comma",
			Translation:     " leading space",
			Counter:         123,
			PenaltyPoints:   2,
			FileDescription: "Tricky; stuff",
		}),
		interlex.NewEntry(interlex.EntryFields{}),
		entry("año", "year"),
	}

	for _, delim := range []rune{',', ';', '\t'} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, &Options{Delimiter: delim})
		if err != nil {
			t.Fatalf("NewWriter: %v", err)
		}
		if err := w.Write(entries...); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		r := csv.NewReader(&buf)
		r.Comma = delim
		records, err := r.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}

		want := [][]string{w.Header()}
		for _, e := range entries {
			want = append(want, w.Row(e))
		}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Errorf("delimiter %q: unexpected records (-want +got):\n%s", delim, diff)
		}
	}
}

// TestWriter_roundTripSingleColumn checks that empty values in a single
// column output are not read back as blank lines.
func TestWriter_roundTripSingleColumn(t *testing.T) {
	t.Parallel()

	entries := []*interlex.Entry{
		interlex.NewEntry(interlex.EntryFields{}),
		interlex.NewEntry(interlex.EntryFields{Notes: "x"}),
		interlex.NewEntry(interlex.EntryFields{Notes: "a\nb"}),
		interlex.NewEntry(interlex.EntryFields{}),
	}

	for _, useLF := range []bool{false, true} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, &Options{Columns: []Column{Notes}, UseLF: useLF})
		if err != nil {
			t.Fatalf("NewWriter: %v", err)
		}
		if err := w.Write(entries...); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		want := [][]string{{"notes"}, {""}, {"x"}, {"a\nb"}, {""}}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Errorf("lf %v: unexpected records (-want +got):\n%s", useLF, diff)
		}
		if got, want := w.Rows(), len(entries); got != want {
			t.Errorf("lf %v: Rows; want: %d, got: %d", useLF, want, got)
		}
	}
}

type errWriter struct{}

var errBroken = errors.New("broken pipe")

func (errWriter) Write([]byte) (int, error) {
	return 0, errBroken
}

func TestWriter_writeError(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(errWriter{}, nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(entry("hola", "hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	err = w.Flush()
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Flush: want %v, got %v", ErrWrite, err)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("Flush: want %v, got %v", errBroken, err)
	}
}

func TestWriter_writeErrorEmptyField(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(errWriter{}, &Options{Columns: []Column{Notes}, NoHeader: true})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	err = w.Write(interlex.NewEntry(interlex.EntryFields{}))
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Write: want %v, got %v", ErrWrite, err)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("Write: want %v, got %v", errBroken, err)
	}
	if want, got := 0, w.Rows(); want != got {
		t.Errorf("Rows; want: %d, got: %d", want, got)
	}
}

func TestNewWriter_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *Options
		err  error
	}{
		{name: "quote delimiter", opts: &Options{Delimiter: '"'}, err: ErrInvalidDelimiter},
		{name: "newline delimiter", opts: &Options{Delimiter: '\n'}, err: ErrInvalidDelimiter},
		{name: "unknown column", opts: &Options{Columns: []Column{Column(99)}}, err: ErrUnknownColumn},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewWriter(&bytes.Buffer{}, test.opts)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("NewWriter: unexpected error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []Column
		err      error
	}{
		{input: "word,translation", expected: []Column{Word, Translation}},
		{input: " word , learned ,", expected: []Column{Word, Learned}},
		{input: "file_description", expected: []Column{FileDescription}},
		{input: "word,meaning", err: ErrUnknownColumn},
		{input: "", err: ErrUnknownColumn},
	}

	for _, test := range tests {
		got, err := ParseColumns(test.input)
		if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("ParseColumns(%q): unexpected error (-want +got):\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("ParseColumns(%q): (-want +got):\n%s", test.input, diff)
		}
	}
}
