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

package interlex_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-interlex"
	"github.com/ianlewis/go-interlex/ilx"
	"github.com/ianlewis/go-interlex/internal/folding"
	"github.com/ianlewis/go-interlex/internal/testutil"
	"github.com/ianlewis/go-interlex/lang"
	"github.com/ianlewis/go-interlex/layout"
)

const (
	lcidSpanish = 3082
	lcidEnglish = 1033
	lcidPolish  = 1045
)

func spanishFile(t *testing.T) []byte {
	t.Helper()

	return testutil.MakeILX(t, &testutil.ILX{
		Header: testutil.Values{
			layout.ForeignLanguage:            lcidSpanish,
			layout.NativeLanguage:             lcidEnglish,
			layout.QuestionsAttempted:         10,
			layout.QuestionsAnsweredCorrectly: 8,
			layout.Description:                "Lesson 1",
			layout.Author:                     "Jan",
			layout.Comments:                   "greetings",
		},
		Entries: []testutil.Values{
			{layout.Word: "hola", layout.Translation: "hello", layout.Counter: 4},
			{layout.Word: "adios", layout.Translation: "goodbye", layout.PenaltyPoints: -1},
		},
	})
}

var entryOpts = cmp.Comparer(func(a, b *interlex.Entry) bool {
	return a.Fields() == b.Fields()
})

func TestRead(t *testing.T) {
	t.Parallel()

	f, err := interlex.Read(bytes.NewReader(spanishFile(t)), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	spanish, _ := lang.Lookup(lcidSpanish)
	english, _ := lang.Lookup(lcidEnglish)
	wantMeta := interlex.Metadata{
		Program:                    "Interlex 2.5.0.7",
		Version:                    "2.5.0.7",
		Description:                "Lesson 1",
		Author:                     "Jan",
		Comments:                   "greetings",
		ForeignLanguage:            spanish,
		NativeLanguage:             english,
		WordCount:                  2,
		QuestionsAttempted:         10,
		QuestionsAnsweredCorrectly: 8,
	}
	if diff := cmp.Diff(wantMeta, f.Metadata, cmp.Comparer(func(a, b *charmap.Charmap) bool { return a == b })); diff != "" {
		t.Errorf("Metadata (-want +got):\n%s", diff)
	}
	if want, got := 0.8, f.Metadata.Score(); want != got {
		t.Errorf("Score; want: %v, got: %v", want, got)
	}

	wantEntries := []*interlex.Entry{
		interlex.NewEntry(interlex.EntryFields{
			Word:            "hola",
			Translation:     "hello",
			Counter:         4,
			FileDescription: "Lesson 1",
		}),
		interlex.NewEntry(interlex.EntryFields{
			Word:            "adios",
			Translation:     "goodbye",
			PenaltyPoints:   -1,
			FileDescription: "Lesson 1",
		}),
	}
	if diff := cmp.Diff(wantEntries, f.Entries, entryOpts); diff != "" {
		t.Errorf("Entries (-want +got):\n%s", diff)
	}
	if f.Entries[0].Learned() || !f.Entries[1].Learned() {
		t.Errorf("Learned; want: false, true; got: %v, %v", f.Entries[0].Learned(), f.Entries[1].Learned())
	}
}

func TestRead_codePages(t *testing.T) {
	t.Parallel()

	enc := func(cm *charmap.Charmap, s string) []byte {
		b, err := cm.NewEncoder().Bytes([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	// A Polish course for Spanish speakers: words are in windows-1250 and
	// translations in windows-1252.
	b := testutil.MakeILX(t, &testutil.ILX{
		Header: testutil.Values{
			layout.ForeignLanguage: lcidPolish,
			layout.NativeLanguage:  lcidSpanish,
			layout.Description:     enc(charmap.Windows1250, "Łatwe słowa"),
		},
		Entries: []testutil.Values{
			{
				layout.Word:        enc(charmap.Windows1250, "źdźbło"),
				layout.Translation: enc(charmap.Windows1252, "brizna, año"),
				layout.Notes:       enc(charmap.Windows1252, "señal"),
			},
		},
	})

	f, err := interlex.Read(bytes.NewReader(b), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want, got := "Łatwe słowa", f.Metadata.Description; want != got {
		t.Errorf("Description; want: %q, got: %q", want, got)
	}
	e := f.Entries[0]
	if want, got := "źdźbło", e.Word(); want != got {
		t.Errorf("Word; want: %q, got: %q", want, got)
	}
	if want, got := "brizna, año", e.Translation(); want != got {
		t.Errorf("Translation; want: %q, got: %q", want, got)
	}
	if want, got := "señal", e.Notes(); want != got {
		t.Errorf("Notes; want: %q, got: %q", want, got)
	}
}

func TestRead_unknownLanguage(t *testing.T) {
	t.Parallel()

	b := testutil.MakeILX(t, &testutil.ILX{
		Header: testutil.Values{
			layout.ForeignLanguage: 1049,
			layout.NativeLanguage:  lcidEnglish,
		},
		Entries: []testutil.Values{{layout.Word: []byte{0xb3}}},
	})

	var logs bytes.Buffer
	f, err := interlex.Read(bytes.NewReader(b), &interlex.Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want, got := "Unknown (LCID 1049)", f.Metadata.ForeignLanguage.Label(); want != got {
		t.Errorf("ForeignLanguage; want: %q, got: %q", want, got)
	}
	// Falls back to windows-1250.
	if want, got := "ł", f.Entries[0].Word(); want != got {
		t.Errorf("Word; want: %q, got: %q", want, got)
	}
	if !strings.Contains(logs.String(), "unknown language") {
		t.Errorf("missing warning in logs: %q", logs.String())
	}
}

func TestRead_normalize(t *testing.T) {
	t.Parallel()

	b := testutil.MakeILX(t, &testutil.ILX{
		Entries: []testutil.Values{
			{layout.Word: "  <i>la</i>   casa ", layout.Notes: "la  casa \r\n\r\nblanca"},
		},
	})

	f, err := interlex.Read(bytes.NewReader(b), &interlex.Options{
		Normalize: folding.Chain(folding.Markup, folding.Whitespace),
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want, got := "la casa", f.Entries[0].Word(); want != got {
		t.Errorf("Word; want: %q, got: %q", want, got)
	}
	if want, got := "la casa\nblanca", f.Entries[0].Notes(); want != got {
		t.Errorf("Notes; want: %q, got: %q", want, got)
	}
}

func TestRead_errors(t *testing.T) {
	t.Parallel()

	b := spanishFile(t)

	_, err := interlex.Read(bytes.NewReader(b[:len(b)-1]), nil)
	if !errors.Is(err, ilx.ErrTruncated) {
		t.Errorf("Read truncated: want %v, got %v", ilx.ErrTruncated, err)
	}

	_, err = interlex.Read(bytes.NewReader(append([]byte{9}, "Other 1.0"...)), nil)
	if !errors.Is(err, ilx.ErrFormat) {
		t.Errorf("Read garbage: want %v, got %v", ilx.ErrFormat, err)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	data := spanishFile(t)

	plain := func(t *testing.T, path string) {
		t.Helper()
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	gz := func(t *testing.T, path string) {
		t.Helper()
		var buf bytes.Buffer
		z := gzip.NewWriter(&buf)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	dz := func(t *testing.T, path string) {
		t.Helper()
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		write func(*testing.T, string)
	}{
		{name: "words.ilx", write: plain},
		{name: "words.ILX", write: plain},
		{name: "words.ilx.gz", write: gz},
		{name: "words.ilx.dz", write: dz},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), test.name)
			test.write(t, path)
			f, err := interlex.Open(path, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if want, got := path, f.Metadata.Path; want != got {
				t.Errorf("Path; want: %q, got: %q", want, got)
			}
			if want, got := 2, len(f.Entries); want != got {
				t.Fatalf("entries; want: %d, got: %d", want, got)
			}
			if want, got := path, f.Entries[0].Source(); want != got {
				t.Errorf("Source; want: %q, got: %q", want, got)
			}
		})
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.ilx", "b.ilx"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, spanishFile(t), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	files, err := interlex.OpenAll(paths, nil)
	if err != nil {
		t.Fatalf("OpenAll: %v", err)
	}
	if want, got := 2, len(files); want != got {
		t.Fatalf("files; want: %d, got: %d", want, got)
	}
	for i, f := range files {
		if want, got := paths[i], f.Metadata.Path; want != got {
			t.Errorf("file %d: Path; want: %q, got: %q", i, want, got)
		}
	}

	_, err = interlex.OpenAll(append(paths, filepath.Join(dir, "missing.ilx")), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenAll: want %v, got %v", os.ErrNotExist, err)
	}
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	d, err := interlex.NewDecoder(bytes.NewReader(spanishFile(t)), "words.ilx", nil)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if want, got := 2, d.Metadata().WordCount; want != got {
		t.Errorf("WordCount; want: %d, got: %d", want, got)
	}

	var words []string
	for d.Scan() {
		words = append(words, d.Entry().Word())
	}
	if err := d.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if diff := cmp.Diff([]string{"hola", "adios"}, words); diff != "" {
		t.Errorf("words (-want +got):\n%s", diff)
	}
	if d.Scan() {
		t.Errorf("Scan: returned true after end")
	}
}
