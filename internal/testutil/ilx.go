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

package testutil

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-interlex/layout"
)

// Values are field values keyed by field name. Values may be strings,
// byte slices or ints.
type Values map[string]any

// ILX describes a test .ilx file.
type ILX struct {
	// Program is the preamble string. Defaults to "Interlex " followed by
	// the layout version.
	Program string

	// Layout is the file layout. Defaults to [layout.V2507].
	Layout *layout.Layout

	// Header are the header values. The count field defaults to the number
	// of entries. Missing values are written as zero.
	Header Values

	// Entries are the entry values.
	Entries []Values
}

// MakeILX makes a test .ilx file.
func MakeILX(t testing.TB, f *ILX) []byte {
	t.Helper()

	l := f.Layout
	if l == nil {
		l = &layout.V2507
	}
	program := f.Program
	if program == "" {
		program = "Interlex " + l.Version
	}

	header := Values{}
	for k, v := range f.Header {
		header[k] = v
	}
	if _, ok := header[l.CountField]; !ok {
		header[l.CountField] = len(f.Entries)
	}

	b := putString(t, nil, layout.String8, []byte(program))
	b = putRecord(t, b, l.Header, header)
	for _, e := range f.Entries {
		b = putRecord(t, b, l.Entry, e)
	}
	return b
}

// WriteTempILX writes data to a file with the given name in a temporary
// directory and returns the file path.
func WriteTempILX(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func putRecord(t testing.TB, b []byte, fields []layout.Field, values Values) []byte {
	t.Helper()

	for _, f := range fields {
		v := values[f.Name]
		switch {
		case f.Kind.IsString():
			var s []byte
			switch v := v.(type) {
			case nil:
			case string:
				s = []byte(v)
			case []byte:
				s = v
			default:
				t.Fatalf("field %q: unsupported string value %T", f.Name, v)
			}
			b = putString(t, b, f.Kind, s)
		case f.Kind == layout.Reserved:
			b = append(b, make([]byte, f.Size)...)
		default:
			var n int
			switch v := v.(type) {
			case nil:
			case int:
				n = v
			default:
				t.Fatalf("field %q: unsupported integer value %T", f.Name, v)
			}
			b = putInt(t, b, f.Kind, n)
		}
	}
	return b
}

func putString(t testing.TB, b []byte, k layout.Kind, s []byte) []byte {
	t.Helper()

	if k == layout.String8 {
		if len(s) > math.MaxUint8 {
			t.Fatalf("string too long: %d", len(s))
		}
		b = append(b, byte(len(s)))
	} else {
		if len(s) > math.MaxUint16 {
			t.Fatalf("string too long: %d", len(s))
		}
		//nolint:gosec // length is bounds checked above.
		b = binary.LittleEndian.AppendUint16(b, uint16(len(s)))
	}
	return append(b, s...)
}

func putInt(t testing.TB, b []byte, k layout.Kind, n int) []byte {
	t.Helper()

	//nolint:gosec // test code, values are chosen to fit the field.
	switch k {
	case layout.Uint16:
		return binary.LittleEndian.AppendUint16(b, uint16(n))
	case layout.Uint32:
		return binary.LittleEndian.AppendUint32(b, uint32(n))
	case layout.Int32:
		return binary.LittleEndian.AppendUint32(b, uint32(int32(n)))
	default:
		panic(fmt.Sprintf("unsupported kind: %v", k))
	}
}
