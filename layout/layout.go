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

package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout indicates that a layout description is malformed.
var ErrInvalidLayout = errors.New("invalid layout")

// Kind is the encoding of a single field.
type Kind int

const (
	// String8 is a byte string prefixed by its length as a uint8.
	String8 Kind = iota + 1

	// String16 is a byte string prefixed by its length as a uint16.
	String16

	// Uint16 is an unsigned 16 bit integer.
	Uint16

	// Uint32 is an unsigned 32 bit integer.
	Uint32

	// Int32 is a signed 32 bit integer.
	Int32

	// Reserved is a run of Size bytes with no known meaning. Reserved bytes
	// are skipped.
	Reserved
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case String8:
		return "string8"
	case String16:
		return "string16"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Reserved:
		return "reserved"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsString returns true if fields of the kind hold byte strings.
func (k Kind) IsString() bool {
	return k == String8 || k == String16
}

// Width returns the fixed width in bytes of a field of the kind. String
// kinds return the width of their length prefix.
func (k Kind) Width() int {
	switch k {
	case String8:
		return 1
	case String16, Uint16:
		return 2
	case Uint32, Int32:
		return 4
	default:
		return 0
	}
}

// Field is a single named field in a header or entry.
type Field struct {
	// Name is the field name. Names are unique within a header or entry.
	Name string

	// Kind is the field encoding.
	Kind Kind

	// Size is the number of bytes for Reserved fields. It is ignored for
	// other kinds.
	Size int
}

// Width returns the fixed number of bytes the field occupies, not counting
// string data.
func (f Field) Width() int {
	if f.Kind == Reserved {
		return f.Size
	}
	return f.Kind.Width()
}

// Layout describes the layout of .ilx files written by a single version of
// Interlex.
type Layout struct {
	// Version is the Interlex version string as found in the file preamble,
	// e.g. "2.5.0.7".
	Version string

	// Header are the header fields that follow the preamble.
	Header []Field

	// Entry are the fields of a single entry.
	Entry []Field

	// CountField is the name of the Uint32 header field holding the number
	// of entries.
	CountField string
}

// Validate checks that the layout is well formed.
func (l *Layout) Validate() error {
	if l.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidLayout)
	}
	if err := validateFields("header", l.Header); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidLayout, l.Version, err)
	}
	if err := validateFields("entry", l.Entry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidLayout, l.Version, err)
	}
	if len(l.Entry) == 0 {
		return fmt.Errorf("%w: %s: entry has no fields", ErrInvalidLayout, l.Version)
	}

	count, ok := l.HeaderField(l.CountField)
	if !ok {
		return fmt.Errorf("%w: %s: count field %q not in header", ErrInvalidLayout, l.Version, l.CountField)
	}
	if count.Kind != Uint32 {
		return fmt.Errorf("%w: %s: count field %q is %v, not uint32", ErrInvalidLayout, l.Version, l.CountField, count.Kind)
	}
	return nil
}

// HeaderField returns the header field with the given name.
func (l *Layout) HeaderField(name string) (Field, bool) {
	return findField(l.Header, name)
}

// EntryField returns the entry field with the given name.
func (l *Layout) EntryField(name string) (Field, bool) {
	return findField(l.Entry, name)
}

func findField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func validateFields(part string, fields []Field) error {
	seen := map[string]bool{}
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%s field %d: missing name", part, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s field %q: duplicate name", part, f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case String8, String16, Uint16, Uint32, Int32:
		case Reserved:
			if f.Size <= 0 {
				return fmt.Errorf("%s field %q: reserved size must be positive: %d", part, f.Name, f.Size)
			}
		default:
			return fmt.Errorf("%s field %q: unknown kind %v", part, f.Name, f.Kind)
		}
	}
	return nil
}
