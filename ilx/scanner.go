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

package ilx

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ianlewis/go-interlex/layout"
)

// ErrUnknownVersion indicates that a forced version has no layout. Errors
// matching it also match [ErrFormat].
var ErrUnknownVersion = errors.New("unknown version")

// Options are options for scanning an .ilx file.
type Options struct {
	// Registry holds the known layouts. Defaults to
	// [layout.DefaultRegistry].
	Registry *layout.Registry

	// Version forces the layout of the given version to be used regardless
	// of the version found in the preamble. Reading files of a version with
	// no verified layout is best-effort. A version with no layout in the
	// registry is a [FormatError] that also matches [ErrUnknownVersion].
	Version string
}

// DefaultOptions is the default options for a Scanner.
var DefaultOptions = &Options{}

// Preamble is the version marker at the start of every .ilx file.
type Preamble struct {
	// Program is the raw program and version string, e.g.
	// "Interlex 2.5.0.7".
	Program []byte

	// Version is the version part of Program.
	Version string
}

// Scanner scans an .ilx file from start to end.
type Scanner struct {
	r        *reader
	layout   *layout.Layout
	preamble Preamble
	header   *Record

	count uint32
	n     uint32

	rec *Record
	err error
}

// NewScanner reads the preamble and header from r and returns a Scanner
// that scans the entries that follow. The caller retains ownership of r.
func NewScanner(r io.Reader, options *Options) (*Scanner, error) {
	if options == nil {
		options = DefaultOptions
	}
	registry := options.Registry
	if registry == nil {
		registry = layout.DefaultRegistry()
	}

	s := &Scanner{
		r: &reader{r: bufio.NewReader(r)},
	}

	var err error
	s.preamble, err = s.readPreamble()
	if err != nil {
		return nil, err
	}

	version := s.preamble.Version
	if options.Version != "" {
		version = options.Version
	}
	l, ok := registry.Lookup(version)
	switch {
	case !ok && options.Version != "":
		return nil, fmt.Errorf("%w: %w", ErrUnknownVersion, &FormatError{
			Offset: 0,
			Reason: fmt.Sprintf("no layout for forced version %q; known versions: %s",
				version, strings.Join(registry.Versions(), ", ")),
		})
	case !ok:
		return nil, &FormatError{
			Offset: 0,
			Reason: fmt.Sprintf("unsupported version %q; known versions: %s",
				version, strings.Join(registry.Versions(), ", ")),
		}
	}
	s.layout = l

	s.header, err = s.r.readRecord("header", l.Header)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // the count field is validated to be a uint32.
	s.count = uint32(s.header.Int(l.CountField))

	return s, nil
}

// Preamble returns the file's version marker.
func (s *Scanner) Preamble() Preamble {
	return s.preamble
}

// Layout returns the layout used to read the file.
func (s *Scanner) Layout() *layout.Layout {
	return s.layout
}

// Header returns the file header.
func (s *Scanner) Header() *Record {
	return s.header
}

// Count returns the number of entries declared in the header.
func (s *Scanner) Count() int {
	return int(s.count)
}

// Scan advances to the next entry. It returns false if the scan stops
// either by reading all declared entries or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.rec = nil

	if s.n >= s.count {
		s.err = s.r.expectEOF()
		return false
	}

	rec, err := s.r.readRecord(fmt.Sprintf("entry %d", s.n), s.layout.Entry)
	if err != nil {
		s.err = err
		return false
	}
	s.rec = rec
	s.n++
	return true
}

// Record returns the most recent entry read by Scan.
func (s *Scanner) Record() *Record {
	return s.rec
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) readPreamble() (Preamble, error) {
	var p Preamble

	if _, err := s.r.r.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return p, &FormatError{Offset: 0, Reason: "empty file"}
		}
		return p, fmt.Errorf("reading preamble: %w", err)
	}

	f := layout.Field{Name: "program", Kind: layout.String8}
	b, err := s.r.readString("preamble", f)
	if err != nil {
		return p, err
	}

	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return p, &FormatError{Offset: 0, Reason: "missing version marker"}
	}
	p.Program = b
	p.Version = fields[len(fields)-1]
	return p, nil
}

// reader reads little endian fields and tracks the input offset.
type reader struct {
	r   *bufio.Reader
	off int64
}

func (r *reader) readRecord(name string, fields []layout.Field) (*Record, error) {
	rec := newRecord()
	for _, f := range fields {
		switch {
		case f.Kind.IsString():
			b, err := r.readString(name, f)
			if err != nil {
				return nil, err
			}
			rec.strings[f.Name] = b
		case f.Kind == layout.Reserved:
			if _, err := r.read(name, f, f.Size); err != nil {
				return nil, err
			}
		default:
			b, err := r.read(name, f, f.Width())
			if err != nil {
				return nil, err
			}
			rec.ints[f.Name] = decodeInt(f.Kind, b)
		}
	}
	return rec, nil
}

func (r *reader) readString(record string, f layout.Field) ([]byte, error) {
	b, err := r.read(record, f, f.Kind.Width())
	if err != nil {
		return nil, err
	}

	var size int
	if f.Kind == layout.String8 {
		size = int(b[0])
	} else {
		size = int(binary.LittleEndian.Uint16(b))
	}

	return r.read(record, f, size)
}

// read reads exactly n bytes for the field f.
func (r *reader) read(record string, f layout.Field, n int) ([]byte, error) {
	b := make([]byte, n)
	got, err := io.ReadFull(r.r, b)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncationError{
				Offset: r.off,
				Record: record,
				Field:  f.Name,
				Want:   n,
				Got:    got,
			}
		}
		return nil, fmt.Errorf("reading %s field %q: %w", record, f.Name, err)
	}
	r.off += int64(n)
	return b, nil
}

func (r *reader) expectEOF() error {
	_, err := r.r.Peek(1)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("reading trailer: %w", err)
	default:
		return &FormatError{Offset: r.off, Reason: "unexpected data after last entry"}
	}
}

func decodeInt(k layout.Kind, b []byte) int64 {
	switch k {
	case layout.Uint16:
		return int64(binary.LittleEndian.Uint16(b))
	case layout.Uint32:
		return int64(binary.LittleEndian.Uint32(b))
	case layout.Int32:
		//nolint:gosec // reinterpreting the bits as signed is intended.
		return int64(int32(binary.LittleEndian.Uint32(b)))
	default:
		panic(fmt.Sprintf("not an integer kind: %v", k))
	}
}
