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

// Package export writes vocabulary entries as delimited text.
//
// The output is a header row naming the columns followed by one row per
// entry. Fields containing the delimiter, a double quote or a line break are
// quoted and double quotes within them are doubled.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ianlewis/go-interlex"
)

var (
	// ErrWrite indicates that the output could not be written.
	ErrWrite = errors.New("writing output")

	// ErrInvalidDelimiter indicates an unusable field delimiter.
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// Options are options for writing delimited text.
type Options struct {
	// Columns are the output columns in order. Defaults to DefaultColumns.
	Columns []Column

	// Delimiter is the field delimiter. Defaults to ','.
	Delimiter rune

	// NoHeader omits the header row.
	NoHeader bool

	// UseLF ends rows with "\n" instead of "\r\n".
	UseLF bool
}

// DefaultOptions is the default options for a Writer.
var DefaultOptions = &Options{
	Columns:   DefaultColumns,
	Delimiter: ',',
}

// Writer writes entries as delimited text rows.
type Writer struct {
	w       *csv.Writer
	out     io.Writer
	eol     string
	columns []Column
	header  bool
	rows    int
}

// NewWriter returns a new Writer writing to w. Rows are buffered; call
// Flush when done.
func NewWriter(w io.Writer, options *Options) (*Writer, error) {
	if options == nil {
		options = DefaultOptions
	}

	delim := options.Delimiter
	if delim == 0 {
		delim = DefaultOptions.Delimiter
	}
	if !validDelimiter(delim) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, delim)
	}

	cols := options.Columns
	if len(cols) == 0 {
		cols = DefaultColumns
	}
	for _, c := range cols {
		if c < 0 || int(c) >= len(columnNames) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownColumn, c)
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim
	cw.UseCRLF = !options.UseLF
	eol := "\r\n"
	if options.UseLF {
		eol = "\n"
	}

	return &Writer{
		w:       cw,
		out:     w,
		eol:     eol,
		columns: append([]Column(nil), cols...),
		header:  !options.NoHeader,
	}, nil
}

// Columns returns the output columns.
func (w *Writer) Columns() []Column {
	return append([]Column(nil), w.columns...)
}

// Rows returns the number of entry rows written.
func (w *Writer) Rows() int {
	return w.rows
}

// Header returns the header row.
func (w *Writer) Header() []string {
	h := make([]string, len(w.columns))
	for i, c := range w.columns {
		h[i] = c.String()
	}
	return h
}

// Row returns the output row for e.
func (w *Writer) Row(e *interlex.Entry) []string {
	row := make([]string, len(w.columns))
	for i, c := range w.columns {
		row[i] = c.Value(e)
	}
	return row
}

// Write writes a row for each entry in order.
func (w *Writer) Write(entries ...*interlex.Entry) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.writeRow(w.Row(e)); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrWrite, w.rows+1, err)
		}
		w.rows++
	}
	return nil
}

// writeRow writes a single row. encoding/csv writes a row holding one empty
// field as a blank line, which readers skip, so that row is written as a
// quoted empty field instead.
func (w *Writer) writeRow(row []string) error {
	if len(row) != 1 || row[0] != "" {
		//nolint:wrapcheck // wrapped by the caller
		return w.w.Write(row)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		//nolint:wrapcheck // wrapped by the caller
		return err
	}
	_, err := io.WriteString(w.out, `""`+w.eol)
	//nolint:wrapcheck // wrapped by the caller
	return err
}

// Flush writes the header if nothing has been written yet and flushes
// buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (w *Writer) writeHeader() error {
	if !w.header {
		return nil
	}
	w.header = false
	if err := w.w.Write(w.Header()); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}
	return nil
}

// validDelimiter mirrors the checks done by encoding/csv.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
