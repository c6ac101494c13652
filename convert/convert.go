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

// Package convert converts .ilx files to delimited text.
//
// A conversion decodes every input file in full before writing anything, so
// a decoding error never produces partial output.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ianlewis/go-interlex"
	"github.com/ianlewis/go-interlex/export"
	"github.com/ianlewis/go-interlex/internal/fsx"
)

// Stdout is the output path that writes to standard output.
const Stdout = "-"

// Stage is a stage of a conversion.
type Stage string

const (
	// StageDecode is reading and decoding the input files.
	StageDecode Stage = "decode"

	// StageWrite is writing the output.
	StageWrite Stage = "write"
)

// StageError is an error annotated with the failing stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Options are options for a conversion.
type Options struct {
	// Decode are the options for reading input files.
	Decode *interlex.Options

	// Export are the options for writing the output.
	Export *export.Options

	// Stdout is written to when the output path is Stdout. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// Logger receives progress messages. Defaults to discarding all output.
	Logger *slog.Logger
}

// Result describes a completed conversion.
type Result struct {
	// Files are the metadata of the input files in order.
	Files []interlex.Metadata

	// Rows is the number of rows written, not counting the header.
	Rows int
}

// Decode reads all input files in order.
func Decode(inputs []string, options *Options) ([]*interlex.File, error) {
	if options == nil {
		options = &Options{}
	}
	files, err := interlex.OpenAll(inputs, options.Decode)
	if err != nil {
		return nil, &StageError{Stage: StageDecode, Err: err}
	}
	return files, nil
}

// Convert decodes the input files and writes their entries, in order, to w.
func Convert(inputs []string, w io.Writer, options *Options) (*Result, error) {
	files, err := Decode(inputs, options)
	if err != nil {
		return nil, err
	}
	return Write(files, w, options)
}

// Write writes the entries of the decoded files to w.
func Write(files []*interlex.File, w io.Writer, options *Options) (*Result, error) {
	if options == nil {
		options = &Options{}
	}

	ew, err := export.NewWriter(w, options.Export)
	if err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	result := &Result{}
	for _, f := range files {
		result.Files = append(result.Files, f.Metadata)
		if err := ew.Write(f.Entries...); err != nil {
			return nil, &StageError{Stage: StageWrite, Err: err}
		}
	}
	if err := ew.Flush(); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}
	result.Rows = ew.Rows()
	return result, nil
}

// ConvertFile converts the input files and writes the result to the file at
// output, or to standard output if output is Stdout.
func ConvertFile(inputs []string, output string, options *Options) (*Result, error) {
	files, err := Decode(inputs, options)
	if err != nil {
		return nil, err
	}
	return WriteFile(files, output, options)
}

// WriteFile writes the entries of the decoded files to the file at output,
// or to standard output if output is Stdout. The output file is only
// replaced once all rows have been written.
func WriteFile(files []*interlex.File, output string, options *Options) (*Result, error) {
	if options == nil {
		options = &Options{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if output == Stdout {
		stdout := options.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		return Write(files, stdout, options)
	}

	f, err := fsx.CreateAtomic(output, 0o644)
	if err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}
	defer f.Close()

	result, err := Write(files, f, options)
	if err != nil {
		return nil, err
	}
	if err := f.Commit(); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	logger.Debug("wrote output",
		slog.String("path", output),
		slog.Int("rows", result.Rows),
	)
	return result, nil
}
