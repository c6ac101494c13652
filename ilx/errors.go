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
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates that the input is not an .ilx file or was written
	// by an unsupported version of Interlex.
	ErrFormat = errors.New("invalid .ilx format")

	// ErrTruncated indicates that the input ended before the end of a
	// record.
	ErrTruncated = errors.New("truncated .ilx file")
)

// FormatError is returned when the input does not match the expected file
// structure. FormatError matches [ErrFormat].
type FormatError struct {
	// Offset is the byte offset in the input where the problem was found.
	Offset int64

	// Reason describes the problem.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: offset %d: %s", ErrFormat, e.Offset, e.Reason)
}

// Is implements errors.Is.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// TruncationError is returned when a field extends past the end of the
// input. TruncationError matches [ErrTruncated].
type TruncationError struct {
	// Offset is the byte offset of the start of the field.
	Offset int64

	// Record names the record containing the field, e.g. "header" or
	// "entry 3".
	Record string

	// Field is the name of the truncated field.
	Field string

	// Want is the number of bytes the field needs.
	Want int

	// Got is the number of bytes that were available.
	Got int
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("%v: offset %d: %s field %q: need %d bytes, got %d",
		ErrTruncated, e.Offset, e.Record, e.Field, e.Want, e.Got)
}

// Is implements errors.Is.
func (e *TruncationError) Is(target error) bool {
	return target == ErrTruncated
}
