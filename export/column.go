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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ianlewis/go-interlex"
)

// ErrUnknownColumn indicates that a column name is not recognized.
var ErrUnknownColumn = errors.New("unknown column")

// Column is an output column.
type Column int

const (
	// Word is the word in the foreign language.
	Word Column = iota

	// PartOfSpeech is the entry's part of speech.
	PartOfSpeech

	// Notes are the entry's notes.
	Notes

	// Translation is the translation in the native language.
	Translation

	// Counter is the question number of the last test.
	Counter

	// PenaltyPoints are the penalty points. -1 means learned.
	PenaltyPoints

	// FileDescription is the description of the source file.
	FileDescription

	// Learned is "true" for learned words and "false" otherwise.
	Learned

	// Source is the path of the source file.
	Source
)

var columnNames = []string{
	Word:            "word",
	PartOfSpeech:    "part_of_speech",
	Notes:           "notes",
	Translation:     "translation",
	Counter:         "counter",
	PenaltyPoints:   "penalty_points",
	FileDescription: "file_description",
	Learned:         "learned",
	Source:          "source",
}

// DefaultColumns are the columns written by default.
var DefaultColumns = []Column{
	Word,
	PartOfSpeech,
	Notes,
	Translation,
	Counter,
	PenaltyPoints,
	FileDescription,
}

// String returns the column name used in the header row.
func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Value returns the column's value for e.
func (c Column) Value(e *interlex.Entry) string {
	switch c {
	case Word:
		return e.Word()
	case PartOfSpeech:
		return e.PartOfSpeech()
	case Notes:
		return e.Notes()
	case Translation:
		return e.Translation()
	case Counter:
		return strconv.FormatInt(int64(e.Counter()), 10)
	case PenaltyPoints:
		return strconv.FormatInt(int64(e.PenaltyPoints()), 10)
	case FileDescription:
		return e.FileDescription()
	case Learned:
		return strconv.FormatBool(e.Learned())
	case Source:
		return e.Source()
	default:
		return ""
	}
}

// ParseColumn returns the column with the given name.
func ParseColumn(name string) (Column, error) {
	name = strings.TrimSpace(name)
	for i, n := range columnNames {
		if n == name {
			return Column(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// ParseColumns parses a comma separated list of column names.
func ParseColumns(names string) ([]Column, error) {
	var cols []Column
	for _, name := range strings.Split(names, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no columns in %q", ErrUnknownColumn, names)
	}
	return cols, nil
}

// ColumnNames returns the names of all columns.
func ColumnNames() []string {
	return append([]string(nil), columnNames...)
}
