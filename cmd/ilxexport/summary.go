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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rodaine/table"

	"github.com/ianlewis/go-interlex"
)

// oneLine joins the lines of s so that table columns stay aligned.
var oneLine = strings.NewReplacer("\n", " ")

// printSummaries prints the metadata of each file.
func printSummaries(w io.Writer, files []*interlex.File) error {
	for _, f := range files {
		m := f.Metadata
		tbl := table.New("File:", fmt.Sprintf("%s (%s)", m.Path, m.Program)).WithWriter(w)
		tbl.AddRow("Description:", oneLine.Replace(m.Description))
		tbl.AddRow("Author:", oneLine.Replace(m.Author))
		tbl.AddRow("Foreign language:", m.ForeignLanguage.Label())
		tbl.AddRow("Native language:", m.NativeLanguage.Label())
		tbl.AddRow("Words:", m.WordCount)
		tbl.AddRow("Answers (correct/all):", answers(&m))
		tbl.AddRow("Comments:", oneLine.Replace(m.Comments))
		tbl.Print()

		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("%w: printing summary: %w", ErrIlxexport, err)
		}
	}
	return nil
}

// printFileList prints one line of metadata per file.
func printFileList(w io.Writer, files []*interlex.File) error {
	tbl := table.New("File", "Version", "Foreign", "Native", "Words", "Answers", "Score", "Description").WithWriter(w)
	for _, f := range files {
		m := f.Metadata
		tbl.AddRow(
			m.Path,
			m.Version,
			m.ForeignLanguage.Label(),
			m.NativeLanguage.Label(),
			m.WordCount,
			answers(&m),
			strconv.FormatFloat(100*m.Score(), 'f', 0, 64)+"%",
			oneLine.Replace(m.Description),
		)
	}
	tbl.Print()
	return nil
}

func answers(m *interlex.Metadata) string {
	return fmt.Sprintf("%d/%d", m.QuestionsAnsweredCorrectly, m.QuestionsAttempted)
}
