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

package interlex

import "strings"

// LearnedPenalty is the penalty value Interlex uses to mark a learned word.
const LearnedPenalty = -1

// EntryFields are the values of an Entry.
type EntryFields struct {
	Word            string
	PartOfSpeech    string
	Notes           string
	Translation     string
	Counter         int32
	PenaltyPoints   int32
	FileDescription string
	Source          string
}

// Entry is a single vocabulary entry. Entries are immutable.
type Entry struct {
	f EntryFields
}

// NewEntry returns a new Entry with the given values.
func NewEntry(f EntryFields) *Entry {
	return &Entry{f: f}
}

// Word returns the word or phrase in the foreign language.
func (e *Entry) Word() string {
	return e.f.Word
}

// PartOfSpeech returns the part of speech, e.g. "n" or "verb".
func (e *Entry) PartOfSpeech() string {
	return e.f.PartOfSpeech
}

// Notes returns free-form notes such as example sentences.
func (e *Entry) Notes() string {
	return e.f.Notes
}

// Translation returns the translation in the native language.
func (e *Entry) Translation() string {
	return e.f.Translation
}

// Counter returns the question number of the last time the word was tested.
func (e *Entry) Counter() int32 {
	return e.f.Counter
}

// PenaltyPoints returns the number of penalty points for the word.
func (e *Entry) PenaltyPoints() int32 {
	return e.f.PenaltyPoints
}

// Learned returns true if the word is marked as learned.
func (e *Entry) Learned() bool {
	return e.f.PenaltyPoints == LearnedPenalty
}

// FileDescription returns the description of the file the entry was read
// from.
func (e *Entry) FileDescription() string {
	return e.f.FileDescription
}

// Source returns the path of the file the entry was read from. It is empty
// for entries not read from a file.
func (e *Entry) Source() string {
	return e.f.Source
}

// Fields returns a copy of the entry's values.
func (e *Entry) Fields() EntryFields {
	return e.f
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.f.Word)
	if e.f.PartOfSpeech != "" {
		b.WriteString(" (" + e.f.PartOfSpeech + ")")
	}
	b.WriteString(" = " + e.f.Translation)
	return b.String()
}
