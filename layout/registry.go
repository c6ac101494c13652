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
	"slices"
)

// ErrDuplicateVersion indicates that two layouts share a version.
var ErrDuplicateVersion = errors.New("duplicate layout version")

// Names of the fields that are interpreted by readers of .ilx files. A
// layout for a new version must use these names for the fields to be picked
// up.
const (
	ForeignLanguage            = "foreign_language_id"
	NativeLanguage             = "native_language_id"
	QuestionsAttempted         = "questions_attempted"
	QuestionsAnsweredCorrectly = "questions_answered_correctly"
	Description                = "description"
	Author                     = "author"
	Comments                   = "comments"
	WordCount                  = "word_count"

	Word          = "word"
	PartOfSpeech  = "part_of_speech"
	Notes         = "notes"
	Translation   = "translation"
	Counter       = "counter"
	PenaltyPoints = "penalty_points"
)

// V2507 is the layout of files written by Interlex 2.5.0.7.
var V2507 = Layout{
	Version: "2.5.0.7",
	Header: []Field{
		{Name: ForeignLanguage, Kind: Uint16},
		{Name: NativeLanguage, Kind: Uint16},
		{Name: QuestionsAttempted, Kind: Uint32},
		{Name: QuestionsAnsweredCorrectly, Kind: Uint32},
		{Name: Description, Kind: String16},
		{Name: Author, Kind: String16},
		{Name: Comments, Kind: String16},
		// Always zero in known files.
		{Name: "reserved", Kind: Reserved, Size: 10},
		{Name: WordCount, Kind: Uint32},
	},
	Entry: []Field{
		{Name: Word, Kind: String16},
		{Name: PartOfSpeech, Kind: String16},
		{Name: Notes, Kind: String16},
		{Name: Translation, Kind: String16},
		// Interlex sets the counter to a running question number each time
		// the word is tested.
		{Name: Counter, Kind: Int32},
		{Name: "reserved", Kind: Reserved, Size: 4},
		// -1 marks a learned word.
		{Name: PenaltyPoints, Kind: Int32},
	},
	CountField: WordCount,
}

// Registry is an immutable set of layouts keyed by version.
type Registry struct {
	layouts map[string]*Layout
}

// NewRegistry returns a registry holding the given layouts. Layouts are
// copied and validated.
func NewRegistry(layouts ...Layout) (*Registry, error) {
	r := &Registry{
		layouts: make(map[string]*Layout, len(layouts)),
	}
	for i := range layouts {
		l := layouts[i]
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.layouts[l.Version]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVersion, l.Version)
		}
		l.Header = slices.Clone(l.Header)
		l.Entry = slices.Clone(l.Entry)
		r.layouts[l.Version] = &l
	}
	return r, nil
}

// DefaultRegistry returns a registry holding the layouts of all verified
// Interlex versions.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(V2507)
	if err != nil {
		// The built in layouts are covered by tests.
		panic(err)
	}
	return r
}

// Lookup returns the layout for the given version.
func (r *Registry) Lookup(version string) (*Layout, bool) {
	l, ok := r.layouts[version]
	return l, ok
}

// Versions returns the known versions in sorted order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.layouts))
	for v := range r.layouts {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions
}
