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

// Package interlex implements a library for reading vocabulary files written
// by Interlex in pure Go.
//
// Interlex stores a vocabulary list in a single binary .ilx file:
//  1. A preamble holding the program name and version.
//  2. A header with the foreign and native languages, the author, a
//     description, comments, test statistics and the number of entries.
//  3. The entries. Each entry has a word, part of speech, notes, a
//     translation and learning statistics.
//
// Text is stored in the Windows code page of the language it is written in.
// The byte layout for each Interlex version is described in package layout.
// Only files written by Interlex 2.5.0.7 have been verified.
package interlex
