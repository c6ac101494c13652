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

// Package layout describes the byte layout of .ilx files for each known
// Interlex version.
//
// Every .ilx file starts with a preamble that is the same for all versions:
// a string holding the program name and version, prefixed by its length as a
// single byte. The rest of the file is described by a [Layout]:
//  1. The header: a fixed sequence of fields holding file metadata. One of
//     the header fields holds the number of entries in the file.
//  2. The entries: the entry fields repeated once per entry.
//
// Strings are length prefixed byte strings in a Windows code page. All
// integers are little endian.
package layout
