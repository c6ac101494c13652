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

// Package ilx implements reading raw records from .ilx files.
//
// A [Scanner] reads the file preamble and header, picks the [layout.Layout]
// for the version named in the preamble and then reads entries one at a time
// in file order. Records hold raw byte strings; decoding text from the file's
// code page is left to the caller.
package ilx
