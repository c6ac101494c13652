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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// WhitespaceFolder performs whitespace folding on the input. It removes
// whitespace from the beginning and end of the input and replaces internal
// whitespace spans with a single ASCII space.
//
// If KeepLines is true, a span containing line breaks is replaced with a
// single '\n' instead, so multi-line notes keep their line structure while
// "\r\n" line endings and blank lines are folded.
type WhitespaceFolder struct {
	// KeepLines preserves line breaks.
	KeepLines bool

	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// wsSpan is true while in an internal whitespace span.
	wsSpan bool

	// lineSpan is true if the current whitespace span has a line break.
	lineSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if !w.notStart {
				continue
			}
			w.wsSpan = true
			if c == '\n' || c == '\r' {
				w.lineSpan = true
			}
			continue
		}

		if w.wsSpan {
			sep := ' '
			if w.KeepLines && w.lineSpan {
				sep = '\n'
			}
			if nDst+utf8.RuneLen(sep) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], sep)
			w.wsSpan = false
			w.lineSpan = false
		}

		// NOTE: size cannot be used here because c could be utf8.RuneError
		// in which case size would be 1 but the encoded length is 3.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.notStart = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{KeepLines: w.KeepLines}
}
