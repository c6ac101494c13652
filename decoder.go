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

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-interlex/ilx"
	"github.com/ianlewis/go-interlex/lang"
	"github.com/ianlewis/go-interlex/layout"
)

// lineEndings converts Windows and old Mac line endings to "\n".
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Options are options for decoding .ilx files.
type Options struct {
	// Registry holds the known file layouts. Defaults to
	// [layout.DefaultRegistry].
	Registry *layout.Registry

	// Version forces the layout of the given Interlex version. Reading
	// files written by other versions is best-effort.
	Version string

	// MetadataEncoding is the code page of the header text, which Interlex
	// writes in the system code page rather than a language's code page. It
	// is also used for text in languages that are not recognized. Defaults
	// to windows-1250.
	MetadataEncoding *charmap.Charmap

	// Normalize is applied to every entry text field after decoding.
	Normalize func(string) (string, error)

	// Logger receives warnings about recoverable problems. Defaults to
	// discarding all output.
	Logger *slog.Logger
}

// DefaultOptions is the default options for decoding.
var DefaultOptions = &Options{
	MetadataEncoding: charmap.Windows1250,
}

func (o *Options) metadataEncoding() *charmap.Charmap {
	if o.MetadataEncoding == nil {
		return DefaultOptions.MetadataEncoding
	}
	return o.MetadataEncoding
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Decoder reads entries from an .ilx file one at a time in file order.
type Decoder struct {
	s         *ilx.Scanner
	metadata  Metadata
	foreign   *charmap.Charmap
	native    *charmap.Charmap
	normalize func(string) (string, error)

	entry *Entry
	err   error
}

// NewDecoder reads the file header from r and returns a Decoder for the
// entries. path is recorded as the entries' source and may be empty.
func NewDecoder(r io.Reader, path string, options *Options) (*Decoder, error) {
	if options == nil {
		options = DefaultOptions
	}
	logger := options.logger()

	s, err := ilx.NewScanner(r, &ilx.Options{
		Registry: options.Registry,
		Version:  options.Version,
	})
	if err != nil {
		return nil, err
	}

	p := s.Preamble()
	if s.Layout().Version != p.Version {
		logger.Warn("reading file with layout of a different version",
			slog.String("path", path),
			slog.String("file_version", p.Version),
			slog.String("layout_version", s.Layout().Version),
		)
	}

	metaEnc := options.metadataEncoding()
	h := s.Header()
	d := &Decoder{
		s:         s,
		normalize: options.Normalize,
	}

	text := func(name string) (string, error) {
		v, err := lang.Decode(metaEnc, h.Bytes(name))
		if err != nil {
			return "", fmt.Errorf("header field %q: %w", name, err)
		}
		return lineEndings.Replace(v), nil
	}

	m := Metadata{
		Path:                       path,
		Version:                    p.Version,
		WordCount:                  s.Count(),
		QuestionsAttempted:         h.Int(layout.QuestionsAttempted),
		QuestionsAnsweredCorrectly: h.Int(layout.QuestionsAnsweredCorrectly),
	}
	if m.Program, err = lang.Decode(metaEnc, p.Program); err != nil {
		return nil, fmt.Errorf("preamble: %w", err)
	}
	if m.Description, err = text(layout.Description); err != nil {
		return nil, err
	}
	if m.Author, err = text(layout.Author); err != nil {
		return nil, err
	}
	if m.Comments, err = text(layout.Comments); err != nil {
		return nil, err
	}

	m.ForeignLanguage = language(h, layout.ForeignLanguage, metaEnc, path, logger)
	m.NativeLanguage = language(h, layout.NativeLanguage, metaEnc, path, logger)
	d.foreign = m.ForeignLanguage.Encoding
	d.native = m.NativeLanguage.Encoding
	d.metadata = m

	return d, nil
}

// language resolves the language in the header field name. Unknown
// languages fall back to the metadata code page.
func language(h *ilx.Record, name string, fallback *charmap.Charmap, path string, logger *slog.Logger) lang.Language {
	//nolint:gosec // language fields are 16 bit.
	id := uint16(h.Int(name))
	l, ok := lang.Lookup(id)
	if !ok {
		logger.Warn("unknown language; assuming metadata code page",
			slog.String("path", path),
			slog.String("field", name),
			slog.Int("lcid", int(id)),
			slog.String("encoding", fallback.String()),
		)
		return lang.Unknown(id, fallback)
	}
	return l
}

// Metadata returns the file metadata.
func (d *Decoder) Metadata() Metadata {
	return d.metadata
}

// Scan advances to the next entry. It returns false when all entries have
// been read or an error occurs.
func (d *Decoder) Scan() bool {
	if d.err != nil {
		return false
	}
	d.entry = nil

	if !d.s.Scan() {
		d.err = d.s.Err()
		return false
	}

	d.entry, d.err = d.decodeEntry(d.s.Record())
	return d.err == nil
}

// Entry returns the entry read by the last call to Scan.
func (d *Decoder) Entry() *Entry {
	return d.entry
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) decodeEntry(r *ilx.Record) (*Entry, error) {
	text := func(name string, enc *charmap.Charmap) (string, error) {
		v, err := lang.Decode(enc, r.Bytes(name))
		if err != nil {
			return "", fmt.Errorf("entry field %q: %w", name, err)
		}
		v = lineEndings.Replace(v)
		if d.normalize != nil {
			v, err = d.normalize(v)
			if err != nil {
				return "", fmt.Errorf("entry field %q: %w", name, err)
			}
		}
		return v, nil
	}

	f := EntryFields{
		//nolint:gosec // int32 fields.
		Counter: int32(r.Int(layout.Counter)),
		//nolint:gosec // int32 fields.
		PenaltyPoints:   int32(r.Int(layout.PenaltyPoints)),
		FileDescription: d.metadata.Description,
		Source:          d.metadata.Path,
	}

	var err error
	// The word is written in the foreign language and everything else in
	// the native language.
	if f.Word, err = text(layout.Word, d.foreign); err != nil {
		return nil, err
	}
	if f.PartOfSpeech, err = text(layout.PartOfSpeech, d.native); err != nil {
		return nil, err
	}
	if f.Notes, err = text(layout.Notes, d.native); err != nil {
		return nil, err
	}
	if f.Translation, err = text(layout.Translation, d.native); err != nil {
		return nil, err
	}

	return NewEntry(f), nil
}
