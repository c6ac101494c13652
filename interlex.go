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
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-interlex/lang"
)

// Metadata is the metadata stored in an .ilx file header.
type Metadata struct {
	// Path is the path of the file. It is empty when the file was not
	// read from disk.
	Path string

	// Program is the program name and version, e.g. "Interlex 2.5.0.7".
	Program string

	// Version is the Interlex version that wrote the file.
	Version string

	Description string
	Author      string
	Comments    string

	// ForeignLanguage is the language being learned.
	ForeignLanguage lang.Language

	// NativeLanguage is the language translations are written in.
	NativeLanguage lang.Language

	// WordCount is the number of entries.
	WordCount int

	QuestionsAttempted         int64
	QuestionsAnsweredCorrectly int64
}

// Score returns the fraction of questions answered correctly, or zero if no
// questions were attempted.
func (m *Metadata) Score() float64 {
	if m.QuestionsAttempted == 0 {
		return 0
	}
	return float64(m.QuestionsAnsweredCorrectly) / float64(m.QuestionsAttempted)
}

// File is a fully read .ilx file.
type File struct {
	Metadata Metadata
	Entries  []*Entry
}

// Read reads a whole .ilx file from r.
func Read(r io.Reader, options *Options) (*File, error) {
	return read(r, "", options)
}

func read(r io.Reader, path string, options *Options) (*File, error) {
	d, err := NewDecoder(r, path, options)
	if err != nil {
		return nil, err
	}

	f := &File{
		Metadata: d.Metadata(),
		Entries:  make([]*Entry, 0, min(d.Metadata().WordCount, 1<<16)),
	}
	for d.Scan() {
		f.Entries = append(f.Entries, d.Entry())
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// Open reads the .ilx file at path. Files ending in .gz are decompressed
// with gzip and files ending in .dz with dictzip.
func Open(path string, options *Options) (*File, error) {
	if options == nil {
		options = DefaultOptions
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	}

	file, err := read(r, path, options)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	options.logger().Debug("read vocabulary file",
		slog.String("path", path),
		slog.String("version", file.Metadata.Version),
		slog.Int("entries", len(file.Entries)),
	)
	return file, nil
}

// OpenAll reads the .ilx files at the given paths in order. It stops at the
// first error.
func OpenAll(paths []string, options *Options) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		f, err := Open(path, options)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
