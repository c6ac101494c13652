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

// Package config loads ilxexport settings from an optional YAML file and
// ILXEXPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-interlex/export"
	"github.com/ianlewis/go-interlex/lang"
)

// PathEnv is the environment variable naming the config file.
const PathEnv = "ILXEXPORT_CONFIG"

// ErrInvalid indicates an invalid configuration value.
var ErrInvalid = errors.New("invalid config")

// Config holds ilxexport settings.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Input  InputConfig  `yaml:"input"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig holds settings for the delimited text output.
type OutputConfig struct {
	Delimiter string `yaml:"delimiter" env:"ILXEXPORT_DELIMITER" env-default:","`
	Columns   string `yaml:"columns"   env:"ILXEXPORT_COLUMNS"   env-default:"word,part_of_speech,notes,translation,counter,penalty_points,file_description"`
	NoHeader  bool   `yaml:"no_header" env:"ILXEXPORT_NO_HEADER"`
	LF        bool   `yaml:"lf"        env:"ILXEXPORT_LF"`
}

// InputConfig holds settings for decoding .ilx files.
type InputConfig struct {
	AssumeVersion    string `yaml:"assume_version"    env:"ILXEXPORT_ASSUME_VERSION"`
	MetadataEncoding string `yaml:"metadata_encoding" env:"ILXEXPORT_METADATA_ENCODING" env-default:"windows-1250"`
	FoldWhitespace   bool   `yaml:"fold_whitespace"   env:"ILXEXPORT_FOLD_WHITESPACE"`
	StripMarkup      bool   `yaml:"strip_markup"      env:"ILXEXPORT_STRIP_MARKUP"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ILXEXPORT_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"ILXEXPORT_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file at path and environment
// variables. If path is empty the file named by ILXEXPORT_CONFIG is read, if
// set. Priority: ENV > YAML > defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all values can be used.
func (c *Config) Validate() error {
	opts, err := c.ExportOptions()
	if err != nil {
		return err
	}
	if _, err := export.NewWriter(io.Discard, opts); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.MetadataEncoding(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ExportOptions returns the options for the delimited text writer.
func (c *Config) ExportOptions() (*export.Options, error) {
	delim, err := ParseDelimiter(c.Output.Delimiter)
	if err != nil {
		return nil, err
	}
	cols, err := export.ParseColumns(c.Output.Columns)
	if err != nil {
		return nil, fmt.Errorf("%w: output.columns: %w", ErrInvalid, err)
	}
	return &export.Options{
		Columns:   cols,
		Delimiter: delim,
		NoHeader:  c.Output.NoHeader,
		UseLF:     c.Output.LF,
	}, nil
}

// MetadataEncoding returns the code page used for header text.
func (c *Config) MetadataEncoding() (*charmap.Charmap, error) {
	enc, err := lang.Encoding(c.Input.MetadataEncoding)
	if err != nil {
		return nil, fmt.Errorf("%w: input.metadata_encoding: %w", ErrInvalid, err)
	}
	return enc, nil
}

// ParseDelimiter parses a single character delimiter. The names "tab" and
// "\t" are accepted for a tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	case "":
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: delimiter must be a single character: %q", ErrInvalid, s)
	}
	return r, nil
}
