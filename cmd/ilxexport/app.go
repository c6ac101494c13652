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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-interlex"
	"github.com/ianlewis/go-interlex/convert"
	"github.com/ianlewis/go-interlex/export"
	"github.com/ianlewis/go-interlex/internal/config"
	"github.com/ianlewis/go-interlex/internal/folding"
	"github.com/ianlewis/go-interlex/layout"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeDecodeError is the exit code for an input file that could not
	// be read.
	ExitCodeDecodeError

	// ExitCodeWriteError is the exit code for output that could not be
	// written.
	ExitCodeWriteError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrIlxexport is a parent error for all command errors.
var ErrIlxexport = errors.New("ilxexport")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrIlxexport)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `ilxexport --help foo.ilx` will display a
	// "command foo.ilx not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	var serr *convert.StageError
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.As(err, &serr) && serr.Stage == convert.StageDecode:
		return ExitCodeDecodeError
	case errors.As(err, &serr) && serr.Stage == convert.StageWrite:
		return ExitCodeWriteError
	default:
		return ExitCodeUnknownError
	}
}

func newIlxexportApp() *cli.App {
	return &cli.App{
		Name:      filepath.Base(os.Args[0]),
		Usage:     "Export Interlex vocabulary files to CSV.",
		ArgsUsage: "INPUT.ilx...",
		Description: strings.Join([]string{
			"Converts .ilx files written by Interlex into delimited text.",
			"Entries of all input files are written to a single output file in order.",
			"http://github.com/ianlewis/go-interlex",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Usage:   "write CSV to `PATH` (- for standard output)",
				Aliases: []string{"o"},
			},
			&cli.BoolFlag{
				Name:               "no-header",
				Usage:              "don't write the header row",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:    "delimiter",
				Usage:   "field delimiter `CHAR` (\"tab\" for a tab)",
				Aliases: []string{"d"},
			},
			&cli.StringFlag{
				Name:  "columns",
				Usage: "comma separated output `COLUMNS` (" + strings.Join(export.ColumnNames(), ", ") + ")",
			},
			&cli.BoolFlag{
				Name:               "lf",
				Usage:              "end rows with LF instead of CRLF",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "assume-version",
				Usage: "read all files as written by Interlex `VERSION`",
			},
			&cli.StringFlag{
				Name:  "metadata-encoding",
				Usage: "code page `NAME` of file descriptions, authors and comments",
			},
			&cli.BoolFlag{
				Name:               "fold-whitespace",
				Usage:              "collapse runs of whitespace in entry text",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "strip-markup",
				Usage:              "convert HTML markup in entry text to plain text",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "list",
				Usage:              "print file information and exit",
				Aliases:            []string{"l"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "quiet",
				Usage:              "don't print file information",
				Aliases:            []string{"q"},
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read settings from YAML `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{config.PathEnv},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text, json)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowAppHelp(c))
				return nil
			}
			if c.Bool("version") {
				return printVersion(c)
			}
			return runExport(c)
		},
	}
}

func runExport(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no input files", ErrFlagParse)
	}
	output := c.String("output")
	if output == "" && !c.Bool("list") {
		return fmt.Errorf("%w: missing --output", ErrFlagParse)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	opts, err := convertOptions(c, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	files, err := convert.Decode(inputs, opts)
	if err != nil {
		return err
	}

	if c.Bool("list") {
		return printFileList(c.App.Writer, files)
	}

	if !c.Bool("quiet") {
		if err := printSummaries(c.App.ErrWriter, files); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.App.ErrWriter, "Saving all %d entries in %s\n", countEntries(files), output)
	}

	opts.Stdout = c.App.Writer
	_, err = convert.WriteFile(files, output, opts)
	return err
}

// loadConfig loads the config file and applies flags set on the command
// line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by config
	}

	if c.IsSet("delimiter") {
		cfg.Output.Delimiter = c.String("delimiter")
	}
	if c.IsSet("columns") {
		cfg.Output.Columns = c.String("columns")
	}
	if c.Bool("no-header") {
		cfg.Output.NoHeader = true
	}
	if c.Bool("lf") {
		cfg.Output.LF = true
	}
	if c.IsSet("assume-version") {
		cfg.Input.AssumeVersion = c.String("assume-version")
	}
	if c.IsSet("metadata-encoding") {
		cfg.Input.MetadataEncoding = c.String("metadata-encoding")
	}
	if c.Bool("fold-whitespace") {
		cfg.Input.FoldWhitespace = true
	}
	if c.Bool("strip-markup") {
		cfg.Input.StripMarkup = true
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// convertOptions builds the conversion options from the config.
func convertOptions(c *cli.Context, cfg *config.Config) (*convert.Options, error) {
	logger := newLogger(cfg.Log, c.App.ErrWriter)

	registry := layout.DefaultRegistry()
	if v := cfg.Input.AssumeVersion; v != "" {
		if _, ok := registry.Lookup(v); !ok {
			return nil, fmt.Errorf("unsupported version %q, supported versions: %s",
				v, strings.Join(registry.Versions(), ", "))
		}
	}

	enc, err := cfg.MetadataEncoding()
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by config
	}
	exportOpts, err := cfg.ExportOptions()
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by config
	}

	var normalize []folding.Func
	if cfg.Input.StripMarkup {
		normalize = append(normalize, folding.Markup)
	}
	if cfg.Input.FoldWhitespace {
		normalize = append(normalize, folding.Whitespace)
	}

	decodeOpts := &interlex.Options{
		Registry:         registry,
		Version:          cfg.Input.AssumeVersion,
		MetadataEncoding: enc,
		Logger:           logger,
	}
	if len(normalize) > 0 {
		decodeOpts.Normalize = folding.Chain(normalize...)
	}

	return &convert.Options{
		Decode: decodeOpts,
		Export: exportOpts,
		Logger: logger,
	}, nil
}

func countEntries(files []*interlex.File) int {
	var n int
	for _, f := range files {
		n += len(f.Entries)
	}
	return n
}
