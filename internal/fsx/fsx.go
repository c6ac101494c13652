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

// Package fsx implements all-or-nothing file writes.
package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is a file that only appears at its path once committed. Writes
// go to a temporary file in the same directory which is renamed over the
// target on Commit.
type AtomicFile struct {
	f    *os.File
	path string
	perm os.FileMode
	done bool
}

// CreateAtomic creates a new AtomicFile for path.
func CreateAtomic(path string, perm os.FileMode) (*AtomicFile, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	// The temporary file must be in the same directory for the rename to be
	// atomic.
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file for %q: %w", path, err)
	}
	return &AtomicFile{
		f:    f,
		path: path,
		perm: perm,
	}, nil
}

// Write implements [io.Writer].
func (a *AtomicFile) Write(p []byte) (int, error) {
	//nolint:wrapcheck // error should not be wrapped
	return a.f.Write(p)
}

// Name returns the target path.
func (a *AtomicFile) Name() string {
	return a.path
}

// Commit syncs the temporary file and renames it to the target path.
func (a *AtomicFile) Commit() error {
	if a.done {
		return errors.New("file already closed")
	}
	a.done = true

	if err := a.f.Sync(); err != nil {
		return a.abort(fmt.Errorf("syncing %q: %w", a.f.Name(), err))
	}
	if err := a.f.Chmod(a.perm); err != nil {
		return a.abort(fmt.Errorf("setting mode of %q: %w", a.f.Name(), err))
	}
	if err := a.f.Close(); err != nil {
		_ = os.Remove(a.f.Name())
		return fmt.Errorf("closing %q: %w", a.f.Name(), err)
	}
	if err := os.Rename(a.f.Name(), a.path); err != nil {
		_ = os.Remove(a.f.Name())
		return fmt.Errorf("renaming %q to %q: %w", a.f.Name(), a.path, err)
	}
	return nil
}

// Close discards the temporary file unless Commit was called. It is safe to
// defer Close after a successful Commit.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	return a.abort(nil)
}

func (a *AtomicFile) abort(err error) error {
	cerr := a.f.Close()
	rerr := os.Remove(a.f.Name())
	if errors.Is(cerr, os.ErrClosed) {
		cerr = nil
	}
	return errors.Join(err, cerr, rerr)
}
