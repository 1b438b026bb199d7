// Package atomicfile writes output files through a temporary file that is
// renamed over the destination on Commit, so a failed build never leaves a
// partial cabinet behind.
package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrClosed is returned by Commit after the file was closed or committed.
var ErrClosed = errors.New("atomicfile: file is closed")

// File is an output that only becomes visible once committed.
//
// Close discards uncommitted output and is safe to call after Commit, so
// callers can defer it unconditionally.
type File interface {
	io.WriteCloser
	Commit() error
	Name() string
}

type atomicFile struct {
	name     string
	perm     os.FileMode
	tempfile *os.File
}

// New creates a temporary file next to name that replaces name on Commit.
func New(name string, perm os.FileMode) (File, error) {
	tempfile, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", name, err)
	}

	return &atomicFile{name: name, perm: perm, tempfile: tempfile}, nil
}

func (f *atomicFile) Name() string {
	return f.name
}

func (f *atomicFile) Write(d []byte) (int, error) {
	if f.tempfile == nil {
		return 0, ErrClosed
	}

	return f.tempfile.Write(d)
}

func (f *atomicFile) Close() error {
	if f.tempfile == nil {
		return nil
	}

	name := f.tempfile.Name()
	_ = f.tempfile.Close()
	f.tempfile = nil

	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (f *atomicFile) Commit() error {
	if f.tempfile == nil {
		return ErrClosed
	}

	tempfile := f.tempfile
	f.tempfile = nil

	err := tempfile.Chmod(f.perm)
	if err == nil {
		err = tempfile.Sync()
	}
	if cerr := tempfile.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		// rename can't overwrite on windows
		if rerr := os.Remove(f.name); rerr != nil && !os.IsNotExist(rerr) {
			err = rerr
		}
	}
	if err == nil {
		err = os.Rename(tempfile.Name(), f.name)
	}
	if err != nil {
		_ = os.Remove(tempfile.Name())
		return fmt.Errorf("failed to commit %s: %w", f.name, err)
	}

	return nil
}

type direct struct {
	*os.File
	doClose bool
}

func (d direct) Commit() error {
	if d.doClose {
		return d.File.Close()
	}

	return nil
}

func (d direct) Close() error {
	if d.doClose {
		// a second Close after Commit reports os.ErrClosed; nothing is lost
		if err := d.File.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			return err
		}
	}

	return nil
}

// WriteAny picks the write strategy for path: "-" writes to stdout, pipes
// and devices are written directly, and regular paths go through New.
func WriteAny(path string, perm os.FileMode) (File, error) {
	if path == "-" {
		return direct{File: os.Stdout}, nil
	}

	if stat, err := os.Stat(path); err == nil && !stat.Mode().IsRegular() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return nil, err
		}

		return direct{File: f, doClose: true}, nil
	}

	return New(path, perm)
}
