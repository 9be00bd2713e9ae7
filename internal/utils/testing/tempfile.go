// Package testutils holds helpers shared by tests.
package testutils

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// NewTempFile creates a new, empty temp file for testing.  The file is
// closed and removed when the test finishes.  Errors are fatal.
func NewTempFile(t *testing.T) *os.File {
	t.Helper()
	pattern := strings.ReplaceAll(t.Name(), string(os.PathSeparator), "_")
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatal(errors.Wrap(err, "cannot create temp file"))
	}
	t.Cleanup(func() { closeTempFile(t, f) })
	return f
}

// NewTempFileWithContents creates a temp file holding contents, rewound to
// the beginning.  Errors are fatal.
func NewTempFileWithContents(t *testing.T, contents []byte) *os.File {
	t.Helper()
	f := NewTempFile(t)
	if _, err := f.Write(contents); err != nil {
		t.Fatal(errors.Wrapf(err, "cannot write contents into %s", f.Name()))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(errors.Wrapf(err, "cannot rewind test file %s", f.Name()))
	}
	return f
}

func closeTempFile(t *testing.T, f *os.File) {
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		t.Log(errors.Wrapf(err, "cannot close test file %s", f.Name()))
	}
}
