// Package output persists the generated menu document.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrWrite is returned when the document cannot be persisted.
var ErrWrite = errors.New("write output failed")

// filePermission matches what the game client expects for menu files.
const filePermission = 0o644

// Writer persists a finished document.
type Writer interface {
	Write(ctx context.Context, content string) error
}

// FileWriter replaces the contents of a single file. The document is
// written to a temporary file in the same directory and renamed over the
// target, so a failed run never leaves a truncated menu behind.
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the target file path.
func (w *FileWriter) Path() string { return w.path }

// Write replaces the target file with content.
func (w *FileWriter) Write(_ context.Context, content string) (err error) {
	if w.path == "" {
		return fmt.Errorf("%w: empty output path", ErrWrite)
	}
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.WriteString(tmp, content); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Chmod(filePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// StreamWriter writes the document to an io.Writer, e.g. stdout.
type StreamWriter struct {
	out io.Writer
}

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{out: out}
}

// Write copies content to the underlying writer.
func (w *StreamWriter) Write(_ context.Context, content string) error {
	if _, err := io.WriteString(w.out, content); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
