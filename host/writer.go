package host

import (
	"context"
	"path/filepath"
	"strings"
)

// DirMaker creates directories.
type DirMaker interface {
	MkdirAll(path string) error
}

// Writer prepares output destinations and folders on a [DirMaker].
type Writer struct {
	fs DirMaker
}

// NewWriter returns a Writer creating directories on fs.
func NewWriter(fs DirMaker) *Writer {
	return &Writer{fs: fs}
}

// Output prepares path as an output destination. A path ending with a
// separator is a directory and is created; otherwise the parent directory
// of the file is created.
func (w *Writer) Output(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := path
	if !strings.HasSuffix(path, "/") && !strings.HasSuffix(path, string(filepath.Separator)) {
		dir = filepath.Dir(path)
	}

	if dir == "" || dir == "." {
		return nil
	}

	return w.fs.MkdirAll(dir)
}

// CreateFolder creates path and any missing parents.
func (w *Writer) CreateFolder(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.fs.MkdirAll(path)
}
