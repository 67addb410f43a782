package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/mung"
)

// Envs lists the environments found under the root directory. Every
// sub-directory of the root is a potential environment.
type Envs struct {
	Path bool `help:"Print PATH with the environment directories prepended"`
}

// Run executes the envs command.
func (e *Envs) Run(ctx context.Context) error {
	fs, err := fileSystemFrom(ctx)
	if err != nil {
		return err
	}

	root := rootFrom(ctx)
	if root == "" {
		if root, err = fs.Getwd(); err != nil {
			return ErrListDirs.Wrap(err)
		}
	}

	root = fs.Abs(root)

	dirs, err := fs.Dirs(root)
	if err != nil {
		return ErrListDirs.With(slog.String("root", root)).Wrap(err)
	}

	paths := make([]string, len(dirs))
	for i, dir := range dirs {
		paths[i] = filepath.Join(root, dir)
	}

	w := outputFrom(ctx)

	if e.Path {
		_, err = fmt.Fprintln(w, prefixPath(os.Getenv("PATH"), paths...))
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	for i, dir := range dirs {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", dir, paths[i]); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// prefixPath returns the path list with dirs prepended in order, removing
// duplicates.
func prefixPath(path string, dirs ...string) string {
	return mung.Make(
		mung.WithSubjectItems(path),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()
}
