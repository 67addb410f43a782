package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/devrc/cli/cmd/repl"
	"github.com/ardnew/devrc/lang"
	"github.com/ardnew/devrc/log"
	"github.com/ardnew/devrc/pkg"
)

// Repl starts an interactive statement shell.
type Repl struct {
	File string `arg:"" help:"Document whose sections and imports are loaded first" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var transcript bytes.Buffer

	logger := log.Default().Wrap(log.WithOutput(&transcript), log.WithPretty(false))

	in, err := newInterpreter(ctx, lang.WithLogger(logger))
	if err != nil {
		return err
	}

	defer in.Restore(ctx)

	if r.File != "" {
		if err := in.Load(ctx, r.File); err != nil {
			return ErrRun.With(slog.String("file", r.File)).Wrap(err)
		}
	}

	history := repl.NewHistory(historyFile(ctx))

	if err := repl.Run(ctx, in, &transcript, history, log.Default()); err != nil {
		return ErrInteractive.Wrap(err)
	}

	return nil
}

// historyFile returns the history path in the cache directory named by the
// kong variables, or the default cache directory.
func historyFile(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return filepath.Join(dir, pkg.HistoryFileName)
		}
	}

	return pkg.HistoryFile()
}
