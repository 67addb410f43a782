package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/devrc/log"
)

// Run executes a devrc document.
type Run struct {
	File     string   `arg:"" help:"Document to execute" type:"existingfile"`
	Sections []string `help:"Execute only the named sections, in the given order" name:"section" sep:"," short:"s"`
	DryRun   bool     `help:"Print the parsed sections without executing them" short:"d"`
	Dump     bool     `help:"Print the interpreter state as YAML after execution"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	if r.DryRun {
		return (&Parse{File: r.File, Format: formatText, Indent: defaultIndent}).Run(ctx)
	}

	in, err := newInterpreter(ctx)
	if err != nil {
		return err
	}

	if err := in.Run(ctx, r.File, r.Sections...); err != nil {
		return ErrRun.With(slog.String("file", r.File)).Wrap(err)
	}

	if diags := in.Diagnostics(); len(diags) > 0 {
		log.WarnContext(ctx, "completed with diagnostics",
			slog.String("file", r.File),
			slog.Int("count", len(diags)),
		)
	}

	if !r.Dump {
		return nil
	}

	if err := in.Snapshot().FormatYAML(ctx, outputFrom(ctx), defaultIndent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}
