package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/devrc/lang"
	"github.com/ardnew/devrc/log"
)

// defaultIndent is the number of spaces used to indent formatted output.
const defaultIndent = 2

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// Parse parses a devrc document and prints its sections without executing
// any statement.
type Parse struct {
	File   string `arg:"" help:"Document to parse" type:"existingfile"`
	Format string `default:"text" enum:"text,yaml,json" help:"Output format" short:"f"`
	Indent int    `default:"2" help:"Indentation width"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	in, err := newInterpreter(ctx)
	if err != nil {
		return err
	}

	// Activation markers are applied while parsing.
	defer in.Restore(ctx)

	if err := in.Load(ctx, p.File); err != nil {
		return ErrRun.With(slog.String("file", p.File)).Wrap(err)
	}

	if err := formatSections(ctx, outputFrom(ctx), in.Sections(), p.Format, p.Indent); err != nil {
		return err
	}

	for _, name := range in.ListEnvironments() {
		if env, ok := in.Environment(name); ok {
			log.InfoContext(ctx, "environment",
				slog.String("name", env.Name),
				slog.String("path", env.Path),
			)
		}
	}

	return nil
}

func formatSections(
	ctx context.Context,
	w io.Writer,
	secs *lang.Sections,
	format string,
	indent int,
) error {
	var err error

	switch format {
	case formatText, "":
		err = secs.Format(ctx, w, indent)
	case formatYAML:
		if err = secs.FormatYAML(ctx, w, indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	case formatJSON:
		err = secs.FormatJSON(ctx, w, indent)
	default:
		return ErrUnknownFormat.With(slog.String("format", format))
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
