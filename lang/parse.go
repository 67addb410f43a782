package lang

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

const (
	importPrefix    = "@DEVRC.IMPORT."
	importRefMarker = "@DEVRC.IMPORT="
	activatePrefix  = "#["
	activateSuffix  = "]/ACTIVATE"
)

// Parse reads the document at path and returns its sections.
//
// Environment activation markers are applied and import directives are
// resolved while parsing. If path is already being parsed further up the
// import chain, the circular import is reported and an empty section set is
// returned without error. The returned error is non-nil only when the
// document itself cannot be read.
func (in *Interpreter) Parse(ctx context.Context, path string) (*Sections, error) {
	abs := in.abs(path)

	if slices.Contains(in.stack, abs) {
		in.report(ctx, ErrCircularImport.With(slog.String("path", abs)))

		return new(Sections), nil
	}

	in.stack = append(in.stack, abs)
	defer func() { in.stack = in.stack[:len(in.stack)-1] }()

	data, err := in.fs.ReadFile(abs)
	if err != nil {
		return new(Sections), ErrReadDocument.Wrap(err).
			With(slog.String("path", abs))
	}

	in.logger.TraceContext(ctx, "read document",
		slog.String("path", abs),
		slog.Int("bytes", len(data)),
	)

	return in.parseDocument(ctx, abs, string(data)), nil
}

// parseDocument splits text into sections. Each line is classified in a fixed
// order: activation marker, inline import reference, comment removal, blank,
// import directive, type annotation, section header, statement.
func (in *Interpreter) parseDocument(
	ctx context.Context,
	path, text string,
) *Sections {
	var (
		secs    = new(Sections)
		current *Section
		pending string
	)

	for num, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, activatePrefix) &&
			strings.Contains(trimmed, activateSuffix) {
			in.activateMarker(ctx, trimmed)

			continue
		}

		if strings.Contains(raw, importRefMarker) {
			in.importReference(ctx, raw)
		}

		line := raw
		if !strings.HasPrefix(trimmed, activatePrefix) {
			line, _, _ = strings.Cut(line, "#")
		}

		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, importPrefix):
			in.importDirective(ctx, secs, line, path)

		case strings.HasPrefix(line, "@[") && strings.HasSuffix(line, "]"):
			pending = line[2 : len(line)-1]

			in.logger.DebugContext(ctx, "type annotation",
				slog.String("type", pending))

		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			name := line[1 : len(line)-1]
			if name == "" {
				in.report(ctx, ErrEmptySection.With(
					slog.String("path", path),
					slog.Int("line", num+1),
				))

				current, pending = nil, ""

				continue
			}

			current = secs.open(name, pending)
			pending = ""

		case current != nil:
			current.Lines = append(current.Lines, line)
		}
	}

	in.logger.TraceContext(ctx, "parse complete",
		slog.String("path", path),
		slog.Int("section_count", secs.Len()),
	)

	return secs
}
