package lang

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
)

var (
	importDirectiveRx = regexp.MustCompile(`^@DEVRC\.IMPORT\.(\w+)(?:="?([^"]+)"?)?`)
	importRefRx       = regexp.MustCompile(`@DEVRC\.IMPORT="([^"]+)"`)
	importNameRx      = regexp.MustCompile(`is STR "([^"]+)"`)
)

// importDirective resolves an @DEVRC.IMPORT.<var>[="path"] directive found in
// the document at from and merges the imported sections into dst.
//
// Without an inline path the path is read from variable <var>. Relative paths
// are resolved against the importing document's directory. Each absolute path
// is imported at most once per interpreter.
func (in *Interpreter) importDirective(
	ctx context.Context,
	dst *Sections,
	line, from string,
) {
	m := importDirectiveRx.FindStringSubmatch(line)
	if m == nil {
		in.report(ctx, ErrInvalidImport.With(slog.String("line", line)))

		return
	}

	name, path := m[1], m[2]

	if path == "" {
		v, ok := in.vars[name]
		if !ok {
			in.report(ctx, ErrImportUnresolved.With(slog.String("variable", name)))

			return
		}

		path = v.String()
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(from), path)
	}

	path = filepath.Clean(path)

	if _, ok := in.imported[path]; ok {
		in.logger.InfoContext(ctx, "already imported", slog.String("path", path))

		return
	}

	if !in.fs.Exists(path) {
		in.report(ctx, ErrImportNotFound.With(slog.String("path", path)))

		return
	}

	in.logger.InfoContext(ctx, "importing", slog.String("path", path))

	in.imported[path] = struct{}{}
	in.importOrder = append(in.importOrder, path)

	src, err := in.Parse(ctx, path)
	if err != nil {
		in.report(ctx, WrapError(err))

		return
	}

	dst.merge(src, func(section string, merged bool) {
		msg := "adding section"
		if merged {
			msg = "merging section"
		}

		in.logger.DebugContext(ctx, msg, slog.String("section", section))
	})
}

// importReference handles an inline @DEVRC.IMPORT="ref" reference. When the
// line also carries an is STR "name" clause, name is bound to ref.
func (in *Interpreter) importReference(ctx context.Context, line string) {
	m := importRefRx.FindStringSubmatch(line)
	if m == nil {
		return
	}

	ref := m[1]

	in.logger.InfoContext(ctx, "inline import reference", slog.String("ref", ref))

	if n := importNameRx.FindStringSubmatch(line); n != nil {
		in.vars[n[1]] = String(ref)

		in.logger.DebugContext(ctx, "stored import reference",
			slog.String("variable", n[1]))
	}
}
