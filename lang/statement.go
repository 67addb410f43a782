package lang

import (
	"context"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
)

var (
	assignNameRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
	tryRx        = regexp.MustCompile(`(?s)try\s*\((.+)\)`)
	ifRx         = regexp.MustCompile(`if \((.*?)\) is (.*?)(?:\s+do\s+|\s+|$)`)
	forRx        = regexp.MustCompile(`for \((.*?)\)`)
	functionRx   = regexp.MustCompile(`function\s+(\w+)\s*\(`)
	returnRx     = regexp.MustCompile(`return\s+(.+)`)
	exportRx     = regexp.MustCompile(`export\s+(\w+)\s*\(`)
	categoryRx   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\[(.+)\]`)
	subenvListRx = regexp.MustCompile(`subenv=\[([^\]]+)\]`)
	outQuotedRx  = regexp.MustCompile(`-out "([^"]+)"`)
	thisRefRx    = regexp.MustCompile(`this\.(\w+)`)
)

// categories are the names accepted on the left of a category declaration.
var categories = []string{"prod", "dev", "debug"}

// statement handles one statement line.
type statement func(in *Interpreter, ctx context.Context, line string, tokens []string)

// keywords maps first tokens to their statement handlers.
var keywords map[string]statement

// assignKeywords are keywords also recognized as a keyword= substring
// anywhere in the line, checked in this order.
var assignKeywords = []string{"dirlist", "currentdir", "subenv", "linenum", "current"}

func init() {
	keywords = map[string]statement{
		"dirlist":    (*Interpreter).dirlist,
		"currentdir": (*Interpreter).currentdir,
		"subenv":     (*Interpreter).subenv,
		"linenum":    (*Interpreter).linenum,
		"current":    (*Interpreter).current,
		"function":   (*Interpreter).function,
		"return":     (*Interpreter).returnStmt,
		"export":     (*Interpreter).exportStmt,
		"activate":   (*Interpreter).activate,
		".devrc":     (*Interpreter).devrc,
		"if":         (*Interpreter).ifStmt,
		"for":        (*Interpreter).forStmt,
		"do":         (*Interpreter).devrc,
		"out":        (*Interpreter).outStmt,
		"get":        (*Interpreter).get,
		"in":         (*Interpreter).inStmt,
		"try":        (*Interpreter).tryStmt,
	}
}

// Keywords returns the statement keywords in sorted order.
func Keywords() []string { return slices.Sorted(maps.Keys(keywords)) }

// Process executes one statement line.
//
// An assignment (name = value) binds name and ends processing. Otherwise the
// line is dispatched on its first token, or for dirlist, currentdir, subenv,
// linenum and current on a keyword= substring. Unrecognized statements are
// ignored. Nested if/for/try statements re-enter Process on the remainder of
// the line, up to the interpreter's depth ceiling.
func (in *Interpreter) Process(ctx context.Context, line string) {
	if in.depth > in.maxDepth {
		in.report(ctx, ErrMaxDepth.With(
			slog.Int("depth", in.depth),
			slog.String("line", line),
		))

		return
	}

	in.depth++
	defer func() { in.depth-- }()

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	if in.category(ctx, line) {
		return
	}

	if name, value, ok := splitAssignment(line); ok {
		in.assign(ctx, name, value)

		return
	}

	if handle, ok := keywords[tokens[0]]; ok {
		handle(in, ctx, line, tokens)

		return
	}

	for _, kw := range assignKeywords {
		if strings.Contains(line, kw+"=") {
			keywords[kw](in, ctx, line, tokens)

			return
		}
	}
}

// splitAssignment splits "name = value" at the first '='. The left side must
// be a plain name.
func splitAssignment(line string) (name, value string, ok bool) {
	lhs, rhs, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	lhs = strings.TrimSpace(lhs)
	if !assignNameRx.MatchString(lhs) {
		return "", "", false
	}

	return lhs, strings.TrimSpace(rhs), true
}

// assign binds name. The value {} or [] binds the empty container; a value
// containing try (...) binds the inner text without executing it; a value
// starting with function ( binds [Function].
func (in *Interpreter) assign(ctx context.Context, name, value string) {
	switch {
	case value == "{}" || value == "[]":
		in.vars[name] = Container

	case strings.Contains(value, "try ("):
		m := tryRx.FindStringSubmatch(value)
		if m == nil {
			return
		}

		in.vars[name] = String(strings.TrimSpace(m[1]))

	case strings.HasPrefix(value, "function ("):
		in.vars[name] = Function

	default:
		in.vars[name] = in.Evaluate(value)
	}

	in.logger.InfoContext(ctx, "set variable",
		slog.String("name", name),
		slog.String("kind", in.vars[name].Kind.String()),
		slog.String("value", in.vars[name].String()),
	)
}

// category handles prod|dev|debug=name[body]. If body contains
// subenv=["a","b"] and an environment is active, the list becomes that
// environment's categories. It reports whether line had the category form.
func (in *Interpreter) category(ctx context.Context, line string) bool {
	key, _, found := strings.Cut(line, "=")
	if !found || !slices.Contains(categories, strings.TrimSpace(key)) {
		return false
	}

	m := categoryRx.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}

	in.logger.InfoContext(ctx, "environment category",
		slog.String("category", m[1]),
		slog.String("environment", m[2]),
	)

	sub := subenvListRx.FindStringSubmatch(m[3])
	if sub == nil {
		return true
	}

	var names []string

	for item := range strings.SplitSeq(sub[1], ",") {
		names = append(names, strings.Trim(strings.TrimSpace(item), `"`))
	}

	in.logger.DebugContext(ctx, "sub-environments", slog.Any("names", names))

	if env, ok := in.activeEnv(); ok {
		env.Categories = names
	}

	return true
}

func (in *Interpreter) dirlist(ctx context.Context, line string, tokens []string) {
	m := Scan(tokens)

	attrs := []slog.Attr{
		slog.Bool("default_glob", m.Has(MarkGlobDefault)),
		slog.Bool("import_ref", m.Has(MarkImportRef)),
	}

	if m.Has(MarkOut) {
		if out := outQuotedRx.FindStringSubmatch(line); out != nil {
			attrs = append(attrs, slog.String("out", out[1]))
		}
	}

	in.logger.InfoContext(ctx, "directory list operation", attrs...)

	in.vars["dirlist"] = String("./")
}

func (in *Interpreter) currentdir(ctx context.Context, _ string, tokens []string) {
	dir, ok := in.vars["currentdir"]
	if !ok {
		wd, err := in.fs.Getwd()
		if err != nil {
			wd = in.origin
		}

		dir = String(wd)
	}

	in.vars["currentdir"] = dir

	in.logger.InfoContext(ctx, "current directory operation",
		slog.String("dir", dir.String()),
		slog.Bool("this_dir", Scan(tokens).Has(MarkThisDir)),
	)
}

func (in *Interpreter) subenv(ctx context.Context, _ string, tokens []string) {
	in.logger.InfoContext(ctx, "sub-environment configuration")

	if !Scan(tokens).Has(MarkEnvCategory) {
		return
	}

	if env, ok := in.activeEnv(); ok {
		env.Subenv = map[string]string{"category": "default"}

		in.logger.DebugContext(ctx, "sub-environment category set",
			slog.String("environment", env.Name))
	}
}

func (in *Interpreter) linenum(ctx context.Context, _ string, tokens []string) {
	m := Scan(tokens)

	in.logger.InfoContext(ctx, "line number operation",
		slog.Bool("fetched", m.Has(MarkLinesFetched)),
		slog.Bool("numerics", m.Has(MarkOutNumerics)),
	)

	in.vars["linenum"] = Number(0)
}

func (in *Interpreter) current(ctx context.Context, _ string, tokens []string) {
	m := Scan(tokens)

	in.logger.InfoContext(ctx, "current line operation",
		slog.Bool("linenum", m.Has(MarkLinenum)),
		slog.Bool("getline", m.Has(MarkGetline)),
		slog.Bool("activeline", m.Has(MarkActiveline)),
		slog.Bool("currentdir", m.Has(MarkCurrentdir)),
		slog.Bool("null_content", m.Has(MarkGetContentNull)),
	)
}

func (in *Interpreter) function(ctx context.Context, line string, _ []string) {
	m := functionRx.FindStringSubmatch(line)
	if m == nil {
		in.logger.InfoContext(ctx, "function block defined")

		return
	}

	in.vars[m[1]] = Function

	in.logger.InfoContext(ctx, "function defined", slog.String("name", m[1]))
}

func (in *Interpreter) returnStmt(ctx context.Context, line string, _ []string) {
	m := returnRx.FindStringSubmatch(line)
	if m == nil {
		return
	}

	val := strings.TrimSpace(m[1])

	in.logger.InfoContext(ctx, "return", slog.String("value", val))

	in.setReturnValue(val)
}

func (in *Interpreter) exportStmt(ctx context.Context, line string, _ []string) {
	m := exportRx.FindStringSubmatch(line)
	if m == nil {
		return
	}

	in.logger.InfoContext(ctx, "export", slog.String("name", m[1]))

	in.export(ctx, m[1], line)
}

func (in *Interpreter) activate(ctx context.Context, _ string, tokens []string) {
	if Scan(tokens).Has(MarkModeScript) {
		in.setMode(ctx, DefaultMode)
	}
}

func (in *Interpreter) devrc(ctx context.Context, _ string, tokens []string) {
	in.logger.DebugContext(ctx, "flag statement",
		slog.String("keyword", tokens[0]),
		slog.Any("args", tokens[1:]),
	)

	in.dispatchFlags(ctx, tokens[1:])
}

func (in *Interpreter) ifStmt(ctx context.Context, line string, _ []string) {
	loc := ifRx.FindStringSubmatchIndex(line)
	if loc == nil {
		return
	}

	name := strings.TrimSpace(line[loc[2]:loc[3]])
	want := in.Evaluate(line[loc[4]:loc[5]])

	ok, err := in.condition(name, want)
	if err != nil {
		in.report(ctx, WrapError(err))

		return
	}

	if !ok {
		in.logger.InfoContext(ctx, "condition not met",
			slog.String("variable", name),
			slog.String("expected", want.String()),
		)

		return
	}

	if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
		in.logger.InfoContext(ctx, "condition met",
			slog.String("variable", name),
			slog.String("expected", want.String()),
		)

		in.Process(ctx, rest)
	}
}

func (in *Interpreter) forStmt(ctx context.Context, line string, _ []string) {
	loc := forRx.FindStringSubmatchIndex(line)
	if loc == nil {
		return
	}

	in.logger.InfoContext(ctx, "for loop",
		slog.String("over", strings.TrimSpace(line[loc[2]:loc[3]])))

	if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
		in.Process(ctx, rest)
	}
}

func (in *Interpreter) outStmt(ctx context.Context, _ string, tokens []string) {
	if len(tokens) > 1 {
		in.out(ctx, tokens[1])
	}
}

func (in *Interpreter) get(ctx context.Context, _ string, tokens []string) {
	m := Scan(tokens)

	in.logger.InfoContext(ctx, "get operation",
		slog.Bool("table_content", m.Has(MarkTableContent)),
		slog.Bool("file", m.Has(MarkFile, MarkFileExt)),
		slog.Bool("null_content", m.Has(MarkContentNull)),
		slog.Bool("glob", m.Has(MarkGlob)),
	)
}

func (in *Interpreter) inStmt(ctx context.Context, line string, tokens []string) {
	m := Scan(tokens)

	attrs := []slog.Attr{
		slog.Bool("env_activate", m.Has(MarkEnvActivate)),
		slog.Bool("env_content", m.Has(MarkEnvContent)),
		slog.Bool("file_string", m.Has(MarkFileIsStr)),
		slog.Bool("default_glob", m.Has(MarkGlobDefault)),
	}

	if m.Has(MarkEnvActivate) && in.active != "" {
		attrs = append(attrs, slog.String("active", in.active))
	}

	if ref := thisRefRx.FindStringSubmatch(line); ref != nil {
		attrs = append(attrs, slog.String("this", ref[1]))
	}

	in.logger.InfoContext(ctx, "in operation", attrs...)
}

func (in *Interpreter) tryStmt(ctx context.Context, line string, _ []string) {
	m := tryRx.FindStringSubmatch(line)
	if m == nil {
		return
	}

	body := strings.TrimSpace(m[1])

	in.logger.InfoContext(ctx, "try block", slog.String("body", body))

	in.Process(ctx, body)
}

// out hands path to the output collaborator.
func (in *Interpreter) out(ctx context.Context, path string) {
	path = cleanPath(path)

	if err := in.output.Output(ctx, path); err != nil {
		in.report(ctx, ErrOutput.Wrap(err).With(slog.String("path", path)))

		return
	}

	in.logger.InfoContext(ctx, "output", slog.String("path", path))
}

// createFolder hands path to the folder collaborator.
func (in *Interpreter) createFolder(ctx context.Context, path string) {
	path = cleanPath(path)

	if err := in.output.CreateFolder(ctx, path); err != nil {
		in.report(ctx, ErrOutput.Wrap(err).With(slog.String("path", path)))

		return
	}

	in.logger.InfoContext(ctx, "created folder", slog.String("path", path))
}

// cleanPath strips surrounding quotes and glob stars from a path argument.
func cleanPath(path string) string {
	return strings.ReplaceAll(strings.Trim(path, `"`), "*", "")
}
