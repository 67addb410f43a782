package lang

import (
	"context"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/ardnew/devrc/log"
)

// DefaultMaxDepth is the default ceiling on nested if/for/try re-dispatch.
const DefaultMaxDepth = 64

// FileSystem is the filesystem collaborator. Paths may be relative to the
// collaborator's current directory.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Exists(path string) bool
	Getwd() (string, error)
	Chdir(path string) error
}

// Output is the collaborator behind the out statement and the -out and
// -crfolder flags.
type Output interface {
	// Output prepares path as an output destination: a directory when path
	// ends with a separator, otherwise the parent directory of a file.
	Output(ctx context.Context, path string) error
	// CreateFolder creates path and any missing parents.
	CreateFolder(ctx context.Context, path string) error
}

// ProcessRunner executes an external command and captures its stdout.
type ProcessRunner interface {
	Run(ctx context.Context, argv []string) (string, error)
}

// Interpreter holds the state of one devrc run: variables, sections,
// environments and imports. It is not safe for concurrent use.
type Interpreter struct {
	fs       FileSystem
	output   Output
	runner   ProcessRunner
	logger   log.Logger
	maxDepth int

	root   string // parent directory of environment directories
	origin string // working directory when the interpreter was created

	vars     map[string]Value
	sections Sections

	envs     map[string]*Environment
	envOrder []string
	active   string

	imported    map[string]struct{}
	importOrder []string
	stack       []string

	diags []error
	depth int
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithOutput sets the output collaborator.
func WithOutput(out Output) Option {
	return func(in *Interpreter) { in.output = out }
}

// WithRunner sets the process collaborator used by [Interpreter.Execute].
func WithRunner(r ProcessRunner) Option {
	return func(in *Interpreter) { in.runner = r }
}

// WithLogger sets the logger that receives all reports.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithRoot sets the directory under which environments are created.
// A relative root is resolved against the starting working directory.
func WithRoot(root string) Option {
	return func(in *Interpreter) { in.root = root }
}

// WithMaxDepth sets the nesting ceiling for if/for/try statements.
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// New returns an Interpreter operating on fs.
func New(fs FileSystem, opts ...Option) *Interpreter {
	in := &Interpreter{
		fs:       fs,
		output:   discardOutput{},
		maxDepth: DefaultMaxDepth,
		vars:     make(map[string]Value),
		envs:     make(map[string]*Environment),
		imported: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(in)
	}

	wd, err := fs.Getwd()
	if err != nil {
		wd = "."
	}

	in.origin = wd

	switch {
	case in.root == "":
		in.root = wd
	case !filepath.IsAbs(in.root):
		in.root = filepath.Join(wd, in.root)
	}

	in.root = filepath.Clean(in.root)

	return in
}

// Root returns the directory under which environments are created.
func (in *Interpreter) Root() string { return in.root }

// Variable returns the value bound to name.
func (in *Interpreter) Variable(name string) (Value, bool) {
	v, ok := in.vars[name]

	return v, ok
}

// Variables returns a copy of all variable bindings.
func (in *Interpreter) Variables() map[string]Value {
	return maps.Clone(in.vars)
}

// Sections returns the sections loaded by the last [Interpreter.Run] or
// [Interpreter.Load].
func (in *Interpreter) Sections() *Sections { return &in.sections }

// Imported returns the absolute paths of imported documents in import order.
func (in *Interpreter) Imported() []string { return slices.Clone(in.importOrder) }

// Diagnostics returns every recovered failure reported so far.
func (in *Interpreter) Diagnostics() []error { return slices.Clone(in.diags) }

// Execute runs argv through the process collaborator and returns its stdout.
// A failure is reported and yields an empty result.
func (in *Interpreter) Execute(ctx context.Context, argv []string) string {
	if in.runner == nil || len(argv) == 0 {
		in.report(ctx, ErrExecute.With(slog.Any("argv", argv)))

		return ""
	}

	out, err := in.runner.Run(ctx, argv)
	if err != nil {
		in.report(ctx, ErrExecute.Wrap(err).With(slog.Any("argv", argv)))

		return ""
	}

	in.logger.InfoContext(ctx, "executed", slog.Any("argv", argv))

	return out
}

// report logs a recovered failure and records it as a diagnostic.
func (in *Interpreter) report(ctx context.Context, err *Error) {
	in.diags = append(in.diags, err)
	in.logger.WarnContext(ctx, err.msg, slog.Any("error", err))
}

// abs resolves path against the collaborator's working directory.
func (in *Interpreter) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	wd, err := in.fs.Getwd()
	if err != nil {
		wd = in.origin
	}

	return filepath.Join(wd, path)
}

// discardOutput is used when no output collaborator is configured.
type discardOutput struct{}

func (discardOutput) Output(context.Context, string) error       { return nil }
func (discardOutput) CreateFolder(context.Context, string) error { return nil }
