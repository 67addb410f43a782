package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/lang"
	"github.com/ardnew/devrc/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	rootKey   struct{}
	fsKey     struct{}
	outputKey struct{}
)

// WithRoot returns a new context.Context carrying the directory under which
// environments are created. An empty root means the working directory.
func WithRoot(ctx context.Context, root string) context.Context {
	return context.WithValue(ctx, rootKey{}, root)
}

func rootFrom(ctx context.Context) string {
	root, _ := ctx.Value(rootKey{}).(string)

	return root
}

// WithFileSystem returns a new context.Context carrying the filesystem that
// commands operate on. Without it commands use the host filesystem.
func WithFileSystem(ctx context.Context, fs *host.FS) context.Context {
	return context.WithValue(ctx, fsKey{}, fs)
}

func fileSystemFrom(ctx context.Context) (*host.FS, error) {
	if fs, ok := ctx.Value(fsKey{}).(*host.FS); ok && fs != nil {
		return fs, nil
	}

	fs, err := host.NewOS()
	if err != nil {
		return nil, ErrHost.Wrap(err)
	}

	return fs, nil
}

// WithOutput returns a new context.Context carrying the writer that commands
// print results to. Without it commands print to standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// newInterpreter returns an interpreter wired to the filesystem, root
// directory and logger configured in ctx.
func newInterpreter(ctx context.Context, opts ...lang.Option) (*lang.Interpreter, error) {
	fs, err := fileSystemFrom(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]lang.Option{
		lang.WithOutput(host.NewWriter(fs)),
		lang.WithRunner(host.Exec{Dir: fs.Getwd}),
		lang.WithLogger(log.Default()),
		lang.WithRoot(rootFrom(ctx)),
	}, opts...)

	return lang.New(fs, opts...), nil
}
