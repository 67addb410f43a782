package lang_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/lang"
)

const workdir = "/work"

// newInterpreter returns an interpreter over an in-memory filesystem rooted at
// workdir and populated with files.
func newInterpreter(
	t *testing.T,
	files map[string]string,
	opts ...lang.Option,
) (*lang.Interpreter, *host.FS) {
	t.Helper()

	fs := host.NewMemory(workdir)

	for path, text := range files {
		if err := fs.WriteFile(path, []byte(text)); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", path, err)
		}
	}

	return lang.New(fs, opts...), fs
}

// call is one recorded collaborator invocation.
type call struct {
	op   string
	path string
}

// recorder is an output collaborator that records calls in order.
type recorder struct {
	calls []call
	err   error
}

func (r *recorder) Output(_ context.Context, path string) error {
	r.calls = append(r.calls, call{"output", path})

	return r.err
}

func (r *recorder) CreateFolder(_ context.Context, path string) error {
	r.calls = append(r.calls, call{"folder", path})

	return r.err
}

// hasDiagnostic reports whether in reported an error matching target.
func hasDiagnostic(in *lang.Interpreter, target error) bool {
	for _, err := range in.Diagnostics() {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// mustVariable fails the test unless name is bound.
func mustVariable(t *testing.T, in *lang.Interpreter, name string) lang.Value {
	t.Helper()

	v, ok := in.Variable(name)
	if !ok {
		t.Fatalf("variable %q is not bound", name)
	}

	return v
}
