package lang_test

import (
	"errors"
	"testing"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/lang"
)

// brokenFS refuses to create directories.
type brokenFS struct {
	*host.FS
}

var errReadOnly = errors.New("read-only filesystem")

func (brokenFS) MkdirAll(string) error { return errReadOnly }

func TestActivate(t *testing.T) {
	tests := []struct {
		name string
		root string
		want string
	}{
		{name: "default root", want: "/work/staging"},
		{name: "relative root", root: "envs", want: "/work/envs/staging"},
		{name: "absolute root", root: "/srv/devrc", want: "/srv/devrc/staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []lang.Option
			if tt.root != "" {
				opts = append(opts, lang.WithRoot(tt.root))
			}

			in, fs := newInterpreter(t, nil, opts...)

			if err := in.Activate(t.Context(), "staging"); err != nil {
				t.Fatalf("Activate() error = %v", err)
			}

			if wd, _ := fs.Getwd(); wd != tt.want {
				t.Errorf("Getwd() = %q, want %q", wd, tt.want)
			}

			checks := map[string]string{
				"env":        "staging",
				"activate":   "staging/ACTIVATE",
				"currentdir": tt.want,
			}
			for name, want := range checks {
				if got := mustVariable(t, in, name); !got.Equal(lang.String(want)) {
					t.Errorf("%s = %v, want %q", name, got, want)
				}
			}

			env, ok := in.Environment("staging")
			if !ok {
				t.Fatalf("Environment(staging) not found")
			}

			if env.Mode != lang.DefaultMode || env.Path != tt.want || env.ActivatedAt != workdir {
				t.Errorf("Environment(staging) = %+v", env)
			}
		})
	}
}

func TestActivate_Reuse(t *testing.T) {
	in, fs := newInterpreter(t, nil)
	ctx := t.Context()

	if err := in.Activate(ctx, "dev"); err != nil {
		t.Fatalf("Activate(dev) error = %v", err)
	}

	in.Process(ctx, "return built")

	if err := in.Activate(ctx, "prod"); err != nil {
		t.Fatalf("Activate(prod) error = %v", err)
	}

	if err := in.Activate(ctx, "dev"); err != nil {
		t.Fatalf("Activate(dev) error = %v", err)
	}

	env, _ := in.Environment("dev")
	if env.ReturnValue == nil || *env.ReturnValue != "built" {
		t.Errorf("dev record was recreated: %+v", env)
	}

	if env.ActivatedAt != "/work/prod" {
		t.Errorf("ActivatedAt = %q, want /work/prod", env.ActivatedAt)
	}

	if got := in.ListEnvironments(); len(got) != 2 || got[0] != "dev" || got[1] != "prod" {
		t.Errorf("ListEnvironments() = %v, want [dev prod]", got)
	}

	if wd, _ := fs.Getwd(); wd != "/work/dev" {
		t.Errorf("Getwd() = %q, want /work/dev", wd)
	}
}

func TestActivate_Failure(t *testing.T) {
	mem := host.NewMemory(workdir)
	if err := mem.MkdirAll("dev"); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	in := lang.New(brokenFS{mem})
	ctx := t.Context()

	if err := in.Activate(ctx, "dev"); err != nil {
		t.Fatalf("Activate(dev) error = %v", err)
	}

	err := in.Activate(ctx, "staging")
	if !errors.Is(err, lang.ErrActivation) || !errors.Is(err, errReadOnly) {
		t.Fatalf("Activate(staging) error = %v, want ErrActivation wrapping %v", err, errReadOnly)
	}

	if name, _ := in.ActiveEnvironment(); name != "dev" {
		t.Errorf("ActiveEnvironment() = %q, want dev", name)
	}

	if _, ok := in.Environment("staging"); ok {
		t.Errorf("failed activation created a record")
	}

	if got := mustVariable(t, in, "env"); !got.Equal(lang.String("dev")) {
		t.Errorf("env = %v, want dev", got)
	}

	if wd, _ := mem.Getwd(); wd != "/work/dev" {
		t.Errorf("Getwd() = %q, want /work/dev", wd)
	}

	if !hasDiagnostic(in, lang.ErrActivation) {
		t.Errorf("failure not reported")
	}
}

func TestEnvironmentStatements(t *testing.T) {
	in, _ := newInterpreter(t, nil)
	ctx := t.Context()

	// Without an active environment these touch nothing.
	in.Process(ctx, "return early")
	in.Process(ctx, "export env(")

	if err := in.Activate(ctx, "dev"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	lines := []string{
		"export byp( run.py terminal -cmdbin",
		"export env(",
		"activate -mode SCRIPT",
		"return done",
		"subenv env.category",
		`prod=dev[subenv=["alpha", "beta"]]`,
	}
	for _, line := range lines {
		in.Process(ctx, line)
	}

	env, _ := in.Environment("dev")

	if len(env.Exported) != 2 || env.Exported["byp"] != lines[0] {
		t.Errorf("Exported = %v", env.Exported)
	}

	if env.ReturnValue == nil || *env.ReturnValue != "done" {
		t.Errorf("ReturnValue = %v, want done", env.ReturnValue)
	}

	if env.Subenv["category"] != "default" {
		t.Errorf("Subenv = %v", env.Subenv)
	}

	if len(env.Categories) != 2 || env.Categories[0] != "alpha" || env.Categories[1] != "beta" {
		t.Errorf("Categories = %q, want [alpha beta]", env.Categories)
	}

	if env.Mode != "SCRIPT" {
		t.Errorf("Mode = %q, want SCRIPT", env.Mode)
	}
}

func TestRun_RestoresWorkingDirectory(t *testing.T) {
	doc := "[a]\nx = 1\n#[staging]/ACTIVATE\n[b]\ny = 2\n"

	in, fs := newInterpreter(t, map[string]string{"main.devrc": doc})

	if err := in.Run(t.Context(), "main.devrc"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if wd, _ := fs.Getwd(); wd != workdir {
		t.Errorf("Getwd() after Run = %q, want %q", wd, workdir)
	}

	if name, _ := in.ActiveEnvironment(); name != "staging" {
		t.Errorf("ActiveEnvironment() = %q, want staging", name)
	}
}
