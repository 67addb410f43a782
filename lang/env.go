package lang

import (
	"context"
	"log/slog"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
)

// DefaultMode is the mode of a newly activated environment.
const DefaultMode = "SCRIPT"

// Environment is a named, directory-backed execution context.
type Environment struct {
	Name        string            `json:"name"                   yaml:"name"`
	Path        string            `json:"path"                   yaml:"path"`
	Root        string            `json:"root"                   yaml:"root"`
	ActivatedAt string            `json:"activated_at"           yaml:"activated_at"`
	Mode        string            `json:"mode"                   yaml:"mode"`
	Exported    map[string]string `json:"exported"               yaml:"exported"`
	Subenv      map[string]string `json:"subenv"                 yaml:"subenv"`
	Categories  []string          `json:"categories,omitempty"   yaml:"categories,omitempty"`
	Content     map[string]string `json:"content"                yaml:"content"`
	ReturnValue *string           `json:"return_value,omitempty" yaml:"return_value,omitempty"`
}

// clone returns a deep copy of env.
func (env *Environment) clone() *Environment {
	c := *env
	c.Exported = maps.Clone(env.Exported)
	c.Subenv = maps.Clone(env.Subenv)
	c.Content = maps.Clone(env.Content)
	c.Categories = slices.Clone(env.Categories)

	if env.ReturnValue != nil {
		rv := *env.ReturnValue
		c.ReturnValue = &rv
	}

	return &c
}

var activateMarkerRx = regexp.MustCompile(`^#\[([^\]]+)\]/ACTIVATE`)

// activateMarker applies a #[name]/ACTIVATE line.
func (in *Interpreter) activateMarker(ctx context.Context, line string) {
	m := activateMarkerRx.FindStringSubmatch(line)
	if m == nil {
		in.report(ctx, ErrInvalidActivate.With(slog.String("line", line)))

		return
	}

	_ = in.Activate(ctx, m[1])
}

// Activate makes name the active environment.
//
// The environment directory root/name is created if missing and becomes the
// working directory. On failure the error is reported and returned, and the
// previously active environment stays active. The first activation of a name
// creates its record; later activations reuse it.
func (in *Interpreter) Activate(ctx context.Context, name string) error {
	path := filepath.Join(in.root, name)

	if !in.fs.Exists(path) {
		if err := in.fs.MkdirAll(path); err != nil {
			e := ErrActivation.Wrap(err).With(
				slog.String("environment", name),
				slog.String("path", path),
			)
			in.report(ctx, e)

			return e
		}

		in.logger.InfoContext(ctx, "created environment directory",
			slog.String("path", path))
	}

	prev, err := in.fs.Getwd()
	if err != nil {
		prev = in.origin
	}

	if err := in.fs.Chdir(path); err != nil {
		e := ErrActivation.Wrap(err).With(
			slog.String("environment", name),
			slog.String("path", path),
		)
		in.report(ctx, e)

		return e
	}

	env, ok := in.envs[name]
	if !ok {
		env = &Environment{
			Name:     name,
			Path:     path,
			Root:     in.root,
			Mode:     DefaultMode,
			Exported: make(map[string]string),
			Subenv:   make(map[string]string),
			Content:  make(map[string]string),
		}
		in.envs[name] = env
		in.envOrder = append(in.envOrder, name)
	}

	env.ActivatedAt = prev
	in.active = name

	in.vars["env"] = String(name)
	in.vars["activate"] = String(name + "/ACTIVATE")
	in.vars["currentdir"] = String(path)

	in.logger.InfoContext(ctx, "environment activated",
		slog.String("environment", name),
		slog.String("dir", path),
		slog.String("root", in.root),
		slog.String("mode", env.Mode),
	)

	return nil
}

// ActiveEnvironment returns the name of the active environment.
func (in *Interpreter) ActiveEnvironment() (string, bool) {
	return in.active, in.active != ""
}

// Environment returns a copy of the named environment record.
func (in *Interpreter) Environment(name string) (*Environment, bool) {
	env, ok := in.envs[name]
	if !ok {
		return nil, false
	}

	return env.clone(), true
}

// ListEnvironments returns the names of all environments activated so far,
// in order of first activation.
func (in *Interpreter) ListEnvironments() []string {
	return slices.Clone(in.envOrder)
}

// activeEnv returns the active environment record, if any.
func (in *Interpreter) activeEnv() (*Environment, bool) {
	if in.active == "" {
		return nil, false
	}

	env, ok := in.envs[in.active]

	return env, ok
}

// export records decl under name in the active environment's export table.
// The names byp and env get additional reporting.
func (in *Interpreter) export(ctx context.Context, name, decl string) {
	env, ok := in.activeEnv()
	if !ok {
		return
	}

	env.Exported[name] = decl

	switch name {
	case "byp":
		m := Scan(Tokenize(decl))

		in.logger.InfoContext(ctx, "bypass export configured",
			slog.Bool("python", m.Has(MarkPyExt)),
			slog.Bool("terminal", m.Has(MarkTerminal)),
			slog.Bool("cmdbin", m.Has(MarkCmdbin)),
			slog.Bool("byp", m.Has(MarkByp)),
		)

	case "env":
		in.logger.InfoContext(ctx, "environment export configured",
			slog.String("environment", env.Name))
	}
}

// setMode sets the active environment's mode.
func (in *Interpreter) setMode(ctx context.Context, mode string) {
	env, ok := in.activeEnv()
	if !ok {
		return
	}

	env.Mode = mode

	in.logger.InfoContext(ctx, "activate mode", slog.String("mode", mode))
}

// setReturnValue records text as the active environment's return value.
func (in *Interpreter) setReturnValue(text string) {
	env, ok := in.activeEnv()
	if !ok {
		return
	}

	env.ReturnValue = &text
}

// Restore changes back to the starting working directory if any environment
// was activated. [Interpreter.Run] calls it before returning.
func (in *Interpreter) Restore(ctx context.Context) {
	if len(in.envs) == 0 {
		return
	}

	if err := in.fs.Chdir(in.origin); err != nil {
		in.report(ctx, ErrActivation.Wrap(err).With(
			slog.String("path", in.origin)))

		return
	}

	in.logger.InfoContext(ctx, "returned to root directory",
		slog.String("dir", in.origin))
}
