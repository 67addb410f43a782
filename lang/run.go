package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// Load parses the document at path and makes its sections the interpreter's
// current sections without executing them.
func (in *Interpreter) Load(ctx context.Context, path string) error {
	secs, err := in.Parse(ctx, path)
	if err != nil {
		return err
	}

	in.sections = *secs

	return nil
}

// Run parses the document at path and executes the named sections in the
// given order, or every section in parse order when no names are given.
//
// If any environment was activated, the starting working directory is
// restored before Run returns, whether or not execution succeeded. Only a
// failure to read the document at path is returned; every other failure is
// reported and available from [Interpreter.Diagnostics].
func (in *Interpreter) Run(ctx context.Context, path string, names ...string) error {
	defer in.Restore(ctx)

	if err := in.Load(ctx, path); err != nil {
		return err
	}

	if len(names) == 0 {
		in.ExecuteAll(ctx)
	} else {
		for _, name := range names {
			in.ExecuteSection(ctx, name)
		}
	}

	in.summarize(ctx)

	return nil
}

// ExecuteAll executes every loaded section in parse order.
func (in *Interpreter) ExecuteAll(ctx context.Context) {
	for _, name := range in.sections.Names() {
		in.ExecuteSection(ctx, name)
	}
}

// ExecuteSection processes each line of the named section in order.
// It reports whether the section exists.
func (in *Interpreter) ExecuteSection(ctx context.Context, name string) bool {
	sec, ok := in.sections.Get(name)
	if !ok {
		in.report(ctx, ErrSectionNotFound.With(slog.String("section", name)))

		return false
	}

	in.logger.InfoContext(ctx, "executing section",
		slog.String("section", sec.Name),
		slog.String("type", sec.TypeName()),
		slog.Int("lines", len(sec.Lines)),
	)

	for _, line := range sec.Lines {
		if ctx.Err() != nil {
			return true
		}

		in.logger.DebugContext(ctx, "process", slog.String("line", line))
		in.Process(ctx, line)
	}

	return true
}

// summarize logs the imported documents and every environment.
func (in *Interpreter) summarize(ctx context.Context) {
	for _, path := range in.importOrder {
		in.logger.InfoContext(ctx, "imported", slog.String("path", path))
	}

	for _, name := range in.envOrder {
		in.logger.InfoContext(ctx, "environment",
			slog.String("name", name),
			slog.String("path", in.envs[name].Path),
			slog.Bool("active", name == in.active),
		)
	}
}

// Snapshot is a point-in-time copy of interpreter state.
type Snapshot struct {
	Variables    map[string]any          `json:"variables"              yaml:"variables"`
	Environments map[string]*Environment `json:"environments,omitempty" yaml:"environments,omitempty"`
	Active       string                  `json:"active,omitempty"       yaml:"active,omitempty"`
	Imported     []string                `json:"imported,omitempty"     yaml:"imported,omitempty"`
}

// Snapshot returns a copy of the variables (as native Go values), the
// environment records, the active environment and the imported documents.
func (in *Interpreter) Snapshot() Snapshot {
	snap := Snapshot{
		Variables:    make(map[string]any, len(in.vars)),
		Environments: make(map[string]*Environment, len(in.envs)),
		Active:       in.active,
		Imported:     slices.Clone(in.importOrder),
	}

	for name, v := range in.vars {
		snap.Variables[name] = v.ToNative()
	}

	for name, env := range maps.All(in.envs) {
		snap.Environments[name] = env.clone()
	}

	return snap
}
