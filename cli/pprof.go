//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/devrc/log"
	"github.com/ardnew/devrc/pkg"
	"github.com/ardnew/devrc/profile"
)

// pprofConfig selects a profile of the interpreter run. It is only compiled
// into binaries built with the pprof tag.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the run with the given mode" placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Directory receiving profile files"                         type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling"}
}

// start begins profiling and returns the function that writes the profile.
// Without a mode both are no-ops.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}
	if p.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", p.Mode), slog.String("dir", p.Path)}

	log.DebugContext(ctx, "profiling interpreter run", attrs...)

	running := p.Start()

	return func() {
		running.Stop()
		log.DebugContext(ctx, "profile written", attrs...)
	}
}
