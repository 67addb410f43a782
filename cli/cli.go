package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/devrc/cli/cmd"
	"github.com/ardnew/devrc/pkg"
)

// CLI is the top-level command-line interface for devrc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`
	Root    string           `help:"Directory under which environments are created" placeholder:"DIR" short:"r" type:"path"`

	Run   cmd.Run   `cmd:"" default:"withargs" help:"Execute a devrc document"`
	Parse cmd.Parse `cmd:""                    help:"Print the sections of a devrc document"`
	Envs  cmd.Envs  `cmd:""                    help:"List environment directories under the root"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
	Repl  cmd.Repl  `cmd:""                    help:"Start an interactive statement shell"`
}

// vars returns the kong variables interpolated into the model.
func (c *CLI) vars(configFile, cacheDir string) kong.Vars {
	return kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir,
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())
}

// Run executes the devrc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	configFile := pkg.ConfigFile()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong parses anything, so that errors
	// reported while parsing honor the logging flags wherever they appear.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadConfig, configFile),
		cli.vars(configFile, pkg.CacheDir()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithRoot(ctx, cli.Root)

	// Apply the remaining logger settings, which do not use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
