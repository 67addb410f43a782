// Package cli contains the command line interface for devrc.
//
// # Usage
//
//	devrc [flags] FILE                 # same as "devrc run FILE"
//	devrc run FILE -s setup,build      # execute selected sections in order
//	devrc run FILE --dry-run           # print sections without executing
//	devrc run FILE --dump              # print interpreter state as YAML
//	devrc parse FILE --format yaml     # print sections as text, yaml or json
//	devrc envs [--path]                # list environment directories
//	devrc repl [FILE]                  # interactive statement shell
//	devrc init [--force]               # write the configuration file
//
// The global --root flag selects the directory under which environments are
// created; it defaults to the working directory.
//
// # Configuration File
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/devrc/config.yaml). Keys are flag names
// written with hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//	root: ~/envs
//
// Command-line flags override config file values. "devrc init" writes the
// current flag values to this file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (none, rfc3339, kitchen, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/devrc/pprof)
package cli
