package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/log"
	"github.com/ardnew/devrc/profile"
)

// Init generates a configuration file with the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// ignoredFlags are never written to the configuration file.
var ignoredFlags = []string{"help", "version", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(i.values(ktx), yaml.Indent(defaultIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), host.DirPerm); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, data, host.FilePerm); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// values returns the global flags and their current values in declaration
// order, omitting empty values.
func (i *Init) values(ktx *kong.Context) yaml.MapSlice {
	var items yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := configValue(ktx.FlagValue(flag)); ok {
			items = append(items, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return items
}

// configValue returns the YAML representation of a flag value.
func configValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case fmt.Stringer:
		s := v.String()

		return s, s != ""
	case bool, int, int64, uint, uint64, float64:
		return v, true
	case []string:
		return v, len(v) > 0
	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
