package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadConfig is a [kong.ConfigurationLoader] that reads a YAML mapping of
// flag names to values.
//
// It is used with [kong.Configuration]:
//
//	kong.Configuration(loadConfig, "/path/to/config.yaml")
//
// Keys are flag names with either hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//	log-pretty: true
//	root: /tmp/envs
//
// Command-line flags override config file values. An empty file yields an
// empty configuration.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadConfig.Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrReadConfig.Wrap(err)
	}

	conf := make(config, len(raw))
	for key, val := range raw {
		conf[strings.ReplaceAll(key, "_", "-")] = flagValue(val)
	}

	return conf, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

// flagValue converts a decoded YAML value into a form kong can map onto a
// flag. Numbers become strings and sequences become comma-separated lists.
func flagValue(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		part := make([]string, len(v))
		for i, e := range v {
			part[i] = fmt.Sprint(flagValue(e))
		}

		return strings.Join(part, ",")
	default:
		return v
	}
}
