package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ConfigFileName is the base name of the configuration file in [ConfigDir].
const ConfigFileName = "config.yaml"

// HistoryFileName is the base name of the REPL history file in [CacheDir].
const HistoryFileName = "history"

// Prefix returns the base name used for the configuration and cache
// directories.
//
// Prefix is the base name of the executable file unless it matches one of the
// following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
// An empty result falls back to Name.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string { return prefixOf(executable()) })

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), Name},
	{regexp.MustCompile(`^\.+`), ""},
}

func prefixOf(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range prefixRules {
		id = rule.rex.ReplaceAllString(id, rule.rep)
	}

	if id == "" || id == "." || id == string(filepath.Separator) {
		return Name
	}

	return id
}

// userDir returns the first directory produced by the given lookups, joined
// with Prefix. The working directory is the last resort.
func userDir(lookup func() (string, error), homeSub string) string {
	dir, err := lookup()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, homeSub)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// ConfigFile returns the default configuration file path.
func ConfigFile() string { return filepath.Join(ConfigDir(), ConfigFileName) }

// HistoryFile returns the default REPL history file path.
func HistoryFile() string { return filepath.Join(CacheDir(), HistoryFileName) }
