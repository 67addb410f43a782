package pkg

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "devrc" {
		t.Errorf("Expected Name to be %q, got %q", "devrc", Name)
	}
}

func TestVersion(t *testing.T) {
	if Version != strings.TrimSpace(version) {
		t.Errorf("Version %q not trimmed from %q", Version, version)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version) {
		t.Errorf("Version %q is not semantic", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/devrc", "devrc"},
		{"/tmp/__debug_bin1234", Name},
		{"/home/u/.devrc", "devrc"},
		{"C.exe", "C"},
		{"/opt/tools/devrc.test", "devrc"},
		{"/", Name},
		{"...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(tt.path); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	if got := filepath.Base(ConfigDir()); got != Prefix() {
		t.Errorf("ConfigDir() = %q, want base %q", ConfigDir(), Prefix())
	}

	if got := filepath.Base(CacheDir()); got != Prefix() {
		t.Errorf("CacheDir() = %q, want base %q", CacheDir(), Prefix())
	}

	if got := ConfigFile(); got != filepath.Join(ConfigDir(), ConfigFileName) {
		t.Errorf("ConfigFile() = %q", got)
	}

	if got := HistoryFile(); filepath.Dir(got) != CacheDir() {
		t.Errorf("HistoryFile() = %q", got)
	}
}
