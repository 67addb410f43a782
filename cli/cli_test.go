package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/devrc/log"
)

// writeFile writes content to name in a temporary directory and returns its
// path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	original := log.Default()
	defer log.Config(
		log.WithLevel(original.Level()),
		log.WithFormat(original.Format()),
	)

	doc := writeFile(t, "main.devrc", "[a]\nx = 1\n")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "parse", args: []string{"--log-level", "error", "parse", "--format", "json", doc}},
		{name: "missing file", args: []string{"parse", filepath.Join(t.TempDir(), "none.devrc")}, wantErr: true},
		{name: "bad format", args: []string{"parse", "--format", "toml", doc}, wantErr: true},
		{name: "dry run short flag", args: []string{"--log-level", "error", "run", "-d", doc}},
		{name: "unknown short flag", args: []string{"run", "-n", doc}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exited := -1

			err := Run(t.Context(), func(code int) { exited = code }, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}

			if exited != -1 {
				t.Errorf("Run(%v) called exit(%d)", tt.args, exited)
			}
		})
	}
}

func TestLogConfig_Scan(t *testing.T) {
	original := log.Default()
	defer log.Config(
		log.WithLevel(original.Level()),
		log.WithFormat(original.Format()),
		log.WithPretty(false),
		log.WithCaller(false),
	)

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"--log-level", "debug", "--log-format", "json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "assigned values",
			args: []string{"run", "--log-level=warn", "main.devrc"},
			want: logConfig{Level: "warn"},
		},
		{
			name: "boolean flags",
			args: []string{"--log-pretty", "--log-caller=true"},
			want: logConfig{Pretty: true, Caller: true},
		},
		{
			name: "negated flags",
			args: []string{"--no-log-pretty", "--no-log-caller=false"},
			want: logConfig{Pretty: false, Caller: true},
		},
		{
			name: "value not consumed from next flag",
			args: []string{"--log-level", "--log-pretty"},
			want: logConfig{Pretty: true},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"--root", "envs", "-s", "a"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}
