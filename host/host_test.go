package host_test

import (
	"errors"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/devrc/host"
)

func TestFS_Memory(t *testing.T) {
	fs := host.NewMemory("/work")

	wd, err := fs.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	if wd != "/work" {
		t.Fatalf("Getwd() = %q, want %q", wd, "/work")
	}

	if err := fs.WriteFile("conf/main.devrc", []byte("[a]\nx = 1\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if !fs.Exists("/work/conf/main.devrc") {
		t.Errorf("Exists() = false for written file")
	}

	data, err := fs.ReadFile("/work/conf/main.devrc")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "[a]\nx = 1\n" {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := fs.ReadFile("missing.devrc"); err == nil {
		t.Errorf("ReadFile() of missing file succeeded")
	}
}

func TestFS_Chdir(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*host.FS)
		path    string
		wantErr bool
		wantWd  string
	}{
		{
			name:   "relative directory",
			setup:  func(fs *host.FS) { _ = fs.MkdirAll("staging") },
			path:   "staging",
			wantWd: "/work/staging",
		},
		{
			name:   "absolute directory",
			setup:  func(fs *host.FS) { _ = fs.MkdirAll("/other") },
			path:   "/other",
			wantWd: "/other",
		},
		{
			name:    "missing directory",
			setup:   func(*host.FS) {},
			path:    "nowhere",
			wantErr: true,
			wantWd:  "/work",
		},
		{
			name:    "regular file",
			setup:   func(fs *host.FS) { _ = fs.WriteFile("file", []byte("x")) },
			path:    "file",
			wantErr: true,
			wantWd:  "/work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := host.NewMemory("/work")
			tt.setup(fs)

			err := fs.Chdir(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Chdir() error = %v, wantErr %v", err, tt.wantErr)
			}

			if wd, _ := fs.Getwd(); wd != tt.wantWd {
				t.Errorf("Getwd() = %q, want %q", wd, tt.wantWd)
			}
		})
	}
}

func TestFS_Dirs(t *testing.T) {
	fs := host.NewMemory("/root")

	for _, dir := range []string{"prod", "dev", "debug"} {
		if err := fs.MkdirAll(dir); err != nil {
			t.Fatalf("MkdirAll(%q) error = %v", dir, err)
		}
	}

	if err := fs.WriteFile("main.devrc", []byte("")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := fs.Dirs(".")
	if err != nil {
		t.Fatalf("Dirs() error = %v", err)
	}

	want := []string{"debug", "dev", "prod"}
	if !slices.Equal(got, want) {
		t.Errorf("Dirs() = %v, want %v", got, want)
	}
}

func TestFS_OS(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	fs, err := host.NewOS()
	if err != nil {
		t.Fatalf("NewOS() error = %v", err)
	}

	if err := fs.MkdirAll("env/a"); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if err := fs.Chdir("env"); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}

	wd, _ := fs.Getwd()
	if want := filepath.Join(dir, "env"); wd != want {
		t.Errorf("Getwd() = %q, want %q", wd, want)
	}

	if !fs.Exists("a") {
		t.Errorf("Exists(%q) = false after Chdir", "a")
	}
}

type recordingDirs struct {
	made []string
	err  error
}

func (r *recordingDirs) MkdirAll(path string) error {
	r.made = append(r.made, path)

	return r.err
}

func TestWriter(t *testing.T) {
	tests := []struct {
		name   string
		call   func(*host.Writer, *testing.T) error
		want   []string
		failed bool
	}{
		{
			name: "output directory",
			call: func(w *host.Writer, t *testing.T) error { return w.Output(t.Context(), "build/") },
			want: []string{"build/"},
		},
		{
			name: "output file",
			call: func(w *host.Writer, t *testing.T) error { return w.Output(t.Context(), "build/out.json") },
			want: []string{"build"},
		},
		{
			name: "output bare file",
			call: func(w *host.Writer, t *testing.T) error { return w.Output(t.Context(), "out.json") },
		},
		{
			name: "create folder",
			call: func(w *host.Writer, t *testing.T) error { return w.CreateFolder(t.Context(), "build/cache") },
			want: []string{"build/cache"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingDirs{}

			if err := tt.call(host.NewWriter(rec), t); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !slices.Equal(rec.made, tt.want) {
				t.Errorf("MkdirAll calls = %v, want %v", rec.made, tt.want)
			}
		})
	}
}

func TestWriter_Error(t *testing.T) {
	want := errors.New("read-only")
	w := host.NewWriter(&recordingDirs{err: want})

	if err := w.CreateFolder(t.Context(), "x"); !errors.Is(err, want) {
		t.Errorf("CreateFolder() error = %v, want %v", err, want)
	}
}

func TestExec(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	run := host.Exec{
		Dir: func() (string, error) { return dir, nil },
		Env: []string{"DEVRC_TEST=ok"},
	}

	tests := []struct {
		name    string
		argv    []string
		want    string
		wantErr error
	}{
		{
			name: "stdout captured",
			argv: []string{"sh", "-c", "echo hello"},
			want: "hello",
		},
		{
			name: "environment appended",
			argv: []string{"sh", "-c", "echo $DEVRC_TEST"},
			want: "ok",
		},
		{
			name: "runs in directory",
			argv: []string{"sh", "-c", "pwd -P"},
			want: dir,
		},
		{
			name:    "failure",
			argv:    []string{"sh", "-c", "echo bad >&2; exit 3"},
			wantErr: host.ErrCommand,
		},
		{
			name:    "empty",
			argv:    nil,
			wantErr: host.ErrEmptyCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run.Run(t.Context(), tt.argv)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				return
			}

			got = strings.TrimSpace(got)
			if tt.name == "runs in directory" {
				want, _ := filepath.EvalSymlinks(tt.want)
				if got != want {
					t.Errorf("Run() = %q, want %q", got, want)
				}

				return
			}

			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}
