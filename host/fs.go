package host

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// DirPerm is the permission used for every created directory.
const DirPerm os.FileMode = 0o755

// FilePerm is the permission used for every written file.
const FilePerm os.FileMode = 0o644

// FS is a filesystem with its own working directory.
//
// Relative paths are resolved against the working directory kept by FS. An FS
// created with [NewOS] also changes the working directory of the process on
// Chdir; one created with [NewMemory] never touches the host.
type FS struct {
	mu      sync.Mutex
	fs      billy.Filesystem
	cwd     string
	process bool
}

// NewOS returns an FS backed by the host filesystem, starting in the working
// directory of the process.
func NewOS() (*FS, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkingDirectory, err)
	}

	return &FS{fs: osfs.New(string(filepath.Separator)), cwd: wd, process: true}, nil
}

// NewMemory returns an empty in-memory FS whose working directory is cwd.
// The directory cwd is created.
func NewMemory(cwd string) *FS {
	cwd = filepath.Clean(string(filepath.Separator) + cwd)

	mfs := memfs.New()
	_ = mfs.MkdirAll(cwd, DirPerm)

	return &FS{fs: mfs, cwd: cwd}
}

// Filesystem returns the underlying billy filesystem.
func (f *FS) Filesystem() billy.Filesystem { return f.fs }

// Abs resolves path against the working directory.
func (f *FS) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return filepath.Join(f.cwd, path)
}

// ReadFile returns the contents of the file at path.
func (f *FS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(f.fs, f.Abs(path))
}

// WriteFile writes data to the file at path, creating missing parent
// directories.
func (f *FS) WriteFile(path string, data []byte) error {
	abs := f.Abs(path)

	if err := f.fs.MkdirAll(filepath.Dir(abs), DirPerm); err != nil {
		return err
	}

	return util.WriteFile(f.fs, abs, data, FilePerm)
}

// MkdirAll creates path and any missing parents.
func (f *FS) MkdirAll(path string) error {
	return f.fs.MkdirAll(f.Abs(path), DirPerm)
}

// Exists reports whether path names an existing file or directory.
func (f *FS) Exists(path string) bool {
	_, err := f.fs.Stat(f.Abs(path))

	return err == nil
}

// Getwd returns the working directory.
func (f *FS) Getwd() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cwd, nil
}

// Chdir changes the working directory to path, which must be an existing
// directory.
func (f *FS) Chdir(path string) error {
	abs := f.Abs(path)

	info, err := f.fs.Stat(abs)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	if f.process {
		if err := os.Chdir(abs); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.cwd = abs
	f.mu.Unlock()

	return nil
}

// Dirs returns the sorted names of the directories directly inside path.
func (f *FS) Dirs(path string) ([]string, error) {
	infos, err := f.fs.ReadDir(f.Abs(path))
	if err != nil {
		return nil, err
	}

	var names []string

	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}

	slices.Sort(names)

	return names, nil
}
