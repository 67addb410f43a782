package host

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Exec runs external commands in the working directory reported by Dir.
type Exec struct {
	// Dir returns the directory commands run in. A nil Dir runs commands in
	// the working directory of the process.
	Dir func() (string, error)
	// Env is appended to the environment of the process.
	Env []string
}

// Run executes argv and returns its standard output.
func (e Exec) Run(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 || argv[0] == "" {
		return "", ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	if e.Dir != nil {
		dir, err := e.Dir()
		if err != nil {
			return "", err
		}

		cmd.Dir = dir
	}

	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%w: %w: %s", ErrCommand, err, msg)
		}

		return stdout.String(), fmt.Errorf("%w: %w", ErrCommand, err)
	}

	return stdout.String(), nil
}
