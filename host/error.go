package host

import "errors"

// Sentinel errors.
var (
	ErrWorkingDirectory = errors.New("working directory unavailable")
	ErrNotDirectory     = errors.New("not a directory")
	ErrEmptyCommand     = errors.New("empty command")
	ErrCommand          = errors.New("command failed")
)
