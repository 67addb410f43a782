package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrNoInterpreter  = errors.New("no interpreter")
	ErrUnknownCommand = errors.New("unknown command")
)
