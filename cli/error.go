package cli

import "github.com/ardnew/devrc/cli/cmd"

// ErrReadConfig is returned when the configuration file cannot be decoded.
var ErrReadConfig = cmd.NewError("read configuration file")
