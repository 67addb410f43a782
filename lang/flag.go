package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// Flag is one flag consumed by the .devrc / do dispatcher.
type Flag struct {
	Name   string
	Arg    string
	HasArg bool
}

type flagSpec struct {
	arity int
	desc  string
}

// flagSpecs lists every recognized flag with the number of argument tokens it
// consumes and the mode it reports.
var flagSpecs = map[string]flagSpec{
	"-out":        {1, "output"},
	"-crfolder":   {1, "create folder"},
	"-pop":        {1, "pop operation"},
	"-mode":       {1, "mode set"},
	"-locate":     {1, "locate"},
	"-ext":        {1, "extension"},
	"-rline":      {1, "run line"},
	"-r":          {1, "run mode"},
	"-h":          {1, "handle pattern"},
	"-glob":       {1, "glob pattern"},
	"-plugin":     {0, "plugin mode enabled"},
	"-config":     {0, "config mode enabled"},
	"-c":          {0, "compile mode enabled"},
	"-timed":      {0, "timed operation enabled"},
	"-force":      {0, "force mode enabled"},
	"-a":          {0, "append operation"},
	"-to":         {0, "transform operation"},
	"-cmdbin":     {0, "command binary mode"},
	"-cmdline":    {0, "command line mode"},
	"-byp":        {0, "bypass mode enabled"},
	"-ch":         {0, "chain operation"},
	"-numline":    {0, "number line mode"},
	"-ff":         {0, "fast forward mode"},
	"-set":        {0, "set operation"},
	"-getline":    {0, "get line operation"},
	"-linenum":    {0, "line number operation"},
	"-activeline": {0, "active line mode"},
	"-enable":     {0, "enable flag"},
	"-commitline": {0, "commit line operation"},
}

// FlagNames returns the recognized flag names in sorted order.
func FlagNames() []string { return slices.Sorted(maps.Keys(flagSpecs)) }

// ParseFlags consumes tokens positionally and returns the recognized flags.
// A flag that takes an argument consumes the following token; if none is
// left, the flag is skipped. Unrecognized tokens are skipped.
func ParseFlags(tokens []string) []Flag {
	var flags []Flag

	for i := 0; i < len(tokens); {
		spec, ok := flagSpecs[tokens[i]]

		switch {
		case !ok:
			i++

		case spec.arity == 0:
			flags = append(flags, Flag{Name: tokens[i]})
			i++

		case i+1 < len(tokens):
			flags = append(flags, Flag{Name: tokens[i], Arg: tokens[i+1], HasArg: true})
			i += 2

		default:
			i++
		}
	}

	return flags
}

// dispatchFlags applies the flags in tokens. Only -out and -crfolder have side
// effects; every other flag is reported.
func (in *Interpreter) dispatchFlags(ctx context.Context, tokens []string) []Flag {
	flags := ParseFlags(tokens)

	for _, f := range flags {
		switch f.Name {
		case "-out":
			in.out(ctx, f.Arg)

		case "-crfolder":
			in.createFolder(ctx, f.Arg)

		default:
			attrs := []slog.Attr{slog.String("flag", f.Name)}
			if f.HasArg {
				attrs = append(attrs, slog.String("arg", f.Arg))
			}

			in.logger.InfoContext(ctx, flagSpecs[f.Name].desc, attrs...)
		}
	}

	return flags
}
