package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the sections in devrc document syntax to the writer.
// Section lines are indented by indent spaces.
func (s *Sections) Format(_ context.Context, w io.Writer, indent int) error {
	pad := strings.Repeat(" ", max(indent, 0))

	count := 0
	for sec := range s.All() {
		if count > 0 {
			// Delimit sections with a blank line
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if sec.Type != "" {
			if _, err := fmt.Fprintf(w, "@[%s]\n", sec.Type); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "[%s]\n", sec.Name); err != nil {
			return err
		}

		for _, line := range sec.Lines {
			if _, err := fmt.Fprintln(w, pad+line); err != nil {
				return err
			}
		}

		count++
	}

	return nil
}

// FormatJSON writes the sections as a JSON array to the writer.
func (s *Sections) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return writeJSON(w, s.list(), indent)
}

// FormatYAML writes the sections as a YAML sequence to the writer.
func (s *Sections) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return writeYAML(ctx, w, s.list(), indent)
}

// list returns the sections in registration order with types resolved.
func (s *Sections) list() []Section {
	out := make([]Section, 0, s.Len())

	for sec := range s.All() {
		out = append(out, Section{
			Name:  sec.Name,
			Type:  sec.TypeName(),
			Lines: slices.Clone(sec.Lines),
		})
	}

	return out
}

// FormatJSON writes the snapshot as JSON to the writer.
func (snap Snapshot) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return writeJSON(w, snap, indent)
}

// FormatYAML writes the snapshot as YAML to the writer.
func (snap Snapshot) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return writeYAML(ctx, w, snap, indent)
}

func writeJSON(w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
