package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// levelColor returns the color of a level name.
func levelColor(name string) string {
	switch {
	case strings.HasPrefix(name, "ERROR"):
		return colorRed
	case strings.HasPrefix(name, "WARN"):
		return colorYellow
	case strings.HasPrefix(name, "INFO"):
		return colorGreen
	default:
		return colorBlue
	}
}

// writeColored writes the text of v in a color chosen by its kind.
func writeColored(buf *bytes.Buffer, v slog.Value) {
	v = v.Resolve()

	var color, text string

	switch v.Kind() {
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}
	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = colorBlue, v.Time().String()
	default:
		color, text = colorCyan, v.String()
		if v.Kind() == slog.KindAny && v.Any() == nil {
			color, text = colorGray, "null"
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

// prettyHandler holds what the pretty text and JSON handlers share.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// builtin returns the time, level, source and message attributes of r after
// ReplaceAttr. Attributes removed by ReplaceAttr are dropped.
func (h *prettyHandler) builtin(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		attrs = append(attrs, slog.Time(slog.TimeKey, r.Time))
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			attrs = append(attrs, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))

	if h.opts.ReplaceAttr == nil {
		return attrs
	}

	out := attrs[:0]

	for _, a := range attrs {
		if a = h.opts.ReplaceAttr(nil, a); !a.Equal(slog.Attr{}) {
			out = append(out, a)
		}
	}

	return out
}

// record returns every attribute of r, handler attributes first, with keys
// qualified by the open groups.
func (h *prettyHandler) record(r slog.Record) []slog.Attr {
	attrs := append([]slog.Attr(nil), h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		attrs = append(attrs, a)

		return true
	})

	return attrs
}

func (h *prettyHandler) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	c := *h
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], qualify(h.prefix, attrs)...)

	return c
}

func (h *prettyHandler) withGroup(name string) prettyHandler {
	c := *h
	if name != "" {
		c.prefix += name + "."
	}

	return c
}

func qualify(prefix string, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		a.Key = prefix + a.Key
		out[i] = a
	}

	return out
}

// prettyTextHandler writes colorized key=value records on one line.
type prettyTextHandler struct {
	prettyHandler
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.builtin(r) {
		h.writeAttr(buf, a, "")
	}

	for _, a := range h.record(r) {
		h.writeAttr(buf, a, "")
	}

	return h.write(buf)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, prefix string) {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			h.writeAttr(buf, ga, prefix+a.Key+".")
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(prefix + a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	if a.Key == slog.LevelKey && prefix == "" {
		name := v.String()
		buf.WriteString(levelColor(name))
		buf.WriteString(name)
		buf.WriteString(colorReset)

		return
	}

	writeColored(buf, v)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes colorized, indented JSON-like records.
type prettyJSONHandler struct {
	prettyHandler
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	first := true
	for _, a := range append(h.builtin(r), h.record(r)...) {
		h.writeField(buf, a, 1, &first)
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) writeField(buf *bytes.Buffer, a slog.Attr, depth int, first *bool) {
	if !*first {
		buf.WriteByte(',')
	}

	*first = false

	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteString(": ")

	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		buf.WriteString("{")

		inner := true
		for _, ga := range v.Group() {
			h.writeField(buf, ga, depth+1, &inner)
		}

		buf.WriteString("\n")
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString("}")

		return
	}

	if a.Key == slog.LevelKey && depth == 1 {
		name := v.String()
		buf.WriteString(levelColor(name))
		buf.WriteString(name)
		buf.WriteString(colorReset)

		return
	}

	writeColored(buf, v)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
