// Package log provides a leveled structured logging interface based on
// [log/slog].
//
// Loggers are immutable values configured at creation time with functional
// options. A zero [Logger] discards everything, so components can hold one
// without checking for nil.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("environment activated", slog.String("environment", "dev"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options changed, and [Logger.With]
// one that adds attributes to every record.
//
// # Package Logger
//
// The package-level functions ([Info], [WarnContext], ...) write to a default
// logger on standard error, reconfigured with [Config] and read with
// [Default].
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Records below the configured level are
// discarded.
//
// # Output Formats
//
// [FormatText] (default) writes key=value lines and [FormatJSON] one JSON
// object per line. [WithPretty] colorizes either form. Timestamps are omitted
// unless a layout is set with [WithTimeLayout].
package log
