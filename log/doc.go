// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured with functional options when they are made and are
// immutable afterward. Attributes are always [slog.Attr] values, which keeps
// call sites typed:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"))
//	logger.Debug("definitions parsed", slog.Int("count", 3))
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Trace sits below slog's debug level and is used for per-line interpreter
// events.
//
// # Formats
//
// [FormatText] (default) and [FormatJSON]. Text output is styled with
// lipgloss unless [WithPretty] disables it; styling degrades to plain text
// when the output is not a terminal.
//
// # Package logger
//
// The package-level functions ([Debug], [Info], [Warn], [Error], ...) write
// through a default logger on stderr that [Config] reconfigures. The zero
// [Logger] discards everything, so libraries can accept one unconditionally.
package log
