// Package cli contains the command line interface for lmx.
//
// # Usage
//
//	lmx [flags] [expand] -p PROGRAM -d DEFS...   expand a program (default)
//	lmx vars [native|json|yaml] DEFS...          print parsed definitions
//	lmx edit -p PROGRAM -d DEFS                  interactive editor
//	lmx init [--force]                           write a configuration file
//
// # Configuration
//
// Flag defaults are read from the per-user configuration directory
// (for example ~/.config/lmx), in order of precedence:
//
//   - config.json: a JSON object of flag names to values
//   - config.yaml: a YAML mapping of flag names to values
//   - config: NAME = VALUE definitions, the format written by init
//
// Flag names may use hyphens or underscores. Command-line flags override
// every configuration file.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time: timestamp layout
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lmx .
//
// which adds the flags:
//
//   - --pprof-mode: profile to record (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/lmx/pprof)
package cli
