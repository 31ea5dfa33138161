// Package cmd implements the lmx subcommands: expand, vars, init and edit.
//
// Commands receive the [kong.Context] of the parsed command line through
// their [context.Context] (see [WithContext]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the configuration file written by the init command.
	ConfigIdentifier = "config"
)

// stdinSource is the special path that reads standard input or writes
// standard output.
const stdinSource = "-"
