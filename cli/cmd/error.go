package cmd

import "github.com/ardnew/lmx/lang"

// Command errors share the structured [lang.Error] type, so callers match
// them with errors.Is and log them with their attributes.
var (
	ErrReadSource  = lang.NewError("read source")
	ErrWriteOutput = lang.NewError("write output")
	ErrFormat      = lang.NewError("format definitions")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = lang.NewError("command context unavailable")
)
