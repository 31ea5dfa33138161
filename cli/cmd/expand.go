package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/lmx/lang"
	"github.com/ardnew/lmx/log"
)

// Expand runs a program against a set of variable definitions and writes
// the expanded text.
type Expand struct {
	Program string   `default:"-" help:"Program file or '-' for stdin." short:"p" type:"path"`
	Defs    []string `help:"Definitions file(s), read in order." short:"d" type:"path"`
	Output  string   `default:"-" help:"Output file or '-' for stdout." short:"o" type:"path"`
	Strict  bool     `help:"Fail on malformed #if and #foreach directives."`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	program, err := openSource(e.Program)
	if err != nil {
		return err
	}
	defer program.Close()

	src, err := openSourceFiles(e.Defs)
	if err != nil {
		return err
	}

	// a nil SourceFiles must reach lang as a nil io.Reader
	var defs io.Reader
	if src != nil {
		defer src.Close()

		defs = src
	}

	logger := log.With(slog.String("program", e.Program))

	logger.DebugContext(ctx, "expand",
		slog.Any("defs", sourceNames(src)),
		slog.Bool("strict", e.Strict),
	)

	out, err := lang.RunReader(ctx, program, defs,
		lang.WithLogger(logger),
		lang.WithStrict(e.Strict),
	)
	if err != nil {
		return err
	}

	return writeOutput(stdout, e.Output, out+"\n")
}

func sourceNames(src SourceFiles) []string {
	if src == nil {
		return nil
	}

	return src.Names()
}
