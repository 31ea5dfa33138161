package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/lmx/lang"
)

// Vars parses variable definitions and prints the resulting symbol table in
// the chosen format.
type Vars struct {
	Native Native `cmd:"" default:"withargs" help:"Print as definitions (default)."`
	JSON   JSON   `cmd:""                    help:"Print as JSON."`
	YAML   YAML   `cmd:""                    help:"Print as YAML."`
}

// varsSource is the input common to every vars format.
type varsSource struct {
	Defs []string `arg:"" default:"-" help:"Definitions file(s) or '-' for stdin." name:"defs" type:"path"`
}

func (v varsSource) table(ctx context.Context, format string) (lang.Table, error) {
	src, err := openSourceFiles(v.Defs)
	if err != nil {
		return nil, err
	}

	if src == nil {
		return lang.Table{}, nil
	}
	defer src.Close()

	table, err := lang.ReadDefinitions(ctx, src)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("format", format))
	}

	return table, nil
}

// printFormatted renders into a buffer and writes it to stdout, so that
// nothing is written when formatting fails.
func printFormatted(format string, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer

	if err := render(&buf); err != nil {
		return ErrFormat.With(slog.String("format", format)).Wrap(err)
	}

	return writeOutput(stdout, stdinSource, buf.String())
}

// Native prints definitions in their own syntax, sorted by name.
type Native struct {
	varsSource
}

// Run executes the vars native command.
func (n *Native) Run(ctx context.Context) error {
	table, err := n.table(ctx, "native")
	if err != nil {
		return err
	}

	return printFormatted("native", func(buf *bytes.Buffer) error {
		return table.Format(ctx, buf)
	})
}

// JSON prints definitions as a JSON object.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	varsSource
}

// Run executes the vars json command.
func (j *JSON) Run(ctx context.Context) error {
	table, err := j.table(ctx, "json")
	if err != nil {
		return err
	}

	return printFormatted("json", func(buf *bytes.Buffer) error {
		return table.FormatJSON(ctx, buf, j.Indent)
	})
}

// YAML prints definitions as a YAML mapping.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	varsSource
}

// Run executes the vars yaml command.
func (y *YAML) Run(ctx context.Context) error {
	table, err := y.table(ctx, "yaml")
	if err != nil {
		return err
	}

	return printFormatted("yaml", func(buf *bytes.Buffer) error {
		return table.FormatYAML(ctx, buf, y.Indent)
	})
}
